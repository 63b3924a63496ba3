package buffer

import "fmt"

// UniformCompatError is returned when a value's derived layout violates a
// constraint the uniform address space imposes: most commonly, that it
// (or something it contains) carries a runtime-sized array, which the
// uniform space never permits at any depth.
type UniformCompatError struct {
	GoType string
	Reason string
}

func (e *UniformCompatError) Error() string {
	return fmt.Sprintf("%s is not uniform-address-space compatible: %s", e.GoType, e.Reason)
}
