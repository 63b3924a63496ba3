package layout

import "fmt"

// LayoutConflictError is returned by Solve when a field's explicit
// annotation is self-inconsistent with its natural layout: an alignment
// override that isn't a power of two or is weaker than the natural
// alignment, or a size override that is smaller than the natural size.
// It is always raised while deriving metadata, never from traversal.
type LayoutConflictError struct {
	Field  string
	Reason string
}

func (e *LayoutConflictError) Error() string {
	return fmt.Sprintf("layout conflict on field %q: %s", e.Field, e.Reason)
}

// RuntimeFieldNotLastError is returned by Solve when a field annotated
// size(runtime) is not the final field in the list.
type RuntimeFieldNotLastError struct {
	Field string
}

func (e *RuntimeFieldNotLastError) Error() string {
	return fmt.Sprintf("runtime-sized field %q must be the last field in its struct", e.Field)
}
