package buffer

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-layout/common"
	"github.com/Carmen-Shannon/oxy-layout/layout"
)

const (
	defaultDynamicAlignment = 256
	minDynamicAlignment     = 32
)

// DynamicBufferOption configures a DynamicUniformBuffer or
// DynamicStorageBuffer at construction, following the functional-options
// shape used elsewhere for per-instance configuration.
type DynamicBufferOption func(*dynamicConfig)

type dynamicConfig struct {
	alignment uint64
}

// WithAlignment sets a dynamic buffer's offset alignment, overriding the
// default of 256 bytes. A zero value leaves the default in place.
func WithAlignment(bytes uint64) DynamicBufferOption {
	return func(c *dynamicConfig) {
		c.alignment = common.Coalesce(bytes, c.alignment)
	}
}

// validateDynamicAlignment enforces the per-kind alignment rules: both
// dynamic wrappers require an alignment >= 32 and a power of two; only the
// uniform-backed one additionally requires a multiple of 16.
func validateDynamicAlignment(a uint64, requireMultipleOf16 bool) error {
	if a < minDynamicAlignment {
		return fmt.Errorf("buffer: alignment %d is below the minimum of %d", a, minDynamicAlignment)
	}
	if !layout.IsPowerOfTwo(a) {
		return fmt.Errorf("buffer: alignment %d is not a power of two", a)
	}
	if requireMultipleOf16 && a%16 != 0 {
		return fmt.Errorf("buffer: alignment %d is not a multiple of 16", a)
	}
	return nil
}
