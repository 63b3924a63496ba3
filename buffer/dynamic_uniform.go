package buffer

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-layout/gputypes"
	"github.com/Carmen-Shannon/oxy-layout/layout"
)

// DynamicUniformBuffer concatenates independently uniform-compat-checked
// values at caller-chosen aligned offsets within one backing region,
// maintaining an append cursor across writes.
type DynamicUniformBuffer struct {
	data      []byte
	alignment uint64
	cursor    uint64
}

// NewDynamicUniformBuffer wraps data with a default alignment of 256
// bytes, or the alignment WithAlignment supplies (must be >= 32, a
// multiple of 16, and a power of two).
func NewDynamicUniformBuffer(data []byte, opts ...DynamicBufferOption) (*DynamicUniformBuffer, error) {
	cfg := dynamicConfig{alignment: defaultDynamicAlignment}
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := validateDynamicAlignment(cfg.alignment, true); err != nil {
		return nil, err
	}
	return &DynamicUniformBuffer{data: data, alignment: cfg.alignment}, nil
}

// Bytes returns the buffer's backing region.
func (b *DynamicUniformBuffer) Bytes() []byte {
	return b.data
}

// Alignment reports the buffer's configured offset alignment.
func (b *DynamicUniformBuffer) Alignment() uint64 {
	return b.alignment
}

// SetOffset seeks the cursor to an explicitly given, already-aligned
// position, for a subsequent Read or Create call.
func (b *DynamicUniformBuffer) SetOffset(offset uint64) error {
	if offset%b.alignment != 0 {
		return fmt.Errorf("buffer: offset %d is not a multiple of the buffer's alignment %d", offset, b.alignment)
	}
	b.cursor = offset
	return nil
}

// WriteDynamicUniform advances the cursor to the next alignment boundary,
// writes value there, advances the cursor again by the aligned written
// size, and returns the offset the value was placed at.
func WriteDynamicUniform[T any](b *DynamicUniformBuffer, value T) (uint64, error) {
	info, err := gputypes.DescribeValue[T](layout.Uniform)
	if err != nil {
		return 0, err
	}
	if err := checkUniformCompat(info); err != nil {
		return 0, err
	}

	offset := layout.AlignUp(b.cursor, b.alignment)
	n, err := gputypes.WriteValue(b.data[offset:], info, value)
	if err != nil {
		return 0, err
	}
	b.cursor = layout.AlignUp(offset+n, b.alignment)
	return offset, nil
}

// ReadDynamicUniform decodes the value at the buffer's current cursor
// (set by a prior write or by SetOffset) into dst. It does not itself
// advance the cursor; callers reading several values in sequence call
// SetOffset between reads.
func ReadDynamicUniform[T any](b *DynamicUniformBuffer, dst *T) error {
	info, err := gputypes.DescribeValue[T](layout.Uniform)
	if err != nil {
		return err
	}
	if err := checkUniformCompat(info); err != nil {
		return err
	}
	return gputypes.ReadValue(b.data[b.cursor:], info, dst)
}

// CreateDynamicUniform constructs a fresh T from the buffer's current
// cursor position.
func CreateDynamicUniform[T any](b *DynamicUniformBuffer) (T, error) {
	var value T
	err := ReadDynamicUniform(b, &value)
	return value, err
}
