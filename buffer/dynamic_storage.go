package buffer

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-layout/gputypes"
	"github.com/Carmen-Shannon/oxy-layout/layout"
)

// DynamicStorageBuffer is DynamicUniformBuffer without the uniform
// compatibility check and with a minimum alignment of 32 that need not be
// a multiple of 16: it permits a runtime-sized tail on any
// concatenated value.
type DynamicStorageBuffer struct {
	data      []byte
	alignment uint64
	cursor    uint64
}

// NewDynamicStorageBuffer wraps data with a default alignment of 256
// bytes, or the alignment WithAlignment supplies (must be >= 32 and a
// power of two).
func NewDynamicStorageBuffer(data []byte, opts ...DynamicBufferOption) (*DynamicStorageBuffer, error) {
	cfg := dynamicConfig{alignment: defaultDynamicAlignment}
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := validateDynamicAlignment(cfg.alignment, false); err != nil {
		return nil, err
	}
	return &DynamicStorageBuffer{data: data, alignment: cfg.alignment}, nil
}

// Bytes returns the buffer's backing region.
func (b *DynamicStorageBuffer) Bytes() []byte {
	return b.data
}

// Alignment reports the buffer's configured offset alignment.
func (b *DynamicStorageBuffer) Alignment() uint64 {
	return b.alignment
}

// SetOffset seeks the cursor to an explicitly given, already-aligned
// position, for a subsequent Read or Create call.
func (b *DynamicStorageBuffer) SetOffset(offset uint64) error {
	if offset%b.alignment != 0 {
		return fmt.Errorf("buffer: offset %d is not a multiple of the buffer's alignment %d", offset, b.alignment)
	}
	b.cursor = offset
	return nil
}

// WriteDynamicStorage advances the cursor to the next alignment boundary,
// writes value there, advances the cursor again by the aligned written
// size (which, for a value with a runtime-sized tail, depends on how many
// elements value's terminal slice holds), and returns the offset the
// value was placed at.
func WriteDynamicStorage[T any](b *DynamicStorageBuffer, value T) (uint64, error) {
	info, err := gputypes.DescribeValue[T](layout.Storage)
	if err != nil {
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

// ReadDynamicStorage decodes the value at the buffer's current cursor
// into dst, resizing dst's terminal runtime-sized slice (if any) to the
// bytes remaining in the backing region from that offset onward. When a
// value with a runtime-sized tail is not the last one concatenated into
// the buffer, callers must present a bounded sub-slice (via a fresh
// DynamicStorageBuffer over b.Bytes()[:end]) rather than read through b
// directly, since the tail otherwise extends to the buffer's true end.
func ReadDynamicStorage[T any](b *DynamicStorageBuffer, dst *T) error {
	info, err := gputypes.DescribeValue[T](layout.Storage)
	if err != nil {
		return err
	}
	return gputypes.ReadValue(b.data[b.cursor:], info, dst)
}

// CreateDynamicStorage constructs a fresh T from the buffer's current
// cursor position.
func CreateDynamicStorage[T any](b *DynamicStorageBuffer) (T, error) {
	var value T
	err := ReadDynamicStorage(b, &value)
	return value, err
}
