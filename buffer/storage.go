package buffer

import (
	"github.com/Carmen-Shannon/oxy-layout/gputypes"
	"github.com/Carmen-Shannon/oxy-layout/layout"
)

// StorageBuffer lays out a single value at base offset 0 under the
// (relaxed) storage address space's rules: no 16-byte struct/array floor,
// and a runtime-sized array is permitted as the value's terminal field (or
// as the value itself). Each write overwrites from offset 0.
type StorageBuffer struct {
	data []byte
}

// NewStorageBuffer wraps an existing byte region. For a value whose type
// carries a runtime-sized tail, data must be large enough for the longest
// sequence the caller intends to write.
func NewStorageBuffer(data []byte) *StorageBuffer {
	return &StorageBuffer{data: data}
}

// Bytes returns the buffer's backing region.
func (b *StorageBuffer) Bytes() []byte {
	return b.data
}

// WriteStorage serializes value into b from offset 0.
func WriteStorage[T any](b *StorageBuffer, value T) (uint64, error) {
	info, err := gputypes.DescribeValue[T](layout.Storage)
	if err != nil {
		return 0, err
	}
	return gputypes.WriteValue(b.data, info, value)
}

// ReadStorage decodes b's contents from offset 0 into dst, resizing dst's
// terminal runtime-sized slice (if any) to fit the bytes available.
func ReadStorage[T any](b *StorageBuffer, dst *T) error {
	info, err := gputypes.DescribeValue[T](layout.Storage)
	if err != nil {
		return err
	}
	return gputypes.ReadValue(b.data, info, dst)
}

// CreateStorage constructs a fresh T from b's contents at offset 0.
func CreateStorage[T any](b *StorageBuffer) (T, error) {
	var value T
	err := ReadStorage(b, &value)
	return value, err
}
