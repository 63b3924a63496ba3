package buffer

import (
	"github.com/Carmen-Shannon/oxy-layout/gputypes"
	"github.com/Carmen-Shannon/oxy-layout/layout"
)

// UniformBuffer lays out a single value at base offset 0 under the uniform
// address space's rules: struct alignment of at least 16, every nested
// struct field and array stride raised to that same 16-byte floor, and no
// runtime-sized array at any depth. Each write overwrites from offset 0.
type UniformBuffer struct {
	data []byte
}

// NewUniformBuffer wraps an existing byte region. The caller is
// responsible for sizing data to fit every value it intends to write.
func NewUniformBuffer(data []byte) *UniformBuffer {
	return &UniformBuffer{data: data}
}

// Bytes returns the buffer's backing region.
func (b *UniformBuffer) Bytes() []byte {
	return b.data
}

func checkUniformCompat(info *gputypes.ValueInfo) error {
	if info.Type.RuntimeSized {
		return &UniformCompatError{
			GoType: info.GoType.String(),
			Reason: "runtime-sized arrays are never permitted in the uniform address space",
		}
	}
	return nil
}

// WriteUniform serializes value into b from offset 0 after checking that
// T's layout is uniform-compatible.
func WriteUniform[T any](b *UniformBuffer, value T) (uint64, error) {
	info, err := gputypes.DescribeValue[T](layout.Uniform)
	if err != nil {
		return 0, err
	}
	if err := checkUniformCompat(info); err != nil {
		return 0, err
	}
	return gputypes.WriteValue(b.data, info, value)
}

// ReadUniform decodes b's contents from offset 0 into dst.
func ReadUniform[T any](b *UniformBuffer, dst *T) error {
	info, err := gputypes.DescribeValue[T](layout.Uniform)
	if err != nil {
		return err
	}
	if err := checkUniformCompat(info); err != nil {
		return err
	}
	return gputypes.ReadValue(b.data, info, dst)
}

// CreateUniform constructs a fresh T from b's contents at offset 0.
func CreateUniform[T any](b *UniformBuffer) (T, error) {
	var value T
	err := ReadUniform(b, &value)
	return value, err
}
