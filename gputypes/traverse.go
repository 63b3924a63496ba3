package gputypes

import (
	"encoding/binary"
	"fmt"
	"math"
	"reflect"

	"github.com/Carmen-Shannon/oxy-layout/layout"
)

// WriteStruct serializes value (of type T, described by info) into dst
// starting at byte offset 0: it walks info.Type's solved field list,
// zero-filling the padding schedule between fields and advancing a cursor
// that never moves backwards.
//
// Parameters:
//   - dst: the backing region to write into; must be at least as long as
//     the value's actual written size — info.Type.Size for a fixed-size
//     struct, or info.Type.MinSize plus the terminal slice's length times
//     its element stride for a runtime-sized one
//   - info: the describer for T, from Describe or DescribeType
//   - value: the host value to serialize
//
// Returns:
//   - uint64: the number of bytes actually written, which dynamic buffers
//     use to advance their append cursor
func WriteStruct[T any](dst []byte, info *StructInfo, value T) (uint64, error) {
	v := reflect.ValueOf(value)
	if v.Type() != info.GoType {
		return 0, fmt.Errorf("gputypes: value type %s does not match described type %s", v.Type(), info.GoType)
	}
	return writeStruct(dst, info, v)
}

// ReadStruct deserializes src into *dst, mirroring WriteStruct: scalars are
// decoded in place, fixed arrays fill their declared length, and the
// struct's terminal runtime slice (if any) is resized to len(src
// remaining)/stride before being filled.
//
// Parameters:
//   - src: the backing region to read from
//   - info: the describer for T, from Describe or DescribeType
//   - dst: the existing value to decode into
//
// Returns an error of type *BufferTooSmallError if any field's offset and
// size would read past the end of src.
func ReadStruct[T any](src []byte, info *StructInfo, dst *T) error {
	v := reflect.ValueOf(dst).Elem()
	if v.Type() != info.GoType {
		return fmt.Errorf("gputypes: destination type %s does not match described type %s", v.Type(), info.GoType)
	}
	_, err := readStruct(src, info, v)
	return err
}

// CreateStruct constructs a fresh T from src rather than overwriting an
// existing value — Go's well-defined zero values mean this is exactly
// ReadStruct into a zeroed T.
//
// Parameters:
//   - src: the backing region to read from
//   - info: the describer for T, from Describe or DescribeType
//
// Returns the decoded T, or an error of type *BufferTooSmallError if any
// field's offset and size would read past the end of src.
func CreateStruct[T any](src []byte, info *StructInfo) (T, error) {
	var value T
	err := ReadStruct(src, info, &value)
	return value, err
}

func writeStruct(dst []byte, info *StructInfo, v reflect.Value) (uint64, error) {
	t := info.Type
	var cursor uint64
	for i, f := range t.Fields {
		clear(dst[cursor : cursor+t.Pad[i]])
		cursor += t.Pad[i]

		fi := info.Fields[i]
		fv := v.Field(fi.GoIndex)

		switch fi.Kind {
		case fieldLeaf:
			if fi.Leaf.kind == leafArrayLength {
				writeArrayLength(dst[cursor:cursor+4], info, v)
				cursor += 4
				continue
			}
			writeLeaf(dst[cursor:], fi.Leaf, fv)
			cursor += f.WrittenSize

		case fieldStruct:
			if _, err := writeStruct(dst[cursor:cursor+fi.Elem.Type.Size], fi.Elem, fv); err != nil {
				return 0, err
			}
			cursor += f.WrittenSize

		case fieldFixedArray:
			if err := writeFixedArray(dst[cursor:], fi, fv, f.Type.Stride); err != nil {
				return 0, err
			}
			cursor += f.WrittenSize

		case fieldRuntimeSlice:
			n := writeRuntimeArray(dst[cursor:], fi, fv, f.Type.Stride)
			return cursor + n, nil
		}
	}
	trailing := t.Pad[len(t.Pad)-1]
	clear(dst[cursor : cursor+trailing])
	return cursor + trailing, nil
}

func readStruct(src []byte, info *StructInfo, v reflect.Value) (uint64, error) {
	t := info.Type
	var cursor uint64
	for i, f := range t.Fields {
		cursor += t.Pad[i]

		fi := info.Fields[i]
		fv := v.Field(fi.GoIndex)

		switch fi.Kind {
		case fieldLeaf:
			if fi.Leaf.kind == leafArrayLength {
				if cursor+4 > uint64(len(src)) {
					return 0, &BufferTooSmallError{Field: fi.Name, Offset: cursor, Needed: 4, Available: remaining(cursor, src)}
				}
				// The count is derived from the decoded runtime slice's
				// length, not re-read from its own placeholder bytes.
				cursor += 4
				continue
			}
			if cursor+f.WrittenSize > uint64(len(src)) {
				return 0, &BufferTooSmallError{Field: fi.Name, Offset: cursor, Needed: f.WrittenSize, Available: remaining(cursor, src)}
			}
			if err := readLeaf(src[cursor:cursor+f.WrittenSize], fi.Leaf, fv); err != nil {
				return 0, annotateField(err, fi.Name, cursor)
			}
			cursor += f.WrittenSize

		case fieldStruct:
			if cursor+f.WrittenSize > uint64(len(src)) {
				return 0, &BufferTooSmallError{Field: fi.Name, Offset: cursor, Needed: f.WrittenSize, Available: remaining(cursor, src)}
			}
			if _, err := readStruct(src[cursor:cursor+f.WrittenSize], fi.Elem, fv); err != nil {
				return 0, err
			}
			cursor += f.WrittenSize

		case fieldFixedArray:
			if cursor+f.WrittenSize > uint64(len(src)) {
				return 0, &BufferTooSmallError{Field: fi.Name, Offset: cursor, Needed: f.WrittenSize, Available: remaining(cursor, src)}
			}
			if err := readFixedArray(src[cursor:cursor+f.WrittenSize], fi, fv, f.Type.Stride); err != nil {
				return 0, err
			}
			cursor += f.WrittenSize

		case fieldRuntimeSlice:
			if cursor > uint64(len(src)) {
				return 0, &BufferTooSmallError{Field: fi.Name, Offset: cursor, Needed: f.Type.Stride, Available: 0}
			}
			n, err := readRuntimeArray(src[cursor:], fi, fv, f.Type.Stride)
			if err != nil {
				return 0, err
			}
			return cursor + n, nil
		}
	}
	return cursor + t.Pad[len(t.Pad)-1], nil
}

// remaining reports the bytes available in src from cursor onward, or 0 if
// cursor has already advanced past the end of src.
func remaining(cursor uint64, src []byte) uint64 {
	if cursor > uint64(len(src)) {
		return 0
	}
	return uint64(len(src)) - cursor
}

func annotateField(err error, name string, offset uint64) error {
	if bts, ok := err.(*BufferTooSmallError); ok && bts.Field == "" {
		bts.Field = name
		bts.Offset += offset
		return bts
	}
	return err
}

func writeLeaf(dst []byte, d leafDesc, v reflect.Value) {
	switch d.kind {
	case leafScalar:
		writeScalar(dst, d.scalar, v)
	case leafVector:
		writeVector(dst, d, v)
	case leafMatrix:
		writeMatrix(dst, d, v)
	}
}

func readLeaf(src []byte, d leafDesc, v reflect.Value) error {
	need := leafLayout(d).Size
	if uint64(len(src)) < need {
		return &BufferTooSmallError{Needed: need, Available: uint64(len(src))}
	}
	switch d.kind {
	case leafScalar:
		readScalar(src, d.scalar, v)
	case leafVector:
		readVector(src, d, v)
	case leafMatrix:
		readMatrix(src, d, v)
	}
	return nil
}

func writeScalar(dst []byte, k layout.ScalarKind, v reflect.Value) {
	switch k {
	case layout.F32:
		binary.LittleEndian.PutUint32(dst, math.Float32bits(float32(v.Float())))
	case layout.I32:
		binary.LittleEndian.PutUint32(dst, uint32(int32(v.Int())))
	case layout.U32:
		binary.LittleEndian.PutUint32(dst, uint32(v.Uint()))
	case layout.F16:
		binary.LittleEndian.PutUint16(dst, uint16(v.Uint()))
	}
}

func readScalar(src []byte, k layout.ScalarKind, v reflect.Value) {
	switch k {
	case layout.F32:
		v.SetFloat(float64(math.Float32frombits(binary.LittleEndian.Uint32(src))))
	case layout.I32:
		v.SetInt(int64(int32(binary.LittleEndian.Uint32(src))))
	case layout.U32:
		v.SetUint(uint64(binary.LittleEndian.Uint32(src)))
	case layout.F16:
		v.SetUint(uint64(binary.LittleEndian.Uint16(src)))
	}
}

func writeVector(dst []byte, d leafDesc, v reflect.Value) {
	w := layout.ScalarWidth(d.scalar)
	for i := 0; i < d.n; i++ {
		writeScalar(dst[uint64(i)*w:], d.scalar, v.Index(i))
	}
}

func readVector(src []byte, d leafDesc, v reflect.Value) {
	w := layout.ScalarWidth(d.scalar)
	for i := 0; i < d.n; i++ {
		readScalar(src[uint64(i)*w:], d.scalar, v.Index(i))
	}
}

func writeMatrix(dst []byte, d leafDesc, v reflect.Value) {
	m := layout.MatrixLayout(d.cols, d.rows, d.scalar)
	colSize := layout.VectorSize(d.rows, d.scalar)
	w := layout.ScalarWidth(d.scalar)
	for c := 0; c < d.cols; c++ {
		off := uint64(c) * m.Stride
		col := v.Index(c)
		for r := 0; r < d.rows; r++ {
			writeScalar(dst[off+uint64(r)*w:], d.scalar, col.Index(r))
		}
		if m.Stride > colSize {
			clear(dst[off+colSize : off+m.Stride])
		}
	}
}

func readMatrix(src []byte, d leafDesc, v reflect.Value) {
	m := layout.MatrixLayout(d.cols, d.rows, d.scalar)
	w := layout.ScalarWidth(d.scalar)
	for c := 0; c < d.cols; c++ {
		off := uint64(c) * m.Stride
		col := v.Index(c)
		for r := 0; r < d.rows; r++ {
			readScalar(src[off+uint64(r)*w:], d.scalar, col.Index(r))
		}
	}
}

func writeElement(dst []byte, e elementDesc, v reflect.Value) (uint64, error) {
	if e.isStruct {
		return writeStruct(dst[:e.sub.Type.Size], e.sub, v)
	}
	writeLeaf(dst, e.leaf, v)
	return leafLayout(e.leaf).Size, nil
}

func readElement(src []byte, e elementDesc, v reflect.Value) error {
	if e.isStruct {
		_, err := readStruct(src, e.sub, v)
		return err
	}
	return readLeaf(src, e.leaf, v)
}

func writeFixedArray(dst []byte, fi FieldInfo, v reflect.Value, stride uint64) error {
	for i := 0; i < fi.ArrayLen; i++ {
		off := uint64(i) * stride
		elemSize, err := writeElement(dst[off:], fi.ArrayElem, v.Index(i))
		if err != nil {
			return err
		}
		if stride > elemSize {
			clear(dst[off+elemSize : off+stride])
		}
	}
	return nil
}

func readFixedArray(src []byte, fi FieldInfo, v reflect.Value, stride uint64) error {
	for i := 0; i < fi.ArrayLen; i++ {
		off := uint64(i) * stride
		if off+stride > uint64(len(src)) {
			return &BufferTooSmallError{Field: fi.Name, Needed: stride, Available: uint64(len(src)) - off}
		}
		if err := readElement(src[off:off+stride], fi.ArrayElem, v.Index(i)); err != nil {
			return err
		}
	}
	return nil
}

func writeRuntimeArray(dst []byte, fi FieldInfo, v reflect.Value, stride uint64) uint64 {
	n := v.Len()
	for i := 0; i < n; i++ {
		off := uint64(i) * stride
		elemSize, _ := writeElement(dst[off:], fi.ArrayElem, v.Index(i))
		if stride > elemSize {
			clear(dst[off+elemSize : off+stride])
		}
	}
	return uint64(n) * stride
}

// readRuntimeArray determines the element count from the bytes remaining
// in src — remaining // stride — and resizes the
// destination slice before filling it.
func readRuntimeArray(src []byte, fi FieldInfo, v reflect.Value, stride uint64) (uint64, error) {
	count := int(uint64(len(src)) / stride)
	out := reflect.MakeSlice(v.Type(), count, count)
	for i := 0; i < count; i++ {
		off := uint64(i) * stride
		if err := readElement(src[off:off+stride], fi.ArrayElem, out.Index(i)); err != nil {
			return 0, err
		}
	}
	v.Set(out)
	return uint64(count) * stride, nil
}

func writeArrayLength(dst []byte, info *StructInfo, structVal reflect.Value) {
	var count uint32
	if info.RuntimeIdx >= 0 {
		idx := info.Fields[info.RuntimeIdx].GoIndex
		count = uint32(structVal.Field(idx).Len())
	}
	binary.LittleEndian.PutUint32(dst, count)
}
