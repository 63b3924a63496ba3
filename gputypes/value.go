package gputypes

import (
	"fmt"
	"reflect"

	"github.com/Carmen-Shannon/oxy-layout/layout"
)

// valueKind classifies a top-level described value by shape, the same way
// fieldKind does for a struct field — a bare buffer value need not be a
// struct at all: callers may write a lone vec2<i32> or a
// fixed array directly.
type valueKind int

const (
	valueStruct valueKind = iota
	valueLeaf
	valueFixedArray
	valueRuntimeSlice
)

// ValueInfo is the top-level counterpart to FieldInfo/StructInfo: the
// description of whatever type a caller hands a buffer wrapper, struct or
// not.
type ValueInfo struct {
	GoType   reflect.Type
	Type     layout.Type
	Kind     valueKind
	Struct   *StructInfo // valid when Kind == valueStruct
	Leaf     leafDesc    // valid when Kind == valueLeaf
	Elem     elementDesc // valid when Kind is valueFixedArray or valueRuntimeSlice
	ArrayLen int         // valid when Kind == valueFixedArray
}

// DescribeValue derives a ValueInfo for T in the given address space. A
// struct T reuses the cached StructInfo from DescribeType; the ValueInfo
// itself is built anew on every call.
func DescribeValue[T any](space layout.AddressSpace) (*ValueInfo, error) {
	var zero T
	return describeValue(reflect.TypeOf(zero), space)
}

func describeValue(t reflect.Type, space layout.AddressSpace) (*ValueInfo, error) {
	if d, ok := leafTypes[t]; ok {
		return &ValueInfo{GoType: t, Type: leafLayout(d), Kind: valueLeaf, Leaf: d}, nil
	}

	switch t.Kind() {
	case reflect.Struct:
		s, err := DescribeType(t, space)
		if err != nil {
			return nil, err
		}
		return &ValueInfo{GoType: t, Type: s.Type, Kind: valueStruct, Struct: s}, nil

	case reflect.Array:
		elem, err := describeElement(t.Elem(), space)
		if err != nil {
			return nil, err
		}
		ft := layout.FixedArrayLayout(elem.layoutType(), uint64(t.Len()), space)
		return &ValueInfo{GoType: t, Type: ft, Kind: valueFixedArray, Elem: elem, ArrayLen: t.Len()}, nil

	case reflect.Slice:
		if space == layout.Uniform {
			return nil, fmt.Errorf("gputypes: a runtime-sized array is never permitted in the uniform address space")
		}
		elem, err := describeElement(t.Elem(), space)
		if err != nil {
			return nil, err
		}
		return &ValueInfo{GoType: t, Type: layout.RuntimeArrayLayout(elem.layoutType()), Kind: valueRuntimeSlice, Elem: elem}, nil

	default:
		return nil, fmt.Errorf("gputypes: %s is not a host-shareable top-level type", t)
	}
}

// WriteValue serializes value into dst starting at byte offset 0.
func WriteValue[T any](dst []byte, info *ValueInfo, value T) (uint64, error) {
	v := reflect.ValueOf(value)
	if v.Type() != info.GoType {
		return 0, fmt.Errorf("gputypes: value type %s does not match described type %s", v.Type(), info.GoType)
	}
	return writeValue(dst, info, v)
}

// ReadValue deserializes src into *dst.
func ReadValue[T any](src []byte, info *ValueInfo, dst *T) error {
	v := reflect.ValueOf(dst).Elem()
	if v.Type() != info.GoType {
		return fmt.Errorf("gputypes: destination type %s does not match described type %s", v.Type(), info.GoType)
	}
	_, err := readValue(src, info, v)
	return err
}

// CreateValue constructs a fresh T from src.
func CreateValue[T any](src []byte, info *ValueInfo) (T, error) {
	var value T
	err := ReadValue(src, info, &value)
	return value, err
}

func writeValue(dst []byte, info *ValueInfo, v reflect.Value) (uint64, error) {
	switch info.Kind {
	case valueStruct:
		return writeStruct(dst, info.Struct, v)
	case valueLeaf:
		writeLeaf(dst, info.Leaf, v)
		return info.Type.Size, nil
	case valueFixedArray:
		fi := FieldInfo{ArrayElem: info.Elem, ArrayLen: info.ArrayLen}
		if err := writeFixedArray(dst, fi, v, info.Type.Stride); err != nil {
			return 0, err
		}
		return info.Type.Size, nil
	case valueRuntimeSlice:
		fi := FieldInfo{ArrayElem: info.Elem}
		return writeRuntimeArray(dst, fi, v, info.Type.Stride), nil
	default:
		panic("gputypes: unreachable value kind")
	}
}

func readValue(src []byte, info *ValueInfo, v reflect.Value) (uint64, error) {
	switch info.Kind {
	case valueStruct:
		return readStruct(src, info.Struct, v)
	case valueLeaf:
		if err := readLeaf(src, info.Leaf, v); err != nil {
			return 0, err
		}
		return info.Type.Size, nil
	case valueFixedArray:
		fi := FieldInfo{ArrayElem: info.Elem, ArrayLen: info.ArrayLen}
		if err := readFixedArray(src, fi, v, info.Type.Stride); err != nil {
			return 0, err
		}
		return info.Type.Size, nil
	case valueRuntimeSlice:
		fi := FieldInfo{ArrayElem: info.Elem}
		return readRuntimeArray(src, fi, v, info.Type.Stride)
	default:
		panic("gputypes: unreachable value kind")
	}
}
