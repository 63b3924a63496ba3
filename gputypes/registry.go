package gputypes

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/Carmen-Shannon/oxy-layout/layout"
)

// leafKind distinguishes the handful of Go types this package registers by
// identity rather than by reflected shape: scalars, vectors, matrices, and
// the array-length marker. Everything else is either a nested struct
// (recursively described) or a fixed/runtime array of one of these.
type leafKind int

const (
	leafScalar leafKind = iota
	leafVector
	leafMatrix
	leafArrayLength
)

type leafDesc struct {
	kind   leafKind
	scalar layout.ScalarKind
	n      int // vector component count
	cols   int // matrix column count
	rows   int // matrix row (column-vector) count
}

var leafTypes map[reflect.Type]leafDesc

func init() {
	leafTypes = map[reflect.Type]leafDesc{
		reflect.TypeOf(F32(0)): {kind: leafScalar, scalar: layout.F32},
		reflect.TypeOf(I32(0)): {kind: leafScalar, scalar: layout.I32},
		reflect.TypeOf(U32(0)): {kind: leafScalar, scalar: layout.U32},
		reflect.TypeOf(F16(0)): {kind: leafScalar, scalar: layout.F16},

		reflect.TypeOf(Vec2F32{}): {kind: leafVector, scalar: layout.F32, n: 2},
		reflect.TypeOf(Vec3F32{}): {kind: leafVector, scalar: layout.F32, n: 3},
		reflect.TypeOf(Vec4F32{}): {kind: leafVector, scalar: layout.F32, n: 4},
		reflect.TypeOf(Vec2I32{}): {kind: leafVector, scalar: layout.I32, n: 2},
		reflect.TypeOf(Vec3I32{}): {kind: leafVector, scalar: layout.I32, n: 3},
		reflect.TypeOf(Vec4I32{}): {kind: leafVector, scalar: layout.I32, n: 4},
		reflect.TypeOf(Vec2U32{}): {kind: leafVector, scalar: layout.U32, n: 2},
		reflect.TypeOf(Vec3U32{}): {kind: leafVector, scalar: layout.U32, n: 3},
		reflect.TypeOf(Vec4U32{}): {kind: leafVector, scalar: layout.U32, n: 4},

		reflect.TypeOf(Mat2x2F32{}): {kind: leafMatrix, scalar: layout.F32, cols: 2, rows: 2},
		reflect.TypeOf(Mat2x3F32{}): {kind: leafMatrix, scalar: layout.F32, cols: 2, rows: 3},
		reflect.TypeOf(Mat2x4F32{}): {kind: leafMatrix, scalar: layout.F32, cols: 2, rows: 4},
		reflect.TypeOf(Mat3x2F32{}): {kind: leafMatrix, scalar: layout.F32, cols: 3, rows: 2},
		reflect.TypeOf(Mat3x3F32{}): {kind: leafMatrix, scalar: layout.F32, cols: 3, rows: 3},
		reflect.TypeOf(Mat3x4F32{}): {kind: leafMatrix, scalar: layout.F32, cols: 3, rows: 4},
		reflect.TypeOf(Mat4x2F32{}): {kind: leafMatrix, scalar: layout.F32, cols: 4, rows: 2},
		reflect.TypeOf(Mat4x3F32{}): {kind: leafMatrix, scalar: layout.F32, cols: 4, rows: 3},
		reflect.TypeOf(Mat4x4F32{}): {kind: leafMatrix, scalar: layout.F32, cols: 4, rows: 4},

		reflect.TypeOf(ArrayLength{}): {kind: leafArrayLength},
	}
}

func leafLayout(d leafDesc) layout.Type {
	switch d.kind {
	case leafScalar:
		w := layout.ScalarWidth(d.scalar)
		return layout.Type{Align: w, Size: w, MinSize: w}
	case leafVector:
		size := layout.VectorSize(d.n, d.scalar)
		return layout.Type{Align: layout.VectorAlign(d.n, d.scalar), Size: size, MinSize: size}
	case leafMatrix:
		return layout.MatrixLayout(d.cols, d.rows, d.scalar)
	case leafArrayLength:
		return layout.Type{Align: 4, Size: 4, MinSize: 4}
	default:
		panic("gputypes: unreachable leaf kind")
	}
}

// fieldKind classifies a described struct field by the shape traversal
// needs to walk it, independent of its WGSL role.
type fieldKind int

const (
	fieldLeaf fieldKind = iota
	fieldStruct
	fieldFixedArray
	fieldRuntimeSlice
)

// elementDesc describes a fixed or runtime array's element type: either one
// of the registered leaves or a nested struct.
type elementDesc struct {
	isStruct bool
	leaf     leafDesc
	sub      *StructInfo
	goType   reflect.Type
}

func (e elementDesc) layoutType() layout.Type {
	if e.isStruct {
		return e.sub.Type
	}
	return leafLayout(e.leaf)
}

// FieldInfo pairs one solved layout.Field with the reflection shape
// traversal needs to read or write the corresponding Go struct field.
type FieldInfo struct {
	Name      string
	GoIndex   int
	Kind      fieldKind
	Leaf      leafDesc    // valid when Kind == fieldLeaf
	Elem      *StructInfo // valid when Kind == fieldStruct
	ArrayElem elementDesc // valid when Kind is fieldFixedArray or fieldRuntimeSlice
	ArrayLen  int         // Go array length; valid when Kind == fieldFixedArray
}

// StructInfo is the memoized, reflection-aware counterpart to layout.Type:
// everything the traversal engine needs to walk a Go struct value field by
// field in lockstep with its solved layout.
type StructInfo struct {
	GoType     reflect.Type
	Type       layout.Type
	Fields     []FieldInfo
	RuntimeIdx int // index into Fields of the terminal runtime slice, or -1
}

type cacheKey struct {
	t     reflect.Type
	space layout.AddressSpace
}

// structCache memoizes one StructInfo per (reflect.Type, AddressSpace)
// pair, the same dedup discipline ir.TypeRegistry.GetOrCreate applies to
// derived shader-side type metadata: layout is computed once per shape and
// shared thereafter, keyed here by Go type identity instead of a
// structural key since reflect.Type is itself already a canonical handle.
var structCache sync.Map

// Describe derives (or returns the cached) StructInfo for T in the given
// address space. T must be a struct type.
func Describe[T any](space layout.AddressSpace) (*StructInfo, error) {
	var zero T
	return DescribeType(reflect.TypeOf(zero), space)
}

// DescribeType is Describe without a compile-time type parameter, for
// callers (such as nested-struct and array-element resolution) that only
// have a reflect.Type in hand.
func DescribeType(t reflect.Type, space layout.AddressSpace) (*StructInfo, error) {
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("gputypes: %s is not a struct", t)
	}
	key := cacheKey{t: t, space: space}
	if v, ok := structCache.Load(key); ok {
		return v.(*StructInfo), nil
	}
	info, err := describeStruct(t, space)
	if err != nil {
		return nil, err
	}
	actual, _ := structCache.LoadOrStore(key, info)
	return actual.(*StructInfo), nil
}

func describeStruct(t reflect.Type, space layout.AddressSpace) (*StructInfo, error) {
	n := t.NumField()
	descs := make([]layout.FieldDesc, 0, n)
	fields := make([]FieldInfo, 0, n)

	for i := 0; i < n; i++ {
		sf := t.Field(i)
		if sf.PkgPath != "" && !sf.Anonymous {
			continue
		}

		tag, err := parseTag(sf.Tag.Get("wgsl"))
		if err != nil {
			return nil, fmt.Errorf("gputypes: field %s: %w", sf.Name, err)
		}

		fi := FieldInfo{Name: sf.Name, GoIndex: i}
		var natural layout.Type

		leaf, isLeaf := leafTypes[sf.Type]

		switch {
		case isLeaf:
			// A registered leaf (scalar/vector/matrix/ArrayLength) is
			// matched by exact Go type before falling back to its
			// reflect.Kind — vectors and matrices are themselves named
			// array types, which would otherwise be mistaken for a bare
			// fixed array of their element type.
			fi.Kind = fieldLeaf
			fi.Leaf = leaf
			natural = leafLayout(leaf)

		case sf.Type.Kind() == reflect.Struct:
			sub, err := DescribeType(sf.Type, space)
			if err != nil {
				return nil, fmt.Errorf("gputypes: field %s: %w", sf.Name, err)
			}
			if sub.Type.RuntimeSized {
				return nil, fmt.Errorf("gputypes: field %s: a struct with a runtime-sized tail may only be a buffer's top-level type, not nested as a field", sf.Name)
			}
			fi.Kind = fieldStruct
			fi.Elem = sub
			natural = sub.Type

		case sf.Type.Kind() == reflect.Array:
			elem, err := describeElement(sf.Type.Elem(), space)
			if err != nil {
				return nil, fmt.Errorf("gputypes: field %s: %w", sf.Name, err)
			}
			fi.Kind = fieldFixedArray
			fi.ArrayElem = elem
			fi.ArrayLen = sf.Type.Len()
			natural = layout.FixedArrayLayout(elem.layoutType(), uint64(sf.Type.Len()), space)

		case sf.Type.Kind() == reflect.Slice:
			if !tag.runtime {
				return nil, fmt.Errorf(`gputypes: field %s: slice fields must carry the wgsl:"runtime" tag`, sf.Name)
			}
			elem, err := describeElement(sf.Type.Elem(), space)
			if err != nil {
				return nil, fmt.Errorf("gputypes: field %s: %w", sf.Name, err)
			}
			fi.Kind = fieldRuntimeSlice
			fi.ArrayElem = elem
			natural = layout.RuntimeArrayLayout(elem.layoutType())

		default:
			return nil, fmt.Errorf("gputypes: field %s has unsupported kind %s", sf.Name, sf.Type.Kind())
		}

		if tag.runtime && fi.Kind != fieldRuntimeSlice {
			return nil, fmt.Errorf(`gputypes: field %s: wgsl:"runtime" only applies to slice fields`, sf.Name)
		}

		descs = append(descs, layout.FieldDesc{
			Name:          sf.Name,
			Natural:       natural,
			AlignOverride: tag.align,
			SizeOverride:  tag.size,
			Runtime:       fi.Kind == fieldRuntimeSlice,
		})
		fields = append(fields, fi)
	}

	solved, err := layout.Solve(descs, space)
	if err != nil {
		return nil, fmt.Errorf("gputypes: %s: %w", t, err)
	}

	runtimeIdx := -1
	for i, fi := range fields {
		if fi.Kind == fieldRuntimeSlice {
			runtimeIdx = i
		}
	}

	return &StructInfo{GoType: t, Type: solved, Fields: fields, RuntimeIdx: runtimeIdx}, nil
}

func describeElement(t reflect.Type, space layout.AddressSpace) (elementDesc, error) {
	if d, ok := leafTypes[t]; ok {
		return elementDesc{leaf: d, goType: t}, nil
	}
	if t.Kind() == reflect.Struct {
		sub, err := DescribeType(t, space)
		if err != nil {
			return elementDesc{}, err
		}
		if sub.Type.RuntimeSized {
			return elementDesc{}, fmt.Errorf("array/slice element type %s must not itself have a runtime-sized tail", t)
		}
		return elementDesc{isStruct: true, sub: sub, goType: t}, nil
	}
	return elementDesc{}, fmt.Errorf("array/slice element type %s is not a registered leaf or struct type", t)
}

type fieldTag struct {
	align   *uint64
	size    *uint64
	runtime bool
}

// parseTag reads a `wgsl:"..."` struct tag: a comma-separated list of
// align=N, size=N, and runtime terms.
func parseTag(raw string) (fieldTag, error) {
	var out fieldTag
	if raw == "" {
		return out, nil
	}
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if part == "runtime" {
			out.runtime = true
			continue
		}
		name, val, ok := strings.Cut(part, "=")
		if !ok {
			return out, fmt.Errorf("malformed wgsl tag term %q", part)
		}
		n, err := strconv.ParseUint(val, 10, 64)
		if err != nil {
			return out, fmt.Errorf("wgsl tag term %q: %w", part, err)
		}
		switch name {
		case "align":
			out.align = &n
		case "size":
			out.size = &n
		default:
			return out, fmt.Errorf("unknown wgsl tag term %q", part)
		}
	}
	return out, nil
}
