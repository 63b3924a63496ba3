package layout

// Type is the immutable metadata derived for a host-shareable type in a
// given address space. It is produced once (by the scalar/vector/matrix
// rules in primitives.go, by FixedArrayLayout/RuntimeArrayLayout in
// array.go, or by Solve in struct.go) and is safe to share and cache by
// value across goroutines: nothing here changes after derivation.
type Type struct {
	// Align is the type's alignment. Always a power of two.
	Align uint64

	// Size is the type's byte size when used as a standalone value. Zero
	// and meaningless when RuntimeSized is true; callers must ask the
	// traversal layer for the value's actual size instead, since a
	// runtime-sized type's size is only known once a value is traversed.
	Size uint64

	// MinSize is the size this type contributes when it appears as an
	// unsized field: equal to Size for fixed-size types, equal to one
	// array-element stride for a runtime array. For a runtime-sized
	// struct (only ever a buffer's top-level type, never itself nested
	// as a field — see struct.go's Solve) MinSize is the struct's size
	// up to but excluding its runtime tail.
	MinSize uint64

	// Stride is the element stride (arrays) or column stride (matrices).
	// Zero for scalar, vector, and struct types, where it has no meaning.
	Stride uint64

	// RuntimeSized is true for a runtime array, or for a struct whose
	// terminal field is marked Runtime. Solve does not propagate it from a
	// field whose Natural type is runtime-sized but which is not so marked.
	RuntimeSized bool

	// Fields is non-nil only for struct types: the solved, ordered field
	// layout. Leaf types (scalar/vector/matrix/array) leave this nil.
	Fields []Field

	// Pad holds the struct's padding schedule: Pad[i] is the number of
	// zero bytes between Fields[i-1]'s end and Fields[i]'s offset, with
	// Pad[0] being the gap before the first field (always 0 in practice,
	// since the first field's offset is always 0) and the final entry
	// being the struct's trailing pad to reach Size. len(Pad) ==
	// len(Fields)+1. Nil for non-struct types.
	Pad []uint64
}

// Field is one solved entry in a struct's layout: a field's absolute
// offset within the struct, its own (possibly address-space-projected)
// Type, and the effective size the solver advanced the cursor by (which
// may exceed Type.Size when the field carries a user size override).
type Field struct {
	// Name identifies the field for diagnostics; traversal correlates a
	// Field back to a host value by position, not by Name.
	Name string

	// Offset is the field's byte offset within the enclosing struct.
	Offset uint64

	// Type is the field's own derived layout.
	Type Type

	// WrittenSize is the number of bytes the solver reserved for this
	// field: Type.Size unless a user size override raised it.
	WrittenSize uint64

	// Runtime is true if this field is the struct's terminal
	// runtime-sized array.
	Runtime bool
}

// FieldDesc is the solver's input shape for one struct field: the field's
// natural (undecorated) layout plus whatever optional annotations the
// declaration layer attached (align/size overrides, size(runtime)).
type FieldDesc struct {
	// Name identifies the field for diagnostics.
	Name string

	// Natural is the field's type metadata before any override is applied.
	Natural Type

	// AlignOverride, if non-nil, raises the field's alignment. Must be a
	// power of two and >= Natural.Align, or Solve fails with
	// LayoutConflict.
	AlignOverride *uint64

	// SizeOverride, if non-nil, raises the field's written size. Must be
	// >= Natural.Size, or Solve fails with LayoutConflict. Solve ignores a
	// size override on a runtime field.
	SizeOverride *uint64

	// Runtime marks this field as the struct's size(runtime) array. Only
	// the last FieldDesc in a Solve call may set this.
	Runtime bool
}
