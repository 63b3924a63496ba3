package layout

// FixedArrayLayout derives the layout of a length-N array of elem. The
// array's stride is round_up(elem.Align, elem.Size); its own alignment is
// elem.Align; its total size is stride*length. In the uniform address
// space the stride (and therefore the alignment, since the stride can
// never be smaller than the alignment) is additionally rounded up to a
// multiple of 16.
func FixedArrayLayout(elem Type, length uint64, space AddressSpace) Type {
	stride := RoundUp(elem.Align, effectiveElemSize(elem))
	align := elem.Align
	if space == Uniform {
		stride = RoundUp(UniformMinAlign, stride)
		if align < UniformMinAlign {
			align = UniformMinAlign
		}
	}
	size := stride * length
	return Type{
		Align:   align,
		Size:    size,
		MinSize: size,
		Stride:  stride,
	}
}

// RuntimeArrayLayout derives the layout of a runtime-sized array of elem.
// Its Size is unknown until a value is traversed (RuntimeSized is set);
// MinSize reports one element's stride, the minimum contribution the
// array makes when sized as an empty tail. Runtime arrays are only valid
// in the storage address space; callers are responsible for rejecting
// Uniform here. Solve does not check the address space of a runtime
// field; the uniform buffer wrappers reject any runtime-sized top-level
// type, and gputypes refuses to nest a runtime-sized struct as a field.
func RuntimeArrayLayout(elem Type) Type {
	stride := RoundUp(elem.Align, effectiveElemSize(elem))
	return Type{
		Align:        elem.Align,
		Size:         0,
		MinSize:      stride,
		Stride:       stride,
		RuntimeSized: true,
	}
}

// effectiveElemSize returns the size an array element contributes to its
// own stride computation: its MinSize, which equals Size for every fixed
// element type and collapses to one nested stride for a (disallowed as a
// non-terminal field, but still arithmetically defined) nested runtime
// element.
func effectiveElemSize(elem Type) uint64 {
	if elem.RuntimeSized {
		return elem.MinSize
	}
	return elem.Size
}

// MatrixLayout derives the layout of a C-column, R-row matrix of scalar,
// modeled as an array of C column vectors of length R. The column stride
// equals the column vector's alignment, so an R=3 matrix carries a per-column
// gap exactly like a 3-vector followed by another field. Matrix layout
// does not change between address spaces: a mat's own alignment already
// meets or exceeds the 16-byte uniform floor once R ∈ {3,4}, and for
// R=2 WGSL still reports align 8 regardless of address space.
func MatrixLayout(cols, rows int, scalar ScalarKind) Type {
	colAlign := VectorAlign(rows, scalar)
	colSize := VectorSize(rows, scalar)
	stride := RoundUp(colAlign, colSize)
	size := stride * uint64(cols)
	return Type{
		Align:   colAlign,
		Size:    size,
		MinSize: size,
		Stride:  stride,
	}
}
