package layout

// Solve derives a struct's Type from its ordered field list:
// each field's effective alignment is the max of its natural alignment and
// any override; its offset is the cursor aligned up to that; its effective
// size is the natural size or a (validated, larger) override; the cursor
// then advances past it. The struct's own alignment is the max of every
// field's effective alignment, raised to at least 16 in the uniform
// address space; its size is the final cursor rounded up to that
// alignment, or left open (RuntimeSized) if the terminal field is
// runtime-sized.
//
// Solve fails with *LayoutConflictError if an override is inconsistent
// with a field's natural layout, and with *RuntimeFieldNotLastError if a
// runtime field is not the last in fields.
func Solve(fields []FieldDesc, space AddressSpace) (Type, error) {
	var cursor uint64
	var structAlign uint64 = 1
	solved := make([]Field, 0, len(fields))
	pad := make([]uint64, 0, len(fields)+1)

	for i, f := range fields {
		if f.Runtime && i != len(fields)-1 {
			return Type{}, &RuntimeFieldNotLastError{Field: f.Name}
		}

		effAlign := f.Natural.Align
		if len(f.Natural.Fields) > 0 && space == Uniform && effAlign < UniformMinAlign {
			// A struct-typed field is raised to at least 16 in the
			// uniform address space, independent of any user override.
			effAlign = UniformMinAlign
		}
		if f.AlignOverride != nil {
			if !IsPowerOfTwo(*f.AlignOverride) {
				return Type{}, &LayoutConflictError{Field: f.Name, Reason: "align override is not a power of two"}
			}
			if *f.AlignOverride < f.Natural.Align {
				return Type{}, &LayoutConflictError{Field: f.Name, Reason: "align override is weaker than the field's natural alignment"}
			}
			if *f.AlignOverride > effAlign {
				effAlign = *f.AlignOverride
			}
		}

		offset := AlignUp(cursor, effAlign)
		if offset > cursor {
			pad = append(pad, offset-cursor)
		} else {
			pad = append(pad, 0)
		}

		if f.Runtime {
			solved = append(solved, Field{
				Name:        f.Name,
				Offset:      offset,
				Type:        f.Natural,
				WrittenSize: 0,
				Runtime:     true,
			})
			if effAlign > structAlign {
				structAlign = effAlign
			}
			cursor = offset
			if space == Uniform && structAlign < UniformMinAlign {
				structAlign = UniformMinAlign
			}
			return Type{
				Align:        structAlign,
				Size:         0,
				MinSize:      AlignUp(cursor, structAlign),
				RuntimeSized: true,
				Fields:       solved,
				Pad:          append(pad, 0),
			}, nil
		}

		effSize := f.Natural.Size
		if f.SizeOverride != nil {
			if *f.SizeOverride < f.Natural.Size {
				return Type{}, &LayoutConflictError{Field: f.Name, Reason: "size override is smaller than the field's natural size"}
			}
			effSize = *f.SizeOverride
		}

		solved = append(solved, Field{
			Name:        f.Name,
			Offset:      offset,
			Type:        f.Natural,
			WrittenSize: effSize,
		})

		cursor = offset + effSize
		if effAlign > structAlign {
			structAlign = effAlign
		}
	}

	if space == Uniform && structAlign < UniformMinAlign {
		structAlign = UniformMinAlign
	}

	total := AlignUp(cursor, structAlign)
	pad = append(pad, total-cursor)

	return Type{
		Align:   structAlign,
		Size:    total,
		MinSize: total,
		Fields:  solved,
		Pad:     pad,
	}, nil
}
