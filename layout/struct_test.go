package layout

import "testing"

func scalarType(k ScalarKind) Type {
	w := ScalarWidth(k)
	return Type{Align: w, Size: w, MinSize: w}
}

func vectorType(n int, k ScalarKind) Type {
	return Type{Align: VectorAlign(n, k), Size: VectorSize(n, k), MinSize: VectorSize(n, k)}
}

func TestSolveStorageVec3ThenScalar(t *testing.T) {
	fields := []FieldDesc{
		{Name: "a", Natural: vectorType(3, F32)},
		{Name: "b", Natural: scalarType(F32)},
	}
	got, err := Solve(fields, Storage)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if got.Align != 16 || got.Size != 16 {
		t.Errorf("got align=%d size=%d, want align=16 size=16", got.Align, got.Size)
	}
	if got.Fields[0].Offset != 0 || got.Fields[1].Offset != 12 {
		t.Errorf("offsets = %d, %d, want 0, 12", got.Fields[0].Offset, got.Fields[1].Offset)
	}
	if got.Pad[len(got.Pad)-1] != 0 {
		t.Errorf("trailing pad = %d, want 0", got.Pad[len(got.Pad)-1])
	}
}

func TestSolveUniformNestedStructFloor(t *testing.T) {
	inner, err := Solve([]FieldDesc{{Name: "x", Natural: scalarType(F32)}}, Uniform)
	if err != nil {
		t.Fatalf("Solve inner: %v", err)
	}
	// inner holds a lone f32 field; solved in the uniform space its align is
	// already raised to 16, so the nested field lands on a 16-byte boundary.
	fields := []FieldDesc{
		{Name: "lead", Natural: scalarType(U32)},
		{Name: "nested", Natural: inner},
	}
	got, err := Solve(fields, Uniform)
	if err != nil {
		t.Fatalf("Solve outer: %v", err)
	}
	if got.Fields[1].Offset != 16 {
		t.Errorf("nested struct field offset = %d, want 16 (raised to the uniform 16-byte floor)", got.Fields[1].Offset)
	}
	if got.Align != 16 {
		t.Errorf("outer align = %d, want 16", got.Align)
	}
}

func TestSolveRuntimeTerminalField(t *testing.T) {
	fields := []FieldDesc{
		{Name: "count", Natural: scalarType(U32)},
		{Name: "data", Natural: RuntimeArrayLayout(scalarType(F32)), Runtime: true},
	}
	got, err := Solve(fields, Storage)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if !got.RuntimeSized {
		t.Error("expected RuntimeSized = true")
	}
	if got.Size != 0 {
		t.Errorf("Size = %d, want 0", got.Size)
	}
	if got.MinSize != 4 {
		t.Errorf("MinSize = %d, want 4", got.MinSize)
	}
	if !got.Fields[1].Runtime {
		t.Error("terminal field should be marked Runtime")
	}
}

func TestSolveRuntimeFieldNotLast(t *testing.T) {
	fields := []FieldDesc{
		{Name: "data", Natural: RuntimeArrayLayout(scalarType(F32)), Runtime: true},
		{Name: "count", Natural: scalarType(U32)},
	}
	_, err := Solve(fields, Storage)
	if err == nil {
		t.Fatal("expected RuntimeFieldNotLastError, got nil")
	}
	if _, ok := err.(*RuntimeFieldNotLastError); !ok {
		t.Errorf("got %T, want *RuntimeFieldNotLastError", err)
	}
}

func TestSolveAlignOverrideConflicts(t *testing.T) {
	bad := uint64(3)
	fields := []FieldDesc{{Name: "a", Natural: scalarType(F32), AlignOverride: &bad}}
	if _, err := Solve(fields, Storage); err == nil {
		t.Fatal("expected LayoutConflictError for non-power-of-two align override")
	}

	weak := uint64(2)
	fields = []FieldDesc{{Name: "a", Natural: scalarType(F32), AlignOverride: &weak}}
	if _, err := Solve(fields, Storage); err == nil {
		t.Fatal("expected LayoutConflictError for align override weaker than natural alignment")
	}
}

func TestSolveSizeOverrideConflict(t *testing.T) {
	small := uint64(2)
	fields := []FieldDesc{{Name: "a", Natural: scalarType(F32), SizeOverride: &small}}
	if _, err := Solve(fields, Storage); err == nil {
		t.Fatal("expected LayoutConflictError for size override smaller than natural size")
	}
}

func TestSolveSizeOverrideWidensFollowingOffset(t *testing.T) {
	big := uint64(16)
	fields := []FieldDesc{
		{Name: "a", Natural: scalarType(F32), SizeOverride: &big},
		{Name: "b", Natural: scalarType(F32)},
	}
	got, err := Solve(fields, Storage)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if got.Fields[1].Offset != 16 {
		t.Errorf("b offset = %d, want 16", got.Fields[1].Offset)
	}
}
