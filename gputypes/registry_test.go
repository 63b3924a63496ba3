package gputypes

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-layout/layout"
)

type affine2D struct {
	Matrix Mat2x2F32
	Offset Vec2F32
}

func TestDescribeDeduplicatesByTypeAndSpace(t *testing.T) {
	a, err := Describe[affine2D](layout.Storage)
	if err != nil {
		t.Fatalf("Describe: %v", err)
	}
	b, err := Describe[affine2D](layout.Storage)
	if err != nil {
		t.Fatalf("Describe: %v", err)
	}
	if a != b {
		t.Error("expected the same cached *StructInfo for repeated Describe calls with the same type and space")
	}

	c, err := Describe[affine2D](layout.Uniform)
	if err != nil {
		t.Fatalf("Describe uniform: %v", err)
	}
	if c == a {
		t.Error("expected a distinct *StructInfo for a different address space")
	}
}

func TestDescribeAffine2D(t *testing.T) {
	// mat2x2<f32> (align 8, size 16) followed by vec2<f32> (align 8, size
	// 8): the vector needs no extra alignment, so it sits directly after
	// the matrix with no padding. Struct size is 24, align 8.
	info, err := Describe[affine2D](layout.Storage)
	if err != nil {
		t.Fatalf("Describe: %v", err)
	}
	if info.Type.Align != 8 || info.Type.Size != 24 {
		t.Errorf("got align=%d size=%d, want align=8 size=24", info.Type.Align, info.Type.Size)
	}
	if info.Type.Fields[1].Offset != 16 {
		t.Errorf("Offset field offset = %d, want 16", info.Type.Fields[1].Offset)
	}
}

type vec3Padded struct {
	Position Vec3F32
	Radius   F32
}

func TestDescribeVec3Padding(t *testing.T) {
	info, err := Describe[vec3Padded](layout.Storage)
	if err != nil {
		t.Fatalf("Describe: %v", err)
	}
	// vec3<f32> aligns and is followed immediately (no gap, since Radius's
	// alignment of 4 is already satisfied at offset 12) by a scalar.
	if info.Type.Fields[1].Offset != 12 {
		t.Errorf("Radius offset = %d, want 12", info.Type.Fields[1].Offset)
	}
	if info.Type.Size != 16 {
		t.Errorf("struct size = %d, want 16", info.Type.Size)
	}
}

type withOverrides struct {
	A F32 `wgsl:"size=16"`
	B F32 `wgsl:"align=16"`
}

func TestDescribeFieldOverrides(t *testing.T) {
	info, err := Describe[withOverrides](layout.Storage)
	if err != nil {
		t.Fatalf("Describe: %v", err)
	}
	if info.Type.Fields[1].Offset != 16 {
		t.Errorf("B offset = %d, want 16 (A's size override pushed it, reinforced by B's own align override)", info.Type.Fields[1].Offset)
	}
}

type runtimeTail struct {
	Length ArrayLength
	Points []Vec2F32 `wgsl:"runtime"`
}

func TestDescribeRuntimeTailWithArrayLength(t *testing.T) {
	info, err := Describe[runtimeTail](layout.Storage)
	if err != nil {
		t.Fatalf("Describe: %v", err)
	}
	if !info.Type.RuntimeSized {
		t.Error("expected RuntimeSized = true")
	}
	if info.RuntimeIdx != 1 {
		t.Errorf("RuntimeIdx = %d, want 1", info.RuntimeIdx)
	}
	// vec2<f32> aligns to 8, so Points starts at offset 8, not 4.
	if info.Type.Fields[1].Offset != 8 {
		t.Errorf("Points offset = %d, want 8", info.Type.Fields[1].Offset)
	}
}

func TestDescribeRejectsUnregisteredType(t *testing.T) {
	type bad struct {
		S string
	}
	if _, err := Describe[bad](layout.Storage); err == nil {
		t.Fatal("expected an error describing a struct with an unsupported field kind")
	}
}

func TestDescribeRejectsSliceWithoutRuntimeTag(t *testing.T) {
	type bad struct {
		Points []Vec2F32
	}
	if _, err := Describe[bad](layout.Storage); err == nil {
		t.Fatal("expected an error describing a slice field missing the wgsl:\"runtime\" tag")
	}
}
