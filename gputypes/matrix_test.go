package gputypes

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-layout/layout"
)

type matProbe struct {
	M Mat4x4F32
}

func TestMat4x4LeafLayout(t *testing.T) {
	info, err := Describe[matProbe](layout.Storage)
	if err != nil {
		t.Fatalf("Describe: %v", err)
	}
	f := info.Type.Fields[0]
	if f.Type.Align != 16 || f.Type.Size != 64 || f.Type.Stride != 16 {
		t.Errorf("mat4x4<f32> = %+v, want align=16 size=64 stride=16", f.Type)
	}
}

func identity4() Mat4x4F32 {
	return Mat4x4F32{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

func TestMatrixRoundTrip(t *testing.T) {
	info, err := Describe[matProbe](layout.Storage)
	if err != nil {
		t.Fatalf("Describe: %v", err)
	}
	in := matProbe{M: identity4()}
	buf := make([]byte, info.Type.Size)
	if _, err := WriteStruct(buf, info, in); err != nil {
		t.Fatalf("WriteStruct: %v", err)
	}
	out, err := CreateStruct[matProbe](buf, info)
	if err != nil {
		t.Fatalf("CreateStruct: %v", err)
	}
	if out != in {
		t.Errorf("got %+v, want %+v", out, in)
	}
}
