package gputypes

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-layout/layout"
)

type vecProbe struct {
	V Vec3F32
}

func TestVec3LeafAlignment(t *testing.T) {
	info, err := Describe[vecProbe](layout.Storage)
	if err != nil {
		t.Fatalf("Describe: %v", err)
	}
	f := info.Type.Fields[0]
	if f.Type.Align != 16 {
		t.Errorf("vec3<f32> align = %d, want 16", f.Type.Align)
	}
	if f.Type.Size != 12 {
		t.Errorf("vec3<f32> size = %d, want 12", f.Type.Size)
	}
}

func TestVectorComponentRoundTrip(t *testing.T) {
	info, err := Describe[vecProbe](layout.Storage)
	if err != nil {
		t.Fatalf("Describe: %v", err)
	}
	in := vecProbe{V: Vec3F32{1.5, -2.5, 3.0}}
	buf := make([]byte, info.Type.Size)
	if _, err := WriteStruct(buf, info, in); err != nil {
		t.Fatalf("WriteStruct: %v", err)
	}
	out, err := CreateStruct[vecProbe](buf, info)
	if err != nil {
		t.Fatalf("CreateStruct: %v", err)
	}
	if out != in {
		t.Errorf("got %+v, want %+v", out, in)
	}
}
