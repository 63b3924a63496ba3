package layout

import "testing"

func TestAlignUp(t *testing.T) {
	cases := []struct {
		offset, align, want uint64
	}{
		{0, 16, 0},
		{1, 16, 16},
		{16, 16, 16},
		{17, 16, 32},
		{4, 8, 8},
		{5, 4, 8},
	}
	for _, c := range cases {
		if got := AlignUp(c.offset, c.align); got != c.want {
			t.Errorf("AlignUp(%d, %d) = %d, want %d", c.offset, c.align, got, c.want)
		}
	}
}

func TestIsPowerOfTwo(t *testing.T) {
	yes := []uint64{1, 2, 4, 8, 16, 256}
	no := []uint64{0, 3, 5, 6, 12, 100}
	for _, n := range yes {
		if !IsPowerOfTwo(n) {
			t.Errorf("IsPowerOfTwo(%d) = false, want true", n)
		}
	}
	for _, n := range no {
		if IsPowerOfTwo(n) {
			t.Errorf("IsPowerOfTwo(%d) = true, want false", n)
		}
	}
}

func TestVectorAlignAndSize(t *testing.T) {
	cases := []struct {
		n          int
		scalar     ScalarKind
		wantAlign  uint64
		wantSize   uint64
	}{
		{2, F32, 8, 8},
		{3, F32, 16, 12},
		{4, F32, 16, 16},
		{2, F16, 4, 4},
		{3, F16, 8, 6},
		{4, F16, 8, 8},
	}
	for _, c := range cases {
		if got := VectorAlign(c.n, c.scalar); got != c.wantAlign {
			t.Errorf("VectorAlign(%d, %v) align = %d, want %d", c.n, c.scalar, got, c.wantAlign)
		}
		if got := VectorSize(c.n, c.scalar); got != c.wantSize {
			t.Errorf("VectorSize(%d, %v) size = %d, want %d", c.n, c.scalar, got, c.wantSize)
		}
	}
}
