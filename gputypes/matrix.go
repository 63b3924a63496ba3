package gputypes

// Matrix types are named matCxR per WGSL convention: C columns, each an
// R-component column vector. They are represented as [C]VecR, an array of
// column vectors, matching a matrix's shape as an array of C
// column vectors of length R (layout.MatrixLayout) — but registered as a
// distinct leaf kind rather than inferred from that shape, because a
// matrix's column stride does not receive the uniform address space's
// 16-byte array-stride floor the way a genuine array<vecR<f32>, C> does.
type Mat2x2F32 [2]Vec2F32
type Mat2x3F32 [2]Vec3F32
type Mat2x4F32 [2]Vec4F32
type Mat3x2F32 [3]Vec2F32
type Mat3x3F32 [3]Vec3F32
type Mat3x4F32 [3]Vec4F32
type Mat4x2F32 [4]Vec2F32
type Mat4x3F32 [4]Vec3F32
type Mat4x4F32 [4]Vec4F32
