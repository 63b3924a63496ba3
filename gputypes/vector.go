package gputypes

// Vec2F32, Vec3F32, and Vec4F32 are WGSL vecN<f32> values. A Vec3F32 is laid
// out with align 16 like vec4<f32>, since a 3-vector aligns as if it had
// a fourth component, but occupies only 12 bytes; the trailing 4 bytes only
// become padding when another field follows.
type Vec2F32 [2]float32
type Vec3F32 [3]float32
type Vec4F32 [4]float32

// Vec2I32, Vec3I32, and Vec4I32 are WGSL vecN<i32> values.
type Vec2I32 [2]int32
type Vec3I32 [3]int32
type Vec4I32 [4]int32

// Vec2U32, Vec3U32, and Vec4U32 are WGSL vecN<u32> values.
type Vec2U32 [2]uint32
type Vec3U32 [3]uint32
type Vec4U32 [4]uint32
