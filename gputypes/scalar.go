// Package gputypes supplies the concrete host-side leaf types the layout
// engine recognizes by name: scalars, vectors, and matrices. A bare Go
// array or numeric type is never treated as a vector or matrix — WGSL's
// vector/matrix alignment rules only apply to a value the caller has
// explicitly declared as one of these types, the same way the source
// ecosystem requires a glam/mint wrapper rather than inferring vector-ness
// from shape.
package gputypes

// F32 is a WGSL f32: 4 bytes, little-endian IEEE-754 single precision.
type F32 float32

// I32 is a WGSL i32: 4 bytes, little-endian two's complement.
type I32 int32

// U32 is a WGSL u32: 4 bytes, little-endian.
type U32 uint32

// F16 is a WGSL f16, stored as its raw 16-bit little-endian bit pattern.
// This module does no floating-point conversion; callers construct F16
// values from bits they already computed elsewhere (scope note: per-scalar
// numeric conversion is a host-library concern this engine does not own).
type F16 uint16
