package gputypes

// ArrayLength is an array-length marker field: a
// zero-data placeholder that, when written, emits the element count of its
// enclosing struct's terminal runtime-sized array as a 4-byte little-endian
// unsigned integer. It occupies 4 bytes and aligns to 4, like a bare u32,
// but carries no data of its own — describeStruct resolves which sibling
// field (if any) it reports on once, when the struct's metadata is derived,
// rather than threading struct context through every traversal call.
type ArrayLength struct{}
