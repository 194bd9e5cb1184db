// Package bridge implements the entry points a foreign caller invokes.
//
// Every entry point takes its arguments the way they cross a binary
// interface, a memory plus a pointer and a declared length, and returns a
// single int32:
//
//	hello(ptr, len)        0 on success, required length if len is short
//	multiply(x, y)         x*y
//	dot_product(ptr, len)  truncated dot product, required length if len is short
//
// Negative results are failures (see the Status constants). Rich errors
// cannot cross the boundary, so Greet and Planes expose the same reads with
// Go errors for in-process callers.
//
// hello writes its two diagnostic lines through a Console, which serializes
// writes so concurrent calls never interleave within a call's output.
package bridge
