// Package wasmbridge lets foreign callers hand raw memory to Go routines.
//
// A caller passes a pointer and a declared length. The bridge checks the
// length against the byte size of a fixed-layout record, reconstructs the
// record field by field, decodes any null-terminated text it references
// using the platform's text encoding, and runs a computation. Results and
// failures return as a single int32.
//
// # Architecture Overview
//
//	wasmbridge/          Memory interfaces and flat in-process memories
//	├── layout/          Record shapes: field kinds, offsets, targets
//	├── reinterpret/     Size-checked buffer to record reconstruction
//	├── text/            UTF-8 / UTF-16 null-terminated text decoding
//	├── compute/         multiply and plane dot products
//	├── bridge/          Entry points and the int32 status convention
//	├── host/            wazero host module exposing the entry points
//	├── runtime/         Guest loading, calling and the Go-side Caller
//	├── config/          Environment configuration
//	├── errors/          Structured error types
//	└── cmd/bridge/      CLI and interactive TUI
//
// # Status Convention
//
// Entry points taking a record return:
//
//   - 0 on success
//   - the record's byte size when the declared length is too small
//   - -1 for a null pointer, -2 for an out-of-range pointer, -3 for text
//     with no terminator, -4 for anything else
//
// A caller can always pass length 0 to learn the size it must supply.
//
// # Quick Start
//
// From Go, through a trampoline guest:
//
//	rt, err := runtime.New(ctx, config.Default(), nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer rt.Close(ctx)
//
//	c, err := rt.Caller(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	status, err := c.Hello(ctx, "hi", 1)
//
// Directly, with a Heap standing in for native memory:
//
//	b := bridge.New(bridge.WithTarget(layout.Native()))
//	heap := wasmbridge.NewHeap(256)
//	ptr, _ := heap.Put(record, 8)
//	status := b.Hello(heap, ptr, int32(len(record)))
package wasmbridge
