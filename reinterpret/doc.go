// Package reinterpret turns caller-owned raw buffers into typed records.
//
// Reinterpret validates the declared buffer length against a layout.Shape and,
// if the buffer is large enough, copies exactly Shape.Size() bytes out of the
// caller's memory into a Record. The Record is independent of the caller's
// buffer once Reinterpret returns; the caller's memory is never written.
//
// A short buffer is not a failure of the caller so much as a negotiation: the
// returned error carries the required size (see errors.RequiredSize) and the
// caller is expected to retry with a buffer at least that large. Bytes past
// the shape's size are ignored.
//
//	rec, err := reinterpret.Reinterpret(mem, ptr, length, layout.Message(layout.Wasm32))
//	if size, ok := errors.RequiredSize(err); ok {
//		return int32(size)
//	}
//	text, _ := rec.Pointer(layout.MessageText)
//
// Records can also be built on the caller side with NewRecord or Encode, which
// is how tests and the CLI produce buffers in a shape's layout.
package reinterpret
