// Package layout describes fixed-layout records as explicit schemas.
//
// A Shape is an ordered list of fields, each with a name and a Kind that fixes
// its width and numeric encoding. Fields are laid out sequentially with no
// padding and no reordering, so a shape's size is the sum of its field widths
// and is also the minimum buffer length a caller must supply.
//
// # Layout Rules
//
//   - I32, U32, F32: 4 bytes
//   - I64, U64, F64: 8 bytes
//   - Pointer: the target's pointer width (4 on wasm32, 8 on 64-bit hosts)
//   - Multi-byte values use the target's byte order
//
// # Usage
//
//	shape := layout.Message(layout.Wasm32)
//	shape.Size()                 // 8
//	f, _ := shape.Field("number") // f.Offset == 4
//
// Shapes are immutable after construction and safe for concurrent use.
package layout
