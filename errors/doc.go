// Package errors provides structured error types for the bridge.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type carries the shape name, field path, offending value and cause chain.
//
// Two kinds form the boundary protocol:
//
//   - KindBufferTooSmall: the caller's buffer is shorter than the shape. Required
//     holds the size to retry with. This is expected, not exceptional.
//   - KindNullReference: a required pointer was zero. It is never coerced to an
//     empty value.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseReinterpret, errors.KindOutOfBounds).
//		Shape("message").
//		Path("text").
//		Detail("pointer %#x past end of memory", ptr).
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.BufferTooSmall(errors.PhaseReinterpret, "message", 8, 4)
//	size, ok := errors.RequiredSize(err) // 8, true
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
