package reinterpret

import (
	wasmbridge "github.com/wippyai/wasm-bridge"
	"github.com/wippyai/wasm-bridge/errors"
	"github.com/wippyai/wasm-bridge/layout"
)

// Reinterpret reads a record of shape from the length-byte buffer at ptr.
//
// Checks run in this order: declared length (size error carrying
// shape.Size()), null pointer, then memory bounds for the shape's span. The
// caller's bytes are copied; mem is only read.
func Reinterpret(mem wasmbridge.Memory, ptr uint32, length int32, shape *layout.Shape) (*Record, error) {
	if shape == nil {
		return nil, errors.InvalidInput(errors.PhaseReinterpret, "shape is nil")
	}

	size := shape.Size()
	if length < 0 || uint32(length) < size {
		return nil, errors.BufferTooSmall(errors.PhaseReinterpret, shape.Name(), size, length)
	}

	if ptr == 0 {
		return nil, errors.New(errors.PhaseReinterpret, errors.KindNullReference).
			Shape(shape.Name()).
			Detail("buffer pointer is null").
			Build()
	}

	if mem == nil {
		return nil, errors.NotInitialized(errors.PhaseReinterpret, "memory")
	}

	if uint64(ptr)+uint64(size) > uint64(mem.Size()) {
		err := errors.OutOfBounds(errors.PhaseReinterpret, nil, uint64(ptr), uint64(size), mem.Size())
		err.Shape = shape.Name()
		return nil, err
	}

	view, err := mem.Read(ptr, size)
	if err != nil {
		return nil, errors.New(errors.PhaseReinterpret, errors.KindOutOfBounds).
			Shape(shape.Name()).
			Value(uint64(ptr)).
			Cause(err).
			Build()
	}

	data := make([]byte, size)
	copy(data, view)

	return &Record{shape: shape, data: data}, nil
}
