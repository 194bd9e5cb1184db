package bridge

import (
	"math"

	"github.com/wippyai/wasm-bridge/errors"
)

// Status codes returned across the boundary. Positive values are required
// buffer lengths.
const (
	StatusOK            int32 = 0
	StatusNullReference int32 = -1
	StatusOutOfBounds   int32 = -2
	StatusUnterminated  int32 = -3
	StatusFailed        int32 = -4
)

// Status maps err to a boundary status code.
func Status(err error) int32 {
	if err == nil {
		return StatusOK
	}
	if size, ok := errors.RequiredSize(err); ok {
		if size > math.MaxInt32 {
			return StatusFailed
		}
		return int32(size)
	}
	switch errors.KindOf(err) {
	case errors.KindNullReference:
		return StatusNullReference
	case errors.KindOutOfBounds:
		return StatusOutOfBounds
	case errors.KindUnterminated:
		return StatusUnterminated
	default:
		return StatusFailed
	}
}

// StatusText describes a status code.
func StatusText(status int32) string {
	switch {
	case status == StatusOK:
		return "ok"
	case status > 0:
		return "buffer too small"
	case status == StatusNullReference:
		return "null reference"
	case status == StatusOutOfBounds:
		return "out of bounds"
	case status == StatusUnterminated:
		return "unterminated text"
	default:
		return "failed"
	}
}
