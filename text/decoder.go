package text

import (
	"bytes"
	"encoding/binary"
	"math"
	"runtime"

	wasmbridge "github.com/wippyai/wasm-bridge"
	"github.com/wippyai/wasm-bridge/errors"
)

// DefaultMaxLength bounds the terminator scan, in bytes.
const DefaultMaxLength = 1 << 20

// Decoder reads null-terminated strings from caller memory.
// A Decoder is immutable and safe for concurrent use.
type Decoder struct {
	strategy  Strategy
	platform  func() string
	order     binary.ByteOrder
	maxLength uint32
}

// Option configures a Decoder.
type Option func(*Decoder)

// WithMaxLength bounds the number of bytes scanned for a terminator.
// Zero scans to the end of memory.
func WithMaxLength(n uint32) Option {
	return func(d *Decoder) {
		d.maxLength = n
	}
}

// WithPlatform replaces the platform query used when no strategy is set.
func WithPlatform(query func() string) Option {
	return func(d *Decoder) {
		if query != nil {
			d.platform = query
		}
	}
}

// WithByteOrder sets the byte order wide text is read in. Nil keeps
// little-endian.
func WithByteOrder(order binary.ByteOrder) Option {
	return func(d *Decoder) {
		d.order = order
	}
}

// NewDecoder creates a decoder using strategy. A nil strategy selects one
// from the platform query at each call.
func NewDecoder(strategy Strategy, opts ...Option) *Decoder {
	d := &Decoder{
		strategy:  strategy,
		platform:  func() string { return runtime.GOOS },
		maxLength: DefaultMaxLength,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// InOrder returns a copy of d that reads wide text in order.
func (d *Decoder) InOrder(order binary.ByteOrder) *Decoder {
	c := *d
	c.order = order
	return &c
}

// Strategy returns the strategy the next call would use. UTF16 follows the
// decoder's byte order; UTF16BE is always big-endian.
func (d *Decoder) Strategy() Strategy {
	s := d.strategy
	if s == nil {
		s = ForPlatform(d.platform())
	}
	if s == UTF16 && d.order != nil {
		return UTF16For(d.order)
	}
	return s
}

// Decode reads the string at ref. ref is a pointer-sized value taken from a
// record; it must be non-zero and lie within mem.
func (d *Decoder) Decode(mem wasmbridge.Memory, ref uint64) (string, error) {
	if ref == 0 {
		return "", errors.NullReference(errors.PhaseDecode, nil)
	}
	if mem == nil {
		return "", errors.NotInitialized(errors.PhaseDecode, "memory")
	}

	size := mem.Size()
	if ref >= uint64(size) || ref > math.MaxUint32 {
		return "", errors.OutOfBounds(errors.PhaseDecode, nil, ref, 1, size)
	}
	ptr := uint32(ref)

	span := size - ptr
	if d.maxLength > 0 && span > d.maxLength {
		span = d.maxLength
	}

	view, err := mem.Read(ptr, span)
	if err != nil {
		return "", errors.New(errors.PhaseDecode, errors.KindOutOfBounds).
			Value(ref).
			Cause(err).
			Build()
	}

	strategy := d.Strategy()
	end := terminator(view, strategy.UnitSize())
	if end < 0 {
		return "", errors.Unterminated(errors.PhaseDecode, nil, ref, span)
	}

	// Decode copies out of view.
	return strategy.Decode(view[:end])
}

// terminator returns the offset of the first all-zero code unit of width
// unit, aligned to unit relative to the start of view, or -1.
func terminator(view []byte, unit uint32) int {
	if unit <= 1 {
		return bytes.IndexByte(view, 0)
	}
	u := int(unit)
	for i := 0; i+u <= len(view); i += u {
		zero := true
		for j := 0; j < u; j++ {
			if view[i+j] != 0 {
				zero = false
				break
			}
		}
		if zero {
			return i
		}
	}
	return -1
}
