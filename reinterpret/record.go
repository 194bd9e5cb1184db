package reinterpret

import (
	"encoding/binary"
	"math"

	"github.com/wippyai/wasm-bridge/errors"
	"github.com/wippyai/wasm-bridge/layout"
)

// Record is a typed view over a copy of exactly Shape().Size() bytes.
type Record struct {
	shape *layout.Shape
	data  []byte
}

// NewRecord returns a zeroed record of shape, for building buffers.
func NewRecord(shape *layout.Shape) *Record {
	return &Record{shape: shape, data: make([]byte, shape.Size())}
}

// Shape returns the record's shape.
func (r *Record) Shape() *layout.Shape {
	return r.shape
}

// Bytes returns a copy of the record in its wire layout.
func (r *Record) Bytes() []byte {
	out := make([]byte, len(r.data))
	copy(out, r.data)
	return out
}

// Int32 reads an i32 field.
func (r *Record) Int32(name string) (int32, error) {
	f, err := r.field(name, layout.KindI32)
	if err != nil {
		return 0, err
	}
	return int32(r.order().Uint32(r.data[f.Offset:])), nil
}

// Uint32 reads a u32 field.
func (r *Record) Uint32(name string) (uint32, error) {
	f, err := r.field(name, layout.KindU32)
	if err != nil {
		return 0, err
	}
	return r.order().Uint32(r.data[f.Offset:]), nil
}

// Int64 reads an i64 field.
func (r *Record) Int64(name string) (int64, error) {
	f, err := r.field(name, layout.KindI64)
	if err != nil {
		return 0, err
	}
	return int64(r.order().Uint64(r.data[f.Offset:])), nil
}

// Uint64 reads a u64 field.
func (r *Record) Uint64(name string) (uint64, error) {
	f, err := r.field(name, layout.KindU64)
	if err != nil {
		return 0, err
	}
	return r.order().Uint64(r.data[f.Offset:]), nil
}

// Float32 reads an f32 field.
func (r *Record) Float32(name string) (float32, error) {
	f, err := r.field(name, layout.KindF32)
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(r.order().Uint32(r.data[f.Offset:])), nil
}

// Float64 reads an f64 field.
func (r *Record) Float64(name string) (float64, error) {
	f, err := r.field(name, layout.KindF64)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(r.order().Uint64(r.data[f.Offset:])), nil
}

// Pointer reads a pointer field, zero-extended to 64 bits.
func (r *Record) Pointer(name string) (uint64, error) {
	f, err := r.field(name, layout.KindPointer)
	if err != nil {
		return 0, err
	}
	if f.Width == 4 {
		return uint64(r.order().Uint32(r.data[f.Offset:])), nil
	}
	return r.order().Uint64(r.data[f.Offset:]), nil
}

// Value reads any field as its natural Go type: int32, uint32, int64,
// uint64, float32, float64, or uint64 for pointers.
func (r *Record) Value(name string) (any, error) {
	f, ok := r.shape.Field(name)
	if !ok {
		return nil, errors.FieldMissing(errors.PhaseReinterpret, r.shape.Name(), name)
	}
	switch f.Kind {
	case layout.KindI32:
		return r.Int32(name)
	case layout.KindU32:
		return r.Uint32(name)
	case layout.KindI64:
		return r.Int64(name)
	case layout.KindU64:
		return r.Uint64(name)
	case layout.KindF32:
		return r.Float32(name)
	case layout.KindF64:
		return r.Float64(name)
	default:
		return r.Pointer(name)
	}
}

// SetInt32 writes an i32 field.
func (r *Record) SetInt32(name string, v int32) error {
	f, err := r.fieldFor(errors.PhaseEncode, name, layout.KindI32)
	if err != nil {
		return err
	}
	r.order().PutUint32(r.data[f.Offset:], uint32(v))
	return nil
}

// SetUint32 writes a u32 field.
func (r *Record) SetUint32(name string, v uint32) error {
	f, err := r.fieldFor(errors.PhaseEncode, name, layout.KindU32)
	if err != nil {
		return err
	}
	r.order().PutUint32(r.data[f.Offset:], v)
	return nil
}

// SetInt64 writes an i64 field.
func (r *Record) SetInt64(name string, v int64) error {
	f, err := r.fieldFor(errors.PhaseEncode, name, layout.KindI64)
	if err != nil {
		return err
	}
	r.order().PutUint64(r.data[f.Offset:], uint64(v))
	return nil
}

// SetUint64 writes a u64 field.
func (r *Record) SetUint64(name string, v uint64) error {
	f, err := r.fieldFor(errors.PhaseEncode, name, layout.KindU64)
	if err != nil {
		return err
	}
	r.order().PutUint64(r.data[f.Offset:], v)
	return nil
}

// SetFloat32 writes an f32 field.
func (r *Record) SetFloat32(name string, v float32) error {
	f, err := r.fieldFor(errors.PhaseEncode, name, layout.KindF32)
	if err != nil {
		return err
	}
	r.order().PutUint32(r.data[f.Offset:], math.Float32bits(v))
	return nil
}

// SetFloat64 writes an f64 field.
func (r *Record) SetFloat64(name string, v float64) error {
	f, err := r.fieldFor(errors.PhaseEncode, name, layout.KindF64)
	if err != nil {
		return err
	}
	r.order().PutUint64(r.data[f.Offset:], math.Float64bits(v))
	return nil
}

// SetPointer writes a pointer field. The value must fit the target's
// pointer width.
func (r *Record) SetPointer(name string, v uint64) error {
	f, err := r.fieldFor(errors.PhaseEncode, name, layout.KindPointer)
	if err != nil {
		return err
	}
	if f.Width == 4 {
		if v > math.MaxUint32 {
			return errors.New(errors.PhaseEncode, errors.KindOutOfBounds).
				Shape(r.shape.Name()).
				Path(name).
				Value(v).
				Detail("pointer %#x does not fit 32 bits", v).
				Build()
		}
		r.order().PutUint32(r.data[f.Offset:], uint32(v))
		return nil
	}
	r.order().PutUint64(r.data[f.Offset:], v)
	return nil
}

func (r *Record) order() binary.ByteOrder {
	return r.shape.Target().ByteOrder
}

func (r *Record) field(name string, kind layout.Kind) (layout.FieldInfo, error) {
	return r.fieldFor(errors.PhaseReinterpret, name, kind)
}

func (r *Record) fieldFor(phase errors.Phase, name string, kind layout.Kind) (layout.FieldInfo, error) {
	f, ok := r.shape.Field(name)
	if !ok {
		return layout.FieldInfo{}, errors.FieldMissing(phase, r.shape.Name(), name)
	}
	if f.Kind != kind {
		return layout.FieldInfo{}, errors.TypeMismatch(phase, r.shape.Name(), []string{name}, kind.String(), f.Kind.String())
	}
	return f, nil
}
