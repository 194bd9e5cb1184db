package reinterpret

import (
	"math"
	"reflect"

	"github.com/wippyai/wasm-bridge/errors"
	"github.com/wippyai/wasm-bridge/layout"
)

// tagName is the struct tag that binds a Go field to a shape field:
//
//	type Message struct {
//		Text   uint64 `layout:"text"`
//		Number int32  `layout:"number"`
//	}
const tagName = "layout"

// Decode copies the record's fields into the struct pointed to by dst.
// Only tagged fields are touched.
func (r *Record) Decode(dst any) error {
	rv := reflect.ValueOf(dst)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return errors.New(errors.PhaseReinterpret, errors.KindTypeMismatch).
			Shape(r.shape.Name()).
			Detail("destination must be a non-nil pointer, got %T", dst).
			Build()
	}
	elem := rv.Elem()
	if elem.Kind() != reflect.Struct {
		return errors.New(errors.PhaseReinterpret, errors.KindTypeMismatch).
			Shape(r.shape.Name()).
			Detail("destination must point to a struct, got %T", dst).
			Build()
	}

	return eachTagged(elem, func(name string, fv reflect.Value) error {
		f, ok := r.shape.Field(name)
		if !ok {
			return errors.FieldMissing(errors.PhaseReinterpret, r.shape.Name(), name)
		}
		v, err := r.Value(name)
		if err != nil {
			return err
		}
		if !assign(fv, f.Kind, v) {
			return errors.TypeMismatch(errors.PhaseReinterpret, r.shape.Name(), []string{name}, fv.Type().String(), f.Kind.String())
		}
		return nil
	})
}

// Encode builds a record of shape from the tagged fields of src, which may
// be a struct or a pointer to one. Shape fields with no matching Go field
// stay zero.
func Encode(shape *layout.Shape, src any) (*Record, error) {
	rv := reflect.ValueOf(src)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, errors.NullReference(errors.PhaseEncode, []string{shape.Name()})
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil, errors.New(errors.PhaseEncode, errors.KindTypeMismatch).
			Shape(shape.Name()).
			Detail("source must be a struct, got %T", src).
			Build()
	}

	rec := NewRecord(shape)
	err := eachTagged(rv, func(name string, fv reflect.Value) error {
		f, ok := shape.Field(name)
		if !ok {
			return errors.FieldMissing(errors.PhaseEncode, shape.Name(), name)
		}
		return rec.set(f, fv)
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func eachTagged(v reflect.Value, fn func(name string, fv reflect.Value) error) error {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		name, ok := sf.Tag.Lookup(tagName)
		if !ok || name == "-" || name == "" {
			continue
		}
		if err := fn(name, v.Field(i)); err != nil {
			return err
		}
	}
	return nil
}

func assign(fv reflect.Value, kind layout.Kind, v any) bool {
	switch kind {
	case layout.KindI32, layout.KindI64:
		var n int64
		switch x := v.(type) {
		case int32:
			n = int64(x)
		case int64:
			n = x
		}
		if !isInt(fv.Kind()) || fv.OverflowInt(n) {
			return false
		}
		fv.SetInt(n)
	case layout.KindU32, layout.KindU64, layout.KindPointer:
		var n uint64
		switch x := v.(type) {
		case uint32:
			n = uint64(x)
		case uint64:
			n = x
		}
		if !isUint(fv.Kind()) || fv.OverflowUint(n) {
			return false
		}
		fv.SetUint(n)
	case layout.KindF32, layout.KindF64:
		var n float64
		switch x := v.(type) {
		case float32:
			n = float64(x)
		case float64:
			n = x
		}
		if !isFloat(fv.Kind()) {
			return false
		}
		fv.SetFloat(n)
	default:
		return false
	}
	return true
}

func (r *Record) set(f layout.FieldInfo, fv reflect.Value) error {
	mismatch := func() error {
		return errors.TypeMismatch(errors.PhaseEncode, r.shape.Name(), []string{f.Name}, f.Kind.String(), fv.Type().String())
	}
	overflow := func(v any) error {
		return errors.New(errors.PhaseEncode, errors.KindInvalidData).
			Shape(r.shape.Name()).
			Path(f.Name).
			Value(v).
			Detail("value %v overflows %s", v, f.Kind).
			Build()
	}

	switch f.Kind {
	case layout.KindI32, layout.KindI64:
		if !isInt(fv.Kind()) {
			return mismatch()
		}
		n := fv.Int()
		if f.Kind == layout.KindI64 {
			return r.SetInt64(f.Name, n)
		}
		if n < math.MinInt32 || n > math.MaxInt32 {
			return overflow(n)
		}
		return r.SetInt32(f.Name, int32(n))
	case layout.KindU32, layout.KindU64:
		if !isUint(fv.Kind()) {
			return mismatch()
		}
		n := fv.Uint()
		if f.Kind == layout.KindU64 {
			return r.SetUint64(f.Name, n)
		}
		if n > math.MaxUint32 {
			return overflow(n)
		}
		return r.SetUint32(f.Name, uint32(n))
	case layout.KindPointer:
		if !isUint(fv.Kind()) {
			return mismatch()
		}
		return r.SetPointer(f.Name, fv.Uint())
	case layout.KindF32:
		if !isFloat(fv.Kind()) {
			return mismatch()
		}
		return r.SetFloat32(f.Name, float32(fv.Float()))
	case layout.KindF64:
		if !isFloat(fv.Kind()) {
			return mismatch()
		}
		return r.SetFloat64(f.Name, fv.Float())
	default:
		return mismatch()
	}
}

func isInt(k reflect.Kind) bool {
	return k >= reflect.Int && k <= reflect.Int64
}

func isUint(k reflect.Kind) bool {
	return k >= reflect.Uint && k <= reflect.Uintptr
}

func isFloat(k reflect.Kind) bool {
	return k == reflect.Float32 || k == reflect.Float64
}
