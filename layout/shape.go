package layout

import (
	"fmt"
	"math"

	"github.com/wippyai/wasm-bridge/errors"
)

// Field declares one member of a shape.
type Field struct {
	Name string
	Kind Kind
}

// FieldInfo is a field with its resolved position.
type FieldInfo struct {
	Name   string
	Kind   Kind
	Offset uint32
	Width  uint32
}

// Shape is a compiled fixed-layout schema.
type Shape struct {
	name   string
	target Target
	fields []FieldInfo
	index  map[string]int
	size   uint32
}

// New compiles fields into a shape for target. Offsets are assigned in
// declaration order with no padding.
func New(name string, target Target, fields ...Field) (*Shape, error) {
	if name == "" {
		return nil, errors.InvalidSchema(name, "shape name is empty")
	}
	if !target.valid() {
		return nil, errors.InvalidSchema(name, fmt.Sprintf("invalid target: pointer width %d", target.PointerWidth))
	}
	if len(fields) == 0 {
		return nil, errors.InvalidSchema(name, "shape has no fields")
	}

	s := &Shape{
		name:   name,
		target: target,
		fields: make([]FieldInfo, 0, len(fields)),
		index:  make(map[string]int, len(fields)),
	}

	var offset uint64
	for _, f := range fields {
		if f.Name == "" {
			return nil, errors.InvalidSchema(name, fmt.Sprintf("field %d has no name", len(s.fields)))
		}
		if !f.Kind.Valid() {
			return nil, errors.InvalidSchema(name, fmt.Sprintf("field %q has unknown kind %d", f.Name, f.Kind))
		}
		if _, dup := s.index[f.Name]; dup {
			return nil, errors.InvalidSchema(name, fmt.Sprintf("duplicate field %q", f.Name))
		}

		width := f.Kind.Width(target)
		s.index[f.Name] = len(s.fields)
		s.fields = append(s.fields, FieldInfo{
			Name:   f.Name,
			Kind:   f.Kind,
			Offset: uint32(offset),
			Width:  width,
		})
		offset += uint64(width)
		// Buffer lengths cross the boundary as i32.
		if offset > math.MaxInt32 {
			return nil, errors.InvalidSchema(name, "shape larger than 2^31-1 bytes")
		}
	}
	s.size = uint32(offset)

	return s, nil
}

// MustNew is like New but panics on error. Use it for package-level shapes.
func MustNew(name string, target Target, fields ...Field) *Shape {
	s, err := New(name, target, fields...)
	if err != nil {
		panic(err)
	}
	return s
}

// Name returns the shape name.
func (s *Shape) Name() string { return s.name }

// Target returns the target the shape was compiled for.
func (s *Shape) Target() Target { return s.target }

// Size returns the byte size of the shape, the minimum buffer length.
func (s *Shape) Size() uint32 { return s.size }

// Len returns the number of fields.
func (s *Shape) Len() int { return len(s.fields) }

// Fields returns the fields in declaration order.
func (s *Shape) Fields() []FieldInfo {
	out := make([]FieldInfo, len(s.fields))
	copy(out, s.fields)
	return out
}

// Field looks up a field by name.
func (s *Shape) Field(name string) (FieldInfo, bool) {
	i, ok := s.index[name]
	if !ok {
		return FieldInfo{}, false
	}
	return s.fields[i], true
}

// At returns the i-th field.
func (s *Shape) At(i int) FieldInfo {
	return s.fields[i]
}

func (s *Shape) String() string {
	return fmt.Sprintf("%s(%d bytes)", s.name, s.size)
}
