package layout

import (
	"fmt"
	"strings"

	"go.bytecodealliance.org/wit"
)

// WIT returns the shape as a WIT record type. Pointer fields become the
// unsigned integer of the target's pointer width.
func (s *Shape) WIT() *wit.TypeDef {
	fields := make([]wit.Field, len(s.fields))
	for i, f := range s.fields {
		fields[i] = wit.Field{Name: f.Name, Type: f.Kind.WIT(s.target)}
	}
	name := s.name
	return &wit.TypeDef{
		Name: &name,
		Kind: &wit.Record{Fields: fields},
	}
}

// Describe renders the shape as a WIT record declaration with offsets.
func (s *Shape) Describe() string {
	td := s.WIT()
	rec := td.Kind.(*wit.Record)

	var b strings.Builder
	fmt.Fprintf(&b, "record %s { // %d bytes\n", s.name, s.size)
	for i, f := range rec.Fields {
		info := s.fields[i]
		fmt.Fprintf(&b, "  %s: %s, // @%d", f.Name, TypeName(f.Type), info.Offset)
		if info.Kind == KindPointer {
			b.WriteString(" pointer")
		}
		b.WriteByte('\n')
	}
	b.WriteString("}")
	return b.String()
}

// TypeName returns the WIT spelling of a primitive type.
func TypeName(t wit.Type) string {
	switch v := t.(type) {
	case wit.Bool:
		return "bool"
	case wit.U8:
		return "u8"
	case wit.S8:
		return "s8"
	case wit.U16:
		return "u16"
	case wit.S16:
		return "s16"
	case wit.U32:
		return "u32"
	case wit.S32:
		return "s32"
	case wit.U64:
		return "u64"
	case wit.S64:
		return "s64"
	case wit.F32:
		return "f32"
	case wit.F64:
		return "f64"
	case wit.Char:
		return "char"
	case wit.String:
		return "string"
	case *wit.TypeDef:
		if v.Name != nil {
			return *v.Name
		}
		return "typedef"
	default:
		return fmt.Sprintf("%T", t)
	}
}
