package layout

import "go.bytecodealliance.org/wit"

// Kind is the width and numeric encoding of a field.
type Kind uint8

const (
	KindI32 Kind = iota + 1
	KindU32
	KindI64
	KindU64
	KindF32
	KindF64
	KindPointer
)

var kindNames = [...]string{
	KindI32:     "i32",
	KindU32:     "u32",
	KindI64:     "i64",
	KindU64:     "u64",
	KindF32:     "f32",
	KindF64:     "f64",
	KindPointer: "pointer",
}

func (k Kind) String() string {
	if k > 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	return k >= KindI32 && k <= KindPointer
}

// Width returns the byte width of k on target.
func (k Kind) Width(target Target) uint32 {
	switch k {
	case KindI32, KindU32, KindF32:
		return 4
	case KindI64, KindU64, KindF64:
		return 8
	case KindPointer:
		return target.PointerWidth
	default:
		return 0
	}
}

// WIT returns the WIT primitive that carries k on target. Pointers map to the
// unsigned integer of the target's pointer width.
func (k Kind) WIT(target Target) wit.Type {
	switch k {
	case KindI32:
		return wit.S32{}
	case KindU32:
		return wit.U32{}
	case KindI64:
		return wit.S64{}
	case KindU64:
		return wit.U64{}
	case KindF32:
		return wit.F32{}
	case KindF64:
		return wit.F64{}
	case KindPointer:
		if target.PointerWidth == 8 {
			return wit.U64{}
		}
		return wit.U32{}
	default:
		return nil
	}
}
