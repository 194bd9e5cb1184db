package layout

// Message field names.
const (
	MessageText   = "text"
	MessageNumber = "number"
)

// Plane-pair field names: two planes as (x, y, z, d).
const (
	PlaneX1 = "x1"
	PlaneY1 = "y1"
	PlaneZ1 = "z1"
	PlaneD1 = "d1"
	PlaneX2 = "x2"
	PlaneY2 = "y2"
	PlaneZ2 = "z2"
	PlaneD2 = "d2"
)

// Message is a text reference followed by a 32-bit signed integer.
func Message(target Target) *Shape {
	return MustNew("message", target,
		Field{Name: MessageText, Kind: KindPointer},
		Field{Name: MessageNumber, Kind: KindI32},
	)
}

// PlanePair is eight 32-bit floats describing two planes.
func PlanePair(target Target) *Shape {
	return MustNew("plane-pair", target,
		Field{Name: PlaneX1, Kind: KindF32},
		Field{Name: PlaneY1, Kind: KindF32},
		Field{Name: PlaneZ1, Kind: KindF32},
		Field{Name: PlaneD1, Kind: KindF32},
		Field{Name: PlaneX2, Kind: KindF32},
		Field{Name: PlaneY2, Kind: KindF32},
		Field{Name: PlaneZ2, Kind: KindF32},
		Field{Name: PlaneD2, Kind: KindF32},
	)
}
