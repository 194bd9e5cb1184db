// Package compute holds the terminal routines the bridge dispatches to.
// They are pure and stateless.
package compute

import "math"

// Multiply returns the wrapping 32-bit product of x and y.
func Multiply(x, y int32) int32 {
	return x * y
}

// Vector3 is a 3-component vector.
type Vector3 struct {
	X, Y, Z float32
}

// Vector4 is a 4-component vector.
type Vector4 struct {
	X, Y, Z, W float32
}

// Plane is a plane in normal-distance form.
type Plane struct {
	Normal Vector3
	D      float32
}

// NewPlane builds a plane from its four coefficients.
func NewPlane(x, y, z, d float32) Plane {
	return Plane{Normal: Vector3{X: x, Y: y, Z: z}, D: d}
}

// Vector returns the plane's coefficients as a 4-component vector.
func (p Plane) Vector() Vector4 {
	return Vector4{X: p.Normal.X, Y: p.Normal.Y, Z: p.Normal.Z, W: p.D}
}

// Dot returns the dot product of the plane's coefficients and v:
// nx*x + ny*y + nz*z + d*w.
func Dot(p Plane, v Vector4) float32 {
	return p.Normal.X*v.X + p.Normal.Y*v.Y + p.Normal.Z*v.Z + p.D*v.W
}

// DotNormal returns the dot product of the plane's normal and v.
func DotNormal(p Plane, v Vector3) float32 {
	return p.Normal.X*v.X + p.Normal.Y*v.Y + p.Normal.Z*v.Z
}

// PlanePair is two planes as laid out in a plane-pair record.
type PlanePair struct {
	X1 float32 `layout:"x1"`
	Y1 float32 `layout:"y1"`
	Z1 float32 `layout:"z1"`
	D1 float32 `layout:"d1"`
	X2 float32 `layout:"x2"`
	Y2 float32 `layout:"y2"`
	Z2 float32 `layout:"z2"`
	D2 float32 `layout:"d2"`
}

// First returns the first plane.
func (pp PlanePair) First() Plane {
	return NewPlane(pp.X1, pp.Y1, pp.Z1, pp.D1)
}

// Second returns the second plane's coefficients as a vector.
func (pp PlanePair) Second() Vector4 {
	return Vector4{X: pp.X2, Y: pp.Y2, Z: pp.Z2, W: pp.D2}
}

// DotProduct is Dot of the pair truncated toward zero. NaN maps to 0 and
// out-of-range values saturate.
func DotProduct(pp PlanePair) int32 {
	return Truncate(Dot(pp.First(), pp.Second()))
}

// Truncate converts f to int32, rounding toward zero with saturation.
func Truncate(f float32) int32 {
	switch {
	case math.IsNaN(float64(f)):
		return 0
	case f >= math.MaxInt32:
		return math.MaxInt32
	case f <= math.MinInt32:
		return math.MinInt32
	default:
		return int32(f)
	}
}
