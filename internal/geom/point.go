package geom

import (
	"math"

	"github.com/gogpu/gg"
)

// Point is a 2D point or vector. The vector algebra (Add, Sub, Mul, Dot,
// Cross, Length, Distance, Normalize, Rotate, Lerp) comes from gg.
type Point = gg.Point

// Pt is a convenience function to create a Point.
func Pt(x, y float64) Point {
	return gg.Pt(x, y)
}

// Neg returns the vector pointing the opposite way.
func Neg(p Point) Point {
	return Point{X: -p.X, Y: -p.Y}
}

// Orthogonal returns p rotated a quarter turn, (-y, x).
// For a unit direction this is the side lanes are offset towards.
func Orthogonal(p Point) Point {
	return Point{X: -p.Y, Y: p.X}
}

// ToBasis expresses p in the local frame whose x axis is dir and whose
// y axis is Orthogonal(dir). dir must be a unit vector.
func ToBasis(p, dir Point) Point {
	return Point{X: p.Dot(dir), Y: p.Dot(Orthogonal(dir))}
}

// FromBasis is the inverse of ToBasis.
func FromBasis(p, dir Point) Point {
	return dir.Mul(p.X).Add(Orthogonal(dir).Mul(p.Y))
}

// IsRoughlyWithin reports whether p and q are at most tolerance apart.
// Works for positions and unit directions alike.
func IsRoughlyWithin(p, q Point, tolerance float64) bool {
	return p.Distance(q) <= tolerance
}

// IsFinite reports whether both coordinates are finite numbers.
func IsFinite(p Point) bool {
	return !math.IsNaN(p.X) && !math.IsNaN(p.Y) && !math.IsInf(p.X, 0) && !math.IsInf(p.Y, 0)
}

// XY is the JSON form of a Point, {"x":..,"y":..}.
type XY struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// ToXY converts p to its JSON form.
func ToXY(p Point) XY {
	return XY{X: p.X, Y: p.Y}
}

// Point converts back from the JSON form.
func (v XY) Point() Point {
	return Pt(v.X, v.Y)
}
