package core

import "math"

// Epsilon guards all "behind the ray" and "parallel" tests. The polygon and
// ellipse intersection paths must share this constant so that boundary
// behavior stays consistent between them.
const Epsilon = 1e-4

// Vec2 represents a 2D vector
type Vec2 struct {
	X, Y float64
}

// NewVec2 creates a new Vec2
func NewVec2(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Add returns the sum of two vectors
func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{v.X + other.X, v.Y + other.Y}
}

// Subtract returns the difference of two vectors
func (v Vec2) Subtract(other Vec2) Vec2 {
	return Vec2{v.X - other.X, v.Y - other.Y}
}

// Multiply returns the vector scaled by a scalar
func (v Vec2) Multiply(scalar float64) Vec2 {
	return Vec2{v.X * scalar, v.Y * scalar}
}

// Negate returns the negative of the vector
func (v Vec2) Negate() Vec2 {
	return Vec2{-v.X, -v.Y}
}

// Dot returns the dot product of two vectors
func (v Vec2) Dot(other Vec2) float64 {
	return v.X*other.X + v.Y*other.Y
}

// Cross returns the 2D cross product (the Z component of the 3D cross)
func (v Vec2) Cross(other Vec2) float64 {
	return v.X*other.Y - v.Y*other.X
}

// Length returns the magnitude of the vector
func (v Vec2) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// LengthSquared returns the squared magnitude of the vector
func (v Vec2) LengthSquared() float64 {
	return v.X*v.X + v.Y*v.Y
}

// Normalize returns a unit vector in the same direction
func (v Vec2) Normalize() Vec2 {
	length := v.Length()
	if length == 0 {
		return Vec2{0, 0}
	}
	return Vec2{v.X / length, v.Y / length}
}

// Perpendicular returns the vector rotated 90 degrees counter-clockwise
func (v Vec2) Perpendicular() Vec2 {
	return Vec2{-v.Y, v.X}
}

// Rotate returns the vector rotated by the given angle in radians
func (v Vec2) Rotate(angle float64) Vec2 {
	sin, cos := math.Sincos(angle)
	return Vec2{
		X: v.X*cos - v.Y*sin,
		Y: v.X*sin + v.Y*cos,
	}
}

// DistanceTo returns the distance between two points
func (v Vec2) DistanceTo(other Vec2) float64 {
	return other.Subtract(v).Length()
}

// FromAngle returns the unit vector pointing at the given angle in radians
func FromAngle(angle float64) Vec2 {
	sin, cos := math.Sincos(angle)
	return Vec2{X: cos, Y: sin}
}
