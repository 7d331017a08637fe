package geometry

import (
	"math"

	"github.com/lightlab/go-2d-raytracer/pkg/core"
	"github.com/lightlab/go-2d-raytracer/pkg/material"
)

// Rectangle represents an axis-oriented rectangle rotated about its center
type Rectangle struct {
	id       int
	Center   core.Vec2
	Width    float64
	Height   float64
	Rotation float64 // Radians
	Mat      material.Material
}

// NewRectangle creates a rectangle; non-positive dimensions are clamped to a
// small positive size
func NewRectangle(id int, center core.Vec2, width, height, rotation float64, mat material.Material) *Rectangle {
	return &Rectangle{
		id:       id,
		Center:   center,
		Width:    math.Max(width, core.Epsilon),
		Height:   math.Max(height, core.Epsilon),
		Rotation: rotation,
		Mat:      mat,
	}
}

// NewSquare creates a square of the given side length
func NewSquare(id int, center core.Vec2, size, rotation float64, mat material.Material) *Rectangle {
	return NewRectangle(id, center, size, size, rotation, mat)
}

func (r *Rectangle) ID() int                     { return r.id }
func (r *Rectangle) Kind() Kind                  { return KindRectangle }
func (r *Rectangle) Material() material.Material { return r.Mat }

// Vertices returns the four corners in counter-clockwise order
func (r *Rectangle) Vertices() []core.Vec2 {
	hw, hh := r.Width/2, r.Height/2
	corners := []core.Vec2{
		{X: -hw, Y: -hh},
		{X: hw, Y: -hh},
		{X: hw, Y: hh},
		{X: -hw, Y: hh},
	}
	for i, c := range corners {
		corners[i] = c.Rotate(r.Rotation).Add(r.Center)
	}
	return corners
}

// BoundingBox returns the world-space AABB of the rotated rectangle
func (r *Rectangle) BoundingBox() core.AABB {
	return core.NewAABBFromPoints(r.Vertices()...)
}

// ContainsPoint tests containment in the rectangle's local frame
func (r *Rectangle) ContainsPoint(p core.Vec2) bool {
	local := p.Subtract(r.Center).Rotate(-r.Rotation)
	return math.Abs(local.X) <= r.Width/2 && math.Abs(local.Y) <= r.Height/2
}

// Intersect tests the ray against the rectangle's edges
func (r *Rectangle) Intersect(ray core.Ray) Intersection {
	return RayPolygon(ray, r.Vertices(), r)
}
