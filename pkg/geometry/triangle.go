package geometry

import (
	"math"

	"github.com/lightlab/go-2d-raytracer/pkg/core"
	"github.com/lightlab/go-2d-raytracer/pkg/material"
)

// Triangle represents a triangle posed by a center and rotation, with its
// three vertices stored relative to the center
type Triangle struct {
	id       int
	Center   core.Vec2
	Rotation float64 // Radians
	Mat      material.Material
	points   [3]core.Vec2 // Local space, relative to Center
}

// NewTriangle creates a triangle from three center-relative points
func NewTriangle(id int, center core.Vec2, rotation float64, p0, p1, p2 core.Vec2, mat material.Material) *Triangle {
	return &Triangle{
		id:       id,
		Center:   center,
		Rotation: rotation,
		Mat:      mat,
		points:   [3]core.Vec2{p0, p1, p2},
	}
}

// NewEquilateralTriangle creates an equilateral triangle with the given side
// length, pointing up at zero rotation
func NewEquilateralTriangle(id int, center core.Vec2, size, rotation float64, mat material.Material) *Triangle {
	circumradius := math.Max(size, core.Epsilon) / math.Sqrt(3)

	var points [3]core.Vec2
	for i := 0; i < 3; i++ {
		angle := math.Pi/2 + float64(i)*2*math.Pi/3
		points[i] = core.FromAngle(angle).Multiply(circumradius)
	}

	return &Triangle{
		id:       id,
		Center:   center,
		Rotation: rotation,
		Mat:      mat,
		points:   points,
	}
}

func (t *Triangle) ID() int { return t.id }

// Points returns the center-relative vertices
func (t *Triangle) Points() [3]core.Vec2 { return t.points }

func (t *Triangle) Kind() Kind                  { return KindTriangle }
func (t *Triangle) Material() material.Material { return t.Mat }

// Vertices returns the three corners in world space
func (t *Triangle) Vertices() []core.Vec2 {
	vertices := make([]core.Vec2, 3)
	for i, p := range t.points {
		vertices[i] = p.Rotate(t.Rotation).Add(t.Center)
	}
	return vertices
}

// BoundingBox returns the world-space AABB of the triangle
func (t *Triangle) BoundingBox() core.AABB {
	return core.NewAABBFromPoints(t.Vertices()...)
}

// ContainsPoint tests containment against the world-space polygon
func (t *Triangle) ContainsPoint(p core.Vec2) bool {
	return pointInPolygon(p, t.Vertices())
}

// Intersect tests the ray against the triangle's edges
func (t *Triangle) Intersect(ray core.Ray) Intersection {
	return RayPolygon(ray, t.Vertices(), t)
}
