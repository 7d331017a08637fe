package geometry

import (
	"github.com/lightlab/go-2d-raytracer/pkg/core"
	"github.com/lightlab/go-2d-raytracer/pkg/material"
)

// Kind identifies the geometric variant of a shape
type Kind int

const (
	KindRectangle Kind = iota
	KindEllipse
	KindTriangle
	KindFocalPoint
	KindTarget
)

// String returns the kind name used by scene files
func (k Kind) String() string {
	switch k {
	case KindRectangle:
		return "rectangle"
	case KindEllipse:
		return "ellipse"
	case KindTriangle:
		return "triangle"
	case KindFocalPoint:
		return "focalPoint"
	case KindTarget:
		return "target"
	default:
		return "unknown"
	}
}

// Shape is the capability contract the engine depends on. Implementations own
// their pose and material; the tracer borrows them read-only for the duration
// of one trace. A shape's bounding box must fully contain its vertices.
type Shape interface {
	ID() int
	Kind() Kind
	Material() material.Material

	// Vertices returns a world-space polygon approximation of the shape.
	// Curved shapes choose their own resolution.
	Vertices() []core.Vec2

	// BoundingBox returns the world-space AABB of the shape
	BoundingBox() core.AABB

	// ContainsPoint reports whether the world-space point lies inside the shape
	ContainsPoint(p core.Vec2) bool

	// Intersect tests the ray against the shape and returns the nearest hit,
	// or the no-hit sentinel if the ray misses
	Intersect(ray core.Ray) Intersection
}
