package geometry

import (
	"github.com/lightlab/go-2d-raytracer/pkg/core"
	"github.com/lightlab/go-2d-raytracer/pkg/material"
)

// FocalPoint marks a position of interest in the scene, typically the origin
// of a light source. It is geometric but optically inert: rays pass straight
// through it.
type FocalPoint struct {
	id       int
	Position core.Vec2
}

// NewFocalPoint creates a focal point at the given position
func NewFocalPoint(id int, position core.Vec2) *FocalPoint {
	return &FocalPoint{id: id, Position: position}
}

func (f *FocalPoint) ID() int                     { return f.id }
func (f *FocalPoint) Kind() Kind                  { return KindFocalPoint }
func (f *FocalPoint) Material() material.Material { return material.Material{} }

func (f *FocalPoint) Vertices() []core.Vec2 {
	return []core.Vec2{f.Position}
}

func (f *FocalPoint) BoundingBox() core.AABB {
	return core.NewAABB(f.Position, f.Position)
}

func (f *FocalPoint) ContainsPoint(p core.Vec2) bool {
	return false
}

// Intersect always misses: focal points never obstruct light
func (f *FocalPoint) Intersect(ray core.Ray) Intersection {
	return NoIntersection()
}
