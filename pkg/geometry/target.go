package geometry

import (
	"math"

	"github.com/lightlab/go-2d-raytracer/pkg/core"
	"github.com/lightlab/go-2d-raytracer/pkg/material"
)

// Target is a circular sensor. Rays intersect it like any obstacle, but a
// hit terminates the ray and lights up the whole path that reached it
// instead of spawning reflections.
type Target struct {
	id     int
	Center core.Vec2
	Radius float64
}

// NewTarget creates a circular target of the given radius
func NewTarget(id int, center core.Vec2, radius float64) *Target {
	return &Target{id: id, Center: center, Radius: math.Max(radius, core.Epsilon)}
}

func (t *Target) ID() int   { return t.id }
func (t *Target) Kind() Kind { return KindTarget }

// Material returns the zero material: targets are not reflective
func (t *Target) Material() material.Material { return material.Material{} }

// Vertices returns a polygon approximation of the target's circle
func (t *Target) Vertices() []core.Vec2 {
	const segments = 24
	vertices := make([]core.Vec2, segments)
	for i := 0; i < segments; i++ {
		angle := float64(i) * 2 * math.Pi / float64(segments)
		vertices[i] = t.Center.Add(core.FromAngle(angle).Multiply(t.Radius))
	}
	return vertices
}

func (t *Target) BoundingBox() core.AABB {
	r := core.NewVec2(t.Radius, t.Radius)
	return core.NewAABB(t.Center.Subtract(r), t.Center.Add(r))
}

func (t *Target) ContainsPoint(p core.Vec2) bool {
	return p.Subtract(t.Center).LengthSquared() <= t.Radius*t.Radius
}

// Intersect solves the analytic ray/circle intersection
func (t *Target) Intersect(ray core.Ray) Intersection {
	return intersectEllipse(ray, t.Center, t.Radius, t.Radius, 0, t)
}
