package geometry

import (
	"math"

	"github.com/lightlab/go-2d-raytracer/pkg/core"
	"github.com/lightlab/go-2d-raytracer/pkg/material"
)

// Ellipse represents an ellipse with independent radii, rotated about its
// center
type Ellipse struct {
	id       int
	Center   core.Vec2
	RadiusX  float64
	RadiusY  float64
	Rotation float64 // Radians
	Mat      material.Material
}

// NewEllipse creates an ellipse; non-positive radii are clamped to a small
// positive size
func NewEllipse(id int, center core.Vec2, radiusX, radiusY, rotation float64, mat material.Material) *Ellipse {
	return &Ellipse{
		id:       id,
		Center:   center,
		RadiusX:  math.Max(radiusX, core.Epsilon),
		RadiusY:  math.Max(radiusY, core.Epsilon),
		Rotation: rotation,
		Mat:      mat,
	}
}

// NewCircle creates a circle of the given radius
func NewCircle(id int, center core.Vec2, radius float64, mat material.Material) *Ellipse {
	return NewEllipse(id, center, radius, radius, 0, mat)
}

func (e *Ellipse) ID() int                     { return e.id }
func (e *Ellipse) Kind() Kind                  { return KindEllipse }
func (e *Ellipse) Material() material.Material { return e.Mat }

// Vertices returns a polygon approximation of the ellipse. Resolution scales
// with the larger radius so big ellipses stay smooth without over-sampling
// small ones.
func (e *Ellipse) Vertices() []core.Vec2 {
	maxRadius := math.Max(e.RadiusX, e.RadiusY)
	segments := int(math.Ceil(maxRadius / 3))
	if segments < 16 {
		segments = 16
	} else if segments > 64 {
		segments = 64
	}

	vertices := make([]core.Vec2, segments)
	for i := 0; i < segments; i++ {
		angle := float64(i) * 2 * math.Pi / float64(segments)
		local := core.NewVec2(e.RadiusX*math.Cos(angle), e.RadiusY*math.Sin(angle))
		vertices[i] = local.Rotate(e.Rotation).Add(e.Center)
	}
	return vertices
}

// BoundingBox returns the tight world-space AABB of the rotated ellipse
func (e *Ellipse) BoundingBox() core.AABB {
	sin, cos := math.Sincos(e.Rotation)
	dx := math.Sqrt(e.RadiusX*e.RadiusX*cos*cos + e.RadiusY*e.RadiusY*sin*sin)
	dy := math.Sqrt(e.RadiusX*e.RadiusX*sin*sin + e.RadiusY*e.RadiusY*cos*cos)
	return core.NewAABB(
		e.Center.Subtract(core.NewVec2(dx, dy)),
		e.Center.Add(core.NewVec2(dx, dy)),
	)
}

// ContainsPoint tests containment in the ellipse's unit-circle local frame
func (e *Ellipse) ContainsPoint(p core.Vec2) bool {
	local := p.Subtract(e.Center).Rotate(-e.Rotation)
	nx := local.X / e.RadiusX
	ny := local.Y / e.RadiusY
	return nx*nx+ny*ny <= 1
}

// Intersect solves the analytic ray/ellipse intersection
func (e *Ellipse) Intersect(ray core.Ray) Intersection {
	return intersectEllipse(ray, e.Center, e.RadiusX, e.RadiusY, e.Rotation, e)
}

// intersectEllipse transforms the ray into the ellipse's unrotated,
// unit-circle-scaled local frame and solves the quadratic there. If the near
// root is behind the ray the far root is used instead, which means the ray
// originates inside the ellipse; the normal is then inverted to face the
// interior so it opposes the outgoing ray. The distance is recomputed in
// world space because the scaling distorts the ray parameter.
func intersectEllipse(ray core.Ray, center core.Vec2, radiusX, radiusY, rotation float64, shape Shape) Intersection {
	origin := ray.Origin.Subtract(center).Rotate(-rotation)
	dir := ray.Direction.Rotate(-rotation)

	origin = core.NewVec2(origin.X/radiusX, origin.Y/radiusY)
	dir = core.NewVec2(dir.X/radiusX, dir.Y/radiusY)

	// Quadratic at^2 + bt + c = 0 against the unit circle
	a := dir.Dot(dir)
	b := 2 * origin.Dot(dir)
	c := origin.Dot(origin) - 1

	discriminant := b*b - 4*a*c
	if discriminant < 0 || a < core.Epsilon*core.Epsilon {
		return NoIntersection()
	}

	sqrtD := math.Sqrt(discriminant)
	t := (-b - sqrtD) / (2 * a)

	inside := false
	if t < core.Epsilon {
		t = (-b + sqrtD) / (2 * a)
		inside = true
	}
	if t < core.Epsilon {
		return NoIntersection()
	}

	// Inverse-transform the hit point back to world space
	localHit := origin.Add(dir.Multiply(t))
	unscaled := core.NewVec2(localHit.X*radiusX, localHit.Y*radiusY)
	worldHit := unscaled.Rotate(rotation).Add(center)

	// Normal from the ellipse gradient (x/rx^2, y/ry^2) in the unrotated frame
	normal := core.NewVec2(unscaled.X/(radiusX*radiusX), unscaled.Y/(radiusY*radiusY)).
		Rotate(rotation).Normalize()
	if inside {
		normal = normal.Negate()
	}

	return Intersection{
		Hit:      true,
		Distance: worldHit.Subtract(ray.Origin).Length(),
		Point:    worldHit,
		Normal:   normal,
		Object:   shape,
	}
}
