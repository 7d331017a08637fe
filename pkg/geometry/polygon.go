package geometry

import (
	"math"

	"github.com/lightlab/go-2d-raytracer/pkg/core"
)

// RayLineSegment intersects a ray with the line segment p1-p2 by solving the
// 2x2 linear system origin + t*dir = p1 + u*(p2-p1) via determinants. Returns
// false if the ray and segment are parallel (|det| < epsilon), if the hit is
// behind the ray (t < epsilon), or if it falls outside the segment
// (u outside [0,1]). The returned normal is the edge's perpendicular flipped
// to oppose the incoming ray direction.
func RayLineSegment(origin, dir, p1, p2 core.Vec2) (t float64, point, normal core.Vec2, ok bool) {
	edge := p2.Subtract(p1)

	det := dir.Cross(edge)
	if math.Abs(det) < core.Epsilon {
		return 0, core.Vec2{}, core.Vec2{}, false // Parallel, grazing counts as a miss
	}

	toStart := p1.Subtract(origin)
	t = toStart.Cross(edge) / det
	u := toStart.Cross(dir) / det

	if t < core.Epsilon || u < 0 || u > 1 {
		return 0, core.Vec2{}, core.Vec2{}, false
	}

	point = origin.Add(dir.Multiply(t))

	normal = edge.Perpendicular().Normalize()
	if normal.Dot(dir) > 0 {
		normal = normal.Negate()
	}

	return t, point, normal, true
}

// RayPolygon tests the ray against every edge of the closed polygon and
// keeps the minimum-distance hit. The polygon need not be convex; vertices
// must be in consistent winding order.
func RayPolygon(ray core.Ray, vertices []core.Vec2, shape Shape) Intersection {
	closest := NoIntersection()

	for i := range vertices {
		p1 := vertices[i]
		p2 := vertices[(i+1)%len(vertices)]

		t, point, normal, ok := RayLineSegment(ray.Origin, ray.Direction, p1, p2)
		if !ok {
			continue
		}

		closest = Closest(closest, Intersection{
			Hit:      true,
			Distance: t,
			Point:    point,
			Normal:   normal,
			Object:   shape,
		})
	}

	return closest
}

// pointInPolygon tests containment with an even-odd crossing count, so it
// works for non-convex polygons too.
func pointInPolygon(p core.Vec2, vertices []core.Vec2) bool {
	inside := false
	j := len(vertices) - 1

	for i := 0; i < len(vertices); i++ {
		vi, vj := vertices[i], vertices[j]
		if (vi.Y > p.Y) != (vj.Y > p.Y) &&
			p.X < (vj.X-vi.X)*(p.Y-vi.Y)/(vj.Y-vi.Y)+vi.X {
			inside = !inside
		}
		j = i
	}

	return inside
}
