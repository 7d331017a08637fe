package geometry

import (
	"math"

	"github.com/lightlab/go-2d-raytracer/pkg/core"
)

// Intersection is the uniform result of any ray/shape test. When Hit is
// false, Distance is +Inf and the remaining fields are zero; that value is
// the identity of the Closest reduction.
type Intersection struct {
	Hit      bool
	Distance float64
	Point    core.Vec2
	Normal   core.Vec2 // Unit normal at Point, opposing the incident ray
	Object   Shape
}

// NoIntersection returns the no-hit sentinel
func NoIntersection() Intersection {
	return Intersection{Distance: math.Inf(1)}
}

// Closest returns whichever of the two intersections hit at the smaller
// distance. Misses carry infinite distance, so they never win over a hit.
func Closest(a, b Intersection) Intersection {
	if !b.Hit {
		return a
	}
	if !a.Hit || b.Distance < a.Distance {
		return b
	}
	return a
}
