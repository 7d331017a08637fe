package lights

import (
	"math"

	"github.com/lightlab/go-2d-raytracer/pkg/core"
)

// Source is a light source the tracer emits rays from. A point source emits
// every ray from its center; a surface source distributes ray origins around
// its perimeter, each ray leaving outward.
type Source struct {
	Position    core.Vec2
	Rotation    float64 // Radians, offsets the first ray's angle
	RayCount    int
	RayLength   float64 // Total distance each ray may travel across bounces
	Radius      float64 // Perimeter radius for surface emission
	SurfaceEmit bool
}

// Emission is one ray slot of a source
type Emission struct {
	Origin    core.Vec2
	Direction core.Vec2
}

// NewPointSource creates a source that emits count rays from its center,
// evenly spread over the full circle starting at rotation
func NewPointSource(position core.Vec2, rotation float64, count int, rayLength float64) Source {
	return Source{
		Position:  position,
		Rotation:  rotation,
		RayCount:  count,
		RayLength: rayLength,
	}
}

// NewSurfaceSource creates a source that emits count rays outward from
// evenly spaced points on its perimeter
func NewSurfaceSource(position core.Vec2, rotation, radius float64, count int, rayLength float64) Source {
	return Source{
		Position:    position,
		Rotation:    rotation,
		RayCount:    count,
		RayLength:   rayLength,
		Radius:      radius,
		SurfaceEmit: true,
	}
}

// Emissions computes one {origin, direction} pair per ray slot. The result is
// deterministic: slot i always maps to the same angle.
func (s Source) Emissions() []Emission {
	if s.RayCount <= 0 {
		return nil
	}

	emissions := make([]Emission, s.RayCount)
	for i := 0; i < s.RayCount; i++ {
		angle := s.Rotation + float64(i)*2*math.Pi/float64(s.RayCount)
		direction := core.FromAngle(angle)

		origin := s.Position
		if s.SurfaceEmit {
			origin = s.Position.Add(direction.Multiply(s.Radius))
		}

		emissions[i] = Emission{Origin: origin, Direction: direction}
	}
	return emissions
}
