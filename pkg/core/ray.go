package core

// Ray represents a ray with an origin, a unit direction, the light intensity
// it carries, and the number of bounces it has undergone since emission.
type Ray struct {
	Origin     Vec2
	Direction  Vec2
	Intensity  float64
	Generation int
}

// NewRay creates a new primary ray at full intensity and generation zero
func NewRay(origin, direction Vec2) Ray {
	return Ray{Origin: origin, Direction: direction.Normalize(), Intensity: 1.0}
}

// At returns the point at parameter t along the ray
func (r Ray) At(t float64) Vec2 {
	return r.Origin.Add(r.Direction.Multiply(t))
}

// Spawn creates a child ray at a new origin and direction. The child carries
// the parent's intensity scaled by multiplier and one more generation.
func (r Ray) Spawn(origin, direction Vec2, multiplier float64) Ray {
	return Ray{
		Origin:     origin,
		Direction:  direction.Normalize(),
		Intensity:  r.Intensity * multiplier,
		Generation: r.Generation + 1,
	}
}
