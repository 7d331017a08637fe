package core

import "math"

// AABB represents an axis-aligned bounding box
type AABB struct {
	Min Vec2 // Minimum corner
	Max Vec2 // Maximum corner
}

// NewAABB creates a new AABB from min and max points
func NewAABB(min, max Vec2) AABB {
	return AABB{Min: min, Max: max}
}

// NewAABBFromPoints creates an AABB that bounds all given points
func NewAABBFromPoints(points ...Vec2) AABB {
	if len(points) == 0 {
		return AABB{}
	}

	min := points[0]
	max := points[0]

	for _, point := range points[1:] {
		min.X = math.Min(min.X, point.X)
		min.Y = math.Min(min.Y, point.Y)

		max.X = math.Max(max.X, point.X)
		max.Y = math.Max(max.Y, point.Y)
	}

	return AABB{Min: min, Max: max}
}

// Hit tests if a ray intersects with this AABB using the slab method. A ray
// parallel to an axis must have its origin inside that axis's slab or the
// whole box is rejected.
func (aabb AABB) Hit(ray Ray, tMin, tMax float64) bool {
	for axis := 0; axis < 2; axis++ {
		var min, max, origin, direction float64

		switch axis {
		case 0: // X axis
			min = aabb.Min.X
			max = aabb.Max.X
			origin = ray.Origin.X
			direction = ray.Direction.X
		case 1: // Y axis
			min = aabb.Min.Y
			max = aabb.Max.Y
			origin = ray.Origin.Y
			direction = ray.Direction.Y
		}

		if math.Abs(direction) < Epsilon {
			// Ray is parallel to this axis
			if origin < min || origin > max {
				return false
			}
			continue
		}

		// Per-axis intersection interval
		invDirection := 1.0 / direction
		t1 := (min - origin) * invDirection
		t2 := (max - origin) * invDirection

		if t1 > t2 {
			t1, t2 = t2, t1
		}

		tMin = math.Max(tMin, t1)
		tMax = math.Min(tMax, t2)

		if tMin > tMax {
			return false
		}
	}

	return true
}

// Union returns an AABB that bounds both this AABB and another
func (aabb AABB) Union(other AABB) AABB {
	min := Vec2{
		X: math.Min(aabb.Min.X, other.Min.X),
		Y: math.Min(aabb.Min.Y, other.Min.Y),
	}
	max := Vec2{
		X: math.Max(aabb.Max.X, other.Max.X),
		Y: math.Max(aabb.Max.Y, other.Max.Y),
	}
	return AABB{Min: min, Max: max}
}

// Center returns the center point of the AABB
func (aabb AABB) Center() Vec2 {
	return aabb.Min.Add(aabb.Max).Multiply(0.5)
}

// Size returns the extent of the AABB along each axis
func (aabb AABB) Size() Vec2 {
	return aabb.Max.Subtract(aabb.Min)
}

// Area returns the area of the AABB, the cost measure used by the SAH split
func (aabb AABB) Area() float64 {
	size := aabb.Size()
	return size.X * size.Y
}

// Contains reports whether the point lies inside or on the box
func (aabb AABB) Contains(p Vec2) bool {
	return p.X >= aabb.Min.X && p.X <= aabb.Max.X &&
		p.Y >= aabb.Min.Y && p.Y <= aabb.Max.Y
}

// IsValid returns true if this is a valid AABB (min <= max for all axes)
func (aabb AABB) IsValid() bool {
	return aabb.Min.X <= aabb.Max.X && aabb.Min.Y <= aabb.Max.Y
}

// Expand returns an AABB expanded by the given amount in all directions
func (aabb AABB) Expand(amount float64) AABB {
	expansion := NewVec2(amount, amount)
	return AABB{
		Min: aabb.Min.Subtract(expansion),
		Max: aabb.Max.Add(expansion),
	}
}
