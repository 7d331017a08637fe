package material

// Material describes the optical response of a shape's surface: how much
// incident energy reflects, how strongly the interior bends transmitted
// light, and how much energy the surface absorbs outright.
type Material struct {
	Reflectivity    float64 // Fraction of energy reflected at the surface [0,1]
	RefractiveIndex float64 // Index of refraction of the interior [1.0,2.5]
	Absorptance     float64 // Fraction of energy absorbed at the surface [0,1]
}

// Air is the refractive index of the ambient medium rays travel in when they
// are not inside any object.
const Air = 1.0

// New creates a material with all coefficients clamped to their valid ranges.
// The engine assumes every material it receives is already valid, so clamping
// happens here, once, at construction.
func New(reflectivity, refractiveIndex, absorptance float64) Material {
	return Material{
		Reflectivity:    clamp(reflectivity, 0, 1),
		RefractiveIndex: clamp(refractiveIndex, 1.0, 2.5),
		Absorptance:     clamp(absorptance, 0, 1),
	}
}

// Mirror returns a fully reflective material
func Mirror() Material {
	return New(1.0, 1.0, 0)
}

// Glass returns a mostly transmissive material with the refractive index of
// crown glass
func Glass() Material {
	return New(0.1, 1.5, 0)
}

func clamp(v, minVal, maxVal float64) float64 {
	return max(minVal, min(maxVal, v))
}
