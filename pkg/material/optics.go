package material

import (
	"math"

	"github.com/lightlab/go-2d-raytracer/pkg/core"
)

// Reflect calculates the mirror reflection of a unit incident vector off a
// surface with unit normal n: r = i - 2*dot(i,n)*n
func Reflect(incident, normal core.Vec2) core.Vec2 {
	return incident.Subtract(normal.Multiply(2 * incident.Dot(normal)))
}

// Refract calculates the transmitted direction across a boundary between
// media with refractive indices n1 (incident side) and n2 (transmitted side)
// using Snell's law. The normal must oppose the incident direction. Returns
// false when the incidence angle exceeds the critical angle and the ray
// undergoes total internal reflection; the returned direction is unit length
// to within floating tolerance.
func Refract(incident, normal core.Vec2, n1, n2 float64) (core.Vec2, bool) {
	eta := n1 / n2
	cosTheta := math.Min(-incident.Dot(normal), 1.0)

	k := 1 - eta*eta*(1-cosTheta*cosTheta)
	if k < 0 {
		return core.Vec2{}, false // Total internal reflection
	}

	transmitted := incident.Multiply(eta).Add(normal.Multiply(eta*cosTheta - math.Sqrt(k)))
	return transmitted, true
}

// Reflectance calculates the Fresnel reflectance at a boundary between media
// with refractive indices n1 and n2 using Schlick's approximation. cosTheta
// is the cosine of the incidence angle. The tracer splits energy
// deterministically by material reflectivity rather than sampling this value;
// it is exposed for callers that want physically weighted splits.
func Reflectance(cosTheta, n1, n2 float64) float64 {
	r0 := (n1 - n2) / (n1 + n2)
	r0 = r0 * r0
	return r0 + (1-r0)*math.Pow(1-math.Abs(cosTheta), 5)
}
