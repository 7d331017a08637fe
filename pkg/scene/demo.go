package scene

import (
	"math"

	"github.com/lightlab/go-2d-raytracer/pkg/core"
	"github.com/lightlab/go-2d-raytracer/pkg/geometry"
	"github.com/lightlab/go-2d-raytracer/pkg/lights"
	"github.com/lightlab/go-2d-raytracer/pkg/material"
)

// NewMirrorScene builds a point source firing at a mirror rectangle with a
// target placed to catch the reflection
func NewMirrorScene(width, height float64) *Scene {
	s := New()

	mirror := material.Mirror()
	s.AddObject(geometry.NewRectangle(s.NextID(), core.NewVec2(width*0.75, height/2), 20, height*0.5, math.Pi/8, mirror))
	s.AddObject(geometry.NewFocalPoint(s.NextID(), core.NewVec2(width*0.25, height/2)))

	s.AddTarget(geometry.NewTarget(s.NextID(), core.NewVec2(width*0.5, height*0.15), 18))

	s.AddLight(lights.NewPointSource(core.NewVec2(width*0.25, height/2), 0, 32, width*2))
	return s
}

// NewLensScene builds a glass circle between a narrow-beam source and a
// target, so refracted rays converge on the far side
func NewLensScene(width, height float64) *Scene {
	s := New()

	glass := material.Glass()
	s.AddObject(geometry.NewCircle(s.NextID(), core.NewVec2(width/2, height/2), height*0.2, glass))

	s.AddTarget(geometry.NewTarget(s.NextID(), core.NewVec2(width*0.85, height/2), 15))

	s.AddLight(lights.NewPointSource(core.NewVec2(width*0.1, height/2), -math.Pi/24, 16, width*2.5))
	return s
}

// NewShowcaseScene builds a mixed scene exercising every shape kind: a
// rotated ellipse, a triangle, a glass square, a surface-emitting source and
// two targets
func NewShowcaseScene(width, height float64) *Scene {
	s := New()

	s.AddObject(geometry.NewEllipse(s.NextID(), core.NewVec2(width*0.3, height*0.3), 70, 40, math.Pi/6,
		material.New(0.4, 1.4, 0.05)))
	s.AddObject(geometry.NewEquilateralTriangle(s.NextID(), core.NewVec2(width*0.7, height*0.35), 90, math.Pi,
		material.New(0.8, 1.0, 0.1)))
	s.AddObject(geometry.NewSquare(s.NextID(), core.NewVec2(width*0.5, height*0.7), 80, math.Pi/4,
		material.Glass()))

	s.AddTarget(geometry.NewTarget(s.NextID(), core.NewVec2(width*0.9, height*0.8), 16))
	s.AddTarget(geometry.NewTarget(s.NextID(), core.NewVec2(width*0.1, height*0.85), 16))

	s.AddLight(lights.NewSurfaceSource(core.NewVec2(width/2, height*0.1), 0, 12, 48, width*2))
	return s
}
