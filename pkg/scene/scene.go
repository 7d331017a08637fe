package scene

import (
	"github.com/lightlab/go-2d-raytracer/pkg/geometry"
	"github.com/lightlab/go-2d-raytracer/pkg/lights"
)

// Scene owns the obstacles, targets and light sources the engine traces.
// Geometry edits set a dirty flag that tells the tracer to rebuild its
// spatial index on the next trace. Object order matters: when ray origins
// overlap several objects, the last-added object wins as starting medium.
type Scene struct {
	objects []geometry.Shape
	targets []geometry.Shape
	lights  []lights.Source
	dirty   bool
	nextID  int
}

// New creates an empty scene
func New() *Scene {
	return &Scene{}
}

// NextID reserves a fresh shape identifier
func (s *Scene) NextID() int {
	s.nextID++
	return s.nextID
}

// AddObject appends an obstacle and marks the scene dirty
func (s *Scene) AddObject(shape geometry.Shape) {
	s.objects = append(s.objects, shape)
	s.dirty = true
}

// AddTarget appends a target and marks the scene dirty
func (s *Scene) AddTarget(target geometry.Shape) {
	s.targets = append(s.targets, target)
	s.dirty = true
}

// AddLight appends a light source. Lights do not participate in the spatial
// index, so this does not dirty the scene.
func (s *Scene) AddLight(light lights.Source) {
	s.lights = append(s.lights, light)
}

// RemoveObject deletes the obstacle with the given id, preserving the order
// of the rest. Returns false if no object has that id.
func (s *Scene) RemoveObject(id int) bool {
	for i, obj := range s.objects {
		if obj.ID() == id {
			s.objects = append(s.objects[:i], s.objects[i+1:]...)
			s.dirty = true
			return true
		}
	}
	return false
}

// Objects returns the obstacle list in insertion order
func (s *Scene) Objects() []geometry.Shape { return s.objects }

// Targets returns the target list
func (s *Scene) Targets() []geometry.Shape { return s.targets }

// Lights returns the light sources
func (s *Scene) Lights() []lights.Source { return s.lights }

// Dirty reports whether geometry changed since the last ClearDirty
func (s *Scene) Dirty() bool { return s.dirty }

// ClearDirty acknowledges the change signal
func (s *Scene) ClearDirty() { s.dirty = false }

// MarkDirty forces a rebuild signal, for callers that mutate shape fields in
// place
func (s *Scene) MarkDirty() { s.dirty = true }
