package scene

import (
	"testing"

	"github.com/lightlab/go-2d-raytracer/pkg/core"
	"github.com/lightlab/go-2d-raytracer/pkg/geometry"
	"github.com/lightlab/go-2d-raytracer/pkg/lights"
	"github.com/lightlab/go-2d-raytracer/pkg/material"
)

func TestSceneDirtyTracking(t *testing.T) {
	s := New()
	if s.Dirty() {
		t.Error("New scene should start clean")
	}

	s.AddObject(geometry.NewCircle(s.NextID(), core.NewVec2(100, 100), 20, material.Glass()))
	if !s.Dirty() {
		t.Error("AddObject should dirty the scene")
	}

	s.ClearDirty()
	s.AddTarget(geometry.NewTarget(s.NextID(), core.NewVec2(200, 200), 10))
	if !s.Dirty() {
		t.Error("AddTarget should dirty the scene")
	}

	s.ClearDirty()
	s.AddLight(lights.NewPointSource(core.NewVec2(0, 0), 0, 8, 100))
	if s.Dirty() {
		t.Error("AddLight must not dirty the scene: lights are not indexed")
	}

	s.MarkDirty()
	if !s.Dirty() {
		t.Error("MarkDirty should set the flag")
	}
}

func TestSceneRemoveObject(t *testing.T) {
	s := New()
	first := s.NextID()
	second := s.NextID()
	third := s.NextID()
	s.AddObject(geometry.NewCircle(first, core.NewVec2(10, 10), 5, material.Glass()))
	s.AddObject(geometry.NewCircle(second, core.NewVec2(20, 20), 5, material.Glass()))
	s.AddObject(geometry.NewCircle(third, core.NewVec2(30, 30), 5, material.Glass()))
	s.ClearDirty()

	if !s.RemoveObject(second) {
		t.Fatal("RemoveObject returned false for existing id")
	}
	if !s.Dirty() {
		t.Error("RemoveObject should dirty the scene")
	}

	objects := s.Objects()
	if len(objects) != 2 {
		t.Fatalf("Expected 2 objects after removal, got %d", len(objects))
	}
	if objects[0].ID() != first || objects[1].ID() != third {
		t.Errorf("Removal broke insertion order: ids %d, %d", objects[0].ID(), objects[1].ID())
	}

	if s.RemoveObject(999) {
		t.Error("RemoveObject returned true for unknown id")
	}
}

func TestSceneNextIDMonotonic(t *testing.T) {
	s := New()
	previous := s.NextID()
	for i := 0; i < 10; i++ {
		id := s.NextID()
		if id <= previous {
			t.Fatalf("NextID went backwards: %d after %d", id, previous)
		}
		previous = id
	}
}

func TestDemoScenesAreComplete(t *testing.T) {
	tests := []struct {
		name  string
		build func(width, height float64) *Scene
	}{
		{"mirror", NewMirrorScene},
		{"lens", NewLensScene},
		{"showcase", NewShowcaseScene},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := tt.build(800, 600)
			if len(s.Objects()) == 0 {
				t.Error("Demo scene has no objects")
			}
			if len(s.Targets()) == 0 {
				t.Error("Demo scene has no targets")
			}
			if len(s.Lights()) == 0 {
				t.Error("Demo scene has no lights")
			}
			if !s.Dirty() {
				t.Error("Freshly built scene should be dirty")
			}
		})
	}
}
