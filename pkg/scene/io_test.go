package scene

import (
	"bytes"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/lightlab/go-2d-raytracer/pkg/core"
	"github.com/lightlab/go-2d-raytracer/pkg/geometry"
	"github.com/lightlab/go-2d-raytracer/pkg/lights"
	"github.com/lightlab/go-2d-raytracer/pkg/material"
)

func buildPersistableScene() *Scene {
	s := New()
	s.AddObject(geometry.NewRectangle(s.NextID(), core.NewVec2(600, 300), 40, 200, 0.4,
		material.New(0.5, 1.5, 0.1)))
	s.AddObject(geometry.NewEllipse(s.NextID(), core.NewVec2(200, 150), 60, 30, 1.1,
		material.Glass()))
	s.AddObject(geometry.NewTriangle(s.NextID(), core.NewVec2(400, 450), 0.2,
		core.NewVec2(-30, -20), core.NewVec2(30, -20), core.NewVec2(0, 35),
		material.Mirror()))
	s.AddObject(geometry.NewFocalPoint(s.NextID(), core.NewVec2(100, 100)))

	s.AddTarget(geometry.NewTarget(s.NextID(), core.NewVec2(700, 500), 18))

	s.AddLight(lights.NewPointSource(core.NewVec2(100, 100), 0.5, 24, 1600))
	s.AddLight(lights.NewSurfaceSource(core.NewVec2(400, 50), 0, 10, 16, 1600))
	return s
}

func TestSceneRoundTrip(t *testing.T) {
	original := buildPersistableScene()

	var buf bytes.Buffer
	if err := Encode(&buf, original); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	decoded, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	if !reflect.DeepEqual(decoded.Objects(), original.Objects()) {
		t.Error("Objects differ after round trip")
	}
	if !reflect.DeepEqual(decoded.Targets(), original.Targets()) {
		t.Error("Targets differ after round trip")
	}
	if !reflect.DeepEqual(decoded.Lights(), original.Lights()) {
		t.Error("Lights differ after round trip")
	}
}

func TestDecodePreservesIDCounter(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, buildPersistableScene()); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	decoded, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	// Fresh ids must not collide with persisted ones
	fresh := decoded.NextID()
	for _, obj := range decoded.Objects() {
		if obj.ID() == fresh {
			t.Fatalf("NextID %d collides with persisted object", fresh)
		}
	}
	for _, tgt := range decoded.Targets() {
		if tgt.ID() == fresh {
			t.Fatalf("NextID %d collides with persisted target", fresh)
		}
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.json")
	original := buildPersistableScene()

	if err := Save(path, original); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !reflect.DeepEqual(loaded.Objects(), original.Objects()) {
		t.Error("Objects differ after file round trip")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestDecodeRejectsBadInput(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"malformed json", `{"objects": [`},
		{"unknown kind", `{"objects": [{"kind": "hexagon", "id": 1, "position": {"x": 0, "y": 0}}]}`},
		{"triangle missing points", `{"objects": [{"kind": "triangle", "id": 1, "position": {"x": 0, "y": 0}, "points": [{"x": 1, "y": 1}]}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Decode(strings.NewReader(tt.input)); err == nil {
				t.Error("Expected decode error")
			}
		})
	}
}

func TestDecodedSceneIsDirty(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, buildPersistableScene()); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	decoded, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if !decoded.Dirty() {
		t.Error("Decoded scene must be dirty so the tracer rebuilds its index")
	}
}
