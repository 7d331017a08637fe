package scene

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/lightlab/go-2d-raytracer/pkg/core"
	"github.com/lightlab/go-2d-raytracer/pkg/geometry"
	"github.com/lightlab/go-2d-raytracer/pkg/lights"
	"github.com/lightlab/go-2d-raytracer/pkg/material"
)

// sceneFile is the JSON shape of a persisted scene
type sceneFile struct {
	Objects []shapeRecord  `json:"objects"`
	Targets []targetRecord `json:"targets"`
	Lights  []lightRecord  `json:"lights"`
}

type vec struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type materialRecord struct {
	Reflectivity    float64 `json:"reflectivity"`
	RefractiveIndex float64 `json:"refractiveIndex"`
	Absorptance     float64 `json:"absorptance"`
}

type shapeRecord struct {
	Kind     string         `json:"kind"`
	ID       int            `json:"id"`
	Position vec            `json:"position"`
	Rotation float64        `json:"rotation,omitempty"`
	Width    float64        `json:"width,omitempty"`
	Height   float64        `json:"height,omitempty"`
	RadiusX  float64        `json:"radiusX,omitempty"`
	RadiusY  float64        `json:"radiusY,omitempty"`
	Points   []vec          `json:"points,omitempty"`
	Material materialRecord `json:"material"`
}

type targetRecord struct {
	ID       int     `json:"id"`
	Position vec     `json:"position"`
	Radius   float64 `json:"radius"`
}

type lightRecord struct {
	Position    vec     `json:"position"`
	Rotation    float64 `json:"rotation,omitempty"`
	RayCount    int     `json:"rayCount"`
	RayLength   float64 `json:"rayLength"`
	Radius      float64 `json:"radius,omitempty"`
	SurfaceEmit bool    `json:"surfaceEmit,omitempty"`
}

// Load reads a scene from a JSON file
func Load(path string) (*Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open scene: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// Save writes a scene to a JSON file
func Save(path string, s *Scene) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create scene: %w", err)
	}
	defer f.Close()
	return Encode(f, s)
}

// Decode reads a scene from JSON
func Decode(r io.Reader) (*Scene, error) {
	var file sceneFile
	if err := json.NewDecoder(r).Decode(&file); err != nil {
		return nil, fmt.Errorf("decode scene: %w", err)
	}

	s := New()
	for _, rec := range file.Objects {
		shape, err := recordToShape(rec)
		if err != nil {
			return nil, err
		}
		s.AddObject(shape)
		if rec.ID > s.nextID {
			s.nextID = rec.ID
		}
	}
	for _, rec := range file.Targets {
		s.AddTarget(geometry.NewTarget(rec.ID, core.NewVec2(rec.Position.X, rec.Position.Y), rec.Radius))
		if rec.ID > s.nextID {
			s.nextID = rec.ID
		}
	}
	for _, rec := range file.Lights {
		s.AddLight(lights.Source{
			Position:    core.NewVec2(rec.Position.X, rec.Position.Y),
			Rotation:    rec.Rotation,
			RayCount:    rec.RayCount,
			RayLength:   rec.RayLength,
			Radius:      rec.Radius,
			SurfaceEmit: rec.SurfaceEmit,
		})
	}
	return s, nil
}

// Encode writes a scene as indented JSON
func Encode(w io.Writer, s *Scene) error {
	file := sceneFile{}

	for _, obj := range s.objects {
		rec, err := shapeToRecord(obj)
		if err != nil {
			return err
		}
		file.Objects = append(file.Objects, rec)
	}
	for _, tgt := range s.targets {
		target, ok := tgt.(*geometry.Target)
		if !ok {
			return fmt.Errorf("encode scene: unsupported target type %T", tgt)
		}
		file.Targets = append(file.Targets, targetRecord{
			ID:       target.ID(),
			Position: vec{X: target.Center.X, Y: target.Center.Y},
			Radius:   target.Radius,
		})
	}
	for _, light := range s.lights {
		file.Lights = append(file.Lights, lightRecord{
			Position:    vec{X: light.Position.X, Y: light.Position.Y},
			Rotation:    light.Rotation,
			RayCount:    light.RayCount,
			RayLength:   light.RayLength,
			Radius:      light.Radius,
			SurfaceEmit: light.SurfaceEmit,
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(file); err != nil {
		return fmt.Errorf("encode scene: %w", err)
	}
	return nil
}

func recordToShape(rec shapeRecord) (geometry.Shape, error) {
	position := core.NewVec2(rec.Position.X, rec.Position.Y)
	mat := material.New(rec.Material.Reflectivity, rec.Material.RefractiveIndex, rec.Material.Absorptance)

	switch rec.Kind {
	case "rectangle":
		return geometry.NewRectangle(rec.ID, position, rec.Width, rec.Height, rec.Rotation, mat), nil
	case "ellipse":
		return geometry.NewEllipse(rec.ID, position, rec.RadiusX, rec.RadiusY, rec.Rotation, mat), nil
	case "triangle":
		if len(rec.Points) != 3 {
			return nil, fmt.Errorf("decode scene: triangle %d has %d points, want 3", rec.ID, len(rec.Points))
		}
		return geometry.NewTriangle(rec.ID, position, rec.Rotation,
			core.NewVec2(rec.Points[0].X, rec.Points[0].Y),
			core.NewVec2(rec.Points[1].X, rec.Points[1].Y),
			core.NewVec2(rec.Points[2].X, rec.Points[2].Y),
			mat), nil
	case "focalPoint":
		return geometry.NewFocalPoint(rec.ID, position), nil
	default:
		return nil, fmt.Errorf("decode scene: unknown shape kind %q", rec.Kind)
	}
}

func shapeToRecord(shape geometry.Shape) (shapeRecord, error) {
	switch obj := shape.(type) {
	case *geometry.Rectangle:
		return shapeRecord{
			Kind:     obj.Kind().String(),
			ID:       obj.ID(),
			Position: vec{X: obj.Center.X, Y: obj.Center.Y},
			Rotation: obj.Rotation,
			Width:    obj.Width,
			Height:   obj.Height,
			Material: toMaterialRecord(obj.Mat),
		}, nil
	case *geometry.Ellipse:
		return shapeRecord{
			Kind:     obj.Kind().String(),
			ID:       obj.ID(),
			Position: vec{X: obj.Center.X, Y: obj.Center.Y},
			Rotation: obj.Rotation,
			RadiusX:  obj.RadiusX,
			RadiusY:  obj.RadiusY,
			Material: toMaterialRecord(obj.Mat),
		}, nil
	case *geometry.Triangle:
		points := obj.Points()
		return shapeRecord{
			Kind:     obj.Kind().String(),
			ID:       obj.ID(),
			Position: vec{X: obj.Center.X, Y: obj.Center.Y},
			Rotation: obj.Rotation,
			Points: []vec{
				{X: points[0].X, Y: points[0].Y},
				{X: points[1].X, Y: points[1].Y},
				{X: points[2].X, Y: points[2].Y},
			},
			Material: toMaterialRecord(obj.Mat),
		}, nil
	case *geometry.FocalPoint:
		return shapeRecord{
			Kind:     obj.Kind().String(),
			ID:       obj.ID(),
			Position: vec{X: obj.Position.X, Y: obj.Position.Y},
		}, nil
	default:
		return shapeRecord{}, fmt.Errorf("encode scene: unsupported shape type %T", shape)
	}
}

func toMaterialRecord(mat material.Material) materialRecord {
	return materialRecord{
		Reflectivity:    mat.Reflectivity,
		RefractiveIndex: mat.RefractiveIndex,
		Absorptance:     mat.Absorptance,
	}
}
