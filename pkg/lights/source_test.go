package lights

import (
	"math"
	"testing"

	"github.com/lightlab/go-2d-raytracer/pkg/core"
)

func TestPointSourceEmissions(t *testing.T) {
	source := NewPointSource(core.NewVec2(100, 200), 0, 4, 500)
	emissions := source.Emissions()

	if len(emissions) != 4 {
		t.Fatalf("Expected 4 emissions, got %d", len(emissions))
	}

	// All rays leave the center, evenly spread around the circle
	wantDirections := []core.Vec2{
		{X: 1, Y: 0},
		{X: 0, Y: 1},
		{X: -1, Y: 0},
		{X: 0, Y: -1},
	}
	for i, emission := range emissions {
		if emission.Origin != source.Position {
			t.Errorf("Emission %d origin = %v, want %v", i, emission.Origin, source.Position)
		}
		want := wantDirections[i]
		if math.Abs(emission.Direction.X-want.X) > 1e-12 ||
			math.Abs(emission.Direction.Y-want.Y) > 1e-12 {
			t.Errorf("Emission %d direction = %v, want %v", i, emission.Direction, want)
		}
	}
}

func TestPointSourceRotationOffset(t *testing.T) {
	source := NewPointSource(core.NewVec2(0, 0), math.Pi/2, 1, 100)
	emissions := source.Emissions()

	if len(emissions) != 1 {
		t.Fatalf("Expected 1 emission, got %d", len(emissions))
	}
	direction := emissions[0].Direction
	if math.Abs(direction.X) > 1e-12 || math.Abs(direction.Y-1) > 1e-12 {
		t.Errorf("Rotated emission direction = %v, want (0, 1)", direction)
	}
}

func TestSurfaceSourceEmissions(t *testing.T) {
	source := NewSurfaceSource(core.NewVec2(50, 50), 0, 10, 8, 500)
	emissions := source.Emissions()

	if len(emissions) != 8 {
		t.Fatalf("Expected 8 emissions, got %d", len(emissions))
	}

	for i, emission := range emissions {
		// Origin sits on the perimeter and the ray heads radially outward
		fromCenter := emission.Origin.Subtract(source.Position)
		if math.Abs(fromCenter.Length()-source.Radius) > 1e-9 {
			t.Errorf("Emission %d origin distance = %f, want %f",
				i, fromCenter.Length(), source.Radius)
		}
		if dot := fromCenter.Normalize().Dot(emission.Direction); math.Abs(dot-1) > 1e-9 {
			t.Errorf("Emission %d not radial: dot = %f", i, dot)
		}
	}
}

func TestEmissionsDeterministic(t *testing.T) {
	source := NewSurfaceSource(core.NewVec2(10, 20), 0.3, 5, 16, 300)

	first := source.Emissions()
	second := source.Emissions()

	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("Emission %d differs between calls: %v vs %v", i, first[i], second[i])
		}
	}
}

func TestEmissionsEmptyForZeroRays(t *testing.T) {
	for _, count := range []int{0, -3} {
		source := NewPointSource(core.NewVec2(0, 0), 0, count, 100)
		if emissions := source.Emissions(); emissions != nil {
			t.Errorf("RayCount=%d: expected nil emissions, got %d", count, len(emissions))
		}
	}
}
