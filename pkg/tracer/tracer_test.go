package tracer

import (
	"fmt"
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/lightlab/go-2d-raytracer/pkg/core"
	"github.com/lightlab/go-2d-raytracer/pkg/geometry"
	"github.com/lightlab/go-2d-raytracer/pkg/lights"
	"github.com/lightlab/go-2d-raytracer/pkg/material"
	"github.com/lightlab/go-2d-raytracer/pkg/scene"
)

// countingLogger records every log line for assertions
type countingLogger struct {
	lines []string
}

func (l *countingLogger) Printf(format string, args ...interface{}) {
	l.lines = append(l.lines, fmt.Sprintf(format, args...))
}

func (l *countingLogger) rebuilds() int {
	count := 0
	for _, line := range l.lines {
		if strings.Contains(line, "bvh rebuilt") {
			count++
		}
	}
	return count
}

func approxVec2(t *testing.T, got, want core.Vec2, label string) {
	t.Helper()
	if math.Abs(got.X-want.X) > 1e-6 || math.Abs(got.Y-want.Y) > 1e-6 {
		t.Errorf("%s = (%f, %f), want (%f, %f)", label, got.X, got.Y, want.X, want.Y)
	}
}

func TestTraceAll_MirrorReflection(t *testing.T) {
	// A single horizontal ray strikes the left face of a vertical mirror and
	// reflects straight back to the left canvas edge.
	sc := scene.New()
	sc.AddObject(geometry.NewRectangle(sc.NextID(),
		core.NewVec2(600, 300), 40, 200, 0, material.Mirror()))
	sc.AddLight(lights.NewPointSource(core.NewVec2(400, 300), 0, 1, 2000))

	tr := New(DefaultConfig(), nil)
	trace := tr.TraceAll(sc)

	if len(trace.Segments) != 2 {
		t.Fatalf("Expected 2 segments (incident + reflected), got %d", len(trace.Segments))
	}
	if len(trace.Roots) != 1 || trace.Roots[0] != 0 {
		t.Fatalf("Expected single root at index 0, got %v", trace.Roots)
	}

	incident := trace.Segments[0]
	approxVec2(t, incident.Start, core.NewVec2(400, 300), "incident start")
	approxVec2(t, incident.End, core.NewVec2(580, 300), "incident end")
	if incident.Intensity != 1.0 {
		t.Errorf("Incident intensity = %f, want 1.0", incident.Intensity)
	}
	if incident.Parent != NoParent {
		t.Errorf("Incident parent = %d, want NoParent", incident.Parent)
	}
	if !reflect.DeepEqual(incident.Children, []int32{1}) {
		t.Errorf("Incident children = %v, want [1]", incident.Children)
	}

	reflected := trace.Segments[1]
	approxVec2(t, reflected.Start, core.NewVec2(580, 300), "reflected start")
	approxVec2(t, reflected.End, core.NewVec2(0, 300), "reflected end")
	if reflected.Intensity != 1.0 {
		t.Errorf("Reflected intensity = %f, want 1.0 (perfect mirror)", reflected.Intensity)
	}
	if reflected.Parent != 0 {
		t.Errorf("Reflected parent = %d, want 0", reflected.Parent)
	}
}

func TestTraceAll_TargetPathOverThreeBounces(t *testing.T) {
	// Two mirrors fold the ray twice before it reaches the target; every
	// segment on the path must end up flagged.
	sc := scene.New()
	sc.AddObject(geometry.NewRectangle(sc.NextID(),
		core.NewVec2(300, 210), 600, 20, 0, material.Mirror()))
	sc.AddObject(geometry.NewRectangle(sc.NextID(),
		core.NewVec2(310, 50), 20, 200, 0, material.Mirror()))
	sc.AddTarget(geometry.NewTarget(sc.NextID(), core.NewVec2(240, 40), 15))
	sc.AddLight(lights.NewPointSource(core.NewVec2(100, 100), math.Pi/4, 1, 2000))

	tr := New(DefaultConfig(), nil)
	trace := tr.TraceAll(sc)

	if len(trace.Segments) != 3 {
		t.Fatalf("Expected 3 segments, got %d", len(trace.Segments))
	}

	approxVec2(t, trace.Segments[0].End, core.NewVec2(200, 200), "first bounce")
	approxVec2(t, trace.Segments[1].End, core.NewVec2(300, 100), "second bounce")

	// Third segment runs up-left through the target's near rim
	wantDist := 60*math.Sqrt2 - 15
	gotDist := trace.Segments[2].Start.DistanceTo(trace.Segments[2].End)
	if math.Abs(gotDist-wantDist) > 1e-6 {
		t.Errorf("Final segment length = %f, want %f", gotDist, wantDist)
	}

	for i, seg := range trace.Segments {
		if !seg.HitsTarget {
			t.Errorf("Segment %d not flagged as hitting target", i)
		}
	}
}

func TestTraceAll_TotalInternalReflection(t *testing.T) {
	// A ray inside glass striking the boundary beyond the critical angle
	// spawns exactly one child carrying all non-absorbed energy.
	sc := scene.New()
	sc.AddObject(geometry.NewCircle(sc.NextID(),
		core.NewVec2(400, 300), 100, material.New(0.2, 1.5, 0)))
	sc.AddLight(lights.NewPointSource(core.NewVec2(320, 300), math.Pi/2, 1, 2000))

	config := DefaultConfig()
	config.MaxBounces = 1
	tr := New(config, nil)
	trace := tr.TraceAll(sc)

	if len(trace.Segments) != 2 {
		t.Fatalf("Expected incident + one TIR child, got %d segments", len(trace.Segments))
	}

	incident := trace.Segments[0]
	approxVec2(t, incident.End, core.NewVec2(320, 360), "exit point")
	if len(incident.Children) != 1 {
		t.Fatalf("Expected exactly 1 child on total internal reflection, got %d",
			len(incident.Children))
	}

	child := trace.Segments[incident.Children[0]]
	if child.Intensity != 1.0 {
		t.Errorf("TIR child intensity = %f, want 1.0", child.Intensity)
	}
}

func TestTraceAll_RefractionSplitsEnergy(t *testing.T) {
	// Below the critical angle a partially reflective surface spawns two
	// children whose intensities split by reflectivity.
	sc := scene.New()
	sc.AddObject(geometry.NewRectangle(sc.NextID(),
		core.NewVec2(600, 300), 40, 200, 0, material.New(0.3, 1.5, 0)))
	sc.AddLight(lights.NewPointSource(core.NewVec2(400, 300), 0, 1, 2000))

	config := DefaultConfig()
	config.MaxBounces = 1
	tr := New(config, nil)
	trace := tr.TraceAll(sc)

	incident := trace.Segments[0]
	if len(incident.Children) != 2 {
		t.Fatalf("Expected reflected + refracted children, got %d", len(incident.Children))
	}

	reflected := trace.Segments[incident.Children[0]]
	refracted := trace.Segments[incident.Children[1]]
	if math.Abs(reflected.Intensity-0.3) > 1e-9 {
		t.Errorf("Reflected intensity = %f, want 0.3", reflected.Intensity)
	}
	if math.Abs(refracted.Intensity-0.7) > 1e-9 {
		t.Errorf("Refracted intensity = %f, want 0.7", refracted.Intensity)
	}
}

func TestTraceAll_IntensityNeverIncreases(t *testing.T) {
	sc := scene.NewShowcaseScene(800, 600)
	tr := New(DefaultConfig(), nil)
	trace := tr.TraceAll(sc)

	if len(trace.Segments) == 0 {
		t.Fatal("Showcase trace produced no segments")
	}

	for i, seg := range trace.Segments {
		if seg.Parent == NoParent {
			continue
		}
		parent := trace.Segments[seg.Parent]
		if seg.Intensity > parent.Intensity+1e-12 {
			t.Errorf("Segment %d intensity %f exceeds parent %f",
				i, seg.Intensity, parent.Intensity)
		}
	}
}

func TestTraceAll_IdempotentWithoutRebuild(t *testing.T) {
	sc := scene.NewShowcaseScene(800, 600)
	logger := &countingLogger{}
	tr := New(DefaultConfig(), logger)

	first := tr.TraceAll(sc)
	second := tr.TraceAll(sc)

	if !reflect.DeepEqual(first, second) {
		t.Error("Tracing an unchanged scene twice produced different results")
	}
	if logger.rebuilds() != 1 {
		t.Errorf("Expected exactly 1 BVH rebuild across both traces, got %d",
			logger.rebuilds())
	}
}

func TestTraceAll_RebuildsAfterSceneChange(t *testing.T) {
	sc := scene.NewMirrorScene(800, 600)
	logger := &countingLogger{}
	tr := New(DefaultConfig(), logger)

	tr.TraceAll(sc)
	sc.AddObject(geometry.NewCircle(sc.NextID(),
		core.NewVec2(200, 200), 30, material.Glass()))
	tr.TraceAll(sc)

	if logger.rebuilds() != 2 {
		t.Errorf("Expected a rebuild after adding an object, got %d rebuilds",
			logger.rebuilds())
	}
}

func TestTraceAll_DropsFaintRaysSilently(t *testing.T) {
	// Both children of a 50/50 split fall below the floor: only the incident
	// segment survives, with no placeholder children.
	sc := scene.New()
	sc.AddObject(geometry.NewRectangle(sc.NextID(),
		core.NewVec2(600, 300), 40, 200, 0, material.New(0.5, 1.0, 0)))
	sc.AddLight(lights.NewPointSource(core.NewVec2(400, 300), 0, 1, 2000))

	config := DefaultConfig()
	config.MinIntensity = 0.6
	tr := New(config, nil)
	trace := tr.TraceAll(sc)

	if len(trace.Segments) != 1 {
		t.Fatalf("Expected only the incident segment, got %d", len(trace.Segments))
	}
	if len(trace.Segments[0].Children) != 0 {
		t.Errorf("Dropped rays must leave no children, got %v", trace.Segments[0].Children)
	}
}

func TestTraceAll_EmptySceneReachesBoundary(t *testing.T) {
	sc := scene.New()
	sc.AddLight(lights.NewPointSource(core.NewVec2(400, 300), 0, 1, 2000))

	tr := New(DefaultConfig(), nil)
	trace := tr.TraceAll(sc)

	if len(trace.Segments) != 1 {
		t.Fatalf("Expected 1 boundary segment, got %d", len(trace.Segments))
	}
	approxVec2(t, trace.Segments[0].End, core.NewVec2(800, 300), "boundary exit")
}

func TestTraceAll_BruteForceMatchesBVH(t *testing.T) {
	build := func() *scene.Scene { return scene.NewShowcaseScene(800, 600) }

	withBVH := New(DefaultConfig(), nil).TraceAll(build())

	config := DefaultConfig()
	config.UseBVH = false
	withoutBVH := New(config, nil).TraceAll(build())

	if !reflect.DeepEqual(withBVH.Segments, withoutBVH.Segments) {
		t.Error("BVH and brute-force traces diverge on the same scene")
	}
}

func TestStartingMedium(t *testing.T) {
	back := geometry.NewCircle(1, core.NewVec2(100, 100), 50, material.Glass())
	front := geometry.NewCircle(2, core.NewVec2(120, 100), 50, material.Glass())
	objects := []geometry.Shape{back, front}

	tests := []struct {
		name   string
		origin core.Vec2
		want   geometry.Shape
	}{
		{"outside everything", core.NewVec2(500, 500), nil},
		{"inside first only", core.NewVec2(60, 100), back},
		{"inside overlap picks last added", core.NewVec2(110, 100), front},
		{"inside second only", core.NewVec2(165, 100), front},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := startingMedium(objects, tt.origin); got != tt.want {
				t.Errorf("startingMedium(%v) = %v, want %v", tt.origin, got, tt.want)
			}
		})
	}
}

func TestTracer_StatsBeforeAndAfterTrace(t *testing.T) {
	sc := scene.NewShowcaseScene(800, 600)
	tr := New(DefaultConfig(), nil)

	if stats := tr.Stats(); stats.NodeCount != 0 {
		t.Errorf("Expected zero stats before first trace, got %+v", stats)
	}

	tr.TraceAll(sc)

	stats := tr.Stats()
	want := len(sc.Objects()) + len(sc.Targets())
	if stats.ObjectCount != want {
		t.Errorf("Indexed %d shapes, want %d", stats.ObjectCount, want)
	}
}
