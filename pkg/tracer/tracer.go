package tracer

import (
	"math"

	"github.com/lightlab/go-2d-raytracer/pkg/core"
	"github.com/lightlab/go-2d-raytracer/pkg/geometry"
	"github.com/lightlab/go-2d-raytracer/pkg/lights"
	"github.com/lightlab/go-2d-raytracer/pkg/material"
)

// Scene is the engine's view of the scene collaborator. Shapes are borrowed
// read-only for the duration of one TraceAll call; the caller must not mutate
// them while a trace is executing.
type Scene interface {
	Objects() []geometry.Shape
	Targets() []geometry.Shape
	Lights() []lights.Source

	// Dirty reports whether scene geometry changed since the last trace,
	// which forces a BVH rebuild. ClearDirty acknowledges the signal.
	Dirty() bool
	ClearDirty()
}

// indexState is the lifecycle of the tracer's spatial index. A rebuild
// discards the prior tree entirely; there is no incremental update.
type indexState int

const (
	indexEmpty indexState = iota // No tree: empty scene or never built
	indexBuilt                   // Tree matches the scene
	indexDirty                   // Scene changed, rebuild before next query
)

// Tracer runs the light transport simulation. It exclusively owns the BVH
// and rebuilds it lazily when the scene is marked dirty. A Tracer is
// single-threaded: one TraceAll call fully drains its work queue before
// returning.
type Tracer struct {
	config Config
	logger core.Logger
	bvh    *geometry.BVH
	state  indexState
}

// New creates a tracer. logger may be nil to disable logging.
func New(config Config, logger core.Logger) *Tracer {
	if logger == nil {
		logger = nopLogger{}
	}
	return &Tracer{config: config, logger: logger}
}

// Config returns the tracer's configuration
func (t *Tracer) Config() Config {
	return t.config
}

// MarkDirty signals that scene geometry changed, forcing a BVH rebuild on
// the next trace
func (t *Tracer) MarkDirty() {
	if t.state == indexBuilt {
		t.state = indexDirty
	}
}

// Stats returns the structure of the current BVH, or zero stats when no tree
// is built
func (t *Tracer) Stats() geometry.BVHStats {
	if t.bvh == nil {
		return geometry.BVHStats{}
	}
	return t.bvh.Stats()
}

// workItem is one pending queue entry: a ray waiting to be expanded into a
// segment, with the medium it travels in, its remaining trace distance, and
// the arena index of its parent segment.
type workItem struct {
	ray       core.Ray
	medium    geometry.Shape
	remaining float64
	parent    int32
}

// TraceAll emits every light source's rays and expands each into a tree of
// segments by repeated closest-intersection queries, until rays exit the
// canvas, fall below the intensity floor, exhaust their bounce budget, or
// strike a target. The result is deterministic: tracing an unchanged scene
// twice yields identical segment forests without rebuilding the BVH.
func (t *Tracer) TraceAll(sc Scene) *Trace {
	objects := sc.Objects()
	targets := sc.Targets()

	if sc.Dirty() {
		if t.state == indexBuilt {
			t.state = indexDirty
		}
		sc.ClearDirty()
	}

	if t.state != indexBuilt {
		t.rebuild(objects, targets)
	}

	// Brute-force fallback set, also used when the scene is empty
	all := make([]geometry.Shape, 0, len(objects)+len(targets))
	all = append(all, objects...)
	all = append(all, targets...)

	trace := &Trace{}
	for _, light := range sc.Lights() {
		for _, emission := range light.Emissions() {
			item := workItem{
				ray:       core.NewRay(emission.Origin, emission.Direction),
				medium:    startingMedium(objects, emission.Origin),
				remaining: light.RayLength,
				parent:    NoParent,
			}
			t.tracePrimary(trace, all, item)
		}
	}
	return trace
}

// rebuild discards the prior BVH and builds a fresh one over all obstacles
// and targets. An empty scene leaves no tree, which routes every query for
// that call through brute force.
func (t *Tracer) rebuild(objects, targets []geometry.Shape) {
	shapes := make([]geometry.Shape, 0, len(objects)+len(targets))
	shapes = append(shapes, objects...)
	shapes = append(shapes, targets...)

	if len(shapes) == 0 {
		t.bvh = nil
		t.state = indexEmpty
		return
	}

	t.bvh = geometry.NewBVH(shapes, geometry.DefaultMaxPerLeaf)
	t.state = indexBuilt

	stats := t.bvh.Stats()
	t.logger.Printf("bvh rebuilt: %d shapes, %d nodes, %d leaves, depth %d",
		stats.ObjectCount, stats.NodeCount, stats.LeafCount, stats.Depth)
}

// tracePrimary drains a FIFO work queue seeded with one primary ray,
// appending segments to the trace as the ray and its descendants terminate
func (t *Tracer) tracePrimary(trace *Trace, all []geometry.Shape, root workItem) {
	queue := []workItem{root}

	for len(queue) > 0 {
		item := queue[0]
		queue = queue[1:]

		if item.ray.Intensity < t.config.MinIntensity {
			continue // Dropped silently, no segment
		}

		hit := t.closestHit(item.ray, item.medium, all)
		boundaryDist, boundaryPoint, boundaryOK := t.boundaryHit(item.ray)

		// Nearest of the candidate terminations wins
		if hit.Hit && (!boundaryOK || hit.Distance <= boundaryDist) {
			segment := Segment{
				Start:     item.ray.Origin,
				End:       hit.Point,
				Intensity: item.ray.Intensity,
				Parent:    item.parent,
			}

			if hit.Object.Kind() == geometry.KindTarget {
				index := trace.add(segment)
				trace.markTargetPath(index)
				continue
			}

			index := trace.add(segment)

			remaining := item.remaining - hit.Distance
			if remaining <= 0 || item.ray.Generation >= t.config.MaxBounces {
				continue
			}

			for _, child := range nextRays(item.ray, hit, item.medium) {
				queue = append(queue, workItem{
					ray:       child.ray,
					medium:    child.medium,
					remaining: remaining,
					parent:    index,
				})
			}
			continue
		}

		if boundaryOK {
			trace.add(Segment{
				Start:     item.ray.Origin,
				End:       boundaryPoint,
				Intensity: item.ray.Intensity,
				Parent:    item.parent,
			})
			continue
		}

		// No obstacle and no canvas edge ahead (the ray started outside the
		// canvas heading away): draw out its remaining length.
		trace.add(Segment{
			Start:     item.ray.Origin,
			End:       item.ray.At(item.remaining),
			Intensity: item.ray.Intensity,
			Parent:    item.parent,
		})
	}
}

// closestHit queries the spatial index (or brute force) for the nearest
// obstacle or target, excluding the medium the ray travels inside. When the
// ray is inside a medium, its exit through that medium's own boundary is a
// candidate too, and the nearer of the two wins.
func (t *Tracer) closestHit(ray core.Ray, medium geometry.Shape, all []geometry.Shape) geometry.Intersection {
	var hit geometry.Intersection
	if t.config.UseBVH && t.bvh != nil {
		hit = t.bvh.Intersect(ray, medium)
	} else {
		hit = geometry.BruteForceIntersect(ray, all, medium)
	}

	if medium != nil {
		hit = geometry.Closest(hit, medium.Intersect(ray))
	}
	return hit
}

// boundaryHit finds the nearest crossing of the four canvas edges
func (t *Tracer) boundaryHit(ray core.Ray) (float64, core.Vec2, bool) {
	corners := [4]core.Vec2{
		{X: 0, Y: 0},
		{X: t.config.CanvasWidth, Y: 0},
		{X: t.config.CanvasWidth, Y: t.config.CanvasHeight},
		{X: 0, Y: t.config.CanvasHeight},
	}

	best := math.Inf(1)
	var bestPoint core.Vec2
	found := false

	for i := 0; i < 4; i++ {
		dist, point, _, ok := geometry.RayLineSegment(ray.Origin, ray.Direction, corners[i], corners[(i+1)%4])
		if ok && dist < best {
			best = dist
			bestPoint = point
			found = true
		}
	}
	return best, bestPoint, found
}

// spawn pairs a child ray with the medium it will travel in
type spawn struct {
	ray    core.Ray
	medium geometry.Shape
}

// nextRays computes the children of a ray at a surface hit. A reflected
// child is always spawned. When Snell refraction succeeds a refracted child
// is spawned too, and the energy splits by the material's reflectivity; on
// total internal reflection the reflected child carries all non-absorbed
// energy. The refracted child's medium flips between air and the hit object.
func nextRays(ray core.Ray, hit geometry.Intersection, medium geometry.Shape) []spawn {
	mat := hit.Object.Material()
	entering := medium != hit.Object

	n1, n2 := material.Air, mat.RefractiveIndex
	if medium != nil {
		n1 = medium.Material().RefractiveIndex
	}
	if !entering {
		n1, n2 = mat.RefractiveIndex, material.Air
	}

	transmit := 1 - mat.Absorptance
	reflectDir := material.Reflect(ray.Direction, hit.Normal)

	refractDir, ok := material.Refract(ray.Direction, hit.Normal, n1, n2)
	if !ok {
		return []spawn{
			{ray: ray.Spawn(hit.Point, reflectDir, transmit), medium: medium},
		}
	}

	var refractMedium geometry.Shape
	if entering {
		refractMedium = hit.Object
	}

	return []spawn{
		{ray: ray.Spawn(hit.Point, reflectDir, mat.Reflectivity*transmit), medium: medium},
		{ray: ray.Spawn(hit.Point, refractDir, (1-mat.Reflectivity)*transmit), medium: refractMedium},
	}
}

// startingMedium finds the object a ray origin lies inside. When origins
// overlap, the topmost object wins, which is the last one added to the scene.
func startingMedium(objects []geometry.Shape, origin core.Vec2) geometry.Shape {
	var medium geometry.Shape
	for _, obj := range objects {
		if obj.ContainsPoint(origin) {
			medium = obj
		}
	}
	return medium
}

type nopLogger struct{}

func (nopLogger) Printf(format string, args ...interface{}) {}
