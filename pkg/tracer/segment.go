package tracer

import "github.com/lightlab/go-2d-raytracer/pkg/core"

// NoParent marks a top-level segment
const NoParent int32 = -1

// Segment is one drawn line of a traced path. Children are the reflection
// and refraction branches spawned at End. Parent and Children are indices
// into the owning Trace's arena, so ownership stays a strict tree while
// HitsTarget propagation can still walk upward. Segments are write-once
// after creation except for HitsTarget, which a descendant hitting a target
// sets retroactively on every ancestor.
type Segment struct {
	Start      core.Vec2
	End        core.Vec2
	Intensity  float64
	HitsTarget bool
	Parent     int32
	Children   []int32
}

// Trace is the output of one TraceAll call: an arena of segments plus the
// indices of every primary ray's top-level segments.
type Trace struct {
	Segments []Segment
	Roots    []int32
}

// add appends a segment to the arena, links it into its parent's child list
// (or the root list), and returns its index
func (t *Trace) add(seg Segment) int32 {
	index := int32(len(t.Segments))
	t.Segments = append(t.Segments, seg)

	if seg.Parent == NoParent {
		t.Roots = append(t.Roots, index)
	} else {
		parent := &t.Segments[seg.Parent]
		parent.Children = append(parent.Children, index)
	}
	return index
}

// markTargetPath sets HitsTarget on the segment and every ancestor up to the
// root, lighting up the full path back to the source
func (t *Trace) markTargetPath(index int32) {
	for index != NoParent {
		t.Segments[index].HitsTarget = true
		index = t.Segments[index].Parent
	}
}
