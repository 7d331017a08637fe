package geometry

import (
	"math"
	"sort"

	"github.com/lightlab/go-2d-raytracer/pkg/core"
)

// DefaultMaxPerLeaf is the leaf threshold: nodes with this many or fewer
// shapes become leaves
const DefaultMaxPerLeaf = 4

// sahSplitCandidates caps how many partition points are scored per axis
const sahSplitCandidates = 10

// BVHNode represents a node in the Bounding Volume Hierarchy. Leaves hold the
// shapes; internal nodes hold exactly two children.
type BVHNode struct {
	BoundingBox core.AABB
	Left        *BVHNode
	Right       *BVHNode
	Shapes      []Shape // Non-nil for leaf nodes only
}

// IsLeaf reports whether the node holds shapes directly
func (n *BVHNode) IsLeaf() bool {
	return n.Shapes != nil
}

// BVH is a binary spatial index over scene shapes for fast closest-hit
// queries. It is built fresh from the full shape set and never mutated in
// place; a scene change means a full rebuild.
type BVH struct {
	Root *BVHNode
}

// NewBVH constructs a BVH over the given shapes using surface-area-heuristic
// splits. maxPerLeaf <= 0 selects the default leaf threshold. The input slice
// is copied so callers keep their ordering.
func NewBVH(shapes []Shape, maxPerLeaf int) *BVH {
	if maxPerLeaf <= 0 {
		maxPerLeaf = DefaultMaxPerLeaf
	}
	if len(shapes) == 0 {
		return &BVH{Root: nil}
	}

	shapesCopy := make([]Shape, len(shapes))
	copy(shapesCopy, shapes)

	return &BVH{Root: buildBVH(shapesCopy, maxPerLeaf)}
}

// buildBVH recursively builds the tree, falling back to a leaf whenever the
// shape count is small or no split produces two non-empty sides
func buildBVH(shapes []Shape, maxPerLeaf int) *BVHNode {
	boundingBox := shapes[0].BoundingBox()
	for i := 1; i < len(shapes); i++ {
		boundingBox = boundingBox.Union(shapes[i].BoundingBox())
	}

	if len(shapes) <= maxPerLeaf {
		return &BVHNode{
			BoundingBox: boundingBox,
			Shapes:      shapes,
		}
	}

	left, right, ok := findBestSplit(shapes)
	if !ok {
		// Degenerate split, recover locally with a leaf
		return &BVHNode{
			BoundingBox: boundingBox,
			Shapes:      shapes,
		}
	}

	return &BVHNode{
		BoundingBox: boundingBox,
		Left:        buildBVH(left, maxPerLeaf),
		Right:       buildBVH(right, maxPerLeaf),
	}
}

// findBestSplit evaluates candidate partitions along both axes, scoring each
// with the surface area heuristic cost area(left)*count(left) +
// area(right)*count(right), and returns the global minimum. Per axis the
// shapes are sorted by bounding-box centroid and up to sahSplitCandidates
// evenly spaced partition points are tried (never fewer than 1, never more
// than count-1). Returns ok=false when every candidate leaves a side empty.
func findBestSplit(shapes []Shape) (left, right []Shape, ok bool) {
	bestCost := math.Inf(1)
	var bestLeft, bestRight []Shape

	for axis := 0; axis < 2; axis++ {
		sorted := make([]Shape, len(shapes))
		copy(sorted, shapes)
		sortShapesByCentroid(sorted, axis)

		candidates := sahSplitCandidates
		if candidates > len(sorted)-1 {
			candidates = len(sorted) - 1
		}
		if candidates < 1 {
			candidates = 1
		}

		for i := 1; i <= candidates; i++ {
			splitIndex := i * len(sorted) / (candidates + 1)
			if splitIndex <= 0 || splitIndex >= len(sorted) {
				continue
			}

			leftSide := sorted[:splitIndex]
			rightSide := sorted[splitIndex:]

			cost := boundsOf(leftSide).Area()*float64(len(leftSide)) +
				boundsOf(rightSide).Area()*float64(len(rightSide))

			if cost < bestCost {
				bestCost = cost
				// Copy out: the next axis pass re-sorts the same backing array
				bestLeft = append([]Shape(nil), leftSide...)
				bestRight = append([]Shape(nil), rightSide...)
			}
		}
	}

	if bestLeft == nil || bestRight == nil {
		return nil, nil, false
	}
	return bestLeft, bestRight, true
}

// sortShapesByCentroid sorts shapes by their bounding box center along the
// specified axis
func sortShapesByCentroid(shapes []Shape, axis int) {
	sort.Slice(shapes, func(i, j int) bool {
		centerI := shapes[i].BoundingBox().Center()
		centerJ := shapes[j].BoundingBox().Center()
		if axis == 0 {
			return centerI.X < centerJ.X
		}
		return centerI.Y < centerJ.Y
	})
}

func boundsOf(shapes []Shape) core.AABB {
	box := shapes[0].BoundingBox()
	for i := 1; i < len(shapes); i++ {
		box = box.Union(shapes[i].BoundingBox())
	}
	return box
}

// Intersect returns the closest intersection of the ray with any shape in
// the tree, skipping the exclude shape (the medium the ray currently travels
// inside, compared by identity). Subtrees whose bounding box the ray misses
// are rejected with the slab test; both children of an internal node are
// always visited and the closer result wins.
func (bvh *BVH) Intersect(ray core.Ray, exclude Shape) Intersection {
	if bvh.Root == nil {
		return NoIntersection()
	}
	return intersectNode(bvh.Root, ray, exclude)
}

func intersectNode(node *BVHNode, ray core.Ray, exclude Shape) Intersection {
	if !node.BoundingBox.Hit(ray, core.Epsilon, math.Inf(1)) {
		return NoIntersection()
	}

	if node.IsLeaf() {
		closest := NoIntersection()
		for _, shape := range node.Shapes {
			if shape == exclude {
				continue
			}
			closest = Closest(closest, shape.Intersect(ray))
		}
		return closest
	}

	return Closest(
		intersectNode(node.Left, ray, exclude),
		intersectNode(node.Right, ray, exclude),
	)
}

// BruteForceIntersect tests the ray against every shape linearly, skipping
// the exclude shape. It is the fallback when the BVH is disabled or absent,
// and the reference the BVH must agree with.
func BruteForceIntersect(ray core.Ray, shapes []Shape, exclude Shape) Intersection {
	closest := NoIntersection()
	for _, shape := range shapes {
		if shape == exclude {
			continue
		}
		closest = Closest(closest, shape.Intersect(ray))
	}
	return closest
}

// BVHStats describes the structure of a built tree; used for tuning, not
// correctness
type BVHStats struct {
	Depth       int
	NodeCount   int
	LeafCount   int
	ObjectCount int
}

// Stats walks the tree and counts nodes, leaves, depth and stored objects
func (bvh *BVH) Stats() BVHStats {
	stats := BVHStats{}
	if bvh.Root != nil {
		collectStats(bvh.Root, 0, &stats)
	}
	return stats
}

func collectStats(node *BVHNode, depth int, stats *BVHStats) {
	stats.NodeCount++
	if depth > stats.Depth {
		stats.Depth = depth
	}

	if node.IsLeaf() {
		stats.LeafCount++
		stats.ObjectCount += len(node.Shapes)
		return
	}

	collectStats(node.Left, depth+1, stats)
	collectStats(node.Right, depth+1, stats)
}
