package bvh

import (
	"fmt"
	"math"
	"time"

	"github.com/achilleasa/spherebvh/log"
)

type builder struct {
	logger log.Logger

	// Bvh nodes stored as a contiguous list. Entries are only ever appended
	// or rewritten in place; indices stay valid for the lifetime of the tree.
	nodes []Node

	// The primitive list; leaf ranges are partitioned in place.
	prims []Primitive

	// Leaves with at most this many primitives are not subdivided.
	leafThreshold int
}

// Construct a BVH over a set of primitives using axis-aligned spatial
// midpoint splits.
//
// The primitives slice is reordered in place and becomes the Primitives list
// of the returned tree. Leaves hold at most leafThreshold primitives unless
// their primitives cannot be separated by a midpoint split, in which case the
// leaf is kept as is.
func Build(primitives []Primitive, leafThreshold int) (*Tree, error) {
	if err := validateInput(primitives, leafThreshold); err != nil {
		return nil, err
	}

	b := &builder{
		logger:        log.New("bvh builder"),
		nodes:         make([]Node, 0, 2*len(primitives)/leafThreshold+1),
		prims:         primitives,
		leafThreshold: leafThreshold,
	}

	start := time.Now()
	b.nodes = append(b.nodes, Leaf{Start: 0, End: len(primitives)})
	b.computeBounds(RootIndex)
	b.subdivide(RootIndex)

	tree := &Tree{Nodes: b.nodes, Primitives: primitives}
	logStats(b.logger, tree, leafThreshold, time.Since(start))
	return tree, nil
}

// Recalculate the bounds of the node at index. Internal nodes require the
// bounds of their children to be up to date.
func (b *builder) computeBounds(index int) {
	switch n := b.nodes[index].(type) {
	case Leaf:
		n.BBox = rangeBounds(b.prims, n.Start, n.End)
		b.nodes[index] = n
	case Internal:
		n.BBox = Union(b.nodes[n.Left].Bounds(), b.nodes[n.Right].Bounds())
		b.nodes[index] = n
	}
}

// Recursively split the node at index until all leaves fall below the leaf
// threshold or cannot be split any further.
func (b *builder) subdivide(index int) {
	switch n := b.nodes[index].(type) {
	case Internal:
		b.subdivide(n.Left)
		b.subdivide(n.Right)
	case Leaf:
		mid, ok := splitLeaf(b.prims, n, b.leafThreshold)
		if !ok {
			return
		}

		left := len(b.nodes)
		b.nodes = append(b.nodes, Leaf{Start: n.Start, End: mid})
		right := len(b.nodes)
		b.nodes = append(b.nodes, Leaf{Start: mid, End: n.End})

		b.computeBounds(left)
		b.computeBounds(right)
		b.subdivide(left)
		b.subdivide(right)

		b.nodes[index] = Internal{Left: left, Right: right}
		b.computeBounds(index)
	}
}

// Partition the primitives of leaf around the spatial midpoint of its longest
// axis and return the index of the first primitive in the upper half. The
// returned flag is false if the leaf should not be split, either because it
// is small enough or because the split is degenerate.
func splitLeaf(prims []Primitive, leaf Leaf, leafThreshold int) (int, bool) {
	if leaf.Len() <= leafThreshold {
		return 0, false
	}

	axis := leaf.BBox.LongestAxis()
	plane := leaf.BBox.Min[axis] + leaf.BBox.Extent()[axis]/2
	mid := partition(prims, leaf.Start, leaf.End, axis, plane)
	if degenerateSplit(leaf, mid) {
		return 0, false
	}
	return mid, true
}

// A split is degenerate if the partition point lands on the first or the
// last primitive of the leaf range.
func degenerateSplit(leaf Leaf, mid int) bool {
	return mid == leaf.Start || mid == leaf.End-1
}

// Reorder prims[start:end] so that primitives whose position along axis is
// below plane come first. Returns the index of the first primitive that is
// not below the plane. The partition is not stable.
func partition(prims []Primitive, start, end int, axis Axis, plane float32) int {
	i, j := start, end-1
	for i <= j {
		if prims[i].Position[axis] < plane {
			i++
			continue
		}
		prims[i], prims[j] = prims[j], prims[i]
		j--
	}
	return i
}

// Calculate the union of the bounds of prims[start:end]. The range must not
// be empty.
func rangeBounds(prims []Primitive, start, end int) AABB {
	bounds := prims[start].Bounds()
	for i := start + 1; i < end; i++ {
		bounds = Union(bounds, prims[i].Bounds())
	}
	return bounds
}

func validateInput(prims []Primitive, leafThreshold int) error {
	if leafThreshold < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidLeafThreshold, leafThreshold)
	}
	if len(prims) == 0 {
		return ErrNoPrimitives
	}
	return validatePrimitives(prims)
}

func validatePrimitives(prims []Primitive) error {
	for index, p := range prims {
		if !p.Position.IsFinite() {
			return fmt.Errorf("%w: primitive %d has a non-finite position %v", ErrInvalidPrimitive, index, p.Position)
		}
		if !(p.Radius > 0) || math.IsInf(float64(p.Radius), 0) {
			return fmt.Errorf("%w: primitive %d has radius %v; expected a positive finite value", ErrInvalidPrimitive, index, p.Radius)
		}
	}
	return nil
}
