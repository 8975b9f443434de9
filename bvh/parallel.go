package bvh

import (
	"context"
	"runtime"
	"time"

	"github.com/achilleasa/spherebvh/log"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// Ranges with fewer primitives than this are built on the calling goroutine.
const defaultParallelCutoff = 1024

type parallelBuilder struct {
	prims         []Primitive
	leafThreshold int
	cutoff        int

	// Limits the number of extra goroutines working on subtrees.
	sem *semaphore.Weighted
}

// BuildParallel constructs the same tree as Build, splitting the work for
// independent subtrees across up to workers goroutines. If workers <= 0 the
// value of GOMAXPROCS is used.
//
// Each subtree is built into its own node list which is then spliced into
// the parent's list, so the node order and primitive order of the result are
// identical to the ones produced by Build for the same input.
func BuildParallel(ctx context.Context, primitives []Primitive, leafThreshold, workers int) (*Tree, error) {
	return buildParallel(ctx, primitives, leafThreshold, workers, defaultParallelCutoff)
}

func buildParallel(ctx context.Context, primitives []Primitive, leafThreshold, workers, cutoff int) (*Tree, error) {
	if err := validateInput(primitives, leafThreshold); err != nil {
		return nil, err
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	logger := log.New("bvh builder")
	logger.Debugf("building BVH for %d primitives using %d workers", len(primitives), workers)

	b := &parallelBuilder{
		prims:         primitives,
		leafThreshold: leafThreshold,
		cutoff:        cutoff,
		sem:           semaphore.NewWeighted(int64(workers - 1)),
	}

	start := time.Now()
	rootLeaf := Leaf{
		BBox:  rangeBounds(primitives, 0, len(primitives)),
		Start: 0,
		End:   len(primitives),
	}
	root, desc, err := b.buildSubtree(ctx, rootLeaf)
	if err != nil {
		return nil, err
	}

	nodes := make([]Node, 0, len(desc)+1)
	nodes = append(nodes, offsetChildNodes(root, 1))
	nodes = appendWithOffset(nodes, desc, 1)

	tree := &Tree{Nodes: nodes, Primitives: primitives}
	logStats(logger, tree, leafThreshold, time.Since(start))
	return tree, nil
}

// Subdivide leaf and return its final node together with the list of its
// descendants. Child indices in both refer to positions in the descendant
// list.
func (b *parallelBuilder) buildSubtree(ctx context.Context, leaf Leaf) (Node, []Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	if leaf.Len() < b.cutoff {
		seq := &builder{
			nodes:         []Node{leaf},
			prims:         b.prims,
			leafThreshold: b.leafThreshold,
		}
		seq.subdivide(0)
		return offsetChildNodes(seq.nodes[0], -1), appendWithOffset(nil, seq.nodes[1:], -1), nil
	}

	mid, ok := splitLeaf(b.prims, leaf, b.leafThreshold)
	if !ok {
		return leaf, nil, nil
	}

	leftLeaf := Leaf{BBox: rangeBounds(b.prims, leaf.Start, mid), Start: leaf.Start, End: mid}
	rightLeaf := Leaf{BBox: rangeBounds(b.prims, mid, leaf.End), Start: mid, End: leaf.End}

	var (
		left, right         Node
		leftDesc, rightDesc []Node
	)
	g, gctx := errgroup.WithContext(ctx)
	buildLeft := func() (err error) {
		left, leftDesc, err = b.buildSubtree(gctx, leftLeaf)
		return err
	}

	// Hand the left subtree to another goroutine if a worker slot is free.
	if b.sem.TryAcquire(1) {
		g.Go(func() error {
			defer b.sem.Release(1)
			return buildLeft()
		})
	} else if err := buildLeft(); err != nil {
		return nil, nil, err
	}

	var rightErr error
	right, rightDesc, rightErr = b.buildSubtree(gctx, rightLeaf)
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	if rightErr != nil {
		return nil, nil, rightErr
	}

	// Descendant layout: left, right, left subtree, right subtree.
	leftOffset := 2
	rightOffset := 2 + len(leftDesc)
	desc := make([]Node, 0, 2+len(leftDesc)+len(rightDesc))
	desc = append(desc, offsetChildNodes(left, leftOffset), offsetChildNodes(right, rightOffset))
	desc = appendWithOffset(desc, leftDesc, leftOffset)
	desc = appendWithOffset(desc, rightDesc, rightOffset)

	node := Internal{
		BBox:  Union(left.Bounds(), right.Bounds()),
		Left:  0,
		Right: 1,
	}
	return node, desc, nil
}

func appendWithOffset(dst, nodes []Node, offset int) []Node {
	for _, node := range nodes {
		dst = append(dst, offsetChildNodes(node, offset))
	}
	return dst
}
