package bvh

import (
	"errors"
	"math"
	"math/rand"
	"sort"
	"testing"

	"github.com/achilleasa/spherebvh/types"
	"github.com/google/go-cmp/cmp"
)

func prim(x, y, z, radius float32) Primitive {
	return Primitive{Position: types.XYZ(x, y, z), Radius: radius}
}

// Generate count primitives with the same radius scattered inside a cube.
func randomPrimitives(seed int64, count int, extent, radius float32) []Primitive {
	rng := rand.New(rand.NewSource(seed))
	prims := make([]Primitive, count)
	for i := range prims {
		prims[i] = prim(
			(rng.Float32()*2-1)*extent,
			(rng.Float32()*2-1)*extent,
			(rng.Float32()*2-1)*extent,
			radius,
		)
	}
	return prims
}

func copyPrimitives(prims []Primitive) []Primitive {
	out := make([]Primitive, len(prims))
	copy(out, prims)
	return out
}

func TestSinglePrimitive(t *testing.T) {
	p := prim(1, 2, 3, 0.5)
	tree, err := Build([]Primitive{p}, 1)
	if err != nil {
		t.Fatal(err)
	}

	if len(tree.Nodes) != 1 {
		t.Fatalf("expected tree to have 1 node; got %d", len(tree.Nodes))
	}
	leaf, ok := tree.Nodes[RootIndex].(Leaf)
	if !ok {
		t.Fatalf("expected root to be a leaf; got %T", tree.Nodes[RootIndex])
	}
	if leaf.Start != 0 || leaf.End != 1 {
		t.Fatalf("expected leaf range [0, 1); got [%d, %d)", leaf.Start, leaf.End)
	}
	if leaf.BBox != p.Bounds() {
		t.Fatalf("expected leaf bounds %v; got %v", p.Bounds(), leaf.BBox)
	}
}

func TestMidpointSplits(t *testing.T) {
	prims := []Primitive{
		prim(-10, 0, 0, 1),
		prim(-5, 0, 0, 1),
		prim(0, 0, 0, 1),
		prim(5, 0, 0, 1),
		prim(10, 0, 0, 1),
	}

	tree, err := Build(prims, 2)
	if err != nil {
		t.Fatal(err)
	}
	if err = Validate(tree); err != nil {
		t.Fatal(err)
	}

	// The root splits at x=0 and its right half splits again at x=5.
	expNodes := []Node{
		Internal{BBox: AABB{types.XYZ(-11, -1, -1), types.XYZ(11, 1, 1)}, Left: 1, Right: 2},
		Leaf{BBox: AABB{types.XYZ(-11, -1, -1), types.XYZ(-4, 1, 1)}, Start: 0, End: 2},
		Internal{BBox: AABB{types.XYZ(-1, -1, -1), types.XYZ(11, 1, 1)}, Left: 3, Right: 4},
		Leaf{BBox: AABB{types.XYZ(-1, -1, -1), types.XYZ(1, 1, 1)}, Start: 2, End: 3},
		Leaf{BBox: AABB{types.XYZ(4, -1, -1), types.XYZ(11, 1, 1)}, Start: 3, End: 5},
	}
	if diff := cmp.Diff(expNodes, tree.Nodes); diff != "" {
		t.Fatalf("unexpected tree nodes (-want +got):\n%s", diff)
	}

	expLeafSets := [][]float32{{-10, -5}, {0}, {5, 10}}
	leaves := tree.Leaves()
	if len(leaves) != len(expLeafSets) {
		t.Fatalf("expected %d leaves; got %d", len(expLeafSets), len(leaves))
	}
	for index, leaf := range leaves {
		var xs []float32
		for _, p := range tree.LeafPrimitives(leaf) {
			xs = append(xs, p.Position[XAxis])
		}
		sort.Slice(xs, func(i, j int) bool { return xs[i] < xs[j] })
		if diff := cmp.Diff(expLeafSets[index], xs); diff != "" {
			t.Fatalf("[leaf %d] unexpected primitive set (-want +got):\n%s", index, diff)
		}
	}
}

func TestSplitAxisSelection(t *testing.T) {
	type spec struct {
		bounds  AABB
		expAxis Axis
	}
	specs := []spec{
		{AABB{types.XYZ(0, 0, 0), types.XYZ(3, 2, 1)}, XAxis},
		{AABB{types.XYZ(0, 0, 0), types.XYZ(1, 3, 2)}, YAxis},
		{AABB{types.XYZ(0, 0, 0), types.XYZ(1, 2, 3)}, ZAxis},
		// Ties favor the lower axis.
		{AABB{types.XYZ(0, 0, 0), types.XYZ(2, 2, 1)}, XAxis},
		{AABB{types.XYZ(0, 0, 0), types.XYZ(2, 2, 2)}, XAxis},
		{AABB{types.XYZ(0, 0, 0), types.XYZ(1, 2, 2)}, YAxis},
	}

	for index, s := range specs {
		if got := s.bounds.LongestAxis(); got != s.expAxis {
			t.Fatalf("[spec %d] expected axis %d; got %d", index, s.expAxis, got)
		}
	}
}

func TestPartition(t *testing.T) {
	prims := []Primitive{
		prim(4, 0, 0, 1),
		prim(1, 0, 0, 1),
		prim(3, 0, 0, 1),
		prim(0, 0, 0, 1),
		prim(2, 0, 0, 1),
	}

	mid := partition(prims, 0, len(prims), XAxis, 2)
	if mid != 2 {
		t.Fatalf("expected partition point 2; got %d", mid)
	}
	for i, p := range prims {
		below := p.Position[XAxis] < 2
		if below != (i < mid) {
			t.Fatalf("primitive %d at x=%v is on the wrong side of the partition point %d", i, p.Position[XAxis], mid)
		}
	}
}

func TestCoincidentPrimitivesStayInOneLeaf(t *testing.T) {
	prims := make([]Primitive, 10)
	for i := range prims {
		prims[i] = prim(3, 3, 3, 1)
	}

	tree, err := Build(prims, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(tree.Nodes) != 1 {
		t.Fatalf("expected tree to have 1 node; got %d", len(tree.Nodes))
	}
	leaf, ok := tree.Nodes[RootIndex].(Leaf)
	if !ok || leaf.Len() != len(prims) {
		t.Fatalf("expected a single leaf with %d primitives; got %#v", len(prims), tree.Nodes[RootIndex])
	}
}

func TestCoincidentClusterAmongSeparablePrimitives(t *testing.T) {
	var prims []Primitive
	for i := 0; i < 8; i++ {
		prims = append(prims, prim(0, 0, 0, 1))
	}
	prims = append(prims, prim(100, 0, 0, 1), prim(120, 0, 0, 1))

	tree, err := Build(prims, 2)
	if err != nil {
		t.Fatal(err)
	}
	if err = Validate(tree); err != nil {
		t.Fatal(err)
	}

	stats := ComputeStats(tree, 2)
	if stats.OversizedLeaves != 1 || stats.MaxLeafSize != 8 {
		t.Fatalf("expected a single oversized leaf with 8 primitives; got %+v", stats)
	}
}

func TestDegenerateSplitAtLastPrimitive(t *testing.T) {
	// The midpoint plane at x=5 leaves only the last primitive in the upper
	// half so the root is never split.
	prims := []Primitive{
		prim(0, 0, 0, 1),
		prim(1, 0, 0, 1),
		prim(2, 0, 0, 1),
		prim(10, 0, 0, 1),
	}

	tree, err := Build(prims, 1)
	if err != nil {
		t.Fatal(err)
	}

	expNodes := []Node{
		Leaf{BBox: AABB{types.XYZ(-1, -1, -1), types.XYZ(11, 1, 1)}, Start: 0, End: 4},
	}
	if diff := cmp.Diff(expNodes, tree.Nodes); diff != "" {
		t.Fatalf("unexpected tree nodes (-want +got):\n%s", diff)
	}
}

func TestDegenerateSplit(t *testing.T) {
	type spec struct {
		leaf   Leaf
		mid    int
		expRes bool
	}
	specs := []spec{
		{Leaf{Start: 0, End: 4}, 0, true},
		{Leaf{Start: 0, End: 4}, 3, true},
		{Leaf{Start: 0, End: 4}, 1, false},
		{Leaf{Start: 0, End: 4}, 2, false},
		{Leaf{Start: 5, End: 7}, 6, true},
		{Leaf{Start: 5, End: 8}, 6, false},
	}

	for index, s := range specs {
		if got := degenerateSplit(s.leaf, s.mid); got != s.expRes {
			t.Fatalf("[spec %d] expected %t; got %t", index, s.expRes, got)
		}
	}
}

func TestLeafThresholdRespected(t *testing.T) {
	prims := randomPrimitives(42, 500, 500, 4.5)
	// Duplicate some positions so that degenerate splits can occur.
	for i := 0; i < 20; i++ {
		prims = append(prims, prims[i])
	}

	for _, threshold := range []int{1, 2, 4, 16} {
		tree, err := Build(copyPrimitives(prims), threshold)
		if err != nil {
			t.Fatal(err)
		}
		if err = Validate(tree); err != nil {
			t.Fatalf("[threshold %d] %v", threshold, err)
		}

		for _, leaf := range tree.Leaves() {
			if leaf.Len() <= threshold {
				continue
			}

			// Re-running the split on a copy must land on the first or
			// the last primitive of the leaf.
			leafPrims := copyPrimitives(tree.LeafPrimitives(leaf))
			axis := leaf.BBox.LongestAxis()
			plane := leaf.BBox.Min[axis] + leaf.BBox.Extent()[axis]/2
			mid := partition(leafPrims, 0, len(leafPrims), axis, plane)
			if mid != 0 && mid != len(leafPrims)-1 {
				t.Fatalf("[threshold %d] leaf [%d, %d) exceeds the threshold but splits at offset %d", threshold, leaf.Start, leaf.End, mid)
			}
		}
	}
}

func TestLeavesPartitionPrimitives(t *testing.T) {
	for _, count := range []int{1, 2, 3, 7, 64, 333} {
		tree, err := Build(randomPrimitives(int64(count), count, 100, 1), 3)
		if err != nil {
			t.Fatal(err)
		}

		next := 0
		for _, leaf := range tree.Leaves() {
			if leaf.Start != next {
				t.Fatalf("[count %d] expected leaf to start at %d; got %d", count, next, leaf.Start)
			}
			next = leaf.End
		}
		if next != count {
			t.Fatalf("[count %d] expected leaves to cover %d primitives; got %d", count, count, next)
		}
	}
}

func TestBuildIsDeterministic(t *testing.T) {
	prims := randomPrimitives(7, 200, 50, 2)

	tree1, err := Build(copyPrimitives(prims), 4)
	if err != nil {
		t.Fatal(err)
	}
	tree2, err := Build(copyPrimitives(prims), 4)
	if err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff(tree1, tree2); diff != "" {
		t.Fatalf("expected identical trees (-first +second):\n%s", diff)
	}
}

func TestBuildErrors(t *testing.T) {
	nan := float32(math.NaN())
	type spec struct {
		prims     []Primitive
		threshold int
		expErr    error
	}
	specs := []spec{
		{nil, 1, ErrNoPrimitives},
		{[]Primitive{}, 2, ErrNoPrimitives},
		{[]Primitive{prim(0, 0, 0, 1)}, 0, ErrInvalidLeafThreshold},
		{[]Primitive{prim(0, 0, 0, 1)}, -3, ErrInvalidLeafThreshold},
		{[]Primitive{prim(0, 0, 0, 1), prim(1, 0, 0, 0)}, 1, ErrInvalidPrimitive},
		{[]Primitive{prim(0, 0, 0, -1)}, 1, ErrInvalidPrimitive},
		{[]Primitive{prim(0, 0, 0, nan)}, 1, ErrInvalidPrimitive},
		{[]Primitive{prim(nan, 0, 0, 1)}, 1, ErrInvalidPrimitive},
	}

	for index, s := range specs {
		_, err := Build(s.prims, s.threshold)
		if !errors.Is(err, s.expErr) {
			t.Fatalf("[spec %d] expected error %v; got %v", index, s.expErr, err)
		}
	}
}

func TestPrimitiveBoundsAndUnion(t *testing.T) {
	a := prim(0, 0, 0, 1).Bounds()
	b := prim(4, -2, 1, 0.5).Bounds()
	c := prim(-3, 5, 2, 2).Bounds()

	exp := AABB{types.XYZ(-1, -1, -1), types.XYZ(1, 1, 1)}
	if a != exp {
		t.Fatalf("expected bounds %v; got %v", exp, a)
	}

	if Union(a, b) != Union(b, a) {
		t.Fatal("expected union to be commutative")
	}
	if Union(Union(a, b), c) != Union(a, Union(b, c)) {
		t.Fatal("expected union to be associative")
	}

	exp = AABB{types.XYZ(-5, -2.5, -1), types.XYZ(4.5, 7, 4)}
	if got := Union(Union(a, b), c); got != exp {
		t.Fatalf("expected union %v; got %v", exp, got)
	}
}
