package bvh

import "github.com/achilleasa/spherebvh/types"

// RootIndex is the arena index of the tree root.
const RootIndex = 0

// A BVH stored as a flat node arena plus the primitive list it partitions.
// Trees are immutable once returned by a builder.
type Tree struct {
	Nodes      []Node
	Primitives []Primitive
}

// A callback invoked for each visited node. Returning false skips the
// node's children.
type WalkFunc func(index int, node Node, depth int) bool

// Walk visits every node reachable from the root in pre-order.
func (t *Tree) Walk(fn WalkFunc) {
	if len(t.Nodes) == 0 {
		return
	}
	t.walk(RootIndex, 0, fn)
}

func (t *Tree) walk(index, depth int, fn WalkFunc) {
	node := t.Nodes[index]
	if !fn(index, node, depth) {
		return
	}

	switch n := node.(type) {
	case Internal:
		t.walk(n.Left, depth+1, fn)
		t.walk(n.Right, depth+1, fn)
	case Leaf:
	}
}

// Leaves returns the leaves reachable from the root in left-to-right order.
func (t *Tree) Leaves() []Leaf {
	var leaves []Leaf
	t.Walk(func(_ int, node Node, _ int) bool {
		if leaf, ok := node.(Leaf); ok {
			leaves = append(leaves, leaf)
		}
		return true
	})
	return leaves
}

// LeafPrimitives returns the primitives referenced by a leaf.
func (t *Tree) LeafPrimitives(leaf Leaf) []Primitive {
	return t.Primitives[leaf.Start:leaf.End]
}

// Path returns the primitive positions in their post-partition order.
func (t *Tree) Path() []types.Vec3 {
	path := make([]types.Vec3, len(t.Primitives))
	for i, p := range t.Primitives {
		path[i] = p.Position
	}
	return path
}

// Get the bounds of the whole tree.
func (t *Tree) Bounds() AABB {
	if len(t.Nodes) == 0 {
		return AABB{}
	}
	return t.Nodes[RootIndex].Bounds()
}
