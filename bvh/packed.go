package bvh

import (
	"fmt"

	"github.com/achilleasa/spherebvh/types"
)

// PackedNode is a fixed-size node representation suitable for serialization
// and GPU upload. The meaning of the two int32 fields depends on the node
// type:
//
// - For internal nodes both are >0 and point to the L/R child nodes
// - For leafs LData is <= 0 and holds the negated index of the first
//   primitive while RData is >0 and holds the primitive count
type PackedNode struct {
	Min   types.Vec3
	LData int32

	Max   types.Vec3
	RData int32
}

// Set left and right child node indices.
func (n *PackedNode) SetChildNodes(left, right uint32) {
	n.LData = int32(left)
	n.RData = int32(right)
}

// Set primitive index and count.
func (n *PackedNode) SetPrimitives(firstPrimIndex, count uint32) {
	n.LData = -int32(firstPrimIndex)
	n.RData = int32(count)
}

// Get primitive index and count.
func (n *PackedNode) GetPrimitives() (firstPrimIndex, count uint32) {
	return uint32(-n.LData), uint32(n.RData)
}

// Returns true if this is a leaf node.
func (n *PackedNode) IsLeaf() bool {
	return n.LData <= 0
}

// Pack converts the tree nodes into their packed representation. Node
// indices are preserved.
func (t *Tree) Pack() []PackedNode {
	packed := make([]PackedNode, len(t.Nodes))
	for index, node := range t.Nodes {
		bounds := node.Bounds()
		packed[index].Min = bounds.Min
		packed[index].Max = bounds.Max

		switch n := node.(type) {
		case Leaf:
			packed[index].SetPrimitives(uint32(n.Start), uint32(n.Len()))
		case Internal:
			packed[index].SetChildNodes(uint32(n.Left), uint32(n.Right))
		}
	}
	return packed
}

// Unpack rebuilds a tree from a packed node list and the primitives it
// partitions. The primitives and the resulting tree are validated before
// being returned.
func Unpack(packed []PackedNode, primitives []Primitive) (*Tree, error) {
	if err := validatePrimitives(primitives); err != nil {
		return nil, err
	}

	nodes := make([]Node, len(packed))
	for index := range packed {
		pn := &packed[index]
		bounds := AABB{Min: pn.Min, Max: pn.Max}
		if pn.IsLeaf() {
			start, count := pn.GetPrimitives()
			nodes[index] = Leaf{BBox: bounds, Start: int(start), End: int(start) + int(count)}
			continue
		}
		if pn.RData <= 0 {
			return nil, fmt.Errorf("%w: packed node %d has invalid right child %d", ErrInvalidTree, index, pn.RData)
		}
		nodes[index] = Internal{BBox: bounds, Left: int(pn.LData), Right: int(pn.RData)}
	}

	tree := &Tree{Nodes: nodes, Primitives: primitives}
	if err := Validate(tree); err != nil {
		return nil, err
	}
	return tree, nil
}
