package bvh

// Node is implemented by the two kinds of BVH arena entries: Leaf and Internal.
// The set is closed; callers should handle both in a type switch.
type Node interface {
	Bounds() AABB
	isNode()
}

// A terminal node referencing the primitive range [Start, End).
type Leaf struct {
	BBox  AABB
	Start int
	End   int
}

// A non-terminal node referencing two child nodes in the same arena.
type Internal struct {
	BBox  AABB
	Left  int
	Right int
}

func (l Leaf) Bounds() AABB     { return l.BBox }
func (n Internal) Bounds() AABB { return n.BBox }

// Get the number of primitives in the leaf.
func (l Leaf) Len() int {
	return l.End - l.Start
}

func (Leaf) isNode()     {}
func (Internal) isNode() {}

// Shift the child indices of an internal node by offset. Leaves are returned
// unchanged.
func offsetChildNodes(node Node, offset int) Node {
	if n, ok := node.(Internal); ok {
		n.Left += offset
		n.Right += offset
		return n
	}
	return node
}
