package bvh

import "fmt"

// Validate checks that t is a well-formed BVH: all child links point forward
// into the arena, every primitive is referenced by exactly one reachable leaf
// and every node's bounds match the bounds of its contents.
func Validate(t *Tree) error {
	if len(t.Nodes) == 0 {
		return fmt.Errorf("%w: tree has no nodes", ErrInvalidTree)
	}

	owner := make([]int, len(t.Primitives))
	for i := range owner {
		owner[i] = -1
	}

	var err error
	t.walkChecked(RootIndex, func(index int, node Node) bool {
		err = validateNode(t, index, node, owner)
		return err == nil
	})
	if err != nil {
		return err
	}

	for primIndex, nodeIndex := range owner {
		if nodeIndex == -1 {
			return fmt.Errorf("%w: primitive %d is not referenced by any leaf", ErrInvalidTree, primIndex)
		}
	}
	return nil
}

func validateNode(t *Tree, index int, node Node, owner []int) error {
	switch n := node.(type) {
	case Leaf:
		if n.Start < 0 || n.End > len(t.Primitives) || n.End <= n.Start {
			return fmt.Errorf("%w: leaf %d has invalid primitive range [%d, %d)", ErrInvalidTree, index, n.Start, n.End)
		}
		for i := n.Start; i < n.End; i++ {
			if owner[i] != -1 {
				return fmt.Errorf("%w: primitive %d is referenced by leafs %d and %d", ErrInvalidTree, i, owner[i], index)
			}
			owner[i] = index
		}
		if exp := rangeBounds(t.Primitives, n.Start, n.End); n.BBox != exp {
			return fmt.Errorf("%w: leaf %d has bounds %v; expected %v", ErrInvalidTree, index, n.BBox, exp)
		}
	case Internal:
		for _, child := range [2]int{n.Left, n.Right} {
			if child <= index || child >= len(t.Nodes) {
				return fmt.Errorf("%w: node %d has invalid child index %d", ErrInvalidTree, index, child)
			}
			if t.Nodes[child] == nil {
				return fmt.Errorf("%w: node %d references empty slot %d", ErrInvalidTree, index, child)
			}
		}
		if n.Left == n.Right {
			return fmt.Errorf("%w: node %d references child %d twice", ErrInvalidTree, index, n.Left)
		}
		if exp := Union(t.Nodes[n.Left].Bounds(), t.Nodes[n.Right].Bounds()); n.BBox != exp {
			return fmt.Errorf("%w: node %d has bounds %v; expected %v", ErrInvalidTree, index, n.BBox, exp)
		}
	default:
		return fmt.Errorf("%w: node %d has unknown type %T", ErrInvalidTree, index, node)
	}
	return nil
}

// Pre-order traversal that stops as soon as fn returns false. Child links
// must have been checked to point forward before they are followed.
func (t *Tree) walkChecked(index int, fn func(int, Node) bool) bool {
	node := t.Nodes[index]
	if !fn(index, node) {
		return false
	}
	if n, ok := node.(Internal); ok {
		return t.walkChecked(n.Left, fn) && t.walkChecked(n.Right, fn)
	}
	return true
}
