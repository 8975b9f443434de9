package scene

import (
	"bytes"
	"fmt"
	"reflect"
	"strings"

	"github.com/achilleasa/spherebvh/bvh"
	"github.com/olekukonko/tablewriter"
)

// A compiled scene: the primitive list in BVH order together with the packed
// BVH nodes that partition it.
type Scene struct {
	// The leaf threshold the BVH was built with.
	LeafThreshold int

	BvhNodeList []bvh.PackedNode
	Primitives  []bvh.Primitive
}

// Package a built tree into a scene.
func New(tree *bvh.Tree, leafThreshold int) *Scene {
	return &Scene{
		LeafThreshold: leafThreshold,
		BvhNodeList:   tree.Pack(),
		Primitives:    tree.Primitives,
	}
}

// Tree rebuilds and validates the BVH stored in the scene.
func (sc *Scene) Tree() (*bvh.Tree, error) {
	tree, err := bvh.Unpack(sc.BvhNodeList, sc.Primitives)
	if err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}
	return tree, nil
}

// Build a tabular representation of scene statistics.
func (sc *Scene) Stats() (string, error) {
	tree, err := sc.Tree()
	if err != nil {
		return "", err
	}
	stats := bvh.ComputeStats(tree, sc.LeafThreshold)
	bounds := tree.Bounds()

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Section", "Item", "Value"})
	table.Append([]string{"Geometry", "Primitives", fmt.Sprint(len(sc.Primitives))})
	table.Append([]string{"", "Bounds min", fmtVec(bounds.Min[:])})
	table.Append([]string{"", "Bounds max", fmtVec(bounds.Max[:])})
	table.Append([]string{" ", " ", " "})
	table.Append([]string{"BVH", "Leaf threshold", fmt.Sprint(sc.LeafThreshold)})
	table.Append([]string{"", "Nodes", fmt.Sprint(stats.Nodes)})
	table.Append([]string{"", "Leafs", fmt.Sprint(stats.Leaves)})
	table.Append([]string{"", "Max depth", fmt.Sprint(stats.MaxDepth)})
	table.Append([]string{"", "Max leaf size", fmt.Sprint(stats.MaxLeafSize)})
	table.Append([]string{"", "Oversized leafs", fmt.Sprint(stats.OversizedLeaves)})
	table.Append([]string{" ", " ", " "})
	table.Append([]string{"Memory", "BVH nodes", fmtSize(sc.BvhNodeList)})
	table.Append([]string{"", "Primitives", fmtSize(sc.Primitives)})
	table.SetFooter([]string{"Total", " ", strings.TrimLeft(fmtSize(sc.BvhNodeList, sc.Primitives), " ")})

	table.Render()
	return buf.String(), nil
}

// Build a table with one row per node reachable from the BVH root, in
// pre-order.
func (sc *Scene) NodeTable() (string, error) {
	tree, err := sc.Tree()
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Node", "Depth", "Type", "Contents", "Min", "Max"})
	tree.Walk(func(index int, node bvh.Node, depth int) bool {
		bounds := node.Bounds()
		row := []string{fmt.Sprint(index), fmt.Sprint(depth), "", "", fmtVec(bounds.Min[:]), fmtVec(bounds.Max[:])}
		switch n := node.(type) {
		case bvh.Leaf:
			row[2] = "leaf"
			row[3] = fmt.Sprintf("primitives [%d, %d)", n.Start, n.End)
		case bvh.Internal:
			row[2] = "internal"
			row[3] = fmt.Sprintf("children %d, %d", n.Left, n.Right)
		}
		table.Append(row)
		return true
	})

	table.Render()
	return buf.String(), nil
}

func fmtVec(v []float32) string {
	return fmt.Sprintf("(%.2f, %.2f, %.2f)", v[0], v[1], v[2])
}

// Sum the total space used by a set of slices and return back a formatted
// value with the appropriate byte/kb/mb unit.
func fmtSize(items ...interface{}) string {
	var totalBytes float32 = 0.0
	for _, item := range items {
		t := reflect.TypeOf(item)
		v := reflect.ValueOf(item)
		if v.Len() == 0 {
			continue
		}

		totalBytes += float32(int(t.Elem().Size()) * v.Len())
	}

	if totalBytes < 1e3 {
		return fmt.Sprintf("%3d bytes", int(totalBytes))
	} else if totalBytes < 1e6 {
		return fmt.Sprintf("%3.1f kb", totalBytes/1e3)
	}
	return fmt.Sprintf("%5.1f mb", totalBytes/1e6)
}
