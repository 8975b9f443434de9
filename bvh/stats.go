package bvh

import (
	"time"

	"github.com/achilleasa/spherebvh/log"
)

// Tree shape statistics.
type Stats struct {
	Nodes    int
	Leaves   int
	MaxDepth int

	// The largest leaf and the number of leaves that exceed the leaf
	// threshold because their midpoint split was degenerate.
	MaxLeafSize     int
	OversizedLeaves int
}

// Collect statistics for a tree built with the given leaf threshold.
func ComputeStats(t *Tree, leafThreshold int) Stats {
	var stats Stats
	t.Walk(func(_ int, node Node, depth int) bool {
		stats.Nodes++
		if depth > stats.MaxDepth {
			stats.MaxDepth = depth
		}

		if leaf, ok := node.(Leaf); ok {
			stats.Leaves++
			if leaf.Len() > stats.MaxLeafSize {
				stats.MaxLeafSize = leaf.Len()
			}
			if leaf.Len() > leafThreshold {
				stats.OversizedLeaves++
			}
		}
		return true
	})
	return stats
}

func logStats(logger log.Logger, t *Tree, leafThreshold int, buildTime time.Duration) {
	stats := ComputeStats(t, leafThreshold)
	logger.Debugf(
		"BVH tree build time: %d ms, primitives: %d, maxDepth: %d, nodes: %d, leafs: %d, oversized leafs: %d",
		buildTime.Nanoseconds()/1e6, len(t.Primitives),
		stats.MaxDepth, stats.Nodes, stats.Leaves, stats.OversizedLeaves,
	)
	if stats.OversizedLeaves > 0 {
		logger.Infof("%d leaf(s) exceed the leaf threshold of %d due to degenerate midpoint splits", stats.OversizedLeaves, leafThreshold)
	}
}
