package bvh

import "github.com/achilleasa/spherebvh/types"

type Axis uint8

const (
	XAxis Axis = iota
	YAxis
	ZAxis
)

// An axis-aligned bounding box. The zero value is an unbounded placeholder
// that is only valid until the builder computes the real bounds.
type AABB struct {
	Min types.Vec3
	Max types.Vec3
}

// Union returns the smallest box containing both a and b.
func Union(a, b AABB) AABB {
	return AABB{
		Min: types.MinVec3(a.Min, b.Min),
		Max: types.MaxVec3(a.Max, b.Max),
	}
}

// Get the box side lengths.
func (b AABB) Extent() types.Vec3 {
	return b.Max.Sub(b.Min)
}

// Get the box center.
func (b AABB) Center() types.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Select the axis with the longest extent. Ties are resolved in favor of the
// lower axis (X over Y, and the current winner over Z).
func (b AABB) LongestAxis() Axis {
	side := b.Extent()
	axis := XAxis
	if side[YAxis] > side[XAxis] {
		axis = YAxis
	}
	if side[ZAxis] > side[axis] {
		axis = ZAxis
	}
	return axis
}

// A sphere-like primitive bounded by a cube of half-side Radius.
type Primitive struct {
	Position types.Vec3
	Radius   float32
}

// Bounds returns the cube circumscribing the primitive.
func (p Primitive) Bounds() AABB {
	return AABB{
		Min: p.Position.SubScalar(p.Radius),
		Max: p.Position.AddScalar(p.Radius),
	}
}
