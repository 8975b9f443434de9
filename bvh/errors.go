package bvh

import "errors"

var (
	ErrNoPrimitives         = errors.New("bvh: no primitives to partition")
	ErrInvalidLeafThreshold = errors.New("bvh: leaf threshold must be at least 1")
	ErrInvalidPrimitive     = errors.New("bvh: invalid primitive")
	ErrInvalidTree          = errors.New("bvh: invalid tree")
)
