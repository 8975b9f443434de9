package scene

import (
	"fmt"
	"math/rand"

	"github.com/achilleasa/spherebvh/bvh"
	"github.com/achilleasa/spherebvh/types"
)

// Options for generating a random scene.
type GeneratorOptions struct {
	// Number of primitives.
	Count int

	// Primitive positions are sampled uniformly from [-Extent, Extent) on
	// every axis.
	Extent float32

	// Primitive radii are sampled uniformly from [MinRadius, MaxRadius].
	MinRadius float32
	MaxRadius float32

	// Seed for the random number generator.
	Seed int64
}

// The default generator settings.
func DefaultGeneratorOptions() GeneratorOptions {
	return GeneratorOptions{
		Count:     50,
		Extent:    500,
		MinRadius: 4,
		MaxRadius: 5,
		Seed:      1,
	}
}

// Generate a random set of primitives. The output only depends on opts.
func Generate(opts GeneratorOptions) ([]bvh.Primitive, error) {
	if opts.Count < 0 {
		return nil, fmt.Errorf("scene: primitive count must not be negative; got %d", opts.Count)
	}
	if !(opts.Extent > 0) {
		return nil, fmt.Errorf("scene: extent must be positive; got %v", opts.Extent)
	}
	if !(opts.MinRadius > 0) || opts.MaxRadius < opts.MinRadius {
		return nil, fmt.Errorf("scene: invalid radius range [%v, %v]", opts.MinRadius, opts.MaxRadius)
	}

	rng := rand.New(rand.NewSource(opts.Seed))
	coord := func() float32 {
		return (rng.Float32()*2 - 1) * opts.Extent
	}

	prims := make([]bvh.Primitive, opts.Count)
	for i := range prims {
		prims[i] = bvh.Primitive{
			Position: types.XYZ(coord(), coord(), coord()),
			Radius:   opts.MinRadius + rng.Float32()*(opts.MaxRadius-opts.MinRadius),
		}
	}
	return prims, nil
}
