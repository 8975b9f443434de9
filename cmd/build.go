package cmd

import (
	"context"
	"errors"
	"time"

	"github.com/achilleasa/spherebvh/bvh"
	"github.com/achilleasa/spherebvh/scene"
	"github.com/achilleasa/spherebvh/scene/reader"
	"github.com/achilleasa/spherebvh/scene/writer"
	"github.com/urfave/cli"
)

type buildOptions struct {
	LeafThreshold int

	// Number of goroutines used for building the tree. A value of 1 selects
	// the sequential builder; 0 uses all available CPUs.
	Workers int

	// When no primitive file is specified, generate this many random
	// primitives instead.
	RandomCount int
	Seed        int64

	OutFile string
}

// Build a BVH for a primitive list and write the compiled scene.
func BuildScene(ctx *cli.Context) error {
	setupLogging(ctx)

	opts := buildOptions{
		LeafThreshold: ctx.Int("leaf-threshold"),
		Workers:       ctx.Int("workers"),
		RandomCount:   ctx.Int("random"),
		Seed:          ctx.Int64("seed"),
		OutFile:       ctx.String("out"),
	}

	if ctx.NArg() > 1 {
		return errors.New("expected at most one primitive file argument")
	}

	prims, err := loadPrimitives(ctx.Args().First(), opts)
	if err != nil {
		logger.Error(err)
		return err
	}

	sc, err := compileScene(context.Background(), prims, opts)
	if err != nil {
		logger.Error(err)
		return err
	}

	stats, err := sc.Stats()
	if err != nil {
		logger.Error(err)
		return err
	}
	logger.Noticef("scene information:\n%s", stats)

	if err = writer.WriteScene(sc, opts.OutFile); err != nil {
		logger.Error(err)
		return err
	}
	return nil
}

func loadPrimitives(primFile string, opts buildOptions) ([]bvh.Primitive, error) {
	if primFile != "" {
		return reader.ReadPrimitives(context.Background(), primFile)
	}

	genOpts := scene.DefaultGeneratorOptions()
	genOpts.Count = opts.RandomCount
	genOpts.Seed = opts.Seed
	logger.Noticef("no primitive file specified; generating %d random primitives", genOpts.Count)
	return scene.Generate(genOpts)
}

func compileScene(ctx context.Context, prims []bvh.Primitive, opts buildOptions) (*scene.Scene, error) {
	logger.Infof("building BVH tree (%d primitives, leaf threshold %d)", len(prims), opts.LeafThreshold)
	start := time.Now()

	var (
		tree *bvh.Tree
		err  error
	)
	if opts.Workers == 1 {
		tree, err = bvh.Build(prims, opts.LeafThreshold)
	} else {
		tree, err = bvh.BuildParallel(ctx, prims, opts.LeafThreshold, opts.Workers)
	}
	if err != nil {
		return nil, err
	}

	logger.Noticef("built BVH tree in %d ms", time.Since(start).Nanoseconds()/1e6)
	return scene.New(tree, opts.LeafThreshold), nil
}
