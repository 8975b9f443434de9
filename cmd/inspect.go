package cmd

import (
	"context"
	"errors"

	"github.com/achilleasa/spherebvh/scene/reader"
	"github.com/urfave/cli"
)

// Display compiled scene info.
func InspectScene(ctx *cli.Context) error {
	setupLogging(ctx)

	if ctx.NArg() != 1 {
		return errors.New("missing compiled scene zip file")
	}

	sc, err := reader.ReadScene(context.Background(), ctx.Args().First())
	if err != nil {
		logger.Error(err)
		return err
	}

	stats, err := sc.Stats()
	if err != nil {
		return err
	}
	logger.Noticef("scene information:\n%s", stats)

	if ctx.Bool("nodes") {
		nodes, err := sc.NodeTable()
		if err != nil {
			return err
		}
		logger.Noticef("BVH nodes:\n%s", nodes)
	}

	return nil
}
