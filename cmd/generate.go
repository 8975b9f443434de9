package cmd

import (
	"github.com/achilleasa/spherebvh/scene"
	"github.com/achilleasa/spherebvh/scene/writer"
	"github.com/urfave/cli"
)

// Generate a random primitive list and write it to a yaml file.
func GenerateScene(ctx *cli.Context) error {
	setupLogging(ctx)

	opts := scene.GeneratorOptions{
		Count:     ctx.Int("count"),
		Extent:    float32(ctx.Float64("extent")),
		MinRadius: float32(ctx.Float64("min-radius")),
		MaxRadius: float32(ctx.Float64("max-radius")),
		Seed:      ctx.Int64("seed"),
	}

	prims, err := scene.Generate(opts)
	if err != nil {
		logger.Error(err)
		return err
	}

	return writer.WritePrimitives(prims, ctx.String("out"))
}
