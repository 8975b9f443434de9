package main

import (
	"os"

	"github.com/achilleasa/spherebvh/cmd"
	"github.com/urfave/cli"
)

func main() {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "spherebvh"
	app.Usage = "partition sphere primitives into a bounding volume hierarchy"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:      "generate",
			Usage:     "generate a random primitive list",
			ArgsUsage: " ",
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:  "count, n",
					Value: 50,
					Usage: "number of primitives",
				},
				cli.Float64Flag{
					Name:  "extent",
					Value: 500,
					Usage: "primitive positions are sampled from [-extent, extent) on each axis",
				},
				cli.Float64Flag{
					Name:  "min-radius",
					Value: 4,
					Usage: "min primitive radius",
				},
				cli.Float64Flag{
					Name:  "max-radius",
					Value: 5,
					Usage: "max primitive radius",
				},
				cli.Int64Flag{
					Name:  "seed",
					Value: 1,
					Usage: "random generator seed",
				},
				cli.StringFlag{
					Name:  "out, o",
					Value: "primitives.yaml",
					Usage: "output file for the generated primitives",
				},
			},
			Action: cmd.GenerateScene,
		},
		{
			Name:  "build",
			Usage: "build a BVH tree for a primitive list",
			Description: `
Read a primitive list from a yaml file (or generate a random one if no file
is specified), partition it into a BVH tree using axis-aligned midpoint splits
and write the compiled scene to a zip archive.

Primitive files may be local paths or http/https URLs.`,
			ArgsUsage: "[primitives.yaml]",
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:  "leaf-threshold, t",
					Value: 2,
					Usage: "max number of primitives per leaf",
				},
				cli.IntFlag{
					Name:  "workers, w",
					Value: 1,
					Usage: "number of goroutines used for building the tree (0 uses all CPUs)",
				},
				cli.IntFlag{
					Name:  "random",
					Value: 50,
					Usage: "number of random primitives to generate when no primitive file is specified",
				},
				cli.Int64Flag{
					Name:  "seed",
					Value: 1,
					Usage: "random generator seed",
				},
				cli.StringFlag{
					Name:  "out, o",
					Value: "scene.zip",
					Usage: "output file for the compiled scene",
				},
			},
			Action: cmd.BuildScene,
		},
		{
			Name:      "inspect",
			Usage:     "display compiled scene information",
			ArgsUsage: "scene.zip",
			Flags: []cli.Flag{
				cli.BoolFlag{
					Name:  "nodes",
					Usage: "list every BVH node",
				},
			},
			Action: cmd.InspectScene,
		},
	}

	if err := app.Run(os.Args); err != nil {
		os.Exit(1)
	}
}
