package cmd

import (
	"github.com/achilleasa/spherebvh/log"
	"github.com/urfave/cli"
)

var logger = log.New("spherebvh")

func setupLogging(ctx *cli.Context) {
	log.SetLevel(log.LevelFromVerbosity(ctx.GlobalBool("v"), ctx.GlobalBool("vv")))
}
