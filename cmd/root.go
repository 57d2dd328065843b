package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var runFlags struct {
	seed    uint64
	spacing float64
	width   int
	height  int
	paused  bool
	debug   bool
}

var rootCmd = &cobra.Command{
	Use:   "snowfall",
	Short: "Falling snow on a transparent OpenGL window",
	Long: `snowfall draws a field of falling snowflakes with a single point-sprite
draw call per frame. Space pauses and resumes, Escape quits.`,
	RunE:         Run,
	SilenceUsage: true,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.Uint64Var(&runFlags.seed, "seed", 0, "random seed for the flakes (0 = time based)")
	flags.Float64Var(&runFlags.spacing, "spacing", 0, "surface width in pixels per flake")
	flags.IntVar(&runFlags.width, "width", 0, "initial window width")
	flags.IntVar(&runFlags.height, "height", 0, "initial window height")
	flags.BoolVar(&runFlags.paused, "paused", false, "start with the animation paused")
	flags.BoolVar(&runFlags.debug, "debug", false, "enable debug logging")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
