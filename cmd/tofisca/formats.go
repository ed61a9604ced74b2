package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/innot/tofisca/internal/film"

	"github.com/spf13/cobra"
)

var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "List the known film formats",
	Run: func(cmd *cobra.Command, args []string) {
		runFormats()
	},
}

func init() {
	rootCmd.AddCommand(formatsCmd)
}

func runFormats() {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "KEY\tNAME\tFRAME (mm)\tPERFORATION (mm)\tHOLES/FRAME")

	for _, key := range film.Keys() {
		spec := film.Get(key)
		fmt.Fprintf(w, "%s\t%s\t%.3f x %.3f\t%.3f x %.3f\t%d\n",
			spec.Key, spec.Name,
			spec.FrameSize.Width, spec.FrameSize.Height,
			spec.PerforationSize.Width, spec.PerforationSize.Height,
			spec.PerforationsPerFrame)
	}
	w.Flush()
}
