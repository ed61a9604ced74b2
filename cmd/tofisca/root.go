package main

import (
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"os"

	"github.com/innot/tofisca/internal/film"
	"github.com/innot/tofisca/internal/scanarea"
	"github.com/innot/tofisca/internal/version"

	"github.com/spf13/cobra"

	_ "golang.org/x/image/tiff"

	"gocv.io/x/gocv"
)

var (
	filmFormat string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:     "tofisca",
	Short:   "Frame registration for film scanners",
	Version: version.Version,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: level,
		})))
	},
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&filmFormat, "film", "f", "super8", "Film format key (see 'tofisca formats')")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

// filmSpec resolves the --film flag against the format registry.
func filmSpec() (*film.Spec, error) {
	spec := film.Get(filmFormat)
	if spec == nil {
		return nil, fmt.Errorf("unknown film format %q, see 'tofisca formats'", filmFormat)
	}
	return spec, nil
}

// newManager creates a scan area manager for the --film format, with debug
// logging attached when --verbose is set.
func newManager() (*scanarea.Manager, error) {
	spec, err := filmSpec()
	if err != nil {
		return nil, err
	}
	opts := scanarea.DefaultOptions()
	opts.Logger = slog.Default()
	return scanarea.NewManager(spec, opts), nil
}

// loadImage reads a scanner image (TIFF, PNG or JPEG) and converts it into a
// BGR Mat. The caller must Close the Mat.
func loadImage(path string) (gocv.Mat, error) {
	f, err := os.Open(path)
	if err != nil {
		return gocv.Mat{}, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return gocv.Mat{}, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	bounds := img.Bounds()
	mat := gocv.NewMatWithSize(bounds.Dy(), bounds.Dx(), gocv.MatTypeCV8UC3)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			row := y - bounds.Min.Y
			col := x - bounds.Min.X
			mat.SetUCharAt(row, col*3, c.B)
			mat.SetUCharAt(row, col*3+1, c.G)
			mat.SetUCharAt(row, col*3+2, c.R)
		}
	}
	return mat, nil
}
