package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/innot/tofisca/pkg/geometry"

	"github.com/spf13/cobra"
)

var detectSeed string

var detectCmd = &cobra.Command{
	Use:   "detect <image>",
	Short: "Detect the film frame in a single scanner image",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDetect(args[0])
	},
}

func init() {
	detectCmd.Flags().StringVar(&detectSeed, "seed", "",
		"Manual start point 'x,y' (normalized 0..1) inside a perforation hole; skips autodetection")
	rootCmd.AddCommand(detectCmd)
}

func runDetect(path string) error {
	mgr, err := newManager()
	if err != nil {
		return err
	}

	img, err := loadImage(path)
	if err != nil {
		return err
	}
	defer img.Close()

	var rect geometry.Rect
	if detectSeed != "" {
		start, err := parsePoint(detectSeed)
		if err != nil {
			return err
		}
		rect, err = mgr.ManualDetect(img, start)
		if err != nil {
			return err
		}
	} else {
		rect, err = mgr.Autodetect(img)
		if err != nil {
			return err
		}
	}

	ref := mgr.Reference()
	fmt.Printf("Perforation: top=%.4f bottom=%.4f inner=%.4f outer=%.4f\n",
		ref.TopEdge, ref.BottomEdge, ref.InnerEdge, ref.OuterEdge)

	levels := mgr.Levels()
	fmt.Printf("Levels:      backlight=%.1f stock=%.1f threshold=%.1f\n",
		levels.PerforationLevel, levels.FilmstockLevel, levels.Average())

	fmt.Printf("Scan area:   x=%.4f y=%.4f w=%.4f h=%.4f\n",
		rect.X, rect.Y, rect.Width, rect.Height)

	shift, err := mgr.RecommendedShift()
	if err != nil {
		return err
	}
	fmt.Printf("Shift:       %+.4f frames\n", shift)

	return nil
}

// parsePoint parses a normalized "x,y" coordinate pair.
func parsePoint(s string) (geometry.Point, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return geometry.Point{}, fmt.Errorf("invalid point %q, expected 'x,y'", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return geometry.Point{}, fmt.Errorf("invalid point %q: %w", s, err)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return geometry.Point{}, fmt.Errorf("invalid point %q: %w", s, err)
	}
	point := geometry.Point{X: x, Y: y}
	if err := point.Validate(); err != nil {
		return geometry.Point{}, err
	}
	return point, nil
}
