package main

import (
	"errors"
	"fmt"

	"github.com/innot/tofisca/internal/scanarea"
	"github.com/innot/tofisca/pkg/geometry"

	"github.com/spf13/cobra"
)

var trackCmd = &cobra.Command{
	Use:   "track <image>...",
	Short: "Track the film frame across an ordered image sequence",
	Long: `Track runs frame registration over a sequence of scanner images, in the
order given. The first image is used to autodetect the frame; every further
image updates the tracked position. Tracking stops at the first blank image
(end of the reel).`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTrack(args)
	},
}

func init() {
	rootCmd.AddCommand(trackCmd)
}

func runTrack(paths []string) error {
	mgr, err := newManager()
	if err != nil {
		return err
	}

	for i, path := range paths {
		img, err := loadImage(path)
		if err != nil {
			return err
		}

		var result string
		if i == 0 {
			rect, err := mgr.Autodetect(img)
			if err != nil {
				img.Close()
				return fmt.Errorf("autodetect on %s: %w", path, err)
			}
			result = formatResult(mgr, rect)
		} else {
			rect, err := mgr.Update(img)
			if err != nil {
				img.Close()

				var blank *scanarea.BlankFrameError
				if errors.As(err, &blank) {
					fmt.Printf("%s: blank frame, end of reel\n", path)
					return nil
				}

				var malformed *scanarea.MalformedPerforationError
				if errors.As(err, &malformed) {
					// Damaged perforation: report and keep tracking, the
					// next frame may be fine again.
					fmt.Printf("%s: %s perforation, frame skipped\n", path, malformed.Classification())
					continue
				}
				return fmt.Errorf("update on %s: %w", path, err)
			}
			result = formatResult(mgr, rect)
		}
		img.Close()

		fmt.Printf("%s: %s\n", path, result)
	}
	return nil
}

func formatResult(mgr *scanarea.Manager, rect geometry.Rect) string {
	shift, err := mgr.RecommendedShift()
	if err != nil {
		return fmt.Sprintf("x=%.4f y=%.4f w=%.4f h=%.4f", rect.X, rect.Y, rect.Width, rect.Height)
	}
	return fmt.Sprintf("x=%.4f y=%.4f w=%.4f h=%.4f shift=%+.4f",
		rect.X, rect.Y, rect.Width, rect.Height, shift)
}
