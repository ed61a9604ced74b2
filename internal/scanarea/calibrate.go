package scanarea

import (
	"math"

	"github.com/innot/tofisca/pkg/geometry"

	"gocv.io/x/gocv"
)

// calibrateFromPerforation samples the backlight and film stock gray levels
// from the image, given the location of a perforation hole.
//
// The backlight level is the mean of a small block centered on the hole; the
// film stock level is sampled 1.1 hole heights below that center. It is taken
// from below because some film types have their perforations between frames,
// with no image content above the hole. Both blocks are clamped to the image,
// so calibration always succeeds for a valid rect.
func calibrateFromPerforation(gray gocv.Mat, perfRect geometry.Rect) *ThresholdLevels {
	imgH, imgW := gray.Rows(), gray.Cols()

	centerX := int(math.Round(perfRect.Center().X * float64(imgW)))
	centerY := int(math.Round(perfRect.Center().Y * float64(imgH)))
	holeHeight := perfRect.Height * float64(imgH)

	// 10% of the hole height below its bottom edge.
	stockY := centerY + int(math.Round(holeHeight*1.1))

	return &ThresholdLevels{
		PerforationLevel: blockMean(gray, centerX, centerY, probeRadius),
		FilmstockLevel:   blockMean(gray, centerX, stockY, probeRadius),
	}
}
