package scanarea

import (
	"math"

	"github.com/innot/tofisca/pkg/geometry"

	"gocv.io/x/gocv"
)

// probeRadius is the pixel half-width of the band averaged around a scan axis
// to suppress noise, and of the probe window checked around a seed point.
const probeRadius = 10

// scanUp walks the profile upward from row `from` and returns the first row
// whose value is at least threshold after a below-threshold transition, i.e.
// the top edge of the bright region containing `from`. Returns -1 if the row
// directly above `from` is already dark (the seed sits on the edge) or no
// transition exists.
func scanUp(profile []float64, from int, threshold float64) int {
	for y := from - 1; y >= 0; y-- {
		if profile[y] < threshold {
			if y == from-1 {
				return -1
			}
			return y + 1
		}
	}
	return -1
}

// scanDown walks the profile downward from row `from` and returns the first
// below-threshold row, i.e. the bottom edge (exclusive) of the bright region.
// Returns -1 if `from` itself is dark or no transition exists.
func scanDown(profile []float64, from int, threshold float64) int {
	for y := from; y < len(profile); y++ {
		if profile[y] < threshold {
			if y == from {
				return -1
			}
			return y
		}
	}
	return -1
}

// scanRight walks the profile rightward from column `from` and returns the
// first below-threshold column, i.e. the inner edge (exclusive) of the bright
// region. Returns -1 if `from` itself is dark or no transition exists.
func scanRight(profile []float64, from int, threshold float64) int {
	for x := from; x < len(profile); x++ {
		if profile[x] < threshold {
			if x == from {
				return -1
			}
			return x
		}
	}
	return -1
}

// scanLeft walks the profile leftward from column `from` and returns the
// first column whose value is at least threshold after a below-threshold
// transition, i.e. the outer edge of the bright region. Returns -1 if no
// transition exists, which happens when the hole is cropped at the image's
// left boundary.
func scanLeft(profile []float64, from int, threshold float64) int {
	for x := from - 1; x >= 0; x-- {
		if profile[x] < threshold {
			return x + 1
		}
	}
	return -1
}

// findPerforationFromPoint locates the edges of the perforation hole
// containing the start point.
//
// The search runs independently along each axis over a 1-D intensity profile
// averaged over a ±probeRadius band through the point. Top, bottom and inner
// edge are required; if any of them cannot be found, (nil, nil) is returned
// and the caller decides whether absence is fatal. The outer edge may lie
// outside the image (hole cropped at the left boundary) and defaults to 0.
//
// A successful result is passed through fixPerforation against ref /prev
// before being returned.
func (m *Manager) findPerforationFromPoint(gray gocv.Mat, start geometry.Point, levels *ThresholdLevels, ref, prev *PerforationLocation) (*PerforationLocation, error) {
	imgH, imgW := gray.Rows(), gray.Cols()
	px := int(math.Round(start.X * float64(imgW)))
	py := int(math.Round(start.Y * float64(imgH)))
	px = clampInt(px, 0, imgW-1)
	py = clampInt(py, 0, imgH-1)

	// Check that the area around the starting point is bright. If not, the
	// image may have shifted so far that the point is no longer within a
	// perforation hole, or the user picked a bad point.
	avg := blockMean(gray, px, py, probeRadius)

	var threshold float64
	if levels != nil {
		threshold = levels.Average()
		if avg < threshold {
			return nil, nil
		}
	} else {
		// No calibration yet. Use the level at the start point as the
		// perforation level and subtract a bit for the film stock. If the
		// point is not actually over a hole, the edge scans below will fail.
		threshold = avg - uncalibratedMargin
	}

	// Top and bottom edge from the vertical profile through the point.
	vertical := columnBandProfile(gray, px-probeRadius, px+probeRadius)

	topEdge := scanUp(vertical, py, threshold)
	if topEdge < 0 {
		return nil, nil
	}
	bottomEdge := scanDown(vertical, py, threshold)
	if bottomEdge < 0 {
		return nil, nil
	}

	// Inner edge from the horizontal profile.
	horizontal := rowBandProfile(gray, py-probeRadius, py+probeRadius)

	innerEdge := scanRight(horizontal, px, threshold)
	if innerEdge < 0 {
		return nil, nil
	}

	// The outer edge is special as it may be outside the image.
	outerEdge := scanLeft(horizontal, px, threshold)
	if outerEdge < 0 {
		outerEdge = 0
	}

	perf := &PerforationLocation{
		TopEdge:    float64(topEdge) / float64(imgH),
		BottomEdge: float64(bottomEdge) / float64(imgH),
		InnerEdge:  float64(innerEdge) / float64(imgW),
		OuterEdge:  float64(outerEdge) / float64(imgW),
	}

	if err := fixPerforation(perf, ref, prev, m.opts.HeightTolerance, m.opts.InnerDriftLimit); err != nil {
		return nil, err
	}
	return perf, nil
}

// findPerforationFromLine finds the first perforation hole located on the
// vertical line at the given normalized x position, searching from the top of
// the image so that a partial hole at the top edge is skipped.
//
// The search is bounded by maxPerfEdges: a hole whose position would place
// the derived scan area partially outside the image is rejected with a
// PerforationNotFoundError carrying the scanned pixel column.
func (m *Manager) findPerforationFromLine(gray gocv.Mat, linePos float64, levels *ThresholdLevels, ref, prev *PerforationLocation) (*PerforationLocation, error) {
	imgH, imgW := gray.Rows(), gray.Cols()

	threshold := levels.Average()

	// 1% of the image width is a good band to average out noise.
	delta := int(math.Round(float64(imgW)*0.01)) + 1

	perfLine := int(math.Round(linePos * float64(imgW)))
	perfLine = clampInt(perfLine, 0, imgW-1)

	vertical := columnBandProfile(gray, perfLine-delta, perfLine+delta)

	// The boundaries within which a valid perforation hole must lie.
	bounds := m.maxPerfEdges(*m.scanArea)
	minTop := bounds.Top * float64(imgH)
	maxBottom := bounds.Bottom * float64(imgH)
	maxInner := bounds.Right * float64(imgW)

	notFound := &PerforationNotFoundError{PerfLine: perfLine}

	// Find the first dark spot from the top, in case a partial perforation
	// hole is visible at the top edge of the image.
	firstDark := -1
	for y := 0; y < len(vertical); y++ {
		if vertical[y] < threshold {
			firstDark = y
			break
		}
	}
	if firstDark < 0 {
		return nil, notFound
	}

	// First dark to light transition is the top edge of the hole...
	topEdge := -1
	for y := firstDark; y < len(vertical); y++ {
		if vertical[y] > threshold {
			topEdge = y
			break
		}
	}
	if topEdge < 0 {
		return nil, notFound
	}

	// ...and the following light to dark transition the bottom edge.
	bottomEdge := -1
	for y := topEdge; y < len(vertical); y++ {
		if vertical[y] < threshold {
			bottomEdge = y
			break
		}
	}
	if bottomEdge < 0 {
		return nil, notFound
	}

	// Inner edge via a horizontal scan centered between top and bottom.
	mid := (topEdge + bottomEdge) / 2
	horizontal := rowBandProfile(gray, mid-delta, mid+delta)

	innerEdge := scanRight(horizontal, perfLine, threshold)
	if innerEdge < 0 {
		// No transition: assume the worst so that the bounds check below
		// rejects the hole.
		innerEdge = imgW
	}

	// The outer edge is synthesized from the reference width; the true edge
	// may be cropped at the image boundary.
	outerEdge := float64(innerEdge) - ref.Width()*float64(imgW)

	if float64(topEdge) < minTop || float64(bottomEdge) > maxBottom || float64(innerEdge) > maxInner {
		// Found a perforation, but the resulting scan area would be at least
		// partially outside the image.
		return nil, notFound
	}

	perf := &PerforationLocation{
		TopEdge:    float64(topEdge) / float64(imgH),
		BottomEdge: float64(bottomEdge) / float64(imgH),
		InnerEdge:  float64(innerEdge) / float64(imgW),
		OuterEdge:  geometry.Clamp(outerEdge/float64(imgW), 0, 1),
	}

	if err := fixPerforation(perf, ref, prev, m.opts.HeightTolerance, m.opts.InnerDriftLimit); err != nil {
		return nil, err
	}
	return perf, nil
}
