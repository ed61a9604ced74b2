package scanarea

import (
	"math"

	"github.com/innot/tofisca/pkg/geometry"

	"gocv.io/x/gocv"
)

// findPerforations finds all shapes in the grayscale image that look like a
// perforation hole: bright contours with the aspect ratio of the film spec's
// perforation, covering at least MinAreaFraction of the image. The returned
// rects are normalized and in contour order. The input Mat is not modified.
func (m *Manager) findPerforations(gray gocv.Mat) ([]geometry.Rect, error) {
	if gray.Empty() {
		return nil, ErrNoImage
	}

	imgH, imgW := gray.Rows(), gray.Cols()
	imgArea := float64(imgW * imgH)
	minArea := imgArea * m.opts.MinAreaFraction

	specAspect := m.spec.PerforationAspectRatio()

	// Reduce noise to improve contour detection. The caller keeps using gray
	// for the edge searches, so blur into a separate Mat.
	blurred := gocv.NewMat()
	defer blurred.Close()
	gocv.MedianBlur(gray, &blurred, medianBlurSize)

	// Threshold at the top 10% of the brightness range to isolate the
	// backlight shining through the holes.
	_, maxVal, _, _ := gocv.MinMaxLoc(blurred)
	threshold := maxVal - maxVal/10

	binary := gocv.NewMat()
	defer binary.Close()
	gocv.Threshold(blurred, &binary, threshold, 255, gocv.ThresholdBinary)

	contours := gocv.FindContours(binary, gocv.RetrievalList, gocv.ChainApproxSimple)
	defer contours.Close()

	var perfs []geometry.Rect
	for i := 0; i < contours.Size(); i++ {
		contour := contours.At(i)
		rect := gocv.BoundingRect(contour)
		w, h := rect.Dx(), rect.Dy()
		if w == 0 || h == 0 {
			continue
		}

		// Filter small random noise contours.
		if gocv.ContourArea(contour) <= minArea {
			continue
		}

		aspect := float64(w) / float64(h)
		if math.Abs(aspect-specAspect) >= m.opts.AspectTolerance {
			continue
		}

		perfs = append(perfs, geometry.Rect{
			X:      float64(rect.Min.X) / float64(imgW),
			Y:      float64(rect.Min.Y) / float64(imgH),
			Width:  float64(w) / float64(imgW),
			Height: float64(h) / float64(imgH),
		})
	}

	return perfs, nil
}
