package scanarea

import (
	"gocv.io/x/gocv"
	"gonum.org/v1/gonum/stat"
)

// grayscale returns a single-channel copy of img. The caller owns the
// returned Mat and must Close it.
func grayscale(img gocv.Mat) gocv.Mat {
	if img.Channels() == 1 {
		return img.Clone()
	}
	gray := gocv.NewMat()
	gocv.CvtColor(img, &gray, gocv.ColorBGRToGray)
	return gray
}

// columnBandProfile returns the vertical intensity profile of gray: one value
// per row, each the mean over the column band [x0, x1). The band is clamped
// to the image width.
func columnBandProfile(gray gocv.Mat, x0, x1 int) []float64 {
	rows, cols := gray.Rows(), gray.Cols()
	x0 = clampInt(x0, 0, cols-1)
	x1 = clampInt(x1, x0+1, cols)

	profile := make([]float64, rows)
	band := make([]float64, x1-x0)
	for y := 0; y < rows; y++ {
		for x := x0; x < x1; x++ {
			band[x-x0] = float64(gray.GetUCharAt(y, x))
		}
		profile[y] = stat.Mean(band, nil)
	}
	return profile
}

// rowBandProfile returns the horizontal intensity profile of gray: one value
// per column, each the mean over the row band [y0, y1). The band is clamped
// to the image height.
func rowBandProfile(gray gocv.Mat, y0, y1 int) []float64 {
	rows, cols := gray.Rows(), gray.Cols()
	y0 = clampInt(y0, 0, rows-1)
	y1 = clampInt(y1, y0+1, rows)

	profile := make([]float64, cols)
	band := make([]float64, y1-y0)
	for x := 0; x < cols; x++ {
		for y := y0; y < y1; y++ {
			band[y-y0] = float64(gray.GetUCharAt(y, x))
		}
		profile[x] = stat.Mean(band, nil)
	}
	return profile
}

// blockMean returns the mean intensity of the square block of the given
// radius centered on (cx, cy), clamped to the image.
func blockMean(gray gocv.Mat, cx, cy, radius int) float64 {
	rows, cols := gray.Rows(), gray.Cols()
	x0 := clampInt(cx-radius, 0, cols-1)
	x1 := clampInt(cx+radius, x0+1, cols)
	y0 := clampInt(cy-radius, 0, rows-1)
	y1 := clampInt(cy+radius, y0+1, rows)

	block := make([]float64, 0, (x1-x0)*(y1-y0))
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			block = append(block, float64(gray.GetUCharAt(y, x)))
		}
	}
	return stat.Mean(block, nil)
}

// isBlank reports whether the image has a near-uniform color, i.e. the
// standard deviation of every channel is below maxStdDev.
func isBlank(img gocv.Mat, maxStdDev float64) bool {
	mean := gocv.NewMat()
	defer mean.Close()
	stddev := gocv.NewMat()
	defer stddev.Close()

	gocv.MeanStdDev(img, &mean, &stddev)

	for i := 0; i < stddev.Rows(); i++ {
		if stddev.GetDoubleAt(i, 0) >= maxStdDev {
			return false
		}
	}
	return true
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
