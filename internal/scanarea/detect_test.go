package scanarea

import (
	"image"
	"testing"

	"github.com/innot/tofisca/internal/film"
	"github.com/innot/tofisca/internal/filmgen"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gocv.io/x/gocv"
)

// paint sets a rectangular block of a BGR Mat to a uniform gray level.
func paint(mat *gocv.Mat, r image.Rectangle, level uint8) {
	for row := r.Min.Y; row < r.Max.Y; row++ {
		for col := r.Min.X; col < r.Max.X; col++ {
			for ch := 0; ch < 3; ch++ {
				mat.SetUCharAt(row, col*3+ch, level)
			}
		}
	}
}

func TestFindPerforations(t *testing.T) {
	gen := filmgen.NewGenerator(film.Get("super8"), 1024, 768, 100)
	img := gen.RenderSingle(image.Pt(100, 384))
	defer img.Close()
	gray := grayscale(img)
	defer gray.Close()

	mgr := NewManager(film.Get("super8"), DefaultOptions())
	perfs, err := mgr.findPerforations(gray)
	require.NoError(t, err)
	require.Len(t, perfs, 1)

	// The hole is rows 327..440, columns 55..145.
	perf := perfs[0]
	assert.InDelta(t, 55.0/1024, perf.X, 2.0/1024)
	assert.InDelta(t, 327.0/768, perf.Y, 2.0/768)
	assert.InDelta(t, 91.0/1024, perf.Width, 2.0/1024)
	assert.InDelta(t, 114.0/768, perf.Height, 2.0/768)
}

func TestFindPerforationsFiltersNoise(t *testing.T) {
	gen := filmgen.NewGenerator(film.Get("super8"), 1024, 768, 100)
	img := gen.RenderSingle(image.Pt(100, 384))
	defer img.Close()

	// A tiny bright speck (dust on the backlight) and a large bright square
	// with the wrong aspect ratio. Neither may count as a perforation.
	paint(&img, image.Rect(500, 100, 510, 110), 235)
	paint(&img, image.Rect(600, 400, 800, 600), 235)

	gray := grayscale(img)
	defer gray.Close()

	mgr := NewManager(film.Get("super8"), DefaultOptions())
	perfs, err := mgr.findPerforations(gray)
	require.NoError(t, err)
	require.Len(t, perfs, 1)
	assert.InDelta(t, 327.0/768, perfs[0].Y, 2.0/768)
}

func TestFindPerforationsSkipsPartialHoles(t *testing.T) {
	// A full film strip with the neighbor holes clipped at the top and
	// bottom image edges. Only the complete hole has the right aspect ratio.
	gen := filmgen.NewGenerator(film.Get("super8"), 1024, 768, 100)
	img := gen.Render(image.Pt(100, 384))
	defer img.Close()
	gray := grayscale(img)
	defer gray.Close()

	mgr := NewManager(film.Get("super8"), DefaultOptions())
	perfs, err := mgr.findPerforations(gray)
	require.NoError(t, err)
	require.Len(t, perfs, 1)
	assert.InDelta(t, 327.0/768, perfs[0].Y, 2.0/768)
}
