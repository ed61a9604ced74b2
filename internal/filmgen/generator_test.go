package filmgen

import (
	"image"
	"testing"

	"github.com/innot/tofisca/internal/film"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderSingle(t *testing.T) {
	gen := NewGenerator(film.Get("super8"), 1024, 768, 100)
	img := gen.RenderSingle(image.Pt(100, 384))
	defer img.Close()

	require.Equal(t, 768, img.Rows())
	require.Equal(t, 1024, img.Cols())
	require.Equal(t, 3, img.Channels())

	// Hole center is bright backlight, the far side plain stock. A Super8
	// hole at 100 px/mm is 91x114 px, so rows 327..440 / cols 55..145.
	assert.EqualValues(t, DefaultPerforationLevel, img.GetUCharAt(384, 100*3))
	assert.EqualValues(t, DefaultPerforationLevel, img.GetUCharAt(327, 100*3))
	assert.EqualValues(t, DefaultStockLevel, img.GetUCharAt(326, 100*3))
	assert.EqualValues(t, DefaultStockLevel, img.GetUCharAt(441, 100*3))
	assert.EqualValues(t, DefaultStockLevel, img.GetUCharAt(384, 146*3))
	assert.EqualValues(t, DefaultStockLevel, img.GetUCharAt(384, 54*3))
	assert.EqualValues(t, DefaultStockLevel, img.GetUCharAt(384, 512*3))
}

func TestRenderStrip(t *testing.T) {
	gen := NewGenerator(film.Get("super8"), 1024, 768, 100)
	img := gen.Render(image.Pt(100, 384))
	defer img.Close()

	// The current frame's hole plus the content area to its right.
	assert.EqualValues(t, DefaultPerforationLevel, img.GetUCharAt(384, 100*3))
	assert.EqualValues(t, DefaultContentLevel, img.GetUCharAt(384, 400*3))

	// Neighbor frames repeat at the frame pitch of 423 px, clipped at the
	// image edges: partial holes at the very top and bottom.
	assert.EqualValues(t, DefaultPerforationLevel, img.GetUCharAt(0, 100*3))
	assert.EqualValues(t, DefaultPerforationLevel, img.GetUCharAt(767, 100*3))
}

func TestRenderNoise(t *testing.T) {
	gen := NewGenerator(film.Get("super8"), 1024, 768, 100)
	gen.NoiseStdDev = 3
	img := gen.RenderSingle(image.Pt(100, 384))
	defer img.Close()

	// With noise the stock is no longer perfectly uniform.
	var differs bool
	first := img.GetUCharAt(600, 600*3)
	for col := 601; col < 700; col++ {
		if img.GetUCharAt(600, col*3) != first {
			differs = true
			break
		}
	}
	assert.True(t, differs)
}

func TestUniform(t *testing.T) {
	img := Uniform(64, 48, 90)
	defer img.Close()

	require.Equal(t, 48, img.Rows())
	require.Equal(t, 64, img.Cols())
	for _, p := range []image.Point{{0, 0}, {63, 47}, {30, 20}} {
		for ch := 0; ch < 3; ch++ {
			assert.EqualValues(t, 90, img.GetUCharAt(p.Y, p.X*3+ch))
		}
	}
}
