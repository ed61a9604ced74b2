// Package filmgen renders synthetic backlit film images for testing and
// calibration. The images model what the scanner camera sees: dark film
// stock, bright perforation holes where the backlight shines through, and a
// mid-gray frame content area, all sized from a film specification.
package filmgen

import (
	"image"
	"math"
	"math/rand"

	"github.com/innot/tofisca/internal/film"

	"gocv.io/x/gocv"
)

// Default gray levels. The content level is kept well below the perforation
// level so that thresholding isolates only the holes.
const (
	DefaultStockLevel       = 40
	DefaultPerforationLevel = 230
	DefaultContentLevel     = 140
)

// Generator renders film strip images for one film format at a fixed optical
// scale.
type Generator struct {
	Spec    *film.Spec
	Width   int // image width in pixels
	Height  int // image height in pixels
	PxPerMM float64

	StockLevel       uint8
	PerforationLevel uint8
	ContentLevel     uint8

	// NoiseStdDev adds gaussian pixel noise when > 0. Keep at 0 for
	// deterministic edge positions.
	NoiseStdDev float64

	// BlurSize softens all edges with a gaussian blur of the given odd
	// kernel size, simulating a defocused camera. 0 disables.
	BlurSize int

	rng *rand.Rand
}

// NewGenerator returns a generator with default gray levels.
func NewGenerator(spec *film.Spec, width, height int, pxPerMM float64) *Generator {
	return &Generator{
		Spec:             spec,
		Width:            width,
		Height:           height,
		PxPerMM:          pxPerMM,
		StockLevel:       DefaultStockLevel,
		PerforationLevel: DefaultPerforationLevel,
		ContentLevel:     DefaultContentLevel,
		rng:              rand.New(rand.NewSource(1)),
	}
}

// Render draws a BGR image of the film strip with the perforation hole of the
// current frame centered at perfCenter (pixels). Perforations of the
// neighboring frames are repeated at the frame pitch above and below, clipped
// to the image. The caller owns the returned Mat and must Close it.
func (g *Generator) Render(perfCenter image.Point) gocv.Mat {
	mat := gocv.NewMatWithSize(g.Height, g.Width, gocv.MatTypeCV8UC3)
	g.fill(&mat, image.Rect(0, 0, g.Width, g.Height), g.StockLevel)

	perfW := int(math.Round(g.Spec.PerforationSize.Width * g.PxPerMM))
	perfH := int(math.Round(g.Spec.PerforationSize.Height * g.PxPerMM))
	pitch := int(math.Round(g.Spec.FrameSize.Height * g.PxPerMM))

	// The reference point of the hole: inner edge, vertically centered.
	refX := perfCenter.X + perfW/2
	refY := perfCenter.Y

	// Frame content of the current frame.
	contentX := refX + int(math.Round(g.Spec.CameraPos.DX*g.PxPerMM))
	contentY := refY + int(math.Round(g.Spec.CameraPos.DY*g.PxPerMM))
	contentW := int(math.Round(g.Spec.CameraSize.Width * g.PxPerMM))
	contentH := int(math.Round(g.Spec.CameraSize.Height * g.PxPerMM))
	g.fill(&mat, image.Rect(contentX, contentY, contentX+contentW, contentY+contentH), g.ContentLevel)

	// Perforations of this frame and its neighbors, including partial holes
	// clipped at the top and bottom image edges.
	for cy := perfCenter.Y%pitch - pitch; cy-perfH/2 < g.Height; cy += pitch {
		hole := image.Rect(
			perfCenter.X-perfW/2, cy-perfH/2,
			perfCenter.X-perfW/2+perfW, cy-perfH/2+perfH)
		g.fill(&mat, hole, g.PerforationLevel)
	}

	g.finish(&mat)
	return mat
}

// RenderSingle draws an image with exactly one perforation hole centered at
// perfCenter, without the neighboring frames' holes.
func (g *Generator) RenderSingle(perfCenter image.Point) gocv.Mat {
	mat := gocv.NewMatWithSize(g.Height, g.Width, gocv.MatTypeCV8UC3)
	g.fill(&mat, image.Rect(0, 0, g.Width, g.Height), g.StockLevel)

	perfW := int(math.Round(g.Spec.PerforationSize.Width * g.PxPerMM))
	perfH := int(math.Round(g.Spec.PerforationSize.Height * g.PxPerMM))

	hole := image.Rect(
		perfCenter.X-perfW/2, perfCenter.Y-perfH/2,
		perfCenter.X-perfW/2+perfW, perfCenter.Y-perfH/2+perfH)
	g.fill(&mat, hole, g.PerforationLevel)

	g.finish(&mat)
	return mat
}

// Uniform returns a single-color BGR image, e.g. a blank frame at the end of
// the reel. The caller owns the returned Mat and must Close it.
func Uniform(width, height int, level uint8) gocv.Mat {
	mat := gocv.NewMatWithSize(height, width, gocv.MatTypeCV8UC3)
	for row := 0; row < height; row++ {
		for col := 0; col < width; col++ {
			for ch := 0; ch < 3; ch++ {
				mat.SetUCharAt(row, col*3+ch, level)
			}
		}
	}
	return mat
}

// fill paints the rectangle, clipped to the image, in the given gray level.
func (g *Generator) fill(mat *gocv.Mat, r image.Rectangle, level uint8) {
	r = r.Intersect(image.Rect(0, 0, g.Width, g.Height))
	for row := r.Min.Y; row < r.Max.Y; row++ {
		for col := r.Min.X; col < r.Max.X; col++ {
			for ch := 0; ch < 3; ch++ {
				mat.SetUCharAt(row, col*3+ch, level)
			}
		}
	}
}

// finish applies the optional blur and noise stages.
func (g *Generator) finish(mat *gocv.Mat) {
	if g.BlurSize > 0 {
		ksize := g.BlurSize | 1 // kernel size must be odd
		gocv.GaussianBlur(*mat, mat, image.Pt(ksize, ksize), 0, 0, gocv.BorderDefault)
	}
	if g.NoiseStdDev > 0 {
		g.addNoise(mat)
	}
}

func (g *Generator) addNoise(mat *gocv.Mat) {
	if g.rng == nil {
		g.rng = rand.New(rand.NewSource(1))
	}
	for row := 0; row < g.Height; row++ {
		for col := 0; col < g.Width; col++ {
			n := g.rng.NormFloat64() * g.NoiseStdDev
			for ch := 0; ch < 3; ch++ {
				idx := col*3 + ch
				v := float64(mat.GetUCharAt(row, idx)) + n
				mat.SetUCharAt(row, idx, uint8(math.Round(math.Max(0, math.Min(255, v)))))
			}
		}
	}
}
