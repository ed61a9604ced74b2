package scanarea

import (
	"testing"

	"github.com/innot/tofisca/pkg/geometry"

	"github.com/stretchr/testify/assert"
)

func TestPerforationLocation(t *testing.T) {
	perf := PerforationLocation{
		TopEdge:    0.4,
		BottomEdge: 0.6,
		InnerEdge:  0.15,
		OuterEdge:  0.05,
	}

	assert.InDelta(t, 0.1, perf.Width(), 1e-12)
	assert.InDelta(t, 0.2, perf.Height(), 1e-12)

	// The reference point is on the inner edge, vertically centered.
	ref := perf.Reference()
	assert.InDelta(t, 0.15, ref.X, 1e-12)
	assert.InDelta(t, 0.5, ref.Y, 1e-12)

	center := perf.Center()
	assert.InDelta(t, 0.1, center.X, 1e-12)
	assert.InDelta(t, 0.5, center.Y, 1e-12)

	rect := perf.Rect()
	assert.InDelta(t, 0.05, rect.X, 1e-12)
	assert.InDelta(t, 0.4, rect.Y, 1e-12)
	assert.InDelta(t, 0.1, rect.Width, 1e-12)
	assert.InDelta(t, 0.2, rect.Height, 1e-12)
}

func TestScanAreaRect(t *testing.T) {
	area := ScanArea{
		PerfRef: PerforationLocation{
			TopEdge:    0.4,
			BottomEdge: 0.6,
			InnerEdge:  0.15,
			OuterEdge:  0.05,
		},
		RefDelta: geometry.OffsetPoint{DX: 0.01, DY: -0.25},
		Size:     geometry.Size{Width: 0.6, Height: 0.5},
	}

	rect := area.Rect()
	assert.InDelta(t, 0.16, rect.X, 1e-12)
	assert.InDelta(t, 0.25, rect.Y, 1e-12)
	assert.InDelta(t, 0.6, rect.Width, 1e-12)
	assert.InDelta(t, 0.5, rect.Height, 1e-12)

	edges := area.Edges()
	assert.InDelta(t, 0.25, edges.Top, 1e-12)
	assert.InDelta(t, 0.75, edges.Bottom, 1e-12)
	assert.InDelta(t, 0.16, edges.Left, 1e-12)
	assert.InDelta(t, 0.76, edges.Right, 1e-12)

	assert.True(t, area.IsValid())

	// Shift the anchor so the area pokes out at the bottom.
	area.PerfRef.TopEdge = 0.8
	area.PerfRef.BottomEdge = 1.0
	assert.False(t, area.IsValid())
}

func TestThresholdLevelsAverage(t *testing.T) {
	levels := ThresholdLevels{PerforationLevel: 230, FilmstockLevel: 40}
	assert.InDelta(t, 135, levels.Average(), 1e-12)
}
