package scanarea

import (
	"math"

	"github.com/innot/tofisca/pkg/geometry"
)

// fixPerforation validates perf against the reference perforation geometry
// and repairs it where possible. It assumes that perf is approximately at the
// same position as prev, the perforation accepted for the previous frame.
// A no-op when no reference exists yet (first-ever detection).
//
// Vertical errors: if the hole height deviates from the reference height by
// more than heightTol (relative), the edge that still matches the previous
// frame within the same tolerance is kept and the other edge is recomputed
// from it and the reference height. If neither edge matches, a
// MalformedPerforationError is returned.
//
// Horizontal errors self-heal silently: an inner edge that drifted more than
// maxInnerDrift (normalized units) from the previous frame is dominated by
// dirt or damage on the hole boundary rather than true film motion, so it is
// replaced by the previous value and the outer edge is recomputed from the
// reference width.
func fixPerforation(perf *PerforationLocation, ref, prev *PerforationLocation, heightTol, maxInnerDrift float64) error {
	if ref == nil || prev == nil {
		return nil
	}

	refHeight := ref.Height()
	refWidth := ref.Width()

	height := perf.BottomEdge - perf.TopEdge
	epsilon := refHeight * heightTol
	if math.Abs(height-refHeight) > epsilon {
		// Height is off. Check if either top or bottom edge still matches the
		// previous frame and rebuild the other one from it.
		topOffset := perf.TopEdge - prev.TopEdge
		botOffset := perf.BottomEdge - prev.BottomEdge
		switch {
		case math.Abs(topOffset) < epsilon:
			perf.BottomEdge = perf.TopEdge + refHeight
		case math.Abs(botOffset) < epsilon:
			perf.TopEdge = perf.BottomEdge - refHeight
		default:
			return &MalformedPerforationError{
				Reason:   "perforation vertical size",
				Perf:     *perf,
				Expected: refHeight,
				Actual:   height,
			}
		}
	}

	if math.Abs(perf.InnerEdge-prev.InnerEdge) > maxInnerDrift {
		perf.InnerEdge = prev.InnerEdge
		perf.OuterEdge = geometry.Clamp(prev.InnerEdge-refWidth, 0, 1)
	}

	return nil
}
