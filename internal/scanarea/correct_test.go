package scanarea

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// goodPerf returns a well-formed perforation matching the reference geometry
// used throughout these tests: height 0.15, width 0.09.
func goodPerf() PerforationLocation {
	return PerforationLocation{
		TopEdge:    0.40,
		BottomEdge: 0.55,
		InnerEdge:  0.14,
		OuterEdge:  0.05,
	}
}

func TestFixPerforationNoReference(t *testing.T) {
	// Without a reference there is nothing to validate against; even a
	// nonsense location passes through untouched.
	perf := PerforationLocation{TopEdge: 0.9, BottomEdge: 0.1}
	orig := perf

	err := fixPerforation(&perf, nil, nil, DefaultHeightTolerance, DefaultInnerDriftLimit)
	require.NoError(t, err)
	assert.Equal(t, orig, perf)
}

func TestFixPerforationGoodHeight(t *testing.T) {
	ref := goodPerf()
	prev := goodPerf()
	perf := goodPerf()

	// Deviation well within the 2% tolerance.
	perf.BottomEdge += 0.001

	err := fixPerforation(&perf, &ref, &prev, DefaultHeightTolerance, DefaultInnerDriftLimit)
	require.NoError(t, err)
	assert.InDelta(t, 0.551, perf.BottomEdge, 1e-12)
}

func TestFixPerforationRepairsBottomEdge(t *testing.T) {
	ref := goodPerf()
	prev := goodPerf()
	perf := goodPerf()

	// Bottom edge 10% too low, top edge still where the previous frame had
	// it: the bottom is rebuilt from the top and the reference height.
	perf.BottomEdge += ref.Height() * 0.1

	err := fixPerforation(&perf, &ref, &prev, DefaultHeightTolerance, DefaultInnerDriftLimit)
	require.NoError(t, err)
	assert.InDelta(t, prev.TopEdge, perf.TopEdge, 1e-12)
	assert.InDelta(t, perf.TopEdge+ref.Height(), perf.BottomEdge, 1e-12)
}

func TestFixPerforationRepairsTopEdge(t *testing.T) {
	ref := goodPerf()
	prev := goodPerf()
	perf := goodPerf()

	perf.TopEdge -= ref.Height() * 0.1

	err := fixPerforation(&perf, &ref, &prev, DefaultHeightTolerance, DefaultInnerDriftLimit)
	require.NoError(t, err)
	assert.InDelta(t, prev.BottomEdge, perf.BottomEdge, 1e-12)
	assert.InDelta(t, perf.BottomEdge-ref.Height(), perf.TopEdge, 1e-12)
}

func TestFixPerforationMalformed(t *testing.T) {
	ref := goodPerf()
	prev := goodPerf()
	perf := goodPerf()

	// Both edges moved: nothing trustworthy to rebuild from.
	perf.TopEdge -= 0.05
	perf.BottomEdge += 0.05

	err := fixPerforation(&perf, &ref, &prev, DefaultHeightTolerance, DefaultInnerDriftLimit)

	var malformed *MalformedPerforationError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, "oversized", malformed.Classification())
	assert.InDelta(t, ref.Height(), malformed.Expected, 1e-12)
}

func TestFixPerforationUndersized(t *testing.T) {
	ref := goodPerf()
	prev := goodPerf()
	perf := goodPerf()

	perf.TopEdge += 0.04
	perf.BottomEdge -= 0.04

	err := fixPerforation(&perf, &ref, &prev, DefaultHeightTolerance, DefaultInnerDriftLimit)

	var malformed *MalformedPerforationError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, "undersized", malformed.Classification())
}

func TestFixPerforationInnerDrift(t *testing.T) {
	ref := goodPerf()
	prev := goodPerf()
	perf := goodPerf()

	// The inner edge jumped by more than the drift limit while the height is
	// fine: self-heal from the previous frame, no error.
	perf.InnerEdge = prev.InnerEdge + 0.11
	perf.OuterEdge = perf.InnerEdge - ref.Width()

	err := fixPerforation(&perf, &ref, &prev, DefaultHeightTolerance, DefaultInnerDriftLimit)
	require.NoError(t, err)
	assert.InDelta(t, prev.InnerEdge, perf.InnerEdge, 1e-12)
	assert.InDelta(t, prev.InnerEdge-ref.Width(), perf.OuterEdge, 1e-12)
}

func TestFixPerforationInnerDriftClampsOuter(t *testing.T) {
	ref := goodPerf()
	prev := goodPerf()
	// Previous hole cropped at the left image boundary.
	prev.InnerEdge = 0.05
	prev.OuterEdge = 0

	perf := goodPerf()
	perf.InnerEdge = 0.30

	err := fixPerforation(&perf, &ref, &prev, DefaultHeightTolerance, DefaultInnerDriftLimit)
	require.NoError(t, err)
	assert.InDelta(t, 0.05, perf.InnerEdge, 1e-12)
	assert.InDelta(t, 0, perf.OuterEdge, 1e-12)
}
