package scanarea

import (
	"errors"
	"fmt"

	"github.com/innot/tofisca/pkg/geometry"
)

// ErrNotSetUp is returned when a tracking call is made before the manager has
// been set up with Autodetect or ManualDetect.
var ErrNotSetUp = errors.New("scan area manager has not been set up: call Autodetect or ManualDetect first")

// ErrNoImage is returned when an operation requiring an image is called
// without one.
var ErrNoImage = errors.New("no image has been set for the scan area manager")

// PerforationNotFoundError is returned when no perforation hole could be
// found in the relevant part of the image. It carries the search context for
// diagnostic display: the starting point of a point search, or the pixel
// column of a line search.
type PerforationNotFoundError struct {
	// StartPoint is the seed of a failed point search, nil for other searches.
	StartPoint *geometry.Point

	// PerfLine is the pixel column scanned by a failed line search, -1 for
	// other searches.
	PerfLine int
}

func (e *PerforationNotFoundError) Error() string {
	switch {
	case e.StartPoint != nil:
		return fmt.Sprintf("no perforation found from start point (%.4f, %.4f)",
			e.StartPoint.X, e.StartPoint.Y)
	case e.PerfLine >= 0:
		return fmt.Sprintf("no perforation found on the vertical line at x=%d", e.PerfLine)
	default:
		return "no perforation found in the image"
	}
}

// BlankFrameError is returned instead of PerforationNotFoundError when the
// image itself has negligible intensity variance, signalling the physical end
// of the film rather than a tracking glitch.
type BlankFrameError struct{}

func (e *BlankFrameError) Error() string {
	return "the current image is blank, i.e. it has no detectable content"
}

// MalformedPerforationError is returned when a perforation hole was found but
// its size does not match the reference perforation and could not be
// repaired.
type MalformedPerforationError struct {
	Reason   string
	Perf     PerforationLocation
	Expected float64
	Actual   float64
}

// Classification describes how the found perforation deviates from the
// reference: "oversized", "undersized" or "offset".
func (e *MalformedPerforationError) Classification() string {
	switch {
	case e.Actual > e.Expected:
		return "oversized"
	case e.Actual < e.Expected:
		return "undersized"
	default:
		return "offset"
	}
}

func (e *MalformedPerforationError) Error() string {
	return fmt.Sprintf("%s: found %s perforation (expected %.4f, got %.4f) at %+v",
		e.Reason, e.Classification(), e.Expected, e.Actual, e.Perf)
}

// ScanAreaOutOfImageError is returned when a perforation was found but the
// scan area derived from it is at least partially outside the image.
// Probably the reference perforation hole has shifted too far.
type ScanAreaOutOfImageError struct {
	StartPoint geometry.Point
	Area       ScanArea
}

func (e *ScanAreaOutOfImageError) Error() string {
	return fmt.Sprintf("scan area %+v outside of image, starting point was (%.4f, %.4f)",
		e.Area.Rect(), e.StartPoint.X, e.StartPoint.Y)
}
