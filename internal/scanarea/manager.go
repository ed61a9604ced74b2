// Package scanarea implements frame registration for the film scanner: it
// locates the sprocket-hole (perforation) reference feature in the camera
// image, validates it against the known film geometry, and derives the
// rectangular scan area to capture, tracking both across a continuous stream
// of frames.
//
// A Manager must be set up once with Autodetect or ManualDetect. Autodetect
// only works when a complete perforation hole is visible; with a partially
// cropped hole ManualDetect is required, seeded with a point inside the hole.
// The perforation hole must be on the left-hand side of the image. After
// setup, Update is called with each new image and returns the scan area
// location for it.
package scanarea

import (
	"errors"
	"log/slog"
	"math"

	"github.com/innot/tofisca/internal/film"
	"github.com/innot/tofisca/pkg/geometry"

	"gocv.io/x/gocv"
)

// Empirical detection constants. They have no stated derivation; they were
// tuned on real scanner footage and can be overridden through Options.
const (
	// DefaultBlankStdDev is the maximum per-channel gray level standard
	// deviation below which an image counts as blank (end of reel).
	DefaultBlankStdDev = 10.0

	// DefaultHeightTolerance is the acceptable relative deviation of a
	// detected hole height from the reference height.
	DefaultHeightTolerance = 0.02

	// DefaultInnerDriftLimit is the maximum movement (normalized units) of
	// the inner edge between consecutive frames before it is considered
	// unreliable and replaced by the previous value.
	DefaultInnerDriftLimit = 0.05

	// DefaultAspectTolerance is the acceptable deviation of a contour's
	// aspect ratio from the film spec's perforation aspect ratio.
	DefaultAspectTolerance = 0.1

	// DefaultMinAreaFraction is the minimum fraction of the image a contour
	// must cover to count as a perforation candidate (filters sensor noise).
	DefaultMinAreaFraction = 1.0 / 500

	// medianBlurSize is the kernel size of the denoising blur applied before
	// contour detection.
	medianBlurSize = 5

	// uncalibratedMargin is subtracted from the seed point intensity to guess
	// a threshold when no calibration has happened yet.
	uncalibratedMargin = 20
)

// Options configures a Manager. The zero value is not usable; start from
// DefaultOptions.
type Options struct {
	BlankStdDev     float64
	HeightTolerance float64
	InnerDriftLimit float64
	AspectTolerance float64
	MinAreaFraction float64
	Logger          *slog.Logger
}

// DefaultOptions returns the default manager options.
func DefaultOptions() Options {
	return Options{
		BlankStdDev:     DefaultBlankStdDev,
		HeightTolerance: DefaultHeightTolerance,
		InnerDriftLimit: DefaultInnerDriftLimit,
		AspectTolerance: DefaultAspectTolerance,
		MinAreaFraction: DefaultMinAreaFraction,
	}
}

// Manager keeps track of where within the camera image the actual film frame
// content (the scan area) is.
//
// A Manager is not safe for concurrent use; callers must ensure at most one
// detection call is in flight per instance. All detectors build their result
// on locals and commit to the manager's fields only on success, so a failed
// call leaves the previous valid state untouched. Independent Managers may
// run concurrently for different film channels.
type Manager struct {
	spec *film.Spec
	opts Options
	log  *slog.Logger

	// The current image. Borrowed from the caller for the duration of one
	// call, kept only by reference for diagnostic re-display.
	image gocv.Mat

	// The reference perforation location defines the size and approximate
	// position of a well-formed hole. Only set by Autodetect and
	// ManualDetect.
	reference *PerforationLocation

	// The current scan area. Its anchor is updated for each new image by
	// Update.
	scanArea *ScanArea

	levels *ThresholdLevels
}

// NewManager creates a Manager for the given film specification.
func NewManager(spec *film.Spec, opts Options) *Manager {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Manager{
		spec: spec,
		opts: opts,
		log:  log,
	}
}

// Spec returns the film specification the manager was created with.
func (m *Manager) Spec() *film.Spec {
	return m.spec
}

// Reference returns the reference perforation location, or nil before setup.
func (m *Manager) Reference() *PerforationLocation {
	return m.reference
}

// Area returns the current scan area, or nil before setup.
func (m *Manager) Area() *ScanArea {
	return m.scanArea
}

// Levels returns the current threshold levels, or nil before any detection.
func (m *Manager) Levels() *ThresholdLevels {
	return m.levels
}

// Autodetect tries to automatically detect a frame in the image.
//
// All contours with the shape of a perforation hole are considered. For each,
// the edges are refined with a point search seeded at the contour center and
// a scan area is derived from the film specification; candidates whose scan
// area is not completely inside the image are discarded. Among the remaining
// candidates the first found wins, unless another one's scan area is
// vertically closer to the image midline, which favors fully visible frames
// over partial ones at the top or bottom edge.
//
// On success the manager's reference perforation and scan area are replaced
// and the capture rectangle is returned.
func (m *Manager) Autodetect(img gocv.Mat) (geometry.Rect, error) {
	if img.Empty() {
		return geometry.Rect{}, ErrNoImage
	}
	m.image = img

	gray := grayscale(img)
	defer gray.Close()

	candidates, err := m.findPerforations(gray)
	if err != nil {
		return geometry.Rect{}, err
	}
	if len(candidates) == 0 {
		return geometry.Rect{}, &PerforationNotFoundError{PerfLine: -1}
	}
	m.log.Debug("autodetect found perforation candidates", "count", len(candidates))

	type candidateArea struct {
		area   ScanArea
		levels *ThresholdLevels
	}

	var (
		valid     []candidateArea
		lastStart geometry.Point
		lastArea  ScanArea
	)

	for _, perfRect := range candidates {
		startPoint := perfRect.Center()
		lastStart = startPoint

		// Calibrate the intensity levels from this hole first; they improve
		// the edge search below.
		levels := calibrateFromPerforation(gray, perfRect)

		// Refine the edges with a point search from the contour center. Due
		// to noise and blurring the contour is less precise at locating the
		// true edges.
		perf, err := m.findPerforationFromPoint(gray, startPoint, levels, nil, nil)
		if err != nil {
			return geometry.Rect{}, err
		}
		if perf == nil {
			// No usable edges; go with the detected contour.
			perf = &PerforationLocation{
				TopEdge:    perfRect.Y,
				BottomEdge: perfRect.Y + perfRect.Height,
				InnerEdge:  perfRect.X + perfRect.Width,
				OuterEdge:  perfRect.X,
			}
		}

		area := m.scanAreaFromPerforation(*perf)
		lastArea = area

		if area.IsValid() {
			valid = append(valid, candidateArea{area: area, levels: levels})
		}
	}

	if len(valid) == 0 {
		// No candidate produced a scan area fully inside the image. Report
		// the last attempt.
		return geometry.Rect{}, &ScanAreaOutOfImageError{StartPoint: lastStart, Area: lastArea}
	}

	// Use the first found frame unless another one is closer to the vertical
	// center of the image.
	best := valid[0]
	bestDelta := math.Abs(0.5 - best.area.Rect().Center().Y)
	for _, c := range valid[1:] {
		delta := math.Abs(0.5 - c.area.Rect().Center().Y)
		if delta < bestDelta {
			best = c
			bestDelta = delta
		}
	}

	ref := best.area.PerfRef
	m.reference = &ref
	m.scanArea = &best.area
	m.levels = best.levels
	m.log.Debug("autodetect done", "scanarea", best.area.Rect(), "candidates", len(valid))

	return best.area.Rect(), nil
}

// ManualDetect sets up the manager from a user-selected start point located
// within a perforation hole. It is the fallback for film positions where
// Autodetect cannot work, e.g. a hole partially cropped at the image edge.
func (m *Manager) ManualDetect(img gocv.Mat, start geometry.Point) (geometry.Rect, error) {
	m.image = img

	gray := grayscale(img)
	defer gray.Close()

	// The previous threshold levels may be stale, but the point search can
	// fall back to a guessed threshold when none exist.
	perf, err := m.findPerforationFromPoint(gray, start, m.levels, nil, nil)
	if err != nil {
		return geometry.Rect{}, err
	}
	if perf == nil {
		return geometry.Rect{}, &PerforationNotFoundError{StartPoint: &start, PerfLine: -1}
	}

	// Now the levels can be calibrated properly.
	levels := calibrateFromPerforation(gray, perf.Rect())

	area := m.scanAreaFromPerforation(*perf)
	if !area.IsValid() {
		return geometry.Rect{}, &ScanAreaOutOfImageError{StartPoint: start, Area: area}
	}

	m.reference = perf
	m.scanArea = &area
	m.levels = levels
	m.log.Debug("manualdetect done", "start", start, "scanarea", area.Rect())

	return area.Rect(), nil
}

// Update locates the perforation in a new image, based on the previously
// established reference, and returns the new capture rectangle.
//
// The hole is first searched around the previous location; if the film has
// moved too far for that, a full vertical line search along the same axis is
// tried. If both fail on a blank image, a BlankFrameError signals the end of
// the reel. On success only the scan area's anchor moves; its size and offset
// are fixed until the manager is set up again.
func (m *Manager) Update(img gocv.Mat) (geometry.Rect, error) {
	if m.scanArea == nil || m.reference == nil || m.levels == nil {
		return geometry.Rect{}, ErrNotSetUp
	}

	m.image = img

	gray := grayscale(img)
	defer gray.Close()

	prev := m.scanArea.PerfRef

	perf, err := m.findPerforationFromPoint(gray, prev.Center(), m.levels, m.reference, &prev)
	if err != nil {
		return geometry.Rect{}, err
	}
	if perf == nil {
		// Not found around the previous location: look up and down the same
		// vertical axis.
		perf, err = m.findPerforationFromLine(gray, prev.Center().X, m.levels, m.reference, &prev)
		if err != nil {
			var notFound *PerforationNotFoundError
			if errors.As(err, &notFound) && isBlank(img, m.opts.BlankStdDev) {
				// No perforation edges anywhere. We probably ran out of film.
				return geometry.Rect{}, &BlankFrameError{}
			}
			return geometry.Rect{}, err
		}
	}

	// A well-behaved perforation hole. Store it as the anchor for the next
	// image.
	m.scanArea.PerfRef = *perf

	return m.scanArea.Rect(), nil
}

// RecommendedShift reports by what fraction of one full film frame the next
// film advance should be longer (positive) or shorter (negative) to keep the
// scan area centered in the image. It is consumed by the motor control loop;
// this subsystem only computes it.
func (m *Manager) RecommendedShift() (float64, error) {
	if m.scanArea == nil || m.reference == nil {
		return 0, ErrNotSetUp
	}

	// How much of the image height one film frame occupies.
	frameToPerf := m.spec.FrameSize.Height / m.spec.PerforationSize.Height
	frameHeight := m.reference.Height() * frameToPerf

	// Negative if the hole is above mid-image (shorter advance required),
	// positive below it (longer advance required).
	deltaCenterline := m.scanArea.PerfRef.Center().Y - 0.5

	return deltaCenterline / frameHeight, nil
}

// MaxPerfEdges returns the area within which a perforation hole must lie so
// that the associated scan area is still completely inside the image. Returns
// ErrNotSetUp before the manager has a scan area.
func (m *Manager) MaxPerfEdges() (geometry.RectEdges, error) {
	if m.scanArea == nil {
		return geometry.RectEdges{}, ErrNotSetUp
	}
	return m.maxPerfEdges(*m.scanArea), nil
}

// maxPerfEdges computes the band of legal perforation positions for the given
// scan area, clamped to the image.
func (m *Manager) maxPerfEdges(area ScanArea) geometry.RectEdges {
	perfHeight := area.PerfRef.BottomEdge - area.PerfRef.TopEdge

	upmostRefY := -area.RefDelta.DY
	top := geometry.Clamp(upmostRefY-perfHeight/2, 0, 1)

	downmostRefY := 1 - area.Size.Height - area.RefDelta.DY
	bottom := geometry.Clamp(downmostRefY+perfHeight/2, 0, 1)

	// The perforation can always touch the left image edge.
	right := geometry.Clamp(1-area.Size.Width-area.RefDelta.DX, 0, 1)

	return geometry.RectEdges{Top: top, Bottom: bottom, Left: 0, Right: right}
}

// scanAreaFromPerforation derives the camera frame position relative to the
// perforation hole using the film specification.
//
// The vertical scale (normalized units per millimeter) comes from the
// measured hole height and the spec's hole height; the horizontal scale is
// the vertical one corrected by the image aspect ratio. For film types with
// multiple perforation holes per frame, the given perforation is assumed to
// be the first one listed in the film spec.
func (m *Manager) scanAreaFromPerforation(perf PerforationLocation) ScanArea {
	scaleV := perf.Height() / m.spec.PerforationSize.Height

	scaleH := scaleV
	if !m.image.Empty() {
		scaleH = scaleV / m.imageAspectRatio()
	}
	// Without an image an aspect ratio of 1 is assumed; this only matters for
	// unit tests.

	return ScanArea{
		PerfRef: perf,
		RefDelta: geometry.OffsetPoint{
			DX: m.spec.CameraPos.DX * scaleH,
			DY: m.spec.CameraPos.DY * scaleV,
		},
		Size: geometry.Size{
			Width:  m.spec.CameraSize.Width * scaleH,
			Height: m.spec.CameraSize.Height * scaleV,
		},
	}
}

// imageAspectRatio returns width/height of the current image.
func (m *Manager) imageAspectRatio() float64 {
	return float64(m.image.Cols()) / float64(m.image.Rows())
}
