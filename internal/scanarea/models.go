package scanarea

import (
	"github.com/innot/tofisca/pkg/geometry"
)

// PerforationLocation describes the four edges of one sprocket hole in
// normalized image coordinates.
//
// A well-formed hole has BottomEdge > TopEdge and InnerEdge > OuterEdge;
// anything else signals a malformed or undetected perforation.
type PerforationLocation struct {
	TopEdge    float64 `json:"top_edge"`
	BottomEdge float64 `json:"bottom_edge"`
	InnerEdge  float64 `json:"inner_edge"`
	OuterEdge  float64 `json:"outer_edge"`
}

// Width returns the horizontal extent of the hole.
func (p PerforationLocation) Width() float64 {
	return p.InnerEdge - p.OuterEdge
}

// Height returns the vertical extent of the hole.
func (p PerforationLocation) Height() float64 {
	return p.BottomEdge - p.TopEdge
}

// Reference returns the tracking anchor: the point on the inner edge,
// vertically centered on the hole. The scan area is positioned relative to
// this point.
func (p PerforationLocation) Reference() geometry.Point {
	return geometry.Point{
		X: p.InnerEdge,
		Y: (p.TopEdge + p.BottomEdge) / 2,
	}
}

// Center returns the geometric center of the hole.
func (p PerforationLocation) Center() geometry.Point {
	return geometry.Point{
		X: (p.InnerEdge + p.OuterEdge) / 2,
		Y: (p.TopEdge + p.BottomEdge) / 2,
	}
}

// Rect returns the hole as a rectangle.
func (p PerforationLocation) Rect() geometry.Rect {
	return geometry.Rect{
		X:      p.OuterEdge,
		Y:      p.TopEdge,
		Width:  p.Width(),
		Height: p.Height(),
	}
}

// ScanArea defines the capture rectangle relative to a reference perforation:
// the rectangle's top-left corner is the perforation reference point plus
// RefDelta, and Size is its extent. Update moves only the anchor (PerfRef);
// RefDelta and Size are fixed at setup time.
type ScanArea struct {
	PerfRef  PerforationLocation  `json:"perf_ref"`
	RefDelta geometry.OffsetPoint `json:"ref_delta"`
	Size     geometry.Size        `json:"size"`
}

// Rect returns the scan area as a rectangle relative to the complete image.
func (s ScanArea) Rect() geometry.Rect {
	ref := s.PerfRef.Reference()
	return geometry.Rect{
		X:      ref.X + s.RefDelta.DX,
		Y:      ref.Y + s.RefDelta.DY,
		Width:  s.Size.Width,
		Height: s.Size.Height,
	}
}

// Edges returns the top/bottom/left/right edges of the scan area relative to
// the complete image.
func (s ScanArea) Edges() geometry.RectEdges {
	ref := s.PerfRef.Reference()
	top := ref.Y + s.RefDelta.DY
	left := ref.X + s.RefDelta.DX
	return geometry.RectEdges{
		Top:    top,
		Bottom: top + s.Size.Height,
		Left:   left,
		Right:  left + s.Size.Width,
	}
}

// IsValid reports whether the scan area lies completely within the image,
// i.e. all of its edges are within [0,1].
func (s ScanArea) IsValid() bool {
	return s.Edges().Validate() == nil
}

// ThresholdLevels holds the two gray-level bands sampled from the current
// image: the bright backlight shining through the perforation hole and the
// darker film stock. Their midpoint is the binary threshold for all edge
// searches. Levels are sampled per image because the exposure varies with the
// backlight PWM duty cycle and ambient drift.
type ThresholdLevels struct {
	PerforationLevel float64 `json:"perforation_level"`
	FilmstockLevel   float64 `json:"filmstock_level"`
}

// Average returns the middle between the perforation level and the film
// stock level.
func (t ThresholdLevels) Average() float64 {
	return (t.PerforationLevel + t.FilmstockLevel) / 2
}
