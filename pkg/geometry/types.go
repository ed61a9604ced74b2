// Package geometry provides the normalized geometric types used throughout the
// application.
//
// All coordinates are fractions of the image width or height in the closed
// interval [0,1], independent of the actual camera resolution. Scratch values
// computed outside this range must be clamped explicitly with Clamp before
// they are stored in one of these types.
package geometry

import (
	"fmt"
	"math"
)

// Point represents a normalized 2D point.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Validate returns an error if either coordinate is outside [0,1].
func (p Point) Validate() error {
	if !inUnitRange(p.X) || !inUnitRange(p.Y) {
		return fmt.Errorf("point (%g, %g) outside [0,1]", p.X, p.Y)
	}
	return nil
}

// Distance returns the Euclidean distance to another point.
func (p Point) Distance(other Point) float64 {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// OffsetPoint represents a normalized offset (delta) between two points.
// Both components are in [-1,1].
type OffsetPoint struct {
	DX float64 `json:"dx"`
	DY float64 `json:"dy"`
}

// Validate returns an error if either component is outside [-1,1].
func (o OffsetPoint) Validate() error {
	if o.DX < -1 || o.DX > 1 || o.DY < -1 || o.DY > 1 {
		return fmt.Errorf("offset (%g, %g) outside [-1,1]", o.DX, o.DY)
	}
	return nil
}

// Size represents a normalized 2D size.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Validate returns an error if either dimension is outside [0,1].
func (s Size) Validate() error {
	if !inUnitRange(s.Width) || !inUnitRange(s.Height) {
		return fmt.Errorf("size %gx%g outside [0,1]", s.Width, s.Height)
	}
	return nil
}

// Rect represents a rectangle described by its top-left point and its size.
// All values are normalized.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Center returns the center point of the rectangle.
func (r Rect) Center() Point {
	return Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Edges returns the rectangle described by its four edges.
func (r Rect) Edges() RectEdges {
	return RectEdges{Top: r.Y, Bottom: r.Y + r.Height, Left: r.X, Right: r.X + r.Width}
}

// Contains returns true if the point is inside the rectangle.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.X+r.Width &&
		p.Y >= r.Y && p.Y <= r.Y+r.Height
}

// Validate returns an error if any part of the rectangle lies outside [0,1].
func (r Rect) Validate() error {
	if !inUnitRange(r.X) || !inUnitRange(r.Y) ||
		!inUnitRange(r.X+r.Width) || !inUnitRange(r.Y+r.Height) {
		return fmt.Errorf("rect (%g, %g, %gx%g) outside [0,1]", r.X, r.Y, r.Width, r.Height)
	}
	return nil
}

// RectEdges represents a rectangle described by its top, bottom, left and
// right edges.
type RectEdges struct {
	Top    float64 `json:"top"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
	Right  float64 `json:"right"`
}

// Center returns the center point of the rectangle.
func (e RectEdges) Center() Point {
	return Point{X: (e.Left + e.Right) / 2, Y: (e.Top + e.Bottom) / 2}
}

// Validate returns an error if any edge lies outside [0,1].
func (e RectEdges) Validate() error {
	if !inUnitRange(e.Top) || !inUnitRange(e.Bottom) ||
		!inUnitRange(e.Left) || !inUnitRange(e.Right) {
		return fmt.Errorf("edges (t=%g b=%g l=%g r=%g) outside [0,1]", e.Top, e.Bottom, e.Left, e.Right)
	}
	return nil
}

// Clamp limits v to the range [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}

func inUnitRange(v float64) bool {
	return v >= 0 && v <= 1
}
