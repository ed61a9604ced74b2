// Package film provides film dimension specifications and their registry.
//
// All dimensions are in millimeters. Positions are referenced to the middle of
// the inner edge of the perforation hole, the same anchor the frame
// registration tracks in the camera image.
package film

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
)

// SizeMM is a width/height pair in millimeters.
type SizeMM struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// PointMM is a position in millimeters relative to the top-left corner of a
// film frame.
type PointMM struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// OffsetMM is a displacement in millimeters relative to the perforation
// reference point.
type OffsetMM struct {
	DX float64 `json:"dx"`
	DY float64 `json:"dy"`
}

// Spec defines the physical dimensions of a film format.
type Spec struct {
	Key  string `json:"key"`
	Name string `json:"name"`

	// Typical frame rates this format was shot at.
	Framerates []float64 `json:"framerates"`

	// FrameSize is the size of a single film frame.
	FrameSize SizeMM `json:"frame_size"`

	// Perforation hole geometry. PerforationPos lists the reference point of
	// each hole belonging to one frame, relative to the frame's top-left
	// corner.
	PerforationSize      SizeMM    `json:"perforation_size"`
	PerforationPos       []PointMM `json:"perforation_pos"`
	PerforationsPerFrame int       `json:"perforations_per_frame"`

	// Camera aperture: the area exposed by the camera, positioned relative to
	// the perforation reference point. This is the area worth scanning.
	CameraSize SizeMM   `json:"camera_size"`
	CameraPos  OffsetMM `json:"camera_pos"`

	// Projector aperture, slightly smaller than the camera aperture.
	ProjectorSize SizeMM   `json:"projector_size"`
	ProjectorPos  OffsetMM `json:"projector_pos"`

	// Corner radii, only used when rendering synthetic frames.
	PerforationRadius float64 `json:"perforation_radius"`
	FrameCornerRadius float64 `json:"frame_corner_radius"`
}

// PerforationAspectRatio returns width/height of a perforation hole.
func (s *Spec) PerforationAspectRatio() float64 {
	return s.PerforationSize.Width / s.PerforationSize.Height
}

// Validate checks the spec for obviously broken dimensions.
func (s *Spec) Validate() error {
	if s.Key == "" {
		return fmt.Errorf("film spec key is required")
	}
	if s.FrameSize.Width <= 0 || s.FrameSize.Height <= 0 {
		return fmt.Errorf("film frame dimensions must be positive")
	}
	if s.PerforationSize.Width <= 0 || s.PerforationSize.Height <= 0 {
		return fmt.Errorf("perforation dimensions must be positive")
	}
	if s.PerforationsPerFrame <= 0 {
		return fmt.Errorf("perforations per frame must be positive")
	}
	if s.CameraSize.Width <= 0 || s.CameraSize.Height <= 0 {
		return fmt.Errorf("camera aperture dimensions must be positive")
	}
	return nil
}

// SaveToFile saves the spec to a JSON file.
func (s *Spec) SaveToFile(path string) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadFromFile loads a spec from a JSON file.
func LoadFromFile(path string) (*Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var spec Spec
	if err := json.Unmarshal(data, &spec); err != nil {
		return nil, err
	}

	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("invalid film spec: %w", err)
	}

	return &spec, nil
}

// Registry of known film specs
var registry = make(map[string]*Spec)

// Register adds a film spec to the registry.
func Register(spec *Spec) {
	registry[spec.Key] = spec
}

// Get returns a film spec by key, or nil if unknown.
func Get(key string) *Spec {
	return registry[key]
}

// Keys returns all registered film spec keys, sorted.
func Keys() []string {
	keys := make([]string, 0, len(registry))
	for key := range registry {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func init() {
	// Register built-in film specs
	Register(Super8Spec())
	Register(Normal8Spec())
	Register(Std16Spec())
	Register(Super16Spec())
}
