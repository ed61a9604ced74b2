package film

// Super 16mm (single perforation, wider aperture)
// Taken from https://en.wikipedia.org/wiki/16_mm_film

// Super16Spec returns the fully specified Super 16 film definition.
func Super16Spec() *Spec {
	return &Spec{
		Key:        "super16",
		Name:       "Super 16",
		Framerates: []float64{24},

		// long frame. short frame would be 7.605mm
		FrameSize: SizeMM{Width: 15.95, Height: 7.62},

		PerforationSize:      SizeMM{Width: 1.829, Height: 1.27},
		PerforationPos:       []PointMM{{X: 2.13, Y: 0}}, // 0.084"
		PerforationsPerFrame: 1,

		CameraSize: SizeMM{Width: 12.52, Height: 7.41},
		CameraPos:  OffsetMM{DX: 0.066, DY: (7.62 / 2) - (7.41 / 2)},

		ProjectorSize: SizeMM{Width: 11.76, Height: 7.08},
		ProjectorPos:  OffsetMM{DX: 0.066 + ((12.52 - 11.76) / 2), DY: (7.62 / 2) - (7.08 / 2)},

		PerforationRadius: 0.25,
		FrameCornerRadius: 0.508,
	}
}
