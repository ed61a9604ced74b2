package film

// 16mm with single perforation
// Taken from https://en.wikipedia.org/wiki/16_mm_film
// and http://www.brianpritchard.com/16mm_windings.htm

// Std16Spec returns the fully specified standard 16mm film definition.
func Std16Spec() *Spec {
	return &Spec{
		Key:        "std16mm",
		Name:       "16mm Standard",
		Framerates: []float64{24},

		// long frame. short frame would be 7.605mm
		FrameSize: SizeMM{Width: 15.95, Height: 7.62},

		PerforationSize:      SizeMM{Width: 1.829, Height: 1.27},
		PerforationPos:       []PointMM{{X: 2.13, Y: 0}}, // 0.084"
		PerforationsPerFrame: 1,

		// Camera aperture size. Found multiple values for the width.
		CameraSize: SizeMM{Width: 10.414, Height: 7.47},
		CameraPos:  OffsetMM{DX: 0.066, DY: (7.62 / 2) - (7.49 / 2)},

		ProjectorSize: SizeMM{Width: 9.65, Height: 7.21},
		ProjectorPos:  OffsetMM{DX: 0.066 + ((10.414 - 9.65) / 2), DY: (7.62 / 2) - (7.26 / 2)},

		PerforationRadius: 0.25,
		FrameCornerRadius: 0.508,
	}
}
