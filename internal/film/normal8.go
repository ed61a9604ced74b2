package film

// Regular 8mm (Double 8) frame specification
// Taken from https://github.com/PM490/framebyframe/
//
// Regular 8 uses 16mm-sized perforations located between frames.

// Normal8Spec returns the fully specified Regular 8mm film definition.
func Normal8Spec() *Spec {
	return &Spec{
		Key:        "normal8",
		Name:       "8mm Regular",
		Framerates: []float64{18, 24},

		// height is half of 16mm film
		FrameSize: SizeMM{Width: 7.976, Height: 7.62 / 2},

		// same perforation as 16mm
		PerforationSize:      SizeMM{Width: 1.829, Height: 1.27},
		PerforationPos:       []PointMM{{X: 2.13, Y: 0}}, // 0.084"
		PerforationsPerFrame: 1,

		// Camera aperture size. Found multiple values for the width.
		CameraSize: SizeMM{Width: 4.88, Height: 3.68},
		CameraPos:  OffsetMM{DX: 1.47, DY: 0.06 / 2},

		// Projector aperture size unknown - use camera aperture
		ProjectorSize: SizeMM{Width: 4.88, Height: 3.68},
		ProjectorPos:  OffsetMM{DX: 1.47, DY: 0.06 / 2},

		PerforationRadius: 0.13,
		FrameCornerRadius: 0.13,
	}
}
