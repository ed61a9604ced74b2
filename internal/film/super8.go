package film

// Super 8 frame specification
// Taken from https://www.filmkorn.org/super8data/database/articles_list/super8_fotmat_standards.htm
// and http://www.gcmstudio.com/filmspecs/filmspecs.html
// and https://www.nfsa.gov.au/preservation/preservation-glossary/Film_format
//
// Super 8 has one perforation hole per frame, centered vertically on the
// frame, on the left side of the film strip.

// Super8Spec returns the fully specified Super 8 film definition.
func Super8Spec() *Spec {
	return &Spec{
		Key:        "super8",
		Name:       "Super8",
		Framerates: []float64{18, 24},

		// long frame. Small frame has a height of 4.227mm
		FrameSize: SizeMM{Width: 7.976, Height: 4.234},

		PerforationSize:      SizeMM{Width: 0.914, Height: 1.143},
		PerforationPos:       []PointMM{{X: 0.51 + 0.914, Y: 4.234 / 2}},
		PerforationsPerFrame: 1,

		// Camera aperture size. Found multiple values for the width.
		CameraSize: SizeMM{Width: 5.69, Height: 4.22},
		CameraPos:  OffsetMM{DX: 1.47 - (0.51 + 0.914), DY: -(4.22 / 2)},

		ProjectorSize: SizeMM{Width: 5.46, Height: 4.01},
		ProjectorPos:  OffsetMM{DX: 1.65 - (0.51 + 0.914), DY: -(4.01 / 2)},

		PerforationRadius: 0.13,
		FrameCornerRadius: 0.13,
	}
}
