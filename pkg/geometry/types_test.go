package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRectCenter(t *testing.T) {
	r := Rect{X: 0.2, Y: 0.4, Width: 0.4, Height: 0.2}
	c := r.Center()
	assert.InDelta(t, 0.4, c.X, 1e-9)
	assert.InDelta(t, 0.5, c.Y, 1e-9)
}

func TestRectEdgesCenter(t *testing.T) {
	e := RectEdges{Top: 0.1, Bottom: 0.5, Left: 0.2, Right: 0.8}
	c := e.Center()
	assert.InDelta(t, 0.5, c.X, 1e-9)
	assert.InDelta(t, 0.3, c.Y, 1e-9)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantErr bool
	}{
		{"point ok", Point{X: 0, Y: 1}.Validate(), false},
		{"point out of range", Point{X: -0.01, Y: 0.5}.Validate(), true},
		{"offset ok", OffsetPoint{DX: -1, DY: 1}.Validate(), false},
		{"offset out of range", OffsetPoint{DX: 1.5}.Validate(), true},
		{"size ok", Size{Width: 0.5, Height: 0.5}.Validate(), false},
		{"size out of range", Size{Width: 1.1}.Validate(), true},
		{"rect ok", Rect{X: 0.5, Y: 0.5, Width: 0.5, Height: 0.5}.Validate(), false},
		{"rect spills over", Rect{X: 0.6, Y: 0.5, Width: 0.5, Height: 0.5}.Validate(), true},
		{"edges ok", RectEdges{Top: 0, Bottom: 1, Left: 0, Right: 1}.Validate(), false},
		{"edges negative", RectEdges{Top: -0.1, Bottom: 0.5}.Validate(), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.wantErr {
				assert.Error(t, tt.err)
			} else {
				assert.NoError(t, tt.err)
			}
		})
	}
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0.0, Clamp(-0.5, 0, 1))
	assert.Equal(t, 1.0, Clamp(1.5, 0, 1))
	assert.Equal(t, 0.25, Clamp(0.25, 0, 1))
}

func TestRectContains(t *testing.T) {
	r := Rect{X: 0.1, Y: 0.1, Width: 0.5, Height: 0.5}
	assert.True(t, r.Contains(Point{X: 0.3, Y: 0.3}))
	assert.True(t, r.Contains(Point{X: 0.1, Y: 0.1}))
	assert.False(t, r.Contains(Point{X: 0.7, Y: 0.3}))
}
