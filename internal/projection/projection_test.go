package projection

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestPixelsCorners(t *testing.T) {
	m := Pixels(800, 600)

	tests := []struct {
		name         string
		x, y         float32
		wantX, wantY float32
	}{
		{"top left", 0, 0, -1, 1},
		{"bottom right", 800, 600, 1, -1},
		{"centre", 400, 300, 0, 0},
		{"top right", 800, 0, 1, 1},
		{"above the surface", 200, -600, -0.5, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := Apply(m, tt.x, tt.y)
			assert.InDelta(t, tt.wantX, x, 1e-6)
			assert.InDelta(t, tt.wantY, y, 1e-6)
		})
	}
}

func TestPixelsColumnMajor(t *testing.T) {
	want := mgl32.Mat3{
		2.0 / 800, 0, 0,
		0, -2.0 / 600, 0,
		-1, 1, 1,
	}
	assert.True(t, want.ApproxEqual(Pixels(800, 600)))
}

func TestPixelsDegenerate(t *testing.T) {
	for _, size := range [][2]int{{0, 0}, {0, 600}, {800, 0}, {-1, 600}} {
		assert.Equal(t, mgl32.Ident3(), Pixels(size[0], size[1]))
	}
}
