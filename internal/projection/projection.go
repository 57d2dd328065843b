package projection

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Pixels maps surface pixel coordinates with a top-left origin to normalized
// device coordinates: x' = 2x/width - 1, y' = 1 - 2y/height. The matrix is
// column-major, ready for a mat3 uniform. Degenerate sizes yield the
// identity.
func Pixels(width, height int) mgl32.Mat3 {
	if width <= 0 || height <= 0 {
		return mgl32.Ident3()
	}
	scale := mgl32.Scale2D(2/float32(width), -2/float32(height))
	return mgl32.Translate2D(-1, 1).Mul3(scale)
}

// Apply transforms a pixel position into NDC.
func Apply(m mgl32.Mat3, x, y float32) (float32, float32) {
	v := m.Mul3x1(mgl32.Vec3{x, y, 1})
	return v.X(), v.Y()
}
