package scene

import (
	"image/color"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"

	"keychain-designer/internal/compositor"
	"keychain-designer/internal/geometry"
	"keychain-designer/internal/primitives"
)

var whiteNRGBA = color.NRGBA{R: 255, G: 255, B: 255, A: 255}

// FaceTransform places the unit plane (1x1, facing +Y) on face f of body. Front and back keep the
// image upright when seen from their side. FaceAll maps to the front.
func FaceTransform(f compositor.Face, body geometry.Body) rl.Matrix {
	w, h, d := body.Width, body.Height, body.Depth
	var (
		pos   [3]float32
		scale [3]float32
		rot   rl.Matrix
	)
	switch f {
	case compositor.FaceRight:
		pos, scale, rot = [3]float32{w / 2, 0, 0}, [3]float32{h, 1, d}, rl.MatrixRotateZ(-math32.Pi/2)
	case compositor.FaceLeft:
		pos, scale, rot = [3]float32{-w / 2, 0, 0}, [3]float32{h, 1, d}, rl.MatrixRotateZ(math32.Pi/2)
	case compositor.FaceTop:
		pos, scale, rot = [3]float32{0, h / 2, 0}, [3]float32{w, 1, d}, rl.MatrixIdentity()
	case compositor.FaceBottom:
		pos, scale, rot = [3]float32{0, -h / 2, 0}, [3]float32{w, 1, d}, rl.MatrixRotateX(math32.Pi)
	case compositor.FaceBack:
		pos, scale = [3]float32{0, 0, -d / 2}, [3]float32{w, 1, h}
		rot = rl.MatrixMultiply(rl.MatrixRotateX(math32.Pi/2), rl.MatrixRotateY(math32.Pi))
	default:
		pos, scale, rot = [3]float32{0, 0, d / 2}, [3]float32{w, 1, h}, rl.MatrixRotateX(math32.Pi/2)
	}
	return primitives.Transform(pos, scale, &rot)
}
