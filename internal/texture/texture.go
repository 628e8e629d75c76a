package texture

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/anthonynsimon/bild/clone"
	"github.com/anthonynsimon/bild/transform"
	"github.com/google/uuid"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"keychain-designer/internal/resource"
)

// AlphaCutoff is the alpha threshold (0..1) below which a textured pixel is treated as absent.
const AlphaCutoff float32 = 0.5

// DefaultMaxSize bounds the longer side of a decoded texture.
const DefaultMaxSize = 1024

var ErrEmpty = errors.New("texture: empty image resource")

// Texture is a decoded, renderable image. Pixels are never mutated after Decode returns.
type Texture struct {
	ResourceID  uuid.UUID
	Pixels      *image.RGBA
	Width       int
	Height      int
	Transparent bool // any pixel below full opacity
	Format      string
}

// Decode reads the image resource, converts it to RGBA and downscales it so that neither side
// exceeds maxSize (maxSize <= 0 disables the limit).
func Decode(img *resource.Image, maxSize int) (*Texture, error) {
	if img == nil || img.Size() == 0 {
		return nil, ErrEmpty
	}
	src, format, err := image.Decode(img.Open())
	if err != nil {
		return nil, fmt.Errorf("texture: decode %s: %w", img.Name(), err)
	}
	rgba := clone.AsRGBA(src)
	b := rgba.Bounds()
	if w, h := fit(b.Dx(), b.Dy(), maxSize); w != b.Dx() || h != b.Dy() {
		rgba = transform.Resize(rgba, w, h, transform.Linear)
	}
	return &Texture{
		ResourceID:  img.ID(),
		Pixels:      rgba,
		Width:       rgba.Bounds().Dx(),
		Height:      rgba.Bounds().Dy(),
		Transparent: hasTransparency(rgba),
		Format:      format,
	}, nil
}

// fit scales (w, h) down to maxSize on the longer side, keeping the aspect ratio.
func fit(w, h, maxSize int) (int, int) {
	if maxSize <= 0 || (w <= maxSize && h <= maxSize) {
		return w, h
	}
	if w >= h {
		nh := h * maxSize / w
		if nh < 1 {
			nh = 1
		}
		return maxSize, nh
	}
	nw := w * maxSize / h
	if nw < 1 {
		nw = 1
	}
	return nw, maxSize
}

func hasTransparency(img *image.RGBA) bool {
	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i] != 0xFF {
			return true
		}
	}
	return false
}

// ApplyAlphaCutoff returns a copy of src where every pixel whose alpha is below cutoff (0..1)
// is fully transparent and every other pixel is fully opaque. Used where the renderer has no
// alpha-test stage.
func ApplyAlphaCutoff(src *image.RGBA, cutoff float32) *image.RGBA {
	out := clone.AsRGBA(src)
	for i := 0; i+3 < len(out.Pix); i += 4 {
		a := uint32(out.Pix[i+3])
		switch {
		case a == 0 || float32(a)/0xFF < cutoff:
			out.Pix[i], out.Pix[i+1], out.Pix[i+2], out.Pix[i+3] = 0, 0, 0, 0
		case a < 0xFF:
			// un-premultiply before forcing opacity
			out.Pix[i] = uint8(uint32(out.Pix[i]) * 0xFF / a)
			out.Pix[i+1] = uint8(uint32(out.Pix[i+1]) * 0xFF / a)
			out.Pix[i+2] = uint8(uint32(out.Pix[i+2]) * 0xFF / a)
			out.Pix[i+3] = 0xFF
		}
	}
	return out
}
