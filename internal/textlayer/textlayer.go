package textlayer

import (
	"image"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"

	"keychain-designer/internal/compositor"
	"keychain-designer/internal/fonts"
)

// ReferenceWidth is the preview width in pixels that overlay font sizes are expressed against.
const ReferenceWidth = 400

// DefaultPixelsPerUnit is the raster density of a text layer.
const DefaultPixelsPerUnit = 128

// Render rasterizes layer into a transparent image of Width*ppu by Height*ppu pixels.
// Only glyph pixels are non-transparent. A nil font uses fonts.Fallback.
func Render(layer *compositor.TextLayer, font *truetype.Font, ppu float64) *image.RGBA {
	if ppu <= 0 {
		ppu = DefaultPixelsPerUnit
	}
	w := int(float64(layer.Width)*ppu + 0.5)
	h := int(float64(layer.Height)*ppu + 0.5)
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	if font == nil {
		font = fonts.Fallback()
	}

	dc := gg.NewContext(w, h)
	size := float64(layer.FontSize) * float64(w) / ReferenceWidth
	dc.SetFontFace(truetype.NewFace(font, &truetype.Options{Size: size}))

	x, y := Anchor(layer, w, h)
	dc.RotateAbout(gg.Radians(float64(layer.Rotation)), x, y)
	dc.SetColor(layer.Color)
	dc.DrawStringAnchored(layer.Text, x, y, 0.5, 0.5)

	if img, ok := dc.Image().(*image.RGBA); ok {
		return img
	}
	return image.NewRGBA(image.Rect(0, 0, w, h))
}

// Anchor maps the layer's normalized position (-1..1, y up) to the pixel center of the text
// in a w by h raster (origin top-left, y down).
func Anchor(layer *compositor.TextLayer, w, h int) (x, y float64) {
	x = (float64(layer.Position[0]) + 1) / 2 * float64(w)
	y = (1 - float64(layer.Position[1])) / 2 * float64(h)
	return x, y
}
