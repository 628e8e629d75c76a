package textlayer

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"keychain-designer/internal/compositor"
)

func layer() *compositor.TextLayer {
	return &compositor.TextLayer{
		Text:     "HI",
		FontSize: 48,
		Color:    color.NRGBA{R: 255, A: 255},
		Width:    4,
		Height:   4,
	}
}

func opaqueBounds(img *image.RGBA) (image.Rectangle, int) {
	var r image.Rectangle
	n := 0
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.RGBAAt(x, y).A == 0 {
				continue
			}
			n++
			p := image.Rect(x, y, x+1, y+1)
			if r.Empty() {
				r = p
			} else {
				r = r.Union(p)
			}
		}
	}
	return r, n
}

func TestRenderBackgroundIsTransparent(t *testing.T) {
	img := Render(layer(), nil, 32)
	require.Equal(t, image.Rect(0, 0, 128, 128), img.Bounds())

	box, n := opaqueBounds(img)
	require.Greater(t, n, 0)
	assert.Less(t, n, 128*128/2)
	assert.Equal(t, uint8(0), img.RGBAAt(0, 0).A)
	assert.Equal(t, uint8(0), img.RGBAAt(127, 127).A)
	// centered text
	cx := (box.Min.X + box.Max.X) / 2
	cy := (box.Min.Y + box.Max.Y) / 2
	assert.InDelta(t, 64, cx, 6)
	assert.InDelta(t, 64, cy, 6)
}

func TestRenderPosition(t *testing.T) {
	l := layer()
	l.Position = [2]float32{0, 0.5}
	box, n := opaqueBounds(Render(l, nil, 32))
	require.Greater(t, n, 0)
	assert.InDelta(t, 32, (box.Min.Y+box.Max.Y)/2, 6)
}

func TestRenderRotationKeepsCenter(t *testing.T) {
	flat := layer()
	tilted := layer()
	tilted.Rotation = 45
	fb, _ := opaqueBounds(Render(flat, nil, 32))
	tb, _ := opaqueBounds(Render(tilted, nil, 32))
	assert.NotEqual(t, fb, tb)
	assert.InDelta(t, (fb.Min.X+fb.Max.X)/2, (tb.Min.X+tb.Max.X)/2, 6)
}

func TestAnchor(t *testing.T) {
	l := layer()
	l.Position = [2]float32{-1, 1}
	x, y := Anchor(l, 200, 100)
	assert.Equal(t, 0.0, x)
	assert.Equal(t, 0.0, y)
	l.Position = [2]float32{1, -1}
	x, y = Anchor(l, 200, 100)
	assert.Equal(t, 200.0, x)
	assert.Equal(t, 100.0, y)
}
