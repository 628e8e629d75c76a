package debug

import (
	"fmt"
	"runtime"

	rl "github.com/gen2brain/raylib-go/raylib"

	"keychain-designer/internal/snapshot"
)

const (
	fontSize   = 20
	padding    = 12
	lineHeight = fontSize + 4
	// updateInterval: only refresh FPS/Mem text every N frames to reduce allocations.
	updateInterval = 30
)

// Debug holds the top-right diagnostics overlay: FPS, heap and texture status.
// All overlays are off by default.
type Debug struct {
	ShowFPS      bool
	ShowMemAlloc bool
	ShowTexture  bool
	font         rl.Font // optional; when set, Draw uses DrawTextEx instead of default font
	frameCount   uint32
	lastFpsText  string
	lastMemText  string
	lastMemStats runtime.MemStats
	texRevision  uint64
	texText      string
}

// New returns a Debug overlay with everything hidden.
func New() *Debug {
	return &Debug{}
}

// SetFont sets the font used for the overlay. Zero texture ID = use raylib default.
func (d *Debug) SetFont(font rl.Font) {
	d.font = font
}

// TextureStatus describes the face texture of m: none, decoding, or its size and alpha.
func TextureStatus(m *snapshot.Model) string {
	if m == nil || m.ImageName == "" {
		return "texture: none"
	}
	for _, fa := range m.Faces {
		if fa.Textured() {
			t := fa.Texture
			alpha := "opaque"
			if t.Transparent {
				alpha = "alpha"
			}
			return fmt.Sprintf("texture: %dx%d %s %s", t.Width, t.Height, t.Format, alpha)
		}
	}
	return "texture: decoding"
}

// Draw renders the enabled overlays for model m. Call after scene and terminal in the draw loop.
// FPS and memory text is only recomputed every updateInterval frames; the texture line only when
// the model revision changes.
func (d *Debug) Draw(m *snapshot.Model) {
	d.frameCount++
	update := d.frameCount%updateInterval == 0
	if (d.ShowFPS && d.lastFpsText == "") || (d.ShowMemAlloc && d.lastMemText == "") {
		update = true
	}

	y := int32(padding)
	if d.ShowFPS {
		if update {
			d.lastFpsText = fmt.Sprintf("FPS: %d", rl.GetFPS())
		}
		d.drawRight(d.lastFpsText, y)
		y += lineHeight
	}
	if d.ShowMemAlloc {
		if update {
			runtime.ReadMemStats(&d.lastMemStats)
			d.lastMemText = fmt.Sprintf("Mem: %.2f MiB", float64(d.lastMemStats.Alloc)/(1024*1024))
		}
		d.drawRight(d.lastMemText, y)
		y += lineHeight
	}
	if d.ShowTexture && m != nil {
		if m.Revision != d.texRevision || d.texText == "" {
			d.texRevision = m.Revision
			d.texText = TextureStatus(m)
		}
		d.drawRight(d.texText, y)
	}
}

// drawRight draws text right-aligned at y in green.
func (d *Debug) drawRight(text string, y int32) {
	if text == "" {
		return
	}
	screenW := int32(rl.GetScreenWidth())
	if d.font.Texture.ID != 0 {
		sz := float32(fontSize)
		pos := rl.NewVector2(float32(screenW)-rl.MeasureTextEx(d.font, text, sz, 1).X-padding, float32(y))
		rl.DrawTextEx(d.font, text, pos, sz, 1, rl.DarkGreen)
		return
	}
	w := rl.MeasureText(text, fontSize)
	rl.DrawText(text, screenW-w-padding, y, fontSize, rl.DarkGreen)
}
