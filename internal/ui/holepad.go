package ui

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"

	"keychain-designer/internal/coords"
	"keychain-designer/internal/geometry"
	"keychain-designer/internal/snapshot"
)

const (
	padMaxSide = 220
	padMargin  = 16
	padMarker  = 7
)

var (
	padFill       = rl.NewColor(250, 250, 252, 235)
	padBorder     = rl.NewColor(120, 120, 132, 255)
	padActive     = rl.NewColor(255, 105, 180, 255)
	padMarginLine = rl.NewColor(200, 200, 210, 255)
	padMarkerFill = rl.NewColor(255, 215, 0, 255)
)

// HolePad is a 2D picture of the front face in the bottom-right corner. In positioning mode,
// pressing and dragging on it moves the hole through the session's positioner.
type HolePad struct {
	pos     *coords.Positioner
	surface coords.Rect
	inside  bool
}

// NewHolePad returns a pad driving pos.
func NewHolePad(pos *coords.Positioner) *HolePad {
	return &HolePad{pos: pos}
}

// PadRect fits a body of the given size into the bottom-right corner of a screen, keeping its
// aspect ratio. The longer side gets padMaxSide pixels.
func PadRect(screenW, screenH float32, body geometry.Body) coords.Rect {
	if !(body.Width > 0 && body.Height > 0) {
		return coords.Rect{}
	}
	scale := padMaxSide / math32.Max(body.Width, body.Height)
	w, h := body.Width*scale, body.Height*scale
	return coords.Rect{X: screenW - w - padMargin, Y: screenH - h - padMargin, Width: w, Height: h}
}

// Update feeds this frame's mouse state to the positioner. It returns true when the pad owns the
// mouse (hovered or dragging), so the camera should ignore it.
func (h *HolePad) Update(m *snapshot.Model) bool {
	if m == nil {
		return false
	}
	h.surface = PadRect(float32(rl.GetScreenWidth()), float32(rl.GetScreenHeight()), m.Dimensions)
	mp := rl.GetMousePosition()
	ev := coords.Pointer{X: mp.X, Y: mp.Y, Surface: h.surface}
	inside := h.surface.Contains(mp.X, mp.Y)
	switch {
	case rl.IsMouseButtonPressed(rl.MouseButtonLeft) && inside:
		h.pos.PointerDown(ev)
	case rl.IsMouseButtonReleased(rl.MouseButtonLeft):
		h.pos.PointerUp()
	case h.inside && !inside:
		h.pos.PointerLeave()
	case rl.IsMouseButtonDown(rl.MouseButtonLeft):
		h.pos.PointerMove(ev)
	}
	h.inside = inside
	return inside || h.pos.Dragging()
}

// Draw draws the face outline, the allowed hole area and the hole marker at the model's
// HolePercent. The outline is highlighted while positioning mode is on.
func (h *HolePad) Draw(m *snapshot.Model, font rl.Font) {
	r := h.surface
	if m == nil || r.Empty() {
		return
	}
	rect := rl.NewRectangle(r.X, r.Y, r.Width, r.Height)
	rl.DrawRectangleRec(rect, padFill)
	border := padBorder
	if h.pos.Positioning() {
		border = padActive
	}
	rl.DrawRectangleLinesEx(rect, 2, border)

	// area the hole may occupy
	mx := coords.HoleMargin / m.Dimensions.Width * r.Width
	my := coords.HoleMargin / m.Dimensions.Height * r.Height
	if r.Width > 2*mx && r.Height > 2*my {
		rl.DrawRectangleLinesEx(rl.NewRectangle(r.X+mx, r.Y+my, r.Width-2*mx, r.Height-2*my), 1, padMarginLine)
	}

	px, py := m.HolePercent.ToPixels(r)
	rl.DrawCircleV(rl.NewVector2(px, py), padMarker, padMarkerFill)
	rl.DrawCircleLines(int32(px), int32(py), padMarker, padBorder)

	hint := "H: position hole"
	if h.pos.Positioning() {
		hint = "drag to move hole"
	}
	pos := rl.NewVector2(r.X, r.Y-float32(defaultFontSize)-4)
	if font.Texture.ID != 0 {
		rl.DrawTextEx(font, hint, pos, defaultFontSize, 1, padBorder)
	} else {
		rl.DrawText(hint, int32(pos.X), int32(pos.Y), defaultFontSize, padBorder)
	}
}
