package coords

// Positioner turns pointer gestures on a surface into hole positions.
// Pointer-down starts a drag only while positioning mode is on; moves while dragging commit;
// pointer-up or leaving the surface ends the drag. Hovering never commits.
// Events carry the surface rectangle; an empty rectangle makes the event a no-op.
type Positioner struct {
	dims   func() (w, h float32)
	commit func(Point)

	positioning bool
	dragging    bool
}

// Pointer is one pointer event: pixel coordinates plus the surface they are relative to.
type Pointer struct {
	X, Y    float32
	Surface Rect
}

// NewPositioner returns a positioner that reads the active keychain size from dims and sends
// mapped, clamped positions to commit.
func NewPositioner(dims func() (w, h float32), commit func(Point)) *Positioner {
	return &Positioner{dims: dims, commit: commit}
}

// Positioning reports whether positioning mode is on.
func (p *Positioner) Positioning() bool {
	return p.positioning
}

// Dragging reports whether a drag is in progress.
func (p *Positioner) Dragging() bool {
	return p.dragging
}

// SetPositioning turns positioning mode on or off. Turning it off ends any drag.
func (p *Positioner) SetPositioning(on bool) {
	p.positioning = on
	if !on {
		p.dragging = false
	}
}

// TogglePositioning flips positioning mode and returns the new state.
func (p *Positioner) TogglePositioning() bool {
	p.SetPositioning(!p.positioning)
	return p.positioning
}

// PointerDown starts a drag and commits the pressed point. Returns whether anything was committed.
func (p *Positioner) PointerDown(ev Pointer) bool {
	if !p.positioning || ev.Surface.Empty() {
		return false
	}
	p.dragging = true
	return p.update(ev)
}

// PointerMove commits the point while dragging. Moves without a drag (hover) are ignored.
func (p *Positioner) PointerMove(ev Pointer) bool {
	if !p.dragging || !p.positioning {
		return false
	}
	return p.update(ev)
}

// PointerUp ends the drag. Returns true when a drag was actually ended.
func (p *Positioner) PointerUp() bool {
	if !p.dragging {
		return false
	}
	p.dragging = false
	return true
}

// PointerLeave ends the drag without feedback.
func (p *Positioner) PointerLeave() {
	p.dragging = false
}

// Click commits a single point while positioning mode is on.
func (p *Positioner) Click(ev Pointer) bool {
	if !p.positioning {
		return false
	}
	return p.update(ev)
}

func (p *Positioner) update(ev Pointer) bool {
	if p.dims == nil || p.commit == nil {
		return false
	}
	w, h := p.dims()
	pt, ok := ScreenToModel(ev.X, ev.Y, ev.Surface, w, h)
	if !ok {
		return false
	}
	p.commit(pt)
	return true
}

// QuickPosition is a named one-click hole position.
type QuickPosition struct {
	Label string
	Point Point
}

// QuickPositions lists the one-click hole positions for a keychain of width w and height h.
// Positions are not clamped here; the store clamps on set.
func QuickPositions(w, h float32) []QuickPosition {
	return []QuickPosition{
		{Label: "Top Center", Point: TopCenter(w, h)},
		{Label: "Top Left", Point: Point{X: -w/2 + 0.7, Y: h/2 - 0.7}},
		{Label: "Top Right", Point: Point{X: w/2 - 0.7, Y: h/2 - 0.7}},
		{Label: "Center", Point: Point{}},
		{Label: "Side", Point: Point{X: w/2 - 0.5, Y: 0}},
	}
}

// TopCenter is the reset position: centered, 0.5 below the top edge.
func TopCenter(w, h float32) Point {
	return Point{X: 0, Y: h/2 - 0.5}
}
