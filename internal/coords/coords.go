// Package coords maps between a 2D pointer surface (pixels, origin top-left, y down) and the
// keychain's normalized model space (origin at the center, y up, extents ±width/2 × ±height/2).
package coords

import "github.com/chewxy/math32"

// HoleMargin keeps the hole and its ring away from the keychain edge, in model units.
const HoleMargin float32 = 0.3

// Point is a position in model space.
type Point struct {
	X, Y float32
}

// Percent is a position on the pointer surface as percentages of its width and height
// (0,0 top-left; 100,100 bottom-right), suitable for absolutely positioned indicators.
type Percent struct {
	X, Y float32
}

// Rect is the pixel rectangle of a pointer surface.
type Rect struct {
	X, Y, Width, Height float32
}

// Empty reports whether r cannot be mapped (non-positive or NaN size).
func (r Rect) Empty() bool {
	return !(r.Width > 0 && r.Height > 0)
}

// Contains reports whether the pixel (px, py) lies inside r.
func (r Rect) Contains(px, py float32) bool {
	return px >= r.X && px <= r.X+r.Width && py >= r.Y && py <= r.Y+r.Height
}

// ClampAxis limits v to [-(dim/2 - HoleMargin), +(dim/2 - HoleMargin)].
// When dim is too small for the margin the only valid value is 0. NaN maps to 0.
func ClampAxis(v, dim float32) float32 {
	limit := dim/2 - HoleMargin
	if limit < 0 || math32.IsNaN(limit) {
		limit = 0
	}
	if math32.IsNaN(v) {
		return 0
	}
	return math32.Max(-limit, math32.Min(limit, v))
}

// Clamp applies ClampAxis to both coordinates for a keychain of width w and height h.
func Clamp(p Point, w, h float32) Point {
	return Point{X: ClampAxis(p.X, w), Y: ClampAxis(p.Y, h)}
}

// InBounds reports whether p already satisfies the hole margin rule.
func InBounds(p Point, w, h float32) bool {
	return Clamp(p, w, h) == p
}

// ScreenToModelUnclamped maps pixel (px, py) on surface into model space without the margin clamp.
// ok is false when surface is empty.
func ScreenToModelUnclamped(px, py float32, surface Rect, w, h float32) (p Point, ok bool) {
	if surface.Empty() {
		return Point{}, false
	}
	nx := (px-surface.X)/surface.Width*2 - 1
	ny := -((py-surface.Y)/surface.Height)*2 + 1
	return Point{X: nx * (w / 2), Y: ny * (h / 2)}, true
}

// ScreenToModel maps pixel (px, py) on surface into model space and clamps it by the hole margin.
// ok is false when surface is empty; callers treat that as a no-op.
func ScreenToModel(px, py float32, surface Rect, w, h float32) (p Point, ok bool) {
	p, ok = ScreenToModelUnclamped(px, py, surface, w, h)
	if !ok {
		return Point{}, false
	}
	return Clamp(p, w, h), true
}

// ModelToScreen is the inverse of ScreenToModelUnclamped, expressed in surface percentages.
// A degenerate model size maps to the surface center.
func ModelToScreen(x, y, w, h float32) Percent {
	if !(w > 0 && h > 0) {
		return Percent{X: 50, Y: 50}
	}
	return Percent{
		X: (x/(w/2) + 1) * 50,
		Y: (1 - y/(h/2)) * 50,
	}
}

// ToPixels converts surface percentages back to pixel coordinates on surface.
func (pc Percent) ToPixels(surface Rect) (px, py float32) {
	return surface.X + pc.X/100*surface.Width, surface.Y + pc.Y/100*surface.Height
}
