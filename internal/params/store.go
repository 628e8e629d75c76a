package params

import (
	"github.com/jinzhu/copier"

	"keychain-designer/internal/catalog"
	"keychain-designer/internal/colormode"
	"keychain-designer/internal/coords"
	"keychain-designer/internal/resource"
)

// Change is a bit set of the parameters touched by one store operation.
type Change uint

const (
	ChangedShape Change = 1 << iota
	ChangedSize
	ChangedThickness
	ChangedMaterial
	ChangedColor
	ChangedImage
	ChangedText
	ChangedHole
)

// Has reports whether c includes any bit of other.
func (c Change) Has(other Change) bool {
	return c&other != 0
}

// Store holds the current parameters. Every setter validates by clamping, is synchronous, and does
// nothing (no notification) when the stored value would not change.
// Not safe for concurrent use; all mutation happens on the owner's event thread.
type Store struct {
	p         Params
	listeners []func(Change)
}

// NewStore returns a store initialized to the catalog defaults.
func NewStore(cat *catalog.Catalog) *Store {
	return &Store{p: Defaults(cat)}
}

// Subscribe registers fn to be called after every effective change.
func (s *Store) Subscribe(fn func(Change)) {
	s.listeners = append(s.listeners, fn)
}

// Params returns a copy of the current parameters.
func (s *Store) Params() Params {
	var out Params
	if err := copier.CopyWithOption(&out, &s.p, copier.Option{DeepCopy: true}); err != nil {
		out = s.p
	}
	out.Image = s.p.Image
	return out
}

func (s *Store) Shape() catalog.Shape { return s.p.Shape }
func (s *Store) Size() catalog.SizePreset { return s.p.Size }
func (s *Store) Thickness() float32 { return s.p.Thickness }
func (s *Store) Material() catalog.Material { return s.p.Material }
func (s *Store) Color() colormode.Mode { return s.p.Color }
func (s *Store) Image() *resource.Image { return s.p.Image }
func (s *Store) Text() TextOverlay { return s.p.Text }
func (s *Store) Hole() coords.Point { return s.p.Hole }
func (s *Store) Dims() (w, h float32) { return s.p.Dims() }

func (s *Store) SetShape(shape catalog.Shape) {
	if s.p.Shape == shape {
		return
	}
	s.p.Shape = shape
	s.notify(ChangedShape)
}

// SetSize replaces the size preset and re-clamps the hole to the new envelope.
func (s *Store) SetSize(size catalog.SizePreset) {
	if s.p.Size == size {
		return
	}
	s.p.Size = size
	changed := ChangedSize
	if hole := coords.Clamp(s.p.Hole, size.Width, size.Height); hole != s.p.Hole {
		s.p.Hole = hole
		changed |= ChangedHole
	}
	s.notify(changed)
}

// SetThickness clamps v to [MinThickness, MaxThickness].
func (s *Store) SetThickness(v float32) {
	v = ClampThickness(v)
	if s.p.Thickness == v {
		return
	}
	s.p.Thickness = v
	s.notify(ChangedThickness)
}

func (s *Store) SetMaterial(m catalog.Material) {
	if s.p.Material == m {
		return
	}
	s.p.Material = m
	s.notify(ChangedMaterial)
}

func (s *Store) SetColor(m colormode.Mode) {
	m = normalizeColor(m)
	if s.p.Color == m {
		return
	}
	s.p.Color = m
	s.notify(ChangedColor)
}

// SetImage replaces the image handle. Clearing it (nil) also switches the text overlay off,
// since text is never composited without a backing image.
func (s *Store) SetImage(im *resource.Image) {
	if resource.Same(s.p.Image, im) {
		return
	}
	s.p.Image = im
	changed := ChangedImage
	if im == nil && s.p.Text.Enabled {
		s.p.Text.Enabled = false
		changed |= ChangedText
	}
	s.notify(changed)
}

// SetText replaces the whole overlay configuration after NormalizeText.
func (s *Store) SetText(t TextOverlay) {
	t = NormalizeText(t)
	if s.p.Text == t {
		return
	}
	s.p.Text = t
	s.notify(ChangedText)
}

// SetHole stores p clamped to the active size by the hole margin rule.
func (s *Store) SetHole(p coords.Point) {
	p = coords.Clamp(p, s.p.Size.Width, s.p.Size.Height)
	if s.p.Hole == p {
		return
	}
	s.p.Hole = p
	s.notify(ChangedHole)
}

// ResetHole moves the hole to the top-center position of the active size.
func (s *Store) ResetHole() {
	s.SetHole(coords.TopCenter(s.p.Dims()))
}

// Replace swaps in a whole parameter set (e.g. a loaded preset) with a single notification.
func (s *Store) Replace(p Params) {
	p = Normalize(p)
	var changed Change
	if p.Shape != s.p.Shape {
		changed |= ChangedShape
	}
	if p.Size != s.p.Size {
		changed |= ChangedSize
	}
	if p.Thickness != s.p.Thickness {
		changed |= ChangedThickness
	}
	if p.Material != s.p.Material {
		changed |= ChangedMaterial
	}
	if p.Color != s.p.Color {
		changed |= ChangedColor
	}
	if !resource.Same(p.Image, s.p.Image) {
		changed |= ChangedImage
	}
	if p.Text != s.p.Text {
		changed |= ChangedText
	}
	if p.Hole != s.p.Hole {
		changed |= ChangedHole
	}
	if changed == 0 {
		return
	}
	s.p = p
	s.notify(changed)
}

func (s *Store) notify(c Change) {
	for _, fn := range s.listeners {
		fn(c)
	}
}
