package designer

import (
	"fmt"
	"strconv"
	"strings"

	"keychain-designer/internal/colormode"
	"keychain-designer/internal/coords"
	"keychain-designer/internal/resource"
)

// SelectShape activates a catalog shape by id.
func (s *Session) SelectShape(id string) error {
	shape, err := s.cat.LookupShape(id)
	if err != nil {
		return err
	}
	s.store.SetShape(shape)
	return nil
}

// SelectSize activates a catalog size preset by id. The hole is re-clamped to the new size.
func (s *Session) SelectSize(id string) error {
	size, err := s.cat.Size(id)
	if err != nil {
		return err
	}
	s.store.SetSize(size)
	return nil
}

// SelectMaterial activates a catalog material by id.
func (s *Session) SelectMaterial(id string) error {
	m, err := s.cat.Material(id)
	if err != nil {
		return err
	}
	s.store.SetMaterial(m)
	return nil
}

// SelectColor parses value ("original", hex, or a gradient name) and activates it.
func (s *Session) SelectColor(value string) error {
	m, err := colormode.Parse(value)
	if err != nil {
		return err
	}
	s.store.SetColor(m)
	return nil
}

// SelectThickness accepts a preset label (Thin, Medium, Thick) or a number.
func (s *Session) SelectThickness(value string) error {
	for _, p := range s.cat.ThicknessPresets() {
		if strings.EqualFold(p.Label, strings.TrimSpace(value)) {
			s.store.SetThickness(p.Value)
			return nil
		}
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(value), 32)
	if err != nil {
		return fmt.Errorf("designer: thickness %q: %w", value, err)
	}
	s.store.SetThickness(float32(v))
	return nil
}

// SetImage replaces the image; nil clears it together with the text overlay and any pending texture.
func (s *Session) SetImage(img *resource.Image) {
	s.store.SetImage(img)
}

// LoadImageFile reads path into a new image resource and makes it current.
func (s *Session) LoadImageFile(path string) (*resource.Image, error) {
	img, err := resource.FromFile(path)
	if err != nil {
		return nil, err
	}
	s.store.SetImage(img)
	return img, nil
}

// ClearImage removes the image.
func (s *Session) ClearImage() {
	s.store.SetImage(nil)
}

// MoveHole sets the hole position in model units (clamped).
func (s *Session) MoveHole(x, y float32) {
	s.store.SetHole(coords.Point{X: x, Y: y})
}

// QuickHole moves the hole to a named quick position ("top center", "top left", "top right",
// "center", "side") or "reset".
func (s *Session) QuickHole(name string) error {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "reset" {
		s.store.ResetHole()
		return nil
	}
	w, h := s.store.Dims()
	for _, qp := range coords.QuickPositions(w, h) {
		if strings.ToLower(qp.Label) == name {
			s.store.SetHole(qp.Point)
			return nil
		}
	}
	return fmt.Errorf("designer: unknown hole position %q", name)
}

// TextPosition applies a catalog text position preset (Top, Center, Bottom) to the overlay.
func (s *Session) TextPosition(label string) error {
	for _, p := range s.cat.TextPositions() {
		if strings.EqualFold(p.Label, strings.TrimSpace(label)) {
			t := s.store.Text()
			t.Position = coords.Point{X: p.X, Y: p.Y}
			s.store.SetText(t)
			return nil
		}
	}
	return fmt.Errorf("designer: unknown text position %q", label)
}
