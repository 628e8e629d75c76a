package designer

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"keychain-designer/internal/colormode"
	"keychain-designer/internal/coords"
	"keychain-designer/internal/params"
)

// Preset is a saved design. Empty fields keep the session's current value. Images are not part
// of a preset.
type Preset struct {
	Shape     string      `yaml:"shape,omitempty"`
	Size      string      `yaml:"size,omitempty"`
	Thickness float32     `yaml:"thickness,omitempty"`
	Material  string      `yaml:"material,omitempty"`
	Color     string      `yaml:"color,omitempty"`
	Hole      *[2]float32 `yaml:"hole,omitempty"`
	Text      *PresetText `yaml:"text,omitempty"`
}

// PresetText is the text overlay part of a preset.
type PresetText struct {
	Enabled  bool       `yaml:"enabled"`
	Text     string     `yaml:"text"`
	Size     float32    `yaml:"size,omitempty"`
	Font     string     `yaml:"font,omitempty"`
	Color    string     `yaml:"color,omitempty"`
	Position [2]float32 `yaml:"position"`
	Rotation float32    `yaml:"rotation"`
}

// LoadPreset reads a YAML preset file.
func LoadPreset(path string) (Preset, error) {
	var p Preset
	data, err := os.ReadFile(path)
	if err != nil {
		return p, fmt.Errorf("designer: preset: %w", err)
	}
	if err := yaml.Unmarshal(data, &p); err != nil {
		return p, fmt.Errorf("designer: preset %s: %w", path, err)
	}
	return p, nil
}

// ApplyPreset validates every named selection first and then replaces the parameters in one
// step, so subscribers see a single new model. On error nothing changes.
func (s *Session) ApplyPreset(pr Preset) error {
	p := s.store.Params()
	if pr.Shape != "" {
		shape, err := s.cat.LookupShape(pr.Shape)
		if err != nil {
			return err
		}
		p.Shape = shape
	}
	if pr.Size != "" {
		size, err := s.cat.Size(pr.Size)
		if err != nil {
			return err
		}
		p.Size = size
	}
	if pr.Material != "" {
		m, err := s.cat.Material(pr.Material)
		if err != nil {
			return err
		}
		p.Material = m
	}
	if pr.Color != "" {
		m, err := colormode.Parse(pr.Color)
		if err != nil {
			return err
		}
		p.Color = m
	}
	if pr.Thickness != 0 {
		p.Thickness = pr.Thickness
	}
	if pr.Hole != nil {
		p.Hole = coords.Point{X: pr.Hole[0], Y: pr.Hole[1]}
	}
	if pr.Text != nil {
		t := params.TextOverlay{
			Enabled:    pr.Text.Enabled,
			Text:       pr.Text.Text,
			FontSize:   p.Text.FontSize,
			FontFamily: p.Text.FontFamily,
			Color:      p.Text.Color,
			Position:   coords.Point{X: pr.Text.Position[0], Y: pr.Text.Position[1]},
			Rotation:   pr.Text.Rotation,
		}
		if pr.Text.Size != 0 {
			t.FontSize = pr.Text.Size
		}
		if pr.Text.Font != "" {
			t.FontFamily = pr.Text.Font
		}
		if pr.Text.Color != "" {
			c, ok := colormode.ParseHex(pr.Text.Color)
			if !ok {
				return fmt.Errorf("designer: preset text color %q", pr.Text.Color)
			}
			t.Color = c
		}
		p.Text = t
	}
	s.store.Replace(p)
	return nil
}

// CurrentPreset captures the session's parameters as a preset.
func (s *Session) CurrentPreset() Preset {
	p := s.store.Params()
	hole := [2]float32{p.Hole.X, p.Hole.Y}
	return Preset{
		Shape:     string(p.Shape),
		Size:      p.Size.ID,
		Thickness: p.Thickness,
		Material:  p.Material.ID,
		Color:     p.Color.String(),
		Hole:      &hole,
		Text: &PresetText{
			Enabled:  p.Text.Enabled,
			Text:     p.Text.Text,
			Size:     p.Text.FontSize,
			Font:     p.Text.FontFamily,
			Color:    colormode.Hex(p.Text.Color),
			Position: [2]float32{p.Text.Position.X, p.Text.Position.Y},
			Rotation: p.Text.Rotation,
		},
	}
}

// SavePreset writes the current parameters to path as YAML.
func (s *Session) SavePreset(path string) error {
	data, err := yaml.Marshal(s.CurrentPreset())
	if err != nil {
		return fmt.Errorf("designer: preset: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("designer: preset: %w", err)
	}
	return nil
}
