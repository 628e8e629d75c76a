package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"image/color"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"keychain-designer/internal/colormode"
)

var (
	ErrUnknownShape    = errors.New("catalog: unknown shape")
	ErrUnknownSize     = errors.New("catalog: unknown size")
	ErrUnknownMaterial = errors.New("catalog: unknown material")
)

//go:embed catalog.yaml
var builtin []byte

// Catalog holds the immutable selection tables (shapes, sizes, materials, colors, fonts, presets).
// Accessors return copies so callers cannot mutate the tables.
type Catalog struct {
	defaults         Defaults
	shapes           []ShapeOption
	sizes            []SizePreset
	materials        []Material
	colors           []ColorOption
	fonts            []FontOption
	textColors       []TextColorOption
	thicknessPresets []ThicknessPreset
	textPositions    []TextPositionPreset
}

var (
	defaultOnce sync.Once
	defaultCat  *Catalog
)

// Default returns the built-in catalog embedded in the binary.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := Parse(builtin)
		if err != nil {
			panic(err)
		}
		defaultCat = c
	})
	return defaultCat
}

// Load reads a catalog YAML file. An empty path yields Default().
func Load(path string) (*Catalog, error) {
	if strings.TrimSpace(path) == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a catalog document.
func Parse(data []byte) (*Catalog, error) {
	var def fileDef
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	c := &Catalog{}

	seen := make(map[string]bool)
	for _, s := range def.Shapes {
		if s.ID == "" || seen["shape:"+s.ID] {
			return nil, fmt.Errorf("catalog: shape %q missing or duplicated", s.ID)
		}
		seen["shape:"+s.ID] = true
		c.shapes = append(c.shapes, ShapeOption{Shape: Shape(s.ID), Label: s.Label, Popular: s.Popular})
	}
	for _, s := range def.Sizes {
		if s.ID == "" || seen["size:"+s.ID] {
			return nil, fmt.Errorf("catalog: size %q missing or duplicated", s.ID)
		}
		if s.Width <= 0 || s.Height <= 0 || s.Depth <= 0 {
			return nil, fmt.Errorf("catalog: size %q must have positive width, height and depth", s.ID)
		}
		seen["size:"+s.ID] = true
		c.sizes = append(c.sizes, SizePreset{ID: s.ID, Name: s.Name, Width: s.Width, Height: s.Height, Depth: s.Depth, Popular: s.Popular})
	}
	for _, m := range def.Materials {
		if m.ID == "" || seen["material:"+m.ID] {
			return nil, fmt.Errorf("catalog: material %q missing or duplicated", m.ID)
		}
		base, ok := colormode.ParseHex(m.Color)
		if !ok {
			return nil, fmt.Errorf("catalog: material %q: bad color %q", m.ID, m.Color)
		}
		if !unit(m.Metalness) || !unit(m.Roughness) {
			return nil, fmt.Errorf("catalog: material %q: metalness and roughness must be in [0,1]", m.ID)
		}
		seen["material:"+m.ID] = true
		c.materials = append(c.materials, Material{
			ID: m.ID, Name: m.Name, BaseColor: base,
			Metalness: m.Metalness, Roughness: m.Roughness,
			Price: m.Price, Description: m.Description,
		})
	}
	for _, o := range def.Colors {
		m, err := colormode.Parse(o.Value)
		if err != nil {
			return nil, fmt.Errorf("catalog: color %q: %w", o.Name, err)
		}
		opt := ColorOption{Name: o.Name, Value: o.Value}
		if m.Kind == colormode.Gradient {
			opt.Stops = colormode.GradientStops(m.Gradient)
		}
		c.colors = append(c.colors, opt)
	}
	for _, f := range def.Fonts {
		c.fonts = append(c.fonts, FontOption{Family: f.Family, Label: f.Label})
	}
	for _, tc := range def.TextColors {
		col, ok := colormode.ParseHex(tc.Value)
		if !ok {
			return nil, fmt.Errorf("catalog: text color %q: bad value %q", tc.Label, tc.Value)
		}
		c.textColors = append(c.textColors, TextColorOption{Label: tc.Label, Color: col})
	}
	for _, p := range def.ThicknessPresets {
		c.thicknessPresets = append(c.thicknessPresets, ThicknessPreset{Label: p.Label, Value: p.Value})
	}
	for _, p := range def.TextPositions {
		c.textPositions = append(c.textPositions, TextPositionPreset{Label: p.Label, X: p.X, Y: p.Y})
	}

	if len(c.shapes) == 0 || len(c.sizes) == 0 || len(c.materials) == 0 {
		return nil, errors.New("catalog: shapes, sizes and materials must not be empty")
	}
	d := def.Defaults
	c.defaults = Defaults{
		Shape:     Shape(d.Shape),
		SizeID:    d.Size,
		Material:  d.Material,
		Color:     d.Color,
		Font:      d.Font,
		TextSize:  d.TextSize,
		Thickness: d.Thickness,
		HoleX:     d.Hole[0],
		HoleY:     d.Hole[1],
	}
	if c.defaults.Shape == "" {
		c.defaults.Shape = c.shapes[0].Shape
	}
	if c.defaults.SizeID == "" {
		c.defaults.SizeID = c.sizes[0].ID
	}
	if c.defaults.Material == "" {
		c.defaults.Material = c.materials[0].ID
	}
	if c.defaults.Color == "" {
		c.defaults.Color = colormode.OriginalValue
	}
	c.defaults.TextColor = colormode.MustHex("#FFFFFF")
	if d.TextColor != "" {
		col, ok := colormode.ParseHex(d.TextColor)
		if !ok {
			return nil, fmt.Errorf("catalog: default text color %q", d.TextColor)
		}
		c.defaults.TextColor = col
	}
	if _, err := c.LookupShape(string(c.defaults.Shape)); err != nil {
		return nil, err
	}
	if _, err := c.Size(c.defaults.SizeID); err != nil {
		return nil, err
	}
	if _, err := c.Material(c.defaults.Material); err != nil {
		return nil, err
	}
	if _, err := colormode.Parse(c.defaults.Color); err != nil {
		return nil, fmt.Errorf("catalog: default color: %w", err)
	}
	return c, nil
}

func unit(v float32) bool {
	return v >= 0 && v <= 1
}

// Defaults returns the values a new design session starts from.
func (c *Catalog) Defaults() Defaults {
	return c.defaults
}

// LookupShape returns the catalog shape for id (case-insensitive).
func (c *Catalog) LookupShape(id string) (Shape, error) {
	id = strings.ToLower(strings.TrimSpace(id))
	for _, s := range c.shapes {
		if string(s.Shape) == id {
			return s.Shape, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownShape, id)
}

// Size returns the size preset with the given id (case-insensitive).
func (c *Catalog) Size(id string) (SizePreset, error) {
	id = strings.ToLower(strings.TrimSpace(id))
	for _, s := range c.sizes {
		if s.ID == id {
			return s, nil
		}
	}
	return SizePreset{}, fmt.Errorf("%w: %q", ErrUnknownSize, id)
}

// Material returns the material with the given id (case-insensitive).
func (c *Catalog) Material(id string) (Material, error) {
	id = strings.ToLower(strings.TrimSpace(id))
	for _, m := range c.materials {
		if m.ID == id {
			return m, nil
		}
	}
	return Material{}, fmt.Errorf("%w: %q", ErrUnknownMaterial, id)
}

// DefaultSize returns the preset named in Defaults.
func (c *Catalog) DefaultSize() SizePreset {
	s, _ := c.Size(c.defaults.SizeID)
	return s
}

// DefaultMaterial returns the material named in Defaults.
func (c *Catalog) DefaultMaterial() Material {
	m, _ := c.Material(c.defaults.Material)
	return m
}

func (c *Catalog) Shapes() []ShapeOption {
	return append([]ShapeOption(nil), c.shapes...)
}

func (c *Catalog) Sizes() []SizePreset {
	return append([]SizePreset(nil), c.sizes...)
}

func (c *Catalog) Materials() []Material {
	return append([]Material(nil), c.materials...)
}

func (c *Catalog) Colors() []ColorOption {
	out := append([]ColorOption(nil), c.colors...)
	for i := range out {
		out[i].Stops = append([]color.NRGBA(nil), out[i].Stops...)
	}
	return out
}

func (c *Catalog) Fonts() []FontOption {
	return append([]FontOption(nil), c.fonts...)
}

func (c *Catalog) TextColors() []TextColorOption {
	return append([]TextColorOption(nil), c.textColors...)
}

func (c *Catalog) ThicknessPresets() []ThicknessPreset {
	return append([]ThicknessPreset(nil), c.thicknessPresets...)
}

func (c *Catalog) TextPositions() []TextPositionPreset {
	return append([]TextPositionPreset(nil), c.textPositions...)
}
