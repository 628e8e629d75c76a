package params

import (
	"image/color"
	"strings"
	"unicode/utf8"

	"github.com/chewxy/math32"

	"keychain-designer/internal/catalog"
	"keychain-designer/internal/colormode"
	"keychain-designer/internal/coords"
	"keychain-designer/internal/resource"
)

// Ranges enforced by the store. Values outside are clamped, never rejected.
const (
	MinThickness  float32 = 0.3
	MaxThickness  float32 = 2.0
	MinFontSize   float32 = 12
	MaxFontSize   float32 = 48
	MinRotation   float32 = -45
	MaxRotation   float32 = 45
	MinTextOffset float32 = -1
	MaxTextOffset float32 = 1
)

// MaxTextRunes is the longest overlay text accepted; longer text is truncated.
const MaxTextRunes = 20

// TextOverlay configures the embossed text drawn over the image. Position is normalized
// (-1..1 on each axis, y up) relative to the front face; Rotation is in degrees.
type TextOverlay struct {
	Enabled    bool
	Text       string
	FontSize   float32
	FontFamily string
	Color      color.NRGBA
	Position   coords.Point
	Rotation   float32
}

// Visible reports whether the overlay has anything to draw (enabled with non-blank text).
// The image requirement is applied by the compositor.
func (t TextOverlay) Visible() bool {
	return t.Enabled && strings.TrimSpace(t.Text) != ""
}

// Params is the complete configuration of one keychain. It is a value object: the store hands out
// copies and replaces fields wholesale.
type Params struct {
	Shape     catalog.Shape
	Size      catalog.SizePreset
	Thickness float32
	Material  catalog.Material
	Color     colormode.Mode
	Image     *resource.Image `copier:"-"`
	Text      TextOverlay
	Hole      coords.Point
}

// Dims returns the active keychain width and height.
func (p Params) Dims() (w, h float32) {
	return p.Size.Width, p.Size.Height
}

// Defaults builds the parameters of a fresh session from the catalog defaults.
func Defaults(cat *catalog.Catalog) Params {
	d := cat.Defaults()
	mode, err := colormode.Parse(d.Color)
	if err != nil {
		mode = colormode.Mode{}
	}
	p := Params{
		Shape:     d.Shape,
		Size:      cat.DefaultSize(),
		Thickness: d.Thickness,
		Material:  cat.DefaultMaterial(),
		Color:     mode,
		Text: TextOverlay{
			FontSize:   d.TextSize,
			FontFamily: d.Font,
			Color:      d.TextColor,
		},
		Hole: coords.Point{X: d.HoleX, Y: d.HoleY},
	}
	return Normalize(p)
}

// Normalize clamps every ranged field of p and returns the result.
func Normalize(p Params) Params {
	p.Thickness = ClampThickness(p.Thickness)
	p.Text = NormalizeText(p.Text)
	p.Color = normalizeColor(p.Color)
	p.Hole = coords.Clamp(p.Hole, p.Size.Width, p.Size.Height)
	return p
}

// ClampThickness limits v to [MinThickness, MaxThickness]. NaN becomes MinThickness.
func ClampThickness(v float32) float32 {
	return clamp(v, MinThickness, MaxThickness)
}

// NormalizeText truncates the text to MaxTextRunes runes and clamps size, rotation and position.
func NormalizeText(t TextOverlay) TextOverlay {
	if utf8.RuneCountInString(t.Text) > MaxTextRunes {
		t.Text = string([]rune(t.Text)[:MaxTextRunes])
	}
	t.FontSize = clamp(t.FontSize, MinFontSize, MaxFontSize)
	t.Rotation = clamp(t.Rotation, MinRotation, MaxRotation)
	t.Position.X = clamp(t.Position.X, MinTextOffset, MaxTextOffset)
	t.Position.Y = clamp(t.Position.Y, MinTextOffset, MaxTextOffset)
	t.Color.A = 255
	return t
}

func normalizeColor(m colormode.Mode) colormode.Mode {
	if m.Kind == colormode.Solid {
		return colormode.NewSolid(m.Color)
	}
	return m
}

func clamp(v, lo, hi float32) float32 {
	if math32.IsNaN(v) {
		return lo
	}
	return math32.Max(lo, math32.Min(hi, v))
}
