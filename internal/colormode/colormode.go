package colormode

import (
	"errors"
	"fmt"
	"image/color"
	"strings"
)

// ErrInvalid is returned by Parse for values that are neither "original", a hex color, nor a known gradient.
var ErrInvalid = errors.New("colormode: invalid color mode")

// Kind tells which of the three color treatments a Mode selects.
type Kind int

const (
	// Original keeps the uploaded image's own colors.
	Original Kind = iota
	// Solid applies a single hex color.
	Solid
	// Gradient names one of the preset gradients. The 3D path reduces it to one representative color.
	Gradient
)

// OriginalValue is the sentinel string for the Original mode.
const OriginalValue = "original"

// Mode is the active keychain color treatment. The zero value is Original.
type Mode struct {
	Kind     Kind
	Color    color.NRGBA // set when Kind == Solid
	Gradient string      // set when Kind == Gradient
}

// NewSolid returns a Solid mode for c (alpha forced to opaque).
func NewSolid(c color.NRGBA) Mode {
	c.A = 255
	return Mode{Kind: Solid, Color: c}
}

// Parse interprets s as "original", a #RGB/#RRGGBB hex color, or a gradient name (rainbow, sunset, aurora).
// Matching is case-insensitive and ignores surrounding spaces.
func Parse(s string) (Mode, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	if v == OriginalValue {
		return Mode{Kind: Original}, nil
	}
	if c, ok := ParseHex(v); ok {
		return NewSolid(c), nil
	}
	if _, ok := gradients[v]; ok {
		return Mode{Kind: Gradient, Gradient: v}, nil
	}
	return Mode{}, fmt.Errorf("%w: %q", ErrInvalid, s)
}

// String returns the value Parse accepts for m.
func (m Mode) String() string {
	switch m.Kind {
	case Solid:
		return Hex(m.Color)
	case Gradient:
		return m.Gradient
	default:
		return OriginalValue
	}
}

// IsSolid reports whether m is a solid non-original color.
func (m Mode) IsSolid() bool {
	return m.Kind == Solid
}

// Resolve returns the flat color used when no image texture is shown: a solid mode keeps its color,
// original and gradient modes fall back to the material base color.
func (m Mode) Resolve(base color.NRGBA) color.NRGBA {
	if m.Kind == Solid {
		return m.Color
	}
	return base
}

// Tint returns the color blended under an image texture and whether there is one.
// Original has no tint; a gradient tints with its representative color.
func (m Mode) Tint() (color.NRGBA, bool) {
	switch m.Kind {
	case Solid:
		return m.Color, true
	case Gradient:
		return Representative(m.Gradient), true
	}
	return color.NRGBA{}, false
}

// Description is the short hint shown under the color selector.
func (m Mode) Description() string {
	switch m.Kind {
	case Solid:
		return "Your keychain will have a solid color overlay"
	case Gradient:
		return "Your keychain will have a beautiful gradient effect"
	}
	return "Original colors from your image will be preserved"
}

// ParseHex parses #RGB or #RRGGBB into an opaque color. Returns false on parse error.
func ParseHex(s string) (color.NRGBA, bool) {
	s = strings.TrimSpace(s)
	if len(s) < 4 || s[0] != '#' {
		return color.NRGBA{}, false
	}
	hex := s[1:]
	var r, g, b uint8
	switch len(hex) {
	case 3:
		// #RGB -> RR GG BB
		for _, c := range []byte(hex) {
			if !isHexDigit(c) {
				return color.NRGBA{}, false
			}
		}
		r = hexByte(hex[0]) * 17
		g = hexByte(hex[1]) * 17
		b = hexByte(hex[2]) * 17
	case 6:
		for _, c := range []byte(hex) {
			if !isHexDigit(c) {
				return color.NRGBA{}, false
			}
		}
		r = hexByte(hex[0])<<4 + hexByte(hex[1])
		g = hexByte(hex[2])<<4 + hexByte(hex[3])
		b = hexByte(hex[4])<<4 + hexByte(hex[5])
	default:
		return color.NRGBA{}, false
	}
	return color.NRGBA{R: r, G: g, B: b, A: 255}, true
}

// MustHex is ParseHex for literals known to be valid; it panics otherwise.
func MustHex(s string) color.NRGBA {
	c, ok := ParseHex(s)
	if !ok {
		panic("colormode: bad hex literal " + s)
	}
	return c
}

// Hex formats c as #RRGGBB (alpha dropped).
func Hex(c color.NRGBA) string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func hexByte(c byte) uint8 {
	if c >= '0' && c <= '9' {
		return c - '0'
	}
	if c >= 'a' && c <= 'f' {
		return c - 'a' + 10
	}
	if c >= 'A' && c <= 'F' {
		return c - 'A' + 10
	}
	return 0
}
