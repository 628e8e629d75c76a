package colormode

import (
	"image/color"
	"sort"
)

// GradientAngle is the direction (degrees) the 2D selector draws every preset gradient at.
const GradientAngle = 135

// gradients holds the preset gradient stops in draw order. Read-only.
var gradients = map[string][]color.NRGBA{
	"rainbow": {
		MustHex("#FF0000"), MustHex("#FF7F00"), MustHex("#FFFF00"), MustHex("#00FF00"),
		MustHex("#0000FF"), MustHex("#4B0082"), MustHex("#9400D3"),
	},
	"sunset": {MustHex("#FF512F"), MustHex("#F09819"), MustHex("#FFE259")},
	"aurora": {MustHex("#667EEA"), MustHex("#764BA2"), MustHex("#F093FB")},
}

// GradientNames lists the preset gradient identifiers in sorted order.
func GradientNames() []string {
	names := make([]string, 0, len(gradients))
	for n := range gradients {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// GradientStops returns a copy of the stops of the named gradient, or nil if unknown.
func GradientStops(name string) []color.NRGBA {
	stops, ok := gradients[name]
	if !ok {
		return nil
	}
	out := make([]color.NRGBA, len(stops))
	copy(out, stops)
	return out
}

// Representative reduces a gradient to the per-channel mean of its stops.
// Unknown names yield opaque white.
func Representative(name string) color.NRGBA {
	stops := gradients[name]
	if len(stops) == 0 {
		return color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	}
	var r, g, b int
	for _, s := range stops {
		r += int(s.R)
		g += int(s.G)
		b += int(s.B)
	}
	n := len(stops)
	return color.NRGBA{R: uint8((r + n/2) / n), G: uint8((g + n/2) / n), B: uint8((b + n/2) / n), A: 255}
}
