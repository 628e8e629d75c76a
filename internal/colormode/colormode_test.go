package colormode

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	m, err := Parse("original")
	require.NoError(t, err)
	assert.Equal(t, Original, m.Kind)

	m, err = Parse("  Original ")
	require.NoError(t, err)
	assert.Equal(t, Original, m.Kind)

	m, err = Parse("#ff69b4")
	require.NoError(t, err)
	assert.Equal(t, Solid, m.Kind)
	assert.Equal(t, color.NRGBA{R: 0xFF, G: 0x69, B: 0xB4, A: 255}, m.Color)

	m, err = Parse("#fff")
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{R: 255, G: 255, B: 255, A: 255}, m.Color)

	m, err = Parse("Rainbow")
	require.NoError(t, err)
	assert.Equal(t, Gradient, m.Kind)
	assert.Equal(t, "rainbow", m.Gradient)

	for _, bad := range []string{"", "pink", "#12", "#12345", "#GGGGGG", "FF69B4"} {
		_, err := Parse(bad)
		assert.ErrorIs(t, err, ErrInvalid, bad)
	}
}

func TestStringRoundTrip(t *testing.T) {
	for _, s := range []string{"original", "#FF69B4", "sunset"} {
		m, err := Parse(s)
		require.NoError(t, err)
		assert.Equal(t, s, m.String())
	}
	assert.Equal(t, "original", Mode{}.String())
}

func TestResolve(t *testing.T) {
	plastic := MustHex("#FF69B4")
	gold := MustHex("#FFD700")

	rainbow, _ := Parse("rainbow")
	assert.Equal(t, plastic, rainbow.Resolve(plastic))
	assert.Equal(t, plastic, Mode{}.Resolve(plastic))
	assert.Equal(t, gold, NewSolid(gold).Resolve(plastic))
}

func TestTint(t *testing.T) {
	_, ok := Mode{}.Tint()
	assert.False(t, ok)

	c, ok := NewSolid(MustHex("#00CED1")).Tint()
	assert.True(t, ok)
	assert.Equal(t, MustHex("#00CED1"), c)

	sunset, _ := Parse("sunset")
	c, ok = sunset.Tint()
	assert.True(t, ok)
	assert.Equal(t, Representative("sunset"), c)
}

func TestRepresentative(t *testing.T) {
	// sunset: (FF+F0+FF)/3, (51+98+E2)/3, (2F+19+59)/3 rounded
	assert.Equal(t, color.NRGBA{R: 250, G: 153, B: 54, A: 255}, Representative("sunset"))
	assert.Equal(t, color.NRGBA{R: 255, G: 255, B: 255, A: 255}, Representative("nope"))
}

func TestGradientStopsCopy(t *testing.T) {
	stops := GradientStops("aurora")
	require.Len(t, stops, 3)
	stops[0] = color.NRGBA{}
	assert.Equal(t, MustHex("#667EEA"), GradientStops("aurora")[0])
	assert.Nil(t, GradientStops("nope"))
	assert.Equal(t, []string{"aurora", "rainbow", "sunset"}, GradientNames())
}

func TestNewSolidForcesOpaque(t *testing.T) {
	m := NewSolid(color.NRGBA{R: 1, G: 2, B: 3, A: 10})
	assert.Equal(t, uint8(255), m.Color.A)
}

func TestDescription(t *testing.T) {
	assert.Contains(t, Mode{}.Description(), "preserved")
	assert.Contains(t, NewSolid(MustHex("#000")).Description(), "solid")
	g, _ := Parse("aurora")
	assert.Contains(t, g.Description(), "gradient")
}
