package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"keychain-designer/internal/colormode"
)

func TestDefaultCatalog(t *testing.T) {
	c := Default()

	assert.Len(t, c.Shapes(), 8)
	assert.Len(t, c.Sizes(), 5)
	assert.Len(t, c.Materials(), 5)
	assert.Len(t, c.Colors(), 10)
	assert.Len(t, c.Fonts(), 5)
	assert.Len(t, c.TextColors(), 8)
	assert.Len(t, c.ThicknessPresets(), 3)
	assert.Len(t, c.TextPositions(), 3)

	d := c.Defaults()
	assert.Equal(t, Rectangle, d.Shape)
	assert.Equal(t, "medium", d.SizeID)
	assert.Equal(t, "plastic", d.Material)
	assert.Equal(t, "original", d.Color)
	assert.Equal(t, "Quicksand", d.Font)
	assert.Equal(t, float32(24), d.TextSize)
	assert.Equal(t, float32(1), d.Thickness)
	assert.Equal(t, float32(0), d.HoleX)
	assert.Equal(t, float32(1.3), d.HoleY)
	assert.Equal(t, colormode.MustHex("#FFFFFF"), d.TextColor)
}

func TestGradientColorOptionsCarryStops(t *testing.T) {
	c := Default()
	byValue := map[string]ColorOption{}
	for _, o := range c.Colors() {
		byValue[o.Value] = o
	}
	assert.Equal(t, colormode.GradientStops("sunset"), byValue["sunset"].Stops)
	assert.Len(t, byValue["rainbow"].Stops, 7)
	assert.Empty(t, byValue["original"].Stops)
	assert.Empty(t, byValue["#FF69B4"].Stops)

	// accessors hand out copies
	byValue["aurora"].Stops[0] = colormode.MustHex("#000000")
	for _, o := range c.Colors() {
		if o.Value == "aurora" {
			assert.Equal(t, colormode.MustHex("#667EEA"), o.Stops[0])
		}
	}
}

func TestLookups(t *testing.T) {
	c := Default()

	m, err := c.Material("Plastic")
	require.NoError(t, err)
	assert.Equal(t, colormode.MustHex("#FF69B4"), m.BaseColor)
	assert.Equal(t, float32(0.1), m.Metalness)
	assert.Equal(t, float32(0.3), m.Roughness)

	s, err := c.Size("medium")
	require.NoError(t, err)
	assert.Equal(t, SizePreset{ID: "medium", Name: "Medium", Width: 4, Height: 4, Depth: 1, Popular: true}, s)

	sh, err := c.LookupShape(" Heart ")
	require.NoError(t, err)
	assert.Equal(t, Heart, sh)

	_, err = c.Material("gold")
	assert.ErrorIs(t, err, ErrUnknownMaterial)
	_, err = c.Size("huge")
	assert.ErrorIs(t, err, ErrUnknownSize)
	_, err = c.LookupShape("octagon")
	assert.ErrorIs(t, err, ErrUnknownShape)

	assert.Equal(t, "medium", c.DefaultSize().ID)
	assert.Equal(t, "plastic", c.DefaultMaterial().ID)
}

func TestAccessorsReturnCopies(t *testing.T) {
	c := Default()
	sizes := c.Sizes()
	sizes[0].Width = 99
	assert.Equal(t, float32(2), c.Sizes()[0].Width)
}

func TestParseRejectsBadTables(t *testing.T) {
	cases := map[string]string{
		"bad size": `
shapes: [{id: rectangle}]
sizes: [{id: s, width: 0, height: 1, depth: 1}]
materials: [{id: m, color: "#fff", metalness: 0, roughness: 0}]`,
		"bad material color": `
shapes: [{id: rectangle}]
sizes: [{id: s, width: 1, height: 1, depth: 1}]
materials: [{id: m, color: "pink", metalness: 0, roughness: 0}]`,
		"metalness out of range": `
shapes: [{id: rectangle}]
sizes: [{id: s, width: 1, height: 1, depth: 1}]
materials: [{id: m, color: "#fff", metalness: 2, roughness: 0}]`,
		"duplicate size": `
shapes: [{id: rectangle}]
sizes: [{id: s, width: 1, height: 1, depth: 1}, {id: s, width: 2, height: 2, depth: 1}]
materials: [{id: m, color: "#fff", metalness: 0, roughness: 0}]`,
		"unknown default size": `
defaults: {size: nope}
shapes: [{id: rectangle}]
sizes: [{id: s, width: 1, height: 1, depth: 1}]
materials: [{id: m, color: "#fff", metalness: 0, roughness: 0}]`,
		"bad color option": `
shapes: [{id: rectangle}]
sizes: [{id: s, width: 1, height: 1, depth: 1}]
materials: [{id: m, color: "#fff", metalness: 0, roughness: 0}]
colors: [{name: X, value: plaid}]`,
		"empty": `{}`,
	}
	for name, doc := range cases {
		_, err := Parse([]byte(doc))
		assert.Error(t, err, name)
	}
}

func TestParseFillsMissingDefaults(t *testing.T) {
	c, err := Parse([]byte(`
shapes: [{id: circle}]
sizes: [{id: s, width: 1, height: 2, depth: 0.4}]
materials: [{id: m, color: "#123456", metalness: 0.5, roughness: 0.5}]`))
	require.NoError(t, err)
	d := c.Defaults()
	assert.Equal(t, Circle, d.Shape)
	assert.Equal(t, "s", d.SizeID)
	assert.Equal(t, "m", d.Material)
	assert.Equal(t, "original", d.Color)
}

func TestLoad(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)
	assert.Same(t, Default(), c)

	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, builtin, 0644))
	c, err = Load(path)
	require.NoError(t, err)
	assert.Len(t, c.Materials(), 5)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
