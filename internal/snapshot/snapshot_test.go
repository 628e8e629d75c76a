package snapshot

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"keychain-designer/internal/catalog"
	"keychain-designer/internal/colormode"
	"keychain-designer/internal/compositor"
	"keychain-designer/internal/coords"
	"keychain-designer/internal/params"
	"keychain-designer/internal/resource"
	"keychain-designer/internal/texture"
)

func defaults() params.Params {
	return params.Defaults(catalog.Default())
}

func TestAssembleDefaults(t *testing.T) {
	a := NewAssembler(compositor.Box)
	m := a.Assemble(defaults(), nil)

	assert.Equal(t, uint64(1), m.Revision)
	assert.Equal(t, catalog.Rectangle, m.Shape)
	assert.False(t, m.ShapeAffectsEnvelope)
	assert.Equal(t, float32(4), m.Dimensions.Width)
	assert.Equal(t, float32(1), m.Dimensions.Depth)
	assert.Equal(t, compositor.RuleSolid, m.Rule)
	assert.Len(t, m.Faces, 6)
	assert.False(t, m.Textured())
	assert.Nil(t, m.TextLayer)
	assert.InDelta(t, 1.3, m.HoleRing.Center.Y, 1e-6)
	assert.InDelta(t, 17.5, m.HolePercent.Y, 1e-4)
	assert.Equal(t, "original", m.ColorMode)
	assert.Equal(t, "", m.ImageName)

	assert.Equal(t, uint64(2), a.Assemble(defaults(), nil).Revision)
}

func TestAssembleClampsHole(t *testing.T) {
	p := defaults()
	p.Hole = coords.Point{X: 3, Y: 3}
	m := NewAssembler(compositor.Box).Assemble(p, nil)
	assert.InDelta(t, 1.7, m.Hole.X, 1e-4)
	assert.InDelta(t, 1.7, m.HoleIndicator.Center.Y, 1e-4)
}

func TestAssembleWithTextureAndText(t *testing.T) {
	p := defaults()
	img := resource.New("cat.png", []byte{1})
	p.Image = img
	p.Color = colormode.NewSolid(colormode.MustHex("#98FB98"))
	p.Text = params.TextOverlay{Enabled: true, Text: "Mochi", FontSize: 24, FontFamily: "Pacifico", Color: colormode.MustHex("#000000")}
	tex := &texture.Texture{ResourceID: img.ID(), Width: 16, Height: 16, Transparent: true}

	m := NewAssembler(compositor.Box).Assemble(p, tex)
	assert.Equal(t, compositor.RuleTinted, m.Rule)
	assert.True(t, m.Face(compositor.FaceFront).Textured())
	assert.False(t, m.Face(compositor.FaceTop).Textured())
	require.NotNil(t, m.TextLayer)
	assert.Equal(t, "cat.png", m.ImageName)

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, m))
	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "tinted", got["rule"])
	assert.Equal(t, "box", got["layout"])
	assert.Equal(t, false, got["shape_affects_envelope"])
	faces := got["faces"].([]any)
	require.Len(t, faces, 6)
	front := faces[compositor.FaceFront].(map[string]any)
	assert.Equal(t, "front", front["face"])
	assert.Equal(t, "#98FB98", front["color"])
	assert.Equal(t, img.ID().String(), front["texture"].(map[string]any)["resource_id"])
	top := faces[compositor.FaceTop].(map[string]any)
	assert.NotContains(t, top, "texture")
	text := got["text"].(map[string]any)
	assert.Equal(t, "Mochi", text["text"])
	assert.Equal(t, "#000000", text["color"])
}

func TestModelsAreIndependent(t *testing.T) {
	a := NewAssembler(compositor.Wrapped)
	p := defaults()
	first := a.Assemble(p, nil)
	p.Thickness = 2
	second := a.Assemble(p, nil)
	assert.Equal(t, float32(1), first.Dimensions.Depth)
	assert.Equal(t, float32(2), second.Dimensions.Depth)
	assert.Equal(t, compositor.FaceAll, first.Face(compositor.FaceFront).Face)
}

func TestEncodeNil(t *testing.T) {
	assert.Error(t, Encode(&bytes.Buffer{}, nil))
}
