package designer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"keychain-designer/internal/catalog"
	"keychain-designer/internal/colormode"
	"keychain-designer/internal/resource"
)

const presetYAML = `
shape: star
size: large
thickness: 0.5
material: metal
color: "#FF7F50"
hole: [9, 0]
text:
  enabled: true
  text: Bestie
  size: 30
  font: Pacifico
  color: "#FFD700"
  position: [0, 0.5]
  rotation: 15
`

func TestApplyPresetFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preset.yaml")
	require.NoError(t, os.WriteFile(path, []byte(presetYAML), 0o644))
	pr, err := LoadPreset(path)
	require.NoError(t, err)

	s, _, models := newSession(t)
	require.NoError(t, s.ApplyPreset(pr))
	require.Len(t, *models, 1)

	p := s.Store().Params()
	assert.Equal(t, catalog.Star, p.Shape)
	assert.Equal(t, "large", p.Size.ID)
	assert.Equal(t, float32(0.5), p.Thickness)
	assert.Equal(t, "metal", p.Material.ID)
	assert.Equal(t, "#FF7F50", p.Color.String())
	assert.InDelta(t, 2.2, p.Hole.X, 1e-4)
	// kept without an image; the compositor hides it until one is set
	assert.True(t, p.Text.Enabled)
	assert.Nil(t, s.Current().TextLayer)
	assert.Equal(t, "Bestie", p.Text.Text)
	assert.Equal(t, float32(30), p.Text.FontSize)
	assert.Equal(t, colormode.MustHex("#FFD700"), p.Text.Color)
}

func TestPresetTextSurvivesLaterImage(t *testing.T) {
	s, dec, _ := newSession(t)
	require.NoError(t, s.ApplyPreset(Preset{Text: &PresetText{Enabled: true, Text: "Luna"}}))

	img := resource.New("luna.png", []byte{1})
	s.SetImage(img)
	dec.complete(img)
	require.Equal(t, 1, s.Pump())

	m := s.Current()
	require.NotNil(t, m.TextLayer)
	assert.Equal(t, "Luna", m.TextLayer.Text)
}

func TestApplyPresetRejectsUnknownWithoutChanges(t *testing.T) {
	s, _, models := newSession(t)
	err := s.ApplyPreset(Preset{Shape: "star", Material: "gold"})
	assert.ErrorIs(t, err, catalog.ErrUnknownMaterial)
	assert.Empty(t, *models)
	assert.Equal(t, catalog.Rectangle, s.Store().Shape())

	assert.Error(t, s.ApplyPreset(Preset{Text: &PresetText{Color: "gold"}}))
}

func TestSavePresetRoundTrip(t *testing.T) {
	s, _, _ := newSession(t)
	require.NoError(t, s.SelectMaterial("acrylic"))
	require.NoError(t, s.SelectColor("aurora"))
	s.MoveHole(-1, 1)
	path := filepath.Join(t.TempDir(), "saved.yaml")
	require.NoError(t, s.SavePreset(path))

	pr, err := LoadPreset(path)
	require.NoError(t, err)
	other, _, _ := newSession(t)
	require.NoError(t, other.ApplyPreset(pr))
	assert.Equal(t, s.Store().Params().Material, other.Store().Params().Material)
	assert.Equal(t, s.Store().Params().Color, other.Store().Params().Color)
	assert.Equal(t, s.Store().Hole(), other.Store().Hole())
}

func TestLoadPresetErrors(t *testing.T) {
	_, err := LoadPreset(filepath.Join(t.TempDir(), "none.yaml"))
	assert.Error(t, err)
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("shape: [oops"), 0o644))
	_, err = LoadPreset(path)
	assert.Error(t, err)
}
