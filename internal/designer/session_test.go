package designer

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"keychain-designer/internal/catalog"
	"keychain-designer/internal/colormode"
	"keychain-designer/internal/compositor"
	"keychain-designer/internal/coords"
	"keychain-designer/internal/params"
	"keychain-designer/internal/resource"
	"keychain-designer/internal/snapshot"
	"keychain-designer/internal/texture"
)

// manualDecoder records requests; tests decide when and in which order results arrive.
type manualDecoder struct {
	requested []*resource.Image
	pending   []texture.Result
}

func (d *manualDecoder) Request(img *resource.Image) {
	d.requested = append(d.requested, img)
}

func (d *manualDecoder) Poll() []texture.Result {
	out := d.pending
	d.pending = nil
	return out
}

func (d *manualDecoder) complete(img *resource.Image) {
	d.pending = append(d.pending, texture.Result{
		ResourceID: img.ID(),
		Texture:    &texture.Texture{ResourceID: img.ID(), Width: 4, Height: 4},
	})
}

func (d *manualDecoder) fail(img *resource.Image) {
	d.pending = append(d.pending, texture.Result{ResourceID: img.ID(), Err: errors.New("corrupt")})
}

func newSession(t *testing.T) (*Session, *manualDecoder, *[]*snapshot.Model) {
	t.Helper()
	dec := &manualDecoder{}
	s := New(Options{Decoder: dec, Layout: compositor.Box})
	var models []*snapshot.Model
	s.Subscribe(func(m *snapshot.Model) { models = append(models, m) })
	return s, dec, &models
}

func TestNewSessionHasModel(t *testing.T) {
	s, _, models := newSession(t)
	require.NotNil(t, s.Current())
	assert.Equal(t, compositor.RuleSolid, s.Current().Rule)
	assert.Empty(t, *models)
}

func TestStaleDecodeIsDiscarded(t *testing.T) {
	s, dec, _ := newSession(t)
	first := resource.New("first.png", []byte{1})
	second := resource.New("second.png", []byte{2})

	s.SetImage(first)
	s.SetImage(second)
	require.Len(t, dec.requested, 2)
	assert.False(t, s.TextureReady())

	// first finishes late, after second was selected
	dec.complete(first)
	assert.Equal(t, 0, s.Pump())
	assert.Equal(t, compositor.RuleSolid, s.Current().Rule)

	dec.complete(second)
	assert.Equal(t, 1, s.Pump())
	assert.True(t, s.TextureReady())
	front := s.Current().Face(compositor.FaceFront)
	require.True(t, front.Textured())
	assert.Equal(t, second.ID(), front.Texture.ResourceID)
}

func TestStaleDecodeInSameBatch(t *testing.T) {
	s, dec, _ := newSession(t)
	first := resource.New("first.png", []byte{1})
	second := resource.New("second.png", []byte{2})
	s.SetImage(first)
	s.SetImage(second)
	dec.complete(second)
	dec.complete(first)
	assert.Equal(t, 1, s.Pump())
	assert.Equal(t, second.ID(), s.Current().Face(compositor.FaceFront).Texture.ResourceID)
}

func TestDecodeFailureKeepsSolidFallback(t *testing.T) {
	s, dec, _ := newSession(t)
	img := resource.New("bad.png", []byte{0})
	s.SetImage(img)
	dec.fail(img)
	assert.Equal(t, 0, s.Pump())
	assert.Equal(t, compositor.RuleSolid, s.Current().Rule)
	assert.False(t, s.Current().Textured())
}

func TestClearImageDropsTextureAndText(t *testing.T) {
	s, dec, _ := newSession(t)
	img := resource.New("a.png", []byte{1})
	s.SetImage(img)
	text := s.Store().Text()
	text.Enabled = true
	text.Text = "Luna"
	s.Store().SetText(text)
	dec.complete(img)
	s.Pump()
	require.NotNil(t, s.Current().TextLayer)

	s.ClearImage()
	assert.False(t, s.TextureReady())
	assert.Nil(t, s.Current().TextLayer)
	assert.False(t, s.Current().Textured())
	assert.False(t, s.Store().Text().Enabled)

	// a late result for the cleared image must not resurrect it
	dec.complete(img)
	assert.Equal(t, 0, s.Pump())
	assert.False(t, s.Current().Textured())
}

func TestEveryChangePublishesOneModel(t *testing.T) {
	s, _, models := newSession(t)
	require.NoError(t, s.SelectSize("mini"))
	require.Len(t, *models, 1)
	m := (*models)[0]
	assert.Equal(t, float32(2), m.Dimensions.Width)
	// hole (0,1.3) was re-clamped to 0.7 in the same model
	assert.InDelta(t, 0.7, m.Hole.Y, 1e-4)
	assert.InDelta(t, 0.7, m.HoleRing.Center.Y, 1e-4)
	assert.Same(t, m, s.Current())

	require.NoError(t, s.SelectSize("mini"))
	assert.Len(t, *models, 1)
}

func TestSelections(t *testing.T) {
	s, _, _ := newSession(t)
	require.NoError(t, s.SelectShape("Heart"))
	require.NoError(t, s.SelectMaterial("wood"))
	require.NoError(t, s.SelectColor("rainbow"))
	require.NoError(t, s.SelectThickness("thick"))
	assert.Equal(t, catalog.Heart, s.Current().Shape)
	assert.Equal(t, float32(1.5), s.Current().Dimensions.Depth)
	assert.Equal(t, "#8B4513", colormode.Hex(s.Current().Faces[0].Color))

	require.NoError(t, s.SelectThickness("9"))
	assert.Equal(t, params.MaxThickness, s.Current().Dimensions.Depth)

	assert.ErrorIs(t, s.SelectShape("blob"), catalog.ErrUnknownShape)
	assert.ErrorIs(t, s.SelectSize("huge"), catalog.ErrUnknownSize)
	assert.ErrorIs(t, s.SelectMaterial("gold"), catalog.ErrUnknownMaterial)
	assert.ErrorIs(t, s.SelectColor("plaid"), colormode.ErrInvalid)
	assert.Error(t, s.SelectThickness("fat"))
	before := s.Store().Thickness()
	assert.Error(t, s.SelectThickness("1.2mm"))
	assert.Equal(t, before, s.Store().Thickness())
}

func TestQuickHoleAndPositioner(t *testing.T) {
	s, _, _ := newSession(t)
	require.NoError(t, s.QuickHole("Top Left"))
	assert.InDelta(t, -1.3, s.Current().Hole.X, 1e-4)
	require.NoError(t, s.QuickHole("reset"))
	assert.InDelta(t, 1.5, s.Current().Hole.Y, 1e-4)
	assert.Error(t, s.QuickHole("bottom"))

	pos := s.Positioner()
	surface := coords.Rect{Width: 100, Height: 100}
	pos.SetPositioning(true)
	require.True(t, pos.Click(coords.Pointer{X: 100, Y: 100, Surface: surface}))
	assert.InDelta(t, 1.7, s.Current().Hole.X, 1e-4)
	assert.InDelta(t, -1.7, s.Current().Hole.Y, 1e-4)
}

func TestTextPosition(t *testing.T) {
	s, _, _ := newSession(t)
	require.NoError(t, s.TextPosition("bottom"))
	assert.Equal(t, coords.Point{X: 0, Y: -0.5}, s.Store().Text().Position)
	assert.Error(t, s.TextPosition("left"))
}

func TestRapidImageChangesWithRealDecoder(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewNRGBA(image.Rect(0, 0, 2, 2))))

	loader := texture.NewLoader(nil, 0, 2)
	s := New(Options{Decoder: loader})
	var last *resource.Image
	for i := 0; i < 9; i++ {
		last = resource.New("frame.png", buf.Bytes())
		s.SetImage(last)
	}
	loader.Wait()
	assert.Equal(t, 1, s.Pump())
	assert.Equal(t, last.ID(), s.Current().Faces[0].Texture.ResourceID)
}

func TestLoadImageFileWithRealDecoder(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	img.SetNRGBA(1, 1, color.NRGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	path := filepath.Join(t.TempDir(), "pic.png")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	loader := texture.NewLoader(nil, 0, 4)
	s := New(Options{Decoder: loader})
	res, err := s.LoadImageFile(path)
	require.NoError(t, err)
	loader.Wait()
	assert.Equal(t, 1, s.Pump())
	assert.True(t, s.TextureReady())
	assert.Equal(t, res.ID(), s.Current().Faces[0].Texture.ResourceID)
	assert.True(t, s.Current().Faces[0].Texture.Transparent)

	_, err = s.LoadImageFile(filepath.Join(t.TempDir(), "missing.png"))
	assert.Error(t, err)
}
