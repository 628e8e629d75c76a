package scene

import (
	"context"
	"image"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/golang/freetype/truetype"
	"github.com/google/uuid"

	"keychain-designer/internal/compositor"
	"keychain-designer/internal/logger"
	"keychain-designer/internal/primitives"
	"keychain-designer/internal/snapshot"
	"keychain-designer/internal/textlayer"
	"keychain-designer/internal/texture"
)

const (
	// DefaultDistance puts the camera at (0,0,5) looking at the keychain center.
	DefaultDistance = 5
	MinDistance     = 2
	MaxDistance     = 15
	DefaultFovy     = 50

	// AutoRotateSpeed is the idle orbit speed in radians per second.
	AutoRotateSpeed = 0.5
	orbitSpeed      = 0.008
	zoomStep        = 0.5
	maxPitch        = 1.4

	// textAlphaCutoff drops the fully transparent area around the glyphs.
	textAlphaCutoff = 0.02
)

var backgroundColor = rl.NewColor(238, 240, 245, 255)

// FontSource resolves overlay font families. fonts.Resolver implements it.
type FontSource interface {
	Resolve(ctx context.Context, family string) *truetype.Font
}

// textRaster is a finished text layer raster for the layer it was rendered from.
type textRaster struct {
	layer compositor.TextLayer
	img   *image.RGBA
}

// Scene holds the orbit camera and draws the current keychain model. Update runs camera logic;
// Draw renders between BeginMode3D and EndMode3D. GPU textures are created lazily in Draw,
// after the window/OpenGL context exists.
type Scene struct {
	Camera     rl.Camera3D
	AutoRotate bool

	log   *logger.Logger
	prims *primitives.Registry
	fonts FontSource
	model *snapshot.Model

	yaw, pitch, distance float32

	// Face texture: uploaded once per decoded image.
	faceTexID uuid.UUID
	faceTex   rl.Texture2D

	// Text layer: rasterized off the render thread, uploaded in Draw. textWant is the layer of
	// the current model; rasters for any other layer are dropped.
	textWant *compositor.TextLayer
	textHave compositor.TextLayer
	textTex  rl.Texture2D
	rasters  chan textRaster
	ctx      context.Context
	cancel   context.CancelFunc
}

// New returns a scene with a perspective camera at (0,0,5) looking at the origin, fovy 50°.
// fonts may be nil, in which case text layers use the fallback font.
func New(log *logger.Logger, fonts FontSource) *Scene {
	if log == nil {
		log = logger.Nop()
	}
	ctx, cancel := context.WithCancel(context.Background())
	s := &Scene{
		AutoRotate: true,
		log:        log.With("component", "scene"),
		prims:      primitives.NewRegistry(),
		fonts:      fonts,
		distance:   DefaultDistance,
		rasters:    make(chan textRaster, 4),
		ctx:        ctx,
		cancel:     cancel,
	}
	s.Camera.Target = rl.NewVector3(0, 0, 0)
	s.Camera.Up = rl.NewVector3(0, 1, 0)
	s.Camera.Fovy = DefaultFovy
	s.Camera.Projection = rl.CameraPerspective
	s.placeCamera()
	return s
}

// SetModel replaces the model drawn from the next frame on. Safe to pass to Session.Subscribe.
func (s *Scene) SetModel(m *snapshot.Model) {
	s.model = m
	if m == nil || m.TextLayer == nil {
		s.textWant = nil
		return
	}
	if s.textWant != nil && *s.textWant == *m.TextLayer {
		return
	}
	layer := *m.TextLayer
	s.textWant = &layer
	if rl.IsTextureValid(s.textTex) && s.textHave == layer {
		return
	}
	go s.rasterize(layer)
}

func (s *Scene) rasterize(layer compositor.TextLayer) {
	var font *truetype.Font
	if s.fonts != nil {
		font = s.fonts.Resolve(s.ctx, layer.FontFamily)
	}
	img := textlayer.Render(&layer, font, textlayer.DefaultPixelsPerUnit)
	select {
	case s.rasters <- textRaster{layer: layer, img: img}:
	case <-s.ctx.Done():
	}
}

// ResetView puts the camera back at its default position.
func (s *Scene) ResetView() {
	s.yaw, s.pitch, s.distance = 0, 0, DefaultDistance
	s.placeCamera()
}

// Update runs once per frame. Right-drag orbits, the wheel zooms, and while idle the camera
// auto-rotates. Pass captured true when another overlay owns the mouse this frame.
func (s *Scene) Update(captured bool) {
	interacting := false
	if !captured {
		if rl.IsMouseButtonDown(rl.MouseButtonRight) {
			d := rl.GetMouseDelta()
			s.yaw -= d.X * orbitSpeed
			s.pitch += d.Y * orbitSpeed
			interacting = true
		}
		if wheel := rl.GetMouseWheelMove(); wheel != 0 {
			s.distance -= wheel * zoomStep
			interacting = true
		}
	}
	if s.AutoRotate && !interacting {
		s.yaw += AutoRotateSpeed * rl.GetFrameTime()
	}
	s.placeCamera()
}

func (s *Scene) placeCamera() {
	s.pitch = math32.Max(-maxPitch, math32.Min(maxPitch, s.pitch))
	s.distance = math32.Max(MinDistance, math32.Min(MaxDistance, s.distance))
	s.yaw = math32.Mod(s.yaw, 2*math32.Pi)
	cp := math32.Cos(s.pitch)
	s.Camera.Position = rl.NewVector3(
		s.Camera.Target.X+s.distance*math32.Sin(s.yaw)*cp,
		s.Camera.Target.Y+s.distance*math32.Sin(s.pitch),
		s.Camera.Target.Z+s.distance*math32.Cos(s.yaw)*cp,
	)
}

// Draw clears the frame and renders the keychain. Call inside BeginDrawing, before 2D overlays.
func (s *Scene) Draw() {
	s.syncTextures()
	rl.ClearBackground(backgroundColor)
	m := s.model
	if m == nil {
		return
	}
	rl.BeginMode3D(s.Camera)
	pos := s.Camera.Position
	s.prims.SetView([3]float32{pos.X, pos.Y, pos.Z}, [3]float32{0.4, 0.8, 1})

	body := m.Dimensions
	if m.Layout == compositor.Wrapped {
		s.drawFace(primitives.Cube, primitives.Transform([3]float32{}, [3]float32{body.Width, body.Height, body.Depth}, nil), m.Face(compositor.FaceAll))
	} else {
		// opaque faces first so translucent image faces blend over them
		for _, fa := range m.Faces {
			if fa.Opacity >= 1 {
				s.drawFace(primitives.Plane, FaceTransform(fa.Face, body), fa)
			}
		}
		for _, fa := range m.Faces {
			if fa.Opacity < 1 {
				s.drawFace(primitives.Plane, FaceTransform(fa.Face, body), fa)
			}
		}
	}

	ind := m.HoleIndicator
	s.prims.Draw(primitives.Sphere,
		primitives.Transform([3]float32{ind.Center.X, ind.Center.Y, ind.Center.Z}, [3]float32{ind.Radius, ind.Radius, ind.Radius}, nil),
		primitives.Surface{Color: ind.Emissive, Roughness: 0.5, EmissiveIntensity: ind.EmissiveIntensity})
	ring := m.HoleRing
	s.prims.Draw(primitives.Torus,
		primitives.Transform([3]float32{ring.Center.X, ring.Center.Y, ring.Center.Z}, [3]float32{ring.Radius, ring.Radius, ring.Radius}, nil),
		primitives.Surface{Color: ring.Color, Metalness: ring.Metalness, Roughness: ring.Roughness})

	if t := m.TextLayer; t != nil && rl.IsTextureValid(s.textTex) && s.textHave == *t {
		rot := rl.MatrixRotateX(math32.Pi / 2)
		s.prims.DrawWithTexture(primitives.Plane,
			primitives.Transform([3]float32{0, 0, t.Z}, [3]float32{t.Width, 1, t.Height}, &rot),
			primitives.Surface{Color: whiteNRGBA, Opacity: 1, AlphaCutoff: textAlphaCutoff, EmissiveIntensity: 0.3},
			s.textTex)
	}
	rl.EndMode3D()
}

func (s *Scene) drawFace(mesh string, transform rl.Matrix, fa compositor.FaceAppearance) {
	surf := primitives.Surface{
		Color:       fa.Color,
		Opacity:     fa.Opacity,
		Metalness:   fa.Metalness,
		Roughness:   fa.Roughness,
		AlphaCutoff: fa.AlphaCutoff,
		Tinted:      fa.Tinted,
	}
	if fa.Textured() && rl.IsTextureValid(s.faceTex) && fa.Texture.ResourceID == s.faceTexID {
		s.prims.DrawWithTexture(mesh, transform, surf, s.faceTex)
		return
	}
	s.prims.Draw(mesh, transform, surf)
}

// syncTextures uploads the face texture of a newly decoded image and the latest text raster.
func (s *Scene) syncTextures() {
	if m := s.model; m != nil {
		for _, fa := range m.Faces {
			if !fa.Textured() {
				continue
			}
			if fa.Texture.ResourceID != s.faceTexID || !rl.IsTextureValid(s.faceTex) {
				s.uploadFace(fa.Texture, fa.AlphaCutoff)
			}
			break
		}
	}
	for {
		select {
		case r := <-s.rasters:
			if s.textWant == nil || *s.textWant != r.layer {
				continue
			}
			s.uploadText(r)
		default:
			return
		}
	}
}

func (s *Scene) uploadFace(tex *texture.Texture, cutoff float32) {
	if rl.IsTextureValid(s.faceTex) {
		rl.UnloadTexture(s.faceTex)
	}
	s.faceTexID = tex.ResourceID
	s.faceTex = upload(texture.ApplyAlphaCutoff(tex.Pixels, cutoff))
	s.log.Debug("face texture uploaded", "resource", tex.ResourceID, "width", tex.Width, "height", tex.Height)
}

func (s *Scene) uploadText(r textRaster) {
	if rl.IsTextureValid(s.textTex) {
		rl.UnloadTexture(s.textTex)
	}
	s.textHave = r.layer
	s.textTex = upload(r.img)
}

func upload(img *image.RGBA) rl.Texture2D {
	rimg := rl.NewImageFromImage(img)
	tex := rl.LoadTextureFromImage(rimg)
	rl.UnloadImage(rimg)
	rl.SetTextureFilter(tex, rl.FilterBilinear)
	return tex
}

// Unload releases GPU resources and stops pending text rasterization.
func (s *Scene) Unload() {
	s.cancel()
	if rl.IsTextureValid(s.faceTex) {
		rl.UnloadTexture(s.faceTex)
	}
	if rl.IsTextureValid(s.textTex) {
		rl.UnloadTexture(s.textTex)
	}
	s.prims.Unload()
}
