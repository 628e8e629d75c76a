package snapshot

import (
	"sync/atomic"

	"keychain-designer/internal/catalog"
	"keychain-designer/internal/compositor"
	"keychain-designer/internal/coords"
	"keychain-designer/internal/geometry"
	"keychain-designer/internal/params"
	"keychain-designer/internal/texture"
)

// Model is the complete, immutable description of the current keychain handed to the renderer and
// the exporter. A Model is never modified after Assemble returns; a parameter change produces a
// new Model with a higher Revision.
type Model struct {
	Revision uint64

	Shape                catalog.Shape
	ShapeAffectsEnvelope bool
	SizeID               string
	MaterialID           string
	ColorMode            string
	ImageName            string

	Dimensions    geometry.Body
	Layout        compositor.Layout
	Rule          compositor.Rule
	Faces         []compositor.FaceAppearance
	HoleIndicator geometry.Sphere
	HoleRing      geometry.Torus
	TextLayer     *compositor.TextLayer

	// Hole is the hole position in model space; HolePercent is the same point for a 2D overlay.
	Hole        coords.Point
	HolePercent coords.Percent
}

// Face returns the appearance of face f, falling back to the first face (the wrapped layout has
// only one).
func (m *Model) Face(f compositor.Face) compositor.FaceAppearance {
	for _, fa := range m.Faces {
		if fa.Face == f {
			return fa
		}
	}
	if len(m.Faces) > 0 {
		return m.Faces[0]
	}
	return compositor.FaceAppearance{}
}

// Textured reports whether any face shows the image texture.
func (m *Model) Textured() bool {
	for _, fa := range m.Faces {
		if fa.Textured() {
			return true
		}
	}
	return false
}

// Assembler builds models. Revisions increase across calls on the same assembler.
type Assembler struct {
	layout   compositor.Layout
	revision atomic.Uint64
}

// NewAssembler returns an assembler composing faces with layout.
func NewAssembler(layout compositor.Layout) *Assembler {
	return &Assembler{layout: layout}
}

// Layout is the face layout used for every model.
func (a *Assembler) Layout() compositor.Layout {
	return a.layout
}

// Assemble computes geometry, appearance and hole mapping for p and the latest decoded texture
// (which may be nil or stale) and returns them as one new Model.
func (a *Assembler) Assemble(p params.Params, tex *texture.Texture) *Model {
	p = params.Normalize(p)
	geo := geometry.Build(p.Shape, p.Size, p.Thickness, p.Hole)
	app := compositor.Compose(compositor.InputFrom(p, tex), a.layout)

	faces := make([]compositor.FaceAppearance, len(app.Faces))
	copy(faces, app.Faces)
	var text *compositor.TextLayer
	if app.Text != nil {
		t := *app.Text
		text = &t
	}

	return &Model{
		Revision:             a.revision.Add(1),
		Shape:                geo.Shape,
		ShapeAffectsEnvelope: geo.ShapeAffectsEnvelope,
		SizeID:               p.Size.ID,
		MaterialID:           p.Material.ID,
		ColorMode:            p.Color.String(),
		ImageName:            p.Image.Name(),
		Dimensions:           geo.Body,
		Layout:               app.Layout,
		Rule:                 app.Rule,
		Faces:                faces,
		HoleIndicator:        geo.Indicator,
		HoleRing:             geo.Ring,
		TextLayer:            text,
		Hole:                 geo.Hole,
		HolePercent:          coords.ModelToScreen(geo.Hole.X, geo.Hole.Y, geo.Body.Width, geo.Body.Height),
	}
}
