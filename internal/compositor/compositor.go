// Package compositor decides how every face of the keychain looks: a flat material color, the
// uploaded image as a texture (optionally tinted), and whether a text layer floats in front.
//
// Precedence, first match wins:
//
//  1. no image, or its texture is not decoded yet: every face is the resolved solid color, opaque
//  2. image + solid color: side faces solid, image faces textured over the color at TintedOpacity
//  3. image + original: image faces textured at full opacity with no tint
//
// Every textured face carries the alpha cutoff. A gradient with an image is treated as rule 2
// using the gradient's representative color. The text layer is only produced together with a
// ready texture.
package compositor

import (
	"image/color"

	"keychain-designer/internal/catalog"
	"keychain-designer/internal/colormode"
	"keychain-designer/internal/params"
	"keychain-designer/internal/resource"
	"keychain-designer/internal/texture"
)

// TintedOpacity is the opacity of textured faces blended over a solid color.
const TintedOpacity float32 = 0.9

// TextLayerOffset is how far the text layer sits in front of the front face.
const TextLayerOffset float32 = 0.01

// Layout selects how the surface is split into faces.
type Layout int

const (
	// Wrapped is one face group carrying a single wrapped texture.
	Wrapped Layout = iota
	// Box has six independent faces so front/back can differ from the sides.
	Box
)

func (l Layout) String() string {
	if l == Box {
		return "box"
	}
	return "wrapped"
}

// ParseLayout accepts "box" and "wrapped"; anything else is Box.
func ParseLayout(s string) Layout {
	if s == "wrapped" {
		return Wrapped
	}
	return Box
}

// Face identifies one face of the box, in the conventional +X, -X, +Y, -Y, +Z, -Z order.
type Face int

const (
	FaceRight Face = iota
	FaceLeft
	FaceTop
	FaceBottom
	FaceFront
	FaceBack
	// FaceAll is the single face of the Wrapped layout.
	FaceAll
)

var faceNames = [...]string{"right", "left", "top", "bottom", "front", "back", "all"}

func (f Face) String() string {
	if f < 0 || int(f) >= len(faceNames) {
		return "unknown"
	}
	return faceNames[f]
}

// BoxFaces lists the six faces of the Box layout in order.
var BoxFaces = []Face{FaceRight, FaceLeft, FaceTop, FaceBottom, FaceFront, FaceBack}

// imageFace reports whether f shows the image in the Box layout under a solid tint.
func imageFace(f Face) bool {
	return f == FaceFront || f == FaceBack || f == FaceAll
}

// Rule is the precedence rule that produced an appearance.
type Rule int

const (
	RuleSolid Rule = iota + 1
	RuleTinted
	RuleOriginal
)

func (r Rule) String() string {
	switch r {
	case RuleSolid:
		return "solid"
	case RuleTinted:
		return "tinted"
	case RuleOriginal:
		return "original"
	}
	return "unknown"
}

// FaceAppearance is the surface description of one face.
// Solid faces have a nil Texture and AlphaCutoff 0. Textured faces show Texture; when Tinted,
// Color fills the regions the alpha cutoff removes, otherwise those regions are holes.
type FaceAppearance struct {
	Face        Face
	Color       color.NRGBA
	Texture     *texture.Texture
	Tinted      bool
	Opacity     float32
	AlphaCutoff float32
	Metalness   float32
	Roughness   float32
}

// Textured reports whether the face shows the image.
func (f FaceAppearance) Textured() bool {
	return f.Texture != nil
}

// TextLayer is the transparent plane carrying the overlay text. It covers the front face
// (Width x Height, centered in X/Y) at Z; the glyphs are drawn at Position (normalized -1..1,
// y up) rotated by Rotation degrees. Outside the glyph strokes the layer has alpha 0.
type TextLayer struct {
	Text       string
	FontFamily string
	FontSize   float32
	Color      color.NRGBA
	Position   [2]float32
	Rotation   float32
	Width      float32
	Height     float32
	Z          float32
}

// Appearance is the full compositing result.
type Appearance struct {
	Layout Layout
	Rule   Rule
	Faces  []FaceAppearance
	Text   *TextLayer
}

// Input is everything the compositor reads. Texture is the latest decoded texture, which may
// belong to an older image or be nil while decoding.
type Input struct {
	Color    colormode.Mode
	Material catalog.Material
	Image    *resource.Image
	Texture  *texture.Texture
	Text     params.TextOverlay
	Width    float32
	Height   float32
	Depth    float32
}

// InputFrom collects the compositor input from a parameter set.
func InputFrom(p params.Params, tex *texture.Texture) Input {
	return Input{
		Color:    p.Color,
		Material: p.Material,
		Image:    p.Image,
		Texture:  tex,
		Text:     p.Text,
		Width:    p.Size.Width,
		Height:   p.Size.Height,
		Depth:    p.Thickness,
	}
}

// TextureReady reports whether in carries the decoded texture of its current image.
func TextureReady(in Input) bool {
	return in.Image != nil && in.Texture != nil && in.Texture.ResourceID == in.Image.ID()
}

// Compose applies the precedence rules to in.
func Compose(in Input, layout Layout) Appearance {
	faces := []Face{FaceAll}
	if layout == Box {
		faces = BoxFaces
	}
	out := Appearance{Layout: layout, Faces: make([]FaceAppearance, 0, len(faces))}

	if !TextureReady(in) {
		out.Rule = RuleSolid
		solid := solidFace(in.Color.Resolve(in.Material.BaseColor), in.Material)
		for _, f := range faces {
			solid.Face = f
			out.Faces = append(out.Faces, solid)
		}
		return out
	}

	tint, tinted := in.Color.Tint()
	if tinted {
		out.Rule = RuleTinted
	} else {
		out.Rule = RuleOriginal
	}
	for _, f := range faces {
		switch {
		case !tinted:
			out.Faces = append(out.Faces, texturedFace(f, in, false, tint, 1))
		case imageFace(f):
			out.Faces = append(out.Faces, texturedFace(f, in, true, tint, TintedOpacity))
		default:
			sf := solidFace(tint, in.Material)
			sf.Face = f
			out.Faces = append(out.Faces, sf)
		}
	}
	out.Text = textLayer(in)
	return out
}

func solidFace(c color.NRGBA, m catalog.Material) FaceAppearance {
	c.A = 255
	return FaceAppearance{
		Color:     c,
		Opacity:   1,
		Metalness: m.Metalness,
		Roughness: m.Roughness,
	}
}

func texturedFace(f Face, in Input, tinted bool, tint color.NRGBA, opacity float32) FaceAppearance {
	c := color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	if tinted {
		c = tint
		c.A = 255
	}
	return FaceAppearance{
		Face:        f,
		Color:       c,
		Texture:     in.Texture,
		Tinted:      tinted,
		Opacity:     opacity,
		AlphaCutoff: texture.AlphaCutoff,
		Metalness:   in.Material.Metalness,
		Roughness:   in.Material.Roughness,
	}
}

// textLayer returns the text plane, or nil when there is no image or nothing visible to draw.
func textLayer(in Input) *TextLayer {
	if in.Image == nil || !in.Text.Visible() {
		return nil
	}
	t := params.NormalizeText(in.Text)
	return &TextLayer{
		Text:       t.Text,
		FontFamily: t.FontFamily,
		FontSize:   t.FontSize,
		Color:      t.Color,
		Position:   [2]float32{t.Position.X, t.Position.Y},
		Rotation:   t.Rotation,
		Width:      in.Width,
		Height:     in.Height,
		Z:          in.Depth/2 + TextLayerOffset,
	}
}
