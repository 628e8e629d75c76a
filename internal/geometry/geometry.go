package geometry

import (
	"image/color"

	"github.com/chewxy/math32"

	"keychain-designer/internal/catalog"
	"keychain-designer/internal/coords"
)

// Hole hardware dimensions and offsets, in model units.
const (
	IndicatorRadius float32 = 0.15
	IndicatorOffset float32 = 0.1 // in front of the front face
	RingRadius      float32 = 0.2
	RingTube        float32 = 0.05
)

// Hole hardware looks.
var (
	IndicatorColor             = color.NRGBA{R: 0xFF, G: 0xD7, B: 0x00, A: 0xFF}
	IndicatorEmissiveIntensity float32 = 0.3
	RingColor                  = color.NRGBA{R: 0xC0, G: 0xC0, B: 0xC0, A: 0xFF}
	RingMetalness              float32 = 0.8
	RingRoughness              float32 = 0.2
)

// Vec3 is a point in model space (origin at the body center, y up, +z toward the viewer).
type Vec3 struct {
	X, Y, Z float32
}

// Body is the solid box envelope of the keychain.
type Body struct {
	Width, Height, Depth float32
}

// FrontZ is the z of the front face.
func (b Body) FrontZ() float32 {
	return b.Depth / 2
}

// Sphere is the hole indicator.
type Sphere struct {
	Center            Vec3
	Radius            float32
	Color             color.NRGBA
	Emissive          color.NRGBA
	EmissiveIntensity float32
}

// Torus is the decorative ring around the hole, lying in the XY plane.
type Torus struct {
	Center    Vec3
	Radius    float32
	Tube      float32
	Color     color.NRGBA
	Metalness float32
	Roughness float32
}

// Geometry is the solid description derived from shape, size, thickness and hole position.
//
// All catalog shapes share the box envelope: the shape is carried for labeling and silhouette
// purposes only and ShapeAffectsEnvelope is always false. Hole clamping and rendering both use
// Body.
type Geometry struct {
	Shape                catalog.Shape
	ShapeAffectsEnvelope bool
	Body                 Body
	Hole                 coords.Point
	Indicator            Sphere
	Ring                 Torus
}

// Build derives the geometry. The thickness replaces the preset depth; a non-positive or NaN
// thickness falls back to the preset depth. The hole is clamped to the envelope.
func Build(shape catalog.Shape, size catalog.SizePreset, thickness float32, hole coords.Point) Geometry {
	depth := thickness
	if math32.IsNaN(depth) || depth <= 0 {
		depth = size.Depth
	}
	body := Body{Width: size.Width, Height: size.Height, Depth: depth}
	hole = coords.Clamp(hole, body.Width, body.Height)
	return Geometry{
		Shape:                shape,
		ShapeAffectsEnvelope: false,
		Body:                 body,
		Hole:                 hole,
		Indicator: Sphere{
			Center:            Vec3{X: hole.X, Y: hole.Y, Z: body.FrontZ() + IndicatorOffset},
			Radius:            IndicatorRadius,
			Color:             IndicatorColor,
			Emissive:          IndicatorColor,
			EmissiveIntensity: IndicatorEmissiveIntensity,
		},
		Ring: Torus{
			Center:    Vec3{X: hole.X, Y: hole.Y, Z: body.FrontZ()},
			Radius:    RingRadius,
			Tube:      RingTube,
			Color:     RingColor,
			Metalness: RingMetalness,
			Roughness: RingRoughness,
		},
	}
}

// BoundingRadius is the radius of the sphere enclosing the body and the hole hardware, used to
// frame the camera.
func (g Geometry) BoundingRadius() float32 {
	w, h := g.Body.Width/2, g.Body.Height/2
	d := g.Indicator.Center.Z + g.Indicator.Radius
	return math32.Sqrt(w*w + h*h + d*d)
}
