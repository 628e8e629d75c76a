package catalog

import "image/color"

// Shape is one silhouette of the fixed shape catalog. It only changes the silhouette, never the box envelope.
type Shape string

const (
	Rectangle Shape = "rectangle"
	Circle    Shape = "circle"
	Heart     Shape = "heart"
	Star      Shape = "star"
	Hexagon   Shape = "hexagon"
	Pentagon  Shape = "pentagon"
	Triangle  Shape = "triangle"
	Shield    Shape = "shield"
)

// ShapeOption is a catalog entry for a shape.
type ShapeOption struct {
	Shape   Shape
	Label   string
	Popular bool
}

// SizePreset is a catalog size in centimeters. Depth is the catalog default thickness;
// the user-adjustable thickness overrides it for geometry.
type SizePreset struct {
	ID      string
	Name    string
	Width   float32
	Height  float32
	Depth   float32
	Popular bool
}

// Material supplies the default surface look when no image or color override applies.
type Material struct {
	ID          string
	Name        string
	BaseColor   color.NRGBA
	Metalness   float32
	Roughness   float32
	Price       string
	Description string
}

// ColorOption is an entry of the color selector. Value is what colormode.Parse accepts.
// Stops holds the gradient stops for gradient entries, drawn at colormode.GradientAngle.
type ColorOption struct {
	Name  string
	Value string
	Stops []color.NRGBA
}

// FontOption is a font family offered for the text overlay.
type FontOption struct {
	Family string
	Label  string
}

// TextColorOption is a preset text overlay color.
type TextColorOption struct {
	Label string
	Color color.NRGBA
}

// ThicknessPreset is a one-click thickness value.
type ThicknessPreset struct {
	Label string
	Value float32
}

// TextPositionPreset is a one-click normalized text position.
type TextPositionPreset struct {
	Label string
	X, Y  float32
}

// Defaults are the parameter values of a fresh design session.
type Defaults struct {
	Shape     Shape
	SizeID    string
	Material  string
	Color     string
	Font      string
	TextColor color.NRGBA
	TextSize  float32
	Thickness float32
	HoleX     float32
	HoleY     float32
}

// fileDef is the YAML layout of a catalog file (see catalog.yaml). Colors are hex strings until validated.
type fileDef struct {
	Defaults struct {
		Shape     string     `yaml:"shape"`
		Size      string     `yaml:"size"`
		Material  string     `yaml:"material"`
		Color     string     `yaml:"color"`
		Font      string     `yaml:"font"`
		TextColor string     `yaml:"text_color"`
		TextSize  float32    `yaml:"text_size"`
		Thickness float32    `yaml:"thickness"`
		Hole      [2]float32 `yaml:"hole"`
	} `yaml:"defaults"`
	Shapes []struct {
		ID      string `yaml:"id"`
		Label   string `yaml:"label"`
		Popular bool   `yaml:"popular,omitempty"`
	} `yaml:"shapes"`
	Sizes []struct {
		ID      string  `yaml:"id"`
		Name    string  `yaml:"name"`
		Width   float32 `yaml:"width"`
		Height  float32 `yaml:"height"`
		Depth   float32 `yaml:"depth"`
		Popular bool    `yaml:"popular,omitempty"`
	} `yaml:"sizes"`
	Materials []struct {
		ID          string  `yaml:"id"`
		Name        string  `yaml:"name"`
		Color       string  `yaml:"color"`
		Metalness   float32 `yaml:"metalness"`
		Roughness   float32 `yaml:"roughness"`
		Price       string  `yaml:"price,omitempty"`
		Description string  `yaml:"description,omitempty"`
	} `yaml:"materials"`
	Colors []struct {
		Name  string `yaml:"name"`
		Value string `yaml:"value"`
	} `yaml:"colors"`
	Fonts []struct {
		Family string `yaml:"family"`
		Label  string `yaml:"label"`
	} `yaml:"fonts"`
	TextColors []struct {
		Label string `yaml:"label"`
		Value string `yaml:"value"`
	} `yaml:"text_colors"`
	ThicknessPresets []struct {
		Label string  `yaml:"label"`
		Value float32 `yaml:"value"`
	} `yaml:"thickness_presets"`
	TextPositions []struct {
		Label string  `yaml:"label"`
		X     float32 `yaml:"x"`
		Y     float32 `yaml:"y"`
	} `yaml:"text_positions"`
}
