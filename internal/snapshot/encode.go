package snapshot

import (
	"encoding/json"
	"fmt"
	"io"

	"keychain-designer/internal/colormode"
	"keychain-designer/internal/geometry"
)

// Export is the JSON form of a Model. Textures are referenced by resource ID and pixel size;
// raster data is not included.
type Export struct {
	Revision             uint64       `json:"revision"`
	Shape                string       `json:"shape"`
	ShapeAffectsEnvelope bool         `json:"shape_affects_envelope"`
	Size                 string       `json:"size"`
	Material             string       `json:"material"`
	ColorMode            string       `json:"color_mode"`
	Image                string       `json:"image,omitempty"`
	Dimensions           exportBox    `json:"dimensions"`
	Layout               string       `json:"layout"`
	Rule                 string       `json:"rule"`
	Faces                []exportFace `json:"faces"`
	Hole                 exportHole   `json:"hole"`
	Text                 *exportText  `json:"text,omitempty"`
}

type exportBox struct {
	Width  float32 `json:"width"`
	Height float32 `json:"height"`
	Depth  float32 `json:"depth"`
}

type exportFace struct {
	Face        string         `json:"face"`
	Color       string         `json:"color"`
	Tinted      bool           `json:"tinted,omitempty"`
	Opacity     float32        `json:"opacity"`
	AlphaCutoff float32        `json:"alpha_cutoff,omitempty"`
	Metalness   float32        `json:"metalness"`
	Roughness   float32        `json:"roughness"`
	Texture     *exportTexture `json:"texture,omitempty"`
}

type exportTexture struct {
	ResourceID  string `json:"resource_id"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Transparent bool   `json:"transparent"`
}

type exportHole struct {
	X         float32    `json:"x"`
	Y         float32    `json:"y"`
	PercentX  float32    `json:"percent_x"`
	PercentY  float32    `json:"percent_y"`
	Indicator [3]float32 `json:"indicator"`
	Ring      [3]float32 `json:"ring"`
}

type exportText struct {
	Text       string     `json:"text"`
	FontFamily string     `json:"font_family"`
	FontSize   float32    `json:"font_size"`
	Color      string     `json:"color"`
	Position   [2]float32 `json:"position"`
	Rotation   float32    `json:"rotation"`
	Z          float32    `json:"z"`
}

// ToExport converts m to its JSON form.
func ToExport(m *Model) Export {
	e := Export{
		Revision:             m.Revision,
		Shape:                string(m.Shape),
		ShapeAffectsEnvelope: m.ShapeAffectsEnvelope,
		Size:                 m.SizeID,
		Material:             m.MaterialID,
		ColorMode:            m.ColorMode,
		Image:                m.ImageName,
		Dimensions:           exportBox{Width: m.Dimensions.Width, Height: m.Dimensions.Height, Depth: m.Dimensions.Depth},
		Layout:               m.Layout.String(),
		Rule:                 m.Rule.String(),
		Hole: exportHole{
			X:         m.Hole.X,
			Y:         m.Hole.Y,
			PercentX:  m.HolePercent.X,
			PercentY:  m.HolePercent.Y,
			Indicator: vec(m.HoleIndicator.Center),
			Ring:      vec(m.HoleRing.Center),
		},
	}
	for _, f := range m.Faces {
		ef := exportFace{
			Face:        f.Face.String(),
			Color:       colormode.Hex(f.Color),
			Tinted:      f.Tinted,
			Opacity:     f.Opacity,
			AlphaCutoff: f.AlphaCutoff,
			Metalness:   f.Metalness,
			Roughness:   f.Roughness,
		}
		if f.Texture != nil {
			ef.Texture = &exportTexture{
				ResourceID:  f.Texture.ResourceID.String(),
				Width:       f.Texture.Width,
				Height:      f.Texture.Height,
				Transparent: f.Texture.Transparent,
			}
		}
		e.Faces = append(e.Faces, ef)
	}
	if t := m.TextLayer; t != nil {
		e.Text = &exportText{
			Text:       t.Text,
			FontFamily: t.FontFamily,
			FontSize:   t.FontSize,
			Color:      colormode.Hex(t.Color),
			Position:   t.Position,
			Rotation:   t.Rotation,
			Z:          t.Z,
		}
	}
	return e
}

func vec(v geometry.Vec3) [3]float32 {
	return [3]float32{v.X, v.Y, v.Z}
}

// Encode writes m as indented JSON.
func Encode(w io.Writer, m *Model) error {
	if m == nil {
		return fmt.Errorf("snapshot: no model to encode")
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(ToExport(m)); err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	return nil
}
