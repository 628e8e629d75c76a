package ui

import (
	"fmt"

	"keychain-designer/internal/compositor"
	"keychain-designer/internal/snapshot"
)

// Panel is the top-left summary of the current design. It owns its nodes and updates their
// text from the latest model when AppendNodes is called with visible true.
type Panel struct {
	panel *Node
	title *Node
	rows  []*Node
}

// Row ids in display order; the stylesheet positions them.
var panelRows = []string{"row-shape", "row-size", "row-material", "row-color", "row-image", "row-hole", "row-text", "row-rule"}

// NewPanel creates the panel nodes (classes .panel, .panel-title, .panel-row).
func NewPanel() *Panel {
	p := &Panel{
		panel: NewNode("panel", "panel", "", ""),
		title: NewNode("label", "panel-title", "", "Keychain"),
	}
	for _, id := range panelRows {
		p.rows = append(p.rows, NewNode("label", "panel-row", id, ""))
	}
	return p
}

// Lines formats m as the panel rows, in panelRows order.
func Lines(m *snapshot.Model) []string {
	if m == nil {
		return make([]string, len(panelRows))
	}
	d := m.Dimensions
	image := "Image: none"
	if m.ImageName != "" {
		image = "Image: " + m.ImageName
		if m.Rule == compositor.RuleSolid {
			image += " (decoding)"
		}
	}
	text := "Text: off"
	if t := m.TextLayer; t != nil {
		text = fmt.Sprintf("Text: %q %s %gpx", t.Text, t.FontFamily, t.FontSize)
	}
	return []string{
		"Shape: " + string(m.Shape),
		fmt.Sprintf("Size: %s %gx%gx%g cm", m.SizeID, d.Width, d.Height, d.Depth),
		"Material: " + m.MaterialID,
		"Color: " + m.ColorMode,
		image,
		fmt.Sprintf("Hole: %.2f, %.2f", m.Hole.X, m.Hole.Y),
		text,
		fmt.Sprintf("Rule: %s, %s layout, rev %d", m.Rule, m.Layout, m.Revision),
	}
}

// AppendNodes appends the panel nodes to dst when visible is true, after updating labels from m.
// When visible is false, dst is returned unchanged. Call every frame.
func (p *Panel) AppendNodes(dst []*Node, visible bool, m *snapshot.Model) []*Node {
	if !visible {
		return dst
	}
	dst = append(dst, p.panel, p.title)
	for i, line := range Lines(m) {
		p.rows[i].Text = line
		dst = append(dst, p.rows[i])
	}
	return dst
}
