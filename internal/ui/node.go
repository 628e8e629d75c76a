package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// Node is a single overlay element: a panel background or a text label. Class and ID select
// stylesheet rules; Bounds is resolved from the style on the next Draw.
type Node struct {
	Type   string // "panel" or "label"
	Class  string // matched by .class rules
	ID     string // matched by #id rules
	Bounds rl.Rectangle
	Text   string
}

// NewNode creates a node with type and optional class, id, and text.
func NewNode(typ, class, id, text string) *Node {
	return &Node{Type: typ, Class: class, ID: id, Text: text}
}
