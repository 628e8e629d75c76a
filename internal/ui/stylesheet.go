package ui

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultStyles []byte

// Rule is a single style rule: one selector (.class or #id) and raw property values.
type Rule struct {
	Selector string            `yaml:"selector"`
	Props    map[string]string `yaml:"props"`
}

// Stylesheet is a list of rules (order matters: later overrides earlier).
type Stylesheet struct {
	Rules []Rule `yaml:"rules"`
}

// ParseStylesheet decodes a YAML stylesheet. Rules whose selector is not .class or #id are dropped.
func ParseStylesheet(data []byte) (*Stylesheet, error) {
	var raw Stylesheet
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("ui: stylesheet: %w", err)
	}
	sheet := &Stylesheet{Rules: make([]Rule, 0, len(raw.Rules))}
	for _, r := range raw.Rules {
		if len(r.Selector) < 2 || (r.Selector[0] != '.' && r.Selector[0] != '#') {
			continue
		}
		if r.Props == nil {
			r.Props = map[string]string{}
		}
		sheet.Rules = append(sheet.Rules, r)
	}
	return sheet, nil
}

// LoadStylesheet reads and parses a YAML stylesheet file.
func LoadStylesheet(path string) (*Stylesheet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("ui: %w", err)
	}
	return ParseStylesheet(data)
}

// DefaultStylesheet is the embedded designer stylesheet.
func DefaultStylesheet() *Stylesheet {
	sheet, err := ParseStylesheet(defaultStyles)
	if err != nil {
		panic(err)
	}
	return sheet
}

// match reports whether the rule's selector applies to n.
func (r Rule) match(n *Node) bool {
	switch r.Selector[0] {
	case '.':
		return n.Class == r.Selector[1:]
	case '#':
		return n.ID == r.Selector[1:]
	}
	return false
}
