package web

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed menu.yaml
var menuYAML []byte

// MenuItem is one sidebar entry.
type MenuItem struct {
	ID        string   `yaml:"id"`
	Label     string   `yaml:"label"`
	Href      string   `yaml:"href"`
	HiddenFor []string `yaml:"hidden_for"`
}

// Menu is the full sidebar before role filtering.
type Menu []MenuItem

// NavItem is a MenuItem resolved for one request.
type NavItem struct {
	ID     string
	Label  string
	Href   string
	Active bool
}

// LoadMenu parses the embedded sidebar definition.
func LoadMenu() (Menu, error) {
	return ParseMenu(menuYAML)
}

func ParseMenu(data []byte) (Menu, error) {
	var m Menu
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse menu: %w", err)
	}
	for i, item := range m {
		if item.ID == "" || item.Href == "" {
			return nil, fmt.Errorf("menu item %d: id and href are required", i)
		}
	}
	return m, nil
}

// For returns the entries visible to nivel, marking active as current.
func (m Menu) For(nivel, active string) []NavItem {
	out := make([]NavItem, 0, len(m))
	for _, item := range m {
		if item.hiddenFor(nivel) {
			continue
		}
		out = append(out, NavItem{ID: item.ID, Label: item.Label, Href: item.Href, Active: item.ID == active})
	}
	return out
}

// Allows reports whether nivel may open the entry with the given id.
// Unknown ids are allowed.
func (m Menu) Allows(nivel, id string) bool {
	for _, item := range m {
		if item.ID == id {
			return !item.hiddenFor(nivel)
		}
	}
	return true
}

func (item MenuItem) hiddenFor(nivel string) bool {
	for _, n := range item.HiddenFor {
		if n == nivel {
			return true
		}
	}
	return false
}
