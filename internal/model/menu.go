package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// MenuCategory is the closed set of menu sections.
type MenuCategory int

const (
	Appetizer MenuCategory = iota
	Entree
	Dessert
	Beverage
	Side
)

var menuCategoryNames = [...]string{"Appetizer", "Entree", "Dessert", "Beverage", "Side"}

// MenuCategories lists every category in display order.
func MenuCategories() []MenuCategory {
	return []MenuCategory{Appetizer, Entree, Dessert, Beverage, Side}
}

func (c MenuCategory) String() string {
	if c < 0 || int(c) >= len(menuCategoryNames) {
		return fmt.Sprintf("MenuCategory(%d)", int(c))
	}
	return menuCategoryNames[c]
}

// ErrUnknownMenuCategory is returned for names outside the closed set.
var ErrUnknownMenuCategory = errors.New("unknown menu category")

// ParseMenuCategory matches a category name ignoring case.
func ParseMenuCategory(s string) (MenuCategory, error) {
	s = strings.TrimSpace(s)
	for i, name := range menuCategoryNames {
		if strings.EqualFold(name, s) {
			return MenuCategory(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMenuCategory, s)
}

func (c MenuCategory) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

func (c *MenuCategory) UnmarshalYAML(node *yaml.Node) error {
	parsed, err := ParseMenuCategory(node.Value)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// MenuItem is static reference data shown on the menu pages.
type MenuItem struct {
	ID           int          `json:"id" yaml:"id"`
	Name         string       `json:"name" yaml:"name"`
	Description  string       `json:"description" yaml:"description"`
	Price        Cents        `json:"price" yaml:"price"`
	Category     MenuCategory `json:"category" yaml:"category"`
	ImageURL     string       `json:"image_url,omitempty" yaml:"image_url"`
	IsAvailable  bool         `json:"is_available" yaml:"is_available"`
	IsSpecial    bool         `json:"is_special" yaml:"is_special"`
	CalorieCount *int         `json:"calorie_count,omitempty" yaml:"calorie_count"`
}

// FormattedPrice renders the price in dollars, e.g. "$12.50".
func (m MenuItem) FormattedPrice() string {
	return m.Price.String()
}

// MenuCatalog is the full menu, in file order.
type MenuCatalog struct {
	Items []MenuItem `yaml:"items"`
}

// ByCategory returns the items in category c, preserving order.
func (m *MenuCatalog) ByCategory(c MenuCategory) []MenuItem {
	var out []MenuItem
	for _, item := range m.Items {
		if item.Category == c {
			out = append(out, item)
		}
	}
	return out
}

// LoadMenuCatalog reads a YAML menu file. A missing file yields an empty catalog.
func LoadMenuCatalog(path string) (*MenuCatalog, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &MenuCatalog{}, nil
		}
		return nil, fmt.Errorf("read menu %s: %w", path, err)
	}
	var catalog MenuCatalog
	if err := yaml.Unmarshal(b, &catalog); err != nil {
		return nil, fmt.Errorf("parse menu %s: %w", path, err)
	}
	return &catalog, nil
}
