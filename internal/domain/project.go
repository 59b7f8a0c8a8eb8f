package domain

import (
	"fmt"
	"time"
)

// Category is the closed set of portfolio project categories.
type Category string

const (
	CategoryPhotography Category = "photography"
	CategoryVideography Category = "videography"
	Category3DDesign    Category = "3d_design"
)

// Categories returns every category in display order.
func Categories() []Category {
	return []Category{CategoryPhotography, CategoryVideography, Category3DDesign}
}

// String returns the wire value of the category.
func (c Category) String() string {
	return string(c)
}

// Valid reports whether c is a member of the closed category set.
func (c Category) Valid() bool {
	switch c {
	case CategoryPhotography, CategoryVideography, Category3DDesign:
		return true
	}
	return false
}

// Label returns the human readable category name.
func (c Category) Label() string {
	switch c {
	case CategoryPhotography:
		return "Photography"
	case CategoryVideography:
		return "Videography"
	case Category3DDesign:
		return "3D Design"
	}
	return string(c)
}

// ParseCategory converts a wire value into a Category.
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !c.Valid() {
		return "", fmt.Errorf("invalid category %q: must be one of photography, videography, 3d_design", s)
	}
	return c, nil
}

// Project is a single portfolio entry. Values are treated as immutable once built.
type Project struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    Category  `json:"category"`
	Image       string    `json:"image"`
	Featured    bool      `json:"featured"`
	CreatedAt   time.Time `json:"created_at"`
}

// ProjectList wraps a project listing the way the API returns it.
type ProjectList struct {
	Projects []Project `json:"projects"`
}
