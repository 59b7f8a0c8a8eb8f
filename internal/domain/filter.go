package domain

import "fmt"

// Filter selects which projects a gallery shows: "all" or a single Category.
type Filter string

// FilterAll passes every project through.
const FilterAll Filter = "all"

// Filters returns the gallery filter buttons in display order.
func Filters() []Filter {
	filters := []Filter{FilterAll}
	for _, c := range Categories() {
		filters = append(filters, FilterFor(c))
	}
	return filters
}

// FilterFor returns the filter that selects a single category.
func FilterFor(c Category) Filter {
	return Filter(c)
}

// ParseFilter converts user input into a Filter. The empty string means all.
func ParseFilter(s string) (Filter, error) {
	if s == "" || s == string(FilterAll) {
		return FilterAll, nil
	}
	c, err := ParseCategory(s)
	if err != nil {
		return "", fmt.Errorf("invalid filter %q: must be all or a category", s)
	}
	return FilterFor(c), nil
}

// String returns the wire value of the filter.
func (f Filter) String() string {
	return string(f)
}

// IsAll reports whether f passes every project through.
func (f Filter) IsAll() bool {
	return f == FilterAll || f == ""
}

// Category returns the selected category, or false when f is all.
func (f Filter) Category() (Category, bool) {
	if f.IsAll() {
		return "", false
	}
	return Category(f), true
}

// Matches reports whether p belongs in a gallery filtered by f.
func (f Filter) Matches(p Project) bool {
	c, ok := f.Category()
	return !ok || p.Category == c
}

// Apply returns the projects of src that match f, preserving order.
// The all filter returns src unchanged.
func (f Filter) Apply(src []Project) []Project {
	if f.IsAll() {
		return src
	}
	out := make([]Project, 0, len(src))
	for _, p := range src {
		if f.Matches(p) {
			out = append(out, p)
		}
	}
	return out
}

// Label returns the text shown on the filter button.
func (f Filter) Label() string {
	if c, ok := f.Category(); ok {
		return c.Label()
	}
	return "All Projects"
}
