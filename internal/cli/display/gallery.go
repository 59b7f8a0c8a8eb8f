package display

import (
	"fmt"
	"strings"

	"github.com/filipexyz/folio/internal/domain"
	"github.com/filipexyz/folio/internal/gallery"
)

// Messages shown instead of the project table.
const (
	LoadingText = "Loading projects..."
	EmptyText   = "No projects found for this category."
)

// GalleryRenderer draws gallery states for the terminal.
type GalleryRenderer struct {
	colorizer *Colorizer
}

// NewGalleryRenderer creates a renderer using colorizer.
func NewGalleryRenderer(colorizer *Colorizer) *GalleryRenderer {
	return &GalleryRenderer{colorizer: colorizer}
}

// Filters renders the numbered filter buttons, highlighting active.
func (r *GalleryRenderer) Filters(active domain.Filter) string {
	if active == "" {
		active = domain.FilterAll
	}
	parts := make([]string, 0, len(domain.Filters()))
	for i, f := range domain.Filters() {
		label := fmt.Sprintf("%d %s", i+1, f.Label())
		if f == active {
			parts = append(parts, r.colorizer.Button(label, "primary"))
		} else {
			parts = append(parts, r.colorizer.Dim(" "+label+" "))
		}
	}
	return strings.Join(parts, " ")
}

// State renders the view for s: a loading line, the empty message or the
// project table. A note follows the table when the bundled samples were used.
func (r *GalleryRenderer) State(s gallery.State) string {
	v := s.View()
	switch v.Kind {
	case gallery.ViewLoading:
		return r.colorizer.Dim(LoadingText) + "\n"
	case gallery.ViewEmpty:
		return EmptyText + "\n"
	}

	var b strings.Builder
	b.WriteString(r.Projects(v.Projects))
	if s.Source == gallery.SourceFallback {
		note := "Showing sample projects: the API returned no projects"
		if s.Err != nil {
			note = fmt.Sprintf("Showing sample projects: %v", s.Err)
		}
		b.WriteString(r.colorizer.Color(note, "warn"))
		b.WriteByte('\n')
	}
	return b.String()
}

// Projects renders projects as a table in the order given.
func (r *GalleryRenderer) Projects(projects []domain.Project) string {
	t := NewTable(r.colorizer,
		Column{Title: "TITLE", Width: 28, Color: "white"},
		Column{Title: "CATEGORY", Width: 12, Color: "primary"},
		Column{Title: "FEATURED", Width: 8, Color: "badge"},
		Column{Title: "DESCRIPTION", Width: 48},
		Column{Title: "ID", Color: "muted"},
	)

	rows := make([][]string, 0, len(projects))
	for _, p := range projects {
		featured := ""
		if p.Featured {
			featured = "Featured"
		}
		rows = append(rows, []string{p.Title, p.Category.Label(), featured, p.Description, p.ID})
	}
	return t.Render(rows)
}
