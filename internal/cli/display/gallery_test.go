package display

import (
	"errors"
	"strings"
	"testing"

	"github.com/filipexyz/folio/internal/domain"
	"github.com/filipexyz/folio/internal/gallery"
)

func plainRenderer() *GalleryRenderer {
	return NewGalleryRenderer(NewColorizer(false))
}

func TestGalleryRenderer_Filters(t *testing.T) {
	got := plainRenderer().Filters(domain.FilterFor(domain.CategoryVideography))
	want := " 1 All Projects   2 Photography  [3 Videography]  4 3D Design "
	if got != want {
		t.Errorf("Filters() = %q, want %q", got, want)
	}

	if got := plainRenderer().Filters(""); !strings.HasPrefix(got, "[1 All Projects]") {
		t.Errorf("Filters(\"\") = %q, want all highlighted", got)
	}
}

func TestGalleryRenderer_State(t *testing.T) {
	remote := []domain.Project{
		{ID: "p1", Title: "Harbor at Dawn", Category: domain.CategoryPhotography, Featured: true, Description: "Long exposure"},
		{ID: "p2", Title: "Kinetic Type", Category: domain.CategoryVideography},
	}

	tests := []struct {
		name    string
		state   gallery.State
		want    []string
		notWant []string
	}{
		{
			name:    "loading hides projects",
			state:   gallery.State{Loading: true, Projects: remote},
			want:    []string{LoadingText},
			notWant: []string{"Harbor at Dawn", EmptyText},
		},
		{
			name:    "empty",
			state:   gallery.State{Source: gallery.SourceFallback},
			want:    []string{EmptyText},
			notWant: []string{LoadingText, "TITLE"},
		},
		{
			name:    "remote table",
			state:   gallery.State{Projects: remote, Source: gallery.SourceRemote},
			want:    []string{"TITLE", "Harbor at Dawn", "Photography", "Featured", "Kinetic Type", "p2"},
			notWant: []string{"sample projects"},
		},
		{
			name:  "fallback after empty response",
			state: gallery.State{Projects: gallery.FallbackProjects(), Source: gallery.SourceFallback},
			want:  []string{"Showing sample projects: the API returned no projects"},
		},
		{
			name:  "fallback after error",
			state: gallery.State{Projects: gallery.FallbackProjects(), Source: gallery.SourceFallback, Err: errors.New("connection refused")},
			want:  []string{"Showing sample projects: connection refused"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := plainRenderer().State(tt.state)
			for _, s := range tt.want {
				if !strings.Contains(got, s) {
					t.Errorf("output missing %q:\n%s", s, got)
				}
			}
			for _, s := range tt.notWant {
				if strings.Contains(got, s) {
					t.Errorf("output contains %q:\n%s", s, got)
				}
			}
		})
	}
}

func TestGalleryRenderer_ProjectsOrder(t *testing.T) {
	projects := []domain.Project{
		{ID: "b", Title: "Second by date", Category: domain.Category3DDesign},
		{ID: "a", Title: "First by date", Category: domain.Category3DDesign},
	}
	lines := strings.Split(strings.TrimSpace(plainRenderer().Projects(projects)), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3:\n%s", len(lines), strings.Join(lines, "\n"))
	}
	if !strings.HasPrefix(lines[1], "Second by date") || !strings.HasPrefix(lines[2], "First by date") {
		t.Errorf("rows reordered:\n%s", strings.Join(lines, "\n"))
	}
}
