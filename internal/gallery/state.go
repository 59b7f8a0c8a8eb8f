package gallery

import (
	"slices"

	"github.com/filipexyz/folio/internal/domain"
)

// Source records where the projects of a State came from.
type Source string

const (
	SourceNone     Source = ""
	SourceRemote   Source = "remote"
	SourceFallback Source = "fallback"
)

// State is an immutable snapshot of the gallery. A new value replaces the
// old one on every transition.
type State struct {
	Category domain.Filter
	Projects []domain.Project
	Loading  bool
	Err      error
	Source   Source
}

// ViewKind is what the gallery renders for a State.
type ViewKind int

const (
	// ViewLoading shows only a loading indicator.
	ViewLoading ViewKind = iota
	// ViewEmpty shows the "no projects" message.
	ViewEmpty
	// ViewProjects shows the project grid.
	ViewProjects
)

func (k ViewKind) String() string {
	switch k {
	case ViewLoading:
		return "loading"
	case ViewEmpty:
		return "empty"
	case ViewProjects:
		return "projects"
	}
	return "unknown"
}

// View is the renderable projection of a State.
type View struct {
	Kind     ViewKind
	Category domain.Filter
	Projects []domain.Project
}

// View derives what should be rendered. Projects are never exposed while loading.
func (s State) View() View {
	v := View{Category: s.Category}
	switch {
	case s.Loading:
		v.Kind = ViewLoading
	case len(s.Projects) == 0:
		v.Kind = ViewEmpty
	default:
		v.Kind = ViewProjects
		v.Projects = s.Projects
	}
	return v
}

// Featured returns the featured projects of s in order.
func (s State) Featured() []domain.Project {
	var out []domain.Project
	for _, p := range s.Projects {
		if p.Featured {
			out = append(out, p)
		}
	}
	return out
}

func (s State) clone() State {
	s.Projects = slices.Clone(s.Projects)
	return s
}
