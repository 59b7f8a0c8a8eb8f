package gallery

import (
	"context"

	"github.com/filipexyz/folio/internal/domain"
	"github.com/filipexyz/folio/pkg/client"
)

// Fetcher loads projects from a remote source. category is nil for the all
// filter. A nil slice with a nil error means the source returned no list.
type Fetcher interface {
	FetchProjects(ctx context.Context, category *domain.Category) ([]domain.Project, error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context, category *domain.Category) ([]domain.Project, error)

func (f FetcherFunc) FetchProjects(ctx context.Context, category *domain.Category) ([]domain.Project, error) {
	return f(ctx, category)
}

// ProjectLister is the part of the API client the gallery needs.
type ProjectLister interface {
	ListProjects(ctx context.Context, category string) (*client.ProjectList, error)
}

// ClientFetcher fetches projects through the folio API client.
type ClientFetcher struct {
	client ProjectLister
}

// NewClientFetcher creates a Fetcher backed by the API client.
func NewClientFetcher(c ProjectLister) *ClientFetcher {
	return &ClientFetcher{client: c}
}

// FetchProjects implements Fetcher.
func (f *ClientFetcher) FetchProjects(ctx context.Context, category *domain.Category) ([]domain.Project, error) {
	var cat string
	if category != nil {
		cat = category.String()
	}

	list, err := f.client.ListProjects(ctx, cat)
	if err != nil {
		return nil, err
	}
	if list == nil || list.Projects == nil {
		return nil, nil
	}

	projects := make([]domain.Project, len(list.Projects))
	for i, p := range list.Projects {
		projects[i] = domain.Project{
			ID:          p.ID,
			Title:       p.Title,
			Description: p.Description,
			Category:    domain.Category(p.Category),
			Image:       p.Image,
			Featured:    p.Featured,
			CreatedAt:   p.CreatedAt,
		}
	}
	return projects, nil
}
