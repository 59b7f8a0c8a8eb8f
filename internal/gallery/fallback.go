package gallery

import (
	"time"

	"github.com/filipexyz/folio/internal/domain"
)

// fallbackCreatedAt stamps every fallback project with the process start time.
var fallbackCreatedAt = time.Now().UTC()

// FallbackProjects returns the bundled sample projects shown when the API is
// unavailable or has nothing to show. Every call returns a fresh slice.
func FallbackProjects() []domain.Project {
	return []domain.Project{
		{
			ID:          "1",
			Title:       "Urban Photography Series",
			Description: "A collection of urban landscape photographs capturing the essence of city life.",
			Category:    domain.CategoryPhotography,
			Image:       "https://images.unsplash.com/photo-1449824913935-59a10b8d2000?w=800&q=80",
			Featured:    true,
			CreatedAt:   fallbackCreatedAt,
		},
		{
			ID:          "2",
			Title:       "Corporate Video Production",
			Description: "Professional corporate video showcasing company culture and values.",
			Category:    domain.CategoryVideography,
			Image:       "https://images.unsplash.com/photo-1492619392975-8b37776069ab?w=800&q=80",
			Featured:    false,
			CreatedAt:   fallbackCreatedAt,
		},
		{
			ID:          "3",
			Title:       "3D Product Visualization",
			Description: "Detailed 3D renders for product marketing and visualization.",
			Category:    domain.Category3DDesign,
			Image:       "https://images.unsplash.com/photo-1618005182384-a83a8bd57fbe?w=800&q=80",
			Featured:    true,
			CreatedAt:   fallbackCreatedAt,
		},
		{
			ID:          "4",
			Title:       "Portrait Photography",
			Description: "Professional portrait sessions with creative lighting and composition.",
			Category:    domain.CategoryPhotography,
			Image:       "https://images.unsplash.com/photo-1507003211169-0a1dd7228f2d?w=800&q=80",
			Featured:    false,
			CreatedAt:   fallbackCreatedAt,
		},
		{
			ID:          "5",
			Title:       "Brand Video Campaign",
			Description: "Creative video campaign for brand awareness and engagement.",
			Category:    domain.CategoryVideography,
			Image:       "https://images.unsplash.com/photo-1574717024653-61fd2cf4d44d?w=800&q=80",
			Featured:    false,
			CreatedAt:   fallbackCreatedAt,
		},
		{
			ID:          "6",
			Title:       "Architectural 3D Render",
			Description: "Photorealistic 3D architectural visualization for construction projects.",
			Category:    domain.Category3DDesign,
			Image:       "https://images.unsplash.com/photo-1486406146926-c627a92ad1ab?w=800&q=80",
			Featured:    true,
			CreatedAt:   fallbackCreatedAt,
		},
	}
}

// ResolveProjects picks the project source for a render: the remote result
// verbatim when it is non-empty, otherwise the fallback dataset filtered by
// filter. A nil remote means the fetch failed or returned no list.
func ResolveProjects(remote []domain.Project, filter domain.Filter) ([]domain.Project, Source) {
	if len(remote) > 0 {
		return remote, SourceRemote
	}
	return filter.Apply(FallbackProjects()), SourceFallback
}
