// Package seed loads starter projects from a YAML file into an empty database.
package seed

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/filipexyz/folio/internal/db"
	"github.com/filipexyz/folio/internal/domain"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// Config is the seed file layout.
type Config struct {
	Projects []ProjectSeed `yaml:"projects"`
}

// ProjectSeed is one project entry in the seed file.
type ProjectSeed struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Category    string `yaml:"category"`
	Image       string `yaml:"image"`
	Featured    bool   `yaml:"featured"`
}

// Store is the storage the seeder writes to.
type Store interface {
	CountProjects(ctx context.Context) (int64, error)
	CreateProject(ctx context.Context, arg db.CreateProjectParams) (domain.Project, error)
}

// LoadConfig reads a YAML seed file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates seed YAML.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}
	for i, p := range cfg.Projects {
		if p.Title == "" {
			return nil, fmt.Errorf("seed project %d: title is required", i)
		}
		if _, err := domain.ParseCategory(p.Category); err != nil {
			return nil, fmt.Errorf("seed project %d (%s): %w", i, p.Title, err)
		}
	}
	return &cfg, nil
}

// Apply inserts every seed project when the store has no projects yet.
// It returns the number of projects inserted. Projects are stamped a
// millisecond apart so that listing order matches file order.
func Apply(ctx context.Context, store Store, cfg *Config) (int, error) {
	count, err := store.CountProjects(ctx)
	if err != nil {
		return 0, fmt.Errorf("count projects: %w", err)
	}
	if count > 0 {
		return 0, nil
	}

	now := time.Now().UTC()
	n := len(cfg.Projects)
	for i, p := range cfg.Projects {
		_, err := store.CreateProject(ctx, db.CreateProjectParams{
			ID:          uuid.New().String(),
			Title:       p.Title,
			Description: p.Description,
			Category:    domain.Category(p.Category),
			Image:       p.Image,
			Featured:    p.Featured,
			CreatedAt:   now.Add(-time.Duration(i) * time.Millisecond),
		})
		if err != nil {
			return i, fmt.Errorf("insert seed project %q: %w", p.Title, err)
		}
	}
	return n, nil
}
