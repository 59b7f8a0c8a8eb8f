package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/filipexyz/folio/internal/cli/display"
	"github.com/filipexyz/folio/internal/domain"
	"github.com/filipexyz/folio/internal/gallery"
	"github.com/filipexyz/folio/pkg/client"
	"github.com/spf13/cobra"
)

var (
	listCategory string

	createTitle       string
	createDescription string
	createCategory    string
	createFeatured    bool
	createImage       string
)

// galleryOutput is the JSON form of a gallery state.
type galleryOutput struct {
	Category string           `json:"category"`
	Loading  bool             `json:"loading"`
	Source   string           `json:"source,omitempty"`
	Error    string           `json:"error,omitempty"`
	Projects []domain.Project `json:"projects"`
}

func newGalleryOutput(s gallery.State) galleryOutput {
	v := s.View()
	o := galleryOutput{
		Category: v.Category.String(),
		Loading:  s.Loading,
		Source:   string(s.Source),
		Projects: v.Projects,
	}
	if s.Err != nil {
		o.Error = s.Err.Error()
	}
	if o.Projects == nil {
		o.Projects = []domain.Project{}
	}
	return o
}

func newGallery(f domain.Filter) *gallery.Controller {
	return gallery.NewController(
		gallery.NewClientFetcher(getClient()),
		gallery.WithInitialFilter(f),
		gallery.WithLogger(logger),
	)
}

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "Browse and upload portfolio projects",
}

var projectsListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the project gallery",
	Long: `Show the project gallery for a category filter.

When the API is unreachable or has no projects for the filter, the bundled
sample projects are shown instead.`,
	Run: func(cmd *cobra.Command, args []string) {
		f, err := domain.ParseFilter(strings.ToLower(listCategory))
		if err != nil {
			out.Error("%v", err)
			return
		}

		ctrl := newGallery(f)
		renderer := display.NewGalleryRenderer(colors)

		unsubscribe := ctrl.Subscribe(func(s gallery.State) {
			if s.Loading {
				out.Print(renderer.State(s))
			}
		})
		s := ctrl.Start(cmd.Context())
		unsubscribe()

		if jsonOutput {
			printJSON(newGalleryOutput(s))
			return
		}

		out.Print(renderer.Filters(s.Category) + "\n\n")
		out.Print(renderer.State(s))
	},
}

var projectsGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show a single project",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		p, err := getClient().GetProject(cmd.Context(), args[0])
		if err != nil {
			var notFound *client.NotFoundError
			if errors.As(err, &notFound) {
				out.Error("Project not found: %s", args[0])
			} else {
				out.Error("Failed to get project: %v", err)
			}
			return
		}

		if jsonOutput {
			printJSON(p)
			return
		}
		printProject(p)
	},
}

var projectsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Upload a new project",
	Long:  `Upload a new project with an image file. Requires the admin token (see folio auth).`,
	Run: func(cmd *cobra.Command, args []string) {
		category, err := domain.ParseCategory(strings.ToLower(createCategory))
		if err != nil {
			out.Error("%v", err)
			return
		}

		f, err := os.Open(createImage)
		if err != nil {
			out.Error("Failed to open image: %v", err)
			return
		}
		defer f.Close()

		resp, err := getClient().CreateProject(cmd.Context(), client.CreateProjectInput{
			Title:       createTitle,
			Description: createDescription,
			Category:    category.String(),
			Featured:    createFeatured,
			ImageName:   filepath.Base(createImage),
			Image:       f,
		})
		if err != nil {
			var authErr *client.AuthError
			if errors.As(err, &authErr) {
				out.Error("Not authorized: %v (save a token with folio auth)", authErr.Message)
			} else {
				out.Error("Failed to create project: %v", err)
			}
			return
		}

		if jsonOutput {
			printJSON(resp)
			return
		}

		out.Success("%s", resp.Message)
		out.KeyValue("ID", resp.Project.ID)
		out.KeyValue("Title", resp.Project.Title)
		out.KeyValue("Category", domain.Category(resp.Project.Category).Label())
	},
}

func printProject(p *client.Project) {
	out.Header(p.Title)
	out.KeyValue("ID", p.ID)
	out.KeyValue("Category", domain.Category(p.Category).Label())
	out.KeyValue("Featured", fmt.Sprintf("%t", p.Featured))
	out.KeyValue("Created", p.CreatedAt.Local().Format(time.RFC1123))
	if p.Description != "" {
		out.KeyValue("Description", p.Description)
	}
	out.KeyValue("Image", summarizeImage(p.Image))
}

// summarizeImage shortens data URIs to their media type and size.
func summarizeImage(uri string) string {
	if !strings.HasPrefix(uri, "data:") {
		return uri
	}
	header, payload, ok := strings.Cut(uri, ",")
	if !ok {
		return "data URI"
	}
	return fmt.Sprintf("%s (%d bytes encoded)", header, len(payload))
}

func init() {
	projectsListCmd.Flags().StringVarP(&listCategory, "category", "c", "all", "filter: all, photography, videography or 3d_design")

	projectsCreateCmd.Flags().StringVar(&createTitle, "title", "", "project title")
	projectsCreateCmd.Flags().StringVar(&createDescription, "description", "", "project description")
	projectsCreateCmd.Flags().StringVar(&createCategory, "category", "", "photography, videography or 3d_design")
	projectsCreateCmd.Flags().BoolVar(&createFeatured, "featured", false, "mark the project as featured")
	projectsCreateCmd.Flags().StringVar(&createImage, "image", "", "path to the image file")
	projectsCreateCmd.MarkFlagRequired("title")
	projectsCreateCmd.MarkFlagRequired("category")
	projectsCreateCmd.MarkFlagRequired("image")

	projectsCmd.AddCommand(projectsListCmd)
	projectsCmd.AddCommand(projectsGetCmd)
	projectsCmd.AddCommand(projectsCreateCmd)
	rootCmd.AddCommand(projectsCmd)
}
