package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Project represents a portfolio project.
type Project struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Image       string    `json:"image"`
	Featured    bool      `json:"featured"`
	CreatedAt   time.Time `json:"created_at"`
}

// ProjectList is the response from listing projects. Projects is nil when
// the server omitted the field.
type ProjectList struct {
	Projects []Project `json:"projects"`
}

// CreateProjectInput describes a project upload.
type CreateProjectInput struct {
	Title       string
	Description string
	Category    string
	Featured    bool
	ImageName   string
	Image       io.Reader
}

// CreateProjectResponse is the response from creating a project.
type CreateProjectResponse struct {
	Message string  `json:"message"`
	Project Project `json:"project"`
}

// ListProjects lists projects, optionally restricted to one category.
// An empty category lists every project.
func (c *Client) ListProjects(ctx context.Context, category string) (*ProjectList, error) {
	u, err := url.Parse(c.server + "/api/projects")
	if err != nil {
		return nil, err
	}
	if category != "" {
		q := u.Query()
		q.Set("category", category)
		u.RawQuery = q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.do(req, "failed to list projects", http.StatusOK)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var result ProjectList
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode project list: %w", err)
	}

	return &result, nil
}

// GetProject retrieves a single project by ID.
func (c *Client) GetProject(ctx context.Context, id string) (*Project, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.server+"/api/projects/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.do(req, "failed to get project", http.StatusOK)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var project Project
	if err := json.NewDecoder(resp.Body).Decode(&project); err != nil {
		return nil, fmt.Errorf("decode project: %w", err)
	}

	return &project, nil
}

// CreateProject uploads a new project as a multipart form.
func (c *Client) CreateProject(ctx context.Context, in CreateProjectInput) (*CreateProjectResponse, error) {
	if in.Image == nil {
		return nil, fmt.Errorf("image is required")
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	fields := []struct{ name, value string }{
		{"title", in.Title},
		{"description", in.Description},
		{"category", in.Category},
		{"featured", strconv.FormatBool(in.Featured)},
	}
	for _, f := range fields {
		if err := mw.WriteField(f.name, f.value); err != nil {
			return nil, err
		}
	}

	name := in.ImageName
	if name == "" {
		name = "image"
	}
	part, err := mw.CreateFormFile("image", name)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, in.Image); err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.server+"/api/projects", &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	c.setAuthHeaders(req)

	resp, err := c.do(req, "failed to create project", http.StatusOK, http.StatusCreated)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var result CreateProjectResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}

	return &result, nil
}
