package handler

import (
	"context"
	"encoding/base64"
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/filipexyz/folio/internal/audit"
	"github.com/filipexyz/folio/internal/db"
	"github.com/filipexyz/folio/internal/domain"
	"github.com/filipexyz/folio/internal/validate"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

const (
	maxImageSize  = 10 << 20 // 10MB
	maxUploadSize = maxImageSize + 1<<20
)

// ProjectStore is the storage used by ProjectHandler.
type ProjectStore interface {
	ListProjects(ctx context.Context) ([]domain.Project, error)
	ListProjectsByCategory(ctx context.Context, category domain.Category) ([]domain.Project, error)
	GetProject(ctx context.Context, id string) (domain.Project, error)
	CreateProject(ctx context.Context, arg db.CreateProjectParams) (domain.Project, error)
}

// ProjectHandler serves the project gallery.
type ProjectHandler struct {
	store     ProjectStore
	publisher EventPublisher
	auditor   Auditor
	now       func() time.Time
}

// NewProjectHandler creates a new ProjectHandler.
func NewProjectHandler(store ProjectStore, publisher EventPublisher, auditor Auditor) *ProjectHandler {
	return &ProjectHandler{
		store:     store,
		publisher: publisher,
		auditor:   auditor,
		now:       time.Now,
	}
}

// CreateProjectResponse is the response for POST /api/projects.
type CreateProjectResponse struct {
	Message string         `json:"message"`
	Project domain.Project `json:"project"`
}

// projectCreated is the project.created payload. The image is left out to
// keep events small.
type projectCreated struct {
	ID        string          `json:"id"`
	Title     string          `json:"title"`
	Category  domain.Category `json:"category"`
	Featured  bool            `json:"featured"`
	CreatedAt time.Time       `json:"created_at"`
}

// List returns all projects, or those of one category, newest first.
func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, err := domain.ParseFilter(r.URL.Query().Get("category"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var projects []domain.Project
	if cat, ok := filter.Category(); ok {
		projects, err = h.store.ListProjectsByCategory(r.Context(), cat)
	} else {
		projects, err = h.store.ListProjects(r.Context())
	}
	if err != nil {
		slog.Error("failed to list projects", "category", filter.String(), "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list projects")
		return
	}
	if projects == nil {
		projects = []domain.Project{}
	}

	writeJSON(w, http.StatusOK, domain.ProjectList{Projects: projects})
}

// Get returns a single project.
func (h *ProjectHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	project, err := h.store.GetProject(r.Context(), id)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Project not found")
			return
		}
		slog.Error("failed to get project", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to get project")
		return
	}

	writeJSON(w, http.StatusOK, project)
}

// Create stores a project uploaded as a multipart form. The image file is
// embedded in the project as a base64 data URI.
func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)

	if err := r.ParseMultipartForm(maxImageSize); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, http.StatusRequestEntityTooLarge, "upload too large, max 10MB")
			return
		}
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	defer r.MultipartForm.RemoveAll()

	title := strings.TrimSpace(r.FormValue("title"))
	description := strings.TrimSpace(r.FormValue("description"))
	category := strings.TrimSpace(r.FormValue("category"))

	featured := false
	if v := r.FormValue("featured"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "featured must be a boolean")
			return
		}
		featured = b
	}

	if err := validate.Validate(validate.Project, map[string]any{
		"title":       title,
		"description": description,
		"category":    category,
		"featured":    featured,
	}); err != nil {
		writeValidationError(w, err)
		return
	}

	image, err := readImage(r)
	if err != nil {
		var upErr *uploadError
		if errors.As(err, &upErr) {
			writeError(w, upErr.status, upErr.msg)
			return
		}
		writeError(w, http.StatusBadRequest, "failed to read image")
		return
	}

	project, err := h.store.CreateProject(r.Context(), db.CreateProjectParams{
		ID:          uuid.New().String(),
		Title:       title,
		Description: description,
		Category:    domain.Category(category),
		Image:       image,
		Featured:    featured,
		CreatedAt:   h.now().UTC(),
	})
	if err != nil {
		slog.Error("failed to create project", "title", title, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create project")
		return
	}

	publishEvent(r.Context(), h.publisher, domain.TopicProjectCreated, projectCreated{
		ID:        project.ID,
		Title:     project.Title,
		Category:  project.Category,
		Featured:  project.Featured,
		CreatedAt: project.CreatedAt,
	})

	recordAudit(r.Context(), h.auditor, audit.ActorAdmin, audit.ActionProjectCreate, project.ID, map[string]any{
		"title":    project.Title,
		"category": project.Category,
	})

	slog.Info("project created", "id", project.ID, "category", project.Category, "image_bytes", len(image))

	writeJSON(w, http.StatusCreated, CreateProjectResponse{
		Message: "Project created successfully",
		Project: project,
	})
}

type uploadError struct {
	status int
	msg    string
}

func (e *uploadError) Error() string {
	return e.msg
}

// readImage reads the "image" form file and encodes it as a data URI.
func readImage(r *http.Request) (string, error) {
	file, header, err := r.FormFile("image")
	if err != nil {
		return "", &uploadError{http.StatusBadRequest, "image is required"}
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxImageSize+1))
	if err != nil {
		return "", err
	}
	if len(data) == 0 {
		return "", &uploadError{http.StatusBadRequest, "image is empty"}
	}
	if len(data) > maxImageSize {
		return "", &uploadError{http.StatusRequestEntityTooLarge, "image too large, max 10MB"}
	}

	mimeType := http.DetectContentType(data)
	if declared := header.Header.Get("Content-Type"); mimeType == "application/octet-stream" && declared != "" {
		if mt, _, err := mime.ParseMediaType(declared); err == nil {
			mimeType = mt
		}
	}
	if i := strings.IndexByte(mimeType, ';'); i >= 0 {
		mimeType = mimeType[:i]
	}

	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

func writeValidationError(w http.ResponseWriter, err error) {
	var verr *validate.Error
	if errors.As(err, &verr) {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"error":  "validation failed",
			"fields": verr.Fields,
		})
		return
	}
	slog.Error("validation error", "error", err)
	writeError(w, http.StatusInternalServerError, "validation unavailable")
}
