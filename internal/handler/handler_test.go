package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/filipexyz/folio/internal/db"
	"github.com/filipexyz/folio/internal/domain"
	"github.com/go-chi/chi/v5"
)

type memStore struct {
	mu          sync.Mutex
	projects    []domain.Project
	messages    []domain.ContactMessage
	audit       []domain.AuditEntry
	auditParams db.ListAuditLogsParams
	err         error
}

func (m *memStore) ListProjects(ctx context.Context) ([]domain.Project, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.projects, nil
}

func (m *memStore) ListProjectsByCategory(ctx context.Context, category domain.Category) ([]domain.Project, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []domain.Project
	for _, p := range m.projects {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memStore) GetProject(ctx context.Context, id string) (domain.Project, error) {
	for _, p := range m.projects {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.Project{}, db.ErrNotFound
}

func (m *memStore) CreateProject(ctx context.Context, arg db.CreateProjectParams) (domain.Project, error) {
	if m.err != nil {
		return domain.Project{}, m.err
	}
	p := domain.Project{
		ID:          arg.ID,
		Title:       arg.Title,
		Description: arg.Description,
		Category:    arg.Category,
		Image:       arg.Image,
		Featured:    arg.Featured,
		CreatedAt:   arg.CreatedAt,
	}
	m.mu.Lock()
	m.projects = append(m.projects, p)
	m.mu.Unlock()
	return p, nil
}

func (m *memStore) CreateContactMessage(ctx context.Context, arg db.CreateContactMessageParams) (domain.ContactMessage, error) {
	if m.err != nil {
		return domain.ContactMessage{}, m.err
	}
	msg := domain.ContactMessage{ID: arg.ID, Name: arg.Name, Email: arg.Email, Message: arg.Message, CreatedAt: arg.CreatedAt}
	m.mu.Lock()
	m.messages = append([]domain.ContactMessage{msg}, m.messages...)
	m.mu.Unlock()
	return msg, nil
}

func (m *memStore) ListContactMessages(ctx context.Context) ([]domain.ContactMessage, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.messages, nil
}

func (m *memStore) ListAuditLogs(ctx context.Context, arg db.ListAuditLogsParams) ([]domain.AuditEntry, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.auditParams = arg
	return m.audit, nil
}

type auditRecord struct {
	actor, action, target string
	detail                map[string]any
}

type recordingAuditor struct {
	mu      sync.Mutex
	records []auditRecord
}

func (a *recordingAuditor) Log(ctx context.Context, actor, action, target string, detail map[string]any) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.records = append(a.records, auditRecord{actor, action, target, detail})
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []*domain.Event
	err    error
}

func (p *recordingPublisher) Publish(ctx context.Context, event *domain.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return p.err
}

func newRouter(store *memStore, pub EventPublisher) http.Handler {
	return newAuditedRouter(store, pub, nil)
}

func newAuditedRouter(store *memStore, pub EventPublisher, aud Auditor) http.Handler {
	projects := NewProjectHandler(store, pub, aud)
	contact := NewContactHandler(store, pub, aud)
	auditLog := NewAuditHandler(store)

	r := chi.NewRouter()
	r.Get("/api/projects", projects.List)
	r.Get("/api/projects/{id}", projects.Get)
	r.Post("/api/projects", projects.Create)
	r.Post("/api/contact", contact.Submit)
	r.Get("/api/contact", contact.List)
	r.Get("/api/audit", auditLog.List)
	return r
}

func sampleStore() *memStore {
	now := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	return &memStore{projects: []domain.Project{
		{ID: "a", Title: "Skyline", Category: domain.CategoryPhotography, CreatedAt: now},
		{ID: "b", Title: "Promo", Category: domain.CategoryVideography, CreatedAt: now},
	}}
}

func TestProjectHandler_List(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantStatus int
		wantIDs    []string
	}{
		{"all", "", http.StatusOK, []string{"a", "b"}},
		{"explicit all", "?category=all", http.StatusOK, []string{"a", "b"}},
		{"photography", "?category=photography", http.StatusOK, []string{"a"}},
		{"empty category", "?category=3d_design", http.StatusOK, []string{}},
		{"invalid", "?category=painting", http.StatusBadRequest, nil},
	}

	router := newRouter(sampleStore(), nil)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/api/projects"+tt.query, nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d: %s", w.Code, tt.wantStatus, w.Body.String())
			}
			if tt.wantIDs == nil {
				return
			}

			var resp struct {
				Projects []domain.Project `json:"projects"`
			}
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if resp.Projects == nil {
				t.Fatal("projects field must be present")
			}
			if len(resp.Projects) != len(tt.wantIDs) {
				t.Fatalf("got %d projects, want %d", len(resp.Projects), len(tt.wantIDs))
			}
			for i, id := range tt.wantIDs {
				if resp.Projects[i].ID != id {
					t.Errorf("projects[%d] = %q, want %q", i, resp.Projects[i].ID, id)
				}
			}
		})
	}
}

func TestProjectHandler_ListStoreError(t *testing.T) {
	router := newRouter(&memStore{err: errors.New("db down")}, nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/api/projects", nil))

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", w.Code)
	}
}

func TestProjectHandler_Get(t *testing.T) {
	router := newRouter(sampleStore(), nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/api/projects/b", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var p domain.Project
	json.NewDecoder(w.Body).Decode(&p)
	if p.Title != "Promo" {
		t.Errorf("title = %q", p.Title)
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/api/projects/missing", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Project not found") {
		t.Errorf("body = %s", w.Body.String())
	}
}

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func multipartBody(t *testing.T, fields map[string]string, image []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		mw.WriteField(k, v)
	}
	if image != nil {
		fw, err := mw.CreateFormFile("image", "shot.png")
		if err != nil {
			t.Fatal(err)
		}
		fw.Write(image)
	}
	mw.Close()
	return &buf, mw.FormDataContentType()
}

func TestProjectHandler_Create(t *testing.T) {
	store := &memStore{}
	pub := &recordingPublisher{}
	aud := &recordingAuditor{}
	router := newAuditedRouter(store, pub, aud)

	body, contentType := multipartBody(t, map[string]string{
		"title":       "Harbor at Dawn",
		"description": "Long exposure",
		"category":    "photography",
		"featured":    "true",
	}, pngHeader)

	req := httptest.NewRequest("POST", "/api/projects", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", w.Code, w.Body.String())
	}

	var resp CreateProjectResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Message != "Project created successfully" {
		t.Errorf("message = %q", resp.Message)
	}
	if len(resp.Project.ID) != 36 {
		t.Errorf("expected UUID id, got %q", resp.Project.ID)
	}
	if !strings.HasPrefix(resp.Project.Image, "data:image/png;base64,") {
		t.Errorf("image = %.40q", resp.Project.Image)
	}
	if !resp.Project.Featured || resp.Project.Category != domain.CategoryPhotography {
		t.Errorf("project = %+v", resp.Project)
	}
	if len(store.projects) != 1 {
		t.Errorf("stored %d projects, want 1", len(store.projects))
	}

	if len(pub.events) != 1 || pub.events[0].Topic != domain.TopicProjectCreated {
		t.Fatalf("events = %+v", pub.events)
	}
	if strings.Contains(string(pub.events[0].Data), "base64") {
		t.Error("project.created event should not carry the image")
	}

	if len(aud.records) != 1 {
		t.Fatalf("audit records = %+v", aud.records)
	}
	if rec := aud.records[0]; rec.actor != "admin" || rec.action != "project.create" || rec.target != resp.Project.ID || rec.detail["title"] != "Harbor at Dawn" {
		t.Errorf("audit record = %+v", rec)
	}
}

func TestProjectHandler_CreateInvalid(t *testing.T) {
	tests := []struct {
		name       string
		fields     map[string]string
		image      []byte
		wantStatus int
	}{
		{"missing title", map[string]string{"category": "photography"}, pngHeader, http.StatusUnprocessableEntity},
		{"bad category", map[string]string{"title": "X", "category": "painting"}, pngHeader, http.StatusUnprocessableEntity},
		{"bad featured", map[string]string{"title": "X", "category": "photography", "featured": "maybe"}, pngHeader, http.StatusBadRequest},
		{"missing image", map[string]string{"title": "X", "category": "photography"}, nil, http.StatusBadRequest},
		{"empty image", map[string]string{"title": "X", "category": "photography"}, []byte{}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &memStore{}
			router := newRouter(store, nil)

			body, contentType := multipartBody(t, tt.fields, tt.image)
			req := httptest.NewRequest("POST", "/api/projects", body)
			req.Header.Set("Content-Type", contentType)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d: %s", w.Code, tt.wantStatus, w.Body.String())
			}
			if len(store.projects) != 0 {
				t.Error("invalid upload was stored")
			}
		})
	}

	t.Run("not multipart", func(t *testing.T) {
		router := newRouter(&memStore{}, nil)
		req := httptest.NewRequest("POST", "/api/projects", strings.NewReader(`{"title":"X"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", w.Code)
		}
	})
}

func TestContactHandler_Submit(t *testing.T) {
	store := &memStore{}
	pub := &recordingPublisher{err: errors.New("nats down")}
	router := newRouter(store, pub)

	body := `{"name":"  Ada ","email":"ada@example.com","message":"Hi there"}`
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("POST", "/api/contact", strings.NewReader(body)))

	// A publish failure does not fail the request.
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}

	var resp domain.ContactResponse
	json.NewDecoder(w.Body).Decode(&resp)
	if resp.Message != "Contact message submitted successfully" || resp.ID == "" {
		t.Errorf("resp = %+v", resp)
	}
	if len(store.messages) != 1 || store.messages[0].Name != "Ada" {
		t.Errorf("stored = %+v", store.messages)
	}
	if len(pub.events) != 1 || pub.events[0].Topic != domain.TopicContactSubmitted {
		t.Errorf("events = %+v", pub.events)
	}
}

func TestContactHandler_SubmitInvalid(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{"bad json", `{"name":`, http.StatusBadRequest},
		{"bad email", `{"name":"Ada","email":"nope","message":"Hi"}`, http.StatusUnprocessableEntity},
		{"blank message", `{"name":"Ada","email":"ada@example.com","message":"   "}`, http.StatusUnprocessableEntity},
		{"too large", `{"name":"Ada","email":"ada@example.com","message":"` + strings.Repeat("x", maxContactSize) + `"}`, http.StatusRequestEntityTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &memStore{}
			router := newRouter(store, nil)

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest("POST", "/api/contact", strings.NewReader(tt.body)))

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d: %s", w.Code, tt.wantStatus, w.Body.String())
			}
			if len(store.messages) != 0 {
				t.Error("invalid message was stored")
			}
		})
	}
}

func TestContactHandler_List(t *testing.T) {
	store := &memStore{}
	aud := &recordingAuditor{}
	router := newAuditedRouter(store, nil, aud)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/api/contact", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if strings.TrimSpace(w.Body.String()) != `{"messages":[]}` {
		t.Errorf("body = %s", w.Body.String())
	}

	for _, name := range []string{"First", "Second"} {
		body := `{"name":"` + name + `","email":"x@example.com","message":"hello"}`
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("POST", "/api/contact", strings.NewReader(body)))
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/api/contact", nil))
	var resp ContactMessageList
	json.NewDecoder(w.Body).Decode(&resp)
	if len(resp.Messages) != 2 || resp.Messages[0].Name != "Second" {
		t.Errorf("messages = %+v, want newest first", resp.Messages)
	}

	var actions []string
	for _, rec := range aud.records {
		actions = append(actions, rec.action)
	}
	want := []string{"contact.list", "contact.submit", "contact.submit", "contact.list"}
	if strings.Join(actions, ",") != strings.Join(want, ",") {
		t.Errorf("audit actions = %v, want %v", actions, want)
	}
	if last := aud.records[len(aud.records)-1]; last.detail["count"] != 2 {
		t.Errorf("last list detail = %v", last.detail)
	}
}

func TestAuditHandler_List(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	store := &memStore{audit: []domain.AuditEntry{
		{ID: 2, Timestamp: now, Actor: "admin", Action: "project.create", Target: "p1"},
		{ID: 1, Timestamp: now.Add(-time.Minute), Actor: "visitor", Action: "contact.submit"},
	}}

	h := NewAuditHandler(store)
	h.now = func() time.Time { return now }
	r := chi.NewRouter()
	r.Get("/api/audit", h.List)

	tests := []struct {
		name       string
		query      string
		wantStatus int
		check      func(t *testing.T, p db.ListAuditLogsParams)
	}{
		{
			name:       "defaults",
			wantStatus: http.StatusOK,
			check: func(t *testing.T, p db.ListAuditLogsParams) {
				if p.Limit != 50 || p.Action.Valid || p.Since.Valid {
					t.Errorf("params = %+v", p)
				}
			},
		},
		{
			name:       "filters",
			query:      "?action=project.create&since=1h&limit=10",
			wantStatus: http.StatusOK,
			check: func(t *testing.T, p db.ListAuditLogsParams) {
				if p.Limit != 10 || p.Action.String != "project.create" || !p.Since.Time.Equal(now.Add(-time.Hour)) {
					t.Errorf("params = %+v", p)
				}
			},
		},
		{
			name:       "out of range limit uses default",
			query:      "?limit=5000",
			wantStatus: http.StatusOK,
			check: func(t *testing.T, p db.ListAuditLogsParams) {
				if p.Limit != 50 {
					t.Errorf("limit = %d", p.Limit)
				}
			},
		},
		{name: "bad since", query: "?since=yesterday", wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest("GET", "/api/audit"+tt.query, nil))
			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d: %s", w.Code, tt.wantStatus, w.Body.String())
			}
			if tt.check == nil {
				return
			}
			tt.check(t, store.auditParams)

			var resp AuditList
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if resp.Count != 2 || resp.Entries[0].ID != 2 {
				t.Errorf("resp = %+v", resp)
			}
		})
	}
}

type fakePinger struct{ err error }

func (p fakePinger) Ping(ctx context.Context) error { return p.err }

type fakeConn bool

func (c fakeConn) IsConnected() bool { return bool(c) }

func TestHealthHandler(t *testing.T) {
	w := httptest.NewRecorder()
	NewHealthHandler(fakePinger{}, nil).Health(w, httptest.NewRequest("GET", "/api/health", nil))
	if strings.TrimSpace(w.Body.String()) != `{"message":"Portfolio API is running","status":"healthy"}` {
		t.Errorf("health body = %s", w.Body.String())
	}

	tests := []struct {
		name       string
		db         Pinger
		events     ConnChecker
		wantStatus int
		wantEvents string
	}{
		{"ready without events", fakePinger{}, nil, http.StatusOK, "disabled"},
		{"ready with events", fakePinger{}, fakeConn(true), http.StatusOK, "connected"},
		{"events down", fakePinger{}, fakeConn(false), http.StatusServiceUnavailable, "disconnected"},
		{"db down", fakePinger{err: errors.New("down")}, nil, http.StatusServiceUnavailable, "disabled"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			NewHealthHandler(tt.db, tt.events).Ready(w, httptest.NewRequest("GET", "/api/ready", nil))

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			var resp map[string]string
			json.NewDecoder(w.Body).Decode(&resp)
			if resp["events"] != tt.wantEvents {
				t.Errorf("events = %q, want %q", resp["events"], tt.wantEvents)
			}
		})
	}
}
