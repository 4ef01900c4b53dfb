package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/freelance-desk/internal/apiclient"
	"github.com/jonathan/freelance-desk/internal/db"
	"github.com/jonathan/freelance-desk/internal/rendering"
	"github.com/jonathan/freelance-desk/internal/server/ratelimit"
	"github.com/jonathan/freelance-desk/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProjects struct {
	contexts map[string]types.RenderContext
	err      error
}

func (f *fakeProjects) RenderContext(_ context.Context, projectID string) (types.RenderContext, error) {
	if f.err != nil {
		return types.RenderContext{}, f.err
	}
	rc, ok := f.contexts[projectID]
	if !ok {
		return types.RenderContext{}, &apiclient.NotFoundError{Resource: "Project", ID: projectID}
	}
	return rc, nil
}

type fakeArchive struct {
	docs map[uuid.UUID]*db.Document
}

func (f *fakeArchive) GetDocument(_ context.Context, id uuid.UUID) (*db.Document, error) {
	return f.docs[id], nil
}

func (f *fakeArchive) ListDocuments(_ context.Context, projectID string, limit int) ([]db.DocumentSummary, error) {
	var out []db.DocumentSummary
	for _, d := range f.docs {
		if projectID != "" && d.ProjectID != projectID {
			continue
		}
		out = append(out, d.Summary())
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func newTestServer(t *testing.T, archive Archive, limits *ratelimit.Config) *Server {
	t.Helper()
	catalog, err := rendering.DefaultCatalog()
	require.NoError(t, err)
	renderer, err := rendering.NewRenderer(catalog)
	require.NoError(t, err)

	projects := &fakeProjects{contexts: map[string]types.RenderContext{
		"P-001": {
			Client:  types.Client{ClientID: "C-1", Company: "PT Maju"},
			Project: types.Project{ProjectID: "P-001", ClientID: "C-1", ProjectTitle: "Inventory System", Budget: 1000000},
		},
	}}

	cfg := Config{Addr: "127.0.0.1:0", Renderer: renderer, Projects: projects, RateLimit: limits}
	if archive != nil {
		cfg.Archive = archive
	}
	s, err := New(cfg)
	require.NoError(t, err)
	return s
}

func serve(s *Server, method, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body["error"]
}

func TestNew_RequiresDependencies(t *testing.T) {
	_, err := New(Config{})
	assert.Error(t, err)

	catalog, err := rendering.DefaultCatalog()
	require.NoError(t, err)
	renderer, err := rendering.NewRenderer(catalog)
	require.NoError(t, err)

	_, err = New(Config{Renderer: renderer})
	assert.Error(t, err)
}

func TestHandleHealth(t *testing.T) {
	s := newTestServer(t, nil, nil)

	w := serve(s, http.MethodGet, "/health")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestHandleListKinds(t *testing.T) {
	s := newTestServer(t, nil, nil)

	w := serve(s, http.MethodGet, "/documents")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Kinds   []string `json:"kinds"`
		Formats []string `json:"formats"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body.Kinds, "invoice")
	assert.Contains(t, body.Formats, "pdf")
}

func TestHandleDocument(t *testing.T) {
	s := newTestServer(t, nil, nil)

	t.Run("page", func(t *testing.T) {
		w := serve(s, http.MethodGet, "/documents/proposal?project_id=P-001")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
		assert.Contains(t, w.Body.String(), "<!DOCTYPE html>")
		assert.Contains(t, w.Body.String(), "Inventory System")
	})

	t.Run("text", func(t *testing.T) {
		w := serve(s, http.MethodGet, "/documents/invoice?project_id=P-001&format=text")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "text/plain; charset=utf-8", w.Header().Get("Content-Type"))
		assert.NotContains(t, w.Body.String(), "<")
	})

	tests := []struct {
		name   string
		target string
		status int
		errMsg string
	}{
		{name: "unknown kind", target: "/documents/memo?project_id=P-001", status: http.StatusBadRequest, errMsg: "kind"},
		{name: "missing project", target: "/documents/invoice", status: http.StatusBadRequest, errMsg: "project_id"},
		{name: "bad format", target: "/documents/invoice?project_id=P-001&format=docx", status: http.StatusBadRequest, errMsg: "format"},
		{name: "project not found", target: "/documents/invoice?project_id=P-404", status: http.StatusNotFound, errMsg: "P-404"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(s, http.MethodGet, tt.target)
			assert.Equal(t, tt.status, w.Code)
			assert.Contains(t, decodeError(t, w), tt.errMsg)
		})
	}
}

func TestHandleDocument_UpstreamFailure(t *testing.T) {
	s := newTestServer(t, nil, nil)
	s.projects = &fakeProjects{err: &apiclient.ConnectionError{Operation: "project", Cause: errors.New("dial tcp")}}

	w := serve(s, http.MethodGet, "/documents/invoice?project_id=P-001")
	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestArchive_NotConfigured(t *testing.T) {
	s := newTestServer(t, nil, nil)

	w := serve(s, http.MethodGet, "/archive")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	w = serve(s, http.MethodGet, "/archive/"+uuid.NewString())
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestArchive(t *testing.T) {
	id := uuid.New()
	archive := &fakeArchive{docs: map[uuid.UUID]*db.Document{
		id: {
			ID:        id,
			ProjectID: "P-001",
			Kind:      "invoice",
			Title:     "Invoice",
			Reference: "P-001-INV",
			Filename:  "invoice_P-001",
			HTML:      "<h1>Invoice body</h1>",
			CreatedAt: time.Now(),
		},
	}}
	s := newTestServer(t, archive, nil)

	t.Run("list", func(t *testing.T) {
		w := serve(s, http.MethodGet, "/archive?project_id=P-001")
		require.Equal(t, http.StatusOK, w.Code)
		var body struct {
			Documents []db.DocumentSummary `json:"documents"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		require.Len(t, body.Documents, 1)
		assert.Equal(t, id, body.Documents[0].ID)
	})

	t.Run("bad limit", func(t *testing.T) {
		w := serve(s, http.MethodGet, "/archive?limit=-1")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("page", func(t *testing.T) {
		w := serve(s, http.MethodGet, "/archive/"+id.String())
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "<title>Invoice - P-001-INV</title>")
		assert.Contains(t, w.Body.String(), "Invoice body")
	})

	t.Run("json", func(t *testing.T) {
		w := serve(s, http.MethodGet, "/archive/"+id.String()+"?format=json")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	})

	t.Run("invalid id", func(t *testing.T) {
		w := serve(s, http.MethodGet, "/archive/not-a-uuid")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("missing", func(t *testing.T) {
		w := serve(s, http.MethodGet, "/archive/"+uuid.NewString())
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestRateLimit(t *testing.T) {
	limits := &ratelimit.Config{
		Enabled: true,
		Rules:   []ratelimit.Rule{{Method: http.MethodGet, Prefix: "/documents/", Limit: 2, Window: time.Minute}},
	}
	s := newTestServer(t, nil, limits)

	for i := 0; i < 2; i++ {
		w := serve(s, http.MethodGet, "/documents/invoice?project_id=P-001&format=html")
		require.Equal(t, http.StatusOK, w.Code, fmt.Sprintf("request %d", i))
		assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))
	}

	w := serve(s, http.MethodGet, "/documents/invoice?project_id=P-001&format=html")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))

	// other routes are unaffected
	w = serve(s, http.MethodGet, "/health")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{&ErrValidation{Field: "id", Message: "bad"}, http.StatusBadRequest},
		{&apiclient.InputError{Operation: "client_create", Cause: errors.New("name is required")}, http.StatusBadRequest},
		{&ErrNotFound{Resource: "document", ID: "x"}, http.StatusNotFound},
		{fmt.Errorf("wrapped: %w", &apiclient.NotFoundError{Resource: "Client", ID: "C-9"}), http.StatusNotFound},
		{&ErrUnavailable{Feature: "archive"}, http.StatusServiceUnavailable},
		{&apiclient.OperationError{Operation: "client", Message: "nope"}, http.StatusBadGateway},
		{&apiclient.HTTPError{StatusCode: 500}, http.StatusBadGateway},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, HTTPStatus(tt.err), tt.err.Error())
	}
}
