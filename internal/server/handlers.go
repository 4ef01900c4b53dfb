package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/jonathan/freelance-desk/internal/db"
	"github.com/jonathan/freelance-desk/internal/rendering"
)

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleListKinds lists the document kinds and output formats
func (s *Server) handleListKinds(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"kinds":   s.renderer.Kinds(),
		"formats": rendering.Formats(),
	})
}

// handleDocument renders one document kind for a project
func (s *Server) handleDocument(w http.ResponseWriter, r *http.Request) {
	kind, err := s.renderer.ParseKind(r.PathValue("kind"))
	if err != nil {
		s.failure(w, &ErrValidation{Field: "kind", Message: err.Error()})
		return
	}

	projectID := strings.TrimSpace(r.URL.Query().Get("project_id"))
	if projectID == "" {
		s.failure(w, &ErrValidation{Field: "project_id", Message: "is required"})
		return
	}

	format := rendering.FormatPage
	if f := r.URL.Query().Get("format"); f != "" {
		format, err = rendering.ParseFormat(f)
		if err != nil {
			s.failure(w, &ErrValidation{Field: "format", Message: err.Error()})
			return
		}
	}

	rc, err := s.projects.RenderContext(r.Context(), projectID)
	if err != nil {
		s.failure(w, err)
		return
	}

	doc, err := s.renderer.Render(kind, rc)
	if err != nil {
		s.failure(w, err)
		return
	}

	body, err := s.renderer.Encode(r.Context(), doc, format, s.pdfTimeout)
	if err != nil {
		s.failure(w, err)
		return
	}

	writeDocument(w, format, doc.Filename, body)
}

// handleListArchive lists archived documents, optionally for one project
func (s *Server) handleListArchive(w http.ResponseWriter, r *http.Request) {
	if s.archive == nil {
		s.failure(w, &ErrUnavailable{Feature: "document archive"})
		return
	}

	limit := db.DefaultListLimit
	if l := r.URL.Query().Get("limit"); l != "" {
		n, err := strconv.Atoi(l)
		if err != nil || n <= 0 {
			s.failure(w, &ErrValidation{Field: "limit", Message: "must be a positive integer"})
			return
		}
		limit = n
	}

	docs, err := s.archive.ListDocuments(r.Context(), r.URL.Query().Get("project_id"), limit)
	if err != nil {
		s.failure(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"documents": docs})
}

// handleArchived serves an archived document as a printable page, or as
// JSON with format=json
func (s *Server) handleArchived(w http.ResponseWriter, r *http.Request) {
	if s.archive == nil {
		s.failure(w, &ErrUnavailable{Feature: "document archive"})
		return
	}

	idStr := r.PathValue("id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		s.failure(w, &ErrValidation{Field: "id", Message: "invalid document ID format"})
		return
	}

	stored, err := s.archive.GetDocument(r.Context(), id)
	if err != nil {
		s.failure(w, err)
		return
	}
	if stored == nil {
		s.failure(w, &ErrNotFound{Resource: "document", ID: idStr})
		return
	}

	if r.URL.Query().Get("format") == "json" {
		s.jsonResponse(w, http.StatusOK, stored)
		return
	}

	doc := &rendering.Document{
		Kind:      rendering.Kind(stored.Kind),
		Title:     stored.Title,
		Reference: stored.Reference,
		Filename:  stored.Filename,
		HTML:      stored.HTML,
	}
	writeDocument(w, rendering.FormatPage, doc.Filename, []byte(s.renderer.RenderPage(doc)))
}

func writeDocument(w http.ResponseWriter, format rendering.Format, filename string, body []byte) {
	switch format {
	case rendering.FormatPDF:
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", `inline; filename="`+filename+format.Extension()+`"`)
	case rendering.FormatText:
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	default:
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}
