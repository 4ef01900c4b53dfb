package db

import (
	"time"

	"github.com/google/uuid"
)

// Document is an archived rendered document.
type Document struct {
	ID        uuid.UUID `json:"id"`
	ProjectID string    `json:"project_id"`
	ClientID  string    `json:"client_id"`
	Kind      string    `json:"kind"`
	Title     string    `json:"title"`
	Reference string    `json:"reference"`
	Filename  string    `json:"filename"`
	HTML      string    `json:"html,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// DocumentSummary is a Document without its content, for listings.
type DocumentSummary struct {
	ID        uuid.UUID `json:"id"`
	ProjectID string    `json:"project_id"`
	Kind      string    `json:"kind"`
	Title     string    `json:"title"`
	Reference string    `json:"reference"`
	CreatedAt time.Time `json:"created_at"`
}

// Summary drops the content of d.
func (d *Document) Summary() DocumentSummary {
	return DocumentSummary{
		ID:        d.ID,
		ProjectID: d.ProjectID,
		Kind:      d.Kind,
		Title:     d.Title,
		Reference: d.Reference,
		CreatedAt: d.CreatedAt,
	}
}

// DefaultListLimit caps ListDocuments when no limit is given.
const DefaultListLimit = 50
