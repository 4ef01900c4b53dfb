// Package db provides PostgreSQL storage for archived documents.
package db

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	if strings.TrimSpace(databaseURL) == "" {
		return nil, fmt.Errorf("database URL is empty")
	}

	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

const schemaSQL = `
CREATE TABLE IF NOT EXISTS documents (
	id          UUID PRIMARY KEY,
	project_id  TEXT NOT NULL DEFAULT '',
	client_id   TEXT NOT NULL DEFAULT '',
	kind        TEXT NOT NULL,
	title       TEXT NOT NULL DEFAULT '',
	reference   TEXT NOT NULL DEFAULT '',
	filename    TEXT NOT NULL DEFAULT '',
	html        TEXT NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS documents_project_created_idx
	ON documents (project_id, created_at DESC);
`

// EnsureSchema creates the documents table if it does not exist.
func (db *DB) EnsureSchema(ctx context.Context) error {
	if _, err := db.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}
	return nil
}

// SaveDocument archives a rendered document and returns its ID.
func (db *DB) SaveDocument(ctx context.Context, doc *Document) (uuid.UUID, error) {
	if doc == nil {
		return uuid.Nil, fmt.Errorf("document is nil")
	}
	if doc.Kind == "" {
		return uuid.Nil, fmt.Errorf("document kind is required")
	}
	if doc.ID == uuid.Nil {
		doc.ID = uuid.New()
	}

	err := db.pool.QueryRow(ctx,
		`INSERT INTO documents (id, project_id, client_id, kind, title, reference, filename, html)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING created_at`,
		doc.ID, doc.ProjectID, doc.ClientID, doc.Kind, doc.Title, doc.Reference, doc.Filename, doc.HTML,
	).Scan(&doc.CreatedAt)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to save document %s: %w", doc.Kind, err)
	}
	return doc.ID, nil
}

// GetDocument retrieves an archived document. A missing document is nil, nil.
func (db *DB) GetDocument(ctx context.Context, id uuid.UUID) (*Document, error) {
	var doc Document
	err := db.pool.QueryRow(ctx,
		`SELECT id, project_id, client_id, kind, title, reference, filename, html, created_at
		 FROM documents WHERE id = $1`,
		id,
	).Scan(&doc.ID, &doc.ProjectID, &doc.ClientID, &doc.Kind, &doc.Title, &doc.Reference, &doc.Filename, &doc.HTML, &doc.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get document: %w", err)
	}
	return &doc, nil
}

// ListDocuments lists archived documents, newest first. An empty projectID
// lists documents of every project.
func (db *DB) ListDocuments(ctx context.Context, projectID string, limit int) ([]DocumentSummary, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	rows, err := db.pool.Query(ctx,
		`SELECT id, project_id, kind, title, reference, created_at
		 FROM documents
		 WHERE $1 = '' OR project_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2`,
		projectID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer rows.Close()

	docs := []DocumentSummary{}
	for rows.Next() {
		var d DocumentSummary
		if err := rows.Scan(&d.ID, &d.ProjectID, &d.Kind, &d.Title, &d.Reference, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		docs = append(docs, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	return docs, nil
}

// DeleteDocument removes an archived document. It reports whether a row
// was deleted.
func (db *DB) DeleteDocument(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := db.pool.Exec(ctx, `DELETE FROM documents WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete document: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
