// Package docstore persists converted documents in SQLite so results can
// be listed, re-downloaded, previewed, and exported after conversion.
package docstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/ishitak12/pdfstruct/internal/docmodel"
)

// ErrNotFound reports a missing document ID.
var ErrNotFound = errors.New("document not found")

const schema = `
CREATE TABLE IF NOT EXISTS documents (
	doc_id       TEXT PRIMARY KEY,
	filename     TEXT NOT NULL,
	title        TEXT NOT NULL DEFAULT '',
	page_count   INTEGER NOT NULL,
	content_hash TEXT NOT NULL,
	body         BLOB NOT NULL,
	created_at   TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS documents_created_at ON documents(created_at);
`

// Record is one stored conversion result.
type Record struct {
	DocID       string    `json:"doc_id"`
	Filename    string    `json:"filename"`
	Title       string    `json:"title,omitempty"`
	PageCount   int       `json:"page_count"`
	ContentHash string    `json:"content_hash"`
	CreatedAt   time.Time `json:"created_at"`
}

// Store wraps the SQLite handle.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the store at path. ":memory:" works for tests.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 10000",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA foreign_keys = ON",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("apply pragma: %w", err)
		}
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Save stores or replaces a converted document.
func (s *Store) Save(ctx context.Context, rec Record, doc *docmodel.Document) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO documents
			(doc_id, filename, title, page_count, content_hash, body, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.DocID, rec.Filename, rec.Title, len(doc.Pages), rec.ContentHash, body,
		rec.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert document: %w", err)
	}
	return nil
}

// Get returns the record and decoded document for an ID.
func (s *Store) Get(ctx context.Context, docID string) (Record, *docmodel.Document, error) {
	var (
		rec     Record
		body    []byte
		created string
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT doc_id, filename, title, page_count, content_hash, body, created_at
		FROM documents WHERE doc_id = ?`, docID).
		Scan(&rec.DocID, &rec.Filename, &rec.Title, &rec.PageCount, &rec.ContentHash, &body, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, nil, ErrNotFound
	}
	if err != nil {
		return Record{}, nil, fmt.Errorf("query document: %w", err)
	}
	rec.CreatedAt, _ = time.Parse(time.RFC3339Nano, created)

	var doc docmodel.Document
	if err := json.Unmarshal(body, &doc); err != nil {
		return Record{}, nil, fmt.Errorf("decode document: %w", err)
	}
	return rec, &doc, nil
}

// List returns all records, newest first.
func (s *Store) List(ctx context.Context) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT doc_id, filename, title, page_count, content_hash, created_at
		FROM documents ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	out := []Record{}
	for rows.Next() {
		var (
			rec     Record
			created string
		)
		if err := rows.Scan(&rec.DocID, &rec.Filename, &rec.Title, &rec.PageCount, &rec.ContentHash, &created); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		rec.CreatedAt, _ = time.Parse(time.RFC3339Nano, created)
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Delete removes a document. Deleting an unknown ID returns ErrNotFound.
func (s *Store) Delete(ctx context.Context, docID string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM documents WHERE doc_id = ?`, docID)
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
