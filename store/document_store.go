// Package store persists document metadata and point-in-time Delta
// snapshots — the one persistence format spec.md's Non-goals permit
// ("a documented JSON serialization of the Delta"). It is host-side
// infrastructure: it never reaches into the tree or rule packages,
// only into a Controller's Delta() and the JSON it already knows how
// to produce.
package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-sql-driver/mysql"
)

// ErrNotFound is returned when a lookup finds no matching row, keeping
// callers from depending on sql.ErrNoRows directly.
var ErrNotFound = errors.New("store: not found")

// DocumentStore keeps title->id lookups over plain database/sql,
// mirroring the teacher's internal/store/document_store.go.
type DocumentStore struct{ db *sql.DB }

// NewDocumentStore wraps an already-opened *sql.DB.
func NewDocumentStore(db *sql.DB) *DocumentStore {
	return &DocumentStore{db: db}
}

// GetDocumentID resolves a document's title to its id.
func (s *DocumentStore) GetDocumentID(ctx context.Context, title string) (string, error) {
	var docID string
	err := s.db.QueryRowContext(ctx,
		`SELECT id FROM documents WHERE title = ?`, title,
	).Scan(&docID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	return docID, err
}

// CreateDocument inserts a new document row, tolerating a duplicate
// title (MySQL error 1062) the way the teacher's store layer does —
// document creation here is idempotent per owner+title.
func (s *DocumentStore) CreateDocument(ctx context.Context, ownerID, title string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO documents (owner_id, title) VALUES (?, ?)`, ownerID, title,
	)
	if isDuplicateKey(err) {
		return nil
	}
	return err
}

func isDuplicateKey(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == 1062
}
