package corpus

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"pagewise/internal/content"
)

var (
	ErrNotFound = errors.New("document not found")
	ErrNotOwned = errors.New("document owned by another user")
)

// Collection selects pages or notes.
type Collection string

const (
	Pages Collection = "pages"
	Notes Collection = "notes"
)

type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// List returns every document in c authored by uid, oldest first.
func (s *PostgresStore) List(ctx context.Context, uid string, c Collection) ([]content.Document, error) {
	var query string
	switch c {
	case Pages:
		query = `SELECT id, title, type, content, parent_id, author_id FROM pages WHERE author_id = $1 ORDER BY position, created_at`
	case Notes:
		query = `SELECT id, title, type, content, NULL, author_id FROM notes WHERE author_id = $1 ORDER BY created_at`
	default:
		return nil, fmt.Errorf("unknown collection %q", c)
	}

	rows, err := s.db.QueryContext(ctx, query, uid)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	docs := []content.Document{}
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, d)
	}
	return docs, rows.Err()
}

// GetPage returns the page with id regardless of its author.
func (s *PostgresStore) GetPage(ctx context.Context, id string) (*content.Document, error) {
	query := `SELECT id, title, type, content, parent_id, author_id FROM pages WHERE id = $1`
	d, err := scanDocument(s.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanDocument(row scanner) (content.Document, error) {
	var (
		d      content.Document
		title  sql.NullString
		kind   sql.NullString
		body   sql.NullString
		parent sql.NullString
	)
	if err := row.Scan(&d.ID, &title, &kind, &body, &parent, &d.AuthorID); err != nil {
		return content.Document{}, err
	}
	d.Title = title.String
	d.Type = content.Kind(kind.String)
	d.Content = body.String
	d.ParentID = parent.String
	return d, nil
}
