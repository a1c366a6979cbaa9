// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists citations for the reference backend in SQLite.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/cite-catalog/pkg/types"
)

// ErrNotFound is returned when no citation has the requested ID.
var ErrNotFound = errors.New("citation not found")

const columns = `id, title, authors, journal, year, volume, issue, pages, doi, url, abstract, keywords, created_at, updated_at`

// Store manages the citations database.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens or creates the database at path and ensures the schema
// exists. The special path ":memory:" gives a private in-memory database.
func Open(path string) (*Store, error) {
	dsn := ":memory:"
	if path != ":memory:" {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("creating database directory: %w", err)
			}
		}
		dsn = path + "?_journal_mode=WAL&_busy_timeout=5000"
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if path == ":memory:" {
		// Each connection to :memory: is a separate database.
		db.SetMaxOpenConns(1)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &Store{db: db, now: time.Now}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS citations (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			authors TEXT,
			journal TEXT,
			year INTEGER,
			volume TEXT,
			issue TEXT,
			pages TEXT,
			doi TEXT,
			url TEXT,
			abstract TEXT,
			keywords TEXT,
			created_at TEXT,
			updated_at TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_citations_created_at ON citations(created_at)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// List returns every citation, newest first.
func (s *Store) List(ctx context.Context) ([]types.Citation, error) {
	return s.query(ctx, `SELECT `+columns+` FROM citations ORDER BY created_at DESC, rowid DESC`)
}

// Search returns citations whose title, authors, journal, abstract or
// keywords contain term (case-insensitive for ASCII), newest first.
func (s *Store) Search(ctx context.Context, term string) ([]types.Citation, error) {
	pattern := "%" + escapeLike(term) + "%"
	return s.query(ctx,
		`SELECT `+columns+` FROM citations
		 WHERE title LIKE ?1 ESCAPE '\' OR authors LIKE ?1 ESCAPE '\' OR journal LIKE ?1 ESCAPE '\'
		    OR abstract LIKE ?1 ESCAPE '\' OR keywords LIKE ?1 ESCAPE '\'
		 ORDER BY created_at DESC, rowid DESC`,
		pattern)
}

// Get returns the citation with id, or ErrNotFound.
func (s *Store) Get(ctx context.Context, id string) (types.Citation, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+columns+` FROM citations WHERE id = ?`, id)
	c, err := scanCitation(row)
	if errors.Is(err, sql.ErrNoRows) {
		return types.Citation{}, ErrNotFound
	}
	if err != nil {
		return types.Citation{}, fmt.Errorf("reading citation %s: %w", id, err)
	}
	return c, nil
}

// Create inserts a citation with a fresh UUID and matching created/updated
// timestamps.
func (s *Store) Create(ctx context.Context, in types.CitationInput) (types.Citation, error) {
	now := s.now().UTC().Format(time.RFC3339)
	c := types.Citation{ID: uuid.NewString(), CreatedAt: now, UpdatedAt: now}
	c.Apply(in)

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO citations (`+columns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.Title, c.Authors, c.Journal, c.Year, c.Volume, c.Issue, c.Pages,
		c.DOI, c.URL, c.Abstract, c.Keywords, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return types.Citation{}, fmt.Errorf("inserting citation: %w", err)
	}
	return c, nil
}

// Update replaces the editable fields of citation id and refreshes
// updated_at. created_at is preserved.
func (s *Store) Update(ctx context.Context, id string, in types.CitationInput) (types.Citation, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return types.Citation{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	c, err := scanCitation(tx.QueryRowContext(ctx, `SELECT `+columns+` FROM citations WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return types.Citation{}, ErrNotFound
	}
	if err != nil {
		return types.Citation{}, fmt.Errorf("reading citation %s: %w", id, err)
	}

	c.Apply(in)
	c.UpdatedAt = s.now().UTC().Format(time.RFC3339)

	_, err = tx.ExecContext(ctx,
		`UPDATE citations
		 SET title = ?, authors = ?, journal = ?, year = ?, volume = ?, issue = ?,
		     pages = ?, doi = ?, url = ?, abstract = ?, keywords = ?, updated_at = ?
		 WHERE id = ?`,
		c.Title, c.Authors, c.Journal, c.Year, c.Volume, c.Issue,
		c.Pages, c.DOI, c.URL, c.Abstract, c.Keywords, c.UpdatedAt, id,
	)
	if err != nil {
		return types.Citation{}, fmt.Errorf("updating citation %s: %w", id, err)
	}
	if err := tx.Commit(); err != nil {
		return types.Citation{}, fmt.Errorf("committing update: %w", err)
	}
	return c, nil
}

// Delete removes citation id, or returns ErrNotFound.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM citations WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting citation %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting citation %s: %w", id, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) query(ctx context.Context, q string, args ...any) ([]types.Citation, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("querying citations: %w", err)
	}
	defer rows.Close()

	citations := []types.Citation{}
	for rows.Next() {
		c, err := scanCitation(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning citation: %w", err)
		}
		citations = append(citations, c)
	}
	return citations, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

// scanCitation reads one row in column order. Nullable text columns map
// to "" and a NULL year to 0.
func scanCitation(row scanner) (types.Citation, error) {
	var (
		c                                   types.Citation
		authors, journal, volume, issue     sql.NullString
		pages, doi, url, abstract, keywords sql.NullString
		createdAt, updatedAt                sql.NullString
		year                                sql.NullInt64
	)
	err := row.Scan(&c.ID, &c.Title, &authors, &journal, &year, &volume, &issue,
		&pages, &doi, &url, &abstract, &keywords, &createdAt, &updatedAt)
	if err != nil {
		return types.Citation{}, err
	}
	c.Authors = authors.String
	c.Journal = journal.String
	c.Year = int(year.Int64)
	c.Volume = volume.String
	c.Issue = issue.String
	c.Pages = pages.String
	c.DOI = doi.String
	c.URL = url.String
	c.Abstract = abstract.String
	c.Keywords = keywords.String
	c.CreatedAt = createdAt.String
	c.UpdatedAt = updatedAt.String
	return c, nil
}

// escapeLike escapes LIKE wildcards so term matches literally.
func escapeLike(term string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(term)
}
