package store

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"github.com/Pratheesh-555/My-Portfolio/portfolio"
)

// documentID is the primary key of the single portfolio row.
const documentID = 1

// SqliteStore keeps the document as JSON text in a single-row table:
//
//	portfolio(id, data, updated_at)  PRIMARY KEY (id)
type SqliteStore struct {
	db *sql.DB
}

func NewSqliteStore(dbPath string) (*SqliteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS portfolio (
		id INTEGER PRIMARY KEY,
		data TEXT NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`); err != nil {
		db.Close()
		return nil, err
	}
	return &SqliteStore{db: db}, nil
}

func (s *SqliteStore) Close() error {
	return s.db.Close()
}

func (s *SqliteStore) Read(ctx context.Context) (*portfolio.Document, error) {
	var raw string
	err := s.db.QueryRowContext(ctx, "SELECT data FROM portfolio WHERE id = ?", documentID).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, readError(err)
	}
	doc, err := portfolio.Unmarshal([]byte(raw))
	if err != nil {
		return nil, readError(err)
	}
	return doc, nil
}

func (s *SqliteStore) Write(ctx context.Context, doc *portfolio.Document) error {
	if err := portfolio.Validate(doc); err != nil {
		return err
	}
	b, err := portfolio.Marshal(doc)
	if err != nil {
		return writeError(err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO portfolio (id, data, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(id) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		documentID, string(b),
	)
	if err != nil {
		return writeError(err)
	}
	return nil
}
