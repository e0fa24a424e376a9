package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

const createScenariosTable = `
CREATE TABLE IF NOT EXISTS scenarios (
	name     TEXT PRIMARY KEY,
	id       TEXT NOT NULL,
	saved_at INTEGER NOT NULL,
	document TEXT NOT NULL
)`

const upsertScenario = `
INSERT INTO scenarios (name, id, saved_at, document)
VALUES (?, ?, ?, ?)
ON CONFLICT(name) DO UPDATE SET
	id = excluded.id,
	saved_at = excluded.saved_at,
	document = excluded.document`

// SQLiteStore keeps scenarios in a single table of a SQLite database.
type SQLiteStore struct {
	db     *sql.DB
	logger *zap.Logger
}

// OpenSQLiteStore opens (creating if needed) the database at path and
// ensures the scenarios table exists.
func OpenSQLiteStore(ctx context.Context, path string, logger *zap.Logger) (*SQLiteStore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("sqlite store path is required")
	}

	cleanPath := filepath.Clean(path)
	if dir := filepath.Dir(cleanPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create sqlite directory %s: %w", dir, err)
		}
	}

	dsn := cleanPath + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := db.ExecContext(ctx, createScenariosTable); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create scenarios table: %w", err)
	}

	return &SQLiteStore{db: db, logger: logger}, nil
}

// Save upserts the document row.
func (s *SQLiteStore) Save(ctx context.Context, doc Document) error {
	doc, err := prepare(doc)
	if err != nil {
		return err
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode scenario %s: %w", doc.Name, err)
	}
	if _, err := s.db.ExecContext(ctx, upsertScenario, doc.Name, doc.ID, doc.SavedAt.UnixMilli(), string(data)); err != nil {
		return fmt.Errorf("save scenario %s: %w", doc.Name, err)
	}

	s.logger.Debug("saved scenario",
		zap.String("op", "store.SQLiteStore.Save"),
		zap.String("scenario", doc.Name),
		zap.String("id", doc.ID),
	)
	return nil
}

// Load reads the document row for name.
func (s *SQLiteStore) Load(ctx context.Context, name string) (Document, error) {
	if err := checkName(name); err != nil {
		return Document{}, err
	}

	var data string
	err := s.db.QueryRowContext(ctx, `SELECT document FROM scenarios WHERE name = ?`, name).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Document{}, ErrNotFound
		}
		return Document{}, fmt.Errorf("load scenario %s: %w", name, err)
	}

	var doc Document
	if err := json.Unmarshal([]byte(data), &doc); err != nil {
		return Document{}, fmt.Errorf("decode scenario %s: %w", name, err)
	}
	return doc, nil
}

// List returns every stored name in byte order.
func (s *SQLiteStore) List(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name FROM scenarios ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list scenarios: %w", err)
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan scenario name: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list scenarios: %w", err)
	}
	return names, nil
}

// Delete removes the row for name.
func (s *SQLiteStore) Delete(ctx context.Context, name string) error {
	if err := checkName(name); err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx, `DELETE FROM scenarios WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("delete scenario %s: %w", name, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete scenario %s: %w", name, err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	s.logger.Debug("deleted scenario",
		zap.String("op", "store.SQLiteStore.Delete"),
		zap.String("scenario", name),
	)
	return nil
}

// Close closes the database handle.
func (s *SQLiteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
