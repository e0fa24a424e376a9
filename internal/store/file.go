package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"
)

const documentExt = ".json"

// FileStore keeps one indented JSON document per scenario in a directory.
// The directory is created on the first save.
type FileStore struct {
	dir    string
	logger *zap.Logger
	mu     sync.RWMutex
}

// NewFileStore returns a store rooted at dir.
func NewFileStore(dir string, logger *zap.Logger) *FileStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FileStore{dir: dir, logger: logger}
}

func (s *FileStore) path(name string) string {
	return filepath.Join(s.dir, name+documentExt)
}

// Save writes doc to a temporary file and renames it into place.
func (s *FileStore) Save(ctx context.Context, doc Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	doc, err := prepare(doc)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(doc, "", "    ")
	if err != nil {
		return fmt.Errorf("encode scenario %s: %w", doc.Name, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("create scenario directory %s: %w", s.dir, err)
	}

	tmp, err := os.CreateTemp(s.dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("create temporary scenario file: %w", err)
	}
	defer func() {
		_ = os.Remove(tmp.Name())
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write scenario %s: %w", doc.Name, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write scenario %s: %w", doc.Name, err)
	}
	if err := os.Rename(tmp.Name(), s.path(doc.Name)); err != nil {
		return fmt.Errorf("store scenario %s: %w", doc.Name, err)
	}

	s.logger.Debug("saved scenario",
		zap.String("op", "store.FileStore.Save"),
		zap.String("scenario", doc.Name),
		zap.String("id", doc.ID),
	)
	return nil
}

// Load reads the document stored under name.
func (s *FileStore) Load(ctx context.Context, name string) (Document, error) {
	if err := ctx.Err(); err != nil {
		return Document{}, err
	}
	if err := checkName(name); err != nil {
		return Document{}, err
	}

	s.mu.RLock()
	data, err := os.ReadFile(s.path(name))
	s.mu.RUnlock()
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Document{}, ErrNotFound
		}
		return Document{}, fmt.Errorf("read scenario %s: %w", name, err)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("decode scenario %s: %w", name, err)
	}
	return doc, nil
}

// List returns the stored scenario names. A missing directory is empty.
func (s *FileStore) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	entries, err := os.ReadDir(s.dir)
	s.mu.RUnlock()
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("list scenarios in %s: %w", s.dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") || !strings.HasSuffix(name, documentExt) {
			continue
		}
		names = append(names, strings.TrimSuffix(name, documentExt))
	}
	sort.Strings(names)
	return names, nil
}

// Delete removes the document stored under name.
func (s *FileStore) Delete(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := checkName(name); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path(name)); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ErrNotFound
		}
		return fmt.Errorf("delete scenario %s: %w", name, err)
	}

	s.logger.Debug("deleted scenario",
		zap.String("op", "store.FileStore.Delete"),
		zap.String("scenario", name),
	)
	return nil
}

// Close is a no-op for the file store.
func (s *FileStore) Close() error {
	return nil
}
