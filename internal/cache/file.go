package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"menugen/internal/menu"

	"go.uber.org/zap"
)

// FileStore keeps the cache document in one JSON file.
type FileStore struct {
	path   string
	logger *zap.Logger
}

func NewFileStore(path string, logger *zap.Logger) *FileStore {
	return &FileStore{path: path, logger: logger}
}

// Load never fails: a missing, unreadable or malformed file is a miss. A file
// whose menu alone is malformed loads without a menu so its other keys survive
// the next save.
func (s *FileStore) Load(ctx context.Context) (*menu.Document, bool) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("cache read failed", zap.String("path", s.path), zap.Error(err))
		}
		return nil, false
	}

	doc, err := menu.DecodeDocument(b)
	if errors.Is(err, menu.ErrMenuUndecodable) {
		s.logger.Warn("cached menu unreadable, keeping other keys", zap.String("path", s.path), zap.Error(err))
		return doc, true
	}
	if err != nil {
		s.logger.Warn("cache file is not a valid document", zap.String("path", s.path), zap.Error(err))
		return nil, false
	}

	return doc, true
}

// Save writes the whole document to a temp file next to the target and
// renames it into place.
func (s *FileStore) Save(ctx context.Context, doc *menu.Document) error {
	doc.Normalize()

	b, err := json.MarshalIndent(doc, "", "    ")
	if err != nil {
		return fmt.Errorf("encode cache: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".menu-cache-*.json")
	if err != nil {
		return fmt.Errorf("create temp cache: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp cache: %w", err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return fmt.Errorf("chmod temp cache: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp cache: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace cache: %w", err)
	}

	return nil
}
