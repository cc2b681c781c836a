package persistence

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/cmlabs-hris/timesheet-core-go/internal/domain/timesheet"
)

// FileStore keeps the document snapshot in a single JSON file under a base
// path, the workstation analog of a browser's local storage slot.
type FileStore struct {
	basePath string
	logger   *slog.Logger
}

func NewFileStore(basePath string, logger *slog.Logger) (*FileStore, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("create storage directory: %w", err)
	}

	return &FileStore{
		basePath: basePath,
		logger:   logger,
	}, nil
}

func (s *FileStore) path() string {
	return filepath.Join(s.basePath, Slot+".json")
}

// Save writes the full snapshot atomically (write to a temp file, rename)
func (s *FileStore) Save(ctx context.Context, doc timesheet.Document) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	tmp := s.path() + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := os.Rename(tmp, s.path()); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replace snapshot: %w", err)
	}

	return nil
}

// Load returns the last-saved document, or nil when nothing was saved yet.
// A file that no longer parses is discarded so startup can continue with an
// empty document.
func (s *FileStore) Load(ctx context.Context) (*timesheet.Document, error) {
	data, err := os.ReadFile(s.path())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var doc timesheet.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		s.logger.Warn("discarding corrupt document snapshot", "path", s.path(), "error", err)
		return nil, nil
	}

	return &doc, nil
}
