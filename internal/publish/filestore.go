package publish

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/TemirB/pos-core/internal/domain"
)

// FileStore keeps the marker in a small JSON file. Writes go through a temp file and a
// rename so a crash never leaves a half-written marker behind.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Load(_ context.Context) (time.Time, error) {
	b, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, err
	}
	var m domain.PublishMarker
	if err := json.Unmarshal(b, &m); err != nil {
		return time.Time{}, fmt.Errorf("decode %s: %w", s.path, err)
	}
	return m.PublishedAt, nil
}

func (s *FileStore) Save(_ context.Context, ts time.Time) error {
	b, err := json.Marshal(domain.PublishMarker{PublishedAt: ts.UTC()})
	if err != nil {
		return err
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".marker-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), s.path)
}
