package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/Abdelmagid1892/translation-office-app/internal/domain"
	"github.com/Abdelmagid1892/translation-office-app/internal/domain/ports/adapter"
)

var _ adapter.FileStorage = (*LocalStorage)(nil)

// LocalStorage writes blobs under a base directory. Handles are relative
// paths prefixed with "file://" so other backends can coexist later.
type LocalStorage struct {
	dir string
}

func NewLocalStorage(dir string) (*LocalStorage, error) {
	if dir == "" {
		return nil, domain.ErrInvalidArgument
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &LocalStorage{dir: dir}, nil
}

func (s *LocalStorage) Save(ctx context.Context, name string, data []byte) (string, error) {
	// A random prefix keeps same-named uploads from different jobs apart.
	rel := filepath.Join(uuid.NewString(), sanitizeName(name))
	full := filepath.Join(s.dir, rel)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("create blob dir: %w", domain.ErrCollaboratorUnavailable)
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return "", fmt.Errorf("write blob: %w", domain.ErrCollaboratorUnavailable)
	}
	return "file://" + filepath.ToSlash(rel), nil
}

func (s *LocalStorage) Load(ctx context.Context, handle string) ([]byte, error) {
	rel, ok := strings.CutPrefix(handle, "file://")
	if !ok {
		return nil, domain.ErrInvalidArgument
	}
	rel = filepath.FromSlash(rel)
	if strings.Contains(rel, "..") {
		return nil, domain.ErrInvalidArgument
	}
	data, err := os.ReadFile(filepath.Join(s.dir, rel))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("read blob: %w", err)
	}
	return data, nil
}

func sanitizeName(name string) string {
	name = filepath.Base(name)
	if name == "" || name == "." || name == string(filepath.Separator) {
		return "upload.bin"
	}
	return name
}
