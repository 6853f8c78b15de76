// Package file persists cart state as a JSON file in a local state directory,
// the per-device equivalent of the browser storage slot used by the web UI.
package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/cfshr/aur/internal/domain"
	"github.com/cfshr/aur/internal/storage"
	apperrors "github.com/cfshr/aur/pkg/errors"
)

// Storage implements storage.Storage on top of a single JSON state file.
type Storage struct {
	dir  string
	path string
}

// New creates a file-backed cart storage rooted at dir. The file itself is
// named after the fixed storage key.
func New(dir string) *Storage {
	return &Storage{
		dir:  dir,
		path: filepath.Join(dir, storage.Key+".json"),
	}
}

// Path returns the location of the state file.
func (s *Storage) Path() string {
	return s.path
}

// Load reads and decodes the state file.
func (s *Storage) Load(ctx context.Context) (domain.Cart, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.Cart{}, apperrors.NotFound("cart state", storage.Key)
		}
		return domain.Cart{}, fmt.Errorf("read cart state: %w", err)
	}

	var cart domain.Cart
	if err := json.Unmarshal(data, &cart); err != nil {
		return domain.Cart{}, apperrors.Corrupted("cart state file does not parse", err)
	}

	return cart, nil
}

// Save writes the state file atomically: the new state lands in a temp file in
// the same directory and is renamed over the old one, so a crash mid-write
// never leaves a truncated file behind.
func (s *Storage) Save(ctx context.Context, cart domain.Cart) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}

	data, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("marshal cart state: %w", err)
	}

	tmp, err := os.CreateTemp(s.dir, storage.Key+"-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp state file: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write cart state: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close temp state file: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace cart state: %w", err)
	}

	return nil
}

// Delete removes the state file.
func (s *Storage) Delete(ctx context.Context) error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove cart state: %w", err)
	}
	return nil
}
