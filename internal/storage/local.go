package storage

import (
	"context"
	"crypto/rand"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/oklog/ulid/v2"
)

// Store persists uploaded files under a category directory ("cv",
// "perfiles"). Filenames are caller-generated via RandomName, so stored
// content is addressed by a random id, never by the client-supplied name.
type Store interface {
	Save(ctx context.Context, category, filename string, data []byte) error
}

// RandomName builds a random, collision-resistant filename with the given
// extension.
func RandomName(ext string) string {
	id := ulid.MustNew(ulid.Now(), rand.Reader)
	return strings.ToLower(id.String()) + "." + strings.TrimPrefix(ext, ".")
}

type LocalStore struct {
	root string
}

func NewLocalStore(root string) *LocalStore {
	return &LocalStore{root: root}
}

func (s *LocalStore) Save(_ context.Context, category, filename string, data []byte) error {
	if s == nil || strings.TrimSpace(s.root) == "" {
		return errors.New("storage: no root directory configured")
	}
	category = strings.TrimSpace(category)
	filename = filepath.Base(strings.TrimSpace(filename))
	if category == "" || filename == "" || filename == "." {
		return errors.New("storage: invalid path")
	}

	dir := filepath.Join(s.root, category)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(dir, filename), data, 0o644)
}
