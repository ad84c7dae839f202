package assets

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

// DirStore serves artifacts from a directory.
type DirStore struct {
	root string
}

var _ Store = (*DirStore)(nil)

// NewDirStore creates a store rooted at dir.
func NewDirStore(dir string) *DirStore {
	return &DirStore{root: dir}
}

// Root returns the directory the store reads from.
func (s *DirStore) Root() string {
	return s.root
}

func (s *DirStore) Open(ctx context.Context, name string) (Asset, error) {
	name, err := Clean(name)
	if err != nil {
		return Asset{}, err
	}
	if err := ctx.Err(); err != nil {
		return Asset{}, err
	}
	data, err := os.ReadFile(filepath.Join(s.root, filepath.FromSlash(name)))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Asset{}, fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return Asset{}, fmt.Errorf("assets: read %s: %w", name, err)
	}
	return newAsset(name, data), nil
}

func (s *DirStore) List(ctx context.Context) ([]string, error) {
	var names []string
	err := filepath.WalkDir(s.root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(s.root, p)
		if err != nil {
			return err
		}
		names = append(names, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("assets: list %s: %w", s.root, err)
	}
	sort.Strings(names)
	return names, nil
}
