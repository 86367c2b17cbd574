package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
)

// DiskStore writes images below a local directory that is served at BaseURL.
type DiskStore struct {
	root    string
	baseURL string

	dirs      map[string]bool
	dirsMutex sync.Mutex
}

func NewDiskStore(root, baseURL string) (*DiskStore, error) {
	if root == "" {
		return nil, fmt.Errorf("disk storage root is required")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create storage root: %w", err)
	}
	return &DiskStore{root: root, baseURL: baseURL, dirs: make(map[string]bool)}, nil
}

// Root is the directory the store writes to.
func (s *DiskStore) Root() string { return s.root }

func (s *DiskStore) createDir(dir string) error {
	s.dirsMutex.Lock()
	defer s.dirsMutex.Unlock()

	if s.dirs[dir] {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	s.dirs[dir] = true
	return nil
}

func (s *DiskStore) Save(_ context.Context, key string, _ string, r io.Reader) (string, error) {
	key, err := cleanKey(key)
	if err != nil {
		return "", err
	}
	fileName := filepath.Join(s.root, filepath.FromSlash(key))
	if err := s.createDir(filepath.Dir(fileName)); err != nil {
		return "", err
	}

	file, err := os.Create(fileName)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(file, r); err != nil {
		file.Close()
		_ = os.Remove(fileName)
		return "", err
	}
	if err := file.Close(); err != nil {
		return "", err
	}
	return joinURL(s.baseURL, key), nil
}

func (s *DiskStore) Delete(_ context.Context, key string) error {
	key, err := cleanKey(key)
	if err != nil {
		return err
	}
	err = os.Remove(filepath.Join(s.root, filepath.FromSlash(key)))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

var _ ImageStore = (*DiskStore)(nil)
