package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"gallery/adminhub/internal/config"
)

// ImageStore persists uploaded images and returns the URL they are served from.
type ImageStore interface {
	Save(ctx context.Context, key string, contentType string, r io.Reader) (string, error)
	Delete(ctx context.Context, key string) error
}

// New builds the ImageStore selected by cfg.Backend.
func New(cfg config.StorageConfig) (ImageStore, error) {
	switch cfg.Backend {
	case "disk", "":
		return NewDiskStore(cfg.Disk.Root, cfg.Disk.BaseURL)
	case "s3":
		return NewS3Store(cfg.S3)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}

// cleanKey rejects keys that would escape the store root.
func cleanKey(key string) (string, error) {
	cleaned := path.Clean("/" + key)[1:]
	if cleaned == "" || strings.HasPrefix(cleaned, "..") {
		return "", fmt.Errorf("invalid storage key %q", key)
	}
	return cleaned, nil
}

func joinURL(base, key string) string {
	return strings.TrimRight(base, "/") + "/" + key
}
