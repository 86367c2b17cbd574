package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"path"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"gallery/adminhub/internal/storage"
)

var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
	"image/avif": ".avif",
}

// sniffLen is how much of an upload is inspected to detect its real type.
const sniffLen = 3072

type UploadService interface {
	// UploadImage stores an image under scope/ and returns its public URL.
	UploadImage(ctx context.Context, scope string, contentType string, size int64, r io.Reader) (string, error)
}

type uploadService struct {
	images   storage.ImageStore
	maxBytes int64
}

func NewUploadService(images storage.ImageStore, maxBytes int64) UploadService {
	return &uploadService{images: images, maxBytes: maxBytes}
}

func (s *uploadService) UploadImage(ctx context.Context, scope string, contentType string, size int64, r io.Reader) (string, error) {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return "", ErrUnsupportedMedia
	}
	ext, ok := imageExtensions[strings.ToLower(mediaType)]
	if !ok {
		return "", ErrUnsupportedMedia
	}
	if s.maxBytes > 0 && size > s.maxBytes {
		return "", ErrUploadTooLarge
	}

	// The declared type comes from the client; the bytes have to agree with it.
	head := make([]byte, sniffLen)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read upload: %w", err)
	}
	head = head[:n]
	if !mimetype.Detect(head).Is(mediaType) {
		return "", fmt.Errorf("%w: content is not %s", ErrUnsupportedMedia, mediaType)
	}

	key := path.Join(scope, uuid.NewString()+ext)
	url, err := s.images.Save(ctx, key, mediaType, io.MultiReader(bytes.NewReader(head), r))
	if err != nil {
		return "", fmt.Errorf("failed to store image: %w", err)
	}
	return url, nil
}

var _ UploadService = (*uploadService)(nil)
