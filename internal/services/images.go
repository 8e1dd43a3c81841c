package services

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

const MaxImageBytes = 10 << 20

var (
	ErrInvalidImage     = errors.New("invalid image")
	ErrUnsupportedImage = errors.New("unsupported image type")
	ErrImageTooLarge    = errors.New("image too large")
)

var dataURLPrefix = regexp.MustCompile(`^data:image/\w+;base64,`)

var imageExtensions = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/gif":  "gif",
	"image/webp": "webp",
}

// ImageStore is a bucket that returns a fetchable URL for what it stores.
type ImageStore interface {
	Put(ctx context.Context, path, contentType string, data []byte) (string, error)
}

// ImageService turns uploaded base64 photos into stored objects whose URL
// becomes an item's imageUri.
type ImageService struct {
	store ImageStore
}

func NewImageService(store ImageStore) *ImageService {
	return &ImageService{store: store}
}

// Store decodes encoded, checks it is a supported image and uploads it under
// users/<owner>/items/<uuid>.<ext>.
func (s *ImageService) Store(ctx context.Context, owner, encoded string) (string, error) {
	data, err := DecodeImage(encoded)
	if err != nil {
		return "", err
	}

	contentType := http.DetectContentType(data)
	ext, ok := imageExtensions[contentType]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedImage, contentType)
	}

	path := fmt.Sprintf("users/%s/items/%s.%s", owner, uuid.NewString(), ext)
	url, err := s.store.Put(ctx, path, contentType, data)
	if err != nil {
		return "", fmt.Errorf("failed to store image: %w", err)
	}
	return url, nil
}

// DecodeImage accepts raw base64 or a data URL.
func DecodeImage(encoded string) ([]byte, error) {
	encoded = dataURLPrefix.ReplaceAllString(strings.TrimSpace(encoded), "")
	if encoded == "" {
		return nil, ErrInvalidImage
	}
	if base64.StdEncoding.DecodedLen(len(encoded)) > MaxImageBytes+2 {
		return nil, ErrImageTooLarge
	}

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}
	if len(data) > MaxImageBytes {
		return nil, ErrImageTooLarge
	}
	return data, nil
}
