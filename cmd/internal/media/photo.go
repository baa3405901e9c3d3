package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"io"

	"fostercare/cmd/internal/backend"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/labstack/gommon/log"
)

const (
	PhotoPrefix        = "photos/"
	PhotoMaxSize       = 512
	PhotoJpegQuality   = 85
	PhotoFileExtension = ".jpg"
	PhotoContentType   = "image/jpeg"
)

var ErrNotAnImage = errors.New("the selected photo is not a supported image")

// Normalize decodes an image, applies its EXIF orientation and fits it inside
// a PhotoMaxSize square. The result is always JPEG.
func Normalize(r io.Reader) ([]byte, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return nil, ErrNotAnImage
		}
		return nil, fmt.Errorf("failed to decode photo: %w", err)
	}

	b := img.Bounds()
	if b.Dx() > PhotoMaxSize || b.Dy() > PhotoMaxSize {
		img = imaging.Fit(img, PhotoMaxSize, PhotoMaxSize, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(PhotoJpegQuality)); err != nil {
		return nil, fmt.Errorf("photo encoding failed: %w", err)
	}
	return buf.Bytes(), nil
}

// PhotoStore persists record photos in the object store.
type PhotoStore struct {
	files backend.FileStore
}

func NewPhotoStore(files backend.FileStore) *PhotoStore {
	return &PhotoStore{files: files}
}

// Upload normalizes the photo, stores it under a random name and returns its
// public URL.
func (p *PhotoStore) Upload(ctx context.Context, r io.Reader) (string, error) {
	data, err := Normalize(r)
	if err != nil {
		return "", err
	}

	id, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("failed to generate UUID for photo: %w", err)
	}

	key := PhotoPrefix + id.String() + PhotoFileExtension
	if err := p.files.Upload(ctx, key, bytes.NewReader(data), int64(len(data)), PhotoContentType); err != nil {
		return "", fmt.Errorf("failed to save photo: %w", err)
	}

	log.Debugf("stored photo at %s (%d bytes)", key, len(data))
	return p.files.PublicURL(key)
}
