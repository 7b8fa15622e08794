package storage

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/softstep/shop/internal/logging"
)

// ImageStore keeps uploaded product images on local disk. Stored paths are
// URL-style ("images/<name>") so they can be handed to browsers as-is.
type ImageStore struct {
	dir string
}

func NewImageStore(dir string) (*ImageStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &ImageStore{dir: dir}, nil
}

// Save writes the uploaded file under a generated name and returns the
// URL-style path to store on the product.
func (s *ImageStore) Save(file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	name := uuid.NewString() + strings.ToLower(filepath.Ext(file.Filename))
	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("create image file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("write image file: %w", err)
	}

	return path.Join("images", name), nil
}

// Remove unlinks the file behind a stored image path. Best-effort: a failure
// is logged and swallowed so a missing file never blocks the caller.
func (s *ImageStore) Remove(ctx context.Context, imagePath string) {
	if imagePath == "" {
		return
	}
	name := path.Base(imagePath)
	if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !os.IsNotExist(err) {
		logging.FromContext(ctx).Warn("image file removal failed", "path", imagePath, "error", err)
	}
}
