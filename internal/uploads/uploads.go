package uploads

import (
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"pazar/internal/apperrors"
)

// MaxImageSize is the upload limit for product images.
const MaxImageSize = 5 << 20 // 5MB

// WebPrefix is the public route uploaded images are served under.
const WebPrefix = "/uploads"

// Storage writes uploaded product images into a single shared directory. The
// directory has no per-store namespace, so generated filenames carry a
// timestamp and a random suffix to stay collision-resistant.
type Storage struct {
	dir string
}

// NewStorage creates the upload directory if needed and returns a Storage.
func NewStorage(dir string) (*Storage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory %s: %w", dir, err)
	}
	return &Storage{dir: dir}, nil
}

// Dir returns the filesystem directory images are stored in.
func (s *Storage) Dir() string { return s.dir }

// SaveImage validates and stores one uploaded image, returning the public
// path it will be served from.
func (s *Storage) SaveImage(file *multipart.FileHeader) (string, error) {
	if file.Size > MaxImageSize {
		return "", apperrors.BadRequest("image exceeds the %dMB limit", MaxImageSize>>20)
	}
	if !strings.HasPrefix(file.Header.Get("Content-Type"), "image/") {
		return "", apperrors.BadRequest("uploaded file must be an image")
	}

	name := fmt.Sprintf("%d_%s%s", time.Now().UnixNano(), uuid.New().String(), filepath.Ext(file.Filename))

	src, err := file.Open()
	if err != nil {
		return "", apperrors.Internal("failed to open uploaded image", err)
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", apperrors.Internal("failed to store uploaded image", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", apperrors.Internal("failed to store uploaded image", err)
	}
	return WebPrefix + "/" + name, nil
}

// Remove deletes a previously stored image by its public path. Best-effort: a
// failure is logged and swallowed so it never fails the enclosing request.
func (s *Storage) Remove(path string) {
	if path == "" {
		return
	}
	full := filepath.Join(s.dir, filepath.Base(path))
	if err := os.Remove(full); err != nil && !os.IsNotExist(err) {
		log.Printf("failed to remove superseded image %s: %v", full, err)
	}
}
