package images

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

const (
	MaxImageSize   = 10 * 1024 * 1024 // 10 MB decoded
	UploadsBaseDir = "./uploads"
	StaticURLBase  = "/static/uploads"
)

var (
	ErrInvalidImage      = errors.New("invalid base64 image payload")
	ErrUnsupportedFormat = errors.New("unsupported image format")
	ErrImageTooLarge     = errors.New("image exceeds size limit")
)

// allowedFormats mirrors what clients actually send for avatars and
// recipe photos.
var allowedFormats = map[string]string{
	"jpeg": ".jpg",
	"jpg":  ".jpg",
	"png":  ".png",
}

// Store writes base64 data-URL images to local disk and serves them
// through a static URL prefix. Save -> file on disk -> public URL.
type Store struct {
	baseDir    string // absolute path to uploads dir
	staticBase string // URL prefix for serving files
}

func NewStore(baseDir, staticBase string) *Store {
	if baseDir == "" {
		baseDir = UploadsBaseDir
	}
	if staticBase == "" {
		staticBase = StaticURLBase
	}
	return &Store{baseDir: baseDir, staticBase: staticBase}
}

// SaveDataURL decodes a "data:image/<fmt>;base64,<payload>" string,
// writes it to disk under a random name and returns the public URL.
func (s *Store) SaveDataURL(data string) (string, error) {
	if !strings.HasPrefix(data, "data:image/") {
		return "", ErrInvalidImage
	}

	meta, payload, ok := strings.Cut(data, ";base64,")
	if !ok || payload == "" {
		return "", ErrInvalidImage
	}

	format := strings.TrimPrefix(meta, "data:image/")
	ext, allowed := allowedFormats[strings.ToLower(format)]
	if !allowed {
		return "", ErrUnsupportedFormat
	}

	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", ErrInvalidImage
	}
	if len(raw) == 0 {
		return "", ErrInvalidImage
	}
	if len(raw) > MaxImageSize {
		return "", ErrImageTooLarge
	}

	if err := os.MkdirAll(s.baseDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	filename := uuid.New().String() + ext
	absPath := filepath.Join(s.baseDir, filename)
	if err := os.WriteFile(absPath, raw, 0644); err != nil {
		return "", fmt.Errorf("failed to write image: %w", err)
	}

	return s.staticBase + "/" + filename, nil
}

// Remove deletes the file behind a URL previously returned by
// SaveDataURL. Missing files are not an error.
func (s *Store) Remove(url string) error {
	if !strings.HasPrefix(url, s.staticBase+"/") {
		return nil // not one of ours
	}
	name := filepath.Base(strings.TrimPrefix(url, s.staticBase+"/"))
	err := os.Remove(filepath.Join(s.baseDir, name))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
