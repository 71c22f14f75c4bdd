package upload

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ErrDisallowedType is returned when an uploaded file's extension is not
// in the allow-list.
var ErrDisallowedType = errors.New("file type not allowed")

var allowedExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".svg":  true,
}

// LogoStore writes topic logos to a directory on local disk. The stored
// filename is an opaque reference kept on the topic row; nothing here
// reads back image bytes.
type LogoStore struct {
	dir string
}

// NewLogoStore creates a LogoStore rooted at dir, creating it if needed.
func NewLogoStore(dir string) (*LogoStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &LogoStore{dir: dir}, nil
}

// Dir returns the directory logos are stored in, for static file serving.
func (s *LogoStore) Dir() string {
	return s.dir
}

// Save stores an uploaded logo under a fresh unique filename and returns
// that filename.
func (s *LogoStore) Save(file multipart.File, originalName string) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	if !allowedExtensions[ext] {
		return "", ErrDisallowedType
	}

	filename := uuid.NewString() + ext
	dst, err := os.Create(filepath.Join(s.dir, filename))
	if err != nil {
		return "", fmt.Errorf("failed to create logo file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		// Best effort: don't leave a truncated file behind.
		os.Remove(dst.Name())
		return "", fmt.Errorf("failed to write logo file: %w", err)
	}
	return filename, nil
}

// Delete removes a previously stored logo. A missing file is not an
// error; the filename on the topic row is only an opaque reference.
func (s *LogoStore) Delete(filename string) error {
	if filename == "" {
		return nil
	}
	err := os.Remove(filepath.Join(s.dir, filename))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete logo file: %w", err)
	}
	return nil
}
