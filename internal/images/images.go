// Package images stores shirt photo attachments on disk.
package images

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// allowedExtensions is the accepted image file set, keyed by lowercase
// extension including the dot.
var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// Store copies image files into a managed directory. File names embed the
// shirt id and a random suffix so repeated uploads never collide.
type Store struct {
	dir string
}

// NewStore creates the image directory if needed and returns a store over it.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating images directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the managed directory.
func (s *Store) Dir() string {
	return s.dir
}

// Save copies the file at srcPath into the store and returns the stored
// path. The source must carry a recognized image extension.
func (s *Store) Save(shirtID int64, srcPath string) (string, error) {
	ext := strings.ToLower(filepath.Ext(srcPath))
	if !allowedExtensions[ext] {
		return "", fmt.Errorf("unsupported image type %q", ext)
	}

	src, err := os.Open(srcPath)
	if err != nil {
		return "", fmt.Errorf("opening image: %w", err)
	}
	defer src.Close()

	name := fmt.Sprintf("shirt_%d_%s%s", shirtID, uuid.NewString()[:8], ext)
	dstPath := filepath.Join(s.dir, name)
	dst, err := os.Create(dstPath)
	if err != nil {
		return "", fmt.Errorf("creating stored image: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(dstPath)
		return "", fmt.Errorf("copying image: %w", err)
	}
	return dstPath, nil
}

// Remove deletes a stored image. Paths outside the managed directory are
// refused so a stale record can never delete arbitrary files.
func (s *Store) Remove(storedPath string) error {
	rel, err := filepath.Rel(s.dir, storedPath)
	if err != nil || strings.HasPrefix(rel, "..") {
		return fmt.Errorf("path %q is outside the images directory", storedPath)
	}
	if err := os.Remove(storedPath); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
