// Package storage manages uploaded image files: saving multipart uploads
// into the uploads directory, removing them when their owning record goes
// away, and resizing them after upload.
package storage

import (
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"os"
	"path/filepath"
	"time"

	"github.com/disintegration/imaging"
)

// maxDimension bounds the longer edge of stored images.
const maxDimension = 512

// Store is a filesystem-backed image store rooted at a single directory.
type Store struct {
	Dir string
}

// New creates the uploads directory if needed and returns a store over it.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Store{Dir: dir}, nil
}

// Save writes an uploaded file into the store and returns its path.
// Filenames are prefixed with a nanosecond timestamp so concurrent uploads
// of identically named files do not collide.
func (s *Store) Save(fh *multipart.FileHeader) (string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	name := fmt.Sprintf("%d-%s", time.Now().UnixNano(), filepath.Base(fh.Filename))
	path := filepath.Join(s.Dir, name)

	dst, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(path)
		return "", err
	}
	return path, nil
}

// Remove deletes a stored file.
func (s *Store) Remove(path string) error {
	return os.Remove(path)
}

// Resize shrinks the image at path in place so its longer edge is at most
// maxDimension. Images already within bounds are left untouched.
func (s *Store) Resize(path string) error {
	img, err := imaging.Open(path)
	if err != nil {
		return fmt.Errorf("open image: %w", err)
	}
	bounds := img.Bounds()
	if bounds.Dx() <= maxDimension && bounds.Dy() <= maxDimension {
		return nil
	}
	resized := imaging.Fit(img, maxDimension, maxDimension, imaging.Lanczos)
	if err := imaging.Save(resized, path); err != nil {
		return fmt.Errorf("save image: %w", err)
	}
	return nil
}

// ResizeAsync resizes in the background. A failure leaves the original
// upload in place and is only logged; the owning record is already
// committed by the time this runs.
func (s *Store) ResizeAsync(path string) {
	go func() {
		if err := s.Resize(path); err != nil {
			log.Printf("resize %s: %v", path, err)
		}
	}()
}
