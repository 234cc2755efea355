package services

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Storage abstracts where attachment bytes live. Handles returned by Save are
// opaque relative paths: they are persisted as-is and only ever interpreted
// by the same backend, so the storage root can move without a migration.
type Storage interface {
	// Save writes the upload under a freshly generated unique name inside
	// the user's directory and returns the handle plus the byte count.
	Save(userID int64, filename string, src io.Reader) (storedPath string, size int64, err error)

	// Open streams the stored bytes. Returns an error satisfying
	// errors.Is(err, fs.ErrNotExist) when the file is gone.
	Open(storedPath string) (io.ReadCloser, error)

	// Delete removes the stored bytes. Already-absent files are not an
	// error; anything else (permissions, I/O) is.
	Delete(storedPath string) error
}

// LocalStorage stores uploads on the local filesystem under
// <root>/uploads/<user_id>/<random-name>. Handles are relative to root.
type LocalStorage struct {
	root string
}

// NewLocalStorage creates a local storage backend rooted at the data
// directory, creating the uploads directory if needed
func NewLocalStorage(root string) (*LocalStorage, error) {
	if err := os.MkdirAll(filepath.Join(root, "uploads"), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &LocalStorage{root: root}, nil
}

// Save implements Storage
func (s *LocalStorage) Save(userID int64, filename string, src io.Reader) (string, int64, error) {
	userDir := filepath.Join(s.root, "uploads", fmt.Sprintf("%d", userID))
	if err := os.MkdirAll(userDir, 0o755); err != nil {
		return "", 0, fmt.Errorf("failed to create user directory: %w", err)
	}

	name := uniqueName(filename)
	dst, err := os.Create(filepath.Join(userDir, name))
	if err != nil {
		return "", 0, fmt.Errorf("failed to create destination file: %w", err)
	}

	size, err := io.Copy(dst, src)
	if closeErr := dst.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return "", 0, fmt.Errorf("failed to save file: %w", err)
	}

	storedPath := path.Join("uploads", fmt.Sprintf("%d", userID), name)
	return storedPath, size, nil
}

// Open implements Storage
func (s *LocalStorage) Open(storedPath string) (io.ReadCloser, error) {
	return os.Open(s.absPath(storedPath))
}

// Delete implements Storage
func (s *LocalStorage) Delete(storedPath string) error {
	if err := os.Remove(s.absPath(storedPath)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// absPath resolves a stored handle against the storage root. Handles are
// generated by Save and never contain traversal segments, but clean anyway.
func (s *LocalStorage) absPath(storedPath string) string {
	return filepath.Join(s.root, filepath.Clean("/"+storedPath))
}

// uniqueName generates a collision-free stored name, keeping the original
// extension so content sniffing by extension still works
func uniqueName(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return strings.ReplaceAll(uuid.NewString(), "-", "") + ext
}

// notExistErr wraps a missing-object condition so callers can test it with
// errors.Is(err, fs.ErrNotExist) regardless of backend
func notExistErr(storedPath string) error {
	return fmt.Errorf("stored file %s: %w", storedPath, fs.ErrNotExist)
}
