package main

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// localFileStore keeps uploaded documents on disk under a flat base
// directory. Stored names are UUIDs so originals can collide freely.
type localFileStore struct {
	base string
}

func newLocalFileStore(base string) *localFileStore {
	return &localFileStore{base: base}
}

// Save writes the uploaded file under a fresh UUID name, keeping the
// original extension, and returns the stored filename.
func (s *localFileStore) Save(file *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	name := uuid.NewString() + ext
	if err := os.MkdirAll(s.base, 0755); err != nil {
		return "", err
	}
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()
	dst, err := os.Create(filepath.Join(s.base, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()
	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(dst.Name())
		return "", err
	}
	return name, nil
}

// Open resolves a stored filename to its contents. Rejects names that
// escape the base directory.
func (s *localFileStore) Open(storePath string) (io.ReadCloser, error) {
	if !validStoreName(storePath) {
		return nil, fmt.Errorf("invalid stored filename %q", storePath)
	}
	return os.Open(filepath.Join(s.base, storePath))
}

// Path returns the on-disk location of a stored filename.
func (s *localFileStore) Path(storePath string) string {
	if !validStoreName(storePath) {
		return ""
	}
	return filepath.Join(s.base, storePath)
}

func validStoreName(name string) bool {
	return name != "" && !strings.Contains(name, "..") && !strings.ContainsAny(name, `/\`)
}
