package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

var (
	ErrInvalidName  = errors.New("invalid file name")
	ErrFileNotFound = errors.New("file not found")
)

const defaultExt = ".jpg"

// Store persists uploaded blobs (product images, payment proofs) under a
// caller-generated name and returns the reference to record in the DB.
type Store interface {
	Save(r io.Reader, name string) (string, error)
	Open(reference string) (io.ReadCloser, error)
}

// GenerateName builds "{prefix}_{unixSeconds}{ext}", taking ext from the
// uploaded file name and defaulting to .jpg. Stored files from earlier
// deployments use the same scheme.
func GenerateName(prefix, originalName string, now time.Time) string {
	ext := filepath.Ext(filepath.Base(originalName))
	if ext == "" || ext == "." {
		ext = defaultExt
	}
	return fmt.Sprintf("%s_%d%s", prefix, now.Unix(), ext)
}

type localStore struct {
	dir string
}

func NewLocalStore(dir string) (Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}
	return &localStore{dir: dir}, nil
}

func (s *localStore) Save(r io.Reader, name string) (string, error) {
	ref, err := cleanName(name)
	if err != nil {
		return "", err
	}

	f, err := os.Create(filepath.Join(s.dir, ref))
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", ref, err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", ref, err)
	}
	return ref, nil
}

func (s *localStore) Open(reference string) (io.ReadCloser, error) {
	ref, err := cleanName(reference)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(filepath.Join(s.dir, ref))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrFileNotFound
	}
	if err != nil {
		return nil, err
	}
	return f, nil
}

// cleanName keeps only the final path element so references can never
// escape the upload directory.
func cleanName(name string) (string, error) {
	base := filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	if base == "." || base == "/" || base == ".." || base == "" {
		return "", ErrInvalidName
	}
	return base, nil
}

// Upload is a file received from a multipart form.
type Upload struct {
	Filename string
	Body     io.Reader
}
