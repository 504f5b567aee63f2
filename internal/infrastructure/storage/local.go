package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalStorage keeps audio files in a directory on disk
type LocalStorage struct {
	dir string
}

// NewLocalStorage creates dir if needed
func NewLocalStorage(dir string) (*LocalStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve upload dir: %w", err)
	}
	return &LocalStorage{dir: abs}, nil
}

// Save writes r to a new file and returns its path
func (l *LocalStorage) Save(ctx context.Context, filename string, r io.Reader, size int64, contentType string) (string, error) {
	path := filepath.Join(l.dir, objectName(filename))

	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to close file: %w", err)
	}
	return path, nil
}

// Open opens a previously saved file
func (l *LocalStorage) Open(ctx context.Context, ref string) (io.ReadCloser, error) {
	path, err := l.resolve(ref)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open audio: %w", err)
	}
	return f, nil
}

// Remove deletes a previously saved file
func (l *LocalStorage) Remove(ctx context.Context, ref string) error {
	path, err := l.resolve(ref)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("failed to remove audio: %w", err)
	}
	return nil
}

// resolve rejects references outside the storage directory
func (l *LocalStorage) resolve(ref string) (string, error) {
	path := filepath.Clean(ref)
	if !filepath.IsAbs(path) {
		path = filepath.Join(l.dir, path)
	}
	rel, err := filepath.Rel(l.dir, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("audio reference %q is outside storage", ref)
	}
	return path, nil
}
