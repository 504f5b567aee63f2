package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/johnquangdev/meeting-insights/pkg/config"
)

// AudioStorage holds uploaded audio until the ingestion pipeline is done with it.
// The returned reference is opaque to callers.
type AudioStorage interface {
	Save(ctx context.Context, filename string, r io.Reader, size int64, contentType string) (string, error)
	Open(ctx context.Context, ref string) (io.ReadCloser, error)
	Remove(ctx context.Context, ref string) error
}

// New builds the backend selected by cfg.Type
func New(cfg *config.StorageConfig) (AudioStorage, error) {
	switch cfg.Type {
	case "local":
		s, err := NewLocalStorage(cfg.LocalDir)
		if err != nil {
			return nil, err
		}
		return s, nil
	case "minio":
		s, err := NewMinIOClient(cfg)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unsupported storage type %q", cfg.Type)
	}
}

// objectName generates a collision free name that keeps the upload's extension
func objectName(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return uuid.NewString() + ext
}
