package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// FileDownloader implements [Downloader] by writing artifacts into a local
// export directory. Hand-off is the write completing; nothing downstream
// confirms delivery.
type FileDownloader struct {
	dir string
}

// NewFileDownloader creates a downloader rooted at dir (default "exports").
func NewFileDownloader(dir string) *FileDownloader {
	if dir == "" {
		dir = "exports"
	}
	return &FileDownloader{dir: dir}
}

// Deliver writes the artifact and returns its final path.
func (d *FileDownloader) Deliver(ctx context.Context, filename string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if err := os.MkdirAll(d.dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}

	path := filepath.Join(d.dir, filename)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write export artifact: %w", err)
	}

	return path, nil
}
