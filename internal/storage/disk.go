package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DiskStore keeps objects under <baseDir>/<bucket>/<key> and serves them
// from <publicBase>/<bucket>/<key>.
type DiskStore struct {
	baseDir    string
	publicBase string
}

func NewDiskStore(baseDir, publicBase string) *DiskStore {
	if baseDir == "" {
		baseDir = "./uploads"
	}
	if publicBase == "" {
		publicBase = "/static/uploads"
	}
	return &DiskStore{baseDir: baseDir, publicBase: strings.TrimRight(publicBase, "/")}
}

func (s *DiskStore) BaseDir() string { return s.baseDir }

func (s *DiskStore) Upload(ctx context.Context, bucket, key string, data []byte, contentType string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	absPath, err := s.path(bucket, key)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(absPath), 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}
	if err := os.WriteFile(absPath, data, 0o644); err != nil {
		_ = os.Remove(absPath)
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	return s.publicBase + "/" + bucket + "/" + filepath.ToSlash(key), nil
}

func (s *DiskStore) Remove(ctx context.Context, bucket, key string) error {
	absPath, err := s.path(bucket, key)
	if err != nil {
		return err
	}
	if err := os.Remove(absPath); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (s *DiskStore) path(bucket, key string) (string, error) {
	clean := filepath.Clean("/" + key)
	if bucket == "" || strings.Contains(bucket, "..") || strings.ContainsAny(bucket, `/\`) {
		return "", fmt.Errorf("invalid bucket %q", bucket)
	}
	return filepath.Join(s.baseDir, bucket, clean), nil
}
