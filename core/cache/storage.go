package cache

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"catalog-mirror/core/storage"

	"github.com/minio/minio-go/v7"
)

// StorageInvalidator removes cached pages stored as objects in a bucket.
// Key "/gems/~r" maps to object "<prefix>/gems/~r<suffix>".
type StorageInvalidator struct {
	client storage.Client
	bucket string
	prefix string
	suffix string
}

// NewStorageInvalidator creates an invalidator for the given bucket.
func NewStorageInvalidator(client storage.Client, bucket string, cfg Config) *StorageInvalidator {
	return &StorageInvalidator{
		client: client,
		bucket: bucket,
		prefix: cfg.Prefix,
		suffix: cfg.Suffix,
	}
}

// ObjectName returns the object that caches key.
func (s *StorageInvalidator) ObjectName(key string) string {
	return path.Join(s.prefix, strings.TrimPrefix(key, "/")) + s.suffix
}

// Invalidate removes the objects for keys in one batch.
func (s *StorageInvalidator) Invalidate(ctx context.Context, keys []string) error {
	if len(keys) == 0 {
		return nil
	}

	objectsCh := make(chan minio.ObjectInfo, len(keys))
	for _, key := range keys {
		objectsCh <- minio.ObjectInfo{Key: s.ObjectName(key)}
	}
	close(objectsCh)

	var errs error
	for rErr := range s.client.RemoveObjects(ctx, s.bucket, objectsCh, minio.RemoveObjectsOptions{}) {
		errs = errors.Join(errs, fmt.Errorf("failed to remove %s: %w", rErr.ObjectName, rErr.Err))
	}
	return errs
}

// Purge removes every cached page of a family and returns how many objects were removed.
func (s *StorageInvalidator) Purge(ctx context.Context, family string) (int, error) {
	prefix := path.Join(s.prefix, family)
	objects := s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	})

	var (
		listErr  error
		toRemove []minio.ObjectInfo
	)
	for obj := range objects {
		if obj.Err != nil {
			listErr = errors.Join(listErr, obj.Err)
			continue
		}
		// The prefix also matches siblings such as "cache/gems-legacy"
		if obj.Key != prefix+s.suffix && !strings.HasPrefix(obj.Key, prefix+"/") {
			continue
		}
		toRemove = append(toRemove, obj)
	}
	if listErr != nil {
		return 0, fmt.Errorf("failed to list cached pages for %s: %w", family, listErr)
	}
	if len(toRemove) == 0 {
		return 0, nil
	}

	objectsCh := make(chan minio.ObjectInfo, len(toRemove))
	for _, obj := range toRemove {
		objectsCh <- obj
	}
	close(objectsCh)

	failed := 0
	var errs error
	for rErr := range s.client.RemoveObjects(ctx, s.bucket, objectsCh, minio.RemoveObjectsOptions{}) {
		failed++
		errs = errors.Join(errs, fmt.Errorf("failed to remove %s: %w", rErr.ObjectName, rErr.Err))
	}
	return len(toRemove) - failed, errs
}

// Check verifies the cache bucket exists.
func (s *StorageInvalidator) Check(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket %s: %w", s.bucket, err)
	}
	if !exists {
		return fmt.Errorf("cache bucket %s does not exist", s.bucket)
	}
	return nil
}
