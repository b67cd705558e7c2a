// Package storage provides an abstraction layer for the object storage holding cached pages.
//
// It wraps the MinIO Go client, which supports both AWS S3 and self-hosted MinIO instances.
// Only the operations the page cache needs are exposed: a bucket liveness check, prefix
// listing and batched removal.
//
// The Client interface makes storage interactions easy to mock in unit tests
// (see core/storage/mocks).
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	exists, err := client.BucketExists(ctx, "docs")
package storage
