package cache_test

import (
	"context"
	"errors"
	"testing"

	"catalog-mirror/core/cache"
	"catalog-mirror/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestStorageInvalidator_ObjectName(t *testing.T) {
	inv := cache.NewStorageInvalidator(nil, "docs", cache.Config{Prefix: "cache", Suffix: ".html"})
	assert.Equal(t, "cache/gems.html", inv.ObjectName("/gems"))
	assert.Equal(t, "cache/gems/~r.html", inv.ObjectName("/gems/~r"))
	assert.Equal(t, "cache/gems/rails.html", inv.ObjectName("/gems/rails"))
}

func TestStorageInvalidator_Invalidate(t *testing.T) {
	ctx := context.Background()

	t.Run("Removes every key in one batch", func(t *testing.T) {
		client := new(mocks.Client)
		var removed []string
		client.On("RemoveObjects", mock.Anything, "docs", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) {
				for obj := range args.Get(2).(<-chan minio.ObjectInfo) {
					removed = append(removed, obj.Key)
				}
			}).
			Return(nil)

		inv := cache.NewStorageInvalidator(client, "docs", cache.Config{Prefix: "cache", Suffix: ".html"})
		err := inv.Invalidate(ctx, cache.Keys("gems", "rails"))
		require.NoError(t, err)

		assert.Equal(t, []string{"cache/gems.html", "cache/gems/~r.html", "cache/gems/rails.html"}, removed)
		client.AssertNumberOfCalls(t, "RemoveObjects", 1)
	})

	t.Run("Reports removal errors", func(t *testing.T) {
		client := new(mocks.Client)
		errCh := make(chan minio.RemoveObjectError, 1)
		errCh <- minio.RemoveObjectError{ObjectName: "cache/gems.html", Err: errors.New("access denied")}
		close(errCh)
		client.On("RemoveObjects", mock.Anything, "docs", mock.Anything, mock.Anything).
			Return((<-chan minio.RemoveObjectError)(errCh))

		inv := cache.NewStorageInvalidator(client, "docs", cache.Config{Prefix: "cache", Suffix: ".html"})
		err := inv.Invalidate(ctx, []string{"/gems"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "access denied")
	})

	t.Run("No keys", func(t *testing.T) {
		client := new(mocks.Client)
		inv := cache.NewStorageInvalidator(client, "docs", cache.Config{})
		assert.NoError(t, inv.Invalidate(ctx, nil))
		client.AssertNotCalled(t, "RemoveObjects", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestNop(t *testing.T) {
	assert.NoError(t, cache.Nop{}.Invalidate(context.Background(), []string{"/gems"}))
}

func TestStorageInvalidator_Purge(t *testing.T) {
	ctx := context.Background()
	client := new(mocks.Client)

	listCh := make(chan minio.ObjectInfo, 4)
	listCh <- minio.ObjectInfo{Key: "cache/gems.html"}
	listCh <- minio.ObjectInfo{Key: "cache/gems/~r.html"}
	listCh <- minio.ObjectInfo{Key: "cache/gems/rails.html"}
	listCh <- minio.ObjectInfo{Key: "cache/gems-legacy.html"}
	close(listCh)

	client.On("ListObjects", mock.Anything, "docs", mock.MatchedBy(func(opts minio.ListObjectsOptions) bool {
		return opts.Prefix == "cache/gems" && opts.Recursive
	})).Return((<-chan minio.ObjectInfo)(listCh))

	var removed []string
	client.On("RemoveObjects", mock.Anything, "docs", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			for obj := range args.Get(2).(<-chan minio.ObjectInfo) {
				removed = append(removed, obj.Key)
			}
		}).
		Return(nil)

	inv := cache.NewStorageInvalidator(client, "docs", cache.Config{Prefix: "cache", Suffix: ".html"})
	count, err := inv.Purge(ctx, "gems")
	require.NoError(t, err)
	assert.Equal(t, 3, count)
	assert.Equal(t, []string{"cache/gems.html", "cache/gems/~r.html", "cache/gems/rails.html"}, removed)
}

func TestStorageInvalidator_Check(t *testing.T) {
	ctx := context.Background()

	t.Run("Exists", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "docs").Return(true, nil)
		assert.NoError(t, cache.NewStorageInvalidator(client, "docs", cache.Config{}).Check(ctx))
	})

	t.Run("Missing", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "docs").Return(false, nil)
		assert.ErrorContains(t, cache.NewStorageInvalidator(client, "docs", cache.Config{}).Check(ctx), "does not exist")
	})

	t.Run("Error", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "docs").Return(false, errors.New("denied"))
		assert.ErrorContains(t, cache.NewStorageInvalidator(client, "docs", cache.Config{}).Check(ctx), "denied")
	})
}
