package cache

import "context"

// Invalidator drops cached entries for a set of keys.
type Invalidator interface {
	Invalidate(ctx context.Context, keys []string) error
}

// Nop discards every invalidation. It is used when no cache backend is configured.
type Nop struct{}

// Invalidate implements Invalidator.
func (Nop) Invalidate(context.Context, []string) error {
	return nil
}
