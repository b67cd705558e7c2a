package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// Invalidator is a mock implementation of cache.Invalidator
type Invalidator struct {
	mock.Mock
}

func (m *Invalidator) Invalidate(ctx context.Context, keys []string) error {
	args := m.Called(ctx, keys)
	return args.Error(0)
}
