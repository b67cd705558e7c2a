package mocks

import (
	"context"

	"catalog-mirror/core/reconcile"

	"github.com/stretchr/testify/mock"
)

// Syncer is a mock implementation of catalog.Syncer
type Syncer struct {
	mock.Mock
}

func (m *Syncer) Families() []string {
	args := m.Called()
	return args.Get(0).([]string)
}

func (m *Syncer) SupportsIncremental(family string) bool {
	args := m.Called(family)
	return args.Bool(0)
}

func (m *Syncer) FullSync(ctx context.Context, family string) (*reconcile.DiffResult, error) {
	args := m.Called(ctx, family)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*reconcile.DiffResult), args.Error(1)
}

func (m *Syncer) IncrementalSync(ctx context.Context, family string) (*reconcile.IncrementalResult, error) {
	args := m.Called(ctx, family)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*reconcile.IncrementalResult), args.Error(1)
}

func (m *Syncer) Register(ctx context.Context, family string, record reconcile.VersionRecord) (bool, error) {
	args := m.Called(ctx, family, record)
	return args.Bool(0), args.Error(1)
}

func (m *Syncer) Lookup(ctx context.Context, family, name string) ([]string, error) {
	args := m.Called(ctx, family, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}
