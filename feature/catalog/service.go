package catalog

import (
	"context"
	"errors"
	"fmt"

	"catalog-mirror/core/reconcile"

	"go.uber.org/zap"
)

// Sync modes accepted by the sync endpoint.
const (
	ModeFull        = "full"
	ModeIncremental = "incremental"
)

// ErrInvalidMode is returned for a sync mode other than full or incremental.
var ErrInvalidMode = errors.New("invalid sync mode")

// Syncer is the orchestration surface the catalog API drives.
type Syncer interface {
	Families() []string
	SupportsIncremental(family string) bool
	FullSync(ctx context.Context, family string) (*reconcile.DiffResult, error)
	IncrementalSync(ctx context.Context, family string) (*reconcile.IncrementalResult, error)
	Register(ctx context.Context, family string, record reconcile.VersionRecord) (bool, error)
	Lookup(ctx context.Context, family, name string) ([]string, error)
}

// FamilyInfo describes one mirrored family.
type FamilyInfo struct {
	Name        string `json:"name"`
	Incremental bool   `json:"incremental"`
}

// Service exposes mirror operations to the HTTP layer.
type Service struct {
	syncer Syncer
	logger *zap.Logger
}

// NewService creates a new catalog service.
func NewService(syncer Syncer, logger *zap.Logger) *Service {
	return &Service{syncer: syncer, logger: logger}
}

// Families lists the mirrored families.
func (s *Service) Families() []FamilyInfo {
	names := s.syncer.Families()
	infos := make([]FamilyInfo, 0, len(names))
	for _, name := range names {
		infos = append(infos, FamilyInfo{Name: name, Incremental: s.syncer.SupportsIncremental(name)})
	}
	return infos
}

// Sync runs one pass of family in the given mode and returns its result.
func (s *Service) Sync(ctx context.Context, family, mode string) (any, error) {
	switch mode {
	case "", ModeFull:
		return s.syncer.FullSync(ctx, family)
	case ModeIncremental:
		return s.syncer.IncrementalSync(ctx, family)
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidMode, mode)
	}
}

// Register records a release published out of band.
func (s *Service) Register(ctx context.Context, family string, record reconcile.VersionRecord) (bool, error) {
	return s.syncer.Register(ctx, family, record)
}

// Lookup returns the mirrored versions of one package.
func (s *Service) Lookup(ctx context.Context, family, name string) ([]string, error) {
	return s.syncer.Lookup(ctx, family, name)
}
