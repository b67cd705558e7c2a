package mirror

import (
	"context"
	"errors"
	"strings"
)

// ErrNotFound is returned by Get when the mirror holds no row for a name.
var ErrNotFound = errors.New("mirror row not found")

// Store is the persisted name -> ordered version list mapping of one catalog family.
// Version lists handed out are fresh slices; callers may keep them.
type Store interface {
	// GetAll returns every row keyed by name.
	GetAll(ctx context.Context) (map[string][]string, error)

	// Get returns the versions of a single row or ErrNotFound.
	Get(ctx context.Context, name string) ([]string, error)

	// Set creates or overwrites the row for name. Duplicate and empty versions are dropped.
	Set(ctx context.Context, name string, versions []string) error

	// Delete removes the row for name. Deleting an absent row is not an error.
	Delete(ctx context.Context, name string) error

	// RunInTransaction runs fn against a store bound to one transaction.
	// Every operation performed through tx commits together or not at all.
	RunInTransaction(ctx context.Context, fn func(tx Store) error) error
}

// Normalize drops empty and duplicate versions, keeping first-seen order.
func Normalize(versions []string) []string {
	out := make([]string, 0, len(versions))
	seen := make(map[string]struct{}, len(versions))
	for _, v := range versions {
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// encodeVersions joins versions into the space separated column format.
func encodeVersions(versions []string) string {
	return strings.Join(Normalize(versions), " ")
}

// decodeVersions splits the column format back into a list.
func decodeVersions(column string) []string {
	return strings.Fields(column)
}
