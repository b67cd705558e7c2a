package modules

import (
	"context"
	"fmt"
	"iter"
	"net/url"
	"strconv"
	"time"

	"catalog-mirror/core/reconcile"
	"catalog-mirror/core/upstream"
)

// Forge timestamps look like "2019-07-08 05:26:45 -0700".
const forgeTimeLayout = "2006-01-02 15:04:05 -0700"

type pagination struct {
	Next *string `json:"next"`
}

type modulePage struct {
	Pagination pagination `json:"pagination"`
	Results    []struct {
		Slug     string `json:"slug"`
		Releases []struct {
			Version string `json:"version"`
		} `json:"releases"`
	} `json:"results"`
}

type releasePage struct {
	Pagination pagination `json:"pagination"`
	Results    []struct {
		Version   string `json:"version"`
		CreatedAt string `json:"created_at"`
		Module    struct {
			Slug string `json:"slug"`
		} `json:"module"`
	} `json:"results"`
}

// Forge reads module and release listings from a Forge v3 API.
type Forge struct {
	client   *upstream.Client
	pageSize int
	maxPages int
}

// NewForge creates a Forge reader.
func NewForge(client *upstream.Client, cfg Config) *Forge {
	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = 100
	}
	return &Forge{client: client, pageSize: pageSize, maxPages: cfg.MaxPages}
}

func (f *Forge) firstPage(path, sortBy string) string {
	q := url.Values{}
	q.Set("sort_by", sortBy)
	q.Set("limit", strconv.Itoa(f.pageSize))
	return path + "?" + q.Encode()
}

// Modules walks the module listing and returns every module with its releases.
// When MaxPages stops the walk before the last page, the modules read so far are returned
// with an error wrapping reconcile.ErrPartialCatalog.
func (f *Forge) Modules(ctx context.Context) (reconcile.Catalog, error) {
	catalog := make(reconcile.Catalog)
	next := f.firstPage("/v3/modules", "latest_release")

	for pages := 0; next != ""; pages++ {
		if f.maxPages > 0 && pages >= f.maxPages {
			return catalog, fmt.Errorf("%w: module listing stopped after %d pages", reconcile.ErrPartialCatalog, pages)
		}

		var page modulePage
		if err := f.client.GetJSON(ctx, next, &page); err != nil {
			return nil, fmt.Errorf("failed to list modules: %w", err)
		}

		for _, mod := range page.Results {
			if mod.Slug == "" {
				continue
			}
			records := make([]reconcile.VersionRecord, 0, len(mod.Releases))
			for _, rel := range mod.Releases {
				if rel.Version != "" {
					records = append(records, reconcile.VersionRecord{Name: mod.Slug, Version: rel.Version})
				}
			}
			if len(records) > 0 {
				catalog[mod.Slug] = records
			}
		}
		next = nextPage(page.Pagination)
	}

	return catalog, nil
}

// Releases streams releases newest first, fetching pages as the consumer advances.
// A page error is yielded once and ends the stream.
func (f *Forge) Releases(ctx context.Context) iter.Seq2[reconcile.Release, error] {
	return func(yield func(reconcile.Release, error) bool) {
		next := f.firstPage("/v3/releases", "release_date")

		for next != "" {
			var page releasePage
			if err := f.client.GetJSON(ctx, next, &page); err != nil {
				yield(reconcile.Release{}, fmt.Errorf("failed to list releases: %w", err))
				return
			}

			for _, rel := range page.Results {
				if rel.Module.Slug == "" || rel.Version == "" {
					continue
				}
				release := reconcile.Release{
					Name:        rel.Module.Slug,
					Version:     rel.Version,
					PublishedAt: parseForgeTime(rel.CreatedAt),
				}
				if !yield(release, nil) {
					return
				}
			}
			next = nextPage(page.Pagination)
		}
	}
}

func nextPage(p pagination) string {
	if p.Next == nil {
		return ""
	}
	return *p.Next
}

// parseForgeTime returns the zero time for values it cannot read, which disables the
// ordering check for that release.
func parseForgeTime(value string) time.Time {
	for _, layout := range []string{forgeTimeLayout, time.RFC3339} {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return time.Time{}
}
