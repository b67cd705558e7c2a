package gems

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"catalog-mirror/core/reconcile"
)

// ErrMalformedIndex is returned when the compact index lacks its header terminator.
var ErrMalformedIndex = errors.New("malformed compact index")

const maxLineSize = 4 * 1024 * 1024

// ParseVersions parses the compact index "versions" file into a catalog.
//
// Every line after the "---" separator reads "name v1,v2-platform,-v3 checksum". Lines for
// one name accumulate in file order, and a version prefixed with "-" was yanked and removes the
// matching earlier entry. Names left without versions are omitted.
func ParseVersions(r io.Reader) (reconcile.Catalog, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)

	catalog := make(reconcile.Catalog)
	inBody := false
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if !inBody {
			inBody = line == "---"
			continue
		}
		if line == "" {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 2 {
			return nil, fmt.Errorf("%w: line %d: expected name and versions", ErrMalformedIndex, lineNo)
		}
		name := fields[0]

		for _, token := range strings.Split(fields[1], ",") {
			if token == "" {
				continue
			}
			if yanked, ok := strings.CutPrefix(token, "-"); ok {
				catalog[name] = without(catalog[name], parseRecord(name, yanked))
				continue
			}
			catalog[name] = append(catalog[name], parseRecord(name, token))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read compact index: %w", err)
	}
	if !inBody {
		return nil, fmt.Errorf("%w: missing --- separator", ErrMalformedIndex)
	}

	for name, records := range catalog {
		if len(records) == 0 {
			delete(catalog, name)
		}
	}
	return catalog, nil
}

// parseRecord splits "1.13.0-x86_64-linux" at the first dash into version and platform.
// Versions without a platform suffix belong to the canonical platform.
func parseRecord(name, token string) reconcile.VersionRecord {
	version, platform, found := strings.Cut(token, "-")
	if !found {
		platform = CanonicalPlatform
	}
	return reconcile.VersionRecord{Name: name, Version: version, Platform: platform}
}

func without(records []reconcile.VersionRecord, drop reconcile.VersionRecord) []reconcile.VersionRecord {
	kept := records[:0:0]
	for _, rec := range records {
		if rec != drop {
			kept = append(kept, rec)
		}
	}
	return kept
}
