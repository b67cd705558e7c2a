package reconcile

import "sort"

// containsAll reports whether every version in subset is present in superset.
// Equivalent to set(superset) == set(superset ∪ subset).
func containsAll(superset, subset []string) bool {
	have := make(map[string]struct{}, len(superset))
	for _, v := range superset {
		have[v] = struct{}{}
	}
	for _, v := range subset {
		if _, ok := have[v]; !ok {
			return false
		}
	}
	return true
}

func contains(versions []string, version string) bool {
	for _, v := range versions {
		if v == version {
			return true
		}
	}
	return false
}

// merge returns existing followed by the versions of added it does not already hold.
func merge(existing, added []string) []string {
	out := make([]string, 0, len(existing)+len(added))
	out = append(out, existing...)
	for _, v := range added {
		if !contains(out, v) {
			out = append(out, v)
		}
	}
	return out
}

// prepend returns a new list with version in front of versions.
func prepend(version string, versions []string) []string {
	out := make([]string, 0, len(versions)+1)
	out = append(out, version)
	return append(out, versions...)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedStrings(s []string) []string {
	sort.Strings(s)
	return s
}
