package cache

import "unicode/utf8"

// Keys returns the cache keys that go stale when a package of family changes:
// the family index root, the first-letter shard and the package's own key.
func Keys(family, name string) []string {
	root := "/" + family
	return []string{
		root,
		root + "/~" + firstChar(name),
		root + "/" + name,
	}
}

func firstChar(s string) string {
	if s == "" {
		return ""
	}
	_, size := utf8.DecodeRuneInString(s)
	return s[:size]
}
