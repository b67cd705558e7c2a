package gems

import (
	"strings"
	"testing"

	"catalog-mirror/core/reconcile"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleIndex = `created_at: 2024-04-01T00:00:05Z
---
- 1 6bb5a1fc4f8d8c3b1d6b0b6b3b0f7e0e
nokogiri 1.16.0,1.16.0-java,1.16.0-x86_64-linux 1cbe4d3a
rails 7.1.0,7.0.8 0d1b1f5e
nokogiri 1.16.1-java 77f2a1c0
rack 3.0.0 0a0a0a0a
rack -3.0.0 0b0b0b0b
`

func TestParseVersions(t *testing.T) {
	catalog, err := ParseVersions(strings.NewReader(sampleIndex))
	require.NoError(t, err)

	assert.Equal(t, []reconcile.VersionRecord{
		{Name: "nokogiri", Version: "1.16.0", Platform: "ruby"},
		{Name: "nokogiri", Version: "1.16.0", Platform: "java"},
		{Name: "nokogiri", Version: "1.16.0", Platform: "x86_64-linux"},
		{Name: "nokogiri", Version: "1.16.1", Platform: "java"},
	}, catalog["nokogiri"])

	assert.Equal(t, []reconcile.VersionRecord{
		{Name: "rails", Version: "7.1.0", Platform: "ruby"},
		{Name: "rails", Version: "7.0.8", Platform: "ruby"},
	}, catalog["rails"])

	_, ok := catalog["rack"]
	assert.False(t, ok, "fully yanked gems are omitted")

	// "-" with version "1" is a real (oddly named) gem
	assert.Equal(t, []reconcile.VersionRecord{{Name: "-", Version: "1", Platform: "ruby"}}, catalog["-"])
}

func TestParseVersions_Yanked(t *testing.T) {
	index := "---\nfoo 1.0,2.0,2.0-java\nfoo -2.0\n"
	catalog, err := ParseVersions(strings.NewReader(index))
	require.NoError(t, err)

	assert.Equal(t, []reconcile.VersionRecord{
		{Name: "foo", Version: "1.0", Platform: "ruby"},
		{Name: "foo", Version: "2.0", Platform: "java"},
	}, catalog["foo"])
}

func TestParseVersions_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "MissingSeparator", input: "rails 7.1.0 abc\n"},
		{name: "MissingVersions", input: "---\nrails\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseVersions(strings.NewReader(tt.input))
			assert.ErrorIs(t, err, ErrMalformedIndex)
		})
	}
}

func TestParseVersions_Empty(t *testing.T) {
	catalog, err := ParseVersions(strings.NewReader("created_at: now\n---\n"))
	require.NoError(t, err)
	assert.Empty(t, catalog)
}
