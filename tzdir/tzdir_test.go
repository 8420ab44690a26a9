package tzdir

import (
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirectorySortedAndDeduped(t *testing.T) {
	zones := Zones()
	require.NotEmpty(t, zones)
	assert.True(t, sort.StringsAreSorted(zones))

	seen := make(map[string]bool)
	for _, z := range zones {
		assert.False(t, seen[z], "duplicate entry %q", z)
		seen[z] = true
	}
}

func TestValid(t *testing.T) {
	assert.True(t, Valid("America/Los_Angeles"))
	assert.True(t, Valid("Asia/Tokyo"))
	assert.True(t, Valid("UTC"))

	assert.False(t, Valid("America/Nowhere"))
	assert.False(t, Valid(""))
	assert.False(t, Valid("america/los_angeles"))
}

func TestLegacyZonesExcluded(t *testing.T) {
	for _, name := range []string{"US/Pacific", "Etc/UTC", "Etc/GMT+5", "EST", "Japan", "Zulu", "Canada/Eastern"} {
		assert.False(t, Valid(name), "legacy alias %q should be excluded", name)
	}
}

func TestLegacyZonesStartingWithARetained(t *testing.T) {
	// These are on the exclusion list but survive it.
	for _, name := range []string{"America/Atka", "Australia/ACT", "Australia/NSW"} {
		require.True(t, legacyZones[name], "expected %q on the exclusion list", name)
		assert.True(t, Valid(name))
	}
}

func TestResolveName(t *testing.T) {
	assert.Equal(t, "Asia/Tokyo", ResolveName("jst"))
	assert.Equal(t, "Asia/Tokyo", ResolveName("JST"))

	// Full identifiers and junk pass through untouched.
	assert.Equal(t, "Asia/Tokyo", ResolveName("Asia/Tokyo"))
	assert.Equal(t, "not a zone", ResolveName("not a zone"))
}

func TestSearchSubstring(t *testing.T) {
	results := Search("tokyo")
	require.NotEmpty(t, results)
	assert.Equal(t, "Asia/Tokyo", results[0])

	results = Search("Los_Ang")
	require.NotEmpty(t, results)
	assert.Contains(t, results, "America/Los_Angeles")
}

func TestSearchFuzzyFallback(t *testing.T) {
	// Not a substring of anything, close enough for Jaro-Winkler.
	results := Search("America/Los_Angels")
	require.NotEmpty(t, results)
	assert.Equal(t, "America/Los_Angeles", results[0])
}

func TestSearchCapped(t *testing.T) {
	assert.Len(t, Search(""), MaxSuggestions)
	assert.Len(t, Search("America"), MaxSuggestions)
}

func TestSearchNoMatch(t *testing.T) {
	assert.Empty(t, Search("zzzzzzzzzzzzzzzzzzzz"))
}

func TestSearchResultsAreValid(t *testing.T) {
	for _, name := range Search("europe") {
		assert.True(t, Valid(name), "suggestion %q not in directory", name)
		assert.True(t, strings.Contains(strings.ToLower(name), "europe"))
	}
}
