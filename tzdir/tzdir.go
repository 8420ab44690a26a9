// Package tzdir holds the directory of timezone identifiers users may pick
// from, plus fuzzy lookup for interactive suggestions.
//
//go:generate go run generate/gendirectory.go
package tzdir

import (
	"sort"
	"strings"

	"github.com/chis-dev/chisbot/common/fuzzy"
	"github.com/tkuchiki/go-timezone"
)

// MaxSuggestions caps Search results, matching the discord autocomplete limit.
const MaxSuggestions = 25

// legacyZones are deprecated aliases and region aggregates from the IANA
// "backward" set that we drop from the directory, they only add noise to
// suggestions. Names starting with "A" are retained anyway, see filtered().
var legacyZones = map[string]bool{
	"America/Atka":         true,
	"Australia/ACT":        true,
	"Australia/Canberra":   true,
	"Australia/LHI":        true,
	"Australia/NSW":        true,
	"Australia/North":      true,
	"Australia/Queensland": true,
	"Australia/South":      true,
	"Australia/Tasmania":   true,
	"Australia/Victoria":   true,
	"Australia/West":       true,
	"Australia/Yancowinna": true,
	"CET":                  true,
	"CST6CDT":              true,
	"Cuba":                 true,
	"EET":                  true,
	"EST":                  true,
	"EST5EDT":              true,
	"Egypt":                true,
	"Eire":                 true,
	"GB":                   true,
	"GB-Eire":              true,
	"GMT+0":                true,
	"GMT-0":                true,
	"GMT0":                 true,
	"Greenwich":            true,
	"HST":                  true,
	"Hongkong":             true,
	"Iceland":              true,
	"Iran":                 true,
	"Israel":               true,
	"Jamaica":              true,
	"Japan":                true,
	"Kwajalein":            true,
	"Libya":                true,
	"MET":                  true,
	"MST":                  true,
	"MST7MDT":              true,
	"NZ":                   true,
	"NZ-CHAT":              true,
	"Navajo":               true,
	"PRC":                  true,
	"PST8PDT":              true,
	"Poland":               true,
	"Portugal":             true,
	"ROC":                  true,
	"ROK":                  true,
	"Singapore":            true,
	"Turkey":               true,
	"UCT":                  true,
	"Universal":            true,
	"W-SU":                 true,
	"WET":                  true,
	"Zulu":                 true,
}

// legacyPrefixes are whole alias families dropped by prefix.
var legacyPrefixes = []string{
	"Brazil/",
	"Canada/",
	"Chile/",
	"Etc/",
	"Mexico/",
	"US/",
}

var directory = filtered(ianaZoneNames)

func filtered(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))

	for _, name := range names {
		if seen[name] || excluded(name) {
			continue
		}

		seen[name] = true
		out = append(out, name)
	}

	sort.Strings(out)
	return out
}

func excluded(name string) bool {
	// "A" names survive the exclusion list, the original directory shipped
	// with them and user preferences may reference them.
	if strings.HasPrefix(name, "A") {
		return false
	}

	if legacyZones[name] {
		return true
	}

	for _, prefix := range legacyPrefixes {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}

	return false
}

// Zones returns the full directory, sorted.
func Zones() []string {
	return directory
}

// Valid reports whether name is in the directory, case sensitively.
func Valid(name string) bool {
	i := sort.SearchStrings(directory, name)
	return i < len(directory) && directory[i] == name
}

// ResolveName expands a timezone abbreviation ("est", "jst") to its first
// matching zone identifier. Input that is not a known abbreviation is
// returned unchanged.
func ResolveName(input string) string {
	names, err := timezone.GetTimezones(strings.ToUpper(input))
	if err == nil && len(names) > 0 {
		return names[0]
	}

	return input
}

// Search returns up to MaxSuggestions directory entries matching query,
// substring matches first, then close fuzzy matches. An empty query returns
// the head of the directory.
func Search(query string) []string {
	if query == "" {
		return directory[:MaxSuggestions]
	}

	var matches []string
	lowered := strings.ToLower(query)
	for _, name := range directory {
		if strings.Contains(strings.ToLower(name), lowered) {
			matches = append(matches, name)
			if len(matches) >= MaxSuggestions {
				return matches
			}
		}
	}

	for _, sel := range fuzzy.SelectN(query, directory, fuzzy.AdaptiveThreshold, false, MaxSuggestions-len(matches)) {
		if !contains(matches, sel.Value) {
			matches = append(matches, sel.Value)
		}
	}

	return matches
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}

	return false
}
