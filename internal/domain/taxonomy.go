package domain

import (
	"path/filepath"
	"sort"
	"strings"
)

// Bands lists the three canonical elevation bands in vertical order,
// top to bottom. Every band key in the output documents is one of these.
var Bands = []string{"above_treeline", "treeline", "below_treeline"}

// bandAliases maps every accepted raw spelling onto its canonical band.
// Keys are compared after lowercasing and trimming.
var bandAliases = map[string]string{
	"above_treeline": "above_treeline",
	"above-treeline": "above_treeline",
	"alpine":         "above_treeline",
	"upper":          "above_treeline",
	"above":          "above_treeline",

	"treeline": "treeline",
	"mid":      "treeline",
	"middle":   "treeline",
	"midline":  "treeline",
	"between":  "treeline",

	"below_treeline": "below_treeline",
	"below-treeline": "below_treeline",
	"below":          "below_treeline",
	"valley":         "below_treeline",
	"lower":          "below_treeline",
}

// bandTokens holds the alias keys longest-first so that multi-word aliases
// ("above_treeline") are matched before the short tokens that prefix them
// ("above") when scanning file names.
var bandTokens = func() []string {
	tokens := make([]string, 0, len(bandAliases))
	for k := range bandAliases {
		tokens = append(tokens, k)
	}
	sort.Slice(tokens, func(i, j int) bool {
		if len(tokens[i]) != len(tokens[j]) {
			return len(tokens[i]) > len(tokens[j])
		}
		return tokens[i] < tokens[j]
	})
	return tokens
}()

// CanonicalBand maps a raw elevation band label onto a canonical band.
// Unknown or blank labels report ok=false; callers drop those rows rather
// than defaulting them.
func CanonicalBand(raw string) (string, bool) {
	key := strings.ToLower(strings.TrimSpace(raw))
	if key == "" {
		return "", false
	}
	band, ok := bandAliases[key]
	return band, ok
}

// NormalizeRegion lowercases a region name, unifies underscore and hyphen
// separators to spaces, and collapses runs of whitespace.
func NormalizeRegion(value string) string {
	text := strings.ToLower(value)
	text = strings.ReplaceAll(text, "_", " ")
	text = strings.ReplaceAll(text, "-", " ")
	return strings.Join(strings.Fields(text), " ")
}

// SlugifyRegion converts any raw region spelling into its canonical slug.
func SlugifyRegion(value string) string {
	return strings.ReplaceAll(NormalizeRegion(value), " ", "_")
}

// RegionAliases returns the plausible raw spellings of a region slug, used
// for case-insensitive membership matching against heterogeneous model data.
// The order is deterministic: lowercased input, spaced, underscored,
// hyphenated, with duplicates removed.
func RegionAliases(slug string) []string {
	norm := NormalizeRegion(slug)
	candidates := []string{
		strings.ToLower(slug),
		norm,
		strings.ReplaceAll(norm, " ", "_"),
		strings.ReplaceAll(norm, " ", "-"),
	}
	seen := make(map[string]bool, len(candidates))
	aliases := make([]string, 0, len(candidates))
	for _, c := range candidates {
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		aliases = append(aliases, c)
	}
	return aliases
}

// InferRegionBand extracts a region slug and canonical band from a station
// file name such as south_rockies_alpine.csv. Band tokens are tried
// longest-first, first as an interior "_token_" marker and then as a
// trailing "_token" suffix. ok is false when no band token is found.
func InferRegionBand(path string) (region, band string, ok bool) {
	stem := strings.ToLower(filepath.Base(path))
	if ext := filepath.Ext(stem); ext != "" {
		stem = strings.TrimSuffix(stem, ext)
	}
	for _, token := range bandTokens {
		marker := "_" + token + "_"
		if idx := strings.Index(stem, marker); idx >= 0 {
			return stem[:idx], bandAliases[token], true
		}
	}
	for _, token := range bandTokens {
		suffix := "_" + token
		if strings.HasSuffix(stem, suffix) {
			region := strings.TrimSuffix(stem, suffix)
			region = strings.TrimSuffix(region, "_")
			return region, bandAliases[token], true
		}
	}
	return "", "", false
}
