// Package domain models the shared region / elevation-band taxonomy that both
// input datasets are reconciled against.
//
// # Regions
//
// A region is identified by a normalized slug: lowercase, with underscore,
// hyphen and whitespace separators unified to a single underscore
// ("South Rockies", "south-rockies" and "south_rockies" are the same region).
// Model data is matched against the full alias set of a slug
// (case-insensitive); station data is matched by exact slug equality after
// normalization.
//
// # Elevation bands
//
// Every band label surfacing in output is one of exactly three canonical
// values: above_treeline, treeline, below_treeline. Raw labels map through a
// fixed alias table ("alpine", "upper", "above" → above_treeline; "mid",
// "middle", "midline", "between" → treeline; "below", "valley", "lower" →
// below_treeline). Labels outside the table are dropped, never defaulted.
//
// # File-name inference
//
// Station files that carry no region column encode region and band in the
// file name, e.g. south_rockies_alpine.csv. Band tokens are scanned
// longest-first so multi-word aliases like "above_treeline" are not shadowed
// by their "above" prefix, first as an interior token bounded by underscores,
// then as a trailing suffix.
//
// # Model specs
//
// A model spec names a (variable, level) pair plus the ordered metric columns
// to extract for it, written as VAR@LEVEL:metric1,metric2 (the legacy
// VAR:LEVEL:metric1,metric2 form is still accepted). When no specs are given
// they are discovered from the loaded model data instead.
package domain
