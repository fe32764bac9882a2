// Package library holds pure transforms over the entity model that both
// storage backends share, so the two stay behaviorally identical.
package library

import (
	"sort"
	"strings"

	"github.com/MehguViewer/MehguViewer.Core-sub003/internal/entities"
)

// Aggregate derives a series' searchable metadata from its units: the
// sorted-unique union of tags, authors, scanlators and content warnings. The
// input series is not mutated; the returned value carries the replaced
// fields. Aggregating twice over the same unit set yields the same result.
func Aggregate(s entities.Series, units []entities.Unit) entities.Series {
	var tags, warnings, authors, scanlators []string
	for _, u := range units {
		tags = append(tags, u.Tags...)
		warnings = append(warnings, u.ContentWarnings...)
		authors = append(authors, u.Authors...)
		scanlators = append(scanlators, u.Scanlators...)
	}
	s.Tags = sortedUnique(tags)
	s.ContentWarnings = sortedUnique(warnings)
	s.Authors = sortedUnique(authors)
	s.Scanlators = sortedUnique(scanlators)
	return s
}

// sortedUnique deduplicates case-insensitively, keeping the first spelling
// seen, and returns nil for an empty union so aggregated fields serialize
// the same way as never-set ones.
func sortedUnique(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	var out []string
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		key := strings.ToLower(v)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i]) < strings.ToLower(out[j])
	})
	return out
}
