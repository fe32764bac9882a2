package store

import (
	"sort"
	"strings"

	"github.com/MehguViewer/MehguViewer.Core-sub003/internal/entities"
)

// Pagination bounds shared by every list/search operation.
const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// ClampPage normalizes a caller-supplied window: negative offsets become 0,
// limits outside (0, MaxLimit] fall back to DefaultLimit.
func ClampPage(offset, limit int) (int, int) {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 || limit > MaxLimit {
		limit = DefaultLimit
	}
	return offset, limit
}

// SeriesFilter is the search predicate set applied identically by every
// backend. Tag filtering uses AND semantics: a series matches only if it
// carries every requested tag.
type SeriesFilter struct {
	Query  string
	Type   entities.MediaType
	Tags   []string
	Status entities.SeriesStatus
	Offset int
	Limit  int
}

// Matches applies the filter predicates to a single series. Pagination is the
// caller's concern.
func (f SeriesFilter) Matches(s *entities.Series) bool {
	if f.Query != "" && !strings.Contains(strings.ToLower(s.Title), strings.ToLower(f.Query)) {
		return false
	}
	if f.Type != "" && s.MediaType != f.Type {
		return false
	}
	if f.Status != "" && !strings.EqualFold(string(s.Status), string(f.Status)) {
		return false
	}
	for _, want := range f.Tags {
		if !containsFold(s.Tags, want) {
			return false
		}
	}
	return true
}

func containsFold(haystack []string, needle string) bool {
	for _, v := range haystack {
		if strings.EqualFold(v, needle) {
			return true
		}
	}
	return false
}

// SortSeriesByTitle orders series case-insensitively by title, with the id
// as tiebreaker, so paginated listings are stable across backends.
func SortSeriesByTitle(series []entities.Series) {
	sort.Slice(series, func(i, j int) bool {
		ti, tj := strings.ToLower(series[i].Title), strings.ToLower(series[j].Title)
		if ti != tj {
			return ti < tj
		}
		return series[i].ID < series[j].ID
	})
}

// PaginateSeries clamps the window and slices the sorted result.
func PaginateSeries(all []entities.Series, offset, limit int) []entities.Series {
	offset, limit = ClampPage(offset, limit)
	if offset >= len(all) {
		return nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end]
}
