package store

import (
	"sort"

	"github.com/MehguViewer/MehguViewer.Core-sub003/internal/entities"
)

// MergePage upserts a page into a unit's ordered collection: a page with the
// same 1-based number replaces the old one, otherwise the page is inserted
// in number order. The input slice is not modified.
func MergePage(pages []entities.Page, p entities.Page) []entities.Page {
	for i := range pages {
		if pages[i].PageNumber == p.PageNumber {
			out := make([]entities.Page, len(pages))
			copy(out, pages)
			out[i] = p
			return out
		}
	}
	out := make([]entities.Page, 0, len(pages)+1)
	out = append(out, pages...)
	out = append(out, p)
	sort.Slice(out, func(i, j int) bool { return out[i].PageNumber < out[j].PageNumber })
	return out
}
