package memory

import (
	"fmt"
	"sort"

	"github.com/MehguViewer/MehguViewer.Core-sub003/internal/entities"
	"github.com/MehguViewer/MehguViewer.Core-sub003/internal/library"
	"github.com/MehguViewer/MehguViewer.Core-sub003/internal/store"
)

// CreateUnit inserts a unit. Its series must exist at creation time; a
// concurrent series deletion may still leave the unit orphaned afterwards,
// which the cascade scan tolerates.
func (s *Store) CreateUnit(u *entities.Unit) error {
	if err := store.ValidateID(u.ID); err != nil {
		return err
	}
	if u.SeriesID == "" {
		return fmt.Errorf("%w: unit series_id is required", store.ErrInvalidArgument)
	}
	if _, ok := s.series.get(u.SeriesID); !ok {
		return fmt.Errorf("%w: series %s", store.ErrMissingReference, u.SeriesID)
	}
	if !s.units.insert(u.ID, *u) {
		return fmt.Errorf("%w: unit %s", store.ErrConflict, u.ID)
	}
	s.reaggregate(u.SeriesID)
	return nil
}

// UpdateUnit replaces the record and synchronously re-aggregates the parent
// series' metadata.
func (s *Store) UpdateUnit(u *entities.Unit) error {
	if err := store.ValidateID(u.ID); err != nil {
		return err
	}
	s.units.put(u.ID, *u)
	s.reaggregate(u.SeriesID)
	return nil
}

// GetUnit returns nil for a missing id.
func (s *Store) GetUnit(id string) (*entities.Unit, error) {
	if id == "" {
		return nil, nil
	}
	v, ok := s.units.get(id)
	if !ok {
		return nil, nil
	}
	return &v, nil
}

// ListUnits returns the series' units ordered by unit number.
func (s *Store) ListUnits(seriesID string) ([]entities.Unit, error) {
	var out []entities.Unit
	for _, u := range s.units.entries() {
		if u.SeriesID == seriesID {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].UnitNumber != out[j].UnitNumber {
			return out[i].UnitNumber < out[j].UnitNumber
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// DeleteUnit removes the unit and its pages, then re-aggregates the parent.
// The page collection is dropped even when the unit row is absent, which the
// switcher relies on when units live in the file store.
func (s *Store) DeleteUnit(id string) error {
	if err := store.ValidateID(id); err != nil {
		return err
	}
	u, ok := s.units.get(id)
	s.units.remove(id)
	s.pages.remove(id)
	if ok {
		s.reaggregate(u.SeriesID)
	}
	return nil
}

// AddPage upserts a page into the unit's ordered collection, keyed by its
// 1-based page number. The unit reference is by id only: unit records may be
// held by the file store instead of this backend.
func (s *Store) AddPage(p *entities.Page) error {
	if err := store.ValidateID(p.UnitID); err != nil {
		return err
	}
	if p.PageNumber < 1 {
		return fmt.Errorf("%w: page numbers are 1-based", store.ErrInvalidArgument)
	}
	current, _ := s.pages.get(p.UnitID)
	s.pages.put(p.UnitID, store.MergePage(current, *p))
	return nil
}

// GetPages returns the unit's pages in page-number order. A missing unit
// yields an empty result.
func (s *Store) GetPages(unitID string) ([]entities.Page, error) {
	pages, _ := s.pages.get(unitID)
	out := make([]entities.Page, len(pages))
	copy(out, pages)
	return out, nil
}

// reaggregate recomputes the parent series' derived metadata from its
// current unit set. A missing parent (deleted concurrently) is a no-op.
func (s *Store) reaggregate(seriesID string) {
	series, ok := s.series.get(seriesID)
	if !ok {
		return
	}
	units, _ := s.ListUnits(seriesID)
	s.series.put(seriesID, library.Aggregate(series, units))
}
