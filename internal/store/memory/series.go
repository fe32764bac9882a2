package memory

import (
	"fmt"

	"github.com/MehguViewer/MehguViewer.Core-sub003/internal/entities"
	"github.com/MehguViewer/MehguViewer.Core-sub003/internal/store"
)

// CreateSeries inserts a new series, failing with ErrConflict when the id is
// already taken.
func (s *Store) CreateSeries(series *entities.Series) error {
	if err := store.ValidateID(series.ID); err != nil {
		return err
	}
	if series.Title == "" {
		return fmt.Errorf("%w: series title is required", store.ErrInvalidArgument)
	}
	if !s.series.insert(series.ID, *series) {
		return fmt.Errorf("%w: series %s", store.ErrConflict, series.ID)
	}
	return nil
}

// UpdateSeries replaces the stored record wholesale.
func (s *Store) UpdateSeries(series *entities.Series) error {
	if err := store.ValidateID(series.ID); err != nil {
		return err
	}
	s.series.put(series.ID, *series)
	return nil
}

// GetSeries returns nil for a missing id.
func (s *Store) GetSeries(id string) (*entities.Series, error) {
	if id == "" {
		return nil, nil
	}
	v, ok := s.series.get(id)
	if !ok {
		return nil, nil
	}
	return &v, nil
}

// ListSeries returns a stable title-ordered window.
func (s *Store) ListSeries(offset, limit int) ([]entities.Series, error) {
	return store.PaginateSeries(s.allSeries(), offset, limit), nil
}

// SearchSeries applies the shared filter predicates, then paginates.
func (s *Store) SearchSeries(f store.SeriesFilter) ([]entities.Series, error) {
	var matched []entities.Series
	for _, v := range s.allSeries() {
		if f.Matches(&v) {
			matched = append(matched, v)
		}
	}
	return store.PaginateSeries(matched, f.Offset, f.Limit), nil
}

// DeleteSeries removes the series, then scans all units for matching
// series_id and removes each along with its pages and progress rows. The
// steps are not atomic with one another.
func (s *Store) DeleteSeries(id string) error {
	if err := store.ValidateID(id); err != nil {
		return err
	}
	s.series.remove(id)
	for unitID, u := range s.units.entries() {
		if u.SeriesID != id {
			continue
		}
		s.units.remove(unitID)
		s.pages.remove(unitID)
	}
	for key, p := range s.progress.entries() {
		if p.SeriesID == id {
			s.progress.remove(key)
		}
	}
	return nil
}

func (s *Store) allSeries() []entities.Series {
	byID := s.series.entries()
	out := make([]entities.Series, 0, len(byID))
	for _, v := range byID {
		out = append(out, v)
	}
	store.SortSeriesByTitle(out)
	return out
}
