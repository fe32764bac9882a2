package switcher

import (
	"fmt"
	"sort"

	"github.com/MehguViewer/MehguViewer.Core-sub003/internal/entities"
	"github.com/MehguViewer/MehguViewer.Core-sub003/internal/library"
	"github.com/MehguViewer/MehguViewer.Core-sub003/internal/permissions"
	"github.com/MehguViewer/MehguViewer.Core-sub003/internal/store"
)

// Series and unit operations. With a file store wired, that store is the
// system of record for both and the active backend never sees them; without
// one, everything delegates to the backend.

func (s *Switcher) CreateSeries(series *entities.Series) error {
	if s.files == nil {
		return s.active().CreateSeries(series)
	}
	if err := store.ValidateID(series.ID); err != nil {
		return err
	}
	if series.Title == "" {
		return fmt.Errorf("%w: series title is required", store.ErrInvalidArgument)
	}
	existing, err := s.files.GetSeries(series.ID)
	if err != nil {
		return err
	}
	if existing != nil {
		return fmt.Errorf("%w: series %s", store.ErrConflict, series.ID)
	}
	return s.files.SaveSeries(series)
}

func (s *Switcher) UpdateSeries(series *entities.Series) error {
	if s.files == nil {
		return s.active().UpdateSeries(series)
	}
	if err := store.ValidateID(series.ID); err != nil {
		return err
	}
	return s.files.SaveSeries(series)
}

func (s *Switcher) GetSeries(id string) (*entities.Series, error) {
	if s.files == nil {
		return s.active().GetSeries(id)
	}
	if id == "" {
		return nil, nil
	}
	return s.files.GetSeries(id)
}

func (s *Switcher) ListSeries(offset, limit int) ([]entities.Series, error) {
	if s.files == nil {
		return s.active().ListSeries(offset, limit)
	}
	all, err := s.files.ListSeries()
	if err != nil {
		return nil, err
	}
	store.SortSeriesByTitle(all)
	return store.PaginateSeries(all, offset, limit), nil
}

func (s *Switcher) SearchSeries(f store.SeriesFilter) ([]entities.Series, error) {
	if s.files == nil {
		return s.active().SearchSeries(f)
	}
	all, err := s.files.ListSeries()
	if err != nil {
		return nil, err
	}
	var matched []entities.Series
	for i := range all {
		if f.Matches(&all[i]) {
			matched = append(matched, all[i])
		}
	}
	store.SortSeriesByTitle(matched)
	return store.PaginateSeries(matched, f.Offset, f.Limit), nil
}

// DeleteSeries with a file store cascades across both stores: each unit is
// removed from the file store and from the backend (which clears its page
// collection), then the series record and finally the backend's residue for
// the series id, the progress rows included.
func (s *Switcher) DeleteSeries(id string) error {
	if s.files == nil {
		return s.active().DeleteSeries(id)
	}
	if err := store.ValidateID(id); err != nil {
		return err
	}
	units, err := s.files.ListUnits(id)
	if err != nil {
		return err
	}
	backend := s.active()
	for _, u := range units {
		if err := s.files.DeleteUnit(u.ID); err != nil {
			return err
		}
		if err := backend.DeleteUnit(u.ID); err != nil {
			return err
		}
	}
	if err := s.files.DeleteSeries(id); err != nil {
		return err
	}
	return backend.DeleteSeries(id)
}

func (s *Switcher) CreateUnit(u *entities.Unit) error {
	if s.files == nil {
		return s.active().CreateUnit(u)
	}
	if err := store.ValidateID(u.ID); err != nil {
		return err
	}
	if u.SeriesID == "" {
		return fmt.Errorf("%w: unit series_id is required", store.ErrInvalidArgument)
	}
	parent, err := s.files.GetSeries(u.SeriesID)
	if err != nil {
		return err
	}
	if parent == nil {
		return fmt.Errorf("%w: series %s", store.ErrMissingReference, u.SeriesID)
	}
	existing, err := s.files.GetUnit(u.ID)
	if err != nil {
		return err
	}
	if existing != nil {
		return fmt.Errorf("%w: unit %s", store.ErrConflict, u.ID)
	}
	if err := s.files.SaveUnit(u); err != nil {
		return err
	}
	return s.reaggregate(u.SeriesID)
}

func (s *Switcher) UpdateUnit(u *entities.Unit) error {
	if s.files == nil {
		return s.active().UpdateUnit(u)
	}
	if err := store.ValidateID(u.ID); err != nil {
		return err
	}
	if err := s.files.SaveUnit(u); err != nil {
		return err
	}
	return s.reaggregate(u.SeriesID)
}

func (s *Switcher) GetUnit(id string) (*entities.Unit, error) {
	if s.files == nil {
		return s.active().GetUnit(id)
	}
	if id == "" {
		return nil, nil
	}
	return s.files.GetUnit(id)
}

func (s *Switcher) ListUnits(seriesID string) ([]entities.Unit, error) {
	if s.files == nil {
		return s.active().ListUnits(seriesID)
	}
	units, err := s.files.ListUnits(seriesID)
	if err != nil {
		return nil, err
	}
	sort.Slice(units, func(i, j int) bool {
		if units[i].UnitNumber != units[j].UnitNumber {
			return units[i].UnitNumber < units[j].UnitNumber
		}
		return units[i].ID < units[j].ID
	})
	return units, nil
}

func (s *Switcher) DeleteUnit(id string) error {
	if s.files == nil {
		return s.active().DeleteUnit(id)
	}
	if err := store.ValidateID(id); err != nil {
		return err
	}
	u, err := s.files.GetUnit(id)
	if err != nil {
		return err
	}
	if err := s.files.DeleteUnit(id); err != nil {
		return err
	}
	// Clears the backend's page collection for the unit.
	if err := s.active().DeleteUnit(id); err != nil {
		return err
	}
	if u == nil {
		return nil
	}
	return s.reaggregate(u.SeriesID)
}

// reaggregate recomputes the parent's derived metadata from the file store's
// unit set. A missing parent is a no-op.
func (s *Switcher) reaggregate(seriesID string) error {
	series, err := s.files.GetSeries(seriesID)
	if err != nil {
		return err
	}
	if series == nil {
		return nil
	}
	units, err := s.files.ListUnits(seriesID)
	if err != nil {
		return err
	}
	updated := library.Aggregate(*series, units)
	return s.files.SaveSeries(&updated)
}

// Edit permissions. Grant rows always live in the backend; the AllowedEditors
// cache lives wherever the target record lives, so with a file store wired
// the switcher mirrors the cache update there itself.

func (s *Switcher) GrantEdit(targetURN, userURN, grantedBy string) error {
	if err := s.active().GrantEdit(targetURN, userURN, grantedBy); err != nil {
		return err
	}
	return s.updateFileEditorCache(targetURN, userURN, true)
}

func (s *Switcher) RevokeEdit(targetURN, userURN string) error {
	if err := s.active().RevokeEdit(targetURN, userURN); err != nil {
		return err
	}
	return s.updateFileEditorCache(targetURN, userURN, false)
}

// HasEditPermission resolves ownership through the switcher, so implicit
// owner checks see file-store records.
func (s *Switcher) HasEditPermission(targetURN, userURN string) (bool, error) {
	return permissions.Has(s, targetURN, userURN)
}

func (s *Switcher) updateFileEditorCache(targetURN, userURN string, add bool) error {
	if s.files == nil {
		return nil
	}
	switch entities.URNType(targetURN) {
	case entities.TypeSeries:
		series, err := s.files.GetSeries(targetURN)
		if err != nil || series == nil {
			return err
		}
		series.AllowedEditors = permissions.UpdateEditors(series.AllowedEditors, userURN, add)
		return s.files.SaveSeries(series)
	case entities.TypeUnit:
		unit, err := s.files.GetUnit(targetURN)
		if err != nil || unit == nil {
			return err
		}
		unit.AllowedEditors = permissions.UpdateEditors(unit.AllowedEditors, userURN, add)
		return s.files.SaveUnit(unit)
	}
	return nil
}

// Maintenance. Series and unit counts come from the file store when wired;
// everything else always reflects the active backend.

func (s *Switcher) GetStats() (*store.Stats, error) {
	stats, err := s.active().GetStats()
	if err != nil {
		return nil, err
	}
	if s.files == nil {
		return stats, nil
	}
	all, err := s.files.ListSeries()
	if err != nil {
		return nil, err
	}
	stats.Series = int64(len(all))
	var units int64
	for _, series := range all {
		seriesUnits, err := s.files.ListUnits(series.ID)
		if err != nil {
			return nil, err
		}
		units += int64(len(seriesUnits))
	}
	stats.Units = units
	return stats, nil
}

func (s *Switcher) HasData() (bool, error) {
	has, err := s.active().HasData()
	if err != nil || has {
		return has, err
	}
	if s.files == nil {
		return false, nil
	}
	all, err := s.files.ListSeries()
	if err != nil {
		return false, err
	}
	return len(all) > 0, nil
}

// SeedSampleData seeds through the switcher itself, so the fixture's series
// and units land in the file store when one is wired.
func (s *Switcher) SeedSampleData() error {
	return store.Seed(s)
}

// ResetAll wipes the backend and, when wired, every file-store series along
// with its units.
func (s *Switcher) ResetAll() error {
	if s.files != nil {
		all, err := s.files.ListSeries()
		if err != nil {
			return err
		}
		for _, series := range all {
			if err := s.DeleteSeries(series.ID); err != nil {
				return err
			}
		}
	}
	return s.active().ResetAll()
}
