package sql

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/MehguViewer/MehguViewer.Core-sub003/internal/entities"
	"github.com/MehguViewer/MehguViewer.Core-sub003/internal/store"
)

// CreateSeries inserts a new series document, failing with ErrConflict when
// the id is already taken.
func (s *Store) CreateSeries(series *entities.Series) error {
	if err := store.ValidateID(series.ID); err != nil {
		return err
	}
	if series.Title == "" {
		return fmt.Errorf("%w: series title is required", store.ErrInvalidArgument)
	}
	var existing seriesRow
	err := s.db.Where("id = ?", series.ID).First(&existing).Error
	if err == nil {
		return fmt.Errorf("%w: series %s", store.ErrConflict, series.ID)
	}
	if err != gorm.ErrRecordNotFound {
		return err
	}
	doc, err := marshalDoc(series)
	if err != nil {
		return err
	}
	return s.db.Create(&seriesRow{ID: series.ID, Document: doc}).Error
}

// UpdateSeries replaces the stored document wholesale.
func (s *Store) UpdateSeries(series *entities.Series) error {
	if err := store.ValidateID(series.ID); err != nil {
		return err
	}
	doc, err := marshalDoc(series)
	if err != nil {
		return err
	}
	return s.db.Save(&seriesRow{ID: series.ID, Document: doc}).Error
}

// GetSeries returns nil for a missing id.
func (s *Store) GetSeries(id string) (*entities.Series, error) {
	if id == "" {
		return nil, nil
	}
	var row seriesRow
	err := s.db.Where("id = ?", id).First(&row).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return decodeDoc[entities.Series](row.Document)
}

// ListSeries returns a stable title-ordered window.
func (s *Store) ListSeries(offset, limit int) ([]entities.Series, error) {
	all, err := s.allSeries()
	if err != nil {
		return nil, err
	}
	return store.PaginateSeries(all, offset, limit), nil
}

// SearchSeries decodes the candidate documents and applies the shared filter
// predicates Go-side, so both backends match identically (tags use AND
// containment). The full scan is acceptable at the target scale.
func (s *Store) SearchSeries(f store.SeriesFilter) ([]entities.Series, error) {
	all, err := s.allSeries()
	if err != nil {
		return nil, err
	}
	var matched []entities.Series
	for i := range all {
		if f.Matches(&all[i]) {
			matched = append(matched, all[i])
		}
	}
	return store.PaginateSeries(matched, f.Offset, f.Limit), nil
}

// DeleteSeries cascades as a single transaction: pages of the series' units,
// the units, the progress rows, then the series row. Any failure rolls back
// the whole cascade.
func (s *Store) DeleteSeries(id string) error {
	if err := store.ValidateID(id); err != nil {
		return err
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		var unitIDs []string
		if err := tx.Model(&unitRow{}).Where("series_id = ?", id).Pluck("id", &unitIDs).Error; err != nil {
			return err
		}
		if len(unitIDs) > 0 {
			if err := tx.Where("unit_id IN ?", unitIDs).Delete(&pageSetRow{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("series_id = ?", id).Delete(&unitRow{}).Error; err != nil {
			return err
		}
		if err := tx.Where("series_id = ?", id).Delete(&progressRow{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&seriesRow{}).Error
	})
}

func (s *Store) allSeries() ([]entities.Series, error) {
	var rows []seriesRow
	if err := s.db.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]entities.Series, 0, len(rows))
	for _, row := range rows {
		decoded, err := decodeDoc[entities.Series](row.Document)
		if err != nil {
			return nil, err
		}
		out = append(out, *decoded)
	}
	store.SortSeriesByTitle(out)
	return out, nil
}
