package sql

import (
	"fmt"
	"sort"

	"gorm.io/gorm"

	"github.com/MehguViewer/MehguViewer.Core-sub003/internal/entities"
	"github.com/MehguViewer/MehguViewer.Core-sub003/internal/library"
	"github.com/MehguViewer/MehguViewer.Core-sub003/internal/store"
)

// CreateUnit inserts a unit document. The parent series must exist.
func (s *Store) CreateUnit(u *entities.Unit) error {
	if err := store.ValidateID(u.ID); err != nil {
		return err
	}
	if u.SeriesID == "" {
		return fmt.Errorf("%w: unit series_id is required", store.ErrInvalidArgument)
	}
	parent, err := s.GetSeries(u.SeriesID)
	if err != nil {
		return err
	}
	if parent == nil {
		return fmt.Errorf("%w: series %s", store.ErrMissingReference, u.SeriesID)
	}
	var existing unitRow
	err = s.db.Where("id = ?", u.ID).First(&existing).Error
	if err == nil {
		return fmt.Errorf("%w: unit %s", store.ErrConflict, u.ID)
	}
	if err != gorm.ErrRecordNotFound {
		return err
	}
	doc, err := marshalDoc(u)
	if err != nil {
		return err
	}
	if err := s.db.Create(&unitRow{ID: u.ID, SeriesID: u.SeriesID, Document: doc}).Error; err != nil {
		return err
	}
	return s.reaggregate(u.SeriesID)
}

// UpdateUnit replaces the document and synchronously re-aggregates the
// parent series. The two writes are not one transaction.
func (s *Store) UpdateUnit(u *entities.Unit) error {
	if err := store.ValidateID(u.ID); err != nil {
		return err
	}
	doc, err := marshalDoc(u)
	if err != nil {
		return err
	}
	if err := s.db.Save(&unitRow{ID: u.ID, SeriesID: u.SeriesID, Document: doc}).Error; err != nil {
		return err
	}
	return s.reaggregate(u.SeriesID)
}

// GetUnit returns nil for a missing id.
func (s *Store) GetUnit(id string) (*entities.Unit, error) {
	if id == "" {
		return nil, nil
	}
	var row unitRow
	err := s.db.Where("id = ?", id).First(&row).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return decodeDoc[entities.Unit](row.Document)
}

// ListUnits returns the series' units ordered by unit number.
func (s *Store) ListUnits(seriesID string) ([]entities.Unit, error) {
	var rows []unitRow
	if err := s.db.Where("series_id = ?", seriesID).Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]entities.Unit, 0, len(rows))
	for _, row := range rows {
		decoded, err := decodeDoc[entities.Unit](row.Document)
		if err != nil {
			return nil, err
		}
		out = append(out, *decoded)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].UnitNumber != out[j].UnitNumber {
			return out[i].UnitNumber < out[j].UnitNumber
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// DeleteUnit removes the unit and its page collection in one transaction,
// then re-aggregates the parent series. The page collection is dropped even
// when the unit row is absent, which the switcher relies on when units live
// in the file store.
func (s *Store) DeleteUnit(id string) error {
	if err := store.ValidateID(id); err != nil {
		return err
	}
	u, err := s.GetUnit(id)
	if err != nil {
		return err
	}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("unit_id = ?", id).Delete(&pageSetRow{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&unitRow{}).Error
	})
	if err != nil || u == nil {
		return err
	}
	return s.reaggregate(u.SeriesID)
}

// AddPage appends into the unit's page document: read all pages, merge,
// delete and reinsert the collection as one row. Appends to the same unit
// are serialized by a per-unit mutex; the transaction alone would not stop
// two concurrent read-modify-writes from dropping one.
func (s *Store) AddPage(p *entities.Page) error {
	if err := store.ValidateID(p.UnitID); err != nil {
		return err
	}
	if p.PageNumber < 1 {
		return fmt.Errorf("%w: page numbers are 1-based", store.ErrInvalidArgument)
	}

	s.pageMu.lock(p.UnitID)
	defer s.pageMu.unlock(p.UnitID)

	pages, err := s.GetPages(p.UnitID)
	if err != nil {
		return err
	}
	merged := store.MergePage(pages, *p)
	doc, err := marshalDoc(merged)
	if err != nil {
		return err
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("unit_id = ?", p.UnitID).Delete(&pageSetRow{}).Error; err != nil {
			return err
		}
		return tx.Create(&pageSetRow{UnitID: p.UnitID, Document: doc}).Error
	})
}

// GetPages returns the unit's pages in page-number order; a missing unit or
// empty collection yields an empty result.
func (s *Store) GetPages(unitID string) ([]entities.Page, error) {
	var row pageSetRow
	err := s.db.Where("unit_id = ?", unitID).First(&row).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	pages, err := decodeDoc[[]entities.Page](row.Document)
	if err != nil {
		return nil, err
	}
	return *pages, nil
}

// reaggregate recomputes the parent series' derived metadata from its
// current unit set. A missing parent is a no-op.
func (s *Store) reaggregate(seriesID string) error {
	series, err := s.GetSeries(seriesID)
	if err != nil {
		return err
	}
	if series == nil {
		return nil
	}
	units, err := s.ListUnits(seriesID)
	if err != nil {
		return err
	}
	updated := library.Aggregate(*series, units)
	return s.UpdateSeries(&updated)
}
