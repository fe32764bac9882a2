package sql

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/MehguViewer/MehguViewer.Core-sub003/internal/entities"
	"github.com/MehguViewer/MehguViewer.Core-sub003/internal/permissions"
	"github.com/MehguViewer/MehguViewer.Core-sub003/internal/store"
)

// GrantEdit records an explicit grant and mirrors it into the target
// document's AllowedEditors cache. Granting twice is a no-op. The grant row
// and the cache update are two separate writes, not one transaction.
func (s *Store) GrantEdit(targetURN, userURN, grantedBy string) error {
	if targetURN == "" || userURN == "" {
		return fmt.Errorf("%w: grant requires target and user", store.ErrInvalidArgument)
	}
	exists, err := s.targetExists(targetURN)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%w: %s", store.ErrMissingReference, targetURN)
	}

	var existing permissionRow
	err = s.db.Where("target_urn = ? AND user_urn = ?", targetURN, userURN).First(&existing).Error
	if err == gorm.ErrRecordNotFound {
		grant := entities.EditPermission{
			TargetURN: targetURN,
			UserURN:   userURN,
			GrantedBy: grantedBy,
			GrantedAt: time.Now().UTC(),
		}
		doc, err := marshalDoc(&grant)
		if err != nil {
			return err
		}
		if err := s.db.Create(&permissionRow{TargetURN: targetURN, UserURN: userURN, Document: doc}).Error; err != nil {
			return err
		}
	} else if err != nil {
		return err
	}
	return s.updateEditorCache(targetURN, userURN, true)
}

// RevokeEdit removes the grant row and the cache entry. Revoking a grant
// that never existed succeeds silently.
func (s *Store) RevokeEdit(targetURN, userURN string) error {
	if targetURN == "" || userURN == "" {
		return fmt.Errorf("%w: revoke requires target and user", store.ErrInvalidArgument)
	}
	if err := s.db.Where("target_urn = ? AND user_urn = ?", targetURN, userURN).Delete(&permissionRow{}).Error; err != nil {
		return err
	}
	return s.updateEditorCache(targetURN, userURN, false)
}

// HasEditPermission applies the shared ledger rules.
func (s *Store) HasEditPermission(targetURN, userURN string) (bool, error) {
	return permissions.Has(s, targetURN, userURN)
}

// HasEditGrant checks only for an explicit grant row.
func (s *Store) HasEditGrant(targetURN, userURN string) (bool, error) {
	var row permissionRow
	err := s.db.Where("target_urn = ? AND user_urn = ?", targetURN, userURN).First(&row).Error
	if err == gorm.ErrRecordNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *Store) ListEditGrants(targetURN string) ([]entities.EditPermission, error) {
	var rows []permissionRow
	if err := s.db.Where("target_urn = ?", targetURN).Order("user_urn ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]entities.EditPermission, 0, len(rows))
	for _, row := range rows {
		decoded, err := decodeDoc[entities.EditPermission](row.Document)
		if err != nil {
			return nil, err
		}
		out = append(out, *decoded)
	}
	return out, nil
}

// ListGrantTargets returns the distinct targets that currently hold grants.
func (s *Store) ListGrantTargets() ([]string, error) {
	var targets []string
	err := s.db.Model(&permissionRow{}).Distinct("target_urn").Order("target_urn ASC").Pluck("target_urn", &targets).Error
	return targets, err
}

// DeleteGrantsForTarget drops every grant row for the target.
func (s *Store) DeleteGrantsForTarget(targetURN string) error {
	return s.db.Where("target_urn = ?", targetURN).Delete(&permissionRow{}).Error
}

func (s *Store) targetExists(targetURN string) (bool, error) {
	if s.resolveTarget != nil {
		return s.resolveTarget(targetURN)
	}
	switch entities.URNType(targetURN) {
	case entities.TypeSeries:
		series, err := s.GetSeries(targetURN)
		return series != nil, err
	case entities.TypeUnit:
		unit, err := s.GetUnit(targetURN)
		return unit != nil, err
	default:
		return false, fmt.Errorf("%w: %s is not a grantable target", store.ErrInvalidArgument, targetURN)
	}
}

// updateEditorCache read-modify-writes the target document's AllowedEditors
// array. A target deleted mid-flight is tolerated; the orphan sync sweep
// prunes its grant rows later.
func (s *Store) updateEditorCache(targetURN, userURN string, add bool) error {
	switch entities.URNType(targetURN) {
	case entities.TypeSeries:
		series, err := s.GetSeries(targetURN)
		if err != nil || series == nil {
			return err
		}
		series.AllowedEditors = permissions.UpdateEditors(series.AllowedEditors, userURN, add)
		return s.UpdateSeries(series)
	case entities.TypeUnit:
		unit, err := s.GetUnit(targetURN)
		if err != nil || unit == nil {
			return err
		}
		unit.AllowedEditors = permissions.UpdateEditors(unit.AllowedEditors, userURN, add)
		doc, err := marshalDoc(unit)
		if err != nil {
			return err
		}
		// Direct row save: UpdateUnit would re-aggregate the parent, which a
		// cache update must not trigger.
		return s.db.Save(&unitRow{ID: unit.ID, SeriesID: unit.SeriesID, Document: doc}).Error
	}
	return nil
}
