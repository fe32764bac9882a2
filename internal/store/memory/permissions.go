package memory

import (
	"fmt"
	"sort"
	"time"

	"github.com/MehguViewer/MehguViewer.Core-sub003/internal/entities"
	"github.com/MehguViewer/MehguViewer.Core-sub003/internal/permissions"
	"github.com/MehguViewer/MehguViewer.Core-sub003/internal/store"
)

// GrantEdit records an explicit grant and mirrors it into the target's
// AllowedEditors cache. Granting twice is a no-op. The grant-row write and
// the cache update are two separate steps.
func (s *Store) GrantEdit(targetURN, userURN, grantedBy string) error {
	if targetURN == "" || userURN == "" {
		return fmt.Errorf("%w: grant requires target and user", store.ErrInvalidArgument)
	}
	if exists, err := s.targetExists(targetURN); err != nil {
		return err
	} else if !exists {
		return fmt.Errorf("%w: %s", store.ErrMissingReference, targetURN)
	}
	s.grants.insert(compositeKey(targetURN, userURN), entities.EditPermission{
		TargetURN: targetURN,
		UserURN:   userURN,
		GrantedBy: grantedBy,
		GrantedAt: time.Now().UTC(),
	})
	return s.updateEditorCache(targetURN, userURN, true)
}

// RevokeEdit removes the grant row and the cache entry. Revoking a grant
// that never existed succeeds silently.
func (s *Store) RevokeEdit(targetURN, userURN string) error {
	if targetURN == "" || userURN == "" {
		return fmt.Errorf("%w: revoke requires target and user", store.ErrInvalidArgument)
	}
	s.grants.remove(compositeKey(targetURN, userURN))
	return s.updateEditorCache(targetURN, userURN, false)
}

// HasEditPermission applies the shared ledger rules: implicit ownership
// first, explicit grants second.
func (s *Store) HasEditPermission(targetURN, userURN string) (bool, error) {
	return permissions.Has(s, targetURN, userURN)
}

// HasEditGrant checks only for an explicit grant row.
func (s *Store) HasEditGrant(targetURN, userURN string) (bool, error) {
	_, ok := s.grants.get(compositeKey(targetURN, userURN))
	return ok, nil
}

func (s *Store) ListEditGrants(targetURN string) ([]entities.EditPermission, error) {
	out := s.grants.withPrefix(targetURN + "|")
	sort.Slice(out, func(i, j int) bool { return out[i].UserURN < out[j].UserURN })
	return out, nil
}

// ListGrantTargets returns the distinct targets that currently hold grants.
func (s *Store) ListGrantTargets() ([]string, error) {
	seen := map[string]struct{}{}
	for _, g := range s.grants.entries() {
		seen[g.TargetURN] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for t := range seen {
		out = append(out, t)
	}
	sort.Strings(out)
	return out, nil
}

// DeleteGrantsForTarget drops every grant row for the target. Used by the
// orphan sync sweep.
func (s *Store) DeleteGrantsForTarget(targetURN string) error {
	for key, g := range s.grants.entries() {
		if g.TargetURN == targetURN {
			s.grants.remove(key)
		}
	}
	return nil
}

func (s *Store) targetExists(targetURN string) (bool, error) {
	if s.resolveTarget != nil {
		return s.resolveTarget(targetURN)
	}
	switch entities.URNType(targetURN) {
	case entities.TypeSeries:
		_, ok := s.series.get(targetURN)
		return ok, nil
	case entities.TypeUnit:
		_, ok := s.units.get(targetURN)
		return ok, nil
	default:
		return false, fmt.Errorf("%w: %s is not a grantable target", store.ErrInvalidArgument, targetURN)
	}
}

// updateEditorCache read-modify-writes the target's AllowedEditors array:
// two lookups plus one replace. A target deleted mid-flight is tolerated.
func (s *Store) updateEditorCache(targetURN, userURN string, add bool) error {
	switch entities.URNType(targetURN) {
	case entities.TypeSeries:
		if series, ok := s.series.get(targetURN); ok {
			series.AllowedEditors = permissions.UpdateEditors(series.AllowedEditors, userURN, add)
			s.series.put(targetURN, series)
		}
	case entities.TypeUnit:
		if unit, ok := s.units.get(targetURN); ok {
			unit.AllowedEditors = permissions.UpdateEditors(unit.AllowedEditors, userURN, add)
			s.units.put(targetURN, unit)
		}
	}
	return nil
}
