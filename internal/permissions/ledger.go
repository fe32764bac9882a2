// Package permissions implements the edit-permission ledger semantics shared
// by every storage backend: implicit ownership layered under explicit
// grants, and the maintenance sweep that prunes grants whose target is gone.
package permissions

import (
	"fmt"
	"sort"

	"github.com/MehguViewer/MehguViewer.Core-sub003/internal/entities"
)

// Resolver is the slice of the storage contract the permission decision
// needs. Both backends satisfy it, which keeps hasPermission identical
// across them.
type Resolver interface {
	GetSeries(id string) (*entities.Series, error)
	GetUnit(id string) (*entities.Unit, error)
	HasEditGrant(targetURN, userURN string) (bool, error)
}

// Has reports whether user may edit target. The creator of a target always
// may; for a unit, so may the creator of its parent series. Otherwise an
// explicit grant row must exist for (target, user). Grants are per-target: a
// series grant does not extend to the series' units. A target that no longer
// resolves yields false.
func Has(r Resolver, targetURN, userURN string) (bool, error) {
	if targetURN == "" || userURN == "" {
		return false, nil
	}
	switch entities.URNType(targetURN) {
	case entities.TypeSeries:
		s, err := r.GetSeries(targetURN)
		if err != nil {
			return false, err
		}
		if s != nil && s.CreatedBy == userURN {
			return true, nil
		}
	case entities.TypeUnit:
		u, err := r.GetUnit(targetURN)
		if err != nil {
			return false, err
		}
		if u != nil {
			if u.CreatedBy == userURN {
				return true, nil
			}
			if u.SeriesID != "" {
				s, err := r.GetSeries(u.SeriesID)
				if err != nil {
					return false, err
				}
				if s != nil && s.CreatedBy == userURN {
					return true, nil
				}
			}
		}
	}
	return r.HasEditGrant(targetURN, userURN)
}

// UpdateEditors returns a new AllowedEditors cache with userURN added or
// removed. The cache mirrors the grant rows for the target; both backends
// funnel their dual writes through this helper so the discipline stays in
// one place. An empty result is nil so cached and never-granted targets
// serialize identically.
func UpdateEditors(editors []string, userURN string, add bool) []string {
	out := make([]string, 0, len(editors)+1)
	for _, e := range editors {
		if e != userURN {
			out = append(out, e)
		}
	}
	if add {
		out = append(out, userURN)
	}
	sort.Strings(out)
	if len(out) == 0 {
		return nil
	}
	return out
}

// SyncStore is what the orphan sweep needs from a backend.
type SyncStore interface {
	GetSeries(id string) (*entities.Series, error)
	GetUnit(id string) (*entities.Unit, error)
	ListGrantTargets() ([]string, error)
	DeleteGrantsForTarget(targetURN string) error
}

// Sync enumerates distinct grant targets, resolves each against the live
// series/unit records, and deletes every grant row whose target no longer
// exists. It returns the number of targets pruned and is safe to re-run.
func Sync(s SyncStore) (int, error) {
	targets, err := s.ListGrantTargets()
	if err != nil {
		return 0, fmt.Errorf("listing grant targets: %w", err)
	}
	pruned := 0
	for _, target := range targets {
		exists, err := targetExists(s, target)
		if err != nil {
			return pruned, err
		}
		if exists {
			continue
		}
		if err := s.DeleteGrantsForTarget(target); err != nil {
			return pruned, fmt.Errorf("pruning grants for %s: %w", target, err)
		}
		pruned++
	}
	return pruned, nil
}

func targetExists(s SyncStore, targetURN string) (bool, error) {
	switch entities.URNType(targetURN) {
	case entities.TypeSeries:
		series, err := s.GetSeries(targetURN)
		return series != nil, err
	case entities.TypeUnit:
		unit, err := s.GetUnit(targetURN)
		return unit != nil, err
	default:
		// Unknown target types are orphans by definition.
		return false, nil
	}
}
