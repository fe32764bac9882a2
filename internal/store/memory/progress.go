package memory

import (
	"fmt"
	"sort"

	"github.com/MehguViewer/MehguViewer.Core-sub003/internal/entities"
	"github.com/MehguViewer/MehguViewer.Core-sub003/internal/store"
)

// UpsertProgress stores the record under the "user|series" composite key.
// Last write wins by the record's UpdatedAt, not by arrival order: a stale
// update submitted after a newer one is dropped.
func (s *Store) UpsertProgress(p *entities.ReadingProgress) error {
	if p.UserID == "" || p.SeriesID == "" {
		return fmt.Errorf("%w: progress requires user_id and series_id", store.ErrInvalidArgument)
	}
	key := compositeKey(p.UserID, p.SeriesID)
	if existing, ok := s.progress.get(key); ok && existing.UpdatedAt.After(p.UpdatedAt) {
		return nil
	}
	s.progress.put(key, *p)
	return nil
}

func (s *Store) GetProgress(userID, seriesID string) (*entities.ReadingProgress, error) {
	v, ok := s.progress.get(compositeKey(userID, seriesID))
	if !ok {
		return nil, nil
	}
	return &v, nil
}

// ListProgress returns the user's library: every progress row, series order
// unspecified beyond being stable.
func (s *Store) ListProgress(userID string) ([]entities.ReadingProgress, error) {
	out := s.progress.withPrefix(userID + "|")
	sort.Slice(out, func(i, j int) bool { return out[i].SeriesID < out[j].SeriesID })
	return out, nil
}

// ListProgressHistory returns the user's progress newest-first.
func (s *Store) ListProgressHistory(userID string) ([]entities.ReadingProgress, error) {
	out := s.progress.withPrefix(userID + "|")
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return out, nil
}
