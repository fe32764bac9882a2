package sql

import (
	"fmt"
	"sort"

	"gorm.io/gorm"

	"github.com/MehguViewer/MehguViewer.Core-sub003/internal/entities"
	"github.com/MehguViewer/MehguViewer.Core-sub003/internal/store"
)

// UpsertProgress stores under the "user|series" key. Last write wins by the
// record's UpdatedAt: a stale update arriving after a newer one is dropped.
func (s *Store) UpsertProgress(p *entities.ReadingProgress) error {
	if p.UserID == "" || p.SeriesID == "" {
		return fmt.Errorf("%w: progress requires user_id and series_id", store.ErrInvalidArgument)
	}
	key := p.UserID + "|" + p.SeriesID
	existing, err := s.GetProgress(p.UserID, p.SeriesID)
	if err != nil {
		return err
	}
	if existing != nil && existing.UpdatedAt.After(p.UpdatedAt) {
		return nil
	}
	doc, err := marshalDoc(p)
	if err != nil {
		return err
	}
	return s.db.Save(&progressRow{
		ID:       key,
		UserID:   p.UserID,
		SeriesID: p.SeriesID,
		Document: doc,
	}).Error
}

func (s *Store) GetProgress(userID, seriesID string) (*entities.ReadingProgress, error) {
	var row progressRow
	err := s.db.Where("id = ?", userID+"|"+seriesID).First(&row).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return decodeDoc[entities.ReadingProgress](row.Document)
}

// ListProgress returns the user's library rows in series order.
func (s *Store) ListProgress(userID string) ([]entities.ReadingProgress, error) {
	out, err := s.progressForUser(userID)
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SeriesID < out[j].SeriesID })
	return out, nil
}

// ListProgressHistory returns the user's progress newest-first.
func (s *Store) ListProgressHistory(userID string) ([]entities.ReadingProgress, error) {
	out, err := s.progressForUser(userID)
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return out, nil
}

func (s *Store) progressForUser(userID string) ([]entities.ReadingProgress, error) {
	var rows []progressRow
	if err := s.db.Where("user_id = ?", userID).Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]entities.ReadingProgress, 0, len(rows))
	for _, row := range rows {
		decoded, err := decodeDoc[entities.ReadingProgress](row.Document)
		if err != nil {
			return nil, err
		}
		out = append(out, *decoded)
	}
	return out, nil
}
