package sql

import (
	"fmt"
	"sort"

	"gorm.io/gorm"

	"github.com/MehguViewer/MehguViewer.Core-sub003/internal/entities"
	"github.com/MehguViewer/MehguViewer.Core-sub003/internal/store"
)

func (s *Store) CreateComment(c *entities.Comment) error {
	if err := store.ValidateID(c.ID); err != nil {
		return err
	}
	if c.TargetURN == "" || c.UserID == "" {
		return fmt.Errorf("%w: comment requires target and user", store.ErrInvalidArgument)
	}
	var existing commentRow
	err := s.db.Where("id = ?", c.ID).First(&existing).Error
	if err == nil {
		return fmt.Errorf("%w: comment %s", store.ErrConflict, c.ID)
	}
	if err != gorm.ErrRecordNotFound {
		return err
	}
	doc, err := marshalDoc(c)
	if err != nil {
		return err
	}
	return s.db.Create(&commentRow{ID: c.ID, TargetURN: c.TargetURN, Document: doc}).Error
}

func (s *Store) GetComment(id string) (*entities.Comment, error) {
	var row commentRow
	err := s.db.Where("id = ?", id).First(&row).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return decodeDoc[entities.Comment](row.Document)
}

func (s *Store) ListComments(targetURN string) ([]entities.Comment, error) {
	var rows []commentRow
	if err := s.db.Where("target_urn = ?", targetURN).Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]entities.Comment, 0, len(rows))
	for _, row := range rows {
		decoded, err := decodeDoc[entities.Comment](row.Document)
		if err != nil {
			return nil, err
		}
		out = append(out, *decoded)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s *Store) DeleteComment(id string) error {
	if err := store.ValidateID(id); err != nil {
		return err
	}
	return s.db.Where("id = ?", id).Delete(&commentRow{}).Error
}

// SetVote upserts the user's vote under the "user|target" key.
func (s *Store) SetVote(v *entities.Vote) error {
	if v.UserID == "" || v.TargetURN == "" {
		return fmt.Errorf("%w: vote requires user and target", store.ErrInvalidArgument)
	}
	if v.Value != 1 && v.Value != -1 {
		return fmt.Errorf("%w: vote value must be +1 or -1", store.ErrInvalidArgument)
	}
	doc, err := marshalDoc(v)
	if err != nil {
		return err
	}
	return s.db.Save(&voteRow{
		ID:        v.UserID + "|" + v.TargetURN,
		TargetURN: v.TargetURN,
		Document:  doc,
	}).Error
}

func (s *Store) GetVote(userID, targetURN string) (*entities.Vote, error) {
	var row voteRow
	err := s.db.Where("id = ?", userID+"|"+targetURN).First(&row).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return decodeDoc[entities.Vote](row.Document)
}

func (s *Store) DeleteVote(userID, targetURN string) error {
	return s.db.Where("id = ?", userID+"|"+targetURN).Delete(&voteRow{}).Error
}

// VoteScore sums all vote values for a target.
func (s *Store) VoteScore(targetURN string) (int64, error) {
	var rows []voteRow
	if err := s.db.Where("target_urn = ?", targetURN).Find(&rows).Error; err != nil {
		return 0, err
	}
	var score int64
	for _, row := range rows {
		decoded, err := decodeDoc[entities.Vote](row.Document)
		if err != nil {
			return 0, err
		}
		score += int64(decoded.Value)
	}
	return score, nil
}

func (s *Store) CreateCollection(c *entities.Collection) error {
	if err := store.ValidateID(c.ID); err != nil {
		return err
	}
	if c.UserID == "" || c.Name == "" {
		return fmt.Errorf("%w: collection requires user and name", store.ErrInvalidArgument)
	}
	var existing collectionRow
	err := s.db.Where("id = ?", c.ID).First(&existing).Error
	if err == nil {
		return fmt.Errorf("%w: collection %s", store.ErrConflict, c.ID)
	}
	if err != gorm.ErrRecordNotFound {
		return err
	}
	doc, err := marshalDoc(c)
	if err != nil {
		return err
	}
	return s.db.Create(&collectionRow{ID: c.ID, UserID: c.UserID, Document: doc}).Error
}

func (s *Store) UpdateCollection(c *entities.Collection) error {
	if err := store.ValidateID(c.ID); err != nil {
		return err
	}
	doc, err := marshalDoc(c)
	if err != nil {
		return err
	}
	return s.db.Save(&collectionRow{ID: c.ID, UserID: c.UserID, Document: doc}).Error
}

func (s *Store) GetCollection(id string) (*entities.Collection, error) {
	var row collectionRow
	err := s.db.Where("id = ?", id).First(&row).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return decodeDoc[entities.Collection](row.Document)
}

func (s *Store) ListCollections(userID string) ([]entities.Collection, error) {
	var rows []collectionRow
	if err := s.db.Where("user_id = ?", userID).Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]entities.Collection, 0, len(rows))
	for _, row := range rows {
		decoded, err := decodeDoc[entities.Collection](row.Document)
		if err != nil {
			return nil, err
		}
		out = append(out, *decoded)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *Store) DeleteCollection(id string) error {
	if err := store.ValidateID(id); err != nil {
		return err
	}
	return s.db.Where("id = ?", id).Delete(&collectionRow{}).Error
}

func (s *Store) CreateReport(r *entities.Report) error {
	if err := store.ValidateID(r.ID); err != nil {
		return err
	}
	if r.TargetURN == "" {
		return fmt.Errorf("%w: report requires a target", store.ErrInvalidArgument)
	}
	var existing reportRow
	err := s.db.Where("id = ?", r.ID).First(&existing).Error
	if err == nil {
		return fmt.Errorf("%w: report %s", store.ErrConflict, r.ID)
	}
	if err != gorm.ErrRecordNotFound {
		return err
	}
	doc, err := marshalDoc(r)
	if err != nil {
		return err
	}
	return s.db.Create(&reportRow{ID: r.ID, Document: doc}).Error
}

func (s *Store) UpdateReport(r *entities.Report) error {
	if err := store.ValidateID(r.ID); err != nil {
		return err
	}
	doc, err := marshalDoc(r)
	if err != nil {
		return err
	}
	return s.db.Save(&reportRow{ID: r.ID, Document: doc}).Error
}

func (s *Store) GetReport(id string) (*entities.Report, error) {
	var row reportRow
	err := s.db.Where("id = ?", id).First(&row).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return decodeDoc[entities.Report](row.Document)
}

// ListReports filters by status; an empty status returns everything. Status
// lives in the document, so the filter is applied after decoding.
func (s *Store) ListReports(status entities.ReportStatus) ([]entities.Report, error) {
	var rows []reportRow
	if err := s.db.Find(&rows).Error; err != nil {
		return nil, err
	}
	var out []entities.Report
	for _, row := range rows {
		decoded, err := decodeDoc[entities.Report](row.Document)
		if err != nil {
			return nil, err
		}
		if status == "" || decoded.Status == status {
			out = append(out, *decoded)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s *Store) DeleteReport(id string) error {
	if err := store.ValidateID(id); err != nil {
		return err
	}
	return s.db.Where("id = ?", id).Delete(&reportRow{}).Error
}
