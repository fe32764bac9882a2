package memory

import (
	"fmt"
	"sort"

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
	if !s.comments.insert(c.ID, *c) {
		return fmt.Errorf("%w: comment %s", store.ErrConflict, c.ID)
	}
	return nil
}

func (s *Store) GetComment(id string) (*entities.Comment, error) {
	v, ok := s.comments.get(id)
	if !ok {
		return nil, nil
	}
	return &v, nil
}

func (s *Store) ListComments(targetURN string) ([]entities.Comment, error) {
	var out []entities.Comment
	for _, c := range s.comments.entries() {
		if c.TargetURN == targetURN {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s *Store) DeleteComment(id string) error {
	if err := store.ValidateID(id); err != nil {
		return err
	}
	s.comments.remove(id)
	return nil
}

// SetVote upserts the user's vote on a target under the "user|target" key.
func (s *Store) SetVote(v *entities.Vote) error {
	if v.UserID == "" || v.TargetURN == "" {
		return fmt.Errorf("%w: vote requires user and target", store.ErrInvalidArgument)
	}
	if v.Value != 1 && v.Value != -1 {
		return fmt.Errorf("%w: vote value must be +1 or -1", store.ErrInvalidArgument)
	}
	s.votes.put(compositeKey(v.UserID, v.TargetURN), *v)
	return nil
}

func (s *Store) GetVote(userID, targetURN string) (*entities.Vote, error) {
	v, ok := s.votes.get(compositeKey(userID, targetURN))
	if !ok {
		return nil, nil
	}
	return &v, nil
}

func (s *Store) DeleteVote(userID, targetURN string) error {
	s.votes.remove(compositeKey(userID, targetURN))
	return nil
}

// VoteScore sums all vote values for a target.
func (s *Store) VoteScore(targetURN string) (int64, error) {
	var score int64
	for _, v := range s.votes.entries() {
		if v.TargetURN == targetURN {
			score += int64(v.Value)
		}
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
	if !s.collections.insert(c.ID, *c) {
		return fmt.Errorf("%w: collection %s", store.ErrConflict, c.ID)
	}
	return nil
}

func (s *Store) UpdateCollection(c *entities.Collection) error {
	if err := store.ValidateID(c.ID); err != nil {
		return err
	}
	s.collections.put(c.ID, *c)
	return nil
}

func (s *Store) GetCollection(id string) (*entities.Collection, error) {
	v, ok := s.collections.get(id)
	if !ok {
		return nil, nil
	}
	return &v, nil
}

func (s *Store) ListCollections(userID string) ([]entities.Collection, error) {
	var out []entities.Collection
	for _, c := range s.collections.entries() {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *Store) DeleteCollection(id string) error {
	if err := store.ValidateID(id); err != nil {
		return err
	}
	s.collections.remove(id)
	return nil
}

func (s *Store) CreateReport(r *entities.Report) error {
	if err := store.ValidateID(r.ID); err != nil {
		return err
	}
	if r.TargetURN == "" {
		return fmt.Errorf("%w: report requires a target", store.ErrInvalidArgument)
	}
	if !s.reports.insert(r.ID, *r) {
		return fmt.Errorf("%w: report %s", store.ErrConflict, r.ID)
	}
	return nil
}

func (s *Store) UpdateReport(r *entities.Report) error {
	if err := store.ValidateID(r.ID); err != nil {
		return err
	}
	s.reports.put(r.ID, *r)
	return nil
}

func (s *Store) GetReport(id string) (*entities.Report, error) {
	v, ok := s.reports.get(id)
	if !ok {
		return nil, nil
	}
	return &v, nil
}

// ListReports filters by status; an empty status returns everything.
func (s *Store) ListReports(status entities.ReportStatus) ([]entities.Report, error) {
	var out []entities.Report
	for _, r := range s.reports.entries() {
		if status == "" || r.Status == status {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s *Store) DeleteReport(id string) error {
	if err := store.ValidateID(id); err != nil {
		return err
	}
	s.reports.remove(id)
	return nil
}
