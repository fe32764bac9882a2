package sql

import (
	"fmt"
	"sort"
	"strings"

	"gorm.io/gorm"

	"github.com/MehguViewer/MehguViewer.Core-sub003/internal/entities"
	"github.com/MehguViewer/MehguViewer.Core-sub003/internal/store"
)

// CreateUser enforces case-insensitive username uniqueness via the
// lowercased username column.
func (s *Store) CreateUser(u *entities.User) error {
	if err := store.ValidateID(u.ID); err != nil {
		return err
	}
	if u.Username == "" {
		return fmt.Errorf("%w: username is required", store.ErrInvalidArgument)
	}
	var existing userRow
	err := s.db.Where("id = ? OR username = ?", u.ID, strings.ToLower(u.Username)).First(&existing).Error
	if err == nil {
		return fmt.Errorf("%w: user %s", store.ErrConflict, u.Username)
	}
	if err != gorm.ErrRecordNotFound {
		return err
	}
	doc, err := marshalDoc(u)
	if err != nil {
		return err
	}
	return s.db.Create(&userRow{ID: u.ID, Username: strings.ToLower(u.Username), Document: doc}).Error
}

func (s *Store) UpdateUser(u *entities.User) error {
	if err := store.ValidateID(u.ID); err != nil {
		return err
	}
	doc, err := marshalDoc(u)
	if err != nil {
		return err
	}
	return s.db.Save(&userRow{ID: u.ID, Username: strings.ToLower(u.Username), Document: doc}).Error
}

func (s *Store) GetUser(id string) (*entities.User, error) {
	if id == "" {
		return nil, nil
	}
	var row userRow
	err := s.db.Where("id = ?", id).First(&row).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return decodeDoc[entities.User](row.Document)
}

// GetUserByUsername matches case-insensitively.
func (s *Store) GetUserByUsername(username string) (*entities.User, error) {
	var row userRow
	err := s.db.Where("username = ?", strings.ToLower(username)).First(&row).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return decodeDoc[entities.User](row.Document)
}

func (s *Store) ListUsers() ([]entities.User, error) {
	var rows []userRow
	if err := s.db.Order("username ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]entities.User, 0, len(rows))
	for _, row := range rows {
		decoded, err := decodeDoc[entities.User](row.Document)
		if err != nil {
			return nil, err
		}
		out = append(out, *decoded)
	}
	return out, nil
}

// DeleteUser removes the account and its passkeys in one transaction.
func (s *Store) DeleteUser(id string) error {
	if err := store.ValidateID(id); err != nil {
		return err
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&passkeyRow{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&userRow{}).Error
	})
}

// IsAdminPresent scans the user documents for an admin role; accounts are
// few enough that no role column is materialized.
func (s *Store) IsAdminPresent() (bool, error) {
	users, err := s.ListUsers()
	if err != nil {
		return false, err
	}
	for _, u := range users {
		if u.Role == entities.RoleAdmin {
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) CreatePasskey(p *entities.Passkey) error {
	if err := store.ValidateID(p.ID); err != nil {
		return err
	}
	if p.CredentialID == "" {
		return fmt.Errorf("%w: credential id is required", store.ErrInvalidArgument)
	}
	owner, err := s.GetUser(p.UserID)
	if err != nil {
		return err
	}
	if owner == nil {
		return fmt.Errorf("%w: user %s", store.ErrMissingReference, p.UserID)
	}
	var existing passkeyRow
	err = s.db.Where("id = ?", p.ID).First(&existing).Error
	if err == nil {
		return fmt.Errorf("%w: passkey %s", store.ErrConflict, p.ID)
	}
	if err != gorm.ErrRecordNotFound {
		return err
	}
	doc, err := marshalDoc(p)
	if err != nil {
		return err
	}
	return s.db.Create(&passkeyRow{
		ID:           p.ID,
		UserID:       p.UserID,
		CredentialID: p.CredentialID,
		Document:     doc,
	}).Error
}

func (s *Store) GetPasskeyByCredentialID(credentialID string) (*entities.Passkey, error) {
	var row passkeyRow
	err := s.db.Where("credential_id = ?", credentialID).First(&row).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return decodeDoc[entities.Passkey](row.Document)
}

func (s *Store) ListPasskeys(userID string) ([]entities.Passkey, error) {
	var rows []passkeyRow
	if err := s.db.Where("user_id = ?", userID).Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]entities.Passkey, 0, len(rows))
	for _, row := range rows {
		decoded, err := decodeDoc[entities.Passkey](row.Document)
		if err != nil {
			return nil, err
		}
		out = append(out, *decoded)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s *Store) DeletePasskey(id string) error {
	if err := store.ValidateID(id); err != nil {
		return err
	}
	return s.db.Where("id = ?", id).Delete(&passkeyRow{}).Error
}
