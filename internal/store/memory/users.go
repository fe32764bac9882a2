package memory

import (
	"fmt"
	"sort"
	"strings"

	"github.com/MehguViewer/MehguViewer.Core-sub003/internal/entities"
	"github.com/MehguViewer/MehguViewer.Core-sub003/internal/store"
)

// CreateUser enforces case-insensitive username uniqueness.
func (s *Store) CreateUser(u *entities.User) error {
	if err := store.ValidateID(u.ID); err != nil {
		return err
	}
	if u.Username == "" {
		return fmt.Errorf("%w: username is required", store.ErrInvalidArgument)
	}
	existing, err := s.GetUserByUsername(u.Username)
	if err != nil {
		return err
	}
	if existing != nil {
		return fmt.Errorf("%w: username %s", store.ErrConflict, u.Username)
	}
	if !s.users.insert(u.ID, *u) {
		return fmt.Errorf("%w: user %s", store.ErrConflict, u.ID)
	}
	return nil
}

func (s *Store) UpdateUser(u *entities.User) error {
	if err := store.ValidateID(u.ID); err != nil {
		return err
	}
	s.users.put(u.ID, *u)
	return nil
}

func (s *Store) GetUser(id string) (*entities.User, error) {
	if id == "" {
		return nil, nil
	}
	v, ok := s.users.get(id)
	if !ok {
		return nil, nil
	}
	return &v, nil
}

// GetUserByUsername matches case-insensitively.
func (s *Store) GetUserByUsername(username string) (*entities.User, error) {
	for _, u := range s.users.entries() {
		if strings.EqualFold(u.Username, username) {
			return &u, nil
		}
	}
	return nil, nil
}

func (s *Store) ListUsers() ([]entities.User, error) {
	var out []entities.User
	for _, u := range s.users.entries() {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i].Username) < strings.ToLower(out[j].Username)
	})
	return out, nil
}

// DeleteUser removes the account and its passkeys.
func (s *Store) DeleteUser(id string) error {
	if err := store.ValidateID(id); err != nil {
		return err
	}
	s.users.remove(id)
	for key, pk := range s.passkeys.entries() {
		if pk.UserID == id {
			s.passkeys.remove(key)
		}
	}
	return nil
}

// IsAdminPresent reports whether at least one admin account exists; the
// setup wizard runs until one does.
func (s *Store) IsAdminPresent() (bool, error) {
	for _, u := range s.users.entries() {
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
	if _, ok := s.users.get(p.UserID); !ok {
		return fmt.Errorf("%w: user %s", store.ErrMissingReference, p.UserID)
	}
	if !s.passkeys.insert(p.ID, *p) {
		return fmt.Errorf("%w: passkey %s", store.ErrConflict, p.ID)
	}
	return nil
}

func (s *Store) GetPasskeyByCredentialID(credentialID string) (*entities.Passkey, error) {
	for _, pk := range s.passkeys.entries() {
		if pk.CredentialID == credentialID {
			return &pk, nil
		}
	}
	return nil, nil
}

func (s *Store) ListPasskeys(userID string) ([]entities.Passkey, error) {
	var out []entities.Passkey
	for _, pk := range s.passkeys.entries() {
		if pk.UserID == userID {
			out = append(out, pk)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s *Store) DeletePasskey(id string) error {
	if err := store.ValidateID(id); err != nil {
		return err
	}
	s.passkeys.remove(id)
	return nil
}
