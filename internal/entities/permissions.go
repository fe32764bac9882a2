package entities

import "time"

// EditPermission is an explicit edit grant on a series or unit. The owner of
// a target always has implicit edit rights and is never stored as a row here.
type EditPermission struct {
	TargetURN string    `json:"target_urn"`
	UserURN   string    `json:"user_urn"`
	GrantedBy string    `json:"granted_by"`
	GrantedAt time.Time `json:"granted_at"`
}
