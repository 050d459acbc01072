// Package user contains the user domain types. Accounts are owned by the
// external identity provider and mirrored locally on every successful login.
package user

import (
	"time"

	"github.com/google/uuid"
)

// Role enumerates the access levels a user can hold.
type Role string

const (
	RoleUser   Role = "user"
	RoleAdmin  Role = "admin"
	RoleBanned Role = "banned"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAdmin, RoleBanned:
		return true
	}
	return false
}

// User is the locally persisted mirror of an identity-provider account.
type User struct {
	ID           uuid.UUID `json:"id"`
	ExternalID   string    `json:"externalId"`
	Email        string    `json:"email,omitempty"`
	FirstName    string    `json:"firstName,omitempty"`
	LastName     string    `json:"lastName,omitempty"`
	ProfileImage string    `json:"profileImage,omitempty"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Summary is the public projection of a user attached to reviews.
type Summary struct {
	ID           uuid.UUID `json:"id"`
	FirstName    string    `json:"firstName,omitempty"`
	LastName     string    `json:"lastName,omitempty"`
	ProfileImage string    `json:"profileImage,omitempty"`
}

// Identity is the resolved caller attached to an authenticated request.
// A request either carries an Identity or is anonymous; handlers never
// see raw token claims.
type Identity struct {
	UserID     uuid.UUID
	ExternalID string
	Email      string
	Role       Role
}

// IsAdmin reports whether the caller holds the admin role.
func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

// Profile is the identity-provider claim set used to upsert the local
// mirror row on login.
type Profile struct {
	ExternalID   string
	Email        string
	FirstName    string
	LastName     string
	ProfileImage string
}
