package models

import "time"

// User represents a registered account. AdminOf, MemberOf and
// FavoritedEvents are projections of the relation tables; IsAdmin is
// derived from AdminOf on read and never stored.
type User struct {
	ID              string    `json:"id"`
	Email           string    `json:"email"`
	PasswordHash    string    `json:"-"` // Never expose this to the client
	IsSuperAdmin    bool      `json:"isSuperAdmin"`
	IsAdmin         bool      `json:"isAdmin"`
	AdminOf         []string  `json:"adminOf"`
	MemberOf        []string  `json:"memberOf"`
	FavoritedEvents []string  `json:"favoritedEvents"`
	CreatedAt       time.Time `json:"createdAt"`
}

// Identity is the resolved caller identity handed to the access engine.
// Role facts are always re-read from the store, not taken from the token.
type Identity struct {
	UserID       string
	IsSuperAdmin bool
	IsAdmin      bool
	AdminOf      []string
}

// AdminOfClub reports whether the identity administers the given club.
func (i *Identity) AdminOfClub(clubID string) bool {
	for _, id := range i.AdminOf {
		if id == clubID {
			return true
		}
	}
	return false
}
