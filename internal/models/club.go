package models

import "time"

// Club represents a campus club or society. Admins is a projection of
// the club_admins relation table; MemberCount is a denormalized counter
// maintained on join/leave and clamped at zero.
type Club struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Admins      []string  `json:"admins"`
	Logo        string    `json:"logo"`
	Gallery     []string  `json:"gallery"`
	MemberCount int       `json:"memberCount"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ClubSummary is the minimal club projection attached to event results
// and returned by club listings.
type ClubSummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Logo        string `json:"logo"`
}
