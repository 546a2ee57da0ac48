// Package access holds the pure authorization decisions. Every
// function returns an ordinary boolean; a DENY is never an error, and
// callers translate it to an HTTP status themselves.
package access

import "github.com/campuspulse/campuspulse-be/internal/models"

// CanEditEvent allows superadmins, or club admins of the event's
// organizing club.
func CanEditEvent(identity *models.Identity, event *models.Event) bool {
	if identity == nil || event == nil {
		return false
	}
	if identity.IsSuperAdmin {
		return true
	}
	return identity.IsAdmin && event.ClubID != "" && identity.AdminOfClub(event.ClubID)
}

// CanDeleteEvent uses the same rule as CanEditEvent.
func CanDeleteEvent(identity *models.Identity, event *models.Event) bool {
	return CanEditEvent(identity, event)
}

// CanAssignClubAdmin is reserved for superadmins; club admins may not
// manage other admins.
func CanAssignClubAdmin(identity *models.Identity) bool {
	return identity != nil && identity.IsSuperAdmin
}

// CanRemoveClubAdmin is reserved for superadmins.
func CanRemoveClubAdmin(identity *models.Identity) bool {
	return identity != nil && identity.IsSuperAdmin
}

// CanListAllUsers is reserved for superadmins.
func CanListAllUsers(identity *models.Identity) bool {
	return identity != nil && identity.IsSuperAdmin
}

// CanManageClubs gates club creation and deletion, which are
// superadmin-only actions.
func CanManageClubs(identity *models.Identity) bool {
	return identity != nil && identity.IsSuperAdmin
}
