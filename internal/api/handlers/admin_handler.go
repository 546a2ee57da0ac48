package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/campuspulse/campuspulse-be/internal/access"
	"github.com/campuspulse/campuspulse-be/internal/models"
	"github.com/campuspulse/campuspulse-be/internal/services"
)

// AdminHandler handles the superadmin panel: club admin assignment and
// the user directory.
type AdminHandler struct {
	clubs services.ClubServiceProvider
	users services.UserServiceProvider
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(clubs services.ClubServiceProvider, users services.UserServiceProvider) *AdminHandler {
	return &AdminHandler{clubs: clubs, users: users}
}

// AssignAdminPayload defines the structure for admin assignment.
type AssignAdminPayload struct {
	Email  string `json:"email" validate:"required,email"`
	ClubID string `json:"clubId" validate:"required"`
}

// RemoveAdminPayload defines the structure for admin removal.
type RemoveAdminPayload struct {
	UserID string `json:"userId" validate:"required"`
	ClubID string `json:"clubId" validate:"required"`
}

// AssignClubAdmin handles POST /api/admin/assign-club-admin.
func (h *AdminHandler) AssignClubAdmin(w http.ResponseWriter, r *http.Request) {
	identity, err := identityFrom(r, h.users)
	if err != nil {
		writeError(w, err)
		return
	}
	if !access.CanAssignClubAdmin(identity) {
		writeError(w, models.ForbiddenError("only superadmins can assign club admins"))
		return
	}

	var payload AssignAdminPayload
	if err := decodeAndValidate(r, &payload); err != nil {
		writeError(w, err)
		return
	}

	user, err := h.clubs.AssignAdmin(payload.Email, payload.ClubID)
	if err != nil {
		log.Warn().Err(err).Str("email", payload.Email).Str("club_id", payload.ClubID).Msg("Failed to assign club admin")
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "User " + user.Email + " is now an admin of club " + payload.ClubID,
		"user":    user,
	})
}

// RemoveClubAdmin handles POST /api/admin/remove-club-admin.
func (h *AdminHandler) RemoveClubAdmin(w http.ResponseWriter, r *http.Request) {
	identity, err := identityFrom(r, h.users)
	if err != nil {
		writeError(w, err)
		return
	}
	if !access.CanRemoveClubAdmin(identity) {
		writeError(w, models.ForbiddenError("only superadmins can remove club admins"))
		return
	}

	var payload RemoveAdminPayload
	if err := decodeAndValidate(r, &payload); err != nil {
		writeError(w, err)
		return
	}

	user, err := h.clubs.RemoveAdmin(payload.UserID, payload.ClubID)
	if err != nil {
		log.Warn().Err(err).Str("user_id", payload.UserID).Str("club_id", payload.ClubID).Msg("Failed to remove club admin")
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "User " + user.Email + " is no longer an admin of club " + payload.ClubID,
		"user":    user,
	})
}

// ClubAdmins handles GET /api/admin/club-admins/{clubId}.
func (h *AdminHandler) ClubAdmins(w http.ResponseWriter, r *http.Request) {
	identity, err := identityFrom(r, h.users)
	if err != nil {
		writeError(w, err)
		return
	}
	if !access.CanListAllUsers(identity) {
		writeError(w, models.ForbiddenError("only superadmins can view club admins"))
		return
	}

	clubID := chi.URLParam(r, "clubId")
	admins, err := h.clubs.ClubAdmins(clubID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"admins": admins})
}

// AllUsers handles GET /api/admin/users for the superadmin dropdown.
func (h *AdminHandler) AllUsers(w http.ResponseWriter, r *http.Request) {
	identity, err := identityFrom(r, h.users)
	if err != nil {
		writeError(w, err)
		return
	}
	if !access.CanListAllUsers(identity) {
		writeError(w, models.ForbiddenError("only superadmins can list users"))
		return
	}

	users, err := h.users.ListAllUsers()
	if err != nil {
		log.Error().Err(err).Msg("Failed to list users")
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "users": users})
}
