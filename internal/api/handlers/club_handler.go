package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/campuspulse/campuspulse-be/internal/access"
	"github.com/campuspulse/campuspulse-be/internal/models"
	"github.com/campuspulse/campuspulse-be/internal/services"
)

// ClubHandler handles club membership and club management.
type ClubHandler struct {
	clubs services.ClubServiceProvider
	users services.UserServiceProvider
}

// NewClubHandler creates a new ClubHandler.
func NewClubHandler(clubs services.ClubServiceProvider, users services.UserServiceProvider) *ClubHandler {
	return &ClubHandler{clubs: clubs, users: users}
}

// CreateClubPayload defines the structure for club creation.
type CreateClubPayload struct {
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description" validate:"required"`
	Logo        string   `json:"logo"`
	Gallery     []string `json:"gallery"`
}

// Join handles POST /api/clubs/{id}/join. Any authenticated user may
// join; the call is idempotent.
func (h *ClubHandler) Join(w http.ResponseWriter, r *http.Request) {
	identity, err := identityFrom(r, h.users)
	if err != nil {
		writeError(w, err)
		return
	}

	clubID := chi.URLParam(r, "id")
	user, err := h.clubs.Join(identity.UserID, clubID)
	if err != nil {
		log.Warn().Err(err).Str("club_id", clubID).Msg("Failed to join club")
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "user": user})
}

// Leave handles POST /api/clubs/{id}/leave, symmetric to Join.
func (h *ClubHandler) Leave(w http.ResponseWriter, r *http.Request) {
	identity, err := identityFrom(r, h.users)
	if err != nil {
		writeError(w, err)
		return
	}

	clubID := chi.URLParam(r, "id")
	user, err := h.clubs.Leave(identity.UserID, clubID)
	if err != nil {
		log.Warn().Err(err).Str("club_id", clubID).Msg("Failed to leave club")
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "user": user})
}

// Mine handles listing the clubs the caller administers.
func (h *ClubHandler) Mine(w http.ResponseWriter, r *http.Request) {
	identity, err := identityFrom(r, h.users)
	if err != nil {
		writeError(w, err)
		return
	}

	clubs, err := h.clubs.ClubsAdministeredBy(identity.UserID)
	if err != nil {
		log.Error().Err(err).Str("user_id", identity.UserID).Msg("Failed to list administered clubs")
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"clubs": clubs})
}

// Create handles club creation (superadmin only).
func (h *ClubHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, err := identityFrom(r, h.users)
	if err != nil {
		writeError(w, err)
		return
	}
	if !access.CanManageClubs(identity) {
		writeError(w, models.ForbiddenError("only superadmins can create clubs"))
		return
	}

	var payload CreateClubPayload
	if err := decodeAndValidate(r, &payload); err != nil {
		writeError(w, err)
		return
	}

	club, err := h.clubs.CreateClub(payload.Name, payload.Description, payload.Logo, payload.Gallery)
	if err != nil {
		log.Error().Err(err).Msg("Failed to create club")
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"success": true, "data": club})
}

// Delete handles club deletion (superadmin only). Events keep a
// dangling club reference; the enrichment tolerates it.
func (h *ClubHandler) Delete(w http.ResponseWriter, r *http.Request) {
	identity, err := identityFrom(r, h.users)
	if err != nil {
		writeError(w, err)
		return
	}
	if !access.CanManageClubs(identity) {
		writeError(w, models.ForbiddenError("only superadmins can delete clubs"))
		return
	}

	clubID := chi.URLParam(r, "id")
	if err := h.clubs.DeleteClub(clubID); err != nil {
		log.Error().Err(err).Str("club_id", clubID).Msg("Failed to delete club")
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Club deleted"})
}
