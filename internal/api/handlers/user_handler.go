package handlers

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/campuspulse/campuspulse-be/internal/models"
	"github.com/campuspulse/campuspulse-be/internal/services"
)

// UserHandler handles the caller's own profile data (favorites).
type UserHandler struct {
	users services.UserServiceProvider
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(users services.UserServiceProvider) *UserHandler {
	return &UserHandler{users: users}
}

// FavoritePayload defines the structure for favorite toggles.
type FavoritePayload struct {
	EventID string `json:"eventId" validate:"required"`
	Action  string `json:"action" validate:"required,oneof=add remove"`
}

// UpdateFavorites handles PATCH /api/user/favorites.
func (h *UserHandler) UpdateFavorites(w http.ResponseWriter, r *http.Request) {
	identity, err := identityFrom(r, h.users)
	if err != nil {
		writeError(w, err)
		return
	}

	var payload FavoritePayload
	if err := decodeAndValidate(r, &payload); err != nil {
		writeError(w, err)
		return
	}

	var user models.User
	if payload.Action == "add" {
		user, err = h.users.AddFavorite(identity.UserID, payload.EventID)
	} else {
		user, err = h.users.RemoveFavorite(identity.UserID, payload.EventID)
	}
	if err != nil {
		log.Warn().Err(err).Str("event_id", payload.EventID).Msg("Failed to update favorites")
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "user": user})
}

// GetFavorites handles GET /api/user/favorites.
func (h *UserHandler) GetFavorites(w http.ResponseWriter, r *http.Request) {
	identity, err := identityFrom(r, h.users)
	if err != nil {
		writeError(w, err)
		return
	}

	events, err := h.users.GetFavorites(identity.UserID)
	if err != nil {
		log.Error().Err(err).Str("user_id", identity.UserID).Msg("Failed to load favorites")
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, events)
}
