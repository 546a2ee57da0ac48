package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/campuspulse/campuspulse-be/internal/access"
	"github.com/campuspulse/campuspulse-be/internal/models"
	"github.com/campuspulse/campuspulse-be/internal/services"
)

// EventHandler handles HTTP requests for event management.
type EventHandler struct {
	events services.EventServiceProvider
	users  services.UserServiceProvider
}

// NewEventHandler creates a new EventHandler.
func NewEventHandler(events services.EventServiceProvider, users services.UserServiceProvider) *EventHandler {
	return &EventHandler{events: events, users: users}
}

// CreateEventPayload defines the structure for event submissions.
type CreateEventPayload struct {
	EventName   string   `json:"eventName" validate:"required"`
	Date        string   `json:"date" validate:"required"`
	StartTime   string   `json:"startTime" validate:"required"`
	EndTime     string   `json:"endTime" validate:"required"`
	RSVPNeeded  bool     `json:"RSVPNeeded"`
	Location    string   `json:"location" validate:"required"`
	Description string   `json:"description" validate:"required"`
	Tags        []string `json:"tags"`
	MuLifeLink  string   `json:"muLifeLink"`
	ClubID      string   `json:"clubId" validate:"required"`
	Image       string   `json:"image"`
}

// UpdateEventPayload is a partial update; absent fields stay unchanged.
type UpdateEventPayload struct {
	EventName   *string   `json:"eventName"`
	Date        *string   `json:"date"`
	StartTime   *string   `json:"startTime"`
	EndTime     *string   `json:"endTime"`
	RSVPNeeded  *bool     `json:"RSVPNeeded"`
	Location    *string   `json:"location"`
	Description *string   `json:"description"`
	Tags        *[]string `json:"tags"`
	MuLifeLink  *string   `json:"muLifeLink"`
	Image       *string   `json:"image"`
}

// GetAll handles listing every event, club-enriched.
func (h *EventHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	events, err := h.events.GetAllEvents()
	if err != nil {
		log.Error().Err(err).Msg("Failed to list events")
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, events)
}

// Get handles retrieving a single event by its ID.
func (h *EventHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	event, err := h.events.GetEventByID(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, event)
}

// Create handles authorized event submission.
func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, err := identityFrom(r, h.users)
	if err != nil {
		writeError(w, err)
		return
	}

	var payload CreateEventPayload
	if err := decodeAndValidate(r, &payload); err != nil {
		writeError(w, err)
		return
	}

	event, err := h.events.CreateEvent(services.EventInput{
		Name:        payload.EventName,
		Date:        payload.Date,
		StartTime:   payload.StartTime,
		EndTime:     payload.EndTime,
		RSVPNeeded:  payload.RSVPNeeded,
		Location:    payload.Location,
		Description: payload.Description,
		Tags:        payload.Tags,
		MuLifeLink:  payload.MuLifeLink,
		ClubID:      payload.ClubID,
		Image:       payload.Image,
	}, identity.UserID)
	if err != nil {
		log.Error().Err(err).Str("user_id", identity.UserID).Msg("Failed to create event")
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"success": true, "data": event})
}

// Update handles event edits, gated by the access engine.
func (h *EventHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	identity, err := identityFrom(r, h.users)
	if err != nil {
		writeError(w, err)
		return
	}

	current, err := h.events.GetEventByID(id)
	if err != nil {
		writeError(w, err)
		return
	}
	if !access.CanEditEvent(identity, &current.Event) {
		writeError(w, models.ForbiddenError("you are not allowed to edit this event"))
		return
	}

	var payload UpdateEventPayload
	if err := decodeAndValidate(r, &payload); err != nil {
		writeError(w, err)
		return
	}

	event, err := h.events.UpdateEvent(id, services.EventUpdate{
		Name:        payload.EventName,
		Date:        payload.Date,
		StartTime:   payload.StartTime,
		EndTime:     payload.EndTime,
		RSVPNeeded:  payload.RSVPNeeded,
		Location:    payload.Location,
		Description: payload.Description,
		Tags:        payload.Tags,
		MuLifeLink:  payload.MuLifeLink,
		Image:       payload.Image,
	})
	if err != nil {
		log.Error().Err(err).Str("event_id", id).Msg("Failed to update event")
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, event)
}

// Delete handles event deletion, gated by the access engine. The
// favorites cascade happens inside the service.
func (h *EventHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	identity, err := identityFrom(r, h.users)
	if err != nil {
		writeError(w, err)
		return
	}

	current, err := h.events.GetEventByID(id)
	if err != nil {
		writeError(w, err)
		return
	}
	if !access.CanDeleteEvent(identity, &current.Event) {
		writeError(w, models.ForbiddenError("you are not allowed to delete this event"))
		return
	}

	if err := h.events.DeleteEvent(id); err != nil {
		log.Error().Err(err).Str("event_id", id).Msg("Failed to delete event")
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Event deleted"})
}
