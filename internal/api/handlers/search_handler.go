package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/campuspulse/campuspulse-be/internal/metrics"
	"github.com/campuspulse/campuspulse-be/internal/services"
)

// SearchHandler exposes the discovery query engine.
type SearchHandler struct {
	search    services.SearchServiceProvider
	clubs     services.ClubServiceProvider
	collector *metrics.Collector
}

// NewSearchHandler creates a new SearchHandler.
func NewSearchHandler(search services.SearchServiceProvider, clubs services.ClubServiceProvider, collector *metrics.Collector) *SearchHandler {
	return &SearchHandler{search: search, clubs: clubs, collector: collector}
}

// Search handles GET /api/search with filter criteria in the query
// string, e.g. ?keyword=meeting&tags=stem,sport&date=12/12/2025.
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	criteria := services.SearchCriteria{
		Keyword:   q.Get("keyword"),
		Tags:      q.Get("tags"),
		ClubName:  q.Get("clubName"),
		Date:      q.Get("date"),
		StartTime: q.Get("startTime"),
		EndTime:   q.Get("endTime"),
		Location:  q.Get("location"),
	}
	if q.Has("RSVPNeeded") {
		rsvp := q.Get("RSVPNeeded") == "true"
		criteria.RSVPNeeded = &rsvp
	}

	if h.collector != nil {
		h.collector.RecordSearch()
	}

	events, err := h.search.Search(criteria)
	if err != nil {
		log.Error().Err(err).Msg("Search failed")
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"count":   len(events),
		"data":    events,
	})
}

// Advanced handles POST /api/search/advanced with structured criteria
// in the body (ALL-tags semantics, date range, club id list).
func (h *SearchHandler) Advanced(w http.ResponseWriter, r *http.Request) {
	var criteria services.AdvancedCriteria
	if err := decodeAndValidate(r, &criteria); err != nil {
		writeError(w, err)
		return
	}

	if h.collector != nil {
		h.collector.RecordSearch()
	}

	events, err := h.search.AdvancedFilter(criteria)
	if err != nil {
		log.Error().Err(err).Msg("Advanced filter failed")
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"count":   len(events),
		"data":    events,
	})
}

// EventsForClub handles listing a club's events.
func (h *SearchHandler) EventsForClub(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	events, err := h.search.EventsForClub(id)
	if err != nil {
		log.Error().Err(err).Str("club_id", id).Msg("Failed to list club events")
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": events})
}

// Tags handles the tag facet list for filter dropdowns.
func (h *SearchHandler) Tags(w http.ResponseWriter, r *http.Request) {
	tags, err := h.search.ListTags()
	if err != nil {
		log.Error().Err(err).Msg("Failed to list tags")
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"count":   len(tags),
		"data":    tags,
	})
}

// Clubs handles the club list for filter dropdowns.
func (h *SearchHandler) Clubs(w http.ResponseWriter, r *http.Request) {
	clubs, err := h.search.ListClubs()
	if err != nil {
		log.Error().Err(err).Msg("Failed to list clubs")
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"count":   len(clubs),
		"data":    clubs,
	})
}

// ClubByID handles retrieving one club with gallery and admins.
func (h *SearchHandler) ClubByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	club, err := h.clubs.GetClubByID(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": club})
}
