package services

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/campuspulse/campuspulse-be/internal/expiry"
	"github.com/campuspulse/campuspulse-be/internal/models"
)

// eventColumns is the plain (un-joined) event projection, aliased e.
const eventColumns = `e.id, e.name, e.date, e.start_time, e.end_time, e.rsvp_needed,
	e.location, e.description, e.tags_json, e.created_by, e.mulife_link,
	e.club_id, e.image, e.delete_at, e.created_at`

// EventInput carries the fields of a new event.
type EventInput struct {
	Name        string
	Date        string
	StartTime   string
	EndTime     string
	RSVPNeeded  bool
	Location    string
	Description string
	Tags        []string
	MuLifeLink  string
	ClubID      string
	Image       string
}

// EventUpdate carries a partial update; nil fields are left untouched.
type EventUpdate struct {
	Name        *string
	Date        *string
	StartTime   *string
	EndTime     *string
	RSVPNeeded  *bool
	Location    *string
	Description *string
	Tags        *[]string
	MuLifeLink  *string
	Image       *string
}

// EventServiceProvider defines the interface for event services.
type EventServiceProvider interface {
	GetAllEvents() ([]models.EnrichedEvent, error)
	GetEventByID(id string) (models.EnrichedEvent, error)
	CreateEvent(input EventInput, creatorID string) (models.Event, error)
	UpdateEvent(id string, input EventUpdate) (models.Event, error)
	DeleteEvent(id string) error
	DeleteExpired(now time.Time) (int64, error)
}

// EventService provides business logic for event lifecycle.
type EventService struct {
	db *sql.DB
}

// NewEventService creates a new EventService.
func NewEventService(db *sql.DB) *EventService {
	return &EventService{db: db}
}

// GetAllEvents returns every event with its club summary joined.
func (s *EventService) GetAllEvents() ([]models.EnrichedEvent, error) {
	return queryEnriched(s.db, enrichedBaseQuery+" ORDER BY e.date ASC, e.start_time ASC")
}

// GetEventByID returns a single enriched event.
func (s *EventService) GetEventByID(id string) (models.EnrichedEvent, error) {
	events, err := queryEnriched(s.db, enrichedBaseQuery+" WHERE e.id = ?", id)
	if err != nil {
		return models.EnrichedEvent{}, err
	}
	if len(events) == 0 {
		return models.EnrichedEvent{}, models.NotFoundError("event %s not found", id)
	}
	return events[0], nil
}

// CreateEvent stores a new event and computes its expiry from the
// submitted date. The image URL is stored verbatim.
func (s *EventService) CreateEvent(input EventInput, creatorID string) (models.Event, error) {
	var clubExists int
	if err := s.db.QueryRow("SELECT COUNT(1) FROM clubs WHERE id = ?", input.ClubID).Scan(&clubExists); err != nil {
		return models.Event{}, err
	}
	if clubExists == 0 {
		return models.Event{}, models.NotFoundError("club %s not found", input.ClubID)
	}

	if input.Tags == nil {
		input.Tags = []string{}
	}
	tagsJSON, err := json.Marshal(input.Tags)
	if err != nil {
		return models.Event{}, err
	}

	event := models.Event{
		ID:          uuid.New().String(),
		Name:        input.Name,
		Date:        input.Date,
		StartTime:   input.StartTime,
		EndTime:     input.EndTime,
		RSVPNeeded:  input.RSVPNeeded,
		Location:    input.Location,
		Description: input.Description,
		Tags:        input.Tags,
		CreatedBy:   creatorID,
		MuLifeLink:  input.MuLifeLink,
		ClubID:      input.ClubID,
		Image:       input.Image,
		DeleteAt:    expiry.Compute(input.Date),
	}

	_, err = s.db.Exec(`
		INSERT INTO events(id, name, date, start_time, end_time, rsvp_needed,
			location, description, tags_json, created_by, mulife_link, club_id, image, delete_at)
		VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		event.ID, event.Name, event.Date, event.StartTime, event.EndTime, event.RSVPNeeded,
		event.Location, event.Description, string(tagsJSON), event.CreatedBy,
		event.MuLifeLink, event.ClubID, event.Image, nullableTime(event.DeleteAt),
	)
	if err != nil {
		return models.Event{}, err
	}
	return s.getPlainEvent(event.ID)
}

// UpdateEvent applies a partial update. Expiry is recomputed from the
// effective date; explicitly clearing the date clears the expiry
// instead of recomputing it from the stale value.
func (s *EventService) UpdateEvent(id string, input EventUpdate) (models.Event, error) {
	event, err := s.getPlainEvent(id)
	if err != nil {
		return models.Event{}, err
	}

	if input.Name != nil {
		event.Name = *input.Name
	}
	if input.Date != nil {
		event.Date = *input.Date
	}
	if input.StartTime != nil {
		event.StartTime = *input.StartTime
	}
	if input.EndTime != nil {
		event.EndTime = *input.EndTime
	}
	if input.RSVPNeeded != nil {
		event.RSVPNeeded = *input.RSVPNeeded
	}
	if input.Location != nil {
		event.Location = *input.Location
	}
	if input.Description != nil {
		event.Description = *input.Description
	}
	if input.Tags != nil {
		event.Tags = *input.Tags
	}
	if input.MuLifeLink != nil {
		event.MuLifeLink = *input.MuLifeLink
	}
	if input.Image != nil {
		event.Image = *input.Image
	}

	if deleteAt := expiry.Compute(event.Date); deleteAt != nil {
		event.DeleteAt = deleteAt
	} else if input.Date != nil && *input.Date == "" {
		event.DeleteAt = nil
	}

	if event.Tags == nil {
		event.Tags = []string{}
	}
	tagsJSON, err := json.Marshal(event.Tags)
	if err != nil {
		return models.Event{}, err
	}

	_, err = s.db.Exec(`
		UPDATE events SET name = ?, date = ?, start_time = ?, end_time = ?, rsvp_needed = ?,
			location = ?, description = ?, tags_json = ?, mulife_link = ?, image = ?, delete_at = ?
		WHERE id = ?`,
		event.Name, event.Date, event.StartTime, event.EndTime, event.RSVPNeeded,
		event.Location, event.Description, string(tagsJSON), event.MuLifeLink,
		event.Image, nullableTime(event.DeleteAt), id,
	)
	if err != nil {
		return models.Event{}, err
	}
	return s.getPlainEvent(id)
}

// DeleteEvent removes the event, then clears it from every user's
// favorites. The cascade is best-effort: the deletion has already
// committed, so a cascade failure is logged and swallowed.
func (s *EventService) DeleteEvent(id string) error {
	res, err := s.db.Exec("DELETE FROM events WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return models.NotFoundError("event %s not found", id)
	}

	if _, err := s.db.Exec("DELETE FROM favorites WHERE event_id = ?", id); err != nil {
		log.Warn().Err(err).Str("event_id", id).Msg("Failed to clean up favorites for deleted event")
	}
	return nil
}

// DeleteExpired removes events whose delete_at instant has passed,
// along with their favorite edges. Called by the background sweeper.
func (s *EventService) DeleteExpired(now time.Time) (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`
		DELETE FROM favorites WHERE event_id IN
			(SELECT id FROM events WHERE delete_at IS NOT NULL AND delete_at <= ?)`, now); err != nil {
		return 0, err
	}
	res, err := tx.Exec("DELETE FROM events WHERE delete_at IS NOT NULL AND delete_at <= ?", now)
	if err != nil {
		return 0, err
	}
	n, _ := res.RowsAffected()
	return n, tx.Commit()
}

func (s *EventService) getPlainEvent(id string) (models.Event, error) {
	row := s.db.QueryRow("SELECT "+eventColumns+" FROM events e WHERE e.id = ?", id)
	event, err := scanEvent(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Event{}, models.NotFoundError("event %s not found", id)
		}
		return models.Event{}, err
	}
	return event, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (models.Event, error) {
	var event models.Event
	var tagsJSON string
	var deleteAt sql.NullTime

	err := row.Scan(
		&event.ID, &event.Name, &event.Date, &event.StartTime, &event.EndTime, &event.RSVPNeeded,
		&event.Location, &event.Description, &tagsJSON, &event.CreatedBy, &event.MuLifeLink,
		&event.ClubID, &event.Image, &deleteAt, &event.CreatedAt,
	)
	if err != nil {
		return models.Event{}, err
	}

	if err := json.Unmarshal([]byte(tagsJSON), &event.Tags); err != nil {
		return models.Event{}, err
	}
	if deleteAt.Valid {
		t := deleteAt.Time
		event.DeleteAt = &t
	}
	return event, nil
}

func nullableTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return *t
}
