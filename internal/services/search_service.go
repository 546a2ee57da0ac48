package services

import (
	"database/sql"
	"encoding/json"
	"strings"

	"github.com/campuspulse/campuspulse-be/internal/models"
)

// enrichedBaseQuery joins every event with its organizing club.
// LEFT JOIN keeps events whose club reference does not resolve; their
// club summary comes back null.
const enrichedBaseQuery = `
	SELECT ` + eventColumns + `,
		c.id, c.name, c.description, c.logo
	FROM events e
	LEFT JOIN clubs c ON c.id = e.club_id`

const eventOrder = " ORDER BY e.date ASC, e.start_time ASC"

// SearchCriteria are the dimensions of the keyword search. All fields
// are optional and combine conjunctively; within Keyword the match is
// an OR across event name, description and club name. Tags matches
// ANY of the comma-delimited values.
type SearchCriteria struct {
	Keyword    string
	Tags       string
	ClubName   string
	Date       string
	StartTime  string
	EndTime    string
	Location   string
	RSVPNeeded *bool
}

// AdvancedCriteria is the structured filter variant: Tags requires ALL
// listed tags, dates form a range, and clubs are filtered by id.
type AdvancedCriteria struct {
	Tags       []string `json:"tags"`
	ClubIDs    []string `json:"clubIds"`
	DateFrom   string   `json:"dateFrom"`
	DateTo     string   `json:"dateTo"`
	RSVPNeeded *bool    `json:"RSVPNeeded"`
}

// SearchServiceProvider defines the interface for the discovery query
// engine.
type SearchServiceProvider interface {
	Search(criteria SearchCriteria) ([]models.EnrichedEvent, error)
	AdvancedFilter(criteria AdvancedCriteria) ([]models.EnrichedEvent, error)
	EventsForClub(clubID string) ([]models.EnrichedEvent, error)
	ListTags() ([]string, error)
	ListClubs() ([]models.ClubSummary, error)
}

// SearchService translates typed filter criteria into a single SQL
// query over the events/clubs join.
type SearchService struct {
	db *sql.DB
}

// NewSearchService creates a new SearchService.
func NewSearchService(db *sql.DB) *SearchService {
	return &SearchService{db: db}
}

// Search runs the multi-dimensional keyword search, sorted by date
// then start time (both as raw string comparisons).
func (s *SearchService) Search(criteria SearchCriteria) ([]models.EnrichedEvent, error) {
	where, args := buildSearchConditions(criteria)
	return queryEnriched(s.db, enrichedBaseQuery+where+eventOrder, args...)
}

// AdvancedFilter runs the structured filter with ALL-tags semantics
// and a date range.
func (s *SearchService) AdvancedFilter(criteria AdvancedCriteria) ([]models.EnrichedEvent, error) {
	where, args := buildAdvancedConditions(criteria)
	return queryEnriched(s.db, enrichedBaseQuery+where+eventOrder, args...)
}

// EventsForClub returns all events organized by the given club,
// enriched like search results.
func (s *SearchService) EventsForClub(clubID string) ([]models.EnrichedEvent, error) {
	return queryEnriched(s.db, enrichedBaseQuery+" WHERE e.club_id = ?"+eventOrder, clubID)
}

// ListTags returns the deduplicated set of tags used by any event.
func (s *SearchService) ListTags() ([]string, error) {
	rows, err := s.db.Query("SELECT DISTINCT je.value FROM events e, json_each(e.tags_json) je ORDER BY je.value")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tags := []string{}
	for rows.Next() {
		var tag string
		if err := rows.Scan(&tag); err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, rows.Err()
}

// ListClubs returns all clubs with the minimal projection, sorted by
// name.
func (s *SearchService) ListClubs() ([]models.ClubSummary, error) {
	rows, err := s.db.Query("SELECT id, name, description, logo FROM clubs ORDER BY name ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	clubs := []models.ClubSummary{}
	for rows.Next() {
		var c models.ClubSummary
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.Logo); err != nil {
			return nil, err
		}
		clubs = append(clubs, c)
	}
	return clubs, rows.Err()
}

// buildSearchConditions translates SearchCriteria into a WHERE clause.
// Substring matches fold to lower case; tag matching is ANY-of via
// json_each over the stored tag list.
func buildSearchConditions(criteria SearchCriteria) (string, []any) {
	conds := []string{}
	args := []any{}

	if criteria.Keyword != "" {
		kw := strings.ToLower(criteria.Keyword)
		conds = append(conds, `(instr(lower(e.name), ?) > 0
			OR instr(lower(e.description), ?) > 0
			OR instr(lower(ifnull(c.name, '')), ?) > 0)`)
		args = append(args, kw, kw, kw)
	}
	if tags := splitTags(criteria.Tags); len(tags) > 0 {
		conds = append(conds,
			"EXISTS (SELECT 1 FROM json_each(e.tags_json) WHERE json_each.value IN ("+placeholders(len(tags))+"))")
		for _, tag := range tags {
			args = append(args, tag)
		}
	}
	if criteria.ClubName != "" {
		conds = append(conds, "instr(lower(ifnull(c.name, '')), ?) > 0")
		args = append(args, strings.ToLower(criteria.ClubName))
	}
	if criteria.Date != "" {
		conds = append(conds, "e.date = ?")
		args = append(args, criteria.Date)
	}
	if criteria.StartTime != "" {
		conds = append(conds, "e.start_time >= ?")
		args = append(args, criteria.StartTime)
	}
	if criteria.EndTime != "" {
		conds = append(conds, "e.end_time <= ?")
		args = append(args, criteria.EndTime)
	}
	if criteria.Location != "" {
		conds = append(conds, "instr(lower(e.location), ?) > 0")
		args = append(args, strings.ToLower(criteria.Location))
	}
	if criteria.RSVPNeeded != nil {
		conds = append(conds, "e.rsvp_needed = ?")
		args = append(args, *criteria.RSVPNeeded)
	}

	return whereClause(conds), args
}

// buildAdvancedConditions translates AdvancedCriteria: ALL-of tag
// matching, club id list, date range.
func buildAdvancedConditions(criteria AdvancedCriteria) (string, []any) {
	conds := []string{}
	args := []any{}

	if len(criteria.Tags) > 0 {
		conds = append(conds,
			"(SELECT COUNT(DISTINCT json_each.value) FROM json_each(e.tags_json) WHERE json_each.value IN ("+
				placeholders(len(criteria.Tags))+")) = ?")
		for _, tag := range criteria.Tags {
			args = append(args, tag)
		}
		args = append(args, len(criteria.Tags))
	}
	if len(criteria.ClubIDs) > 0 {
		conds = append(conds, "e.club_id IN ("+placeholders(len(criteria.ClubIDs))+")")
		for _, id := range criteria.ClubIDs {
			args = append(args, id)
		}
	}
	if criteria.DateFrom != "" {
		conds = append(conds, "e.date >= ?")
		args = append(args, criteria.DateFrom)
	}
	if criteria.DateTo != "" {
		conds = append(conds, "e.date <= ?")
		args = append(args, criteria.DateTo)
	}
	if criteria.RSVPNeeded != nil {
		conds = append(conds, "e.rsvp_needed = ?")
		args = append(args, *criteria.RSVPNeeded)
	}

	return whereClause(conds), args
}

func whereClause(conds []string) string {
	if len(conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(conds, " AND ")
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

func splitTags(raw string) []string {
	if raw == "" {
		return nil
	}
	tags := []string{}
	for _, tag := range strings.Split(raw, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// queryEnriched runs an enrichedBaseQuery-derived statement and scans
// the rows into enriched events.
func queryEnriched(db *sql.DB, query string, args ...any) ([]models.EnrichedEvent, error) {
	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := []models.EnrichedEvent{}
	for rows.Next() {
		ev, err := scanEnrichedEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}

func scanEnrichedEvent(rows *sql.Rows) (models.EnrichedEvent, error) {
	var event models.EnrichedEvent
	var tagsJSON string
	var deleteAt sql.NullTime
	var clubID, clubName, clubDescription, clubLogo sql.NullString

	err := rows.Scan(
		&event.ID, &event.Name, &event.Date, &event.StartTime, &event.EndTime, &event.RSVPNeeded,
		&event.Location, &event.Description, &tagsJSON, &event.CreatedBy, &event.MuLifeLink,
		&event.ClubID, &event.Image, &deleteAt, &event.CreatedAt,
		&clubID, &clubName, &clubDescription, &clubLogo,
	)
	if err != nil {
		return models.EnrichedEvent{}, err
	}

	if err := json.Unmarshal([]byte(tagsJSON), &event.Tags); err != nil {
		return models.EnrichedEvent{}, err
	}
	if deleteAt.Valid {
		t := deleteAt.Time
		event.DeleteAt = &t
	}
	if clubID.Valid {
		event.Club = &models.ClubSummary{
			ID:          clubID.String,
			Name:        clubName.String,
			Description: clubDescription.String,
			Logo:        clubLogo.String,
		}
	}
	return event, nil
}
