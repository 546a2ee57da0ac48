package models

import "time"

// Event represents a club event. Date, StartTime and EndTime are kept
// as the strings the client submitted; ordering and range filters
// compare them lexically. DeleteAt is the TTL instant computed from
// Date (midnight-local of the following day), nil when Date is unset
// or unparseable.
type Event struct {
	ID          string     `json:"id"`
	Name        string     `json:"eventName"`
	Date        string     `json:"date"`
	StartTime   string     `json:"startTime"`
	EndTime     string     `json:"endTime"`
	RSVPNeeded  bool       `json:"RSVPNeeded"`
	Location    string     `json:"location"`
	Description string     `json:"description"`
	Tags        []string   `json:"tags"`
	CreatedBy   string     `json:"createdBy"`
	MuLifeLink  string     `json:"muLifeLink,omitempty"`
	ClubID      string     `json:"clubId"`
	Image       string     `json:"image"`
	DeleteAt    *time.Time `json:"deleteAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// EnrichedEvent is an event joined with its organizing club's summary.
// Club is nil when the club reference does not resolve; the event is
// still returned (outer-join semantics).
type EnrichedEvent struct {
	Event
	Club *ClubSummary `json:"club"`
}
