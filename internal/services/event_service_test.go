package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuspulse/campuspulse-be/internal/models"
)

func TestCreateEvent_ComputesExpiry(t *testing.T) {
	db := newTestDB(t)
	creator := seedUser(t, db, "creator@campus.edu", false)
	club := seedClub(t, db, "Chess Club")

	event := seedEvent(t, db, EventInput{
		Date:   "2025-01-01",
		ClubID: club.ID,
		Tags:   []string{"stem", "games"},
	}, creator.ID)

	require.NotNil(t, event.DeleteAt)
	want := time.Date(2025, time.January, 2, 0, 0, 0, 0, time.Local)
	assert.True(t, want.Equal(*event.DeleteAt), "got %v, want %v", event.DeleteAt, want)
	assert.Equal(t, []string{"stem", "games"}, event.Tags)
	assert.Equal(t, creator.ID, event.CreatedBy)
}

func TestCreateEvent_UnparseableDateLeavesNoExpiry(t *testing.T) {
	db := newTestDB(t)
	creator := seedUser(t, db, "creator@campus.edu", false)
	club := seedClub(t, db, "Chess Club")

	event := seedEvent(t, db, EventInput{Date: "sometime soon", ClubID: club.ID}, creator.ID)
	assert.Nil(t, event.DeleteAt)
}

func TestCreateEvent_UnknownClub(t *testing.T) {
	db := newTestDB(t)
	creator := seedUser(t, db, "creator@campus.edu", false)

	_, err := NewEventService(db).CreateEvent(EventInput{
		Name: "X", Date: "2025-01-01", StartTime: "10:00", EndTime: "11:00",
		Location: "Hall", Description: "d", ClubID: "missing",
	}, creator.ID)
	assert.Equal(t, models.KindNotFound, models.KindOf(err))
}

func TestUpdateEvent_RecomputesExpiryFromNewDate(t *testing.T) {
	db := newTestDB(t)
	svc := NewEventService(db)
	creator := seedUser(t, db, "creator@campus.edu", false)
	club := seedClub(t, db, "Chess Club")
	event := seedEvent(t, db, EventInput{Date: "2025-01-01", ClubID: club.ID}, creator.ID)

	newDate := "31/01/2025"
	updated, err := svc.UpdateEvent(event.ID, EventUpdate{Date: &newDate})
	require.NoError(t, err)

	require.NotNil(t, updated.DeleteAt)
	want := time.Date(2025, time.February, 1, 0, 0, 0, 0, time.Local)
	assert.True(t, want.Equal(*updated.DeleteAt), "got %v, want %v", updated.DeleteAt, want)
	assert.Equal(t, newDate, updated.Date)
}

func TestUpdateEvent_ClearingDateClearsExpiry(t *testing.T) {
	db := newTestDB(t)
	svc := NewEventService(db)
	creator := seedUser(t, db, "creator@campus.edu", false)
	club := seedClub(t, db, "Chess Club")
	event := seedEvent(t, db, EventInput{Date: "2025-01-01", ClubID: club.ID}, creator.ID)
	require.NotNil(t, event.DeleteAt)

	empty := ""
	updated, err := svc.UpdateEvent(event.ID, EventUpdate{Date: &empty})
	require.NoError(t, err)
	assert.Nil(t, updated.DeleteAt, "cleared date must clear expiry, not recompute from stale value")
}

func TestUpdateEvent_UntouchedDateKeepsExpiry(t *testing.T) {
	db := newTestDB(t)
	svc := NewEventService(db)
	creator := seedUser(t, db, "creator@campus.edu", false)
	club := seedClub(t, db, "Chess Club")
	event := seedEvent(t, db, EventInput{Date: "2025-01-01", ClubID: club.ID}, creator.ID)

	name := "Renamed"
	updated, err := svc.UpdateEvent(event.ID, EventUpdate{Name: &name})
	require.NoError(t, err)

	assert.Equal(t, "Renamed", updated.Name)
	require.NotNil(t, updated.DeleteAt)
	assert.True(t, event.DeleteAt.Equal(*updated.DeleteAt))
}

func TestUpdateEvent_NotFound(t *testing.T) {
	db := newTestDB(t)
	_, err := NewEventService(db).UpdateEvent("missing", EventUpdate{})
	assert.Equal(t, models.KindNotFound, models.KindOf(err))
}

func TestDeleteEvent_CascadesToFavorites(t *testing.T) {
	db := newTestDB(t)
	events := NewEventService(db)
	users := NewUserService(db)
	creator := seedUser(t, db, "creator@campus.edu", false)
	club := seedClub(t, db, "Chess Club")
	event := seedEvent(t, db, EventInput{ClubID: club.ID}, creator.ID)

	fans := []models.User{
		seedUser(t, db, "fan1@campus.edu", false),
		seedUser(t, db, "fan2@campus.edu", false),
		seedUser(t, db, "fan3@campus.edu", false),
	}
	for _, fan := range fans {
		_, err := users.AddFavorite(fan.ID, event.ID)
		require.NoError(t, err)
	}

	require.NoError(t, events.DeleteEvent(event.ID))

	_, err := events.GetEventByID(event.ID)
	assert.Equal(t, models.KindNotFound, models.KindOf(err))

	for _, fan := range fans {
		got, err := users.GetUserByID(fan.ID)
		require.NoError(t, err)
		assert.NotContains(t, got.FavoritedEvents, event.ID)
	}
}

func TestDeleteEvent_NotFound(t *testing.T) {
	db := newTestDB(t)
	err := NewEventService(db).DeleteEvent("missing")
	assert.Equal(t, models.KindNotFound, models.KindOf(err))
}

func TestDeleteExpired(t *testing.T) {
	db := newTestDB(t)
	svc := NewEventService(db)
	users := NewUserService(db)
	creator := seedUser(t, db, "creator@campus.edu", false)
	fan := seedUser(t, db, "fan@campus.edu", false)
	club := seedClub(t, db, "Chess Club")

	past := seedEvent(t, db, EventInput{Name: "Past", Date: "2020-01-01", ClubID: club.ID}, creator.ID)
	future := seedEvent(t, db, EventInput{Name: "Future", Date: "2099-01-01", ClubID: club.ID}, creator.ID)
	undated := seedEvent(t, db, EventInput{Name: "Undated", Date: "tbd", ClubID: club.ID}, creator.ID)

	_, err := users.AddFavorite(fan.ID, past.ID)
	require.NoError(t, err)

	n, err := svc.DeleteExpired(time.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = svc.GetEventByID(past.ID)
	assert.Equal(t, models.KindNotFound, models.KindOf(err))
	_, err = svc.GetEventByID(future.ID)
	assert.NoError(t, err)
	_, err = svc.GetEventByID(undated.ID)
	assert.NoError(t, err, "events without an expiry are never swept")

	got, err := users.GetUserByID(fan.ID)
	require.NoError(t, err)
	assert.NotContains(t, got.FavoritedEvents, past.ID)
}

func TestGetEventByID_Enrichment(t *testing.T) {
	db := newTestDB(t)
	svc := NewEventService(db)
	creator := seedUser(t, db, "creator@campus.edu", false)
	club := seedClub(t, db, "Chess Club")
	event := seedEvent(t, db, EventInput{ClubID: club.ID}, creator.ID)

	enriched, err := svc.GetEventByID(event.ID)
	require.NoError(t, err)
	require.NotNil(t, enriched.Club)
	assert.Equal(t, club.ID, enriched.Club.ID)
	assert.Equal(t, "Chess Club", enriched.Club.Name)
}
