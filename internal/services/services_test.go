package services

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/campuspulse/campuspulse-be/internal/database"
	"github.com/campuspulse/campuspulse-be/internal/models"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { db.Close() })
	return db
}

func seedUser(t *testing.T, db *sql.DB, email string, superAdmin bool) models.User {
	t.Helper()
	user, err := NewUserService(db).Register(email, "password123")
	require.NoError(t, err)
	if superAdmin {
		_, err = db.Exec("UPDATE users SET is_super_admin = 1 WHERE id = ?", user.ID)
		require.NoError(t, err)
		user.IsSuperAdmin = true
	}
	return user
}

func seedClub(t *testing.T, db *sql.DB, name string) models.Club {
	t.Helper()
	club, err := NewClubService(db).CreateClub(name, name+" description", "", nil)
	require.NoError(t, err)
	return club
}

func seedEvent(t *testing.T, db *sql.DB, input EventInput, creatorID string) models.Event {
	t.Helper()
	if input.Name == "" {
		input.Name = "Test Event"
	}
	if input.Date == "" {
		input.Date = "2025-01-01"
	}
	if input.StartTime == "" {
		input.StartTime = "10:00"
	}
	if input.EndTime == "" {
		input.EndTime = "12:00"
	}
	if input.Location == "" {
		input.Location = "Main Hall"
	}
	if input.Description == "" {
		input.Description = "A test event"
	}
	event, err := NewEventService(db).CreateEvent(input, creatorID)
	require.NoError(t, err)
	return event
}
