package database

import (
	"database/sql"

	_ "modernc.org/sqlite" // SQLite driver
)

// New creates a new database connection pool.
func New(dataSourceName string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dataSourceName+"?_time_format=sqlite&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate runs the SQL statements to set up the database schema.
// The admin/member/favorite relations live in edge tables with
// composite primary keys so neither side of a relation can be written
// without the other.
func Migrate(db *sql.DB) error {
	const sqlStmt = `
	CREATE TABLE IF NOT EXISTS users (
		id TEXT NOT NULL PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		is_super_admin INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS clubs (
		id TEXT NOT NULL PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT NOT NULL,
		logo TEXT NOT NULL DEFAULT '',
		-- Store the gallery as JSON text
		gallery_json TEXT NOT NULL DEFAULT '[]',
		member_count INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS events (
		id TEXT NOT NULL PRIMARY KEY,
		name TEXT NOT NULL,
		date TEXT NOT NULL,
		start_time TEXT NOT NULL,
		end_time TEXT NOT NULL,
		rsvp_needed INTEGER NOT NULL DEFAULT 0,
		location TEXT NOT NULL,
		description TEXT NOT NULL,
		tags_json TEXT NOT NULL DEFAULT '[]',
		created_by TEXT NOT NULL,
		mulife_link TEXT NOT NULL DEFAULT '',
		club_id TEXT NOT NULL,
		image TEXT NOT NULL DEFAULT '',
		delete_at DATETIME,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS club_admins (
		user_id TEXT NOT NULL,
		club_id TEXT NOT NULL,
		PRIMARY KEY (user_id, club_id)
	);

	CREATE TABLE IF NOT EXISTS club_members (
		user_id TEXT NOT NULL,
		club_id TEXT NOT NULL,
		PRIMARY KEY (user_id, club_id)
	);

	CREATE TABLE IF NOT EXISTS favorites (
		user_id TEXT NOT NULL,
		event_id TEXT NOT NULL,
		PRIMARY KEY (user_id, event_id)
	);

	CREATE INDEX IF NOT EXISTS idx_events_club_id ON events(club_id);
	CREATE INDEX IF NOT EXISTS idx_events_delete_at ON events(delete_at);
	`
	_, err := db.Exec(sqlStmt)
	return err
}
