package services

import (
	"database/sql"
	"encoding/json"

	"github.com/google/uuid"

	"github.com/campuspulse/campuspulse-be/internal/models"
)

// ClubServiceProvider defines the interface for club services.
type ClubServiceProvider interface {
	CreateClub(name, description, logo string, gallery []string) (models.Club, error)
	GetClubByID(id string) (models.Club, error)
	DeleteClub(id string) error
	Join(userID, clubID string) (models.User, error)
	Leave(userID, clubID string) (models.User, error)
	AssignAdmin(email, clubID string) (models.User, error)
	RemoveAdmin(userID, clubID string) (models.User, error)
	ClubAdmins(clubID string) ([]models.User, error)
	ClubsAdministeredBy(userID string) ([]models.ClubSummary, error)
}

// ClubService provides business logic for clubs and the user<->club
// relations. Every mutation that touches both sides of a relation runs
// in a single transaction, so a half-written edge cannot exist.
type ClubService struct {
	db *sql.DB
}

// NewClubService creates a new ClubService.
func NewClubService(db *sql.DB) *ClubService {
	return &ClubService{db: db}
}

// CreateClub inserts a new club.
func (s *ClubService) CreateClub(name, description, logo string, gallery []string) (models.Club, error) {
	if gallery == nil {
		gallery = []string{}
	}
	galleryJSON, err := json.Marshal(gallery)
	if err != nil {
		return models.Club{}, err
	}

	id := uuid.New().String()
	_, err = s.db.Exec(
		"INSERT INTO clubs(id, name, description, logo, gallery_json) VALUES(?, ?, ?, ?, ?)",
		id, name, description, logo, string(galleryJSON),
	)
	if err != nil {
		return models.Club{}, err
	}
	return s.GetClubByID(id)
}

// GetClubByID retrieves a club with its gallery and admin projection.
func (s *ClubService) GetClubByID(id string) (models.Club, error) {
	var club models.Club
	var galleryJSON string
	row := s.db.QueryRow("SELECT id, name, description, logo, gallery_json, member_count, created_at FROM clubs WHERE id = ?", id)
	err := row.Scan(&club.ID, &club.Name, &club.Description, &club.Logo, &galleryJSON, &club.MemberCount, &club.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Club{}, models.NotFoundError("club %s not found", id)
		}
		return models.Club{}, err
	}

	if err := json.Unmarshal([]byte(galleryJSON), &club.Gallery); err != nil {
		return models.Club{}, err
	}
	if club.Admins, err = edgeList(s.db, "SELECT user_id FROM club_admins WHERE club_id = ?", id); err != nil {
		return models.Club{}, err
	}
	return club, nil
}

// DeleteClub removes a club and its admin/member edges in one
// transaction. Events keep their club reference; the outer-join
// enrichment returns a null club for them.
func (s *ClubService) DeleteClub(id string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.Exec("DELETE FROM clubs WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return models.NotFoundError("club %s not found", id)
	}
	if _, err := tx.Exec("DELETE FROM club_admins WHERE club_id = ?", id); err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM club_members WHERE club_id = ?", id); err != nil {
		return err
	}
	return tx.Commit()
}

// Join adds the user to the club's members. Idempotent: the counter
// only moves when the edge is actually inserted.
func (s *ClubService) Join(userID, clubID string) (models.User, error) {
	if err := s.ensureClub(clubID); err != nil {
		return models.User{}, err
	}
	if _, err := loadUser(s.db, userID); err != nil {
		return models.User{}, err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return models.User{}, err
	}
	defer tx.Rollback()

	res, err := tx.Exec("INSERT OR IGNORE INTO club_members(user_id, club_id) VALUES(?, ?)", userID, clubID)
	if err != nil {
		return models.User{}, err
	}
	if n, _ := res.RowsAffected(); n > 0 {
		if _, err := tx.Exec("UPDATE clubs SET member_count = member_count + 1 WHERE id = ?", clubID); err != nil {
			return models.User{}, err
		}
	}
	if err := tx.Commit(); err != nil {
		return models.User{}, err
	}
	return loadUser(s.db, userID)
}

// Leave removes the user from the club's members, symmetric to Join.
// The counter clamps at zero.
func (s *ClubService) Leave(userID, clubID string) (models.User, error) {
	if _, err := loadUser(s.db, userID); err != nil {
		return models.User{}, err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return models.User{}, err
	}
	defer tx.Rollback()

	res, err := tx.Exec("DELETE FROM club_members WHERE user_id = ? AND club_id = ?", userID, clubID)
	if err != nil {
		return models.User{}, err
	}
	if n, _ := res.RowsAffected(); n > 0 {
		_, err := tx.Exec("UPDATE clubs SET member_count = CASE WHEN member_count > 0 THEN member_count - 1 ELSE 0 END WHERE id = ?", clubID)
		if err != nil {
			return models.User{}, err
		}
	}
	if err := tx.Commit(); err != nil {
		return models.User{}, err
	}
	return loadUser(s.db, userID)
}

// AssignAdmin makes the user (looked up by email) an admin of the
// club. The edge table is the single source of truth for both the
// user's adminOf view and the club's admins view, so one insert
// updates "both sides". Idempotent.
func (s *ClubService) AssignAdmin(email, clubID string) (models.User, error) {
	email = NormalizeEmail(email)

	var userID string
	err := s.db.QueryRow("SELECT id FROM users WHERE email = ?", email).Scan(&userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.User{}, models.NotFoundError("user %s not found", email)
		}
		return models.User{}, err
	}
	if err := s.ensureClub(clubID); err != nil {
		return models.User{}, err
	}

	_, err = s.db.Exec("INSERT OR IGNORE INTO club_admins(user_id, club_id) VALUES(?, ?)", userID, clubID)
	if err != nil {
		return models.User{}, err
	}
	return loadUser(s.db, userID)
}

// RemoveAdmin revokes the user's admin edge for the club. The derived
// isAdmin flag drops on its own once the last edge is gone.
func (s *ClubService) RemoveAdmin(userID, clubID string) (models.User, error) {
	if _, err := loadUser(s.db, userID); err != nil {
		return models.User{}, err
	}

	_, err := s.db.Exec("DELETE FROM club_admins WHERE user_id = ? AND club_id = ?", userID, clubID)
	if err != nil {
		return models.User{}, err
	}
	return loadUser(s.db, userID)
}

// ClubAdmins lists the admins of a club.
func (s *ClubService) ClubAdmins(clubID string) ([]models.User, error) {
	if err := s.ensureClub(clubID); err != nil {
		return nil, err
	}

	ids, err := edgeList(s.db, "SELECT user_id FROM club_admins WHERE club_id = ? ORDER BY user_id", clubID)
	if err != nil {
		return nil, err
	}

	admins := []models.User{}
	for _, id := range ids {
		user, err := loadUser(s.db, id)
		if err != nil {
			return nil, err
		}
		admins = append(admins, user)
	}
	return admins, nil
}

// ClubsAdministeredBy lists the clubs the user administers.
func (s *ClubService) ClubsAdministeredBy(userID string) ([]models.ClubSummary, error) {
	rows, err := s.db.Query(`
		SELECT c.id, c.name, c.description, c.logo
		FROM clubs c
		JOIN club_admins ca ON ca.club_id = c.id
		WHERE ca.user_id = ?
		ORDER BY c.name ASC`, userID)
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

func (s *ClubService) ensureClub(clubID string) error {
	var exists int
	if err := s.db.QueryRow("SELECT COUNT(1) FROM clubs WHERE id = ?", clubID).Scan(&exists); err != nil {
		return err
	}
	if exists == 0 {
		return models.NotFoundError("club %s not found", clubID)
	}
	return nil
}
