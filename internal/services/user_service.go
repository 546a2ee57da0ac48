package services

import (
	"database/sql"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/campuspulse/campuspulse-be/internal/models"
)

// UserServiceProvider defines the interface for user services.
type UserServiceProvider interface {
	Register(email, password string) (models.User, error)
	Authenticate(email, password string) (models.User, error)
	GetUserByID(id string) (models.User, error)
	Identity(userID string) (*models.Identity, error)
	ListAllUsers() ([]models.User, error)
	AddFavorite(userID, eventID string) (models.User, error)
	RemoveFavorite(userID, eventID string) (models.User, error)
	GetFavorites(userID string) ([]models.Event, error)
}

// UserService provides business logic for user accounts and favorites.
type UserService struct {
	db *sql.DB
}

// NewUserService creates a new UserService.
func NewUserService(db *sql.DB) *UserService {
	return &UserService{db: db}
}

// NormalizeEmail lowercases and trims an email; the users table stores
// the normalized form so lookups are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a new user, hashing their password.
func (s *UserService) Register(email, password string) (models.User, error) {
	email = NormalizeEmail(email)

	var exists int
	err := s.db.QueryRow("SELECT COUNT(1) FROM users WHERE email = ?", email).Scan(&exists)
	if err != nil {
		return models.User{}, err
	}
	if exists > 0 {
		return models.User{}, models.ConflictError("email already in use")
	}

	// Cost 12 matches the registration flow this replaced.
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return models.User{}, err
	}

	id := uuid.New().String()
	_, err = s.db.Exec(
		"INSERT INTO users(id, email, password_hash) VALUES(?, ?, ?)",
		id, email, string(hashedPassword),
	)
	if err != nil {
		return models.User{}, err
	}

	return s.GetUserByID(id)
}

// Authenticate verifies a user's credentials.
func (s *UserService) Authenticate(email, password string) (models.User, error) {
	email = NormalizeEmail(email)

	var id, passwordHash string
	err := s.db.QueryRow("SELECT id, password_hash FROM users WHERE email = ?", email).Scan(&id, &passwordHash)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.User{}, models.UnauthorizedError("invalid credentials")
		}
		return models.User{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password)); err != nil {
		return models.User{}, models.UnauthorizedError("invalid credentials")
	}

	return s.GetUserByID(id)
}

// GetUserByID retrieves a single user with all relation projections.
func (s *UserService) GetUserByID(id string) (models.User, error) {
	return loadUser(s.db, id)
}

// Identity resolves the role facts for an authenticated user. The
// token only proves who the caller is; admin status always comes from
// the store.
func (s *UserService) Identity(userID string) (*models.Identity, error) {
	var isSuperAdmin bool
	err := s.db.QueryRow("SELECT is_super_admin FROM users WHERE id = ?", userID).Scan(&isSuperAdmin)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, models.NotFoundError("user %s not found", userID)
		}
		return nil, err
	}

	adminOf, err := edgeList(s.db, "SELECT club_id FROM club_admins WHERE user_id = ?", userID)
	if err != nil {
		return nil, err
	}

	return &models.Identity{
		UserID:       userID,
		IsSuperAdmin: isSuperAdmin,
		IsAdmin:      len(adminOf) > 0,
		AdminOf:      adminOf,
	}, nil
}

// ListAllUsers returns every user with role flags and club admin
// assignments, for the superadmin panel.
func (s *UserService) ListAllUsers() ([]models.User, error) {
	rows, err := s.db.Query("SELECT id, email, is_super_admin, created_at FROM users ORDER BY email")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	index := make(map[string]int)
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Email, &u.IsSuperAdmin, &u.CreatedAt); err != nil {
			return nil, err
		}
		u.AdminOf = []string{}
		index[u.ID] = len(users)
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	edges, err := s.db.Query("SELECT user_id, club_id FROM club_admins")
	if err != nil {
		return nil, err
	}
	defer edges.Close()

	for edges.Next() {
		var userID, clubID string
		if err := edges.Scan(&userID, &clubID); err != nil {
			return nil, err
		}
		if i, ok := index[userID]; ok {
			users[i].AdminOf = append(users[i].AdminOf, clubID)
			users[i].IsAdmin = true
		}
	}
	return users, edges.Err()
}

// AddFavorite records an event in the user's favorites (set semantics).
func (s *UserService) AddFavorite(userID, eventID string) (models.User, error) {
	var exists int
	err := s.db.QueryRow("SELECT COUNT(1) FROM events WHERE id = ?", eventID).Scan(&exists)
	if err != nil {
		return models.User{}, err
	}
	if exists == 0 {
		return models.User{}, models.NotFoundError("event %s not found", eventID)
	}

	_, err = s.db.Exec("INSERT OR IGNORE INTO favorites(user_id, event_id) VALUES(?, ?)", userID, eventID)
	if err != nil {
		return models.User{}, err
	}
	return loadUser(s.db, userID)
}

// RemoveFavorite drops an event from the user's favorites. Removing an
// absent favorite is a no-op.
func (s *UserService) RemoveFavorite(userID, eventID string) (models.User, error) {
	_, err := s.db.Exec("DELETE FROM favorites WHERE user_id = ? AND event_id = ?", userID, eventID)
	if err != nil {
		return models.User{}, err
	}
	return loadUser(s.db, userID)
}

// GetFavorites returns the user's favorited events, populated.
func (s *UserService) GetFavorites(userID string) ([]models.Event, error) {
	if _, err := loadUser(s.db, userID); err != nil {
		return nil, err
	}

	rows, err := s.db.Query(`
		SELECT `+eventColumns+`
		FROM events e
		JOIN favorites f ON f.event_id = e.id
		WHERE f.user_id = ?
		ORDER BY e.date ASC, e.start_time ASC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := []models.Event{}
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}

// loadUser reads a user row plus its relation projections. IsAdmin is
// computed from the admin edges, never read from a column.
func loadUser(db *sql.DB, id string) (models.User, error) {
	var user models.User
	row := db.QueryRow("SELECT id, email, password_hash, is_super_admin, created_at FROM users WHERE id = ?", id)
	err := row.Scan(&user.ID, &user.Email, &user.PasswordHash, &user.IsSuperAdmin, &user.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.User{}, models.NotFoundError("user %s not found", id)
		}
		return models.User{}, err
	}

	if user.AdminOf, err = edgeList(db, "SELECT club_id FROM club_admins WHERE user_id = ?", id); err != nil {
		return models.User{}, err
	}
	if user.MemberOf, err = edgeList(db, "SELECT club_id FROM club_members WHERE user_id = ?", id); err != nil {
		return models.User{}, err
	}
	if user.FavoritedEvents, err = edgeList(db, "SELECT event_id FROM favorites WHERE user_id = ?", id); err != nil {
		return models.User{}, err
	}
	user.IsAdmin = len(user.AdminOf) > 0
	return user, nil
}

// edgeList reads a single-column id list from a relation table.
func edgeList(db *sql.DB, query string, args ...any) ([]string, error) {
	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
