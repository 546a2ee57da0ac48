package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/campuspulse/campuspulse-be/internal/auth"
	"github.com/campuspulse/campuspulse-be/internal/models"
	"github.com/campuspulse/campuspulse-be/internal/services"
)

// withClaims injects validated JWT claims the way the auth middleware
// would.
func withClaims(r *http.Request, userID string) *http.Request {
	claims := &auth.Claims{UserID: userID}
	return r.WithContext(context.WithValue(r.Context(), auth.UserClaimsKey, claims))
}

type mockUserService struct {
	registerFn       func(email, password string) (models.User, error)
	authenticateFn   func(email, password string) (models.User, error)
	getUserByIDFn    func(id string) (models.User, error)
	identityFn       func(userID string) (*models.Identity, error)
	listAllUsersFn   func() ([]models.User, error)
	addFavoriteFn    func(userID, eventID string) (models.User, error)
	removeFavoriteFn func(userID, eventID string) (models.User, error)
	getFavoritesFn   func(userID string) ([]models.Event, error)
}

func (m *mockUserService) Register(email, password string) (models.User, error) {
	if m.registerFn != nil {
		return m.registerFn(email, password)
	}
	return models.User{}, nil
}

func (m *mockUserService) Authenticate(email, password string) (models.User, error) {
	if m.authenticateFn != nil {
		return m.authenticateFn(email, password)
	}
	return models.User{}, nil
}

func (m *mockUserService) GetUserByID(id string) (models.User, error) {
	if m.getUserByIDFn != nil {
		return m.getUserByIDFn(id)
	}
	return models.User{ID: id}, nil
}

func (m *mockUserService) Identity(userID string) (*models.Identity, error) {
	if m.identityFn != nil {
		return m.identityFn(userID)
	}
	return &models.Identity{UserID: userID}, nil
}

func (m *mockUserService) ListAllUsers() ([]models.User, error) {
	if m.listAllUsersFn != nil {
		return m.listAllUsersFn()
	}
	return nil, nil
}

func (m *mockUserService) AddFavorite(userID, eventID string) (models.User, error) {
	if m.addFavoriteFn != nil {
		return m.addFavoriteFn(userID, eventID)
	}
	return models.User{ID: userID}, nil
}

func (m *mockUserService) RemoveFavorite(userID, eventID string) (models.User, error) {
	if m.removeFavoriteFn != nil {
		return m.removeFavoriteFn(userID, eventID)
	}
	return models.User{ID: userID}, nil
}

func (m *mockUserService) GetFavorites(userID string) ([]models.Event, error) {
	if m.getFavoritesFn != nil {
		return m.getFavoritesFn(userID)
	}
	return nil, nil
}

type mockClubService struct {
	createClubFn          func(name, description, logo string, gallery []string) (models.Club, error)
	getClubByIDFn         func(id string) (models.Club, error)
	deleteClubFn          func(id string) error
	joinFn                func(userID, clubID string) (models.User, error)
	leaveFn               func(userID, clubID string) (models.User, error)
	assignAdminFn         func(email, clubID string) (models.User, error)
	removeAdminFn         func(userID, clubID string) (models.User, error)
	clubAdminsFn          func(clubID string) ([]models.User, error)
	clubsAdministeredByFn func(userID string) ([]models.ClubSummary, error)
}

func (m *mockClubService) CreateClub(name, description, logo string, gallery []string) (models.Club, error) {
	if m.createClubFn != nil {
		return m.createClubFn(name, description, logo, gallery)
	}
	return models.Club{}, nil
}

func (m *mockClubService) GetClubByID(id string) (models.Club, error) {
	if m.getClubByIDFn != nil {
		return m.getClubByIDFn(id)
	}
	return models.Club{ID: id}, nil
}

func (m *mockClubService) DeleteClub(id string) error {
	if m.deleteClubFn != nil {
		return m.deleteClubFn(id)
	}
	return nil
}

func (m *mockClubService) Join(userID, clubID string) (models.User, error) {
	if m.joinFn != nil {
		return m.joinFn(userID, clubID)
	}
	return models.User{ID: userID}, nil
}

func (m *mockClubService) Leave(userID, clubID string) (models.User, error) {
	if m.leaveFn != nil {
		return m.leaveFn(userID, clubID)
	}
	return models.User{ID: userID}, nil
}

func (m *mockClubService) AssignAdmin(email, clubID string) (models.User, error) {
	if m.assignAdminFn != nil {
		return m.assignAdminFn(email, clubID)
	}
	return models.User{Email: email}, nil
}

func (m *mockClubService) RemoveAdmin(userID, clubID string) (models.User, error) {
	if m.removeAdminFn != nil {
		return m.removeAdminFn(userID, clubID)
	}
	return models.User{ID: userID}, nil
}

func (m *mockClubService) ClubAdmins(clubID string) ([]models.User, error) {
	if m.clubAdminsFn != nil {
		return m.clubAdminsFn(clubID)
	}
	return nil, nil
}

func (m *mockClubService) ClubsAdministeredBy(userID string) ([]models.ClubSummary, error) {
	if m.clubsAdministeredByFn != nil {
		return m.clubsAdministeredByFn(userID)
	}
	return nil, nil
}

type mockEventService struct {
	getAllEventsFn  func() ([]models.EnrichedEvent, error)
	getEventByIDFn  func(id string) (models.EnrichedEvent, error)
	createEventFn   func(input services.EventInput, creatorID string) (models.Event, error)
	updateEventFn   func(id string, input services.EventUpdate) (models.Event, error)
	deleteEventFn   func(id string) error
	deleteExpiredFn func(now time.Time) (int64, error)
}

func (m *mockEventService) GetAllEvents() ([]models.EnrichedEvent, error) {
	if m.getAllEventsFn != nil {
		return m.getAllEventsFn()
	}
	return nil, nil
}

func (m *mockEventService) GetEventByID(id string) (models.EnrichedEvent, error) {
	if m.getEventByIDFn != nil {
		return m.getEventByIDFn(id)
	}
	return models.EnrichedEvent{Event: models.Event{ID: id}}, nil
}

func (m *mockEventService) CreateEvent(input services.EventInput, creatorID string) (models.Event, error) {
	if m.createEventFn != nil {
		return m.createEventFn(input, creatorID)
	}
	return models.Event{}, nil
}

func (m *mockEventService) UpdateEvent(id string, input services.EventUpdate) (models.Event, error) {
	if m.updateEventFn != nil {
		return m.updateEventFn(id, input)
	}
	return models.Event{ID: id}, nil
}

func (m *mockEventService) DeleteEvent(id string) error {
	if m.deleteEventFn != nil {
		return m.deleteEventFn(id)
	}
	return nil
}

func (m *mockEventService) DeleteExpired(now time.Time) (int64, error) {
	if m.deleteExpiredFn != nil {
		return m.deleteExpiredFn(now)
	}
	return 0, nil
}

type mockSearchService struct {
	searchFn         func(criteria services.SearchCriteria) ([]models.EnrichedEvent, error)
	advancedFilterFn func(criteria services.AdvancedCriteria) ([]models.EnrichedEvent, error)
	eventsForClubFn  func(clubID string) ([]models.EnrichedEvent, error)
	listTagsFn       func() ([]string, error)
	listClubsFn      func() ([]models.ClubSummary, error)
}

func (m *mockSearchService) Search(criteria services.SearchCriteria) ([]models.EnrichedEvent, error) {
	if m.searchFn != nil {
		return m.searchFn(criteria)
	}
	return nil, nil
}

func (m *mockSearchService) AdvancedFilter(criteria services.AdvancedCriteria) ([]models.EnrichedEvent, error) {
	if m.advancedFilterFn != nil {
		return m.advancedFilterFn(criteria)
	}
	return nil, nil
}

func (m *mockSearchService) EventsForClub(clubID string) ([]models.EnrichedEvent, error) {
	if m.eventsForClubFn != nil {
		return m.eventsForClubFn(clubID)
	}
	return nil, nil
}

func (m *mockSearchService) ListTags() ([]string, error) {
	if m.listTagsFn != nil {
		return m.listTagsFn()
	}
	return nil, nil
}

func (m *mockSearchService) ListClubs() ([]models.ClubSummary, error) {
	if m.listClubsFn != nil {
		return m.listClubsFn()
	}
	return nil, nil
}
