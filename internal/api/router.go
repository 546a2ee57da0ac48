package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/campuspulse/campuspulse-be/internal/api/handlers"
	"github.com/campuspulse/campuspulse-be/internal/auth"
	"github.com/campuspulse/campuspulse-be/internal/metrics"
	"github.com/campuspulse/campuspulse-be/internal/services"
)

// RouterDeps bundles the services the router wires into handlers.
type RouterDeps struct {
	Users     services.UserServiceProvider
	Clubs     services.ClubServiceProvider
	Events    services.EventServiceProvider
	Search    services.SearchServiceProvider
	Collector *metrics.Collector
	Registry  *prometheus.Registry
	Frontend  string
}

// NewRouter creates and configures a new Chi router.
func NewRouter(deps RouterDeps) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	if deps.Collector != nil {
		r.Use(deps.Collector.Middleware)
	}

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{deps.Frontend},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "Origin"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(deps.Users)
	userHandler := handlers.NewUserHandler(deps.Users)
	clubHandler := handlers.NewClubHandler(deps.Clubs, deps.Users)
	eventHandler := handlers.NewEventHandler(deps.Events, deps.Users)
	searchHandler := handlers.NewSearchHandler(deps.Search, deps.Clubs, deps.Collector)
	adminHandler := handlers.NewAdminHandler(deps.Clubs, deps.Users)

	requireAuth := auth.JWTMiddleware()

	if deps.Registry != nil {
		r.Handle("/metrics", metrics.Handler(deps.Registry))
	}

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.With(requireAuth).Get("/me", authHandler.Me)
		})

		r.Route("/events", func(r chi.Router) {
			// Public: list + view events
			r.Get("/", eventHandler.GetAll)
			r.Get("/{id}", eventHandler.Get)

			// Mutations require a caller identity
			r.With(requireAuth).Post("/", eventHandler.Create)
			r.With(requireAuth).Put("/{id}", eventHandler.Update)
			r.With(requireAuth).Delete("/{id}", eventHandler.Delete)
		})

		r.Route("/search", func(r chi.Router) {
			r.Get("/", searchHandler.Search)
			r.Post("/advanced", searchHandler.Advanced)
			r.Get("/events/{id}", searchHandler.EventsForClub)
			r.Get("/tags", searchHandler.Tags)
			r.Get("/clubs", searchHandler.Clubs)
			r.Get("/clubs/{id}", searchHandler.ClubByID)
		})

		r.Route("/clubs", func(r chi.Router) {
			r.Use(requireAuth)
			r.Get("/mine", clubHandler.Mine)
			r.Post("/", clubHandler.Create)
			r.Delete("/{id}", clubHandler.Delete)
			r.Post("/{id}/join", clubHandler.Join)
			r.Post("/{id}/leave", clubHandler.Leave)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(requireAuth)
			r.Post("/assign-club-admin", adminHandler.AssignClubAdmin)
			r.Post("/remove-club-admin", adminHandler.RemoveClubAdmin)
			r.Get("/club-admins/{clubId}", adminHandler.ClubAdmins)
			r.Get("/users", adminHandler.AllUsers)
		})

		r.Route("/user", func(r chi.Router) {
			r.Use(requireAuth)
			r.Patch("/favorites", userHandler.UpdateFavorites)
			r.Get("/favorites", userHandler.GetFavorites)
		})
	})

	return r
}
