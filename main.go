package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/campuspulse/campuspulse-be/internal/api"
	"github.com/campuspulse/campuspulse-be/internal/config"
	"github.com/campuspulse/campuspulse-be/internal/database"
	"github.com/campuspulse/campuspulse-be/internal/logger"
	"github.com/campuspulse/campuspulse-be/internal/metrics"
	"github.com/campuspulse/campuspulse-be/internal/monitoring"
	"github.com/campuspulse/campuspulse-be/internal/services"
)

func main() {
	logger.Init()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Set up database
	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to apply database migrations: %v", err)
	}

	// Set up metrics
	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)

	// Set up services
	userService := services.NewUserService(db)
	clubService := services.NewClubService(db)
	eventService := services.NewEventService(db)
	searchService := services.NewSearchService(db)

	// Set up and run the background expiry sweeper
	sweeper, err := monitoring.NewSweeper(eventService, collector, cfg.SweepSchedule)
	if err != nil {
		log.Fatalf("Failed to initialize sweeper: %v", err)
	}
	go sweeper.Run()

	// Set up router
	router := api.NewRouter(api.RouterDeps{
		Users:     userService,
		Clubs:     clubService,
		Events:    eventService,
		Search:    searchService,
		Collector: collector,
		Registry:  registry,
		Frontend:  cfg.FrontendURL,
	})

	// Set up server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.ServerPort),
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		log.Printf("Server starting on port %d\n", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe(): %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	sweeper.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting")
}
