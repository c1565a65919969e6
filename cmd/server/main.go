package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	h "github.com/gorilla/handlers"
	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog"

	"github.com/stanstork/tutoring-api/internal/config"
	"github.com/stanstork/tutoring-api/internal/handlers"
	"github.com/stanstork/tutoring-api/internal/middleware"
	"github.com/stanstork/tutoring-api/internal/migration"
	"github.com/stanstork/tutoring-api/internal/notification"
	"github.com/stanstork/tutoring-api/internal/repository"
	"github.com/stanstork/tutoring-api/internal/routes"
	"github.com/stanstork/tutoring-api/internal/scheduling"

	_ "github.com/lib/pq" // PostgreSQL driver
)

type application struct {
	config        *config.Config
	db            *sql.DB
	logger        zerolog.Logger
	notifications notification.Service
	scheduling    *scheduling.Service
}

func main() {
	// Set up structured, level-based logging.
	consoleWriter := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen}
	logger := zerolog.New(consoleWriter).With().Timestamp().Logger()

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	log.SetFlags(0)
	log.SetOutput(logger)

	gooseAdapter := migration.NewGooseAdapter(logger)
	goose.SetLogger(gooseAdapter)

	// Load configuration.
	cfg := config.Load()
	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(level)
	} else {
		logger.Warn().Str("log_level", cfg.LogLevel).Msg("Unknown log level, using info")
	}

	location, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Fatal().Err(err).Str("timezone", cfg.Timezone).Msg("Invalid timezone")
	}

	// Initialize database connection.
	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to the database")
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Fatal().Err(err).Msg("Failed to ping database")
	}

	// Run database migrations.
	if err := migration.RunMigrations(cfg.DatabaseURL, logger); err != nil {
		logger.Fatal().Err(err).Msg("Failed to run migrations")
	}

	// Initialize notification service.
	notificationRepo := repository.NewNotificationRepository(db)
	notificationService := notification.NewService(notificationRepo, logger)

	app := &application{
		config:        cfg,
		db:            db,
		logger:        logger,
		notifications: notificationService,
	}
	app.scheduling = app.newSchedulingService(location)

	// Initialize the HTTP router and middleware.
	router := app.initRouter(logger)
	loggedRouter := middleware.LoggingMiddleware(app.logger)(router)
	corsHandler := h.CORS(
		h.AllowedOrigins(cfg.AllowedOrigins),
		h.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		h.AllowedHeaders([]string{"Content-Type", "Authorization"}),
		h.AllowCredentials(),
	)(loggedRouter)

	// Start the HTTP server and handle graceful shutdown.
	app.startServer(corsHandler, logger)

	logger.Info().Msg("Application terminated.")
}

// newSchedulingService wires the repositories and the email channel into the scheduling service.
func (app *application) newSchedulingService(location *time.Location) *scheduling.Service {
	var notifier notification.Notifier
	if app.config.Email.Enabled() {
		emailNotifier, err := notification.NewEmailNotifier(app.config.Email, app.logger)
		if err != nil {
			app.logger.Fatal().Err(err).Msg("Failed to configure email notifier")
		}
		notifier = emailNotifier
	} else {
		app.logger.Warn().Msg("SMTP is not configured, emails will only be logged")
		notifier = notification.NewLogNotifier(app.logger)
	}

	return scheduling.NewService(scheduling.Options{
		Schedules:     repository.NewScheduleRepository(app.db),
		Invitations:   repository.NewInvitationRepository(app.db),
		Cancellations: repository.NewCancellationRepository(app.db),
		Tutors:        repository.NewTutorRepository(app.db),
		Timeblocks:    repository.NewTimeblockRepository(app.db),
		Users:         repository.NewUserRepository(app.db),
		Notifier:      notifier,
		Inbox:         app.notifications,
		BaseURL:       app.config.BaseURL,
		Location:      location,
		Logger:        app.logger,
	})
}

// initRouter sets up all HTTP handlers and returns the router.
func (app *application) initRouter(logger zerolog.Logger) http.Handler {
	userRepo := repository.NewUserRepository(app.db)

	return routes.NewRouter(routes.Handlers{
		Health:        handlers.HealthCheck(app.db),
		Auth:          handlers.NewAuthHandler(userRepo, app.config, logger),
		Invitations:   handlers.NewInvitationResponseHandler(app.scheduling, app.config.BrandName, logger),
		Tutor:         handlers.NewTutorHandler(app.scheduling, logger),
		Schedule:      handlers.NewScheduleHandler(app.scheduling, logger),
		Regulars:      handlers.NewRegularsHandler(app.scheduling, logger),
		Dashboard:     handlers.NewDashboardHandler(app.scheduling, logger),
		Users:         handlers.NewUserHandler(userRepo, logger),
		Notifications: handlers.NewNotificationHandler(app.notifications, logger),
	})
}

// startServer launches the HTTP server and handles graceful shutdown.
func (app *application) startServer(handler http.Handler, logger zerolog.Logger) {
	server := &http.Server{
		Addr:              ":" + app.config.ServerPort,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Channel to listen for server errors
	serverErrCh := make(chan error, 1)
	go func() {
		logger.Info().Msgf("Server listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrCh <- err
		}
	}()

	// Wait for an interrupt signal or a server error.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-quit:
		logger.Info().Msgf("Received signal: %s. Shutting down...", sig)
	case err := <-serverErrCh:
		logger.Error().Err(err).Msg("Server error occurred")
	}

	// Gracefully shut down the HTTP server.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("HTTP server shutdown error")
	} else {
		logger.Info().Msg("HTTP server shutdown complete.")
	}
}
