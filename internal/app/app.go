package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/quietstudy/studytrack/internal/http"
	"github.com/quietstudy/studytrack/internal/service"
	"github.com/quietstudy/studytrack/internal/store"
	"github.com/quietstudy/studytrack/internal/store/drivers/sqlite"
	"github.com/quietstudy/studytrack/pkg/cryptox"
	"github.com/quietstudy/studytrack/pkg/jwtx"
	"github.com/quietstudy/studytrack/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"
)

// Application encapsulates the studytrack service with all its dependencies
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db       store.Store
	tokens   *jwtx.Issuer
	location *time.Location

	// Services
	authService      *service.AuthService
	inviteService    *service.InviteService
	subjectService   *service.SubjectService
	studyService     *service.StudyService
	wordsService     *service.WordsService
	goalService      *service.GoalService
	analyticsService *service.AnalyticsService

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	if cfg.JWTSecret == "" {
		return nil, errors.New("STUDYTRACK_JWT_SECRET must be set")
	}

	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "studytrack",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	// Set pepper path for password hashing
	cryptox.SetPepperPath(cfg.PepperFile)

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", cfg.Timezone, err)
	}
	app.location = loc

	app.tokens = jwtx.NewIssuer(cfg.JWTSecret, cfg.Issuer, cfg.AccessTTL, cfg.RefreshTTL)

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.logger.Info("studytrack starting", "port", app.cfg.Port, "version", BuildVersion)

	// Start server in a goroutine
	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	// Setup signal handling for graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a shutdown signal or server error
	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down studytrack...")

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("studytrack stopped")
	return nil
}

// initDatabase initializes the database and applies migrations
func (app *Application) initDatabase() error {
	host := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", app.cfg.DatabaseFile)
	db, err := sqlite.NewStore(host)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully")
	return nil
}

// initServices initializes all business logic services
func (app *Application) initServices() {
	app.authService = &service.AuthService{
		Store:  app.db,
		Tokens: app.tokens,
	}
	app.inviteService = &service.InviteService{Store: app.db}
	app.subjectService = &service.SubjectService{Store: app.db}
	app.studyService = &service.StudyService{
		Store:    app.db,
		Location: app.location,
	}
	app.wordsService = &service.WordsService{Store: app.db}
	app.goalService = &service.GoalService{Store: app.db}
	app.analyticsService = &service.AnalyticsService{
		Store:    app.db,
		Location: app.location,
	}
}

// initHTTP wires the router and HTTP server
func (app *Application) initHTTP() {
	app.router = httpapi.NewRouter(app.tokens, BuildVersion, app.db, app.logger)
	app.router.AuthService = app.authService
	app.router.InviteService = app.inviteService
	app.router.SubjectService = app.subjectService
	app.router.StudyService = app.studyService
	app.router.WordsService = app.wordsService
	app.router.GoalService = app.goalService
	app.router.AnalyticsService = app.analyticsService
	app.router.ApplyRoutes()

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           app.router,
		ReadHeaderTimeout: 5 * time.Second,
	}
}
