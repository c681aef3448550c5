package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"appraise/internal/domain/appraisal"
	"appraise/internal/domain/directory"
	"appraise/internal/domain/notifications"
	"appraise/internal/domain/ratings"
	"appraise/internal/domain/tasks"
	"appraise/internal/platform/config"
	"appraise/internal/platform/db"
	"appraise/internal/platform/email"
	"appraise/internal/platform/filestore"
	appraisalshandler "appraise/internal/transport/http/handlers/appraisals"
	authhandler "appraise/internal/transport/http/handlers/auth"
	directoryhandler "appraise/internal/transport/http/handlers/directory"
	notificationshandler "appraise/internal/transport/http/handlers/notifications"
	ratingshandler "appraise/internal/transport/http/handlers/ratings"
	taskshandler "appraise/internal/transport/http/handlers/tasks"
	"appraise/internal/transport/http/middleware"
)

type App struct {
	Config config.Config
	DB     *pgxpool.Pool
	Router http.Handler
}

// New connects the database, runs migrations and seeding when enabled, and
// wires every domain behind the HTTP router.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("db connect: %w", err)
	}

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool, cfg.MigrationsDir); err != nil {
			pool.Close()
			return nil, fmt.Errorf("migrations: %w", err)
		}
	}
	if cfg.RunSeed {
		if err := db.Seed(ctx, pool, cfg); err != nil {
			pool.Close()
			return nil, fmt.Errorf("seed: %w", err)
		}
	}

	return &App{Config: cfg, DB: pool, Router: NewRouter(cfg, pool)}, nil
}

// NewRouter builds the full HTTP surface against an existing pool. Split out
// from New so tests can route against their own database.
func NewRouter(cfg config.Config, pool *pgxpool.Pool) http.Handler {
	directoryStore := directory.NewStore(pool)
	directoryService := directory.NewService(directoryStore)

	notificationStore := notifications.NewStore(pool)
	notificationService := notifications.New(notificationStore, email.New(cfg))
	notificationService.DefaultFrom = cfg.EmailFrom

	taskStore := tasks.NewStore(pool)
	taskService := tasks.NewService(taskStore, directoryStore, filestore.New(cfg.ArtifactDir))

	ratingStore := ratings.NewStore(pool)
	ratingService := ratings.NewService(ratingStore, directoryStore)

	appraisalStore := appraisal.NewStore(pool)
	appraisalService := appraisal.NewService(appraisalStore, directoryStore, notificationService)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	router.Use(middleware.Auth(cfg.JWTSecret))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := pool.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	router.Route("/api/v1", func(r chi.Router) {
		authhandler.NewHandler(directoryService, cfg.JWTSecret).RegisterRoutes(r)
		directoryhandler.NewHandler(directoryService).RegisterRoutes(r)
		taskshandler.NewHandler(taskService).RegisterRoutes(r)
		ratingshandler.NewHandler(ratingService).RegisterRoutes(r)
		appraisalshandler.NewHandler(appraisalService).RegisterRoutes(r)
		notificationshandler.NewHandler(notificationService).RegisterRoutes(r)
	})

	return router
}

// Run blocks serving HTTP until the listener fails.
func (a *App) Run() error {
	defer a.Close()
	slog.Info("appraise server listening", "addr", a.Config.Addr)
	return http.ListenAndServe(a.Config.Addr, a.Router)
}

func (a *App) Close() {
	a.DB.Close()
}
