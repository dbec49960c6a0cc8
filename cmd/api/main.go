package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	_ "github.com/hirepipe/ats/docs"
	"github.com/hirepipe/ats/internal/api"
	"github.com/hirepipe/ats/internal/api/handler"
	"github.com/hirepipe/ats/internal/api/middleware"
	"github.com/hirepipe/ats/internal/core/ports"
	"github.com/hirepipe/ats/internal/core/service"
	mongostore "github.com/hirepipe/ats/internal/infrastructure/db/mongo"
	redisstore "github.com/hirepipe/ats/internal/infrastructure/db/redis"
	"github.com/hirepipe/ats/internal/infrastructure/db/sqldb"
	"github.com/hirepipe/ats/internal/infrastructure/export"
	"github.com/hirepipe/ats/internal/pkg/config"
	"github.com/hirepipe/ats/internal/pkg/password"
	"github.com/hirepipe/ats/pkg/logger"
)

// @title        ATS API
// @version      1.0
// @description  Applicant tracking: jobs, candidates and their hiring stages.
// @BasePath     /api

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "ats:", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: cfg.LogPretty, Service: "ats"})

	db, err := sqldb.Connect(ctx, sqldb.Config{
		Driver:          cfg.Database.Driver,
		URL:             cfg.Database.URL,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	})
	if err != nil {
		return err
	}
	defer db.Close()
	log.Info().Str("driver", db.Driver()).Msg("database ready")

	readiness := map[string]handler.Pinger{"sql": db}

	sessions, closeSessions, err := openSessionStore(ctx, cfg, db, readiness, log)
	if err != nil {
		return err
	}
	defer closeSessions()

	events, closeEvents, err := openAuditTrail(ctx, cfg, readiness, log)
	if err != nil {
		return err
	}
	defer closeEvents()

	users := sqldb.NewUserRepository(db)
	jobs := sqldb.NewJobRepository(db)
	candidates := sqldb.NewCandidateRepository(db)

	svc := api.Services{
		Auth:       service.NewAuthService(users, password.Scrypt{}, logger.Component("auth")),
		Sessions:   service.NewSessionService(sessions, cfg.Session.Secret, cfg.Session.TTL, logger.Component("sessions")),
		Jobs:       service.NewJobService(jobs, candidates, export.NewXLSX(), logger.Component("jobs")),
		Candidates: service.NewCandidateService(candidates, jobs, events, logger.Component("candidates")),
		Reset:      service.NewResetService(sqldb.NewStore(db), events, logger.Component("reset")),
	}

	router, err := api.NewRouter(svc, api.Options{
		Cookie:    middleware.SessionCookie{Secure: cfg.Production()},
		Readiness: readiness,
	}, log)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Str("env", cfg.Env).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}

// openSessionStore selects the session backend. Expired SQL sessions are
// purged once at start-up; Redis expires them through key TTLs.
func openSessionStore(ctx context.Context, cfg *config.Config, db *sqldb.DB, readiness map[string]handler.Pinger, log zerolog.Logger) (ports.SessionStore, func(), error) {
	if cfg.Session.Store == config.SessionStoreRedis {
		client, err := redisstore.Connect(ctx, redisstore.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, nil, err
		}
		readiness["redis"] = handler.PingFunc(func(ctx context.Context) error {
			return client.Ping(ctx).Err()
		})
		log.Info().Str("addr", cfg.Redis.Addr).Msg("sessions stored in redis")
		return redisstore.NewSessionStore(client), func() { _ = client.Close() }, nil
	}

	store := sqldb.NewSessionStore(db)
	purged, err := store.PurgeExpired(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("failed to purge expired sessions")
	} else if purged > 0 {
		log.Info().Int64("purged", purged).Msg("expired sessions removed")
	}
	return store, func() {}, nil
}

// openAuditTrail connects the stage-change audit trail when MONGO_URI is set.
// A nil repository disables it.
func openAuditTrail(ctx context.Context, cfg *config.Config, readiness map[string]handler.Pinger, log zerolog.Logger) (ports.StageEventRepository, func(), error) {
	if cfg.Mongo.URI == "" {
		log.Info().Msg("stage audit trail disabled")
		return nil, func() {}, nil
	}

	client, mdb, err := mongostore.Connect(ctx, mongostore.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return nil, nil, err
	}
	disconnect := func() {
		dctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = client.Disconnect(dctx)
	}

	repo := mongostore.NewStageEventRepository(mdb)
	if err := repo.EnsureIndexes(ctx); err != nil {
		disconnect()
		return nil, nil, err
	}

	readiness["mongo"] = handler.PingFunc(func(ctx context.Context) error {
		return client.Ping(ctx, nil)
	})
	log.Info().Str("database", cfg.Mongo.Database).Msg("stage audit trail enabled")
	return repo, disconnect, nil
}
