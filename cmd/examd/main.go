package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	api "github.com/mobildev/online-exam/internal/api/http"
	auth "github.com/mobildev/online-exam/internal/auth/middleware"
	"github.com/mobildev/online-exam/internal/config"
	"github.com/mobildev/online-exam/internal/db"
	"github.com/mobildev/online-exam/internal/eventlog"
	"github.com/mobildev/online-exam/internal/exam"
	"github.com/mobildev/online-exam/internal/submission"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		log.Fatalf("env: %v", err)
	}
	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger := newLogger(cfg)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- DB ---
	driver, err := db.ParseDriver(cfg.DBDriver)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	openCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	dbh, err := db.Open(openCtx, driver, cfg.DBDSN)
	cancel()
	if err != nil {
		log.Fatalf("db open failed: %v", err)
	}
	defer dbh.Close()

	store := exam.NewSQLStore(dbh)
	exams := exam.NewService(store, logger)

	opts := []submission.Option{submission.WithLogger(logger)}
	if cfg.EnableEventLog {
		opts = append(opts, submission.WithEvents(eventlog.NewRepo(dbh)))
	}
	submissions := submission.New(submission.Deps{
		Users:   store,
		Keys:    store,
		Answers: store,
		Results: store,
	}, opts...)

	// --- Auth ---
	if cfg.UsesDevSecret() {
		logger.Warn("AUTH_HMAC_SECRET not set; using the development key")
	}
	authSvc := auth.NewAuthService(cfg.AuthHMACSecret, cfg.AuthTokenTTL)

	router := api.NewRouter(api.RouterConfig{
		Auth:              authSvc,
		Credentials:       store,
		Exams:             exams,
		Submissions:       submissions,
		DB:                dbh,
		CORSOrigins:       cfg.CORSOrigins,
		RoleClaimFallback: cfg.RoleClaimFallback,
		AccessLog:         true,
		Log:               logger,
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	logger.Info("listening", "addr", cfg.HTTPAddr, "db", driver, "event_log", cfg.EnableEventLog)

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http: %v", err)
		}
	case <-ctx.Done():
		logger.Info("shutting down")
		shutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutCtx); err != nil {
			logger.Error("shutdown", "err", err)
		}
	}
}

func newLogger(cfg config.Config) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}
