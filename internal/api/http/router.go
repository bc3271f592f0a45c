package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	authmw "github.com/mobildev/online-exam/internal/auth/middleware"
	"github.com/mobildev/online-exam/internal/rbac"
)

type Pinger interface {
	PingContext(ctx context.Context) error
}

type RouterConfig struct {
	Auth              *authmw.AuthService
	Credentials       authmw.CredentialStore
	Exams             ExamReader
	Submissions       Submitter
	DB                Pinger
	CORSOrigins       []string
	RoleClaimFallback bool
	AccessLog         bool
	Log               *slog.Logger
}

// NewRouter mounts the public and protected routes.
func NewRouter(c RouterConfig) chi.Router {
	log := c.Log
	if log == nil {
		log = slog.Default()
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP)
	if c.AccessLog {
		r.Use(middleware.Logger)
	}
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   c.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Post("/auth/login", authmw.LoginHandler(c.Auth, c.Credentials, log))

	// Protected API (JWT → role from store → RBAC)
	r.Group(func(pr chi.Router) {
		pr.Use(authmw.JWTMiddleware(c.Auth))
		pr.Use(authmw.AttachRoleFromStore(c.Credentials, c.RoleClaimFallback, log))

		pr.With(rbac.Require(rbac.PermExamList)).
			Get("/exams", ListExamsHandler(c.Exams, log))
		pr.With(rbac.Require(rbac.PermExamView)).
			Get("/exams/{examID}", GetExamHandler(c.Exams, log))

		pr.With(rbac.Require(rbac.PermExamSubmit)).
			Post("/exams/{examID}/submit", SubmitExamHandler(c.Submissions, log))
		pr.With(rbac.Require(rbac.PermExamSubmit)).
			Post("/submit", SubmitHandler(c.Submissions, log))
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Get("/readyz", ReadyHandler(c.DB))
	return r
}

// ReadyHandler answers 503 until the database responds.
func ReadyHandler(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if db == nil {
			w.WriteHeader(http.StatusOK)
			return
		}
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			writeErr(w, http.StatusServiceUnavailable, "database unavailable")
			return
		}
		w.WriteHeader(http.StatusOK)
	}
}
