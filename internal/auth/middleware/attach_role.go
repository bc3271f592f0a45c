package auth

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/mobildev/online-exam/internal/exam"
	"github.com/mobildev/online-exam/internal/rbac"
)

// AttachRoleFromStore replaces the token's role with the user's current role.
// Runs after JWTMiddleware.
//
// allowClaimFallback=true keeps the claim role when the user row is gone, so
// the handler can report the unknown user itself; false denies.
func AttachRoleFromStore(store CredentialStore, allowClaimFallback bool, log *slog.Logger) func(http.Handler) http.Handler {
	if log == nil {
		log = slog.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			sub := SubjectFromContext(ctx)
			if sub == "" {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			c, err := store.LookupCredentials(ctx, sub)
			switch {
			case err == nil && c.Role != "":
				next.ServeHTTP(w, r.WithContext(rbac.WithRole(ctx, c.Role)))
			case errors.Is(err, exam.ErrUnknownUser):
				if allowClaimFallback && rbac.RoleFromContext(ctx) != "" {
					next.ServeHTTP(w, r)
					return
				}
				http.Error(w, "forbidden", http.StatusForbidden)
			case err != nil:
				log.ErrorContext(ctx, "role lookup failed", "sub", sub, "err", err)
				http.Error(w, "internal error", http.StatusInternalServerError)
			default:
				// user exists with an empty role
				http.Error(w, "forbidden", http.StatusForbidden)
			}
		})
	}
}
