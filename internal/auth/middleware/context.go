package auth

import "context"

type subjectKey struct{}

// WithSubject stores the authenticated username.
func WithSubject(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, subjectKey{}, username)
}

// SubjectFromContext returns the authenticated username, or "" when the
// request did not pass JWTMiddleware.
func SubjectFromContext(ctx context.Context) string {
	s, _ := ctx.Value(subjectKey{}).(string)
	return s
}
