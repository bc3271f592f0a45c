package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/mobildev/online-exam/internal/exam"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type errResp struct {
	Error string `json:"error"`
}

func writeErr(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errResp{Error: msg})
}

// statusFor maps the exam error kinds to HTTP statuses.
func statusFor(err error) int {
	switch {
	case errors.Is(err, exam.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, exam.ErrValidation), errors.Is(err, exam.ErrUnknownUser):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// writeDomainErr reports client errors verbatim; server-side failures are
// logged and answered with a generic message.
func writeDomainErr(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		log.ErrorContext(r.Context(), "request failed", "method", r.Method, "path", r.URL.Path, "err", err)
		writeErr(w, status, "internal error")
		return
	}
	writeErr(w, status, err.Error())
}
