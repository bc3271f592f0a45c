package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	authmw "github.com/mobildev/online-exam/internal/auth/middleware"
	"github.com/mobildev/online-exam/internal/exam"
)

const maxSubmissionBytes = 1 << 20

// Submitter is satisfied by *submission.Service.
type Submitter interface {
	Submit(ctx context.Context, username string, examID int64, sub exam.Submission) (exam.Result, error)
}

type submitResponse struct {
	Message string      `json:"message"`
	Score   json.Number `json:"score"`
}

// POST /exams/{examID}/submit
//
// A body without exam_id is taken to target the exam in the path.
func SubmitExamHandler(svc Submitter, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := examIDParam(w, r)
		if !ok {
			return
		}
		sub, ok := decodeSubmission(w, r)
		if !ok {
			return
		}
		if sub.ExamID == 0 {
			sub.ExamID = id
		}
		submit(w, r, svc, log, id, sub)
	}
}

// POST /submit
//
// The target exam is the body's exam_id.
func SubmitHandler(svc Submitter, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sub, ok := decodeSubmission(w, r)
		if !ok {
			return
		}
		submit(w, r, svc, log, sub.ExamID, sub)
	}
}

func decodeSubmission(w http.ResponseWriter, r *http.Request) (exam.Submission, bool) {
	var sub exam.Submission
	r.Body = http.MaxBytesReader(w, r.Body, maxSubmissionBytes)
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		writeErr(w, http.StatusBadRequest, "bad json")
		return exam.Submission{}, false
	}
	return sub, true
}

func submit(w http.ResponseWriter, r *http.Request, svc Submitter, log *slog.Logger, examID int64, sub exam.Submission) {
	username := authmw.SubjectFromContext(r.Context())
	if username == "" {
		writeErr(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	res, err := svc.Submit(r.Context(), username, examID, sub)
	if err != nil {
		writeDomainErr(w, r, log, err)
		return
	}
	writeJSON(w, http.StatusOK, submitResponse{
		Message: res.Message,
		Score:   json.Number(res.Score.StringFixed(2)),
	})
}
