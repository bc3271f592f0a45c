package http

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/mobildev/online-exam/internal/exam"
)

// ExamReader is satisfied by *exam.Service.
type ExamReader interface {
	AssembleExam(ctx context.Context, examID int64) (exam.Exam, error)
	AssembleAllExams(ctx context.Context) ([]exam.ExamSummary, error)
}

// GET /exams
func ListExamsHandler(exams ExamReader, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := exams.AssembleAllExams(r.Context())
		if err != nil {
			writeDomainErr(w, r, log, err)
			return
		}
		writeJSON(w, http.StatusOK, list)
	}
}

// GET /exams/{examID}
func GetExamHandler(exams ExamReader, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := examIDParam(w, r)
		if !ok {
			return
		}
		e, err := exams.AssembleExam(r.Context(), id)
		if err != nil {
			writeDomainErr(w, r, log, err)
			return
		}
		writeJSON(w, http.StatusOK, e)
	}
}

func examIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "examID")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		writeErr(w, http.StatusBadRequest, "invalid exam id: "+strconv.Quote(raw))
		return 0, false
	}
	return id, true
}
