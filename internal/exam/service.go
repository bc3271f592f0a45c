package exam

import (
	"context"
	"log/slog"
)

// Service serves exam content. Trees are assembled fresh per call.
type Service struct {
	rows RowSource
	log  *slog.Logger
}

func NewService(rows RowSource, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{rows: rows, log: log}
}

// AssembleExam returns the exam with its questions and options, or
// ErrNotFound.
func (s *Service) AssembleExam(ctx context.Context, examID int64) (Exam, error) {
	rows, err := s.rows.ExamDetailRows(ctx, examID)
	if err != nil {
		s.log.ErrorContext(ctx, "exam detail query failed", "exam_id", examID, "err", err)
		return Exam{}, StorageError("exam detail rows", err)
	}
	ex, ok, err := Assemble(rows)
	if err != nil {
		s.log.ErrorContext(ctx, "exam data is malformed", "exam_id", examID, "err", err)
		return Exam{}, err
	}
	if !ok {
		s.log.WarnContext(ctx, "exam not found", "exam_id", examID)
		return Exam{}, ErrNotFound
	}
	s.log.InfoContext(ctx, "exam assembled", "exam_id", examID, "questions", len(ex.Questions), "rows", len(rows))
	return ex, nil
}

// AssembleAllExams lists every exam without questions.
func (s *Service) AssembleAllExams(ctx context.Context) ([]ExamSummary, error) {
	rows, err := s.rows.ExamSummaryRows(ctx)
	if err != nil {
		s.log.ErrorContext(ctx, "exam list query failed", "err", err)
		return nil, StorageError("exam summary rows", err)
	}
	exams, err := AssembleMany(rows)
	if err != nil {
		return nil, err
	}
	out := make([]ExamSummary, 0, len(exams))
	for _, e := range exams {
		out = append(out, e.Summary())
	}
	return out, nil
}
