package exam

import "context"

// RowSource supplies the flat rows the assembler and the grader work from.
type RowSource interface {
	// ExamDetailRows returns rows ordered by exam id, question id, option id.
	// No rows means the exam does not exist.
	ExamDetailRows(ctx context.Context, examID int64) ([]DetailRow, error)
	// ExamSummaryRows returns exam-only rows (no question or option part).
	ExamSummaryRows(ctx context.Context) ([]DetailRow, error)
	AnswerKeyRows(ctx context.Context, examID int64) ([]AnswerKeyRow, error)
}

type UserDirectory interface {
	// ResolveUserID returns ErrUnknownUser when nobody has that username.
	ResolveUserID(ctx context.Context, username string) (int64, error)
}

type AnswerStore interface {
	SaveAnswers(ctx context.Context, answers []AnswerRecord) error
}

type ResultStore interface {
	SaveResult(ctx context.Context, r Result) error
}

type Credentials struct {
	UserID       int64
	Username     string
	PasswordHash string
	Role         string
}
