package exam

import (
	"time"

	"github.com/shopspring/decimal"
)

type Option struct {
	ID         int64  `json:"id"`
	QuestionID int64  `json:"question_id"`
	Text       string `json:"text"`
}

type Question struct {
	ID      int64        `json:"id"`
	ExamID  int64        `json:"exam_id"`
	Text    string       `json:"text"`
	Type    QuestionType `json:"type"`
	Options []Option     `json:"options"` // empty for OPEN_TEXT
}

type Exam struct {
	ID              int64      `json:"id"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	DurationMinutes int        `json:"duration_minutes"`
	Questions       []Question `json:"questions"`
}

type ExamSummary struct {
	ID              int64  `json:"id"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	DurationMinutes int    `json:"duration_minutes"`
}

func (e Exam) Summary() ExamSummary {
	return ExamSummary{ID: e.ID, Title: e.Title, Description: e.Description, DurationMinutes: e.DurationMinutes}
}

// Answer is one submitted answer. Which payload field counts depends on the
// question's type; the other one is ignored.
type Answer struct {
	QuestionID       int64   `json:"question_id" validate:"required,gt=0"`
	SelectedOptionID *int64  `json:"selected_option_id,omitempty"`
	AnswerText       *string `json:"answer_text,omitempty"`
}

// SelectedOption returns the selected option id, or 0 when none was chosen.
func (a Answer) SelectedOption() int64 {
	if a.SelectedOptionID == nil || *a.SelectedOptionID <= 0 {
		return 0
	}
	return *a.SelectedOptionID
}

type Submission struct {
	ExamID  int64    `json:"exam_id" validate:"required,gt=0"`
	Answers []Answer `json:"answers" validate:"dive"`
}

// AnswerRecord is the raw answer row written for every submitted answer.
type AnswerRecord struct {
	UserID           int64
	ExamID           int64
	QuestionID       int64
	SelectedOptionID *int64
	AnswerText       *string
}

type Result struct {
	Message   string          `json:"message"`
	UserID    int64           `json:"user_id"`
	ExamID    int64           `json:"exam_id"`
	Score     decimal.Decimal `json:"score"`
	Graded    int             `json:"graded"`
	Ungraded  int             `json:"ungraded"`
	CreatedAt time.Time       `json:"created_at"`
}
