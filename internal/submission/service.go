package submission

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/mobildev/online-exam/internal/eventlog"
	"github.com/mobildev/online-exam/internal/exam"
	"github.com/mobildev/online-exam/internal/grading"
)

const SuccessMessage = "Exam submitted and scored successfully."

// Event types written at request boundaries.
const (
	EventStarted   = "submission.started"
	EventGraded    = "submission.graded"
	EventPersisted = "submission.persisted"
)

type AnswerKeySource interface {
	AnswerKeyRows(ctx context.Context, examID int64) ([]exam.AnswerKeyRow, error)
}

type EventRecorder interface {
	Append(ctx context.Context, e eventlog.Event) error
}

// Deps are the collaborators a Service needs; all are required.
type Deps struct {
	Users   exam.UserDirectory
	Keys    AnswerKeySource
	Answers exam.AnswerStore
	Results exam.ResultStore
}

type Option func(*Service)

func WithLogger(l *slog.Logger) Option      { return func(s *Service) { s.log = l } }
func WithEvents(r EventRecorder) Option     { return func(s *Service) { s.events = r } }
func WithClock(now func() time.Time) Option { return func(s *Service) { s.now = now } }
func WithIDs(next func() string) Option     { return func(s *Service) { s.newID = next } }

// Service grades a submission and persists its answers and result. It keeps
// no state between calls.
type Service struct {
	Deps
	grader   *grading.Grader
	validate *validator.Validate
	events   EventRecorder
	log      *slog.Logger
	now      func() time.Time
	newID    func() string
}

func New(d Deps, opts ...Option) *Service {
	s := &Service{
		Deps:     d,
		grader:   grading.NewDefaultGrader(),
		validate: validator.New(),
		log:      slog.Default(),
		now:      time.Now,
		newID:    func() string { return uuid.NewString() },
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Submit scores sub for username against the authoritative answers of
// examID. All answer rows are written before the result row.
func (s *Service) Submit(ctx context.Context, username string, examID int64, sub exam.Submission) (exam.Result, error) {
	if err := s.check(examID, sub); err != nil {
		return exam.Result{}, err
	}

	subID := s.newID()
	log := s.log.With("submission_id", subID, "exam_id", examID, "username", username)
	log.InfoContext(ctx, EventStarted, "answers", len(sub.Answers))

	userID, err := s.Users.ResolveUserID(ctx, username)
	if err != nil {
		if errors.Is(err, exam.ErrUnknownUser) {
			log.WarnContext(ctx, "submission rejected: unknown user")
			return exam.Result{}, fmt.Errorf("%w: %q", exam.ErrUnknownUser, username)
		}
		log.ErrorContext(ctx, "resolve user failed", "err", err)
		return exam.Result{}, exam.StorageError("resolve user", err)
	}
	s.record(ctx, log, subID, EventStarted, map[string]any{
		"user_id": userID, "exam_id": examID, "answers": len(sub.Answers),
	})

	keyRows, err := s.Keys.AnswerKeyRows(ctx, examID)
	if err != nil {
		log.ErrorContext(ctx, "load answer keys failed", "err", err)
		return exam.Result{}, exam.StorageError("load answer keys", err)
	}
	keys, err := exam.AnswerKeys(keyRows)
	if err != nil {
		log.ErrorContext(ctx, "answer keys are malformed", "err", err)
		return exam.Result{}, err
	}

	correct, graded, ungraded := 0, 0, 0
	records := make([]exam.AnswerRecord, 0, len(sub.Answers))
	for _, a := range sub.Answers {
		records = append(records, exam.AnswerRecord{
			UserID:           userID,
			ExamID:           examID,
			QuestionID:       a.QuestionID,
			SelectedOptionID: a.SelectedOptionID,
			AnswerText:       a.AnswerText,
		})
		key, ok := keys[a.QuestionID]
		if !ok {
			ungraded++
			log.WarnContext(ctx, "no answer key for question; recorded ungraded", "question_id", a.QuestionID)
			continue
		}
		graded++
		correct += s.grader.Grade(a, key)
	}
	score := grading.Percent(correct, len(sub.Answers))
	log.InfoContext(ctx, EventGraded, "correct", correct, "graded", graded, "ungraded", ungraded, "score", score.StringFixed(2))
	s.record(ctx, log, subID, EventGraded, map[string]any{
		"correct": correct, "graded": graded, "ungraded": ungraded, "score": score.StringFixed(2),
	})

	if err := s.Answers.SaveAnswers(ctx, records); err != nil {
		log.ErrorContext(ctx, "save answers failed", "err", err)
		return exam.Result{}, exam.StorageError("save answers", err)
	}
	res := exam.Result{
		Message:   SuccessMessage,
		UserID:    userID,
		ExamID:    examID,
		Score:     score,
		Graded:    graded,
		Ungraded:  ungraded,
		CreatedAt: s.now(),
	}
	if err := s.Results.SaveResult(ctx, res); err != nil {
		log.ErrorContext(ctx, "save result failed", "err", err)
		return exam.Result{}, exam.StorageError("save result", err)
	}

	log.InfoContext(ctx, EventPersisted, "answers", len(records), "score", score.StringFixed(2))
	s.record(ctx, log, subID, EventPersisted, map[string]any{
		"answers": len(records), "score": score.StringFixed(2),
	})
	return res, nil
}

func (s *Service) check(examID int64, sub exam.Submission) error {
	if sub.ExamID != examID {
		return fmt.Errorf("%w: submission exam_id %d does not match exam %d", exam.ErrValidation, sub.ExamID, examID)
	}
	if err := s.validate.Struct(sub); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) && len(ve) > 0 {
			return fmt.Errorf("%w: %s failed on %q", exam.ErrValidation, ve[0].Namespace(), ve[0].Tag())
		}
		return fmt.Errorf("%w: %v", exam.ErrValidation, err)
	}
	return nil
}

// record appends to the event log when one is configured. The event log is an
// audit trail; a failed append is logged and the submission carries on.
func (s *Service) record(ctx context.Context, log *slog.Logger, subID, typ string, data map[string]any) {
	if s.events == nil {
		return
	}
	if err := s.events.Append(ctx, eventlog.Event{Type: typ, Key: subID, Data: data}); err != nil {
		log.WarnContext(ctx, "event log append failed", "event", typ, "err", err)
	}
}
