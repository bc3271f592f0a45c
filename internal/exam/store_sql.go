package exam

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/mobildev/online-exam/internal/db"
)

const (
	sqlExamDetail = `SELECT e.id, e.title, e.description, e.duration_minutes,
		q.id, q.question_text, q.question_type,
		o.id, o.option_text
		FROM exams e
		LEFT JOIN questions q ON e.id = q.exam_id
		LEFT JOIN options o ON q.id = o.question_id
		WHERE e.id = $1
		ORDER BY e.id, q.id, o.id`

	sqlExamSummaries = `SELECT id, title, description, duration_minutes FROM exams ORDER BY id`

	sqlAnswerKeys = `SELECT q.id, q.question_type, q.correct_answer, o.id, o.is_correct
		FROM questions q
		LEFT JOIN options o ON q.id = o.question_id
		WHERE q.exam_id = $1`

	sqlUserID      = `SELECT id FROM users WHERE username = $1`
	sqlCredentials = `SELECT id, username, password_hash, role FROM users WHERE username = $1`

	sqlInsertAnswer = `INSERT INTO user_answers (user_id, exam_id, question_id, selected_option_id, answer_text, created_at)
		VALUES ($1,$2,$3,$4,$5,$6)`
	sqlInsertResult = `INSERT INTO results (user_id, exam_id, score, submitted_at) VALUES ($1,$2,$3,$4)`
)

// SQLStore reads and writes exam data on a caller-owned *sql.DB.
type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(h *sql.DB) *SQLStore {
	return &SQLStore{db: h}
}

func (s *SQLStore) ExamDetailRows(ctx context.Context, examID int64) ([]DetailRow, error) {
	rows, err := s.db.QueryContext(ctx, sqlExamDetail, examID)
	if err != nil {
		return nil, StorageError("query exam detail", err)
	}
	defer rows.Close()

	var out []DetailRow
	for rows.Next() {
		var (
			r                  DetailRow
			desc               sql.NullString
			qID, oID           sql.NullInt64
			qText, qType, oTxt sql.NullString
		)
		if err := rows.Scan(&r.ExamID, &r.Title, &desc, &r.DurationMinutes,
			&qID, &qText, &qType, &oID, &oTxt); err != nil {
			return nil, StorageError("scan exam detail", err)
		}
		r.Description = desc.String
		r.QuestionID, r.QuestionText, r.QuestionType = qID.Int64, qText.String, qType.String
		r.OptionID, r.OptionText = oID.Int64, oTxt.String
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, StorageError("iterate exam detail", err)
	}
	return out, nil
}

func (s *SQLStore) ExamSummaryRows(ctx context.Context) ([]DetailRow, error) {
	rows, err := s.db.QueryContext(ctx, sqlExamSummaries)
	if err != nil {
		return nil, StorageError("query exams", err)
	}
	defer rows.Close()

	var out []DetailRow
	for rows.Next() {
		var r DetailRow
		var desc sql.NullString
		if err := rows.Scan(&r.ExamID, &r.Title, &desc, &r.DurationMinutes); err != nil {
			return nil, StorageError("scan exams", err)
		}
		r.Description = desc.String
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, StorageError("iterate exams", err)
	}
	return out, nil
}

func (s *SQLStore) AnswerKeyRows(ctx context.Context, examID int64) ([]AnswerKeyRow, error) {
	rows, err := s.db.QueryContext(ctx, sqlAnswerKeys, examID)
	if err != nil {
		return nil, StorageError("query answer keys", err)
	}
	defer rows.Close()

	var out []AnswerKeyRow
	for rows.Next() {
		var (
			r       AnswerKeyRow
			correct sql.NullString
			oID     sql.NullInt64
			isRight sql.NullBool
		)
		if err := rows.Scan(&r.QuestionID, &r.QuestionType, &correct, &oID, &isRight); err != nil {
			return nil, StorageError("scan answer keys", err)
		}
		if correct.Valid {
			txt := correct.String
			r.CorrectAnswer = &txt
		}
		r.OptionID = oID.Int64
		r.IsCorrect = isRight.Valid && isRight.Bool
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, StorageError("iterate answer keys", err)
	}
	return out, nil
}

func (s *SQLStore) ResolveUserID(ctx context.Context, username string) (int64, error) {
	var id int64
	err := s.db.QueryRowContext(ctx, sqlUserID, username).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrUnknownUser
	}
	if err != nil {
		return 0, StorageError("resolve user", err)
	}
	return id, nil
}

// LookupCredentials backs the login endpoint.
func (s *SQLStore) LookupCredentials(ctx context.Context, username string) (Credentials, error) {
	var c Credentials
	err := s.db.QueryRowContext(ctx, sqlCredentials, username).
		Scan(&c.UserID, &c.Username, &c.PasswordHash, &c.Role)
	if errors.Is(err, sql.ErrNoRows) {
		return Credentials{}, ErrUnknownUser
	}
	if err != nil {
		return Credentials{}, StorageError("lookup credentials", err)
	}
	return c, nil
}

// SaveAnswers writes the whole batch in one transaction.
func (s *SQLStore) SaveAnswers(ctx context.Context, answers []AnswerRecord) error {
	if len(answers) == 0 {
		return nil
	}
	now := time.Now().Unix()
	err := db.WithTx(ctx, s.db, nil, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, sqlInsertAnswer)
		if err != nil {
			return err
		}
		defer stmt.Close()
		for _, a := range answers {
			if _, err := stmt.ExecContext(ctx, a.UserID, a.ExamID, a.QuestionID,
				nullableID(a.SelectedOptionID), nullableText(a.AnswerText), now); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return StorageError("save answers", err)
	}
	return nil
}

func (s *SQLStore) SaveResult(ctx context.Context, r Result) error {
	at := r.CreatedAt
	if at.IsZero() {
		at = time.Now()
	}
	if _, err := s.db.ExecContext(ctx, sqlInsertResult, r.UserID, r.ExamID, r.Score.StringFixed(2), at.Unix()); err != nil {
		return StorageError("save result", err)
	}
	return nil
}

func nullableID(id *int64) sql.NullInt64 {
	if id == nil || *id <= 0 {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *id, Valid: true}
}

func nullableText(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
