// Package seed loads YAML fixtures of users and exams into the database.
package seed

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"

	"github.com/mobildev/online-exam/internal/db"
	"github.com/mobildev/online-exam/internal/exam"
)

type Fixture struct {
	Users []User `yaml:"users"`
	Exams []Exam `yaml:"exams"`
}

type User struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Role     string `yaml:"role"`
}

type Exam struct {
	Title           string     `yaml:"title"`
	Description     string     `yaml:"description"`
	DurationMinutes int        `yaml:"duration_minutes"`
	Questions       []Question `yaml:"questions"`
}

type Question struct {
	Text          string   `yaml:"text"`
	Type          string   `yaml:"type"`
	CorrectAnswer *string  `yaml:"correct_answer"`
	Options       []Option `yaml:"options"`
}

type Option struct {
	Text    string `yaml:"text"`
	Correct bool   `yaml:"correct"`
}

// Report holds the ids assigned while loading, in fixture order.
type Report struct {
	UserIDs     map[string]int64
	ExamIDs     []int64
	QuestionIDs [][]int64   // per exam
	OptionIDs   [][][]int64 // per exam, per question
}

func Parse(r io.Reader) (Fixture, error) {
	var f Fixture
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return Fixture{}, fmt.Errorf("seed: decode: %w", err)
	}
	if err := f.validate(); err != nil {
		return Fixture{}, err
	}
	return f, nil
}

func ParseFile(path string) (Fixture, error) {
	fh, err := os.Open(path)
	if err != nil {
		return Fixture{}, fmt.Errorf("seed: %w", err)
	}
	defer fh.Close()
	return Parse(fh)
}

func (f Fixture) validate() error {
	seen := make(map[string]bool, len(f.Users))
	for i, u := range f.Users {
		if strings.TrimSpace(u.Username) == "" {
			return fmt.Errorf("seed: users[%d]: username required", i)
		}
		if seen[u.Username] {
			return fmt.Errorf("seed: users[%d]: duplicate username %q", i, u.Username)
		}
		seen[u.Username] = true
	}
	for i, e := range f.Exams {
		if strings.TrimSpace(e.Title) == "" {
			return fmt.Errorf("seed: exams[%d]: title required", i)
		}
		for j, q := range e.Questions {
			if _, err := exam.ParseQuestionType(q.Type); err != nil {
				return fmt.Errorf("seed: exams[%d].questions[%d]: %w", i, j, err)
			}
		}
	}
	return nil
}

type Loader struct {
	db         *sql.DB
	bcryptCost int
	now        func() time.Time
}

type LoaderOption func(*Loader)

// WithBcryptCost lowers the hashing cost, mainly for tests.
func WithBcryptCost(cost int) LoaderOption { return func(l *Loader) { l.bcryptCost = cost } }

func NewLoader(h *sql.DB, opts ...LoaderOption) *Loader {
	l := &Loader{db: h, bcryptCost: bcrypt.DefaultCost, now: time.Now}
	for _, o := range opts {
		o(l)
	}
	return l
}

// Load inserts the whole fixture in a single transaction.
func (l *Loader) Load(ctx context.Context, f Fixture) (Report, error) {
	rep := Report{UserIDs: make(map[string]int64, len(f.Users))}
	now := l.now().Unix()

	// hash outside the transaction; bcrypt is slow and sqlite has one writer
	hashes := make([]string, len(f.Users))
	for i, u := range f.Users {
		if u.Password == "" {
			continue
		}
		h, err := bcrypt.GenerateFromPassword([]byte(u.Password), l.bcryptCost)
		if err != nil {
			return Report{}, fmt.Errorf("seed: hash password for %q: %w", u.Username, err)
		}
		hashes[i] = string(h)
	}

	err := db.WithTx(ctx, l.db, nil, func(tx *sql.Tx) error {
		for i, u := range f.Users {
			role := u.Role
			if role == "" {
				role = "student"
			}
			var id int64
			if err := tx.QueryRowContext(ctx,
				`INSERT INTO users (username, password_hash, role, created_at) VALUES ($1,$2,$3,$4) RETURNING id`,
				u.Username, hashes[i], role, now).Scan(&id); err != nil {
				return fmt.Errorf("insert user %q: %w", u.Username, err)
			}
			rep.UserIDs[u.Username] = id
		}

		for _, e := range f.Exams {
			var examID int64
			if err := tx.QueryRowContext(ctx,
				`INSERT INTO exams (title, description, duration_minutes, created_at) VALUES ($1,$2,$3,$4) RETURNING id`,
				e.Title, e.Description, e.DurationMinutes, now).Scan(&examID); err != nil {
				return fmt.Errorf("insert exam %q: %w", e.Title, err)
			}
			qIDs := make([]int64, 0, len(e.Questions))
			oIDs := make([][]int64, 0, len(e.Questions))
			for _, q := range e.Questions {
				qt, _ := exam.ParseQuestionType(q.Type) // checked by validate
				var qID int64
				if err := tx.QueryRowContext(ctx,
					`INSERT INTO questions (exam_id, question_text, question_type, correct_answer) VALUES ($1,$2,$3,$4) RETURNING id`,
					examID, q.Text, qt.Token(), q.CorrectAnswer).Scan(&qID); err != nil {
					return fmt.Errorf("insert question %q: %w", q.Text, err)
				}
				ids := make([]int64, 0, len(q.Options))
				for _, o := range q.Options {
					var oID int64
					if err := tx.QueryRowContext(ctx,
						`INSERT INTO options (question_id, option_text, is_correct) VALUES ($1,$2,$3) RETURNING id`,
						qID, o.Text, o.Correct).Scan(&oID); err != nil {
						return fmt.Errorf("insert option %q: %w", o.Text, err)
					}
					ids = append(ids, oID)
				}
				qIDs = append(qIDs, qID)
				oIDs = append(oIDs, ids)
			}
			rep.ExamIDs = append(rep.ExamIDs, examID)
			rep.QuestionIDs = append(rep.QuestionIDs, qIDs)
			rep.OptionIDs = append(rep.OptionIDs, oIDs)
		}
		return nil
	})
	if err != nil {
		return Report{}, fmt.Errorf("seed: %w", err)
	}
	return rep, nil
}
