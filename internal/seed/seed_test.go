package seed

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mobildev/online-exam/internal/db/dbtest"
)

const sample = `
users:
  - username: alice
    password: pw
  - username: tina
    password: pw
    role: teacher
exams:
  - title: Geography
    duration_minutes: 15
    questions:
      - text: Capital of France?
        type: MULTIPLE_CHOICE
        options:
          - text: Berlin
          - text: Paris
            correct: true
      - text: Largest ocean?
        type: OPEN_TEXT
        correct_answer: Pacific
`

func TestParse(t *testing.T) {
	f, err := Parse(strings.NewReader(sample))
	require.NoError(t, err)
	require.Len(t, f.Users, 2)
	require.Len(t, f.Exams, 1)
	q := f.Exams[0].Questions
	require.Len(t, q, 2)
	assert.True(t, q[0].Options[1].Correct)
	require.NotNil(t, q[1].CorrectAnswer)
	assert.Equal(t, "Pacific", *q[1].CorrectAnswer)
}

func TestParse_Rejects(t *testing.T) {
	cases := map[string]string{
		"unknown field":  "users:\n  - username: a\n    nickname: b\n",
		"bad type":       "exams:\n  - title: x\n    questions:\n      - text: q\n        type: ESSAY\n",
		"duplicate user": "users:\n  - username: a\n  - username: a\n",
		"missing title":  "exams:\n  - description: x\n",
	}
	for name, doc := range cases {
		_, err := Parse(strings.NewReader(doc))
		assert.Error(t, err, name)
	}
}

func TestParse_Empty(t *testing.T) {
	f, err := Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, f.Users)
	assert.Empty(t, f.Exams)
}

func TestParseFile_DemoFixture(t *testing.T) {
	f, err := ParseFile("../../fixtures/demo.yaml")
	require.NoError(t, err)
	assert.NotEmpty(t, f.Users)
	assert.NotEmpty(t, f.Exams)
}

func TestLoader_Load(t *testing.T) {
	ctx := context.Background()
	h := dbtest.Open(t)
	f, err := Parse(strings.NewReader(sample))
	require.NoError(t, err)

	rep, err := NewLoader(h, WithBcryptCost(bcrypt.MinCost)).Load(ctx, f)
	require.NoError(t, err)
	require.Len(t, rep.UserIDs, 2)
	require.Len(t, rep.ExamIDs, 1)
	require.Len(t, rep.QuestionIDs[0], 2)
	assert.Len(t, rep.OptionIDs[0][0], 2)
	assert.Empty(t, rep.OptionIDs[0][1])

	var role, hash string
	require.NoError(t, h.QueryRowContext(ctx, `SELECT role, password_hash FROM users WHERE username=$1`, "alice").Scan(&role, &hash))
	assert.Equal(t, "student", role, "default role")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("pw")))

	var qType string
	require.NoError(t, h.QueryRowContext(ctx, `SELECT question_type FROM questions WHERE id=$1`, rep.QuestionIDs[0][1]).Scan(&qType))
	assert.Equal(t, "CLASSIC", qType, "stored as the database token")

	var correct int
	require.NoError(t, h.QueryRowContext(ctx, `SELECT COUNT(*) FROM options WHERE is_correct`).Scan(&correct))
	assert.Equal(t, 1, correct)
}

func TestLoader_LoadIsAtomic(t *testing.T) {
	ctx := context.Background()
	h := dbtest.Open(t)
	l := NewLoader(h, WithBcryptCost(bcrypt.MinCost))

	_, err := l.Load(ctx, Fixture{Users: []User{{Username: "alice", Password: "pw"}}})
	require.NoError(t, err)

	// bob is inserted, then alice collides on the unique username
	_, err = l.Load(ctx, Fixture{
		Users: []User{{Username: "bob", Password: "pw"}, {Username: "alice", Password: "pw"}},
		Exams: []Exam{{Title: "never reached"}},
	})
	require.Error(t, err)

	var users, exams int
	require.NoError(t, h.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&users))
	require.NoError(t, h.QueryRowContext(ctx, `SELECT COUNT(*) FROM exams`).Scan(&exams))
	assert.Equal(t, 1, users)
	assert.Zero(t, exams)
}
