package exam

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func detail(examID, qID int64, qType string, oID int64) DetailRow {
	r := DetailRow{
		ExamID:          examID,
		Title:           "Geography",
		Description:     "capitals",
		DurationMinutes: 30,
		QuestionID:      qID,
		OptionID:        oID,
	}
	if qID > 0 {
		r.QuestionText = "q"
		r.QuestionType = qType
	}
	if oID > 0 {
		r.OptionText = "o"
	}
	return r
}

func TestAssemble_GroupsQuestionsAndOptions(t *testing.T) {
	rows := []DetailRow{
		detail(1, 10, "MULTIPLE_CHOICE", 100),
		detail(1, 10, "MULTIPLE_CHOICE", 101),
		detail(1, 10, "MULTIPLE_CHOICE", 102),
		detail(1, 11, "CLASSIC", 0),
		detail(1, 12, "MULTIPLE_CHOICE", 103),
		detail(1, 12, "MULTIPLE_CHOICE", 104),
	}

	ex, ok, err := Assemble(rows)
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, int64(1), ex.ID)
	assert.Equal(t, "Geography", ex.Title)
	assert.Equal(t, 30, ex.DurationMinutes)
	require.Len(t, ex.Questions, 3)

	q0, q1, q2 := ex.Questions[0], ex.Questions[1], ex.Questions[2]
	assert.Equal(t, int64(10), q0.ID)
	assert.Equal(t, SingleChoice, q0.Type)
	assert.Equal(t, []int64{100, 101, 102}, optionIDs(q0))

	assert.Equal(t, int64(11), q1.ID)
	assert.Equal(t, OpenText, q1.Type)
	assert.NotNil(t, q1.Options)
	assert.Empty(t, q1.Options)

	assert.Equal(t, []int64{103, 104}, optionIDs(q2))
	for _, q := range ex.Questions {
		assert.Equal(t, int64(1), q.ExamID)
		for _, o := range q.Options {
			assert.Equal(t, q.ID, o.QuestionID)
		}
	}
}

func TestAssemble_ExamWithoutQuestions(t *testing.T) {
	ex, ok, err := Assemble([]DetailRow{detail(7, 0, "", 0)})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, int64(7), ex.ID)
	assert.NotNil(t, ex.Questions)
	assert.Empty(t, ex.Questions)
}

func TestAssemble_NoRowsIsNotFound(t *testing.T) {
	_, ok, err := Assemble(nil)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAssemble_UnknownTypeIsMalformed(t *testing.T) {
	_, _, err := Assemble([]DetailRow{detail(1, 10, "ESSAY", 0)})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformedData))
}

func TestAssemble_Deterministic(t *testing.T) {
	rows := []DetailRow{
		detail(1, 10, "MULTIPLE_CHOICE", 100),
		detail(1, 10, "MULTIPLE_CHOICE", 101),
		detail(1, 11, "CLASSIC", 0),
	}
	a, _, err := Assemble(rows)
	require.NoError(t, err)
	b, _, err := Assemble(rows)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestAssembleMany_KeepsExamOrder(t *testing.T) {
	rows := []DetailRow{
		detail(2, 20, "CLASSIC", 0),
		detail(3, 0, "", 0),
		detail(5, 50, "MULTIPLE_CHOICE", 500),
		detail(5, 50, "MULTIPLE_CHOICE", 501),
	}
	exams, err := AssembleMany(rows)
	require.NoError(t, err)
	require.Len(t, exams, 3)
	assert.Equal(t, int64(2), exams[0].ID)
	assert.Equal(t, int64(3), exams[1].ID)
	assert.Equal(t, int64(5), exams[2].ID)
	assert.Len(t, exams[0].Questions, 1)
	assert.Empty(t, exams[1].Questions)
	assert.Equal(t, []int64{500, 501}, optionIDs(exams[2].Questions[0]))
}

func TestAssemble_QuestionCountMatchesDistinctIDs(t *testing.T) {
	var rows []DetailRow
	for q := int64(1); q <= 25; q++ {
		for o := int64(1); o <= 4; o++ {
			rows = append(rows, detail(9, q, "MULTIPLE_CHOICE", q*10+o))
		}
	}
	ex, ok, err := Assemble(rows)
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, ex.Questions, 25)
	for _, q := range ex.Questions {
		assert.Len(t, q.Options, 4)
	}
}

func optionIDs(q Question) []int64 {
	out := make([]int64, 0, len(q.Options))
	for _, o := range q.Options {
		out = append(out, o.ID)
	}
	return out
}

func TestParseQuestionType(t *testing.T) {
	cases := map[string]QuestionType{
		"CLASSIC":         OpenText,
		"OPEN_TEXT":       OpenText,
		"MULTIPLE_CHOICE": SingleChoice,
		"SINGLE_CHOICE":   SingleChoice,
		" CLASSIC ":       OpenText,
	}
	for in, want := range cases {
		got, err := ParseQuestionType(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	for _, bad := range []string{"", "classic", "TRUE_FALSE"} {
		_, err := ParseQuestionType(bad)
		assert.ErrorIs(t, err, ErrMalformedData, bad)
	}

	assert.Equal(t, "CLASSIC", OpenText.Token())
	assert.Equal(t, "MULTIPLE_CHOICE", SingleChoice.Token())
}

func TestAssemble_ZeroOptionIDIsAbsent(t *testing.T) {
	ex, _, err := Assemble([]DetailRow{detail(1, 10, "MULTIPLE_CHOICE", 0)})
	require.NoError(t, err)
	require.Len(t, ex.Questions, 1)
	assert.Empty(t, ex.Questions[0].Options, "no phantom option")
}
