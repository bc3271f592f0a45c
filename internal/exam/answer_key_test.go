package exam

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strp(s string) *string { return &s }

func TestAnswerKeys(t *testing.T) {
	rows := []AnswerKeyRow{
		{QuestionID: 2, QuestionType: "MULTIPLE_CHOICE", OptionID: 21},
		{QuestionID: 1, QuestionType: "CLASSIC", CorrectAnswer: strp("Paris")},
		{QuestionID: 2, QuestionType: "MULTIPLE_CHOICE", OptionID: 22, IsCorrect: true},
		{QuestionID: 2, QuestionType: "MULTIPLE_CHOICE", OptionID: 23},
		{QuestionID: 3, QuestionType: "MULTIPLE_CHOICE", OptionID: 31},
	}

	keys, err := AnswerKeys(rows)
	require.NoError(t, err)
	require.Len(t, keys, 3)

	require.NotNil(t, keys[1].Text)
	assert.Equal(t, OpenText, keys[1].Type)
	assert.Equal(t, "Paris", *keys[1].Text)

	assert.Equal(t, SingleChoice, keys[2].Type)
	assert.Equal(t, int64(22), keys[2].CorrectOptionID)

	assert.Equal(t, int64(0), keys[3].CorrectOptionID, "no flagged option")
}

func TestAnswerKeys_LastFlaggedOptionWins(t *testing.T) {
	keys, err := AnswerKeys([]AnswerKeyRow{
		{QuestionID: 4, QuestionType: "MULTIPLE_CHOICE", OptionID: 41, IsCorrect: true},
		{QuestionID: 4, QuestionType: "MULTIPLE_CHOICE", OptionID: 42, IsCorrect: true},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(42), keys[4].CorrectOptionID)
}

func TestAnswerKeys_OpenTextWithoutAnswer(t *testing.T) {
	keys, err := AnswerKeys([]AnswerKeyRow{{QuestionID: 5, QuestionType: "CLASSIC"}})
	require.NoError(t, err)
	assert.Nil(t, keys[5].Text)
}

func TestAnswerKeys_UnknownType(t *testing.T) {
	_, err := AnswerKeys([]AnswerKeyRow{{QuestionID: 1, QuestionType: "ESSAY"}})
	assert.ErrorIs(t, err, ErrMalformedData)
}

func TestAnswerKeys_ZeroOptionIDIsAbsent(t *testing.T) {
	// a zero option id reads the same as a NULL one, even when flagged
	keys, err := AnswerKeys([]AnswerKeyRow{
		{QuestionID: 6, QuestionType: "MULTIPLE_CHOICE", OptionID: 0, IsCorrect: true},
	})
	require.NoError(t, err)
	require.Contains(t, keys, int64(6))
	assert.Zero(t, keys[6].CorrectOptionID)
}
