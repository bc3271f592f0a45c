package exam

import (
	"fmt"
	"strings"
)

type QuestionType string

const (
	OpenText     QuestionType = "OPEN_TEXT"
	SingleChoice QuestionType = "SINGLE_CHOICE"
)

// Tokens written to questions.question_type.
const (
	tokenClassic        = "CLASSIC"
	tokenMultipleChoice = "MULTIPLE_CHOICE"
)

// ParseQuestionType accepts both the stored tokens and the type names.
func ParseQuestionType(s string) (QuestionType, error) {
	switch strings.TrimSpace(s) {
	case tokenClassic, string(OpenText):
		return OpenText, nil
	case tokenMultipleChoice, string(SingleChoice):
		return SingleChoice, nil
	}
	return "", fmt.Errorf("%w: unrecognized question type %q", ErrMalformedData, s)
}

// Token is the value stored in questions.question_type.
func (t QuestionType) Token() string {
	switch t {
	case OpenText:
		return tokenClassic
	case SingleChoice:
		return tokenMultipleChoice
	}
	return string(t)
}
