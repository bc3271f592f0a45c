package grading

import "github.com/mobildev/online-exam/internal/exam"

const (
	Incorrect = 0
	Correct   = 1
)

// Strategy grades one answer against one authoritative key.
type Strategy interface {
	Grade(a exam.Answer, key exam.AnswerKey) int
}

// Grader routes by the key's question type, never the submission's.
type Grader struct {
	strategies map[exam.QuestionType]Strategy
}

// NewDefaultGrader installs the built-in strategies.
func NewDefaultGrader() *Grader {
	return &Grader{
		strategies: map[exam.QuestionType]Strategy{
			exam.OpenText:     openTextStrategy{},
			exam.SingleChoice: singleChoiceStrategy{},
		},
	}
}

// Grade returns Correct or Incorrect. Missing data on either side is
// Incorrect, not an error.
func (g *Grader) Grade(a exam.Answer, key exam.AnswerKey) int {
	s, ok := g.strategies[key.Type]
	if !ok {
		return Incorrect
	}
	return s.Grade(a, key)
}

// --- Strategies ---

type singleChoiceStrategy struct{}

func (singleChoiceStrategy) Grade(a exam.Answer, key exam.AnswerKey) int {
	selected := a.SelectedOption()
	if selected == 0 || key.CorrectOptionID <= 0 {
		return Incorrect
	}
	if selected == key.CorrectOptionID {
		return Correct
	}
	return Incorrect
}
