package grading

import (
	"strings"

	"github.com/mobildev/online-exam/internal/exam"
)

type openTextStrategy struct{}

func (openTextStrategy) Grade(a exam.Answer, key exam.AnswerKey) int {
	if a.AnswerText == nil || key.Text == nil {
		return Incorrect
	}
	if sameText(*a.AnswerText, *key.Text) {
		return Correct
	}
	return Incorrect
}

// sameText compares under Unicode simple case folding, independent of locale.
// No trimming or punctuation stripping.
func sameText(a, b string) bool {
	return strings.EqualFold(a, b)
}
