package exam

// AnswerKeyRow is one row of the question/option join holding the
// authoritative answers. OptionID is 0 when the question has no option row.
type AnswerKeyRow struct {
	QuestionID    int64
	QuestionType  string
	CorrectAnswer *string
	OptionID      int64
	IsCorrect     bool
}

// AnswerKey is the authoritative answer for one question. Never sent to
// clients.
type AnswerKey struct {
	QuestionID      int64
	Type            QuestionType
	Text            *string // OPEN_TEXT
	CorrectOptionID int64   // SINGLE_CHOICE, 0 when no option is flagged
}

// AnswerKeys folds authoritative rows (in any order) into a lookup by
// question id. If several options of one question are flagged correct, the
// last one read wins.
func AnswerKeys(rows []AnswerKeyRow) (map[int64]AnswerKey, error) {
	keys := make(map[int64]AnswerKey, len(rows))
	for _, r := range rows {
		qt, err := ParseQuestionType(r.QuestionType)
		if err != nil {
			return nil, err
		}
		k, ok := keys[r.QuestionID]
		if !ok {
			k = AnswerKey{QuestionID: r.QuestionID, Type: qt}
		}
		switch qt {
		case OpenText:
			k.Text = r.CorrectAnswer
		case SingleChoice:
			if r.IsCorrect && r.OptionID > 0 {
				k.CorrectOptionID = r.OptionID
			}
		}
		keys[r.QuestionID] = k
	}
	return keys, nil
}
