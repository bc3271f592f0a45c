package exam

// DetailRow is one row of the exam/question/option LEFT JOIN. A zero
// QuestionID or OptionID means that part of the join was NULL.
type DetailRow struct {
	ExamID          int64
	Title           string
	Description     string
	DurationMinutes int

	QuestionID   int64
	QuestionText string
	QuestionType string

	OptionID   int64
	OptionText string
}

func (r DetailRow) hasQuestion() bool { return r.QuestionID > 0 }
func (r DetailRow) hasOption() bool   { return r.OptionID > 0 }

type questionSlot struct {
	exam, question int
}

// AssembleMany folds rows ordered by (exam id, question id, option id) into
// exams, in order of first appearance. Rows are never re-sorted and options
// are not de-duplicated; both rely on the ordering and uniqueness of the join.
func AssembleMany(rows []DetailRow) ([]Exam, error) {
	exams := make([]Exam, 0, 1)
	examIdx := make(map[int64]int)
	questionIdx := make(map[int64]questionSlot)

	for _, r := range rows {
		ei, ok := examIdx[r.ExamID]
		if !ok {
			exams = append(exams, Exam{
				ID:              r.ExamID,
				Title:           r.Title,
				Description:     r.Description,
				DurationMinutes: r.DurationMinutes,
				Questions:       []Question{},
			})
			ei = len(exams) - 1
			examIdx[r.ExamID] = ei
		}
		if !r.hasQuestion() {
			continue
		}

		slot, ok := questionIdx[r.QuestionID]
		if !ok {
			qt, err := ParseQuestionType(r.QuestionType)
			if err != nil {
				return nil, err
			}
			exams[ei].Questions = append(exams[ei].Questions, Question{
				ID:      r.QuestionID,
				ExamID:  r.ExamID,
				Text:    r.QuestionText,
				Type:    qt,
				Options: []Option{},
			})
			slot = questionSlot{exam: ei, question: len(exams[ei].Questions) - 1}
			questionIdx[r.QuestionID] = slot
		}

		if r.hasOption() {
			q := &exams[slot.exam].Questions[slot.question]
			q.Options = append(q.Options, Option{
				ID:         r.OptionID,
				QuestionID: r.QuestionID,
				Text:       r.OptionText,
			})
		}
	}
	return exams, nil
}

// Assemble builds a single exam. ok is false when rows is empty.
func Assemble(rows []DetailRow) (ex Exam, ok bool, err error) {
	if len(rows) == 0 {
		return Exam{}, false, nil
	}
	exams, err := AssembleMany(rows)
	if err != nil {
		return Exam{}, false, err
	}
	return exams[0], true, nil
}
