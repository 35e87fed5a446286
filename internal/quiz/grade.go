package quiz

// QuestionResult is the grading outcome for one question.
type QuestionResult struct {
	// Number is the 1-based question number.
	Number int

	// Selected is the option text the user picked, empty if unanswered.
	Selected string

	// Chosen is the leading index of Selected, empty if unanswered.
	Chosen string

	// Correct is the leading index of the answer.
	Correct string

	IsCorrect bool
}

// Answered reports whether the user picked an option.
func (r QuestionResult) Answered() bool { return r.Selected != "" }

// Result is the outcome of grading a whole quiz.
type Result struct {
	Questions    []QuestionResult
	CorrectCount int
	Total        int

	// Score is floor(100 * CorrectCount / Total), 0 for an empty quiz.
	Score int
}

// Grade compares each selection with the question's answer. answers maps the
// 0-based question index to the selected option text. Indices are compared
// as exact strings, so "03" does not match "3". An unanswered question is
// never correct.
func Grade(q *Quiz, answers map[int]string) Result {
	if q == nil {
		return Result{}
	}

	res := Result{
		Questions: make([]QuestionResult, 0, len(q.Questions)),
		Total:     len(q.Questions),
	}
	for i, question := range q.Questions {
		qr := QuestionResult{
			Number:  i + 1,
			Correct: question.CorrectIndex(),
		}
		if sel, ok := answers[i]; ok && sel != "" {
			qr.Selected = sel
			qr.Chosen = LeadingIndex(sel)
			qr.IsCorrect = qr.Chosen == qr.Correct
		}
		if qr.IsCorrect {
			res.CorrectCount++
		}
		res.Questions = append(res.Questions, qr)
	}

	if res.Total > 0 {
		res.Score = res.CorrectCount * 100 / res.Total
	}
	return res
}
