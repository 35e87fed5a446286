package quizgen

import (
	"fmt"
	"strings"
)

const grammarLabel = "29번: 어법 (Grammar) (1문제)"

func fiveOptions() string {
	return `["1. alpha", "2. beta", "3. gamma", "4. delta", "5. epsilon"]`
}

// quizJSON builds a well-formed quiz document with n questions whose answer
// is option 3.
func quizJSON(n int) string {
	qs := make([]string, n)
	for i := range qs {
		qs[i] = fmt.Sprintf(`{
			"type": "어법",
			"question": "Question %d?",
			"options": %s,
			"answer": "3",
			"explanation": "설명 %d"
		}`, i+1, fiveOptions(), i+1)
	}
	return `{
		"title": "Urban Bees",
		"passage": "Bees are **thriving** in *cities*.",
		"questions": [` + strings.Join(qs, ",") + `],
		"vocabulary": [{"word": "thrive", "meaning": "번성하다"}]
	}`
}
