package quiz

import (
	"fmt"
	"strconv"
	"strings"
)

// ValidationError reports user input that blocks an action. It never
// changes session state.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func unansweredError(missing []int) *ValidationError {
	nums := make([]string, len(missing))
	for i, n := range missing {
		nums[i] = strconv.Itoa(n)
	}
	return &ValidationError{
		Field:   "answers",
		Message: "all questions must be answered before grading (unanswered: " + strings.Join(nums, ", ") + ")",
	}
}
