package quiz

import (
	"errors"
	"fmt"
	"sync"
)

// ErrNoQuiz is returned by operations that need a current quiz.
var ErrNoQuiz = errors.New("no quiz loaded")

// ErrGenerationStopped is returned by Dispatch when the user stopped the
// pending generation before it was sent.
var ErrGenerationStopped = errors.New("generation stopped")

// ErrGenerationInProgress is returned by StartGeneration while another
// generation is pending.
var ErrGenerationInProgress = errors.New("generation already in progress")

// Session holds one user's working state: the current quiz, their
// selections, the graded flag and the generation gate. It is safe for
// concurrent use.
type Session struct {
	ID string

	mu         sync.Mutex
	quiz       *Quiz
	topic      string
	answers    map[int]string
	graded     bool
	result     Result
	generating bool
	genToken   uint64
}

// NewSession returns an empty session.
func NewSession(id string) *Session {
	return &Session{ID: id, answers: make(map[int]string)}
}

// Quiz returns the current quiz, or nil.
func (s *Session) Quiz() *Quiz {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.quiz
}

// Topic returns the topic the current quiz was generated for.
func (s *Session) Topic() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.topic
}

// SetQuiz replaces the current quiz and clears selections and grading.
func (s *Session) SetQuiz(q *Quiz, topic string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.quiz = q
	s.topic = topic
	s.answers = make(map[int]string)
	s.graded = false
	s.result = Result{}
}

// Clear drops the current quiz.
func (s *Session) Clear() {
	s.SetQuiz(nil, "")
}

// Select records the option chosen for the 0-based question index. A new
// selection after grading clears the graded flag.
func (s *Session) Select(index int, option string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.quiz == nil {
		return ErrNoQuiz
	}
	if index < 0 || index >= len(s.quiz.Questions) {
		return &ValidationError{Field: "question", Message: fmt.Sprintf("question %d does not exist", index+1)}
	}
	if !s.quiz.Questions[index].HasOption(option) {
		return &ValidationError{Field: "option", Message: fmt.Sprintf("%q is not an option of question %d", option, index+1)}
	}
	if s.answers[index] != option {
		s.graded = false
	}
	s.answers[index] = option
	return nil
}

// Selection returns the option chosen for a question, if any.
func (s *Session) Selection(index int) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	opt, ok := s.answers[index]
	return opt, ok
}

// Answers returns a copy of all selections.
func (s *Session) Answers() map[int]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[int]string, len(s.answers))
	for k, v := range s.answers {
		out[k] = v
	}
	return out
}

// Grade scores the current quiz. Every question must have a selection;
// otherwise a *ValidationError lists the unanswered question numbers and
// the session is left unchanged.
func (s *Session) Grade() (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.quiz == nil {
		return Result{}, ErrNoQuiz
	}

	var missing []int
	for i := range s.quiz.Questions {
		if s.answers[i] == "" {
			missing = append(missing, i+1)
		}
	}
	if len(missing) > 0 {
		return Result{}, unansweredError(missing)
	}

	s.result = Grade(s.quiz, s.answers)
	s.graded = true
	return s.result, nil
}

// Graded reports whether the current selections have been graded and
// returns that result.
func (s *Session) Graded() (Result, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result, s.graded
}

// StartGeneration marks a generation as pending and returns the token that
// identifies it to Dispatch and EndGeneration.
func (s *Session) StartGeneration() (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generating {
		return 0, ErrGenerationInProgress
	}
	s.genToken++
	s.generating = true
	return s.genToken, nil
}

// StopGeneration cancels the pending generation. A generation already sent is
// not interrupted by this call; its result is still delivered.
func (s *Session) StopGeneration() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generating = false
}

// EndGeneration clears the pending flag if token is still the current
// generation. A later generation is left untouched.
func (s *Session) EndGeneration(token uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if token == s.genToken {
		s.generating = false
	}
}

// Generating reports whether a generation is pending.
func (s *Session) Generating() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generating
}

// Dispatch runs fn if the generation identified by token is still pending,
// and ends it once fn returns. A stopped or superseded token is refused with
// ErrGenerationStopped.
func (s *Session) Dispatch(token uint64, fn func() error) error {
	s.mu.Lock()
	if !s.generating || token != s.genToken {
		s.mu.Unlock()
		return ErrGenerationStopped
	}
	s.mu.Unlock()

	defer s.EndGeneration(token)
	return fn()
}
