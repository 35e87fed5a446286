package setup

import "github.com/abhisek/csatquiz/internal/quiz"

// quizReadyMsg carries the outcome of one generation. ID ties it to the
// generation that produced it; results of stopped generations are dropped.
type quizReadyMsg struct {
	ID   int
	Quiz *quiz.Quiz
	Err  error

	// Warnings are the non-fatal notices raised during the generation.
	Warnings []string
}
