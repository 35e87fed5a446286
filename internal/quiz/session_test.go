package quiz

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession_GradeRequiresAllAnswers(t *testing.T) {
	s := NewSession("s1")
	s.SetQuiz(fiveQuestionQuiz(), "topic")

	require.NoError(t, s.Select(0, "1. a"))
	require.NoError(t, s.Select(2, "3. c"))

	_, err := s.Grade()
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Message, "2, 4, 5")

	_, graded := s.Graded()
	assert.False(t, graded)
}

func TestSession_GradeAndReset(t *testing.T) {
	q := fiveQuestionQuiz()
	s := NewSession("s1")
	s.SetQuiz(q, "topic")
	for i, opt := range answersFor(q, 5) {
		require.NoError(t, s.Select(i, opt))
	}

	res, err := s.Grade()
	require.NoError(t, err)
	assert.Equal(t, 100, res.Score)

	got, graded := s.Graded()
	assert.True(t, graded)
	assert.Equal(t, res, got)

	// Changing an answer invalidates the grade.
	require.NoError(t, s.Select(0, "2. b"))
	_, graded = s.Graded()
	assert.False(t, graded)

	s.SetQuiz(fiveQuestionQuiz(), "other")
	assert.Empty(t, s.Answers())
	assert.Equal(t, "other", s.Topic())
}

func TestSession_SelectValidation(t *testing.T) {
	s := NewSession("s1")
	assert.ErrorIs(t, s.Select(0, "1. a"), ErrNoQuiz)

	s.SetQuiz(fiveQuestionQuiz(), "")
	var verr *ValidationError
	assert.ErrorAs(t, s.Select(9, "1. a"), &verr)
	assert.ErrorAs(t, s.Select(0, "9. z"), &verr)
}

func TestSession_GenerationGate(t *testing.T) {
	s := NewSession("s1")

	first, err := s.StartGeneration()
	require.NoError(t, err)
	_, err = s.StartGeneration()
	assert.ErrorIs(t, err, ErrGenerationInProgress)

	s.StopGeneration()
	called := false
	err = s.Dispatch(first, func() error { called = true; return nil })
	assert.ErrorIs(t, err, ErrGenerationStopped)
	assert.False(t, called)

	second, err := s.StartGeneration()
	require.NoError(t, err)
	boom := errors.New("boom")
	err = s.Dispatch(second, func() error {
		assert.True(t, s.Generating())
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.False(t, s.Generating())
}

func TestSession_StaleGenerationAfterRestart(t *testing.T) {
	s := NewSession("s1")

	first, err := s.StartGeneration()
	require.NoError(t, err)
	s.StopGeneration()
	second, err := s.StartGeneration()
	require.NoError(t, err)

	// The stopped generation reaches Dispatch after the restart.
	ran := false
	err = s.Dispatch(first, func() error { ran = true; return nil })
	assert.ErrorIs(t, err, ErrGenerationStopped)
	assert.False(t, ran)
	assert.True(t, s.Generating(), "stale dispatch must not end the live generation")

	s.EndGeneration(first)
	assert.True(t, s.Generating())

	err = s.Dispatch(second, func() error { ran = true; return nil })
	assert.NoError(t, err)
	assert.True(t, ran)
	assert.False(t, s.Generating())
}
