// Package answer shows the passage and lets the user pick an option for
// every question, then grades and saves the quiz.
package answer

import (
	"context"
	"errors"
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/csatquiz/internal/quiz"
	"github.com/abhisek/csatquiz/internal/render"
	"github.com/abhisek/csatquiz/internal/router"
	"github.com/abhisek/csatquiz/internal/screen"
	"github.com/abhisek/csatquiz/internal/screens"
	"github.com/abhisek/csatquiz/internal/screens/results"
	"github.com/abhisek/csatquiz/internal/ui/components"
	"github.com/abhisek/csatquiz/internal/ui/layout"
)

// AnswerScreen renders one quiz for answering.
type AnswerScreen struct {
	env          *screens.Env
	sess         *quiz.Session
	questionType string

	choices []components.MultiChoice
	current int
	graded  bool
	status  string
	warning bool

	// scroll state; View records the layout it last rendered
	scroll     int
	follow     bool
	starts     []int
	viewHeight int
	totalLines int
}

var _ screen.Screen = (*AnswerScreen)(nil)
var _ screen.KeyHintProvider = (*AnswerScreen)(nil)

// New creates an AnswerScreen for the session's current quiz. questionType
// is the catalogue label recorded with the graded attempt; it is empty for
// quizzes loaded from history.
func New(env *screens.Env, sess *quiz.Session, questionType string) *AnswerScreen {
	s := &AnswerScreen{
		env:          env,
		sess:         sess,
		questionType: questionType,
	}
	if q := sess.Quiz(); q != nil {
		for i, question := range q.Questions {
			mc := components.NewMultiChoice("", question.Options)
			if sel, ok := sess.Selection(i); ok {
				mc.Choose(sel)
			}
			s.choices = append(s.choices, mc)
		}
	}
	s.focusQuestion(0)
	s.follow = false
	return s
}

func (s *AnswerScreen) Init() tea.Cmd {
	return nil
}

func (s *AnswerScreen) Title() string {
	if q := s.sess.Quiz(); q != nil && q.Title != "" {
		return q.Title
	}
	return "Reading Passage"
}

func (s *AnswerScreen) KeyHints() []layout.KeyHint {
	if s.graded {
		return []layout.KeyHint{
			{Key: "R", Description: "Results"},
			{Key: "S", Description: "Save"},
			{Key: "PgUp/PgDn", Description: "Scroll"},
			{Key: "Esc", Description: "Home"},
		}
	}
	return []layout.KeyHint{
		{Key: "Tab", Description: "Next question"},
		{Key: "↑↓", Description: "Option"},
		{Key: "Enter", Description: "Choose"},
		{Key: "G", Description: "Grade"},
		{Key: "S", Description: "Save"},
		{Key: "Esc", Description: "Home"},
	}
}

func (s *AnswerScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	switch kmsg.String() {
	case "tab", "right":
		s.focusQuestion(s.current + 1)
		return s, nil
	case "shift+tab", "left":
		s.focusQuestion(s.current - 1)
		return s, nil
	case "pgdown", "ctrl+d":
		s.scrollBy(max(s.viewHeight/2, 1))
		return s, nil
	case "pgup", "ctrl+u":
		s.scrollBy(-max(s.viewHeight/2, 1))
		return s, nil
	case "g":
		return s, s.grade()
	case "s":
		s.save()
		return s, nil
	case "r":
		if s.graded {
			return s, s.showResults()
		}
		return s, nil
	}

	if s.graded || len(s.choices) == 0 {
		return s, nil
	}

	mc := s.choices[s.current]
	before := mc.Chosen
	mc, cmd := mc.Update(msg)
	s.choices[s.current] = mc
	if mc.Chosen != before {
		if err := s.sess.Select(s.current, mc.Value()); err != nil {
			s.setStatus(err.Error(), true)
		} else {
			s.status = ""
		}
	}
	s.follow = true
	return s, cmd
}

// focusQuestion moves the cursor to question i and scrolls it into view.
func (s *AnswerScreen) focusQuestion(i int) {
	if len(s.choices) == 0 {
		return
	}
	i = min(max(i, 0), len(s.choices)-1)
	for j := range s.choices {
		s.choices[j].Focused = j == i
	}
	s.current = i
	s.follow = true
}

func (s *AnswerScreen) scrollBy(n int) {
	s.follow = false
	s.scroll = min(max(s.scroll+n, 0), max(s.totalLines-s.viewHeight, 0))
}

// SetWarning shows a notice raised while the quiz was generated.
func (s *AnswerScreen) SetWarning(msg string) {
	s.setStatus(msg, true)
}

func (s *AnswerScreen) setStatus(msg string, warning bool) {
	s.status = msg
	s.warning = warning
}

// grade scores the quiz, reveals the answers and opens the results.
func (s *AnswerScreen) grade() tea.Cmd {
	if s.graded {
		return s.showResults()
	}
	res, err := s.sess.Grade()
	if err != nil {
		var verr *quiz.ValidationError
		if errors.As(err, &verr) {
			s.setStatus(fmt.Sprintf("⚠️ 모든 문제를 풀어야 채점할 수 있습니다. (%s)", verr.Message), true)
			return nil
		}
		s.setStatus(err.Error(), true)
		return nil
	}

	q := s.sess.Quiz()
	for i := range s.choices {
		s.choices[i].Reveal(q.Questions[i].Answer)
	}
	s.graded = true
	s.setStatus(fmt.Sprintf("🏆 당신의 점수는 %d점 입니다!", res.Score), false)

	if err := s.env.RecordAttempt(context.Background(), s.sess, s.questionType, res); err != nil {
		s.setStatus(fmt.Sprintf("%s\n⚠️ 기록 저장 실패: %v", s.status, err), true)
	}
	return s.showResults()
}

func (s *AnswerScreen) showResults() tea.Cmd {
	res, ok := s.sess.Graded()
	if !ok {
		return nil
	}
	next := results.New(s.sess.Quiz(), res)
	return func() tea.Msg { return router.PushScreenMsg{Screen: next} }
}

// save writes the quiz to the history directory.
func (s *AnswerScreen) save() {
	q := s.sess.Quiz()
	if q == nil {
		s.setStatus("저장할 문제가 없습니다.", true)
		return
	}
	name, err := s.env.History.Save(q, s.sess.Topic(), s.env.Now())
	if err != nil {
		s.setStatus(fmt.Sprintf("저장 실패: %v", err), true)
		return
	}
	s.setStatus(fmt.Sprintf("저장 완료! (%s)", name), false)
}

// questionPrompt is the display text of question i.
func questionPrompt(i int, q quiz.Question) string {
	return fmt.Sprintf("%d. %s", i+1, render.QuestionText(q.Question))
}
