// Package setup is the quiz settings form. It runs the generation and hands
// the quiz to the answering screen.
package setup

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"github.com/google/uuid"

	"github.com/abhisek/csatquiz/internal/csat"
	"github.com/abhisek/csatquiz/internal/llm"
	"github.com/abhisek/csatquiz/internal/quiz"
	"github.com/abhisek/csatquiz/internal/quizgen"
	"github.com/abhisek/csatquiz/internal/router"
	"github.com/abhisek/csatquiz/internal/screen"
	"github.com/abhisek/csatquiz/internal/screens"
	"github.com/abhisek/csatquiz/internal/screens/answer"
	"github.com/abhisek/csatquiz/internal/ui/components"
	"github.com/abhisek/csatquiz/internal/ui/layout"
)

type field int

const (
	fieldLevel field = iota
	fieldGrade
	fieldDifficulty
	fieldType
	fieldTopicMode
	fieldTopic
	fieldGenerate
	numFields
)

const (
	topicCustom    = 0
	topicSuggested = 1
)

// SetupScreen collects the generation settings.
type SetupScreen struct {
	env  *screens.Env
	sess *quiz.Session

	levels       []csat.SchoolLevel
	difficulties []csat.Difficulty
	types        []csat.QuestionType

	level      components.Selector
	grade      components.Selector
	difficulty components.Selector
	qtype      components.Selector
	topicMode  components.Selector
	suggested  components.Selector
	topic      components.TextInput
	focus      field

	spinner    spinner.Model
	generating bool
	genID      int
	cancel     context.CancelFunc
	status     string
	errMsg     string
}

var _ screen.Screen = (*SetupScreen)(nil)
var _ screen.KeyHintProvider = (*SetupScreen)(nil)
var _ screen.EscapeInterceptor = (*SetupScreen)(nil)

// New creates a SetupScreen with default settings: middle school, first
// grade, medium difficulty, general practice and a custom topic.
func New(env *screens.Env) *SetupScreen {
	s := &SetupScreen{
		env:          env,
		sess:         quiz.NewSession(uuid.NewString()),
		levels:       csat.SchoolLevels(),
		difficulties: csat.Difficulties(),
		types:        csat.QuestionTypes(),
		spinner:      spinner.New(spinner.WithSpinner(spinner.Dot)),
	}

	var levelLabels, gradeLabels, diffLabels, typeLabels []string
	for _, l := range s.levels {
		levelLabels = append(levelLabels, l.Label())
	}
	for _, g := range csat.Grades() {
		gradeLabels = append(gradeLabels, g.Label())
	}
	for _, d := range s.difficulties {
		diffLabels = append(diffLabels, d.Label())
	}
	for _, t := range s.types {
		typeLabels = append(typeLabels, t.Label)
	}

	s.level = components.NewSelector("학교", levelLabels)
	s.grade = components.NewSelector("학년", gradeLabels)
	s.difficulty = components.NewSelector("난이도", diffLabels)
	for i, d := range s.difficulties {
		if d == csat.DifficultyMedium {
			s.difficulty.Index = i
		}
	}
	s.qtype = components.NewSelector("문제 유형", typeLabels)
	s.topicMode = components.NewSelector("주제 선택", []string{"직접 입력", "추천 주제"})
	s.suggested = components.NewSelector("주제", csat.SuggestedTopics())
	s.topic = components.NewTextInput("예: 인공지능의 윤리, 기후 변화", 100, 40)
	s.topic.Blur()
	return s
}

func (s *SetupScreen) Init() tea.Cmd {
	return nil
}

func (s *SetupScreen) Title() string {
	return "New Quiz"
}

// InterceptsEscape is true while generating so Esc stops the generation
// instead of leaving the screen.
func (s *SetupScreen) InterceptsEscape() bool {
	return s.generating
}

func (s *SetupScreen) KeyHints() []layout.KeyHint {
	if s.generating {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Stop"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Field"},
		{Key: "←→", Description: "Change"},
		{Key: "Enter", Description: "Generate"},
		{Key: "Esc", Description: "Back"},
	}
}

// request builds the generation request from the form.
func (s *SetupScreen) request() quizgen.GenerationRequest {
	topic := s.topic.Value()
	if s.topicMode.Index == topicSuggested {
		topic = s.suggested.Value()
	}
	return quizgen.GenerationRequest{
		SchoolLevel:  s.levels[s.level.Index],
		Grade:        csat.Grades()[s.grade.Index],
		Difficulty:   s.difficulties[s.difficulty.Index],
		QuestionType: s.qtype.Value(),
		Topic:        topic,
	}
}

func (s *SetupScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case quizReadyMsg:
		return s.handleQuizReady(msg)

	case spinner.TickMsg:
		if !s.generating {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.focus == fieldTopic && s.topicMode.Index == topicCustom {
		var cmd tea.Cmd
		s.topic, cmd = s.topic.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *SetupScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.generating {
		if key == "esc" {
			s.stop()
		}
		return s, nil
	}

	switch key {
	case "esc":
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	case "up", "shift+tab":
		return s, s.setFocus((s.focus - 1 + numFields) % numFields)
	case "down", "tab":
		return s, s.setFocus((s.focus + 1) % numFields)
	case "enter":
		return s, s.generate()
	}

	var cmd tea.Cmd
	switch s.focus {
	case fieldLevel:
		s.level, cmd = s.level.Update(msg)
	case fieldGrade:
		s.grade, cmd = s.grade.Update(msg)
	case fieldDifficulty:
		s.difficulty, cmd = s.difficulty.Update(msg)
	case fieldType:
		s.qtype, cmd = s.qtype.Update(msg)
	case fieldTopicMode:
		s.topicMode, cmd = s.topicMode.Update(msg)
	case fieldTopic:
		if s.topicMode.Index == topicSuggested {
			s.suggested, cmd = s.suggested.Update(msg)
		} else {
			s.topic, cmd = s.topic.Update(msg)
		}
	}
	return s, cmd
}

func (s *SetupScreen) setFocus(f field) tea.Cmd {
	s.focus = f
	if f == fieldTopic && s.topicMode.Index == topicCustom {
		return s.topic.Focus()
	}
	s.topic.Blur()
	return nil
}

// generate validates the form and starts a generation in the background.
func (s *SetupScreen) generate() tea.Cmd {
	req := s.request()
	if err := req.Validate(); err != nil {
		s.errMsg = "주제를 입력하거나 선택해주세요."
		var verr *quiz.ValidationError
		if errors.As(err, &verr) && verr.Field != "topic" {
			s.errMsg = verr.Message
		}
		return nil
	}

	cfg := s.env.LLMConfig()
	if err := cfg.Validate(); err != nil {
		s.errMsg = fmt.Sprintf("API Key가 필요합니다. (%v)", err)
		return nil
	}

	token, err := s.sess.StartGeneration()
	if err != nil {
		s.errMsg = "이미 문제를 생성하고 있습니다."
		return nil
	}

	var ctx context.Context
	var cancel context.CancelFunc
	if cfg.Timeout > 0 {
		ctx, cancel = context.WithTimeout(context.Background(), cfg.Timeout)
	} else {
		ctx, cancel = context.WithCancel(context.Background())
	}
	s.cancel = cancel
	s.genID++
	s.generating = true
	s.errMsg = ""
	s.status = ""

	id := s.genID
	sess := s.sess
	factory := s.env.NewGenerator
	run := func() tea.Msg {
		defer cancel()
		var warnings []string
		ctx := llm.WithWarnings(ctx, func(msg string) { warnings = append(warnings, msg) })

		gen, err := factory(ctx, cfg)
		if err != nil {
			sess.EndGeneration(token)
			return quizReadyMsg{ID: id, Err: err, Warnings: warnings}
		}
		var q *quiz.Quiz
		err = sess.Dispatch(token, func() error {
			var gerr error
			q, gerr = gen.Generate(ctx, req)
			return gerr
		})
		return quizReadyMsg{ID: id, Quiz: q, Err: err, Warnings: warnings}
	}

	return tea.Batch(s.spinner.Tick, run)
}

// stop abandons the pending generation. If the request was not sent yet
// it never will be; an in-flight call is cancelled and its result dropped.
func (s *SetupScreen) stop() {
	s.sess.StopGeneration()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.generating = false
	s.genID++
	s.status = "생성을 중단했습니다."
}

func (s *SetupScreen) handleQuizReady(msg quizReadyMsg) (screen.Screen, tea.Cmd) {
	if msg.ID != s.genID || !s.generating {
		return s, nil
	}
	s.generating = false
	s.cancel = nil

	if msg.Err != nil {
		if errors.Is(msg.Err, quiz.ErrGenerationStopped) {
			s.status = "생성을 중단했습니다."
			return s, nil
		}
		s.errMsg = "에러 발생: " + errorMessage(msg.Err)
		for _, w := range msg.Warnings {
			s.errMsg += "\n⚠️ " + w
		}
		return s, nil
	}

	req := s.request()
	s.sess.SetQuiz(msg.Quiz, req.Topic)
	next := answer.New(s.env, s.sess, req.QuestionType)
	if len(msg.Warnings) > 0 {
		next.SetWarning("⚠️ " + strings.Join(msg.Warnings, "\n⚠️ "))
	}
	return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
}

// errorMessage renders a generation failure, including the raw model
// output when it could not be normalized.
func errorMessage(err error) string {
	var nerr *quizgen.NormalizationError
	if errors.As(err, &nerr) {
		return fmt.Sprintf("%v\n\n원본 응답:\n%s", nerr, nerr.Raw)
	}
	return err.Error()
}
