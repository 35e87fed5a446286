package web

import (
	"html/template"
	"log"
	"strconv"

	"github.com/abhisek/csatquiz/internal/csat"
	"github.com/abhisek/csatquiz/internal/quiz"
	"github.com/abhisek/csatquiz/internal/render"
)

type pageData struct {
	NeedsAPIKey bool
	Provider    string
	Model       string

	Levels        []choice
	Grades        []choice
	Difficulties  []choice
	QuestionTypes []choice
	Topics        []choice
	Form          settings

	Flashes []flash
	History []string
	Quiz    *quizView
}

type choice struct {
	Value    string
	Label    string
	Selected bool
}

type quizView struct {
	Title      string
	Passage    template.HTML
	Questions  []questionView
	Vocabulary []quiz.VocabEntry
	Graded     bool
	Result     quiz.Result
}

type questionView struct {
	Index       int
	Number      int
	Text        string
	Type        string
	Options     []choice
	Answer      string
	Explanation string
	Outcome     *quiz.QuestionResult
}

func (s *Server) buildPage(c *clientState) pageData {
	cfg := s.llmConfig(c)

	c.mu.Lock()
	form := c.form
	c.mu.Unlock()

	data := pageData{
		NeedsAPIKey: cfg.Validate() != nil,
		Provider:    cfg.Provider,
		Model:       cfg.Model(),
		Form:        form,
		Flashes:     c.takeFlashes(),
	}

	for _, l := range csat.SchoolLevels() {
		data.Levels = append(data.Levels, choice{Value: string(l), Label: l.Label(), Selected: l == form.Level})
	}
	for _, g := range csat.Grades() {
		data.Grades = append(data.Grades, choice{Value: strconv.Itoa(int(g)), Label: g.Label(), Selected: g == form.Grade})
	}
	for _, d := range csat.Difficulties() {
		data.Difficulties = append(data.Difficulties, choice{Value: string(d), Label: d.Label(), Selected: d == form.Difficulty})
	}
	for _, qt := range csat.QuestionTypes() {
		data.QuestionTypes = append(data.QuestionTypes, choice{Value: qt.ID, Label: qt.Label, Selected: qt.ID == form.QuestionType})
	}
	for _, t := range csat.SuggestedTopics() {
		data.Topics = append(data.Topics, choice{Value: t, Label: t, Selected: t == form.SuggestedTopic})
	}

	names, err := s.opts.History.List()
	if err != nil {
		log.Printf("Failed to list history: %v", err)
		data.Flashes = append(data.Flashes, flash{Kind: "error", Message: err.Error()})
	}
	data.History = names

	if q := c.session.Quiz(); q != nil {
		data.Quiz = newQuizView(q, c.session)
	}
	return data
}

func newQuizView(q *quiz.Quiz, sess *quiz.Session) *quizView {
	v := &quizView{
		Title:      q.Title,
		Passage:    template.HTML(render.HTML(q.Passage)),
		Vocabulary: q.Vocabulary,
	}
	if v.Title == "" {
		v.Title = "Reading Passage"
	}

	res, graded := sess.Graded()
	v.Graded = graded
	v.Result = res

	for i, question := range q.Questions {
		selected, _ := sess.Selection(i)
		qv := questionView{
			Index:       i,
			Number:      i + 1,
			Text:        render.QuestionText(question.Question),
			Type:        question.Type,
			Answer:      question.Answer,
			Explanation: question.Explanation,
		}
		for _, opt := range question.Options {
			qv.Options = append(qv.Options, choice{Value: opt, Label: opt, Selected: opt == selected})
		}
		if graded && i < len(res.Questions) {
			qv.Outcome = &res.Questions[i]
		}
		v.Questions = append(v.Questions, qv)
	}
	return v
}
