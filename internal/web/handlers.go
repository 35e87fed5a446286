package web

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/abhisek/csatquiz/internal/csat"
	"github.com/abhisek/csatquiz/internal/history"
	"github.com/abhisek/csatquiz/internal/llm"
	"github.com/abhisek/csatquiz/internal/quiz"
	"github.com/abhisek/csatquiz/internal/quizgen"
	"github.com/abhisek/csatquiz/internal/store"
)

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	c := s.client(w, r)

	data := s.buildPage(c)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tmpl.ExecuteTemplate(w, "index.html", data); err != nil {
		log.Printf("Template error in index: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func (s *Server) handleAPIKey(w http.ResponseWriter, r *http.Request) {
	c := s.client(w, r)
	key := strings.TrimSpace(r.FormValue("api_key"))
	if key == "" {
		c.addFlash("warning", "API Key를 입력해주세요.")
		redirectHome(w, r)
		return
	}

	c.mu.Lock()
	c.apiKey = key
	c.mu.Unlock()

	c.addFlash("success", "API Key가 설정되었습니다.")
	redirectHome(w, r)
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	c := s.client(w, r)
	defer redirectHome(w, r)

	form, err := parseSettings(r)
	c.mu.Lock()
	c.form = form
	c.mu.Unlock()
	if err != nil {
		c.addFlash("warning", "%s", validationMessage(err))
		return
	}

	cfg := s.llmConfig(c)
	if err := cfg.Validate(); err != nil {
		c.addFlash("error", "API Key가 필요합니다. (%v)", err)
		return
	}

	qt, _ := csat.LookupQuestionType(form.QuestionType)
	req := quizgen.GenerationRequest{
		SchoolLevel:  form.Level,
		Grade:        form.Grade,
		Difficulty:   form.Difficulty,
		QuestionType: qt.Label,
		Topic:        form.topic(),
	}

	ctx := r.Context()
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}
	ctx = llm.WithWarnings(ctx, func(msg string) {
		log.Printf("Generation warning for topic %q: %s", req.Topic, msg)
		c.addFlash("warning", "⚠️ %s", msg)
	})

	gen, err := s.opts.NewGenerator(ctx, cfg)
	if err != nil {
		log.Printf("Failed to build generator: %v", err)
		c.addFlash("error", "에러 발생: %v", err)
		return
	}

	token, err := c.session.StartGeneration()
	if err != nil {
		c.addFlash("warning", "이미 문제를 생성하고 있습니다.")
		return
	}

	var q *quiz.Quiz
	err = c.session.Dispatch(token, func() error {
		var gerr error
		q, gerr = gen.Generate(ctx, req)
		return gerr
	})
	if err != nil {
		log.Printf("Failed to generate quiz for topic %q: %v", req.Topic, err)
		c.addFlash("error", "에러 발생: %s", generationMessage(err))
		return
	}

	c.session.SetQuiz(q, req.Topic)
	c.mu.Lock()
	c.questionType = qt.Label
	c.mu.Unlock()
	c.addFlash("success", "문제가 생성되었습니다!")
}

func (s *Server) handleGrade(w http.ResponseWriter, r *http.Request) {
	c := s.client(w, r)
	defer redirectHome(w, r)

	q := c.session.Quiz()
	if q == nil {
		c.addFlash("warning", "채점할 문제가 없습니다.")
		return
	}

	for i := range q.Questions {
		opt := r.FormValue("q" + strconv.Itoa(i))
		if opt == "" {
			continue
		}
		if err := c.session.Select(i, opt); err != nil {
			c.addFlash("warning", "%s", validationMessage(err))
			return
		}
	}

	res, err := c.session.Grade()
	if err != nil {
		c.addFlash("warning", "⚠️ 모든 문제를 풀어야 채점할 수 있습니다. (%s)", validationMessage(err))
		return
	}

	s.recordAttempt(r.Context(), c, q, res)
}

func (s *Server) recordAttempt(ctx context.Context, c *clientState, q *quiz.Quiz, res quiz.Result) {
	if s.opts.AttemptRepo == nil {
		return
	}
	c.mu.Lock()
	questionType := c.questionType
	c.mu.Unlock()

	err := s.opts.AttemptRepo.AppendAttempt(context.WithoutCancel(ctx), store.AttemptData{
		SessionID:    c.session.ID,
		Title:        q.Title,
		Topic:        c.session.Topic(),
		QuestionType: questionType,
		Correct:      res.CorrectCount,
		Total:        res.Total,
		Score:        res.Score,
	})
	if err != nil {
		log.Printf("Failed to record attempt: %v", err)
	}
}

func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	c := s.client(w, r)
	defer redirectHome(w, r)

	q := c.session.Quiz()
	if q == nil {
		c.addFlash("warning", "저장할 문제가 없습니다.")
		return
	}

	name, err := s.opts.History.Save(q, c.session.Topic(), s.opts.Now())
	if err != nil {
		log.Printf("Failed to save quiz: %v", err)
		c.addFlash("error", "저장 실패: %v", err)
		return
	}
	c.addFlash("success", "저장 완료! (%s)", name)
}

func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	c := s.client(w, r)
	c.session.Clear()
	redirectHome(w, r)
}

func (s *Server) handleHistoryLoad(w http.ResponseWriter, r *http.Request) {
	c := s.client(w, r)
	defer redirectHome(w, r)

	name := r.FormValue("name")
	q, err := s.opts.History.Load(name)
	if err != nil {
		log.Printf("Failed to load history file %q: %v", name, err)
		c.addFlash("error", "불러오기 실패: %v", err)
		return
	}

	c.session.SetQuiz(q, history.TopicFromName(name))
	c.mu.Lock()
	c.questionType = ""
	c.mu.Unlock()
	c.addFlash("success", "불러오기 완료! (%s)", name)
}

func (s *Server) handleHistoryDelete(w http.ResponseWriter, r *http.Request) {
	c := s.client(w, r)
	defer redirectHome(w, r)

	name := r.FormValue("name")
	if err := s.opts.History.Delete(name); err != nil {
		log.Printf("Failed to delete history file %q: %v", name, err)
		c.addFlash("error", "삭제 실패: %v", err)
		return
	}
	c.addFlash("info", "삭제되었습니다. (%s)", name)
}

func validationMessage(err error) string {
	var verr *quiz.ValidationError
	if errors.As(err, &verr) {
		return verr.Message
	}
	return err.Error()
}

func generationMessage(err error) string {
	var nerr *quizgen.NormalizationError
	if errors.As(err, &nerr) {
		return fmt.Sprintf("%v\n\n원본 응답:\n%s", nerr, nerr.Raw)
	}
	return err.Error()
}
