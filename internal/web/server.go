// Package web serves the browser UI: quiz settings, generation, answering,
// grading and the history list on a single page.
package web

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"

	"github.com/abhisek/csatquiz/internal/history"
	"github.com/abhisek/csatquiz/internal/llm"
	"github.com/abhisek/csatquiz/internal/quiz"
	"github.com/abhisek/csatquiz/internal/quizgen"
	"github.com/abhisek/csatquiz/internal/store"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	cookieName  = "csatquiz"
	cookieIDKey = "id"
)

// Options configures a Server.
type Options struct {
	// LLMConfig is the base provider configuration. Its API key may be
	// empty; the page then asks for one.
	LLMConfig llm.Config

	// History stores saved quizzes. Required.
	History *history.Store

	// EventRepo receives LLM call events. Optional.
	EventRepo store.EventRepo

	// AttemptRepo receives graded attempts. Optional.
	AttemptRepo store.AttemptRepo

	// SessionKey signs the session cookie. A random key is generated when
	// empty, which invalidates cookies on restart.
	SessionKey []byte

	// NewGenerator builds the generator for one request; the config it
	// receives carries the session's API key. Defaults to
	// quizgen.ProviderFactory.
	NewGenerator quizgen.Factory

	// IdleTimeout drops a browser's state after this long without a
	// request. Defaults to DefaultIdleTimeout.
	IdleTimeout time.Duration

	// Now defaults to time.Now.
	Now func() time.Time
}

// DefaultIdleTimeout is how long an idle browser's quiz is kept in memory.
const DefaultIdleTimeout = 24 * time.Hour

// Server is the web UI. Quiz state lives server-side keyed by a session id
// held in a signed cookie.
type Server struct {
	opts    Options
	cookies *sessions.CookieStore
	tmpl    *template.Template

	mu      sync.Mutex
	clients map[string]*clientState
}

// NewServer parses the embedded templates and prepares the cookie store.
func NewServer(opts Options) (*Server, error) {
	if opts.History == nil {
		return nil, errors.New("web: history store is required")
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.IdleTimeout <= 0 {
		opts.IdleTimeout = DefaultIdleTimeout
	}
	if opts.NewGenerator == nil {
		opts.NewGenerator = quizgen.ProviderFactory(opts.EventRepo, quizgen.DefaultConfig())
	}
	if len(opts.SessionKey) == 0 {
		opts.SessionKey = securecookie.GenerateRandomKey(32)
		if opts.SessionKey == nil {
			return nil, errors.New("web: generate session key")
		}
	}

	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	cookies := sessions.NewCookieStore(opts.SessionKey)
	cookies.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}

	return &Server{
		opts:    opts,
		cookies: cookies,
		tmpl:    tmpl,
		clients: make(map[string]*clientState),
	}, nil
}

// Handler returns the routed, request-logging handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("POST /apikey", s.handleAPIKey)
	mux.HandleFunc("POST /generate", s.handleGenerate)
	mux.HandleFunc("POST /grade", s.handleGrade)
	mux.HandleFunc("POST /save", s.handleSave)
	mux.HandleFunc("POST /clear", s.handleClear)
	mux.HandleFunc("POST /history/load", s.handleHistoryLoad)
	mux.HandleFunc("POST /history/delete", s.handleHistoryDelete)
	return logRequests(mux)
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		log.Printf("Starting server on %s", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s (%s)", r.Method, r.URL.Path, time.Since(start).Round(time.Millisecond))
	})
}

// clientState is everything the server remembers about one browser.
type clientState struct {
	session *quiz.Session

	mu           sync.Mutex
	form         settings
	apiKey       string
	questionType string
	flashes      []flash

	// guarded by Server.mu
	lastSeen time.Time
}

type flash struct {
	Kind    string // "success", "info", "warning" or "error"
	Message string
}

func (c *clientState) addFlash(kind, format string, args ...any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.flashes = append(c.flashes, flash{Kind: kind, Message: fmt.Sprintf(format, args...)})
}

func (c *clientState) takeFlashes() []flash {
	c.mu.Lock()
	defer c.mu.Unlock()
	f := c.flashes
	c.flashes = nil
	return f
}

// client returns the state for the request's session, creating a session
// and setting its cookie on first contact.
func (s *Server) client(w http.ResponseWriter, r *http.Request) *clientState {
	sess, err := s.cookies.Get(r, cookieName)
	if err != nil {
		log.Printf("Session decode error: %v", err)
	}
	id, _ := sess.Values[cookieIDKey].(string)

	now := s.opts.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	if c, ok := s.clients[id]; ok && id != "" {
		c.lastSeen = now
		return c
	}

	s.evictIdle(now)

	id = uuid.NewString()
	c := &clientState{
		session:  quiz.NewSession(id),
		form:     defaultSettings(),
		lastSeen: now,
	}
	s.clients[id] = c

	sess.Values[cookieIDKey] = id
	if err := sess.Save(r, w); err != nil {
		log.Printf("Session save error: %v", err)
	}
	return c
}

// evictIdle drops clients not seen within IdleTimeout. A client with a
// generation in flight is kept. Callers hold s.mu.
func (s *Server) evictIdle(now time.Time) {
	for id, c := range s.clients {
		if now.Sub(c.lastSeen) > s.opts.IdleTimeout && !c.session.Generating() {
			delete(s.clients, id)
		}
	}
}

// llmConfig returns the base config with the session's key applied.
func (s *Server) llmConfig(c *clientState) llm.Config {
	cfg := s.opts.LLMConfig
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.apiKey != "" {
		cfg = cfg.WithAPIKey(c.apiKey)
	}
	return cfg
}

func redirectHome(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
