// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package web serves the explorer surfaces over HTTP at the same locations
// the navigation layer uses: "/", "/search/{query}" and "/article/{id}".
// Each request drives fresh view controllers to completion, so the server
// keeps no per-user state. Appending ?format=json returns the view models.
package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/pdiddy/doc-explorer/internal/navigation"
	"github.com/pdiddy/doc-explorer/internal/querycodec"
	"github.com/pdiddy/doc-explorer/internal/render"
	"github.com/pdiddy/doc-explorer/internal/view"
	"github.com/pdiddy/doc-explorer/pkg/types"
)

// Server renders view models as HTML or JSON.
type Server struct {
	svc    view.Service
	cfg    types.ServeConfig
	logger *zap.Logger
}

// NewServer returns a server over svc.
func NewServer(svc view.Service, cfg types.ServeConfig, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{svc: svc, cfg: cfg, logger: logger.Named("web")}
}

// Handler returns the routed handler with middleware installed.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(s.logger))
	if len(s.cfg.AllowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: s.cfg.AllowedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "X-Request-ID"},
			ExposedHeaders: []string{"X-Request-ID"},
			MaxAge:         300,
		}))
	}

	r.Get("/", s.home)
	r.Get("/submit", s.submit)
	r.Get("/search", s.results)
	r.Get("/search/{query}", s.results)
	r.Get("/article/{id}", s.article)
	r.Get("/pdf/*", s.pdf)
	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", zap.String("addr", s.cfg.Addr))
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down: %w", err)
		}
		return nil
	}
}

func (s *Server) home(w http.ResponseWriter, r *http.Request) {
	form := view.NewSearchForm(r.Context(), s.svc, s.logger)
	form.Prefill(r.URL.Query().Get("field"), r.URL.Query().Get("q"))
	view.RunAll(form.LoadTopics())

	p := homePage{page: page{Title: "Search", Form: form.State()}, Topics: form.Topics()}
	if wantsJSON(r) {
		s.writeJSON(w, http.StatusOK, map[string]any{"form": p.Form, "topics": p.Topics})
		return
	}
	s.renderHTML(w, http.StatusOK, "home", p)
}

// submit validates a form submission and redirects to its result location.
func (s *Server) submit(w http.ResponseWriter, r *http.Request) {
	field := r.URL.Query().Get("field")
	if field == "" {
		field = string(querycodec.FieldTitle)
	}
	value := r.URL.Query().Get("q")

	loc, err := querycodec.Encode(field, value)
	if err == nil {
		http.Redirect(w, r, loc, http.StatusSeeOther)
		return
	}

	form := view.NewSearchForm(r.Context(), s.svc, s.logger)
	form.Prefill(field, value)
	st := form.State()
	var ve *querycodec.ValidationError
	if errors.As(err, &ve) {
		st.Error = ve.Message
	} else {
		st.Error = err.Error()
	}

	if wantsJSON(r) {
		s.writeJSON(w, http.StatusBadRequest, map[string]any{"form": st})
		return
	}
	view.RunAll(form.LoadTopics())
	s.renderHTML(w, http.StatusBadRequest, "home", homePage{page: page{Title: "Search", Form: st}, Topics: form.Topics()})
}

func (s *Server) results(w http.ResponseWriter, r *http.Request) {
	st, ok := s.state(w, r)
	if !ok {
		return
	}
	results := view.NewResults(r.Context(), s.svc, s.logger)
	view.RunAll(results.Enter(st))
	m := results.Model()

	if wantsJSON(r) {
		s.writeJSON(w, http.StatusOK, m)
		return
	}
	req := results.Request()
	form := view.FormState{Field: string(querycodec.FieldTitle)}
	if req.Key != "" {
		form = view.FormState{Field: string(req.Field), Value: req.Key}
	}
	s.renderHTML(w, http.StatusOK, "results", resultsPage{page: page{Title: "Results", Form: form}, Results: m})
}

func (s *Server) article(w http.ResponseWriter, r *http.Request) {
	st, ok := s.state(w, r)
	if !ok {
		return
	}
	a := view.NewArticle(r.Context(), s.svc, s.svc, s.svc, s.logger)
	view.RunAll(a.Enter(st))
	if r.URL.Query().Get("pdf") == "inspect" {
		view.RunAll(a.InspectPDF())
	}
	reader, related := a.Reader(), a.Related()

	if wantsJSON(r) {
		s.writeJSON(w, http.StatusOK, map[string]any{"reader": reader, "related": related})
		return
	}
	title := "Article"
	if reader.Status == view.StatusReady {
		title = reader.Payload.Article.Title
	}
	p := articlePage{
		page:    page{Title: title, Form: view.FormState{Field: string(querycodec.FieldTitle)}},
		Reader:  reader,
		Related: related,
		Width:   plotWidth,
		Height:  plotHeight,
		Radius:  pointRadius,
	}
	if related.Status == view.StatusReady {
		p.Points = plotPoints(related.Payload.Points)
	}
	s.renderHTML(w, http.StatusOK, "article", p)
}

// pdf proxies a stored PDF from the document service.
func (s *Server) pdf(w http.ResponseWriter, r *http.Request) {
	path, err := url.PathUnescape(chi.URLParam(r, "*"))
	if err != nil || path == "" {
		http.Error(w, "bad pdf path", http.StatusBadRequest)
		return
	}
	data, err := s.svc.FetchPDF(r.Context(), path)
	if err != nil {
		s.logger.Info("pdf proxy failed", zap.String("path", path), zap.Error(err))
		http.Error(w, view.GenericErrorReason, http.StatusBadGateway)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	_, _ = w.Write(data)
}

// state parses the request location into a navigation state.
func (s *Server) state(w http.ResponseWriter, r *http.Request) (navigation.State, bool) {
	loc := r.URL.EscapedPath()
	if q := stripFormat(r.URL.Query()); len(q) > 0 {
		loc += "?" + q.Encode()
	}
	st, err := navigation.Parse(loc)
	if err != nil {
		http.NotFound(w, r)
		return navigation.State{}, false
	}
	return st, true
}

func stripFormat(q url.Values) url.Values {
	q.Del("format")
	q.Del("pdf")
	return q
}

func wantsJSON(r *http.Request) bool {
	if r.URL.Query().Get("format") == "json" {
		return true
	}
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := render.WriteJSON(v, w); err != nil {
		s.logger.Warn("writing json", zap.Error(err))
	}
}

func (s *Server) renderHTML(w http.ResponseWriter, status int, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := templates.ExecuteTemplate(w, name, data); err != nil {
		s.logger.Warn("rendering template", zap.String("template", name), zap.Error(err))
	}
}

func encodeTopic(value string) (string, error) {
	return querycodec.Encode(string(querycodec.FieldTopic), value)
}
