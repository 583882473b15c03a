// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package view

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/pdiddy/doc-explorer/internal/navigation"
	"github.com/pdiddy/doc-explorer/internal/querycodec"
)

// Session ties the controllers to one navigation history. Every transition
// dispatches the new state to the controller of its surface and leaves the
// others, so fetches of a surface the user navigated away from are
// cancelled and their late results dropped.
type Session struct {
	History *navigation.History
	Form    *SearchForm
	Results *Results
	Article *Article

	log    *zap.Logger
	cancel context.CancelFunc
}

// NewSession returns a session positioned at start. Call Start to issue the
// initial fetches.
func NewSession(ctx context.Context, start string, svc Service, logger *zap.Logger) (*Session, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	h, err := navigation.NewHistory(start)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithCancel(ctx)
	return &Session{
		History: h,
		Form:    NewSearchForm(ctx, svc, logger),
		Results: NewResults(ctx, svc, logger),
		Article: NewArticle(ctx, svc, svc, svc, logger),
		log:     logger,
		cancel:  cancel,
	}, nil
}

// Start dispatches the initial location.
func (s *Session) Start() []Task {
	return s.Dispatch(s.History.Current().State)
}

// Current returns the active history entry.
func (s *Session) Current() navigation.Entry {
	return s.History.Current()
}

// Navigate pushes location and dispatches it.
func (s *Session) Navigate(location string) ([]Task, error) {
	if err := s.History.Push(location); err != nil {
		return nil, err
	}
	return s.Start(), nil
}

// Back moves one entry back and dispatches it.
func (s *Session) Back() ([]Task, error) {
	if err := s.History.Back(); err != nil {
		return nil, err
	}
	return s.Start(), nil
}

// Forward moves one entry forward and dispatches it.
func (s *Session) Forward() ([]Task, error) {
	if err := s.History.Forward(); err != nil {
		return nil, err
	}
	return s.Start(), nil
}

// Dispatch routes st to the controller of its surface.
func (s *Session) Dispatch(st navigation.State) []Task {
	s.log.Debug("dispatch", zap.Stringer("path", st.Path), zap.String("key", st.Key()))

	switch st.Path {
	case navigation.Search:
		s.Article.Leave()
		if req, ok := querycodec.Decode(st).(querycodec.SearchRequest); ok {
			s.Form.Prefill(string(req.Field), req.Key)
		}
		return s.Results.Enter(st)
	case navigation.Article:
		s.Results.Leave()
		return s.Article.Enter(st)
	default:
		s.Results.Leave()
		s.Article.Leave()
		return s.Form.LoadTopics()
	}
}

// Reload refetches the active surface.
func (s *Session) Reload() []Task {
	switch s.Current().State.Path {
	case navigation.Search:
		return s.Results.Reload()
	case navigation.Article:
		return s.Article.Reload()
	default:
		return s.Form.LoadTopics()
	}
}

// Submit submits the search form.
func (s *Session) Submit() ([]Task, error) {
	return s.follow(s.Form.Submit)
}

// SelectResult opens result row i.
func (s *Session) SelectResult(i int) ([]Task, error) {
	return s.follow(func(nav Navigator) error { return s.Results.Select(i, nav) })
}

// SelectRelated opens related item i.
func (s *Session) SelectRelated(i int) ([]Task, error) {
	return s.follow(func(nav Navigator) error { return s.Article.SelectRelated(i, nav) })
}

// SelectPoint opens the article behind plotted point i.
func (s *Session) SelectPoint(i int) ([]Task, error) {
	return s.follow(func(nav Navigator) error { return s.Article.SelectPoint(i, nav) })
}

// Close cancels all in-flight work.
func (s *Session) Close() {
	s.Form.Close()
	s.Results.Leave()
	s.Article.Leave()
	s.cancel()
}

// follow runs a controller action and navigates to the location it pushes.
func (s *Session) follow(action func(Navigator) error) ([]Task, error) {
	var c capture
	if err := action(&c); err != nil {
		return nil, err
	}
	if c.location == "" {
		return nil, fmt.Errorf("no location to navigate to")
	}
	return s.Navigate(c.location)
}

type capture struct {
	location string
}

func (c *capture) Push(location string) error {
	if _, err := navigation.Parse(location); err != nil {
		return err
	}
	c.location = location
	return nil
}
