// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package view

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/doc-explorer/internal/api"
	"github.com/pdiddy/doc-explorer/internal/navigation"
	"github.com/pdiddy/doc-explorer/internal/querycodec"
	"github.com/pdiddy/doc-explorer/pkg/types"
)

func state(t *testing.T, location string) navigation.State {
	t.Helper()
	st, err := navigation.Parse(location)
	require.NoError(t, err)
	return st
}

func TestResultsReady(t *testing.T) {
	svc := &fakeService{search: rows(
		types.ArticleSummary{ID: "p1", Title: "Deep Learning", Author: "LeCun", Year: 2015},
		types.ArticleSummary{Title: "Untitled Draft", Author: "Anon"},
	)}
	r := NewResults(context.Background(), svc, nil)

	tasks := r.Enter(state(t, "/search/deep%20learning?title=deep%20learning"))
	require.Len(t, tasks, 1)
	assert.Equal(t, StatusLoading, r.Model().Status)

	RunAll(tasks)

	want := Ready([]ResultItem{
		{Article: types.ArticleSummary{ID: "p1", Title: "Deep Learning", Author: "LeCun", Year: 2015}, Location: "/article/p1"},
		{Article: types.ArticleSummary{Title: "Untitled Draft", Author: "Anon"}, Location: "/article/Untitled%20Draft?by=title"},
	})
	if diff := cmp.Diff(want, r.Model()); diff != "" {
		t.Errorf("model mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, []querycodec.SearchRequest{querycodec.ExactTitle("deep learning")}, svc.searchCalls())
}

func TestResultsEmptyIsNotError(t *testing.T) {
	svc := &fakeService{search: rows()}
	r := NewResults(context.Background(), svc, nil)

	RunAll(r.Enter(state(t, "/search/zzzz?author=zzzz")))

	m := r.Model()
	assert.Equal(t, StatusEmpty, m.Status)
	assert.Empty(t, m.Reason)
	assert.Equal(t, []querycodec.SearchRequest{querycodec.ByAuthor("zzzz")}, svc.searchCalls())
}

func TestResultsFailuresShareReason(t *testing.T) {
	failures := map[string]error{
		"network":   &api.NetworkError{Op: "search", URL: "http://x/search", StatusCode: 503},
		"malformed": &api.MalformedResponseError{Op: "search", URL: "http://x/search", Detail: "invalid JSON"},
	}
	for name, ferr := range failures {
		t.Run(name, func(t *testing.T) {
			svc := &fakeService{search: func(context.Context, querycodec.SearchRequest) ([]types.ArticleSummary, error) {
				return nil, ferr
			}}
			r := NewResults(context.Background(), svc, nil)
			RunAll(r.Enter(state(t, "/search/x?topic=x")))

			assert.Equal(t, Failed[[]ResultItem](GenericErrorReason), r.Model())
		})
	}
}

func TestResultsSameKeyIsNoop(t *testing.T) {
	svc := &fakeService{search: rows(types.ArticleSummary{ID: "1", Title: "A"})}
	r := NewResults(context.Background(), svc, nil)

	st := state(t, "/search/a?title=a")
	RunAll(r.Enter(st))
	assert.Nil(t, r.Enter(st))
	assert.Len(t, svc.searchCalls(), 1)

	RunAll(r.Reload())
	assert.Len(t, svc.searchCalls(), 2)
	assert.Equal(t, StatusReady, r.Model().Status)
}

func TestResultsInvalidState(t *testing.T) {
	svc := &fakeService{}
	r := NewResults(context.Background(), svc, nil)

	assert.Nil(t, r.Enter(state(t, "/search?title=%20")))
	assert.Equal(t, StatusError, r.Model().Status)
	assert.Empty(t, svc.searchCalls())
}

func TestResultsStaleResultDiscarded(t *testing.T) {
	firstCtx := make(chan context.Context, 1)
	svc := &fakeService{search: func(ctx context.Context, req querycodec.SearchRequest) ([]types.ArticleSummary, error) {
		if req.Key == "first" {
			firstCtx <- ctx
			<-ctx.Done()
			return []types.ArticleSummary{{ID: "old", Title: "Old"}}, nil
		}
		return []types.ArticleSummary{{ID: "new", Title: "New"}}, nil
	}}
	r := NewResults(context.Background(), svc, nil)

	first := r.Enter(state(t, "/search/first?title=first"))
	require.Len(t, first, 1)
	done := make(chan Result, 1)
	go func() { done <- first[0]() }()
	ctx := <-firstCtx

	second := r.Enter(state(t, "/search/second?title=second"))
	require.Len(t, second, 1)
	assert.True(t, errors.Is(ctx.Err(), context.Canceled), "superseded fetch must be cancelled")

	assert.True(t, second[0]().Apply())
	assert.False(t, (<-done).Apply(), "stale result must be discarded")

	m := r.Model()
	require.Equal(t, StatusReady, m.Status)
	require.Len(t, m.Payload, 1)
	assert.Equal(t, "new", m.Payload[0].Article.ID)
}

func TestResultsLeaveCancels(t *testing.T) {
	started := make(chan struct{})
	svc := &fakeService{search: func(ctx context.Context, _ querycodec.SearchRequest) ([]types.ArticleSummary, error) {
		close(started)
		<-ctx.Done()
		return nil, ctx.Err()
	}}
	r := NewResults(context.Background(), svc, nil)

	tasks := r.Enter(state(t, "/search/a?title=a"))
	done := make(chan Result, 1)
	go func() { done <- tasks[0]() }()
	<-started

	r.Leave()
	assert.False(t, (<-done).Apply())
	assert.Equal(t, Idle[[]ResultItem](), r.Model())
}

func TestResultsSelect(t *testing.T) {
	svc := &fakeService{search: rows(
		types.ArticleSummary{ID: "p1", Title: "A"},
		types.ArticleSummary{Title: "B c"},
	)}
	r := NewResults(context.Background(), svc, nil)
	RunAll(r.Enter(state(t, "/search/a?author=a")))

	nav := &recordingNav{}
	require.NoError(t, r.Select(0, nav))
	require.NoError(t, r.Select(1, nav))
	assert.Error(t, r.Select(2, nav))
	assert.Equal(t, []string{"/article/p1", "/article/B%20c?by=title"}, nav.pushed)
}

func TestResultsEnterRequest(t *testing.T) {
	svc := &fakeService{search: rows(types.ArticleSummary{ID: "9", Title: "Neighbor"})}
	r := NewResults(context.Background(), svc, nil)

	RunAll(r.EnterRequest(querycodec.Related("42")))
	assert.Nil(t, r.EnterRequest(querycodec.Related("42")))

	assert.Equal(t, []querycodec.SearchRequest{querycodec.Related("42")}, svc.searchCalls())
	assert.Equal(t, querycodec.Related("42"), r.Request())
	assert.Equal(t, StatusReady, r.Model().Status)
}
