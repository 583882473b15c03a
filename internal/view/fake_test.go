// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package view

import (
	"context"
	"sync"
	"testing"

	"go.uber.org/goleak"

	"github.com/pdiddy/doc-explorer/internal/querycodec"
	"github.com/pdiddy/doc-explorer/pkg/types"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// fakeService answers from canned data and records every call.
type fakeService struct {
	mu sync.Mutex

	search    func(ctx context.Context, req querycodec.SearchRequest) ([]types.ArticleSummary, error)
	viz       func(ctx context.Context, id string) ([]types.RelatedArticle, error)
	topics    map[string][]string
	topicsErr error
	pdf       []byte
	pdfErr    error

	searches []querycodec.SearchRequest
	vizIDs   []string
	pdfURLs  []string
}

func (f *fakeService) FetchSearch(ctx context.Context, req querycodec.SearchRequest) ([]types.ArticleSummary, error) {
	f.mu.Lock()
	f.searches = append(f.searches, req)
	fn := f.search
	f.mu.Unlock()
	if fn == nil {
		return nil, nil
	}
	return fn(ctx, req)
}

func (f *fakeService) FetchVisualization(ctx context.Context, id string) ([]types.RelatedArticle, error) {
	f.mu.Lock()
	f.vizIDs = append(f.vizIDs, id)
	fn := f.viz
	f.mu.Unlock()
	if fn == nil {
		return nil, nil
	}
	return fn(ctx, id)
}

func (f *fakeService) FetchTopicCloud(context.Context) (map[string][]string, error) {
	return f.topics, f.topicsErr
}

func (f *fakeService) FetchPDF(_ context.Context, u string) ([]byte, error) {
	f.mu.Lock()
	f.pdfURLs = append(f.pdfURLs, u)
	f.mu.Unlock()
	return f.pdf, f.pdfErr
}

func (f *fakeService) searchCalls() []querycodec.SearchRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]querycodec.SearchRequest(nil), f.searches...)
}

// recordingNav records pushed locations.
type recordingNav struct {
	pushed []string
}

func (n *recordingNav) Push(location string) error {
	n.pushed = append(n.pushed, location)
	return nil
}

func rows(ss ...types.ArticleSummary) func(context.Context, querycodec.SearchRequest) ([]types.ArticleSummary, error) {
	return func(context.Context, querycodec.SearchRequest) ([]types.ArticleSummary, error) {
		return ss, nil
	}
}

// scenarioC is a focal article from 2020 with related papers from 2015 and
// 2023.
func scenarioC() []types.RelatedArticle {
	return []types.RelatedArticle{
		{ArticleSummary: types.ArticleSummary{ID: "42", Title: "Focal", Year: 2020}},
		{ArticleSummary: types.ArticleSummary{ID: "7", Title: "Older", Year: 2015}, Coord: types.Coord{X: -1.5, Y: 2.25}, HasCoord: true},
		{ArticleSummary: types.ArticleSummary{ID: "9", Title: "Newer", Year: 2023}, Coord: types.Coord{X: 3, Y: 0.5}, HasCoord: true},
	}
}
