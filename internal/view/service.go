// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package view

import (
	"context"

	"github.com/pdiddy/doc-explorer/internal/querycodec"
	"github.com/pdiddy/doc-explorer/pkg/types"
)

// Searcher runs search requests. *api.Client implements it.
type Searcher interface {
	FetchSearch(ctx context.Context, req querycodec.SearchRequest) ([]types.ArticleSummary, error)
}

// Visualizer fetches an article's related-paper neighborhood.
type Visualizer interface {
	FetchVisualization(ctx context.Context, articleID string) ([]types.RelatedArticle, error)
}

// TopicSource fetches the topic term cloud.
type TopicSource interface {
	FetchTopicCloud(ctx context.Context) (map[string][]string, error)
}

// PDFSource downloads a PDF stream.
type PDFSource interface {
	FetchPDF(ctx context.Context, pathOrURL string) ([]byte, error)
}

// Service is everything a Session needs from the document service.
type Service interface {
	Searcher
	Visualizer
	TopicSource
	PDFSource
}

// Navigator performs navigation transitions. *navigation.History
// implements it.
type Navigator interface {
	Push(location string) error
}

// LocationFor returns the article location for a summary: by identifier,
// or by title when the service sent none.
func LocationFor(a types.ArticleSummary) string {
	if a.ID != "" {
		return querycodec.ArticleLocation(a.ID)
	}
	return querycodec.ArticleLocationByTitle(a.Title)
}
