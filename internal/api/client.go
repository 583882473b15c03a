// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package api is the client for the document service: search,
// visualization, topic terms, and PDF streams. Every call is one
// request/response exchange. Failures come back as *NetworkError or
// *MalformedResponseError, never as panics.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/pdiddy/doc-explorer/internal/httputil"
	"github.com/pdiddy/doc-explorer/internal/querycodec"
	"github.com/pdiddy/doc-explorer/pkg/types"
)

// AllTopics is the topic id that asks /topicwords for every topic.
const AllTopics = "-1"

// Client talks to the document service rooted at BaseURL.
type Client struct {
	BaseURL   string
	HTTP      *http.Client
	UserAgent string
	Logger    *zap.Logger
}

// NewClient builds a client from configuration. A nil logger disables logging.
func NewClient(cfg types.APIConfig, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		BaseURL:   strings.TrimSuffix(cfg.BaseURL, "/"),
		HTTP:      &http.Client{Timeout: cfg.Timeout},
		UserAgent: cfg.UserAgent,
		Logger:    logger,
	}
}

// FetchSearch runs GET /search for req.
func (c *Client) FetchSearch(ctx context.Context, req querycodec.SearchRequest) ([]types.ArticleSummary, error) {
	const op = "search"
	u := c.BaseURL + "/search?" + req.Params().Encode()

	var rows []wireArticle
	if err := c.getJSON(ctx, op, u, &rows); err != nil {
		return nil, err
	}

	// Only title is required. Author and PDF location are shown when
	// present; a row without them still lists and links by id.
	results := make([]types.ArticleSummary, 0, len(rows))
	for i, row := range rows {
		if row.Title == nil {
			return nil, c.malformed(op, u, fmt.Sprintf("result %d has no title", i), nil)
		}
		results = append(results, row.summary())
	}
	return results, nil
}

// FetchVisualization runs GET /visualization/<id>. Row 0 of the result is
// the focal article, the rest its related set.
func (c *Client) FetchVisualization(ctx context.Context, articleID string) ([]types.RelatedArticle, error) {
	const op = "visualization"
	u := c.BaseURL + "/visualization/" + url.PathEscape(articleID)

	var rows []wireArticle
	if err := c.getJSON(ctx, op, u, &rows); err != nil {
		return nil, err
	}

	out := make([]types.RelatedArticle, 0, len(rows))
	for i, row := range rows {
		if row.Title == nil {
			return nil, c.malformed(op, u, fmt.Sprintf("row %d has no title", i), nil)
		}
		if row.Year == nil {
			return nil, c.malformed(op, u, fmt.Sprintf("row %d has no year", i), nil)
		}
		ra := types.RelatedArticle{ArticleSummary: row.summary()}
		switch {
		case len(row.ProcessedCoord) == 2:
			ra.Coord = types.Coord{X: row.ProcessedCoord[0], Y: row.ProcessedCoord[1]}
			ra.HasCoord = true
		case len(row.ProcessedCoord) != 0 || i > 0:
			return nil, c.malformed(op, u, fmt.Sprintf("row %d processed_coord must be [x,y]", i), nil)
		}
		out = append(out, ra)
	}
	return out, nil
}

// FetchTopicTerms runs GET /topicwords/<topicID> and returns that topic's
// terms. The service may answer with a bare list or with a mapping of
// topic id to terms.
func (c *Client) FetchTopicTerms(ctx context.Context, topicID string) ([]string, error) {
	const op = "topicwords"
	u := c.BaseURL + "/topicwords/" + url.PathEscape(topicID)

	var raw json.RawMessage
	if err := c.getJSON(ctx, op, u, &raw); err != nil {
		return nil, err
	}

	var terms []string
	if err := json.Unmarshal(raw, &terms); err == nil {
		return terms, nil
	}
	var byTopic map[string][]string
	if err := json.Unmarshal(raw, &byTopic); err != nil {
		return nil, c.malformed(op, u, "expected a list of terms or a topic mapping", err)
	}
	terms, ok := byTopic[topicID]
	if !ok {
		return nil, c.malformed(op, u, fmt.Sprintf("topic %q missing from mapping", topicID), nil)
	}
	return terms, nil
}

// FetchTopicCloud runs GET /topicwords/-1 and returns every topic's terms.
func (c *Client) FetchTopicCloud(ctx context.Context) (map[string][]string, error) {
	const op = "topicwords"
	u := c.BaseURL + "/topicwords/" + AllTopics

	var byTopic map[string][]string
	if err := c.getJSON(ctx, op, u, &byTopic); err != nil {
		return nil, err
	}
	if byTopic == nil {
		return nil, c.malformed(op, u, "expected a topic mapping", nil)
	}
	return byTopic, nil
}

// PDFLocation returns the URL of the PDF stream for a stored path.
func (c *Client) PDFLocation(path string) string {
	return c.BaseURL + "/article/pdf_by_path/" + url.PathEscape(path)
}

// FetchPDF downloads the PDF stream for a stored path. A pdfURL that is
// already absolute is fetched as-is. A JSON or HTML answer is an error
// document from the service, not a PDF, and is reported as malformed.
func (c *Client) FetchPDF(ctx context.Context, pathOrURL string) ([]byte, error) {
	const op = "pdf"
	u := pathOrURL
	if !strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://") {
		u = c.PDFLocation(pathOrURL)
	}
	resp, err := c.get(ctx, op, u)
	if err != nil {
		return nil, err
	}
	if resp.ContentType != "" {
		mt, _, err := mime.ParseMediaType(resp.ContentType)
		if err != nil {
			return nil, c.malformed(op, u, fmt.Sprintf("content type %q", resp.ContentType), err)
		}
		if mt == "application/json" || mt == "text/html" {
			return nil, c.malformed(op, u, fmt.Sprintf("expected a PDF stream, got %s", mt), nil)
		}
	}
	return resp.Body, nil
}

func (c *Client) get(ctx context.Context, op, u string) (*httputil.Response, error) {
	resp, err := httputil.Get(ctx, c.HTTP, u, c.UserAgent)
	if err != nil {
		nerr := &NetworkError{Op: op, URL: u, Err: err}
		var se *httputil.StatusError
		if errors.As(err, &se) {
			nerr.StatusCode = se.StatusCode
		}
		if ctx.Err() == nil {
			c.Logger.Warn("document service request failed",
				zap.String("op", op), zap.String("url", u), zap.Error(err))
		}
		return nil, nerr
	}
	c.Logger.Debug("document service response",
		zap.String("op", op),
		zap.String("url", u),
		zap.String("request_id", resp.RequestID),
		zap.Int("bytes", len(resp.Body)))
	return resp, nil
}

func (c *Client) getJSON(ctx context.Context, op, u string, v any) error {
	resp, err := c.get(ctx, op, u)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(resp.Body, v); err != nil {
		return c.malformed(op, u, "invalid JSON", err)
	}
	return nil
}

func (c *Client) malformed(op, u, detail string, err error) error {
	fields := []zap.Field{zap.String("op", op), zap.String("url", u), zap.String("detail", detail)}
	if err != nil {
		fields = append(fields, zap.Error(err))
	}
	c.Logger.Warn("malformed document service response", fields...)
	return &MalformedResponseError{Op: op, URL: u, Detail: detail, Err: err}
}
