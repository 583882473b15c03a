// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package querycodec converts between navigation state and typed requests
// for the document service. It is pure: no I/O, no logging.
package querycodec

import (
	"net/url"
	"strings"

	"github.com/pdiddy/doc-explorer/internal/navigation"
)

// Mode is the search mode sent to the service.
type Mode string

const (
	ModeExact    Mode = "exact"
	ModeRelated  Mode = "related"
	ModeByAuthor Mode = "byAuthor"
	ModeByTopic  Mode = "byTopic"
)

// Field is the wire parameter that carries a request's key.
type Field string

const (
	FieldTitle  Field = "title"
	FieldAuthor Field = "author"
	FieldTopic  Field = "topic"
	FieldID     Field = "id"
)

// SearchFields lists the fields a user may search by, in precedence order.
var SearchFields = []Field{FieldTitle, FieldAuthor, FieldTopic}

// Request is the result of decoding a navigation state: a SearchRequest,
// a VisualizationRequest, or Invalid.
type Request interface {
	isRequest()
}

// SearchRequest asks the search endpoint for articles. Build it with the
// constructors so Mode and Field stay consistent.
type SearchRequest struct {
	Mode  Mode
	Key   string
	Field Field
}

// ExactTitle returns an exact title search.
func ExactTitle(title string) SearchRequest {
	return SearchRequest{Mode: ModeExact, Key: title, Field: FieldTitle}
}

// ExactID returns an exact lookup by article identifier.
func ExactID(id string) SearchRequest {
	return SearchRequest{Mode: ModeExact, Key: id, Field: FieldID}
}

// ByAuthor returns an author search.
func ByAuthor(author string) SearchRequest {
	return SearchRequest{Mode: ModeByAuthor, Key: author, Field: FieldAuthor}
}

// ByTopic returns a topic search.
func ByTopic(topic string) SearchRequest {
	return SearchRequest{Mode: ModeByTopic, Key: topic, Field: FieldTopic}
}

// Related returns the related-set search for an article identifier.
func Related(id string) SearchRequest {
	return SearchRequest{Mode: ModeRelated, Key: id, Field: FieldID}
}

// Params renders the query string parameters for GET /search.
// Topic searches carry no mode parameter.
func (r SearchRequest) Params() url.Values {
	v := url.Values{string(r.Field): {r.Key}}
	switch r.Mode {
	case ModeExact, ModeByAuthor:
		v.Set("mode", "exact")
	case ModeRelated:
		v.Set("mode", "related")
	}
	return v
}

// VisualizationRequest opens an article: the exact match for the reader
// pane and the related set for the list and plot, both keyed by ArticleID.
type VisualizationRequest struct {
	ArticleID string

	// ByTitle marks the title fallback: ArticleID holds a title because the
	// result row had no identifier.
	ByTitle bool
}

// Exact returns the reader-pane request.
func (r VisualizationRequest) Exact() SearchRequest {
	if r.ByTitle {
		return ExactTitle(r.ArticleID)
	}
	return ExactID(r.ArticleID)
}

// Related returns the related-set request.
func (r VisualizationRequest) Related() SearchRequest {
	return Related(r.ArticleID)
}

// Invalid is a navigation state that maps to no request.
type Invalid struct {
	Reason string
}

func (SearchRequest) isRequest()        {}
func (VisualizationRequest) isRequest() {}
func (Invalid) isRequest()              {}

// Decode derives the request for a navigation state. It never fails: states
// without a usable request decode to Invalid.
func Decode(st navigation.State) Request {
	switch st.Path {
	case navigation.Search:
		if v := nonBlank(st.Param(string(FieldTitle))); v != "" {
			return ExactTitle(v)
		}
		if v := nonBlank(st.Param(string(FieldAuthor))); v != "" {
			return ByAuthor(v)
		}
		if v := nonBlank(st.Param(string(FieldTopic))); v != "" {
			return ByTopic(v)
		}
		if v := nonBlank(st.Param(navigation.ParamQuery)); v != "" {
			return ExactTitle(v)
		}
		return Invalid{Reason: "search location has no title, author, or topic"}
	case navigation.Article:
		id := st.Param(navigation.ParamID)
		if strings.TrimSpace(id) == "" {
			return Invalid{Reason: "article location has no identifier"}
		}
		return VisualizationRequest{ArticleID: id, ByTitle: st.Param("by") == "title"}
	default:
		return Invalid{Reason: "home has no request"}
	}
}

// Encode builds the result location for a submitted search. The value is
// carried both in the path segment and in the field parameter so that
// decoding the location reproduces the submitted request. For titles the
// parameter is redundant: the bare path /search/<value> decodes to the same
// exact title search.
func Encode(field, value string) (string, error) {
	if !isSearchField(field) {
		return "", &ConfigurationError{Field: field}
	}
	if strings.TrimSpace(value) == "" {
		return "", &ValidationError{Field: field, Message: "Please enter a valid search query."}
	}
	return "/search/" + url.PathEscape(value) + "?" + field + "=" + queryEscape(value), nil
}

// ArticleLocation returns the article path for an identifier.
func ArticleLocation(id string) string {
	return "/article/" + url.PathEscape(id)
}

// ArticleLocationByTitle returns the title-fallback article path.
func ArticleLocationByTitle(title string) string {
	return ArticleLocation(title) + "?by=title"
}

func isSearchField(field string) bool {
	for _, f := range SearchFields {
		if string(f) == field {
			return true
		}
	}
	return false
}

func nonBlank(s string) string {
	if strings.TrimSpace(s) == "" {
		return ""
	}
	return s
}

// queryEscape escapes a query value with %20 for spaces, matching the path
// segment encoding.
func queryEscape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
