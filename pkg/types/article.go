// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the document explorer:
// article summaries returned by the search service, visualization rows for
// the related-paper neighborhood, and the derived plot points.
package types

// ArticleSummary is one paper as returned by the search endpoints.
// Summaries are immutable and identified by ID, or by Title when the
// service did not supply an identifier.
type ArticleSummary struct {
	// ID is the opaque paper identifier (paper_id or id on the wire).
	ID string `json:"id,omitempty" yaml:"id,omitempty"`

	// Title is the paper title.
	Title string `json:"title" yaml:"title"`

	// Author is the author line as the service renders it.
	Author string `json:"author" yaml:"author"`

	// Year is the publication year; zero when unknown.
	Year int `json:"year,omitempty" yaml:"year,omitempty"`

	// PDFURL locates the paper's PDF (pdf_url or pdf on the wire).
	PDFURL string `json:"pdf_url,omitempty" yaml:"pdf_url,omitempty"`
}

// Key returns the identifier used for article navigation: the ID when
// present, otherwise the title.
func (a ArticleSummary) Key() string {
	if a.ID != "" {
		return a.ID
	}
	return a.Title
}

// Coord is a point in the 2D projection of the related-paper space.
type Coord struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// RelatedArticle is one row of a visualization response. Row 0 is the
// focal article; the remaining rows are its related set.
type RelatedArticle struct {
	ArticleSummary `yaml:",inline"`

	// Coord is the projected position (processed_coord on the wire).
	Coord Coord `json:"coord" yaml:"coord"`

	// HasCoord reports whether the service sent a projected position.
	// The focal row may omit it.
	HasCoord bool `json:"has_coord" yaml:"has_coord"`
}

// VisualizationPoint is a related article placed on the scatter plot with
// its year-relative marker color. Points live for one article view.
type VisualizationPoint struct {
	Article ArticleSummary `json:"article" yaml:"article"`
	Coord   Coord          `json:"coord" yaml:"coord"`

	// Color is a 6-digit hex color prefixed with '#'.
	Color string `json:"color" yaml:"color"`
}
