// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package web

import (
	"math"

	"github.com/pdiddy/doc-explorer/internal/view"
	"github.com/pdiddy/doc-explorer/pkg/types"
)

const (
	plotWidth   = 640
	plotHeight  = 420
	plotMargin  = 24
	pointRadius = 7
)

// svgPoint is a plotted marker in SVG user units.
type svgPoint struct {
	X, Y  float64
	Color string
	Href  string
	Title string
	Year  int
}

// plotPoints scales points into the SVG viewport. Y grows upward on the
// plot and downward in SVG, so it is flipped.
func plotPoints(points []types.VisualizationPoint) []svgPoint {
	if len(points) == 0 {
		return nil
	}
	minX, maxX := points[0].Coord.X, points[0].Coord.X
	minY, maxY := points[0].Coord.Y, points[0].Coord.Y
	for _, p := range points[1:] {
		minX, maxX = math.Min(minX, p.Coord.X), math.Max(maxX, p.Coord.X)
		minY, maxY = math.Min(minY, p.Coord.Y), math.Max(maxY, p.Coord.Y)
	}

	out := make([]svgPoint, len(points))
	for i, p := range points {
		out[i] = svgPoint{
			X:     plotMargin + span(p.Coord.X, minX, maxX)*(plotWidth-2*plotMargin),
			Y:     plotHeight - plotMargin - span(p.Coord.Y, minY, maxY)*(plotHeight-2*plotMargin),
			Color: p.Color,
			Href:  view.LocationFor(p.Article),
			Title: p.Article.Title,
			Year:  p.Article.Year,
		}
	}
	return out
}

// span maps v in [lo, hi] onto [0, 1]; a degenerate range maps to 0.5.
func span(v, lo, hi float64) float64 {
	if hi == lo {
		return 0.5
	}
	return (v - lo) / (hi - lo)
}
