// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package colormap computes the year-relative marker colors of the related
// paper scatter plot. Colors start from white for the focal article's year
// and darken with temporal distance: newer papers lose red and blue, older
// papers lose green and blue.
package colormap

import (
	"errors"
	"fmt"

	"github.com/pdiddy/doc-explorer/pkg/types"
)

const (
	white = 0xFFFFFF

	// minRange floors the year range so that a set clustered on the focal
	// year still spreads over readable shades.
	minRange = 8
)

// ErrEmptySet is returned when asked to color an empty related set.
var ErrEmptySet = errors.New("colormap: related set is empty")

// Color is a 24-bit RGB value in [0x000000, 0xFFFFFF].
type Color uint32

// Hex renders the color as "#rrggbb".
func (c Color) Hex() string {
	return fmt.Sprintf("#%06x", uint32(c))
}

// Scale describes the year spread of a related set.
type Scale struct {
	Base  int // year of the focal (first) item
	Min   int
	Max   int
	Range int
	Step  int
}

// NewScale measures years. The first year is the focal article's.
func NewScale(years []int) (Scale, error) {
	if len(years) == 0 {
		return Scale{}, ErrEmptySet
	}
	s := Scale{Base: years[0], Min: years[0], Max: years[0]}
	for _, y := range years[1:] {
		s.Min = min(s.Min, y)
		s.Max = max(s.Max, y)
	}
	s.Range = max(s.Max-s.Base, s.Base-s.Min, minRange)
	s.Step = 256 / s.Range
	return s, nil
}

// Color returns the marker color for a year on this scale.
//
// The two branches scale different channels: a later year subtracts from
// blue and from red (step*65536), an earlier year from blue and from green
// (step*256). The asymmetry is kept as-is for compatibility with existing
// plots.
func (s Scale) Color(year int) Color {
	relY := year - s.Base
	c := white
	if relY >= 0 {
		c -= s.Step * relY
		c -= s.Step * 65536 * relY
	} else {
		c += s.Step * relY * 256
		c += s.Step * relY
	}
	return clamp(c)
}

// Encode returns one color per year, in order.
func Encode(years []int) ([]Color, error) {
	s, err := NewScale(years)
	if err != nil {
		return nil, err
	}
	colors := make([]Color, len(years))
	for i, y := range years {
		colors[i] = s.Color(y)
	}
	return colors, nil
}

// Points colors a visualization response. Row 0 is the focal article; rows
// without a projected position are colored but left off the plot.
func Points(rows []types.RelatedArticle) ([]types.VisualizationPoint, error) {
	years := make([]int, len(rows))
	for i, r := range rows {
		years[i] = r.Year
	}
	colors, err := Encode(years)
	if err != nil {
		return nil, err
	}

	points := make([]types.VisualizationPoint, 0, len(rows))
	for i, r := range rows {
		if !r.HasCoord {
			continue
		}
		points = append(points, types.VisualizationPoint{
			Article: r.ArticleSummary,
			Coord:   r.Coord,
			Color:   colors[i].Hex(),
		})
	}
	return points, nil
}

func clamp(c int) Color {
	if c < 0 {
		return 0
	}
	if c > white {
		return white
	}
	return Color(c)
}
