// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/pdiddy/doc-explorer/pkg/types"
)

const (
	pointGlyph    = "●"
	selectedGlyph = "◉"
	emptyGlyph    = " "
)

// plotGrid places points on a width×height character grid. Each cell holds
// the index of the last point drawn there, or -1. Y grows upward.
func plotGrid(points []types.VisualizationPoint, width, height int) [][]int {
	grid := make([][]int, height)
	for r := range grid {
		grid[r] = make([]int, width)
		for c := range grid[r] {
			grid[r][c] = -1
		}
	}
	if len(points) == 0 || width <= 0 || height <= 0 {
		return grid
	}

	minX, maxX := points[0].Coord.X, points[0].Coord.X
	minY, maxY := points[0].Coord.Y, points[0].Coord.Y
	for _, p := range points[1:] {
		minX, maxX = math.Min(minX, p.Coord.X), math.Max(maxX, p.Coord.X)
		minY, maxY = math.Min(minY, p.Coord.Y), math.Max(maxY, p.Coord.Y)
	}

	for i, p := range points {
		c := scaleTo(p.Coord.X, minX, maxX, width)
		r := height - 1 - scaleTo(p.Coord.Y, minY, maxY, height)
		grid[r][c] = i
	}
	return grid
}

// scaleTo maps v in [lo, hi] onto [0, n-1]. A degenerate range maps to the
// middle cell.
func scaleTo(v, lo, hi float64, n int) int {
	if hi == lo {
		return (n - 1) / 2
	}
	return int(math.Round((v - lo) / (hi - lo) * float64(n-1)))
}

// Scatter renders points in their marker colors. The selected point, if
// any, is drawn with a distinct glyph.
func Scatter(points []types.VisualizationPoint, width, height, selected int, frame lipgloss.Style) string {
	grid := plotGrid(points, width, height)

	var sb strings.Builder
	for r, row := range grid {
		for _, idx := range row {
			if idx < 0 {
				sb.WriteString(emptyGlyph)
				continue
			}
			glyph := pointGlyph
			if idx == selected {
				glyph = selectedGlyph
			}
			sb.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(points[idx].Color)).Render(glyph))
		}
		if r < len(grid)-1 {
			sb.WriteByte('\n')
		}
	}
	return frame.Render(sb.String())
}
