// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/doc-explorer/internal/navigation"
	"github.com/pdiddy/doc-explorer/internal/querycodec"
	"github.com/pdiddy/doc-explorer/internal/view"
	"github.com/pdiddy/doc-explorer/pkg/types"
)

type stubService struct {
	searches []querycodec.SearchRequest
}

func (s *stubService) FetchSearch(_ context.Context, req querycodec.SearchRequest) ([]types.ArticleSummary, error) {
	s.searches = append(s.searches, req)
	if req.Field == querycodec.FieldID {
		return []types.ArticleSummary{{ID: req.Key, Title: "Focal", Year: 2020}}, nil
	}
	return []types.ArticleSummary{
		{ID: "42", Title: "Focal", Author: "A", Year: 2020},
		{ID: "7", Title: "Older", Author: "B", Year: 2015},
	}, nil
}

func (s *stubService) FetchVisualization(context.Context, string) ([]types.RelatedArticle, error) {
	return []types.RelatedArticle{
		{ArticleSummary: types.ArticleSummary{ID: "42", Title: "Focal", Year: 2020}},
		{ArticleSummary: types.ArticleSummary{ID: "7", Title: "Older", Year: 2015}, Coord: types.Coord{X: 0, Y: 0}, HasCoord: true},
		{ArticleSummary: types.ArticleSummary{ID: "9", Title: "Newer", Year: 2023}, Coord: types.Coord{X: 1, Y: 1}, HasCoord: true},
	}, nil
}

func (s *stubService) FetchTopicCloud(context.Context) (map[string][]string, error) {
	return map[string][]string{"0": {"neural", "network"}, "1": {"graph"}}, nil
}

func (s *stubService) FetchPDF(context.Context, string) ([]byte, error) {
	return nil, nil
}

func newModel(t *testing.T, svc *stubService) Model {
	t.Helper()
	s, err := view.NewSession(context.Background(), "/", svc, nil)
	require.NoError(t, err)
	t.Cleanup(s.Close)
	m := New(s)
	return settle(m, m.Init())
}

// settle runs cmd and feeds fetch results back through Update until no
// work is left. Other messages are dropped.
func settle(m Model, cmd tea.Cmd) Model {
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		switch msg := c().(type) {
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case resultMsg:
			next, more := m.Update(msg)
			m = next.(Model)
			queue = append(queue, more)
		}
	}
	return m
}

func press(m Model, keys ...string) Model {
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "tab":
			msg = tea.KeyMsg{Type: tea.KeyTab}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		case "ctrl+t":
			msg = tea.KeyMsg{Type: tea.KeyCtrlT}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		next, cmd := m.Update(msg)
		m = settle(next.(Model), cmd)
	}
	return m
}

func TestHomeShowsTopics(t *testing.T) {
	m := newModel(t, &stubService{})
	out := m.View()
	assert.Contains(t, out, "Topics")
	assert.Contains(t, out, "network")
	assert.Contains(t, out, "graph")
}

func TestSubmitSearchAndOpenArticle(t *testing.T) {
	svc := &stubService{}
	m := newModel(t, svc)

	m = press(m, "deep learning", "enter")
	assert.Equal(t, "/search/deep%20learning?title=deep%20learning", m.session.Current().Location)
	assert.Contains(t, m.View(), "Older")
	assert.Equal(t, []querycodec.SearchRequest{querycodec.ExactTitle("deep learning")}, svc.searches)

	m = press(m, "j", "enter")
	assert.Equal(t, "/article/7", m.session.Current().Location)
	out := m.View()
	assert.Contains(t, out, "Related papers")
	assert.Contains(t, out, "Newer")

	m = press(m, "b")
	assert.Equal(t, navigation.Search, m.session.Current().State.Path)
}

func TestBlankSubmitShowsError(t *testing.T) {
	m := newModel(t, &stubService{})
	m = press(m, "enter")
	assert.Equal(t, "/", m.session.Current().Location)
	assert.Contains(t, m.View(), "Please enter a valid search query.")
}

func TestAppendTopicTerm(t *testing.T) {
	m := newModel(t, &stubService{})
	m = press(m, "down", "ctrl+t")

	st := m.session.Form.State()
	assert.Equal(t, "topic", st.Field)
	assert.Equal(t, "network", st.Value)
	assert.Equal(t, "network", m.input.Value())
}

func TestTabCyclesField(t *testing.T) {
	m := newModel(t, &stubService{})
	m = press(m, "tab")
	assert.Equal(t, "author", m.session.Form.State().Field)
}

func TestPlotPointNavigation(t *testing.T) {
	m := newModel(t, &stubService{})
	tasks, err := m.session.Navigate("/article/42")
	require.NoError(t, err)
	m = settle(m, run(tasks))

	m = press(m, "tab", "l", "enter")
	assert.Equal(t, "/article/9", m.session.Current().Location)
}

func TestQuitKeys(t *testing.T) {
	m := newModel(t, &stubService{})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestPlotGrid(t *testing.T) {
	points := []types.VisualizationPoint{
		{Coord: types.Coord{X: -1, Y: -1}},
		{Coord: types.Coord{X: 1, Y: 1}},
		{Coord: types.Coord{X: 0, Y: 0}},
	}
	grid := plotGrid(points, 5, 3)

	assert.Equal(t, 0, grid[2][0], "min x, min y at bottom left")
	assert.Equal(t, 1, grid[0][4], "max x, max y at top right")
	assert.Equal(t, 2, grid[1][2])
	assert.Equal(t, -1, grid[0][0])
}

func TestPlotGridSinglePoint(t *testing.T) {
	grid := plotGrid([]types.VisualizationPoint{{Coord: types.Coord{X: 3, Y: 3}}}, 5, 5)
	assert.Equal(t, 0, grid[2][2])
}

func TestScatterRendersGlyphs(t *testing.T) {
	points := []types.VisualizationPoint{
		{Coord: types.Coord{X: 0, Y: 0}, Color: "#ff5f5f"},
		{Coord: types.Coord{X: 1, Y: 1}, Color: "#9fff9f"},
	}
	out := Scatter(points, 4, 2, 1, lipgloss.NewStyle())
	assert.Equal(t, 1, strings.Count(out, pointGlyph))
	assert.Equal(t, 1, strings.Count(out, selectedGlyph))
	assert.Len(t, strings.Split(out, "\n"), 2)
}
