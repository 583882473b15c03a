// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package tui is the terminal front end of the explorer. It renders the
// view controllers of one Session as a bubbletea program: fetch tasks run as
// commands and their results are applied in Update.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pdiddy/doc-explorer/internal/navigation"
	"github.com/pdiddy/doc-explorer/internal/view"
)

const (
	defaultPlotWidth  = 60
	defaultPlotHeight = 14
)

// resultMsg carries a finished fetch back to the event loop.
type resultMsg struct {
	result view.Result
}

type pane int

const (
	paneList pane = iota
	panePlot
)

// Model is the bubbletea model of the explorer.
type Model struct {
	session *view.Session
	styles  Styles
	input   textinput.Model

	width  int
	height int

	cursor int  // row in the result list, related list, or term list
	point  int  // selected plot point
	pane   pane // article surface focus
	notice string
}

// New returns a model over session.
func New(session *view.Session) Model {
	ti := textinput.New()
	ti.Placeholder = "Search papers"
	ti.CharLimit = 256
	ti.Cursor.SetMode(cursor.CursorStatic)
	ti.Focus()
	ti.SetValue(session.Form.State().Value)

	return Model{
		session: session,
		styles:  DefaultStyles(),
		input:   ti,
	}
}

// Init issues the fetches of the starting location.
func (m Model) Init() tea.Cmd {
	return run(m.session.Start())
}

// run turns view tasks into commands that report back as resultMsg.
func run(tasks []view.Task) tea.Cmd {
	if len(tasks) == 0 {
		return nil
	}
	cmds := make([]tea.Cmd, len(tasks))
	for i, task := range tasks {
		cmds[i] = func() tea.Msg { return resultMsg{result: task()} }
	}
	return tea.Batch(cmds...)
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.input.Width = max(20, msg.Width-20)
		return m, nil

	case resultMsg:
		msg.result.Apply()
		m.clamp()
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.session.Close()
			return m, tea.Quit
		}
		switch m.session.Current().State.Path {
		case navigation.Search:
			return m.updateResults(msg)
		case navigation.Article:
			return m.updateArticle(msg)
		default:
			return m.updateHome(msg)
		}
	}
	return m, nil
}

func (m Model) updateHome(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	form := m.session.Form
	switch msg.String() {
	case "esc":
		m.session.Close()
		return m, tea.Quit
	case "enter":
		form.SetValue(m.input.Value())
		return m.follow(m.session.Submit())
	case "tab":
		form.CycleField()
		return m, nil
	case "up":
		m.cursor = max(0, m.cursor-1)
		return m, nil
	case "down":
		m.cursor = min(m.cursor+1, max(0, len(terms(form.Topics()))-1))
		return m, nil
	case "ctrl+t":
		ts := terms(form.Topics())
		if m.cursor < len(ts) {
			form.SetValue(m.input.Value())
			form.AppendTerm(ts[m.cursor])
			m.input.SetValue(form.State().Value)
			m.input.CursorEnd()
		}
		return m, nil
	case "ctrl+r":
		return m, run(m.session.Reload())
	case "ctrl+b":
		return m.follow(m.session.Back())
	case "ctrl+f":
		return m.follow(m.session.Forward())
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	form.SetValue(m.input.Value())
	return m, cmd
}

func (m Model) updateResults(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if next, cmd, ok := m.common(msg); ok {
		return next, cmd
	}
	switch msg.String() {
	case "up", "k":
		m.cursor = max(0, m.cursor-1)
	case "down", "j":
		m.cursor = min(m.cursor+1, max(0, len(m.session.Results.Model().Payload)-1))
	case "enter":
		return m.follow(m.session.SelectResult(m.cursor))
	}
	return m, nil
}

func (m Model) updateArticle(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if next, cmd, ok := m.common(msg); ok {
		return next, cmd
	}
	related := m.session.Article.Related().Payload
	switch msg.String() {
	case "tab":
		if m.pane == paneList {
			m.pane = panePlot
		} else {
			m.pane = paneList
		}
	case "p":
		return m, run(m.session.Article.InspectPDF())
	case "up", "k":
		m.cursor = max(0, m.cursor-1)
	case "down", "j":
		m.cursor = min(m.cursor+1, max(0, len(related.Items)-1))
	case "left", "h":
		m.point = max(0, m.point-1)
	case "right", "l":
		m.point = min(m.point+1, max(0, len(related.Points)-1))
	case "enter":
		if m.pane == panePlot {
			return m.follow(m.session.SelectPoint(m.point))
		}
		return m.follow(m.session.SelectRelated(m.cursor))
	}
	return m, nil
}

// common handles the keys shared by the result and article surfaces.
func (m Model) common(msg tea.KeyMsg) (Model, tea.Cmd, bool) {
	switch msg.String() {
	case "q":
		m.session.Close()
		return m, tea.Quit, true
	case "b":
		next, cmd := m.follow(m.session.Back())
		return next.(Model), cmd, true
	case "f":
		next, cmd := m.follow(m.session.Forward())
		return next.(Model), cmd, true
	case "r":
		return m, run(m.session.Reload()), true
	case "/":
		next, cmd := m.follow(m.session.Navigate("/"))
		return next.(Model), cmd, true
	}
	return m, nil, false
}

// follow applies the outcome of a navigation: cursors reset and the
// surface's fetches start. A failed navigation leaves the surface as it was
// and shows the error.
func (m Model) follow(tasks []view.Task, err error) (tea.Model, tea.Cmd) {
	if err != nil {
		m.notice = err.Error()
		return m, nil
	}
	m.notice = ""
	m.cursor, m.point, m.pane = 0, 0, paneList
	m.input.SetValue(m.session.Form.State().Value)
	m.input.CursorEnd()
	return m, run(tasks)
}

// clamp keeps the cursors inside lists that changed under them.
func (m *Model) clamp() {
	var n, points int
	switch m.session.Current().State.Path {
	case navigation.Search:
		n = len(m.session.Results.Model().Payload)
	case navigation.Article:
		rel := m.session.Article.Related().Payload
		n, points = len(rel.Items), len(rel.Points)
	default:
		n = len(terms(m.session.Form.Topics()))
	}
	m.cursor = min(m.cursor, max(0, n-1))
	m.point = min(m.point, max(0, points-1))
}

// terms flattens the topic cloud into the selectable term list.
func terms(cloud view.Model[[]view.Topic]) []string {
	var ts []string
	for _, tp := range cloud.Payload {
		ts = append(ts, tp.Terms...)
	}
	return ts
}

// View renders the active surface.
func (m Model) View() string {
	var sb strings.Builder
	sb.WriteString(m.styles.Header.Render("doc-explorer"))
	sb.WriteString("  ")
	sb.WriteString(m.styles.Muted.Render(m.session.Current().Location))
	sb.WriteString("\n\n")

	switch m.session.Current().State.Path {
	case navigation.Search:
		sb.WriteString(m.viewResults())
	case navigation.Article:
		sb.WriteString(m.viewArticle())
	default:
		sb.WriteString(m.viewHome())
	}

	if m.notice != "" {
		sb.WriteString("\n")
		sb.WriteString(m.styles.Error.Render(m.notice))
	}
	sb.WriteString("\n")
	sb.WriteString(m.styles.Help.Render(m.help()))
	return sb.String()
}

func (m Model) viewHome() string {
	form := m.session.Form.State()

	var sb strings.Builder
	fields := make([]string, 0, 3)
	for _, f := range []string{"title", "author", "topic"} {
		if f == form.Field {
			fields = append(fields, m.styles.Field.Render(f))
		} else {
			fields = append(fields, m.styles.Muted.Render(f))
		}
	}
	sb.WriteString(strings.Join(fields, "  "))
	sb.WriteString("\n")
	sb.WriteString(m.input.View())
	sb.WriteString("\n")
	if form.Error != "" {
		sb.WriteString(m.styles.Error.Render(form.Error))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(m.styles.Title.Render("Topics"))
	sb.WriteString("\n")
	cloud := m.session.Form.Topics()
	if line, ok := m.statusLine(cloud.Status, cloud.Reason, "No topics."); ok {
		sb.WriteString(line)
		return sb.String()
	}
	i := 0
	for _, tp := range cloud.Payload {
		words := make([]string, len(tp.Terms))
		for j, term := range tp.Terms {
			if i == m.cursor {
				words[j] = m.styles.Selected.Render(term)
			} else {
				words[j] = term
			}
			i++
		}
		fmt.Fprintf(&sb, "%3s  %s\n", tp.ID, strings.Join(words, " "))
	}
	return sb.String()
}

func (m Model) viewResults() string {
	res := m.session.Results.Model()
	if line, ok := m.statusLine(res.Status, res.Reason, "No results found."); ok {
		return line
	}

	var sb strings.Builder
	for i, item := range res.Payload {
		a := item.Article
		line := a.Title
		if a.Author != "" {
			line += m.styles.Muted.Render("  " + a.Author)
		}
		if a.Year != 0 {
			line += m.styles.Muted.Render(fmt.Sprintf(" (%d)", a.Year))
		}
		if i == m.cursor {
			sb.WriteString(m.styles.Selected.Render("> "))
		} else {
			sb.WriteString("  ")
		}
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	fmt.Fprintf(&sb, "\n%d results\n", len(res.Payload))
	return sb.String()
}

func (m Model) viewArticle() string {
	var sb strings.Builder

	reader := m.session.Article.Reader()
	if line, ok := m.statusLine(reader.Status, reader.Reason, "Article not found."); ok {
		sb.WriteString(line)
	} else {
		a := reader.Payload.Article
		sb.WriteString(m.styles.Title.Render(a.Title))
		sb.WriteString("\n")
		fmt.Fprintf(&sb, "%s", a.Author)
		if a.Year != 0 {
			fmt.Fprintf(&sb, " (%d)", a.Year)
		}
		sb.WriteString("\n")
		if reader.Payload.PDFURL != "" {
			sb.WriteString(m.styles.Muted.Render(reader.Payload.PDFURL))
			switch {
			case reader.Payload.PDF != nil:
				sb.WriteString("  " + reader.Payload.PDF.Summary())
			case reader.Payload.PDFError != "":
				sb.WriteString("  " + m.styles.Error.Render(reader.Payload.PDFError))
			}
			sb.WriteString("\n")
		}
	}

	sb.WriteString("\n")
	sb.WriteString(m.styles.Title.Render("Related papers"))
	sb.WriteString("\n")
	related := m.session.Article.Related()
	if line, ok := m.statusLine(related.Status, related.Reason, "No related papers."); ok {
		sb.WriteString(line)
		return sb.String()
	}

	var list strings.Builder
	for i, item := range related.Payload.Items {
		swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(item.Color)).Render("■")
		prefix := "  "
		if m.pane == paneList && i == m.cursor {
			prefix = m.styles.Selected.Render("> ")
		}
		fmt.Fprintf(&list, "%s%s %s", prefix, swatch, item.Article.Title)
		if item.Article.Year != 0 {
			list.WriteString(m.styles.Muted.Render(fmt.Sprintf(" (%d)", item.Article.Year)))
		}
		list.WriteString("\n")
	}

	selected := -1
	if m.pane == panePlot {
		selected = m.point
	}
	w, h := m.plotSize()
	plot := Scatter(related.Payload.Points, w, h, selected, m.styles.Plot)
	if m.pane == panePlot && m.point < len(related.Payload.Points) {
		plot += "\n" + related.Payload.Points[m.point].Article.Title
	}

	sb.WriteString(lipgloss.JoinVertical(lipgloss.Left, list.String(), plot))
	return sb.String()
}

func (m Model) plotSize() (int, int) {
	w, h := defaultPlotWidth, defaultPlotHeight
	if m.width > 0 {
		w = min(w, max(10, m.width-4))
	}
	return w, h
}

// statusLine renders models without a payload to show.
func (m Model) statusLine(s view.Status, reason, empty string) (string, bool) {
	switch s {
	case view.StatusReady:
		return "", false
	case view.StatusEmpty:
		return m.styles.Muted.Render(empty) + "\n", true
	case view.StatusError:
		return m.styles.Error.Render(reason) + "\n", true
	case view.StatusLoading:
		return m.styles.Muted.Render("Loading...") + "\n", true
	default:
		return "\n", true
	}
}

func (m Model) help() string {
	switch m.session.Current().State.Path {
	case navigation.Search:
		return "↑/↓ move • enter open • b/f back/forward • r reload • / search • q quit"
	case navigation.Article:
		return "↑/↓ related • tab list/plot • ←/→ points • enter open • p pdf • b/f back/forward • r reload • / search • q quit"
	default:
		return "enter search • tab field • ↑/↓ term • ctrl+t add term • ctrl+b/ctrl+f back/forward • esc quit"
	}
}
