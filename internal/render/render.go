// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render writes view models for the one-shot commands: aligned
// tables for people, JSON or YAML for scripts.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/doc-explorer/internal/view"
)

// Format selects an output encoding.
type Format int

const (
	Table Format = iota
	JSON
	YAML
)

// FormatFor picks the format from the --json and --yaml flags.
func FormatFor(asJSON, asYAML bool) (Format, error) {
	switch {
	case asJSON && asYAML:
		return Table, fmt.Errorf("--json and --yaml are mutually exclusive")
	case asJSON:
		return JSON, nil
	case asYAML:
		return YAML, nil
	default:
		return Table, nil
	}
}

// WriteJSON writes v as indented JSON.
func WriteJSON(v any, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// WriteYAML writes v as a YAML document.
func WriteYAML(v any, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	defer enc.Close()
	return enc.Encode(v)
}

// Write encodes v in a machine format. Table output is model specific; use
// Results, Article or Topics for it.
func Write(f Format, v any, w io.Writer) error {
	switch f {
	case JSON:
		return WriteJSON(v, w)
	case YAML:
		return WriteYAML(v, w)
	default:
		return fmt.Errorf("table output needs a typed writer")
	}
}

// Results writes the result list as a table.
func Results(m view.Model[[]view.ResultItem], w io.Writer) {
	if statusLine(m.Status, m.Reason, "No results found.", w) {
		return
	}

	fmt.Fprintf(w, "%-4s  %-56s  %-24s  %-4s  %s\n", "#", "Title", "Author", "Year", "ID")
	fmt.Fprintln(w, strings.Repeat("-", 100))
	for i, item := range m.Payload {
		a := item.Article
		fmt.Fprintf(w, "%-4d  %-56s  %-24s  %-4s  %s\n",
			i+1, truncate(a.Title, 56), truncate(a.Author, 24), year(a.Year), a.ID)
	}
	fmt.Fprintf(w, "\n%d results\n", len(m.Payload))
}

// Article writes the reader pane followed by the related list.
func Article(reader view.Model[view.ReaderPane], related view.Model[view.RelatedPane], w io.Writer) {
	if !statusLine(reader.Status, reader.Reason, "Article not found.", w) {
		a := reader.Payload.Article
		fmt.Fprintf(w, "Title:   %s\n", a.Title)
		fmt.Fprintf(w, "Author:  %s\n", a.Author)
		if a.Year != 0 {
			fmt.Fprintf(w, "Year:    %d\n", a.Year)
		}
		if a.ID != "" {
			fmt.Fprintf(w, "ID:      %s\n", a.ID)
		}
		if reader.Payload.PDFURL != "" {
			fmt.Fprintf(w, "PDF:     %s\n", reader.Payload.PDFURL)
		}
		switch {
		case reader.Payload.PDF != nil:
			fmt.Fprintf(w, "         %s\n", reader.Payload.PDF.Summary())
		case reader.Payload.PDFError != "":
			fmt.Fprintf(w, "         %s\n", reader.Payload.PDFError)
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Related papers")
	if statusLine(related.Status, related.Reason, "No related papers.", w) {
		return
	}
	fmt.Fprintf(w, "%-7s  %-56s  %-24s  %-4s  %s\n", "Color", "Title", "Author", "Year", "ID")
	fmt.Fprintln(w, strings.Repeat("-", 100))
	for _, item := range related.Payload.Items {
		a := item.Article
		fmt.Fprintf(w, "%-7s  %-56s  %-24s  %-4s  %s\n",
			item.Color, truncate(a.Title, 56), truncate(a.Author, 24), year(a.Year), a.ID)
	}
	fmt.Fprintf(w, "\n%d related, %d plotted\n", len(related.Payload.Items), len(related.Payload.Points))
}

// Topics writes the topic cloud, one topic per line.
func Topics(m view.Model[[]view.Topic], w io.Writer) {
	if statusLine(m.Status, m.Reason, "No topics.", w) {
		return
	}
	for _, tp := range m.Payload {
		fmt.Fprintf(w, "%4s  %s\n", tp.ID, strings.Join(tp.Terms, " "))
	}
}

// statusLine writes the message for a model that has no payload to show and
// reports whether it did.
func statusLine(s view.Status, reason, empty string, w io.Writer) bool {
	switch s {
	case view.StatusReady:
		return false
	case view.StatusEmpty:
		fmt.Fprintln(w, empty)
	case view.StatusError:
		fmt.Fprintf(w, "Error: %s\n", reason)
	case view.StatusLoading:
		fmt.Fprintln(w, "Loading...")
	default:
		fmt.Fprintln(w, "Nothing to show.")
	}
	return true
}

func year(y int) string {
	if y == 0 {
		return ""
	}
	return fmt.Sprintf("%d", y)
}

// truncate shortens s to max runes, marking the cut with "...".
func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	r := []rune(s)
	return string(r[:max-3]) + "..."
}
