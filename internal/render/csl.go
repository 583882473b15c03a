// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"io"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/doc-explorer/pkg/types"
)

// CSLItem is a bibliographic entry in CSL (Citation Style Language) form.
// Field names follow the CSL-YAML schema so output is consumable by Pandoc
// and reference managers.
type CSLItem struct {
	ID     string    `yaml:"id"`
	Type   string    `yaml:"type"`
	Title  string    `yaml:"title"`
	Author []CSLName `yaml:"author,omitempty"`
	Issued *CSLDate  `yaml:"issued,omitempty"`
	URL    string    `yaml:"URL,omitempty"`
}

// CSLName is a person's name in CSL form.
type CSLName struct {
	Family  string `yaml:"family,omitempty"`
	Given   string `yaml:"given,omitempty"`
	Literal string `yaml:"literal,omitempty"`
}

// CSLDate is a date in CSL date-parts form.
type CSLDate struct {
	DateParts [][]int `yaml:"date-parts"`
}

// WriteCSL writes articles as a CSL-YAML list.
func WriteCSL(articles []types.ArticleSummary, w io.Writer) error {
	items := make([]CSLItem, len(articles))
	for i, a := range articles {
		items[i] = toCSLItem(a)
	}
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(items)
}

func toCSLItem(a types.ArticleSummary) CSLItem {
	item := CSLItem{
		ID:    a.Key(),
		Type:  "article",
		Title: a.Title,
		URL:   a.PDFURL,
	}
	for _, name := range splitAuthors(a.Author) {
		item.Author = append(item.Author, parseAuthorName(name))
	}
	if a.Year != 0 {
		item.Issued = &CSLDate{DateParts: [][]int{{a.Year}}}
	}
	return item
}

// splitAuthors splits an author line on commas, semicolons and " and ".
func splitAuthors(line string) []string {
	line = strings.ReplaceAll(line, " and ", ",")
	parts := strings.FieldsFunc(line, func(r rune) bool { return r == ',' || r == ';' })
	names := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			names = append(names, p)
		}
	}
	return names
}

// parseAuthorName splits a full name on the last space: everything before is
// given, the last token is family. Single-token names use the literal field.
func parseAuthorName(name string) CSLName {
	name = strings.TrimSpace(name)
	if name == "" {
		return CSLName{}
	}
	idx := strings.LastIndex(name, " ")
	if idx < 0 {
		return CSLName{Literal: name}
	}
	return CSLName{
		Given:  name[:idx],
		Family: name[idx+1:],
	}
}
