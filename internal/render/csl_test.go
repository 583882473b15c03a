// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/doc-explorer/pkg/types"
)

func TestToCSLItem(t *testing.T) {
	item := toCSLItem(types.ArticleSummary{
		ID:     "42",
		Title:  "Attention Is All You Need",
		Author: "Ashish Vaswani, Noam Shazeer and Niki Parmar",
		Year:   2017,
		PDFURL: "/pdfs/attention.pdf",
	})

	assert.Equal(t, "42", item.ID)
	assert.Equal(t, "article", item.Type)
	assert.Equal(t, "/pdfs/attention.pdf", item.URL)
	assert.Equal(t, []CSLName{
		{Given: "Ashish", Family: "Vaswani"},
		{Given: "Noam", Family: "Shazeer"},
		{Given: "Niki", Family: "Parmar"},
	}, item.Author)
	require.NotNil(t, item.Issued)
	assert.Equal(t, [][]int{{2017}}, item.Issued.DateParts)
}

func TestToCSLItemTitleKeyAndNoYear(t *testing.T) {
	item := toCSLItem(types.ArticleSummary{Title: "No Id Paper", Author: "Plato"})
	assert.Equal(t, "No Id Paper", item.ID)
	assert.Nil(t, item.Issued)
	assert.Equal(t, []CSLName{{Literal: "Plato"}}, item.Author)
}

func TestParseAuthorName(t *testing.T) {
	tests := []struct {
		in   string
		want CSLName
	}{
		{"", CSLName{}},
		{"Plato", CSLName{Literal: "Plato"}},
		{"Yann Le Cun", CSLName{Given: "Yann Le", Family: "Cun"}},
		{"  Geoffrey Hinton ", CSLName{Given: "Geoffrey", Family: "Hinton"}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, parseAuthorName(tt.in), tt.in)
	}
}

func TestWriteCSL(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSL([]types.ArticleSummary{
		{ID: "1", Title: "A", Author: "X Y", Year: 2020},
		{ID: "2", Title: "B"},
	}, &buf))

	var items []map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &items))
	require.Len(t, items, 2)
	assert.Equal(t, "A", items[0]["title"])
	assert.Contains(t, items[0], "issued")
	assert.NotContains(t, items[1], "author")
}
