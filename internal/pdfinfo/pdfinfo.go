// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pdfinfo inspects a PDF byte stream fetched for the reader pane.
// Rendering is left to the viewer; this only validates the stream and
// reports what the reader pane shows next to the link.
package pdfinfo

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// ErrNotPDF is returned for streams without a PDF header.
var ErrNotPDF = errors.New("pdfinfo: stream is not a PDF")

// Info summarizes a PDF stream.
type Info struct {
	Pages int `json:"pages" yaml:"pages"`
	Bytes int `json:"bytes" yaml:"bytes"`
}

// Inspect validates data with pdfcpu and returns its page count.
func Inspect(data []byte) (Info, error) {
	if !bytes.HasPrefix(bytes.TrimLeft(data, "\x00\t\r\n "), []byte("%PDF-")) {
		return Info{}, ErrNotPDF
	}

	conf := model.NewDefaultConfiguration()
	ctx, err := api.ReadValidateAndOptimize(bytes.NewReader(data), conf)
	if err != nil {
		return Info{}, fmt.Errorf("pdfcpu read: %w", err)
	}

	return Info{Pages: ctx.PageCount, Bytes: len(data)}, nil
}

// Summary renders the one-line description shown in the reader pane.
func (i Info) Summary() string {
	unit := "pages"
	if i.Pages == 1 {
		unit = "page"
	}
	return fmt.Sprintf("%d %s, %s", i.Pages, unit, humanBytes(i.Bytes))
}

func humanBytes(n int) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}
