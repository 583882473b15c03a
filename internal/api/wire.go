// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/pdiddy/doc-explorer/pkg/types"
)

// Document service JSON structures. Pointer fields distinguish "missing"
// from "empty" for required-field checks.
type wireArticle struct {
	ID             *flexString `json:"id"`
	PaperID        *flexString `json:"paper_id"`
	Title          *string     `json:"title"`
	Author         *string     `json:"author"`
	Year           *flexInt    `json:"year"`
	PDF            *string     `json:"pdf"`
	PDFURL         *string     `json:"pdf_url"`
	ProcessedCoord []float64   `json:"processed_coord"`
}

// flexInt accepts a JSON integer or a numeric string. Integral floats such as
// 2020.0 are accepted; fractional values are rejected.
type flexInt int

func (f *flexInt) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return fmt.Errorf("year %q is not a number", s)
		}
		*f = flexInt(n)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	if i, err := n.Int64(); err == nil {
		*f = flexInt(i)
		return nil
	}
	v, err := n.Float64()
	if err != nil {
		return err
	}
	if v != math.Trunc(v) || math.IsInf(v, 0) {
		return fmt.Errorf("year %s is not a whole number", n)
	}
	*f = flexInt(int(v))
	return nil
}

// flexString accepts a JSON string or number; identifiers arrive as both.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = flexString(n.String())
	return nil
}

func (w wireArticle) summary() types.ArticleSummary {
	a := types.ArticleSummary{
		Title:  deref(w.Title),
		Author: deref(w.Author),
	}
	switch {
	case w.PaperID != nil && *w.PaperID != "":
		a.ID = string(*w.PaperID)
	case w.ID != nil:
		a.ID = string(*w.ID)
	}
	if w.Year != nil {
		a.Year = int(*w.Year)
	}
	if w.PDFURL != nil && *w.PDFURL != "" {
		a.PDFURL = *w.PDFURL
	} else {
		a.PDFURL = deref(w.PDF)
	}
	return a
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
