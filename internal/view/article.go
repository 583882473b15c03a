// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package view

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/pdiddy/doc-explorer/internal/colormap"
	"github.com/pdiddy/doc-explorer/internal/navigation"
	"github.com/pdiddy/doc-explorer/internal/pdfinfo"
	"github.com/pdiddy/doc-explorer/internal/querycodec"
	"github.com/pdiddy/doc-explorer/pkg/types"
)

// ReaderPane is the payload of the reader: the exact match for the article.
type ReaderPane struct {
	Article types.ArticleSummary `json:"article" yaml:"article"`
	PDFURL  string               `json:"pdf_url,omitempty" yaml:"pdf_url,omitempty"`

	// PDF is filled in by InspectPDF.
	PDF      *pdfinfo.Info `json:"pdf,omitempty" yaml:"pdf,omitempty"`
	PDFError string        `json:"pdf_error,omitempty" yaml:"pdf_error,omitempty"`
}

// RelatedItem is a related article with its marker color and location.
type RelatedItem struct {
	Article  types.ArticleSummary `json:"article" yaml:"article"`
	Color    string               `json:"color" yaml:"color"`
	Location string               `json:"location" yaml:"location"`
}

// RelatedPane is the payload of the related list and scatter plot.
type RelatedPane struct {
	Focal  types.RelatedArticle       `json:"focal" yaml:"focal"`
	Items  []RelatedItem              `json:"items" yaml:"items"`
	Points []types.VisualizationPoint `json:"points" yaml:"points"`
	Scale  colormap.Scale             `json:"scale" yaml:"scale"`
}

// Article controls the article surface. The reader and related panes load
// independently and are published as separate models.
type Article struct {
	search Searcher
	viz    Visualizer
	pdfs   PDFSource
	log    *zap.Logger
	base   context.Context

	mu      sync.Mutex
	key     string
	req     querycodec.VisualizationRequest
	slot    slot
	pdfSlot slot
	reader  Model[ReaderPane]
	related Model[RelatedPane]
}

// NewArticle returns an idle article controller. pdfs may be nil, which
// disables InspectPDF.
func NewArticle(ctx context.Context, search Searcher, viz Visualizer, pdfs PDFSource, logger *zap.Logger) *Article {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Article{
		search:  search,
		viz:     viz,
		pdfs:    pdfs,
		log:     logger.Named("article"),
		base:    ctx,
		reader:  Idle[ReaderPane](),
		related: Idle[RelatedPane](),
	}
}

// Reader returns the reader pane model.
func (a *Article) Reader() Model[ReaderPane] {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.reader
}

// Related returns the related pane model.
func (a *Article) Related() Model[RelatedPane] {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.related
}

// ArticleID returns the identifier currently shown.
func (a *Article) ArticleID() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.req.ArticleID
}

// Enter opens the article named by st. A new identifier cancels the
// previous article's fetches and issues the exact and related fetches; the
// same navigation key again is a no-op.
func (a *Article) Enter(st navigation.State) []Task {
	a.mu.Lock()
	defer a.mu.Unlock()

	key := st.Key()
	if key == a.key && a.reader.Status != StatusIdle {
		return nil
	}
	a.key = key

	req, ok := querycodec.Decode(st).(querycodec.VisualizationRequest)
	if !ok {
		a.slot.stop()
		a.pdfSlot.stop()
		a.req = querycodec.VisualizationRequest{}
		a.reader = Failed[ReaderPane]("No article selected.")
		a.related = Failed[RelatedPane]("No article selected.")
		return nil
	}
	a.req = req
	return a.start()
}

// Reload fetches the current article again.
func (a *Article) Reload() []Task {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.req.ArticleID == "" {
		return nil
	}
	return a.start()
}

// Leave cancels in-flight work and returns both panes to Idle.
func (a *Article) Leave() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.slot.stop()
	a.pdfSlot.stop()
	a.key = ""
	a.req = querycodec.VisualizationRequest{}
	a.reader = Idle[ReaderPane]()
	a.related = Idle[RelatedPane]()
}

func (a *Article) start() []Task {
	a.pdfSlot.stop()
	ctx, gen := a.slot.begin(a.base)
	req := a.req
	a.reader = Loading[ReaderPane]()
	a.related = Loading[RelatedPane]()
	a.log.Debug("opening article", zap.String("id", req.ArticleID), zap.Bool("by_title", req.ByTitle))

	exact := func() Result {
		rows, err := a.search.FetchSearch(ctx, req.Exact())
		return readerDone{a: a, gen: gen, rows: rows, err: err}
	}
	related := func() Result {
		rows, err := a.viz.FetchVisualization(ctx, req.ArticleID)
		d := relatedDone{a: a, gen: gen, err: err}
		if err == nil && len(rows) > 0 {
			d.pane, d.err = buildRelated(rows)
		}
		return d
	}
	return []Task{exact, related}
}

// buildRelated colors a visualization response. Row 0 is the focal article.
func buildRelated(rows []types.RelatedArticle) (*RelatedPane, error) {
	years := make([]int, len(rows))
	for i, r := range rows {
		years[i] = r.Year
	}
	scale, err := colormap.NewScale(years)
	if err != nil {
		return nil, err
	}
	points, err := colormap.Points(rows)
	if err != nil {
		return nil, err
	}

	pane := &RelatedPane{Focal: rows[0], Points: points, Scale: scale}
	for _, r := range rows[1:] {
		pane.Items = append(pane.Items, RelatedItem{
			Article:  r.ArticleSummary,
			Color:    scale.Color(r.Year).Hex(),
			Location: LocationFor(r.ArticleSummary),
		})
	}
	return pane, nil
}

// SelectRelated navigates to related item i.
func (a *Article) SelectRelated(i int, nav Navigator) error {
	a.mu.Lock()
	m := a.related
	a.mu.Unlock()

	if m.Status != StatusReady || i < 0 || i >= len(m.Payload.Items) {
		return fmt.Errorf("no related article at index %d", i)
	}
	return nav.Push(m.Payload.Items[i].Location)
}

// SelectPoint navigates to the article behind plotted point i.
func (a *Article) SelectPoint(i int, nav Navigator) error {
	a.mu.Lock()
	m := a.related
	a.mu.Unlock()

	if m.Status != StatusReady || i < 0 || i >= len(m.Payload.Points) {
		return fmt.Errorf("no plotted point at index %d", i)
	}
	return nav.Push(LocationFor(m.Payload.Points[i].Article))
}

// InspectPDF downloads the reader's PDF and records its page count on the
// reader pane. It returns nil until the reader pane is ready with a PDF URL.
func (a *Article) InspectPDF() []Task {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.pdfs == nil || a.reader.Status != StatusReady || a.reader.Payload.PDFURL == "" {
		return nil
	}
	ctx, gen := a.pdfSlot.begin(a.base)
	articleGen := a.slot.gen
	pdfURL := a.reader.Payload.PDFURL

	return []Task{func() Result {
		d := pdfDone{a: a, gen: gen, articleGen: articleGen}
		data, err := a.pdfs.FetchPDF(ctx, pdfURL)
		if err != nil {
			d.err = err
			return d
		}
		info, err := pdfinfo.Inspect(data)
		d.info, d.err = &info, err
		return d
	}}
}

type readerDone struct {
	a    *Article
	gen  uint64
	rows []types.ArticleSummary
	err  error
}

func (d readerDone) Apply() bool {
	a := d.a
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.slot.current(d.gen) {
		a.log.Debug("discarding stale reader result", zap.Uint64("gen", d.gen))
		return false
	}
	switch {
	case d.err != nil:
		a.log.Info("exact fetch failed", zap.String("id", a.req.ArticleID), zap.Error(d.err))
		a.reader = Failed[ReaderPane](reasonFor(d.err))
	case len(d.rows) == 0:
		a.reader = Empty[ReaderPane]()
	default:
		a.reader = Ready(ReaderPane{Article: d.rows[0], PDFURL: d.rows[0].PDFURL})
	}
	return true
}

type relatedDone struct {
	a    *Article
	gen  uint64
	pane *RelatedPane
	err  error
}

func (d relatedDone) Apply() bool {
	a := d.a
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.slot.current(d.gen) {
		a.log.Debug("discarding stale related result", zap.Uint64("gen", d.gen))
		return false
	}
	switch {
	case d.err != nil:
		a.log.Info("related fetch failed", zap.String("id", a.req.ArticleID), zap.Error(d.err))
		a.related = Failed[RelatedPane](reasonFor(d.err))
	case d.pane == nil:
		a.related = Empty[RelatedPane]()
	default:
		a.related = Ready(*d.pane)
	}
	return true
}

type pdfDone struct {
	a          *Article
	gen        uint64
	articleGen uint64
	info       *pdfinfo.Info
	err        error
}

func (d pdfDone) Apply() bool {
	a := d.a
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.pdfSlot.current(d.gen) || !a.slot.current(d.articleGen) || a.reader.Status != StatusReady {
		return false
	}
	pane := a.reader.Payload
	if d.err != nil {
		a.log.Info("pdf inspection failed", zap.String("url", pane.PDFURL), zap.Error(d.err))
		pane.PDF, pane.PDFError = nil, "PDF unavailable."
	} else {
		pane.PDF, pane.PDFError = d.info, ""
	}
	a.reader = Ready(pane)
	return true
}
