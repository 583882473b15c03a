// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package view

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/pdiddy/doc-explorer/internal/navigation"
	"github.com/pdiddy/doc-explorer/internal/querycodec"
	"github.com/pdiddy/doc-explorer/pkg/types"
)

// ResultItem is one row of the result list with its article location.
type ResultItem struct {
	Article  types.ArticleSummary `json:"article" yaml:"article"`
	Location string               `json:"location" yaml:"location"`
}

// Results controls the result-list surface.
type Results struct {
	search Searcher
	log    *zap.Logger
	base   context.Context

	mu    sync.Mutex
	key   string
	req   querycodec.SearchRequest
	slot  slot
	model Model[[]ResultItem]
}

// NewResults returns an idle result controller. Fetch contexts derive from ctx.
func NewResults(ctx context.Context, search Searcher, logger *zap.Logger) *Results {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Results{
		search: search,
		log:    logger.Named("results"),
		base:   ctx,
		model:  Idle[[]ResultItem](),
	}
}

// Model returns the current view model.
func (r *Results) Model() Model[[]ResultItem] {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.model
}

// Request returns the request of the current navigation key.
func (r *Results) Request() querycodec.SearchRequest {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.req
}

// Enter moves the surface to st. A new navigation key supersedes any
// in-flight fetch and re-enters Loading; the same key again is a no-op.
func (r *Results) Enter(st navigation.State) []Task {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := st.Key()
	if key == r.key && r.model.Status != StatusIdle {
		return nil
	}
	r.key = key

	req, ok := querycodec.Decode(st).(querycodec.SearchRequest)
	if !ok {
		r.slot.stop()
		r.req = querycodec.SearchRequest{}
		r.model = Failed[[]ResultItem]("Enter a title, author, or topic to search.")
		return nil
	}
	r.req = req
	return []Task{r.start(req)}
}

// EnterRequest runs req directly, for callers that hold a request rather
// than a navigation state, such as the related-set lookup.
func (r *Results) EnterRequest(req querycodec.SearchRequest) []Task {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := "request|" + string(req.Mode) + "|" + string(req.Field) + "|" + req.Key
	if key == r.key && r.model.Status != StatusIdle {
		return nil
	}
	r.key = key
	r.req = req
	return []Task{r.start(req)}
}

// Reload fetches the current request again.
func (r *Results) Reload() []Task {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.req.Key == "" {
		return nil
	}
	return []Task{r.start(r.req)}
}

// Leave cancels in-flight work and returns the surface to Idle.
func (r *Results) Leave() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.slot.stop()
	r.key = ""
	r.req = querycodec.SearchRequest{}
	r.model = Idle[[]ResultItem]()
}

// Select navigates to the article of row i.
func (r *Results) Select(i int, nav Navigator) error {
	r.mu.Lock()
	m := r.model
	r.mu.Unlock()

	if m.Status != StatusReady || i < 0 || i >= len(m.Payload) {
		return fmt.Errorf("no result at index %d", i)
	}
	return nav.Push(m.Payload[i].Location)
}

func (r *Results) start(req querycodec.SearchRequest) Task {
	ctx, gen := r.slot.begin(r.base)
	r.model = Loading[[]ResultItem]()
	r.log.Debug("fetching results", zap.String("mode", string(req.Mode)), zap.String("key", req.Key))

	return func() Result {
		rows, err := r.search.FetchSearch(ctx, req)
		return resultsDone{r: r, gen: gen, rows: rows, err: err}
	}
}

type resultsDone struct {
	r    *Results
	gen  uint64
	rows []types.ArticleSummary
	err  error
}

func (d resultsDone) Apply() bool {
	r := d.r
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.slot.current(d.gen) {
		r.log.Debug("discarding stale results", zap.Uint64("gen", d.gen))
		return false
	}
	switch {
	case d.err != nil:
		r.log.Info("result fetch failed", zap.Error(d.err))
		r.model = Failed[[]ResultItem](reasonFor(d.err))
	case len(d.rows) == 0:
		r.model = Empty[[]ResultItem]()
	default:
		items := make([]ResultItem, len(d.rows))
		for i, a := range d.rows {
			items[i] = ResultItem{Article: a, Location: LocationFor(a)}
		}
		r.model = Ready(items)
	}
	return true
}
