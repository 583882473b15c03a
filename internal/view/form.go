// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package view

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/pdiddy/doc-explorer/internal/querycodec"
)

// Topic is one entry of the topic cloud.
type Topic struct {
	ID    string   `json:"id" yaml:"id"`
	Terms []string `json:"terms" yaml:"terms"`
}

// FormState is a snapshot of the search form.
type FormState struct {
	Field string `json:"field" yaml:"field"`
	Value string `json:"value" yaml:"value"`
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
}

// SearchForm is the home surface: a field selector, a query value and the
// topic cloud whose terms can be appended to a topic search.
type SearchForm struct {
	topics TopicSource
	log    *zap.Logger
	base   context.Context

	mu     sync.Mutex
	state  FormState
	slot   slot
	clouds Model[[]Topic]
}

// NewSearchForm returns a form searching by title. topics may be nil, which
// leaves the cloud Idle.
func NewSearchForm(ctx context.Context, topics TopicSource, logger *zap.Logger) *SearchForm {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SearchForm{
		topics: topics,
		log:    logger.Named("form"),
		base:   ctx,
		state:  FormState{Field: string(querycodec.FieldTitle)},
		clouds: Idle[[]Topic](),
	}
}

// State returns the current form contents.
func (f *SearchForm) State() FormState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Topics returns the topic cloud model.
func (f *SearchForm) Topics() Model[[]Topic] {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.clouds
}

// SetField selects the search field. Unknown fields are rejected with a
// ConfigurationError.
func (f *SearchForm) SetField(field string) error {
	for _, sf := range querycodec.SearchFields {
		if string(sf) == field {
			f.mu.Lock()
			f.state.Field = field
			f.mu.Unlock()
			return nil
		}
	}
	return &querycodec.ConfigurationError{Field: field}
}

// CycleField advances to the next search field.
func (f *SearchForm) CycleField() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	fields := querycodec.SearchFields
	next := fields[0]
	for i, sf := range fields {
		if string(sf) == f.state.Field {
			next = fields[(i+1)%len(fields)]
			break
		}
	}
	f.state.Field = string(next)
	return f.state.Field
}

// SetValue replaces the query value and clears any inline error.
func (f *SearchForm) SetValue(value string) {
	f.mu.Lock()
	f.state.Value = value
	f.state.Error = ""
	f.mu.Unlock()
}

// Prefill sets field and value together, as from a shared form link. An
// unknown field keeps the current one.
func (f *SearchForm) Prefill(field, value string) {
	if field != "" {
		if err := f.SetField(field); err != nil {
			f.log.Debug("ignoring prefill field", zap.String("field", field))
		}
	}
	f.SetValue(value)
}

// AppendTerm switches the form to a topic search and appends term to the
// value.
func (f *SearchForm) AppendTerm(term string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state.Field = string(querycodec.FieldTopic)
	f.state.Value = strings.TrimSpace(strings.TrimSpace(f.state.Value) + " " + term)
	f.state.Error = ""
}

// Submit encodes the form and pushes the result location. Blank input sets
// the inline error and returns the ValidationError without navigating.
func (f *SearchForm) Submit(nav Navigator) error {
	f.mu.Lock()
	st := f.state
	f.mu.Unlock()

	loc, err := querycodec.Encode(st.Field, st.Value)
	if err != nil {
		var ve *querycodec.ValidationError
		if errors.As(err, &ve) {
			f.mu.Lock()
			f.state.Error = ve.Message
			f.mu.Unlock()
		}
		return err
	}

	f.mu.Lock()
	f.state.Error = ""
	f.mu.Unlock()
	return nav.Push(loc)
}

// LoadTopics fetches the topic cloud once. Later calls are no-ops unless
// the previous load failed.
func (f *SearchForm) LoadTopics() []Task {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.topics == nil {
		return nil
	}
	switch f.clouds.Status {
	case StatusLoading, StatusReady, StatusEmpty:
		return nil
	}
	ctx, gen := f.slot.begin(f.base)
	f.clouds = Loading[[]Topic]()

	return []Task{func() Result {
		cloud, err := f.topics.FetchTopicCloud(ctx)
		return topicsDone{f: f, gen: gen, cloud: cloud, err: err}
	}}
}

// Close cancels a pending topic load.
func (f *SearchForm) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.slot.stop()
	if f.clouds.Status == StatusLoading {
		f.clouds = Idle[[]Topic]()
	}
}

type topicsDone struct {
	f     *SearchForm
	gen   uint64
	cloud map[string][]string
	err   error
}

func (d topicsDone) Apply() bool {
	f := d.f
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.slot.current(d.gen) {
		return false
	}
	switch {
	case d.err != nil:
		f.log.Info("topic cloud fetch failed", zap.Error(d.err))
		f.clouds = Failed[[]Topic](reasonFor(d.err))
	case len(d.cloud) == 0:
		f.clouds = Empty[[]Topic]()
	default:
		f.clouds = Ready(sortTopics(d.cloud))
	}
	return true
}

// sortTopics orders topics numerically by id where ids are numbers.
func sortTopics(cloud map[string][]string) []Topic {
	topics := make([]Topic, 0, len(cloud))
	for id, terms := range cloud {
		topics = append(topics, Topic{ID: id, Terms: terms})
	}
	sort.Slice(topics, func(i, j int) bool {
		a, errA := strconv.Atoi(topics[i].ID)
		b, errB := strconv.Atoi(topics[j].ID)
		if errA == nil && errB == nil {
			return a < b
		}
		if (errA == nil) != (errB == nil) {
			return errA == nil
		}
		return topics[i].ID < topics[j].ID
	})
	return topics
}
