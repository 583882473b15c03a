// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package view holds the per-surface controllers of the explorer: the search
// form, the result list, and the article reader with its related-paper plot.
// Controllers turn navigation states into fetch tasks and publish immutable
// view models when those tasks complete.
//
// Fetches run off the event loop as Tasks. Their Results are applied back on
// the loop; a Result that belongs to a superseded navigation is discarded.
package view

import (
	"context"
	"errors"
	"fmt"

	"github.com/pdiddy/doc-explorer/internal/api"
)

// Status is the variant tag of a Model.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusEmpty
	StatusError
	StatusReady
)

var statusNames = [...]string{"idle", "loading", "empty", "error", "ready"}

func (s Status) String() string {
	if int(s) < len(statusNames) {
		return statusNames[s]
	}
	return fmt.Sprintf("status(%d)", int(s))
}

// MarshalText renders the status by name in JSON and YAML view models.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// GenericErrorReason is the message shown for network and malformed
// response failures alike.
const GenericErrorReason = "Something went wrong while contacting the document service."

// Model is the view model of one surface: Idle, Loading, Empty,
// Error(Reason) or Ready(Payload). Models are replaced, never mutated.
type Model[T any] struct {
	Status  Status `json:"status" yaml:"status"`
	Reason  string `json:"reason,omitempty" yaml:"reason,omitempty"`
	Payload T      `json:"payload,omitempty" yaml:"payload,omitempty"`
}

func Idle[T any]() Model[T]    { return Model[T]{Status: StatusIdle} }
func Loading[T any]() Model[T] { return Model[T]{Status: StatusLoading} }
func Empty[T any]() Model[T]   { return Model[T]{Status: StatusEmpty} }

// Failed returns an Error model with a user-facing reason.
func Failed[T any](reason string) Model[T] {
	return Model[T]{Status: StatusError, Reason: reason}
}

// Ready returns a loaded model.
func Ready[T any](payload T) Model[T] {
	return Model[T]{Status: StatusReady, Payload: payload}
}

// reasonFor maps a fetch failure to the message shown on the surface.
// Network and malformed-response failures read the same; the detail is in
// the client's log.
func reasonFor(err error) string {
	var ne *api.NetworkError
	var me *api.MalformedResponseError
	switch {
	case errors.As(err, &ne), errors.As(err, &me):
		return GenericErrorReason
	case errors.Is(err, context.Canceled):
		return "Request cancelled."
	default:
		return GenericErrorReason
	}
}
