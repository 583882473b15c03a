// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package api

import "fmt"

// NetworkError reports a transport failure or a non-2xx HTTP status.
type NetworkError struct {
	Op         string
	URL        string
	StatusCode int // zero for transport failures
	Err        error
}

func (e *NetworkError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s %s: HTTP %d", e.Op, e.URL, e.StatusCode)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// MalformedResponseError reports a response that is not valid JSON or lacks
// required fields.
type MalformedResponseError struct {
	Op     string
	URL    string
	Detail string
	Err    error
}

func (e *MalformedResponseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %s: malformed response: %s: %v", e.Op, e.URL, e.Detail, e.Err)
	}
	return fmt.Sprintf("%s %s: malformed response: %s", e.Op, e.URL, e.Detail)
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }
