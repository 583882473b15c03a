// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides the single-exchange HTTP GET used by the
// document service client. It never retries: the caller owns ordering and
// retry policy.
package httputil

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"
)

// RequestIDHeader carries a fresh identifier on every request so service
// logs can be matched with client diagnostics.
const RequestIDHeader = "X-Request-ID"

// MaxBodyBytes caps how much of a response body Get reads. Tests override
// this to exercise truncation.
var MaxBodyBytes int64 = 64 << 20

// StatusError is returned when the service answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d", e.StatusCode)
}

// Response is a fully read 2xx response.
type Response struct {
	RequestID   string
	ContentType string
	Body        []byte
}

// Get performs one GET request. Non-2xx responses are drained and reported
// as *StatusError; transport failures and context cancellation are returned
// unchanged.
func Get(ctx context.Context, client *http.Client, rawURL, userAgent string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	id := uuid.NewString()
	req.Header.Set(RequestIDHeader, id)
	if userAgent != "" {
		req.Header.Set("User-Agent", userAgent)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return nil, &StatusError{StatusCode: resp.StatusCode, Status: resp.Status}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodyBytes+1))
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	if int64(len(body)) > MaxBodyBytes {
		return nil, fmt.Errorf("response body exceeds %d bytes", MaxBodyBytes)
	}

	return &Response{
		RequestID:   id,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        body,
	}, nil
}
