// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package httputil

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_Success(t *testing.T) {
	var gotUA, gotID string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotID = r.Header.Get(RequestIDHeader)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	}))
	defer ts.Close()

	resp, err := Get(context.Background(), ts.Client(), ts.URL, "docexplorer-test/1.0")
	require.NoError(t, err)

	assert.Equal(t, "[]", string(resp.Body))
	assert.Equal(t, "application/json", resp.ContentType)
	assert.Equal(t, "docexplorer-test/1.0", gotUA)
	assert.Equal(t, resp.RequestID, gotID)
	_, err = uuid.Parse(gotID)
	assert.NoError(t, err)
}

func TestGet_FreshRequestIDs(t *testing.T) {
	var ids []string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ids = append(ids, r.Header.Get(RequestIDHeader))
	}))
	defer ts.Close()

	for i := 0; i < 2; i++ {
		_, err := Get(context.Background(), ts.Client(), ts.URL, "")
		require.NoError(t, err)
	}
	require.Len(t, ids, 2)
	assert.NotEqual(t, ids[0], ids[1])
}

func TestGet_StatusErrorNoRetry(t *testing.T) {
	tests := []int{http.StatusTooManyRequests, http.StatusInternalServerError, http.StatusNotFound}
	for _, code := range tests {
		var calls int32
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			atomic.AddInt32(&calls, 1)
			w.WriteHeader(code)
		}))

		_, err := Get(context.Background(), ts.Client(), ts.URL, "")
		var se *StatusError
		require.True(t, errors.As(err, &se), "code %d: %v", code, err)
		assert.Equal(t, code, se.StatusCode)
		assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "no retry for %d", code)
		ts.Close()
	}
}

func TestGet_ContextCancelled(t *testing.T) {
	release := make(chan struct{})
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer ts.Close()
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := Get(ctx, ts.Client(), ts.URL, "")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestGet_BodyLimit(t *testing.T) {
	old := MaxBodyBytes
	MaxBodyBytes = 4
	defer func() { MaxBodyBytes = old }()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("0123456789"))
	}))
	defer ts.Close()

	_, err := Get(context.Background(), ts.Client(), ts.URL, "")
	assert.ErrorContains(t, err, "exceeds 4 bytes")
}

func TestGet_BadURL(t *testing.T) {
	_, err := Get(context.Background(), http.DefaultClient, "http://[::1", "")
	assert.Error(t, err)
}
