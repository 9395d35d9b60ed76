// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package httputil

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countSleeps replaces sleepFn for the duration of a test and returns a
// counter of how often it was called.
func countSleeps(t *testing.T) *int32 {
	t.Helper()
	var n int32
	old := sleepFn
	sleepFn = func(time.Duration) { atomic.AddInt32(&n, 1) }
	t.Cleanup(func() { sleepFn = old })
	return &n
}

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func TestFetchWithRetry_ImmediateSuccess(t *testing.T) {
	pauses := countSleeps(t)

	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		io.WriteString(w, ">X1 test\nACGT\n")
	}))
	defer ts.Close()

	req, err := http.NewRequest(http.MethodGet, ts.URL, nil)
	require.NoError(t, err)

	var log bytes.Buffer
	body, err := FetchWithRetry(context.Background(), ts.Client(), req, 3, time.Second, &log)
	require.NoError(t, err)

	assert.Equal(t, ">X1 test\nACGT\n", body)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	assert.Equal(t, int32(0), atomic.LoadInt32(pauses))
	assert.Empty(t, log.String())
}

func TestFetchWithRetry_ConnectionFailsThenSucceeds(t *testing.T) {
	pauses := countSleeps(t)

	var calls int32
	client := &http.Client{Transport: roundTripperFunc(func(*http.Request) (*http.Response, error) {
		if atomic.AddInt32(&calls, 1) <= 2 {
			return nil, errors.New("connection refused")
		}
		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(strings.NewReader(">X1\nACGT\n")),
		}, nil
	})}

	req, err := http.NewRequest(http.MethodGet, "http://eutils.invalid/efetch.fcgi", nil)
	require.NoError(t, err)

	var log bytes.Buffer
	body, err := FetchWithRetry(context.Background(), client, req, 3, time.Second, &log)
	require.NoError(t, err)

	assert.Equal(t, ">X1\nACGT\n", body)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
	// One pause after each of the two failed attempts.
	assert.Equal(t, int32(2), atomic.LoadInt32(pauses))
	assert.Contains(t, log.String(), "attempt 1/3")
	assert.Contains(t, log.String(), "attempt 2/3")
	assert.NotContains(t, log.String(), "max retries")
}

func TestFetchWithRetry_ExhaustsRetries(t *testing.T) {
	pauses := countSleeps(t)

	var calls int32
	client := &http.Client{Transport: roundTripperFunc(func(*http.Request) (*http.Response, error) {
		atomic.AddInt32(&calls, 1)
		return nil, errors.New("connection reset by peer")
	})}

	req, err := http.NewRequest(http.MethodGet, "http://eutils.invalid/efetch.fcgi", nil)
	require.NoError(t, err)

	var log bytes.Buffer
	_, err = FetchWithRetry(context.Background(), client, req, 3, time.Second, &log)
	assert.ErrorIs(t, err, ErrNoSequence)

	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
	// No pause after the final attempt.
	assert.Equal(t, int32(2), atomic.LoadInt32(pauses))
	assert.Contains(t, log.String(), "max retries reached")
}

func TestFetchWithRetry_NonSuccessStatusIsSilent(t *testing.T) {
	pauses := countSleeps(t)

	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer ts.Close()

	req, err := http.NewRequest(http.MethodGet, ts.URL, nil)
	require.NoError(t, err)

	var log bytes.Buffer
	_, err = FetchWithRetry(context.Background(), ts.Client(), req, 3, time.Second, &log)
	assert.ErrorIs(t, err, ErrNoSequence)

	// Delivered error statuses consume attempts without logging or pausing.
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
	assert.Equal(t, int32(0), atomic.LoadInt32(pauses))
	assert.Empty(t, log.String())
}

func TestFetchWithRetry_DefaultRetries(t *testing.T) {
	countSleeps(t)

	var calls int32
	client := &http.Client{Transport: roundTripperFunc(func(*http.Request) (*http.Response, error) {
		atomic.AddInt32(&calls, 1)
		return nil, errors.New("no route to host")
	})}

	req, err := http.NewRequest(http.MethodGet, "http://eutils.invalid/efetch.fcgi", nil)
	require.NoError(t, err)

	_, err = FetchWithRetry(context.Background(), client, req, 0, time.Second, io.Discard)
	assert.ErrorIs(t, err, ErrNoSequence)
	assert.Equal(t, int32(defaultRetries), atomic.LoadInt32(&calls))
}
