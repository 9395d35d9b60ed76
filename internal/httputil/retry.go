// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides the retrying sequence fetch shared by the
// harvest stage.
package httputil

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ErrNoSequence reports that no sequence text was obtained within the
// configured attempts, either because every attempt failed at the
// connection level or because the remote answered with error statuses.
var ErrNoSequence = errors.New("no sequence obtained")

const defaultRetries = 3

// sleepFn is the inter-attempt pause. Tests substitute it to count pauses
// without waiting.
var sleepFn = time.Sleep

// FetchWithRetry performs the exchange for req up to retries times and
// returns the response body of the first attempt that completes with a 2xx
// status. The client is caller-owned and reused across calls; the request
// is cloned per attempt with ctx attached.
//
// Connection-level failures (including a disconnect mid-body) are logged to
// w with the attempt number and followed by a fixed delay, except after the
// final attempt, which logs exhaustion instead. A delivered non-2xx status
// is not logged and not delayed: the body is drained and the loop moves
// straight to its next attempt, so remote rejection and exhaustion are
// indistinguishable in the result. When retries is not positive the
// default (3) is used.
func FetchWithRetry(ctx context.Context, client *http.Client, req *http.Request, retries int, delay time.Duration, w io.Writer) (string, error) {
	if retries <= 0 {
		retries = defaultRetries
	}

	for attempt := 0; attempt < retries; attempt++ {
		resp, err := client.Do(req.Clone(ctx))
		if err == nil {
			if resp.StatusCode < 200 || resp.StatusCode >= 300 {
				io.Copy(io.Discard, resp.Body)
				resp.Body.Close()
				continue
			}

			var body []byte
			body, err = io.ReadAll(resp.Body)
			resp.Body.Close()
			if err == nil {
				return string(body), nil
			}
			// A disconnect while reading the body falls through to the
			// connection-failure path below.
		}

		fmt.Fprintf(w, "connection error on attempt %d/%d: %v\n", attempt+1, retries, err)
		if attempt < retries-1 {
			sleepFn(delay)
		} else {
			fmt.Fprintln(w, "max retries reached, unable to fetch sequence")
		}
	}

	return "", ErrNoSequence
}
