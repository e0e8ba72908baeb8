// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers shared across stages.
package httputil

import (
	"context"
	"io"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// Backoff is the rate-limit state carried through a retry loop. It is owned
// by the caller and passed by pointer so the delay survives across requests:
// the search loop keeps one Backoff for a whole run.
//
// On each HTTP 429 the wait is chosen as follows:
//   - Retry-After present and AdoptRetryAfter set: wait Retry-After and make
//     it the new Delay. A zero Retry-After leaves Delay unchanged.
//   - Retry-After present, AdoptRetryAfter unset: wait Retry-After, then
//     double Delay.
//   - Retry-After absent: wait Delay, then double Delay.
type Backoff struct {
	// Delay is the current local wait. Callers may also use it as pacing
	// between requests.
	Delay time.Duration

	// AdoptRetryAfter makes a server-supplied Retry-After replace Delay.
	AdoptRetryAfter bool

	// Sleep waits for d or until ctx is done. Nil means a real timer.
	// Tests substitute a recorder.
	Sleep func(ctx context.Context, d time.Duration) error
}

// NewBackoff returns a Backoff starting at delay.
func NewBackoff(delay time.Duration, adoptRetryAfter bool) *Backoff {
	return &Backoff{Delay: delay, AdoptRetryAfter: adoptRetryAfter}
}

// Next returns how long to wait after the 429 response resp and advances
// the delay for the following attempt.
func (b *Backoff) Next(resp *http.Response) time.Duration {
	if ra, ok := RetryAfter(resp); ok {
		if b.AdoptRetryAfter {
			if ra > 0 {
				b.Delay = ra
			}
		} else {
			b.Delay *= 2
		}
		return ra
	}
	wait := b.Delay
	b.Delay *= 2
	return wait
}

// Wait sleeps for d, returning ctx.Err() if the context ends first.
func (b *Backoff) Wait(ctx context.Context, d time.Duration) error {
	if b.Sleep != nil {
		return b.Sleep(ctx, d)
	}
	return SleepContext(ctx, d)
}

// SleepContext blocks for d or until ctx is done.
func SleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// RetryAfter parses the Retry-After header of resp. Both delta-seconds
// (including fractional values) and HTTP-date forms are accepted.
func RetryAfter(resp *http.Response) (time.Duration, bool) {
	if resp == nil {
		return 0, false
	}
	v := strings.TrimSpace(resp.Header.Get("Retry-After"))
	if v == "" {
		return 0, false
	}
	if secs, err := strconv.ParseFloat(v, 64); err == nil && secs >= 0 && !math.IsInf(secs, 0) {
		return time.Duration(secs * float64(time.Second)), true
	}
	if t, err := http.ParseTime(v); err == nil {
		d := time.Until(t)
		if d < 0 {
			d = 0
		}
		return d, true
	}
	return 0, false
}

// DoWithBackoff executes an HTTP request and retries on HTTP 429 (Too Many
// Requests) until the server returns anything else. Waits are chosen by b.
//
// There is no retry cap. On each 429 the response body is drained and
// closed before sleeping. If the context is cancelled during a wait the
// function returns ctx.Err(). Transport errors are returned as-is.
func DoWithBackoff(ctx context.Context, client *http.Client, req *http.Request, b *Backoff) (*http.Response, error) {
	for attempt := 1; ; attempt++ {
		resp, err := client.Do(req.Clone(ctx))
		if err != nil {
			return nil, err
		}

		if resp.StatusCode != http.StatusTooManyRequests {
			return resp, nil
		}

		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()

		wait := b.Next(resp)
		slog.Debug("rate limited",
			"url", req.URL.Redacted(),
			"attempt", attempt,
			"wait", wait,
			"next_delay", b.Delay)

		if err := b.Wait(ctx, wait); err != nil {
			return nil, err
		}
	}
}
