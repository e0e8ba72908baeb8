// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package xapi

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/epstein-in/pkg/types"
)

func newTestClient(ts *httptest.Server, waits *[]time.Duration) *Client {
	return &Client{
		HTTP: ts.Client(),
		Cfg: types.LookupConfig{
			HTTPConfig:  types.HTTPConfig{UserAgent: "test/0.1"},
			Endpoint:    ts.URL,
			BearerToken: "tok",
		},
		Sleep: func(ctx context.Context, d time.Duration) error {
			if waits != nil {
				*waits = append(*waits, d)
			}
			return ctx.Err()
		},
	}
}

func TestResolve(t *testing.T) {
	var captured *http.Request
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = r
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{
			"data": [
				{"id": "1", "name": "Ada Lovelace", "username": "ada"},
				{"id": "2", "name": "Cher", "username": "cher"},
				{"id": "3", "name": "  ", "username": "blank"},
				{"id": "4", "name": "Jean  Claude Van Damme"},
				{"id": "5", "name": "Ghost"}
			],
			"errors": [
				{"value": "9", "detail": "Could not find user with ids: [9]."},
				{"value": "8"}
			]
		}`)
	}))
	defer ts.Close()

	var out bytes.Buffer
	res, err := newTestClient(ts, nil).Resolve(context.Background(), []string{"1", "2", "3", "4", "5", "9", "8"}, &out)
	require.NoError(t, err)

	assert.Equal(t, "Bearer tok", captured.Header.Get("Authorization"))
	assert.Equal(t, "test/0.1", captured.Header.Get("User-Agent"))
	assert.Equal(t, "1,2,3,4,5,9,8", captured.URL.Query().Get("ids"))

	assert.Equal(t, []types.Contact{
		{FirstName: "Ada", LastName: "Lovelace", FullName: "Ada Lovelace", Position: "@ada"},
		{FirstName: "Cher", LastName: "", FullName: "Cher", Position: "@cher"},
		{FirstName: "Jean", LastName: "Claude Van Damme", FullName: "Jean  Claude Van Damme"},
		{FirstName: "Ghost", FullName: "Ghost"},
	}, res.Contacts)

	assert.Equal(t, []string{"Could not find user with ids: [9].", "unknown error for account"}, res.Warnings)
	assert.Contains(t, out.String(), "warning: Could not find user")
}

func TestResolveBatches(t *testing.T) {
	var batches []int
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ids := strings.Split(r.URL.Query().Get("ids"), ",")
		batches = append(batches, len(ids))
		fmt.Fprint(w, `{"data": []}`)
	}))
	defer ts.Close()

	ids := make([]string, 250)
	for i := range ids {
		ids[i] = fmt.Sprint(i)
	}

	_, err := newTestClient(ts, nil).Resolve(context.Background(), ids, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, []int{100, 100, 50}, batches)
}

func TestResolveNoIDs(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	}))
	defer ts.Close()

	res, err := newTestClient(ts, nil).Resolve(context.Background(), nil, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Empty(t, res.Contacts)
}

func TestResolveAuthFailures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   error
	}{
		{"unauthorized", http.StatusUnauthorized, ErrUnauthorized},
		{"forbidden", http.StatusForbidden, ErrForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls int32
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				atomic.AddInt32(&calls, 1)
				w.WriteHeader(tt.status)
			}))
			defer ts.Close()

			ids := make([]string, 150)
			for i := range ids {
				ids[i] = fmt.Sprint(i)
			}
			_, err := newTestClient(ts, nil).Resolve(context.Background(), ids, &bytes.Buffer{})
			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "aborts without retrying or continuing")
		})
	}
}

func TestResolveServerError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer ts.Close()

	_, err := newTestClient(ts, nil).Resolve(context.Background(), []string{"1"}, &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 502")
}

func TestResolveRateLimitRetriesSameBatch(t *testing.T) {
	var calls int32
	var seen []string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.URL.Query().Get("ids"))
		switch atomic.AddInt32(&calls, 1) {
		case 1, 2:
			w.WriteHeader(http.StatusTooManyRequests)
		case 3:
			w.Header().Set("Retry-After", "15")
			w.WriteHeader(http.StatusTooManyRequests)
		default:
			fmt.Fprint(w, `{"data": [{"name": "Ada Lovelace"}]}`)
		}
	}))
	defer ts.Close()

	var waits []time.Duration
	res, err := newTestClient(ts, &waits).Resolve(context.Background(), []string{"1", "2"}, &bytes.Buffer{})
	require.NoError(t, err)

	require.Len(t, res.Contacts, 1)
	assert.Equal(t, []string{"1,2", "1,2", "1,2", "1,2"}, seen)
	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second, 15 * time.Second}, waits)
}

func TestResolveTransportError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	c := newTestClient(ts, nil)
	ts.Close()

	_, err := c.Resolve(context.Background(), []string{"1"}, &bytes.Buffer{})
	assert.Error(t, err)
}
