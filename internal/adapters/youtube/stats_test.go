package youtube

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"viewsync/internal/core/domain"
)

func newTestClient(srv *httptest.Server) *Client {
	return &Client{
		apiKey:  "test-key",
		baseURL: srv.URL,
		client:  srv.Client(),
	}
}

func TestLookupSuccess(t *testing.T) {
	var captured *http.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = r.Clone(context.Background())
		w.Write([]byte(`{
			"items": [
				{"statistics": {"viewCount": "1500", "likeCount": "120", "commentCount": "8"}}
			]
		}`))
	}))
	defer srv.Close()

	stats, err := newTestClient(srv).Lookup(context.Background(), "dQw4w9WgXcQ")
	require.NoError(t, err)
	require.Equal(t, &domain.EngagementStats{Views: 1500, Likes: 120, Comments: 8}, stats)

	require.Equal(t, "/videos", captured.URL.Path)
	require.Equal(t, "statistics", captured.URL.Query().Get("part"))
	require.Equal(t, "dQw4w9WgXcQ", captured.URL.Query().Get("id"))
	require.Equal(t, "test-key", captured.URL.Query().Get("key"))
}

func TestLookupEmptyItems(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"items": []}`))
	}))
	defer srv.Close()

	stats, err := newTestClient(srv).Lookup(context.Background(), "ghost")
	require.NoError(t, err)
	require.Nil(t, stats)
}

func TestLookupMissingCountersDefaultToZero(t *testing.T) {
	// Videos with likes or comments disabled omit those counters.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"items": [{"statistics": {"viewCount": "42"}}]}`))
	}))
	defer srv.Close()

	stats, err := newTestClient(srv).Lookup(context.Background(), "quiet")
	require.NoError(t, err)
	require.Equal(t, &domain.EngagementStats{Views: 42, Likes: 0, Comments: 0}, stats)
}

func TestLookupMalformedCounterDefaultsToZero(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"items": [{"statistics": {"viewCount": "not-a-number", "likeCount": "3"}}]}`))
	}))
	defer srv.Close()

	stats, err := newTestClient(srv).Lookup(context.Background(), "odd")
	require.NoError(t, err)
	require.Equal(t, &domain.EngagementStats{Views: 0, Likes: 3, Comments: 0}, stats)
}

func TestLookupNonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": {"code": 403}}`, http.StatusForbidden)
	}))
	defer srv.Close()

	stats, err := newTestClient(srv).Lookup(context.Background(), "denied")
	require.ErrorContains(t, err, "status 403")
	require.Nil(t, stats)
}
