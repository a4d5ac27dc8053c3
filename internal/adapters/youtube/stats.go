package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"viewsync/internal/config"
	"viewsync/internal/core/domain"
	"viewsync/internal/core/ports"
)

const defaultBaseURL = "https://www.googleapis.com/youtube/v3"

// Client implements ports.StatsProvider using the YouTube Data API v3.
type Client struct {
	apiKey  string
	baseURL string
	client  ports.Doer
}

// NewClient creates a Client using the API key from cfg.
func NewClient(cfg *config.Config) *Client {
	return &Client{
		apiKey:  cfg.YouTubeAPIKey,
		baseURL: defaultBaseURL,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type videoListResponse struct {
	Items []struct {
		Statistics struct {
			ViewCount    string `json:"viewCount"`
			LikeCount    string `json:"likeCount"`
			CommentCount string `json:"commentCount"`
		} `json:"statistics"`
	} `json:"items"`
}

// Lookup fetches the engagement counters for one video. A transport or
// HTTP failure returns an error; a response with no matching item
// returns (nil, nil). The API encodes counters as strings; each one
// independently defaults to 0 when absent or malformed.
func (c *Client) Lookup(ctx context.Context, videoID string) (*domain.EngagementStats, error) {
	q := url.Values{}
	q.Set("part", "statistics")
	q.Set("id", videoID)
	q.Set("key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/videos?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch stats for %s: %w", videoID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("failed to fetch stats for %s: status %d", videoID, resp.StatusCode)
	}

	var list videoListResponse
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return nil, fmt.Errorf("failed to decode stats for %s: %w", videoID, err)
	}

	if len(list.Items) == 0 {
		return nil, nil
	}

	stats := list.Items[0].Statistics
	return &domain.EngagementStats{
		Views:    parseCount(stats.ViewCount),
		Likes:    parseCount(stats.LikeCount),
		Comments: parseCount(stats.CommentCount),
	}, nil
}

func parseCount(s string) int64 {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
