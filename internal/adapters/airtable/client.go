package airtable

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"viewsync/internal/config"
	"viewsync/internal/core/domain"
	"viewsync/internal/core/ports"
)

const (
	defaultBaseURL = "https://api.airtable.com/v0"

	// Airtable caps list responses at 100 records and update requests
	// at 10 records.
	pageSize       = 100
	writeBatchSize = 10
)

// Client implements ports.RecordSource and ports.RecordSink against the
// Airtable REST API.
type Client struct {
	apiKey  string
	baseID  string
	table   string
	view    string
	baseURL string
	client  ports.Doer
	limiter *rate.Limiter
}

// NewClient creates a Client for the base, table, and view in cfg. Write
// batches are paced at one request per cfg.WriteInterval to stay under
// Airtable's write-rate limit.
func NewClient(cfg *config.Config) *Client {
	return &Client{
		apiKey:  cfg.AirtableAPIKey,
		baseID:  cfg.AirtableBaseID,
		table:   cfg.AirtableTable,
		view:    cfg.AirtableView,
		baseURL: defaultBaseURL,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		limiter: newWriteLimiter(cfg.WriteInterval),
	}
}

func newWriteLimiter(interval time.Duration) *rate.Limiter {
	if interval <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Every(interval), 1)
}

func (c *Client) recordsURL() string {
	return fmt.Sprintf("%s/%s/%s", c.baseURL, url.PathEscape(c.baseID), url.PathEscape(c.table))
}

type listResponse struct {
	Records []domain.SourceRecord `json:"records"`
	Offset  string                `json:"offset"`
}

// FetchAll retrieves every record in the configured view, following the
// offset cursor until a response omits it. A failed page aborts the
// fetch; a partial read would silently under-report the table.
func (c *Client) FetchAll(ctx context.Context) ([]domain.SourceRecord, error) {
	var all []domain.SourceRecord
	offset := ""

	for {
		page, next, err := c.fetchPage(ctx, offset)
		if err != nil {
			return nil, err
		}
		all = append(all, page...)

		if next == "" {
			return all, nil
		}
		offset = next
	}
}

func (c *Client) fetchPage(ctx context.Context, offset string) ([]domain.SourceRecord, string, error) {
	q := url.Values{}
	q.Set("pageSize", strconv.Itoa(pageSize))
	q.Set("view", c.view)
	if offset != "" {
		q.Set("offset", offset)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.recordsURL()+"?"+q.Encode(), nil)
	if err != nil {
		return nil, "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("failed to list records: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, "", fmt.Errorf("failed to list records: status %d, body: %s", resp.StatusCode, string(respBody))
	}

	var page listResponse
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, "", fmt.Errorf("failed to decode records page: %w", err)
	}

	return page.Records, page.Offset, nil
}

type updateRequest struct {
	Records []updateRecord `json:"records"`
}

type updateRecord struct {
	ID     string                 `json:"id"`
	Fields map[string]interface{} `json:"fields"`
}

// Update writes the entries back in consecutive batches of at most 10,
// preserving order, waiting on the pacing limiter before each request.
// An empty slice performs no network activity. A failed batch aborts the
// write; batches already sent stay written.
func (c *Client) Update(ctx context.Context, entries []domain.UpdateEntry) error {
	for i, batch := range chunk(entries, writeBatchSize) {
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}
		if err := c.updateBatch(ctx, batch); err != nil {
			return fmt.Errorf("failed to update batch %d: %w", i+1, err)
		}
	}
	return nil
}

func (c *Client) updateBatch(ctx context.Context, batch []domain.UpdateEntry) error {
	payload := updateRequest{Records: make([]updateRecord, 0, len(batch))}
	for _, e := range batch {
		payload.Records = append(payload.Records, updateRecord{
			ID: e.RecordID,
			Fields: map[string]interface{}{
				domain.FieldViews:    e.Stats.Views,
				domain.FieldLikes:    e.Stats.Likes,
				domain.FieldComments: e.Stats.Comments,
			},
		})
	}
	body, _ := json.Marshal(payload)

	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, c.recordsURL(), bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("status %d, body: %s", resp.StatusCode, string(respBody))
	}

	return nil
}

func chunk(entries []domain.UpdateEntry, size int) [][]domain.UpdateEntry {
	if len(entries) == 0 || size <= 0 {
		return nil
	}
	batches := make([][]domain.UpdateEntry, 0, (len(entries)+size-1)/size)
	for size < len(entries) {
		batches = append(batches, entries[:size])
		entries = entries[size:]
	}
	return append(batches, entries)
}
