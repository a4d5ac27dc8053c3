package ports

import (
	"context"
	"net/http"

	"viewsync/internal/core/domain"
)

// Doer is the capability an adapter needs to make an HTTP round trip.
// *http.Client satisfies it; tests inject deterministic fakes.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// RecordSource defines the contract for reading rows from the table store.
type RecordSource interface {
	// FetchAll returns every record in the configured view, following
	// pagination until exhausted, in arrival order.
	FetchAll(ctx context.Context) ([]domain.SourceRecord, error)
}

// StatsProvider defines the contract for fetching engagement counters.
type StatsProvider interface {
	// Lookup returns the stats for one video ID. A transport or HTTP
	// failure returns a non-nil error; a well-formed response with no
	// matching item returns (nil, nil). Neither is fatal to a run.
	Lookup(ctx context.Context, videoID string) (*domain.EngagementStats, error)
}

// RecordSink defines the contract for writing updates back to the table
// store.
type RecordSink interface {
	// Update writes the entries in consecutive batches, preserving
	// order. An empty slice performs no network activity.
	Update(ctx context.Context, entries []domain.UpdateEntry) error
}

// RunArchive defines the contract for persisting run artifacts.
type RunArchive interface {
	// InitRun creates the run directory structure.
	InitRun(ctx context.Context, runID string) error

	// SaveRecords saves a snapshot of the fetched records.
	SaveRecords(ctx context.Context, runID string, records []domain.SourceRecord) error

	// SaveSummary saves the run result.
	SaveSummary(ctx context.Context, runID string, result *domain.RunResult) error

	// RunPath returns the filesystem path for a given run ID.
	RunPath(runID string) string
}
