package domain

import "time"

// Airtable field names written back by the sync job.
const (
	FieldViews    = "Views"
	FieldLikes    = "Likes"
	FieldComments = "Comments"
)

// SourceRecord is one row read from the Airtable view.
// Fields holds the raw field name -> value mapping as returned by the API.
type SourceRecord struct {
	ID     string                 `json:"id"`
	Fields map[string]interface{} `json:"fields"`
}

// EngagementStats holds the counters fetched from YouTube for one video.
type EngagementStats struct {
	Views    int64 `json:"views"`
	Likes    int64 `json:"likes"`
	Comments int64 `json:"comments"`
}

// UpdateEntry pairs a record ID with the stats to write back. One exists
// only when the record's URL yielded a video ID and the stats lookup
// succeeded.
type UpdateEntry struct {
	RecordID string
	Stats    EngagementStats
}

// SkipReason classifies why a record produced no UpdateEntry.
type SkipReason string

const (
	// SkipNone means the record produced an update.
	SkipNone SkipReason = ""
	// SkipNoVideoID covers a missing URL field and a URL no video ID
	// could be derived from.
	SkipNoVideoID SkipReason = "no_video_id"
	// SkipLookupFailed covers a failed or empty statistics lookup.
	SkipLookupFailed SkipReason = "lookup_failed"
)

// RunResult holds the outcome of a completed sync run.
type RunResult struct {
	RunID            string    `json:"run_id"`
	Pulled           int       `json:"pulled"`
	Updated          int       `json:"updated"`
	SkippedNoVideoID int       `json:"skipped_no_video_id"`
	SkippedLookup    int       `json:"skipped_lookup_failed"`
	DryRun           bool      `json:"dry_run"`
	CompletedAt      time.Time `json:"completed_at"`
}
