package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"viewsync/internal/core/domain"
	"viewsync/internal/core/ports"
)

// Orchestrator coordinates one sync run: fetch all records, resolve
// stats per record, then write the accumulated updates back in batches.
type Orchestrator struct {
	source   ports.RecordSource
	stats    ports.StatsProvider
	sink     ports.RecordSink
	archive  ports.RunArchive
	urlField string
	dryRun   bool
	logger   *log.Logger
}

// NewOrchestrator creates a new Orchestrator. urlField names the record
// field holding the video URL. With dryRun set, the write phase is
// skipped.
func NewOrchestrator(
	source ports.RecordSource,
	stats ports.StatsProvider,
	sink ports.RecordSink,
	archive ports.RunArchive,
	urlField string,
	dryRun bool,
	logger *log.Logger,
) *Orchestrator {
	return &Orchestrator{
		source:   source,
		stats:    stats,
		sink:     sink,
		archive:  archive,
		urlField: urlField,
		dryRun:   dryRun,
		logger:   logger,
	}
}

// Run executes a complete sync run. Phases are strictly sequential: all
// pages are fetched before any record is processed, and all records are
// processed before any write is issued.
func (o *Orchestrator) Run(ctx context.Context) (*domain.RunResult, error) {
	runID := uuid.New().String()
	result := &domain.RunResult{RunID: runID, DryRun: o.dryRun}

	o.logger.Printf("[RUN %s] Starting sync run", runID)

	if err := o.archive.InitRun(ctx, runID); err != nil {
		// Artifacts are best-effort; the sync itself proceeds.
		o.logger.Printf("[RUN %s] WARN: failed to init run archive: %v", runID, err)
	}

	records, err := o.source.FetchAll(ctx)
	if err != nil {
		return result, fmt.Errorf("failed to fetch records: %w", err)
	}
	result.Pulled = len(records)
	o.logger.Printf("[RUN %s] Pulled %d records", runID, len(records))

	if err := o.archive.SaveRecords(ctx, runID, records); err != nil {
		o.logger.Printf("[RUN %s] WARN: failed to save records snapshot: %v", runID, err)
	}

	var updates []domain.UpdateEntry
	for _, rec := range records {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		entry, reason := o.processRecord(ctx, rec)
		switch reason {
		case domain.SkipNone:
			updates = append(updates, *entry)
		case domain.SkipNoVideoID:
			result.SkippedNoVideoID++
			o.logger.Printf("[RUN %s] Skipping record %s: %s", runID, rec.ID, reason)
		case domain.SkipLookupFailed:
			result.SkippedLookup++
			o.logger.Printf("[RUN %s] Skipping record %s: %s", runID, rec.ID, reason)
		}
	}

	switch {
	case len(updates) == 0:
		o.logger.Printf("[RUN %s] No updates were needed", runID)
	case o.dryRun:
		o.logger.Printf("[RUN %s] Dry run: would update %d records", runID, len(updates))
		result.Updated = len(updates)
	default:
		if err := o.sink.Update(ctx, updates); err != nil {
			return result, fmt.Errorf("failed to write updates: %w", err)
		}
		result.Updated = len(updates)
		o.logger.Printf("[RUN %s] Updated %d records", runID, len(updates))
	}

	result.CompletedAt = time.Now().UTC()

	if err := o.archive.SaveSummary(ctx, runID, result); err != nil {
		o.logger.Printf("[RUN %s] WARN: failed to save run summary: %v", runID, err)
	}
	o.logger.Printf("[RUN %s] Run completed, artifacts in %s", runID, o.archive.RunPath(runID))

	return result, nil
}

// processRecord resolves one record to an UpdateEntry or a skip reason.
func (o *Orchestrator) processRecord(ctx context.Context, rec domain.SourceRecord) (*domain.UpdateEntry, domain.SkipReason) {
	videoURL, _ := rec.Fields[o.urlField].(string)
	videoID := extractVideoID(videoURL)
	if videoID == "" {
		return nil, domain.SkipNoVideoID
	}

	stats, err := o.stats.Lookup(ctx, videoID)
	if err != nil {
		o.logger.Printf("Stats lookup for video %s failed: %v", videoID, err)
		return nil, domain.SkipLookupFailed
	}
	if stats == nil {
		return nil, domain.SkipLookupFailed
	}

	return &domain.UpdateEntry{RecordID: rec.ID, Stats: *stats}, domain.SkipNone
}
