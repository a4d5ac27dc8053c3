package runlog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"viewsync/internal/core/domain"
)

// Storage implements ports.RunArchive on the local filesystem. Each run
// gets its own directory under <BaseDir>/runs holding a snapshot of the
// fetched records and the run summary.
type Storage struct {
	BaseDir string
}

// NewStorage creates a new Storage instance.
func NewStorage(baseDir string) *Storage {
	return &Storage{BaseDir: baseDir}
}

// InitRun creates the run directory.
func (s *Storage) InitRun(ctx context.Context, runID string) error {
	path := s.RunPath(runID)
	if err := os.MkdirAll(path, 0755); err != nil {
		return fmt.Errorf("failed to create run directory %s: %w", path, err)
	}
	return nil
}

// SaveRecords saves the fetched records snapshot.
func (s *Storage) SaveRecords(ctx context.Context, runID string, records []domain.SourceRecord) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal records: %w", err)
	}
	path := filepath.Join(s.RunPath(runID), "records.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to save records.json: %w", err)
	}
	return nil
}

// SaveSummary saves the run result.
func (s *Storage) SaveSummary(ctx context.Context, runID string, result *domain.RunResult) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal summary: %w", err)
	}
	path := filepath.Join(s.RunPath(runID), "summary.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to save summary.json: %w", err)
	}
	return nil
}

// RunPath returns the path for a run directory.
func (s *Storage) RunPath(runID string) string {
	return filepath.Join(s.BaseDir, "runs", runID)
}
