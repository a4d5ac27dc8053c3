package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultURLField      = "Asset Link"
	defaultWriteInterval = 250 * time.Millisecond
)

// Config holds everything the sync job reads from the environment. It is
// built once at startup and passed into constructors; nothing else reads
// ambient environment state.
type Config struct {
	AirtableAPIKey string
	AirtableBaseID string
	AirtableTable  string
	AirtableView   string
	YouTubeAPIKey  string

	// URLField is the Airtable field holding the video URL.
	URLField string
	// WriteInterval is the pause between write batches.
	WriteInterval time.Duration
}

// Load reads the configuration from environment variables. All required
// keys missing are reported in a single error so the run aborts before
// any network call.
func Load() (*Config, error) {
	cfg := &Config{
		AirtableAPIKey: os.Getenv("AIRTABLE_API_KEY"),
		AirtableBaseID: os.Getenv("AIRTABLE_BASE_ID"),
		AirtableTable:  os.Getenv("AIRTABLE_TABLE_NAME"),
		AirtableView:   os.Getenv("AIRTABLE_VIEW_NAME"),
		YouTubeAPIKey:  os.Getenv("YOUTUBE_API_KEY"),
		URLField:       envString("AIRTABLE_URL_FIELD", defaultURLField),
		WriteInterval:  envDurationMs("AIRTABLE_WRITE_INTERVAL_MS", defaultWriteInterval),
	}

	var missing []string
	for _, kv := range []struct{ key, val string }{
		{"AIRTABLE_API_KEY", cfg.AirtableAPIKey},
		{"AIRTABLE_BASE_ID", cfg.AirtableBaseID},
		{"AIRTABLE_TABLE_NAME", cfg.AirtableTable},
		{"AIRTABLE_VIEW_NAME", cfg.AirtableView},
		{"YOUTUBE_API_KEY", cfg.YouTubeAPIKey},
	} {
		if kv.val == "" {
			missing = append(missing, kv.key)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	return cfg, nil
}

func envString(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}

func envDurationMs(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	ms, err := strconv.Atoi(v)
	if err != nil || ms < 0 {
		return def
	}
	return time.Duration(ms) * time.Millisecond
}
