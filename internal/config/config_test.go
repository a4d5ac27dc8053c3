package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("AIRTABLE_API_KEY", "key")
	t.Setenv("AIRTABLE_BASE_ID", "appBase")
	t.Setenv("AIRTABLE_TABLE_NAME", "Videos")
	t.Setenv("AIRTABLE_VIEW_NAME", "Grid view")
	t.Setenv("YOUTUBE_API_KEY", "yt-key")
}

func TestLoad(t *testing.T) {
	setRequired(t)
	t.Setenv("AIRTABLE_URL_FIELD", "")
	t.Setenv("AIRTABLE_WRITE_INTERVAL_MS", "")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "key", cfg.AirtableAPIKey)
	require.Equal(t, "appBase", cfg.AirtableBaseID)
	require.Equal(t, "Videos", cfg.AirtableTable)
	require.Equal(t, "Grid view", cfg.AirtableView)
	require.Equal(t, "yt-key", cfg.YouTubeAPIKey)
	require.Equal(t, "Asset Link", cfg.URLField)
	require.Equal(t, 250*time.Millisecond, cfg.WriteInterval)
}

func TestLoadOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("AIRTABLE_URL_FIELD", "Video URL")
	t.Setenv("AIRTABLE_WRITE_INTERVAL_MS", "500")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "Video URL", cfg.URLField)
	require.Equal(t, 500*time.Millisecond, cfg.WriteInterval)
}

func TestLoadReportsAllMissingKeys(t *testing.T) {
	setRequired(t)
	t.Setenv("AIRTABLE_API_KEY", "")
	t.Setenv("YOUTUBE_API_KEY", "")

	_, err := Load()
	require.Error(t, err)
	require.ErrorContains(t, err, "AIRTABLE_API_KEY")
	require.ErrorContains(t, err, "YOUTUBE_API_KEY")
	require.NotContains(t, err.Error(), "AIRTABLE_BASE_ID")
}

func TestLoadBadIntervalFallsBack(t *testing.T) {
	setRequired(t)
	t.Setenv("AIRTABLE_WRITE_INTERVAL_MS", "soon")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 250*time.Millisecond, cfg.WriteInterval)
}
