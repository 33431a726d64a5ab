package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()

	assert.Equal(t, ":8080", cfg.EndpointAddrHTTP)
	assert.Equal(t, "file:slackpulse.sqlite", cfg.DatabaseDSN)
	assert.Equal(t, 90, cfg.HistoryDays)
	assert.Equal(t, 100, cfg.MaxPagesPerChannel)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.Equal(t, time.Hour, cfg.SyncInterval)
	assert.True(t, cfg.AdvanceOnFailure)
	assert.False(t, cfg.ExportEnabled)
}

func TestSplitUserIDs(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "plain list", input: "U1,U2,U3", want: []string{"U1", "U2", "U3"}},
		{name: "whitespace trimmed", input: " U1 , U2 ", want: []string{"U1", "U2"}},
		{name: "empty items dropped", input: "U1,,U2,", want: []string{"U1", "U2"}},
		{name: "empty string", input: "", want: []string{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, SplitUserIDs(tc.input))
		})
	}
}

func TestLoadJson_OverlaysOnlyProvidedValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"database_dsn": "postgres://pg:pg@localhost/slackpulse",
		"slack_user_ids": "U1, U2",
		"sync_interval": "30m",
		"advance_on_failure": false,
		"history_days": 30
	}`), 0o600))

	cfg := &Config{}
	cfg.LoadDefaults()
	require.NoError(t, loadJson(cfg, path))

	assert.Equal(t, "postgres://pg:pg@localhost/slackpulse", cfg.DatabaseDSN)
	assert.Equal(t, []string{"U1", "U2"}, cfg.SlackUserIDs)
	assert.Equal(t, 30*time.Minute, cfg.SyncInterval)
	assert.False(t, cfg.AdvanceOnFailure)
	assert.Equal(t, 30, cfg.HistoryDays)

	// untouched fields keep their defaults
	assert.Equal(t, ":8080", cfg.EndpointAddrHTTP)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
}

func TestLoadJson_Errors(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()

	require.Error(t, loadJson(cfg, filepath.Join(t.TempDir(), "missing.json")))

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{`), 0o600))
	require.Error(t, loadJson(cfg, bad))
}
