package config

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/dmitrijs2005/slackpulse/internal/flagx"
	"github.com/dmitrijs2005/slackpulse/internal/timex"
)

// JsonConfig defines a configuration structure tailored for JSON
// unmarshalling. It uses timex.Duration for interval fields, which allows
// parsing both string values such as "30s" and integer nanoseconds, and a
// comma-separated string for the tracked user list.
//
// This struct is an intermediate DTO used only for reading JSON configuration
// files. After unmarshalling, its fields are copied into the runtime Config.
type JsonConfig struct {
	EndpointAddrHTTP            string         `json:"endpoint_addr_http"`
	DatabaseDSN                 string         `json:"database_dsn"`
	SlackToken                  string         `json:"slack_token"`
	SlackUserIDs                string         `json:"slack_user_ids"`
	HistoryDays                 int            `json:"history_days"`
	MaxPagesPerChannel          int            `json:"max_pages_per_channel"`
	RequestTimeout              timex.Duration `json:"request_timeout"`
	SyncInterval                timex.Duration `json:"sync_interval"`
	AdvanceOnFailure            *bool          `json:"advance_on_failure"`
	SecretKey                   string         `json:"secret_key"`
	AdminUser                   string         `json:"admin_user"`
	AdminPasswordHash           string         `json:"admin_password_hash"`
	AccessTokenValidityDuration timex.Duration `json:"access_token_validity_duration"`
	ExportEnabled               bool           `json:"export_enabled"`
	S3RootUser                  string         `json:"s3_root_user"`
	S3RootPassword              string         `json:"s3_root_password"`
	S3Bucket                    string         `json:"s3_bucket"`
	S3Region                    string         `json:"s3_region"`
	S3BaseEndpoint              string         `json:"s3_base_endpoint"`
}

// SplitUserIDs normalizes a comma-separated user list, trimming whitespace
// and dropping empty items.
func SplitUserIDs(s string) []string {
	parts := strings.Split(s, ",")
	ids := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			ids = append(ids, trimmed)
		}
	}
	return ids
}

// parseJson loads configuration values from a JSON file into the provided
// Config instance. The file path comes from the -c or -config command-line
// flags; if neither is set, no JSON file is loaded. If the file cannot be
// read or contains invalid JSON, the function panics.
func parseJson(config *Config) {

	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	if err := loadJson(config, jsonConfigFile); err != nil {
		panic(err)
	}
}

// loadJson reads the JSON file at path and overlays non-empty values onto
// config.
func loadJson(config *Config, path string) error {

	c := &JsonConfig{}

	file, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(file, c); err != nil {
		return err
	}

	if c.EndpointAddrHTTP != "" {
		config.EndpointAddrHTTP = c.EndpointAddrHTTP
	}
	if c.DatabaseDSN != "" {
		config.DatabaseDSN = c.DatabaseDSN
	}
	if c.SlackToken != "" {
		config.SlackToken = c.SlackToken
	}
	if c.SlackUserIDs != "" {
		config.SlackUserIDs = SplitUserIDs(c.SlackUserIDs)
	}
	if c.HistoryDays > 0 {
		config.HistoryDays = c.HistoryDays
	}
	if c.MaxPagesPerChannel > 0 {
		config.MaxPagesPerChannel = c.MaxPagesPerChannel
	}
	if c.RequestTimeout.Duration > 0 {
		config.RequestTimeout = c.RequestTimeout.Duration
	}
	if c.SyncInterval.Duration > 0 {
		config.SyncInterval = c.SyncInterval.Duration
	}
	if c.AdvanceOnFailure != nil {
		config.AdvanceOnFailure = *c.AdvanceOnFailure
	}
	if c.SecretKey != "" {
		config.SecretKey = c.SecretKey
	}
	if c.AdminUser != "" {
		config.AdminUser = c.AdminUser
	}
	if c.AdminPasswordHash != "" {
		config.AdminPasswordHash = c.AdminPasswordHash
	}
	if c.AccessTokenValidityDuration.Duration > 0 {
		config.AccessTokenValidityDuration = c.AccessTokenValidityDuration.Duration
	}
	if c.ExportEnabled {
		config.ExportEnabled = true
	}
	if c.S3RootUser != "" {
		config.S3RootUser = c.S3RootUser
	}
	if c.S3RootPassword != "" {
		config.S3RootPassword = c.S3RootPassword
	}
	if c.S3Bucket != "" {
		config.S3Bucket = c.S3Bucket
	}
	if c.S3Region != "" {
		config.S3Region = c.S3Region
	}
	if c.S3BaseEndpoint != "" {
		config.S3BaseEndpoint = c.S3BaseEndpoint
	}

	return nil
}
