// Package config handles configuration for the service, including defaults,
// JSON overlay, and command-line flags.
package config

import "time"

// Config holds runtime settings for the slackpulse server.
//
// Fields:
//   - EndpointAddrHTTP: bind address for the HTTP API.
//   - DatabaseDSN: SQLite path/URI or a postgres:// DSN (pgx).
//   - SlackToken: Slack bot token used by the Web API client.
//   - SlackUserIDs: the users whose activity is tracked.
//   - HistoryDays: how many days the charts cover.
//   - MaxPagesPerChannel: safety cap on history pages fetched per channel walk.
//   - RequestTimeout: per-call bound on Slack API requests.
//   - SyncInterval: period of the background sync ticker; 0 disables it.
//   - AdvanceOnFailure: move the checkpoint forward even when users failed.
//   - SecretKey: HMAC secret for signing JWTs (HS256). Do not use test defaults in prod.
//   - AdminUser / AdminPasswordHash: credentials for the sync-trigger endpoint
//     (bcrypt hash, see cmd/passwd).
//   - AccessTokenValidityDuration: admin token lifetime.
//   - ExportEnabled + S3 settings: optional snapshot upload after each pass.
type Config struct {
	EndpointAddrHTTP            string
	DatabaseDSN                 string
	SlackToken                  string
	SlackUserIDs                []string
	HistoryDays                 int
	MaxPagesPerChannel          int
	RequestTimeout              time.Duration
	SyncInterval                time.Duration
	AdvanceOnFailure            bool
	SecretKey                   string
	AdminUser                   string
	AdminPasswordHash           string
	AccessTokenValidityDuration time.Duration
	ExportEnabled               bool
	S3RootUser                  string
	S3RootPassword              string
	S3Bucket                    string
	S3Region                    string
	S3BaseEndpoint              string
}

// LoadDefaults populates Config with sensible development defaults.
// NOTE: These values are insecure for production and should be overridden.
func (c *Config) LoadDefaults() {
	c.EndpointAddrHTTP = ":8080"
	c.DatabaseDSN = "file:slackpulse.sqlite"
	c.HistoryDays = 90
	c.MaxPagesPerChannel = 100
	c.RequestTimeout = 30 * time.Second
	c.SyncInterval = 1 * time.Hour
	c.AdvanceOnFailure = true
	c.SecretKey = "secretKey"
	c.AdminUser = "admin"
	c.AccessTokenValidityDuration = 15 * time.Minute
	c.S3Bucket = "slackpulse"
	c.S3Region = "us-east-1"
	c.S3BaseEndpoint = "http://127.0.0.1:9000/"
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file and finally from command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
