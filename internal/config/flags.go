package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/slackpulse/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-d string   database DSN (SQLite path or postgres:// URI)
//	-k string   Slack bot token
//	-u string   comma-separated Slack user IDs
//	-n int      history window, days
//	-s string   JWT HMAC secret key
//	-i int      sync interval, minutes (0 disables the ticker)
//
// Notes:
//   - The function first filters os.Args to only the flags it recognizes
//     using flagx.FilterArgs, avoiding collisions with other components.
//   - The sync interval is accepted as an integer in minutes and converted
//     to a time.Duration.
func parseFlags(config *Config) {
	// Filter args to include only the flags handled here.
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-k", "-u", "-n", "-s", "-i"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SlackToken, "k", config.SlackToken, "slack bot token")
	fs.IntVar(&config.HistoryDays, "n", config.HistoryDays, "history window in days")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	userIDs := fs.String("u", "", "comma-separated slack user ids")
	syncIntervalMinutes := fs.Int("i", int(config.SyncInterval.Minutes()), "sync interval (in minutes, 0 disables)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	if *userIDs != "" {
		config.SlackUserIDs = SplitUserIDs(*userIDs)
	}
	config.SyncInterval = time.Duration(*syncIntervalMinutes) * time.Minute
}
