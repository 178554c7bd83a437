package config

import (
	"flag"
	"time"
)

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-a remote store base address in format [host]:[port] or full URL
//	-d local database file path
//	-t remote store bearer token
//	-account account identifier
//	-c/-config json file path with configs
//	-request-timeout outbound request timeout (e.g., "30s", "1m")
//	-sync-interval periodic sync interval (e.g., "5m")
func ParseFlags() *StructuredConfig {
	var remoteAddress string
	var databaseDSN string
	var token string
	var accountID string
	var jsonConfigPath string
	var requestTimeout time.Duration
	var syncInterval time.Duration

	flag.StringVar(&remoteAddress, "a", "", "Remote store address host:port or URL")
	flag.StringVar(&databaseDSN, "d", "", "Local database file path")
	flag.StringVar(&token, "t", "", "Remote store bearer token")
	flag.StringVar(&accountID, "account", "", "Loyalty account identifier")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	flag.DurationVar(&syncInterval, "sync-interval", 0, "Periodic sync interval (e.g., 5m)")

	flag.Parse()

	return &StructuredConfig{
		App: App{
			AccountID: accountID,
		},
		Storage: Storage{
			DB: DB{DSN: databaseDSN},
		},
		Adapter: Adapter{
			HTTPAddress:    remoteAddress,
			Token:          token,
			RequestTimeout: requestTimeout,
		},
		Workers: Workers{
			SyncInterval: syncInterval,
		},
		JSONFilePath: jsonConfigPath,
	}
}
