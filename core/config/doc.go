// Package config provides configuration management for the game tracker.
//
// It utilizes Viper for loading configuration from environment variables and an
// optional .env file. Defaults come from the `default` struct tags of each partial
// configuration.
//
// # Configuration Structure
//
//   - Server: local HTTP API (host, port, API key)
//   - Database: local store driver and location
//   - Remote: remote authority base URL and timeout
//   - Credentials: bearer token and refresh settings
//   - Storage: optional archive bucket for offline game payloads
//   - Tracker: which side this device records by default
//   - Log: logging level and format
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Remote.BaseURL)
package config
