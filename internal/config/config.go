package config

import "time"

// Config holds runtime settings for the staffkeeper console.
//
// Fields:
//   - ServerURL: base URL of the backend REST API.
//   - HTTPTimeout: per-request timeout applied by the HTTP client.
//   - DataDir: directory holding the local session store and its key file.
//   - LogLevel: zerolog level name (debug, info, warn, error).
type Config struct {
	ServerURL   string
	DataDir     string
	LogLevel    string
	HTTPTimeout time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:8080"
	c.HTTPTimeout = 30 * time.Second
	c.DataDir = "."
	c.LogLevel = "info"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
