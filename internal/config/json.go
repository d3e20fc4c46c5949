package config

import (
	"encoding/json"
	"flag"
	"os"

	"staffkeeper/internal/flagx"
	"staffkeeper/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies
// on timex.Duration so JSON can specify the timeout either as a string
// like "30s" or as integer nanoseconds.
type JsonConfig struct {
	ServerURL   string         `json:"server_url"`
	DataDir     string         `json:"data_dir"`
	LogLevel    string         `json:"log_level"`
	HTTPTimeout timex.Duration `json:"http_timeout"`
}

// configFilePath resolves the JSON config file location from the -c or
// -config command-line flags. Returns "" when neither is present.
func configFilePath() string {
	args := flagx.Subset(os.Args[1:], flagx.ConfigFileFlags())

	fs := flag.NewFlagSet("config-file", flag.ContinueOnError)
	short := fs.String("c", "", "path to JSON config file")
	long := fs.String("config", "", "path to JSON config file")
	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	if *long != "" {
		return *long
	}
	return *short
}

// parseJson overlays cfg with values loaded from a JSON file selected via
// the -c or -config flags. With no file selected it is a no-op. Empty JSON
// fields leave the current value untouched. Read or unmarshal errors panic,
// matching the fail-fast startup behavior of parseFlags.
func parseJson(cfg *Config) {
	path := configFilePath()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerURL != "" {
		cfg.ServerURL = jc.ServerURL
	}
	if jc.DataDir != "" {
		cfg.DataDir = jc.DataDir
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
	if jc.HTTPTimeout.Duration != 0 {
		cfg.HTTPTimeout = jc.HTTPTimeout.Duration
	}
}
