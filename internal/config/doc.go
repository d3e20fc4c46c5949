// Package config loads runtime configuration for the staffkeeper console.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the backend REST API
//	-t int      request timeout (seconds)
//	-d string   data directory for the local session store
//	-l string   log level
//
// # JSON schema
//
// The JSON loader uses timex.Duration for the timeout, so values can be
// either strings like "30s" or integer nanoseconds:
//
//	{
//	  "server_url": "https://api.example.com",
//	  "http_timeout": "30s",
//	  "data_dir": "/var/lib/staffkeeper",
//	  "log_level": "debug"
//	}
//
// Note: This package does not read environment variables; use the JSON
// file or flags to configure values.
package config
