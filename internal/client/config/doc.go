// Package config loads runtime configuration for the pharmadmin REPL.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via flags: -c or -config.
//  3. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string   API base URL
//	-t int      request timeout (seconds)
//	-d string   session database file
//	-p int      rows per list page
//	-l int      most changes listed one by one before a save
//	-v string   log level (debug, info, warn, error)
//
// # JSON schema
//
//	{
//	  "api_base_url": "http://127.0.0.1:8080/api/",
//	  "request_timeout": "15s",
//	  "session_db_path": "pharmadmin.db",
//	  "page_size": 10,
//	  "confirm_limit": 5,
//	  "log_level": "warn"
//	}
package config
