// Package config loads runtime configuration for the userdir client.
//
// Sources & precedence (later wins)
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. A dotenv file (--env-file, default ".env" when present). Variables
//     already set in the process environment are not overridden.
//  3. An optional config file selected with -c/--config or USERDIR_CONFIG.
//     Files ending in .yaml or .yml are YAML; anything else is JSON with
//     comments and trailing commas allowed.
//  4. Environment variables prefixed with USERDIR_ (USERDIR_BASE_URL, ...).
//  5. Command-line flags that were set explicitly.
//
// # File schema
//
// Durations are either strings like "10s" or integer nanoseconds:
//
//	{
//	  // reqres-compatible endpoint
//	  "base_url": "https://reqres.in/api",
//	  "api_key": "reqres-free-v1",
//	  "request_timeout": "10s",
//	  "session_db": "~/.userdir/session.db",
//	  "log_level": "info",
//	  "log_format": "json",
//	  "log_file": "/tmp/userdir.log",
//	  "locale": "de",
//	  "download_dir": "./avatars",
//	  "otlp_endpoint": "localhost:4318",
//	}
package config
