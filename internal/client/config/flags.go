package config

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"
)

const (
	flagConfig       = "config"
	flagEnvFile      = "env-file"
	flagBaseURL      = "base-url"
	flagAPIKey       = "api-key"
	flagTimeout      = "timeout"
	flagSessionDB    = "session-db"
	flagLogLevel     = "log-level"
	flagLogFormat    = "log-format"
	flagLogFile      = "log-file"
	flagLocale       = "locale"
	flagDownloadDir  = "download-dir"
	flagOTLPEndpoint = "otlp-endpoint"
)

// BindFlags registers the configuration flags on fs. The defaults shown in
// help come from (*Config).LoadDefaults; only flags the user sets take part
// in LoadConfig.
func BindFlags(fs *pflag.FlagSet) {
	var d Config
	d.LoadDefaults()

	fs.StringP(flagConfig, "c", "", "path to a JSON/JSONC or YAML config file (env "+EnvPrefix+"CONFIG)")
	fs.String(flagEnvFile, "", "dotenv file to load (default .env if present)")
	fs.StringP(flagBaseURL, "a", d.BaseURL, "directory API base URL")
	fs.String(flagAPIKey, d.APIKey, "value of the x-api-key header")
	fs.Duration(flagTimeout, d.RequestTimeout.Duration, "per-request timeout")
	fs.String(flagSessionDB, d.SessionDB, "SQLite file that keeps the login between runs")
	fs.String(flagLogLevel, d.LogLevel, "log level: debug, info, warn, error")
	fs.String(flagLogFormat, d.LogFormat, "log format: text or json")
	fs.String(flagLogFile, d.LogFile, "write logs to this file")
	fs.String(flagLocale, d.Locale, "collation locale for sorting (BCP 47)")
	fs.String(flagDownloadDir, d.DownloadDir, "directory for downloaded avatars")
	fs.String(flagOTLPEndpoint, d.OTLPEndpoint, "OTLP/HTTP trace endpoint (host:port); empty disables tracing")
}

// applyFlags copies every explicitly set flag into cfg.
func applyFlags(fs *pflag.FlagSet, cfg *Config) error {
	strs := map[string]*string{
		flagBaseURL:      &cfg.BaseURL,
		flagAPIKey:       &cfg.APIKey,
		flagSessionDB:    &cfg.SessionDB,
		flagLogLevel:     &cfg.LogLevel,
		flagLogFormat:    &cfg.LogFormat,
		flagLogFile:      &cfg.LogFile,
		flagLocale:       &cfg.Locale,
		flagDownloadDir:  &cfg.DownloadDir,
		flagOTLPEndpoint: &cfg.OTLPEndpoint,
	}
	for name, dst := range strs {
		if !fs.Changed(name) {
			continue
		}
		v, err := fs.GetString(name)
		if err != nil {
			return fmt.Errorf("flag --%s: %w", name, err)
		}
		*dst = v
	}

	if fs.Changed(flagTimeout) {
		v, err := fs.GetDuration(flagTimeout)
		if err != nil {
			return fmt.Errorf("flag --%s: %w", flagTimeout, err)
		}
		cfg.RequestTimeout = Duration{v}
	}
	return nil
}

func configPath(fs *pflag.FlagSet) string {
	if p := stringFlag(fs, flagConfig); p != "" {
		return p
	}
	return os.Getenv(EnvPrefix + "CONFIG")
}

func stringFlag(fs *pflag.FlagSet, name string) string {
	if fs == nil || fs.Lookup(name) == nil {
		return ""
	}
	v, _ := fs.GetString(name)
	return v
}
