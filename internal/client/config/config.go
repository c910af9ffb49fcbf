package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"golang.org/x/text/language"

	"github.com/dmitrijs2005/userdir/internal/common"
	"github.com/dmitrijs2005/userdir/internal/logging"
)

// EnvPrefix prefixes every environment variable the client reads.
const EnvPrefix = "USERDIR_"

// Config holds runtime settings for the userdir client.
type Config struct {
	// BaseURL is the root of the directory API, e.g. https://reqres.in/api.
	BaseURL string `json:"base_url" yaml:"base_url" env:"BASE_URL"`
	// APIKey is sent as x-api-key. Empty disables the header.
	APIKey         string   `json:"api_key" yaml:"api_key" env:"API_KEY"`
	RequestTimeout Duration `json:"request_timeout" yaml:"request_timeout" env:"REQUEST_TIMEOUT"`

	// SessionDB is a SQLite file that keeps the login between runs. Empty
	// keeps the session in memory only.
	SessionDB string `json:"session_db" yaml:"session_db" env:"SESSION_DB"`

	LogLevel  string `json:"log_level" yaml:"log_level" env:"LOG_LEVEL"`
	LogFormat string `json:"log_format" yaml:"log_format" env:"LOG_FORMAT"`
	// LogFile receives the logs. Empty means stderr for the REPL and no
	// logging at all for the TUI.
	LogFile string `json:"log_file" yaml:"log_file" env:"LOG_FILE"`

	// Locale drives collation of the sorted list (BCP 47).
	Locale      string `json:"locale" yaml:"locale" env:"LOCALE"`
	DownloadDir string `json:"download_dir" yaml:"download_dir" env:"DOWNLOAD_DIR"`

	// OTLPEndpoint enables trace export over OTLP/HTTP when set.
	OTLPEndpoint string `json:"otlp_endpoint" yaml:"otlp_endpoint" env:"OTLP_ENDPOINT"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.BaseURL = common.DefaultBaseURL
	c.APIKey = common.DefaultAPIKey
	c.RequestTimeout = Duration{10 * time.Second}
	c.SessionDB = ""
	c.LogLevel = "warn"
	c.LogFormat = "text"
	c.LogFile = ""
	c.Locale = "en"
	c.DownloadDir = "."
	c.OTLPEndpoint = ""
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error

	u, err := url.Parse(c.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, fmt.Errorf("base_url %q: must be an absolute http(s) URL", c.BaseURL))
	}
	if c.RequestTimeout.Duration <= 0 {
		errs = append(errs, fmt.Errorf("request_timeout %s: must be positive", c.RequestTimeout))
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("log_level: %w", err))
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log_format %q: must be text or json", c.LogFormat))
	}
	if _, err := language.Parse(c.Locale); err != nil {
		errs = append(errs, fmt.Errorf("locale %q: %w", c.Locale, err))
	}
	return errors.Join(errs...)
}

// LoadConfig builds a Config from defaults, the dotenv file, the config
// file, the environment and finally the flags in fs that were set. fs must
// have been prepared with BindFlags and parsed. A nil fs skips the flag
// stage.
func LoadConfig(fs *pflag.FlagSet) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := loadDotEnv(stringFlag(fs, flagEnvFile)); err != nil {
		return nil, err
	}

	if path := configPath(fs); path != "" {
		if err := parseFile(path, cfg); err != nil {
			return nil, err
		}
	}

	if err := parseEnv(cfg); err != nil {
		return nil, err
	}

	if fs != nil {
		if err := applyFlags(fs, cfg); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
