package types

import "time"

// HTTPConfig holds shared HTTP settings used by anything that talks to the
// catalog backend.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "cite-catalog/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// ClientConfig holds settings for the REST client.
type ClientConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// BaseURL is the backend origin, e.g. "http://localhost:8080".
	// API paths (/api/...) are appended to it.
	BaseURL string `json:"base_url" yaml:"base_url" mapstructure:"base_url"`

	// APIToken, when set, is sent as a bearer token.
	APIToken string `json:"api_token,omitempty" yaml:"api_token,omitempty" mapstructure:"api_token"`

	// DownloadDir is where exports are written (default ".").
	DownloadDir string `json:"download_dir" yaml:"download_dir" mapstructure:"download_dir"`
}

// UIConfig holds presentation settings shared by the TUI and CLI output.
type UIConfig struct {
	// Locale is a BCP 47 tag selecting message and timestamp language
	// (default "en").
	Locale string `json:"locale" yaml:"locale" mapstructure:"locale"`

	// NotificationTTL is how long a notification stays visible (default 3s).
	NotificationTTL time.Duration `json:"notification_ttl" yaml:"notification_ttl" mapstructure:"notification_ttl"`
}

// ServerConfig holds settings for the reference backend.
type ServerConfig struct {
	// Addr is the listen address (default ":8080").
	Addr string `json:"addr" yaml:"addr" mapstructure:"addr"`

	// DBPath is the SQLite database file (default "citations.db").
	DBPath string `json:"db_path" yaml:"db_path" mapstructure:"db_path"`
}

// Config groups all settings read from cite-catalog.yaml.
type Config struct {
	Client ClientConfig `json:"client" yaml:"client" mapstructure:"client"`
	UI     UIConfig     `json:"ui" yaml:"ui" mapstructure:"ui"`
	Server ServerConfig `json:"server" yaml:"server" mapstructure:"server"`
}

const (
	DefaultBaseURL         = "http://localhost:8080"
	DefaultTimeout         = 30 * time.Second
	DefaultUserAgent       = "cite-catalog/0.1"
	DefaultLocale          = "en"
	DefaultNotificationTTL = 3 * time.Second
	DefaultAddr            = ":8080"
	DefaultDBPath          = "citations.db"
)

// WithDefaults returns a copy of c with zero values replaced by defaults.
func (c Config) WithDefaults() Config {
	if c.Client.BaseURL == "" {
		c.Client.BaseURL = DefaultBaseURL
	}
	if c.Client.Timeout <= 0 {
		c.Client.Timeout = DefaultTimeout
	}
	if c.Client.UserAgent == "" {
		c.Client.UserAgent = DefaultUserAgent
	}
	if c.Client.DownloadDir == "" {
		c.Client.DownloadDir = "."
	}
	if c.UI.Locale == "" {
		c.UI.Locale = DefaultLocale
	}
	if c.UI.NotificationTTL <= 0 {
		c.UI.NotificationTTL = DefaultNotificationTTL
	}
	if c.Server.Addr == "" {
		c.Server.Addr = DefaultAddr
	}
	if c.Server.DBPath == "" {
		c.Server.DBPath = DefaultDBPath
	}
	return c
}
