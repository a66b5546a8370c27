// Package config provides application configuration.
package config

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// Default configuration values.
const (
	DefaultHost            = "0.0.0.0"
	DefaultPort            = 8080
	DefaultDBURL           = "sqlite:///:memory:"
	DefaultLogLevel        = "INFO"
	DefaultOptionPolicy    = "permissive"
	DefaultLimit           = 20
	DefaultShutdownTimeout = 10 * time.Second
)

// EnvPrefix prefixes every environment variable read by LoadFromEnv.
const EnvPrefix = "CRITERIA"

// LogFormat represents the log output format.
type LogFormat string

// LogFormat values.
const (
	LogFormatPretty LogFormat = "pretty"
	LogFormatJSON   LogFormat = "json"
)

// AppConfig holds the resolved application configuration.
type AppConfig struct {
	host            string
	port            int
	dbURL           string
	logLevel        string
	logFormat       LogFormat
	optionPolicy    string
	allowedOptions  []string
	defaultLimit    int
	typesFile       string
	shutdownTimeout time.Duration
}

// NewAppConfig creates an AppConfig with defaults.
func NewAppConfig() AppConfig {
	return AppConfig{
		host:            DefaultHost,
		port:            DefaultPort,
		dbURL:           DefaultDBURL,
		logLevel:        DefaultLogLevel,
		logFormat:       LogFormatPretty,
		optionPolicy:    DefaultOptionPolicy,
		defaultLimit:    DefaultLimit,
		shutdownTimeout: DefaultShutdownTimeout,
	}
}

// NewAppConfigWithOptions creates an AppConfig with defaults and applies opts.
func NewAppConfigWithOptions(opts ...AppConfigOption) AppConfig {
	cfg := NewAppConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// Apply returns a copy of the config with opts applied.
func (c AppConfig) Apply(opts ...AppConfigOption) AppConfig {
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// Host returns the server host.
func (c AppConfig) Host() string { return c.host }

// Port returns the server port.
func (c AppConfig) Port() int { return c.port }

// Addr returns the host:port listen address.
func (c AppConfig) Addr() string { return fmt.Sprintf("%s:%d", c.host, c.port) }

// DBURL returns the database URL used to render criteria.
func (c AppConfig) DBURL() string { return c.dbURL }

// LogLevel returns the log level.
func (c AppConfig) LogLevel() string { return c.logLevel }

// LogFormat returns the log format.
func (c AppConfig) LogFormat() LogFormat { return c.logFormat }

// OptionPolicy returns the passthrough option policy name.
func (c AppConfig) OptionPolicy() string { return c.optionPolicy }

// AllowedOptions returns the extra option names accepted on top of the
// built-in passthrough options.
func (c AppConfig) AllowedOptions() []string { return slices.Clone(c.allowedOptions) }

// DefaultLimit returns the row count documents get when they ask for the
// default limit.
func (c AppConfig) DefaultLimit() int { return c.defaultLimit }

// TypesFile returns the path of the document types file, if any.
func (c AppConfig) TypesFile() string { return c.typesFile }

// ShutdownTimeout returns how long the server waits for requests to drain.
func (c AppConfig) ShutdownTimeout() time.Duration { return c.shutdownTimeout }

// AppConfigOption is a functional option for AppConfig.
type AppConfigOption func(*AppConfig)

// WithHost sets the server host.
func WithHost(host string) AppConfigOption {
	return func(c *AppConfig) { c.host = host }
}

// WithPort sets the server port.
func WithPort(port int) AppConfigOption {
	return func(c *AppConfig) { c.port = port }
}

// WithDBURL sets the database URL.
func WithDBURL(url string) AppConfigOption {
	return func(c *AppConfig) { c.dbURL = url }
}

// WithLogLevel sets the log level.
func WithLogLevel(level string) AppConfigOption {
	return func(c *AppConfig) { c.logLevel = level }
}

// WithLogFormat sets the log format.
func WithLogFormat(format LogFormat) AppConfigOption {
	return func(c *AppConfig) { c.logFormat = format }
}

// WithOptionPolicy sets the passthrough option policy.
func WithOptionPolicy(policy string) AppConfigOption {
	return func(c *AppConfig) { c.optionPolicy = strings.ToLower(policy) }
}

// WithAllowedOptions sets the extra accepted option names.
func WithAllowedOptions(names []string) AppConfigOption {
	return func(c *AppConfig) { c.allowedOptions = slices.Clone(names) }
}

// WithDefaultLimit sets the default row count.
func WithDefaultLimit(n int) AppConfigOption {
	return func(c *AppConfig) { c.defaultLimit = n }
}

// WithTypesFile sets the document types file.
func WithTypesFile(path string) AppConfigOption {
	return func(c *AppConfig) { c.typesFile = path }
}

// WithShutdownTimeout sets the graceful shutdown timeout.
func WithShutdownTimeout(d time.Duration) AppConfigOption {
	return func(c *AppConfig) { c.shutdownTimeout = d }
}
