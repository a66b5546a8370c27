package config

import (
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvConfig holds all environment-based configuration.
// Every variable is read with the CRITERIA_ prefix, e.g. CRITERIA_PORT.
type EnvConfig struct {
	// Host is the server host to bind to.
	// Env: HOST (default: 0.0.0.0)
	Host string `envconfig:"HOST" default:"0.0.0.0"`

	// Port is the server port to listen on.
	// Env: PORT (default: 8080)
	Port int `envconfig:"PORT" default:"8080"`

	// DBURL is the database connection URL used to render SQL.
	// Env: DB_URL (default: sqlite:///:memory:)
	DBURL string `envconfig:"DB_URL" default:"sqlite:///:memory:"`

	// LogLevel is the log verbosity level.
	// Env: LOG_LEVEL (default: INFO)
	LogLevel string `envconfig:"LOG_LEVEL" default:"INFO"`

	// LogFormat is the log output format (pretty or json).
	// Env: LOG_FORMAT (default: pretty)
	LogFormat string `envconfig:"LOG_FORMAT" default:"pretty"`

	// OptionPolicy decides what happens to unrecognised passthrough options:
	// permissive, strict or lenient.
	// Env: OPTION_POLICY (default: permissive)
	OptionPolicy string `envconfig:"OPTION_POLICY" default:"permissive"`

	// AllowedOptions is a comma-separated list of extra accepted option names.
	// Env: ALLOWED_OPTIONS
	AllowedOptions []string `envconfig:"ALLOWED_OPTIONS"`

	// DefaultLimit is the row count for documents using "limit: default".
	// Env: DEFAULT_LIMIT (default: 20)
	DefaultLimit int `envconfig:"DEFAULT_LIMIT" default:"20"`

	// TypesFile is a YAML or JSON file listing the known document types.
	// Env: TYPES_FILE
	TypesFile string `envconfig:"TYPES_FILE"`

	// ShutdownTimeout bounds graceful shutdown of the server.
	// Env: SHUTDOWN_TIMEOUT (default: 10s)
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
}

// LoadFromEnv loads configuration from CRITERIA_ prefixed environment
// variables.
func LoadFromEnv() (EnvConfig, error) {
	return LoadFromEnvWithPrefix(EnvPrefix)
}

// LoadFromEnvWithPrefix loads configuration with a custom prefix.
func LoadFromEnvWithPrefix(prefix string) (EnvConfig, error) {
	var cfg EnvConfig
	if err := envconfig.Process(prefix, &cfg); err != nil {
		return EnvConfig{}, err
	}
	return cfg, nil
}

// ToAppConfig converts EnvConfig to AppConfig.
func (e EnvConfig) ToAppConfig() AppConfig {
	cfg := NewAppConfig()

	if e.Host != "" {
		cfg = applyOption(cfg, WithHost(e.Host))
	}
	if e.Port != 0 {
		cfg = applyOption(cfg, WithPort(e.Port))
	}
	if e.DBURL != "" {
		cfg = applyOption(cfg, WithDBURL(e.DBURL))
	}
	if e.LogLevel != "" {
		cfg = applyOption(cfg, WithLogLevel(e.LogLevel))
	}
	if e.LogFormat != "" {
		cfg = applyOption(cfg, WithLogFormat(parseLogFormat(e.LogFormat)))
	}
	if e.OptionPolicy != "" {
		cfg = applyOption(cfg, WithOptionPolicy(e.OptionPolicy))
	}
	if len(e.AllowedOptions) > 0 {
		cfg = applyOption(cfg, WithAllowedOptions(trimAll(e.AllowedOptions)))
	}
	if e.DefaultLimit > 0 {
		cfg = applyOption(cfg, WithDefaultLimit(e.DefaultLimit))
	}
	if e.TypesFile != "" {
		cfg = applyOption(cfg, WithTypesFile(e.TypesFile))
	}
	if e.ShutdownTimeout > 0 {
		cfg = applyOption(cfg, WithShutdownTimeout(e.ShutdownTimeout))
	}

	return cfg
}

// applyOption applies an option to the config.
func applyOption(cfg AppConfig, opt AppConfigOption) AppConfig {
	opt(&cfg)
	return cfg
}

// parseLogFormat parses a log format string.
func parseLogFormat(s string) LogFormat {
	switch strings.ToLower(s) {
	case "json":
		return LogFormatJSON
	default:
		return LogFormatPretty
	}
}

func trimAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
