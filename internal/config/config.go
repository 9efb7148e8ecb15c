package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	DefaultAddr     = "127.0.0.1:3000"
	DefaultAuditDSN = "file:departamento-eventos?mode=memory&cache=shared"
)

// Config holds every runtime setting of the API server.
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Validation ValidationConfig `mapstructure:"validation"`
	Audit      AuditConfig      `mapstructure:"audit"`
	Seed       SeedConfig       `mapstructure:"seed"`
	Logging    LoggingConfig    `mapstructure:"logging"`
}

type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	BasePath        string        `mapstructure:"base_path"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// ValidationConfig toggles the optional field checks.
type ValidationConfig struct {
	EnforceCargoEnum bool `mapstructure:"enforce_cargo_enum"`
	EnforceNotFuture bool `mapstructure:"enforce_not_future"`
}

type AuditConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	DSN     string `mapstructure:"dsn"`
}

// SeedConfig controls the fixtures loaded at startup. An empty File uses the
// built-in fixtures.
type SeedConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	File    string `mapstructure:"file"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", DefaultAddr)
	v.SetDefault("server.base_path", "")
	v.SetDefault("server.shutdown_timeout", 5*time.Second)

	v.SetDefault("validation.enforce_cargo_enum", true)
	v.SetDefault("validation.enforce_not_future", true)

	v.SetDefault("audit.enabled", true)
	v.SetDefault("audit.dsn", DefaultAuditDSN)

	v.SetDefault("seed.enabled", true)
	v.SetDefault("seed.file", "")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}

// Load resolves the configuration from defaults, an optional YAML file, and
// DEPARTAMENTO_* environment variables. Flags bound to v by the caller win.
func Load(v *viper.Viper, file string) (*Config, error) {
	if v == nil {
		v = viper.New()
	}
	SetDefaults(v)
	v.SetEnvPrefix("DEPARTAMENTO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return &cfg, nil
}

// Default returns the configuration used when nothing is overridden.
func Default() *Config {
	v := viper.New()
	SetDefaults(v)
	var cfg Config
	_ = v.Unmarshal(&cfg)
	return &cfg
}

// Validate checks that required settings are present and consistent.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Server.Addr) == "" {
		return fmt.Errorf("server.addr must not be empty")
	}
	if c.Server.BasePath != "" && !strings.HasPrefix(c.Server.BasePath, "/") {
		return fmt.Errorf("server.base_path must start with '/'")
	}
	if c.Server.ShutdownTimeout < 0 {
		return fmt.Errorf("server.shutdown_timeout must be >= 0")
	}
	if c.Audit.Enabled && strings.TrimSpace(c.Audit.DSN) == "" {
		return fmt.Errorf("audit.dsn is required when audit is enabled")
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error")
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("logging.format must be 'json' or 'console'")
	}
	return nil
}
