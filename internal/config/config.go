// Package config loads settings from defaults, an optional YAML file, a .env
// file and DAYZEN_* environment variables, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const envPrefix = "DAYZEN"

type Config struct {
	DB       DBConfig     `mapstructure:"db"`
	Timezone string       `mapstructure:"timezone" validate:"required"`
	Log      LogConfig    `mapstructure:"log"`
	Server   ServerConfig `mapstructure:"server"`
	Auth     AuthConfig   `mapstructure:"auth"`
	Source   SourceConfig `mapstructure:"source"`
}

type DBConfig struct {
	Path string `mapstructure:"path" validate:"required"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=json console"`
	File   string `mapstructure:"file"`
}

type ServerConfig struct {
	Addr         string        `mapstructure:"addr" validate:"required"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout" validate:"gt=0"`
	WriteTimeout time.Duration `mapstructure:"write_timeout" validate:"gt=0"`
}

type AuthConfig struct {
	Secret string        `mapstructure:"secret" validate:"omitempty,min=16"`
	Issuer string        `mapstructure:"issuer" validate:"required"`
	TTL    time.Duration `mapstructure:"ttl" validate:"gt=0"`
}

type SourceConfig struct {
	MockFallback bool          `mapstructure:"mock_fallback"`
	Seed         int64         `mapstructure:"seed"`
	Breaker      BreakerConfig `mapstructure:"breaker"`
}

type BreakerConfig struct {
	MaxFailures uint32        `mapstructure:"max_failures" validate:"gte=1"`
	Timeout     time.Duration `mapstructure:"timeout" validate:"gt=0"`
}

// ErrNoSecret is returned by RequireSecret when no signing key is configured.
var ErrNoSecret = errors.New("auth.secret is not set (use DAYZEN_AUTH_SECRET)")

var validate = validator.New()

// New returns a viper instance with defaults and environment binding applied.
// Flags can be bound to it before Load.
func New() *viper.Viper {
	v := viper.New()

	dbPath := "dayzen.db"
	if dir, err := os.UserConfigDir(); err == nil {
		dbPath = filepath.Join(dir, "dayzen", "dayzen.db")
	}
	v.SetDefault("db.path", dbPath)
	v.SetDefault("timezone", "Local")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.file", "")
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.read_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 10*time.Second)
	v.SetDefault("auth.secret", "")
	v.SetDefault("auth.issuer", "dayzen")
	v.SetDefault("auth.ttl", 24*time.Hour)
	v.SetDefault("source.mock_fallback", false)
	v.SetDefault("source.seed", 0)
	v.SetDefault("source.breaker.max_failures", 3)
	v.SetDefault("source.breaker.timeout", 30*time.Second)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the config file (file, or the first config.yaml found in the
// user config dir or the working directory) and returns the validated result.
// A missing file is not an error unless it was named explicitly.
func Load(v *viper.Viper, file string) (*Config, error) {
	// A missing .env is fine.
	_ = godotenv.Load()

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "dayzen"))
		}
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if _, err := c.Location(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Location resolves the timezone period boundaries are computed in.
func (c *Config) Location() (*time.Location, error) {
	switch c.Timezone {
	case "", "Local":
		return time.Local, nil
	case "UTC":
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// RequireSecret reports whether session tokens can be signed.
func (c *Config) RequireSecret() error {
	if c.Auth.Secret == "" {
		return ErrNoSecret
	}
	return nil
}
