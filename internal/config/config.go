package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	Port            string `yaml:"port"`
	ImportRateLimit int    `yaml:"import_rate_limit"` // uploads per minute per client IP
}

// CalendarConfig names the producer written into exported documents.
type CalendarConfig struct {
	Domain  string `yaml:"domain"`
	Product string `yaml:"product"`
	Locale  string `yaml:"locale"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// AuthConfig holds the bcrypt hash of the API token. An empty hash leaves
// the API open.
type AuthConfig struct {
	TokenHash string `yaml:"token_hash"`
}

type Config struct {
	DBPath   string         `yaml:"db_path"`
	Server   ServerConfig   `yaml:"server"`
	Calendar CalendarConfig `yaml:"calendar"`
	Log      LogConfig      `yaml:"log"`
	Auth     AuthConfig     `yaml:"auth"`
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		DBPath: "opsdash.db",
		Server: ServerConfig{
			Port:            "8080",
			ImportRateLimit: 10,
		},
		Calendar: CalendarConfig{
			Domain:  "opsdash.local",
			Product: "Opsdash",
			Locale:  "EN",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads the YAML file at path on top of the defaults, then applies
// OPSDASH_* environment overrides. An empty path or a missing file is not
// an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return cfg, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	if err := overrideFromEnv(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func overrideFromEnv(cfg *Config) error {
	setString := func(key string, dst *string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}

	setString("OPSDASH_DB_PATH", &cfg.DBPath)
	setString("OPSDASH_PORT", &cfg.Server.Port)
	setString("OPSDASH_CALENDAR_DOMAIN", &cfg.Calendar.Domain)
	setString("OPSDASH_CALENDAR_PRODUCT", &cfg.Calendar.Product)
	setString("OPSDASH_CALENDAR_LOCALE", &cfg.Calendar.Locale)
	setString("OPSDASH_LOG_LEVEL", &cfg.Log.Level)
	setString("OPSDASH_LOG_FORMAT", &cfg.Log.Format)
	setString("OPSDASH_API_TOKEN_HASH", &cfg.Auth.TokenHash)

	if v := os.Getenv("OPSDASH_IMPORT_RATE_LIMIT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return fmt.Errorf("invalid OPSDASH_IMPORT_RATE_LIMIT %q", v)
		}
		cfg.Server.ImportRateLimit = n
	}
	return nil
}
