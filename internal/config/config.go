package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds application configuration. Values come from defaults, then an
// optional TOML file, then environment variables, later sources winning.
type Config struct {
	Addr           string        // FORMS_ADDR, default ":8080"
	DBPath         string        // FORMS_DB, default "forms.db"
	AdminToken     string        // FORMS_ADMIN_TOKEN, optional; admin routes are disabled when empty
	GatewayTimeout time.Duration // FORMS_GATEWAY_TIMEOUT, default 5s
	SessionTTL     time.Duration // FORMS_SESSION_TTL, default 720h
	LogLevel       slog.Level    // FORMS_LOG_LEVEL, default info
	SeedDemo       bool          // FORMS_SEED_DEMO, default false
}

// fileConfig mirrors the keys accepted in the TOML file.
type fileConfig struct {
	Addr           string `toml:"addr"`
	DBPath         string `toml:"db_path"`
	AdminToken     string `toml:"admin_token"`
	GatewayTimeout string `toml:"gateway_timeout"`
	SessionTTL     string `toml:"session_ttl"`
	LogLevel       string `toml:"log_level"`
	SeedDemo       *bool  `toml:"seed_demo"`
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		Addr:           ":8080",
		DBPath:         "forms.db",
		GatewayTimeout: 5 * time.Second,
		SessionTTL:     720 * time.Hour,
		LogLevel:       slog.LevelInfo,
	}
}

// Load builds the configuration. When path is empty the file named by
// FORMS_CONFIG is read, if any.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv("FORMS_CONFIG")
	}
	if path != "" {
		var fc fileConfig
		if _, err := toml.DecodeFile(path, &fc); err != nil {
			return Config{}, fmt.Errorf("read config file %s: %w", path, err)
		}
		if err := cfg.apply(fc); err != nil {
			return Config{}, fmt.Errorf("config file %s: %w", path, err)
		}
	}

	fromEnv := fileConfig{
		Addr:           os.Getenv("FORMS_ADDR"),
		DBPath:         os.Getenv("FORMS_DB"),
		AdminToken:     os.Getenv("FORMS_ADMIN_TOKEN"),
		GatewayTimeout: os.Getenv("FORMS_GATEWAY_TIMEOUT"),
		SessionTTL:     os.Getenv("FORMS_SESSION_TTL"),
		LogLevel:       os.Getenv("FORMS_LOG_LEVEL"),
	}
	if v := os.Getenv("FORMS_SEED_DEMO"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("FORMS_SEED_DEMO: %w", err)
		}
		fromEnv.SeedDemo = &b
	}
	if err := cfg.apply(fromEnv); err != nil {
		return Config{}, fmt.Errorf("environment: %w", err)
	}
	return cfg, nil
}

// apply overrides cfg with every non-empty value of fc.
func (cfg *Config) apply(fc fileConfig) error {
	setOr(&cfg.Addr, fc.Addr)
	setOr(&cfg.DBPath, fc.DBPath)
	setOr(&cfg.AdminToken, fc.AdminToken)

	if err := durationOr(&cfg.GatewayTimeout, "gateway_timeout", fc.GatewayTimeout); err != nil {
		return err
	}
	if err := durationOr(&cfg.SessionTTL, "session_ttl", fc.SessionTTL); err != nil {
		return err
	}
	if fc.LogLevel != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(fc.LogLevel)); err != nil {
			return fmt.Errorf("log_level: %w", err)
		}
	}
	if fc.SeedDemo != nil {
		cfg.SeedDemo = *fc.SeedDemo
	}
	return nil
}

func setOr(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func durationOr(dst *time.Duration, key, v string) error {
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	if d <= 0 {
		return fmt.Errorf("%s: must be positive, got %s", key, v)
	}
	*dst = d
	return nil
}
