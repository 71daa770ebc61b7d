package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type HTTPConfig struct {
	Host string
	Port int
}

type DBConfig struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime string
}

type AuthConfig struct {
	AccessSecret string
}

type StatsConfig struct {
	DebounceMS    int
	CostCenterTag string
	CompanyEpoch  string
}

type Config struct {
	Environment string
	HTTP        HTTPConfig
	DB          DBConfig
	Auth        AuthConfig
	Stats       StatsConfig
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("app")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("./deploy")
	v.AddConfigPath("./internal/config")

	v.AutomaticEnv()

	_ = v.ReadInConfig()

	cfg := &Config{
		Environment: v.GetString("APP_ENV"),
		HTTP: HTTPConfig{
			Host: v.GetString("HTTP_HOST"),
			Port: v.GetInt("HTTP_PORT"),
		},
		DB: DBConfig{
			DSN:             v.GetString("DB_DSN"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: v.GetString("DB_CONN_MAX_LIFETIME"),
		},
		Auth: AuthConfig{
			AccessSecret: v.GetString("JWT_ACCESS_SECRET"),
		},
		Stats: StatsConfig{
			DebounceMS:    v.GetInt("STATS_DEBOUNCE_MS"),
			CostCenterTag: v.GetString("STATS_COST_CENTER_TAG"),
			CompanyEpoch:  v.GetString("STATS_COMPANY_EPOCH"),
		},
	}

	if cfg.HTTP.Host == "" {
		cfg.HTTP.Host = "0.0.0.0"
	}
	if cfg.HTTP.Port == 0 {
		cfg.HTTP.Port = 7090
	}
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.Stats.DebounceMS <= 0 {
		cfg.Stats.DebounceMS = 300
	}
	if cfg.Stats.CostCenterTag == "" {
		cfg.Stats.CostCenterTag = "black holding"
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.DB.DSN == "" {
		return fmt.Errorf("DB_DSN is required")
	}
	if cfg.Auth.AccessSecret == "" {
		return fmt.Errorf("JWT_ACCESS_SECRET is required")
	}
	if cfg.Stats.CompanyEpoch != "" {
		if _, err := time.Parse("2006-01-02", cfg.Stats.CompanyEpoch); err != nil {
			return fmt.Errorf("STATS_COMPANY_EPOCH must be YYYY-MM-DD: %w", err)
		}
	}
	return nil
}

// Debounce returns the scheduler quiet period.
func (c *Config) Debounce() time.Duration {
	return time.Duration(c.Stats.DebounceMS) * time.Millisecond
}

// Epoch returns the configured company founding date, or zero when unset.
func (c *Config) Epoch() time.Time {
	if c.Stats.CompanyEpoch == "" {
		return time.Time{}
	}
	t, err := time.Parse("2006-01-02", c.Stats.CompanyEpoch)
	if err != nil {
		return time.Time{}
	}
	return t
}
