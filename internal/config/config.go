// Package config loads the application configuration from a YAML file with
// environment overrides (SALON_ prefix) applied on top.
package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/viper"
)

type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Store   StoreConfig   `mapstructure:"store"`
	Cache   CacheConfig   `mapstructure:"cache"`
	Redis   RedisConfig   `mapstructure:"redis"`
	SMTP    SMTPConfig    `mapstructure:"smtp"`
	Salon   SalonConfig   `mapstructure:"salon"`
	Logging LoggingConfig `mapstructure:"logging"`
}

type ServerConfig struct {
	Port           int     `mapstructure:"port" envconfig:"SERVER_PORT"`
	Mode           string  `mapstructure:"mode" envconfig:"SERVER_MODE"`
	TimeoutSeconds int     `mapstructure:"timeout_seconds" envconfig:"SERVER_TIMEOUT_SECONDS"`
	PublicRPS      float64 `mapstructure:"public_rps" envconfig:"SERVER_PUBLIC_RPS"`
	PublicBurst    int     `mapstructure:"public_burst" envconfig:"SERVER_PUBLIC_BURST"`
}

// StoreConfig selects the tabular store backend: "sheets", "postgres" or
// "memory".
type StoreConfig struct {
	Driver   string         `mapstructure:"driver" envconfig:"STORE_DRIVER"`
	Sheets   SheetsConfig   `mapstructure:"sheets"`
	Postgres PostgresConfig `mapstructure:"postgres"`
}

type SheetsConfig struct {
	SpreadsheetID      string `mapstructure:"spreadsheet_id" envconfig:"SHEETS_SPREADSHEET_ID"`
	ServiceAccountPath string `mapstructure:"service_account_path" envconfig:"SHEETS_SERVICE_ACCOUNT_PATH"`
}

type PostgresConfig struct {
	Host     string `mapstructure:"host" envconfig:"POSTGRES_HOST"`
	Port     int    `mapstructure:"port" envconfig:"POSTGRES_PORT"`
	User     string `mapstructure:"user" envconfig:"POSTGRES_USER"`
	Password string `mapstructure:"password" envconfig:"POSTGRES_PASSWORD"`
	Name     string `mapstructure:"name" envconfig:"POSTGRES_NAME"`
	SSLMode  string `mapstructure:"sslmode" envconfig:"POSTGRES_SSLMODE"`
}

type CacheConfig struct {
	TTLSeconds int `mapstructure:"ttl_seconds" envconfig:"CACHE_TTL_SECONDS"`
}

// RedisConfig enables the booking event broker when URL is set.
type RedisConfig struct {
	URL string `mapstructure:"url" envconfig:"REDIS_URL"`
}

type SMTPConfig struct {
	Host     string `mapstructure:"host" envconfig:"SMTP_HOST"`
	Port     int    `mapstructure:"port" envconfig:"SMTP_PORT"`
	Username string `mapstructure:"username" envconfig:"SMTP_USERNAME"`
	Password string `mapstructure:"password" envconfig:"SMTP_PASSWORD"`
	From     string `mapstructure:"from" envconfig:"SMTP_FROM"`
}

type SalonConfig struct {
	Name string `mapstructure:"name" envconfig:"SALON_NAME"`
}

type LoggingConfig struct {
	Level string `mapstructure:"level" envconfig:"LOG_LEVEL"`
}

// LoadConfig reads config.yaml, fills in defaults and applies SALON_*
// environment overrides. A missing config file is fine; everything has a
// default or an env var.
func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := envconfig.Process("salon", &config); err != nil {
		return nil, fmt.Errorf("failed to apply env overrides: %w", err)
	}

	return &config, nil
}

func setDefaults() {
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.mode", "release")
	viper.SetDefault("server.timeout_seconds", 30)
	viper.SetDefault("server.public_rps", 1.0)
	viper.SetDefault("server.public_burst", 5)
	viper.SetDefault("store.driver", "sheets")
	viper.SetDefault("store.postgres.port", 5432)
	viper.SetDefault("store.postgres.sslmode", "disable")
	viper.SetDefault("cache.ttl_seconds", 60)
	viper.SetDefault("salon.name", "BeautyBox")
	viper.SetDefault("logging.level", "info")
}

// CacheTTL is the repository memoization window.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Cache.TTLSeconds) * time.Second
}
