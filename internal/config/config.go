// Package config handles configuration loading for BrandRadar.
// It supports YAML config files, a config/.env secrets file and
// environment variable overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DefaultEnvFile is the secrets file read before the environment is consulted.
const DefaultEnvFile = "config/.env"

// Config represents the complete application configuration.
type Config struct {
	Keys      KeysConfig      `mapstructure:"keys"      yaml:"keys"      json:"-"`
	News      NewsConfig      `mapstructure:"news"      yaml:"news"      json:"news"`
	Dashboard DashboardConfig `mapstructure:"dashboard" yaml:"dashboard" json:"dashboard"`
	Session   SessionConfig   `mapstructure:"session"   yaml:"session"   json:"session"`
	API       APIConfig       `mapstructure:"api"       yaml:"api"       json:"api"`
	Logging   LoggingConfig   `mapstructure:"logging"   yaml:"logging"   json:"logging"`
}

// KeysConfig holds the two required API secrets.
type KeysConfig struct {
	NewsAPIKey   string `mapstructure:"news_api_key"   yaml:"news_api_key"`
	SearchAPIKey string `mapstructure:"search_api_key" yaml:"search_api_key"`
}

// NewsConfig holds news search settings.
type NewsConfig struct {
	Provider     string  `mapstructure:"provider"      yaml:"provider"      json:"provider"` // "newsapi", "gnews", "serpapi", "googlerss"
	BaseURL      string  `mapstructure:"base_url"      yaml:"base_url"      json:"base_url,omitempty"`
	Language     string  `mapstructure:"language"      yaml:"language"      json:"language"`
	SortBy       string  `mapstructure:"sort_by"       yaml:"sort_by"       json:"sort_by"`
	MaxResults   int     `mapstructure:"max_results"   yaml:"max_results"   json:"max_results"`
	DisplayLimit int     `mapstructure:"display_limit" yaml:"display_limit" json:"display_limit"`
	RateLimit    float64 `mapstructure:"rate_limit"    yaml:"rate_limit"    json:"rate_limit"` // requests/second, 0 = unlimited
	Burst        int     `mapstructure:"burst"         yaml:"burst"         json:"burst"`
}

// DashboardConfig holds page defaults.
type DashboardConfig struct {
	DefaultQuery      string   `mapstructure:"default_query"       yaml:"default_query"       json:"default_query"`
	Brands            []string `mapstructure:"brands"              yaml:"brands"              json:"brands"`
	DefaultBrands     []string `mapstructure:"default_brands"      yaml:"default_brands"      json:"default_brands"`
	DefaultWindowDays int      `mapstructure:"default_window_days" yaml:"default_window_days" json:"default_window_days"`
	TrendSource       string   `mapstructure:"trend_source"        yaml:"trend_source"        json:"trend_source"` // "synthetic" or "articles"
	Seed              uint64   `mapstructure:"seed"                yaml:"seed"                json:"seed"`         // 0 = random per process
}

// SessionConfig holds session cookie settings.
type SessionConfig struct {
	CookieName string        `mapstructure:"cookie_name" yaml:"cookie_name" json:"cookie_name"`
	TTL        time.Duration `mapstructure:"ttl"         yaml:"ttl"         json:"ttl"`
}

// APIConfig holds HTTP server settings.
type APIConfig struct {
	Host        string   `mapstructure:"host"         yaml:"host"         json:"host"`
	Port        int      `mapstructure:"port"         yaml:"port"         json:"port"`
	CORSOrigins []string `mapstructure:"cors_origins" yaml:"cors_origins" json:"cors_origins"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"  yaml:"level"  json:"level"`  // "debug", "info", "warn", "error"
	Format string `mapstructure:"format" yaml:"format" json:"format"` // "text" or "json"
}

// Addr returns the listen address of the HTTP server.
func (c APIConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Load reads the configuration from file, config/.env and environment variables.
// Config file search order:
//  1. ./config/config.yaml
//  2. ~/.brandradar/config.yaml
//  3. /etc/brandradar/config.yaml
//
// Environment variables override config file values.
// Format: BRANDRADAR_<SECTION>_<KEY>, e.g., BRANDRADAR_NEWS_PROVIDER
func Load() (*Config, error) {
	return load("", DefaultEnvFile)
}

// LoadFromFile reads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	return load(path, DefaultEnvFile)
}

func load(path, envFile string) (*Config, error) {
	if err := loadEnvFile(envFile); err != nil {
		return nil, err
	}

	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(filepath.Join(homeDir(), ".brandradar"))
		v.AddConfigPath("/etc/brandradar")
	}

	v.SetEnvPrefix("BRANDRADAR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	overrideFromEnv(&cfg)
	normalize(&cfg)
	return &cfg, nil
}

// loadEnvFile applies the secrets file on top of the process environment.
// A missing file is not an error.
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Overload(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("error reading %s: %w", path, err)
	}
	return nil
}

// setDefaults sets defaults for all config values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("news.provider", "newsapi")
	v.SetDefault("news.language", "fi")
	v.SetDefault("news.sort_by", "publishedAt")
	v.SetDefault("news.max_results", 10)
	v.SetDefault("news.display_limit", 5)
	v.SetDefault("news.rate_limit", 0)
	v.SetDefault("news.burst", 1)

	v.SetDefault("dashboard.default_query", "Valio")
	v.SetDefault("dashboard.brands", []string{"Valio", "Fazer", "Arla", "Nalle", "Sunnuntai"})
	v.SetDefault("dashboard.default_window_days", 180)
	v.SetDefault("dashboard.trend_source", "synthetic")
	v.SetDefault("dashboard.seed", 0)

	v.SetDefault("session.cookie_name", "brandradar_session")
	v.SetDefault("session.ttl", "24h")

	v.SetDefault("api.host", "0.0.0.0")
	v.SetDefault("api.port", 8501)
	v.SetDefault("api.cors_origins", []string{"*"})

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
}

// overrideFromEnv reads the secrets under their conventional names.
// The BRANDRADAR_KEYS_* forms are already handled by viper.
func overrideFromEnv(cfg *Config) {
	for _, name := range newsKeyEnvVars {
		if key := os.Getenv(name); key != "" {
			cfg.Keys.NewsAPIKey = key
			break
		}
	}
	for _, name := range searchKeyEnvVars {
		if key := os.Getenv(name); key != "" {
			cfg.Keys.SearchAPIKey = key
			break
		}
	}
}

// normalize fills derived defaults.
func normalize(cfg *Config) {
	if len(cfg.Dashboard.DefaultBrands) == 0 {
		n := min(2, len(cfg.Dashboard.Brands))
		cfg.Dashboard.DefaultBrands = append([]string(nil), cfg.Dashboard.Brands[:n]...)
	}
	if cfg.News.DisplayLimit <= 0 {
		cfg.News.DisplayLimit = 5
	}
}

// homeDir returns the user's home directory.
func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
