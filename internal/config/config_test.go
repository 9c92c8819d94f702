package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// clearKeyEnv blanks every secret variable for the duration of the test.
func clearKeyEnv(t *testing.T) {
	t.Helper()
	for _, name := range append(append([]string{}, newsKeyEnvVars...), searchKeyEnvVars...) {
		t.Setenv(name, "")
	}
}

// ── Load / Defaults ──

func TestLoadReturnsDefaults(t *testing.T) {
	clearKeyEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.News.Provider != "newsapi" {
		t.Errorf("News.Provider: got %q, want %q", cfg.News.Provider, "newsapi")
	}
	if cfg.News.Language != "fi" {
		t.Errorf("News.Language: got %q, want %q", cfg.News.Language, "fi")
	}
	if cfg.News.MaxResults != 10 {
		t.Errorf("News.MaxResults: got %d, want 10", cfg.News.MaxResults)
	}
	if cfg.News.DisplayLimit != 5 {
		t.Errorf("News.DisplayLimit: got %d, want 5", cfg.News.DisplayLimit)
	}

	if cfg.Dashboard.DefaultQuery != "Valio" {
		t.Errorf("Dashboard.DefaultQuery: got %q", cfg.Dashboard.DefaultQuery)
	}
	wantBrands := []string{"Valio", "Fazer", "Arla", "Nalle", "Sunnuntai"}
	if strings.Join(cfg.Dashboard.Brands, ",") != strings.Join(wantBrands, ",") {
		t.Errorf("Dashboard.Brands: got %v, want %v", cfg.Dashboard.Brands, wantBrands)
	}
	if strings.Join(cfg.Dashboard.DefaultBrands, ",") != "Valio,Fazer" {
		t.Errorf("Dashboard.DefaultBrands: got %v", cfg.Dashboard.DefaultBrands)
	}
	if cfg.Dashboard.DefaultWindowDays != 180 {
		t.Errorf("Dashboard.DefaultWindowDays: got %d", cfg.Dashboard.DefaultWindowDays)
	}
	if cfg.Dashboard.TrendSource != "synthetic" {
		t.Errorf("Dashboard.TrendSource: got %q", cfg.Dashboard.TrendSource)
	}

	if cfg.Session.TTL != 24*time.Hour {
		t.Errorf("Session.TTL: got %v, want 24h", cfg.Session.TTL)
	}
	if cfg.API.Port != 8501 {
		t.Errorf("API.Port: got %d, want 8501", cfg.API.Port)
	}
	if cfg.API.Addr() != "0.0.0.0:8501" {
		t.Errorf("API.Addr: got %q", cfg.API.Addr())
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "text" {
		t.Errorf("Logging: got %+v", cfg.Logging)
	}
}

// ── LoadFromFile ──

func TestLoadFromFile(t *testing.T) {
	clearKeyEnv(t)

	cfgPath := filepath.Join(t.TempDir(), "test_config.yaml")
	content := []byte(`
keys:
  news_api_key: "file_news_key_123456"
  search_api_key: "file_search_key_123456"
news:
  provider: "gnews"
  max_results: 20
dashboard:
  brands: ["A", "B", "C"]
  trend_source: "articles"
api:
  port: 9090
logging:
  level: "debug"
  format: "json"
`)
	if err := os.WriteFile(cfgPath, content, 0o644); err != nil {
		t.Fatalf("write temp config: %v", err)
	}

	cfg, err := LoadFromFile(cfgPath)
	if err != nil {
		t.Fatalf("LoadFromFile error: %v", err)
	}

	if cfg.News.Provider != "gnews" {
		t.Errorf("News.Provider: got %q", cfg.News.Provider)
	}
	if cfg.News.MaxResults != 20 {
		t.Errorf("News.MaxResults: got %d", cfg.News.MaxResults)
	}
	if strings.Join(cfg.Dashboard.DefaultBrands, ",") != "A,B" {
		t.Errorf("DefaultBrands should be the first two brands, got %v", cfg.Dashboard.DefaultBrands)
	}
	if cfg.Dashboard.TrendSource != "articles" {
		t.Errorf("TrendSource: got %q", cfg.Dashboard.TrendSource)
	}
	if cfg.API.Port != 9090 {
		t.Errorf("API.Port: got %d", cfg.API.Port)
	}
	if cfg.Keys.NewsAPIKey != "file_news_key_123456" {
		t.Errorf("Keys.NewsAPIKey: got %q", cfg.Keys.NewsAPIKey)
	}
	if err := cfg.RequireKeys(); err != nil {
		t.Errorf("RequireKeys: unexpected error %v", err)
	}
}

func TestNewsWindowIsNotConfigurable(t *testing.T) {
	clearKeyEnv(t)

	cfgPath := filepath.Join(t.TempDir(), "window.yaml")
	content := []byte(`
news:
  window_days: -30
  max_results: 7
`)
	if err := os.WriteFile(cfgPath, content, 0o644); err != nil {
		t.Fatalf("write temp config: %v", err)
	}

	cfg, err := LoadFromFile(cfgPath)
	if err != nil {
		t.Fatalf("a stale news.window_days key should be ignored, got %v", err)
	}
	if cfg.News.MaxResults != 7 {
		t.Errorf("News.MaxResults: got %d", cfg.News.MaxResults)
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("expected error for missing explicit config file")
	}
}

// ── Environment / .env ──

func TestLoadEnvOverridesFile(t *testing.T) {
	clearKeyEnv(t)
	t.Setenv("NEWS_API_KEY", "env_news_key_abcdef")
	t.Setenv("SERPAPI_KEY", "env_serp_key_abcdef")
	t.Setenv("BRANDRADAR_NEWS_PROVIDER", "serpapi")

	cfg, err := load("", "")
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	if cfg.Keys.NewsAPIKey != "env_news_key_abcdef" {
		t.Errorf("NewsAPIKey: got %q", cfg.Keys.NewsAPIKey)
	}
	if cfg.Keys.SearchAPIKey != "env_serp_key_abcdef" {
		t.Errorf("SearchAPIKey: got %q", cfg.Keys.SearchAPIKey)
	}
	if cfg.News.Provider != "serpapi" {
		t.Errorf("News.Provider: got %q", cfg.News.Provider)
	}
}

func TestLoadGNewsAlias(t *testing.T) {
	clearKeyEnv(t)
	t.Setenv("GNEWS_API_KEY", "gnews_alias_key_1234")

	cfg, err := load("", "")
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	if cfg.Keys.NewsAPIKey != "gnews_alias_key_1234" {
		t.Errorf("NewsAPIKey: got %q", cfg.Keys.NewsAPIKey)
	}
}

func TestEnvFileOverridesProcessEnv(t *testing.T) {
	clearKeyEnv(t)
	t.Setenv("NEWS_API_KEY", "process_env_value_1")

	envPath := filepath.Join(t.TempDir(), ".env")
	body := "NEWS_API_KEY=dotenv_value_123456\nSERPAPI_KEY=dotenv_serp_123456\n"
	if err := os.WriteFile(envPath, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := load("", envPath)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	if cfg.Keys.NewsAPIKey != "dotenv_value_123456" {
		t.Errorf("NewsAPIKey: got %q, want value from .env", cfg.Keys.NewsAPIKey)
	}
	if cfg.Keys.SearchAPIKey != "dotenv_serp_123456" {
		t.Errorf("SearchAPIKey: got %q", cfg.Keys.SearchAPIKey)
	}
}

func TestMissingEnvFileIsIgnored(t *testing.T) {
	clearKeyEnv(t)
	if _, err := load("", filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Fatalf("missing .env should be ignored, got %v", err)
	}
}

// ── RequireKeys ──

func TestRequireKeys(t *testing.T) {
	tests := []struct {
		name    string
		keys    KeysConfig
		missing []string
	}{
		{"both set", KeysConfig{NewsAPIKey: "a", SearchAPIKey: "b"}, nil},
		{"news missing", KeysConfig{SearchAPIKey: "b"}, []string{"NEWS_API_KEY"}},
		{"search missing", KeysConfig{NewsAPIKey: "a"}, []string{"SERPAPI_KEY"}},
		{"both missing", KeysConfig{}, []string{"NEWS_API_KEY", "SERPAPI_KEY"}},
		{"whitespace only", KeysConfig{NewsAPIKey: "  ", SearchAPIKey: "b"}, []string{"NEWS_API_KEY"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Keys: tt.keys}
			err := cfg.RequireKeys()
			if tt.missing == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			var mk *MissingKeysError
			if !errors.As(err, &mk) {
				t.Fatalf("expected *MissingKeysError, got %v", err)
			}
			if strings.Join(mk.Missing, ",") != strings.Join(tt.missing, ",") {
				t.Errorf("Missing: got %v, want %v", mk.Missing, tt.missing)
			}
			if !strings.Contains(err.Error(), "Puuttuvat API-avaimet") {
				t.Errorf("error text: got %q", err.Error())
			}
		})
	}
}

// ── CheckAPIKeys ──

func TestCheckAPIKeys(t *testing.T) {
	clearKeyEnv(t)
	t.Setenv("SERPAPI_KEY", "serp_from_env_987654")

	cfg := &Config{Keys: KeysConfig{
		NewsAPIKey:   "news_from_config_123456",
		SearchAPIKey: "serp_from_env_987654",
	}}

	keys := CheckAPIKeys(cfg)
	if len(keys) != 2 {
		t.Fatalf("expected 2 keys, got %d", len(keys))
	}
	if keys[0].Source != KeySourceConfig {
		t.Errorf("news key source: got %q, want config", keys[0].Source)
	}
	if keys[0].Masked != "new...456" {
		t.Errorf("news key masked: got %q", keys[0].Masked)
	}
	if keys[1].Source != KeySourceEnv || keys[1].EnvVar != "SERPAPI_KEY" {
		t.Errorf("search key: got %+v", keys[1])
	}

	empty := CheckAPIKeys(&Config{})
	for _, k := range empty {
		if k.IsSet || k.Source != KeySourceNone || k.Masked != "" {
			t.Errorf("unset key reported as %+v", k)
		}
	}
}

func TestMaskKey(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"short", "***"},
		{"12345678", "***"},
		{"123456789", "123...789"},
		{"sk-abcdefghijklmnop", "sk-...nop"},
	}
	for _, tt := range tests {
		if got := maskKey(tt.key); got != tt.want {
			t.Errorf("maskKey(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}
}
