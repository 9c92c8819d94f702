package config

import (
	"os"
	"strings"
)

// Conventional environment names for the two secrets, in lookup order.
var (
	newsKeyEnvVars   = []string{"NEWS_API_KEY", "GNEWS_API_KEY", "BRANDRADAR_KEYS_NEWS_API_KEY"}
	searchKeyEnvVars = []string{"SERPAPI_KEY", "BRANDRADAR_KEYS_SEARCH_API_KEY"}
)

// APIKeySource represents where an API key comes from.
type APIKeySource string

const (
	KeySourceEnv    APIKeySource = "env"
	KeySourceConfig APIKeySource = "config"
	KeySourceNone   APIKeySource = "none"
)

// KeyStatus represents the status of an API key.
type KeyStatus struct {
	Name   string       `json:"name"`
	EnvVar string       `json:"env_var"`
	Source APIKeySource `json:"source"`
	IsSet  bool         `json:"is_set"`
	Masked string       `json:"masked,omitempty"` // e.g., "abc...xyz"
}

// MissingKeysError is the fatal startup error raised when a required
// secret is absent. The message is shown to the end user verbatim.
type MissingKeysError struct {
	Missing []string // environment variable names
}

func (e *MissingKeysError) Error() string {
	return "Puuttuvat API-avaimet (" + strings.Join(e.Missing, ", ") +
		"). Lisää GNEWS_API_KEY ja SERPAPI_KEY ympäristömuuttujiksi tai config/.env-tiedostoon."
}

// RequireKeys reports a *MissingKeysError when either secret is empty.
func (c *Config) RequireKeys() error {
	var missing []string
	if strings.TrimSpace(c.Keys.NewsAPIKey) == "" {
		missing = append(missing, newsKeyEnvVars[0])
	}
	if strings.TrimSpace(c.Keys.SearchAPIKey) == "" {
		missing = append(missing, searchKeyEnvVars[0])
	}
	if len(missing) > 0 {
		return &MissingKeysError{Missing: missing}
	}
	return nil
}

// CheckAPIKeys returns the status of all required API keys.
func CheckAPIKeys(cfg *Config) []KeyStatus {
	return []KeyStatus{
		checkKey("News API Key", cfg.Keys.NewsAPIKey, newsKeyEnvVars),
		checkKey("Search API Key", cfg.Keys.SearchAPIKey, searchKeyEnvVars),
	}
}

// checkKey checks if a key is set and where it came from.
func checkKey(name, value string, envVars []string) KeyStatus {
	status := KeyStatus{
		Name:   name,
		EnvVar: envVars[0],
		IsSet:  value != "",
		Source: KeySourceNone,
	}
	if value == "" {
		return status
	}

	status.Source = KeySourceConfig
	for _, env := range envVars {
		if os.Getenv(env) == value {
			status.Source = KeySourceEnv
			status.EnvVar = env
			break
		}
	}
	status.Masked = maskKey(value)
	return status
}

// maskKey masks an API key for display, showing only first 3 and last 3 chars.
func maskKey(key string) string {
	if len(key) <= 8 {
		return "***"
	}
	return key[:3] + "..." + key[len(key)-3:]
}
