package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config groups the application configuration (read via Viper from env and optionally a file).
type Config struct {
	App     AppConfig
	Backend BackendConfig
	HTTP    HTTPConfig
	State   StateConfig
	Locale  LocaleConfig
}

// AppConfig general application settings.
type AppConfig struct {
	Env  string // development, staging, production
	Name string
}

// BackendConfig remote REST API settings.
type BackendConfig struct {
	BaseURL        string // e.g. http://localhost:8000/api
	TimeoutSeconds int    // per-request ceiling for outgoing calls
}

// Timeout returns the request timeout as a duration.
func (c BackendConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// HTTPConfig gateway HTTP server settings.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr returns the listen address (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// StateConfig persisted client state (token and language preference).
type StateConfig struct {
	Path string // JSON file path
}

// LocaleConfig language defaults.
type LocaleConfig struct {
	Default string // en or ar
}

// Load reads configuration from environment variables (and optionally a file).
// Env vars take priority. Expected names: APP_ENV, BACKEND_BASE_URL, HTTP_PORT, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Optional config file (.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // missing file is fine

	// Also try config.env
	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig() // missing file is fine

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:  getString(v, "APP_ENV", "development"),
			Name: getString(v, "APP_NAME", "khadamat-webgate"),
		},
		Backend: BackendConfig{
			BaseURL:        getString(v, "BACKEND_BASE_URL", "http://localhost:8000/api"),
			TimeoutSeconds: getInt(v, "BACKEND_TIMEOUT_SECONDS", 10),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 3000),
		},
		State: StateConfig{
			Path: getString(v, "STATE_PATH", "webgate_state.json"),
		},
		Locale: LocaleConfig{
			Default: getString(v, "DEFAULT_LANGUAGE", "ar"),
		},
	}

	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, _ := strconv.Atoi(v.GetString(key))
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}
