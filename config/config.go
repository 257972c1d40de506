package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config holds all finance-advisor configuration.
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Supabase  SupabaseConfig  `toml:"supabase"`
	Redis     RedisConfig     `toml:"redis"`
	AI        AIConfig        `toml:"ai"`
	Auth      AuthConfig      `toml:"auth"`
	History   HistoryConfig   `toml:"history"`
	RateLimit RateLimitConfig `toml:"rate_limit"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Addr            string `toml:"addr"`
	ReadTimeoutSec  int    `toml:"read_timeout_sec"`
	WriteTimeoutSec int    `toml:"write_timeout_sec"`
	IdleTimeoutSec  int    `toml:"idle_timeout_sec"`
}

// SupabaseConfig holds the persistence API settings. An empty URL switches
// the server to the in-memory profile store.
type SupabaseConfig struct {
	URL        string `toml:"url,omitempty"`
	ServiceKey string `toml:"service_key,omitempty"`
}

// RedisConfig holds cache settings. An empty address switches the server
// to the in-process cache.
type RedisConfig struct {
	Addr string `toml:"addr,omitempty"`
}

// AIConfig holds text-generation provider settings.
type AIConfig struct {
	Provider     string `toml:"provider"`
	Model        string `toml:"model,omitempty"`
	GeminiKey    string `toml:"gemini_api_key,omitempty"`
	AnthropicKey string `toml:"anthropic_api_key,omitempty"`
}

// AuthConfig maps static bearer tokens to user ids. Empty disables auth.
type AuthConfig struct {
	Tokens map[string]string `toml:"tokens,omitempty"`
}

// HistoryConfig holds the advice history database settings. An empty path
// keeps history in memory.
type HistoryConfig struct {
	Path string `toml:"path,omitempty"`
}

// RateLimitConfig holds per-client limiter settings.
type RateLimitConfig struct {
	Requests    int `toml:"requests"`
	IntervalSec int `toml:"interval_sec"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeoutSec:  15,
			WriteTimeoutSec: 15,
			IdleTimeoutSec:  60,
		},
		AI: AIConfig{
			Provider: "gemini",
		},
		RateLimit: RateLimitConfig{
			Requests:    5,
			IntervalSec: 60,
		},
	}
}

// Load reads the config file at path, returning defaults if it doesn't
// exist. Secrets from the environment override file values.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			applyEnv(&cfg)
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		cfg.AI.GeminiKey = key
	}
	if key := os.Getenv("ANTHROPIC_API_KEY"); key != "" {
		cfg.AI.AnthropicKey = key
	}
	if key := os.Getenv("SUPABASE_SERVICE_KEY"); key != "" {
		cfg.Supabase.ServiceKey = key
	}
}
