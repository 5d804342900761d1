package model

import "time"

// Config is the complete spyrja configuration
type Config struct {
	DB      DBConfig      `yaml:"db"`
	Similar SimilarConfig `yaml:"similar"`
	Cache   CacheConfig   `yaml:"cache"`
	Voice   VoiceConfig   `yaml:"voice"`
	Output  OutputConfig  `yaml:"output"`
}

// DBConfig configures the article store
type DBConfig struct {
	// Path to the sqlite database file
	Path string `yaml:"path"`
}

// SimilarConfig configures the similarity-search client
type SimilarConfig struct {
	// Base URL of the similarity server
	URL string `yaml:"url"`
	// Request timeout
	Timeout time.Duration `yaml:"timeout"`
	// Requests per second towards the server
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	Burst             int     `yaml:"burst"`
}

// CacheConfig configures the answer cache
type CacheConfig struct {
	Enabled bool `yaml:"enabled"`
	// Default answer TTL when a query does not set its own expiry
	TTL time.Duration `yaml:"ttl"`
}

// VoiceConfig configures optional LLM polishing of spoken answers.
// The structured answer is never touched.
type VoiceConfig struct {
	// Provider name: "openai" or "" (disabled)
	Provider string        `yaml:"provider"`
	Model    string        `yaml:"model"`
	APIKey   string        `yaml:"api_key,omitempty"`
	BaseURL  string        `yaml:"base_url,omitempty"`
	Timeout  time.Duration `yaml:"timeout"`
}

// OutputConfig configures CLI output
type OutputConfig struct {
	Verbose bool `yaml:"verbose"`
	JSON    bool `yaml:"json"`
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		DB: DBConfig{
			Path: "spyrja.db",
		},
		Similar: SimilarConfig{
			URL:               "http://localhost:5001",
			Timeout:           10 * time.Second,
			RequestsPerSecond: 5,
			Burst:             5,
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     time.Hour,
		},
		Voice: VoiceConfig{
			Provider: "",
			Model:    "gpt-4o-mini",
			Timeout:  30 * time.Second,
		},
		Output: OutputConfig{
			Verbose: false,
			JSON:    false,
		},
	}
}
