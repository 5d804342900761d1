package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"

	"github.com/ornolfur/spyrja/internal/model"
	"github.com/ornolfur/spyrja/internal/query"
	"github.com/ornolfur/spyrja/internal/similar"
	"github.com/ornolfur/spyrja/internal/store"
)

// loadConfig merges defaults, the config file and environment variables
func loadConfig() *model.Config {
	cfg := model.DefaultConfig()

	if v := viper.GetString("db.path"); v != "" {
		cfg.DB.Path = v
	}
	if v := viper.GetString("similar.url"); v != "" {
		cfg.Similar.URL = v
	}
	if v := viper.GetDuration("similar.timeout"); v > 0 {
		cfg.Similar.Timeout = v
	}
	if v := viper.GetFloat64("similar.requests_per_second"); v > 0 {
		cfg.Similar.RequestsPerSecond = v
	}
	if viper.IsSet("cache.enabled") {
		cfg.Cache.Enabled = viper.GetBool("cache.enabled")
	}
	if v := viper.GetDuration("cache.ttl"); v > 0 {
		cfg.Cache.TTL = v
	}
	if v := viper.GetString("voice.provider"); v != "" {
		cfg.Voice.Provider = v
	}
	if v := viper.GetString("voice.model"); v != "" {
		cfg.Voice.Model = v
	}
	if v := viper.GetString("voice.base_url"); v != "" {
		cfg.Voice.BaseURL = v
	}
	if v := viper.GetString("voice.api_key"); v != "" {
		cfg.Voice.APIKey = v
	} else {
		cfg.Voice.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	cfg.Output.Verbose = verbose
	cfg.Output.JSON = asJSON

	return cfg
}

// openStore opens the corpus database configured in cfg
func openStore(cfg *model.Config) (*store.Store, error) {
	if cfg.DB.Path == "" {
		return nil, fmt.Errorf("no corpus database configured (set --db or db.path)")
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "Using corpus database: %s\n", cfg.DB.Path)
	}
	s, err := store.Open(cfg.DB.Path)
	if err != nil {
		return nil, fmt.Errorf("open corpus database: %w", err)
	}
	return s, nil
}

// newDispatcher wires the query dispatcher over the store and, when
// configured, the similarity server.
func newDispatcher(cfg *model.Config, s *store.Store) *query.Dispatcher {
	var searcher query.Searcher
	if cfg.Similar.URL != "" {
		searcher = similar.NewClient(cfg.Similar)
	}
	return query.NewDispatcher(s, searcher, nil)
}

// elapsed logs the duration of a step when verbose output is on
func elapsed(step string, start time.Time) {
	if verbose {
		fmt.Fprintf(os.Stderr, "%s took %v\n", step, time.Since(start))
	}
}
