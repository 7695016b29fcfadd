package config

import (
	"errors"
	"fmt"
)

// Validate checks that all required fields are set and values are valid.
// Database settings are deliberately not required: a missing store degrades
// the aggregator to a non-persistent mode instead of failing startup.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be 1-65535, got %d", c.Server.Port)
	}

	if c.Forex.URL == "" {
		return errors.New("forex.url is required")
	}
	if c.Forex.Timeout <= 0 {
		return errors.New("forex.timeout must be positive")
	}

	if c.Crypto.URL == "" {
		return errors.New("crypto.url is required")
	}
	if c.Crypto.Depth < 1 {
		return errors.New("crypto.depth must be >= 1")
	}
	if c.Crypto.Timeout <= 0 {
		return errors.New("crypto.timeout must be positive")
	}

	if c.Pipeline.HistoryTarget < 1 {
		return errors.New("pipeline.history_target must be >= 1")
	}
	if c.Pipeline.HistoryPageSize < 1 {
		return errors.New("pipeline.history_page_size must be >= 1")
	}
	if c.Pipeline.HistoryMaxPages < 1 {
		return errors.New("pipeline.history_max_pages must be >= 1")
	}
	if c.Pipeline.PairConcurrency < 1 {
		return errors.New("pipeline.pair_concurrency must be >= 1")
	}

	if len(c.Pairs) == 0 {
		return errors.New("at least one pair is required")
	}
	seen := make(map[string]bool, len(c.Pairs))
	for i, p := range c.Pairs {
		if p.ID == "" {
			return fmt.Errorf("pairs[%d].id is required", i)
		}
		if p.Forex == "" {
			return fmt.Errorf("pairs[%d].forex is required", i)
		}
		if p.Market == "" {
			return fmt.Errorf("pairs[%d].market is required", i)
		}
		if seen[p.ID] {
			return fmt.Errorf("duplicate pair id %q", p.ID)
		}
		seen[p.ID] = true
	}

	return nil
}
