package config

import (
	"time"

	"stablearb/internal/model"
)

// Config is the root configuration for the aggregator.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Forex    ForexConfig    `yaml:"forex"`
	Crypto   CryptoConfig   `yaml:"crypto"`
	Database DBConfig       `yaml:"database"`
	Pipeline PipelineConfig `yaml:"pipeline"`
	Pairs    []PairConfig   `yaml:"pairs"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port int `yaml:"port"`
}

// ForexConfig holds the forex quote API settings.
type ForexConfig struct {
	URL     string        `yaml:"url"`
	APIKey  string        `yaml:"api_key"`
	Timeout time.Duration `yaml:"timeout"`
}

// CryptoConfig holds the crypto order-book API settings. Requests are
// routed through ProxyURL when set (public CORS relay).
type CryptoConfig struct {
	URL       string        `yaml:"url"`
	ProxyURL  string        `yaml:"proxy_url"`
	UserAgent string        `yaml:"user_agent"`
	Depth     int           `yaml:"depth"`
	Timeout   time.Duration `yaml:"timeout"`
}

// DBConfig holds the history store connection. URL wins over the discrete
// fields when both are set.
type DBConfig struct {
	URL      string `yaml:"url"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"ssl_mode"`
	MaxConns int    `yaml:"max_conns"`
	MinConns int    `yaml:"min_conns"`
	Table    string `yaml:"table"`
}

// Configured reports whether enough connection information is present to
// reach a database at all. When false the aggregator runs in a
// non-persistent, cache-less mode.
func (c DBConfig) Configured() bool {
	return c.URL != "" || c.Host != ""
}

// PipelineConfig holds snapshot pipeline tunables.
type PipelineConfig struct {
	// ForexCacheTTL is how long a stored prices map stays fresh enough to
	// skip the forex API call.
	ForexCacheTTL time.Duration `yaml:"forex_cache_ttl"`
	// SaveDebounce is the minimum interval between two persisted snapshots.
	SaveDebounce time.Duration `yaml:"save_debounce"`
	// HistoryTarget bounds the number of records returned to interactive
	// callers; larger ranges are stride-downsampled to this cardinality.
	HistoryTarget int `yaml:"history_target"`
	// HistoryPageSize is the page size used when scanning history without
	// a since filter.
	HistoryPageSize int `yaml:"history_page_size"`
	// HistoryMaxPages caps the unfiltered scan.
	HistoryMaxPages int `yaml:"history_max_pages"`
	// PairConcurrency bounds concurrent per-pair order-book fetches.
	PairConcurrency int `yaml:"pair_concurrency"`
}

// PairConfig is the YAML form of one tracked pair.
type PairConfig struct {
	ID       string `yaml:"id"`
	Forex    string `yaml:"forex"`
	Market   string `yaml:"market"`
	Inverted bool   `yaml:"inverted"`
}

// ModelPairs converts the configured pairs to their model form.
func (c *Config) ModelPairs() []model.Pair {
	pairs := make([]model.Pair, 0, len(c.Pairs))
	for _, p := range c.Pairs {
		pairs = append(pairs, model.Pair{
			ID:          p.ID,
			ForexSymbol: p.Forex,
			Market:      p.Market,
			Inverted:    p.Inverted,
		})
	}
	return pairs
}
