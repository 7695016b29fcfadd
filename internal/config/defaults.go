package config

import (
	"os"
	"time"
)

// Default values for optional configuration fields.
const (
	DefaultServerPort      = 8080
	DefaultForexURL        = "https://api.twelvedata.com/price"
	DefaultForexTimeout    = 5 * time.Second
	DefaultCryptoURL       = "https://api.binance.com/api/v3/depth"
	DefaultCryptoProxyURL  = "https://api.codetabs.com/v1/proxy?quest="
	DefaultCryptoUserAgent = "Mozilla/5.0"
	DefaultCryptoDepth     = 10
	DefaultCryptoTimeout   = 8 * time.Second
	DefaultDBPort          = 5432
	DefaultDBSSLMode       = "prefer"
	DefaultMaxConns        = 4
	DefaultMinConns        = 1
	DefaultTable           = "arb_history"
	DefaultForexCacheTTL   = 10 * time.Minute
	DefaultSaveDebounce    = 50 * time.Second
	DefaultHistoryTarget   = 5000
	DefaultHistoryPageSize = 1000
	DefaultHistoryMaxPages = 10
	DefaultPairConcurrency = 4
)

// Environment variables consulted when the config file leaves secrets unset.
const (
	EnvForexAPIKey = "TWELVEDATA_API_KEY"
	EnvDatabaseURL = "DATABASE_URL"
)

// defaultPairs is the static pair list used when the config file does not
// override it.
func defaultPairs() []PairConfig {
	return []PairConfig{
		{ID: "USDCPLN", Forex: "USD/PLN", Market: "USDCPLN"},
		{ID: "USDCRON", Forex: "USD/RON", Market: "USDCRON"},
		{ID: "USDCCZK", Forex: "USD/CZK", Market: "USDCCZK"},
		{ID: "USDCEUR", Forex: "USD/EUR", Market: "EURUSDC", Inverted: true},
	}
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = DefaultServerPort
	}

	// Forex defaults
	if c.Forex.URL == "" {
		c.Forex.URL = DefaultForexURL
	}
	if c.Forex.APIKey == "" {
		c.Forex.APIKey = os.Getenv(EnvForexAPIKey)
	}
	if c.Forex.Timeout == 0 {
		c.Forex.Timeout = DefaultForexTimeout
	}

	// Crypto defaults
	if c.Crypto.URL == "" {
		c.Crypto.URL = DefaultCryptoURL
	}
	if c.Crypto.ProxyURL == "" {
		c.Crypto.ProxyURL = DefaultCryptoProxyURL
	}
	if c.Crypto.UserAgent == "" {
		c.Crypto.UserAgent = DefaultCryptoUserAgent
	}
	if c.Crypto.Depth == 0 {
		c.Crypto.Depth = DefaultCryptoDepth
	}
	if c.Crypto.Timeout == 0 {
		c.Crypto.Timeout = DefaultCryptoTimeout
	}

	// Database defaults
	if c.Database.URL == "" && c.Database.Host == "" {
		c.Database.URL = os.Getenv(EnvDatabaseURL)
	}
	if c.Database.Port == 0 {
		c.Database.Port = DefaultDBPort
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = DefaultDBSSLMode
	}
	if c.Database.MaxConns == 0 {
		c.Database.MaxConns = DefaultMaxConns
	}
	if c.Database.MinConns == 0 {
		c.Database.MinConns = DefaultMinConns
	}
	if c.Database.Table == "" {
		c.Database.Table = DefaultTable
	}

	// Pipeline defaults
	if c.Pipeline.ForexCacheTTL == 0 {
		c.Pipeline.ForexCacheTTL = DefaultForexCacheTTL
	}
	if c.Pipeline.SaveDebounce == 0 {
		c.Pipeline.SaveDebounce = DefaultSaveDebounce
	}
	if c.Pipeline.HistoryTarget == 0 {
		c.Pipeline.HistoryTarget = DefaultHistoryTarget
	}
	if c.Pipeline.HistoryPageSize == 0 {
		c.Pipeline.HistoryPageSize = DefaultHistoryPageSize
	}
	if c.Pipeline.HistoryMaxPages == 0 {
		c.Pipeline.HistoryMaxPages = DefaultHistoryMaxPages
	}
	if c.Pipeline.PairConcurrency == 0 {
		c.Pipeline.PairConcurrency = DefaultPairConcurrency
	}

	if len(c.Pairs) == 0 {
		c.Pairs = defaultPairs()
	}
}
