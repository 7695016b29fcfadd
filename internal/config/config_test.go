package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

// TestLoadAndValidate tests loading a complete config file.
func TestLoadAndValidate(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9090
forex:
  api_key: "test-key"
  timeout: 3s
database:
  host: db.example.com
  name: arb
  user: arb
  password: secret
pipeline:
  history_target: 100
`)

	cfg, err := LoadAndValidate(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Forex.APIKey != "test-key" {
		t.Errorf("Forex.APIKey = %q, want %q", cfg.Forex.APIKey, "test-key")
	}
	if cfg.Forex.Timeout != 3*time.Second {
		t.Errorf("Forex.Timeout = %v, want 3s", cfg.Forex.Timeout)
	}
	if cfg.Pipeline.HistoryTarget != 100 {
		t.Errorf("Pipeline.HistoryTarget = %d, want 100", cfg.Pipeline.HistoryTarget)
	}
	if !cfg.Database.Configured() {
		t.Error("Database.Configured() = false, want true")
	}
}

// TestDefaults tests that unset fields receive defaults.
func TestDefaults(t *testing.T) {
	path := writeConfig(t, `{}`)

	cfg, err := LoadAndValidate(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != DefaultServerPort {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, DefaultServerPort)
	}
	if cfg.Forex.URL != DefaultForexURL {
		t.Errorf("Forex.URL = %q, want %q", cfg.Forex.URL, DefaultForexURL)
	}
	if cfg.Forex.Timeout != DefaultForexTimeout {
		t.Errorf("Forex.Timeout = %v, want %v", cfg.Forex.Timeout, DefaultForexTimeout)
	}
	if cfg.Crypto.Timeout != DefaultCryptoTimeout {
		t.Errorf("Crypto.Timeout = %v, want %v", cfg.Crypto.Timeout, DefaultCryptoTimeout)
	}
	if cfg.Crypto.Depth != DefaultCryptoDepth {
		t.Errorf("Crypto.Depth = %d, want %d", cfg.Crypto.Depth, DefaultCryptoDepth)
	}
	if cfg.Pipeline.ForexCacheTTL != DefaultForexCacheTTL {
		t.Errorf("Pipeline.ForexCacheTTL = %v, want %v", cfg.Pipeline.ForexCacheTTL, DefaultForexCacheTTL)
	}
	if cfg.Pipeline.SaveDebounce != DefaultSaveDebounce {
		t.Errorf("Pipeline.SaveDebounce = %v, want %v", cfg.Pipeline.SaveDebounce, DefaultSaveDebounce)
	}
	if cfg.Database.Table != DefaultTable {
		t.Errorf("Database.Table = %q, want %q", cfg.Database.Table, DefaultTable)
	}

	if len(cfg.Pairs) != 4 {
		t.Fatalf("len(Pairs) = %d, want 4", len(cfg.Pairs))
	}
	var inverted *PairConfig
	for i := range cfg.Pairs {
		if cfg.Pairs[i].Inverted {
			inverted = &cfg.Pairs[i]
		}
	}
	if inverted == nil {
		t.Fatal("default pairs should contain one inverted pair")
	}
	if inverted.ID != "USDCEUR" || inverted.Market != "EURUSDC" {
		t.Errorf("inverted pair = %+v, want USDCEUR/EURUSDC", inverted)
	}
}

// TestEnvExpansion tests ${VAR} expansion in the config file.
func TestEnvExpansion(t *testing.T) {
	t.Setenv("TEST_STABLEARB_KEY", "expanded-key")

	path := writeConfig(t, `
forex:
  api_key: "${TEST_STABLEARB_KEY}"
`)

	cfg, err := LoadAndValidate(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Forex.APIKey != "expanded-key" {
		t.Errorf("Forex.APIKey = %q, want %q", cfg.Forex.APIKey, "expanded-key")
	}
}

// TestSecretsFromEnvironment tests the env fallbacks for unset secrets.
func TestSecretsFromEnvironment(t *testing.T) {
	t.Setenv(EnvForexAPIKey, "env-key")
	t.Setenv(EnvDatabaseURL, "postgres://u:p@db.example.com:5432/arb")

	path := writeConfig(t, `{}`)
	cfg, err := LoadAndValidate(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Forex.APIKey != "env-key" {
		t.Errorf("Forex.APIKey = %q, want %q", cfg.Forex.APIKey, "env-key")
	}
	if cfg.Database.URL != "postgres://u:p@db.example.com:5432/arb" {
		t.Errorf("Database.URL = %q, want env value", cfg.Database.URL)
	}
	if !cfg.Database.Configured() {
		t.Error("Database.Configured() = false, want true")
	}
}

// TestLoadOrDefault tests that a missing file falls back to defaults.
func TestLoadOrDefault(t *testing.T) {
	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != DefaultServerPort {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, DefaultServerPort)
	}
	if len(cfg.Pairs) != 4 {
		t.Errorf("len(Pairs) = %d, want 4", len(cfg.Pairs))
	}
}

// TestValidateErrors tests rejection of invalid configs.
func TestValidateErrors(t *testing.T) {
	base := func() *Config {
		cfg := &Config{}
		cfg.applyDefaults()
		return cfg
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad port", func(c *Config) { c.Server.Port = -1 }},
		{"missing forex url", func(c *Config) { c.Forex.URL = "" }},
		{"zero crypto depth", func(c *Config) { c.Crypto.Depth = -1 }},
		{"zero history target", func(c *Config) { c.Pipeline.HistoryTarget = -1 }},
		{"no pairs", func(c *Config) { c.Pairs = nil }},
		{"pair without id", func(c *Config) { c.Pairs[0].ID = "" }},
		{"duplicate pair id", func(c *Config) { c.Pairs[1].ID = c.Pairs[0].ID }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}

// TestModelPairs tests conversion to model pairs.
func TestModelPairs(t *testing.T) {
	cfg := &Config{}
	cfg.applyDefaults()

	pairs := cfg.ModelPairs()
	if len(pairs) != 4 {
		t.Fatalf("len(pairs) = %d, want 4", len(pairs))
	}
	if pairs[0].ID != "USDCPLN" || pairs[0].ForexSymbol != "USD/PLN" {
		t.Errorf("pairs[0] = %+v, want USDCPLN/USD/PLN", pairs[0])
	}
	if !pairs[3].Inverted {
		t.Error("pairs[3].Inverted = false, want true")
	}
}
