package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeConfig(t, `
inputs:
  orders: orders.csv
  order_items: items.csv
  products: products.csv
  customers: customers.csv
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Output.Sink != "csv" {
		t.Errorf("default sink = %q, want csv", cfg.Output.Sink)
	}
	if cfg.Generation.MaxPurchaseSessions != 10000 {
		t.Errorf("default max_purchase_sessions = %d, want 10000", cfg.Generation.MaxPurchaseSessions)
	}
	if cfg.Generation.NonConversionSessions != 8000 {
		t.Errorf("default non_conversion_sessions = %d, want 8000", cfg.Generation.NonConversionSessions)
	}
	if cfg.Generation.ProgressEvery != 1000 {
		t.Errorf("default progress_every = %d, want 1000", cfg.Generation.ProgressEvery)
	}
	if cfg.Generation.Seed != 42 {
		t.Errorf("default seed = %d, want 42", cfg.Generation.Seed)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	path := writeConfig(t, `
inputs:
  orders: orders.csv
  order_items: items.csv
  products: products.csv
  customers: customers.csv
output:
  sink: clickhouse
generation:
  max_purchase_sessions: 5
  non_conversion_sessions: 3
  progress_every: 2
  seed: 7
  policy:
    browse_min_steps: 4
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Output.Sink != "clickhouse" {
		t.Errorf("sink = %q, want clickhouse", cfg.Output.Sink)
	}
	if cfg.Generation.MaxPurchaseSessions != 5 || cfg.Generation.NonConversionSessions != 3 {
		t.Errorf("generation counts = %d/%d, want 5/3",
			cfg.Generation.MaxPurchaseSessions, cfg.Generation.NonConversionSessions)
	}
	if cfg.Generation.Seed != 7 {
		t.Errorf("seed = %d, want 7", cfg.Generation.Seed)
	}
	if cfg.Generation.Policy.BrowseMinSteps != 4 {
		t.Errorf("policy browse_min_steps = %d, want 4", cfg.Generation.Policy.BrowseMinSteps)
	}
}

func TestLoadConfigExpandsEnv(t *testing.T) {
	t.Setenv("TEST_CLICKSTREAM_PG", "postgres://localhost:5432/events")
	path := writeConfig(t, `
inputs:
  orders: orders.csv
  order_items: items.csv
  products: products.csv
  customers: customers.csv
sinks:
  postgres: $TEST_CLICKSTREAM_PG
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Sinks.Postgres != "postgres://localhost:5432/events" {
		t.Errorf("postgres dsn = %q, env var not expanded", cfg.Sinks.Postgres)
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing orders input", func(c *Config) { c.Inputs.Orders = "" }},
		{"missing customers input", func(c *Config) { c.Inputs.Customers = "" }},
		{"empty sink", func(c *Config) { c.Output.Sink = "" }},
		{"negative purchase sessions", func(c *Config) { c.Generation.MaxPurchaseSessions = -1 }},
		{"negative browsing sessions", func(c *Config) { c.Generation.NonConversionSessions = -1 }},
		{"zero progress interval", func(c *Config) { c.Generation.ProgressEvery = 0 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			cfg.Inputs = Inputs{
				Orders:     "a.csv",
				OrderItems: "b.csv",
				Products:   "c.csv",
				Customers:  "d.csv",
			}
			tc.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected validation error, got nil")
			}
		})
	}
}
