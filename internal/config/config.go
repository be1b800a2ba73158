package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Inputs     Inputs     `yaml:"inputs"`
	Output     Output     `yaml:"output"`
	Sinks      Sinks      `yaml:"sinks"`
	Generation Generation `yaml:"generation"`
}

type Inputs struct {
	Orders     string `yaml:"orders"`
	OrderItems string `yaml:"order_items"`
	Products   string `yaml:"products"`
	Customers  string `yaml:"customers"`
}

type Output struct {
	Sink string `yaml:"sink"`
	Path string `yaml:"path"`
}

// Sinks holds DSNs for the database-backed sinks. Values may reference
// environment variables ($VAR or ${VAR}); they are expanded on load.
type Sinks struct {
	Postgres   string `yaml:"postgres"`
	MySQL      string `yaml:"mysql"`
	Mongo      string `yaml:"mongo"`
	ClickHouse string `yaml:"clickhouse"`
}

type Generation struct {
	MaxPurchaseSessions   int    `yaml:"max_purchase_sessions"`
	NonConversionSessions int    `yaml:"non_conversion_sessions"`
	ProgressEvery         int    `yaml:"progress_every"`
	Seed                  int64  `yaml:"seed"`
	Policy                Policy `yaml:"policy"`
}

// Policy overrides the generators' timing and sampling constants. Zero
// values fall back to the defaults baked into the clickstream package.
type Policy struct {
	FunnelLeadMinMinutes int     `yaml:"funnel_lead_min_minutes"`
	FunnelLeadMaxMinutes int     `yaml:"funnel_lead_max_minutes"`
	FunnelStepMinSeconds int     `yaml:"funnel_step_min_seconds"`
	FunnelStepMaxSeconds int     `yaml:"funnel_step_max_seconds"`
	BrowseStepMinSeconds int     `yaml:"browse_step_min_seconds"`
	BrowseStepMaxSeconds int     `yaml:"browse_step_max_seconds"`
	BrowseMinSteps       int     `yaml:"browse_min_steps"`
	BrowseMaxSteps       int     `yaml:"browse_max_steps"`
	BrowseAuthProb       float64 `yaml:"browse_auth_probability"`
	PageViewWeight       float64 `yaml:"page_view_weight"`
	ViewProductWeight    float64 `yaml:"view_product_weight"`
	AddToCartWeight      float64 `yaml:"add_to_cart_weight"`
	MaxFunnelProducts    int     `yaml:"max_funnel_products"`
	AnchorMaxLeadDays    int     `yaml:"anchor_max_lead_days"`
	AnchorMaxLeadMinutes int     `yaml:"anchor_max_lead_minutes"`
}

func Default() *Config {
	return &Config{
		Output: Output{
			Sink: "csv",
			Path: "olist_clickstream_events.csv",
		},
		Generation: Generation{
			MaxPurchaseSessions:   10000,
			NonConversionSessions: 8000,
			ProgressEvery:         1000,
			Seed:                  42,
		},
	}
}

func LoadConfig(path string) (*Config, error) {
	config := Default()

	file, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	err = yaml.Unmarshal(file, config)
	if err != nil {
		return nil, err
	}

	config.Sinks.Postgres = os.ExpandEnv(config.Sinks.Postgres)
	config.Sinks.MySQL = os.ExpandEnv(config.Sinks.MySQL)
	config.Sinks.Mongo = os.ExpandEnv(config.Sinks.Mongo)
	config.Sinks.ClickHouse = os.ExpandEnv(config.Sinks.ClickHouse)

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (c *Config) Validate() error {
	inputs := map[string]string{
		"inputs.orders":      c.Inputs.Orders,
		"inputs.order_items": c.Inputs.OrderItems,
		"inputs.products":    c.Inputs.Products,
		"inputs.customers":   c.Inputs.Customers,
	}
	for name, path := range inputs {
		if path == "" {
			return fmt.Errorf("config: %s is required", name)
		}
	}
	if c.Output.Sink == "" {
		return fmt.Errorf("config: output.sink is required")
	}
	if c.Generation.MaxPurchaseSessions < 0 {
		return fmt.Errorf("config: generation.max_purchase_sessions must not be negative")
	}
	if c.Generation.NonConversionSessions < 0 {
		return fmt.Errorf("config: generation.non_conversion_sessions must not be negative")
	}
	if c.Generation.ProgressEvery < 1 {
		return fmt.Errorf("config: generation.progress_every must be at least 1")
	}
	return nil
}
