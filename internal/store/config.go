package store

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"dcf-screener/internal/types"
)

type Config struct {
	DataSource string `yaml:"data_source"` // LIVE or STATIC
	Universe   struct {
		Mode   string   `yaml:"mode"` // STATIC or SP500
		Static []string `yaml:"static"`
	} `yaml:"universe"`
	FCF struct {
		Window int `yaml:"window"` // 1 = latest value, 3 = trailing average
	} `yaml:"fcf"`
	Valuation struct {
		DefaultAssumptions types.AssumptionSet `yaml:"default_assumptions"`
		Tiers              []types.Tier        `yaml:"tiers"`
	} `yaml:"valuation"`
	Provider struct {
		TimeoutSeconds int `yaml:"timeout_seconds"`
		RetryAttempts  int `yaml:"retry_attempts"`
	} `yaml:"provider"`
	Processing struct {
		MaxWorkers int `yaml:"max_workers"`
	} `yaml:"processing"`
	Output struct {
		SortBy          string   `yaml:"sort_by"` // margin or ticker
		ShowColors      bool     `yaml:"show_colors"`
		OnlyUndervalued bool     `yaml:"only_undervalued"`
		MaxResults      int      `yaml:"max_results"`
		Focus           []string `yaml:"focus"`
		CSVPath         string   `yaml:"csv_path"`
	} `yaml:"output"`
}

func (c *Config) Validate() error {
	if c.DataSource != "LIVE" && c.DataSource != "STATIC" {
		return fmt.Errorf("invalid data_source '%s': must be 'LIVE' or 'STATIC'", c.DataSource)
	}
	if c.Universe.Mode != "STATIC" && c.Universe.Mode != "SP500" {
		return fmt.Errorf("invalid universe.mode '%s': must be 'STATIC' or 'SP500'", c.Universe.Mode)
	}
	if c.Universe.Mode == "STATIC" && len(c.Universe.Static) == 0 {
		return errors.New("universe.static cannot be empty in STATIC mode")
	}
	if c.FCF.Window < 1 {
		return fmt.Errorf("fcf.window must be at least 1, got %d", c.FCF.Window)
	}
	if err := validateAssumptions("default_assumptions", c.Valuation.DefaultAssumptions); err != nil {
		return err
	}
	for _, tier := range c.Valuation.Tiers {
		if tier.Name == "" {
			return errors.New("every tier needs a name")
		}
		if err := validateAssumptions(fmt.Sprintf("tier '%s'", tier.Name), tier.Assumptions); err != nil {
			return err
		}
	}
	if c.Processing.MaxWorkers < 1 {
		return fmt.Errorf("processing.max_workers must be at least 1, got %d", c.Processing.MaxWorkers)
	}
	if c.Output.SortBy != "margin" && c.Output.SortBy != "ticker" {
		return fmt.Errorf("output.sort_by must be 'margin' or 'ticker', got '%s'", c.Output.SortBy)
	}
	return nil
}

// validateAssumptions rejects sets that would produce an undefined terminal
// value before any ticker is evaluated.
func validateAssumptions(where string, a types.AssumptionSet) error {
	if a.DiscountRate <= a.PerpetualGrowthRate {
		return fmt.Errorf("%s: discount_rate (%.4f) must exceed perpetual_growth_rate (%.4f)",
			where, a.DiscountRate, a.PerpetualGrowthRate)
	}
	return nil
}

func LoadConfig(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}

	applyDefaults(&c)

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &c, nil
}

func applyDefaults(c *Config) {
	if c.DataSource == "" {
		c.DataSource = "STATIC"
	}
	if c.Universe.Mode == "" {
		c.Universe.Mode = "STATIC"
	}
	if c.FCF.Window == 0 {
		c.FCF.Window = 1
	}
	if c.Valuation.DefaultAssumptions == (types.AssumptionSet{}) {
		c.Valuation.DefaultAssumptions = types.AssumptionSet{
			ShortTermGrowthRate: 0.05,
			DiscountRate:        0.10,
			PerpetualGrowthRate: 0.025,
		}
	}
	if c.Provider.TimeoutSeconds == 0 {
		c.Provider.TimeoutSeconds = 20
	}
	if c.Provider.RetryAttempts == 0 {
		c.Provider.RetryAttempts = 3
	}
	if c.Processing.MaxWorkers == 0 {
		c.Processing.MaxWorkers = 1
	}
	if c.Output.SortBy == "" {
		c.Output.SortBy = "margin"
	}
}
