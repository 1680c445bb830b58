package pricing

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"avenqor/internal/domain/value"
)

// Weights is the additive token-cost table of one form. Every weight must be
// non-negative: that is what makes the price monotonic in added options.
type Weights struct {
	Base           int64                            `yaml:"base"`
	Experience     map[value.ExperienceTier]int64   `yaml:"experience"`
	Deposit        map[value.DepositBracket]int64   `yaml:"deposit"`
	Risk           map[value.RiskTolerance]int64    `yaml:"risk"`
	PerMarket      int64                            `yaml:"perMarket"`
	Style          map[value.TradingStyle]int64     `yaml:"style"`
	PerWeekday     int64                            `yaml:"perWeekday"`
	TimeCommitment map[value.TimeCommitment]int64   `yaml:"timeCommitment"`
	PerPlatform    int64                            `yaml:"perPlatform"`
	ExtraLanguage  int64                            `yaml:"extraLanguage"`
}

// Rate converts tokens into one display currency.
type Rate struct {
	PerToken decimal.Decimal
	Symbol   string
}

type rateYAML struct {
	PerToken string `yaml:"perToken"`
	Symbol   string `yaml:"symbol"`
}

// Config carries the weight tables and the static currency rate table. The
// numbers are a product decision, not code: deployments override the
// defaults with a YAML file.
type Config struct {
	CustomCourse    Weights
	AIStrategy      Weights
	DefaultCurrency value.Currency
	Rates           map[value.Currency]Rate
}

type configYAML struct {
	CustomCourse    Weights                     `yaml:"customCourse"`
	AIStrategy      Weights                     `yaml:"aiStrategy"`
	DefaultCurrency string                      `yaml:"defaultCurrency"`
	Rates           map[string]rateYAML         `yaml:"rates"`
}

// Load reads a pricing config from a YAML file. An empty path returns the
// compiled-in defaults.
func Load(path string) (Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("os.ReadFile: %w", err)
	}

	var parsed configYAML

	if err := yaml.Unmarshal(raw, &parsed); err != nil {
		return Config{}, fmt.Errorf("yaml.Unmarshal: %w", err)
	}

	cfg, err := parsed.toConfig()
	if err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("validate %s: %w", path, err)
	}

	return cfg, nil
}

func (c configYAML) toConfig() (Config, error) {
	currency, err := value.ParseCurrency(c.DefaultCurrency)
	if err != nil {
		return Config{}, fmt.Errorf("defaultCurrency: %w", err)
	}

	rates := make(map[value.Currency]Rate, len(c.Rates))

	for code, rate := range c.Rates {
		parsedCode, err := value.ParseCurrency(code)
		if err != nil {
			return Config{}, fmt.Errorf("rate currency: %w", err)
		}

		perToken, err := decimal.NewFromString(rate.PerToken)
		if err != nil {
			return Config{}, fmt.Errorf("rate %s perToken: %w", code, err)
		}

		rates[parsedCode] = Rate{
			PerToken: perToken,
			Symbol:   rate.Symbol,
		}
	}

	return Config{
		CustomCourse:    c.CustomCourse,
		AIStrategy:      c.AIStrategy,
		DefaultCurrency: currency,
		Rates:           rates,
	}, nil
}

// Validate enforces the invariants the calculators rely on.
func (c Config) Validate() error {
	if err := c.CustomCourse.validate("customCourse"); err != nil {
		return err
	}

	if err := c.AIStrategy.validate("aiStrategy"); err != nil {
		return err
	}

	if len(c.Rates) == 0 {
		return fmt.Errorf("rates: at least one currency required")
	}

	for code, rate := range c.Rates {
		if rate.PerToken.IsNegative() || rate.PerToken.IsZero() {
			return fmt.Errorf("rates.%s: perToken must be positive", code)
		}

		if rate.Symbol == "" {
			return fmt.Errorf("rates.%s: symbol required", code)
		}
	}

	if _, ok := c.Rates[c.DefaultCurrency]; !ok {
		return fmt.Errorf("defaultCurrency %s has no rate", c.DefaultCurrency)
	}

	return nil
}

func (w Weights) validate(section string) error {
	if w.Base <= 0 {
		return fmt.Errorf("%s.base must be positive", section)
	}

	if w.PerMarket < 0 || w.PerWeekday < 0 || w.PerPlatform < 0 || w.ExtraLanguage < 0 {
		return fmt.Errorf("%s: per-item weights must be non-negative", section)
	}

	for name, table := range map[string]map[string]int64{
		"experience":     flatten(w.Experience),
		"deposit":        flatten(w.Deposit),
		"risk":           flatten(w.Risk),
		"style":          flatten(w.Style),
		"timeCommitment": flatten(w.TimeCommitment),
	} {
		for key, weight := range table {
			if weight < 0 {
				return fmt.Errorf("%s.%s.%s must be non-negative", section, name, key)
			}
		}
	}

	return nil
}

func flatten[K ~string](table map[K]int64) map[string]int64 {
	result := make(map[string]int64, len(table))
	for k, v := range table {
		result[string(k)] = v
	}

	return result
}

// DefaultConfig returns the weights and rates shipped with the service.
// Production overrides them via PRICING_CONFIG_PATH.
func DefaultConfig() Config {
	return Config{
		CustomCourse: Weights{
			Base: 1000,
			Experience: map[value.ExperienceTier]int64{
				value.ExperienceBeginner:     0,
				value.ExperienceIntermediate: 200,
				value.ExperienceAdvanced:     450,
			},
			Deposit: map[value.DepositBracket]int64{
				value.DepositLow:      0,
				value.DepositMedium:   150,
				value.DepositHigh:     300,
				value.DepositVeryHigh: 500,
			},
			Risk: map[value.RiskTolerance]int64{
				value.RiskLow:    0,
				value.RiskMedium: 100,
				value.RiskHigh:   250,
			},
			PerMarket: 250,
			Style: map[value.TradingStyle]int64{
				value.StyleScalping:   200,
				value.StyleDayTrading: 150,
				value.StyleSwing:      100,
				value.StylePosition:   50,
			},
			PerWeekday:    40,
			PerPlatform:   120,
			ExtraLanguage: 600,
		},
		AIStrategy: Weights{
			Base: 600,
			Experience: map[value.ExperienceTier]int64{
				value.ExperienceBeginner:     0,
				value.ExperienceIntermediate: 120,
				value.ExperienceAdvanced:     280,
			},
			Deposit: map[value.DepositBracket]int64{
				value.DepositLow:      0,
				value.DepositMedium:   100,
				value.DepositHigh:     200,
				value.DepositVeryHigh: 350,
			},
			Risk: map[value.RiskTolerance]int64{
				value.RiskLow:    0,
				value.RiskMedium: 80,
				value.RiskHigh:   180,
			},
			PerMarket: 150,
			Style: map[value.TradingStyle]int64{
				value.StyleScalping:   120,
				value.StyleDayTrading: 100,
				value.StyleSwing:      70,
				value.StylePosition:   40,
			},
			TimeCommitment: map[value.TimeCommitment]int64{
				value.CommitmentCasual:    0,
				value.CommitmentRegular:   100,
				value.CommitmentIntensive: 250,
			},
			PerPlatform:   80,
			ExtraLanguage: 300,
		},
		DefaultCurrency: value.CurrencyUSD,
		Rates: map[value.Currency]Rate{
			value.CurrencyUSD: {PerToken: decimal.RequireFromString("0.01"), Symbol: "$"},
			value.CurrencyEUR: {PerToken: decimal.RequireFromString("0.0093"), Symbol: "€"},
			value.CurrencyGBP: {PerToken: decimal.RequireFromString("0.0079"), Symbol: "£"},
			value.CurrencyAED: {PerToken: decimal.RequireFromString("0.0367"), Symbol: "AED "},
		},
	}
}
