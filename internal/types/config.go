package types

import (
	"time"

	"github.com/JDENNO91/hyperliquidtradingbot-sub000/internal/version"
	"github.com/JDENNO91/hyperliquidtradingbot-sub000/pkg/errors"
	"github.com/JDENNO91/hyperliquidtradingbot-sub000/pkg/schema"
)

// StrategyConfig selects a registered strategy and carries its parameters.
type StrategyConfig struct {
	// Name is the registry key, e.g. "bbrsi"
	Name string `yaml:"name" json:"name" jsonschema:"description=Registered strategy name,enum=bbrsi,enum=rsi_scalping,enum=ma_rsi_hybrid,enum=scalping,enum=super_optimized" validate:"required,oneof=bbrsi rsi_scalping ma_rsi_hybrid scalping super_optimized"`
	// Params are decoded by the strategy onto its own defaults
	Params map[string]any `yaml:"params,omitempty" json:"params,omitempty" jsonschema:"description=Strategy specific parameters"`
}

// TradingConfig describes what is traded and with how much capital.
type TradingConfig struct {
	Market         string  `yaml:"market" json:"market" jsonschema:"description=Symbol to trade,default=BTC" validate:"required"`
	Timeframe      string  `yaml:"timeframe" json:"timeframe" jsonschema:"description=Bar interval,default=1m" validate:"required"`
	Leverage       float64 `yaml:"leverage" json:"leverage" jsonschema:"description=Leverage passed to the order executor,default=1" validate:"gte=1"`
	InitialCapital float64 `yaml:"initial_capital" json:"initial_capital" jsonschema:"description=Starting capital used for sizing,default=10000" validate:"gt=0"`
	AllowHedging   bool    `yaml:"allow_hedging" json:"allow_hedging" jsonschema:"description=Allow a long and a short on the same symbol,default=false"`
	// HistorySize bounds the bar window handed to the strategy
	HistorySize int `yaml:"history_size" json:"history_size" jsonschema:"description=Bars kept for indicator lookback,default=500" validate:"gte=0"`
}

// LiveConfig tunes the polling loop and its drawdown monitor.
type LiveConfig struct {
	PollInterval         time.Duration `yaml:"poll_interval" json:"poll_interval" jsonschema:"description=Delay between loop iterations"`
	MaxConsecutiveErrors int           `yaml:"max_consecutive_errors" json:"max_consecutive_errors" jsonschema:"description=Consecutive failures tolerated before the loop stops,default=5" validate:"gte=1"`
	DrawdownThreshold    float64       `yaml:"drawdown_threshold" json:"drawdown_threshold" jsonschema:"description=Account drawdown that triggers liquidation,default=0.1" validate:"gt=0,lte=1"`
	MonitorInterval      time.Duration `yaml:"monitor_interval" json:"monitor_interval" jsonschema:"description=Delay between drawdown checks"`
	LookbackBars         int           `yaml:"lookback_bars" json:"lookback_bars" jsonschema:"description=Bars fetched on the first iteration,default=100" validate:"gte=1"`
}

// Config is the resolved, validated configuration the core consumes.
type Config struct {
	// Version is the library version the config was written for
	Version string `yaml:"version" json:"version" jsonschema:"description=Config version (semver)"`
	// RunID namespaces position ids; derived from strategy and market when empty
	RunID    string         `yaml:"run_id" json:"run_id" jsonschema:"description=Run identifier used to derive position ids"`
	Strategy StrategyConfig `yaml:"strategy" json:"strategy"`
	Trading  TradingConfig  `yaml:"trading" json:"trading"`
	Risk     RiskParameters `yaml:"risk" json:"risk"`
	Live     LiveConfig     `yaml:"live" json:"live"`
}

// DefaultConfig returns a complete config for the bbrsi strategy on BTC.
func DefaultConfig() Config {
	return Config{
		Version: version.GetVersion(),
		RunID:   "",
		Strategy: StrategyConfig{
			Name:   "bbrsi",
			Params: nil,
		},
		Trading: TradingConfig{
			Market:         "BTC",
			Timeframe:      "1m",
			Leverage:       1,
			InitialCapital: 10000,
			AllowHedging:   false,
			HistorySize:    500,
		},
		Risk: DefaultRiskParameters(),
		Live: DefaultLiveConfig(),
	}
}

// DefaultLiveConfig returns the stock loop settings.
func DefaultLiveConfig() LiveConfig {
	return LiveConfig{
		PollInterval:         time.Minute,
		MaxConsecutiveErrors: 5,
		DrawdownThreshold:    0.10,
		MonitorInterval:      5 * time.Second,
		LookbackBars:         100,
	}
}

// Validate checks the whole config, including version compatibility.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid configuration", err)
	}

	if c.Version != "" {
		if err := version.CheckCompatibility(version.GetVersion(), c.Version); err != nil {
			return err
		}
	}

	return nil
}

// ResolvedRunID returns RunID or a stable id built from strategy and market.
func (c Config) ResolvedRunID() string {
	if c.RunID != "" {
		return c.RunID
	}

	return c.Strategy.Name + ":" + c.Trading.Market + ":" + c.Trading.Timeframe
}

// GetConfigSchema returns the JSON schema for Config.
func GetConfigSchema() (string, error) {
	return schema.ToJSONSchema(&Config{}) //nolint:exhaustruct // empty config for schema generation
}
