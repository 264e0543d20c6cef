// Package config loads and validates run configuration from YAML or
// JSON files and maps it onto the backtest parameters.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"quantsim/backtest"
)

// Config is the complete file-level configuration for a backtest run.
type Config struct {
	Backtest BacktestConfig `json:"backtest" yaml:"backtest"`
	Data     DataConfig     `json:"data" yaml:"data"`
	Strategy StrategyConfig `json:"strategy" yaml:"strategy"`
	Journal  JournalConfig  `json:"journal" yaml:"journal"`
}

// BacktestConfig contains capital, window, cost and exit parameters.
type BacktestConfig struct {
	Start string `json:"start" yaml:"start"`
	End   string `json:"end" yaml:"end"`

	InitialCapital float64 `json:"initial_capital" yaml:"initial_capital"`
	MaxPositions   int     `json:"max_positions" yaml:"max_positions"`
	MaxPositionPct float64 `json:"max_position_pct" yaml:"max_position_pct"`
	LotSize        int64   `json:"lot_size,omitempty" yaml:"lot_size,omitempty"`

	CommissionRate float64 `json:"commission_rate" yaml:"commission_rate"`
	StampDutyRate  float64 `json:"stamp_duty_rate" yaml:"stamp_duty_rate"`
	SlippageRate   float64 `json:"slippage_rate" yaml:"slippage_rate"`
	MinCommission  float64 `json:"min_commission" yaml:"min_commission"`

	StopLossPct         float64 `json:"stop_loss_pct" yaml:"stop_loss_pct"`
	TakeProfitPct       float64 `json:"take_profit_pct" yaml:"take_profit_pct"`
	TrailingStopEnabled bool    `json:"trailing_stop_enabled" yaml:"trailing_stop_enabled"`
	TrailingStopPct     float64 `json:"trailing_stop_pct" yaml:"trailing_stop_pct"`
}

// DataConfig locates the daily bar files.
type DataConfig struct {
	Dir   string   `json:"dir" yaml:"dir"`
	GBK   bool     `json:"gbk,omitempty" yaml:"gbk,omitempty"`
	Codes []string `json:"codes,omitempty" yaml:"codes,omitempty"` // empty means every file in dir
}

// StrategyConfig names the signal source and its tuning knobs.
type StrategyConfig struct {
	Name   string             `json:"name" yaml:"name"`
	Params map[string]float64 `json:"params,omitempty" yaml:"params,omitempty"`
}

// JournalConfig selects the persistence backend.
type JournalConfig struct {
	Type       string `json:"type" yaml:"type"` // "csv", "sqlite" or "none"
	TradesFile string `json:"trades_file,omitempty" yaml:"trades_file,omitempty"`
	NAVFile    string `json:"nav_file,omitempty" yaml:"nav_file,omitempty"`
	DBPath     string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
}

// LoadFromFile loads configuration from a YAML or JSON file.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()

	// Try YAML first, fall back to JSON.
	if err := yaml.Unmarshal(data, cfg); err != nil {
		if jerr := json.Unmarshal(data, cfg); jerr != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Validate checks file-level constraints. Numeric backtest parameters
// are validated again by backtest.Config when the run is constructed.
func (c *Config) Validate() error {
	if _, err := time.Parse("2006-01-02", c.Backtest.Start); err != nil {
		return fmt.Errorf("backtest.start: %w", err)
	}
	if _, err := time.Parse("2006-01-02", c.Backtest.End); err != nil {
		return fmt.Errorf("backtest.end: %w", err)
	}
	if c.Backtest.InitialCapital <= 0 {
		return fmt.Errorf("backtest.initial_capital must be positive")
	}
	if c.Data.Dir == "" {
		return fmt.Errorf("data.dir is required")
	}
	if c.Strategy.Name == "" {
		return fmt.Errorf("strategy.name is required")
	}
	switch c.Journal.Type {
	case "csv":
		if c.Journal.TradesFile == "" || c.Journal.NAVFile == "" {
			return fmt.Errorf("journal trades_file and nav_file required for CSV type")
		}
	case "sqlite":
		if c.Journal.DBPath == "" {
			return fmt.Errorf("journal db_path required for SQLite type")
		}
	case "none":
	default:
		return fmt.Errorf("journal.type must be 'csv', 'sqlite' or 'none'")
	}
	return nil
}

// BacktestConfig converts the file form into run parameters. Call
// Validate first; date parse errors are surfaced there.
func (c *Config) BacktestConfig() (backtest.Config, error) {
	start, err := time.Parse("2006-01-02", c.Backtest.Start)
	if err != nil {
		return backtest.Config{}, fmt.Errorf("backtest.start: %w", err)
	}
	end, err := time.Parse("2006-01-02", c.Backtest.End)
	if err != nil {
		return backtest.Config{}, fmt.Errorf("backtest.end: %w", err)
	}

	return backtest.Config{
		Start:               start,
		End:                 end,
		InitialCapital:      c.Backtest.InitialCapital,
		MaxPositions:        c.Backtest.MaxPositions,
		MaxPositionPct:      c.Backtest.MaxPositionPct,
		LotSize:             c.Backtest.LotSize,
		CommissionRate:      c.Backtest.CommissionRate,
		StampDutyRate:       c.Backtest.StampDutyRate,
		SlippageRate:        c.Backtest.SlippageRate,
		MinCommission:       c.Backtest.MinCommission,
		StopLossPct:         c.Backtest.StopLossPct,
		TakeProfitPct:       c.Backtest.TakeProfitPct,
		TrailingStopEnabled: c.Backtest.TrailingStopEnabled,
		TrailingStopPct:     c.Backtest.TrailingStopPct,
	}, nil
}

// SaveToFile writes the configuration as YAML (.yaml/.yml) or JSON.
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if n := len(path); (n > 5 && path[n-5:] == ".yaml") || (n > 4 && path[n-4:] == ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Default returns a configuration with the standard A-share cost and
// exit parameters filled in.
func Default() *Config {
	return &Config{
		Backtest: BacktestConfig{
			Start:               "2023-01-01",
			End:                 "2023-12-31",
			InitialCapital:      1000000,
			MaxPositions:        5,
			MaxPositionPct:      0.20,
			LotSize:             100,
			CommissionRate:      0.0003,
			StampDutyRate:       0.001,
			SlippageRate:        0.001,
			MinCommission:       5,
			StopLossPct:         0.08,
			TakeProfitPct:       0.20,
			TrailingStopEnabled: true,
			TrailingStopPct:     0.10,
		},
		Data: DataConfig{
			Dir: "./data",
		},
		Strategy: StrategyConfig{
			Name: "ma_cross",
		},
		Journal: JournalConfig{
			Type:   "sqlite",
			DBPath: "./backtest.db",
		},
	}
}
