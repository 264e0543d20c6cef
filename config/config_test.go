package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	bc, err := cfg.BacktestConfig()
	require.NoError(t, err)
	require.NoError(t, bc.Validate())

	assert.InDelta(t, 1000000, bc.InitialCapital, 1e-9)
	assert.Equal(t, 5, bc.MaxPositions)
	assert.InDelta(t, 0.0003, bc.CommissionRate, 1e-12)
	assert.InDelta(t, 0.001, bc.StampDutyRate, 1e-12)
	assert.InDelta(t, 5.0, bc.MinCommission, 1e-9)
}

func TestLoadYAML(t *testing.T) {
	path := writeConfig(t, "run.yaml", `
backtest:
  start: "2024-01-02"
  end: "2024-06-28"
  initial_capital: 500000
  max_positions: 3
  max_position_pct: 0.25
  commission_rate: 0.0003
  stamp_duty_rate: 0.001
  slippage_rate: 0.001
  min_commission: 5
  stop_loss_pct: 0.05
  take_profit_pct: 0.15
data:
  dir: ./testdata
strategy:
  name: momentum
  params:
    period: 20
journal:
  type: none
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "momentum", cfg.Strategy.Name)
	assert.InDelta(t, 20, cfg.Strategy.Params["period"], 1e-9)
	assert.Equal(t, "none", cfg.Journal.Type)

	bc, err := cfg.BacktestConfig()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), bc.Start)
	assert.InDelta(t, 500000, bc.InitialCapital, 1e-9)
	assert.Equal(t, 3, bc.MaxPositions)
}

func TestLoadJSONFallback(t *testing.T) {
	path := writeConfig(t, "run.json", `{
		"backtest": {
			"start": "2024-01-02",
			"end": "2024-03-29",
			"initial_capital": 200000,
			"max_positions": 2,
			"max_position_pct": 0.5
		},
		"data": {"dir": "./d"},
		"strategy": {"name": "ma_cross"},
		"journal": {"type": "sqlite", "db_path": "./run.db"}
	}`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.InDelta(t, 200000, cfg.Backtest.InitialCapital, 1e-9)
	assert.Equal(t, "./run.db", cfg.Journal.DBPath)
}

func TestLoadAppliesDefaults(t *testing.T) {
	// A sparse file keeps the default cost model.
	path := writeConfig(t, "run.yaml", `
backtest:
  start: "2024-01-02"
  end: "2024-03-29"
data:
  dir: ./d
strategy:
  name: ma_cross
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.InDelta(t, 1000000, cfg.Backtest.InitialCapital, 1e-9)
	assert.InDelta(t, 0.0003, cfg.Backtest.CommissionRate, 1e-12)
	assert.Equal(t, "sqlite", cfg.Journal.Type)
}

func TestValidateRejectsBadConfigs(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad start date", func(c *Config) { c.Backtest.Start = "02/01/2024" }},
		{"bad end date", func(c *Config) { c.Backtest.End = "" }},
		{"zero capital", func(c *Config) { c.Backtest.InitialCapital = 0 }},
		{"missing data dir", func(c *Config) { c.Data.Dir = "" }},
		{"missing strategy", func(c *Config) { c.Strategy.Name = "" }},
		{"unknown journal type", func(c *Config) { c.Journal.Type = "postgres" }},
		{"csv without paths", func(c *Config) { c.Journal = JournalConfig{Type: "csv"} }},
		{"sqlite without path", func(c *Config) { c.Journal = JournalConfig{Type: "sqlite"} }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.yaml")

	cfg := Default()
	cfg.Strategy.Name = "momentum"
	require.NoError(t, cfg.SaveToFile(path))

	got, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "momentum", got.Strategy.Name)
	assert.InDelta(t, cfg.Backtest.StampDutyRate, got.Backtest.StampDutyRate, 1e-12)
}
