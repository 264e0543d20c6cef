package backtest

import (
	"fmt"
	"time"

	"quantsim/risk"
	"quantsim/sim"
)

// Config holds every parameter of one backtest run. It is immutable by
// convention: components copy what they need at construction and the
// struct is never mutated mid-run.
type Config struct {
	Start time.Time
	End   time.Time

	InitialCapital float64
	MaxPositions   int
	MaxPositionPct float64
	LotSize        int64

	CommissionRate float64
	StampDutyRate  float64
	SlippageRate   float64
	MinCommission  float64

	StopLossPct         float64
	TakeProfitPct       float64
	TrailingStopEnabled bool
	TrailingStopPct     float64
}

// Validate reports configuration errors. These are fatal: the
// orchestrator refuses to construct with an invalid config.
func (c Config) Validate() error {
	if c.InitialCapital <= 0 {
		return fmt.Errorf("initial capital must be positive, got %.2f", c.InitialCapital)
	}
	if c.MaxPositions <= 0 {
		return fmt.Errorf("max positions must be positive, got %d", c.MaxPositions)
	}
	if c.MaxPositionPct <= 0 || c.MaxPositionPct > 1 {
		return fmt.Errorf("max position pct must be in (0, 1], got %.4f", c.MaxPositionPct)
	}
	if c.End.Before(c.Start) {
		return fmt.Errorf("end date %s before start date %s",
			c.End.Format("2006-01-02"), c.Start.Format("2006-01-02"))
	}
	for _, rate := range []struct {
		name string
		v    float64
	}{
		{"commission rate", c.CommissionRate},
		{"stamp duty rate", c.StampDutyRate},
		{"slippage rate", c.SlippageRate},
		{"min commission", c.MinCommission},
		{"stop loss pct", c.StopLossPct},
		{"take profit pct", c.TakeProfitPct},
		{"trailing stop pct", c.TrailingStopPct},
	} {
		if rate.v < 0 {
			return fmt.Errorf("%s must not be negative, got %.4f", rate.name, rate.v)
		}
	}
	return nil
}

// CostModel extracts the transaction-cost parameters.
func (c Config) CostModel() sim.CostModel {
	return sim.CostModel{
		CommissionRate: c.CommissionRate,
		StampDutyRate:  c.StampDutyRate,
		SlippageRate:   c.SlippageRate,
		MinCommission:  c.MinCommission,
	}
}

// ExitRules extracts the risk-gate thresholds.
func (c Config) ExitRules() risk.ExitRules {
	return risk.ExitRules{
		StopLossPct:         c.StopLossPct,
		TakeProfitPct:       c.TakeProfitPct,
		TrailingStopEnabled: c.TrailingStopEnabled,
		TrailingStopPct:     c.TrailingStopPct,
	}
}
