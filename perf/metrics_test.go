package perf

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"quantsim/sim"
)

func navSeries(start time.Time, values ...float64) []sim.NAVPoint {
	out := make([]sim.NAVPoint, len(values))
	for i, v := range values {
		out[i] = sim.NAVPoint{Date: start.AddDate(0, 0, i), TotalValue: v}
	}
	return out
}

func TestAnalyzeEmpty(t *testing.T) {
	t.Parallel()

	r := Analyze(nil, nil)
	assert.Zero(t, r.TotalReturn)
	assert.Zero(t, r.MaxDrawdown)
	assert.Zero(t, r.SharpeRatio)
	assert.Zero(t, r.TradingDays)
}

func TestTotalAndAnnualizedReturn(t *testing.T) {
	t.Parallel()

	start := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	nav := []sim.NAVPoint{
		{Date: start, TotalValue: 100000},
		{Date: start.AddDate(1, 0, 0), TotalValue: 110000},
	}

	r := Analyze(nav, nil)
	assert.InDelta(t, 0.10, r.TotalReturn, 1e-9)
	// One full 365-day year: annualized equals total.
	assert.InDelta(t, 0.10, r.AnnualizedReturn, 1e-9)
}

func TestMaxDrawdown(t *testing.T) {
	t.Parallel()

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	r := Analyze(navSeries(start, 100, 120, 90, 110, 80), nil)

	// Peak 120, trough 80: 1/3 drawdown.
	assert.InDelta(t, 1.0/3.0, r.MaxDrawdown, 1e-9)
}

func TestMaxDrawdownNonDecreasingIsZero(t *testing.T) {
	t.Parallel()

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	r := Analyze(navSeries(start, 100, 100, 105, 120), nil)
	assert.Zero(t, r.MaxDrawdown)
	assert.GreaterOrEqual(t, r.MaxDrawdown, 0.0)
}

func TestSharpeZeroOnFlatSeries(t *testing.T) {
	t.Parallel()

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	r := Analyze(navSeries(start, 100, 100, 100, 100), nil)
	assert.Zero(t, r.SharpeRatio)
	assert.Zero(t, r.SortinoRatio)
}

func TestSharpePositiveForSteadyGains(t *testing.T) {
	t.Parallel()

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	r := Analyze(navSeries(start, 100, 101, 102.5, 103, 104.2), nil)
	assert.Greater(t, r.SharpeRatio, 0.0)
	// No losing day: downside deviation is zero, Sortino stays 0.
	assert.Zero(t, r.SortinoRatio)
}

func TestCalmarZeroWithoutDrawdown(t *testing.T) {
	t.Parallel()

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	r := Analyze(navSeries(start, 100, 101, 102), nil)
	assert.Zero(t, r.CalmarRatio)
}

func sell(pl float64, holdingDays int) sim.Trade {
	return sim.Trade{Side: sim.Sell, RealizedPL: pl, HoldingDays: holdingDays}
}

func TestTradeStats(t *testing.T) {
	t.Parallel()

	trades := []sim.Trade{
		{Side: sim.Buy},
		sell(300, 4),
		sell(100, 6),
		sell(-100, 2),
		sell(-300, 8),
	}

	r := Analyze(nil, trades)
	assert.Equal(t, 4, r.TotalSells)
	assert.InDelta(t, 0.5, r.WinRate, 1e-9)
	// avg win 200 / avg loss 200.
	assert.InDelta(t, 1.0, r.ProfitLossRatio, 1e-9)
	assert.InDelta(t, 5.0, r.AvgHoldingDays, 1e-9)
}

func TestTradeStatsAllWinners(t *testing.T) {
	t.Parallel()

	r := Analyze(nil, []sim.Trade{sell(100, 1), sell(50, 1)})
	assert.InDelta(t, 1.0, r.WinRate, 1e-9)
	// No losses: ratio is the 0 sentinel, not infinity.
	assert.Zero(t, r.ProfitLossRatio)
}

func TestBreakEvenSellCountsAsLoss(t *testing.T) {
	t.Parallel()

	r := Analyze(nil, []sim.Trade{sell(0, 1), sell(10, 1)})
	assert.InDelta(t, 0.5, r.WinRate, 1e-9)
}
