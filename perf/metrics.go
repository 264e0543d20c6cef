// Package perf computes return and risk statistics from a finished
// backtest. It only reads the NAV series and trade ledger; it never
// touches simulation state.
package perf

import (
	"math"

	"quantsim/sim"
)

// Report is the metrics bundle for one backtest run. Every ratio that
// would divide by zero is reported as 0 instead.
type Report struct {
	InitialNAV float64
	FinalNAV   float64

	TotalReturn      float64
	AnnualizedReturn float64
	MaxDrawdown      float64
	SharpeRatio      float64
	SortinoRatio     float64
	CalmarRatio      float64

	WinRate         float64
	ProfitLossRatio float64
	TotalSells      int
	AvgHoldingDays  float64

	TradingDays int
}

const annualTradingDays = 252.0

// Analyze computes the full report from a NAV series and trade ledger.
// An empty NAV series yields a zero report.
func Analyze(nav []sim.NAVPoint, trades []sim.Trade) Report {
	r := Report{TradingDays: len(nav)}
	if len(nav) == 0 {
		r.tradeStats(trades)
		return r
	}

	r.InitialNAV = nav[0].TotalValue
	r.FinalNAV = nav[len(nav)-1].TotalValue

	if r.InitialNAV != 0 {
		r.TotalReturn = (r.FinalNAV - r.InitialNAV) / r.InitialNAV
	}

	elapsed := nav[len(nav)-1].Date.Sub(nav[0].Date).Hours() / 24
	if elapsed > 0 && 1+r.TotalReturn > 0 {
		r.AnnualizedReturn = math.Pow(1+r.TotalReturn, 365/elapsed) - 1
	}

	r.MaxDrawdown = maxDrawdown(nav)

	daily := dailyReturns(nav)
	r.SharpeRatio = sharpe(daily)
	r.SortinoRatio = sortino(daily)

	if r.MaxDrawdown != 0 {
		r.CalmarRatio = r.AnnualizedReturn / r.MaxDrawdown
	}

	r.tradeStats(trades)
	return r
}

func (r *Report) tradeStats(trades []sim.Trade) {
	var wins, losses int
	var winSum, lossSum, holdSum float64

	for _, t := range trades {
		if t.Side != sim.Sell {
			continue
		}
		r.TotalSells++
		holdSum += float64(t.HoldingDays)
		if t.RealizedPL > 0 {
			wins++
			winSum += t.RealizedPL
		} else {
			losses++
			lossSum += -t.RealizedPL
		}
	}

	if r.TotalSells == 0 {
		return
	}
	r.WinRate = float64(wins) / float64(r.TotalSells)
	r.AvgHoldingDays = holdSum / float64(r.TotalSells)

	if wins > 0 && losses > 0 && lossSum > 0 {
		avgWin := winSum / float64(wins)
		avgLoss := lossSum / float64(losses)
		r.ProfitLossRatio = avgWin / avgLoss
	}
}

// maxDrawdown is the largest fractional decline from the running NAV
// peak; always in [0, 1] for a non-negative series and 0 for a
// non-decreasing one.
func maxDrawdown(nav []sim.NAVPoint) float64 {
	peak := nav[0].TotalValue
	maxDD := 0.0

	for _, p := range nav {
		if p.TotalValue > peak {
			peak = p.TotalValue
		}
		if peak > 0 {
			dd := (peak - p.TotalValue) / peak
			if dd > maxDD {
				maxDD = dd
			}
		}
	}
	return maxDD
}

func dailyReturns(nav []sim.NAVPoint) []float64 {
	var out []float64
	for i := 1; i < len(nav); i++ {
		prev := nav[i-1].TotalValue
		if prev == 0 {
			continue
		}
		out = append(out, (nav[i].TotalValue-prev)/prev)
	}
	return out
}

func sharpe(daily []float64) float64 {
	m, sd := meanStd(daily)
	if sd == 0 {
		return 0
	}
	return m / sd * math.Sqrt(annualTradingDays)
}

// sortino penalizes only downside volatility: the denominator is the
// standard deviation of the negative daily returns.
func sortino(daily []float64) float64 {
	var neg []float64
	for _, x := range daily {
		if x < 0 {
			neg = append(neg, x)
		}
	}
	m, _ := meanStd(daily)
	_, dsd := meanStd(neg)
	if dsd == 0 {
		return 0
	}
	return m / dsd * math.Sqrt(annualTradingDays)
}

func meanStd(xs []float64) (mean, std float64) {
	if len(xs) == 0 {
		return 0, 0
	}
	for _, x := range xs {
		mean += x
	}
	mean /= float64(len(xs))

	if len(xs) < 2 {
		return mean, 0
	}
	var ss float64
	for _, x := range xs {
		d := x - mean
		ss += d * d
	}
	return mean, math.Sqrt(ss / float64(len(xs)-1))
}
