// Package journal persists backtest output: the trade ledger, the daily
// NAV series and per-run summaries. Backends share the Journal
// interface; queries and run summaries are SQLite-only.
package journal

import (
	"time"

	"quantsim/perf"
	"quantsim/sim"
)

// TradeRecord is one persisted ledger entry.
type TradeRecord struct {
	TradeID     string
	RunID       string
	Code        string
	Name        string
	Side        string
	Quantity    int64
	Price       float64
	Gross       float64
	Commission  float64
	StampDuty   float64
	Slippage    float64
	RealizedPL  float64
	HoldingDays int
	Date        time.Time
	Reason      string
}

// NAVRecord is one persisted daily valuation sample.
type NAVRecord struct {
	RunID          string
	Date           time.Time
	Cash           float64
	PositionsValue float64
	TotalValue     float64
}

// Run summarizes one backtest run.
type Run struct {
	RunID    string
	Created  time.Time
	Strategy string
	Start    time.Time
	End      time.Time

	InitialCapital float64
	FinalValue     float64

	TotalReturn      float64
	AnnualizedReturn float64
	MaxDrawdown      float64
	SharpeRatio      float64
	SortinoRatio     float64
	CalmarRatio      float64
	WinRate          float64
	ProfitLossRatio  float64
	Trades           int
}

type Journal interface {
	RecordTrade(TradeRecord) error
	RecordNAV(NAVRecord) error
	Close() error
}

// FromTrade converts a simulator trade for persistence under runID.
func FromTrade(runID string, t sim.Trade) TradeRecord {
	return TradeRecord{
		TradeID:     t.ID,
		RunID:       runID,
		Code:        t.Code,
		Name:        t.Name,
		Side:        t.Side.String(),
		Quantity:    t.Quantity,
		Price:       t.Price,
		Gross:       t.Gross,
		Commission:  t.Commission,
		StampDuty:   t.StampDuty,
		Slippage:    t.Slippage,
		RealizedPL:  t.RealizedPL,
		HoldingDays: t.HoldingDays,
		Date:        t.Date,
		Reason:      t.Reason,
	}
}

// FromNAV converts a NAV point for persistence under runID.
func FromNAV(runID string, p sim.NAVPoint) NAVRecord {
	return NAVRecord{
		RunID:          runID,
		Date:           p.Date,
		Cash:           p.Cash,
		PositionsValue: p.PositionsValue,
		TotalValue:     p.TotalValue,
	}
}

// NewRun builds a run summary from a finished report.
func NewRun(runID, strategy string, start, end time.Time, r perf.Report) Run {
	return Run{
		RunID:            runID,
		Created:          time.Now().UTC(),
		Strategy:         strategy,
		Start:            start,
		End:              end,
		InitialCapital:   r.InitialNAV,
		FinalValue:       r.FinalNAV,
		TotalReturn:      r.TotalReturn,
		AnnualizedReturn: r.AnnualizedReturn,
		MaxDrawdown:      r.MaxDrawdown,
		SharpeRatio:      r.SharpeRatio,
		SortinoRatio:     r.SortinoRatio,
		CalmarRatio:      r.CalmarRatio,
		WinRate:          r.WinRate,
		ProfitLossRatio:  r.ProfitLossRatio,
		Trades:           r.TotalSells,
	}
}
