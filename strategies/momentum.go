package strategies

import (
	"fmt"

	"quantsim/backtest"
	"quantsim/indicators"
	"quantsim/market"
	"quantsim/sim"
)

func init() {
	Register("momentum", NewMomentum)
}

// Momentum buys when the trailing return over the lookback window
// clears the entry threshold and sells a held position when momentum
// turns below the exit threshold.
type Momentum struct {
	period    int
	buyAbove  float64
	sellBelow float64
}

// NewMomentum builds the momentum strategy. Defaults: 20-day window,
// buy above +5%, sell below -2%.
func NewMomentum(p Params) (Source, error) {
	s := &Momentum{
		period:    int(p.get("period", 20)),
		buyAbove:  p.get("buy_above", 0.05),
		sellBelow: p.get("sell_below", -0.02),
	}
	if s.period <= 0 {
		return nil, fmt.Errorf("momentum: period must be positive, got %d", s.period)
	}
	if s.sellBelow >= s.buyAbove {
		return nil, fmt.Errorf("momentum: sell_below %.4f must be under buy_above %.4f", s.sellBelow, s.buyAbove)
	}
	return s, nil
}

func (s *Momentum) GenerateSignals(history []market.Bar, open map[string]sim.Position) []backtest.Signal {
	mom, err := indicators.Momentum(history, s.period)
	if err != nil {
		return nil
	}

	code := history[len(history)-1].Code
	_, held := open[code]

	if !held && mom > s.buyAbove {
		return []backtest.Signal{{
			Code:       code,
			Side:       sim.Buy,
			Confidence: clamp01(mom / (2 * s.buyAbove)),
			Reason:     fmt.Sprintf("momentum %.2f%% over %d days", mom*100, s.period),
		}}
	}

	if held && mom < s.sellBelow {
		return []backtest.Signal{{
			Code:       code,
			Side:       sim.Sell,
			Confidence: 1,
			Reason:     fmt.Sprintf("momentum faded to %.2f%%", mom*100),
		}}
	}

	return nil
}
