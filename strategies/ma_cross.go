package strategies

import (
	"fmt"

	"quantsim/backtest"
	"quantsim/indicators"
	"quantsim/market"
	"quantsim/sim"
)

func init() {
	Register("ma_cross", NewMACross)
}

// MACross buys when the fast moving average crosses above the slow one
// and sells a held position on the cross back down.
type MACross struct {
	fast int
	slow int
}

// NewMACross builds the crossover strategy. Defaults are a 5/20 pair.
func NewMACross(p Params) (Source, error) {
	s := &MACross{
		fast: int(p.get("fast", 5)),
		slow: int(p.get("slow", 20)),
	}
	if s.fast <= 0 || s.slow <= 0 {
		return nil, fmt.Errorf("ma_cross: periods must be positive, got fast=%d slow=%d", s.fast, s.slow)
	}
	if s.fast >= s.slow {
		return nil, fmt.Errorf("ma_cross: fast period %d must be below slow period %d", s.fast, s.slow)
	}
	return s, nil
}

func (s *MACross) GenerateSignals(history []market.Bar, open map[string]sim.Position) []backtest.Signal {
	// Need one extra bar to compare today's cross against yesterday's.
	if len(history) < s.slow+1 {
		return nil
	}

	code := history[len(history)-1].Code
	prev := history[:len(history)-1]

	fastNow, err := indicators.SMA(history, s.fast)
	if err != nil {
		return nil
	}
	slowNow, err := indicators.SMA(history, s.slow)
	if err != nil {
		return nil
	}
	fastPrev, err := indicators.SMA(prev, s.fast)
	if err != nil {
		return nil
	}
	slowPrev, err := indicators.SMA(prev, s.slow)
	if err != nil {
		return nil
	}

	_, held := open[code]

	if !held && fastPrev <= slowPrev && fastNow > slowNow {
		conf := 0.5
		if slowNow > 0 {
			conf = clamp01(0.5 + (fastNow-slowNow)/slowNow*10)
		}
		return []backtest.Signal{{
			Code:       code,
			Side:       sim.Buy,
			Confidence: conf,
			Reason:     fmt.Sprintf("ma %d/%d golden cross", s.fast, s.slow),
		}}
	}

	if held && fastPrev >= slowPrev && fastNow < slowNow {
		return []backtest.Signal{{
			Code:       code,
			Side:       sim.Sell,
			Confidence: 1,
			Reason:     fmt.Sprintf("ma %d/%d dead cross", s.fast, s.slow),
		}}
	}

	return nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
