package strategies

import (
	"quantsim/backtest"
	"quantsim/market"
	"quantsim/sim"
)

func init() {
	Register("noop", func(Params) (Source, error) { return Noop{}, nil })
}

// Noop never trades. Useful for dry runs that only exercise the data
// pipeline and exit rules on pre-seeded positions.
type Noop struct{}

func (Noop) GenerateSignals([]market.Bar, map[string]sim.Position) []backtest.Signal {
	return nil
}
