package risk

import "quantsim/sim"

// ExitReason identifies which rule triggered an exit.
type ExitReason string

const (
	StopLoss     ExitReason = "STOP_LOSS"
	TakeProfit   ExitReason = "TAKE_PROFIT"
	TrailingStop ExitReason = "TRAILING_STOP"
)

// ExitRules are the percentage thresholds evaluated against each open
// position. All percentages are fractions (0.05 = 5%).
type ExitRules struct {
	StopLossPct         float64
	TakeProfitPct       float64
	TrailingStopEnabled bool
	TrailingStopPct     float64
}

// ExitDecision instructs the caller to close Quantity of the position.
type ExitDecision struct {
	Reason   ExitReason
	Quantity int64
}

// Evaluate checks a position against the exit rules at the given price.
//
// Rules fire in a fixed order, first match wins: stop-loss, then
// take-profit, then trailing stop. All decisions are full-quantity.
// A position with zero average cost is ineligible for percentage-based
// exits; Evaluate returns nil for it.
func Evaluate(p sim.Position, price float64, rules ExitRules) *ExitDecision {
	if p.AvgCost <= 0 || p.Quantity <= 0 {
		return nil
	}

	change := (price - p.AvgCost) / p.AvgCost

	if rules.StopLossPct > 0 && change <= -rules.StopLossPct {
		return &ExitDecision{Reason: StopLoss, Quantity: p.Quantity}
	}
	if rules.TakeProfitPct > 0 && change >= rules.TakeProfitPct {
		return &ExitDecision{Reason: TakeProfit, Quantity: p.Quantity}
	}
	if rules.TrailingStopEnabled && rules.TrailingStopPct > 0 && p.Highest > 0 {
		retrace := (p.Highest - price) / p.Highest
		if retrace >= rules.TrailingStopPct {
			return &ExitDecision{Reason: TrailingStop, Quantity: p.Quantity}
		}
	}
	return nil
}
