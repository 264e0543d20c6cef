package sim

import "fmt"

// CostModel converts a trade's gross notional into transaction costs.
// It is a pure function of its rates and performs no I/O.
type CostModel struct {
	CommissionRate float64 // both sides, subject to MinCommission
	StampDutyRate  float64 // sell side only
	SlippageRate   float64 // both sides
	MinCommission  float64
}

// Costs is the fee breakdown for one fill.
//
// Net is side-dependent: for a buy it is the total cash outlay
// (gross + fees), for a sell the cash credited (gross - fees).
type Costs struct {
	Commission float64
	StampDuty  float64
	Slippage   float64
	Net        float64
}

// Assess computes the cost breakdown for a fill of the given gross amount.
func (m CostModel) Assess(gross float64, side Side) (Costs, error) {
	if gross < 0 {
		return Costs{}, fmt.Errorf("assess costs: negative gross amount %.2f", gross)
	}

	c := Costs{
		Commission: gross * m.CommissionRate,
		Slippage:   gross * m.SlippageRate,
	}
	if c.Commission < m.MinCommission {
		c.Commission = m.MinCommission
	}

	switch side {
	case Buy:
		c.Net = gross + c.Commission + c.Slippage
	case Sell:
		c.StampDuty = gross * m.StampDutyRate
		c.Net = gross - c.Commission - c.StampDuty - c.Slippage
	default:
		return Costs{}, fmt.Errorf("assess costs: unknown side %d", side)
	}
	return c, nil
}

// BuyCost returns the total cash required to buy the given gross amount.
func (m CostModel) BuyCost(gross float64) (float64, error) {
	c, err := m.Assess(gross, Buy)
	if err != nil {
		return 0, err
	}
	return c.Net, nil
}
