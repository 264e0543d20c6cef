package sim

import "time"

// Side: +1 buy, -1 sell.
type Side int8

const (
	Buy  Side = +1
	Sell Side = -1
)

func (s Side) String() string {
	switch s {
	case Buy:
		return "BUY"
	case Sell:
		return "SELL"
	}
	return "UNKNOWN"
}

// Trade is one immutable ledger entry. RealizedPL and HoldingDays are
// only meaningful on sells.
type Trade struct {
	ID          string
	Code        string
	Name        string
	Side        Side
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

// Fees returns the total transaction cost charged on this trade.
func (t Trade) Fees() float64 {
	return t.Commission + t.StampDuty + t.Slippage
}
