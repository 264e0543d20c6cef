package sim

import "time"

// Position is an open holding in one instrument. Quantity is always
// positive while the record exists; Highest never decreases while the
// position stays open and resets only on a full close and reopen.
type Position struct {
	Code         string
	Name         string
	Quantity     int64
	AvgCost      float64
	CurrentPrice float64
	BuyDate      time.Time
	Highest      float64
}

// MarketValue is quantity times the last marked price.
func (p Position) MarketValue() float64 {
	return float64(p.Quantity) * p.CurrentPrice
}

// CostBasis is quantity times average cost.
func (p Position) CostBasis() float64 {
	return float64(p.Quantity) * p.AvgCost
}

// UnrealizedPL is the mark-to-market gain over cost basis, before exit fees.
func (p Position) UnrealizedPL() float64 {
	return p.MarketValue() - p.CostBasis()
}

// UnrealizedPct is UnrealizedPL as a fraction of cost basis, 0 when the
// basis is zero.
func (p Position) UnrealizedPct() float64 {
	basis := p.CostBasis()
	if basis == 0 {
		return 0
	}
	return p.UnrealizedPL() / basis
}
