package sim

import "time"

// NAVPoint is one daily sample of portfolio valuation.
type NAVPoint struct {
	Date           time.Time
	Cash           float64
	PositionsValue float64
	TotalValue     float64
}

// Snapshot captures the simulator's valuation for the given day.
func (s *Simulator) Snapshot(date time.Time) NAVPoint {
	return NAVPoint{
		Date:           date,
		Cash:           s.ledger.Cash(),
		PositionsValue: s.ledger.PositionsValue(),
		TotalValue:     s.ledger.TotalValue(),
	}
}
