package risk

import "math"

// DefaultLotSize is the exchange's minimum tradable increment.
const DefaultLotSize int64 = 100

// EntryQuantity sizes a new entry: the target notional is
// availableCash * maxPositionPct, converted to shares at price and
// floored to a whole number of lots. Returns 0 when even one lot is
// out of reach or the inputs are degenerate.
func EntryQuantity(availableCash, maxPositionPct, price float64, lotSize int64) int64 {
	if price <= 0 || availableCash <= 0 || maxPositionPct <= 0 {
		return 0
	}
	if lotSize <= 0 {
		lotSize = DefaultLotSize
	}

	shares := availableCash * maxPositionPct / price
	lots := int64(math.Floor(shares / float64(lotSize)))
	if lots <= 0 {
		return 0
	}
	return lots * lotSize
}
