package sim

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"quantsim/market"
	"quantsim/pkg/id"
)

// Rejection reasons for ledger mutations. These are expected, frequent
// outcomes of ordinary signal evaluation, not fatal conditions.
var (
	ErrInsufficientFunds      = errors.New("insufficient funds")
	ErrNoSuchPosition         = errors.New("no such position")
	ErrQuantityExceedsHolding = errors.New("quantity exceeds holding")
	ErrAlreadyHeld            = errors.New("instrument already held")
	ErrMaxPositions           = errors.New("max position count reached")
)

// Ledger owns the cash balance and the set of open positions. Every
// mutation either applies fully or not at all; a rejected operation
// leaves cash and positions untouched.
type Ledger struct {
	cash         float64
	maxPositions int
	costs        CostModel

	positions map[string]*Position
	trades    []Trade
}

func NewLedger(initialCash float64, maxPositions int, costs CostModel) *Ledger {
	return &Ledger{
		cash:         initialCash,
		maxPositions: maxPositions,
		costs:        costs,
		positions:    make(map[string]*Position),
	}
}

func (l *Ledger) Cash() float64 { return l.cash }

// Position returns a copy of the open position for code.
func (l *Ledger) Position(code string) (Position, bool) {
	p, ok := l.positions[code]
	if !ok {
		return Position{}, false
	}
	return *p, true
}

// Positions returns copies of all open positions, sorted by code.
func (l *Ledger) Positions() []Position {
	out := make([]Position, 0, len(l.positions))
	for _, p := range l.positions {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

func (l *Ledger) PositionCount() int { return len(l.positions) }

// Trades returns the append-only trade ledger.
func (l *Ledger) Trades() []Trade { return l.trades }

// CanBuy reports whether a buy of quantity at price would be accepted.
func (l *Ledger) CanBuy(code string, price float64, quantity int64) bool {
	return l.checkBuy(code, price, quantity) == nil
}

func (l *Ledger) checkBuy(code string, price float64, quantity int64) error {
	if quantity <= 0 || price <= 0 {
		return fmt.Errorf("invalid buy %s: price %.2f quantity %d", code, price, quantity)
	}
	if _, held := l.positions[code]; held {
		return ErrAlreadyHeld
	}
	if len(l.positions) >= l.maxPositions {
		return ErrMaxPositions
	}

	total, err := l.costs.BuyCost(price * float64(quantity))
	if err != nil {
		return err
	}
	if total > l.cash {
		return ErrInsufficientFunds
	}
	return nil
}

// ApplyBuy debits cash by the full cost of the fill, opens the position
// and appends a BUY trade.
func (l *Ledger) ApplyBuy(code, name string, price float64, quantity int64, date time.Time) error {
	if err := l.checkBuy(code, price, quantity); err != nil {
		return err
	}

	gross := price * float64(quantity)
	c, err := l.costs.Assess(gross, Buy)
	if err != nil {
		return err
	}

	l.cash -= c.Net
	l.positions[code] = &Position{
		Code:         code,
		Name:         name,
		Quantity:     quantity,
		AvgCost:      price,
		CurrentPrice: price,
		BuyDate:      market.Day(date),
		Highest:      price,
	}

	l.trades = append(l.trades, Trade{
		ID:         id.New(),
		Code:       code,
		Name:       name,
		Side:       Buy,
		Quantity:   quantity,
		Price:      price,
		Gross:      gross,
		Commission: c.Commission,
		Slippage:   c.Slippage,
		Date:       market.Day(date),
	})
	return nil
}

// ApplySell credits cash with the net proceeds, reduces or removes the
// position, and appends a SELL trade carrying the realized P&L against
// the proportional cost basis.
func (l *Ledger) ApplySell(code string, price float64, quantity int64, date time.Time, reason string) (Trade, error) {
	pos, ok := l.positions[code]
	if !ok {
		return Trade{}, ErrNoSuchPosition
	}
	if quantity <= 0 || price <= 0 {
		return Trade{}, fmt.Errorf("invalid sell %s: price %.2f quantity %d", code, price, quantity)
	}
	if quantity > pos.Quantity {
		return Trade{}, ErrQuantityExceedsHolding
	}

	gross := price * float64(quantity)
	c, err := l.costs.Assess(gross, Sell)
	if err != nil {
		return Trade{}, err
	}

	costBasis := pos.AvgCost * float64(quantity)
	realized := c.Net - costBasis

	l.cash += c.Net

	day := market.Day(date)
	t := Trade{
		ID:          id.New(),
		Code:        code,
		Name:        pos.Name,
		Side:        Sell,
		Quantity:    quantity,
		Price:       price,
		Gross:       gross,
		Commission:  c.Commission,
		StampDuty:   c.StampDuty,
		Slippage:    c.Slippage,
		RealizedPL:  realized,
		HoldingDays: int(day.Sub(pos.BuyDate).Hours() / 24),
		Date:        day,
		Reason:      reason,
	}
	l.trades = append(l.trades, t)

	if quantity == pos.Quantity {
		delete(l.positions, code)
	} else {
		pos.Quantity -= quantity
	}
	return t, nil
}

// MarkToMarket refreshes CurrentPrice and Highest for every open position
// with a price in the map. Positions without a price keep their last mark.
func (l *Ledger) MarkToMarket(prices market.PriceMap) {
	for code, pos := range l.positions {
		price, ok := prices[code]
		if !ok {
			continue
		}
		pos.CurrentPrice = price
		if price > pos.Highest {
			pos.Highest = price
		}
	}
}

// PositionsValue is the summed market value of all open positions.
func (l *Ledger) PositionsValue() float64 {
	total := 0.0
	for _, pos := range l.positions {
		total += pos.MarketValue()
	}
	return total
}

// TotalValue is cash plus the market value of all open positions.
func (l *Ledger) TotalValue() float64 {
	return l.cash + l.PositionsValue()
}
