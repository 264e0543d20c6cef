package sim

import (
	"time"

	"quantsim/market"
)

// Simulator is the transactional core of a backtest: it composes the
// ledger, the cost model and the settlement queue, and enforces the
// T+1 rule that a position cannot be sold on the day it was opened.
//
// It is single-threaded by design; each backtest run owns its own
// Simulator and no state is shared between runs.
type Simulator struct {
	ledger *Ledger
	queue  *SettlementQueue

	// Deferred orders dropped because their position vanished or the
	// sell was no longer valid when released.
	dropped []PendingOrder
}

func NewSimulator(initialCash float64, maxPositions int, costs CostModel) *Simulator {
	return &Simulator{
		ledger: NewLedger(initialCash, maxPositions, costs),
		queue:  NewSettlementQueue(),
	}
}

// PlaceBuy attempts an immediate buy fill. It returns false, with no
// mutation, when the ledger rejects the order.
func (s *Simulator) PlaceBuy(code, name string, price float64, quantity int64, date time.Time) bool {
	return s.ledger.ApplyBuy(code, name, price, quantity, date) == nil
}

// PlaceSell attempts to sell quantity of an open position.
//
// If date is strictly after the position's buy date the sell executes
// immediately. A same-day sell is accepted but deferred: it enters the
// settlement queue with eligibility on the next trading day and will be
// executed by a later AdvanceDay at that day's price. Returns false only
// when the request is invalid outright.
func (s *Simulator) PlaceSell(code string, price float64, quantity int64, date time.Time, reason string) bool {
	pos, ok := s.ledger.Position(code)
	if !ok {
		return false
	}
	if quantity <= 0 || quantity > pos.Quantity {
		return false
	}

	day := market.Day(date)
	if day.After(pos.BuyDate) {
		_, err := s.ledger.ApplySell(code, price, quantity, day, reason)
		return err == nil
	}

	s.queue.Defer(PendingOrder{
		Code:           code,
		Quantity:       quantity,
		ReferencePrice: price,
		EligibleDate:   market.NextTradingDay(pos.BuyDate),
		Reason:         reason,
	})
	return true
}

// AdvanceDay moves the simulation to a new trading day: it executes
// every settlement-eligible pending order at the day's opening price
// (falling back to the order's reference price when the instrument has
// no bar), then marks all positions to the day's close.
func (s *Simulator) AdvanceDay(date time.Time, bars map[string]market.Bar) {
	day := market.Day(date)

	for _, o := range s.queue.ReleaseEligible(day) {
		price := o.ReferencePrice
		if b, ok := bars[o.Code]; ok {
			price = b.Open
		}

		// A position closed through another path leaves its deferred
		// order pointing at nothing; the queue is advisory scheduling,
		// not a second source of truth, so the order is dropped.
		if _, err := s.ledger.ApplySell(o.Code, price, o.Quantity, day, o.Reason); err != nil {
			s.dropped = append(s.dropped, o)
		}
	}

	closes := make(market.PriceMap, len(bars))
	for code, b := range bars {
		closes[code] = b.Close
	}
	s.ledger.MarkToMarket(closes)
}

// CancelPending drops all deferred sells for code.
func (s *Simulator) CancelPending(code string) int {
	return s.queue.Cancel(code)
}

func (s *Simulator) PortfolioValue() float64 { return s.ledger.TotalValue() }

func (s *Simulator) Cash() float64 { return s.ledger.Cash() }

func (s *Simulator) PositionsValue() float64 { return s.ledger.PositionsValue() }

func (s *Simulator) Position(code string) (Position, bool) { return s.ledger.Position(code) }

func (s *Simulator) OpenPositions() []Position { return s.ledger.Positions() }

func (s *Simulator) PositionCount() int { return s.ledger.PositionCount() }

func (s *Simulator) CanBuy(code string, price float64, quantity int64) bool {
	return s.ledger.CanBuy(code, price, quantity)
}

func (s *Simulator) Trades() []Trade { return s.ledger.Trades() }

func (s *Simulator) PendingOrders() []PendingOrder { return s.queue.Pending() }

// DroppedOrders returns deferred sells that could not execute when
// released.
func (s *Simulator) DroppedOrders() []PendingOrder { return s.dropped }
