package sim

import "time"

// PendingOrder is a sell request blocked by the settlement-delay rule.
// It becomes executable once the simulation date reaches EligibleDate.
type PendingOrder struct {
	Code           string
	Quantity       int64
	ReferencePrice float64
	EligibleDate   time.Time
	Reason         string
}

// SettlementQueue holds deferred sell orders until they are eligible.
// It knows nothing about prices or cash; executing released orders is
// the caller's job.
type SettlementQueue struct {
	orders []PendingOrder
}

func NewSettlementQueue() *SettlementQueue {
	return &SettlementQueue{}
}

// Defer appends an order to the queue.
func (q *SettlementQueue) Defer(o PendingOrder) {
	q.orders = append(q.orders, o)
}

// ReleaseEligible removes and returns every order with
// EligibleDate <= date, preserving FIFO order per instrument.
func (q *SettlementQueue) ReleaseEligible(date time.Time) []PendingOrder {
	var released []PendingOrder
	kept := q.orders[:0]

	for _, o := range q.orders {
		if !o.EligibleDate.After(date) {
			released = append(released, o)
		} else {
			kept = append(kept, o)
		}
	}
	q.orders = kept
	return released
}

// Cancel removes all pending orders for code and returns how many were
// dropped.
func (q *SettlementQueue) Cancel(code string) int {
	dropped := 0
	kept := q.orders[:0]

	for _, o := range q.orders {
		if o.Code == code {
			dropped++
		} else {
			kept = append(kept, o)
		}
	}
	q.orders = kept
	return dropped
}

// Pending returns a copy of the queued orders in FIFO order.
func (q *SettlementQueue) Pending() []PendingOrder {
	out := make([]PendingOrder, len(q.orders))
	copy(out, q.orders)
	return out
}

func (q *SettlementQueue) Len() int { return len(q.orders) }
