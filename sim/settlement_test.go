package sim

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestReleaseEligibleFIFO(t *testing.T) {
	t.Parallel()

	q := NewSettlementQueue()
	d1 := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)

	q.Defer(PendingOrder{Code: "A", Quantity: 100, EligibleDate: d1})
	q.Defer(PendingOrder{Code: "A", Quantity: 200, EligibleDate: d1})
	q.Defer(PendingOrder{Code: "B", Quantity: 300, EligibleDate: d2})

	released := q.ReleaseEligible(d1)
	assert.Len(t, released, 2)
	assert.Equal(t, int64(100), released[0].Quantity)
	assert.Equal(t, int64(200), released[1].Quantity)
	assert.Equal(t, 1, q.Len())

	released = q.ReleaseEligible(d2)
	assert.Len(t, released, 1)
	assert.Equal(t, "B", released[0].Code)
	assert.Zero(t, q.Len())
}

func TestReleaseEligibleNothingDue(t *testing.T) {
	t.Parallel()

	q := NewSettlementQueue()
	q.Defer(PendingOrder{Code: "A", EligibleDate: time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)})

	released := q.ReleaseEligible(time.Date(2024, 1, 4, 0, 0, 0, 0, time.UTC))
	assert.Empty(t, released)
	assert.Equal(t, 1, q.Len())
}

func TestCancelDropsOnlyMatchingCode(t *testing.T) {
	t.Parallel()

	q := NewSettlementQueue()
	d := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	q.Defer(PendingOrder{Code: "A", EligibleDate: d})
	q.Defer(PendingOrder{Code: "B", EligibleDate: d})
	q.Defer(PendingOrder{Code: "A", EligibleDate: d})

	assert.Equal(t, 2, q.Cancel("A"))
	assert.Equal(t, 1, q.Len())
	assert.Equal(t, "B", q.Pending()[0].Code)
}
