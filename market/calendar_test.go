package market

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNextTradingDaySkipsWeekend(t *testing.T) {
	t.Parallel()

	fri := time.Date(2024, 3, 1, 15, 30, 0, 0, time.UTC) // Friday
	next := NextTradingDay(fri)

	assert.Equal(t, time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC), next) // Monday
}

func TestNextTradingDayMidweek(t *testing.T) {
	t.Parallel()

	tue := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 3, 6, 0, 0, 0, 0, time.UTC), NextTradingDay(tue))
}

func TestTradingDays(t *testing.T) {
	t.Parallel()

	// Thu 2024-02-29 through Tue 2024-03-05: Thu, Fri, Mon, Tue.
	days := TradingDays(
		time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
	)

	if len(days) != 4 {
		t.Fatalf("expected 4 trading days, got %d: %v", len(days), days)
	}
	assert.Equal(t, time.Weekday(time.Thursday), days[0].Weekday())
	assert.Equal(t, time.Weekday(time.Monday), days[2].Weekday())
}

func TestTradingDaysInvertedRange(t *testing.T) {
	t.Parallel()

	days := TradingDays(
		time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	)
	assert.Empty(t, days)
}

func TestDayNormalizes(t *testing.T) {
	t.Parallel()

	loc := time.FixedZone("CST", 8*3600)
	d := Day(time.Date(2024, 6, 3, 14, 59, 59, 0, loc))
	assert.Equal(t, time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC), d)
}
