package market

import "time"

// Day normalizes t to midnight UTC so dates compare by calendar day
// regardless of the wall-clock time a feed attached to them.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// IsTradingDay reports whether t falls on a weekday.
// Exchange holidays are not modeled; feeds simply have no bars on them,
// and the simulation treats a bar-less day like any other data gap.
func IsTradingDay(t time.Time) bool {
	wd := t.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

// NextTradingDay returns the first trading day strictly after t.
func NextTradingDay(t time.Time) time.Time {
	d := Day(t).AddDate(0, 0, 1)
	for !IsTradingDay(d) {
		d = d.AddDate(0, 0, 1)
	}
	return d
}

// TradingDays returns every trading day in [start, end] in ascending order.
// An inverted range yields nil.
func TradingDays(start, end time.Time) []time.Time {
	start, end = Day(start), Day(end)

	var days []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if IsTradingDay(d) {
			days = append(days, d)
		}
	}
	return days
}
