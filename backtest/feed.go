package backtest

import (
	"sort"
	"time"

	"quantsim/market"
)

// MemoryFeed is a DataFeed over pre-loaded bars, keyed by instrument
// and calendar day. It is the feed used by the CLI (bars come from CSV
// files) and by tests.
type MemoryFeed struct {
	bars map[string]map[time.Time]market.Bar
}

func NewMemoryFeed() *MemoryFeed {
	return &MemoryFeed{bars: make(map[string]map[time.Time]market.Bar)}
}

// Add indexes bars by code and day. Later bars for the same day replace
// earlier ones.
func (f *MemoryFeed) Add(bars ...market.Bar) {
	for _, b := range bars {
		byDay, ok := f.bars[b.Code]
		if !ok {
			byDay = make(map[time.Time]market.Bar)
			f.bars[b.Code] = byDay
		}
		byDay[market.Day(b.Date)] = b
	}
}

// GetBar implements DataFeed.
func (f *MemoryFeed) GetBar(code string, date time.Time) (market.Bar, bool) {
	b, ok := f.bars[code][market.Day(date)]
	return b, ok
}

// Codes lists every instrument in the feed, sorted.
func (f *MemoryFeed) Codes() []string {
	codes := make([]string, 0, len(f.bars))
	for code := range f.bars {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

var _ DataFeed = (*MemoryFeed)(nil)
