package backtest

import (
	"fmt"
	"sort"
	"time"

	"quantsim/market"
	"quantsim/perf"
	"quantsim/risk"
	"quantsim/sim"
)

// DataFeed supplies one bar per instrument per trading day. Fetching,
// failover and cleaning all live behind this seam; the orchestrator
// never retries.
type DataFeed interface {
	GetBar(code string, date time.Time) (market.Bar, bool)
}

// Signal is a buy or sell candidate from a SignalSource.
type Signal struct {
	Code       string
	Side       sim.Side
	Price      float64
	Confidence float64
	Reason     string
}

// SignalSource turns one instrument's price history and the current open
// positions into trade candidates. Implementations apply their own
// confidence thresholds before emitting signals.
type SignalSource interface {
	GenerateSignals(history []market.Bar, open map[string]sim.Position) []Signal
}

// SkippedEvent records an instrument skipped on a given day, for
// diagnostics. Skips never abort the run.
type SkippedEvent struct {
	Date   time.Time
	Code   string
	Reason string
}

// Result is the complete output of one run: plain data, ready for any
// persistence or reporting layer.
type Result struct {
	Trades    []sim.Trade
	NAV       []sim.NAVPoint
	Positions []sim.Position
	Report    perf.Report
	Skipped   []SkippedEvent
}

// Orchestrator drives the day-by-day backtest loop over a fixed
// instrument universe.
type Orchestrator struct {
	cfg      Config
	feed     DataFeed
	signals  SignalSource
	universe []string

	sim       *sim.Simulator
	rules     risk.ExitRules
	history   map[string][]market.Bar
	navSeries []sim.NAVPoint
	skipped   []SkippedEvent
}

// New validates the config and builds an orchestrator. A nil feed or
// signal source is a configuration error.
func New(cfg Config, feed DataFeed, signals SignalSource, universe []string) (*Orchestrator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("backtest config: %w", err)
	}
	if feed == nil {
		return nil, fmt.Errorf("backtest: data feed is required")
	}
	if signals == nil {
		return nil, fmt.Errorf("backtest: signal source is required")
	}

	codes := make([]string, len(universe))
	copy(codes, universe)
	sort.Strings(codes)

	return &Orchestrator{
		cfg:      cfg,
		feed:     feed,
		signals:  signals,
		universe: codes,
		sim:      sim.NewSimulator(cfg.InitialCapital, cfg.MaxPositions, cfg.CostModel()),
		rules:    cfg.ExitRules(),
		history:  make(map[string][]market.Bar),
	}, nil
}

// Run executes the full date range. Order within a day is fixed:
// settlement release and mark-to-market, then exits, then entries, then
// the NAV sample. Exits run before entries so a freed slot can be
// reused the same day. An empty universe or date range completes with
// an empty NAV series.
func (o *Orchestrator) Run() Result {
	for _, day := range market.TradingDays(o.cfg.Start, o.cfg.End) {
		o.processDay(day)
	}

	nav := o.navSeries
	return Result{
		Trades:    o.sim.Trades(),
		NAV:       nav,
		Positions: o.sim.OpenPositions(),
		Report:    perf.Analyze(nav, o.sim.Trades()),
		Skipped:   o.skipped,
	}
}

type candidate struct {
	sig Signal
	bar market.Bar
}

func (o *Orchestrator) processDay(day time.Time) {
	// 1. Collect the day's bars. Instruments without a bar (suspension,
	// data gap) are skipped for the day, never force-closed.
	bars := make(map[string]market.Bar, len(o.universe))
	for _, code := range o.universe {
		b, ok := o.feed.GetBar(code, day)
		if !ok {
			if _, held := o.sim.Position(code); held {
				o.skip(day, code, "no bar for held position")
			}
			continue
		}
		bars[code] = b
		o.history[code] = append(o.history[code], b)
	}

	// A day with no data for any instrument and nothing at stake is not
	// a trading day for this universe; an all-gap range therefore ends
	// with an empty NAV series rather than a flat cash line.
	if len(bars) == 0 && o.sim.PositionCount() == 0 && len(o.sim.PendingOrders()) == 0 {
		return
	}

	// 2. Release eligible pending orders and mark to market.
	o.sim.AdvanceDay(day, bars)

	// 3. Exits before entries.
	o.evaluateExits(day, bars)

	// 4. New entries, best signal first, until the slots are full.
	o.evaluateEntries(day, bars)

	// 5. Record the day's NAV.
	o.navSeries = append(o.navSeries, o.sim.Snapshot(day))
}

func (o *Orchestrator) evaluateExits(day time.Time, bars map[string]market.Bar) {
	open := o.openMap()

	for _, pos := range o.sim.OpenPositions() {
		bar, ok := bars[pos.Code]
		if !ok {
			continue
		}

		// Rule-based exits win over signal-based ones.
		if d := risk.Evaluate(pos, bar.Close, o.rules); d != nil {
			if o.sim.PlaceSell(pos.Code, bar.Close, d.Quantity, day, string(d.Reason)) {
				continue
			}
			o.skip(day, pos.Code, "exit rejected: "+string(d.Reason))
			continue
		}

		for _, sig := range o.signals.GenerateSignals(o.history[pos.Code], open) {
			if sig.Side != sim.Sell || sig.Code != pos.Code {
				continue
			}
			price := sig.Price
			if price <= 0 {
				price = bar.Close
			}
			if !o.sim.PlaceSell(pos.Code, price, pos.Quantity, day, sig.Reason) {
				o.skip(day, pos.Code, "sell signal rejected")
			}
			break
		}
	}
}

func (o *Orchestrator) evaluateEntries(day time.Time, bars map[string]market.Bar) {
	if o.sim.PositionCount() >= o.cfg.MaxPositions {
		return
	}

	open := o.openMap()
	var candidates []candidate

	for _, code := range o.universe {
		if _, held := o.sim.Position(code); held {
			continue
		}
		bar, ok := bars[code]
		if !ok {
			continue
		}
		for _, sig := range o.signals.GenerateSignals(o.history[code], open) {
			if sig.Side != sim.Buy || sig.Code != code {
				continue
			}
			candidates = append(candidates, candidate{sig: sig, bar: bar})
			break
		}
	}

	// Descending confidence, first fit.
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].sig.Confidence > candidates[j].sig.Confidence
	})

	for _, c := range candidates {
		if o.sim.PositionCount() >= o.cfg.MaxPositions {
			break
		}

		price := c.sig.Price
		if price <= 0 {
			price = c.bar.Close
		}

		qty := risk.EntryQuantity(o.sim.Cash(), o.cfg.MaxPositionPct, price, o.cfg.LotSize)
		if qty == 0 {
			o.skip(day, c.sig.Code, "entry below one lot")
			continue
		}
		if !o.sim.PlaceBuy(c.sig.Code, c.bar.Name, price, qty, day) {
			o.skip(day, c.sig.Code, "buy rejected")
		}
	}
}

func (o *Orchestrator) openMap() map[string]sim.Position {
	open := make(map[string]sim.Position)
	for _, p := range o.sim.OpenPositions() {
		open[p.Code] = p
	}
	return open
}

func (o *Orchestrator) skip(day time.Time, code, reason string) {
	o.skipped = append(o.skipped, SkippedEvent{Date: day, Code: code, Reason: reason})
}
