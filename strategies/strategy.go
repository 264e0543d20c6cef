// Package strategies provides the built-in signal sources and a
// registry so runs can select one by name.
package strategies

import (
	"fmt"
	"sort"

	"quantsim/backtest"
)

// Source is the contract every strategy implements.
type Source = backtest.SignalSource

// Params carries strategy tuning values from configuration. Missing
// keys fall back to each strategy's defaults.
type Params map[string]float64

func (p Params) get(key string, def float64) float64 {
	if v, ok := p[key]; ok {
		return v
	}
	return def
}

// Factory builds a configured signal source.
type Factory func(Params) (Source, error)

var registry = map[string]Factory{}

// Register adds a strategy factory under name. Registration happens in
// package init; duplicate names panic.
func Register(name string, f Factory) {
	if _, dup := registry[name]; dup {
		panic(fmt.Sprintf("strategies: duplicate registration for %q", name))
	}
	registry[name] = f
}

// ByName builds the named strategy with the given parameters.
func ByName(name string, params Params) (Source, error) {
	f, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("strategies: unknown strategy %q (have %v)", name, Names())
	}
	return f(params)
}

// Names lists the registered strategy names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
