// Package marketdata supplies instrument candidates to the trading engine.
// The engine only ever sees point-in-time snapshots; where those snapshots
// come from is this package's business. The simulated provider below stands
// in for a live feed and drives the demo binary and tests.
package marketdata

import (
	"math/rand"
	"sync"

	"github.com/shopspring/decimal"
)

// Candidate is one instrument offered to the signal generator.
type Candidate struct {
	Code  string          `json:"code"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// Provider hands out candidate snapshots. Implementations must return data
// the caller can hold without further synchronization.
type Provider interface {
	Candidates() []Candidate
}

// SimulatorConfig configures the simulated provider.
type SimulatorConfig struct {
	Universe   []Candidate // starting quotes; defaults to DefaultUniverse()
	Volatility float64     // max fractional move per tick, e.g. 0.03 for 3%
	Seed       int64       // 0 means non-deterministic seeding
}

// DefaultSimulatorConfig returns a simulator over the default universe with
// a 3% per-tick move cap.
func DefaultSimulatorConfig() SimulatorConfig {
	return SimulatorConfig{
		Universe:   DefaultUniverse(),
		Volatility: 0.03,
	}
}

// DefaultUniverse returns the built-in demo instrument set.
func DefaultUniverse() []Candidate {
	return []Candidate{
		{Code: "600519", Name: "Kweichow Moutai", Price: decimal.NewFromFloat(1680.00)},
		{Code: "000858", Name: "Wuliangye", Price: decimal.NewFromFloat(142.50)},
		{Code: "601318", Name: "Ping An Insurance", Price: decimal.NewFromFloat(48.20)},
		{Code: "600036", Name: "China Merchants Bank", Price: decimal.NewFromFloat(35.80)},
		{Code: "000333", Name: "Midea Group", Price: decimal.NewFromFloat(62.40)},
		{Code: "300750", Name: "CATL", Price: decimal.NewFromFloat(188.00)},
	}
}

// SimulatedProvider produces random-walk quotes over a fixed universe.
// Prices move by at most ±Volatility per Tick and never drop below one cent.
type SimulatedProvider struct {
	mu         sync.RWMutex
	quotes     []Candidate
	volatility decimal.Decimal
	rng        *rand.Rand
}

// NewSimulatedProvider builds a provider from cfg. A zero-value Universe
// falls back to DefaultUniverse.
func NewSimulatedProvider(cfg SimulatorConfig) *SimulatedProvider {
	universe := cfg.Universe
	if len(universe) == 0 {
		universe = DefaultUniverse()
	}
	quotes := make([]Candidate, len(universe))
	copy(quotes, universe)

	vol := cfg.Volatility
	if vol <= 0 {
		vol = 0.03
	}

	src := rand.NewSource(cfg.Seed)
	if cfg.Seed == 0 {
		src = rand.NewSource(rand.Int63())
	}

	return &SimulatedProvider{
		quotes:     quotes,
		volatility: decimal.NewFromFloat(vol),
		rng:        rand.New(src),
	}
}

var minPrice = decimal.NewFromFloat(0.01)

// Tick advances every quote one random-walk step.
func (p *SimulatedProvider) Tick() {
	p.mu.Lock()
	defer p.mu.Unlock()

	for i := range p.quotes {
		// Uniform move in [-volatility, +volatility].
		move := decimal.NewFromFloat(p.rng.Float64()*2 - 1).Mul(p.volatility)
		next := p.quotes[i].Price.Mul(decimal.NewFromInt(1).Add(move)).Round(2)
		if next.LessThan(minPrice) {
			next = minPrice
		}
		p.quotes[i].Price = next
	}
}

// Candidates implements Provider. The returned slice is a copy.
func (p *SimulatedProvider) Candidates() []Candidate {
	p.mu.RLock()
	defer p.mu.RUnlock()

	out := make([]Candidate, len(p.quotes))
	copy(out, p.quotes)
	return out
}
