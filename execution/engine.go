package execution

import (
	"fmt"
	"sync"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Config carries the engine's trading and risk parameters.
type Config struct {
	InitialCapital decimal.Decimal `json:"initial_capital"` // starting capital per strategy portfolio
	TradeNotional  decimal.Decimal `json:"trade_notional"`  // target notional per generated signal
	CommissionRate decimal.Decimal `json:"commission_rate"` // fraction of price*qty, e.g. 0.001

	ConfidenceThreshold float64 `json:"confidence_threshold"` // emit signal only above this

	// Risk thresholds. Drawdown values are negative percentages, loss values
	// negative currency amounts, concentration values positive percentages.
	DrawdownWarning       decimal.Decimal `json:"drawdown_warning"`
	DrawdownCritical      decimal.Decimal `json:"drawdown_critical"`
	LossWarning           decimal.Decimal `json:"loss_warning"`
	LossCritical          decimal.Decimal `json:"loss_critical"`
	ConcentrationWarning  decimal.Decimal `json:"concentration_warning"`
	ConcentrationCritical decimal.Decimal `json:"concentration_critical"`
}

// DefaultConfig returns the engine defaults: 100k starting capital, 10k per
// trade, 0.1% commission, signals above confidence 60.
func DefaultConfig() Config {
	return Config{
		InitialCapital:        decimal.NewFromInt(100_000),
		TradeNotional:         decimal.NewFromInt(10_000),
		CommissionRate:        decimal.NewFromFloat(0.001),
		ConfidenceThreshold:   60,
		DrawdownWarning:       decimal.NewFromInt(-10),
		DrawdownCritical:      decimal.NewFromInt(-20),
		LossWarning:           decimal.NewFromInt(-5_000),
		LossCritical:          decimal.NewFromInt(-10_000),
		ConcentrationWarning:  decimal.NewFromInt(30),
		ConcentrationCritical: decimal.NewFromInt(50),
	}
}

// Engine owns all trading state: pending signals, executed orders, and one
// portfolio per strategy. Every operation runs to completion under the
// engine mutex, so mutations are strictly serialized; getters hand out the
// current state as a snapshot that the next mutation may invalidate.
type Engine struct {
	cfg    Config
	logger *zap.Logger

	mu          sync.RWMutex
	signals     []*TradeSignal
	signalsByID map[string]*TradeSignal
	orders      []*TradeOrder
	portfolios  map[string]*PortfolioStatus
}

// NewEngine builds an engine with its own empty collections. Passing a nil
// logger yields a silent engine.
func NewEngine(cfg Config, logger *zap.Logger) (*Engine, error) {
	if cfg.InitialCapital.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("initial capital must be positive, got %s", cfg.InitialCapital)
	}
	if cfg.TradeNotional.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("trade notional must be positive, got %s", cfg.TradeNotional)
	}
	if cfg.CommissionRate.IsNegative() {
		return nil, fmt.Errorf("commission rate must not be negative, got %s", cfg.CommissionRate)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Engine{
		cfg:         cfg,
		logger:      logger,
		signals:     make([]*TradeSignal, 0),
		signalsByID: make(map[string]*TradeSignal),
		orders:      make([]*TradeOrder, 0),
		portfolios:  make(map[string]*PortfolioStatus),
	}, nil
}

// PendingSignals returns signals still awaiting execution, oldest first.
// An empty strategyID matches every strategy.
func (e *Engine) PendingSignals(strategyID string) []*TradeSignal {
	e.mu.RLock()
	defer e.mu.RUnlock()

	out := make([]*TradeSignal, 0)
	for _, sig := range e.signals {
		if sig.Status != SignalPending {
			continue
		}
		if strategyID != "" && sig.StrategyID != strategyID {
			continue
		}
		out = append(out, sig)
	}
	return out
}

// PortfolioStatus returns the portfolio snapshot for a strategy, or nil if
// the strategy has not executed any order yet. A nil result means "no
// activity", not a fault.
func (e *Engine) PortfolioStatus(strategyID string) *PortfolioStatus {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.portfolios[strategyID]
}

// RiskAlerts returns the current alert set. An empty strategyID gathers
// alerts across every portfolio.
func (e *Engine) RiskAlerts(strategyID string) []*RiskAlert {
	e.mu.RLock()
	defer e.mu.RUnlock()

	out := make([]*RiskAlert, 0)
	if strategyID != "" {
		if pf, ok := e.portfolios[strategyID]; ok {
			out = append(out, pf.Alerts...)
		}
		return out
	}
	for _, pf := range e.portfolios {
		out = append(out, pf.Alerts...)
	}
	return out
}

// DefaultHistoryLimit bounds TradeHistory when the caller passes no limit.
const DefaultHistoryLimit = 50

// TradeHistory returns a strategy's executed orders, newest first. A limit
// of zero or less falls back to DefaultHistoryLimit.
func (e *Engine) TradeHistory(strategyID string, limit int) []*TradeOrder {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	e.mu.RLock()
	defer e.mu.RUnlock()

	out := make([]*TradeOrder, 0)
	for i := len(e.orders) - 1; i >= 0 && len(out) < limit; i-- {
		if e.orders[i].StrategyID == strategyID {
			out = append(out, e.orders[i])
		}
	}
	return out
}
