// Package execution implements the automated trading execution engine:
// signal generation from strategy factors, order execution, per-strategy
// portfolio tracking, risk monitoring, and trade log aggregation. All state
// is in-memory and owned by a single Engine instance.
package execution

import (
	"time"

	"github.com/shopspring/decimal"
)

// SignalAction is the direction of a proposed or executed trade.
type SignalAction string

const (
	ActionBuy  SignalAction = "buy"
	ActionSell SignalAction = "sell"
)

// SignalStatus tracks a signal through its lifecycle. pending is the only
// non-terminal state; executed and cancelled are terminal.
type SignalStatus string

const (
	SignalPending   SignalStatus = "pending"
	SignalExecuted  SignalStatus = "executed"
	SignalCancelled SignalStatus = "cancelled"
)

// OrderStatus tracks an order's fill state. Orders are currently created
// directly in filled; pending, partial and cancelled are reserved for
// partial-fill support and have no producing transition.
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderPartial   OrderStatus = "partial"
	OrderFilled    OrderStatus = "filled"
	OrderCancelled OrderStatus = "cancelled"
)

// AlertKind classifies a risk alert. volatility is reserved: the type is
// accepted everywhere but no check currently produces it.
type AlertKind string

const (
	AlertDrawdown      AlertKind = "drawdown"
	AlertLoss          AlertKind = "loss"
	AlertVolatility    AlertKind = "volatility"
	AlertConcentration AlertKind = "concentration"
)

// AlertSeverity grades a risk alert.
type AlertSeverity string

const (
	SeverityWarning  AlertSeverity = "warning"
	SeverityCritical AlertSeverity = "critical"
)

// TradeSignal is a proposed trade, not yet committed to capital. Signals are
// never deleted; execution or cancellation only transitions Status.
type TradeSignal struct {
	ID         string          `json:"id"`
	StrategyID string          `json:"strategy_id"`
	Code       string          `json:"code"`
	Name       string          `json:"name"`
	Action     SignalAction    `json:"action"`
	Price      decimal.Decimal `json:"price"`
	Quantity   decimal.Decimal `json:"quantity"`
	Reason     string          `json:"reason"`
	Confidence float64         `json:"confidence"` // 0-100
	Status     SignalStatus    `json:"status"`
	CreatedAt  time.Time       `json:"created_at"`
}

// TradeOrder is a committed, executed trade. Exactly one order is created
// per executed signal and it is immutable afterwards.
type TradeOrder struct {
	ID               string          `json:"id"`
	StrategyID       string          `json:"strategy_id"`
	Code             string          `json:"code"`
	Name             string          `json:"name"`
	Action           SignalAction    `json:"action"`
	Price            decimal.Decimal `json:"price"`
	Quantity         decimal.Decimal `json:"quantity"`
	TotalAmount      decimal.Decimal `json:"total_amount"` // price*qty + commission
	Status           OrderStatus     `json:"status"`
	ExecutedQuantity decimal.Decimal `json:"executed_quantity"`
	ExecutedPrice    decimal.Decimal `json:"executed_price"`
	Commission       decimal.Decimal `json:"commission"`
	CreatedAt        time.Time       `json:"created_at"`
	ExecutedAt       time.Time       `json:"executed_at"`
}

// RiskAlert is one derived risk finding. The alert set on a portfolio is
// replaced wholesale on every update, never merged.
type RiskAlert struct {
	ID         string          `json:"id"`
	StrategyID string          `json:"strategy_id"`
	Kind       AlertKind       `json:"kind"`
	Severity   AlertSeverity   `json:"severity"`
	Message    string          `json:"message"`
	Value      decimal.Decimal `json:"value"`
	Threshold  decimal.Decimal `json:"threshold"`
	CreatedAt  time.Time       `json:"created_at"`
}

// PositionInfo is one open position inside a portfolio.
type PositionInfo struct {
	Code             string          `json:"code"`
	Name             string          `json:"name"`
	Quantity         decimal.Decimal `json:"quantity"`
	EntryPrice       decimal.Decimal `json:"entry_price"` // weighted average
	CurrentPrice     decimal.Decimal `json:"current_price"`
	UnrealizedProfit decimal.Decimal `json:"unrealized_profit"`
	ProfitRate       decimal.Decimal `json:"profit_rate"` // percent
	Share            decimal.Decimal `json:"share"`       // percent of portfolio value
}

// PortfolioStatus is the running snapshot for one strategy. At most one
// exists per strategy id; it is created lazily on the first executed order
// and mutated in place by every subsequent one.
type PortfolioStatus struct {
	StrategyID      string          `json:"strategy_id"`
	TotalValue      decimal.Decimal `json:"total_value"`
	TotalCost       decimal.Decimal `json:"total_cost"`
	TotalProfit     decimal.Decimal `json:"total_profit"` // realized
	ProfitRate      decimal.Decimal `json:"profit_rate"`  // percent of capital
	MaxDrawdown     decimal.Decimal `json:"max_drawdown"` // percent, <= 0
	CurrentDrawdown decimal.Decimal `json:"current_drawdown"`
	Positions       []*PositionInfo `json:"positions"`
	Alerts          []*RiskAlert    `json:"alerts"`
	UpdatedAt       time.Time       `json:"updated_at"`

	peakValue decimal.Decimal // running high of TotalValue, drawdown anchor
}

// TradeLog is a point-in-time rollup of a strategy's executed orders.
// It is recomputed on demand, never cached.
type TradeLog struct {
	StrategyID      string          `json:"strategy_id"`
	Orders          []*TradeOrder   `json:"orders"`
	TotalProfit     decimal.Decimal `json:"total_profit"`
	TotalCommission decimal.Decimal `json:"total_commission"`
	GeneratedAt     time.Time       `json:"generated_at"`
}
