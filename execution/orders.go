package execution

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ExecuteSignal fills a pending signal into an order at the signal's
// proposed price, or at overridePrice when non-nil. An unknown id, or a
// signal already executed or cancelled, is a no-op returning nil — the
// pending-status filter is what guarantees at most one order per signal.
// The owning portfolio is updated synchronously before this returns.
func (e *Engine) ExecuteSignal(signalID string, overridePrice *decimal.Decimal) *TradeOrder {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.executeLocked(signalID, overridePrice)
}

// ExecuteSignals fills each id in turn at the proposed prices, dropping the
// ones that do not resolve to a pending signal.
func (e *Engine) ExecuteSignals(signalIDs []string) []*TradeOrder {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]*TradeOrder, 0, len(signalIDs))
	for _, id := range signalIDs {
		if order := e.executeLocked(id, nil); order != nil {
			out = append(out, order)
		}
	}
	return out
}

// CancelSignal transitions a pending signal to cancelled without creating
// an order. Unknown or non-pending ids are ignored.
func (e *Engine) CancelSignal(signalID string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	sig, ok := e.signalsByID[signalID]
	if !ok || sig.Status != SignalPending {
		return
	}
	sig.Status = SignalCancelled
	e.logger.Info("signal cancelled",
		zap.String("signal_id", signalID),
		zap.String("code", sig.Code))
}

func (e *Engine) executeLocked(signalID string, overridePrice *decimal.Decimal) *TradeOrder {
	sig, ok := e.signalsByID[signalID]
	if !ok || sig.Status != SignalPending {
		e.logger.Debug("execute skipped, no pending signal", zap.String("signal_id", signalID))
		return nil
	}

	price := sig.Price
	if overridePrice != nil {
		price = *overridePrice
	}

	commission := price.Mul(sig.Quantity).Mul(e.cfg.CommissionRate)
	now := time.Now()

	order := &TradeOrder{
		ID:               uuid.NewString(),
		StrategyID:       sig.StrategyID,
		Code:             sig.Code,
		Name:             sig.Name,
		Action:           sig.Action,
		Price:            price,
		Quantity:         sig.Quantity,
		TotalAmount:      price.Mul(sig.Quantity).Add(commission),
		Status:           OrderFilled,
		ExecutedQuantity: sig.Quantity,
		ExecutedPrice:    price,
		Commission:       commission,
		CreatedAt:        now,
		ExecutedAt:       now,
	}

	sig.Status = SignalExecuted
	e.orders = append(e.orders, order)
	e.applyOrder(order)

	e.logger.Info("signal executed",
		zap.String("signal_id", signalID),
		zap.String("order_id", order.ID),
		zap.String("code", order.Code),
		zap.String("action", string(order.Action)),
		zap.String("price", price.String()),
		zap.String("quantity", order.ExecutedQuantity.String()))

	return order
}
