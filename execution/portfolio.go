package execution

import (
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"auto-trading-engine/marketdata"
)

var hundred = decimal.NewFromInt(100)

// applyOrder folds one filled order into its strategy's portfolio and
// re-derives every aggregate. Caller holds e.mu.
func (e *Engine) applyOrder(order *TradeOrder) {
	pf, ok := e.portfolios[order.StrategyID]
	if !ok {
		pf = &PortfolioStatus{
			StrategyID: order.StrategyID,
			TotalValue: e.cfg.InitialCapital,
			TotalCost:  decimal.Zero,
			Positions:  make([]*PositionInfo, 0),
			Alerts:     make([]*RiskAlert, 0),
			peakValue:  e.cfg.InitialCapital,
		}
		e.portfolios[order.StrategyID] = pf
	}

	switch order.Action {
	case ActionBuy:
		e.applyBuy(pf, order)
	case ActionSell:
		e.applySell(pf, order)
	}

	e.recompute(pf)
	pf.UpdatedAt = time.Now()
}

func (e *Engine) applyBuy(pf *PortfolioStatus, order *TradeOrder) {
	pos := findPosition(pf, order.Code)
	if pos != nil {
		// Weighted-average cost basis across the old lot and this fill.
		oldCost := pos.Quantity.Mul(pos.EntryPrice)
		newCost := order.ExecutedQuantity.Mul(order.ExecutedPrice)
		total := pos.Quantity.Add(order.ExecutedQuantity)
		pos.EntryPrice = oldCost.Add(newCost).Div(total)
		pos.Quantity = total
		pos.CurrentPrice = order.ExecutedPrice
	} else {
		pf.Positions = append(pf.Positions, &PositionInfo{
			Code:         order.Code,
			Name:         order.Name,
			Quantity:     order.ExecutedQuantity,
			EntryPrice:   order.ExecutedPrice,
			CurrentPrice: order.ExecutedPrice,
		})
	}
	pf.TotalCost = pf.TotalCost.Add(order.TotalAmount)
}

func (e *Engine) applySell(pf *PortfolioStatus, order *TradeOrder) {
	pos := findPosition(pf, order.Code)
	if pos == nil {
		// Latent gap inherited from the source system: a sell with no
		// matching position records no profit and touches no position,
		// but the portfolio still recomputes.
		e.logger.Warn("sell order without matching position",
			zap.String("strategy_id", order.StrategyID),
			zap.String("code", order.Code))
		return
	}

	realized := order.ExecutedPrice.Sub(pos.EntryPrice).
		Mul(order.ExecutedQuantity).
		Sub(order.Commission)
	pf.TotalProfit = pf.TotalProfit.Add(realized)

	pos.Quantity = pos.Quantity.Sub(order.ExecutedQuantity)
	pos.CurrentPrice = order.ExecutedPrice
	if pos.Quantity.LessThanOrEqual(decimal.Zero) {
		removePosition(pf, order.Code)
	}
}

// recompute re-derives portfolio aggregates, drawdown, per-position figures
// and the alert set. Caller holds e.mu.
func (e *Engine) recompute(pf *PortfolioStatus) {
	pf.TotalValue = e.cfg.InitialCapital.Sub(pf.TotalCost).Add(pf.TotalProfit)
	pf.ProfitRate = pf.TotalProfit.Div(e.cfg.InitialCapital).Mul(hundred)

	if pf.TotalValue.GreaterThan(pf.peakValue) {
		pf.peakValue = pf.TotalValue
	}
	pf.CurrentDrawdown = pf.TotalValue.Sub(pf.peakValue).Div(pf.peakValue).Mul(hundred)
	if pf.CurrentDrawdown.LessThan(pf.MaxDrawdown) {
		pf.MaxDrawdown = pf.CurrentDrawdown
	}

	e.refreshPositions(pf)
	e.evaluateRisk(pf)
}

// refreshPositions re-derives unrealized profit, profit rate and portfolio
// share for every open position.
func (e *Engine) refreshPositions(pf *PortfolioStatus) {
	for _, pos := range pf.Positions {
		pos.UnrealizedProfit = pos.CurrentPrice.Sub(pos.EntryPrice).Mul(pos.Quantity)
		if pos.EntryPrice.IsPositive() {
			pos.ProfitRate = pos.CurrentPrice.Sub(pos.EntryPrice).Div(pos.EntryPrice).Mul(hundred)
		} else {
			pos.ProfitRate = decimal.Zero
		}
		if pf.TotalValue.IsPositive() {
			pos.Share = pos.CurrentPrice.Mul(pos.Quantity).Div(pf.TotalValue).Mul(hundred)
		} else {
			pos.Share = decimal.Zero
		}
	}
}

// UpdateMarketPrices pushes fresh quotes into every open position matching
// a candidate code, then re-derives per-position figures and the alert set.
// Realized aggregates and cost basis are untouched.
func (e *Engine) UpdateMarketPrices(candidates []marketdata.Candidate) {
	if len(candidates) == 0 {
		return
	}
	prices := make(map[string]decimal.Decimal, len(candidates))
	for _, c := range candidates {
		prices[c.Code] = c.Price
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	for _, pf := range e.portfolios {
		touched := false
		for _, pos := range pf.Positions {
			if p, ok := prices[pos.Code]; ok {
				pos.CurrentPrice = p
				touched = true
			}
		}
		if touched {
			e.refreshPositions(pf)
			e.evaluateRisk(pf)
			pf.UpdatedAt = time.Now()
		}
	}
}

func findPosition(pf *PortfolioStatus, code string) *PositionInfo {
	for _, pos := range pf.Positions {
		if pos.Code == code {
			return pos
		}
	}
	return nil
}

func removePosition(pf *PortfolioStatus, code string) {
	for i, pos := range pf.Positions {
		if pos.Code == code {
			pf.Positions = append(pf.Positions[:i], pf.Positions[i+1:]...)
			return
		}
	}
}
