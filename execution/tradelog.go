package execution

import (
	"time"

	"github.com/shopspring/decimal"
)

// GenerateTradeLog rolls up a strategy's executed orders into a summary.
//
// Profit is computed by positional pairing: order[0] is assumed to be a buy,
// order[1] its matching sell, and so on down the list, subtracting both
// legs' commission per pair. This mirrors the source system and is only
// correct when buys and sells strictly alternate per instrument; see
// GenerateTradeLogFIFO for the order-independent variant.
func (e *Engine) GenerateTradeLog(strategyID string) *TradeLog {
	e.mu.RLock()
	defer e.mu.RUnlock()

	orders := e.strategyOrders(strategyID)

	totalProfit := decimal.Zero
	for i := 0; i+1 < len(orders); i += 2 {
		buy, sell := orders[i], orders[i+1]
		totalProfit = totalProfit.Add(
			sell.ExecutedPrice.Sub(buy.ExecutedPrice).Mul(sell.ExecutedQuantity).
				Sub(buy.Commission).Sub(sell.Commission))
	}

	return &TradeLog{
		StrategyID:      strategyID,
		Orders:          orders,
		TotalProfit:     totalProfit,
		TotalCommission: totalCommission(orders),
		GeneratedAt:     time.Now(),
	}
}

// GenerateTradeLogFIFO rolls up a strategy's executed orders matching sells
// against the oldest open buy lots of the same instrument. Commission is
// prorated by matched quantity, so partially consumed legs charge only
// their consumed share. Sells with no open lot contribute nothing.
func (e *Engine) GenerateTradeLogFIFO(strategyID string) *TradeLog {
	e.mu.RLock()
	defer e.mu.RUnlock()

	orders := e.strategyOrders(strategyID)

	type lot struct {
		qty        decimal.Decimal
		price      decimal.Decimal
		commission decimal.Decimal // remaining unprorated commission
	}
	lots := make(map[string][]*lot)

	totalProfit := decimal.Zero
	for _, order := range orders {
		switch order.Action {
		case ActionBuy:
			lots[order.Code] = append(lots[order.Code], &lot{
				qty:        order.ExecutedQuantity,
				price:      order.ExecutedPrice,
				commission: order.Commission,
			})
		case ActionSell:
			remaining := order.ExecutedQuantity
			sellCommissionPerUnit := decimal.Zero
			if order.ExecutedQuantity.IsPositive() {
				sellCommissionPerUnit = order.Commission.Div(order.ExecutedQuantity)
			}
			queue := lots[order.Code]
			for len(queue) > 0 && remaining.IsPositive() {
				head := queue[0]
				matched := decimal.Min(head.qty, remaining)

				buyCommission := decimal.Zero
				if head.qty.IsPositive() {
					buyCommission = head.commission.Mul(matched).Div(head.qty)
				}
				totalProfit = totalProfit.Add(
					order.ExecutedPrice.Sub(head.price).Mul(matched).
						Sub(buyCommission).
						Sub(sellCommissionPerUnit.Mul(matched)))

				head.commission = head.commission.Sub(buyCommission)
				head.qty = head.qty.Sub(matched)
				remaining = remaining.Sub(matched)
				if !head.qty.IsPositive() {
					queue = queue[1:]
				}
			}
			lots[order.Code] = queue
		}
	}

	return &TradeLog{
		StrategyID:      strategyID,
		Orders:          orders,
		TotalProfit:     totalProfit,
		TotalCommission: totalCommission(orders),
		GeneratedAt:     time.Now(),
	}
}

// strategyOrders returns a strategy's orders in execution order. Caller
// holds at least a read lock.
func (e *Engine) strategyOrders(strategyID string) []*TradeOrder {
	out := make([]*TradeOrder, 0)
	for _, order := range e.orders {
		if order.StrategyID == strategyID {
			out = append(out, order)
		}
	}
	return out
}

func totalCommission(orders []*TradeOrder) decimal.Decimal {
	total := decimal.Zero
	for _, order := range orders {
		total = total.Add(order.Commission)
	}
	return total
}
