package execution

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"auto-trading-engine/marketdata"
	"auto-trading-engine/strategy"
)

// Scoring weights per enabled factor category. Custom factors carry no
// weight; they exist for presentation-side filtering only.
const (
	baseConfidence    = 50.0
	technicalWeight   = 10.0
	fundamentalWeight = 8.0
	sentimentWeight   = 5.0
	maxConfidence     = 100.0
)

// ScoreCandidate computes the confidence score a strategy assigns to any
// candidate: base 50 plus a fixed weight per enabled factor, clamped to
// [0,100]. Pure function of the strategy's factor list.
func ScoreCandidate(strat strategy.Strategy) float64 {
	confidence := baseConfidence
	for _, f := range strat.Factors {
		if !f.Enabled {
			continue
		}
		switch f.Category {
		case strategy.CategoryTechnical:
			confidence += technicalWeight
		case strategy.CategoryFundamental:
			confidence += fundamentalWeight
		case strategy.CategorySentiment:
			confidence += sentimentWeight
		}
	}
	if confidence > maxConfidence {
		confidence = maxConfidence
	}
	if confidence < 0 {
		confidence = 0
	}
	return confidence
}

// GenerateSignals scores every candidate against the strategy and emits a
// pending buy signal for each one that clears the confidence threshold,
// sized to the configured per-trade notional. Calling it again produces
// additional, independent signals; there is no deduplication by candidate.
func (e *Engine) GenerateSignals(strat strategy.Strategy, candidates []marketdata.Candidate) []*TradeSignal {
	e.mu.Lock()
	defer e.mu.Unlock()

	created := make([]*TradeSignal, 0)
	for _, c := range candidates {
		confidence := ScoreCandidate(strat)
		if confidence <= e.cfg.ConfidenceThreshold {
			continue
		}
		if c.Price.LessThanOrEqual(decimal.Zero) {
			e.logger.Warn("skipping candidate with non-positive price",
				zap.String("code", c.Code),
				zap.String("price", c.Price.String()))
			continue
		}

		quantity := e.cfg.TradeNotional.Div(c.Price).Floor()
		if quantity.LessThanOrEqual(decimal.Zero) {
			continue
		}

		sig := &TradeSignal{
			ID:         uuid.NewString(),
			StrategyID: strat.ID,
			Code:       c.Code,
			Name:       c.Name,
			Action:     ActionBuy,
			Price:      c.Price,
			Quantity:   quantity,
			Reason:     signalReason(strat, confidence),
			Confidence: confidence,
			Status:     SignalPending,
			CreatedAt:  time.Now(),
		}
		e.signals = append(e.signals, sig)
		e.signalsByID[sig.ID] = sig
		created = append(created, sig)
	}

	e.logger.Info("signals generated",
		zap.String("strategy_id", strat.ID),
		zap.Int("candidates", len(candidates)),
		zap.Int("signals", len(created)))

	return created
}

// SubmitSignal registers a manually authored pending signal, the entry
// point the presentation layer uses for exits and ad-hoc trades (the
// generator only ever proposes buys). Returns nil when price or quantity
// is not positive.
func (e *Engine) SubmitSignal(strategyID, code, name string, action SignalAction, price, quantity decimal.Decimal, reason string) *TradeSignal {
	if price.LessThanOrEqual(decimal.Zero) || quantity.LessThanOrEqual(decimal.Zero) {
		e.logger.Warn("rejecting signal with non-positive price or quantity",
			zap.String("code", code),
			zap.String("price", price.String()),
			zap.String("quantity", quantity.String()))
		return nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	sig := &TradeSignal{
		ID:         uuid.NewString(),
		StrategyID: strategyID,
		Code:       code,
		Name:       name,
		Action:     action,
		Price:      price,
		Quantity:   quantity,
		Reason:     reason,
		Confidence: maxConfidence,
		Status:     SignalPending,
		CreatedAt:  time.Now(),
	}
	e.signals = append(e.signals, sig)
	e.signalsByID[sig.ID] = sig
	return sig
}

func signalReason(strat strategy.Strategy, confidence float64) string {
	return fmt.Sprintf("%d technical, %d fundamental, %d sentiment factors aligned, confidence %.0f",
		strat.EnabledCount(strategy.CategoryTechnical),
		strat.EnabledCount(strategy.CategoryFundamental),
		strat.EnabledCount(strategy.CategorySentiment),
		confidence)
}
