package execution

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// evaluateRisk rebuilds the portfolio's alert set from scratch. Previous
// alerts are discarded, not merged: the set always reflects the portfolio
// as it stands right now. Caller holds e.mu.
func (e *Engine) evaluateRisk(pf *PortfolioStatus) {
	alerts := make([]*RiskAlert, 0)

	if pf.CurrentDrawdown.LessThan(e.cfg.DrawdownWarning) {
		severity := SeverityWarning
		if pf.CurrentDrawdown.LessThan(e.cfg.DrawdownCritical) {
			severity = SeverityCritical
		}
		alerts = append(alerts, e.newAlert(pf.StrategyID, AlertDrawdown, severity,
			fmt.Sprintf("portfolio drawdown %s%% breached %s%% threshold",
				pf.CurrentDrawdown.StringFixed(2), e.cfg.DrawdownWarning.StringFixed(0)),
			pf.CurrentDrawdown, e.cfg.DrawdownWarning))
	}

	if pf.TotalProfit.LessThan(e.cfg.LossWarning) {
		severity := SeverityWarning
		if pf.TotalProfit.LessThan(e.cfg.LossCritical) {
			severity = SeverityCritical
		}
		alerts = append(alerts, e.newAlert(pf.StrategyID, AlertLoss, severity,
			fmt.Sprintf("realized loss %s exceeds %s limit",
				pf.TotalProfit.StringFixed(2), e.cfg.LossWarning.StringFixed(0)),
			pf.TotalProfit, e.cfg.LossWarning))
	}

	// Concentration: largest single-position share of portfolio value.
	// An empty position list produces no alert.
	if len(pf.Positions) > 0 {
		maxShare := decimal.Zero
		for _, pos := range pf.Positions {
			if pos.Share.GreaterThan(maxShare) {
				maxShare = pos.Share
			}
		}
		if maxShare.GreaterThan(e.cfg.ConcentrationWarning) {
			severity := SeverityWarning
			if maxShare.GreaterThan(e.cfg.ConcentrationCritical) {
				severity = SeverityCritical
			}
			alerts = append(alerts, e.newAlert(pf.StrategyID, AlertConcentration, severity,
				fmt.Sprintf("single position holds %s%% of portfolio value, above %s%%",
					maxShare.StringFixed(2), e.cfg.ConcentrationWarning.StringFixed(0)),
				maxShare, e.cfg.ConcentrationWarning))
		}
	}

	pf.Alerts = alerts

	for _, a := range alerts {
		e.logger.Warn("risk alert",
			zap.String("strategy_id", a.StrategyID),
			zap.String("kind", string(a.Kind)),
			zap.String("severity", string(a.Severity)),
			zap.String("message", a.Message))
	}
}

func (e *Engine) newAlert(strategyID string, kind AlertKind, severity AlertSeverity, message string, value, threshold decimal.Decimal) *RiskAlert {
	return &RiskAlert{
		ID:         uuid.NewString(),
		StrategyID: strategyID,
		Kind:       kind,
		Severity:   severity,
		Message:    message,
		Value:      value,
		Threshold:  threshold,
		CreatedAt:  time.Now(),
	}
}
