package main

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"auto-trading-engine/execution"
	"auto-trading-engine/marketdata"
	"auto-trading-engine/strategy"
)

// Demo wiring: a simulated quote feed, one factor strategy, and a few
// generate/execute cycles against the engine, with the resulting portfolio
// and trade log dumped through the logger.
func main() {
	_ = godotenv.Load()

	logger, err := zap.NewDevelopment()
	if err != nil {
		os.Exit(1)
	}
	defer logger.Sync()

	cfg := execution.DefaultConfig()
	if v := os.Getenv("ENGINE_INITIAL_CAPITAL"); v != "" {
		if capital, err := decimal.NewFromString(v); err == nil {
			cfg.InitialCapital = capital
		}
	}
	if v := os.Getenv("ENGINE_TRADE_NOTIONAL"); v != "" {
		if notional, err := decimal.NewFromString(v); err == nil {
			cfg.TradeNotional = notional
		}
	}

	engine, err := execution.NewEngine(cfg, logger)
	if err != nil {
		logger.Fatal("failed to create engine", zap.Error(err))
	}

	simCfg := marketdata.DefaultSimulatorConfig()
	if v := os.Getenv("ENGINE_FEED_SEED"); v != "" {
		if seed, err := strconv.ParseInt(v, 10, 64); err == nil {
			simCfg.Seed = seed
		}
	}
	feed := marketdata.NewSimulatedProvider(simCfg)

	strat := strategy.Strategy{
		ID:   "demo-momentum",
		Name: "Momentum demo",
		Factors: []strategy.SelectionFactor{
			{ID: "f1", Name: "MA trend up", Category: strategy.CategoryTechnical, Enabled: true, Value: strategy.CheckboxValue(true)},
			{ID: "f2", Name: "PE below sector", Category: strategy.CategoryFundamental, Enabled: true, Value: strategy.RangeValue(0, 25)},
			{ID: "f3", Name: "News sentiment", Category: strategy.CategorySentiment, Enabled: false, Value: strategy.SelectValue("positive")},
		},
	}

	const cycles = 3
	for i := 0; i < cycles; i++ {
		feed.Tick()
		candidates := feed.Candidates()

		signals := engine.GenerateSignals(strat, candidates)
		// Execute the top two proposals per cycle and drop the rest.
		for j, sig := range signals {
			if j < 2 {
				engine.ExecuteSignal(sig.ID, nil)
			} else {
				engine.CancelSignal(sig.ID)
			}
		}

		engine.UpdateMarketPrices(feed.Candidates())
	}

	pf := engine.PortfolioStatus(strat.ID)
	if pf == nil {
		logger.Info("no trades executed")
		return
	}

	logger.Info("portfolio",
		zap.String("total_value", pf.TotalValue.StringFixed(2)),
		zap.String("total_cost", pf.TotalCost.StringFixed(2)),
		zap.String("realized_profit", pf.TotalProfit.StringFixed(2)),
		zap.String("current_drawdown", pf.CurrentDrawdown.StringFixed(2)),
		zap.Int("open_positions", len(pf.Positions)),
		zap.Int("alerts", len(pf.Alerts)))

	tradeLog := engine.GenerateTradeLog(strat.ID)
	logger.Info("trade log",
		zap.Int("orders", len(tradeLog.Orders)),
		zap.String("total_commission", tradeLog.TotalCommission.StringFixed(2)),
		zap.String("paired_profit", tradeLog.TotalProfit.StringFixed(2)))
}
