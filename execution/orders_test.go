package execution

import (
	"testing"

	"github.com/shopspring/decimal"

	"auto-trading-engine/marketdata"
	"auto-trading-engine/strategy"
)

func generateOneSignal(t *testing.T, engine *Engine, price int64) *TradeSignal {
	t.Helper()
	strat := strategy.Strategy{
		ID: "s1",
		Factors: []strategy.SelectionFactor{
			factor(strategy.CategoryTechnical, true),
			factor(strategy.CategoryFundamental, true),
		},
	}
	signals := engine.GenerateSignals(strat, []marketdata.Candidate{
		{Code: "X", Name: "X Corp", Price: decimal.NewFromInt(price)},
	})
	if len(signals) != 1 {
		t.Fatalf("expected 1 signal, got %d", len(signals))
	}
	return signals[0]
}

func TestExecuteSignal(t *testing.T) {
	t.Run("fills at proposed price", func(t *testing.T) {
		engine := newTestEngine(t)
		sig := generateOneSignal(t, engine, 100)

		order := engine.ExecuteSignal(sig.ID, nil)
		if order == nil {
			t.Fatal("expected order, got nil")
		}
		if order.Status != OrderFilled {
			t.Errorf("expected filled, got %s", order.Status)
		}
		if !order.ExecutedPrice.Equal(decimal.NewFromInt(100)) {
			t.Errorf("expected executed price 100, got %s", order.ExecutedPrice)
		}
		if !order.ExecutedQuantity.Equal(sig.Quantity) {
			t.Errorf("executed quantity %s does not match signal quantity %s", order.ExecutedQuantity, sig.Quantity)
		}
		// commission = price * qty * 0.001 = 100 * 100 * 0.001
		if !order.Commission.Equal(decimal.NewFromInt(10)) {
			t.Errorf("expected commission 10, got %s", order.Commission)
		}
		if !order.TotalAmount.Equal(decimal.NewFromInt(10010)) {
			t.Errorf("expected total amount 10010, got %s", order.TotalAmount)
		}
		if sig.Status != SignalExecuted {
			t.Errorf("signal should be executed, got %s", sig.Status)
		}
	})

	t.Run("override price wins", func(t *testing.T) {
		engine := newTestEngine(t)
		sig := generateOneSignal(t, engine, 100)

		override := decimal.NewFromInt(105)
		order := engine.ExecuteSignal(sig.ID, &override)
		if order == nil {
			t.Fatal("expected order, got nil")
		}
		if !order.ExecutedPrice.Equal(override) {
			t.Errorf("expected executed price 105, got %s", order.ExecutedPrice)
		}
		// commission follows the override: 105 * 100 * 0.001
		if !order.Commission.Equal(decimal.NewFromFloat(10.5)) {
			t.Errorf("expected commission 10.5, got %s", order.Commission)
		}
	})

	t.Run("unknown id is a silent no-op", func(t *testing.T) {
		engine := newTestEngine(t)
		if order := engine.ExecuteSignal("no-such-signal", nil); order != nil {
			t.Errorf("expected nil, got order %s", order.ID)
		}
	})

	t.Run("second execution of same id creates no order", func(t *testing.T) {
		engine := newTestEngine(t)
		sig := generateOneSignal(t, engine, 100)

		first := engine.ExecuteSignal(sig.ID, nil)
		second := engine.ExecuteSignal(sig.ID, nil)
		if first == nil {
			t.Fatal("first execution should fill")
		}
		if second != nil {
			t.Error("second execution should be a no-op")
		}
		if got := len(engine.TradeHistory("s1", 0)); got != 1 {
			t.Errorf("expected exactly 1 order, got %d", got)
		}
	})

	t.Run("cancelled signal cannot execute", func(t *testing.T) {
		engine := newTestEngine(t)
		sig := generateOneSignal(t, engine, 100)

		engine.CancelSignal(sig.ID)
		if sig.Status != SignalCancelled {
			t.Fatalf("expected cancelled, got %s", sig.Status)
		}
		if order := engine.ExecuteSignal(sig.ID, nil); order != nil {
			t.Error("cancelled signal must not fill")
		}
		if got := len(engine.PendingSignals("s1")); got != 0 {
			t.Errorf("expected no pending signals, got %d", got)
		}
	})
}

func TestExecuteSignals(t *testing.T) {
	engine := newTestEngine(t)
	strat := strategy.Strategy{
		ID: "s1",
		Factors: []strategy.SelectionFactor{
			factor(strategy.CategoryTechnical, true),
			factor(strategy.CategoryFundamental, true),
		},
	}
	signals := engine.GenerateSignals(strat, []marketdata.Candidate{
		{Code: "A", Name: "A Corp", Price: decimal.NewFromInt(50)},
		{Code: "B", Name: "B Corp", Price: decimal.NewFromInt(200)},
	})
	if len(signals) != 2 {
		t.Fatalf("expected 2 signals, got %d", len(signals))
	}

	ids := []string{signals[0].ID, "bogus", signals[1].ID}
	orders := engine.ExecuteSignals(ids)
	if len(orders) != 2 {
		t.Fatalf("expected 2 orders after filtering failures, got %d", len(orders))
	}
}

func TestTradeHistory(t *testing.T) {
	engine := newTestEngine(t)
	for i := int64(1); i <= 3; i++ {
		sig := engine.SubmitSignal("s1", "X", "X Corp", ActionBuy,
			decimal.NewFromInt(i*100), decimal.NewFromInt(10), "test")
		engine.ExecuteSignal(sig.ID, nil)
	}

	history := engine.TradeHistory("s1", 0)
	if len(history) != 3 {
		t.Fatalf("expected 3 orders, got %d", len(history))
	}
	// Newest first.
	if !history[0].ExecutedPrice.Equal(decimal.NewFromInt(300)) {
		t.Errorf("expected newest order first, got price %s", history[0].ExecutedPrice)
	}
	if !history[2].ExecutedPrice.Equal(decimal.NewFromInt(100)) {
		t.Errorf("expected oldest order last, got price %s", history[2].ExecutedPrice)
	}

	if got := len(engine.TradeHistory("s1", 2)); got != 2 {
		t.Errorf("expected limit 2 respected, got %d", got)
	}
	if got := len(engine.TradeHistory("other", 0)); got != 0 {
		t.Errorf("expected no orders for unknown strategy, got %d", got)
	}
}
