package main

import (
	"testing"
	"time"

	"github.com/moznion/go-optional"
	"github.com/quantbench/futures-trader/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestRenderBalances(t *testing.T) {
	out := RenderBalances([]types.Balance{
		{Asset: "USDT", Balance: 15000.5, Available: 12000},
		{Asset: "BNB", Balance: 0, Available: 0},
	})

	assert.Contains(t, out, "USDT")
	assert.Contains(t, out, "15000.5")
	assert.Contains(t, out, "12000")
	// Zero balances are not shown
	assert.NotContains(t, out, "BNB")
}

func TestRenderBalances_Empty(t *testing.T) {
	out := RenderBalances(nil)
	assert.Contains(t, out, "no funded assets")
}

func TestRenderPrice(t *testing.T) {
	out := RenderPrice("BTCUSDT", 48000.25)
	assert.Contains(t, out, "BTCUSDT")
	assert.Contains(t, out, "48000.25")
}

func TestRenderPlacedOrder(t *testing.T) {
	out := RenderPlacedOrder(types.PlacedOrder{
		OrderID:   12345,
		Symbol:    "BTCUSDT",
		Side:      types.SideBuy,
		Type:      "STOP",
		Quantity:  0.01,
		Status:    types.OrderStatusNew,
		Price:     optional.Some(49000.0),
		StopPrice: optional.Some(50000.0),
	})

	assert.Contains(t, out, "12345")
	assert.Contains(t, out, "BUY")
	assert.Contains(t, out, "49000")
	assert.Contains(t, out, "50000")
	assert.Contains(t, out, "NEW")
}

func TestRenderPlacedOrder_MarketHasNoPrices(t *testing.T) {
	out := RenderPlacedOrder(types.PlacedOrder{
		OrderID:  1,
		Symbol:   "BTCUSDT",
		Side:     types.SideSell,
		Type:     "MARKET",
		Quantity: 0.001,
		Status:   types.OrderStatusFilled,
	})

	assert.NotContains(t, out, "Price:")
	assert.NotContains(t, out, "Stop:")
}

func TestRenderOpenOrders(t *testing.T) {
	out := RenderOpenOrders("BTCUSDT", []types.OpenOrder{
		{
			OrderID:  77,
			Symbol:   "BTCUSDT",
			Side:     types.SideBuy,
			Type:     "LIMIT",
			Quantity: 0.01,
			Price:    47000,
			Status:   types.OrderStatusNew,
			Time:     time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC),
		},
	})

	assert.Contains(t, out, "#77")
	assert.Contains(t, out, "price=47000")
	assert.Contains(t, out, "2025-06-01 12:30:00")
}

func TestRenderOpenOrders_Empty(t *testing.T) {
	out := RenderOpenOrders("BTCUSDT", nil)
	assert.Contains(t, out, "No open orders for BTCUSDT")
}

func TestRenderPositions(t *testing.T) {
	out := RenderPositions([]types.Position{
		{Symbol: "BTCUSDT", Amount: 0.5, EntryPrice: 45000, MarkPrice: 48000, UnrealizedPnL: 1500, Leverage: 10},
		{Symbol: "ETHUSDT", Amount: -2, EntryPrice: 3000, MarkPrice: 2900, UnrealizedPnL: 200, Leverage: 5},
	})

	assert.Contains(t, out, "BTCUSDT LONG")
	assert.Contains(t, out, "ETHUSDT SHORT")
	assert.Contains(t, out, "pnl=1500")
	assert.Contains(t, out, "leverage=10x")
}

func TestRenderPositions_Empty(t *testing.T) {
	out := RenderPositions(nil)
	assert.Contains(t, out, "No open positions")
}
