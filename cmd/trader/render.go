package main

import (
	"fmt"
	"strings"

	"github.com/quantbench/futures-trader/internal/types"
	"github.com/quantbench/futures-trader/internal/utils"
)

// RenderBalances formats account balances, skipping zero-balance assets.
func RenderBalances(balances []types.Balance) string {
	var s strings.Builder

	s.WriteString("Account Balance:\n")

	shown := 0

	for _, b := range balances {
		if b.Balance == 0 && b.Available == 0 {
			continue
		}

		s.WriteString(fmt.Sprintf("  %-6s balance=%s available=%s\n",
			b.Asset, utils.FormatPrice(b.Balance), utils.FormatPrice(b.Available)))
		shown++
	}

	if shown == 0 {
		s.WriteString("  (no funded assets)\n")
	}

	return s.String()
}

// RenderPrice formats the current market price for a symbol.
func RenderPrice(symbol string, price float64) string {
	return fmt.Sprintf("Current price of %s: %s\n", symbol, utils.FormatPrice(price))
}

// RenderPlacedOrder formats an exchange acknowledgement for a submitted order.
func RenderPlacedOrder(order types.PlacedOrder) string {
	var s strings.Builder

	s.WriteString("Order placed:\n")
	s.WriteString(fmt.Sprintf("  Order ID:  %d\n", order.OrderID))
	s.WriteString(fmt.Sprintf("  Symbol:    %s\n", order.Symbol))
	s.WriteString(fmt.Sprintf("  Side:      %s\n", order.Side))
	s.WriteString(fmt.Sprintf("  Type:      %s\n", order.Type))
	s.WriteString(fmt.Sprintf("  Quantity:  %s\n", utils.FormatPrice(order.Quantity)))

	if order.Price.IsSome() {
		s.WriteString(fmt.Sprintf("  Price:     %s\n", utils.FormatPrice(order.Price.Unwrap())))
	}

	if order.StopPrice.IsSome() {
		s.WriteString(fmt.Sprintf("  Stop:      %s\n", utils.FormatPrice(order.StopPrice.Unwrap())))
	}

	s.WriteString(fmt.Sprintf("  Status:    %s\n", order.Status))

	return s.String()
}

// RenderOpenOrders formats the resting orders for a symbol.
func RenderOpenOrders(symbol string, orders []types.OpenOrder) string {
	if len(orders) == 0 {
		return fmt.Sprintf("No open orders for %s\n", symbol)
	}

	var s strings.Builder

	s.WriteString(fmt.Sprintf("Open orders for %s:\n", symbol))

	for _, o := range orders {
		s.WriteString(fmt.Sprintf("  #%d %s %s qty=%s", o.OrderID, o.Side, o.Type, utils.FormatPrice(o.Quantity)))

		if o.Price > 0 {
			s.WriteString(fmt.Sprintf(" price=%s", utils.FormatPrice(o.Price)))
		}

		if o.StopPrice > 0 {
			s.WriteString(fmt.Sprintf(" stop=%s", utils.FormatPrice(o.StopPrice)))
		}

		s.WriteString(fmt.Sprintf(" status=%s placed=%s\n", o.Status, o.Time.Format("2006-01-02 15:04:05")))
	}

	return s.String()
}

// RenderPositions formats nonzero positions.
func RenderPositions(positions []types.Position) string {
	if len(positions) == 0 {
		return "No open positions\n"
	}

	var s strings.Builder

	s.WriteString("Open positions:\n")

	for _, p := range positions {
		direction := "LONG"
		if p.Amount < 0 {
			direction = "SHORT"
		}

		s.WriteString(fmt.Sprintf("  %s %s amount=%s entry=%s mark=%s pnl=%s leverage=%sx\n",
			p.Symbol, direction,
			utils.FormatPrice(p.Amount),
			utils.FormatPrice(p.EntryPrice),
			utils.FormatPrice(p.MarkPrice),
			utils.FormatPrice(p.UnrealizedPnL),
			utils.FormatPrice(p.Leverage)))
	}

	return s.String()
}
