package types

import (
	"time"

	"github.com/moznion/go-optional"
)

// Balance is a single asset balance on the futures account.
type Balance struct {
	// Asset is the asset symbol (e.g. USDT)
	Asset string `json:"asset" yaml:"asset"`
	// Balance is the total wallet balance for the asset
	Balance float64 `json:"balance" yaml:"balance"`
	// Available is the balance available for new orders
	Available float64 `json:"available" yaml:"available"`
}

// Position is an open futures position.
type Position struct {
	Symbol string `json:"symbol" yaml:"symbol"`
	// Amount is the signed position size (negative for short)
	Amount     float64 `json:"amount" yaml:"amount"`
	EntryPrice float64 `json:"entry_price" yaml:"entry_price"`
	MarkPrice  float64 `json:"mark_price" yaml:"mark_price"`
	// UnrealizedPnL is the unrealized profit/loss of the position
	UnrealizedPnL float64 `json:"unrealized_pnl" yaml:"unrealized_pnl"`
	Leverage      float64 `json:"leverage" yaml:"leverage"`
}

// OpenOrder is an order resting on the exchange.
type OpenOrder struct {
	OrderID   int64       `json:"order_id" yaml:"order_id"`
	Symbol    string      `json:"symbol" yaml:"symbol"`
	Side      Side        `json:"side" yaml:"side"`
	Type      string      `json:"type" yaml:"type"`
	Quantity  float64     `json:"quantity" yaml:"quantity"`
	Price     float64     `json:"price" yaml:"price"`
	StopPrice float64     `json:"stop_price" yaml:"stop_price"`
	Status    OrderStatus `json:"status" yaml:"status"`
	Time      time.Time   `json:"time" yaml:"time"`
}

// PlacedOrder is the exchange's acknowledgement of a newly created order.
type PlacedOrder struct {
	OrderID       int64       `json:"order_id" yaml:"order_id"`
	ClientOrderID string      `json:"client_order_id" yaml:"client_order_id"`
	Symbol        string      `json:"symbol" yaml:"symbol"`
	Side          Side        `json:"side" yaml:"side"`
	Type          string      `json:"type" yaml:"type"`
	Quantity      float64     `json:"quantity" yaml:"quantity"`
	Status        OrderStatus `json:"status" yaml:"status"`
	// Price and StopPrice are absent for order types that do not carry them.
	Price     optional.Option[float64] `json:"price" yaml:"price"`
	StopPrice optional.Option[float64] `json:"stop_price" yaml:"stop_price"`
}
