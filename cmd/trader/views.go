package main

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
)

// menuAction identifies the operation selected from the main menu.
type menuAction int

const (
	actionBalance menuAction = iota
	actionPrice
	actionMarketOrder
	actionLimitOrder
	actionStopLimitOrder
	actionStopMarketOrder
	actionOpenOrders
	actionPositions
	actionCancelOrder
	actionCancelAll
)

// menuItem implements list.Item for the main menu.
type menuItem struct {
	name        string
	description string
	action      menuAction
}

func (i menuItem) Title() string       { return i.name }
func (i menuItem) Description() string { return i.description }
func (i menuItem) FilterValue() string { return i.name }

// NewMenuList creates the main menu.
func NewMenuList() list.Model {
	items := []list.Item{
		menuItem{name: "Account Balance", description: "Show funded asset balances", action: actionBalance},
		menuItem{name: "Market Price", description: "Show the current price for a symbol", action: actionPrice},
		menuItem{name: "Market Order", description: "Buy or sell immediately at market price", action: actionMarketOrder},
		menuItem{name: "Limit Order", description: "Rest an order at a chosen price", action: actionLimitOrder},
		menuItem{name: "Stop-Limit Order", description: "Place a limit order once the stop price triggers", action: actionStopLimitOrder},
		menuItem{name: "Stop-Market Order", description: "Execute at market once the stop price triggers", action: actionStopMarketOrder},
		menuItem{name: "Open Orders", description: "List resting orders for a symbol", action: actionOpenOrders},
		menuItem{name: "Positions", description: "List nonzero positions", action: actionPositions},
		menuItem{name: "Cancel Order", description: "Cancel a single order by ID", action: actionCancelOrder},
		menuItem{name: "Cancel All Orders", description: "Cancel every open order for a symbol", action: actionCancelAll},
	}

	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = true

	l := list.New(items, delegate, 0, 0)
	l.Title = "Futures Trader - Binance Testnet"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)

	return l
}

// formField is a single labelled input in an order form.
type formField struct {
	label string
	input textinput.Model
}

func newField(label, placeholder, value string) formField {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 32
	ti.Width = 30
	ti.Prompt = "> "

	if value != "" {
		ti.SetValue(value)
	}

	return formField{label: label, input: ti}
}

// newFormFields builds the input sequence for a menu action. Actions without
// inputs return nil and run immediately.
func newFormFields(action menuAction, defaultSymbol string) []formField {
	symbol := newField("Symbol", "BTCUSDT", defaultSymbol)
	side := newField("Side (BUY/SELL)", "BUY", "")
	quantity := newField("Quantity", "0.001", "")

	switch action {
	case actionPrice, actionOpenOrders, actionCancelAll:
		return []formField{symbol}

	case actionPositions:
		return []formField{newField("Symbol (blank for all)", "BTCUSDT", defaultSymbol)}

	case actionMarketOrder:
		return []formField{symbol, side, quantity}

	case actionLimitOrder:
		return []formField{symbol, side, quantity, newField("Limit Price", "50000", "")}

	case actionStopLimitOrder:
		return []formField{symbol, side, quantity, newField("Stop Price", "50000", ""), newField("Limit Price", "49500", "")}

	case actionStopMarketOrder:
		return []formField{symbol, side, quantity, newField("Stop Price", "45000", "")}

	case actionCancelOrder:
		return []formField{symbol, newField("Order ID", "12345", "")}

	default:
		return nil
	}
}

// isOrderAction reports whether the action places an order.
func isOrderAction(action menuAction) bool {
	switch action {
	case actionMarketOrder, actionLimitOrder, actionStopLimitOrder, actionStopMarketOrder:
		return true
	default:
		return false
	}
}

// isStopAction reports whether the action needs a stop price, and therefore
// a current-price hint while the form is filled in.
func isStopAction(action menuAction) bool {
	return action == actionStopLimitOrder || action == actionStopMarketOrder
}

// parsePositiveFloat parses a form value into a float64.
func parsePositiveFloat(value string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(value), 64)
}

// normalizeSymbol uppercases and trims a symbol entered in a form.
func normalizeSymbol(value string) string {
	return strings.ToUpper(strings.TrimSpace(value))
}
