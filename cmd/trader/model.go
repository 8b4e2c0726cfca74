package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/moznion/go-optional"
	"github.com/quantbench/futures-trader/internal/exchange"
	"github.com/quantbench/futures-trader/internal/types"
	"github.com/quantbench/futures-trader/internal/validation"
	"github.com/quantbench/futures-trader/pkg/errors"
)

// Application states.
const (
	StateMenu = iota
	StateForm
	StateWorking
	StateResult
)

// Model is the main Bubble Tea model for the interactive trader.
type Model struct {
	state         int
	menu          list.Model
	action        menuAction
	fields        []formField
	fieldIndex    int
	priceHint     optional.Option[float64]
	result        string
	err           error
	provider      exchange.TradingProvider
	defaultSymbol string
	width         int
	height        int
}

// NewModel creates a new Model with initial state.
func NewModel(provider exchange.TradingProvider, defaultSymbol string) Model {
	return Model{
		state:         StateMenu,
		menu:          NewMenuList(),
		provider:      provider,
		defaultSymbol: defaultSymbol,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "q":
			// Only quit on 'q' if not in text input mode
			if m.state != StateForm {
				return m, tea.Quit
			}
		case "esc":
			return m.handleEsc()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.menu.SetSize(msg.Width, msg.Height-4)

		return m, nil

	case resultMsg:
		m.state = StateResult
		m.result = msg.Output
		m.err = nil

		return m, nil

	case opErrorMsg:
		m.state = StateResult
		m.result = ""
		m.err = msg.Err

		return m, nil

	case priceHintMsg:
		m.priceHint = msg.Price

		return m, nil
	}

	switch m.state {
	case StateMenu:
		return m.updateMenu(msg)
	case StateForm:
		return m.updateForm(msg)
	}

	return m, nil
}

func (m Model) handleEsc() (tea.Model, tea.Cmd) {
	switch m.state {
	case StateForm, StateResult:
		m.state = StateMenu
		m.fields = nil
		m.fieldIndex = 0
		m.priceHint = optional.None[float64]()
		m.result = ""
		m.err = nil
	}

	return m, nil
}

func (m Model) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "enter" {
		if item, ok := m.menu.SelectedItem().(menuItem); ok {
			return m.startAction(item.action)
		}
	}

	var cmd tea.Cmd
	m.menu, cmd = m.menu.Update(msg)

	return m, cmd
}

// startAction transitions to the form for an action, or runs it directly
// when the action takes no inputs.
func (m Model) startAction(action menuAction) (tea.Model, tea.Cmd) {
	m.action = action
	m.fields = newFormFields(action, m.defaultSymbol)
	m.fieldIndex = 0
	m.priceHint = optional.None[float64]()

	if len(m.fields) == 0 {
		m.state = StateWorking

		return m, m.runAction(nil)
	}

	m.state = StateForm
	m.fields[0].input.Focus()

	return m, textinput.Blink
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "enter" {
		m.fields[m.fieldIndex].input.Blur()

		if m.fieldIndex < len(m.fields)-1 {
			m.fieldIndex++
			m.fields[m.fieldIndex].input.Focus()

			var cmd tea.Cmd
			// Fetch the current price once the symbol is known, so stop
			// price fields can show where the market is.
			if m.fieldIndex == 1 && isStopAction(m.action) {
				cmd = m.fetchPriceHint(normalizeSymbol(m.fields[0].input.Value()))
			}

			return m, tea.Batch(textinput.Blink, cmd)
		}

		values := make([]string, len(m.fields))
		for i := range m.fields {
			values[i] = m.fields[i].input.Value()
		}

		m.state = StateWorking

		return m, m.runAction(values)
	}

	var cmd tea.Cmd
	m.fields[m.fieldIndex].input, cmd = m.fields[m.fieldIndex].input.Update(msg)

	return m, cmd
}

// fetchPriceHint returns a command that resolves the current market price
// for display while the form is filled in.
func (m Model) fetchPriceHint(symbol string) tea.Cmd {
	provider := m.provider

	return func() tea.Msg {
		return priceHintMsg{Symbol: symbol, Price: provider.PriceLookup()(context.Background(), symbol)}
	}
}

// runAction returns a command that executes the selected action against the
// exchange and resolves to a resultMsg or opErrorMsg.
func (m Model) runAction(values []string) tea.Cmd {
	action := m.action
	provider := m.provider

	return func() tea.Msg {
		ctx := context.Background()

		switch action {
		case actionBalance:
			balances, err := provider.GetBalances(ctx)
			if err != nil {
				return opErrorMsg{Err: err}
			}

			return resultMsg{Output: RenderBalances(balances)}

		case actionPrice:
			symbol := normalizeSymbol(values[0])

			price, err := provider.GetPrice(ctx, symbol)
			if err != nil {
				return opErrorMsg{Err: err}
			}

			return resultMsg{Output: RenderPrice(symbol, price)}

		case actionOpenOrders:
			symbol := normalizeSymbol(values[0])

			orders, err := provider.GetOpenOrders(ctx, symbol)
			if err != nil {
				return opErrorMsg{Err: err}
			}

			return resultMsg{Output: RenderOpenOrders(symbol, orders)}

		case actionPositions:
			positions, err := provider.GetPositions(ctx, normalizeSymbol(values[0]))
			if err != nil {
				return opErrorMsg{Err: err}
			}

			return resultMsg{Output: RenderPositions(positions)}

		case actionCancelOrder:
			symbol := normalizeSymbol(values[0])

			orderID, err := strconv.ParseInt(strings.TrimSpace(values[1]), 10, 64)
			if err != nil {
				return opErrorMsg{Err: errors.Newf(errors.ErrCodeInvalidParameter, "invalid order ID: %s", values[1])}
			}

			if err := provider.CancelOrder(ctx, symbol, orderID); err != nil {
				return opErrorMsg{Err: err}
			}

			return resultMsg{Output: fmt.Sprintf("Canceled order %d on %s\n", orderID, symbol)}

		case actionCancelAll:
			symbol := normalizeSymbol(values[0])

			if err := provider.CancelAllOrders(ctx, symbol); err != nil {
				return opErrorMsg{Err: err}
			}

			return resultMsg{Output: fmt.Sprintf("Canceled all open orders on %s\n", symbol)}

		default:
			order, err := buildOrderRequest(action, values)
			if err != nil {
				return opErrorMsg{Err: err}
			}

			if err := validation.ValidateOrder(ctx, order, provider.PriceLookup()); err != nil {
				return opErrorMsg{Err: err}
			}

			placed, err := provider.PlaceOrder(ctx, order)
			if err != nil {
				return opErrorMsg{Err: err}
			}

			return resultMsg{Output: RenderPlacedOrder(placed)}
		}
	}
}

// buildOrderRequest converts form values into an order request. Field order
// follows newFormFields: symbol, side, quantity, then prices by type.
func buildOrderRequest(action menuAction, values []string) (types.OrderRequest, error) {
	side, err := types.ParseSide(values[1])
	if err != nil {
		return types.OrderRequest{}, err
	}

	quantity, err := parsePositiveFloat(values[2])
	if err != nil {
		return types.OrderRequest{}, errors.Newf(errors.ErrCodeInvalidParameter, "invalid quantity: %s", values[2])
	}

	order := types.OrderRequest{
		Symbol:   normalizeSymbol(values[0]),
		Side:     side,
		Quantity: quantity,
	}

	parsePrice := func(value, label string) (optional.Option[float64], error) {
		price, err := parsePositiveFloat(value)
		if err != nil {
			return optional.None[float64](), errors.Newf(errors.ErrCodeInvalidParameter, "invalid %s: %s", label, value)
		}

		return optional.Some(price), nil
	}

	switch action {
	case actionMarketOrder:
		order.Type = types.OrderTypeMarket

	case actionLimitOrder:
		order.Type = types.OrderTypeLimit

		if order.LimitPrice, err = parsePrice(values[3], "limit price"); err != nil {
			return types.OrderRequest{}, err
		}

	case actionStopLimitOrder:
		order.Type = types.OrderTypeStopLimit

		if order.StopPrice, err = parsePrice(values[3], "stop price"); err != nil {
			return types.OrderRequest{}, err
		}

		if order.LimitPrice, err = parsePrice(values[4], "limit price"); err != nil {
			return types.OrderRequest{}, err
		}

	case actionStopMarketOrder:
		order.Type = types.OrderTypeStopMarket

		if order.StopPrice, err = parsePrice(values[3], "stop price"); err != nil {
			return types.OrderRequest{}, err
		}

	default:
		return types.OrderRequest{}, errors.Newf(errors.ErrCodeInvalidParameter, "action does not place orders")
	}

	return order, nil
}

// View implements tea.Model.
func (m Model) View() string {
	var s strings.Builder

	switch m.state {
	case StateMenu:
		s.WriteString(m.menu.View())
		s.WriteString("\n")
		s.WriteString(HelpStyle.Render("Press Enter to select, q to quit"))

	case StateForm:
		s.WriteString(TitleStyle.Render(m.formTitle()))
		s.WriteString("\n\n")

		if isStopAction(m.action) && m.fieldIndex >= 1 {
			s.WriteString(HintStyle.Render(m.priceHintLine()))
			s.WriteString("\n\n")
		}

		for i := 0; i <= m.fieldIndex; i++ {
			s.WriteString(LabelStyle.Render(m.fields[i].label + ":"))
			s.WriteString("\n")
			s.WriteString(m.fields[i].input.View())
			s.WriteString("\n")
		}

		s.WriteString("\n")
		s.WriteString(HelpStyle.Render("Press Enter to confirm, Esc to go back"))

	case StateWorking:
		s.WriteString(TitleStyle.Render(m.formTitle()))
		s.WriteString("\n\nWorking...\n")

	case StateResult:
		s.WriteString(TitleStyle.Render(m.formTitle()))
		s.WriteString("\n\n")

		if m.err != nil {
			s.WriteString(ErrorStyle.Render("Rejected: " + errors.Reason(m.err)))
			s.WriteString("\n")
		} else {
			s.WriteString(m.result)
		}

		s.WriteString("\n")
		s.WriteString(HelpStyle.Render("Esc: back to menu | q: quit"))
	}

	return s.String()
}

func (m Model) formTitle() string {
	for _, item := range m.menu.Items() {
		if mi, ok := item.(menuItem); ok && mi.action == m.action {
			return mi.name
		}
	}

	return "Futures Trader"
}

// priceHintLine renders the current market price with directional guidance
// for stop orders.
func (m Model) priceHintLine() string {
	if m.priceHint.IsNone() {
		return "Current price unavailable; stop direction will not be checked"
	}

	return fmt.Sprintf("Current price: %.2f (BUY stops trigger above, SELL stops trigger below)", m.priceHint.Unwrap())
}
