// Package validation decides whether intended order parameters are
// well-formed and economically coherent before they are sent to the
// exchange. It is pure: the only external effect is the injected price
// lookup, and every rejection is returned as a typed error whose Message
// is meant to be shown to the user verbatim.
package validation

import (
	"context"

	"github.com/moznion/go-optional"
	"github.com/quantbench/futures-trader/internal/types"
	"github.com/quantbench/futures-trader/pkg/errors"
)

// PriceLookup returns the current market price for a symbol, or None when
// no price is obtainable. Lookup failures are represented as None, never as
// an error: the directional checks are best-effort and must not block
// submission when price data is unavailable.
type PriceLookup func(ctx context.Context, symbol string) optional.Option[float64]

// stopRule captures the per-side directional constraints for stop orders.
// The limit-vs-stop relation for SELL STOP_LIMIT (limit >= stop) follows the
// exchange's convention for sell stops; it is kept table-driven so the
// policy can be revisited per side.
type stopRule struct {
	stopOK  func(stop, market float64) bool
	stopMsg string // formatted with (stop, market)

	limitOK  func(limit, stop float64) bool
	limitMsg string // formatted with (limit, stop)
}

var stopRules = map[types.Side]stopRule{
	types.SideBuy: {
		stopOK:   func(stop, market float64) bool { return stop > market },
		stopMsg:  "for BUY stop orders, stop price (%.2f) must be above current market price (%.2f): stop orders trigger when the price rises to the stop price",
		limitOK:  func(limit, stop float64) bool { return limit <= stop },
		limitMsg: "for BUY STOP_LIMIT orders, limit price (%.2f) must be at or below stop price (%.2f): the limit price is where you buy after the stop triggers",
	},
	types.SideSell: {
		stopOK:   func(stop, market float64) bool { return stop < market },
		stopMsg:  "for SELL stop orders, stop price (%.2f) must be below current market price (%.2f): stop orders trigger when the price falls to the stop price",
		limitOK:  func(limit, stop float64) bool { return limit >= stop },
		limitMsg: "for SELL STOP_LIMIT orders, limit price (%.2f) must be at or above stop price (%.2f): the limit price is where you sell after the stop triggers",
	},
}

// ValidateOrder runs an ordered sequence of checks over the order
// parameters and returns nil when the order may be submitted. The first
// failing check short-circuits; its typed error carries the reason the
// caller must surface. Checks run from structural (side, type, quantity,
// required prices) to semantic (stop/limit direction relative to the
// current market price). The market-relative checks are skipped entirely
// when the lookup yields no price, because the exchange is the final
// authority on pricing and a transient data-feed gap must not disable
// trading.
func ValidateOrder(ctx context.Context, order types.OrderRequest, lookup PriceLookup) error {
	if !order.Side.IsValid() {
		return errors.New(errors.ErrCodeUnsupportedSide, "side must be BUY or SELL")
	}

	if !order.Type.IsValid() {
		return errors.New(errors.ErrCodeUnsupportedOrderType, "unsupported order type")
	}

	if order.Quantity <= 0 {
		return errors.New(errors.ErrCodeInvalidQuantity, "quantity must be greater than 0")
	}

	if order.Type.RequiresLimitPrice() && !isPositive(order.LimitPrice) {
		return errors.Newf(errors.ErrCodeMissingLimitPrice, "%s orders require a valid price", order.Type)
	}

	if !order.Type.RequiresStopPrice() {
		return nil
	}

	if !isPositive(order.StopPrice) {
		return errors.Newf(errors.ErrCodeMissingStopPrice, "%s orders require a valid stop price", order.Type)
	}

	stop := order.StopPrice.Unwrap()
	rule := stopRules[order.Side]

	market, ok := currentPrice(ctx, order.Symbol, lookup)
	if !ok {
		return nil
	}

	if !rule.stopOK(stop, market) {
		return errors.Newf(errors.ErrCodeStopPriceDirection, rule.stopMsg, stop, market)
	}

	if order.Type == types.OrderTypeStopLimit {
		if limit := order.LimitPrice.Unwrap(); !rule.limitOK(limit, stop) {
			return errors.Newf(errors.ErrCodeLimitPriceDirection, rule.limitMsg, limit, stop)
		}
	}

	return nil
}

// currentPrice resolves the market price through the lookup. A nil lookup
// or a non-positive result counts as "no price available".
func currentPrice(ctx context.Context, symbol string, lookup PriceLookup) (float64, bool) {
	if lookup == nil {
		return 0, false
	}

	price := lookup(ctx, symbol)
	if price.IsNone() || price.Unwrap() <= 0 {
		return 0, false
	}

	return price.Unwrap(), true
}

func isPositive(v optional.Option[float64]) bool {
	return v.IsSome() && v.Unwrap() > 0
}
