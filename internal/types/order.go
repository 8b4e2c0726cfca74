package types

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/moznion/go-optional"
	"github.com/quantbench/futures-trader/pkg/errors"
)

type Side string

type OrderType string

type OrderStatus string

const (
	SideBuy  Side = "BUY"
	SideSell Side = "SELL"
)

const (
	OrderTypeMarket     OrderType = "MARKET"
	OrderTypeLimit      OrderType = "LIMIT"
	OrderTypeStopLimit  OrderType = "STOP_LIMIT"
	OrderTypeStopMarket OrderType = "STOP_MARKET"
)

const (
	OrderStatusNew             OrderStatus = "NEW"
	OrderStatusPartiallyFilled OrderStatus = "PARTIALLY_FILLED"
	OrderStatusFilled          OrderStatus = "FILLED"
	OrderStatusCanceled        OrderStatus = "CANCELED"
	OrderStatusRejected        OrderStatus = "REJECTED"
	OrderStatusExpired         OrderStatus = "EXPIRED"
)

// ParseSide normalizes a raw side string (case-insensitive) to a Side.
func ParseSide(raw string) (Side, error) {
	switch Side(strings.ToUpper(strings.TrimSpace(raw))) {
	case SideBuy:
		return SideBuy, nil
	case SideSell:
		return SideSell, nil
	default:
		return "", errors.New(errors.ErrCodeUnsupportedSide, "side must be BUY or SELL")
	}
}

// ParseOrderType normalizes a raw order type string (case-insensitive) to an OrderType.
func ParseOrderType(raw string) (OrderType, error) {
	switch OrderType(strings.ToUpper(strings.TrimSpace(raw))) {
	case OrderTypeMarket:
		return OrderTypeMarket, nil
	case OrderTypeLimit:
		return OrderTypeLimit, nil
	case OrderTypeStopLimit:
		return OrderTypeStopLimit, nil
	case OrderTypeStopMarket:
		return OrderTypeStopMarket, nil
	default:
		return "", errors.New(errors.ErrCodeUnsupportedOrderType, "unsupported order type")
	}
}

// IsValid reports whether the side is one of the recognized values.
func (s Side) IsValid() bool {
	return s == SideBuy || s == SideSell
}

// IsValid reports whether the order type is one of the recognized values.
func (t OrderType) IsValid() bool {
	switch t {
	case OrderTypeMarket, OrderTypeLimit, OrderTypeStopLimit, OrderTypeStopMarket:
		return true
	default:
		return false
	}
}

// RequiresLimitPrice reports whether the order type needs an execution price.
func (t OrderType) RequiresLimitPrice() bool {
	return t == OrderTypeLimit || t == OrderTypeStopLimit
}

// RequiresStopPrice reports whether the order type needs a trigger price.
func (t OrderType) RequiresStopPrice() bool {
	return t == OrderTypeStopLimit || t == OrderTypeStopMarket
}

// OrderRequest describes an order the user intends to place. Side and Type
// are expected to be canonical values produced by ParseSide/ParseOrderType;
// the validator rejects anything else.
type OrderRequest struct {
	Symbol   string    `yaml:"symbol" json:"symbol" validate:"required"`
	Side     Side      `yaml:"side" json:"side" validate:"required"`
	Type     OrderType `yaml:"type" json:"type" validate:"required"`
	Quantity float64   `yaml:"quantity" json:"quantity"`
	// LimitPrice is the execution price for LIMIT and STOP_LIMIT orders.
	LimitPrice optional.Option[float64] `yaml:"limit_price" json:"limit_price"`
	// StopPrice is the trigger price for STOP_LIMIT and STOP_MARKET orders.
	StopPrice optional.Option[float64] `yaml:"stop_price" json:"stop_price"`
}

// Validate checks the struct shape of the request. Order-type specific
// rules live in the validation package; this only guards required fields.
func (r *OrderRequest) Validate() error {
	validate := validator.New()
	if err := validate.Struct(r); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidOrder, "invalid order request", err)
	}

	return nil
}
