package types

import (
	"testing"

	"github.com/moznion/go-optional"
	"github.com/quantbench/futures-trader/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestParseSide(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expected    Side
		shouldError bool
	}{
		{
			name:     "uppercase buy",
			input:    "BUY",
			expected: SideBuy,
		},
		{
			name:     "lowercase sell",
			input:    "sell",
			expected: SideSell,
		},
		{
			name:     "mixed case with spaces",
			input:    "  Buy ",
			expected: SideBuy,
		},
		{
			name:        "unknown side",
			input:       "HOLD",
			shouldError: true,
		},
		{
			name:        "empty string",
			input:       "",
			shouldError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			side, err := ParseSide(tt.input)
			if tt.shouldError {
				assert.Error(t, err)
				assert.Equal(t, errors.ErrCodeUnsupportedSide, errors.GetCode(err))
				assert.Equal(t, "side must be BUY or SELL", errors.Reason(err))
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, side)
			}
		})
	}
}

func TestParseOrderType(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expected    OrderType
		shouldError bool
	}{
		{
			name:     "market",
			input:    "MARKET",
			expected: OrderTypeMarket,
		},
		{
			name:     "limit lowercase",
			input:    "limit",
			expected: OrderTypeLimit,
		},
		{
			name:     "stop limit",
			input:    "stop_limit",
			expected: OrderTypeStopLimit,
		},
		{
			name:     "stop market",
			input:    "STOP_MARKET",
			expected: OrderTypeStopMarket,
		},
		{
			name:        "unknown type",
			input:       "TRAILING_STOP",
			shouldError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orderType, err := ParseOrderType(tt.input)
			if tt.shouldError {
				assert.Error(t, err)
				assert.Equal(t, errors.ErrCodeUnsupportedOrderType, errors.GetCode(err))
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, orderType)
			}
		})
	}
}

func TestOrderTypeRequiredPrices(t *testing.T) {
	assert.False(t, OrderTypeMarket.RequiresLimitPrice())
	assert.False(t, OrderTypeMarket.RequiresStopPrice())

	assert.True(t, OrderTypeLimit.RequiresLimitPrice())
	assert.False(t, OrderTypeLimit.RequiresStopPrice())

	assert.True(t, OrderTypeStopLimit.RequiresLimitPrice())
	assert.True(t, OrderTypeStopLimit.RequiresStopPrice())

	assert.False(t, OrderTypeStopMarket.RequiresLimitPrice())
	assert.True(t, OrderTypeStopMarket.RequiresStopPrice())
}

func TestOrderRequestValidate(t *testing.T) {
	tests := []struct {
		name        string
		request     OrderRequest
		shouldError bool
	}{
		{
			name: "valid market request",
			request: OrderRequest{
				Symbol:     "BTCUSDT",
				Side:       SideBuy,
				Type:       OrderTypeMarket,
				Quantity:   0.001,
				LimitPrice: optional.None[float64](),
				StopPrice:  optional.None[float64](),
			},
			shouldError: false,
		},
		{
			name: "missing symbol",
			request: OrderRequest{
				Symbol:   "",
				Side:     SideBuy,
				Type:     OrderTypeMarket,
				Quantity: 0.001,
			},
			shouldError: true,
		},
		{
			name: "missing side",
			request: OrderRequest{
				Symbol:   "BTCUSDT",
				Side:     "",
				Type:     OrderTypeMarket,
				Quantity: 0.001,
			},
			shouldError: true,
		},
		{
			name: "missing type",
			request: OrderRequest{
				Symbol:   "BTCUSDT",
				Side:     SideSell,
				Type:     "",
				Quantity: 0.001,
			},
			shouldError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if tt.shouldError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
