package exchange

import (
	"context"

	"github.com/quantbench/futures-trader/internal/types"
	"github.com/quantbench/futures-trader/internal/validation"
	"github.com/quantbench/futures-trader/pkg/errors"
)

// TradingProvider is the exchange surface the front ends talk to. The
// exchange remains the final authority on order acceptance: a request that
// passed local validation can still be rejected here (margin, tick size,
// rate limits).
type TradingProvider interface {
	// CheckConnection verifies connectivity and authentication.
	CheckConnection(ctx context.Context) error
	// GetBalances returns all asset balances on the account.
	GetBalances(ctx context.Context) ([]types.Balance, error)
	// GetPrice returns the current market price for a symbol.
	GetPrice(ctx context.Context, symbol string) (float64, error)
	// PriceLookup adapts GetPrice into the lookup shape order validation
	// consumes; failures resolve to None instead of an error.
	PriceLookup() validation.PriceLookup
	// PlaceOrder submits a single order and returns the exchange acknowledgement.
	PlaceOrder(ctx context.Context, order types.OrderRequest) (types.PlacedOrder, error)
	// GetOpenOrders returns all resting orders for a symbol.
	GetOpenOrders(ctx context.Context, symbol string) ([]types.OpenOrder, error)
	// GetPositions returns nonzero positions; an empty symbol means all symbols.
	GetPositions(ctx context.Context, symbol string) ([]types.Position, error)
	// CancelOrder cancels a single order by exchange order ID.
	CancelOrder(ctx context.Context, symbol string, orderID int64) error
	// CancelAllOrders cancels every open order for a symbol.
	CancelAllOrders(ctx context.Context, symbol string) error
}

type ProviderType string

const (
	ProviderBinanceTestnet ProviderType = "binance-testnet"
	ProviderBinanceLive    ProviderType = "binance-live"
)

type ProviderInfo struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
	Description string `json:"description"`
	IsTestnet   bool   `json:"isTestnet"`
}

var providerRegistry = map[ProviderType]ProviderInfo{
	ProviderBinanceTestnet: {
		Name:        string(ProviderBinanceTestnet),
		DisplayName: "Binance Futures Testnet",
		Description: "Binance USDT-M futures testnet with simulated funds",
		IsTestnet:   true,
	},
	ProviderBinanceLive: {
		Name:        string(ProviderBinanceLive),
		DisplayName: "Binance Futures Live",
		Description: "Binance USDT-M futures live environment with real funds",
		IsTestnet:   false,
	},
}

// GetSupportedProviders returns the names of all registered providers.
func GetSupportedProviders() []string {
	providers := make([]string, 0, len(providerRegistry))
	for providerType := range providerRegistry {
		providers = append(providers, string(providerType))
	}

	return providers
}

// GetProviderInfo returns metadata for a specific provider.
func GetProviderInfo(providerName string) (ProviderInfo, error) {
	info, exists := providerRegistry[ProviderType(providerName)]
	if !exists {
		return ProviderInfo{}, errors.Newf(errors.ErrCodeInvalidConfiguration, "unsupported trading provider: %s", providerName)
	}

	return info, nil
}

// NewTradingProvider creates a trading provider of the given type. The
// provider type decides the environment; any Testnet value already present
// in the config is overridden.
func NewTradingProvider(providerType ProviderType, config Config) (TradingProvider, error) {
	switch providerType {
	case ProviderBinanceTestnet:
		config.Testnet = true

		return NewBinanceFuturesProvider(config)

	case ProviderBinanceLive:
		config.Testnet = false

		return NewBinanceFuturesProvider(config)

	default:
		return nil, errors.Newf(errors.ErrCodeInvalidConfiguration, "unsupported trading provider: %s", providerType)
	}
}
