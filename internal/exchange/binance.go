package exchange

import (
	"context"
	"strconv"
	"time"

	"github.com/adshao/go-binance/v2/futures"
	"github.com/google/uuid"
	"github.com/moznion/go-optional"
	"github.com/quantbench/futures-trader/internal/types"
	"github.com/quantbench/futures-trader/internal/utils"
	"github.com/quantbench/futures-trader/internal/validation"
	"github.com/quantbench/futures-trader/pkg/errors"
)

// Service interfaces for mocking the Binance futures API

// CreateOrderService interface for creating orders.
type CreateOrderService interface {
	Symbol(symbol string) CreateOrderService
	Side(side futures.SideType) CreateOrderService
	Type(orderType futures.OrderType) CreateOrderService
	Quantity(quantity string) CreateOrderService
	Price(price string) CreateOrderService
	StopPrice(stopPrice string) CreateOrderService
	TimeInForce(tif futures.TimeInForceType) CreateOrderService
	NewClientOrderID(id string) CreateOrderService
	Do(ctx context.Context) (*futures.CreateOrderResponse, error)
}

// GetBalanceService interface for fetching account balances.
type GetBalanceService interface {
	Do(ctx context.Context) ([]*futures.Balance, error)
}

// ListPricesService interface for fetching symbol ticker prices.
type ListPricesService interface {
	Symbol(symbol string) ListPricesService
	Do(ctx context.Context) ([]*futures.SymbolPrice, error)
}

// ListOpenOrdersService interface for listing open orders.
type ListOpenOrdersService interface {
	Symbol(symbol string) ListOpenOrdersService
	Do(ctx context.Context) ([]*futures.Order, error)
}

// GetPositionRiskService interface for fetching position information.
type GetPositionRiskService interface {
	Symbol(symbol string) GetPositionRiskService
	Do(ctx context.Context) ([]*futures.PositionRisk, error)
}

// CancelOrderService interface for canceling a single order.
type CancelOrderService interface {
	Symbol(symbol string) CancelOrderService
	OrderID(orderID int64) CancelOrderService
	Do(ctx context.Context) (*futures.CancelOrderResponse, error)
}

// CancelAllOpenOrdersService interface for canceling all open orders for a symbol.
type CancelAllOpenOrdersService interface {
	Symbol(symbol string) CancelAllOpenOrdersService
	Do(ctx context.Context) error
}

// PingService interface for connectivity checks.
type PingService interface {
	Do(ctx context.Context) error
}

// BinanceFuturesClient abstracts the futures client for testing.
type BinanceFuturesClient interface {
	NewCreateOrderService() CreateOrderService
	NewGetBalanceService() GetBalanceService
	NewListPricesService() ListPricesService
	NewListOpenOrdersService() ListOpenOrdersService
	NewGetPositionRiskService() GetPositionRiskService
	NewCancelOrderService() CancelOrderService
	NewCancelAllOpenOrdersService() CancelAllOpenOrdersService
	NewPingService() PingService
}

// realBinanceFuturesClient wraps the actual futures.Client.
type realBinanceFuturesClient struct {
	client *futures.Client
}

func (r *realBinanceFuturesClient) NewCreateOrderService() CreateOrderService {
	return &realCreateOrderService{service: r.client.NewCreateOrderService()}
}

func (r *realBinanceFuturesClient) NewGetBalanceService() GetBalanceService {
	return &realGetBalanceService{service: r.client.NewGetBalanceService()}
}

func (r *realBinanceFuturesClient) NewListPricesService() ListPricesService {
	return &realListPricesService{service: r.client.NewListPricesService()}
}

func (r *realBinanceFuturesClient) NewListOpenOrdersService() ListOpenOrdersService {
	return &realListOpenOrdersService{service: r.client.NewListOpenOrdersService()}
}

func (r *realBinanceFuturesClient) NewGetPositionRiskService() GetPositionRiskService {
	return &realGetPositionRiskService{service: r.client.NewGetPositionRiskService()}
}

func (r *realBinanceFuturesClient) NewCancelOrderService() CancelOrderService {
	return &realCancelOrderService{service: r.client.NewCancelOrderService()}
}

func (r *realBinanceFuturesClient) NewCancelAllOpenOrdersService() CancelAllOpenOrdersService {
	return &realCancelAllOpenOrdersService{service: r.client.NewCancelAllOpenOrdersService()}
}

func (r *realBinanceFuturesClient) NewPingService() PingService {
	return &realPingService{service: r.client.NewPingService()}
}

// Real service wrappers

type realCreateOrderService struct {
	service *futures.CreateOrderService
}

func (s *realCreateOrderService) Symbol(symbol string) CreateOrderService {
	s.service = s.service.Symbol(symbol)

	return s
}

func (s *realCreateOrderService) Side(side futures.SideType) CreateOrderService {
	s.service = s.service.Side(side)

	return s
}

func (s *realCreateOrderService) Type(orderType futures.OrderType) CreateOrderService {
	s.service = s.service.Type(orderType)

	return s
}

func (s *realCreateOrderService) Quantity(quantity string) CreateOrderService {
	s.service = s.service.Quantity(quantity)

	return s
}

func (s *realCreateOrderService) Price(price string) CreateOrderService {
	s.service = s.service.Price(price)

	return s
}

func (s *realCreateOrderService) StopPrice(stopPrice string) CreateOrderService {
	s.service = s.service.StopPrice(stopPrice)

	return s
}

func (s *realCreateOrderService) TimeInForce(tif futures.TimeInForceType) CreateOrderService {
	s.service = s.service.TimeInForce(tif)

	return s
}

func (s *realCreateOrderService) NewClientOrderID(id string) CreateOrderService {
	s.service = s.service.NewClientOrderID(id)

	return s
}

func (s *realCreateOrderService) Do(ctx context.Context) (*futures.CreateOrderResponse, error) {
	return s.service.Do(ctx)
}

type realGetBalanceService struct {
	service *futures.GetBalanceService
}

func (s *realGetBalanceService) Do(ctx context.Context) ([]*futures.Balance, error) {
	return s.service.Do(ctx)
}

type realListPricesService struct {
	service *futures.ListPricesService
}

func (s *realListPricesService) Symbol(symbol string) ListPricesService {
	s.service = s.service.Symbol(symbol)

	return s
}

func (s *realListPricesService) Do(ctx context.Context) ([]*futures.SymbolPrice, error) {
	return s.service.Do(ctx)
}

type realListOpenOrdersService struct {
	service *futures.ListOpenOrdersService
}

func (s *realListOpenOrdersService) Symbol(symbol string) ListOpenOrdersService {
	s.service = s.service.Symbol(symbol)

	return s
}

func (s *realListOpenOrdersService) Do(ctx context.Context) ([]*futures.Order, error) {
	return s.service.Do(ctx)
}

type realGetPositionRiskService struct {
	service *futures.GetPositionRiskService
}

func (s *realGetPositionRiskService) Symbol(symbol string) GetPositionRiskService {
	s.service = s.service.Symbol(symbol)

	return s
}

func (s *realGetPositionRiskService) Do(ctx context.Context) ([]*futures.PositionRisk, error) {
	return s.service.Do(ctx)
}

type realCancelOrderService struct {
	service *futures.CancelOrderService
}

func (s *realCancelOrderService) Symbol(symbol string) CancelOrderService {
	s.service = s.service.Symbol(symbol)

	return s
}

func (s *realCancelOrderService) OrderID(orderID int64) CancelOrderService {
	s.service = s.service.OrderID(orderID)

	return s
}

func (s *realCancelOrderService) Do(ctx context.Context) (*futures.CancelOrderResponse, error) {
	return s.service.Do(ctx)
}

type realCancelAllOpenOrdersService struct {
	service *futures.CancelAllOpenOrdersService
}

func (s *realCancelAllOpenOrdersService) Symbol(symbol string) CancelAllOpenOrdersService {
	s.service = s.service.Symbol(symbol)

	return s
}

func (s *realCancelAllOpenOrdersService) Do(ctx context.Context) error {
	return s.service.Do(ctx)
}

type realPingService struct {
	service *futures.PingService
}

func (s *realPingService) Do(ctx context.Context) error {
	return s.service.Do(ctx)
}

// BinanceFuturesProvider implements TradingProvider against the Binance
// USDT-M futures API. It is stateless - all data is fetched directly from
// the exchange.
type BinanceFuturesProvider struct {
	client            BinanceFuturesClient
	quantityPrecision int32
}

// NewBinanceFuturesProvider creates a new Binance futures provider.
// With config.Testnet set, requests go to the Binance Futures testnet.
// If config.BaseURL is set, it takes precedence over the testnet switch.
func NewBinanceFuturesProvider(config Config) (*BinanceFuturesProvider, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	if config.Testnet {
		futures.UseTestnet = true
	}

	client := futures.NewClient(config.APIKey, config.SecretKey)

	if config.BaseURL != "" {
		client.BaseURL = config.BaseURL
	}

	return &BinanceFuturesProvider{
		client:            &realBinanceFuturesClient{client: client},
		quantityPrecision: utils.DefaultQuantityPrecision,
	}, nil
}

// newBinanceFuturesProviderWithClient creates a provider with a custom
// client. This is used for testing with mock clients.
func newBinanceFuturesProviderWithClient(client BinanceFuturesClient) *BinanceFuturesProvider {
	return &BinanceFuturesProvider{
		client:            client,
		quantityPrecision: utils.DefaultQuantityPrecision,
	}
}

// CheckConnection verifies connectivity to the futures API.
func (b *BinanceFuturesProvider) CheckConnection(ctx context.Context) error {
	if err := b.client.NewPingService().Do(ctx); err != nil {
		return errors.Wrap(errors.ErrCodeConnectionFailed, "failed to connect to Binance Futures API", err)
	}

	return nil
}

// GetBalances returns all asset balances on the futures account.
func (b *BinanceFuturesProvider) GetBalances(ctx context.Context) ([]types.Balance, error) {
	futuresBalances, err := b.client.NewGetBalanceService().Do(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeAccountFetchFailed, "failed to fetch account balance from Binance", err)
	}

	balances := make([]types.Balance, 0, len(futuresBalances))

	for _, fb := range futuresBalances {
		total, _ := strconv.ParseFloat(fb.Balance, 64)
		available, _ := strconv.ParseFloat(fb.AvailableBalance, 64)

		balances = append(balances, types.Balance{
			Asset:     fb.Asset,
			Balance:   total,
			Available: available,
		})
	}

	return balances, nil
}

// GetPrice returns the current ticker price for a symbol.
func (b *BinanceFuturesProvider) GetPrice(ctx context.Context, symbol string) (float64, error) {
	prices, err := b.client.NewListPricesService().Symbol(symbol).Do(ctx)
	if err != nil {
		return 0, errors.Wrapf(errors.ErrCodePriceFetchFailed, err, "failed to fetch price for %s", symbol)
	}

	if len(prices) == 0 {
		return 0, errors.Newf(errors.ErrCodePriceFetchFailed, "no price returned for %s", symbol)
	}

	price, err := strconv.ParseFloat(prices[0].Price, 64)
	if err != nil || price <= 0 {
		return 0, errors.Newf(errors.ErrCodePriceFetchFailed, "invalid price %q returned for %s", prices[0].Price, symbol)
	}

	return price, nil
}

// PriceLookup adapts GetPrice to the validator's best-effort contract:
// any lookup failure becomes "no price available" so validation can skip
// its market-relative checks instead of blocking submission.
func (b *BinanceFuturesProvider) PriceLookup() validation.PriceLookup {
	return func(ctx context.Context, symbol string) optional.Option[float64] {
		price, err := b.GetPrice(ctx, symbol)
		if err != nil {
			return optional.None[float64]()
		}

		return optional.Some(price)
	}
}

// PlaceOrder submits a single order. Callers are expected to have run
// validation.ValidateOrder first; the mapping below still rejects requests
// it cannot express against the exchange API.
func (b *BinanceFuturesProvider) PlaceOrder(ctx context.Context, order types.OrderRequest) (types.PlacedOrder, error) {
	var side futures.SideType

	switch order.Side {
	case types.SideBuy:
		side = futures.SideTypeBuy
	case types.SideSell:
		side = futures.SideTypeSell
	default:
		return types.PlacedOrder{}, errors.Newf(errors.ErrCodeUnsupportedSide, "unsupported order side: %s", order.Side)
	}

	// STOP_LIMIT is the exchange's "STOP" type: a stop trigger that
	// submits a limit order once it fires.
	var orderType futures.OrderType

	switch order.Type {
	case types.OrderTypeMarket:
		orderType = futures.OrderTypeMarket
	case types.OrderTypeLimit:
		orderType = futures.OrderTypeLimit
	case types.OrderTypeStopLimit:
		orderType = futures.OrderTypeStop
	case types.OrderTypeStopMarket:
		orderType = futures.OrderTypeStopMarket
	default:
		return types.PlacedOrder{}, errors.Newf(errors.ErrCodeUnsupportedOrderType, "unsupported order type: %s", order.Type)
	}

	if order.Quantity <= 0 {
		return types.PlacedOrder{}, errors.New(errors.ErrCodeInvalidQuantity, "order quantity must be greater than zero")
	}

	if !utils.PositiveQuantity(order.Quantity, b.quantityPrecision) {
		return types.PlacedOrder{}, errors.Newf(errors.ErrCodeInvalidQuantity,
			"order quantity %.8f is too small after flooring to %d decimal places",
			order.Quantity, b.quantityPrecision)
	}

	orderService := b.client.NewCreateOrderService().
		Symbol(order.Symbol).
		Side(side).
		Type(orderType).
		Quantity(utils.FormatQuantity(order.Quantity, b.quantityPrecision)).
		NewClientOrderID(uuid.New().String())

	if order.Type.RequiresLimitPrice() {
		limit, err := order.LimitPrice.Take()
		if err != nil {
			return types.PlacedOrder{}, errors.Newf(errors.ErrCodeMissingLimitPrice, "%s orders require a valid price", order.Type)
		}

		orderService = orderService.
			Price(utils.FormatPrice(limit)).
			TimeInForce(futures.TimeInForceTypeGTC)
	}

	if order.Type.RequiresStopPrice() {
		stop, err := order.StopPrice.Take()
		if err != nil {
			return types.PlacedOrder{}, errors.Newf(errors.ErrCodeMissingStopPrice, "%s orders require a valid stop price", order.Type)
		}

		orderService = orderService.StopPrice(utils.FormatPrice(stop))
	}

	response, err := orderService.Do(ctx)
	if err != nil {
		return types.PlacedOrder{}, errors.Wrap(errors.ErrCodeOrderFailed, "failed to place order on Binance", err)
	}

	return convertCreateOrderResponse(response, order), nil
}

// GetOpenOrders returns all resting orders for a symbol.
func (b *BinanceFuturesProvider) GetOpenOrders(ctx context.Context, symbol string) ([]types.OpenOrder, error) {
	futuresOrders, err := b.client.NewListOpenOrdersService().Symbol(symbol).Do(ctx)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeOrderFailed, err, "failed to fetch open orders for %s", symbol)
	}

	orders := make([]types.OpenOrder, 0, len(futuresOrders))

	for _, fo := range futuresOrders {
		orders = append(orders, convertFuturesOrder(fo))
	}

	return orders, nil
}

// GetPositions returns positions with a nonzero amount. An empty symbol
// returns positions across all symbols.
func (b *BinanceFuturesProvider) GetPositions(ctx context.Context, symbol string) ([]types.Position, error) {
	service := b.client.NewGetPositionRiskService()
	if symbol != "" {
		service = service.Symbol(symbol)
	}

	risks, err := service.Do(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodePositionFetchFailed, "failed to fetch positions from Binance", err)
	}

	positions := make([]types.Position, 0, len(risks))

	for _, risk := range risks {
		amount, _ := strconv.ParseFloat(risk.PositionAmt, 64)
		if amount == 0 {
			continue
		}

		entryPrice, _ := strconv.ParseFloat(risk.EntryPrice, 64)
		markPrice, _ := strconv.ParseFloat(risk.MarkPrice, 64)
		unrealized, _ := strconv.ParseFloat(risk.UnRealizedProfit, 64)
		leverage, _ := strconv.ParseFloat(risk.Leverage, 64)

		positions = append(positions, types.Position{
			Symbol:        risk.Symbol,
			Amount:        amount,
			EntryPrice:    entryPrice,
			MarkPrice:     markPrice,
			UnrealizedPnL: unrealized,
			Leverage:      leverage,
		})
	}

	return positions, nil
}

// CancelOrder cancels a single order by exchange order ID.
func (b *BinanceFuturesProvider) CancelOrder(ctx context.Context, symbol string, orderID int64) error {
	_, err := b.client.NewCancelOrderService().
		Symbol(symbol).
		OrderID(orderID).
		Do(ctx)
	if err != nil {
		return errors.Wrapf(errors.ErrCodeCancelFailed, err, "failed to cancel order %d for %s", orderID, symbol)
	}

	return nil
}

// CancelAllOrders cancels every open order for a symbol.
func (b *BinanceFuturesProvider) CancelAllOrders(ctx context.Context, symbol string) error {
	if err := b.client.NewCancelAllOpenOrdersService().Symbol(symbol).Do(ctx); err != nil {
		return errors.Wrapf(errors.ErrCodeCancelFailed, err, "failed to cancel all orders for %s", symbol)
	}

	return nil
}

// Helper functions

// mapFuturesOrderStatus maps a Binance futures order status to our OrderStatus type.
func mapFuturesOrderStatus(status futures.OrderStatusType) types.OrderStatus {
	switch status {
	case futures.OrderStatusTypeNew:
		return types.OrderStatusNew
	case futures.OrderStatusTypePartiallyFilled:
		return types.OrderStatusPartiallyFilled
	case futures.OrderStatusTypeFilled:
		return types.OrderStatusFilled
	case futures.OrderStatusTypeCanceled:
		return types.OrderStatusCanceled
	case futures.OrderStatusTypeRejected:
		return types.OrderStatusRejected
	case futures.OrderStatusTypeExpired:
		return types.OrderStatusExpired
	default:
		return types.OrderStatus(status)
	}
}

// convertCreateOrderResponse converts the exchange acknowledgement into a PlacedOrder.
func convertCreateOrderResponse(response *futures.CreateOrderResponse, request types.OrderRequest) types.PlacedOrder {
	quantity, _ := strconv.ParseFloat(response.OrigQuantity, 64)

	price := optional.None[float64]()
	if p, err := strconv.ParseFloat(response.Price, 64); err == nil && p > 0 {
		price = optional.Some(p)
	}

	stopPrice := optional.None[float64]()
	if p, err := strconv.ParseFloat(response.StopPrice, 64); err == nil && p > 0 {
		stopPrice = optional.Some(p)
	}

	return types.PlacedOrder{
		OrderID:       response.OrderID,
		ClientOrderID: response.ClientOrderID,
		Symbol:        response.Symbol,
		Side:          request.Side,
		Type:          string(request.Type),
		Quantity:      quantity,
		Status:        mapFuturesOrderStatus(response.Status),
		Price:         price,
		StopPrice:     stopPrice,
	}
}

// convertFuturesOrder converts a Binance futures order to our OpenOrder type.
func convertFuturesOrder(fo *futures.Order) types.OpenOrder {
	quantity, _ := strconv.ParseFloat(fo.OrigQuantity, 64)
	price, _ := strconv.ParseFloat(fo.Price, 64)
	stopPrice, _ := strconv.ParseFloat(fo.StopPrice, 64)

	return types.OpenOrder{
		OrderID:   fo.OrderID,
		Symbol:    fo.Symbol,
		Side:      types.Side(fo.Side),
		Type:      string(fo.Type),
		Quantity:  quantity,
		Price:     price,
		StopPrice: stopPrice,
		Status:    mapFuturesOrderStatus(fo.Status),
		Time:      time.UnixMilli(fo.Time),
	}
}

// Ensure BinanceFuturesProvider implements TradingProvider.
var _ TradingProvider = (*BinanceFuturesProvider)(nil)
