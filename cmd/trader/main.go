package main

import (
	"context"
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/moznion/go-optional"
	"github.com/quantbench/futures-trader/internal/exchange"
	"github.com/quantbench/futures-trader/internal/logger"
	"github.com/quantbench/futures-trader/internal/types"
	"github.com/quantbench/futures-trader/internal/validation"
	"github.com/quantbench/futures-trader/pkg/errors"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

// tradeAction is the core logic executed by the CLI command. It resolves
// credentials, connects to the exchange, and either starts the interactive
// menu or runs the requested one-shot operations.
func tradeAction(ctx context.Context, cmd *cli.Command) error {
	l, err := logger.NewLoggerWithFile(cmd.String("log-file"))
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = l.Sync() }()

	config, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	providerType := exchange.ProviderBinanceTestnet
	if cmd.Bool("live") {
		providerType = exchange.ProviderBinanceLive
	}

	provider, err := exchange.NewTradingProvider(providerType, *config)
	if err != nil {
		return err
	}

	if err := provider.CheckConnection(ctx); err != nil {
		return err
	}

	l.Info("connected to exchange", zap.String("provider", string(providerType)))

	if cmd.Bool("interactive") {
		program := tea.NewProgram(NewModel(provider, cmd.String("symbol")), tea.WithAltScreen())
		if _, err := program.Run(); err != nil {
			return fmt.Errorf("interactive session failed: %w", err)
		}

		return nil
	}

	return runOneShot(ctx, cmd, provider, l)
}

// resolveConfig loads credentials from a config file when given, otherwise
// from flags with environment fallback.
func resolveConfig(cmd *cli.Command) (*exchange.Config, error) {
	if path := cmd.String("config"); path != "" {
		return exchange.LoadConfigFile(path)
	}

	return exchange.ResolveConfig(cmd.String("api-key"), cmd.String("api-secret"), !cmd.Bool("live"))
}

// runOneShot executes the non-interactive operations in a fixed order:
// balance first, then the requested query, order, and cancel operations.
func runOneShot(ctx context.Context, cmd *cli.Command, provider exchange.TradingProvider, l *logger.Logger) error {
	symbol := cmd.String("symbol")

	balances, err := provider.GetBalances(ctx)
	if err != nil {
		return err
	}

	fmt.Print(RenderBalances(balances))

	if cmd.Bool("show-price") {
		price, err := provider.GetPrice(ctx, symbol)
		if err != nil {
			return err
		}

		fmt.Print(RenderPrice(symbol, price))
	}

	if cmd.IsSet("side") || cmd.IsSet("type") {
		if err := placeOrderFromFlags(ctx, cmd, provider, l); err != nil {
			return err
		}
	}

	if cmd.Bool("show-orders") {
		orders, err := provider.GetOpenOrders(ctx, symbol)
		if err != nil {
			return err
		}

		fmt.Print(RenderOpenOrders(symbol, orders))
	}

	if cmd.Bool("show-positions") {
		positions, err := provider.GetPositions(ctx, symbol)
		if err != nil {
			return err
		}

		fmt.Print(RenderPositions(positions))
	}

	if cmd.IsSet("cancel-order") {
		orderID := cmd.Int("cancel-order")
		if err := provider.CancelOrder(ctx, symbol, orderID); err != nil {
			return err
		}

		l.Info("order canceled", zap.String("symbol", symbol), zap.Int64("order_id", orderID))
		fmt.Printf("Canceled order %d on %s\n", orderID, symbol)
	}

	if cmd.Bool("cancel-all") {
		if err := provider.CancelAllOrders(ctx, symbol); err != nil {
			return err
		}

		l.Info("all orders canceled", zap.String("symbol", symbol))
		fmt.Printf("Canceled all open orders on %s\n", symbol)
	}

	return nil
}

// placeOrderFromFlags builds an order from flags, validates it locally, and
// submits it. A validation rejection prints the reason and does not reach
// the exchange.
func placeOrderFromFlags(ctx context.Context, cmd *cli.Command, provider exchange.TradingProvider, l *logger.Logger) error {
	side, err := types.ParseSide(cmd.String("side"))
	if err != nil {
		return err
	}

	orderType, err := types.ParseOrderType(cmd.String("type"))
	if err != nil {
		return err
	}

	order := types.OrderRequest{
		Symbol:   cmd.String("symbol"),
		Side:     side,
		Type:     orderType,
		Quantity: cmd.Float("quantity"),
	}

	if cmd.IsSet("price") {
		order.LimitPrice = optional.Some(cmd.Float("price"))
	}

	if cmd.IsSet("stop-price") {
		order.StopPrice = optional.Some(cmd.Float("stop-price"))
	}

	if err := validation.ValidateOrder(ctx, order, provider.PriceLookup()); err != nil {
		l.Warn("order rejected by validation",
			zap.String("symbol", order.Symbol),
			zap.String("side", string(order.Side)),
			zap.String("type", string(order.Type)),
			zap.String("reason", errors.Reason(err)))
		fmt.Printf("Order rejected: %s\n", errors.Reason(err))

		return err
	}

	placed, err := provider.PlaceOrder(ctx, order)
	if err != nil {
		return err
	}

	l.Info("order placed",
		zap.Int64("order_id", placed.OrderID),
		zap.String("symbol", placed.Symbol),
		zap.String("side", string(placed.Side)),
		zap.String("type", placed.Type),
		zap.Float64("quantity", placed.Quantity),
		zap.String("status", string(placed.Status)))
	fmt.Print(RenderPlacedOrder(placed))

	return nil
}

func main() {
	// Load credentials from .env when present; flags and real environment
	// variables still win.
	_ = godotenv.Load()

	cmd := &cli.Command{
		Name:  "trader",
		Usage: "Trade USDT-M futures on the Binance testnet",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "api-key",
				Usage: "Binance API key (defaults to BINANCE_API_KEY)",
			},
			&cli.StringFlag{
				Name:  "api-secret",
				Usage: "Binance API secret (defaults to BINANCE_API_SECRET)",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to a YAML config file with credentials",
			},
			&cli.StringFlag{
				Name:    "symbol",
				Aliases: []string{"s"},
				Usage:   "Trading symbol",
				Value:   "BTCUSDT",
			},
			&cli.BoolFlag{
				Name:    "interactive",
				Aliases: []string{"i"},
				Usage:   "Start the interactive menu",
			},
			&cli.BoolFlag{
				Name:  "live",
				Usage: "Use the live environment instead of the testnet",
			},
			&cli.StringFlag{
				Name:  "side",
				Usage: "Order side: BUY or SELL",
			},
			&cli.StringFlag{
				Name:  "type",
				Usage: "Order type: MARKET, LIMIT, STOP_LIMIT, STOP_MARKET",
			},
			&cli.FloatFlag{
				Name:    "quantity",
				Aliases: []string{"q"},
				Usage:   "Order quantity in base asset units",
			},
			&cli.FloatFlag{
				Name:  "price",
				Usage: "Limit price (LIMIT and STOP_LIMIT orders)",
			},
			&cli.FloatFlag{
				Name:  "stop-price",
				Usage: "Stop trigger price (STOP_LIMIT and STOP_MARKET orders)",
			},
			&cli.BoolFlag{
				Name:  "show-price",
				Usage: "Show the current market price for the symbol",
			},
			&cli.BoolFlag{
				Name:  "show-orders",
				Usage: "Show open orders for the symbol",
			},
			&cli.BoolFlag{
				Name:  "show-positions",
				Usage: "Show nonzero positions",
			},
			&cli.IntFlag{
				Name:  "cancel-order",
				Usage: "Cancel the order with this ID",
			},
			&cli.BoolFlag{
				Name:  "cancel-all",
				Usage: "Cancel all open orders for the symbol",
			},
			&cli.StringFlag{
				Name:  "log-file",
				Usage: "Also write logs to this file",
			},
		},
		Action: tradeAction,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
