// Package exchange declares what the trading core needs from a venue:
// bars, market orders and the account's equity.
package exchange

import (
	"context"
	"time"

	"github.com/JDENNO91/hyperliquidtradingbot-sub000/internal/types"
)

// MarketDataFeed returns bars for symbol in ascending time order. A result
// shorter than requested, or empty, is not an error.
type MarketDataFeed interface {
	FetchBars(ctx context.Context, symbol string, interval string, start, end time.Time) ([]types.Bar, error)
}

// OrderExecutor places market orders.
type OrderExecutor interface {
	// OpenMarket buys or sells size of symbol at market
	OpenMarket(ctx context.Context, symbol string, isBuy bool, size float64) (types.OrderResult, error)
	// CloseMarket flattens every position on symbol
	CloseMarket(ctx context.Context, symbol string) (types.OrderResult, error)
}

// AccountEquity is a point-in-time view of the account.
type AccountEquity struct {
	Value         float64   `yaml:"value" json:"value"`
	OpenPositions int       `yaml:"open_positions" json:"open_positions"`
	UpdatedAt     time.Time `yaml:"updated_at" json:"updated_at"`
}

// EquitySource reports current account equity.
type EquitySource interface {
	Equity(ctx context.Context) (AccountEquity, error)
}
