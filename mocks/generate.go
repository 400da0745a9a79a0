package mocks

//go:generate mockgen -destination=./mock_strategy.go -package=mocks github.com/JDENNO91/hyperliquidtradingbot-sub000/internal/strategy Strategy
//go:generate mockgen -destination=./mock_exchange.go -package=mocks github.com/JDENNO91/hyperliquidtradingbot-sub000/internal/exchange MarketDataFeed,OrderExecutor,EquitySource
//go:generate mockgen -destination=./mock_tradelog.go -package=mocks github.com/JDENNO91/hyperliquidtradingbot-sub000/internal/tradelog Sink
