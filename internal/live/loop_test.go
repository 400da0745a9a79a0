package live

import (
	"context"
	"fmt"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/JDENNO91/hyperliquidtradingbot-sub000/internal/engine"
	"github.com/JDENNO91/hyperliquidtradingbot-sub000/internal/exchange"
	"github.com/JDENNO91/hyperliquidtradingbot-sub000/internal/logger"
	"github.com/JDENNO91/hyperliquidtradingbot-sub000/internal/types"
	"github.com/JDENNO91/hyperliquidtradingbot-sub000/mocks"
	"github.com/JDENNO91/hyperliquidtradingbot-sub000/pkg/errors"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type LoopTestSuite struct {
	suite.Suite
	ctrl     *gomock.Controller
	strategy *mocks.MockStrategy
	feed     *mocks.MockMarketDataFeed
	executor *mocks.MockOrderExecutor
	start    time.Time
}

func TestLoopSuite(t *testing.T) {
	suite.Run(t, new(LoopTestSuite))
}

func (suite *LoopTestSuite) SetupTest() {
	suite.ctrl = gomock.NewController(suite.T())
	suite.strategy = mocks.NewMockStrategy(suite.ctrl)
	suite.strategy.EXPECT().Name().Return("scripted").AnyTimes()
	suite.strategy.EXPECT().RequiredLookback().Return(0).AnyTimes()
	suite.feed = mocks.NewMockMarketDataFeed(suite.ctrl)
	suite.executor = mocks.NewMockOrderExecutor(suite.ctrl)
	suite.start = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
}

func (suite *LoopTestSuite) TearDownTest() {
	suite.ctrl.Finish()
}

func (suite *LoopTestSuite) config() Config {
	return Config{
		Symbol:               "BTC",
		Interval:             "1m",
		BarDuration:          time.Minute,
		LookbackBars:         10,
		PollInterval:         time.Millisecond,
		MaxConsecutiveErrors: DefaultMaxConsecutiveErrors,
		Leverage:             1,
		DrawdownThreshold:    0.1,
		MonitorInterval:      time.Millisecond,
	}
}

func (suite *LoopTestSuite) newLoop(config Config) (*Loop, *engine.Engine) {
	eng, err := engine.NewEngine(engine.Config{
		Symbol:         "BTC",
		InitialCapital: 10000,
		Risk:           types.DefaultRiskParameters(),
		AllowHedging:   false,
		HistorySize:    0,
		RunID:          "live-test",
	}, suite.strategy, logger.NewNopLogger())
	suite.Require().NoError(err)

	loop, err := NewLoop(config, eng, suite.feed, suite.executor, logger.NewNopLogger())
	suite.Require().NoError(err)
	loop.SetClock(func() time.Time { return suite.start.Add(time.Hour) })

	return loop, eng
}

func (suite *LoopTestSuite) bar(i int, close float64) types.Bar {
	return types.Bar{
		Symbol: "BTC",
		Time:   suite.start.Add(time.Duration(i) * time.Minute),
		Open:   close,
		High:   close + 1,
		Low:    close - 1,
		Close:  close,
		Volume: 100,
	}
}

// longOnFirstBar opens a long on the first GenerateSignal call and holds after.
func (suite *LoopTestSuite) longOnFirstBar() {
	var mu sync.Mutex

	calls := 0

	suite.strategy.EXPECT().GenerateSignal(gomock.Any(), gomock.Any()).DoAndReturn(
		func(history []types.Bar, index int) (types.Signal, error) {
			mu.Lock()
			defer mu.Unlock()

			calls++
			if calls == 1 {
				return types.NewSignal(types.DirectionLong, 1, "go long", history[index], 0, nil), nil
			}

			return types.NewNoneSignal("hold", history[index]), nil
		}).AnyTimes()
}

func (suite *LoopTestSuite) holdExits() {
	suite.strategy.EXPECT().EvaluatePosition(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(history []types.Bar, index int, _ types.Position) (types.Signal, error) {
			return types.NewNoneSignal("hold", history[index]), nil
		}).AnyTimes()
}

type approxMatcher float64

// approx matches a float64 within 1e-9 of want.
func approx(want float64) gomock.Matcher {
	return approxMatcher(want)
}

func (m approxMatcher) Matches(x any) bool {
	got, ok := x.(float64)

	return ok && math.Abs(got-float64(m)) < 1e-9
}

func (m approxMatcher) String() string {
	return fmt.Sprintf("is approximately %v", float64(m))
}

func filled(id string) types.OrderResult {
	return types.OrderResult{
		OrderID:     id,
		Status:      types.OrderStatusFilled,
		FilledPrice: 0,
		FilledSize:  0,
		Message:     "",
	}
}

func (suite *LoopTestSuite) TestNewLoopValidation() {
	eng, err := engine.NewEngine(engine.Config{
		Symbol:         "BTC",
		InitialCapital: 10000,
		Risk:           types.DefaultRiskParameters(),
		AllowHedging:   false,
		HistorySize:    0,
		RunID:          "",
	}, suite.strategy, logger.NewNopLogger())
	suite.Require().NoError(err)

	_, err = NewLoop(suite.config(), nil, suite.feed, suite.executor, logger.NewNopLogger())
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidParameter))

	config := suite.config()
	config.MaxConsecutiveErrors = 0
	_, err = NewLoop(config, eng, suite.feed, suite.executor, logger.NewNopLogger())
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidConfiguration))

	config = suite.config()
	config.PollInterval = 0
	_, err = NewLoop(config, eng, suite.feed, suite.executor, logger.NewNopLogger())
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidConfiguration))
}

func (suite *LoopTestSuite) TestNewConfig() {
	cfg := types.DefaultConfig()

	config, err := NewConfig(cfg)
	suite.Require().NoError(err)
	suite.Equal("BTC", config.Symbol)
	suite.Equal(time.Minute, config.BarDuration)
	suite.Equal(5, config.MaxConsecutiveErrors)
	suite.InDelta(0.1, config.DrawdownThreshold, 1e-12)

	cfg.Trading.Timeframe = "1d"
	_, err = NewConfig(cfg)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidConfiguration))
}

func (suite *LoopTestSuite) TestFatalAfterTooManyConsecutiveErrors() {
	loop, eng := suite.newLoop(suite.config())

	suite.feed.EXPECT().FetchBars(gomock.Any(), "BTC", "1m", gomock.Any(), gomock.Any()).
		Return(nil, fmt.Errorf("venue unavailable")).
		Times(DefaultMaxConsecutiveErrors + 1)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := loop.Run(ctx)
	suite.Require().Error(err)
	suite.True(errors.IsFatalLoopError(err))

	fatal, ok := errors.AsFatalLoopError(err)
	suite.Require().True(ok)
	suite.Equal(6, fatal.Attempts)
	suite.Equal(5, fatal.Limit)
	suite.True(errors.HasCode(fatal.Last, errors.ErrCodeMarketDataFetchFailed))

	suite.Equal(types.EngineStateStopped, eng.State())
}

func (suite *LoopTestSuite) TestSuccessResetsErrorCount() {
	loop, _ := suite.newLoop(suite.config())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	calls := 0

	// five failures, one success, five failures, then cancellation
	suite.feed.EXPECT().FetchBars(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(context.Context, string, string, time.Time, time.Time) ([]types.Bar, error) {
			calls++

			switch {
			case calls == 6:
				return nil, nil
			case calls == 12:
				cancel()

				return nil, context.Canceled
			default:
				return nil, fmt.Errorf("timeout")
			}
		}).Times(12)

	suite.NoError(loop.Run(ctx))
	suite.Equal(11, loop.Iterations())
}

func (suite *LoopTestSuite) TestFirstFetchUsesLookbackWindow() {
	loop, _ := suite.newLoop(suite.config())
	now := suite.start.Add(time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	suite.feed.EXPECT().FetchBars(gomock.Any(), "BTC", "1m", now.Add(-10*time.Minute), now).DoAndReturn(
		func(context.Context, string, string, time.Time, time.Time) ([]types.Bar, error) {
			cancel()

			return nil, nil
		})

	suite.NoError(loop.Run(ctx))
}

func (suite *LoopTestSuite) TestMirrorsOpensAndCloses() {
	suite.longOnFirstBar()
	suite.strategy.EXPECT().EvaluatePosition(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(history []types.Bar, index int, _ types.Position) (types.Signal, error) {
			return types.NewSignal(types.DirectionCloseLong, 1, "take profit", history[index], 0, nil), nil
		})

	loop, eng := suite.newLoop(suite.config())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	gomock.InOrder(
		suite.feed.EXPECT().FetchBars(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]types.Bar{suite.bar(0, 100), suite.bar(1, 103)}, nil),
		suite.feed.EXPECT().FetchBars(gomock.Any(), gomock.Any(), gomock.Any(), suite.bar(1, 103).Time, gomock.Any()).
			DoAndReturn(func(context.Context, string, string, time.Time, time.Time) ([]types.Bar, error) {
				// already processed bars are ignored
				cancel()

				return []types.Bar{suite.bar(1, 103)}, nil
			}),
	)

	gomock.InOrder(
		suite.executor.EXPECT().OpenMarket(gomock.Any(), "BTC", true, approx(10)).Return(filled("o-1"), nil),
		suite.executor.EXPECT().CloseMarket(gomock.Any(), "BTC").Return(filled("o-2"), nil),
	)

	suite.NoError(loop.Run(ctx))

	closed := eng.ClosedPositions()
	suite.Require().Len(closed, 1)
	suite.Equal("take profit", closed[0].ExitReason)
	suite.InDelta(30, closed[0].RealizedPnL, 1e-9)

	equity, err := loop.Snapshot().Equity(context.Background())
	suite.Require().NoError(err)
	suite.InDelta(10030, equity.Value, 1e-9)
	suite.Equal(0, equity.OpenPositions)
}

func (suite *LoopTestSuite) TestFailedOrderIsRetried() {
	suite.longOnFirstBar()
	suite.holdExits()

	loop, eng := suite.newLoop(suite.config())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	gomock.InOrder(
		suite.feed.EXPECT().FetchBars(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]types.Bar{suite.bar(0, 100)}, nil),
		suite.feed.EXPECT().FetchBars(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(context.Context, string, string, time.Time, time.Time) ([]types.Bar, error) {
				cancel()

				return nil, nil
			}),
	)

	gomock.InOrder(
		suite.executor.EXPECT().OpenMarket(gomock.Any(), "BTC", true, approx(10)).Return(types.OrderResult{}, fmt.Errorf("rate limited")), //nolint:exhaustruct // failed order
		suite.executor.EXPECT().OpenMarket(gomock.Any(), "BTC", true, approx(10)).Return(filled("o-1"), nil),
		// shutdown flattens the open position
		suite.executor.EXPECT().CloseMarket(gomock.Any(), "BTC").Return(filled("o-2"), nil),
	)

	suite.NoError(loop.Run(ctx))

	closed := eng.ClosedPositions()
	suite.Require().Len(closed, 1)
	suite.Equal(types.ExitReasonEngineStop, closed[0].ExitReason)
}

func (suite *LoopTestSuite) TestRejectedOrderCountsAsError() {
	suite.longOnFirstBar()
	suite.holdExits()

	config := suite.config()
	config.MaxConsecutiveErrors = 1
	loop, _ := suite.newLoop(config)

	suite.feed.EXPECT().FetchBars(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]types.Bar{suite.bar(0, 100)}, nil)

	suite.executor.EXPECT().OpenMarket(gomock.Any(), "BTC", true, approx(10)).Return(types.OrderResult{
		OrderID:     "",
		Status:      types.OrderStatusRejected,
		FilledPrice: 0,
		FilledSize:  0,
		Message:     "insufficient margin",
	}, nil).Times(3)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// two failed iterations, then the shutdown retry
	err := loop.Run(ctx)
	suite.True(errors.IsFatalLoopError(err))
	suite.True(errors.HasCode(err, errors.ErrCodeOrderFailed))
}

func (suite *LoopTestSuite) TestDrawdownLiquidationRunsOnce() {
	suite.longOnFirstBar()
	suite.holdExits()

	loop, eng := suite.newLoop(suite.config())

	opened := make(chan struct{})
	equity := mocks.NewMockEquitySource(suite.ctrl)
	loop.SetEquitySource(equity)

	var (
		mu     sync.Mutex
		checks int
	)

	equity.EXPECT().Equity(gomock.Any()).DoAndReturn(func(context.Context) (exchange.AccountEquity, error) {
		select {
		case <-opened:
		default:
			return exchange.AccountEquity{Value: 10000, OpenPositions: 0, UpdatedAt: time.Time{}}, nil
		}

		mu.Lock()
		defer mu.Unlock()

		checks++
		if checks == 1 {
			return exchange.AccountEquity{Value: 10000, OpenPositions: 1, UpdatedAt: time.Time{}}, nil
		}

		return exchange.AccountEquity{Value: 8500, OpenPositions: 1, UpdatedAt: time.Time{}}, nil
	}).MinTimes(1)

	suite.feed.EXPECT().FetchBars(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]types.Bar{suite.bar(0, 100)}, nil)
	suite.feed.EXPECT().FetchBars(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, nil).AnyTimes()

	suite.executor.EXPECT().OpenMarket(gomock.Any(), "BTC", true, approx(10)).
		DoAndReturn(func(context.Context, string, bool, float64) (types.OrderResult, error) {
			close(opened)

			return filled("o-1"), nil
		})
	suite.executor.EXPECT().CloseMarket(gomock.Any(), "BTC").Return(filled("o-2"), nil).Times(1)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	suite.NoError(loop.Run(ctx))
	suite.NoError(ctx.Err())

	suite.Equal(types.EngineStateStopped, eng.State())

	closed := eng.ClosedPositions()
	suite.Require().Len(closed, 1)
	suite.Equal(types.ExitReasonDrawdownLiquidation, closed[0].ExitReason)
	suite.Equal(0, eng.OpenCount())
}

func (suite *LoopTestSuite) TestCancellationStopsEngine() {
	suite.longOnFirstBar()
	suite.holdExits()

	loop, eng := suite.newLoop(suite.config())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	suite.feed.EXPECT().FetchBars(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]types.Bar{suite.bar(0, 100)}, nil)
	suite.feed.EXPECT().FetchBars(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, nil).AnyTimes()

	suite.executor.EXPECT().OpenMarket(gomock.Any(), "BTC", true, approx(10)).
		DoAndReturn(func(context.Context, string, bool, float64) (types.OrderResult, error) {
			cancel()

			return filled("o-1"), nil
		})

	// the shutdown order is sent even though ctx is cancelled
	suite.executor.EXPECT().CloseMarket(gomock.Any(), "BTC").
		DoAndReturn(func(ctx context.Context, _ string) (types.OrderResult, error) {
			suite.NoError(ctx.Err())

			return filled("o-2"), nil
		})

	suite.NoError(loop.Run(ctx))
	suite.Equal(types.EngineStateStopped, eng.State())
	suite.Equal(0, eng.OpenCount())
}

func (suite *LoopTestSuite) TestRunTwiceSequentially() {
	loop, _ := suite.newLoop(suite.config())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	suite.NoError(loop.Run(ctx))
	suite.NoError(loop.Run(ctx))
}
