package exchange

import (
	"context"
	"testing"

	"github.com/JDENNO91/hyperliquidtradingbot-sub000/internal/types"
	"github.com/JDENNO91/hyperliquidtradingbot-sub000/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type PaperExecutorTestSuite struct {
	suite.Suite
	executor *PaperExecutor
}

func TestPaperExecutorSuite(t *testing.T) {
	suite.Run(t, new(PaperExecutorTestSuite))
}

func (suite *PaperExecutorTestSuite) SetupTest() {
	suite.executor = NewPaperExecutor()
}

func (suite *PaperExecutorTestSuite) TestOpenAndClose() {
	ctx := context.Background()
	suite.executor.SetMarkPrice("BTC", 100)

	result, err := suite.executor.OpenMarket(ctx, "BTC", true, 2)
	suite.Require().NoError(err)
	suite.Equal(types.OrderStatusFilled, result.Status)
	suite.Equal("paper-1", result.OrderID)
	suite.Equal(100.0, result.FilledPrice)
	suite.Equal(2.0, suite.executor.NetSize("BTC"))

	_, err = suite.executor.OpenMarket(ctx, "BTC", false, 0.5)
	suite.Require().NoError(err)
	suite.InDelta(1.5, suite.executor.NetSize("BTC"), 1e-9)

	result, err = suite.executor.CloseMarket(ctx, "BTC")
	suite.Require().NoError(err)
	suite.InDelta(1.5, result.FilledSize, 1e-9)
	suite.Equal(0.0, suite.executor.NetSize("BTC"))

	orders := suite.executor.Orders()
	suite.Require().Len(orders, 3)
	suite.True(orders[2].Close)
	suite.False(orders[2].IsBuy)
}

func (suite *PaperExecutorTestSuite) TestCloseShortBuysBack() {
	ctx := context.Background()

	_, err := suite.executor.OpenMarket(ctx, "ETH", false, 3)
	suite.Require().NoError(err)

	result, err := suite.executor.CloseMarket(ctx, "ETH")
	suite.Require().NoError(err)
	suite.Equal(3.0, result.FilledSize)
	suite.True(suite.executor.Orders()[1].IsBuy)
}

func (suite *PaperExecutorTestSuite) TestRejections() {
	ctx := context.Background()

	result, err := suite.executor.OpenMarket(ctx, "BTC", true, 0)
	suite.True(errors.HasCode(err, errors.ErrCodeOrderFailed))
	suite.Equal(types.OrderStatusRejected, result.Status)

	result, err = suite.executor.CloseMarket(ctx, "BTC")
	suite.True(errors.HasCode(err, errors.ErrCodeOrderFailed))
	suite.Equal(types.OrderStatusRejected, result.Status)
	suite.Empty(suite.executor.Orders())
}

func (suite *PaperExecutorTestSuite) TestCancelledContext() {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := suite.executor.OpenMarket(ctx, "BTC", true, 1)
	suite.True(errors.HasCode(err, errors.ErrCodeOrderFailed))
	suite.Equal(0.0, suite.executor.NetSize("BTC"))
}
