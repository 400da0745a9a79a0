package datasource

import (
	"context"
	"testing"
	"time"

	"github.com/JDENNO91/hyperliquidtradingbot-sub000/internal/types"
	"github.com/JDENNO91/hyperliquidtradingbot-sub000/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReplayFeedBatches(t *testing.T) {
	bars := mocks.GenerateBars(1, 5)
	feed := NewReplayFeed(bars, 2)

	var marked []float64

	feed.OnBar(func(bar types.Bar) { marked = append(marked, bar.Close) })

	ctx := context.Background()

	first, err := feed.FetchBars(ctx, bars[0].Symbol, "1m", time.Time{}, time.Time{})
	require.NoError(t, err)
	assert.Equal(t, bars[:2], first)
	assert.Equal(t, 3, feed.Remaining())

	second, err := feed.FetchBars(ctx, bars[0].Symbol, "1m", time.Time{}, time.Time{})
	require.NoError(t, err)
	assert.Equal(t, bars[2:4], second)

	select {
	case <-feed.Done():
		t.Fatal("feed should not be done yet")
	default:
	}

	last, err := feed.FetchBars(ctx, bars[0].Symbol, "1m", time.Time{}, time.Time{})
	require.NoError(t, err)
	assert.Equal(t, bars[4:], last)
	assert.Len(t, marked, 5)
	assert.Equal(t, 0, feed.Remaining())

	select {
	case <-feed.Done():
		t.Fatal("done fires on the first empty fetch")
	default:
	}

	empty, err := feed.FetchBars(ctx, bars[0].Symbol, "1m", time.Time{}, time.Time{})
	require.NoError(t, err)
	assert.Empty(t, empty)

	<-feed.Done()

	// idempotent once exhausted
	_, err = feed.FetchBars(ctx, bars[0].Symbol, "1m", time.Time{}, time.Time{})
	require.NoError(t, err)
}

func TestReplayFeedFiltersSymbolAndHonoursContext(t *testing.T) {
	bars := mocks.GenerateBars(2, 3)
	feed := NewReplayFeed(bars, 0)

	out, err := feed.FetchBars(context.Background(), "ETH", "1m", time.Time{}, time.Time{})
	require.NoError(t, err)
	assert.Empty(t, out)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = feed.FetchBars(ctx, bars[0].Symbol, "1m", time.Time{}, time.Time{})
	assert.ErrorIs(t, err, context.Canceled)
}
