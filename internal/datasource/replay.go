package datasource

import (
	"context"
	"sync"
	"time"

	"github.com/JDENNO91/hyperliquidtradingbot-sub000/internal/types"
)

// ReplayFeed hands out preloaded bars a batch at a time, ignoring the
// requested window. It lets the live loop run over historical data.
type ReplayFeed struct {
	mu     sync.Mutex
	bars   []types.Bar
	batch  int
	next   int
	onBar  func(types.Bar)
	done   chan struct{}
	closed bool
}

// NewReplayFeed replays bars in order, batch bars per FetchBars call.
// A batch below 1 is treated as 1.
func NewReplayFeed(bars []types.Bar, batch int) *ReplayFeed {
	if batch < 1 {
		batch = 1
	}

	return &ReplayFeed{
		mu:     sync.Mutex{},
		bars:   bars,
		batch:  batch,
		next:   0,
		onBar:  nil,
		done:   make(chan struct{}),
		closed: false,
	}
}

// OnBar registers a hook called for every bar handed out, e.g. to move a
// paper executor's mark price.
func (f *ReplayFeed) OnBar(hook func(types.Bar)) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.onBar = hook
}

// FetchBars returns the next batch. The first call that finds nothing left
// returns an empty slice and closes Done, so every served batch has been
// consumed by the time Done fires.
func (f *ReplayFeed) FetchBars(ctx context.Context, symbol string, _ string, _, _ time.Time) ([]types.Bar, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	var out []types.Bar

	for f.next < len(f.bars) && len(out) < f.batch {
		bar := f.bars[f.next]
		f.next++

		if bar.Symbol != symbol {
			continue
		}

		out = append(out, bar)

		if f.onBar != nil {
			f.onBar(bar)
		}
	}

	if len(out) == 0 && !f.closed {
		f.closed = true
		close(f.done)
	}

	return out, nil
}

// Done is closed once a fetch finds the replay exhausted.
func (f *ReplayFeed) Done() <-chan struct{} {
	return f.done
}

// Remaining is the number of bars not yet served.
func (f *ReplayFeed) Remaining() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return len(f.bars) - f.next
}
