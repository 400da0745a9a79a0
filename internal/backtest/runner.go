// Package backtest replays a bar sequence through a single engine and
// reports on the result. Replays are synchronous and deterministic.
package backtest

import (
	"fmt"
	"time"

	"github.com/JDENNO91/hyperliquidtradingbot-sub000/internal/engine"
	"github.com/JDENNO91/hyperliquidtradingbot-sub000/internal/logger"
	"github.com/JDENNO91/hyperliquidtradingbot-sub000/internal/strategy"
	"github.com/JDENNO91/hyperliquidtradingbot-sub000/internal/tradelog"
	"github.com/JDENNO91/hyperliquidtradingbot-sub000/internal/types"
	"github.com/JDENNO91/hyperliquidtradingbot-sub000/pkg/errors"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/moznion/go-optional"
	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"
)

var validate = validator.New()

// OnProgressCallback is called after each bar with the bars done and the total.
type OnProgressCallback func(current int, total int)

type Runner struct {
	logger       *logger.Logger
	registry     *strategy.Registry
	showProgress bool
	onProgress   optional.Option[OnProgressCallback]
	sink         tradelog.Sink
}

// NewRunner creates a runner that builds strategies from registry.
func NewRunner(log *logger.Logger, registry *strategy.Registry) *Runner {
	return &Runner{
		logger:       log.Named("backtest"),
		registry:     registry,
		showProgress: false,
		onProgress:   optional.None[OnProgressCallback](),
		sink:         nil,
	}
}

// SetShowProgress draws a terminal progress bar while replaying.
func (r *Runner) SetShowProgress(show bool) {
	r.showProgress = show
}

func (r *Runner) SetProgressCallback(callback OnProgressCallback) {
	r.onProgress = optional.Some(callback)
}

// SetTradeLogSink records every closed position of subsequent runs.
func (r *Runner) SetTradeLogSink(sink tradelog.Sink) {
	r.sink = sink
}

// Run validates cfg, builds its strategy from the registry and replays bars.
func (r *Runner) Run(cfg types.Config, bars []types.Bar) (*types.BacktestReport, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeBacktestConfigError, "invalid backtest configuration", err)
	}

	if r.registry == nil {
		return nil, errors.New(errors.ErrCodeBacktestNoStrategy, "runner has no strategy registry")
	}

	strat, err := r.registry.Create(cfg.Strategy.Name, cfg.Strategy.Params)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeBacktestConfigError, "failed to create strategy", err)
	}

	return r.RunWithStrategy(cfg, strat, bars)
}

// RunWithStrategy replays bars through strat. Configuration problems are
// returned before the first bar; after that the replay always completes.
func (r *Runner) RunWithStrategy(cfg types.Config, strat strategy.Strategy, bars []types.Bar) (*types.BacktestReport, error) {
	if strat == nil {
		return nil, errors.New(errors.ErrCodeBacktestNoStrategy, "no strategy provided")
	}

	if err := validate.Struct(cfg.Trading); err != nil {
		return nil, errors.Wrap(errors.ErrCodeBacktestConfigError, "invalid trading configuration", err)
	}

	if err := cfg.Risk.Validate(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeBacktestConfigError, "invalid risk configuration", err)
	}

	strat.Reset()

	runID := cfg.ResolvedRunID()

	eng, err := engine.NewEngine(engine.ConfigFrom(cfg), strat, r.logger)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeBacktestConfigError, "failed to create engine", err)
	}

	if r.sink != nil {
		eng.SetTradeLogSink(r.sink)
	}

	if err := eng.Start(); err != nil {
		return nil, err
	}

	r.logger.Info("Starting backtest",
		zap.String("run_id", runID),
		zap.String("strategy", strat.Name()),
		zap.String("symbol", cfg.Trading.Market),
		zap.Int("bars", len(bars)),
	)

	var progress *progressbar.ProgressBar
	if r.showProgress {
		progress = progressbar.Default(int64(len(bars)), fmt.Sprintf("backtest %s", strat.Name()))
	}

	for i, bar := range bars {
		eng.ProcessBar(bar)

		if progress != nil {
			_ = progress.Add(1)
		}

		if r.onProgress.IsSome() {
			r.onProgress.Unwrap()(i+1, len(bars))
		}
	}

	if progress != nil {
		_ = progress.Finish()
	}

	eng.Liquidate(types.ExitReasonEndOfData)

	if _, err := eng.Stop(); err != nil {
		return nil, err
	}

	report := r.buildReport(cfg, runID, strat.Name(), eng, bars)

	r.logger.Info("Backtest finished", zap.String("summary", report.Summary))

	return report, nil
}

func (r *Runner) buildReport(cfg types.Config, runID, name string, eng *engine.Engine, bars []types.Bar) *types.BacktestReport {
	stats := eng.PerformanceStats()
	closed := eng.ClosedPositions()
	metrics := ComputeMetrics(cfg.Trading.InitialCapital, closed)

	report := &types.BacktestReport{
		ID:             reportID(runID, bars),
		Symbol:         cfg.Trading.Market,
		Strategy:       name,
		Timeframe:      cfg.Trading.Timeframe,
		InitialCapital: cfg.Trading.InitialCapital,
		BarsProcessed:  stats.BarsProcessed,
		BarsSkipped:    stats.BarsSkipped,
		Signals:        stats.Signals,
		Metrics:        metrics,
		Analysis:       Analyze(closed),
		PnLAnomalies:   eng.Anomalies(),
		DrawdownHalted: stats.Halted,
		Trades:         closed,
		Summary:        "",
	}
	report.Summary = Summary(report)

	return report
}

// reportID derives a stable id from the run id and the replayed range.
func reportID(runID string, bars []types.Bar) string {
	var first, last time.Time
	if len(bars) > 0 {
		first, last = bars[0].Time, bars[len(bars)-1].Time
	}

	key := fmt.Sprintf("%s|%d|%d|%d", runID, len(bars), first.Unix(), last.Unix())

	return "bt_" + uuid.NewSHA1(uuid.NameSpaceOID, []byte(key)).String()
}

// Summary renders the one line result of a report.
func Summary(report *types.BacktestReport) string {
	profitFactor := fmt.Sprintf("%.2f", report.Metrics.ProfitFactor)
	if report.Metrics.HasInfiniteProfitFactor() {
		profitFactor = "inf"
	}

	return fmt.Sprintf("%s %s: %d trades, win rate %.1f%%, pnl %.2f (%.2f%%), profit factor %s, max drawdown %.2f%%, bars %d processed / %d skipped",
		report.Strategy,
		report.Symbol,
		report.Metrics.TotalTrades,
		report.Metrics.WinRate*100,
		report.Metrics.TotalPnL,
		report.Metrics.ReturnPercentage,
		profitFactor,
		report.Metrics.MaxDrawdown*100,
		report.BarsProcessed,
		report.BarsSkipped,
	)
}
