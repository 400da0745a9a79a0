package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/JDENNO91/hyperliquidtradingbot-sub000/internal/backtest"
	"github.com/JDENNO91/hyperliquidtradingbot-sub000/internal/datasource"
	"github.com/JDENNO91/hyperliquidtradingbot-sub000/internal/engine"
	"github.com/JDENNO91/hyperliquidtradingbot-sub000/internal/exchange"
	"github.com/JDENNO91/hyperliquidtradingbot-sub000/internal/live"
	"github.com/JDENNO91/hyperliquidtradingbot-sub000/internal/logger"
	"github.com/JDENNO91/hyperliquidtradingbot-sub000/internal/strategy"
	"github.com/JDENNO91/hyperliquidtradingbot-sub000/internal/tradelog"
	"github.com/JDENNO91/hyperliquidtradingbot-sub000/internal/types"
	"github.com/JDENNO91/hyperliquidtradingbot-sub000/internal/version"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// loadConfig decodes path on top of the defaults. An empty path yields the defaults.
func loadConfig(path string) (types.Config, error) {
	cfg := types.DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config: %w", err)
		}

		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	return cfg, cfg.Validate()
}

func applyOverrides(cmd *cli.Command, cfg *types.Config) {
	if name := cmd.String("strategy"); name != "" {
		cfg.Strategy.Name = name
	}

	if market := cmd.String("market"); market != "" {
		cfg.Trading.Market = market
	}
}

func loadBars(path, symbol string, log *logger.Logger) ([]types.Bar, error) {
	feed, err := datasource.NewDuckDBFeed(path, log)
	if err != nil {
		return nil, err
	}
	defer feed.Close()

	bars, err := feed.LoadAll(symbol)
	if err != nil {
		return nil, err
	}

	if len(bars) == 0 {
		return nil, fmt.Errorf("no %s bars in %s", symbol, path)
	}

	return bars, nil
}

// backtestAction replays the data file and writes the YAML report.
func backtestAction(ctx context.Context, cmd *cli.Command) error {
	log, err := logger.NewLogger()
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck // best effort flush

	cfg, err := loadConfig(cmd.String("config"))
	if err != nil {
		return err
	}

	applyOverrides(cmd, &cfg)

	bars, err := loadBars(cmd.String("data"), cfg.Trading.Market, log)
	if err != nil {
		return err
	}

	runner := backtest.NewRunner(log, strategy.NewDefaultRegistry())
	runner.SetShowProgress(cmd.Bool("progress"))

	var sink *tradelog.DuckDBSink

	if cmd.String("trade-log") != "" {
		sink, err = tradelog.NewDuckDBSink(log)
		if err != nil {
			return err
		}
		defer sink.Close()

		runner.SetTradeLogSink(sink)
	}

	report, err := runner.Run(cfg, bars)
	if err != nil {
		return err
	}

	output := cmd.String("output")
	if err := os.MkdirAll(filepath.Dir(output), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if err := types.WriteReport(output, *report); err != nil {
		return err
	}

	if sink != nil {
		path, err := sink.Export(cmd.String("trade-log"))
		if err != nil {
			return err
		}

		log.Info("Trade log exported", zap.String("path", path))
	}

	fmt.Println(report.Summary)
	log.Info("Report written", zap.String("path", output))

	return nil
}

// paperAction drives the live loop over the data file with the paper executor.
func paperAction(ctx context.Context, cmd *cli.Command) error {
	log, err := logger.NewLogger()
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck // best effort flush

	cfg, err := loadConfig(cmd.String("config"))
	if err != nil {
		return err
	}

	applyOverrides(cmd, &cfg)

	if poll := cmd.Duration("poll"); poll > 0 {
		cfg.Live.PollInterval = poll
	}

	bars, err := loadBars(cmd.String("data"), cfg.Trading.Market, log)
	if err != nil {
		return err
	}

	strat, err := strategy.NewDefaultRegistry().Create(cfg.Strategy.Name, cfg.Strategy.Params)
	if err != nil {
		return err
	}

	eng, err := engine.NewEngine(engine.ConfigFrom(cfg), strat, log)
	if err != nil {
		return err
	}

	sink, err := tradelog.NewDuckDBSink(log)
	if err != nil {
		return err
	}
	defer sink.Close()

	eng.SetTradeLogSink(sink)

	executor := exchange.NewPaperExecutor()
	feed := datasource.NewReplayFeed(bars, int(cmd.Int("batch")))
	feed.OnBar(func(bar types.Bar) { executor.SetMarkPrice(bar.Symbol, bar.Close) })

	loopConfig, err := live.NewConfig(cfg)
	if err != nil {
		return err
	}

	loop, err := live.NewLoop(loopConfig, eng, feed, executor, log)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		select {
		case <-feed.Done():
			stop()
		case <-ctx.Done():
		}
	}()

	if err := loop.Run(ctx); err != nil {
		return err
	}

	summary, err := sink.ExitReasonSummary()
	if err != nil {
		return err
	}

	for _, row := range summary {
		fmt.Printf("%-22s trades=%-5d pnl=%.2f\n", row.Reason, row.Count, row.TotalPnL)
	}

	capital := eng.Capital()
	fmt.Printf("final capital %.2f (%.2f%%), %d paper orders\n",
		capital.CurrentCapital, capital.ReturnPercentage(), len(executor.Orders()))

	return nil
}

func schemaAction(_ context.Context, _ *cli.Command) error {
	schema, err := types.GetConfigSchema()
	if err != nil {
		return err
	}

	fmt.Println(schema)

	return nil
}

func strategiesAction(_ context.Context, _ *cli.Command) error {
	for _, name := range strategy.NewDefaultRegistry().List() {
		fmt.Println(name)
	}

	return nil
}

func main() {
	configFlag := &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to the YAML run configuration. Defaults are used when omitted.",
	}
	dataFlag := &cli.StringFlag{
		Name:     "data",
		Aliases:  []string{"d"},
		Usage:    "CSV or parquet file with time, symbol, open, high, low, close, volume columns",
		Required: true,
	}
	strategyFlag := &cli.StringFlag{
		Name:    "strategy",
		Aliases: []string{"s"},
		Usage:   "Override the configured strategy",
	}
	marketFlag := &cli.StringFlag{
		Name:    "market",
		Aliases: []string{"m"},
		Usage:   "Override the configured market symbol",
	}

	cmd := &cli.Command{
		Name:    "trader",
		Usage:   "Signal-driven trading engine with deterministic backtests",
		Version: version.GetVersion(),
		Commands: []*cli.Command{
			{
				Name:  "backtest",
				Usage: "Replay a data file and write a YAML report",
				Flags: []cli.Flag{
					configFlag,
					dataFlag,
					strategyFlag,
					marketFlag,
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Report path",
						Value:   "results/report.yaml",
					},
					&cli.BoolFlag{
						Name:  "progress",
						Usage: "Show a progress bar",
					},
					&cli.StringFlag{
						Name:  "trade-log",
						Usage: "Directory to export the trade log to as parquet",
					},
				},
				Action: backtestAction,
			},
			{
				Name:  "paper",
				Usage: "Run the live loop over a data file against the paper executor",
				Flags: []cli.Flag{
					configFlag,
					dataFlag,
					strategyFlag,
					marketFlag,
					&cli.IntFlag{
						Name:  "batch",
						Usage: "Bars handed out per poll",
						Value: 1,
					},
					&cli.DurationFlag{
						Name:  "poll",
						Usage: "Override the configured poll interval",
						Value: 10 * time.Millisecond,
					},
				},
				Action: paperAction,
			},
			{
				Name:  "init",
				Usage: "Write the config JSON schema and a sample config",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "dir",
						Usage: "Output directory",
						Value: "config",
					},
				},
				Action: initAction,
			},
			{
				Name:   "schema",
				Usage:  "Print the configuration JSON schema",
				Action: schemaAction,
			},
			{
				Name:   "strategies",
				Usage:  "List registered strategies",
				Action: strategiesAction,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
