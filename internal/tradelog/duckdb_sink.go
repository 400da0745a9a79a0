package tradelog

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/JDENNO91/hyperliquidtradingbot-sub000/internal/logger"
	"github.com/JDENNO91/hyperliquidtradingbot-sub000/internal/types"
	"github.com/JDENNO91/hyperliquidtradingbot-sub000/pkg/errors"
	"github.com/Masterminds/squirrel"
	_ "github.com/marcboeker/go-duckdb"
	"go.uber.org/zap"
)

var errClosed = errors.New(errors.ErrCodeTradeLogWriteFailed, "trade log sink is closed")

var recordColumns = []string{
	"id", "timestamp", "position_id", "symbol", "side", "entry_price", "exit_price", "size",
	"realized_pnl", "drawdown_at_close", "exit_reason", "resulting_balance", "entry_time", "exit_time",
}

// ExitReasonSummary aggregates closed trades sharing an exit reason.
type ExitReasonSummary struct {
	Reason   string  `yaml:"reason" json:"reason"`
	Count    int     `yaml:"count" json:"count"`
	TotalPnL float64 `yaml:"total_pnl" json:"total_pnl"`
}

// DuckDBSink keeps records in an in-memory DuckDB table so a run can be
// queried while it executes. Nothing is persisted unless Export is called.
type DuckDBSink struct {
	mu     sync.Mutex
	db     *sql.DB
	logger *logger.Logger
	sq     squirrel.StatementBuilderType
}

// NewDuckDBSink opens the in-memory database and creates the trades table.
func NewDuckDBSink(log *logger.Logger) (*DuckDBSink, error) {
	db, err := sql.Open("duckdb", ":memory:")
	if err != nil {
		log.Error("Failed to open trade log database", zap.Error(err))

		return nil, errors.Wrap(errors.ErrCodeTradeLogWriteFailed, "failed to open trade log database", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()

		return nil, errors.Wrap(errors.ErrCodeTradeLogWriteFailed, "failed to connect to trade log database", err)
	}

	sink := &DuckDBSink{
		mu:     sync.Mutex{},
		db:     db,
		logger: log.Named("tradelog"),
		sq:     squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
	}

	if err := sink.initialize(); err != nil {
		db.Close()

		return nil, err
	}

	return sink, nil
}

func (s *DuckDBSink) initialize() error {
	_, err := s.db.Exec(`CREATE SEQUENCE IF NOT EXISTS trade_log_id_seq`)
	if err != nil {
		return errors.Wrap(errors.ErrCodeTradeLogWriteFailed, "failed to create sequence", err)
	}

	_, err = s.db.Exec(`
		CREATE TABLE IF NOT EXISTS trade_log (
			id INTEGER PRIMARY KEY,
			timestamp TIMESTAMP,
			position_id TEXT,
			symbol TEXT,
			side TEXT,
			entry_price DOUBLE,
			exit_price DOUBLE,
			size DOUBLE,
			realized_pnl DOUBLE,
			drawdown_at_close DOUBLE,
			exit_reason TEXT,
			resulting_balance DOUBLE,
			entry_time TIMESTAMP,
			exit_time TIMESTAMP
		)
	`)
	if err != nil {
		return errors.Wrap(errors.ErrCodeTradeLogWriteFailed, "failed to create trade_log table", err)
	}

	return nil
}

func (s *DuckDBSink) Append(record types.TradeLogRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return errClosed
	}

	var nextID int
	if err := s.db.QueryRow("SELECT nextval('trade_log_id_seq')").Scan(&nextID); err != nil {
		return errors.Wrap(errors.ErrCodeTradeLogWriteFailed, "failed to get next trade log id", err)
	}

	_, err := s.sq.
		Insert("trade_log").
		Columns(recordColumns...).
		Values(
			nextID,
			record.Timestamp,
			record.PositionID,
			record.Symbol,
			string(record.Side),
			record.EntryPrice,
			record.ExitPrice,
			record.Size,
			record.RealizedPnL,
			record.DrawdownAtClose,
			record.ExitReason,
			record.ResultingBalance,
			record.EntryTime,
			record.ExitTime,
		).
		RunWith(s.db).
		Exec()
	if err != nil {
		return errors.Wrapf(errors.ErrCodeTradeLogWriteFailed, err, "failed to insert trade log record for %s", record.PositionID)
	}

	return nil
}

func (s *DuckDBSink) Records() ([]types.TradeLogRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil, errors.New(errors.ErrCodeTradeLogReadFailed, "trade log sink is closed")
	}

	rows, err := s.sq.
		Select(recordColumns...).
		From("trade_log").
		OrderBy("id ASC").
		RunWith(s.db).
		Query()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeTradeLogReadFailed, "failed to query trade log", err)
	}
	defer rows.Close()

	var records []types.TradeLogRecord

	for rows.Next() {
		var (
			id     int
			side   string
			record types.TradeLogRecord
		)

		err := rows.Scan(
			&id,
			&record.Timestamp,
			&record.PositionID,
			&record.Symbol,
			&side,
			&record.EntryPrice,
			&record.ExitPrice,
			&record.Size,
			&record.RealizedPnL,
			&record.DrawdownAtClose,
			&record.ExitReason,
			&record.ResultingBalance,
			&record.EntryTime,
			&record.ExitTime,
		)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeTradeLogReadFailed, "failed to scan trade log record", err)
		}

		record.Side = types.Side(side)
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeTradeLogReadFailed, "error iterating trade log", err)
	}

	return records, nil
}

// ExitReasonSummary groups the log by exit reason, most frequent first.
func (s *DuckDBSink) ExitReasonSummary() ([]ExitReasonSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil, errors.New(errors.ErrCodeTradeLogReadFailed, "trade log sink is closed")
	}

	rows, err := s.sq.
		Select("exit_reason", "COUNT(*) AS trades", "SUM(realized_pnl) AS total_pnl").
		From("trade_log").
		GroupBy("exit_reason").
		OrderBy("trades DESC", "exit_reason ASC").
		RunWith(s.db).
		Query()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeTradeLogReadFailed, "failed to summarise exit reasons", err)
	}
	defer rows.Close()

	var summaries []ExitReasonSummary

	for rows.Next() {
		var summary ExitReasonSummary
		if err := rows.Scan(&summary.Reason, &summary.Count, &summary.TotalPnL); err != nil {
			return nil, errors.Wrap(errors.ErrCodeTradeLogReadFailed, "failed to scan exit reason summary", err)
		}

		summaries = append(summaries, summary)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeTradeLogReadFailed, "error iterating exit reason summary", err)
	}

	return summaries, nil
}

// Export writes the log to trades.parquet under dir.
func (s *DuckDBSink) Export(dir string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return "", errors.New(errors.ErrCodeReportWriteFailed, "trade log sink is closed")
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", errors.Wrap(errors.ErrCodeReportWriteFailed, "failed to create export directory", err)
	}

	path := filepath.Join(dir, "trades.parquet")

	if _, err := s.db.Exec(fmt.Sprintf(`COPY trade_log TO '%s' (FORMAT PARQUET)`, path)); err != nil {
		return "", errors.Wrap(errors.ErrCodeReportWriteFailed, "failed to export trade log to parquet", err)
	}

	s.logger.Info("Exported trade log", zap.String("path", path))

	return path, nil
}

// Reset drops every record.
func (s *DuckDBSink) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return errClosed
	}

	_, err := s.db.Exec(`
		DROP TABLE IF EXISTS trade_log;
		DROP SEQUENCE IF EXISTS trade_log_id_seq;
	`)
	if err != nil {
		return errors.Wrap(errors.ErrCodeTradeLogWriteFailed, "failed to reset trade log", err)
	}

	return s.initialize()
}

func (s *DuckDBSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}

	err := s.db.Close()
	s.db = nil

	return err
}
