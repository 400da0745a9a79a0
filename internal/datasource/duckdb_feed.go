// Package datasource serves bars from CSV or parquet files through an
// in-memory DuckDB view.
package datasource

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/JDENNO91/hyperliquidtradingbot-sub000/internal/logger"
	"github.com/JDENNO91/hyperliquidtradingbot-sub000/internal/types"
	"github.com/JDENNO91/hyperliquidtradingbot-sub000/pkg/errors"
	"github.com/Masterminds/squirrel"
	_ "github.com/marcboeker/go-duckdb"
	"github.com/moznion/go-optional"
	"go.uber.org/zap"
)

// DuckDBFeed reads bars from a single file. The file must have the columns
// time, symbol, open, high, low, close and volume.
type DuckDBFeed struct {
	db     *sql.DB
	logger *logger.Logger
	sq     squirrel.StatementBuilderType
	path   string
}

// NewDuckDBFeed opens an in-memory database with a market_data view over path.
// The reader is chosen from the extension: .csv or .parquet.
func NewDuckDBFeed(path string, log *logger.Logger) (*DuckDBFeed, error) {
	reader, err := readerFor(path)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("duckdb", ":memory:")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDataSourceUnavailable, "failed to open duckdb", err)
	}

	feed := &DuckDBFeed{
		db:     db,
		logger: log.Named("datasource"),
		sq:     squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
		path:   path,
	}

	// squirrel has no CREATE VIEW
	query := fmt.Sprintf(`CREATE VIEW market_data AS SELECT * FROM %s('%s');`, reader, strings.ReplaceAll(path, "'", "''"))

	if _, err := db.Exec(query); err != nil {
		db.Close()

		return nil, errors.Wrapf(errors.ErrCodeDataSourceUnavailable, err, "failed to load %s", path)
	}

	feed.logger.Debug("Opened bar file", zap.String("path", path), zap.String("reader", reader))

	return feed, nil
}

func readerFor(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return "read_csv_auto", nil
	case ".parquet":
		return "read_parquet", nil
	default:
		return "", errors.Newf(errors.ErrCodeDataSourceUnavailable, "unsupported bar file %s: expected .csv or .parquet", path)
	}
}

// FetchBars returns bars for symbol with start <= time <= end. A zero
// bound is open. The file holds a single timeframe, so interval is not
// used to resample.
func (f *DuckDBFeed) FetchBars(ctx context.Context, symbol string, _ string, start, end time.Time) ([]types.Bar, error) {
	from, to := optional.None[time.Time](), optional.None[time.Time]()
	if !start.IsZero() {
		from = optional.Some(start)
	}

	if !end.IsZero() {
		to = optional.Some(end)
	}

	return f.Range(ctx, symbol, from, to)
}

// LoadAll returns every bar for symbol. An empty symbol matches all rows.
func (f *DuckDBFeed) LoadAll(symbol string) ([]types.Bar, error) {
	return f.Range(context.Background(), symbol, optional.None[time.Time](), optional.None[time.Time]())
}

// Range returns bars for symbol within the optional bounds in ascending time.
func (f *DuckDBFeed) Range(ctx context.Context, symbol string, start, end optional.Option[time.Time]) ([]types.Bar, error) {
	query := f.sq.
		Select("time", "symbol", "open", "high", "low", "close", "volume").
		From("market_data").
		OrderBy("time ASC")

	if symbol != "" {
		query = query.Where(squirrel.Eq{"symbol": symbol})
	}

	if start.IsSome() {
		query = query.Where(squirrel.GtOrEq{"time": start.Unwrap()})
	}

	if end.IsSome() {
		query = query.Where(squirrel.LtOrEq{"time": end.Unwrap()})
	}

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to build bar query", err)
	}

	rows, err := f.db.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to query bars", err)
	}
	defer rows.Close()

	var bars []types.Bar

	for rows.Next() {
		var bar types.Bar

		if err := rows.Scan(&bar.Time, &bar.Symbol, &bar.Open, &bar.High, &bar.Low, &bar.Close, &bar.Volume); err != nil {
			return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to scan bar", err)
		}

		bars = append(bars, bar)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "error iterating bars", err)
	}

	return bars, nil
}

// Count returns the number of rows for symbol.
func (f *DuckDBFeed) Count(symbol string) (int, error) {
	query := f.sq.Select("COUNT(*)").From("market_data")
	if symbol != "" {
		query = query.Where(squirrel.Eq{"symbol": symbol})
	}

	var count int
	if err := query.RunWith(f.db).QueryRow().Scan(&count); err != nil {
		return 0, errors.Wrap(errors.ErrCodeQueryFailed, "failed to count bars", err)
	}

	return count, nil
}

// Path is the file the feed reads.
func (f *DuckDBFeed) Path() string {
	return f.path
}

func (f *DuckDBFeed) Close() error {
	return f.db.Close()
}
