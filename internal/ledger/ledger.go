// Package ledger owns every position of a run. It is the only place a
// position is created, size limited or closed; callers get copies.
//
// A Ledger is not safe for concurrent use. The engine is its single writer.
package ledger

import (
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/JDENNO91/hyperliquidtradingbot-sub000/internal/logger"
	"github.com/JDENNO91/hyperliquidtradingbot-sub000/internal/types"
	"github.com/JDENNO91/hyperliquidtradingbot-sub000/pkg/errors"
	"github.com/google/uuid"
	"github.com/moznion/go-optional"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// DefaultPnLClampMultiple bounds |realized pnl| to this multiple of notional.
const DefaultPnLClampMultiple = 10

// Metadata keys written by the ledger.
const (
	MetaCloseReason   = "close_reason"
	MetaPnLClamped    = "pnl_clamped"
	MetaRawPnL        = "raw_pnl"
	MetaUnrealizedPnL = "unrealized_pnl"
)

type Config struct {
	MaxConcurrentPositions int
	// AllowHedging permits one long and one short on the same symbol
	AllowHedging bool
	// PnLClampMultiple defaults to DefaultPnLClampMultiple when zero
	PnLClampMultiple float64
	// Namespace seeds position ids; see NamespaceFor
	Namespace uuid.UUID
}

// NamespaceFor derives the id namespace of a run from its run id, so the
// same run always produces the same position ids.
func NamespaceFor(runID string) uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(runID))
}

// OpenRequest describes a position to open.
type OpenRequest struct {
	Symbol     string
	Side       types.Side
	EntryPrice float64
	Size       float64
	Time       time.Time
	StopLoss   optional.Option[float64]
	Metadata   map[string]any
}

type Ledger struct {
	logger    *logger.Logger
	config    Config
	open      map[string]*types.Position
	openOrder []string
	closed    []types.Position
	seq       int
	anomalies int
}

// NewLedger creates an empty ledger.
func NewLedger(log *logger.Logger, config Config) *Ledger {
	if config.PnLClampMultiple <= 0 {
		config.PnLClampMultiple = DefaultPnLClampMultiple
	}

	return &Ledger{
		logger:    log.Named("ledger"),
		config:    config,
		open:      make(map[string]*types.Position),
		openOrder: nil,
		closed:    nil,
		seq:       0,
		anomalies: 0,
	}
}

// CanOpen checks the concurrency limit and the one position rule: one per
// symbol, or one per symbol and side with hedging.
func (l *Ledger) CanOpen(symbol string, side types.Side) (bool, string) {
	if l.config.MaxConcurrentPositions > 0 && len(l.open) >= l.config.MaxConcurrentPositions {
		return false, fmt.Sprintf("max concurrent positions reached (%d)", l.config.MaxConcurrentPositions)
	}

	for _, id := range l.openOrder {
		p := l.open[id]
		if p.Symbol != symbol {
			continue
		}

		if !l.config.AllowHedging {
			return false, fmt.Sprintf("%s already has an open %s position", symbol, p.Side)
		}

		if p.Side == side {
			return false, fmt.Sprintf("%s already has an open %s position", symbol, side)
		}
	}

	return true, ""
}

// OpenPosition validates req and stores a new open position. A refusal is
// an ErrCodeRiskRejected error and leaves the ledger untouched.
func (l *Ledger) OpenPosition(req OpenRequest) (types.Position, error) {
	if !(req.Size > 0) || math.IsInf(req.Size, 0) {
		return types.Position{}, errors.Newf(errors.ErrCodeRiskRejected, "invalid size %f for %s", req.Size, req.Symbol)
	}

	if !(req.EntryPrice > 0) || math.IsInf(req.EntryPrice, 0) {
		return types.Position{}, errors.Newf(errors.ErrCodeRiskRejected, "invalid entry price %f for %s", req.EntryPrice, req.Symbol)
	}

	if ok, reason := l.CanOpen(req.Symbol, req.Side); !ok {
		return types.Position{}, errors.New(errors.ErrCodeRiskRejected, reason)
	}

	l.seq++

	metadata := make(map[string]any, len(req.Metadata))
	for k, v := range req.Metadata {
		metadata[k] = v
	}

	entry := decimal.NewFromFloat(req.EntryPrice)
	notional, _ := entry.Mul(decimal.NewFromFloat(req.Size)).Float64()

	stopLoss := 0.0
	if req.StopLoss.IsSome() {
		stopLoss = req.StopLoss.Unwrap()
	}

	position := &types.Position{
		ID:          l.nextID(req.Symbol, req.Time),
		Symbol:      req.Symbol,
		Side:        req.Side,
		EntryPrice:  req.EntryPrice,
		EntryTime:   req.Time,
		Size:        req.Size,
		Notional:    notional,
		StopLoss:    stopLoss,
		Status:      types.PositionStatusOpen,
		ExitPrice:   0,
		ExitTime:    time.Time{},
		RealizedPnL: 0,
		ExitReason:  "",
		Metadata:    metadata,
	}

	l.open[position.ID] = position
	l.openOrder = append(l.openOrder, position.ID)

	l.logger.Debug("Opened position",
		zap.String("id", position.ID),
		zap.String("symbol", position.Symbol),
		zap.String("side", string(position.Side)),
		zap.Float64("entry_price", position.EntryPrice),
		zap.Float64("size", position.Size),
	)

	return position.Clone(), nil
}

func (l *Ledger) nextID(symbol string, at time.Time) string {
	key := uuid.NewSHA1(l.config.Namespace, fmt.Appendf(nil, "%s/%d", symbol, l.seq))

	return fmt.Sprintf("pos_%s_%d", key.String()[:8], at.Unix())
}

// ClosePosition closes id at exitPrice. Unknown or already closed ids give
// an ErrCodePositionNotFound error and change nothing.
func (l *Ledger) ClosePosition(id string, exitPrice float64, at time.Time, reason string) (types.Position, error) {
	position, ok := l.open[id]
	if !ok {
		return types.Position{}, errors.Newf(errors.ErrCodePositionNotFound, "position %s not found or already closed", id)
	}

	if !(exitPrice > 0) || math.IsInf(exitPrice, 0) {
		return types.Position{}, errors.Newf(errors.ErrCodeInvalidParameter, "invalid exit price %f for %s", exitPrice, id)
	}

	pnl := l.realizedPnL(position, exitPrice)

	position.Status = types.PositionStatusClosed
	position.ExitPrice = exitPrice
	position.ExitTime = at
	position.RealizedPnL = pnl
	position.ExitReason = reason
	position.Metadata[MetaCloseReason] = reason
	delete(position.Metadata, MetaUnrealizedPnL)

	delete(l.open, id)
	l.openOrder = slices.DeleteFunc(l.openOrder, func(openID string) bool { return openID == id })
	l.closed = append(l.closed, *position)

	l.logger.Debug("Closed position",
		zap.String("id", id),
		zap.String("reason", reason),
		zap.Float64("exit_price", exitPrice),
		zap.Float64("pnl", pnl),
	)

	return position.Clone(), nil
}

// realizedPnL computes signed pnl and clamps it to the configured multiple
// of notional, recording the anomaly on the position.
func (l *Ledger) realizedPnL(p *types.Position, exitPrice float64) float64 {
	pnl, raw, clamped := l.boundedPnL(p, decimal.NewFromFloat(exitPrice))

	if clamped {
		rawValue, _ := raw.Float64()
		clampedValue, _ := pnl.Float64()

		l.anomalies++
		p.Metadata[MetaPnLClamped] = true
		p.Metadata[MetaRawPnL] = rawValue

		l.logger.Warn("Realized PnL exceeds notional bound, clamped",
			zap.String("id", p.ID),
			zap.Float64("raw_pnl", rawValue),
			zap.Float64("clamped_pnl", clampedValue),
			zap.Float64("notional", p.Notional),
		)
	}

	value, _ := pnl.Float64()

	return value
}

// boundedPnL is the signed pnl of p at price, limited to the clamp multiple
// of entry notional. raw is the unbounded value.
func (l *Ledger) boundedPnL(p *types.Position, price decimal.Decimal) (pnl, raw decimal.Decimal, clamped bool) {
	entry := decimal.NewFromFloat(p.EntryPrice)
	size := decimal.NewFromFloat(p.Size)

	diff := price.Sub(entry)
	if p.Side == types.SideShort {
		diff = entry.Sub(price)
	}

	raw = diff.Mul(size)
	limit := entry.Mul(size).Mul(decimal.NewFromFloat(l.config.PnLClampMultiple))

	if raw.Abs().GreaterThan(limit) {
		return limit.Mul(decimal.NewFromInt(int64(raw.Sign()))), raw, true
	}

	return raw, raw, false
}

// CloseBySymbol closes every open position on symbol in open order.
func (l *Ledger) CloseBySymbol(symbol string, exitPrice float64, at time.Time, reason string) []types.Position {
	return l.closeWhere(func(p *types.Position) bool { return p.Symbol == symbol }, exitPrice, at, reason)
}

// CloseBySide closes every open position on side in open order.
func (l *Ledger) CloseBySide(side types.Side, exitPrice float64, at time.Time, reason string) []types.Position {
	return l.closeWhere(func(p *types.Position) bool { return p.Side == side }, exitPrice, at, reason)
}

// CloseAll closes every open position in open order.
func (l *Ledger) CloseAll(exitPrice float64, at time.Time, reason string) []types.Position {
	return l.closeWhere(func(*types.Position) bool { return true }, exitPrice, at, reason)
}

func (l *Ledger) closeWhere(match func(p *types.Position) bool, exitPrice float64, at time.Time, reason string) []types.Position {
	ids := make([]string, 0, len(l.openOrder))
	for _, id := range l.openOrder {
		if match(l.open[id]) {
			ids = append(ids, id)
		}
	}

	closed := make([]types.Position, 0, len(ids))
	for _, id := range ids {
		position, err := l.ClosePosition(id, exitPrice, at, reason)
		if err != nil {
			l.logger.Error("Failed to close position", zap.String("id", id), zap.Error(err))

			continue
		}

		closed = append(closed, position)
	}

	return closed
}

// CheckStopLosses returns the open positions whose stop is crossed at price.
// Nothing is closed.
func (l *Ledger) CheckStopLosses(price float64) []types.Position {
	var breached []types.Position

	for _, id := range l.openOrder {
		if p := l.open[id]; p.StopBreached(price) {
			breached = append(breached, p.Clone())
		}
	}

	return breached
}

// MarkToMarket stores each open position's unrealized pnl at price and
// returns the total. Unrealized pnl is bounded like realized pnl. A
// non-finite or non-positive price leaves the previous marks in place.
func (l *Ledger) MarkToMarket(price float64) float64 {
	if math.IsNaN(price) || math.IsInf(price, 0) || price <= 0 {
		l.logger.Warn("Ignoring unusable mark price", zap.Float64("price", price))

		return l.markedPnL()
	}

	mark := decimal.NewFromFloat(price)
	total := decimal.Zero

	for _, id := range l.openOrder {
		p := l.open[id]
		pnl, _, clamped := l.boundedPnL(p, mark)

		if clamped {
			l.logger.Debug("Unrealized PnL bounded", zap.String("id", p.ID), zap.Float64("price", price))
		}

		value, _ := pnl.Float64()
		p.Metadata[MetaUnrealizedPnL] = value
		total = total.Add(pnl)
	}

	value, _ := total.Float64()

	return value
}

// markedPnL sums the unrealized pnl stored by the last mark.
func (l *Ledger) markedPnL() float64 {
	total := decimal.Zero

	for _, id := range l.openOrder {
		if pnl, ok := l.open[id].Metadata[MetaUnrealizedPnL].(float64); ok {
			total = total.Add(decimal.NewFromFloat(pnl))
		}
	}

	value, _ := total.Float64()

	return value
}

// RealizedPnL is the sum of realized pnl over closed positions.
func (l *Ledger) RealizedPnL() float64 {
	total := decimal.Zero
	for _, p := range l.closed {
		total = total.Add(decimal.NewFromFloat(p.RealizedPnL))
	}

	value, _ := total.Float64()

	return value
}

// Get returns a copy of the position with id, open or closed.
func (l *Ledger) Get(id string) (types.Position, error) {
	if p, ok := l.open[id]; ok {
		return p.Clone(), nil
	}

	for _, p := range l.closed {
		if p.ID == id {
			return p.Clone(), nil
		}
	}

	return types.Position{}, errors.Newf(errors.ErrCodePositionNotFound, "position %s not found", id)
}

// OpenPositions returns copies of the open positions in open order.
func (l *Ledger) OpenPositions() []types.Position {
	out := make([]types.Position, 0, len(l.openOrder))
	for _, id := range l.openOrder {
		out = append(out, l.open[id].Clone())
	}

	return out
}

// ClosedPositions returns copies of the closed positions in close order.
func (l *Ledger) ClosedPositions() []types.Position {
	out := make([]types.Position, 0, len(l.closed))
	for _, p := range l.closed {
		out = append(out, p.Clone())
	}

	return out
}

func (l *Ledger) OpenCount() int {
	return len(l.open)
}

// Anomalies counts closes whose pnl was clamped.
func (l *Ledger) Anomalies() int {
	return l.anomalies
}

// Reset drops all positions. Ids restart from the same sequence.
func (l *Ledger) Reset() {
	l.open = make(map[string]*types.Position)
	l.openOrder = nil
	l.closed = nil
	l.seq = 0
	l.anomalies = 0
}
