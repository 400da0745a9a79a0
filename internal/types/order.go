package types

import (
	"time"

	"github.com/JDENNO91/hyperliquidtradingbot-sub000/pkg/errors"
)

type PurchaseType string

type OrderType string

type OrderStatus string

const (
	PurchaseTypeBuy  PurchaseType = "BUY"
	PurchaseTypeSell PurchaseType = "SELL"
)

const (
	OrderTypeMarket OrderType = "MARKET"
	OrderTypeLimit  OrderType = "LIMIT"
)

const (
	OrderStatusPending  OrderStatus = "PENDING"
	OrderStatusFilled   OrderStatus = "FILLED"
	OrderStatusRejected OrderStatus = "REJECTED"
	OrderStatusFailed   OrderStatus = "FAILED"
)

// Exit reasons written to positions and trade log records.
const (
	ExitReasonStopLoss            = "stop_loss"
	ExitReasonTakeProfit          = "take_profit"
	ExitReasonMaxHold             = "max_hold"
	ExitReasonStrategy            = "strategy"
	ExitReasonSignal              = "signal"
	ExitReasonMaxDrawdown         = "max_drawdown"
	ExitReasonDrawdownLiquidation = "drawdown_liquidation"
	ExitReasonEngineStop          = "engine_stop"
	ExitReasonEndOfData           = "end_of_data"
)

// Order is what the engine hands an order executor. Entries mirror a
// freshly opened position; exits are reduce-only.
type Order struct {
	PositionID string       `yaml:"position_id" json:"position_id" csv:"position_id" validate:"required"`
	Symbol     string       `yaml:"symbol" json:"symbol" csv:"symbol" validate:"required"`
	Side       PurchaseType `yaml:"side" json:"side" csv:"side" validate:"required,oneof=BUY SELL"`
	OrderType  OrderType    `yaml:"order_type" json:"order_type" csv:"order_type" validate:"required,oneof=MARKET LIMIT"`
	Quantity   float64      `yaml:"quantity" json:"quantity" csv:"quantity" validate:"gt=0"`
	Price      float64      `yaml:"price" json:"price" csv:"price" validate:"gt=0"`
	Leverage   float64      `yaml:"leverage" json:"leverage" csv:"leverage" validate:"gte=1"`
	ReduceOnly bool         `yaml:"reduce_only" json:"reduce_only" csv:"reduce_only"`
	Reason     string       `yaml:"reason" json:"reason" csv:"reason"`
	Time       time.Time    `yaml:"time" json:"time" csv:"time"`
}

// OrderResult is the executor's acknowledgement.
type OrderResult struct {
	OrderID     string      `yaml:"order_id" json:"order_id"`
	Status      OrderStatus `yaml:"status" json:"status"`
	FilledPrice float64     `yaml:"filled_price" json:"filled_price"`
	FilledSize  float64     `yaml:"filled_size" json:"filled_size"`
	Message     string      `yaml:"message" json:"message"`
}

// Validate checks the order is well formed.
func (o Order) Validate() error {
	if err := validate.Struct(o); err != nil {
		return errors.Wrap(errors.ErrCodeOrderFailed, "invalid order", err)
	}

	return nil
}

// NewEntryOrder builds the market order that opens p.
func NewEntryOrder(p Position, leverage float64) Order {
	side := PurchaseTypeBuy
	if p.Side == SideShort {
		side = PurchaseTypeSell
	}

	return Order{
		PositionID: p.ID,
		Symbol:     p.Symbol,
		Side:       side,
		OrderType:  OrderTypeMarket,
		Quantity:   p.Size,
		Price:      p.EntryPrice,
		Leverage:   leverage,
		ReduceOnly: false,
		Reason:     string(p.Side.EntryDirection()),
		Time:       p.EntryTime,
	}
}

// NewExitOrder builds the reduce-only market order that closes p.
// p should already carry its exit price, time and reason.
func NewExitOrder(p Position, leverage float64) Order {
	side := PurchaseTypeSell
	if p.Side == SideShort {
		side = PurchaseTypeBuy
	}

	return Order{
		PositionID: p.ID,
		Symbol:     p.Symbol,
		Side:       side,
		OrderType:  OrderTypeMarket,
		Quantity:   p.Size,
		Price:      p.ExitPrice,
		Leverage:   leverage,
		ReduceOnly: true,
		Reason:     p.ExitReason,
		Time:       p.ExitTime,
	}
}
