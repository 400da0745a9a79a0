package exchange

import (
	"context"
	"fmt"
	"math"
	"sync"

	"github.com/JDENNO91/hyperliquidtradingbot-sub000/internal/types"
	"github.com/JDENNO91/hyperliquidtradingbot-sub000/pkg/errors"
)

// PaperOrder is an order acknowledged by PaperExecutor.
type PaperOrder struct {
	OrderID string  `yaml:"order_id" json:"order_id"`
	Symbol  string  `yaml:"symbol" json:"symbol"`
	IsBuy   bool    `yaml:"is_buy" json:"is_buy"`
	Size    float64 `yaml:"size" json:"size"`
	Price   float64 `yaml:"price" json:"price"`
	// Close is set for CloseMarket orders
	Close bool `yaml:"close" json:"close"`
}

// PaperExecutor acknowledges every valid order in memory. It keeps a net
// size per symbol, positive for long exposure.
type PaperExecutor struct {
	mu     sync.Mutex
	net    map[string]float64
	marks  map[string]float64
	orders []PaperOrder
	seq    int
}

func NewPaperExecutor() *PaperExecutor {
	return &PaperExecutor{
		mu:     sync.Mutex{},
		net:    make(map[string]float64),
		marks:  make(map[string]float64),
		orders: nil,
		seq:    0,
	}
}

// SetMarkPrice sets the price reported on fills for symbol.
func (p *PaperExecutor) SetMarkPrice(symbol string, price float64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.marks[symbol] = price
}

func (p *PaperExecutor) OpenMarket(ctx context.Context, symbol string, isBuy bool, size float64) (types.OrderResult, error) {
	if err := ctx.Err(); err != nil {
		return types.OrderResult{}, errors.Wrap(errors.ErrCodeOrderFailed, "order cancelled", err)
	}

	if !(size > 0) || math.IsInf(size, 0) {
		return rejected(fmt.Sprintf("invalid size %f", size)), errors.Newf(errors.ErrCodeOrderFailed, "invalid order size %f for %s", size, symbol)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if isBuy {
		p.net[symbol] += size
	} else {
		p.net[symbol] -= size
	}

	return p.ack(symbol, isBuy, size, false), nil
}

func (p *PaperExecutor) CloseMarket(ctx context.Context, symbol string) (types.OrderResult, error) {
	if err := ctx.Err(); err != nil {
		return types.OrderResult{}, errors.Wrap(errors.ErrCodeOrderFailed, "order cancelled", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	net := p.net[symbol]
	if net == 0 {
		return rejected("no open position"), errors.Newf(errors.ErrCodeOrderFailed, "no open position on %s", symbol)
	}

	delete(p.net, symbol)

	return p.ack(symbol, net < 0, math.Abs(net), true), nil
}

func (p *PaperExecutor) ack(symbol string, isBuy bool, size float64, isClose bool) types.OrderResult {
	p.seq++
	order := PaperOrder{
		OrderID: fmt.Sprintf("paper-%d", p.seq),
		Symbol:  symbol,
		IsBuy:   isBuy,
		Size:    size,
		Price:   p.marks[symbol],
		Close:   isClose,
	}
	p.orders = append(p.orders, order)

	return types.OrderResult{
		OrderID:     order.OrderID,
		Status:      types.OrderStatusFilled,
		FilledPrice: order.Price,
		FilledSize:  size,
		Message:     "",
	}
}

func rejected(message string) types.OrderResult {
	return types.OrderResult{
		OrderID:     "",
		Status:      types.OrderStatusRejected,
		FilledPrice: 0,
		FilledSize:  0,
		Message:     message,
	}
}

// NetSize returns the net exposure on symbol.
func (p *PaperExecutor) NetSize(symbol string) float64 {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.net[symbol]
}

// Orders returns the acknowledged orders in order.
func (p *PaperExecutor) Orders() []PaperOrder {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]PaperOrder, len(p.orders))
	copy(out, p.orders)

	return out
}
