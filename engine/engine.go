// Package engine owns the symbol -> OrderBook map, routes submissions and
// cancels to the right book, drives the conditional-order layer on each
// price tick, and publishes trade/order-update events to registered
// subscribers.
package engine

import (
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/Rijish13Ahuja/goQuant/conditional"
	"github.com/Rijish13Ahuja/goQuant/matching"
	"github.com/Rijish13Ahuja/goQuant/metrics"
	"github.com/Rijish13Ahuja/goQuant/num"
	"github.com/Rijish13Ahuja/goQuant/types"
)

var matchLatencyBuckets = []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05}

// Engine is the top-level entry point: one per process, holding every
// symbol's book plus the conditional-order manager. The map mutex is held
// only long enough to look up or create a book; all matching work happens
// after it is released, so a slow match on one symbol never blocks lookups
// on another.
type Engine struct {
	mu       sync.RWMutex
	books    map[string]*matching.OrderBook
	cfg      *Config
	matchCfg *matching.Config
	cond     *conditional.Manager

	seq uint64 // monotonic acceptance-timestamp source

	cbMu           sync.Mutex
	tradeCallbacks []func(*types.Trade)
	orderCallbacks []func(*types.Order)

	totalOrders  *metrics.ThroughputCounter
	totalTrades  *metrics.ThroughputCounter
	matchLatency *metrics.LatencyHistogram
}

// New constructs an Engine with no symbols registered yet.
func New(cfg *Config, matchCfg *matching.Config, cond *conditional.Manager) *Engine {
	return &Engine{
		books:        map[string]*matching.OrderBook{},
		cfg:          cfg,
		matchCfg:     matchCfg,
		cond:         cond,
		totalOrders:  metrics.NewThroughputCounter(nil, "goquant_total_orders", "accepted order submissions"),
		totalTrades:  metrics.NewThroughputCounter(nil, "goquant_total_trades", "emitted trades"),
		matchLatency: metrics.NewLatencyHistogram(nil, "goquant_match_latency_seconds", "submit-to-match wall time", matchLatencyBuckets),
	}
}

func (e *Engine) nextTimestamp() uint64 {
	return atomic.AddUint64(&e.seq, 1)
}

// AddSymbol creates symbol's book if it does not already exist.
func (e *Engine) AddSymbol(symbol string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.books[symbol]; ok {
		return
	}
	e.books[symbol] = matching.NewOrderBook(e.matchCfg, symbol)
	e.cfg.log.Info("symbol registered", zap.String("symbol", symbol))
}

func (e *Engine) lookupBook(symbol string) (*matching.OrderBook, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	b, ok := e.books[symbol]
	return b, ok
}

// SubmitOrder stamps a timestamp if the caller did not supply one,
// delegates to the symbol's book, then publishes trades and the order's own
// terminal/resting update. Submissions for an unknown symbol are rejected
// with no side effects.
func (e *Engine) SubmitOrder(o *types.Order) (accepted bool, trades []*types.Trade, err error) {
	book, ok := e.lookupBook(o.Symbol)
	if !ok {
		e.cfg.log.Warn("order rejected: unknown symbol",
			zap.String("symbol", o.Symbol), zap.String("order-id", o.OrderID))
		return false, nil, types.ErrUnknownSymbol
	}
	if o.Timestamp == 0 {
		o.Timestamp = e.nextTimestamp()
	}

	started := time.Now()
	accepted, trades, err = book.Submit(o)
	e.matchLatency.Add(time.Since(started))
	if accepted {
		e.totalOrders.IncrementOne()
	}
	for _, t := range trades {
		e.totalTrades.IncrementOne()
		e.publishTrade(t)
	}
	e.publishOrderUpdate(o)
	return accepted, trades, err
}

// CancelOrder delegates to symbol's book and publishes the terminal
// order-update on success.
func (e *Engine) CancelOrder(symbol, orderID string) (bool, error) {
	book, ok := e.lookupBook(symbol)
	if !ok {
		e.cfg.log.Warn("cancel rejected: unknown symbol", zap.String("symbol", symbol), zap.String("order-id", orderID))
		return false, types.ErrUnknownSymbol
	}
	ok, o := book.Cancel(orderID)
	if ok {
		e.publishOrderUpdate(o)
	}
	return ok, nil
}

// ModifyOrder delegates to symbol's book and publishes an order-update on
// success (including the terminal FILLED update if the modification drained
// the order's leaves entirely).
func (e *Engine) ModifyOrder(symbol, orderID string, newQuantity num.Decimal) (bool, error) {
	book, ok := e.lookupBook(symbol)
	if !ok {
		e.cfg.log.Warn("modify rejected: unknown symbol", zap.String("symbol", symbol), zap.String("order-id", orderID))
		return false, types.ErrUnknownSymbol
	}
	ok, o := book.Modify(orderID, newQuantity)
	if ok {
		e.publishOrderUpdate(o)
	}
	return ok, nil
}

// UpdateMarketPrice is the hook the outer loop calls once per price
// observation for symbol. It forwards to the conditional manager, then
// replays any fired conditionals through SubmitOrder only after the
// manager's own lock has been released — the manager must never call back
// into SubmitOrder while holding it, since a fired conditional's symbol is
// always the same symbol currently being observed.
func (e *Engine) UpdateMarketPrice(symbol string, price num.Decimal) {
	fired := e.cond.Evaluate(symbol, price, func() string { return e.mintConditionalOrderID() }, e.nextTimestamp())
	if len(fired) > 0 {
		e.cfg.log.Info("conditional orders fired",
			zap.String("symbol", symbol), zap.String("price", price.String()), zap.Int("count", len(fired)))
	}
	for _, o := range fired {
		_, _, _ = e.SubmitOrder(o)
	}
}

func (e *Engine) mintConditionalOrderID() string {
	return "cond-" + strconv.FormatUint(e.nextTimestamp(), 10)
}

// GetOrderBook returns a read-only view of symbol's book, if it exists.
func (e *Engine) GetOrderBook(symbol string) (*matching.OrderBookView, bool) {
	book, ok := e.lookupBook(symbol)
	if !ok {
		return nil, false
	}
	return matching.NewOrderBookView(book), true
}

// OnTrade registers a callback invoked once per emitted trade, in the order
// the matching loop produced them for that symbol.
func (e *Engine) OnTrade(cb func(*types.Trade)) {
	e.cbMu.Lock()
	defer e.cbMu.Unlock()
	e.tradeCallbacks = append(e.tradeCallbacks, cb)
}

// OnOrderUpdate registers a callback invoked once per SubmitOrder on a known
// symbol with the submitted order in its post-match status, and with the
// affected order after a successful CancelOrder or ModifyOrder. Resting
// maker orders filled during a match are not passed to it; their fills are
// visible only through OnTrade.
func (e *Engine) OnOrderUpdate(cb func(*types.Order)) {
	e.cbMu.Lock()
	defer e.cbMu.Unlock()
	e.orderCallbacks = append(e.orderCallbacks, cb)
}

func (e *Engine) publishTrade(t *types.Trade) {
	e.cbMu.Lock()
	cbs := e.tradeCallbacks
	e.cbMu.Unlock()
	for _, cb := range cbs {
		cb(t)
	}
}

func (e *Engine) publishOrderUpdate(o *types.Order) {
	if o == nil {
		return
	}
	e.cbMu.Lock()
	cbs := e.orderCallbacks
	e.cbMu.Unlock()
	for _, cb := range cbs {
		cb(o)
	}
}

// TotalOrders returns the count of accepted submissions across every
// symbol, regardless of fill outcome.
func (e *Engine) TotalOrders() uint64 { return e.totalOrders.Count() }

// TotalTrades returns the count of emitted trades across every symbol.
func (e *Engine) TotalTrades() uint64 { return e.totalTrades.Count() }

// ThroughputPerSecond returns accepted-order rate since the engine was
// constructed.
func (e *Engine) ThroughputPerSecond() float64 { return e.totalOrders.PerSecond() }

// MatchLatencyPercentile returns the p-th percentile (0..100) of recorded
// submit-to-match wall time across every symbol this engine owns.
func (e *Engine) MatchLatencyPercentile(p float64) time.Duration {
	return e.matchLatency.Percentile(p)
}
