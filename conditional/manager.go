// Package conditional stores pending stop-loss, stop-limit, take-profit and
// trailing-stop orders and evaluates them against a per-symbol price signal,
// promoting fired ones into live orders for the engine to submit.
package conditional

import (
	"sync"

	"go.uber.org/zap"

	"github.com/Rijish13Ahuja/goQuant/logging"
	"github.com/Rijish13Ahuja/goQuant/num"
	"github.com/Rijish13Ahuja/goQuant/types"
)

// Manager stores pending conditional orders per symbol and fires them
// against price observations. Storage is a flat map of slices scanned
// linearly for cancel and evaluation — conditional volume is assumed small
// relative to live resting orders, so no tree index is introduced here
// (unlike the price ladder, which is hot-path).
type Manager struct {
	mu      sync.Mutex
	log     *logging.Logger
	pending map[string][]*types.ConditionalOrder
}

// New returns an empty Manager.
func New(cfg *Config) *Manager {
	return &Manager{log: cfg.log, pending: map[string][]*types.ConditionalOrder{}}
}

// Add stores co under its symbol.
func (m *Manager) Add(co *types.ConditionalOrder) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pending[co.Symbol] = append(m.pending[co.Symbol], co)
	m.log.Debug("conditional order registered",
		zap.String("order-id", co.OrderID), zap.String("symbol", co.Symbol), zap.String("kind", co.Kind.String()))
}

// AddStopLoss registers a stop-loss conditional.
func (m *Manager) AddStopLoss(orderID, symbol string, side types.Side, quantity, triggerPrice num.Decimal) {
	m.Add(&types.ConditionalOrder{
		OrderID: orderID, Symbol: symbol, Side: side, Quantity: quantity,
		Kind: types.StopLoss, TriggerPrice: triggerPrice,
	})
}

// AddStopLimit registers a stop-limit conditional: fires into a LIMIT order
// at limitPrice once triggerPrice is crossed.
func (m *Manager) AddStopLimit(orderID, symbol string, side types.Side, quantity, triggerPrice, limitPrice num.Decimal) {
	m.Add(&types.ConditionalOrder{
		OrderID: orderID, Symbol: symbol, Side: side, Quantity: quantity,
		Kind: types.StopLimit, TriggerPrice: triggerPrice, LimitPrice: limitPrice,
	})
}

// AddTakeProfit registers a take-profit conditional.
func (m *Manager) AddTakeProfit(orderID, symbol string, side types.Side, quantity, triggerPrice num.Decimal) {
	m.Add(&types.ConditionalOrder{
		OrderID: orderID, Symbol: symbol, Side: side, Quantity: quantity,
		Kind: types.TakeProfit, TriggerPrice: triggerPrice,
	})
}

// AddTrailingStop registers a trailing-stop conditional with an
// uninitialised trigger: the first price observation seeds it.
func (m *Manager) AddTrailingStop(orderID, symbol string, side types.Side, quantity, trailingDistance num.Decimal) {
	m.Add(&types.ConditionalOrder{
		OrderID: orderID, Symbol: symbol, Side: side, Quantity: quantity,
		Kind: types.TrailingStop, TrailingDistance: trailingDistance, TriggerPrice: num.Zero(),
	})
}

// Cancel removes orderID from whichever symbol holds it. O(n) across all
// pending conditionals is acceptable: conditional volume is small relative
// to live resting orders.
func (m *Manager) Cancel(orderID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for symbol, list := range m.pending {
		for i, co := range list {
			if co.OrderID == orderID {
				m.pending[symbol] = append(list[:i:i], list[i+1:]...)
				m.log.Debug("conditional order cancelled", zap.String("order-id", orderID), zap.String("symbol", symbol))
				return true
			}
		}
	}
	return false
}

// Evaluate observes price p for symbol, ratcheting and firing any
// conditional whose predicate is met. Fired conditionals are converted to
// live Order values (ids minted by newOrderID) and collected into the
// returned slice, but the caller — not Evaluate — is responsible for
// submitting them. This is the deferred-queue rule: Evaluate collects fires
// into a local slice while holding its own lock and returns that slice only
// after the lock is released, so the caller never submits a derived order
// while the manager is locked, which would deadlock on a re-entrant submit
// for the same symbol.
func (m *Manager) Evaluate(symbol string, p num.Decimal, newOrderID func() string, timestamp uint64) []*types.Order {
	m.mu.Lock()
	list := m.pending[symbol]
	remaining := list[:0:0]
	var fired []*types.Order
	for _, co := range list {
		if fires(co, p) {
			co.Triggered = true
			m.log.Info("conditional order triggered",
				zap.String("order-id", co.OrderID), zap.String("symbol", symbol),
				zap.String("kind", co.Kind.String()), zap.String("trigger-price", co.TriggerPrice.String()),
				zap.String("observed-price", p.String()))
			fired = append(fired, co.BuildOrder(newOrderID(), timestamp))
			continue
		}
		remaining = append(remaining, co)
	}
	m.pending[symbol] = remaining
	m.mu.Unlock()
	return fired
}

// fires evaluates (and, for TrailingStop, ratchets) co's trigger predicate
// against price observation p.
func fires(co *types.ConditionalOrder, p num.Decimal) bool {
	switch co.Kind {
	case types.StopLoss, types.StopLimit:
		if co.Side == types.Buy {
			return p.GreaterThanOrEqual(co.TriggerPrice)
		}
		return p.LessThanOrEqual(co.TriggerPrice)
	case types.TakeProfit:
		if co.Side == types.Buy {
			return p.LessThanOrEqual(co.TriggerPrice)
		}
		return p.GreaterThanOrEqual(co.TriggerPrice)
	case types.TrailingStop:
		return ratchetAndCheck(co, p)
	default:
		return false
	}
}

// ratchetAndCheck implements the trailing-stop rule: BUY trails its trigger
// down with falling price (so a recovery fires it), SELL trails its trigger
// up with rising price (so a pullback fires it). Observations that would
// move the trigger against the trail direction are ignored.
func ratchetAndCheck(co *types.ConditionalOrder, p num.Decimal) bool {
	if co.Side == types.Buy {
		candidate := p.Add(co.TrailingDistance)
		if !co.TrailingInitialized() || candidate.LessThan(co.TriggerPrice) {
			co.TriggerPrice = candidate
			co.MarkTrailingInitialized()
		}
		return p.GreaterThanOrEqual(co.TriggerPrice)
	}

	candidate := p.Sub(co.TrailingDistance)
	if !co.TrailingInitialized() || candidate.GreaterThan(co.TriggerPrice) {
		co.TriggerPrice = candidate
		co.MarkTrailingInitialized()
	}
	return p.LessThanOrEqual(co.TriggerPrice)
}
