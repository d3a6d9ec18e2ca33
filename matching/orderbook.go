package matching

import (
	"container/list"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/Rijish13Ahuja/goQuant/logging"
	"github.com/Rijish13Ahuja/goQuant/num"
	"github.com/Rijish13Ahuja/goQuant/types"
)

// orderLocation is the order_index entry: which side an order rests on,
// the stable list handle for O(1) removal, and the level owning that handle
// so cancel/modify never has to re-search the ladder.
type orderLocation struct {
	side  types.Side
	elem  *list.Element
	level *PriceLevel
}

// OrderBook is the two-sided ladder for one symbol: a bid side, an ask
// side, and an order-id index bijective with every resting order. The
// matching loop (submit -> match -> emit trades -> optionally rest) holds
// mu for its entire duration, preserving strict per-book trade ordering.
type OrderBook struct {
	mu       sync.Mutex
	symbol   string
	cfg      *Config
	bids     *OrderBookSide
	asks     *OrderBookSide
	index    map[string]*orderLocation
	tradeSeq uint64
}

// NewOrderBook constructs an empty book for symbol.
func NewOrderBook(cfg *Config, symbol string) *OrderBook {
	return &OrderBook{
		symbol: symbol,
		cfg:    cfg,
		bids:   newOrderBookSide(types.Buy),
		asks:   newOrderBookSide(types.Sell),
		index:  map[string]*orderLocation{},
	}
}

func (b *OrderBook) sideFor(side types.Side) *OrderBookSide {
	if side == types.Buy {
		return b.bids
	}
	return b.asks
}

func (b *OrderBook) oppositeSide(side types.Side) *OrderBookSide {
	if side == types.Buy {
		return b.asks
	}
	return b.bids
}

// logRemovedOrder traces an order leaving the book, gated on
// Config.LogRemovedOrdersDebug and the logger's own debug level, the same
// double gate the teacher's side.go checks before its own trace calls.
func (b *OrderBook) logRemovedOrder(o *types.Order, reason string) {
	if !b.cfg.LogRemovedOrdersDebug || b.cfg.log.GetLevel() != logging.DebugLevel {
		return
	}
	b.cfg.log.Debug("matching: order removed from book",
		zap.String("symbol", b.symbol),
		zap.String("order-id", o.OrderID),
		zap.String("side", o.Side.String()),
		zap.String("reason", reason))
}

// logRemovedLevel traces a price level emptying out and leaving the ladder,
// gated on Config.LogPriceLevelsDebug and the logger's own debug level.
func (b *OrderBook) logRemovedLevel(side types.Side, level *PriceLevel) {
	if !b.cfg.LogPriceLevelsDebug || b.cfg.log.GetLevel() != logging.DebugLevel {
		return
	}
	b.cfg.log.Debug("matching: price level emptied and removed",
		zap.String("symbol", b.symbol),
		zap.String("side", side.String()),
		zap.String("price", level.Price.String()))
}

// priceGuardOK reports whether a taker may cross at levelPrice: MARKET has
// no guard; BUY requires taker.Price >= levelPrice; SELL requires
// taker.Price <= levelPrice.
func priceGuardOK(taker *types.Order, levelPrice num.Decimal) bool {
	if taker.Type == types.Market {
		return true
	}
	if taker.Side == types.Buy {
		return taker.Price.GreaterThanOrEqual(levelPrice)
	}
	return taker.Price.LessThanOrEqual(levelPrice)
}

// Submit validates, matches and (for LIMIT) rests o. It always returns the
// trades produced even when o is ultimately rejected or dropped — the
// accepted flag distinguishes "processed" (even with zero fill) from
// "rejected before any processing".
func (b *OrderBook) Submit(o *types.Order) (accepted bool, trades []*types.Trade, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := validateOrder(o); err != nil {
		o.Status = types.Rejected
		return false, nil, err
	}
	o.Status = types.Pending

	if o.Type == types.FOK {
		if !b.fokSufficientLiquidity(o) {
			o.Status = types.Rejected
			return false, nil, types.ErrInsufficientLiquidity
		}
	}

	trades = b.match(o)
	b.applyResidual(o)
	return true, trades, nil
}

// match runs the common taker-vs-opposite-side loop shared by MARKET,
// LIMIT, IOC and (post-precheck) FOK: walk the opposite side best-price
// first, respecting the price guard, consuming the front of each level's
// FIFO queue until the taker is filled or the book/guard stops the loop.
func (b *OrderBook) match(taker *types.Order) []*types.Trade {
	var trades []*types.Trade
	opposite := b.oppositeSide(taker.Side)

	for num.IsPositive(taker.LeavesQuantity()) {
		level := opposite.best()
		if level == nil {
			break
		}
		if !priceGuardOK(taker, level.Price) {
			break
		}
		elem := level.front()
		if elem == nil {
			b.cfg.log.Panic("matching: price level reported positive volume with no resting order at its front",
				zap.String("symbol", b.symbol),
				zap.String("price", level.Price.String()),
				zap.String("taker-order-id", taker.OrderID),
				zap.String("side", taker.Side.String()))
		}
		maker := elem.Value.(*types.Order)

		fill := num.Min(taker.LeavesQuantity(), maker.LeavesQuantity())
		execPrice := maker.Price

		taker.Fill(fill)
		maker.Fill(fill)
		level.applyFill(fill)

		b.tradeSeq++
		trades = append(trades, &types.Trade{
			TradeID:      fmt.Sprintf("%s-%d", b.symbol, b.tradeSeq),
			Symbol:       b.symbol,
			Price:        execPrice,
			Quantity:     fill,
			Timestamp:    b.tradeSeq,
			MakerOrderID: maker.OrderID,
			TakerOrderID: taker.OrderID,
			IsBuyerMaker: maker.Side == types.Buy,
		})

		if maker.Status == types.Filled {
			level.remove(elem)
			delete(b.index, maker.OrderID)
			b.logRemovedOrder(maker, "filled")
		}
		if level.empty() {
			b.logRemovedLevel(opposite.side, level)
			opposite.removeLevelIfEmpty(level)
		}
	}
	return trades
}

// fokSufficientLiquidity sums leaves_quantity across opposite-side levels
// that satisfy o's price guard, best-first, stopping as soon as the guard
// fails or the running sum already covers o's full size. No state is
// touched; this is a pure read used only to decide whether match() may run
// at all for a FOK order.
func (b *OrderBook) fokSufficientLiquidity(o *types.Order) bool {
	opposite := b.oppositeSide(o.Side)
	need := o.LeavesQuantity()
	sum := num.Zero()
	sufficient := false
	opposite.walk(func(level *PriceLevel) bool {
		if !priceGuardOK(o, level.Price) {
			return false
		}
		sum = sum.Add(level.Volume)
		if sum.GreaterThanOrEqual(need) {
			sufficient = true
			return false
		}
		return true
	})
	return sufficient
}

// applyResidual handles whatever is left of o once match() returns:
// LIMIT rests it, MARKET/IOC/FOK drop it with the status the state machine
// names for that path.
func (b *OrderBook) applyResidual(o *types.Order) {
	if num.IsZero(o.LeavesQuantity()) {
		return // Fill() already moved o to Filled
	}
	switch o.Type {
	case types.Limit:
		if num.IsPositive(o.FilledQuantity) {
			o.Status = types.PartiallyFilled
		} else {
			o.Status = types.Active
		}
		b.rest(o)
	case types.Market:
		o.Status = types.Cancelled
	default: // IOC, FOK
		if num.IsPositive(o.FilledQuantity) {
			o.Status = types.Cancelled
		} else {
			o.Status = types.Expired
		}
	}
}

func (b *OrderBook) rest(o *types.Order) {
	side := b.sideFor(o.Side)
	level := side.getOrCreateLevel(o.Price)
	elem := level.pushBack(o)
	b.index[o.OrderID] = &orderLocation{side: o.Side, elem: elem, level: level}
}

// Cancel removes orderID from the book. Idempotent: a second call for the
// same id returns false without touching any state. The second return value
// is the cancelled order itself (nil if not found), so a caller holding no
// other reference can still emit a terminal order-update.
func (b *OrderBook) Cancel(orderID string) (bool, *types.Order) {
	b.mu.Lock()
	defer b.mu.Unlock()

	loc, ok := b.index[orderID]
	if !ok {
		return false, nil
	}
	o := loc.elem.Value.(*types.Order)
	loc.level.remove(loc.elem)
	delete(b.index, orderID)
	o.Status = types.Cancelled
	b.logRemovedOrder(o, "cancelled")
	if loc.level.empty() {
		b.logRemovedLevel(loc.side, loc.level)
	}
	b.sideFor(loc.side).removeLevelIfEmpty(loc.level)
	return true, o
}

// Modify changes only the quantity of a resting order, rejecting a reduction
// below the already-filled amount, and never touches its queue position —
// size-down keeps priority. The second return value is the modified order
// (nil if not found or rejected).
func (b *OrderBook) Modify(orderID string, newQuantity num.Decimal) (bool, *types.Order) {
	b.mu.Lock()
	defer b.mu.Unlock()

	loc, ok := b.index[orderID]
	if !ok {
		return false, nil
	}
	o := loc.elem.Value.(*types.Order)
	if newQuantity.LessThan(o.FilledQuantity) {
		return false, nil
	}

	oldLeaves := o.LeavesQuantity()
	o.Quantity = newQuantity
	newLeaves := o.LeavesQuantity()
	loc.level.Volume = loc.level.Volume.Add(newLeaves.Sub(oldLeaves))

	if num.IsZero(newLeaves) {
		loc.level.remove(loc.elem)
		delete(b.index, orderID)
		o.Status = types.Filled
		b.logRemovedOrder(o, "modify-drained-to-zero")
		if loc.level.empty() {
			b.logRemovedLevel(loc.side, loc.level)
		}
		b.sideFor(loc.side).removeLevelIfEmpty(loc.level)
	}
	return true, o
}

// BestBid returns the highest resting bid price, or zero if the bid side is
// empty.
func (b *OrderBook) BestBid() num.Decimal {
	b.mu.Lock()
	defer b.mu.Unlock()
	if level := b.bids.best(); level != nil {
		return level.Price
	}
	return num.Zero()
}

// BestAsk returns the lowest resting ask price, or zero if the ask side is
// empty.
func (b *OrderBook) BestAsk() num.Decimal {
	b.mu.Lock()
	defer b.mu.Unlock()
	if level := b.asks.best(); level != nil {
		return level.Price
	}
	return num.Zero()
}

// PriceVolume is one (price, aggregate_leaves_quantity) pair in a depth
// snapshot.
type PriceVolume struct {
	Price  num.Decimal
	Volume num.Decimal
}

func levels(side *OrderBookSide, n int) []PriceVolume {
	out := make([]PriceVolume, 0, n)
	side.walk(func(level *PriceLevel) bool {
		if len(out) >= n {
			return false
		}
		out = append(out, PriceVolume{Price: level.Price, Volume: level.Volume})
		return true
	})
	return out
}

// Depth returns up to n (price, aggregate_leaves_quantity) pairs per side,
// best first, taken under the book's mutex so the pair is an internally
// consistent snapshot.
func (b *OrderBook) Depth(n int) (bidLevels, askLevels []PriceVolume) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return levels(b.bids, n), levels(b.asks, n)
}
