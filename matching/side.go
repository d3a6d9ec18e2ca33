package matching

import (
	"github.com/google/btree"

	"github.com/Rijish13Ahuja/goQuant/num"
	"github.com/Rijish13Ahuja/goQuant/types"
)

// OrderBookSide is one side (bids or asks) of a book's ladder: price levels
// ordered in a btree.BTreeG so Ascend always visits best-price-first,
// whichever direction "best" means for this side. Bids order descending by
// price, asks ascending — the same convention the teacher's side
// implementations use, completed here with the generic btree API the
// teacher's own PriceLevel.Less intended but never finished wiring up.
type OrderBookSide struct {
	side types.Side
	tree *btree.BTreeG[*PriceLevel]
}

func bidLess(a, b *PriceLevel) bool {
	return a.Price.GreaterThan(b.Price)
}

func askLess(a, b *PriceLevel) bool {
	return a.Price.LessThan(b.Price)
}

func newOrderBookSide(side types.Side) *OrderBookSide {
	less := askLess
	if side == types.Buy {
		less = bidLess
	}
	return &OrderBookSide{
		side: side,
		tree: btree.NewG(2, less),
	}
}

// getOrCreateLevel returns the PriceLevel for price, creating and inserting
// an empty one into the tree if none exists yet.
func (s *OrderBookSide) getOrCreateLevel(price num.Decimal) *PriceLevel {
	probe := &PriceLevel{Price: price}
	if existing, ok := s.tree.Get(probe); ok {
		return existing
	}
	level := newPriceLevel(price)
	s.tree.ReplaceOrInsert(level)
	return level
}

// getLevel returns the PriceLevel for price if one exists.
func (s *OrderBookSide) getLevel(price num.Decimal) (*PriceLevel, bool) {
	return s.tree.Get(&PriceLevel{Price: price})
}

// removeLevelIfEmpty drops level from the tree once its queue has drained,
// so an empty level never lingers and shows up in depth().
func (s *OrderBookSide) removeLevelIfEmpty(level *PriceLevel) {
	if level.empty() {
		s.tree.Delete(level)
	}
}

// best returns the best (first-crossed) price level for this side, or nil
// if the side is empty.
func (s *OrderBookSide) best() *PriceLevel {
	level, ok := s.tree.Min()
	if !ok {
		return nil
	}
	return level
}

// walk visits price levels in best-first order until fn returns false.
func (s *OrderBookSide) walk(fn func(*PriceLevel) bool) {
	s.tree.Ascend(func(level *PriceLevel) bool {
		return fn(level)
	})
}

func (s *OrderBookSide) empty() bool {
	return s.tree.Len() == 0
}

func (s *OrderBookSide) len() int {
	return s.tree.Len()
}
