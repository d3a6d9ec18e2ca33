package matching

import (
	"container/list"

	"github.com/Rijish13Ahuja/goQuant/num"
	"github.com/Rijish13Ahuja/goQuant/types"
)

// PriceLevel is a single price's FIFO queue of resting orders plus the
// aggregate leaves quantity across that queue, kept incrementally in sync so
// depth() never has to walk the list.
type PriceLevel struct {
	Price  num.Decimal
	Orders *list.List
	Volume num.Decimal
}

func newPriceLevel(price num.Decimal) *PriceLevel {
	return &PriceLevel{
		Price:  price,
		Orders: list.New(),
		Volume: num.Zero(),
	}
}

// pushBack appends o to the back of the queue and returns the stable handle
// used for O(1) removal later — the "arena of stable handles" the original
// design note calls for, realized with list.Element instead of a hand-rolled
// slab and tombstones.
func (l *PriceLevel) pushBack(o *types.Order) *list.Element {
	e := l.Orders.PushBack(o)
	l.Volume = l.Volume.Add(o.LeavesQuantity())
	return e
}

// remove drops e from the queue and rebalances the aggregate volume by
// whatever its order's leaves quantity was at removal time.
func (l *PriceLevel) remove(e *list.Element) {
	o := e.Value.(*types.Order)
	l.Orders.Remove(e)
	l.Volume = l.Volume.Sub(o.LeavesQuantity())
}

// applyFill records that front's order consumed qty of its leaves,
// rebalancing the level's aggregate in lockstep.
func (l *PriceLevel) applyFill(qty num.Decimal) {
	l.Volume = l.Volume.Sub(qty)
}

func (l *PriceLevel) empty() bool {
	return l.Orders.Len() == 0
}

// front returns the first resting order in price-time priority, or nil if
// the level is empty.
func (l *PriceLevel) front() *list.Element {
	return l.Orders.Front()
}
