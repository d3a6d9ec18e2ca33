package matching

import "github.com/Rijish13Ahuja/goQuant/num"

// OrderBookView is the read-only snapshot handle handed to introspection
// callers: BestBid, BestAsk and the two depth accessors, each taken under
// the underlying book's mutex so every call sees an internally consistent
// moment, without exposing Submit/Cancel/Modify to a read-only consumer.
type OrderBookView struct {
	book *OrderBook
}

// NewOrderBookView wraps book for read-only introspection use.
func NewOrderBookView(book *OrderBook) *OrderBookView {
	return &OrderBookView{book: book}
}

func (v *OrderBookView) BestBid() num.Decimal { return v.book.BestBid() }
func (v *OrderBookView) BestAsk() num.Decimal { return v.book.BestAsk() }

// BidLevels returns up to n (price, aggregate_leaves_quantity) pairs on the
// bid side, best (highest price) first.
func (v *OrderBookView) BidLevels(n int) []PriceVolume {
	bids, _ := v.book.Depth(n)
	return bids
}

// AskLevels returns up to n (price, aggregate_leaves_quantity) pairs on the
// ask side, best (lowest price) first.
func (v *OrderBookView) AskLevels(n int) []PriceVolume {
	_, asks := v.book.Depth(n)
	return asks
}
