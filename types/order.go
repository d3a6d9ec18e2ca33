// Package types holds the plain data model shared by matching, conditional
// and engine: orders, trades, conditional orders and their enums. Nothing
// here carries behaviour beyond simple derived-state helpers.
package types

import "github.com/Rijish13Ahuja/goQuant/num"

// OrderType is the order's time-in-force and pricing mode. There is no
// separate GTC/GTT axis: type alone determines both.
type OrderType int

const (
	Market OrderType = iota
	Limit
	IOC
	FOK
)

func (t OrderType) String() string {
	switch t {
	case Market:
		return "MARKET"
	case Limit:
		return "LIMIT"
	case IOC:
		return "IOC"
	case FOK:
		return "FOK"
	default:
		return "UNKNOWN"
	}
}

// Side is BUY or SELL.
type Side int

const (
	Buy Side = iota
	Sell
)

func (s Side) String() string {
	if s == Buy {
		return "BUY"
	}
	return "SELL"
}

// Opposite returns the other side, used throughout the matcher to find the
// book a taker crosses against.
func (s Side) Opposite() Side {
	if s == Buy {
		return Sell
	}
	return Buy
}

// OrderStatus is the order lifecycle state. EXPIRED is this module's own
// seventh value, added to the six the original source carries, for an IOC
// that matched nothing at all.
type OrderStatus int

const (
	Pending OrderStatus = iota
	Active
	PartiallyFilled
	Filled
	Cancelled
	Rejected
	Expired
)

func (s OrderStatus) String() string {
	switch s {
	case Pending:
		return "PENDING"
	case Active:
		return "ACTIVE"
	case PartiallyFilled:
		return "PARTIALLY_FILLED"
	case Filled:
		return "FILLED"
	case Cancelled:
		return "CANCELLED"
	case Rejected:
		return "REJECTED"
	case Expired:
		return "EXPIRED"
	default:
		return "UNKNOWN"
	}
}

// Order is a single inbound or resting order. Price and quantity fields are
// exact decimals; Timestamp is the monotonic acceptance sequence the engine
// assigns when the caller leaves it zero, not wall-clock. The book does not
// read Timestamp: time priority within a price level is the order in which
// orders reached the book's FIFO queue.
type Order struct {
	OrderID        string
	Symbol         string
	Type           OrderType
	Side           Side
	Quantity       num.Decimal
	FilledQuantity num.Decimal
	Price          num.Decimal
	Timestamp      uint64
	Status         OrderStatus
}

// LeavesQuantity returns quantity minus filled quantity. Kept as a derived
// accessor rather than a stored field so the invariant
// filled + leaves == quantity can never drift.
func (o *Order) LeavesQuantity() num.Decimal {
	return o.Quantity.Sub(o.FilledQuantity)
}

// IsResting reports whether o belongs in a book's ladder right now.
func (o *Order) IsResting() bool {
	return (o.Status == Active || o.Status == PartiallyFilled) && num.IsPositive(o.LeavesQuantity())
}

// Fill records a fill of size qty against o, advancing FilledQuantity. Once
// leaves reach zero Status becomes Filled whatever it was before (a taker
// still Pending goes straight to Filled); a partial fill moves Active or
// Pending to PartiallyFilled and leaves any other status unchanged.
func (o *Order) Fill(qty num.Decimal) {
	o.FilledQuantity = o.FilledQuantity.Add(qty)
	if num.IsZero(o.LeavesQuantity()) {
		o.Status = Filled
		return
	}
	if o.Status == Active || o.Status == Pending {
		o.Status = PartiallyFilled
	}
}
