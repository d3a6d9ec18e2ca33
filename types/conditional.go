package types

import "github.com/Rijish13Ahuja/goQuant/num"

// ConditionalKind selects the trigger predicate a ConditionalOrder uses.
type ConditionalKind int

const (
	StopLoss ConditionalKind = iota
	StopLimit
	TakeProfit
	TrailingStop
)

func (k ConditionalKind) String() string {
	switch k {
	case StopLoss:
		return "STOP_LOSS"
	case StopLimit:
		return "STOP_LIMIT"
	case TakeProfit:
		return "TAKE_PROFIT"
	case TrailingStop:
		return "TRAILING_STOP"
	default:
		return "UNKNOWN"
	}
}

// ConditionalOrder is a pending stop/take-profit/trailing-stop instruction.
// It holds no book state of its own; on fire it is turned into a fresh
// Order and handed to the engine.
type ConditionalOrder struct {
	OrderID          string
	Symbol           string
	Side             Side
	Quantity         num.Decimal
	Kind             ConditionalKind
	TriggerPrice     num.Decimal
	LimitPrice       num.Decimal
	TrailingDistance num.Decimal
	Triggered        bool

	// trailingInitialized tracks whether TriggerPrice has been set by at
	// least one ratchet observation yet. A TrailingStop starts with an
	// unset trigger (conceptually "uninitialised", per the ratchet rule),
	// not with TriggerPrice == 0, since 0 is itself a valid ratcheted value.
	trailingInitialized bool
}

// TrailingInitialized reports whether the trailing ratchet has ever moved
// TriggerPrice away from its uninitialised state.
func (c *ConditionalOrder) TrailingInitialized() bool {
	return c.trailingInitialized
}

// MarkTrailingInitialized records that TriggerPrice now holds a real
// ratcheted value.
func (c *ConditionalOrder) MarkTrailingInitialized() {
	c.trailingInitialized = true
}

// BuildOrder constructs the live Order this conditional fires into: LIMIT if
// LimitPrice is positive, MARKET otherwise, with a fresh order id supplied by
// the caller (the conditional manager never mints its own ids).
func (c *ConditionalOrder) BuildOrder(newOrderID string, timestamp uint64) *Order {
	ot := Market
	price := num.Zero()
	if num.IsPositive(c.LimitPrice) {
		ot = Limit
		price = c.LimitPrice
	}
	return &Order{
		OrderID:   newOrderID,
		Symbol:    c.Symbol,
		Type:      ot,
		Side:      c.Side,
		Quantity:  c.Quantity,
		Price:     price,
		Timestamp: timestamp,
		Status:    Pending,
	}
}
