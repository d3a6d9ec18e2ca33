package types

import "github.com/Rijish13Ahuja/goQuant/num"

// Trade is one pair-fill between a resting maker and an incoming taker.
// IsBuyerMaker is the only maker/taker-side signal this module carries —
// there is no AggressorSide string field, since deriving fee-side from a
// string compare rather than from who actually rested first is exactly the
// bug this design avoids reproducing.
type Trade struct {
	TradeID      string
	Symbol       string
	Price        num.Decimal
	Quantity     num.Decimal
	Timestamp    uint64
	MakerOrderID string
	TakerOrderID string
	IsBuyerMaker bool
}

// Notional returns Price * Quantity, the base for fee calculation.
func (t *Trade) Notional() num.Decimal {
	return t.Price.Mul(t.Quantity)
}
