// Package fee provides the maker/taker fee split view: given a trade and
// its notional, who owes what. It is a pure function of its inputs, with no
// stored state beyond the two configured rates — unlike the teacher's own
// fee.Engine, which also tracks asset and reload state this module has no
// use for.
package fee

import (
	"github.com/Rijish13Ahuja/goQuant/num"
	"github.com/Rijish13Ahuja/goQuant/types"
)

// Schedule is a pair of flat fee rates applied to trade notional.
type Schedule struct {
	MakerFee num.Decimal
	TakerFee num.Decimal
}

// Fees is the maker/taker charge for a single trade.
type Fees struct {
	Maker num.Decimal
	Taker num.Decimal
}

// Split returns the maker and taker fee for trade given its notional
// (price * quantity). The result is keyed by maker/taker role, so it does
// not read trade at all — neither IsBuyerMaker nor any side field — and the
// same notional always yields the same split, unlike the original fee
// calculator, which branched on a string compare against the aggressor side.
func (s Schedule) Split(trade *types.Trade, notional num.Decimal) Fees {
	return Fees{
		Maker: s.MakerFee.Mul(notional),
		Taker: s.TakerFee.Mul(notional),
	}
}
