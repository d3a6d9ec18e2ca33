package fee_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Rijish13Ahuja/goQuant/fee"
	"github.com/Rijish13Ahuja/goQuant/num"
	"github.com/Rijish13Ahuja/goQuant/types"
)

func TestSplitUsesNotionalTimesRate(t *testing.T) {
	s := fee.Schedule{MakerFee: num.FromFloat(0.001), TakerFee: num.FromFloat(0.002)}
	trade := &types.Trade{Price: num.FromFloat(50000), Quantity: num.FromFloat(1.0), IsBuyerMaker: true}
	notional := trade.Notional()

	fees := s.Split(trade, notional)
	assert.True(t, fees.Maker.Equal(num.FromFloat(50)))
	assert.True(t, fees.Taker.Equal(num.FromFloat(100)))
}

func TestSplitIndependentOfBuyerMakerFlag(t *testing.T) {
	s := fee.Schedule{MakerFee: num.FromFloat(0.001), TakerFee: num.FromFloat(0.002)}
	notional := num.FromFloat(50000)

	buyerMaker := s.Split(&types.Trade{IsBuyerMaker: true}, notional)
	sellerMaker := s.Split(&types.Trade{IsBuyerMaker: false}, notional)
	assert.True(t, buyerMaker.Maker.Equal(sellerMaker.Maker))
	assert.True(t, buyerMaker.Taker.Equal(sellerMaker.Taker))
}
