package matching_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rijish13Ahuja/goQuant/logging"
	"github.com/Rijish13Ahuja/goQuant/matching"
	"github.com/Rijish13Ahuja/goQuant/num"
	"github.com/Rijish13Ahuja/goQuant/types"
)

func newTestBook(t *testing.T) *matching.OrderBook {
	t.Helper()
	cfg := matching.NewConfig(logging.NewTestLogger())
	return matching.NewOrderBook(cfg, "BTC-USDT")
}

func limitOrder(id string, side types.Side, qty, price float64, ts uint64) *types.Order {
	return &types.Order{
		OrderID:   id,
		Symbol:    "BTC-USDT",
		Type:      types.Limit,
		Side:      side,
		Quantity:  num.FromFloat(qty),
		Price:     num.FromFloat(price),
		Timestamp: ts,
	}
}

// S1 — Basic cross.
func TestBasicCross(t *testing.T) {
	book := newTestBook(t)
	a := limitOrder("A", types.Buy, 1.0, 50000, 1)
	accepted, trades, err := book.Submit(a)
	require.NoError(t, err)
	require.True(t, accepted)
	require.Empty(t, trades)

	b := limitOrder("B", types.Sell, 1.0, 50000, 2)
	accepted, trades, err = book.Submit(b)
	require.NoError(t, err)
	require.True(t, accepted)
	require.Len(t, trades, 1)

	trade := trades[0]
	assert.True(t, trade.Price.Equal(num.FromFloat(50000)))
	assert.True(t, trade.Quantity.Equal(num.FromFloat(1.0)))
	assert.Equal(t, "A", trade.MakerOrderID)
	assert.Equal(t, "B", trade.TakerOrderID)
	assert.True(t, trade.IsBuyerMaker)

	assert.Equal(t, types.Filled, a.Status)
	assert.Equal(t, types.Filled, b.Status)
	assert.True(t, book.BestBid().IsZero())
	assert.True(t, book.BestAsk().IsZero())
}

// S2 — Price-time priority.
func TestPriceTimePriority(t *testing.T) {
	book := newTestBook(t)
	a := limitOrder("A", types.Buy, 1.0, 50000, 1)
	b := limitOrder("B", types.Buy, 1.0, 50000, 2)
	_, _, err := book.Submit(a)
	require.NoError(t, err)
	_, _, err = book.Submit(b)
	require.NoError(t, err)

	c := limitOrder("C", types.Sell, 1.0, 50000, 3)
	_, trades, err := book.Submit(c)
	require.NoError(t, err)
	require.Len(t, trades, 1)
	assert.Equal(t, "A", trades[0].MakerOrderID)
	assert.Equal(t, types.Filled, a.Status)
	assert.Equal(t, types.Active, b.Status)
	assert.Equal(t, types.Filled, c.Status)
}

// S3 — Market sweep.
func TestMarketSweep(t *testing.T) {
	book := newTestBook(t)
	a := limitOrder("A", types.Sell, 2.0, 51000, 1)
	_, _, err := book.Submit(a)
	require.NoError(t, err)

	b := &types.Order{OrderID: "B", Symbol: "BTC-USDT", Type: types.Market, Side: types.Buy, Quantity: num.FromFloat(1.0), Timestamp: 2}
	_, trades, err := book.Submit(b)
	require.NoError(t, err)
	require.Len(t, trades, 1)
	assert.True(t, trades[0].Price.Equal(num.FromFloat(51000)))
	assert.True(t, trades[0].Quantity.Equal(num.FromFloat(1.0)))
	assert.Equal(t, types.PartiallyFilled, a.Status)
	assert.True(t, a.LeavesQuantity().Equal(num.FromFloat(1.0)))
	assert.Equal(t, types.Filled, b.Status)
	assert.True(t, book.BestAsk().Equal(num.FromFloat(51000)))
}

// S4 — IOC partial.
func TestIOCPartial(t *testing.T) {
	book := newTestBook(t)
	a := limitOrder("A", types.Sell, 0.5, 50000, 1)
	_, _, err := book.Submit(a)
	require.NoError(t, err)

	b := &types.Order{OrderID: "B", Symbol: "BTC-USDT", Type: types.IOC, Side: types.Buy, Quantity: num.FromFloat(1.0), Price: num.FromFloat(50000), Timestamp: 2}
	_, trades, err := book.Submit(b)
	require.NoError(t, err)
	require.Len(t, trades, 1)
	assert.True(t, trades[0].Quantity.Equal(num.FromFloat(0.5)))
	assert.Equal(t, types.PartiallyFilled, b.Status)
	assert.True(t, book.BestAsk().IsZero())
}

// S5 — FOK fail.
func TestFOKFail(t *testing.T) {
	book := newTestBook(t)
	a := limitOrder("A", types.Sell, 0.5, 50000, 1)
	_, _, err := book.Submit(a)
	require.NoError(t, err)

	b := &types.Order{OrderID: "B", Symbol: "BTC-USDT", Type: types.FOK, Side: types.Buy, Quantity: num.FromFloat(1.0), Price: num.FromFloat(50000), Timestamp: 2}
	accepted, trades, err := book.Submit(b)
	assert.False(t, accepted)
	assert.Empty(t, trades)
	assert.ErrorIs(t, err, types.ErrInsufficientLiquidity)
	assert.Equal(t, types.Rejected, b.Status)

	assert.True(t, book.BestAsk().Equal(num.FromFloat(50000)))
	assert.Equal(t, types.Active, a.Status)
	assert.True(t, a.LeavesQuantity().Equal(num.FromFloat(0.5)))
}

// S7 — Modify does not reset priority.
func TestModifyPreservesPriority(t *testing.T) {
	book := newTestBook(t)
	a := limitOrder("A", types.Buy, 2.0, 100, 1)
	b := limitOrder("B", types.Buy, 1.0, 100, 2)
	_, _, err := book.Submit(a)
	require.NoError(t, err)
	_, _, err = book.Submit(b)
	require.NoError(t, err)

	ok, modified := book.Modify("A", num.FromFloat(1.0))
	require.True(t, ok)
	assert.Equal(t, "A", modified.OrderID)

	c := limitOrder("C", types.Sell, 1.0, 100, 3)
	_, trades, err := book.Submit(c)
	require.NoError(t, err)
	require.Len(t, trades, 1)
	assert.Equal(t, "A", trades[0].MakerOrderID)
}

// S8 — Cancel race idempotency.
func TestCancelIdempotent(t *testing.T) {
	book := newTestBook(t)
	a := limitOrder("A", types.Buy, 1.0, 100, 1)
	_, _, err := book.Submit(a)
	require.NoError(t, err)

	ok, cancelled := book.Cancel("A")
	assert.True(t, ok)
	assert.Equal(t, types.Cancelled, cancelled.Status)

	ok, cancelled = book.Cancel("A")
	assert.False(t, ok)
	assert.Nil(t, cancelled)
	assert.True(t, book.BestBid().IsZero())
}

func TestInvalidQuantityRejected(t *testing.T) {
	book := newTestBook(t)
	o := limitOrder("A", types.Buy, 0, 100, 1)
	accepted, trades, err := book.Submit(o)
	assert.False(t, accepted)
	assert.Empty(t, trades)
	assert.ErrorIs(t, err, types.ErrInvalidQuantity)
	assert.Equal(t, types.Rejected, o.Status)
}

func TestInvalidPriceRejectedForLimit(t *testing.T) {
	book := newTestBook(t)
	o := limitOrder("A", types.Buy, 1.0, 0, 1)
	accepted, _, err := book.Submit(o)
	assert.False(t, accepted)
	assert.ErrorIs(t, err, types.ErrInvalidPrice)
}

func TestDepthAggregatesLeaves(t *testing.T) {
	book := newTestBook(t)
	a := limitOrder("A", types.Buy, 1.0, 100, 1)
	b := limitOrder("B", types.Buy, 2.0, 100, 2)
	_, _, _ = book.Submit(a)
	_, _, _ = book.Submit(b)

	bids, asks := book.Depth(10)
	require.Len(t, bids, 1)
	assert.Empty(t, asks)
	assert.True(t, bids[0].Price.Equal(num.FromFloat(100)))
	assert.True(t, bids[0].Volume.Equal(num.FromFloat(3.0)))
}

func TestBookNeverCrossedAfterSubmit(t *testing.T) {
	book := newTestBook(t)
	_, _, _ = book.Submit(limitOrder("A", types.Buy, 1.0, 100, 1))
	_, _, _ = book.Submit(limitOrder("B", types.Sell, 1.0, 105, 2))

	bid := book.BestBid()
	ask := book.BestAsk()
	if num.IsPositive(bid) && num.IsPositive(ask) {
		assert.True(t, bid.LessThan(ask))
	}
}
