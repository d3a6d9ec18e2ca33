package conditional_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rijish13Ahuja/goQuant/conditional"
	"github.com/Rijish13Ahuja/goQuant/logging"
	"github.com/Rijish13Ahuja/goQuant/num"
	"github.com/Rijish13Ahuja/goQuant/types"
)

func newManager(t *testing.T) *conditional.Manager {
	t.Helper()
	return conditional.New(conditional.NewConfig(logging.NewTestLogger()))
}

func idSource(next *uint64) func() string {
	return func() string {
		*next++
		return "derived"
	}
}

// S6 — Trailing sell.
func TestTrailingSellRatchet(t *testing.T) {
	m := newManager(t)
	m.AddTrailingStop("T1", "BTC-USDT", types.Sell, num.FromFloat(1.0), num.FromFloat(100))

	var seq uint64
	prices := []float64{50000, 50050, 50200, 50150, 50090}
	var allFired []*types.Order
	for i, p := range prices {
		fired := m.Evaluate("BTC-USDT", num.FromFloat(p), idSource(&seq), uint64(i+1))
		allFired = append(allFired, fired...)
	}

	require.Len(t, allFired, 1)
	assert.Equal(t, types.Sell, allFired[0].Side)
	assert.True(t, allFired[0].Quantity.Equal(num.FromFloat(1.0)))
	assert.Equal(t, types.Market, allFired[0].Type)
}

func TestTrailingSellIgnoresAdverseCandidate(t *testing.T) {
	m := newManager(t)
	m.AddTrailingStop("T1", "BTC-USDT", types.Sell, num.FromFloat(1.0), num.FromFloat(100))

	var seq uint64
	// Ratchet up to 50100, then observe a price whose candidate (50050) is
	// below the current trigger: must be ignored, not fired (50150 > 50100).
	fired := m.Evaluate("BTC-USDT", num.FromFloat(50200), idSource(&seq), 1)
	assert.Empty(t, fired)
	fired = m.Evaluate("BTC-USDT", num.FromFloat(50150), idSource(&seq), 2)
	assert.Empty(t, fired)
}

func TestStopLossBuyFires(t *testing.T) {
	m := newManager(t)
	m.AddStopLoss("S1", "BTC-USDT", types.Buy, num.FromFloat(1.0), num.FromFloat(50000))

	var seq uint64
	fired := m.Evaluate("BTC-USDT", num.FromFloat(49999), idSource(&seq), 1)
	assert.Empty(t, fired)
	fired = m.Evaluate("BTC-USDT", num.FromFloat(50000), idSource(&seq), 2)
	require.Len(t, fired, 1)
	assert.Equal(t, types.Buy, fired[0].Side)
}

func TestTakeProfitSellFires(t *testing.T) {
	m := newManager(t)
	m.AddTakeProfit("TP1", "BTC-USDT", types.Sell, num.FromFloat(1.0), num.FromFloat(51000))

	var seq uint64
	fired := m.Evaluate("BTC-USDT", num.FromFloat(50900), idSource(&seq), 1)
	assert.Empty(t, fired)
	fired = m.Evaluate("BTC-USDT", num.FromFloat(51000), idSource(&seq), 2)
	require.Len(t, fired, 1)
}

func TestCancelConditional(t *testing.T) {
	m := newManager(t)
	m.AddStopLoss("S1", "BTC-USDT", types.Buy, num.FromFloat(1.0), num.FromFloat(50000))

	assert.True(t, m.Cancel("S1"))
	assert.False(t, m.Cancel("S1"))

	var seq uint64
	fired := m.Evaluate("BTC-USDT", num.FromFloat(60000), idSource(&seq), 1)
	assert.Empty(t, fired)
}

func TestStopLimitFiresIntoLimitOrder(t *testing.T) {
	m := newManager(t)
	m.AddStopLimit("SL1", "BTC-USDT", types.Buy, num.FromFloat(1.0), num.FromFloat(50000), num.FromFloat(50010))

	var seq uint64
	fired := m.Evaluate("BTC-USDT", num.FromFloat(50000), idSource(&seq), 1)
	require.Len(t, fired, 1)
	assert.Equal(t, types.Limit, fired[0].Type)
	assert.True(t, fired[0].Price.Equal(num.FromFloat(50010)))
}
