package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nathanfoale/skycity-blackjack/server/engine"
)

func TestBetUnits(t *testing.T) {
	b := BetSizer{MinBet: 100, Spread: 8, Rounding: engine.Truncate, Counting: true}
	assert.Equal(t, 1, b.Units(-4))
	assert.Equal(t, 1, b.Units(1))
	assert.Equal(t, 1, b.Units(1.9))
	assert.Equal(t, 3, b.Units(3.7))
	assert.Equal(t, 8, b.Units(50))

	b.Rounding = engine.RoundNearest
	assert.Equal(t, 2, b.Units(1.5))
	assert.Equal(t, 4, b.Units(3.7))

	b.Counting = false
	assert.Equal(t, 1, b.Units(6))
}

func TestBetSizeCappedAtBankroll(t *testing.T) {
	b := BetSizer{MinBet: 100, Spread: 10, Rounding: engine.Truncate, Counting: true}
	assert.Equal(t, 500.0, b.Size(5.2, 10000, testRNG()))
	assert.Equal(t, 250.0, b.Size(5.2, 250, testRNG()))
	assert.Equal(t, 40.0, b.Size(0, 40, testRNG()))
	assert.Equal(t, 0.0, b.Size(0, 0, testRNG()))
}

func TestExposureAdjuster(t *testing.T) {
	b := BetSizer{MinBet: 100, Spread: 1, Adjust: ExposureAdjuster{DoubleChance: 1}}
	assert.Equal(t, 200.0, b.Size(0, 10000, testRNG()))

	b.Adjust = ExposureAdjuster{DoubleChance: 1, SplitChance: 1}
	assert.Equal(t, 400.0, b.Size(0, 10000, testRNG()))
	assert.Equal(t, 300.0, b.Size(0, 300, testRNG()), "adjusted bet is still capped")

	b.Adjust = ExposureAdjuster{}
	assert.Equal(t, 100.0, b.Size(0, 10000, testRNG()))
}

func TestNewTableDropsSplitExposureWithoutSplits(t *testing.T) {
	cfg := testConfig()
	cfg.Exposure = &ExposureAdjuster{DoubleChance: DefaultDoubleChance, SplitChance: DefaultSplitChance}

	tbl, err := NewTable(cfg, testRNG())
	assert.NoError(t, err)
	assert.Equal(t, ExposureAdjuster{DoubleChance: DefaultDoubleChance}, tbl.Bets.Adjust)

	cfg.Rules.MaxSplits = 3
	tbl, err = NewTable(cfg, testRNG())
	assert.NoError(t, err)
	assert.Equal(t, *cfg.Exposure, tbl.Bets.Adjust)
}
