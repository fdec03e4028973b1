package sim

import (
	"math/rand/v2"

	"github.com/nathanfoale/skycity-blackjack/server/engine"
)

// Default exposure chances used by the estimated variants.
const (
	DefaultDoubleChance = 0.10
	DefaultSplitChance  = 0.05
)

// Adjuster changes a count-sized wager before the bankroll cap.
type Adjuster interface {
	Adjust(bet float64, rng *rand.Rand) float64
}

// ExposureAdjuster doubles the wager with fixed chances to stand in for
// double-down and split exposure. It is an approximation; split hands are
// never dealt.
type ExposureAdjuster struct {
	DoubleChance float64 `json:"double_chance"`
	SplitChance  float64 `json:"split_chance"`
}

func (e ExposureAdjuster) Adjust(bet float64, rng *rand.Rand) float64 {
	if e.DoubleChance > 0 && rng.Float64() < e.DoubleChance {
		bet *= 2
	}
	if e.SplitChance > 0 && rng.Float64() < e.SplitChance {
		bet *= 2
	}
	return bet
}

// BetSizer turns the true count into a wager.
type BetSizer struct {
	MinBet   float64
	Spread   int
	Rounding engine.Rounding
	Counting bool
	Adjust   Adjuster
}

// Units is the bet multiplier: 1 unless counting and the true count exceeds
// one, then the rounded count capped at the spread.
func (b BetSizer) Units(trueCount float64) int {
	if !b.Counting || trueCount <= 1 {
		return 1
	}
	return min(b.Spread, max(1, b.Rounding.Apply(trueCount)))
}

// Size returns the final wager, never more than the bankroll.
func (b BetSizer) Size(trueCount, bankroll float64, rng *rand.Rand) float64 {
	bet := b.MinBet * float64(b.Units(trueCount))
	if b.Adjust != nil {
		bet = b.Adjust.Adjust(bet, rng)
	}
	return max(0, min(bet, bankroll))
}
