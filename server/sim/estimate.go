package sim

import (
	"fmt"

	"github.com/nathanfoale/skycity-blackjack/server/engine"
)

// Model names the outcome model behind estimated mode.
type Model string

const (
	// EdgeOutcomes follows the true count through EdgeModel.
	EdgeOutcomes Model = "edge"
	// FixedOutcomes is DefaultFixedModel with no blackjack or surrender bonus.
	FixedOutcomes Model = "fixed"
)

// OutcomeModel gives win/lose probabilities for a true count; push is the rest.
type OutcomeModel interface {
	Probabilities(trueCount float64) (win, lose float64)
}

// EdgeModel shifts a 44/44 baseline by half a percent per true count,
// clamped to [0.38, 0.51].
type EdgeModel struct{}

func (EdgeModel) Probabilities(tc float64) (win, lose float64) {
	edge := 0.005 + 0.005*tc
	win = min(0.44+edge, 0.51)
	lose = max(0.44-edge, 0.38)
	return clampProbs(win, lose)
}

// FixedModel ignores the count.
type FixedModel struct {
	Win  float64
	Lose float64
}

// DefaultFixedModel is 42% win, 48% lose, 10% push.
var DefaultFixedModel = FixedModel{Win: 0.42, Lose: 0.48}

func (m FixedModel) Probabilities(float64) (win, lose float64) {
	return clampProbs(m.Win, m.Lose)
}

func clampProbs(win, lose float64) (float64, float64) {
	win = min(max(win, 0), 1)
	lose = min(max(lose, 0), 1-win)
	return win, lose
}

// EstimatedResolver samples the outcome instead of playing the hand. One
// card still leaves the shoe per hand so the count and penetration advance.
// BlackjackChance is the share of wins paid at the blackjack multiplier and
// SurrenderChance the share of losses surrendered when the rules allow it.
type EstimatedResolver struct {
	Model           OutcomeModel
	BlackjackChance float64
	SurrenderChance float64
}

// NewEstimatedResolver builds the resolver for a named model; "" is edge.
func NewEstimatedResolver(m Model) EstimatedResolver {
	if m == FixedOutcomes {
		return EstimatedResolver{Model: DefaultFixedModel}
	}
	return EstimatedResolver{Model: EdgeModel{}, BlackjackChance: 0.05, SurrenderChance: 0.05}
}

func (e EstimatedResolver) Resolve(t *Table, bankroll float64) (HandResult, error) {
	tc := t.Count.TrueCount(t.Shoe.Remaining())
	bet := t.Bets.Size(tc, bankroll, t.Rand)
	res := HandResult{Bet: bet, Wagered: bet, TrueCount: tc}
	if _, err := t.draw(); err != nil {
		return res, fmt.Errorf("burn: %w", err)
	}

	model := e.Model
	if model == nil {
		model = EdgeModel{}
	}
	win, lose := model.Probabilities(tc)
	var delta float64
	switch u := t.Rand.Float64(); {
	case u < win:
		res.Outcome, delta = engine.Win, bet
		if t.Rand.Float64() < e.BlackjackChance {
			res.Outcome, delta = engine.Blackjack, bet*t.Rules.BlackjackPayout
		}
	case u < win+lose:
		res.Outcome, delta = engine.Lose, -bet
		if t.Rules.Surrender && t.Rand.Float64() < e.SurrenderChance {
			res.Outcome, delta = engine.Surrendered, -bet/2
		}
	default:
		res.Outcome = engine.Push
	}
	res.Delta, res.Bankroll = delta, bankroll+delta
	return res, nil
}
