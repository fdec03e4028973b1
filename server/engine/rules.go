package engine

import (
	"fmt"
	"math"
	"slices"
	"sort"
)

// minCutCards is the smallest reshuffle cutoff; a single hand never needs more.
const minCutCards = 20

// MaxDecks is the largest shoe a table may use.
const MaxDecks = 8

// RuleSet is the house configuration for one table. It is passed by value
// and never mutated once a simulation starts.
type RuleSet struct {
	Decks           int     `json:"decks"`
	Penetration     float64 `json:"penetration"`   // reshuffle when remaining < Penetration * shoe size
	ReshuffleAt     int     `json:"reshuffle_at"`  // absolute cutoff in cards; overrides Penetration when > 0
	BlackjackPayout float64 `json:"blackjack_pay"` // 1.5 for 3:2, 1.2 for 6:5
	HitSoft17       bool    `json:"hit_soft_17"`
	Push22          bool    `json:"push_22"`
	FiveCardCharlie bool    `json:"five_card_charlie"`
	DoubleOn        []int   `json:"double_on,omitempty"` // allowed two-card totals; empty means any
	DoubleHardOnly  bool    `json:"double_hard_only"`
	FreeDoubles     bool    `json:"free_doubles"`
	MaxSplits       int     `json:"max_splits"`
	Surrender       bool    `json:"surrender"`
	Insurance       bool    `json:"insurance"`
	CountingAllowed bool    `json:"counting_allowed"`
	// ContinuousShuffle models a shuffling machine: every hand starts from a full shoe.
	ContinuousShuffle bool `json:"continuous_shuffle"`
}

// ShoeSize is ranks x 4 suits x decks.
func (r RuleSet) ShoeSize() int { return len(Ranks) * len(Suits) * r.Decks }

// CutCard is the remaining-card count below which the shoe is reshuffled.
func (r RuleSet) CutCard() int {
	cut := r.ReshuffleAt
	if cut <= 0 {
		cut = int(math.Ceil(r.Penetration * float64(r.ShoeSize())))
	}
	return max(cut, minCutCards)
}

// CanDouble reports whether the rules permit doubling this hand.
func (r RuleSet) CanDouble(h Hand) bool {
	if len(h) != 2 {
		return false
	}
	if r.DoubleHardOnly && !h.Hard() {
		return false
	}
	return len(r.DoubleOn) == 0 || slices.Contains(r.DoubleOn, h.Value())
}

// Validate checks the table rules in isolation.
func (r RuleSet) Validate() error {
	switch {
	case r.Decks < 1:
		return fmt.Errorf("decks must be >= 1, got %d", r.Decks)
	case r.Decks > MaxDecks:
		return fmt.Errorf("decks must be <= %d, got %d", MaxDecks, r.Decks)
	case r.BlackjackPayout <= 1.0:
		return fmt.Errorf("blackjack payout must be > 1.0, got %v", r.BlackjackPayout)
	case r.ReshuffleAt <= 0 && (r.Penetration <= 0 || r.Penetration >= 1):
		return fmt.Errorf("penetration must be in (0,1), got %v", r.Penetration)
	case r.ReshuffleAt < 0:
		return fmt.Errorf("reshuffle_at must be >= 0, got %d", r.ReshuffleAt)
	case r.MaxSplits < 0:
		return fmt.Errorf("max_splits must be >= 0, got %d", r.MaxSplits)
	}
	if !r.ContinuousShuffle && r.CutCard() >= r.ShoeSize() {
		return fmt.Errorf("reshuffle cutoff %d leaves no playable cards in a %d-card shoe", r.CutCard(), r.ShoeSize())
	}
	return nil
}

var variants = map[string]RuleSet{
	"classic": {
		Decks: 8, Penetration: 0.25, BlackjackPayout: 1.5, HitSoft17: true,
		CountingAllowed: true,
	},
	"crown": {
		Decks: 8, Penetration: 0.25, BlackjackPayout: 1.5, HitSoft17: true,
		DoubleOn: []int{9, 10, 11}, CountingAllowed: true,
	},
	"blackjack-plus": {
		Decks: 8, Penetration: 0.25, BlackjackPayout: 1.2, HitSoft17: true,
		Push22: true, FiveCardCharlie: true, DoubleOn: []int{9, 10, 11},
	},
	"free-bet": {
		Decks: 8, Penetration: 0.25, BlackjackPayout: 1.5, HitSoft17: true,
		Push22: true, FreeDoubles: true, DoubleOn: []int{9, 10, 11},
	},
	"skycity": {
		Decks: 6, Penetration: 0.25, BlackjackPayout: 1.5, HitSoft17: true,
		DoubleOn: []int{9, 10, 11}, DoubleHardOnly: true, MaxSplits: 3,
		Insurance: true, ContinuousShuffle: true,
	},
}

// Variant returns a copy of a named house rule preset.
func Variant(name string) (RuleSet, bool) {
	r, ok := variants[name]
	if ok {
		r.DoubleOn = slices.Clone(r.DoubleOn)
	}
	return r, ok
}

// VariantNames lists presets in sorted order.
func VariantNames() []string {
	out := make([]string, 0, len(variants))
	for k := range variants {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
