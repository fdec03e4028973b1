package engine

import (
	"errors"
	"math/rand/v2"
)

// ErrEmptyShoe means a card was drawn from an exhausted shoe. The reshuffle
// cutoff should make this unreachable, so callers treat it as fatal.
var ErrEmptyShoe = errors.New("draw from empty shoe")

// Shoe is the multi-deck sequence cards are dealt from. A Shoe belongs to a
// single session and is not safe for concurrent use.
type Shoe struct {
	cards      []Card
	size       int
	cut        int
	continuous bool
	dealt      bool // a card left the shoe since the last shuffle
	rng        *rand.Rand
}

// NewShoe builds decks x 52 cards and shuffles them with rng.
func NewShoe(rules RuleSet, rng *rand.Rand) *Shoe {
	s := &Shoe{
		size:       rules.ShoeSize(),
		cut:        rules.CutCard(),
		continuous: rules.ContinuousShuffle,
		rng:        rng,
	}
	s.cards = make([]Card, 0, s.size)
	s.Reshuffle()
	return s
}

// Reshuffle restores every card and shuffles.
func (s *Shoe) Reshuffle() {
	s.cards = s.cards[:0]
	for len(s.cards) < s.size {
		s.cards = append(s.cards, NewDeck()...)
	}
	Shuffle(s.cards, s.rng)
	s.dealt = false
}

// Draw removes and returns the card at the end of the shoe.
func (s *Shoe) Draw() (Card, error) {
	n := len(s.cards)
	if n == 0 {
		return Card{}, ErrEmptyShoe
	}
	c := s.cards[n-1]
	s.cards = s.cards[:n-1]
	s.dealt = true
	return c, nil
}

// NeedsReshuffle is checked between hands only.
func (s *Shoe) NeedsReshuffle() bool {
	if s.continuous {
		return s.dealt
	}
	return len(s.cards) < s.cut
}

func (s *Shoe) Remaining() int { return len(s.cards) }

// Size is the full-shoe card count.
func (s *Shoe) Size() int { return s.size }

// Stack replaces the undealt cards so that the given cards come out in
// order. It is meant for tests and replaying fixed deals.
func (s *Shoe) Stack(cards ...Card) {
	s.cards = s.cards[:0]
	for i := len(cards) - 1; i >= 0; i-- {
		s.cards = append(s.cards, cards[i])
	}
}
