package engine

import (
	"fmt"
	"math/rand/v2"
)

// NewDeck returns one ordered 52-card deck.
func NewDeck() []Card {
	deck := make([]Card, 0, 52)
	for s := 0; s < len(Suits); s++ {
		for _, rnk := range Ranks {
			deck = append(deck, Card{Rank: rnk, Suit: Suits[s]})
		}
	}
	return deck
}

// Shuffle applies a uniform Fisher-Yates permutation drawn from r.
func Shuffle(cards []Card, r *rand.Rand) {
	for i := len(cards) - 1; i > 0; i-- {
		j := r.IntN(i + 1)
		cards[i], cards[j] = cards[j], cards[i]
	}
}

// C builds a card from its rank, for tests and fixtures.
func C(r Rank) Card { return Card{Rank: r, Suit: 's'} }

func (c Card) String() string {
	if pc, err := toPH(c); err == nil {
		return fmt.Sprint(pc)
	}
	return fmt.Sprintf("%s%c", c.Rank, c.Suit)
}
