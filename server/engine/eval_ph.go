package engine

import (
	poker "github.com/paulhankin/poker"
)

// Convert our engine.Card -> library card, used for display.
func toPH(c Card) (poker.Card, error) {
	var s poker.Suit
	switch c.Suit {
	case 'c':
		s = poker.Club
	case 'd':
		s = poker.Diamond
	case 'h':
		s = poker.Heart
	default:
		s = poker.Spade
	}
	// Our ranks: 2..14 (Ace=14). Library: 1..13 (Ace=1).
	r := poker.Rank(c.Rank)
	if c.Rank == Ace {
		r = poker.Rank(1)
	}
	return poker.MakeCard(s, r)
}

// Describe renders a hand as bracketed, space-separated card strings.
func Describe(h Hand) string {
	out := "["
	for i, c := range h {
		if i > 0 {
			out += " "
		}
		out += c.String()
	}
	return out + "]"
}
