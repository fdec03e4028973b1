package engine

import "fmt"

// Rank is a card rank, 2..14 with Ace=14.
type Rank uint8

const (
	Two   Rank = 2
	Three Rank = 3
	Four  Rank = 4
	Five  Rank = 5
	Six   Rank = 6
	Seven Rank = 7
	Eight Rank = 8
	Nine  Rank = 9
	Ten   Rank = 10
	Jack  Rank = 11
	Queen Rank = 12
	King  Rank = 13
	Ace   Rank = 14
)

// Ranks lists every rank in shoe-building order.
var Ranks = [...]Rank{Two, Three, Four, Five, Six, Seven, Eight, Nine, Ten, Jack, Queen, King, Ace}

// Suits in shoe-building order.
const Suits = "cdhs"

// Points is the blackjack point value: face value for 2-9, 10 for tens and
// faces, 11 for an Ace (reduced to 1 by hand evaluation).
func (r Rank) Points() int {
	switch {
	case r == Ace:
		return 11
	case r >= Ten:
		return 10
	default:
		return int(r)
	}
}

// Valid reports whether r is one of the thirteen ranks.
func (r Rank) Valid() bool { return r >= Two && r <= Ace }

func (r Rank) String() string {
	switch r {
	case Ten:
		return "10"
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	case Ace:
		return "A"
	}
	if r.Valid() {
		return fmt.Sprintf("%d", r)
	}
	return "?"
}

type Card struct {
	Rank Rank
	Suit byte
} // e.g. "Ah" => Rank Ace, suit 'h'

// Action is a player decision.
type Action string

const (
	Hit       Action = "hit"
	Stand     Action = "stand"
	Double    Action = "double"
	Surrender Action = "surrender"
)

// Outcome tags how a hand settled.
type Outcome string

const (
	Win             Outcome = "win"
	Lose            Outcome = "lose"
	Push            Outcome = "push"
	Blackjack       Outcome = "blackjack"        // player natural only
	DealerBlackjack Outcome = "dealer_blackjack" // dealer natural only
	Bust            Outcome = "bust"             // player busted
	DealerBust      Outcome = "dealer_bust"
	Charlie         Outcome = "charlie" // five-card charlie
	Push22          Outcome = "push_22" // dealer 22 pushes
	Surrendered     Outcome = "surrender"
)
