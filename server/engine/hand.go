package engine

// Hand is the ordered cards held by the player or the dealer.
type Hand []Card

// HandOf builds a hand from ranks.
func HandOf(ranks ...Rank) Hand {
	h := make(Hand, len(ranks))
	for i, r := range ranks {
		h[i] = C(r)
	}
	return h
}

// Total returns the best total and whether an Ace is still counted as 11.
// Aces start at 11 and drop to 1 one at a time while the total exceeds 21.
func (h Hand) Total() (total int, soft bool) {
	aces := 0
	for _, c := range h {
		total += c.Rank.Points()
		if c.Rank == Ace {
			aces++
		}
	}
	for total > 21 && aces > 0 {
		total -= 10
		aces--
	}
	return total, aces > 0
}

// Value is the best total; over 21 only when every Ace already counts as 1.
func (h Hand) Value() int {
	v, _ := h.Total()
	return v
}

func (h Hand) IsSoft() bool {
	_, soft := h.Total()
	return soft
}

// IsNatural reports a two-card 21.
func (h Hand) IsNatural() bool { return len(h) == 2 && h.Value() == 21 }

func (h Hand) IsBust() bool { return h.Value() > 21 }

// Hard reports a hand with no Ace counted as 11.
func (h Hand) Hard() bool { return !h.IsSoft() }
