package engine

// DealerState is where the dealer's hand stands in the play-out loop.
type DealerState int

const (
	DealerMustHit DealerState = iota
	DealerMustStand
	DealerBusted
)

func (s DealerState) String() string {
	switch s {
	case DealerMustHit:
		return "must-hit"
	case DealerMustStand:
		return "must-stand"
	default:
		return "bust"
	}
}

// Dealer plays the house hand by fixed rules.
type Dealer struct {
	HitSoft17 bool
}

// State is a function of value, softness and the soft-17 rule only.
func (d Dealer) State(h Hand) DealerState {
	v, soft := h.Total()
	switch {
	case v > 21:
		return DealerBusted
	case v < 17:
		return DealerMustHit
	case v == 17 && soft && d.HitSoft17:
		return DealerMustHit
	default:
		return DealerMustStand
	}
}

// PlayOut draws until the dealer must stand or busts, counting every card.
func (d Dealer) PlayOut(h Hand, shoe *Shoe, count *CountTracker) (Hand, error) {
	for d.State(h) == DealerMustHit {
		c, err := shoe.Draw()
		if err != nil {
			return h, err
		}
		count.Update(c)
		h = append(h, c)
	}
	return h, nil
}
