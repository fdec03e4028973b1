package engine

import "fmt"

// Strategy picks the player's next action. Implementations must be pure so
// they can be shared across concurrent sessions.
type Strategy interface {
	Decide(player Hand, up Card, canDouble bool) Action
}

// Surrenderer is implemented by strategies that know when to give up the
// initial two-card hand. It is only consulted when the rules allow it.
type Surrenderer interface {
	Surrender(player Hand, up Card) bool
}

// BasicStrategy is a simplified approximation of basic strategy, not an
// EV-derived table: stand on 17+, stand on 13-16 against 2-6, stand on 12
// against 4-6, double two-card 9-11 when allowed, hit everything else.
type BasicStrategy struct{}

func (BasicStrategy) Decide(player Hand, up Card, canDouble bool) Action {
	total := player.Value()
	upv := up.Rank.Points()
	switch {
	case total >= 17:
		return Stand
	case total >= 13:
		if upv >= 2 && upv <= 6 {
			return Stand
		}
		return Hit
	case total == 12:
		if upv >= 4 && upv <= 6 {
			return Stand
		}
		return Hit
	}
	if len(player) == 2 && canDouble && total >= 9 {
		return Double
	}
	return Hit
}

// Surrender on hard 16 against 9, 10 or Ace and hard 15 against 10.
func (BasicStrategy) Surrender(player Hand, up Card) bool {
	if len(player) != 2 || player.IsSoft() {
		return false
	}
	upv := up.Rank.Points()
	switch player.Value() {
	case 16:
		return upv >= 9
	case 15:
		return upv == 10
	}
	return false
}

// NoDoubleStrategy never doubles and stands on 12-16 against 2-6.
type NoDoubleStrategy struct{}

func (NoDoubleStrategy) Decide(player Hand, up Card, _ bool) Action {
	total := player.Value()
	if total <= 11 {
		return Hit
	}
	if total <= 16 {
		if upv := up.Rank.Points(); upv >= 2 && upv <= 6 {
			return Stand
		}
		return Hit
	}
	return Stand
}

// StrategyByName resolves "basic" (also the default for "") and "no-double".
func StrategyByName(name string) (Strategy, error) {
	switch name {
	case "", "basic":
		return BasicStrategy{}, nil
	case "no-double":
		return NoDoubleStrategy{}, nil
	}
	return nil, fmt.Errorf("unknown strategy %q", name)
}
