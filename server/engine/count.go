package engine

import (
	"fmt"
	"math"
)

// CountSystem assigns a counting weight to every rank.
type CountSystem struct {
	Name    string
	weights [Ace + 1]int
}

func (s CountSystem) Weight(r Rank) int {
	if !r.Valid() {
		return 0
	}
	return s.weights[r]
}

func newCountSystem(name string, w map[Rank]int) CountSystem {
	s := CountSystem{Name: name}
	for r, v := range w {
		s.weights[r] = v
	}
	return s
}

var (
	// HiLo: 2-6 +1, 7-9 0, tens/faces/Ace -1.
	HiLo = newCountSystem("hi-lo", map[Rank]int{
		Two: 1, Three: 1, Four: 1, Five: 1, Six: 1,
		Ten: -1, Jack: -1, Queen: -1, King: -1, Ace: -1,
	})
	// HiOptI: 3-6 +1, tens/faces -1, Ace and 2 neutral.
	HiOptI = newCountSystem("hi-opt-i", map[Rank]int{
		Three: 1, Four: 1, Five: 1, Six: 1,
		Ten: -1, Jack: -1, Queen: -1, King: -1,
	})
)

// CountSystemByName resolves "hi-lo" (also the default for "") and "hi-opt-i".
func CountSystemByName(name string) (CountSystem, error) {
	switch name {
	case "", HiLo.Name:
		return HiLo, nil
	case HiOptI.Name:
		return HiOptI, nil
	}
	return CountSystem{}, fmt.Errorf("unknown count system %q", name)
}

// Rounding converts a fractional true count to a whole index.
type Rounding string

const (
	Truncate     Rounding = "truncate" // toward zero
	RoundNearest Rounding = "round"    // half away from zero
)

func (r Rounding) Apply(x float64) int {
	if r == RoundNearest {
		return int(math.Round(x))
	}
	return int(math.Trunc(x))
}

func (r Rounding) Valid() bool { return r == Truncate || r == RoundNearest }

// CountTracker holds the running count since the last reshuffle.
type CountTracker struct {
	system  CountSystem
	running int
}

func NewCountTracker(system CountSystem) *CountTracker {
	return &CountTracker{system: system}
}

// Update adds the weight of a card that just left the shoe.
func (t *CountTracker) Update(c Card) { t.running += t.system.Weight(c.Rank) }

func (t *CountTracker) Reset() { t.running = 0 }

func (t *CountTracker) Running() int { return t.running }

// TrueCount is the running count per remaining deck (remaining/52 decks),
// and zero for an empty shoe.
func (t *CountTracker) TrueCount(remaining int) float64 {
	if remaining <= 0 {
		return 0
	}
	return float64(t.running) / (float64(remaining) / 52.0)
}
