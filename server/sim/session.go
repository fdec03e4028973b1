package sim

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/nathanfoale/skycity-blackjack/server/engine"
)

// State of one session.
type State int

const (
	Playing State = iota
	Ruined
	Exhausted
)

func (s State) String() string {
	switch s {
	case Playing:
		return "playing"
	case Ruined:
		return "ruined"
	default:
		return "exhausted"
	}
}

func (s State) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *State) UnmarshalText(b []byte) error {
	switch string(b) {
	case "playing":
		*s = Playing
	case "ruined":
		*s = Ruined
	case "exhausted":
		*s = Exhausted
	default:
		return fmt.Errorf("unknown session state %q", b)
	}
	return nil
}

// Trajectory is one session's history. Bankroll, TrueCount and Bets are
// parallel, one entry per completed hand.
type Trajectory struct {
	Bankroll   []float64              `json:"bankroll"`
	TrueCount  []float64              `json:"true_count"`
	Bets       []float64              `json:"bets"`
	Outcomes   map[engine.Outcome]int `json:"outcomes"`
	Reshuffles int                    `json:"reshuffles"`
	State      State                  `json:"state"`
}

// Final is the last bankroll, or initial if no hand was played.
func (t Trajectory) Final(initial float64) float64 {
	if n := len(t.Bankroll); n > 0 {
		return t.Bankroll[n-1]
	}
	return initial
}

// Session runs one bankroll through up to HandsPerSession hands.
type Session struct {
	cfg      Config
	table    *Table
	resolver Resolver
	bankroll float64
	traj     Trajectory
}

// NewSession expects a validated cfg. rng must not be shared with another
// session.
func NewSession(cfg Config, rng *rand.Rand) (*Session, error) {
	t, err := NewTable(cfg, rng)
	if err != nil {
		return nil, err
	}
	return &Session{
		cfg:      cfg,
		table:    t,
		resolver: ResolverFor(cfg),
		bankroll: cfg.InitialBankroll,
		traj: Trajectory{
			Bankroll:  make([]float64, 0, cfg.HandsPerSession),
			TrueCount: make([]float64, 0, cfg.HandsPerSession),
			Bets:      make([]float64, 0, cfg.HandsPerSession),
			Outcomes:  map[engine.Outcome]int{},
		},
	}, nil
}

func (s *Session) State() State           { return s.traj.State }
func (s *Session) Bankroll() float64      { return s.bankroll }
func (s *Session) Table() *Table          { return s.table }
func (s *Session) Hands() int             { return len(s.traj.Bankroll) }
func (s *Session) SetResolver(r Resolver) { s.resolver = r }

// Step plays one hand. The shoe is only ever reshuffled here, before the
// deal, and the count is reset with it.
func (s *Session) Step() (HandResult, error) {
	if s.traj.State != Playing {
		return HandResult{}, fmt.Errorf("session is %s", s.traj.State)
	}
	if s.table.Shoe.NeedsReshuffle() {
		s.table.Shoe.Reshuffle()
		s.table.Count.Reset()
		s.traj.Reshuffles++
	}
	res, err := s.resolver.Resolve(s.table, s.bankroll)
	if err != nil {
		return res, fmt.Errorf("hand %d: %w", len(s.traj.Bankroll)+1, err)
	}
	s.bankroll = res.Bankroll
	s.traj.Bankroll = append(s.traj.Bankroll, res.Bankroll)
	s.traj.TrueCount = append(s.traj.TrueCount, res.TrueCount)
	s.traj.Bets = append(s.traj.Bets, res.Bet)
	s.traj.Outcomes[res.Outcome]++
	switch {
	case s.bankroll <= 0:
		s.traj.State = Ruined
	case len(s.traj.Bankroll) >= s.cfg.HandsPerSession:
		s.traj.State = Exhausted
	}
	return res, nil
}

// Run plays until ruin or the hand budget. Cancellation is honoured between
// hands only.
func (s *Session) Run(ctx context.Context) (Trajectory, error) {
	for s.traj.State == Playing {
		if err := ctx.Err(); err != nil {
			return s.traj, err
		}
		if _, err := s.Step(); err != nil {
			return s.traj, err
		}
	}
	return s.traj, nil
}
