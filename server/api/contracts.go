package api

import (
	"fmt"
	"strings"

	"github.com/nathanfoale/skycity-blackjack/server/engine"
	"github.com/nathanfoale/skycity-blackjack/server/sim"
)

// DefaultMaxWork bounds sessions x (hands + shoe size) for a single request.
const DefaultMaxWork = 5_000_000

// SimulateRequest is the body of POST /api/simulate. Zero values keep the
// server defaults; Rules replaces the variant preset wholesale.
type SimulateRequest struct {
	Variant     string                `json:"variant"` // classic|crown|blackjack-plus|free-bet|skycity
	Rules       *engine.RuleSet       `json:"rules,omitempty"`
	Bankroll    float64               `json:"bankroll"`
	MinBet      float64               `json:"min_bet"`
	Spread      int                   `json:"spread"`
	Sessions    int                   `json:"sessions"`
	Hands       int                   `json:"hands"`
	Decks       int                   `json:"decks"`
	Payout      float64               `json:"payout"` // 1.5 for 3:2
	Penetration float64               `json:"penetration"`
	ReshuffleAt int                   `json:"reshuffle_at"`
	Counting    *bool                 `json:"counting,omitempty"`
	Strategy    string                `json:"strategy"`
	CountSystem string                `json:"count_system"`
	Rounding    string                `json:"rounding"` // truncate|round
	Mode        string                `json:"mode"`     // dealt|estimated
	Model       string                `json:"model"`    // edge|fixed
	Exposure    *sim.ExposureAdjuster `json:"exposure,omitempty"`
	Seed        uint64                `json:"seed"`

	IncludeTrajectories bool `json:"include_trajectories"`
}

// Config layers the request over base. The result still needs Validate.
func (r SimulateRequest) Config(base sim.Config) (sim.Config, error) {
	cfg := base
	if name := strings.TrimSpace(r.Variant); name != "" {
		rules, ok := engine.Variant(name)
		if !ok {
			return cfg, &sim.ConfigError{Field: "variant", Reason: fmt.Sprintf("unknown variant %q", name)}
		}
		cfg.Rules = rules
	}
	if r.Rules != nil {
		cfg.Rules = *r.Rules
	}
	if r.Bankroll != 0 {
		cfg.InitialBankroll = r.Bankroll
	}
	if r.MinBet != 0 {
		cfg.MinBet = r.MinBet
	}
	if r.Spread != 0 {
		cfg.Spread = r.Spread
	}
	if r.Sessions != 0 {
		cfg.Sessions = r.Sessions
	}
	if r.Hands != 0 {
		cfg.HandsPerSession = r.Hands
	}
	if r.Decks != 0 {
		cfg.Rules.Decks = r.Decks
	}
	if r.Payout != 0 {
		cfg.Rules.BlackjackPayout = r.Payout
	}
	if r.Penetration != 0 {
		cfg.Rules.Penetration = r.Penetration
	}
	if r.ReshuffleAt != 0 {
		cfg.Rules.ReshuffleAt = r.ReshuffleAt
	}
	if r.Counting != nil {
		cfg.Rules.CountingAllowed = *r.Counting
	}
	if r.Strategy != "" {
		cfg.Strategy = r.Strategy
	}
	if r.CountSystem != "" {
		cfg.CountSystem = r.CountSystem
	}
	if r.Rounding != "" {
		cfg.Rounding = engine.Rounding(r.Rounding)
	}
	if r.Mode != "" {
		cfg.Mode = sim.Mode(r.Mode)
	}
	if r.Model != "" {
		cfg.Model = sim.Model(r.Model)
	}
	if r.Exposure != nil {
		e := *r.Exposure
		cfg.Exposure = &e
	}
	if r.Seed != 0 {
		cfg.Seed = r.Seed
	}
	return cfg, nil
}

// Validate the request against base and the work limit; maxWork <= 0 means
// DefaultMaxWork.
func Validate(r SimulateRequest, base sim.Config, maxWork int) (sim.Config, error) {
	cfg, err := r.Config(base)
	if err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	if maxWork <= 0 {
		maxWork = DefaultMaxWork
	}
	// every session builds its own shoe, so shoe size counts as work too
	if work := cfg.Sessions * (cfg.HandsPerSession + cfg.Rules.ShoeSize()); work > maxWork || work < 0 {
		return cfg, &sim.ConfigError{Field: "hands", Reason: fmt.Sprintf("sessions x (hands + shoe) exceeds %d", maxWork)}
	}
	return cfg, nil
}

type SimulateResponse struct {
	ID               string           `json:"id"`
	Seed             uint64           `json:"seed"`
	Config           sim.Config       `json:"config"`
	Stats            sim.Summary      `json:"stats"`
	AverageBankroll  []float64        `json:"average_bankroll"`
	AverageTrueCount []float64        `json:"average_true_count"`
	FinalBankrolls   []float64        `json:"final_bankrolls"`
	Trajectories     []sim.Trajectory `json:"trajectories,omitempty"`
	ElapsedMS        int64            `json:"elapsed_ms"`
}

// BuildResponse converts a runner result into the JSON we send back.
func BuildResponse(res *sim.Result, withTrajectories bool) SimulateResponse {
	out := SimulateResponse{
		ID:               res.ID.String(),
		Seed:             res.Seed,
		Config:           res.Config,
		Stats:            res.Stats,
		AverageBankroll:  res.AverageBankroll,
		AverageTrueCount: res.AverageTrueCount,
		FinalBankrolls:   res.FinalBankrolls,
		ElapsedMS:        res.Elapsed.Milliseconds(),
	}
	if withTrajectories {
		out.Trajectories = res.Trajectories
	}
	return out
}

type VariantInfo struct {
	Name  string         `json:"name"`
	Rules engine.RuleSet `json:"rules"`
}

// Variants lists every preset in name order.
func Variants() []VariantInfo {
	names := engine.VariantNames()
	out := make([]VariantInfo, 0, len(names))
	for _, n := range names {
		r, _ := engine.Variant(n)
		out = append(out, VariantInfo{Name: n, Rules: r})
	}
	return out
}
