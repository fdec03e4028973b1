package sim

import (
	"errors"
	"fmt"

	"github.com/nathanfoale/skycity-blackjack/server/engine"
)

// ErrInvalidConfig is the root of every configuration rejection.
var ErrInvalidConfig = errors.New("invalid configuration")

// ConfigError names the offending field.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration: %s %s", e.Field, e.Reason)
}

func (e *ConfigError) Unwrap() error { return ErrInvalidConfig }

// Mode selects how a hand is resolved.
type Mode string

const (
	// Dealt plays every hand card by card from the shoe.
	Dealt Mode = "dealt"
	// Estimated samples the outcome from count-dependent probabilities.
	Estimated Mode = "estimated"
)

// Config is everything one experiment needs. It is copied into every
// session and never mutated after Validate.
type Config struct {
	InitialBankroll float64           `json:"initial_bankroll"`
	MinBet          float64           `json:"min_bet"`
	Spread          int               `json:"spread"`
	Sessions        int               `json:"sessions"`
	HandsPerSession int               `json:"hands_per_session"`
	Rules           engine.RuleSet    `json:"rules"`
	Strategy        string            `json:"strategy"`
	CountSystem     string            `json:"count_system"`
	Rounding        engine.Rounding   `json:"rounding"`
	Mode            Mode              `json:"mode"`
	Model           Model             `json:"model"` // estimated mode only
	Exposure        *ExposureAdjuster `json:"exposure,omitempty"`
	// Seed fixes every random draw of the experiment; 0 picks a fresh seed.
	Seed uint64 `json:"seed"`
}

// DefaultConfig mirrors the classic eight-deck counting setup.
func DefaultConfig() Config {
	rules, _ := engine.Variant("classic")
	return Config{
		InitialBankroll: 100000,
		MinBet:          100,
		Spread:          10,
		Sessions:        100,
		HandsPerSession: 2000,
		Rules:           rules,
		Strategy:        "basic",
		CountSystem:     engine.HiLo.Name,
		Rounding:        engine.Truncate,
		Mode:            Dealt,
		Model:           EdgeOutcomes,
	}
}

// Validate fails fast, before any hand is dealt.
func (c Config) Validate() error {
	bad := func(field, reason string) error { return &ConfigError{Field: field, Reason: reason} }
	switch {
	case c.InitialBankroll <= 0:
		return bad("initial_bankroll", "must be > 0")
	case c.MinBet <= 0:
		return bad("min_bet", "must be > 0")
	case c.MinBet > c.InitialBankroll:
		return bad("min_bet", "must not exceed the bankroll")
	case c.Spread < 1:
		return bad("spread", "must be >= 1")
	case c.Sessions < 1:
		return bad("sessions", "must be >= 1")
	case c.HandsPerSession < 1:
		return bad("hands_per_session", "must be >= 1")
	case c.Rules.Decks < 1:
		return bad("rules.decks", "must be >= 1")
	case c.Rules.Decks > engine.MaxDecks:
		return bad("rules.decks", fmt.Sprintf("must be <= %d", engine.MaxDecks))
	case c.Rules.BlackjackPayout <= 1.0:
		return bad("rules.blackjack_pay", "must be > 1.0")
	}
	if err := c.Rules.Validate(); err != nil {
		return bad("rules", err.Error())
	}
	if c.Rounding != "" && !c.Rounding.Valid() {
		return bad("rounding", fmt.Sprintf("unknown policy %q", c.Rounding))
	}
	switch c.Mode {
	case "", Dealt, Estimated:
	default:
		return bad("mode", fmt.Sprintf("unknown mode %q", c.Mode))
	}
	switch c.Model {
	case "", EdgeOutcomes, FixedOutcomes:
	default:
		return bad("model", fmt.Sprintf("unknown outcome model %q", c.Model))
	}
	if _, err := engine.StrategyByName(c.Strategy); err != nil {
		return bad("strategy", err.Error())
	}
	if _, err := engine.CountSystemByName(c.CountSystem); err != nil {
		return bad("count_system", err.Error())
	}
	if e := c.Exposure; e != nil && (e.DoubleChance < 0 || e.DoubleChance > 1 || e.SplitChance < 0 || e.SplitChance > 1) {
		return bad("exposure", "chances must be within [0,1]")
	}
	return nil
}

func (c Config) rounding() engine.Rounding {
	if c.Rounding == "" {
		return engine.Truncate
	}
	return c.Rounding
}
