package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/nathanfoale/skycity-blackjack/server/engine"
	"github.com/nathanfoale/skycity-blackjack/server/sim"
)

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
func atoiDef(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
func atofDef(s string, def float64) float64 {
	if s == "" {
		return def
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return def
	}
	return f
}
func asBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "y", "on":
		return true
	default:
		return false
	}
}

// seedFromEnv returns 0 when SEED is unset so the runner picks a secure seed.
func seedFromEnv() uint64 {
	if s := strings.TrimSpace(os.Getenv("SEED")); s != "" {
		if v, err := strconv.ParseUint(s, 10, 64); err == nil {
			return v
		}
	}
	return 0
}

// configFromEnv builds the experiment config from the environment on top of
// the VARIANT preset. Unparseable numbers fall back to the defaults.
func configFromEnv() (sim.Config, error) {
	cfg := sim.DefaultConfig()
	variant := getenv("VARIANT", "classic")
	rules, ok := engine.Variant(variant)
	if !ok {
		return cfg, &sim.ConfigError{Field: "VARIANT", Reason: fmt.Sprintf("unknown variant %q (have %s)", variant, strings.Join(engine.VariantNames(), ", "))}
	}
	cfg.Rules = rules

	cfg.InitialBankroll = atofDef(os.Getenv("BANKROLL"), cfg.InitialBankroll)
	cfg.MinBet = atofDef(os.Getenv("MIN_BET"), cfg.MinBet)
	cfg.Spread = atoiDef(os.Getenv("SPREAD"), cfg.Spread)
	cfg.Sessions = atoiDef(os.Getenv("SESSIONS"), cfg.Sessions)
	cfg.HandsPerSession = atoiDef(os.Getenv("HANDS"), cfg.HandsPerSession)
	cfg.Rules.Decks = atoiDef(os.Getenv("DECKS"), cfg.Rules.Decks)
	cfg.Rules.BlackjackPayout = atofDef(os.Getenv("PAYOUT"), cfg.Rules.BlackjackPayout)
	cfg.Rules.Penetration = atofDef(os.Getenv("PENETRATION"), cfg.Rules.Penetration)
	cfg.Rules.ReshuffleAt = atoiDef(os.Getenv("RESHUFFLE_AT"), cfg.Rules.ReshuffleAt)
	if v := os.Getenv("COUNTING"); v != "" {
		cfg.Rules.CountingAllowed = asBool(v)
	}
	cfg.Strategy = getenv("STRATEGY", cfg.Strategy)
	cfg.CountSystem = getenv("COUNT_SYSTEM", cfg.CountSystem)
	cfg.Rounding = engine.Rounding(getenv("ROUNDING", string(cfg.Rounding)))
	cfg.Mode = sim.Mode(getenv("MODE", string(cfg.Mode)))
	cfg.Model = sim.Model(getenv("MODEL", string(cfg.Model)))
	if asBool(os.Getenv("EXPOSURE")) {
		cfg.Exposure = &sim.ExposureAdjuster{DoubleChance: sim.DefaultDoubleChance, SplitChance: sim.DefaultSplitChance}
	}
	cfg.Seed = seedFromEnv()
	return cfg, cfg.Validate()
}
