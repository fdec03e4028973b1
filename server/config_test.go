package main

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nathanfoale/skycity-blackjack/server/engine"
	"github.com/nathanfoale/skycity-blackjack/server/sim"
)

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("VARIANT", "skycity")
	t.Setenv("BANKROLL", "2500")
	t.Setenv("MIN_BET", "25")
	t.Setenv("SPREAD", "6")
	t.Setenv("SESSIONS", "3")
	t.Setenv("HANDS", "50")
	t.Setenv("PAYOUT", "1.2")
	t.Setenv("COUNTING", "yes")
	t.Setenv("ROUNDING", "round")
	t.Setenv("MODE", "estimated")
	t.Setenv("MODEL", "fixed")
	t.Setenv("RESHUFFLE_AT", "52")
	t.Setenv("EXPOSURE", "1")
	t.Setenv("SEED", "12345")

	cfg, err := configFromEnv()
	require.NoError(t, err)
	assert.Equal(t, 2500.0, cfg.InitialBankroll)
	assert.Equal(t, 25.0, cfg.MinBet)
	assert.Equal(t, 6, cfg.Spread)
	assert.Equal(t, 3, cfg.Sessions)
	assert.Equal(t, 50, cfg.HandsPerSession)
	assert.Equal(t, 6, cfg.Rules.Decks)
	assert.Equal(t, 1.2, cfg.Rules.BlackjackPayout)
	assert.True(t, cfg.Rules.ContinuousShuffle)
	assert.True(t, cfg.Rules.CountingAllowed)
	assert.Equal(t, engine.RoundNearest, cfg.Rounding)
	assert.Equal(t, sim.Estimated, cfg.Mode)
	assert.Equal(t, sim.FixedOutcomes, cfg.Model)
	assert.Equal(t, 52, cfg.Rules.ReshuffleAt)
	assert.Equal(t, 52, cfg.Rules.CutCard())
	require.NotNil(t, cfg.Exposure)
	assert.Equal(t, uint64(12345), cfg.Seed)
}

func TestConfigFromEnvDefaults(t *testing.T) {
	for _, k := range []string{"VARIANT", "BANKROLL", "MIN_BET", "SPREAD", "SESSIONS", "HANDS", "DECKS", "PAYOUT",
		"PENETRATION", "RESHUFFLE_AT", "COUNTING", "STRATEGY", "COUNT_SYSTEM", "ROUNDING", "MODE", "MODEL", "EXPOSURE", "SEED"} {
		t.Setenv(k, "")
	}
	t.Setenv("SPREAD", "lots")

	cfg, err := configFromEnv()
	require.NoError(t, err)
	def := sim.DefaultConfig()
	assert.Equal(t, def, cfg)
}

func TestConfigFromEnvRejects(t *testing.T) {
	t.Setenv("VARIANT", "spanish-21")
	_, err := configFromEnv()
	assert.True(t, errors.Is(err, sim.ErrInvalidConfig))

	t.Setenv("VARIANT", "classic")
	t.Setenv("BANKROLL", "50")
	t.Setenv("MIN_BET", "100")
	_, err = configFromEnv()
	var ce *sim.ConfigError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "min_bet", ce.Field)

	t.Setenv("BANKROLL", "")
	t.Setenv("MIN_BET", "")
	t.Setenv("DECKS", "9")
	_, err = configFromEnv()
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "rules.decks", ce.Field)

	t.Setenv("DECKS", "")
	t.Setenv("MODEL", "oracle")
	_, err = configFromEnv()
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "model", ce.Field)
}

func TestEnvHelpers(t *testing.T) {
	assert.Equal(t, 7, atoiDef("7", 1))
	assert.Equal(t, 1, atoiDef("x", 1))
	assert.Equal(t, 0.25, atofDef(" 0.25 ", 1))
	assert.Equal(t, 1.0, atofDef("", 1))
	assert.True(t, asBool("On"))
	assert.False(t, asBool("0"))
}
