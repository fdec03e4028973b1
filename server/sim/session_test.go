package sim

import (
	"context"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nathanfoale/skycity-blackjack/server/engine"
)

func TestSessionFlatBetting(t *testing.T) {
	cfg := testConfig()
	cfg.InitialBankroll = 100000
	cfg.MinBet = 100
	cfg.Spread = 1
	cfg.Rules.CountingAllowed = false
	cfg.HandsPerSession = 1000

	s, err := NewSession(cfg, rand.New(rand.NewPCG(1, 1)))
	require.NoError(t, err)
	traj, err := s.Run(context.Background())
	require.NoError(t, err)

	assert.LessOrEqual(t, len(traj.Bankroll), 1000)
	assert.Len(t, traj.Bets, len(traj.Bankroll))
	assert.Len(t, traj.TrueCount, len(traj.Bankroll))
	prev := cfg.InitialBankroll
	for i, bet := range traj.Bets {
		assert.Equal(t, min(100, prev), bet, "hand %d", i)
		prev = traj.Bankroll[i]
	}
	assert.NotEqual(t, Playing, traj.State)
	assert.Positive(t, traj.Reshuffles)
}

func TestSessionNeverBetsMoreThanBankroll(t *testing.T) {
	cfg := testConfig()
	cfg.InitialBankroll = 700
	cfg.Spread = 12
	cfg.HandsPerSession = 3000
	cfg.Rules.Surrender = true
	cfg.Rules.Insurance = true
	cfg.Exposure = &ExposureAdjuster{DoubleChance: DefaultDoubleChance}

	for seed := uint64(1); seed <= 5; seed++ {
		s, err := NewSession(cfg, rand.New(rand.NewPCG(seed, seed)))
		require.NoError(t, err)
		for s.State() == Playing {
			before := s.Bankroll()
			res, err := s.Step()
			require.NoError(t, err)
			require.LessOrEqual(t, res.Bet, before)
			require.LessOrEqual(t, res.Wagered, before+1e-9)
			require.GreaterOrEqual(t, res.Bankroll, before-res.Wagered-1e-9)
		}
	}
}

func TestSessionRuin(t *testing.T) {
	cfg := testConfig()
	cfg.InitialBankroll = 300
	cfg.HandsPerSession = 50

	s, err := NewSession(cfg, testRNG())
	require.NoError(t, err)
	s.SetResolver(EstimatedResolver{Model: FixedModel{Lose: 1}})
	traj, err := s.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Ruined, traj.State)
	assert.Equal(t, []float64{200, 100, 0}, traj.Bankroll)
	assert.Equal(t, 3, traj.Outcomes[engine.Lose])

	_, err = s.Step()
	assert.Error(t, err)
}

func TestSessionReshuffleResetsCount(t *testing.T) {
	cfg := testConfig()
	cfg.HandsPerSession = 500
	s, err := NewSession(cfg, testRNG())
	require.NoError(t, err)
	tbl := s.Table()

	seen := 0
	for s.State() == Playing {
		reshuffle := tbl.Shoe.NeedsReshuffle()
		res, err := s.Step()
		require.NoError(t, err)
		if !reshuffle {
			continue
		}
		seen++
		// the count covers exactly the cards of the first hand after the shuffle
		dealt := append(append(engine.Hand{}, res.Player...), res.Dealer...)
		want := 0
		for _, c := range dealt {
			want += engine.HiLo.Weight(c.Rank)
		}
		assert.Equal(t, want, tbl.Count.Running())
		assert.Equal(t, tbl.Shoe.Size()-len(dealt), tbl.Shoe.Remaining())
		assert.Equal(t, 0.0, res.TrueCount)
	}
	assert.Positive(t, seen)
}

func TestContinuousShuffleEveryHand(t *testing.T) {
	cfg := testConfig()
	cfg.Rules.ContinuousShuffle = true
	cfg.HandsPerSession = 20
	s, err := NewSession(cfg, testRNG())
	require.NoError(t, err)
	traj, err := s.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, len(traj.Bankroll)-1, traj.Reshuffles)
	for _, tc := range traj.TrueCount {
		assert.Equal(t, 0.0, tc)
	}
}

func TestSessionDeterministic(t *testing.T) {
	cfg := testConfig()
	run := func() Trajectory {
		s, err := NewSession(cfg, rand.New(rand.NewPCG(99, 100)))
		require.NoError(t, err)
		traj, err := s.Run(context.Background())
		require.NoError(t, err)
		return traj
	}
	assert.Equal(t, run(), run())
}

func TestSessionStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s, err := NewSession(testConfig(), testRNG())
	require.NoError(t, err)
	traj, err := s.Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, traj.Bankroll)
	assert.Equal(t, Playing, traj.State)
}
