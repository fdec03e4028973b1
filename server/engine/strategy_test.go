package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBasicStrategyTable(t *testing.T) {
	s := BasicStrategy{}
	cases := []struct {
		player    Hand
		up        Rank
		canDouble bool
		want      Action
	}{
		{HandOf(Ten, Seven), Ace, true, Stand},
		{HandOf(Ten, Nine, Two), Ten, false, Stand},
		{HandOf(Ten, Six), Six, true, Stand},
		{HandOf(Ten, Three), Two, true, Stand},
		{HandOf(Ten, Six), Seven, true, Hit},
		{HandOf(Nine, Four), Ace, true, Hit},
		{HandOf(Ten, Two), Four, true, Stand},
		{HandOf(Ten, Two), Six, true, Stand},
		{HandOf(Ten, Two), Three, true, Hit},
		{HandOf(Ten, Two), Seven, true, Hit},
		{HandOf(Five, Six), Ten, true, Double},
		{HandOf(Five, Five), Ace, true, Double},
		{HandOf(Four, Five), Two, true, Double},
		{HandOf(Five, Six), Ten, false, Hit},
		{HandOf(Two, Three, Six), Five, true, Hit}, // three cards
		{HandOf(Four, Four), Six, true, Hit},
		{HandOf(Ace, Six), Five, true, Stand},  // soft 17
		{HandOf(Ace, Five), Five, true, Stand}, // soft 16 follows the total table
	}
	for _, tc := range cases {
		got := s.Decide(tc.player, C(tc.up), tc.canDouble)
		assert.Equal(t, tc.want, got, "player %v vs %s double=%v", tc.player, tc.up, tc.canDouble)
	}
}

func TestBasicStrategySurrender(t *testing.T) {
	s := BasicStrategy{}
	assert.True(t, s.Surrender(HandOf(Ten, Six), C(Ten)))
	assert.True(t, s.Surrender(HandOf(Nine, Seven), C(Ace)))
	assert.True(t, s.Surrender(HandOf(Ten, Five), C(King)))
	assert.False(t, s.Surrender(HandOf(Ten, Five), C(Nine)))
	assert.False(t, s.Surrender(HandOf(Ten, Six), C(Eight)))
	assert.False(t, s.Surrender(HandOf(Ace, Five), C(Ten)), "soft 16")
	assert.False(t, s.Surrender(HandOf(Five, Five, Six), C(Ten)), "three cards")
}

func TestNoDoubleStrategy(t *testing.T) {
	s := NoDoubleStrategy{}
	assert.Equal(t, Hit, s.Decide(HandOf(Five, Six), C(Six), true))
	assert.Equal(t, Stand, s.Decide(HandOf(Ten, Two), C(Two), true))
	assert.Equal(t, Hit, s.Decide(HandOf(Ten, Two), C(Seven), true))
	assert.Equal(t, Stand, s.Decide(HandOf(Ten, Eight), C(Ace), true))
}

func TestStrategyByName(t *testing.T) {
	s, err := StrategyByName("")
	require.NoError(t, err)
	assert.IsType(t, BasicStrategy{}, s)

	s, err = StrategyByName("no-double")
	require.NoError(t, err)
	assert.IsType(t, NoDoubleStrategy{}, s)

	_, err = StrategyByName("optimal")
	assert.Error(t, err)
}
