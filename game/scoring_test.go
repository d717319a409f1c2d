package game

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/minaorangina/tupelo/deck"
)

func TestScoreHand(t *testing.T) {
	tests := []struct {
		name     string
		mode     Mode
		tricks   [2]int
		ramiTeam int
		want     HandResult
	}{
		{
			name:     "nolo, fewer tricks wins",
			mode:     Nolo,
			tricks:   [2]int{8, 5},
			ramiTeam: -1,
			want:     HandResult{Winner: 1, Loser: 0, Points: 8},
		},
		{
			name:     "nolo, team 0 with fewer tricks",
			mode:     Nolo,
			tricks:   [2]int{2, 11},
			ramiTeam: -1,
			want:     HandResult{Winner: 0, Loser: 1, Points: 20},
		},
		{
			name:     "rami, own call",
			mode:     Rami,
			tricks:   [2]int{9, 4},
			ramiTeam: 0,
			want:     HandResult{Winner: 0, Loser: 1, Points: 12},
		},
		{
			name:     "rami taken from the opponents doubles",
			mode:     Rami,
			tricks:   [2]int{9, 4},
			ramiTeam: 1,
			want:     HandResult{Winner: 0, Loser: 1, Points: 24, Doubled: true},
		},
		{
			name:     "rami, team 1 with more tricks",
			mode:     Rami,
			tricks:   [2]int{3, 10},
			ramiTeam: 1,
			want:     HandResult{Winner: 1, Loser: 0, Points: 16},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ScoreHand(tt.mode, tt.tricks, tt.ramiTeam))
		})
	}
}

func TestApplyScore(t *testing.T) {
	t.Run("adds points to the winner", func(t *testing.T) {
		score := [2]int{0, 12}
		fell, won := ApplyScore(&score, HandResult{Winner: 1, Loser: 0, Points: 8}, DefaultTargetScore)
		assert.False(t, fell)
		assert.False(t, won)
		assert.Equal(t, [2]int{0, 20}, score)
	})

	t.Run("a loser with points falls down", func(t *testing.T) {
		score := [2]int{0, 10}
		fell, won := ApplyScore(&score, HandResult{Winner: 0, Loser: 1, Points: 24}, DefaultTargetScore)
		assert.True(t, fell)
		assert.False(t, won)
		assert.Equal(t, [2]int{0, 0}, score)
	})

	t.Run("passing the target wins", func(t *testing.T) {
		score := [2]int{48, 0}
		fell, won := ApplyScore(&score, HandResult{Winner: 0, Loser: 1, Points: 8}, DefaultTargetScore)
		assert.False(t, fell)
		assert.True(t, won)
		assert.Equal(t, [2]int{56, 0}, score)
	})

	t.Run("reaching the target exactly does not", func(t *testing.T) {
		score := [2]int{44, 0}
		_, won := ApplyScore(&score, HandResult{Winner: 0, Loser: 1, Points: 8}, DefaultTargetScore)
		assert.False(t, won)
		assert.Equal(t, 52, score[0])
	})
}

func TestTrickWinner(t *testing.T) {
	table := deck.CardSet{
		{Suit: deck.Clubs, Rank: deck.Five, PlayedBy: "a"},
		{Suit: deck.Hearts, Rank: deck.Ace, PlayedBy: "b"},
		{Suit: deck.Clubs, Rank: deck.Jack, PlayedBy: "c"},
		{Suit: deck.Spades, Rank: deck.King, PlayedBy: "d"},
	}
	got, ok := TrickWinner(table)
	assert.True(t, ok)
	assert.Equal(t, "c", got.PlayedBy)

	_, ok = TrickWinner(deck.CardSet{})
	assert.False(t, ok)
}
