package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fullDeckCount = 52

func cards(cs ...Card) CardSet {
	return CardSet(cs)
}

func TestNewFullDeck(t *testing.T) {
	d := NewFullDeck()
	require.Len(t, d, fullDeckCount)

	seen := map[int]bool{}
	for i, c := range d {
		assert.True(t, c.Valid())
		assert.False(t, seen[c.Ordinal()], "duplicate %s", c)
		seen[c.Ordinal()] = true
		if i > 0 {
			assert.True(t, d[i-1].Less(c), "deck is not in order at %d", i)
		}
	}
}

func TestShuffle(t *testing.T) {
	d := NewFullDeck()
	d.Shuffle()
	require.Len(t, d, fullDeckCount)

	sorted := d.Clone()
	sorted.Sort()
	assert.Equal(t, NewFullDeck(), sorted)
}

func TestDeal(t *testing.T) {
	t.Run("partitions a shuffled deck into four hands of 13", func(t *testing.T) {
		for round := 0; round < 20; round++ {
			d := NewFullDeck()
			d.Shuffle()
			hands := make([]CardSet, 4)
			targets := []*CardSet{&hands[0], &hands[1], &hands[2], &hands[3]}

			require.NoError(t, d.Deal(targets))
			assert.Empty(t, d)

			all := CardSet{}
			for _, h := range hands {
				assert.Len(t, h, 13)
				all = append(all, h...)
			}
			all.Sort()
			assert.Equal(t, NewFullDeck(), all)
		}
	})

	t.Run("deals round robin", func(t *testing.T) {
		d := NewFullDeck()
		var a, b CardSet
		require.NoError(t, d.Deal([]*CardSet{&a, &b}))
		assert.Equal(t, Card{Spades, Two, ""}, a[0])
		assert.Equal(t, Card{Spades, Three, ""}, b[0])
		assert.Equal(t, Card{Spades, Four, ""}, a[1])
	})

	t.Run("fails with no targets", func(t *testing.T) {
		d := NewFullDeck()
		assert.ErrorIs(t, d.Deal(nil), ErrNoTargets)
		assert.Len(t, d, fullDeckCount)
	})
}

func TestTake(t *testing.T) {
	hand := cards(Card{Spades, Two, ""}, Card{Hearts, Ace, ""}, Card{Clubs, Nine, ""})

	got, err := hand.Take(Card{Suit: Hearts, Rank: Ace, PlayedBy: "x"})
	require.NoError(t, err)
	assert.True(t, got.Equal(Card{Hearts, Ace, ""}))
	assert.Len(t, hand, 2)
	assert.False(t, hand.Contains(Card{Hearts, Ace, ""}))

	_, err = hand.Take(Card{Hearts, Ace, ""})
	assert.ErrorIs(t, err, ErrCardNotFound)
	assert.Len(t, hand, 2)
}

func TestFilters(t *testing.T) {
	hand := cards(
		Card{Spades, Two, ""},
		Card{Hearts, Two, ""},
		Card{Hearts, King, ""},
		Card{Clubs, Nine, ""},
	)

	assert.Equal(t, cards(Card{Hearts, Two, ""}, Card{Hearts, King, ""}), hand.OfSuit(Hearts))
	assert.Empty(t, hand.OfSuit(Diamonds))
	assert.Equal(t, cards(Card{Spades, Two, ""}, Card{Hearts, Two, ""}), hand.OfRank(Two))

	left := NewFullDeck().Sub(hand)
	assert.Len(t, left, fullDeckCount-4)
	for _, c := range hand {
		assert.False(t, left.Contains(c))
	}
}

func TestHighestLowest(t *testing.T) {
	t.Run("empty set has no extremes", func(t *testing.T) {
		_, ok := CardSet{}.Highest()
		assert.False(t, ok)
		_, ok = CardSet{}.Lowest()
		assert.False(t, ok)
	})

	t.Run("unbounded within a suit matches the ordinal order", func(t *testing.T) {
		for round := 0; round < 20; round++ {
			d := NewFullDeck()
			d.Shuffle()
			suit := d.OfSuit(Suit(round % 4))[:7]

			sorted := suit.Clone()
			sorted.Sort()

			hi, ok := suit.Highest()
			require.True(t, ok)
			assert.Equal(t, sorted[len(sorted)-1], hi)

			lo, ok := suit.Lowest()
			require.True(t, ok)
			assert.Equal(t, sorted[0], lo)
		}
	})

	t.Run("rank decides across suits", func(t *testing.T) {
		hand := cards(Card{Hearts, Three, ""}, Card{Spades, Ace, ""}, Card{Clubs, Two, ""})
		hi, _ := hand.Highest()
		assert.Equal(t, Card{Spades, Ace, ""}, hi)
		lo, _ := hand.Lowest()
		assert.Equal(t, Card{Clubs, Two, ""}, lo)
	})

	t.Run("equal ranks fall back to ordinal", func(t *testing.T) {
		hand := cards(Card{Hearts, Ten, ""}, Card{Spades, Ten, ""})
		hi, _ := hand.Highest()
		assert.Equal(t, Card{Hearts, Ten, ""}, hi)
		lo, _ := hand.Lowest()
		assert.Equal(t, Card{Spades, Ten, ""}, lo)
	})

	t.Run("bounds are inclusive", func(t *testing.T) {
		hand := cards(Card{Hearts, Four, ""}, Card{Hearts, Eight, ""}, Card{Hearts, Queen, ""})

		c, ok := hand.Highest(Roof(Eight))
		require.True(t, ok)
		assert.Equal(t, Eight, c.Rank)

		c, ok = hand.Lowest(Floor(Eight))
		require.True(t, ok)
		assert.Equal(t, Eight, c.Rank)

		c, ok = hand.Highest(Floor(Five), Roof(Jack))
		require.True(t, ok)
		assert.Equal(t, Eight, c.Rank)
	})

	t.Run("none when nothing satisfies the bound", func(t *testing.T) {
		hand := cards(Card{Hearts, Four, ""}, Card{Hearts, Eight, ""})
		_, ok := hand.Highest(Roof(Three))
		assert.False(t, ok)
		_, ok = hand.Lowest(Floor(Nine))
		assert.False(t, ok)
	})
}

func TestCardSetString(t *testing.T) {
	hand := cards(Card{Spades, Two, ""}, Card{Hearts, Ace, ""})
	assert.Equal(t, "2♠ A♥", hand.String())
}
