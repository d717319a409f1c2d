package deck

import (
	"errors"
	"math/rand"
	"sort"
	"strings"
)

var (
	ErrCardNotFound = errors.New("card not found")
	ErrNoTargets    = errors.New("nothing to deal to")
)

// CardSet is an ordered collection of cards: a deck, a hand or the table
type CardSet []Card

// NewFullDeck returns all 52 cards, suit-major and unshuffled
func NewFullDeck() CardSet {
	cards := make(CardSet, 0, 52)
	for _, suit := range Suits {
		for rank := Two; rank <= Ace; rank++ {
			cards = append(cards, Card{Suit: suit, Rank: rank})
		}
	}
	return cards
}

// Shuffle shuffles the cards in place
func (cs CardSet) Shuffle() {
	rand.Shuffle(len(cs), func(i, j int) {
		cs[i], cs[j] = cs[j], cs[i]
	})
}

// Deal moves every card round-robin into targets until the set is empty
func (cs *CardSet) Deal(targets []*CardSet) error {
	if len(targets) == 0 {
		return ErrNoTargets
	}
	for i, c := range *cs {
		t := targets[i%len(targets)]
		*t = append(*t, c)
	}
	*cs = (*cs)[:0]
	return nil
}

// Index returns the position of the first card equal to c, or -1
func (cs CardSet) Index(c Card) int {
	for i, card := range cs {
		if card.Equal(c) {
			return i
		}
	}
	return -1
}

func (cs CardSet) Contains(c Card) bool {
	return cs.Index(c) >= 0
}

// Take removes and returns the first card equal to c
func (cs *CardSet) Take(c Card) (Card, error) {
	i := cs.Index(c)
	if i < 0 {
		return Card{}, ErrCardNotFound
	}
	card := (*cs)[i]
	*cs = append((*cs)[:i], (*cs)[i+1:]...)
	return card, nil
}

// Remove is Take without the card
func (cs *CardSet) Remove(c Card) bool {
	_, err := cs.Take(c)
	return err == nil
}

func (cs *CardSet) Clear() {
	*cs = (*cs)[:0]
}

// Clone returns a copy that shares nothing with cs
func (cs CardSet) Clone() CardSet {
	if cs == nil {
		return CardSet{}
	}
	out := make(CardSet, len(cs))
	copy(out, cs)
	return out
}

// Sort sorts by ordinal
func (cs CardSet) Sort() {
	sort.SliceStable(cs, func(i, j int) bool {
		return cs[i].Less(cs[j])
	})
}

// OfSuit returns the cards of the given suit
func (cs CardSet) OfSuit(s Suit) CardSet {
	out := CardSet{}
	for _, c := range cs {
		if c.Suit == s {
			out = append(out, c)
		}
	}
	return out
}

// OfRank returns the cards of the given rank
func (cs CardSet) OfRank(r Rank) CardSet {
	out := CardSet{}
	for _, c := range cs {
		if c.Rank == r {
			out = append(out, c)
		}
	}
	return out
}

// Sub returns the cards of cs that are not in other
func (cs CardSet) Sub(other CardSet) CardSet {
	out := cs.Clone()
	for _, c := range other {
		out.Remove(c)
	}
	return out
}

// Bound limits the ranks considered by Highest and Lowest
type Bound func(*bounds)

type bounds struct {
	floor, roof Rank
}

// Floor excludes ranks below r
func Floor(r Rank) Bound {
	return func(b *bounds) { b.floor = r }
}

// Roof excludes ranks above r
func Roof(r Rank) Bound {
	return func(b *bounds) { b.roof = r }
}

func newBounds(opts []Bound) bounds {
	b := bounds{floor: Two, roof: Ace}
	for _, o := range opts {
		o(&b)
	}
	return b
}

// Highest returns the card with the highest rank within the bounds.
// Equal ranks are broken by ordinal. ok is false when no card qualifies.
func (cs CardSet) Highest(opts ...Bound) (best Card, ok bool) {
	b := newBounds(opts)
	for _, c := range cs {
		if c.Rank < b.floor || c.Rank > b.roof {
			continue
		}
		if !ok || c.Rank > best.Rank || (c.Rank == best.Rank && c.Ordinal() > best.Ordinal()) {
			best, ok = c, true
		}
	}
	return best, ok
}

// Lowest returns the card with the lowest rank within the bounds.
// Equal ranks are broken by ordinal. ok is false when no card qualifies.
func (cs CardSet) Lowest(opts ...Bound) (best Card, ok bool) {
	b := newBounds(opts)
	for _, c := range cs {
		if c.Rank < b.floor || c.Rank > b.roof {
			continue
		}
		if !ok || c.Rank < best.Rank || (c.Rank == best.Rank && c.Ordinal() < best.Ordinal()) {
			best, ok = c, true
		}
	}
	return best, ok
}

func (cs CardSet) String() string {
	strs := make([]string, len(cs))
	for i, c := range cs {
		strs[i] = c.String()
	}
	return strings.Join(strs, " ")
}
