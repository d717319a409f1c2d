package deck

import (
	"errors"
	"fmt"
)

// Suit represents a suit in a deck of cards.
// Suits are ordered Spades < Diamonds < Clubs < Hearts.
type Suit int

const (
	Spades Suit = iota
	Diamonds
	Clubs
	Hearts
)

var suitNames = []string{"Spades", "Diamonds", "Clubs", "Hearts"}

var suitChars = []string{"♠", "♦", "♣", "♥"}

// Suits lists every suit in order
var Suits = []Suit{Spades, Diamonds, Clubs, Hearts}

func (s Suit) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Suit(%d)", int(s))
	}
	return suitNames[s]
}

// Char returns the suit symbol
func (s Suit) Char() string {
	if !s.Valid() {
		return "?"
	}
	return suitChars[s]
}

// Valid reports whether s is one of the four suits
func (s Suit) Valid() bool {
	return s >= Spades && s <= Hearts
}

// Red reports whether the suit is diamonds or hearts
func (s Suit) Red() bool {
	return s == Diamonds || s == Hearts
}

// Rank represents a rank in a deck of cards, from Two (2) to Ace (14)
type Rank int

const (
	Two Rank = iota + 2
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

var faceChars = map[Rank]string{Jack: "J", Queen: "Q", King: "K", Ace: "A"}

func (r Rank) String() string {
	if ch, ok := faceChars[r]; ok {
		return ch
	}
	return fmt.Sprintf("%d", int(r))
}

// Valid reports whether r is between Two and Ace
func (r Rank) Valid() bool {
	return r >= Two && r <= Ace
}

var ErrInvalidCard = errors.New("card out of range")

// Card is a (suit, rank) pair. PlayedBy is set once the card lands on the
// table and is not part of the card's identity.
type Card struct {
	Suit     Suit   `json:"suit"`
	Rank     Rank   `json:"value"`
	PlayedBy string `json:"played_by,omitempty"`
}

// NewCard constructs a card
func NewCard(suit Suit, rank Rank) (Card, error) {
	if !suit.Valid() || !rank.Valid() {
		return Card{}, ErrInvalidCard
	}
	return Card{Suit: suit, Rank: rank}, nil
}

// Equal compares suit and rank only
func (c Card) Equal(o Card) bool {
	return c.Suit == o.Suit && c.Rank == o.Rank
}

// Ordinal gives the position of the card in the total order used to sort hands
func (c Card) Ordinal() int {
	return int(c.Suit)*13 + int(c.Rank)
}

// Less orders by ordinal
func (c Card) Less(o Card) bool {
	return c.Ordinal() < o.Ordinal()
}

// Valid reports whether both suit and rank are in range
func (c Card) Valid() bool {
	return c.Suit.Valid() && c.Rank.Valid()
}

func (c Card) String() string {
	return c.Rank.String() + c.Suit.Char()
}
