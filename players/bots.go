package players

import (
	"sync"

	"go.uber.org/zap"

	"github.com/minaorangina/tupelo/deck"
	"github.com/minaorangina/tupelo/game"
)

// DummyBot votes and plays by simple rules of thumb
type DummyBot struct {
	*Threaded
}

// NewDummyBot constructs a DummyBot
func NewDummyBot(id, name string, log *zap.Logger) *DummyBot {
	b := &DummyBot{}
	b.Threaded = NewThreaded(id, name, b, log)
	return b
}

// Vote shows a red card with a strong hand and a black one otherwise
func (b *DummyBot) Vote() error {
	c := b.Controller()
	if c == nil {
		return game.ErrNotInProgress
	}
	return c.PlayCard(b, chooseVote(*b.Hand()))
}

func (b *DummyBot) PlayCard() error {
	c := b.Controller()
	if c == nil {
		return game.ErrNotInProgress
	}
	card := choosePlay(b.GameState(), *b.Hand(), b.Team(), teamLookup(c))
	return c.PlayCard(b, card)
}

func teamLookup(c game.Controller) func(id string) int {
	return func(id string) int {
		if p, ok := c.Player(id); ok {
			return p.Team()
		}
		return -1
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// chooseVote counts face card points: more than 16 asks for rami. The card
// shown is the one closest to a six in the wanted colour.
func chooseVote(hand deck.CardSet) deck.Card {
	points := 0
	for _, c := range hand {
		if c.Rank > deck.Ten {
			points += int(c.Rank - deck.Ten)
		}
	}

	var choices deck.CardSet
	if points > 16 {
		choices = append(hand.OfSuit(deck.Hearts), hand.OfSuit(deck.Diamonds)...)
	} else {
		choices = append(hand.OfSuit(deck.Spades), hand.OfSuit(deck.Clubs)...)
	}
	if len(choices) == 0 {
		choices = hand
	}

	best := choices[0]
	for _, c := range choices[1:] {
		if abs(int(deck.Six-c.Rank)) < abs(int(deck.Six-best.Rank)) {
			best = c
		}
	}
	return best
}

// choosePlay picks a legal card. In nolo it tries to stay under the trick
// unless a team mate is already taking it; in rami it tries to take tricks
// as cheaply as it can.
func choosePlay(s *game.State, hand deck.CardSet, team int, teamOf func(id string) int) deck.Card {
	choices := hand
	if lead, ok := s.LeadSuit(); ok {
		choices = hand.OfSuit(lead)
	}

	var high deck.Card
	ownTrick := false
	if len(s.Table) > 0 {
		high, _ = game.TrickWinner(s.Table)
		ownTrick = teamOf(high.PlayedBy) == team
	}
	last := len(s.Table) == game.NumPlayers-1

	if s.Mode == game.Nolo {
		if len(choices) == 0 {
			card, _ := hand.Highest()
			return card
		}
		card, _ := choices.Lowest()
		if len(s.Table) == 0 {
			return card
		}
		under, canGoUnder := choices.Highest(deck.Roof(high.Rank))
		switch {
		case ownTrick && last:
			card, _ = choices.Highest()
		case ownTrick && canGoUnder:
			card = under
		case ownTrick:
			card, _ = choices.Highest()
		case canGoUnder:
			card = under
		case last:
			card, _ = choices.Highest()
		}
		return card
	}

	if len(choices) == 0 {
		card, _ := hand.Lowest()
		return card
	}
	card, _ := choices.Highest()
	if len(s.Table) == 0 {
		return card
	}
	switch {
	case ownTrick:
		card, _ = choices.Lowest()
	case last:
		if c, ok := choices.Lowest(deck.Floor(high.Rank)); ok {
			card = c
		} else {
			card, _ = choices.Lowest()
		}
	default:
		if c, ok := choices.Highest(deck.Floor(high.Rank)); ok {
			card = c
		} else {
			card, _ = choices.Lowest()
		}
	}
	return card
}

// CountingBot is a DummyBot that keeps track of the cards still out
type CountingBot struct {
	*DummyBot

	mu        sync.Mutex
	cardsLeft deck.CardSet
}

// NewCountingBot constructs a CountingBot
func NewCountingBot(id, name string, log *zap.Logger) *CountingBot {
	b := &CountingBot{DummyBot: &DummyBot{}}
	b.Threaded = NewThreaded(id, name, b, log)
	return b
}

// StateChanged starts the count afresh when a new hand is dealt
func (b *CountingBot) StateChanged(s *game.State) {
	if s.Status != game.StatusVoting {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cardsLeft = deck.NewFullDeck().Sub(*b.Hand())
}

// CardPlayed drops cards played by others from the count
func (b *CountingBot) CardPlayed(by game.Player, c deck.Card, s *game.State) {
	if by.ID() == b.ID() || s.Status != game.StatusOngoing {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.cardsLeft.Remove(c) {
		b.log.Warn("card played twice", zap.Stringer("card", c))
	}
}

// CardsLeft returns the cards not yet seen this hand
func (b *CountingBot) CardsLeft() deck.CardSet {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.cardsLeft.Clone()
}

// PlayCard leads with a sure winner in rami when it holds one
func (b *CountingBot) PlayCard() error {
	s := b.GameState()
	if s.Mode == game.Rami && len(s.Table) == 0 {
		if card, ok := masterCard(*b.Hand(), b.CardsLeft()); ok {
			c := b.Controller()
			if c == nil {
				return game.ErrNotInProgress
			}
			return c.PlayCard(b, card)
		}
	}
	return b.DummyBot.PlayCard()
}

// masterCard finds the highest card in hand that nothing left can beat
func masterCard(hand, left deck.CardSet) (deck.Card, bool) {
	var best deck.Card
	found := false
	for _, c := range hand {
		if _, beaten := left.OfSuit(c.Suit).Highest(deck.Floor(c.Rank)); beaten {
			continue
		}
		if !found || c.Rank > best.Rank {
			best, found = c, true
		}
	}
	return best, found
}
