package game

import (
	"time"

	"github.com/minaorangina/tupelo/deck"
)

// spyPlayer records everything the controller tells it and never acts on
// its own; tests drive it from the test goroutine.
type spyPlayer struct {
	id   string
	name string
	team int
	hand deck.CardSet

	started, stopped, joined int

	acts       []*State
	played     []deck.Card
	cardStates []*State
	winners    []string
	tables     []deck.CardSet
	statuses   []Status
	msgs       []string
}

func newSpyPlayer(id, name string) *spyPlayer {
	return &spyPlayer{id: id, name: name}
}

func (p *spyPlayer) ID() string          { return p.id }
func (p *spyPlayer) SetID(id string)     { p.id = id }
func (p *spyPlayer) Name() string        { return p.name }
func (p *spyPlayer) Team() int           { return p.team }
func (p *spyPlayer) SetTeam(team int)    { p.team = team }
func (p *spyPlayer) Hand() *deck.CardSet { return &p.hand }
func (p *spyPlayer) Start()              { p.started++ }
func (p *spyPlayer) Stop()               { p.stopped++ }

func (p *spyPlayer) Join(timeout time.Duration) error {
	p.joined++
	return nil
}

func (p *spyPlayer) Act(c Controller, s *State) {
	p.acts = append(p.acts, s)
}

func (p *spyPlayer) CardPlayed(by Player, c deck.Card, s *State) {
	p.played = append(p.played, c)
	p.cardStates = append(p.cardStates, s)
}

func (p *spyPlayer) TrickPlayed(winner Player, s *State) {
	p.winners = append(p.winners, winner.ID())
	p.tables = append(p.tables, s.Table.Clone())
}

func (p *spyPlayer) StateChanged(s *State) {
	p.statuses = append(p.statuses, s.Status)
}

func (p *spyPlayer) SendMessage(sender, msg string) {
	p.msgs = append(p.msgs, msg)
}

func (p *spyPlayer) lastAct() *State {
	if len(p.acts) == 0 {
		return nil
	}
	return p.acts[len(p.acts)-1]
}

func (p *spyPlayer) lastCardState() *State {
	return p.cardStates[len(p.cardStates)-1]
}

func somePlayers() []*spyPlayer {
	return []*spyPlayer{
		newSpyPlayer("p0", "Anna"),
		newSpyPlayer("p1", "Bertta"),
		newSpyPlayer("p2", "Cecilia"),
		newSpyPlayer("p3", "Daavid"),
	}
}

func card(s deck.Suit, r deck.Rank) deck.Card {
	return deck.Card{Suit: s, Rank: r}
}

// deckFor lays out cards so that a round-robin deal gives hands[i] to seat i
func deckFor(hands [4]deck.CardSet) func() deck.CardSet {
	return func() deck.CardSet {
		d := deck.CardSet{}
		for i := 0; i < len(hands[0]); i++ {
			for _, h := range hands {
				d = append(d, h[i])
			}
		}
		return d
	}
}

// smallHands: seat 2 has no spades, everyone else does
var smallHands = [4]deck.CardSet{
	{card(deck.Spades, deck.Two), card(deck.Spades, deck.King), card(deck.Hearts, deck.Five)},
	{card(deck.Spades, deck.Three), card(deck.Clubs, deck.Four), card(deck.Diamonds, deck.Nine)},
	{card(deck.Clubs, deck.Ace), card(deck.Clubs, deck.Seven), card(deck.Diamonds, deck.Six)},
	{card(deck.Spades, deck.Queen), card(deck.Clubs, deck.Eight), card(deck.Hearts, deck.Two)},
}

// suitHands gives each seat a whole suit: seat 1 holds the diamonds, so
// it votes rami, and seat 0 leads spades nobody else can follow.
func suitHands() [4]deck.CardSet {
	var hands [4]deck.CardSet
	for i, suit := range deck.Suits {
		for r := deck.Two; r <= deck.Ace; r++ {
			hands[i] = append(hands[i], card(suit, r))
		}
	}
	return hands
}

func newTestController(opts ControllerOpts, ps []*spyPlayer) *GameController {
	c := NewController(opts)
	for _, p := range ps {
		if err := c.RegisterPlayer(p); err != nil {
			panic(err)
		}
	}
	return c
}

// legalCard picks a card that follows suit when possible
func legalCard(s *State, hand deck.CardSet) deck.Card {
	if lead, ok := s.LeadSuit(); ok {
		if follow := hand.OfSuit(lead); len(follow) > 0 {
			return follow[0]
		}
	}
	return hand[0]
}

// blackCard picks a black card if there is one
func blackCard(hand deck.CardSet) deck.Card {
	for _, c := range hand {
		if !c.Suit.Red() {
			return c
		}
	}
	return hand[0]
}
