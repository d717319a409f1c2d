package game

import (
	"time"

	"github.com/minaorangina/tupelo/deck"
)

// Player is anything that can sit at the table. The controller calls Act
// when the player must vote or play and the notification methods after every
// change. None of them may block the controller for long.
type Player interface {
	ID() string
	SetID(id string)
	Name() string
	Team() int
	SetTeam(team int)
	Hand() *deck.CardSet

	// Start and Stop control the player's own execution context, if it has one.
	Start()
	Stop()
	// Join waits until the execution context has exited.
	Join(timeout time.Duration) error

	Act(c Controller, s *State)
	CardPlayed(p Player, c deck.Card, s *State)
	TrickPlayed(winner Player, s *State)
	StateChanged(s *State)
	SendMessage(sender, msg string)
}

// Controller is what a player may call back into
type Controller interface {
	PlayCard(p Player, c deck.Card) error
	Player(id string) (Player, bool)
	PlayerQuit(id string)
}
