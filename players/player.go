package players

import (
	"sync"
	"time"

	uuid "github.com/satori/go.uuid"

	"github.com/minaorangina/tupelo/deck"
	"github.com/minaorangina/tupelo/game"
)

// NewID constructs a player ID
func NewID() string {
	id, err := uuid.NewV4()
	if err != nil {
		panic(err)
	}
	return id.String()
}

// Base holds what every player has: identity, team, hand and a private
// copy of the game state as last told by the controller. Its notification
// methods do nothing.
type Base struct {
	mu         sync.Mutex
	id         string
	name       string
	team       int
	hand       deck.CardSet
	state      *game.State
	controller game.Controller
}

func (p *Base) init(id, name string) {
	p.id = id
	p.name = name
	p.hand = deck.CardSet{}
	p.state = game.NewState()
}

func (p *Base) ID() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.id
}

func (p *Base) SetID(id string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.id = id
}

func (p *Base) Name() string {
	return p.name
}

func (p *Base) Team() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.team
}

func (p *Base) SetTeam(team int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.team = team
}

// Hand is owned by the controller while the game runs
func (p *Base) Hand() *deck.CardSet {
	return &p.hand
}

// GameState returns a copy of the player's view of the game
func (p *Base) GameState() *game.State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state.Clone()
}

// Controller returns the controller that last asked this player to act
func (p *Base) Controller() game.Controller {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.controller
}

func (p *Base) update(c game.Controller, s *game.State) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if c != nil {
		p.controller = c
	}
	p.state.Update(s)
}

func (p *Base) Start() {}

func (p *Base) Stop() {}

func (p *Base) Join(timeout time.Duration) error {
	return nil
}

func (p *Base) Act(c game.Controller, s *game.State) {
	p.update(c, s)
}

func (p *Base) CardPlayed(by game.Player, c deck.Card, s *game.State) {}

func (p *Base) TrickPlayed(winner game.Player, s *game.State) {}

func (p *Base) StateChanged(s *game.State) {}

func (p *Base) SendMessage(sender, msg string) {}

func (p *Base) String() string {
	return p.name
}
