package players

import (
	"sync"

	"github.com/minaorangina/tupelo/deck"
	"github.com/minaorangina/tupelo/game"
)

// fakeController accepts every card unless errs says otherwise
type fakeController struct {
	mu      sync.Mutex
	played  []deck.Card
	quit    []string
	errs    []error
	players map[string]game.Player
}

func newFakeController(ps ...game.Player) *fakeController {
	c := &fakeController{players: map[string]game.Player{}}
	for _, p := range ps {
		c.players[p.ID()] = p
	}
	return c
}

func (c *fakeController) PlayCard(p game.Player, card deck.Card) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.errs) > 0 {
		err := c.errs[0]
		c.errs = c.errs[1:]
		if err != nil {
			return err
		}
	}
	c.played = append(c.played, card)
	return nil
}

func (c *fakeController) Player(id string) (game.Player, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.players[id]
	return p, ok
}

func (c *fakeController) PlayerQuit(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.quit = append(c.quit, id)
}

func (c *fakeController) playedCards() []deck.Card {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]deck.Card{}, c.played...)
}

func (c *fakeController) quitters() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string{}, c.quit...)
}

func card(s deck.Suit, r deck.Rank) deck.Card {
	return deck.Card{Suit: s, Rank: r}
}

func stateOf(status game.Status, mode game.Mode, table ...deck.Card) *game.State {
	s := game.NewState()
	s.Status = status
	s.Mode = mode
	s.Table = table
	return s
}

func played(c deck.Card, by string) deck.Card {
	c.PlayedBy = by
	return c
}
