package players

import (
	"sync"

	"github.com/minaorangina/tupelo/deck"
	"github.com/minaorangina/tupelo/game"
	"github.com/minaorangina/tupelo/protocol"
)

const DefaultEventBuffer = 256

// ProxyPlayer stands in for a player on the other side of the API. It
// queues every notification until the remote end collects them.
type ProxyPlayer struct {
	Base

	qmu    sync.Mutex
	queue  []protocol.Event
	max    int
	notify chan struct{}
}

// NewProxyPlayer constructs a ProxyPlayer keeping at most max events.
// When the queue is full the oldest event is dropped.
func NewProxyPlayer(id, name string, max int) *ProxyPlayer {
	if max <= 0 {
		max = DefaultEventBuffer
	}
	p := &ProxyPlayer{max: max, notify: make(chan struct{}, 1)}
	p.init(id, name)
	return p
}

func (p *ProxyPlayer) push(e protocol.Event) {
	p.qmu.Lock()
	if len(p.queue) >= p.max {
		p.queue = p.queue[1:]
	}
	p.queue = append(p.queue, e)
	p.qmu.Unlock()

	select {
	case p.notify <- struct{}{}:
	default:
	}
}

// PopEvents returns the queued events, oldest first, and empties the queue
func (p *ProxyPlayer) PopEvents() protocol.EventList {
	p.qmu.Lock()
	defer p.qmu.Unlock()

	events := protocol.EventList(p.queue)
	p.queue = nil
	return events
}

// Notify fires after new events have been queued
func (p *ProxyPlayer) Notify() <-chan struct{} {
	return p.notify
}

func (p *ProxyPlayer) Act(c game.Controller, s *game.State) {
	p.update(c, s)
	if s.Status == game.StatusStopped {
		return
	}
	p.push(&protocol.TurnEvent{GameState: s.Clone()})
}

func (p *ProxyPlayer) CardPlayed(by game.Player, c deck.Card, s *game.State) {
	p.update(nil, s)
	p.push(&protocol.CardPlayedEvent{Player: protocol.InfoOf(by), Card: c, GameState: s.Clone()})
}

func (p *ProxyPlayer) TrickPlayed(winner game.Player, s *game.State) {
	p.update(nil, s)
	p.push(&protocol.TrickPlayedEvent{Player: protocol.InfoOf(winner), GameState: s.Clone()})
}

func (p *ProxyPlayer) StateChanged(s *game.State) {
	p.update(nil, s)
	p.push(&protocol.StateChangedEvent{GameState: s.Clone()})
}

func (p *ProxyPlayer) SendMessage(sender, msg string) {
	p.push(&protocol.MessageEvent{Sender: sender, Message: msg})
}
