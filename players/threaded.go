package players

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/minaorangina/tupelo/game"
)

var ErrJoinTimeout = errors.New("player did not stop in time")

// Strategy decides what a player does when woken. Both methods must call
// back into the controller exactly once or return an error.
type Strategy interface {
	Vote() error
	PlayCard() error
}

// Threaded runs a Strategy on its own goroutine, parked until the
// controller calls Act.
type Threaded struct {
	Base
	strategy Strategy
	log      *zap.Logger

	turn    chan struct{}
	stopped atomic.Bool

	runMu sync.Mutex
	done  chan struct{}
}

// NewThreaded constructs a player that runs s when it is its turn
func NewThreaded(id, name string, s Strategy, log *zap.Logger) *Threaded {
	if log == nil {
		log = zap.NewNop()
	}
	p := &Threaded{
		strategy: s,
		log:      log,
		turn:     make(chan struct{}, 1),
	}
	p.init(id, name)
	return p
}

// Start (re)starts the player's goroutine. It does nothing if the goroutine
// is already running.
func (p *Threaded) Start() {
	p.runMu.Lock()
	defer p.runMu.Unlock()

	if p.done != nil {
		select {
		case <-p.done:
		default:
			return
		}
	}

	p.stopped.Store(false)
	select {
	case <-p.turn:
	default:
	}
	done := make(chan struct{})
	p.done = done
	go p.run(done)
}

// Stop asks the goroutine to exit at its next wake-up
func (p *Threaded) Stop() {
	p.stopped.Store(true)
	p.signal()
}

// Join waits for the goroutine to exit
func (p *Threaded) Join(timeout time.Duration) error {
	p.runMu.Lock()
	done := p.done
	p.runMu.Unlock()

	if done == nil {
		return nil
	}
	select {
	case <-done:
		return nil
	case <-time.After(timeout):
		return ErrJoinTimeout
	}
}

// Alive reports whether the goroutine is running
func (p *Threaded) Alive() bool {
	p.runMu.Lock()
	defer p.runMu.Unlock()

	if p.done == nil {
		return false
	}
	select {
	case <-p.done:
		return false
	default:
		return true
	}
}

// Act updates the player's view of the game and wakes its goroutine
func (p *Threaded) Act(c game.Controller, s *game.State) {
	p.update(c, s)
	p.signal()
}

func (p *Threaded) signal() {
	select {
	case p.turn <- struct{}{}:
	default:
	}
}

func (p *Threaded) run(done chan struct{}) {
	defer close(done)

	log := p.log.With(zap.String("player_id", p.ID()), zap.String("name", p.Name()))
	log.Debug("player starting")
	defer log.Debug("player exiting")

	for range p.turn {
		s := p.GameState()
		if p.stopped.Load() || s.Status == game.StatusStopped {
			return
		}

		var err error
		switch s.Status {
		case game.StatusVoting:
			err = p.strategy.Vote()
		case game.StatusOngoing:
			err = p.strategy.PlayCard()
		default:
			log.Warn("woken in unexpected state", zap.Stringer("status", s.Status))
			continue
		}
		if err == nil {
			continue
		}

		if errors.Is(err, game.ErrUserQuit) {
			log.Info("player quit")
			p.quit()
			return
		}
		if p.stopped.Load() {
			return
		}
		log.Error("player failed", zap.Error(err))
		p.quit()
		return
	}
}

func (p *Threaded) quit() {
	if c := p.Controller(); c != nil {
		c.PlayerQuit(p.ID())
	}
}
