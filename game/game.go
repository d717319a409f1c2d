package game

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/minaorangina/tupelo/deck"
)

const (
	DefaultTargetScore = 52
	DefaultJoinTimeout = 5 * time.Second
)

// ControllerOpts configures a GameController. Zero values get defaults.
type ControllerOpts struct {
	ID          string
	Logger      *zap.Logger
	TargetScore int
	JoinTimeout time.Duration
	// NewDeck returns the cards dealt for the next hand
	NewDeck func() deck.CardSet
}

// GameController runs one game of tupelo: it seats four players, deals,
// sequences voting and tricks, scores hands and tells every player what
// happened. All state changes happen on the goroutine of whoever calls in.
type GameController struct {
	id          string
	log         *zap.Logger
	targetScore int
	joinTimeout time.Duration
	newDeck     func() deck.CardSet

	// startMu serialises lifecycle changes: start, leave, shutdown
	startMu sync.Mutex

	mu      sync.Mutex
	players []Player
	state   *State

	done     chan struct{}
	doneOnce sync.Once
}

func shuffledDeck() deck.CardSet {
	d := deck.NewFullDeck()
	d.Shuffle()
	return d
}

// NewController constructs a GameController with no players
func NewController(opts ControllerOpts) *GameController {
	c := &GameController{
		id:          opts.ID,
		log:         opts.Logger,
		targetScore: opts.TargetScore,
		joinTimeout: opts.JoinTimeout,
		newDeck:     opts.NewDeck,
		state:       NewState(),
		done:        make(chan struct{}),
	}
	if c.log == nil {
		c.log = zap.NewNop()
	}
	if c.targetScore <= 0 {
		c.targetScore = DefaultTargetScore
	}
	if c.joinTimeout <= 0 {
		c.joinTimeout = DefaultJoinTimeout
	}
	if c.newDeck == nil {
		c.newDeck = shuffledDeck
	}
	c.log = c.log.With(zap.String("game_id", c.id))
	return c
}

func (c *GameController) ID() string {
	return c.id
}

// RegisterPlayer seats p in the next free chair. A player without an id
// gets its seat number as id.
func (c *GameController) RegisterPlayer(p Player) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.register(p)
}

func (c *GameController) register(p Player) error {
	if len(c.players) >= NumPlayers {
		return ErrGameFull
	}
	if p.ID() == "" {
		p.SetID(strconv.Itoa(len(c.players)))
	}
	for _, existing := range c.players {
		if existing == p || existing.ID() == p.ID() {
			return ErrPlayerRegistered
		}
	}

	p.SetTeam(len(c.players) % 2)
	c.players = append(c.players, p)
	c.log.Debug("player registered",
		zap.String("player_id", p.ID()), zap.String("name", p.Name()), zap.Int("team", p.Team()))
	return nil
}

// Player looks a seated player up by id
func (c *GameController) Player(id string) (Player, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	p, _ := c.find(id)
	return p, p != nil
}

// Players returns the players in seating order
func (c *GameController) Players() []Player {
	c.mu.Lock()
	defer c.mu.Unlock()

	ps := make([]Player, len(c.players))
	copy(ps, c.players)
	return ps
}

// State returns a copy of the current game state
func (c *GameController) State() *State {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.state.Clone()
}

// Hand returns a copy of the hand of the given player
func (c *GameController) Hand(playerID string) (deck.CardSet, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	p, _ := c.find(playerID)
	if p == nil {
		return nil, ErrUnknownPlayer
	}
	return p.Hand().Clone(), nil
}

// Done is closed once the game has been won or a player has quit
func (c *GameController) Done() <-chan struct{} {
	return c.done
}

// StartGame starts every player and deals the first hand
func (c *GameController) StartGame() error {
	c.startMu.Lock()
	defer c.startMu.Unlock()
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.start()
}

// FillAndStart seats newPlayer(n) in every empty chair, n counting from 1,
// and starts the game. Nobody is seated unless the game can start.
func (c *GameController) FillAndStart(newPlayer func(n int) Player) error {
	c.startMu.Lock()
	defer c.startMu.Unlock()
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.Status != StatusOpen {
		return ErrAlreadyStarted
	}
	seated := len(c.players)
	for n := 1; len(c.players) < NumPlayers; n++ {
		if err := c.register(newPlayer(n)); err != nil {
			c.players = c.players[:seated]
			return err
		}
	}
	return c.start()
}

func (c *GameController) start() error {
	if c.state.Status != StatusOpen {
		return ErrAlreadyStarted
	}
	if len(c.players) != NumPlayers {
		return ErrNotEnoughPlayers
	}

	c.log.Info("starting game")
	for _, p := range c.players {
		p.Start()
	}
	c.startNewHand()
	return nil
}

// PlayCard votes with or plays card on behalf of p. Nothing changes when
// the move is rejected.
func (c *GameController) PlayCard(p Player, card deck.Card) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := c.state
	if s.Status != StatusVoting && s.Status != StatusOngoing {
		return ErrNotInProgress
	}
	if s.Turn < 0 || s.Turn >= len(c.players) || c.players[s.Turn].ID() != p.ID() {
		return ErrNotYourTurn
	}
	player := c.players[s.Turn]

	if s.Status == StatusVoting {
		return c.voteCard(player, card)
	}
	return c.playCard(player, card)
}

// PlayerLeave removes a player and waits for it to stop. Once the game has
// started the rest of the table is stopped and the game is reset, since it
// cannot go on short-handed.
func (c *GameController) PlayerLeave(playerID string) error {
	return c.leave(playerID, true)
}

// PlayerQuit is PlayerLeave followed by the end of the game. It is called
// from the quitting player's own goroutine, so that player is not joined.
func (c *GameController) PlayerQuit(playerID string) {
	if err := c.leave(playerID, false); err != nil {
		c.log.Warn("quit from unknown player", zap.String("player_id", playerID))
	}
	c.closeDone()
}

func (c *GameController) leave(playerID string, joinLeaver bool) error {
	c.startMu.Lock()
	defer c.startMu.Unlock()
	c.mu.Lock()

	p, idx := c.find(playerID)
	if p == nil {
		c.mu.Unlock()
		return ErrUnknownPlayer
	}

	c.sendMsg("%s left the game", p.Name())
	c.players = append(c.players[:idx], c.players[idx+1:]...)
	p.Hand().Clear()
	p.Stop()
	c.log.Info("player left", zap.String("player_id", playerID))

	var stopped []Player
	if c.state.Status != StatusOpen {
		stopped = c.stopPlayers()
		c.players = nil
		c.state.Update(NewState())
	} else {
		for i, rest := range c.players {
			rest.SetTeam(i % 2)
		}
	}
	c.mu.Unlock()

	if joinLeaver {
		stopped = append(stopped, p)
	}
	c.join(stopped)
	return nil
}

// Shutdown stops every player and waits for them to exit
func (c *GameController) Shutdown() {
	c.startMu.Lock()
	defer c.startMu.Unlock()

	c.mu.Lock()
	stopped := c.stopPlayers()
	c.mu.Unlock()

	c.join(stopped)
	c.closeDone()
	c.log.Info("game shut down")
}

// WaitForShutdown blocks until the game is done or ctx is cancelled, then
// shuts it down.
func (c *GameController) WaitForShutdown(ctx context.Context) error {
	select {
	case <-c.done:
	case <-ctx.Done():
	}
	c.Shutdown()
	return ctx.Err()
}

func (c *GameController) closeDone() {
	c.doneOnce.Do(func() { close(c.done) })
}

// everything below expects c.mu to be held

func (c *GameController) find(id string) (Player, int) {
	for i, p := range c.players {
		if p.ID() == id {
			return p, i
		}
	}
	return nil, -1
}

func (c *GameController) snapshot() *State {
	return c.state.Clone()
}

func (c *GameController) setState(status Status) {
	c.state.Status = status
	s := c.snapshot()
	for _, p := range c.players {
		p.StateChanged(s)
	}
}

func (c *GameController) setTurn(turn int) {
	c.state.Turn = turn
	if turn == TurnNone {
		c.state.TurnID = ""
		return
	}
	c.state.TurnID = c.players[turn].ID()
}

func (c *GameController) nextTurn() {
	c.setTurn((c.state.Turn + 1) % NumPlayers)
}

func (c *GameController) signalAct() {
	c.players[c.state.Turn].Act(c, c.snapshot())
}

func (c *GameController) sendMsg(format string, a ...interface{}) {
	msg := fmt.Sprintf(format, a...)
	c.log.Debug(msg)
	for _, p := range c.players {
		p.SendMessage("", msg)
	}
}

func (c *GameController) notifyCardPlayed(p Player, card deck.Card) {
	s := c.snapshot()
	for _, other := range c.players {
		other.CardPlayed(p, card, s)
	}
}

func (c *GameController) teamName(team int) string {
	names := []string{}
	for i, p := range c.players {
		if i%2 == team {
			names = append(names, p.Name())
		}
	}
	return fmt.Sprintf("%d (%s)", team+1, strings.Join(names, ", "))
}

func (c *GameController) startNewHand() {
	s := c.state
	s.Tricks = [2]int{}
	s.Table.Clear()

	hands := make([]*deck.CardSet, len(c.players))
	for i, p := range c.players {
		p.Hand().Clear()
		hands[i] = p.Hand()
	}
	cards := c.newDeck()
	if err := cards.Deal(hands); err != nil {
		c.log.Error("could not deal", zap.Error(err))
		return
	}
	for _, h := range hands {
		h.Sort()
	}

	s.Mode = Nolo
	s.RamiChosenBy = ""
	c.log.Debug("new hand", zap.Int("dealer", s.Dealer), zap.Ints("score", s.Score[:]))
	c.setState(StatusVoting)
	c.setTurn((s.Dealer + 1) % NumPlayers)
	c.signalAct()
}

// voteCard shows a card without giving it up. The first red card decides
// rami; four black ones decide nolo.
func (c *GameController) voteCard(p Player, card deck.Card) error {
	if !p.Hand().Contains(card) {
		return ErrInvalidCard
	}
	s := c.state
	idx := s.Turn

	card.PlayedBy = p.ID()
	s.Table = append(s.Table, card)
	c.notifyCardPlayed(p, card)

	switch {
	case card.Suit.Red():
		s.Mode = Rami
		s.RamiChosenBy = p.ID()
		c.setTurn((idx + NumPlayers - 1) % NumPlayers)
		c.beginPlay()
	case len(s.Table) == NumPlayers:
		s.Mode = Nolo
		c.nextTurn()
		c.beginPlay()
	default:
		c.nextTurn()
	}

	c.signalAct()
	return nil
}

func (c *GameController) beginPlay() {
	if c.state.Mode == Rami {
		c.sendMsg("Rami it is")
	} else {
		c.sendMsg("Nolo it is")
	}
	c.sendMsg("Game on, %s begins!", c.players[c.state.Turn].Name())
	c.log.Debug("voting over", zap.Stringer("mode", c.state.Mode))
	c.state.Table.Clear()
	c.setState(StatusOngoing)
}

func (c *GameController) playCard(p Player, card deck.Card) error {
	s := c.state
	hand := p.Hand()

	if lead, ok := s.LeadSuit(); ok && card.Suit != lead && len(hand.OfSuit(lead)) > 0 {
		return ErrSuitNotFollowed
	}
	taken, err := hand.Take(card)
	if err != nil {
		return ErrInvalidCard
	}

	taken.PlayedBy = p.ID()
	s.Table = append(s.Table, taken)

	if len(s.Table) == NumPlayers {
		c.setTurn(TurnNone)
		c.notifyCardPlayed(p, taken)
		c.trickPlayed()
		return nil
	}

	c.nextTurn()
	c.notifyCardPlayed(p, taken)
	c.signalAct()
	return nil
}

func (c *GameController) trickPlayed() {
	s := c.state
	high, _ := TrickWinner(s.Table)
	winner, idx := c.find(high.PlayedBy)
	if winner == nil {
		c.log.Error("trick winner is not seated", zap.String("player_id", high.PlayedBy))
		return
	}
	team := idx % 2

	c.sendMsg("Team %s takes this trick", c.teamName(team))
	s.Tricks[team]++
	c.sendMsg("Tricks: %v", s.Tricks)

	snap := c.snapshot()
	for _, p := range c.players {
		p.TrickPlayed(winner, snap)
	}
	s.Table.Clear()

	if s.Tricks[0]+s.Tricks[1] == TricksPerHand {
		c.handPlayed()
		return
	}
	c.setTurn(idx)
	c.signalAct()
}

func (c *GameController) handPlayed() {
	s := c.state

	ramiTeam := -1
	if p, idx := c.find(s.RamiChosenBy); p != nil {
		ramiTeam = idx % 2
	}
	res := ScoreHand(s.Mode, s.Tricks, ramiTeam)
	if res.Doubled {
		c.sendMsg("Double points for taking opponent's rami!")
	}
	c.sendMsg("Team %s won this hand with %d tricks", c.teamName(res.Winner), s.Tricks[res.Winner])

	fellDown, won := ApplyScore(&s.Score, res, c.targetScore)
	c.log.Info("hand played",
		zap.Stringer("mode", s.Mode),
		zap.Ints("tricks", s.Tricks[:]),
		zap.Ints("score", s.Score[:]),
		zap.Bool("fell_down", fellDown))

	switch {
	case fellDown:
		c.sendMsg("Team %s fell down", c.teamName(res.Loser))
	case won:
		c.sendMsg("Team %s won with score %d!", c.teamName(res.Winner), s.Score[res.Winner])
		c.stopPlayers()
		c.closeDone()
		return
	default:
		c.sendMsg("Team %s is at %d", c.teamName(res.Winner), s.Score[res.Winner])
	}

	s.Dealer = (s.Dealer + 1) % NumPlayers
	c.startNewHand()
}

// stopPlayers moves the game to STOPPED and wakes every player so that its
// execution context can exit. It returns the players to join.
func (c *GameController) stopPlayers() []Player {
	if c.state.Status != StatusStopped {
		c.setTurn(TurnNone)
		c.setState(StatusStopped)
	}
	s := c.snapshot()
	ps := make([]Player, len(c.players))
	for i, p := range c.players {
		p.Act(c, s)
		p.Stop()
		ps[i] = p
	}
	return ps
}

func (c *GameController) join(ps []Player) {
	for _, p := range ps {
		if err := p.Join(c.joinTimeout); err != nil {
			c.log.Warn("player did not stop", zap.String("player_id", p.ID()), zap.Error(err))
		}
	}
}
