package store

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/minaorangina/tupelo/auth"
	"github.com/minaorangina/tupelo/deck"
	"github.com/minaorangina/tupelo/game"
	"github.com/minaorangina/tupelo/players"
	"github.com/minaorangina/tupelo/protocol"
)

const Version = "0.1"

var (
	ErrInvalidAKey   = game.NewGameError("Invalid authentication key")
	ErrAlreadyInGame = game.NewGameError("Player is already in a game")
	ErrNotInGame     = game.NewGameError("player is not in a game")
	ErrMissingName   = game.NewGameError("player name is required")
)

func errUnknownGame(gameID string) error {
	return game.NewGameError(fmt.Sprintf("Game %s does not exist", gameID))
}

func errUnknownPlayer(playerID string) error {
	return game.NewGameError(fmt.Sprintf("Player (ID %s) does not exist", playerID))
}

// GameStore is what the server needs from a registry of players and games
type GameStore interface {
	RegisterPlayer(name string) (protocol.Registration, error)
	Authenticate(akey string) (string, error)
	Hello(akey string) Hello
	Player(playerID string) (*players.ProxyPlayer, error)
	QuitPlayer(playerID string) error
	ListPlayers() []protocol.PlayerInfo
	ListGames(status *game.Status) map[string]protocol.GameInfo
	CreateGame(playerID string) (string, error)
	EnterGame(playerID, gameID string) error
	LeaveGame(playerID, gameID string) error
	GameState(playerID, gameID string) (protocol.StateResponse, error)
	GameInfo(gameID string) (protocol.GameInfo, error)
	Events(playerID string) (protocol.EventList, error)
	StartGame(playerID, gameID string) error
	StartGameWithBots(playerID, gameID string) error
	PlayCard(playerID, gameID string, card deck.Card) error
}

// session is a registered remote player and the game they sit in
type session struct {
	player *players.ProxyPlayer
	game   *game.GameController
}

// Opts configures an InMemoryGameStore. Zero values get defaults.
type Opts struct {
	Logger      *zap.Logger
	Issuer      *auth.Issuer
	TargetScore int
	JoinTimeout time.Duration
	EventBuffer int
	NewDeck     func() deck.CardSet
}

// InMemoryGameStore keeps registered players and their games
type InMemoryGameStore struct {
	mu       sync.Mutex
	log      *zap.Logger
	issuer   *auth.Issuer
	opts     Opts
	Sessions map[string]*session
	Games    map[string]*game.GameController

	cron *cron.Cron
}

// NewInMemoryGameStore constructs an InMemoryGameStore
func NewInMemoryGameStore(opts Opts) *InMemoryGameStore {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Issuer == nil {
		opts.Issuer = auth.NewIssuer(players.NewID(), 0)
	}
	return &InMemoryGameStore{
		log:      opts.Logger,
		issuer:   opts.Issuer,
		opts:     opts,
		Sessions: map[string]*session{},
		Games:    map[string]*game.GameController{},
	}
}

// NewGameID returns a six letter code that is easy to share
func NewGameID() string {
	letters := []byte("ABCDEFGHIJKLMNOPQRSTUVWXYZ")
	code := make([]byte, 6)
	for i := range code {
		code[i] = letters[rand.Intn(len(letters))]
	}
	return string(code)
}

func (s *InMemoryGameStore) findSession(playerID string) (*session, error) {
	sess, ok := s.Sessions[playerID]
	if !ok {
		return nil, errUnknownPlayer(playerID)
	}
	return sess, nil
}

func (s *InMemoryGameStore) findGame(gameID string) (*game.GameController, error) {
	g, ok := s.Games[gameID]
	if !ok {
		return nil, errUnknownGame(gameID)
	}
	return g, nil
}

// lookup finds a session and a game together
func (s *InMemoryGameStore) lookup(playerID, gameID string) (*session, *game.GameController, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.findSession(playerID)
	if err != nil {
		return nil, nil, err
	}
	g, err := s.findGame(gameID)
	if err != nil {
		return nil, nil, err
	}
	return sess, g, nil
}

func (s *InMemoryGameStore) info(sess *session) protocol.PlayerInfo {
	info := protocol.InfoOf(sess.player)
	if sess.game != nil {
		info.GameID = sess.game.ID()
	}
	return info
}

func gameInfo(g *game.GameController) protocol.GameInfo {
	info := protocol.GameInfo{
		ID:      g.ID(),
		Status:  g.State().Status.String(),
		Players: []protocol.PlayerInfo{},
	}
	for _, p := range g.Players() {
		info.Players = append(info.Players, protocol.InfoOf(p))
	}
	return info
}

// RegisterPlayer creates a session and returns its access key
func (s *InMemoryGameStore) RegisterPlayer(name string) (protocol.Registration, error) {
	if name == "" {
		return protocol.Registration{}, ErrMissingName
	}

	p := players.NewProxyPlayer(players.NewID(), name, s.opts.EventBuffer)
	akey, err := s.issuer.Issue(p.ID())
	if err != nil {
		return protocol.Registration{}, err
	}

	s.mu.Lock()
	s.Sessions[p.ID()] = &session{player: p}
	s.mu.Unlock()

	s.log.Info("player registered", zap.String("player_id", p.ID()), zap.String("name", name))
	return protocol.Registration{PlayerInfo: protocol.InfoOf(p), AKey: akey}, nil
}

// Authenticate resolves an access key to a registered player id
func (s *InMemoryGameStore) Authenticate(akey string) (string, error) {
	id, err := s.issuer.Verify(akey)
	if err != nil {
		return "", ErrInvalidAKey
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.Sessions[id]; !ok {
		return "", ErrInvalidAKey
	}
	return id, nil
}

// Hello describes the server and, for a valid akey, the caller
type Hello struct {
	Version string               `json:"version"`
	Player  *protocol.PlayerInfo `json:"player,omitempty"`
	Game    *protocol.GameInfo   `json:"game,omitempty"`
}

func (s *InMemoryGameStore) Hello(akey string) Hello {
	res := Hello{Version: Version}
	id, err := s.Authenticate(akey)
	if err != nil {
		return res
	}

	s.mu.Lock()
	sess, err := s.findSession(id)
	if err != nil {
		s.mu.Unlock()
		return res
	}
	info, g := s.info(sess), sess.game
	s.mu.Unlock()

	res.Player = &info
	if g != nil {
		gi := gameInfo(g)
		res.Game = &gi
	}
	return res
}

// Player returns the proxy standing in for a registered player
func (s *InMemoryGameStore) Player(playerID string) (*players.ProxyPlayer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.findSession(playerID)
	if err != nil {
		return nil, err
	}
	return sess.player, nil
}

// QuitPlayer leaves the player's game, if any, and forgets the player
func (s *InMemoryGameStore) QuitPlayer(playerID string) error {
	s.mu.Lock()
	sess, err := s.findSession(playerID)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	g := sess.game
	s.mu.Unlock()

	if g != nil {
		var gameErr *game.GameError
		if err := s.LeaveGame(playerID, g.ID()); err != nil && !errors.As(err, &gameErr) {
			return err
		}
	}

	s.mu.Lock()
	delete(s.Sessions, playerID)
	s.mu.Unlock()

	s.log.Info("player quit", zap.String("player_id", playerID))
	return nil
}

// ListPlayers returns every registered player
func (s *InMemoryGameStore) ListPlayers() []protocol.PlayerInfo {
	s.mu.Lock()
	defer s.mu.Unlock()

	ps := []protocol.PlayerInfo{}
	for _, sess := range s.Sessions {
		ps = append(ps, s.info(sess))
	}
	sort.Slice(ps, func(i, j int) bool { return ps[i].ID < ps[j].ID })
	return ps
}

// ListGames returns the games by id, only those with the given status
// unless status is nil
func (s *InMemoryGameStore) ListGames(status *game.Status) map[string]protocol.GameInfo {
	s.mu.Lock()
	games := make([]*game.GameController, 0, len(s.Games))
	for _, g := range s.Games {
		games = append(games, g)
	}
	s.mu.Unlock()

	res := map[string]protocol.GameInfo{}
	for _, g := range games {
		info := gameInfo(g)
		if status != nil && info.Status != status.String() {
			continue
		}
		res[g.ID()] = info
	}
	return res
}

// CreateGame opens a new game with the player seated in it
func (s *InMemoryGameStore) CreateGame(playerID string) (string, error) {
	s.mu.Lock()
	id := NewGameID()
	for s.Games[id] != nil {
		id = NewGameID()
	}
	g := game.NewController(game.ControllerOpts{
		ID:          id,
		Logger:      s.log,
		TargetScore: s.opts.TargetScore,
		JoinTimeout: s.opts.JoinTimeout,
		NewDeck:     s.opts.NewDeck,
	})
	s.Games[id] = g
	s.mu.Unlock()

	if err := s.EnterGame(playerID, id); err != nil {
		s.mu.Lock()
		delete(s.Games, id)
		s.mu.Unlock()
		return "", err
	}

	s.log.Info("game created", zap.String("game_id", id), zap.String("player_id", playerID))
	return id, nil
}

// EnterGame seats the player in the game
func (s *InMemoryGameStore) EnterGame(playerID, gameID string) error {
	s.mu.Lock()
	sess, err := s.findSession(playerID)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	g, err := s.findGame(gameID)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	if sess.game != nil {
		s.mu.Unlock()
		return ErrAlreadyInGame
	}
	sess.game = g
	s.mu.Unlock()

	if err := g.RegisterPlayer(sess.player); err != nil {
		s.mu.Lock()
		sess.game = nil
		s.mu.Unlock()
		return err
	}
	return nil
}

// LeaveGame takes the player out of the game. A game left empty is removed.
func (s *InMemoryGameStore) LeaveGame(playerID, gameID string) error {
	sess, g, err := s.lookup(playerID, gameID)
	if err != nil {
		return err
	}
	s.mu.Lock()
	seated := sess.game == g
	s.mu.Unlock()
	if !seated {
		return ErrNotInGame
	}

	if err := g.PlayerLeave(playerID); err != nil {
		return err
	}

	s.mu.Lock()
	if sess.game == g {
		sess.game = nil
	}
	empty := len(g.Players()) == 0
	s.mu.Unlock()

	if empty {
		s.removeGame(g)
	}
	return nil
}

// removeGame shuts g down and detaches everyone still pointing at it
func (s *InMemoryGameStore) removeGame(g *game.GameController) {
	s.mu.Lock()
	if s.Games[g.ID()] == g {
		delete(s.Games, g.ID())
	}
	for _, sess := range s.Sessions {
		if sess.game == g {
			sess.game = nil
		}
	}
	s.mu.Unlock()

	g.Shutdown()
	s.log.Info("game removed", zap.String("game_id", g.ID()))
}

// GameState returns the shared state of the game and the player's hand
func (s *InMemoryGameStore) GameState(playerID, gameID string) (protocol.StateResponse, error) {
	_, g, err := s.lookup(playerID, gameID)
	if err != nil {
		return protocol.StateResponse{}, err
	}

	hand, err := g.Hand(playerID)
	if err != nil {
		hand = deck.CardSet{}
	}
	return protocol.StateResponse{GameState: g.State(), Hand: hand}, nil
}

// GameInfo returns the public view of a game
func (s *InMemoryGameStore) GameInfo(gameID string) (protocol.GameInfo, error) {
	s.mu.Lock()
	g, err := s.findGame(gameID)
	s.mu.Unlock()
	if err != nil {
		return protocol.GameInfo{}, err
	}
	return gameInfo(g), nil
}

// Events drains the player's event queue
func (s *InMemoryGameStore) Events(playerID string) (protocol.EventList, error) {
	p, err := s.Player(playerID)
	if err != nil {
		return nil, err
	}
	return p.PopEvents(), nil
}

// StartGame deals the first hand and watches the game until it ends
func (s *InMemoryGameStore) StartGame(playerID, gameID string) error {
	_, g, err := s.lookup(playerID, gameID)
	if err != nil {
		return err
	}
	if err := g.StartGame(); err != nil {
		return err
	}

	go s.watch(g)
	s.log.Info("game started", zap.String("game_id", gameID))
	return nil
}

// StartGameWithBots fills the empty seats with bots and starts the game
func (s *InMemoryGameStore) StartGameWithBots(playerID, gameID string) error {
	_, g, err := s.lookup(playerID, gameID)
	if err != nil {
		return err
	}

	err = g.FillAndStart(func(n int) game.Player {
		return players.NewDummyBot(players.NewID(), fmt.Sprintf("Robotti %d", n), s.log)
	})
	if err != nil {
		return err
	}

	go s.watch(g)
	s.log.Info("game started with bots", zap.String("game_id", gameID))
	return nil
}

// PlayCard votes with or plays card in the game on the player's behalf
func (s *InMemoryGameStore) PlayCard(playerID, gameID string, card deck.Card) error {
	sess, g, err := s.lookup(playerID, gameID)
	if err != nil {
		return err
	}
	return g.PlayCard(sess.player, card)
}

func (s *InMemoryGameStore) watch(g *game.GameController) {
	<-g.Done()
	g.Shutdown()
	s.log.Info("game over", zap.String("game_id", g.ID()), zap.Ints("score", g.State().Score[:]))
}

// Reap removes stopped and empty games. It returns how many went.
func (s *InMemoryGameStore) Reap() int {
	s.mu.Lock()
	var dead []*game.GameController
	for _, g := range s.Games {
		if g.State().Status == game.StatusStopped || len(g.Players()) == 0 {
			dead = append(dead, g)
		}
	}
	s.mu.Unlock()

	for _, g := range dead {
		s.removeGame(g)
	}
	return len(dead)
}

// StartReaper runs Reap on the given cron schedule until StopReaper
func (s *InMemoryGameStore) StartReaper(schedule string) error {
	c := cron.New()
	if _, err := c.AddFunc(schedule, func() {
		if n := s.Reap(); n > 0 {
			s.log.Info("reaped games", zap.Int("count", n))
		}
	}); err != nil {
		return err
	}

	s.mu.Lock()
	if s.cron != nil {
		s.cron.Stop()
	}
	s.cron = c
	s.mu.Unlock()

	c.Start()
	return nil
}

// StopReaper stops the reaper job, if running
func (s *InMemoryGameStore) StopReaper() {
	s.mu.Lock()
	c := s.cron
	s.cron = nil
	s.mu.Unlock()

	if c != nil {
		<-c.Stop().Done()
	}
}

// Shutdown stops every game
func (s *InMemoryGameStore) Shutdown() {
	s.StopReaper()

	s.mu.Lock()
	games := make([]*game.GameController, 0, len(s.Games))
	for _, g := range s.Games {
		games = append(games, g)
	}
	s.mu.Unlock()

	for _, g := range games {
		g.Shutdown()
	}
}
