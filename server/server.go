package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/handlers"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/minaorangina/tupelo/game"
	"github.com/minaorangina/tupelo/internal/logging"
	"github.com/minaorangina/tupelo/store"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Opts configures a GameServer
type Opts struct {
	Addr           string
	Logger         *zap.Logger
	AllowedOrigins []string
}

// GameServer serves the JSON API and the event stream
type GameServer struct {
	store store.GameStore
	log   *zap.Logger
	http.Server
}

// NewServer creates a new GameServer
func NewServer(s store.GameStore, opts Opts) *GameServer {
	g := &GameServer{store: s, log: opts.Logger}
	if g.log == nil {
		g.log = zap.NewNop()
	}
	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	router := gin.New()
	router.Use(logging.RequestLogger(g.log))
	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"message": "No such method"})
	})

	methods := []string{http.MethodGet, http.MethodPost}
	api := router.Group("/api")
	api.Match(methods, "/hello", g.handle(g.hello))
	api.Match(methods, "/player/register", g.handle(g.registerPlayer))
	api.Match(methods, "/player/quit", g.authed(g.quitPlayer))
	api.Match(methods, "/player/list", g.handle(g.listPlayers))
	api.Match(methods, "/game/list", g.handle(g.listGames))
	api.Match(methods, "/game/create", g.authed(g.createGame))
	api.Match(methods, "/game/enter", g.authed(g.enterGame))
	api.Match(methods, "/game/leave", g.authed(g.leaveGame))
	api.Match(methods, "/game/get_state", g.authed(g.getState))
	api.Match(methods, "/game/get_info", g.handle(g.getInfo))
	api.Match(methods, "/get_events", g.authed(g.getEvents))
	api.Match(methods, "/game/start", g.authed(g.startGame))
	api.Match(methods, "/game/start_with_bots", g.authed(g.startGameWithBots))
	api.Match(methods, "/game/play_card", g.authed(g.playCard))
	router.GET("/ws", g.HandleWS)

	cors := handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowedMethods(methods),
		handlers.AllowedHeaders([]string{"Authorization", "Content-Type"}),
		handlers.ExposedHeaders([]string{"X-Error-Code", "X-Error-Message"}),
	)
	recovery := handlers.RecoveryHandler(
		handlers.RecoveryLogger(zap.NewStdLog(g.log)),
		handlers.PrintRecoveryStack(true),
	)

	g.Addr = opts.Addr
	g.Handler = recovery(cors(router))
	return g
}

// ServeHTTP serves http
func (g *GameServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	g.Handler.ServeHTTP(w, r)
}

type apiFunc func(c *gin.Context) (interface{}, error)

type authedFunc func(c *gin.Context, playerID string) (interface{}, error)

func (g *GameServer) handle(fn apiFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		res, err := fn(c)
		if err != nil {
			g.writeError(c, err)
			return
		}
		c.Header("Cache-Control", "no-cache")
		c.Header("Pragma", "no-cache")
		c.JSON(http.StatusOK, res)
	}
}

func (g *GameServer) authed(fn authedFunc) gin.HandlerFunc {
	return g.handle(func(c *gin.Context) (interface{}, error) {
		playerID, err := g.store.Authenticate(akey(c))
		if err != nil {
			return nil, err
		}
		return fn(c, playerID)
	})
}

func (g *GameServer) hello(c *gin.Context) (interface{}, error) {
	return g.store.Hello(akey(c)), nil
}

func (g *GameServer) registerPlayer(c *gin.Context) (interface{}, error) {
	var p struct {
		Name string `json:"player_name"`
	}
	if raw := param(c, "player"); raw != "" {
		if err := decodeParam("player", raw, &p); err != nil {
			return nil, err
		}
	} else {
		p.Name = param(c, "player_name")
	}
	return g.store.RegisterPlayer(strings.TrimSpace(p.Name))
}

func (g *GameServer) quitPlayer(c *gin.Context, playerID string) (interface{}, error) {
	return true, g.store.QuitPlayer(playerID)
}

func (g *GameServer) listPlayers(c *gin.Context) (interface{}, error) {
	return g.store.ListPlayers(), nil
}

func (g *GameServer) listGames(c *gin.Context) (interface{}, error) {
	raw := param(c, "status")
	if raw == "" {
		return g.store.ListGames(nil), nil
	}
	status, ok := game.ParseStatus(raw)
	if !ok {
		return nil, errBadParam("status")
	}
	return g.store.ListGames(&status), nil
}

func (g *GameServer) createGame(c *gin.Context, playerID string) (interface{}, error) {
	return g.store.CreateGame(playerID)
}

func (g *GameServer) enterGame(c *gin.Context, playerID string) (interface{}, error) {
	gameID, err := requiredParam(c, "game_id")
	if err != nil {
		return nil, err
	}
	return gameID, g.store.EnterGame(playerID, gameID)
}

func (g *GameServer) leaveGame(c *gin.Context, playerID string) (interface{}, error) {
	gameID, err := requiredParam(c, "game_id")
	if err != nil {
		return nil, err
	}
	return true, g.store.LeaveGame(playerID, gameID)
}

func (g *GameServer) getState(c *gin.Context, playerID string) (interface{}, error) {
	gameID, err := requiredParam(c, "game_id")
	if err != nil {
		return nil, err
	}
	return g.store.GameState(playerID, gameID)
}

func (g *GameServer) getInfo(c *gin.Context) (interface{}, error) {
	gameID, err := requiredParam(c, "game_id")
	if err != nil {
		return nil, err
	}
	return g.store.GameInfo(gameID)
}

func (g *GameServer) getEvents(c *gin.Context, playerID string) (interface{}, error) {
	return g.store.Events(playerID)
}

func (g *GameServer) startGame(c *gin.Context, playerID string) (interface{}, error) {
	gameID, err := requiredParam(c, "game_id")
	if err != nil {
		return nil, err
	}
	return true, g.store.StartGame(playerID, gameID)
}

func (g *GameServer) startGameWithBots(c *gin.Context, playerID string) (interface{}, error) {
	gameID, err := requiredParam(c, "game_id")
	if err != nil {
		return nil, err
	}
	return true, g.store.StartGameWithBots(playerID, gameID)
}

func (g *GameServer) playCard(c *gin.Context, playerID string) (interface{}, error) {
	gameID, err := requiredParam(c, "game_id")
	if err != nil {
		return nil, err
	}
	card, err := cardParam(c)
	if err != nil {
		return nil, err
	}
	return true, g.store.PlayCard(playerID, gameID, card)
}
