package protocol

import (
	"github.com/minaorangina/tupelo/deck"
	"github.com/minaorangina/tupelo/game"
)

// PlayerInfo is the public view of a player
type PlayerInfo struct {
	ID     string `json:"id"`
	Name   string `json:"player_name"`
	Team   int    `json:"team"`
	GameID string `json:"game_id,omitempty"`
}

// InfoOf describes a seated player
func InfoOf(p game.Player) PlayerInfo {
	if p == nil {
		return PlayerInfo{}
	}
	return PlayerInfo{ID: p.ID(), Name: p.Name(), Team: p.Team()}
}

// GameInfo is the public view of a game
type GameInfo struct {
	ID      string       `json:"id"`
	Status  string       `json:"status"`
	Players []PlayerInfo `json:"players"`
}

// StateResponse is what a player sees of a game: the shared state and
// their own hand
type StateResponse struct {
	GameState *game.State  `json:"game_state"`
	Hand      deck.CardSet `json:"hand"`
}

// Registration is returned once to a newly registered player
type Registration struct {
	PlayerInfo
	AKey string `json:"akey"`
}
