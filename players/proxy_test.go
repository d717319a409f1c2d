package players

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minaorangina/tupelo/deck"
	"github.com/minaorangina/tupelo/game"
	"github.com/minaorangina/tupelo/protocol"
)

func TestProxyPlayer(t *testing.T) {
	t.Run("queues notifications in order", func(t *testing.T) {
		p := NewProxyPlayer("p1", "Anna", 0)
		other := NewProxyPlayer("p2", "Bertta", 0)
		other.SetTeam(1)

		p.StateChanged(stateOf(game.StatusVoting, game.Nolo))
		p.CardPlayed(other, card(deck.Clubs, deck.Four), stateOf(game.StatusVoting, game.Nolo))
		p.SendMessage("", "Nolo it is")
		p.TrickPlayed(other, stateOf(game.StatusOngoing, game.Nolo))
		p.Act(newFakeController(), stateOf(game.StatusOngoing, game.Nolo))

		events := p.PopEvents()
		require.Len(t, events, 5)
		types := []protocol.EventType{}
		for _, e := range events {
			types = append(types, e.Type())
		}
		assert.Equal(t, []protocol.EventType{
			protocol.EventStateChanged,
			protocol.EventCardPlayed,
			protocol.EventMessage,
			protocol.EventTrickPlayed,
			protocol.EventTurn,
		}, types)

		cp := events[1].(*protocol.CardPlayedEvent)
		assert.Equal(t, protocol.PlayerInfo{ID: "p2", Name: "Bertta", Team: 1}, cp.Player)
		assert.Equal(t, card(deck.Clubs, deck.Four), cp.Card)

		assert.Empty(t, p.PopEvents())
	})

	t.Run("drops the oldest events when full", func(t *testing.T) {
		p := NewProxyPlayer("p1", "Anna", 2)
		p.SendMessage("", "one")
		p.SendMessage("", "two")
		p.SendMessage("", "three")

		events := p.PopEvents()
		require.Len(t, events, 2)
		assert.Equal(t, "two", events[0].(*protocol.MessageEvent).Message)
		assert.Equal(t, "three", events[1].(*protocol.MessageEvent).Message)
	})

	t.Run("signals new events", func(t *testing.T) {
		p := NewProxyPlayer("p1", "Anna", 0)
		p.SendMessage("", "one")
		p.SendMessage("", "two")

		select {
		case <-p.Notify():
		default:
			t.Fatal("no signal")
		}
		select {
		case <-p.Notify():
			t.Fatal("signals should coalesce")
		default:
		}
	})

	t.Run("is not asked to act once the game stops", func(t *testing.T) {
		p := NewProxyPlayer("p1", "Anna", 0)
		p.Act(newFakeController(), stateOf(game.StatusStopped, game.Nolo))
		assert.Empty(t, p.PopEvents())
		assert.Equal(t, game.StatusStopped, p.GameState().Status)
	})
}
