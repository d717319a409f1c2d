package protocol

import (
	"encoding/json"
	"errors"
	"strconv"

	"github.com/minaorangina/tupelo/deck"
	"github.com/minaorangina/tupelo/game"
)

var (
	ErrMissingEventType = errors.New("event has no type")
	ErrUnknownEventType = errors.New("unknown event type")
)

// Event is one notification to a remote player
type Event interface {
	Type() EventType
}

type NoneEvent struct{}

type CardPlayedEvent struct {
	Player    PlayerInfo  `json:"player"`
	Card      deck.Card   `json:"card"`
	GameState *game.State `json:"game_state,omitempty"`
}

type MessageEvent struct {
	Sender  string `json:"sender"`
	Message string `json:"message"`
}

type TrickPlayedEvent struct {
	Player    PlayerInfo  `json:"player"`
	GameState *game.State `json:"game_state,omitempty"`
}

type TurnEvent struct {
	GameState *game.State `json:"game_state,omitempty"`
}

type StateChangedEvent struct {
	GameState *game.State `json:"game_state,omitempty"`
}

func (NoneEvent) Type() EventType         { return EventNone }
func (CardPlayedEvent) Type() EventType   { return EventCardPlayed }
func (MessageEvent) Type() EventType      { return EventMessage }
func (TrickPlayedEvent) Type() EventType  { return EventTrickPlayed }
func (TurnEvent) Type() EventType         { return EventTurn }
func (StateChangedEvent) Type() EventType { return EventStateChanged }

var eventTypes = map[EventType]func() Event{
	EventNone:         func() Event { return &NoneEvent{} },
	EventCardPlayed:   func() Event { return &CardPlayedEvent{} },
	EventMessage:      func() Event { return &MessageEvent{} },
	EventTrickPlayed:  func() Event { return &TrickPlayedEvent{} },
	EventTurn:         func() Event { return &TurnEvent{} },
	EventStateChanged: func() Event { return &StateChangedEvent{} },
}

// MarshalEvent encodes e as a JSON object with its discriminant in "type"
func MarshalEvent(e Event) ([]byte, error) {
	body, err := json.Marshal(e)
	if err != nil {
		return nil, err
	}
	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, err
	}
	fields["type"] = json.RawMessage(strconv.Itoa(int(e.Type())))
	return json.Marshal(fields)
}

// UnmarshalEvent reads the discriminant and decodes the matching variant
func UnmarshalEvent(data []byte) (Event, error) {
	var head struct {
		Type *EventType `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, err
	}
	if head.Type == nil {
		return nil, ErrMissingEventType
	}
	newEvent, ok := eventTypes[*head.Type]
	if !ok {
		return nil, ErrUnknownEventType
	}
	e := newEvent()
	if err := json.Unmarshal(data, e); err != nil {
		return nil, err
	}
	return e, nil
}

// EventList is a batch of events as returned by get_events
type EventList []Event

func (l EventList) MarshalJSON() ([]byte, error) {
	raw := make([]json.RawMessage, len(l))
	for i, e := range l {
		data, err := MarshalEvent(e)
		if err != nil {
			return nil, err
		}
		raw[i] = data
	}
	return json.Marshal(raw)
}

func (l *EventList) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(EventList, len(raw))
	for i, r := range raw {
		e, err := UnmarshalEvent(r)
		if err != nil {
			return err
		}
		out[i] = e
	}
	*l = out
	return nil
}
