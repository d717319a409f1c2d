package protocol

import "fmt"

// EventType is the discriminant of an Event on the wire
type EventType int

const (
	EventNone EventType = iota
	EventCardPlayed
	EventMessage
	EventTrickPlayed
	EventTurn
	EventStateChanged
)

var eventNames = []string{
	"None",
	"CardPlayed",
	"Message",
	"TrickPlayed",
	"Turn",
	"StateChanged",
}

func (t EventType) String() string {
	if t < EventNone || int(t) >= len(eventNames) {
		return fmt.Sprintf("EventType(%d)", int(t))
	}
	return eventNames[t]
}
