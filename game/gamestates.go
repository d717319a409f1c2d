package game

import (
	"fmt"

	"github.com/minaorangina/tupelo/deck"
)

// Status is the lifecycle of a game
type Status int

const (
	StatusOpen Status = iota
	StatusVoting
	StatusOngoing
	StatusStopped
)

var statusNames = []string{"open", "voting", "ongoing", "stopped"}

func (s Status) String() string {
	if s < StatusOpen || s > StatusStopped {
		return fmt.Sprintf("Status(%d)", int(s))
	}
	return statusNames[s]
}

// ParseStatus maps a status name back to its value
func ParseStatus(name string) (Status, bool) {
	for i, n := range statusNames {
		if n == name {
			return Status(i), true
		}
	}
	return 0, false
}

// Mode is the contract chosen in the voting phase
type Mode int

const (
	Nolo Mode = iota
	Rami
)

func (m Mode) String() string {
	switch m {
	case Nolo:
		return "nolo"
	case Rami:
		return "rami"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

const (
	// TurnNone marks the moment between the fourth card and trick resolution
	TurnNone = -1

	NumPlayers    = 4
	TricksPerHand = 13
)

// State is the shared record of a game in progress. The controller updates it
// in place; observers get copies.
type State struct {
	Status       Status       `json:"status"`
	Mode         Mode         `json:"mode"`
	Table        deck.CardSet `json:"table"`
	Score        [2]int       `json:"score"`
	Tricks       [2]int       `json:"tricks"`
	Turn         int          `json:"turn"`
	TurnID       string       `json:"turn_id"`
	Dealer       int          `json:"dealer"`
	RamiChosenBy string       `json:"rami_chosen_by,omitempty"`
}

// NewState returns the state of a game nobody has started yet
func NewState() *State {
	return &State{
		Status: StatusOpen,
		Mode:   Nolo,
		Table:  deck.CardSet{},
	}
}

// Clone returns a deep copy
func (s *State) Clone() *State {
	c := *s
	c.Table = s.Table.Clone()
	return &c
}

// Update copies every field of other into s, keeping s itself
func (s *State) Update(other *State) {
	if other == nil {
		return
	}
	s.Status = other.Status
	s.Mode = other.Mode
	s.Table = other.Table.Clone()
	s.Score = other.Score
	s.Tricks = other.Tricks
	s.Turn = other.Turn
	s.TurnID = other.TurnID
	s.Dealer = other.Dealer
	s.RamiChosenBy = other.RamiChosenBy
}

// Equal compares field by field, cards by identity
func (s *State) Equal(o *State) bool {
	if s == nil || o == nil {
		return s == o
	}
	if s.Status != o.Status || s.Mode != o.Mode || s.Score != o.Score ||
		s.Tricks != o.Tricks || s.Turn != o.Turn || s.TurnID != o.TurnID ||
		s.Dealer != o.Dealer || s.RamiChosenBy != o.RamiChosenBy {
		return false
	}
	if len(s.Table) != len(o.Table) {
		return false
	}
	for i := range s.Table {
		if !s.Table[i].Equal(o.Table[i]) {
			return false
		}
	}
	return true
}

// LeadSuit is the suit of the first card on the table
func (s *State) LeadSuit() (deck.Suit, bool) {
	if len(s.Table) == 0 {
		return 0, false
	}
	return s.Table[0].Suit, true
}

func (s *State) String() string {
	return fmt.Sprintf("%s/%s table=[%s] score=%v tricks=%v turn=%d dealer=%d",
		s.Status, s.Mode, s.Table, s.Score, s.Tricks, s.Turn, s.Dealer)
}
