package players

import (
	"bufio"
	"errors"
	"io"
	"strconv"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/minaorangina/tupelo/deck"
	"github.com/minaorangina/tupelo/game"
)

// CLIPlayer is a human at a terminal
type CLIPlayer struct {
	*Threaded

	in    *bufio.Reader
	outMu sync.Mutex
	out   io.Writer
}

// NewCLIPlayer constructs a CLIPlayer reading choices from in
func NewCLIPlayer(id, name string, in io.Reader, out io.Writer, log *zap.Logger) *CLIPlayer {
	p := &CLIPlayer{in: bufio.NewReader(in), out: out}
	p.Threaded = NewThreaded(id, name, p, log)
	return p
}

func (p *CLIPlayer) echo(text string, a ...interface{}) {
	p.outMu.Lock()
	defer p.outMu.Unlock()
	SendText(p.out, text+"\n", a...)
}

// pickCard asks until the user names a card in hand by its number
func (p *CLIPlayer) pickCard(prompt string) (deck.Card, error) {
	hand := p.Hand().Clone()
	if len(hand) == 0 {
		return deck.Card{}, game.ErrUserQuit
	}

	p.outMu.Lock()
	SendText(p.out, buildHandText(hand))
	p.outMu.Unlock()

	for {
		p.outMu.Lock()
		SendText(p.out, pickPromptText(prompt, len(hand)))
		p.outMu.Unlock()

		line, err := p.in.ReadString('\n')
		input := strings.TrimSpace(line)
		if err != nil && input == "" {
			return deck.Card{}, game.ErrUserQuit
		}

		i, convErr := strconv.Atoi(input)
		if convErr == nil && i >= 1 && i <= len(hand) {
			return hand[i-1], nil
		}
		p.echo("Invalid choice `%s'", input)
		if err != nil {
			return deck.Card{}, game.ErrUserQuit
		}
	}
}

// playUntilAccepted retries while the controller refuses the card on rules
func (p *CLIPlayer) playUntilAccepted(prompt, verb string) error {
	for {
		card, err := p.pickCard(prompt)
		if err != nil {
			return err
		}
		p.echo("%s %s", verb, card)

		c := p.Controller()
		if c == nil {
			return game.ErrNotInProgress
		}
		err = c.PlayCard(p, card)
		var ruleErr *game.RuleError
		if errors.As(err, &ruleErr) {
			p.echo("Oops: %s", err)
			continue
		}
		return err
	}
}

func (p *CLIPlayer) Vote() error {
	p.echo("Voting")
	return p.playUntilAccepted("Pick a card", "Voting with")
}

func (p *CLIPlayer) PlayCard() error {
	s := p.GameState()
	p.echo("Playing %s", s.Mode)
	p.echo("Table:")

	c := p.Controller()
	for _, card := range s.Table {
		if c != nil {
			if by, ok := c.Player(card.PlayedBy); ok {
				p.echo("%s: %s", by.Name(), card)
				continue
			}
		}
		p.echo("%s", card)
	}
	return p.playUntilAccepted("Card to play", "Playing")
}

func (p *CLIPlayer) CardPlayed(by game.Player, c deck.Card, s *game.State) {
	who := by.Name()
	if by.ID() == p.ID() {
		who = "You"
	}
	if s.Status == game.StatusVoting {
		p.echo("%s voted %s", who, c)
		return
	}
	p.echo("%s played %s", who, c)
}

func (p *CLIPlayer) SendMessage(sender, msg string) {
	if sender != "" {
		p.echo("%s: %s", sender, msg)
		return
	}
	p.echo("%s", msg)
}
