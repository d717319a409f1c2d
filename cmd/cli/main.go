package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/minaorangina/tupelo/game"
	"github.com/minaorangina/tupelo/internal/logging"
	"github.com/minaorangina/tupelo/players"
)

func main() {
	human := flag.Bool("human", false, "take a seat yourself")
	name := flag.String("name", "Ihminen", "your name at the table")
	target := flag.Int("target", game.DefaultTargetScore, "score that wins the game")
	flag.Parse()

	// with bots only, the log is the show
	logger := zap.NewNop()
	if !*human {
		var err error
		if logger, err = logging.New(true); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
	defer logger.Sync()

	g := game.NewController(game.ControllerOpts{ID: "local", Logger: logger, TargetScore: *target})

	seat := 0
	if *human {
		mustRegister(g, players.NewCLIPlayer(players.NewID(), *name, os.Stdin, os.Stdout, logger))
		seat++
	}
	for ; seat < game.NumPlayers; seat++ {
		if seat%2 == 0 {
			mustRegister(g, players.NewCountingBot(players.NewID(), fmt.Sprintf("Lopotti %d", seat), logger))
		} else {
			mustRegister(g, players.NewDummyBot(players.NewID(), fmt.Sprintf("Robotti %d", seat), logger))
		}
	}

	if err := g.StartGame(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	g.WaitForShutdown(context.Background())

	s := g.State()
	fmt.Printf("Final score: %d - %d\n", s.Score[0], s.Score[1])
}

func mustRegister(g *game.GameController, p game.Player) {
	if err := g.RegisterPlayer(p); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
