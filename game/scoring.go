package game

import "github.com/minaorangina/tupelo/deck"

// HandResult is the outcome of one hand of 13 tricks
type HandResult struct {
	Winner  int
	Loser   int
	Points  int
	Doubled bool
}

// ScoreHand decides the winner of a finished hand. ramiTeam is the team of
// the player who called rami, or -1 when nobody did.
func ScoreHand(mode Mode, tricks [2]int, ramiTeam int) HandResult {
	var res HandResult

	if mode == Nolo {
		if tricks[0] < tricks[1] {
			res.Winner, res.Loser = 0, 1
		} else {
			res.Winner, res.Loser = 1, 0
		}
		res.Points = (7 - tricks[res.Winner]) * 4
		return res
	}

	if tricks[0] > tricks[1] {
		res.Winner, res.Loser = 0, 1
	} else {
		res.Winner, res.Loser = 1, 0
	}
	if ramiTeam >= 0 && ramiTeam != res.Winner {
		res.Doubled = true
		res.Points = (tricks[res.Winner] - 6) * 8
	} else {
		res.Points = (tricks[res.Winner] - 6) * 4
	}
	return res
}

// ApplyScore adds the hand result to score. If the losing team had points,
// both teams fall down to zero instead. won reports the winner passing target.
func ApplyScore(score *[2]int, res HandResult, target int) (fellDown, won bool) {
	if score[res.Loser] > 0 {
		*score = [2]int{}
		return true, false
	}
	score[res.Winner] += res.Points
	return false, score[res.Winner] > target
}

// TrickWinner returns the highest card of the lead suit. Off-suit cards
// never win.
func TrickWinner(table deck.CardSet) (deck.Card, bool) {
	if len(table) == 0 {
		return deck.Card{}, false
	}
	return table.OfSuit(table[0].Suit).Highest()
}
