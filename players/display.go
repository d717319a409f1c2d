package players

import (
	"fmt"
	"io"
	"strings"

	"github.com/minaorangina/tupelo/deck"
)

func SendText(w io.Writer, text string, a ...interface{}) {
	fmt.Fprintf(w, text, a...)
}

// buildHandText lists the hand with a number under each card
func buildHandText(hand deck.CardSet) string {
	cards := make([]string, len(hand))
	nums := make([]string, len(hand))
	for i, c := range hand {
		cards[i] = fmt.Sprintf("%3s", c.String())
		nums[i] = fmt.Sprintf("%3d ", i+1)
	}
	return "Your hand:\n" + strings.Join(cards, "  ") + "\n" + strings.Join(nums, " ") + "\n"
}

func pickPromptText(prompt string, n int) string {
	return fmt.Sprintf("%s (1-%d) --> ", prompt, n)
}
