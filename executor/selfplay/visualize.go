// visualize.go - Console rendering of a table for debugging games.
package selfplay

import (
	"fmt"
	"strings"

	"github.com/brensch/jass/game"
)

// FormatTable renders the score, the hands and the trick in play. The seat
// to act is marked with '>'.
func FormatTable(g *Game) string {
	var sb strings.Builder
	state := g.State()
	score := state.Score()
	sb.WriteString(fmt.Sprintf("\n=== TRACE turn %d, tricks %d ===\n", g.turns, g.tricks))
	sb.WriteString(fmt.Sprintf("score %s  totals %d/%d\n", score, score.TotalPoints(game.Team1), score.TotalPoints(game.Team2)))

	next, err := state.NextPlayer()
	for _, p := range game.AllPlayers {
		marker := " "
		if err == nil && p == next {
			marker = ">"
		}
		sb.WriteString(fmt.Sprintf("%s %s %-8s %s\n", marker, p, g.names[p], g.hands[p]))
	}

	if state.IsTerminal() {
		sb.WriteString("turn over\n")
		return sb.String()
	}
	sb.WriteString(FormatTrick(state.Trick()))
	return sb.String()
}

// FormatTrick lists the cards of a trick with who played them.
func FormatTrick(t game.Trick) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("trick %d trump %s:", t.Index(), t.Trump()))
	for i := range t.Size() {
		sb.WriteString(fmt.Sprintf(" %s=%s", t.Player(i), t.Card(i)))
	}
	if t.IsFull() {
		if winner, err := t.WinningPlayer(); err == nil {
			sb.WriteString(fmt.Sprintf(" -> %s takes %d", winner, t.Points()))
		}
	}
	sb.WriteString("\n")
	return sb.String()
}
