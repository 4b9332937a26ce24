package rules

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/brensch/jass/game"
	"github.com/stretchr/testify/require"
)

func dumpHands(hands [game.PlayerCount]game.CardSet) string {
	var b strings.Builder
	for _, p := range game.AllPlayers {
		fmt.Fprintf(&b, "%s: %s\n", p, hands[p])
	}
	return b.String()
}

func TestDeal(t *testing.T) {
	rng := rand.New(rand.NewPCG(2024, 1))
	hands := Deal(rng)

	var all game.CardSet
	for _, h := range hands {
		require.Equal(t, game.HandSize, h.Size(), dumpHands(hands))
		require.True(t, all.Intersection(h).IsEmpty(), "hands overlap\n%s", dumpHands(hands))
		all = all.Union(h)
	}
	require.Equal(t, game.AllCards, all)

	again := Deal(rand.New(rand.NewPCG(2024, 1)))
	require.Equal(t, hands, again, "same seed, same deal")
}

func TestFirstLeader(t *testing.T) {
	for seed := uint64(0); seed < 20; seed++ {
		hands := Deal(rand.New(rand.NewPCG(seed, 0)))
		leader, ok := FirstLeader(hands)
		require.True(t, ok)
		require.True(t, hands[leader].Contains(SevenOfDiamonds), dumpHands(hands))
	}

	_, ok := FirstLeader([game.PlayerCount]game.CardSet{})
	require.False(t, ok)
}

func TestLeaders(t *testing.T) {
	require.Equal(t, game.Player2, NextLeader(game.Player1))
	require.Equal(t, game.Player1, NextLeader(game.Player4))
	require.Equal(t, game.Player3, TrumpPartner(game.Player1))
	require.Equal(t, game.Player2, TrumpPartner(game.Player4))
	require.Equal(t, TrumpPartner(game.Player2).Team(), game.Player2.Team())
}

func scoreWithTotals(t *testing.T, team1, team2 int) game.Score {
	t.Helper()
	s, err := game.ScoreOfPacked(game.PackScore(0, 0, team1, 0, 0, team2))
	require.NoError(t, err)
	return s
}

func TestWinningTeam(t *testing.T) {
	_, over := WinningTeam(game.InitialScore)
	require.False(t, over)
	require.False(t, IsGameOver(scoreWithTotals(t, 999, 999)))

	team, over := WinningTeam(scoreWithTotals(t, 1000, 20))
	require.True(t, over)
	require.Equal(t, game.Team1, team)

	team, over = WinningTeam(scoreWithTotals(t, 980, 1012))
	require.True(t, over)
	require.Equal(t, game.Team2, team)

	team, _ = WinningTeam(scoreWithTotals(t, 1001, 1100))
	require.Equal(t, game.Team1, team)
}

func TestChooseTrumpByLength(t *testing.T) {
	long := game.CardSetOf(
		game.CardOf(game.Club, game.Six), game.CardOf(game.Club, game.Jack), game.CardOf(game.Club, game.Nine),
		game.CardOf(game.Club, game.Ace), game.CardOf(game.Heart, game.Six), game.CardOf(game.Heart, game.Seven),
		game.CardOf(game.Spade, game.Six), game.CardOf(game.Diamond, game.Six), game.CardOf(game.Diamond, game.King),
	)
	trump, ok := ChooseTrumpByLength(long, true)
	require.True(t, ok)
	require.Equal(t, game.Club, trump)

	flat := game.CardSetOf(
		game.CardOf(game.Spade, game.Six), game.CardOf(game.Spade, game.Seven), game.CardOf(game.Spade, game.Eight),
		game.CardOf(game.Heart, game.Six), game.CardOf(game.Heart, game.Seven), game.CardOf(game.Heart, game.Eight),
		game.CardOf(game.Diamond, game.Six), game.CardOf(game.Diamond, game.Seven), game.CardOf(game.Club, game.Six),
	)
	_, ok = ChooseTrumpByLength(flat, true)
	require.False(t, ok)

	trump, ok = ChooseTrumpByLength(flat, false)
	require.True(t, ok)
	require.Equal(t, game.Spade, trump)
}

// TestSeededTurn plays the first turn of a seeded deal with uniformly random
// legal cards and checks the turn totals.
func TestSeededTurn(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 42))
	hands := Deal(rng)
	leader, ok := FirstLeader(hands)
	require.True(t, ok)
	require.True(t, hands[leader].Contains(SevenOfDiamonds))

	state := game.InitialTurnState(game.Diamond, game.InitialScore, leader)
	for !state.IsTerminal() {
		p, err := state.NextPlayer()
		require.NoError(t, err)
		playable, err := state.Trick().PlayableCards(hands[p])
		require.NoError(t, err)
		c := playable.Get(rng.IntN(playable.Size()))
		hands[p] = hands[p].Remove(c)
		state, err = state.WithNewCardPlayedAndTrickCollected(c)
		require.NoError(t, err)
	}

	score := state.Score()
	require.Equal(t, game.TricksPerTurn, score.TurnTricks(game.Team1)+score.TurnTricks(game.Team2))
	want := 152 + game.LastTrickAdditionalPoints
	if score.TurnTricks(game.Team1) == game.TricksPerTurn || score.TurnTricks(game.Team2) == game.TricksPerTurn {
		want += game.MatchAdditionalPoints
	}
	require.Equal(t, want, score.TurnPoints(game.Team1)+score.TurnPoints(game.Team2))
}
