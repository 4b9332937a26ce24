package selfplay

import (
	"context"
	"testing"

	"github.com/brensch/jass/game"
	"github.com/brensch/jass/player"
	"github.com/brensch/jass/rules"
	"github.com/stretchr/testify/require"
)

func randomPlayers(seed uint64) [game.PlayerCount]game.Player {
	var players [game.PlayerCount]game.Player
	for i, s := range seatSeeds(seed) {
		players[i] = player.NewRandom(s)
	}
	return players
}

// watcher records what a seat is told on top of a random player.
type watcher struct {
	*player.Random
	own       game.PlayerID
	ownSet    bool
	hand      game.CardSet
	trumps    int
	winner    game.TeamID
	wins      int
	lastScore game.Score
	offers    []trumpOffer
	passAll   bool
}

type trumpOffer struct {
	chooser game.PlayerID
	canPass bool
}

func (w *watcher) SetPlayers(own game.PlayerID, _ [game.PlayerCount]string) {
	w.own, w.ownSet = own, true
}
func (w *watcher) UpdateHand(hand game.CardSet) { w.hand = hand }
func (w *watcher) SetTrump(game.Color)          { w.trumps++ }
func (w *watcher) UpdateScore(score game.Score) { w.lastScore = score }
func (w *watcher) SetWinningTeam(t game.TeamID) { w.winner, w.wins = t, w.wins+1 }

func (w *watcher) ChooseTrump(ctx context.Context, chooser game.PlayerID, hand game.CardSet, canPass bool) (game.Color, bool, error) {
	w.offers = append(w.offers, trumpOffer{chooser: chooser, canPass: canPass})
	if w.passAll && canPass {
		return 0, false, nil
	}
	return w.Random.ChooseTrump(ctx, chooser, hand, canPass)
}

func watchers(seed uint64, passAll bool) ([game.PlayerCount]*watcher, [game.PlayerCount]game.Player) {
	var ws [game.PlayerCount]*watcher
	var players [game.PlayerCount]game.Player
	for i, s := range seatSeeds(seed) {
		ws[i] = &watcher{Random: player.NewRandom(s), passAll: passAll}
		players[i] = ws[i]
	}
	return ws, players
}

func TestGamePlaysToTheEnd(t *testing.T) {
	ctx := context.Background()
	ws, players := watchers(11, false)
	g, err := NewGame(ctx, 11, players, DefaultNames)
	require.NoError(t, err)
	require.NoError(t, g.Play(ctx))
	require.True(t, g.IsGameOver())

	res := g.Result()
	require.True(t, res.Over)
	require.GreaterOrEqual(t, res.Points[res.Winner], game.WinningPoints)
	if res.Winner == game.Team2 {
		require.Less(t, res.Points[game.Team1], game.WinningPoints, "team 1 is checked first")
	}
	require.GreaterOrEqual(t, res.Tricks, (res.Turns-1)*game.TricksPerTurn)
	require.LessOrEqual(t, res.Tricks, res.Turns*game.TricksPerTurn)
	require.Equal(t, DefaultNames, res.Names)

	for _, p := range game.AllPlayers {
		w := ws[p]
		require.True(t, w.ownSet)
		require.Equal(t, p, w.own)
		require.Equal(t, res.Turns, w.trumps)
		require.Equal(t, 1, w.wins)
		require.Equal(t, res.Winner, w.winner)
		require.Equal(t, res.Points[game.Team1], w.lastScore.TotalPoints(game.Team1))
	}

	require.ErrorIs(t, g.AdvanceToEndOfNextTrick(ctx), ErrGameOver)

	row := res.Row("test")
	require.Equal(t, res.ID.String(), row.GameID)
	require.Equal(t, int32(res.Winner)+1, row.Winner)
	require.Equal(t, "Aline", row.Player1)
	require.Equal(t, "test", row.Source)
}

func TestGameIsReproducible(t *testing.T) {
	ctx := context.Background()
	play := func() Result {
		g, err := NewGame(ctx, 2024, randomPlayers(2024), DefaultNames)
		require.NoError(t, err)
		require.NoError(t, g.Play(ctx))
		return g.Result()
	}
	a, b := play(), play()
	require.Equal(t, a.Points, b.Points)
	require.Equal(t, a.Winner, b.Winner)
	require.Equal(t, a.Tricks, b.Tricks)
	require.Equal(t, a.Turns, b.Turns)
	require.NotEqual(t, a.ID, b.ID)
}

func TestFirstTrickLedBySevenOfDiamonds(t *testing.T) {
	for seed := uint64(0); seed < 20; seed++ {
		g, err := NewGame(context.Background(), seed, randomPlayers(seed), DefaultNames)
		require.NoError(t, err)

		leader := g.State().Trick().Player(0)
		require.True(t, g.Hand(leader).Contains(rules.SevenOfDiamonds), "seed %d", seed)
		for _, p := range game.AllPlayers {
			require.Equal(t, game.HandSize, g.Hand(p).Size())
		}
	}
}

func TestTrumpPassGoesToPartner(t *testing.T) {
	ctx := context.Background()
	ws, players := watchers(5, true)
	g, err := NewGame(ctx, 5, players, DefaultNames)
	require.NoError(t, err)

	leader := g.State().Trick().Player(0)
	partner := rules.TrumpPartner(leader)
	for _, p := range game.AllPlayers {
		require.Equal(t, []trumpOffer{
			{chooser: leader, canPass: true},
			{chooser: partner, canPass: false},
		}, ws[p].offers, "every seat sees both offers")
	}
}

func TestAdvanceOneTrick(t *testing.T) {
	ctx := context.Background()
	ws, players := watchers(8, false)
	g, err := NewGame(ctx, 8, players, DefaultNames)
	require.NoError(t, err)

	require.NoError(t, g.AdvanceToEndOfNextTrick(ctx))
	require.True(t, g.State().Trick().IsFull())
	for _, p := range game.AllPlayers {
		require.Equal(t, game.HandSize-1, g.Hand(p).Size())
		require.Equal(t, g.Hand(p), ws[p].hand)
	}

	require.NoError(t, g.AdvanceToEndOfNextTrick(ctx))
	require.Equal(t, 1, g.State().Trick().Index())
	require.Equal(t, 1, g.Result().Tricks)
	require.Contains(t, FormatTable(g), "trick 1")
}

// cheater always plays its highest card in Get order, legal or not.
type cheater struct{ *player.Random }

func (c cheater) CardToPlay(_ context.Context, _ game.TurnState, hand game.CardSet) (game.Card, error) {
	return hand.Get(hand.Size() - 1), nil
}

func TestIllegalCardIsRejected(t *testing.T) {
	ctx := context.Background()
	var err error
	for seed := uint64(0); seed < 50; seed++ {
		var players [game.PlayerCount]game.Player
		for i := range players {
			players[i] = cheater{player.NewRandom(seed + uint64(i))}
		}
		var g *Game
		g, err = NewGame(ctx, seed, players, DefaultNames)
		require.NoError(t, err)
		if err = g.Play(ctx); err != nil {
			break
		}
	}
	require.ErrorIs(t, err, ErrIllegalCard)
}

func TestPlayCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	g, err := NewGame(ctx, 1, randomPlayers(1), DefaultNames)
	require.NoError(t, err)
	cancel()
	require.ErrorIs(t, g.Play(ctx), context.Canceled)
}
