package remote

import (
	"context"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/brensch/jass/game"
	"github.com/stretchr/testify/require"
)

// recorder answers with the first playable card and keeps every notification.
type recorder struct {
	mu     sync.Mutex
	own    game.PlayerID
	names  [game.PlayerCount]string
	hand   game.CardSet
	trump  game.Color
	tricks []game.Trick
	score  game.Score
	winner game.TeamID
	won    bool
	delay  time.Duration
}

func (r *recorder) SetPlayers(own game.PlayerID, names [game.PlayerCount]string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.own, r.names = own, names
}

func (r *recorder) UpdateHand(hand game.CardSet) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hand = hand
}

func (r *recorder) SetTrump(trump game.Color) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.trump = trump
}

func (r *recorder) UpdateTrick(trick game.Trick) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tricks = append(r.tricks, trick)
}

func (r *recorder) UpdateScore(score game.Score) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.score = score
}

func (r *recorder) SetWinningTeam(team game.TeamID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.winner, r.won = team, true
}

func (r *recorder) CardToPlay(ctx context.Context, state game.TurnState, hand game.CardSet) (game.Card, error) {
	if r.delay > 0 {
		select {
		case <-ctx.Done():
			return game.Card{}, ctx.Err()
		case <-time.After(r.delay):
		}
	}
	playable, err := state.Trick().PlayableCards(hand)
	if err != nil {
		return game.Card{}, err
	}
	return playable.Get(0), nil
}

func (r *recorder) ChooseTrump(_ context.Context, _ game.PlayerID, hand game.CardSet, canPass bool) (game.Color, bool, error) {
	if canPass {
		return 0, false, nil
	}
	return hand.Get(0).Color(), true, nil
}

func startServer(t *testing.T, p *recorder) (*Server, string) {
	t.Helper()
	srv := NewServer(func() game.Player { return p })
	ts := httptest.NewServer(srv)
	t.Cleanup(ts.Close)
	return srv, "ws://" + strings.TrimPrefix(ts.URL, "http://") + Path
}

func TestURL(t *testing.T) {
	tests := []struct {
		addr string
		want string
	}{
		{"localhost", "ws://localhost:5108/game"},
		{"10.0.0.2:6000", "ws://10.0.0.2:6000/game"},
		{"ws://table.example:7000", "ws://table.example:7000/game"},
		{"wss://table.example/seat", "wss://table.example/seat"},
	}
	for _, tt := range tests {
		got, err := URL(tt.addr)
		require.NoError(t, err)
		require.Equal(t, tt.want, got, tt.addr)
	}
}

func TestClientServerGame(t *testing.T) {
	rec := &recorder{}
	srv, addr := startServer(t, rec)

	ctx := context.Background()
	c, err := Dial(ctx, addr)
	require.NoError(t, err)
	defer c.Close()

	names := [game.PlayerCount]string{"Aline", "Bastien", "Colette", "David"}
	hand := game.CardSetOf(game.CardOf(game.Heart, game.Six), game.CardOf(game.Heart, game.Ace), game.CardOf(game.Club, game.Jack))

	c.SetPlayers(game.Player2, names)
	c.UpdateHand(hand)

	_, ok, err := c.ChooseTrump(ctx, game.Player2, hand, true)
	require.NoError(t, err)
	require.False(t, ok)
	trump, ok, err := c.ChooseTrump(ctx, game.Player2, hand, false)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, game.Heart, trump)
	c.SetTrump(game.Club)

	state := game.InitialTurnState(game.Club, game.InitialScore, game.Player1)
	state, err = state.WithNewCardPlayed(game.CardOf(game.Spade, game.Ten))
	require.NoError(t, err)
	c.UpdateTrick(state.Trick())

	card, err := c.CardToPlay(ctx, state, hand)
	require.NoError(t, err)
	require.Equal(t, game.CardOf(game.Heart, game.Six), card, "no spade, so the lowest card in Get order")

	score := game.InitialScore.WithAdditionalTrick(game.Team1, 20)
	c.UpdateScore(score)
	c.SetWinningTeam(game.Team2)
	require.NoError(t, c.Err())

	require.Eventually(t, func() bool { return srv.Games() == 1 }, 2*time.Second, 10*time.Millisecond)

	rec.mu.Lock()
	defer rec.mu.Unlock()
	require.Equal(t, game.Player2, rec.own)
	require.Equal(t, names, rec.names)
	require.Equal(t, hand, rec.hand)
	require.Equal(t, game.Club, rec.trump)
	require.Equal(t, []game.Trick{state.Trick()}, rec.tricks)
	require.Equal(t, score, rec.score)
	require.True(t, rec.won)
	require.Equal(t, game.Team2, rec.winner)
}

func TestClientAnswerTimeout(t *testing.T) {
	rec := &recorder{delay: time.Second}
	_, addr := startServer(t, rec)

	c, err := Dial(context.Background(), addr)
	require.NoError(t, err)
	defer c.Close()
	c.AnswerTimeout = 50 * time.Millisecond

	state := game.InitialTurnState(game.Club, game.InitialScore, game.Player1)
	hand := game.CardSetOf(game.CardOf(game.Heart, game.Six))
	_, err = c.CardToPlay(context.Background(), state, hand)
	require.Error(t, err)

	// The error sticks to the connection.
	_, _, err = c.ChooseTrump(context.Background(), game.Player1, hand, false)
	require.Error(t, err)
	require.Error(t, c.Err())
}

func TestClientContextCancel(t *testing.T) {
	rec := &recorder{delay: time.Second}
	_, addr := startServer(t, rec)

	c, err := Dial(context.Background(), addr)
	require.NoError(t, err)
	defer c.Close()

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(20*time.Millisecond, cancel)
	state := game.InitialTurnState(game.Club, game.InitialScore, game.Player1)
	_, err = c.CardToPlay(ctx, state, game.CardSetOf(game.CardOf(game.Heart, game.Six)))
	require.ErrorIs(t, err, context.Canceled)
}
