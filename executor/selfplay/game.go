package selfplay

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/brensch/jass/game"
	"github.com/brensch/jass/rules"
	"github.com/brensch/jass/store"
	"github.com/google/uuid"
)

var (
	ErrIllegalCard = errors.New("selfplay: illegal card")
	ErrGameOver    = errors.New("selfplay: game is over")
)

// Game drives four seats through turns until a team reaches the winning
// points. It is not safe for concurrent use.
type Game struct {
	ID   uuid.UUID
	Seed uint64

	// OnCard is called after every card played, if set.
	OnCard func(p game.PlayerID, c game.Card)

	players [game.PlayerCount]game.Player
	names   [game.PlayerCount]string
	shuffle *rand.Rand

	leader game.PlayerID
	hands  [game.PlayerCount]game.CardSet
	state  game.TurnState

	tricks  int
	turns   int
	started time.Time
	winner  game.TeamID
	over    bool
}

// NewGame introduces the seats to each other, deals the first turn and asks
// for trump. The holder of the seven of diamonds leads.
func NewGame(ctx context.Context, seed uint64, players [game.PlayerCount]game.Player, names [game.PlayerCount]string) (*Game, error) {
	rng := rules.NewRand(seed)
	g := &Game{
		ID:      uuid.New(),
		Seed:    seed,
		players: players,
		names:   names,
		shuffle: rules.NewRand(rng.Uint64()),
		started: time.Now(),
	}
	for _, p := range game.AllPlayers {
		g.players[p].SetPlayers(p, names)
	}

	g.deal()
	leader, ok := rules.FirstLeader(g.hands)
	if !ok {
		return nil, fmt.Errorf("no player holds %s", rules.SevenOfDiamonds)
	}
	g.leader = leader
	if err := g.startTurn(ctx, game.InitialScore); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Game) deal() {
	g.hands = rules.Deal(g.shuffle)
	for _, p := range game.AllPlayers {
		g.players[p].UpdateHand(g.hands[p])
	}
}

// askTrump offers the choice to every seat, the chooser last, and keeps the
// chooser's answer.
func (g *Game) askTrump(ctx context.Context, chooser game.PlayerID, canPass bool) (game.Color, bool, error) {
	for _, p := range game.AllPlayers {
		if p == chooser {
			continue
		}
		if _, _, err := g.players[p].ChooseTrump(ctx, chooser, g.hands[p], canPass); err != nil {
			return 0, false, fmt.Errorf("%s offered trump: %w", p, err)
		}
	}
	trump, ok, err := g.players[chooser].ChooseTrump(ctx, chooser, g.hands[chooser], canPass)
	if err != nil {
		return 0, false, fmt.Errorf("%s choosing trump: %w", chooser, err)
	}
	if !ok && !canPass {
		return 0, false, fmt.Errorf("%s passed on trump when not allowed", chooser)
	}
	if ok && !trump.IsValid() {
		return 0, false, fmt.Errorf("%s chose invalid trump %d", chooser, trump)
	}
	return trump, ok, nil
}

func (g *Game) startTurn(ctx context.Context, score game.Score) error {
	trump, ok, err := g.askTrump(ctx, g.leader, true)
	if err != nil {
		return err
	}
	if !ok {
		if trump, _, err = g.askTrump(ctx, rules.TrumpPartner(g.leader), false); err != nil {
			return err
		}
	}
	g.state = game.InitialTurnState(trump, score, g.leader)
	g.turns++
	for _, p := range game.AllPlayers {
		g.players[p].SetTrump(trump)
	}
	return nil
}

func (g *Game) IsGameOver() bool { return g.over }

func (g *Game) State() game.TurnState { return g.state }

func (g *Game) Hand(p game.PlayerID) game.CardSet { return g.hands[p] }

// AdvanceToEndOfNextTrick collects the previous trick, starts a new turn if
// that trick was the last one and then has all four seats play. When a team
// has reached the winning points instead, everyone is told and the game ends.
func (g *Game) AdvanceToEndOfNextTrick(ctx context.Context) error {
	if g.over {
		return ErrGameOver
	}

	if g.state.Trick().IsFull() {
		state, err := g.state.WithTrickCollected()
		if err != nil {
			return err
		}
		g.state = state
		g.tricks++
	}

	if team, ok := rules.WinningTeam(g.state.Score()); ok {
		g.finish(team)
		return nil
	}

	if g.state.IsTerminal() {
		next, err := g.state.Score().NextTurn()
		if err != nil {
			return err
		}
		g.leader = rules.NextLeader(g.leader)
		g.deal()
		if err := g.startTurn(ctx, next); err != nil {
			return err
		}
	}

	g.notify(func(p game.Player) {
		p.UpdateScore(g.state.Score())
		p.UpdateTrick(g.state.Trick())
	})

	for range game.PlayerCount {
		if err := g.playCard(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (g *Game) playCard(ctx context.Context) error {
	next, err := g.state.NextPlayer()
	if err != nil {
		return err
	}
	hand := g.hands[next]
	card, err := g.players[next].CardToPlay(ctx, g.state, hand)
	if err != nil {
		return fmt.Errorf("%s (%s) choosing a card: %w", next, g.names[next], err)
	}
	playable, err := g.state.Trick().PlayableCards(hand)
	if err != nil {
		return err
	}
	if !playable.Contains(card) {
		return fmt.Errorf("%w: %s played %s, allowed %s", ErrIllegalCard, next, card, playable)
	}

	state, err := g.state.WithNewCardPlayed(card)
	if err != nil {
		return err
	}
	g.state = state
	g.hands[next] = hand.Remove(card)
	g.players[next].UpdateHand(g.hands[next])
	if g.OnCard != nil {
		g.OnCard(next, card)
	}
	g.notify(func(p game.Player) { p.UpdateTrick(g.state.Trick()) })
	return nil
}

func (g *Game) finish(team game.TeamID) {
	g.over, g.winner = true, team
	g.notify(func(p game.Player) {
		p.UpdateScore(g.state.Score())
		p.SetWinningTeam(team)
	})
}

func (g *Game) notify(f func(game.Player)) {
	for _, p := range game.AllPlayers {
		f(g.players[p])
	}
}

// Play advances trick by trick until the game is over.
func (g *Game) Play(ctx context.Context) error {
	for !g.over {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := g.AdvanceToEndOfNextTrick(ctx); err != nil {
			return err
		}
	}
	return nil
}

// Result summarises a game.
type Result struct {
	ID       uuid.UUID
	Seed     uint64
	Names    [game.PlayerCount]string
	Points   [game.TeamCount]int
	Winner   game.TeamID
	Over     bool
	Tricks   int
	Turns    int
	Duration time.Duration
}

func (g *Game) Result() Result {
	score := g.state.Score()
	return Result{
		ID:       g.ID,
		Seed:     g.Seed,
		Names:    g.names,
		Points:   [game.TeamCount]int{score.TotalPoints(game.Team1), score.TotalPoints(game.Team2)},
		Winner:   g.winner,
		Over:     g.over,
		Tricks:   g.tricks,
		Turns:    g.turns,
		Duration: time.Since(g.started),
	}
}

func (r Result) Row(source string) store.ResultRow {
	return store.ResultRow{
		GameID:     r.ID.String(),
		Seed:       r.Seed,
		Player1:    r.Names[game.Player1],
		Player2:    r.Names[game.Player2],
		Player3:    r.Names[game.Player3],
		Player4:    r.Names[game.Player4],
		Team1:      int32(r.Points[game.Team1]),
		Team2:      int32(r.Points[game.Team2]),
		Winner:     int32(r.Winner) + 1,
		Tricks:     int32(r.Tricks),
		Turns:      int32(r.Turns),
		DurationMs: r.Duration.Milliseconds(),
		Source:     source,
		FinishedAt: time.Now().UnixMilli(),
	}
}
