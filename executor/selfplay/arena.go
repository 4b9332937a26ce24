package selfplay

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync/atomic"

	"github.com/brensch/jass/game"
	"github.com/brensch/jass/player"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// ArenaConfig describes the seats and the pacing of an arena run.
type ArenaConfig struct {
	Specs   [game.PlayerCount]PlayerSpec
	Workers int
	// MaxGames stops the arena after that many games; zero runs until the
	// context is cancelled.
	MaxGames int64
	Seed     uint64
	Seats    SeatOptions
	// LogSeats wraps every seat in a player.Logging at debug level.
	LogSeats bool
}

// Stats are running totals, safe to read while the arena plays.
type Stats struct {
	Games  int64
	Failed int64
	Cards  int64
	Wins   [game.TeamCount]int64
}

// Arena plays seeded games between the configured seats on a pool of workers.
type Arena struct {
	cfg ArenaConfig

	next   atomic.Int64
	games  atomic.Int64
	failed atomic.Int64
	cards  atomic.Int64
	wins   [game.TeamCount]atomic.Int64
}

// NewArena validates cfg. Nothing runs until Run.
func NewArena(cfg ArenaConfig) (*Arena, error) {
	if cfg.Workers < 1 {
		return nil, fmt.Errorf("arena needs at least one worker, got %d", cfg.Workers)
	}
	if cfg.MaxGames < 0 {
		return nil, fmt.Errorf("negative max games %d", cfg.MaxGames)
	}
	for _, s := range cfg.Specs {
		if s.Kind == "" {
			return nil, errors.New("arena needs a spec for every seat")
		}
	}
	return &Arena{cfg: cfg}, nil
}

func (a *Arena) Stats() Stats {
	return Stats{
		Games:  a.games.Load(),
		Failed: a.failed.Load(),
		Cards:  a.cards.Load(),
		Wins:   [game.TeamCount]int64{a.wins[game.Team1].Load(), a.wins[game.Team2].Load()},
	}
}

// GameSeed derives the seed of game n from the arena seed, so any game can be
// replayed on its own.
func GameSeed(root uint64, n int64) uint64 {
	z := root + uint64(n)*0x9E3779B97F4A7C15
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}

// Run plays games on cfg.Workers goroutines and sends every finished game on
// results, which may be nil. It returns once MaxGames games are done or ctx is
// cancelled. Failed games are logged and counted; a seat that cannot be
// built stops the arena.
func (a *Arena) Run(ctx context.Context, results chan<- Result) error {
	g, gctx := errgroup.WithContext(ctx)
	for w := range a.cfg.Workers {
		g.Go(func() error {
			return a.work(gctx, w, results)
		})
	}
	err := g.Wait()
	if errors.Is(err, context.Canceled) && ctx.Err() != nil {
		return nil
	}
	return err
}

func (a *Arena) work(ctx context.Context, worker int, results chan<- Result) error {
	logger := log.With().Int("worker", worker).Logger()
	for {
		if ctx.Err() != nil {
			return nil
		}
		n := a.next.Add(1)
		if a.cfg.MaxGames > 0 && n > a.cfg.MaxGames {
			return nil
		}

		res, err := a.playOne(ctx, n, logger)
		if err != nil {
			var setup *seatError
			if errors.As(err, &setup) {
				return err
			}
			if ctx.Err() != nil {
				return nil
			}
			a.failed.Add(1)
			logger.Error().Err(err).Int64("game", n).Msg("game aborted")
			continue
		}

		a.games.Add(1)
		a.wins[res.Winner].Add(1)
		logger.Info().
			Int64("game", n).
			Str("id", res.ID.String()).
			Stringer("winner", res.Winner).
			Int("team1", res.Points[game.Team1]).
			Int("team2", res.Points[game.Team2]).
			Int("turns", res.Turns).
			Dur("elapsed", res.Duration).
			Msg("game finished")

		if results == nil {
			continue
		}
		select {
		case results <- res:
		case <-ctx.Done():
			return nil
		}
	}
}

type seatError struct {
	seat game.PlayerID
	err  error
}

func (e *seatError) Error() string { return fmt.Sprintf("seat %s: %v", e.seat, e.err) }
func (e *seatError) Unwrap() error { return e.err }

func (a *Arena) playOne(ctx context.Context, n int64, logger zerolog.Logger) (Result, error) {
	seed := GameSeed(a.cfg.Seed, n)
	seeds := seatSeeds(seed)

	var built, players [game.PlayerCount]game.Player
	var names [game.PlayerCount]string
	defer closeAll(built[:], logger)
	for _, seat := range game.AllPlayers {
		spec := a.cfg.Specs[seat]
		p, err := spec.NewPlayer(ctx, seat, seeds[seat], a.cfg.Seats)
		if err != nil {
			return Result{}, &seatError{seat: seat, err: err}
		}
		built[seat] = p
		if a.cfg.LogSeats {
			p = player.NewLogging(p, logger.With().Int64("game", n).Logger())
		}
		players[seat], names[seat] = p, spec.Name
	}

	g, err := NewGame(ctx, seed, players, names)
	if err != nil {
		return Result{}, err
	}
	g.OnCard = func(game.PlayerID, game.Card) { a.cards.Add(1) }
	if err := g.Play(ctx); err != nil {
		return Result{}, fmt.Errorf("game %s: %w", g.ID, err)
	}
	return g.Result(), nil
}

func seatSeeds(seed uint64) [game.PlayerCount]uint64 {
	var seeds [game.PlayerCount]uint64
	for i := range seeds {
		seeds[i] = GameSeed(seed, int64(i)+1)
	}
	return seeds
}

func closeAll(players []game.Player, logger zerolog.Logger) {
	for _, p := range players {
		c, ok := p.(io.Closer)
		if !ok {
			continue
		}
		if err := c.Close(); err != nil {
			logger.Warn().Err(err).Msg("closing seat")
		}
	}
}
