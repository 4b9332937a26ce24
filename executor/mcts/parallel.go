package mcts

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/brensch/jass/game"
	"github.com/brensch/jass/rules"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// Recommendation is what one tree reports back: its preferred root move and
// that move's average points.
type Recommendation struct {
	Tree  int
	Index int
	Card  game.Card
	Ratio float64
}

func recommend(tree *Tree) (Recommendation, error) {
	root := tree.Root()
	if len(root.Children) == 0 {
		return Recommendation{}, ErrNoPlayableCard
	}
	k := tree.BestChild(0)
	return Recommendation{Index: k, Card: root.Playable.Get(k), Ratio: tree.Ratio(k)}, nil
}

// ParallelSearch grows one independent tree per seed, each with the full
// iteration budget, and returns the recommendation with the highest ratio.
// Ties go to the lowest tree. Any failing tree fails the whole search.
func ParallelSearch(ctx context.Context, cfg Config, own game.PlayerID, state game.TurnState, hand game.CardSet, seeds []uint64) (Recommendation, error) {
	if len(seeds) == 0 {
		return Recommendation{}, errors.New("mcts: parallel search needs at least one tree")
	}
	if err := cfg.Validate(); err != nil {
		return Recommendation{}, err
	}

	start := time.Now()
	recs := make([]Recommendation, len(seeds))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, seed := range seeds {
		g.Go(func() error {
			m := MCTS{Config: cfg, Own: own, Rng: rules.NewRand(seed)}
			tree, err := m.Search(gctx, state, hand)
			if err != nil {
				return fmt.Errorf("tree %d: %w", i, err)
			}
			rec, err := recommend(tree)
			if err != nil {
				return fmt.Errorf("tree %d: %w", i, err)
			}
			rec.Tree = i
			recs[i] = rec
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Recommendation{}, err
	}

	top := best(recs)
	log.Debug().
		Str("player", own.String()).
		Int("trees", len(seeds)).
		Int("iterations", cfg.Iterations).
		Int("tree", top.Tree).
		Str("card", top.Card.String()).
		Float64("ratio", top.Ratio).
		Dur("elapsed", time.Since(start)).
		Msg("parallel search done")
	return top, nil
}

// best is the single recommendation with the highest ratio, whatever the
// other trees prefer. Ties go to the earlier entry.
func best(recs []Recommendation) Recommendation {
	top := recs[0]
	for _, rec := range recs[1:] {
		if rec.Ratio > top.Ratio {
			top = rec
		}
	}
	return top
}
