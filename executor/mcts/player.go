package mcts

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/brensch/jass/game"
	"github.com/brensch/jass/rules"
)

// Option adjusts the Config of a player.
type Option func(*Config)

// WithIterations sets the iterations per tree.
func WithIterations(n int) Option {
	return func(c *Config) { c.Iterations = n }
}

// WithExploration sets the UCT exploration constant.
func WithExploration(exploration float64) Option {
	return func(c *Config) { c.Exploration = exploration }
}

// WithTrees sets the number of independent trees of a ParallelPlayer.
func WithTrees(n int) Option {
	return func(c *Config) { c.Trees = n }
}

func newConfig(opts []Option) (Config, error) {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg, cfg.Validate()
}

func checkTurn(own game.PlayerID, state game.TurnState) error {
	next, err := state.NextPlayer()
	if err != nil {
		return err
	}
	if next != own {
		return fmt.Errorf("mcts: %s asked to play while %s is next", own, next)
	}
	return nil
}

// Player chooses cards with a single search tree per decision.
type Player struct {
	game.NopObserver

	own    game.PlayerID
	config Config
	rng    *rand.Rand
}

// NewPlayer returns a single-tree player for seat own, seeded with seed.
func NewPlayer(own game.PlayerID, seed uint64, opts ...Option) (*Player, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}
	return &Player{own: own, config: cfg, rng: rules.NewRand(seed)}, nil
}

func (p *Player) CardToPlay(ctx context.Context, state game.TurnState, hand game.CardSet) (game.Card, error) {
	if err := checkTurn(p.own, state); err != nil {
		return game.Card{}, err
	}
	m := MCTS{Config: p.config, Own: p.own, Rng: p.rng}
	tree, err := m.Search(ctx, state, hand)
	if err != nil {
		return game.Card{}, fmt.Errorf("search for %s: %w", p.own, err)
	}
	rec, err := recommend(tree)
	if err != nil {
		return game.Card{}, err
	}
	return rec.Card, nil
}

func (p *Player) ChooseTrump(_ context.Context, _ game.PlayerID, hand game.CardSet, canPass bool) (game.Color, bool, error) {
	trump, ok := rules.ChooseTrumpByLength(hand, canPass)
	return trump, ok, nil
}

// ParallelPlayer runs Config.Trees independent searches per decision.
// Tree seeds are drawn from the player's own generator, so a fixed seed
// gives reproducible play.
type ParallelPlayer struct {
	game.NopObserver

	own    game.PlayerID
	config Config
	rng    *rand.Rand
}

// NewParallelPlayer returns a player searching Config.Trees trees per
// decision. Tree seeds are drawn from a generator seeded with seed.
func NewParallelPlayer(own game.PlayerID, seed uint64, opts ...Option) (*ParallelPlayer, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}
	if cfg.Trees < 1 {
		return nil, fmt.Errorf("mcts: parallel player needs at least one tree, got %d", cfg.Trees)
	}
	return &ParallelPlayer{own: own, config: cfg, rng: rules.NewRand(seed)}, nil
}

func (p *ParallelPlayer) CardToPlay(ctx context.Context, state game.TurnState, hand game.CardSet) (game.Card, error) {
	if err := checkTurn(p.own, state); err != nil {
		return game.Card{}, err
	}
	seeds := make([]uint64, p.config.Trees)
	for i := range seeds {
		seeds[i] = p.rng.Uint64()
	}
	rec, err := ParallelSearch(ctx, p.config, p.own, state, hand, seeds)
	if err != nil {
		return game.Card{}, fmt.Errorf("parallel search for %s: %w", p.own, err)
	}
	return rec.Card, nil
}

func (p *ParallelPlayer) ChooseTrump(_ context.Context, _ game.PlayerID, hand game.CardSet, canPass bool) (game.Color, bool, error) {
	trump, ok := rules.ChooseTrumpByLength(hand, canPass)
	return trump, ok, nil
}

var (
	_ game.Player = (*Player)(nil)
	_ game.Player = (*ParallelPlayer)(nil)
)
