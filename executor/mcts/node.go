package mcts

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"runtime"

	"github.com/brensch/jass/game"
)

const (
	// MinIterations is one iteration per card of a full hand, so every root
	// move gets expanded at least once.
	MinIterations = game.HandSize

	DefaultIterations  = 10_000
	DefaultExploration = 40
)

var (
	ErrTooFewIterations = errors.New("mcts: too few iterations")
	ErrNoPlayableCard   = errors.New("mcts: no playable card")
)

// Node is one turn state of the search tree. Nodes live in Tree.Nodes and
// link to each other by index.
type Node struct {
	State game.TurnState
	// Hand is what is left of the searching player's hand at this node.
	Hand game.CardSet
	// Playable are the moves of the player to act, in CardSet.Get order.
	// Children[k] is the node reached by playing Playable.Get(k).
	Playable game.CardSet
	Parent   int32
	Children []int32
	// Team is the team of the player whose card led to this node.
	Team   game.TeamID
	Points int
	Visits int
}

func (n *Node) fullyExpanded() bool {
	return len(n.Children) == n.Playable.Size()
}

// Config holds MCTS configuration
type Config struct {
	Iterations  int
	Exploration float64
	// Trees is only used by the parallel search.
	Trees int
}

// DefaultConfig returns 10k iterations, C=40 and one tree per CPU.
func DefaultConfig() Config {
	return Config{
		Iterations:  DefaultIterations,
		Exploration: DefaultExploration,
		Trees:       runtime.NumCPU(),
	}
}

// Validate checks the iteration budget and the exploration constant.
// Trees is checked by the parallel search only.
func (c Config) Validate() error {
	if c.Iterations < MinIterations {
		return fmt.Errorf("%w: %d < %d", ErrTooFewIterations, c.Iterations, MinIterations)
	}
	if c.Exploration < 0 {
		return fmt.Errorf("mcts: negative exploration constant %v", c.Exploration)
	}
	return nil
}

// MCTS holds the search context
type MCTS struct {
	Config Config
	Own    game.PlayerID
	Rng    *rand.Rand
}

// Tree is the result of one search. It is discarded once a card is chosen.
type Tree struct {
	Nodes []Node
}

func (t *Tree) Root() *Node { return &t.Nodes[0] }

// BestChild returns the index into the root's children maximising the UCT
// score with the given exploration constant. Ties go to the lower index.
func (t *Tree) BestChild(exploration float64) int {
	return t.bestChild(0, exploration)
}

// Ratio is the average points of the k-th root child.
func (t *Tree) Ratio(k int) float64 {
	child := &t.Nodes[t.Root().Children[k]]
	return float64(child.Points) / float64(child.Visits)
}
