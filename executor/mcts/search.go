package mcts

import (
	"context"
	"fmt"
	"math"

	"github.com/brensch/jass/game"
)

// Search runs Config.Iterations iterations from state, where hand is the
// exact hand of the searching player m.Own. Cards of the other players are
// only known as the unplayed cards minus hand.
func (m *MCTS) Search(ctx context.Context, state game.TurnState, hand game.CardSet) (*Tree, error) {
	if err := m.Config.Validate(); err != nil {
		return nil, err
	}

	root, err := m.newNode(state, hand, -1, 0)
	if err != nil {
		return nil, err
	}
	t := newTree(root, m.Config.Iterations)

	for t.Root().Visits < m.Config.Iterations {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		if err := m.iterate(t); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// maxPreallocatedNodes bounds the up-front arena; larger searches grow it by
// append.
const maxPreallocatedNodes = 1 << 14

// newTree holds root and room for one node per iteration, up to
// maxPreallocatedNodes.
func newTree(root Node, iterations int) *Tree {
	nodes := make([]Node, 1, min(iterations+1, maxPreallocatedNodes))
	nodes[0] = root
	return &Tree{Nodes: nodes}
}

func (m *MCTS) newNode(state game.TurnState, hand game.CardSet, parent int32, team game.TeamID) (Node, error) {
	n := Node{State: state, Hand: hand, Parent: parent, Team: team}
	if state.IsTerminal() {
		return n, nil
	}
	playable, err := m.playable(state, hand)
	if err != nil {
		return Node{}, err
	}
	n.Playable = playable
	n.Children = make([]int32, 0, playable.Size())
	return n, nil
}

// playable is the legal set of the player to act. For anyone but m.Own the
// hand is unknown, so it is taken over all cards the others may hold.
func (m *MCTS) playable(state game.TurnState, hand game.CardSet) (game.CardSet, error) {
	next, err := state.NextPlayer()
	if err != nil {
		return game.CardSet{}, err
	}
	cards := hand
	if next != m.Own {
		cards = state.UnplayedCards().Difference(hand)
	}
	playable, err := state.Trick().PlayableCards(cards)
	if err != nil {
		return game.CardSet{}, err
	}
	if playable.IsEmpty() {
		return game.CardSet{}, fmt.Errorf("%w: %s to act in %s", ErrNoPlayableCard, next, state)
	}
	return playable, nil
}

// iterate walks down fully expanded nodes, then expands and simulates one new
// child, or scores a terminal node directly.
func (m *MCTS) iterate(t *Tree) error {
	idx := int32(0)
	for {
		n := &t.Nodes[idx]
		if n.State.IsTerminal() {
			t.backpropagate(idx, n.State.Score())
			return nil
		}
		if !n.fullyExpanded() {
			return m.expand(t, idx)
		}
		idx = n.Children[t.bestChild(idx, m.Config.Exploration)]
	}
}

func (m *MCTS) expand(t *Tree, idx int32) error {
	parent := &t.Nodes[idx]
	card := parent.Playable.Get(len(parent.Children))
	mover, err := parent.State.NextPlayer()
	if err != nil {
		return err
	}
	state, err := parent.State.WithNewCardPlayedAndTrickCollected(card)
	if err != nil {
		return err
	}
	hand := parent.Hand.Remove(card)

	child, err := m.newNode(state, hand, idx, mover.Team())
	if err != nil {
		return err
	}
	// parent is invalid once Nodes grows.
	t.Nodes = append(t.Nodes, child)
	childIdx := int32(len(t.Nodes) - 1)
	t.Nodes[idx].Children = append(t.Nodes[idx].Children, childIdx)

	score, err := m.simulate(state, hand)
	if err != nil {
		return err
	}
	t.backpropagate(childIdx, score)
	return nil
}

// simulate plays uniformly random legal cards until the end of the turn.
func (m *MCTS) simulate(state game.TurnState, hand game.CardSet) (game.Score, error) {
	for !state.IsTerminal() {
		playable, err := m.playable(state, hand)
		if err != nil {
			return game.Score{}, err
		}
		card := playable.Get(m.Rng.IntN(playable.Size()))
		if state, err = state.WithNewCardPlayedAndTrickCollected(card); err != nil {
			return game.Score{}, err
		}
		hand = hand.Remove(card)
	}
	return state.Score(), nil
}

// backpropagate credits every node from idx up to the root with the turn
// points of the team that chose to enter it.
func (t *Tree) backpropagate(idx int32, score game.Score) {
	for i := idx; i >= 0; i = t.Nodes[i].Parent {
		n := &t.Nodes[i]
		if n.Parent >= 0 {
			n.Points += score.TurnPoints(n.Team)
		}
		n.Visits++
	}
}

func (t *Tree) bestChild(idx int32, exploration float64) int {
	n := &t.Nodes[idx]
	logVisits := math.Log(float64(n.Visits))
	best, bestScore := 0, math.Inf(-1)
	for k, ci := range n.Children {
		child := &t.Nodes[ci]
		visits := float64(child.Visits)
		// UCT: average points plus exploration bonus.
		score := float64(child.Points)/visits + exploration*math.Sqrt(2*logVisits/visits)
		if score > bestScore {
			best, bestScore = k, score
		}
	}
	return best
}
