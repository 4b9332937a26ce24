package player

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/brensch/jass/game"
	"github.com/brensch/jass/rules"
)

// Random plays a uniformly drawn legal card. It is the baseline opponent in
// the arena.
type Random struct {
	game.NopObserver
	rng *rand.Rand
}

// NewRandom returns a random player seeded with seed.
func NewRandom(seed uint64) *Random {
	return &Random{rng: rules.NewRand(seed)}
}

func (r *Random) CardToPlay(_ context.Context, state game.TurnState, hand game.CardSet) (game.Card, error) {
	playable, err := state.Trick().PlayableCards(hand)
	if err != nil {
		return game.Card{}, err
	}
	if playable.IsEmpty() {
		return game.Card{}, fmt.Errorf("random player: no playable card in %s for %s", hand, state.Trick())
	}
	return playable.Get(r.rng.IntN(playable.Size())), nil
}

// ChooseTrump passes one time in five when allowed and otherwise names a
// uniformly drawn color.
func (r *Random) ChooseTrump(_ context.Context, _ game.PlayerID, _ game.CardSet, canPass bool) (game.Color, bool, error) {
	if canPass && r.rng.IntN(game.ColorCount+1) == 0 {
		return 0, false, nil
	}
	return game.AllColors[r.rng.IntN(game.ColorCount)], true, nil
}
