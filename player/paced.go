// Package player holds seat implementations that wrap or stand in for a
// searching player.
package player

import (
	"context"
	"time"

	"github.com/brensch/jass/game"
)

// Paced makes the wrapped player take at least MinThink per card, so a
// human watching the table can follow the play.
type Paced struct {
	game.Player
	MinThink time.Duration
}

// NewPaced wraps p so that no decision returns before minThink.
func NewPaced(p game.Player, minThink time.Duration) *Paced {
	return &Paced{Player: p, MinThink: minThink}
}

func (p *Paced) CardToPlay(ctx context.Context, state game.TurnState, hand game.CardSet) (game.Card, error) {
	start := time.Now()
	card, err := p.Player.CardToPlay(ctx, state, hand)
	if err != nil {
		return game.Card{}, err
	}

	wait := p.MinThink - time.Since(start)
	if wait <= 0 {
		return card, nil
	}
	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return game.Card{}, ctx.Err()
	case <-timer.C:
		return card, nil
	}
}
