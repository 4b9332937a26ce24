package main

import (
	"context"
	"errors"
	"time"

	"github.com/brensch/jass/executor/mcts"
	"github.com/brensch/jass/game"
	"github.com/brensch/jass/player"
)

// seat builds its search player when the host tells it which seat it has.
type seat struct {
	game.NopObserver

	seed     uint64
	opts     []mcts.Option
	minThink time.Duration

	p   game.Player
	err error
}

func (s *seat) SetPlayers(own game.PlayerID, _ [game.PlayerCount]string) {
	pp, err := mcts.NewParallelPlayer(own, s.seed, s.opts...)
	if err != nil {
		s.err = err
		return
	}
	s.p = player.NewPaced(pp, s.minThink)
}

func (s *seat) CardToPlay(ctx context.Context, state game.TurnState, hand game.CardSet) (game.Card, error) {
	if s.p == nil {
		return game.Card{}, s.notSeated()
	}
	return s.p.CardToPlay(ctx, state, hand)
}

func (s *seat) ChooseTrump(ctx context.Context, chooser game.PlayerID, hand game.CardSet, canPass bool) (game.Color, bool, error) {
	if s.p == nil {
		return 0, false, s.notSeated()
	}
	return s.p.ChooseTrump(ctx, chooser, hand, canPass)
}

func (s *seat) notSeated() error {
	if s.err != nil {
		return s.err
	}
	return errors.New("asked to play before the players were announced")
}
