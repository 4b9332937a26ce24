package player

import (
	"context"
	"strings"

	"github.com/brensch/jass/game"
	"github.com/rs/zerolog"
)

// Logging writes every notification and decision of the wrapped seat to
// a logger at debug level.
type Logging struct {
	game.Player
	log zerolog.Logger
}

// NewLogging wraps p. Seat fields are added once SetPlayers is called.
func NewLogging(p game.Player, logger zerolog.Logger) *Logging {
	return &Logging{Player: p, log: logger}
}

func (l *Logging) SetPlayers(own game.PlayerID, names [game.PlayerCount]string) {
	l.log = l.log.With().Str("seat", own.String()).Str("name", names[own]).Logger()
	l.log.Debug().Str("players", strings.Join(names[:], ",")).Msg("players set")
	l.Player.SetPlayers(own, names)
}

func (l *Logging) UpdateHand(hand game.CardSet) {
	l.log.Debug().Stringer("hand", hand).Msg("hand updated")
	l.Player.UpdateHand(hand)
}

func (l *Logging) SetTrump(trump game.Color) {
	l.log.Debug().Stringer("trump", trump).Msg("trump set")
	l.Player.SetTrump(trump)
}

func (l *Logging) UpdateTrick(trick game.Trick) {
	l.log.Debug().Stringer("trick", trick).Msg("trick updated")
	l.Player.UpdateTrick(trick)
}

func (l *Logging) UpdateScore(score game.Score) {
	l.log.Debug().
		Int("team1", score.TotalPoints(game.Team1)).
		Int("team2", score.TotalPoints(game.Team2)).
		Stringer("score", score).
		Msg("score updated")
	l.Player.UpdateScore(score)
}

func (l *Logging) SetWinningTeam(team game.TeamID) {
	l.log.Debug().Stringer("team", team).Msg("game won")
	l.Player.SetWinningTeam(team)
}

func (l *Logging) CardToPlay(ctx context.Context, state game.TurnState, hand game.CardSet) (game.Card, error) {
	card, err := l.Player.CardToPlay(ctx, state, hand)
	if err != nil {
		l.log.Debug().Err(err).Stringer("trick", state.Trick()).Msg("no card")
		return card, err
	}
	l.log.Debug().Stringer("card", card).Stringer("trick", state.Trick()).Msg("card played")
	return card, nil
}

func (l *Logging) ChooseTrump(ctx context.Context, chooser game.PlayerID, hand game.CardSet, canPass bool) (game.Color, bool, error) {
	trump, ok, err := l.Player.ChooseTrump(ctx, chooser, hand, canPass)
	l.log.Debug().
		Stringer("chooser", chooser).
		Bool("can_pass", canPass).
		Bool("chosen", ok).
		Stringer("trump", trump).
		Err(err).
		Msg("trump asked")
	return trump, ok, err
}
