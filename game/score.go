package game

import (
	"fmt"

	"github.com/brensch/jass/bitfield"
)

// Score is a validated pair of team tallies.
type Score struct {
	pk PackedScore
}

// InitialScore is the score at the start of a game.
var InitialScore = Score{pk: InitialPackedScore}

// ScoreOfPacked wraps pk, or returns ErrInvalidPacked when a field is out of range.
func ScoreOfPacked(pk PackedScore) (Score, error) {
	if !pk.IsValid() {
		return Score{}, fmt.Errorf("score %#x: %w", uint64(pk), ErrInvalidPacked)
	}
	return Score{pk: pk}, nil
}

func (s Score) Packed() PackedScore      { return s.pk }
func (s Score) TurnTricks(t TeamID) int  { return s.pk.TurnTricks(t) }
func (s Score) TurnPoints(t TeamID) int  { return s.pk.TurnPoints(t) }
func (s Score) GamePoints(t TeamID) int  { return s.pk.GamePoints(t) }
func (s Score) TotalPoints(t TeamID) int { return s.pk.TotalPoints(t) }

// WithAdditionalTrick panics on negative trickPoints.
func (s Score) WithAdditionalTrick(winning TeamID, trickPoints int) Score {
	if trickPoints < 0 {
		panic(fmt.Errorf("%w: negative trick points %d", bitfield.ErrPrecondition, trickPoints))
	}
	return Score{pk: s.pk.WithAdditionalTrick(winning, trickPoints)}
}

// NextTurn starts the tallies of a new turn once all its tricks are counted.
func (s Score) NextTurn() (Score, error) {
	if s.TurnTricks(Team1)+s.TurnTricks(Team2) != TricksPerTurn {
		return Score{}, ErrTurnNotOver
	}
	return Score{pk: s.pk.NextTurn()}, nil
}

func (s Score) String() string { return s.pk.String() }
