package game

import (
	"fmt"

	"github.com/brensch/jass/bitfield"
)

// PackedScore holds both teams' tallies in a uint64, Team1 in the low half.
// Each 32-bit half packs the tricks won this turn (bits 0-3), the points won
// this turn (bits 4-12) and the points of previous turns (bits 13-23).
// Bits 24-31 of each half are zero.
type PackedScore uint64

const (
	scoreHalfSize        = 32
	scoreTricksStart     = 0
	scoreTricksSize      = 4
	scoreTurnPointsStart = scoreTricksStart + scoreTricksSize
	scoreTurnPointsSize  = 9
	scoreGamePointsStart = scoreTurnPointsStart + scoreTurnPointsSize
	scoreGamePointsSize  = 11
	scoreUsedBits        = scoreGamePointsStart + scoreGamePointsSize

	maxTurnPoints = 257
	maxGamePoints = 2000

	InitialPackedScore PackedScore = 0
)

// PackScore builds a score from both teams' tallies. It panics when a value
// does not fit its field.
func PackScore(turnTricks1, turnPoints1, gamePoints1, turnTricks2, turnPoints2, gamePoints2 int) PackedScore {
	return PackedScore(uint64(packHalf(turnTricks1, turnPoints1, gamePoints1)) |
		uint64(packHalf(turnTricks2, turnPoints2, gamePoints2))<<scoreHalfSize)
}

func packHalf(tricks, turnPoints, gamePoints int) uint32 {
	if tricks < 0 || turnPoints < 0 || gamePoints < 0 {
		panic(fmt.Errorf("%w: negative score field (%d, %d, %d)", bitfield.ErrPrecondition, tricks, turnPoints, gamePoints))
	}
	return bitfield.Pack32(
		bitfield.F(uint64(tricks), scoreTricksSize),
		bitfield.F(uint64(turnPoints), scoreTurnPointsSize),
		bitfield.F(uint64(gamePoints), scoreGamePointsSize),
	)
}

func (s PackedScore) half(t TeamID) uint32 {
	return uint32(bitfield.Extract64(uint64(s), int(t)*scoreHalfSize, scoreHalfSize))
}

func (s PackedScore) IsValid() bool {
	for _, t := range AllTeams {
		h := s.half(t)
		if bitfield.Extract32(h, scoreUsedBits, scoreHalfSize-scoreUsedBits) != 0 {
			return false
		}
		if s.TurnTricks(t) > TricksPerTurn || s.TurnPoints(t) > maxTurnPoints || s.GamePoints(t) > maxGamePoints {
			return false
		}
	}
	return true
}

func (s PackedScore) TurnTricks(t TeamID) int {
	return int(bitfield.Extract32(s.half(t), scoreTricksStart, scoreTricksSize))
}

func (s PackedScore) TurnPoints(t TeamID) int {
	return int(bitfield.Extract32(s.half(t), scoreTurnPointsStart, scoreTurnPointsSize))
}

func (s PackedScore) GamePoints(t TeamID) int {
	return int(bitfield.Extract32(s.half(t), scoreGamePointsStart, scoreGamePointsSize))
}

func (s PackedScore) TotalPoints(t TeamID) int {
	return s.GamePoints(t) + s.TurnPoints(t)
}

func (s PackedScore) withHalf(t TeamID, h uint32) PackedScore {
	shift := int(t) * scoreHalfSize
	cleared := uint64(s) &^ bitfield.Mask64(shift, scoreHalfSize)
	return PackedScore(cleared | uint64(h)<<shift)
}

// WithAdditionalTrick credits a trick worth trickPoints to the winning team,
// adding the match bonus when that team has taken every trick of the turn.
func (s PackedScore) WithAdditionalTrick(winning TeamID, trickPoints int) PackedScore {
	tricks := s.TurnTricks(winning) + 1
	points := s.TurnPoints(winning) + trickPoints
	if tricks == TricksPerTurn {
		points += MatchAdditionalPoints
	}
	return s.withHalf(winning, packHalf(tricks, points, s.GamePoints(winning)))
}

// NextTurn folds the turn points into the game points and clears the turn
// tallies. It panics unless all tricks of the turn were counted.
func (s PackedScore) NextTurn() PackedScore {
	if n := s.TurnTricks(Team1) + s.TurnTricks(Team2); n != TricksPerTurn {
		panic(fmt.Errorf("%w: next turn after %d tricks", bitfield.ErrPrecondition, n))
	}
	return PackScore(0, 0, s.TotalPoints(Team1), 0, 0, s.TotalPoints(Team2))
}

func (s PackedScore) String() string {
	return fmt.Sprintf("(%d,%d,%d)/(%d,%d,%d)",
		s.TurnTricks(Team1), s.TurnPoints(Team1), s.GamePoints(Team1),
		s.TurnTricks(Team2), s.TurnPoints(Team2), s.GamePoints(Team2))
}
