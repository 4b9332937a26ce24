// Package game defines the Jass domain types: cards, card sets, tricks and
// scores in their bit-packed and validated forms, and the turn state that
// strings them together.
//
// The packed forms are plain integers with methods and are what the search
// runs on. The validated forms (Card, CardSet, Trick, Score) can only be
// built from well-formed packed values and are what crosses package
// boundaries.
package game

import "fmt"

// TurnState is the state of one turn: the score, the cards nobody has played
// yet and the current trick. It is immutable; transitions return a new value.
type TurnState struct {
	score    PackedScore
	unplayed PackedCardSet
	trick    PackedTrick
}

// InitialTurnState is the state at the start of a turn led by first.
func InitialTurnState(trump Color, score Score, first PlayerID) TurnState {
	return TurnState{
		score:    score.pk,
		unplayed: AllPackedCards,
		trick:    FirstEmptyPackedTrick(trump, first),
	}
}

// TurnStateOfPacked rebuilds a state from its packed components.
func TurnStateOfPacked(score PackedScore, unplayed PackedCardSet, trick PackedTrick) (TurnState, error) {
	if !score.IsValid() {
		return TurnState{}, fmt.Errorf("turn state score %#x: %w", uint64(score), ErrInvalidPacked)
	}
	if !unplayed.IsValid() {
		return TurnState{}, fmt.Errorf("turn state unplayed cards %#x: %w", uint64(unplayed), ErrInvalidPacked)
	}
	if !trick.IsValid() {
		return TurnState{}, fmt.Errorf("turn state trick %#x: %w", uint32(trick), ErrInvalidPacked)
	}
	return TurnState{score: score, unplayed: unplayed, trick: trick}, nil
}

func (s TurnState) PackedScore() PackedScore           { return s.score }
func (s TurnState) PackedUnplayedCards() PackedCardSet { return s.unplayed }
func (s TurnState) PackedTrick() PackedTrick           { return s.trick }

func (s TurnState) Score() Score           { return Score{pk: s.score} }
func (s TurnState) UnplayedCards() CardSet { return CardSet{pk: s.unplayed} }
func (s TurnState) Trick() Trick           { return Trick{pk: s.trick} }

// IsTerminal reports whether all tricks of the turn have been collected.
func (s TurnState) IsTerminal() bool { return s.trick == InvalidPackedTrick }

// NextPlayer is the player expected to play into the current trick.
func (s TurnState) NextPlayer() (PlayerID, error) {
	if err := s.checkPlayable(); err != nil {
		return 0, err
	}
	return s.trick.Player(s.trick.Size()), nil
}

func (s TurnState) checkPlayable() error {
	if s.IsTerminal() {
		return ErrTurnOver
	}
	if s.trick.IsFull() {
		return ErrTrickFull
	}
	return nil
}

func (s TurnState) WithNewCardPlayed(c Card) (TurnState, error) {
	if err := s.checkPlayable(); err != nil {
		return TurnState{}, err
	}
	return TurnState{
		score:    s.score,
		unplayed: s.unplayed.Remove(c.pk),
		trick:    s.trick.WithAddedCard(c.pk),
	}, nil
}

// WithTrickCollected credits the full trick to its winner's team and moves on
// to the next trick, or to the terminal state after the last one.
func (s TurnState) WithTrickCollected() (TurnState, error) {
	if s.IsTerminal() {
		return TurnState{}, ErrTurnOver
	}
	if !s.trick.IsFull() {
		return TurnState{}, ErrTrickNotFull
	}
	return TurnState{
		score:    s.score.WithAdditionalTrick(s.trick.WinningPlayer().Team(), s.trick.Points()),
		unplayed: s.unplayed,
		trick:    s.trick.NextEmpty(),
	}, nil
}

// WithNewCardPlayedAndTrickCollected plays c and collects the trick if c filled it.
func (s TurnState) WithNewCardPlayedAndTrickCollected(c Card) (TurnState, error) {
	next, err := s.WithNewCardPlayed(c)
	if err != nil {
		return TurnState{}, err
	}
	if next.trick.IsFull() {
		return next.WithTrickCollected()
	}
	return next, nil
}

func (s TurnState) String() string {
	return fmt.Sprintf("score=%s unplayed=%d %s", s.score, s.unplayed.Size(), s.trick)
}
