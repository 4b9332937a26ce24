package game

import "fmt"

// Trick is a validated trick. InvalidTrick marks the end of a turn.
type Trick struct {
	pk PackedTrick
}

// InvalidTrick follows the last trick of a turn.
var InvalidTrick = Trick{pk: InvalidPackedTrick}

// FirstEmptyTrick is the first trick of a turn, led by first.
func FirstEmptyTrick(trump Color, first PlayerID) Trick {
	return Trick{pk: FirstEmptyPackedTrick(trump, first)}
}

// TrickOfPacked wraps pk, or returns ErrInvalidPacked.
func TrickOfPacked(pk PackedTrick) (Trick, error) {
	if !pk.IsValid() {
		return Trick{}, fmt.Errorf("trick %#x: %w", uint32(pk), ErrInvalidPacked)
	}
	return Trick{pk: pk}, nil
}

func (t Trick) Packed() PackedTrick { return t.pk }

// NextEmpty returns the trick that follows a full trick, or InvalidTrick
// after the last trick of the turn.
func (t Trick) NextEmpty() (Trick, error) {
	if !t.IsFull() {
		return Trick{}, ErrTrickNotFull
	}
	return Trick{pk: t.pk.NextEmpty()}, nil
}

func (t Trick) IsEmpty() bool { return t.pk.IsEmpty() }
func (t Trick) IsFull() bool  { return t.pk.IsFull() }
func (t Trick) IsLast() bool  { return t.pk.IsLast() }
func (t Trick) Size() int     { return t.pk.Size() }
func (t Trick) Trump() Color  { return t.pk.Trump() }
func (t Trick) Index() int    { return t.pk.Index() }

// Player is the player playing the i-th card, 0 <= i < PlayerCount.
func (t Trick) Player(i int) PlayerID { return t.pk.Player(i) }

// Card is the i-th card played, 0 <= i < Size().
func (t Trick) Card(i int) Card { return Card{pk: t.pk.Card(i)} }

func (t Trick) WithAddedCard(c Card) (Trick, error) {
	if t.IsFull() {
		return Trick{}, ErrTrickFull
	}
	return Trick{pk: t.pk.WithAddedCard(c.pk)}, nil
}

func (t Trick) BaseColor() (Color, error) {
	if t.IsEmpty() {
		return 0, ErrTrickEmpty
	}
	return t.pk.BaseColor(), nil
}

// PlayableCards is the subset of hand that may be played into t.
func (t Trick) PlayableCards(hand CardSet) (CardSet, error) {
	if t.IsFull() {
		return CardSet{}, ErrTrickFull
	}
	return CardSet{pk: t.pk.PlayableCards(hand.pk)}, nil
}

func (t Trick) Points() int { return t.pk.Points() }

func (t Trick) WinningPlayer() (PlayerID, error) {
	if t.IsEmpty() {
		return 0, ErrTrickEmpty
	}
	return t.pk.WinningPlayer(), nil
}

func (t Trick) String() string { return t.pk.String() }
