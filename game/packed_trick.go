package game

import (
	"fmt"
	"strings"

	"github.com/brensch/jass/bitfield"
)

// PackedTrick is a trick in a uint32: four 6-bit card slots in bits 0-23,
// the trick index within the turn in bits 24-27, the leading player in bits
// 28-29 and the trump color in bits 30-31.
//
// Empty slots hold InvalidPackedCard and only ever follow filled ones.
type PackedTrick uint32

const (
	trickSlots       = PlayerCount
	trickSlotSize    = cardBits
	trickIndexStart  = trickSlots * trickSlotSize
	trickIndexSize   = 4
	trickPlayerStart = trickIndexStart + trickIndexSize
	trickPlayerSize  = 2
	trickTrumpStart  = trickPlayerStart + trickPlayerSize
	trickTrumpSize   = 2

	// InvalidPackedTrick follows the last trick of a turn.
	InvalidPackedTrick PackedTrick = 0xFFFF_FFFF
)

func (t PackedTrick) IsValid() bool {
	if t.Index() >= TricksPerTurn {
		return false
	}
	empty := false
	for i := 0; i < trickSlots; i++ {
		c := t.slot(i)
		switch {
		case c == InvalidPackedCard:
			empty = true
		case empty || !c.IsValid():
			return false
		}
	}
	return true
}

// FirstEmptyPackedTrick is the first trick of a turn, led by first.
func FirstEmptyPackedTrick(trump Color, first PlayerID) PackedTrick {
	return EmptyPackedTrick(0, first, trump)
}

// EmptyPackedTrick is the empty trick with the given index in its turn, led
// by first. It panics when index is not below TricksPerTurn or first and
// trump are out of range.
func EmptyPackedTrick(index int, first PlayerID, trump Color) PackedTrick {
	if index < 0 || index >= TricksPerTurn || !first.IsValid() || !trump.IsValid() {
		panic(fmt.Errorf("%w: empty trick %d led by %d with trump %d", bitfield.ErrPrecondition, index, first, trump))
	}
	return PackedTrick(bitfield.Pack32(
		bitfield.F(uint64(bitfield.Mask32(0, trickIndexStart)), trickIndexStart),
		bitfield.F(uint64(index), trickIndexSize),
		bitfield.F(uint64(first), trickPlayerSize),
		bitfield.F(uint64(trump), trickTrumpSize),
	))
}

// NextEmpty is the empty trick that follows t, led by the winner of t.
// After the last trick of the turn it is InvalidPackedTrick.
func (t PackedTrick) NextEmpty() PackedTrick {
	if t.IsLast() {
		return InvalidPackedTrick
	}
	return EmptyPackedTrick(t.Index()+1, t.WinningPlayer(), t.Trump())
}

func (t PackedTrick) IsLast() bool { return t.Index() == TricksPerTurn-1 }

func (t PackedTrick) IsEmpty() bool { return t.slot(0) == InvalidPackedCard }

func (t PackedTrick) IsFull() bool { return t.slot(trickSlots-1) != InvalidPackedCard }

func (t PackedTrick) Size() int {
	n := 0
	for n < trickSlots && t.slot(n) != InvalidPackedCard {
		n++
	}
	return n
}

func (t PackedTrick) Trump() Color {
	return Color(bitfield.Extract32(uint32(t), trickTrumpStart, trickTrumpSize))
}

func (t PackedTrick) Index() int {
	return int(bitfield.Extract32(uint32(t), trickIndexStart, trickIndexSize))
}

func (t PackedTrick) leader() PlayerID {
	return PlayerID(bitfield.Extract32(uint32(t), trickPlayerStart, trickPlayerSize))
}

// Player is the player who plays the i-th card of the trick.
func (t PackedTrick) Player(i int) PlayerID {
	checkSlot(i, trickSlots)
	return PlayerID((int(t.leader()) + i) % PlayerCount)
}

// Card is the i-th card played. It panics when fewer cards were played.
func (t PackedTrick) Card(i int) PackedCard {
	checkSlot(i, t.Size())
	return t.slot(i)
}

func (t PackedTrick) slot(i int) PackedCard {
	return PackedCard(bitfield.Extract32(uint32(t), i*trickSlotSize, trickSlotSize))
}

func checkSlot(i, n int) {
	if i < 0 || i >= n {
		panic(fmt.Errorf("%w: trick slot %d out of range [0, %d)", bitfield.ErrPrecondition, i, n))
	}
}

// WithAddedCard puts pk into the first empty slot. It panics on a full trick.
func (t PackedTrick) WithAddedCard(pk PackedCard) PackedTrick {
	n := t.Size()
	checkSlot(n, trickSlots)
	mask := PackedTrick(bitfield.Mask32(n*trickSlotSize, trickSlotSize))
	return t&^mask | PackedTrick(pk)<<(n*trickSlotSize)
}

// BaseColor is the color of the first card played.
func (t PackedTrick) BaseColor() Color {
	return t.Card(0).Color()
}

// PlayableCards is the subset of hand that may legally be played into t.
func (t PackedTrick) PlayableCards(hand PackedCardSet) PackedCardSet {
	if t.IsEmpty() {
		return hand
	}
	trump := t.Trump()
	base := t.BaseColor()
	trumps := hand.SubsetOfColor(trump)

	if base == trump {
		// Holding only the trump jack never forces it out.
		if trumps.IsEmpty() || trumps == SingletonPackedCardSet(PackCard(trump, Jack)) {
			return hand
		}
		return trumps
	}

	playable := hand.SubsetOfColor(base)
	if playable.IsEmpty() {
		playable = hand.Difference(trumps)
	}
	if best := t.slot(t.bestCardIndex()); best.Color() == trump {
		playable = playable.Union(TrumpAbove(best).Intersection(trumps))
	} else {
		playable = playable.Union(trumps)
	}
	if playable.IsEmpty() {
		return hand
	}
	return playable
}

func (t PackedTrick) bestCardIndex() int {
	trump := t.Trump()
	best := 0
	for i, n := 1, t.Size(); i < n; i++ {
		if t.slot(i).IsBetter(trump, t.slot(best)) {
			best = i
		}
	}
	return best
}

// Points is the value of the cards in t, plus the last-trick bonus.
func (t PackedTrick) Points() int {
	trump := t.Trump()
	points := 0
	for i, n := 0, t.Size(); i < n; i++ {
		points += t.slot(i).Points(trump)
	}
	if t.IsLast() {
		points += LastTrickAdditionalPoints
	}
	return points
}

// WinningPlayer is the player of the best card so far. The trick must not be empty.
func (t PackedTrick) WinningPlayer() PlayerID {
	return t.Player(t.bestCardIndex())
}

func (t PackedTrick) String() string {
	if t == InvalidPackedTrick {
		return "Trick(invalid)"
	}
	cards := make([]string, 0, trickSlots)
	for i, n := 0, t.Size(); i < n; i++ {
		cards = append(cards, t.slot(i).String())
	}
	return fmt.Sprintf("Trick %d (%s leads, trump %s): %s", t.Index(), t.leader(), t.Trump(), strings.Join(cards, " "))
}
