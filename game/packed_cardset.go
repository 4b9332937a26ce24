package game

import (
	"fmt"
	"math/bits"
	"strings"

	"github.com/brensch/jass/bitfield"
)

// PackedCardSet is a set of cards in a uint64: one 16-bit lane per color,
// of which the 9 low bits hold the ranks.
type PackedCardSet uint64

const (
	laneSize  = 16
	laneRanks = RankCount

	EmptyPackedCardSet PackedCardSet = 0
	AllPackedCards     PackedCardSet = 0x01FF_01FF_01FF_01FF
)

var (
	colorSubsets [ColorCount]PackedCardSet
	// trumpAbove[r] holds, in the Spade lane, the ranks strictly above r in trump order.
	trumpAbove [RankCount]PackedCardSet
)

func init() {
	for _, c := range AllColors {
		colorSubsets[c] = PackedCardSet(bitfield.Mask64(int(c)*laneSize, laneRanks))
	}
	for _, r := range AllRanks {
		for _, above := range AllRanks {
			if above.TrumpOrdinal() > r.TrumpOrdinal() {
				trumpAbove[r] |= 1 << above
			}
		}
	}
}

func (s PackedCardSet) IsValid() bool {
	return s|AllPackedCards == AllPackedCards
}

// SingletonPackedCardSet is the set holding only pk.
func SingletonPackedCardSet(pk PackedCard) PackedCardSet {
	return 1 << cardIndex(pk)
}

func cardIndex(pk PackedCard) int {
	return int(pk.Color())*laneSize + int(pk.Rank())
}

// TrumpAbove is the set of cards of pk's color that beat pk when that color is trump.
func TrumpAbove(pk PackedCard) PackedCardSet {
	return trumpAbove[pk.Rank()] << (int(pk.Color()) * laneSize)
}

func (s PackedCardSet) IsEmpty() bool { return s == EmptyPackedCardSet }

func (s PackedCardSet) Size() int { return bits.OnesCount64(uint64(s)) }

// Get returns the i-th card of the set in ascending bit order, which is color
// order then rank order. It panics when i is out of range.
func (s PackedCardSet) Get(i int) PackedCard {
	if i < 0 || i >= s.Size() {
		panic(fmt.Errorf("%w: index %d out of range for a set of %d cards", bitfield.ErrPrecondition, i, s.Size()))
	}
	v := uint64(s)
	for ; i > 0; i-- {
		v &= v - 1
	}
	idx := bits.TrailingZeros64(v)
	return PackCard(Color(idx/laneSize), Rank(idx%laneSize))
}

func (s PackedCardSet) Add(pk PackedCard) PackedCardSet {
	return s | SingletonPackedCardSet(pk)
}

func (s PackedCardSet) Remove(pk PackedCard) PackedCardSet {
	return s &^ SingletonPackedCardSet(pk)
}

func (s PackedCardSet) Contains(pk PackedCard) bool {
	return s&SingletonPackedCardSet(pk) != 0
}

func (s PackedCardSet) Complement() PackedCardSet { return s ^ AllPackedCards }

func (s PackedCardSet) Union(o PackedCardSet) PackedCardSet { return s | o }

func (s PackedCardSet) Intersection(o PackedCardSet) PackedCardSet { return s & o }

func (s PackedCardSet) Difference(o PackedCardSet) PackedCardSet { return s &^ o }

func (s PackedCardSet) SubsetOfColor(c Color) PackedCardSet {
	return s & colorSubsets[c]
}

func (s PackedCardSet) String() string {
	parts := make([]string, 0, s.Size())
	for v := uint64(s); v != 0; v &= v - 1 {
		idx := bits.TrailingZeros64(v)
		parts = append(parts, PackCard(Color(idx/laneSize), Rank(idx%laneSize)).String())
	}
	return "{" + strings.Join(parts, ",") + "}"
}
