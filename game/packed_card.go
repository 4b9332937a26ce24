package game

import (
	"fmt"

	"github.com/brensch/jass/bitfield"
)

// PackedCard is a card in the 6 low bits of a uint32: rank in bits 0-3,
// color in bits 4-5. All higher bits are zero.
type PackedCard uint32

const (
	cardRankStart  = 0
	cardRankSize   = 4
	cardColorStart = cardRankStart + cardRankSize
	cardColorSize  = 2
	cardBits       = cardColorStart + cardColorSize

	// InvalidPackedCard marks an empty trick slot.
	InvalidPackedCard PackedCard = 0b111111
)

var (
	cardPoints      = [RankCount]int{0, 0, 0, 0, 10, 2, 3, 4, 11}
	trumpCardPoints = [RankCount]int{0, 0, 0, 14, 10, 20, 3, 4, 11}
)

// PackCard packs a color and a rank. It panics on out-of-range arguments.
func PackCard(c Color, r Rank) PackedCard {
	if !c.IsValid() || !r.IsValid() {
		panic(fmt.Errorf("%w: card (%d, %d)", bitfield.ErrPrecondition, c, r))
	}
	return PackedCard(bitfield.Pack32(
		bitfield.F(uint64(r), cardRankSize),
		bitfield.F(uint64(c), cardColorSize),
	))
}

// IsValid reports whether the rank is in range and all bits above the color are zero.
func (pk PackedCard) IsValid() bool {
	return bitfield.Extract32(uint32(pk), cardBits, 32-cardBits) == 0 &&
		bitfield.Extract32(uint32(pk), cardRankStart, cardRankSize) < RankCount
}

// Color is bits 4-5.
func (pk PackedCard) Color() Color {
	return Color(bitfield.Extract32(uint32(pk), cardColorStart, cardColorSize))
}

// Rank is bits 0-3.
func (pk PackedCard) Rank() Rank {
	return Rank(bitfield.Extract32(uint32(pk), cardRankStart, cardRankSize))
}

// IsBetter reports whether pk beats other when trump is the trump color.
// A card of another non-trump color never beats other.
func (pk PackedCard) IsBetter(trump Color, other PackedCard) bool {
	if pk.Color() == trump {
		return other.Color() != trump || pk.Rank().TrumpOrdinal() > other.Rank().TrumpOrdinal()
	}
	return pk.Color() == other.Color() && pk.Rank() > other.Rank()
}

// Points is the value of the card when trump is the trump color.
func (pk PackedCard) Points(trump Color) int {
	if pk.Color() == trump {
		return trumpCardPoints[pk.Rank()]
	}
	return cardPoints[pk.Rank()]
}

func (pk PackedCard) String() string {
	if !pk.IsValid() {
		return "--"
	}
	return pk.Color().String() + pk.Rank().String()
}
