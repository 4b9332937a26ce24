package game

import "fmt"

// Card is a validated playing card.
type Card struct {
	pk PackedCard
}

// CardOf returns the card of color c and rank r.
func CardOf(c Color, r Rank) Card {
	return Card{pk: PackCard(c, r)}
}

// CardOfPacked validates pk, typically one read off the wire.
func CardOfPacked(pk PackedCard) (Card, error) {
	if !pk.IsValid() {
		return Card{}, fmt.Errorf("card %#x: %w", uint32(pk), ErrInvalidPacked)
	}
	return Card{pk: pk}, nil
}

func (c Card) Packed() PackedCard { return c.pk }
func (c Card) Color() Color       { return c.pk.Color() }
func (c Card) Rank() Rank         { return c.pk.Rank() }

// IsBetter reports whether c beats that when trump is the trump color.
func (c Card) IsBetter(trump Color, that Card) bool {
	return c.pk.IsBetter(trump, that.pk)
}

func (c Card) Points(trump Color) int { return c.pk.Points(trump) }

func (c Card) String() string { return c.pk.String() }
