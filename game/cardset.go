package game

import "fmt"

// CardSet is an immutable set of cards.
type CardSet struct {
	pk PackedCardSet
}

var (
	EmptyCardSet = CardSet{pk: EmptyPackedCardSet}
	AllCards     = CardSet{pk: AllPackedCards}
)

// CardSetOf returns the set holding cards.
func CardSetOf(cards ...Card) CardSet {
	var s PackedCardSet
	for _, c := range cards {
		s = s.Add(c.pk)
	}
	return CardSet{pk: s}
}

// CardSetOfPacked wraps pk, or returns ErrInvalidPacked when a reserved bit is set.
func CardSetOfPacked(pk PackedCardSet) (CardSet, error) {
	if !pk.IsValid() {
		return CardSet{}, fmt.Errorf("card set %#x: %w", uint64(pk), ErrInvalidPacked)
	}
	return CardSet{pk: pk}, nil
}

func (s CardSet) Packed() PackedCardSet { return s.pk }
func (s CardSet) IsEmpty() bool         { return s.pk.IsEmpty() }
func (s CardSet) Size() int             { return s.pk.Size() }

// Get returns the i-th card in color then rank order.
func (s CardSet) Get(i int) Card { return Card{pk: s.pk.Get(i)} }

func (s CardSet) Add(c Card) CardSet      { return CardSet{pk: s.pk.Add(c.pk)} }
func (s CardSet) Remove(c Card) CardSet   { return CardSet{pk: s.pk.Remove(c.pk)} }
func (s CardSet) Contains(c Card) bool    { return s.pk.Contains(c.pk) }
func (s CardSet) Complement() CardSet     { return CardSet{pk: s.pk.Complement()} }
func (s CardSet) Union(o CardSet) CardSet { return CardSet{pk: s.pk.Union(o.pk)} }
func (s CardSet) Difference(o CardSet) CardSet {
	return CardSet{pk: s.pk.Difference(o.pk)}
}

func (s CardSet) Intersection(o CardSet) CardSet {
	return CardSet{pk: s.pk.Intersection(o.pk)}
}

func (s CardSet) SubsetOfColor(c Color) CardSet {
	return CardSet{pk: s.pk.SubsetOfColor(c)}
}

// Cards lists the set in Get order.
func (s CardSet) Cards() []Card {
	out := make([]Card, 0, s.Size())
	for i, n := 0, s.Size(); i < n; i++ {
		out = append(out, s.Get(i))
	}
	return out
}

func (s CardSet) String() string { return s.pk.String() }
