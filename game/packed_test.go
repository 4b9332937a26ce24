package game

import (
	"math/rand/v2"
	"testing"

	"github.com/brensch/jass/bitfield"
	"github.com/stretchr/testify/require"
)

func TestPackedCard(t *testing.T) {
	for _, c := range AllColors {
		for _, r := range AllRanks {
			pk := PackCard(c, r)
			require.True(t, pk.IsValid())
			require.Equal(t, c, pk.Color())
			require.Equal(t, r, pk.Rank())
			require.Less(t, uint32(pk), uint32(1)<<cardBits)
		}
	}

	require.False(t, InvalidPackedCard.IsValid())
	require.False(t, PackedCard(0b1001).IsValid(), "rank 9 does not exist")
	require.False(t, PackedCard(1<<cardBits).IsValid(), "high bits must be zero")

	require.Equal(t, "♠10", PackCard(Spade, Ten).String())
	require.Equal(t, "♥J", PackCard(Heart, Jack).String())
	require.Equal(t, "♣6", PackCard(Club, Six).String())
}

func TestPackCardOutOfRange(t *testing.T) {
	require.Panics(t, func() { PackCard(ColorCount, Six) })
	require.Panics(t, func() { PackCard(Spade, RankCount) })
}

func TestIsBetter(t *testing.T) {
	tests := []struct {
		name  string
		a, b  PackedCard
		trump Color
		want  bool
	}{
		{"trump beats plain ace", pc(Spade, Six), pc(Heart, Ace), Spade, true},
		{"plain ace loses to trump", pc(Heart, Ace), pc(Spade, Six), Spade, false},
		{"jack tops trump order", pc(Spade, Jack), pc(Spade, Nine), Spade, true},
		{"nine above ace in trump", pc(Spade, Nine), pc(Spade, Ace), Spade, true},
		{"ten below queen in trump", pc(Spade, Ten), pc(Spade, Queen), Spade, false},
		{"natural order off trump", pc(Heart, Ten), pc(Heart, Nine), Spade, true},
		{"jack below queen off trump", pc(Heart, Jack), pc(Heart, Queen), Spade, false},
		{"different plain colors", pc(Heart, King), pc(Diamond, Six), Spade, false},
		{"different plain colors reversed", pc(Diamond, Six), pc(Heart, King), Spade, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.a.IsBetter(tt.trump, tt.b))
		})
	}
}

func TestDeckPoints(t *testing.T) {
	for _, trump := range AllColors {
		total := 0
		for i := 0; i < AllPackedCards.Size(); i++ {
			total += AllPackedCards.Get(i).Points(trump)
		}
		require.Equal(t, 152, total, "trump %s", trump)
	}
	require.Equal(t, 20, pc(Club, Jack).Points(Club))
	require.Equal(t, 2, pc(Club, Jack).Points(Heart))
	require.Equal(t, 14, pc(Club, Nine).Points(Club))
	require.Equal(t, 0, pc(Club, Nine).Points(Heart))
}

func TestPackedCardSetOrder(t *testing.T) {
	require.Equal(t, 36, AllPackedCards.Size())
	require.Equal(t, pc(Spade, Six), AllPackedCards.Get(0))
	require.Equal(t, pc(Spade, Ace), AllPackedCards.Get(8))
	require.Equal(t, pc(Heart, Six), AllPackedCards.Get(9))
	require.Equal(t, pc(Club, Ace), AllPackedCards.Get(35))
	require.Panics(t, func() { AllPackedCards.Get(36) })
	require.Panics(t, func() { EmptyPackedCardSet.Get(0) })

	s := setOf(pc(Club, Six), pc(Heart, Ace), pc(Heart, Seven))
	require.Equal(t, "{♥7,♥A,♣6}", s.String())
	require.Equal(t, "{}", EmptyPackedCardSet.String())
}

func TestPackedCardSetOps(t *testing.T) {
	s := EmptyPackedCardSet.Add(pc(Diamond, Queen)).Add(pc(Spade, Nine))
	require.Equal(t, 2, s.Size())
	require.True(t, s.Contains(pc(Diamond, Queen)))
	require.False(t, s.Contains(pc(Diamond, King)))
	require.Equal(t, s, s.Add(pc(Spade, Nine)))

	s = s.Remove(pc(Diamond, Queen))
	require.Equal(t, SingletonPackedCardSet(pc(Spade, Nine)), s)
	require.Equal(t, s, s.Remove(pc(Club, Ace)))

	require.Equal(t, 9, AllPackedCards.SubsetOfColor(Heart).Size())
	require.Equal(t, setOf(pc(Club, Six), pc(Club, Ace)),
		setOf(pc(Club, Six), pc(Heart, Six), pc(Club, Ace)).SubsetOfColor(Club))

	require.Equal(t, setOf(pc(Spade, King), pc(Spade, Ace), pc(Spade, Nine), pc(Spade, Jack)), TrumpAbove(pc(Spade, Queen)))
	require.Equal(t, EmptyPackedCardSet, TrumpAbove(pc(Heart, Jack)))
	require.Equal(t, setOf(pc(Club, Jack)), TrumpAbove(pc(Club, Nine)))
	require.Equal(t, 8, TrumpAbove(pc(Diamond, Six)).Size())

	require.True(t, AllPackedCards.IsValid())
	require.False(t, PackedCardSet(1<<9).IsValid())
	require.False(t, PackedCardSet(1<<63).IsValid())
}

func randomSet(rng *rand.Rand) PackedCardSet {
	return PackedCardSet(rng.Uint64()) & AllPackedCards
}

func TestPackedCardSetAlgebra(t *testing.T) {
	rng := rand.New(rand.NewPCG(5, 6))
	for i := 0; i < 1000; i++ {
		a, b := randomSet(rng), randomSet(rng)
		require.Equal(t, AllPackedCards, a.Union(a.Complement()))
		require.Equal(t, EmptyPackedCardSet, a.Intersection(a.Complement()))
		require.Equal(t, a.Size()+b.Size(), a.Union(b).Size()+a.Intersection(b).Size())
		require.Equal(t, a, a.Difference(b).Union(a.Intersection(b)))
		require.True(t, a.Complement().IsValid())

		for j := 0; j < a.Size(); j++ {
			require.True(t, a.Contains(a.Get(j)))
			if j > 0 {
				require.Less(t, cardIndex(a.Get(j-1)), cardIndex(a.Get(j)))
			}
		}
	}
}

func TestPackedScore(t *testing.T) {
	s := InitialPackedScore
	require.True(t, s.IsValid())
	require.Equal(t, "(0,0,0)/(0,0,0)", s.String())

	s = s.WithAdditionalTrick(Team2, 20).WithAdditionalTrick(Team1, 5)
	require.Equal(t, 1, s.TurnTricks(Team1))
	require.Equal(t, 5, s.TurnPoints(Team1))
	require.Equal(t, 1, s.TurnTricks(Team2))
	require.Equal(t, 20, s.TurnPoints(Team2))
	require.Equal(t, "(1,5,0)/(1,20,0)", s.String())

	require.Panics(t, func() { s.NextTurn() })

	for i := 0; i < 7; i++ {
		s = s.WithAdditionalTrick(Team1, 10)
	}
	s = s.NextTurn()
	require.Equal(t, "(0,0,75)/(0,0,20)", s.String())
	require.Equal(t, 75, s.TotalPoints(Team1))
}

func TestPackedScoreMatchBonus(t *testing.T) {
	s := PackScore(0, 0, 300, 0, 0, 400)
	trickPoints := []int{20, 30, 10, 17, 0, 25, 11, 4, 40}
	sum := 0
	for _, p := range trickPoints {
		s = s.WithAdditionalTrick(Team1, p)
		sum += p
	}
	require.Equal(t, 157, sum)
	require.Equal(t, TricksPerTurn, s.TurnTricks(Team1))
	require.Equal(t, 157+MatchAdditionalPoints, s.TurnPoints(Team1))
	require.Equal(t, 557, s.TotalPoints(Team1))
	require.Equal(t, 0, s.TurnTricks(Team2))
	require.True(t, s.IsValid())
}

func TestPackedScoreValidity(t *testing.T) {
	require.True(t, PackScore(9, 257, 2000, 0, 0, 0).IsValid())
	require.False(t, PackScore(10, 0, 0, 0, 0, 0).IsValid())
	require.False(t, PackScore(0, 258, 0, 0, 0, 0).IsValid())
	require.False(t, PackScore(0, 0, 0, 0, 0, 2001).IsValid())
	require.False(t, PackedScore(1<<24).IsValid())
	require.False(t, PackedScore(1<<63).IsValid())
	require.Panics(t, func() { PackScore(16, 0, 0, 0, 0, 0) })
}

func TestPackedTrickShape(t *testing.T) {
	first := FirstEmptyPackedTrick(Club, Player3)
	require.True(t, first.IsValid())
	require.True(t, first.IsEmpty())
	require.False(t, first.IsFull())
	require.Equal(t, 0, first.Size())
	require.Equal(t, Club, first.Trump())
	require.Equal(t, 0, first.Index())
	require.Equal(t, Player3, first.Player(0))
	require.Equal(t, Player2, first.Player(3))
	require.Panics(t, func() { first.Player(4) })
	require.Panics(t, func() { first.Card(0) })

	require.False(t, InvalidPackedTrick.IsValid())

	full := first
	for _, c := range []PackedCard{pc(Heart, Six), pc(Heart, Ace), pc(Club, Six), pc(Heart, King)} {
		full = full.WithAddedCard(c)
	}
	require.True(t, full.IsFull())
	require.Equal(t, Heart, full.BaseColor())
	require.Panics(t, func() { full.WithAddedCard(pc(Spade, Six)) })

	next := full.NextEmpty()
	require.True(t, next.IsEmpty())
	require.Equal(t, 1, next.Index())
	require.Equal(t, Player1, next.Player(0), "the trump six played by P1 wins")
	require.Equal(t, Club, next.Trump())

	last := EmptyPackedTrick(TricksPerTurn-1, Player1, Club)
	require.True(t, last.IsLast())
	require.Equal(t, InvalidPackedTrick, last.NextEmpty())
	require.Equal(t, FirstEmptyPackedTrick(Club, Player3), EmptyPackedTrick(0, Player3, Club))
	require.Panics(t, func() { EmptyPackedTrick(TricksPerTurn, Player1, Club) })
	require.Panics(t, func() { EmptyPackedTrick(0, PlayerCount, Club) })

	gap := PackedTrick(bitfield.Pack32(
		bitfield.F(uint64(InvalidPackedCard), 6),
		bitfield.F(uint64(pc(Spade, Six)), 6),
		bitfield.F(uint64(InvalidPackedCard), 6),
		bitfield.F(uint64(InvalidPackedCard), 6),
		bitfield.F(0, 8),
	))
	require.False(t, gap.IsValid(), "no card after an empty slot")
	require.False(t, EmptyPackedTrick(0, Player1, Spade).WithAddedCard(PackedCard(0b001001)).IsValid())
}

func TestPackedRoundTrips(t *testing.T) {
	for i := 0; i < AllPackedCards.Size(); i++ {
		pk := AllPackedCards.Get(i)
		c, err := CardOfPacked(pk)
		require.NoError(t, err)
		require.Equal(t, pk, c.Packed())
		require.Equal(t, c, CardOf(pk.Color(), pk.Rank()))
	}

	rng := rand.New(rand.NewPCG(7, 8))
	for i := 0; i < 500; i++ {
		set := randomSet(rng)
		cs, err := CardSetOfPacked(set)
		require.NoError(t, err)
		require.Equal(t, set, cs.Packed())
		require.Equal(t, cs, CardSetOf(cs.Cards()...))

		trick, _ := randomTrick(rng)
		tr, err := TrickOfPacked(trick)
		require.NoError(t, err)
		require.Equal(t, trick, tr.Packed())

		score := PackScore(rng.IntN(10), rng.IntN(258), rng.IntN(2001), rng.IntN(10), rng.IntN(258), rng.IntN(2001))
		sc, err := ScoreOfPacked(score)
		require.NoError(t, err)
		require.Equal(t, score, sc.Packed())
	}
}
