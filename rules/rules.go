// Package rules holds the table rules that sit around a turn: dealing, who
// leads, who picks trump and when the game is over.
package rules

import (
	"math/rand/v2"

	"github.com/brensch/jass/game"
)

// SevenOfDiamonds is held by the player who leads the first turn of a game.
var SevenOfDiamonds = game.CardOf(game.Diamond, game.Seven)

// NewRand returns a PCG generator. Equal seeds give equal streams.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9E3779B97F4A7C15))
}

// Deal shuffles the deck and hands HandSize cards to each player.
func Deal(rng *rand.Rand) [game.PlayerCount]game.CardSet {
	var hands [game.PlayerCount]game.CardSet
	for i, idx := range rng.Perm(game.HandSize * game.PlayerCount) {
		p := i / game.HandSize
		hands[p] = hands[p].Add(game.AllCards.Get(idx))
	}
	return hands
}

// FirstLeader is the holder of the seven of diamonds.
func FirstLeader(hands [game.PlayerCount]game.CardSet) (game.PlayerID, bool) {
	for _, p := range game.AllPlayers {
		if hands[p].Contains(SevenOfDiamonds) {
			return p, true
		}
	}
	return 0, false
}

// NextLeader is the player leading the turn after one led by p.
func NextLeader(p game.PlayerID) game.PlayerID {
	return (p + 1) % game.PlayerCount
}

// TrumpPartner picks trump when the leader passes.
func TrumpPartner(leader game.PlayerID) game.PlayerID {
	return (leader + game.TeamCount) % game.PlayerCount
}

// WinningTeam is the first team, Team1 checked first, whose total reached WinningPoints.
func WinningTeam(score game.Score) (game.TeamID, bool) {
	for _, t := range game.AllTeams {
		if score.TotalPoints(t) >= game.WinningPoints {
			return t, true
		}
	}
	return 0, false
}

// IsGameOver reports whether a team has reached WinningPoints.
func IsGameOver(score game.Score) bool {
	_, over := WinningTeam(score)
	return over
}

// ChooseTrumpByLength picks the longest color of hand, the lowest color on ties.
// With no color longer than three cards it passes when allowed.
func ChooseTrumpByLength(hand game.CardSet, canPass bool) (game.Color, bool) {
	best, bestLen := game.Spade, -1
	for _, c := range game.AllColors {
		if n := hand.SubsetOfColor(c).Size(); n > bestLen {
			best, bestLen = c, n
		}
	}
	if canPass && bestLen <= 3 {
		return 0, false
	}
	return best, true
}
