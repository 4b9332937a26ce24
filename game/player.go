package game

import "context"

// Observer receives the notifications a seat gets while a game runs.
type Observer interface {
	SetPlayers(own PlayerID, names [PlayerCount]string)
	UpdateHand(hand CardSet)
	SetTrump(trump Color)
	UpdateTrick(trick Trick)
	UpdateScore(score Score)
	SetWinningTeam(team TeamID)
}

// Player is a seat at the table.
type Player interface {
	Observer

	// CardToPlay returns a card of state.Trick().PlayableCards(hand).
	CardToPlay(ctx context.Context, state TurnState, hand CardSet) (Card, error)

	// ChooseTrump returns ok == false to pass, which is only allowed when canPass is set.
	// Seats other than chooser are asked too and their answer is ignored.
	ChooseTrump(ctx context.Context, chooser PlayerID, hand CardSet, canPass bool) (trump Color, ok bool, err error)
}

// NopObserver ignores every notification. Embed it in players that only decide.
type NopObserver struct{}

func (NopObserver) SetPlayers(PlayerID, [PlayerCount]string) {}
func (NopObserver) UpdateHand(CardSet)                       {}
func (NopObserver) SetTrump(Color)                           {}
func (NopObserver) UpdateTrick(Trick)                        {}
func (NopObserver) UpdateScore(Score)                        {}
func (NopObserver) SetWinningTeam(TeamID)                    {}
