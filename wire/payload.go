package wire

import (
	"fmt"

	"github.com/brensch/jass/game"
)

// Payload encoders build the line the host sends; the matching decoders are
// used by the remote seat.

// EncodePlayers is PLRS: the receiving seat, then the base64 names of all seats.
func EncodePlayers(own game.PlayerID, names [game.PlayerCount]string) Message {
	encoded := make([]string, game.PlayerCount)
	for i, n := range names {
		encoded[i] = SerializeString(n)
	}
	return Message{Command: Players, Args: []string{SerializeInt(int32(own)), Combine(',', encoded...)}}
}

// DecodePlayers reads a PLRS message.
func DecodePlayers(m Message) (game.PlayerID, [game.PlayerCount]string, error) {
	var names [game.PlayerCount]string
	args, err := m.args(2)
	if err != nil {
		return 0, names, err
	}
	own, err := decodePlayer(args[0])
	if err != nil {
		return 0, names, err
	}
	parts := Split(',', args[1])
	if len(parts) != game.PlayerCount {
		return 0, names, fmt.Errorf("%w: %d player names", ErrMalformed, len(parts))
	}
	for i, p := range parts {
		if names[i], err = DeserializeString(p); err != nil {
			return 0, names, err
		}
	}
	return own, names, nil
}

// EncodeTrump is TRMP with the color ordinal.
func EncodeTrump(trump game.Color) Message {
	return Message{Command: Trump, Args: []string{SerializeInt(int32(trump))}}
}

func DecodeTrump(m Message) (game.Color, error) {
	args, err := m.args(1)
	if err != nil {
		return 0, err
	}
	return decodeColor(args[0])
}

// EncodeHand is HAND with the packed card set.
func EncodeHand(hand game.CardSet) Message {
	return Message{Command: Hand, Args: []string{SerializeLong(uint64(hand.Packed()))}}
}

func DecodeHand(m Message) (game.CardSet, error) {
	args, err := m.args(1)
	if err != nil {
		return game.CardSet{}, err
	}
	return decodeCardSet(args[0])
}

// EncodeTrick is TRCK with the packed trick.
func EncodeTrick(trick game.Trick) Message {
	return Message{Command: Trick, Args: []string{SerializeInt(int32(trick.Packed()))}}
}

// DecodeTrick returns game.ErrInvalidPacked for a malformed trick.
func DecodeTrick(m Message) (game.Trick, error) {
	args, err := m.args(1)
	if err != nil {
		return game.Trick{}, err
	}
	pk, err := DeserializeInt(args[0])
	if err != nil {
		return game.Trick{}, err
	}
	return game.TrickOfPacked(game.PackedTrick(uint32(pk)))
}

// EncodeScore is SCOR with the packed score.
func EncodeScore(score game.Score) Message {
	return Message{Command: Score, Args: []string{SerializeLong(uint64(score.Packed()))}}
}

func DecodeScore(m Message) (game.Score, error) {
	args, err := m.args(1)
	if err != nil {
		return game.Score{}, err
	}
	pk, err := DeserializeLong(args[0])
	if err != nil {
		return game.Score{}, err
	}
	return game.ScoreOfPacked(game.PackedScore(pk))
}

// EncodeWinner is WINR with the team ordinal.
func EncodeWinner(team game.TeamID) Message {
	return Message{Command: Winner, Args: []string{SerializeInt(int32(team))}}
}

func DecodeWinner(m Message) (game.TeamID, error) {
	args, err := m.args(1)
	if err != nil {
		return 0, err
	}
	v, err := DeserializeInt(args[0])
	if err != nil {
		return 0, err
	}
	if v < 0 || v >= int32(game.TeamCount) {
		return 0, fmt.Errorf("%w: team %d", ErrMalformed, v)
	}
	return game.TeamID(v), nil
}

// EncodeCardRequest sends the packed state as "score,unplayed,trick" followed
// by the packed hand.
func EncodeCardRequest(state game.TurnState, hand game.CardSet) Message {
	return Message{Command: Card, Args: []string{
		Combine(',',
			SerializeLong(uint64(state.PackedScore())),
			SerializeLong(uint64(state.PackedUnplayedCards())),
			SerializeInt(int32(state.PackedTrick())),
		),
		SerializeLong(uint64(hand.Packed())),
	}}
}

// DecodeCardRequest validates the state and the hand before returning them.
func DecodeCardRequest(m Message) (game.TurnState, game.CardSet, error) {
	args, err := m.args(2)
	if err != nil {
		return game.TurnState{}, game.CardSet{}, err
	}
	parts := Split(',', args[0])
	if len(parts) != 3 {
		return game.TurnState{}, game.CardSet{}, fmt.Errorf("%w: turn state %q", ErrMalformed, args[0])
	}
	score, err := DeserializeLong(parts[0])
	if err != nil {
		return game.TurnState{}, game.CardSet{}, err
	}
	unplayed, err := DeserializeLong(parts[1])
	if err != nil {
		return game.TurnState{}, game.CardSet{}, err
	}
	trick, err := DeserializeInt(parts[2])
	if err != nil {
		return game.TurnState{}, game.CardSet{}, err
	}
	state, err := game.TurnStateOfPacked(game.PackedScore(score), game.PackedCardSet(unplayed), game.PackedTrick(uint32(trick)))
	if err != nil {
		return game.TurnState{}, game.CardSet{}, err
	}
	hand, err := decodeCardSet(args[1])
	if err != nil {
		return game.TurnState{}, game.CardSet{}, err
	}
	return state, hand, nil
}

// EncodeTrumpRequest is TRCH: the chooser, 1 when passing is allowed, and the hand.
func EncodeTrumpRequest(chooser game.PlayerID, canPass bool, hand game.CardSet) Message {
	pass := int32(0)
	if canPass {
		pass = 1
	}
	return Message{Command: ChooseTrump, Args: []string{
		SerializeInt(int32(chooser)),
		SerializeInt(pass),
		SerializeLong(uint64(hand.Packed())),
	}}
}

func DecodeTrumpRequest(m Message) (chooser game.PlayerID, canPass bool, hand game.CardSet, err error) {
	args, err := m.args(3)
	if err != nil {
		return 0, false, game.CardSet{}, err
	}
	if chooser, err = decodePlayer(args[0]); err != nil {
		return 0, false, game.CardSet{}, err
	}
	pass, err := DeserializeInt(args[1])
	if err != nil {
		return 0, false, game.CardSet{}, err
	}
	if hand, err = decodeCardSet(args[2]); err != nil {
		return 0, false, game.CardSet{}, err
	}
	return chooser, pass == 1, hand, nil
}

// EncodeCardAnswer is the line a seat writes back to CARD.
func EncodeCardAnswer(card game.Card) string {
	return SerializeInt(int32(card.Packed()))
}

// DecodeCardAnswer reads the line written by EncodeCardAnswer.
func DecodeCardAnswer(line string) (game.Card, error) {
	v, err := DeserializeInt(line)
	if err != nil {
		return game.Card{}, err
	}
	return game.CardOfPacked(game.PackedCard(uint32(v)))
}

// EncodeTrumpAnswer is the line a seat writes back to TRCH. A pass is -1.
func EncodeTrumpAnswer(trump game.Color, ok bool) string {
	if !ok {
		return SerializeInt(-1)
	}
	return SerializeInt(int32(trump))
}

// DecodeTrumpAnswer reports ok=false for a pass.
func DecodeTrumpAnswer(line string) (game.Color, bool, error) {
	v, err := DeserializeInt(line)
	if err != nil {
		return 0, false, err
	}
	if v == -1 {
		return 0, false, nil
	}
	c, err := decodeColor(line)
	if err != nil {
		return 0, false, err
	}
	return c, true, nil
}

func decodePlayer(s string) (game.PlayerID, error) {
	v, err := DeserializeInt(s)
	if err != nil {
		return 0, err
	}
	if v < 0 || v >= int32(game.PlayerCount) {
		return 0, fmt.Errorf("%w: player %d", ErrMalformed, v)
	}
	return game.PlayerID(v), nil
}

func decodeColor(s string) (game.Color, error) {
	v, err := DeserializeInt(s)
	if err != nil {
		return 0, err
	}
	if v < 0 || v >= int32(game.ColorCount) {
		return 0, fmt.Errorf("%w: color %d", ErrMalformed, v)
	}
	return game.Color(v), nil
}

func decodeCardSet(s string) (game.CardSet, error) {
	v, err := DeserializeLong(s)
	if err != nil {
		return game.CardSet{}, err
	}
	return game.CardSetOfPacked(game.PackedCardSet(v))
}
