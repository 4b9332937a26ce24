package remote

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync/atomic"

	"github.com/brensch/jass/game"
	"github.com/brensch/jass/wire"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// Server accepts game connections and plays each one with a fresh player
// from NewPlayer.
type Server struct {
	NewPlayer func() game.Player

	upgrader websocket.Upgrader
	games    atomic.Int64
}

// NewServer returns a Server calling newPlayer once per connection.
func NewServer(newPlayer func() game.Player) *Server {
	return &Server{
		NewPlayer: newPlayer,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Games is the number of games played to the end.
func (s *Server) Games() int64 { return s.games.Load() }

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Str("remote", r.RemoteAddr).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	log.Info().Str("remote", r.RemoteAddr).Msg("game host connected")
	if err := Serve(r.Context(), conn, s.NewPlayer()); err != nil {
		log.Error().Err(err).Str("remote", r.RemoteAddr).Msg("game aborted")
		return
	}
	s.games.Add(1)
	_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "game over"))
	log.Info().Str("remote", r.RemoteAddr).Int64("games", s.games.Load()).Msg("game finished")
}

// Serve reads commands off conn and forwards them to p until the winner is
// announced.
func Serve(ctx context.Context, conn *websocket.Conn, p game.Player) error {
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return fmt.Errorf("read command: %w", err)
		}
		m, err := wire.ParseMessage(string(data))
		if err != nil {
			return err
		}
		answer, err := dispatch(ctx, p, m)
		if errors.Is(err, errGameOver) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%s: %w", m.Command, err)
		}
		if answer == "" {
			continue
		}
		if err := conn.WriteMessage(websocket.TextMessage, []byte(answer)); err != nil {
			return fmt.Errorf("write %s answer: %w", m.Command, err)
		}
	}
}

var errGameOver = errors.New("game over")

func dispatch(ctx context.Context, p game.Player, m wire.Message) (string, error) {
	switch m.Command {
	case wire.Players:
		own, names, err := wire.DecodePlayers(m)
		if err != nil {
			return "", err
		}
		p.SetPlayers(own, names)
	case wire.Trump:
		trump, err := wire.DecodeTrump(m)
		if err != nil {
			return "", err
		}
		p.SetTrump(trump)
	case wire.Hand:
		hand, err := wire.DecodeHand(m)
		if err != nil {
			return "", err
		}
		p.UpdateHand(hand)
	case wire.Trick:
		trick, err := wire.DecodeTrick(m)
		if err != nil {
			return "", err
		}
		p.UpdateTrick(trick)
	case wire.Score:
		score, err := wire.DecodeScore(m)
		if err != nil {
			return "", err
		}
		p.UpdateScore(score)
	case wire.Winner:
		team, err := wire.DecodeWinner(m)
		if err != nil {
			return "", err
		}
		p.SetWinningTeam(team)
		return "", errGameOver
	case wire.Card:
		state, hand, err := wire.DecodeCardRequest(m)
		if err != nil {
			return "", err
		}
		card, err := p.CardToPlay(ctx, state, hand)
		if err != nil {
			return "", err
		}
		return wire.EncodeCardAnswer(card), nil
	case wire.ChooseTrump:
		chooser, canPass, hand, err := wire.DecodeTrumpRequest(m)
		if err != nil {
			return "", err
		}
		trump, ok, err := p.ChooseTrump(ctx, chooser, hand, canPass)
		if err != nil {
			return "", err
		}
		return wire.EncodeTrumpAnswer(trump, ok), nil
	}
	return "", nil
}
