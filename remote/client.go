package remote

import (
	"context"
	"fmt"
	"time"

	"github.com/brensch/jass/game"
	"github.com/brensch/jass/wire"
	"github.com/gorilla/websocket"
)

// Client is a game.Player whose decisions are made by a remote Server.
//
// Notifications cannot report failures, so the first transport error is
// kept and returned by the next CardToPlay or ChooseTrump.
type Client struct {
	conn *websocket.Conn
	err  error

	AnswerTimeout time.Duration
}

// Dial connects to the seat server at addr, see URL for the accepted forms.
func Dial(ctx context.Context, addr string) (*Client, error) {
	u, err := URL(addr)
	if err != nil {
		return nil, err
	}
	dialer := websocket.Dialer{HandshakeTimeout: MaxThinkTime}
	conn, _, err := dialer.DialContext(ctx, u, nil)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", u, err)
	}
	return &Client{conn: conn, AnswerTimeout: MaxThinkTime}, nil
}

func (c *Client) Close() error { return c.conn.Close() }

// Err is the first transport error seen, if any.
func (c *Client) Err() error { return c.err }

func (c *Client) send(m wire.Message) {
	if c.err != nil {
		return
	}
	if err := c.conn.WriteMessage(websocket.TextMessage, []byte(m.String())); err != nil {
		c.err = fmt.Errorf("send %s: %w", m.Command, err)
	}
}

func (c *Client) request(ctx context.Context, m wire.Message) (string, error) {
	c.send(m)
	if c.err != nil {
		return "", c.err
	}

	deadline := time.Now().Add(c.AnswerTimeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	if err := c.conn.SetReadDeadline(deadline); err != nil {
		return "", err
	}
	stop := context.AfterFunc(ctx, func() { _ = c.conn.SetReadDeadline(time.Now()) })
	defer stop()

	_, data, err := c.conn.ReadMessage()
	if err != nil {
		if ctx.Err() != nil {
			err = ctx.Err()
		}
		c.err = fmt.Errorf("await %s answer: %w", m.Command, err)
		return "", c.err
	}
	return string(data), nil
}

func (c *Client) SetPlayers(own game.PlayerID, names [game.PlayerCount]string) {
	c.send(wire.EncodePlayers(own, names))
}

func (c *Client) UpdateHand(hand game.CardSet) { c.send(wire.EncodeHand(hand)) }
func (c *Client) SetTrump(trump game.Color)    { c.send(wire.EncodeTrump(trump)) }
func (c *Client) UpdateTrick(trick game.Trick) { c.send(wire.EncodeTrick(trick)) }
func (c *Client) UpdateScore(score game.Score) { c.send(wire.EncodeScore(score)) }
func (c *Client) SetWinningTeam(t game.TeamID) { c.send(wire.EncodeWinner(t)) }

func (c *Client) CardToPlay(ctx context.Context, state game.TurnState, hand game.CardSet) (game.Card, error) {
	line, err := c.request(ctx, wire.EncodeCardRequest(state, hand))
	if err != nil {
		return game.Card{}, err
	}
	return wire.DecodeCardAnswer(line)
}

func (c *Client) ChooseTrump(ctx context.Context, chooser game.PlayerID, hand game.CardSet, canPass bool) (game.Color, bool, error) {
	line, err := c.request(ctx, wire.EncodeTrumpRequest(chooser, canPass, hand))
	if err != nil {
		return 0, false, err
	}
	return wire.DecodeTrumpAnswer(line)
}

var _ game.Player = (*Client)(nil)
