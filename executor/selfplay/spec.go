package selfplay

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/brensch/jass/executor/mcts"
	"github.com/brensch/jass/game"
	"github.com/brensch/jass/player"
	"github.com/brensch/jass/remote"
	"github.com/brensch/jass/wire"
)

// DefaultNames are used for seats whose spec gives no name.
var DefaultNames = [game.PlayerCount]string{"Aline", "Bastien", "Colette", "David"}

const (
	DefaultRemoteHost = "localhost"
	DefaultMinThink   = 2 * time.Second
)

// Kind is the first field of a player spec.
type Kind string

const (
	Parallel Kind = "s" // s[:name][:iterations] parallel MCTS
	Single   Kind = "m" // m[:name][:iterations] single tree MCTS
	Remote   Kind = "r" // r[:name][:addr] seat served by a remote process
	Uniform  Kind = "x" // x[:name] uniformly random legal cards
)

// PlayerSpec describes how to build the player of one seat.
type PlayerSpec struct {
	Kind       Kind
	Name       string
	Iterations int
	Addr       string
}

func (s PlayerSpec) String() string {
	switch s.Kind {
	case Parallel, Single:
		return fmt.Sprintf("%s:%s:%d", s.Kind, s.Name, s.Iterations)
	case Remote:
		return fmt.Sprintf("%s:%s:%s", s.Kind, s.Name, s.Addr)
	}
	return fmt.Sprintf("%s:%s", s.Kind, s.Name)
}

// ParsePlayerSpec reads a spec such as "s:Aline:20000". Omitted or empty
// names fall back to the seat's default name.
func ParsePlayerSpec(seat game.PlayerID, s string) (PlayerSpec, error) {
	fields := wire.Split(':', s)
	spec := PlayerSpec{Kind: Kind(fields[0]), Name: DefaultNames[seat]}
	if len(fields) > 1 && fields[1] != "" {
		spec.Name = fields[1]
	}

	maxFields := 3
	switch spec.Kind {
	case Parallel, Single:
		spec.Iterations = mcts.DefaultIterations
		if len(fields) == 3 {
			n, err := strconv.Atoi(fields[2])
			if err != nil {
				return PlayerSpec{}, fmt.Errorf("player spec %q: iterations: %w", s, err)
			}
			if n < mcts.MinIterations {
				return PlayerSpec{}, fmt.Errorf("player spec %q: %w", s, mcts.ErrTooFewIterations)
			}
			spec.Iterations = n
		}
	case Remote:
		// Split on ':' also cuts host:port, so the address is the rest of the spec.
		spec.Addr = DefaultRemoteHost
		if len(fields) >= 3 {
			spec.Addr = strings.Join(fields[2:], ":")
		}
		maxFields = len(fields)
	case Uniform:
		maxFields = 2
	default:
		return PlayerSpec{}, fmt.Errorf("player spec %q: unknown kind %q, want s, m, r or x", s, spec.Kind)
	}
	if len(fields) > maxFields {
		return PlayerSpec{}, fmt.Errorf("player spec %q: too many fields", s)
	}
	return spec, nil
}

// SeatOptions tune the players built from specs.
type SeatOptions struct {
	// MinThink paces search players; zero plays as fast as possible.
	MinThink time.Duration
	// Trees per decision for parallel players; zero means one per CPU.
	Trees int
}

// NewPlayer builds the player of seat. Remote players hold a connection and
// implement io.Closer.
func (s PlayerSpec) NewPlayer(ctx context.Context, seat game.PlayerID, seed uint64, opts SeatOptions) (game.Player, error) {
	var p game.Player
	switch s.Kind {
	case Parallel:
		mopts := []mcts.Option{mcts.WithIterations(s.Iterations)}
		if opts.Trees > 0 {
			mopts = append(mopts, mcts.WithTrees(opts.Trees))
		}
		pp, err := mcts.NewParallelPlayer(seat, seed, mopts...)
		if err != nil {
			return nil, err
		}
		p = pp
	case Single:
		sp, err := mcts.NewPlayer(seat, seed, mcts.WithIterations(s.Iterations))
		if err != nil {
			return nil, err
		}
		p = sp
	case Remote:
		c, err := remote.Dial(ctx, s.Addr)
		if err != nil {
			return nil, err
		}
		return c, nil
	case Uniform:
		return player.NewRandom(seed), nil
	default:
		return nil, fmt.Errorf("unknown player kind %q", s.Kind)
	}
	if opts.MinThink > 0 {
		p = player.NewPaced(p, opts.MinThink)
	}
	return p, nil
}
