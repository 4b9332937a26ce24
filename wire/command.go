package wire

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownCommand is returned for a command name outside Commands.
var ErrUnknownCommand = errors.New("wire: unknown command")

// Command is the four letter tag that starts every line.
type Command string

const (
	Players     Command = "PLRS"
	Trump       Command = "TRMP"
	Hand        Command = "HAND"
	Trick       Command = "TRCK"
	Card        Command = "CARD"
	Score       Command = "SCOR"
	Winner      Command = "WINR"
	ChooseTrump Command = "TRCH"
)

// Commands lists every command of the protocol.
var Commands = []Command{Players, Trump, Hand, Trick, Card, Score, Winner, ChooseTrump}

// Answered reports whether the receiving seat writes a line back.
func (c Command) Answered() bool {
	return c == Card || c == ChooseTrump
}

// ParseCommand maps a four-letter name to its Command.
func ParseCommand(s string) (Command, error) {
	for _, c := range Commands {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCommand, s)
}

// Message is one line: a command followed by space separated arguments.
type Message struct {
	Command Command
	Args    []string
}

func (m Message) String() string {
	if len(m.Args) == 0 {
		return string(m.Command)
	}
	return string(m.Command) + " " + strings.Join(m.Args, " ")
}

// ParseMessage splits a line into its command and space-separated arguments.
func ParseMessage(line string) (Message, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Message{}, fmt.Errorf("%w: empty line", ErrMalformed)
	}
	cmd, err := ParseCommand(fields[0])
	if err != nil {
		return Message{}, err
	}
	return Message{Command: cmd, Args: fields[1:]}, nil
}

func (m Message) args(n int) ([]string, error) {
	if len(m.Args) != n {
		return nil, fmt.Errorf("%w: %s wants %d arguments, got %d", ErrMalformed, m.Command, n, len(m.Args))
	}
	return m.Args, nil
}
