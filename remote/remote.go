// Package remote lets a seat be played from another process. The process
// holding the player runs a Server; the game host dials it with a Client,
// which then stands in for the player at the table.
package remote

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultPort = 5108
	Path        = "/game"

	// MaxThinkTime bounds how long the host waits for an answer.
	MaxThinkTime = 10 * time.Second
)

// URL turns a player spec address ("host", "host:port" or a full ws URL)
// into the websocket URL of the seat server.
func URL(addr string) (string, error) {
	if strings.Contains(addr, "://") {
		u, err := url.Parse(addr)
		if err != nil {
			return "", fmt.Errorf("parse seat url %q: %w", addr, err)
		}
		if u.Path == "" {
			u.Path = Path
		}
		return u.String(), nil
	}
	if _, _, err := net.SplitHostPort(addr); err != nil {
		addr = net.JoinHostPort(addr, strconv.Itoa(DefaultPort))
	}
	return (&url.URL{Scheme: "ws", Host: addr, Path: Path}).String(), nil
}
