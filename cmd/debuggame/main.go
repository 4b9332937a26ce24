// Command debuggame plays a single seeded game and prints the table after
// every trick.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/brensch/jass/config"
	"github.com/brensch/jass/executor/selfplay"
	"github.com/brensch/jass/game"
	"github.com/brensch/jass/logging"
	"github.com/brensch/jass/store"
	"github.com/rs/zerolog/log"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	seed := flag.Uint64("seed", config.GetEnvUint64OrDefault("SEED", 1), "Game seed")
	p1 := flag.String("p1", "m::2000", "Seat spec of P1")
	p2 := flag.String("p2", "x", "Seat spec of P2")
	p3 := flag.String("p3", "m::2000", "Seat spec of P3")
	p4 := flag.String("p4", "x", "Seat spec of P4")
	trickDelay := flag.Duration("trick-delay", 0, "Pause after each trick")
	outDir := flag.String("out-dir", "", "If set, write the result row to a parquet file here")
	logLevel := flag.String("log-level", "info", "Log level; debug shows every seat notification")
	flag.Parse()

	if err := logging.Setup(os.Stderr, *logLevel, true); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	var players [game.PlayerCount]game.Player
	var names [game.PlayerCount]string
	for i, arg := range []string{*p1, *p2, *p3, *p4} {
		seat := game.PlayerID(i)
		spec, err := selfplay.ParsePlayerSpec(seat, arg)
		if err != nil {
			log.Fatal().Err(err).Msg("bad player spec")
		}
		p, err := spec.NewPlayer(ctx, seat, selfplay.GameSeed(*seed, int64(i)+1), selfplay.SeatOptions{Trees: 1})
		if err != nil {
			log.Fatal().Err(err).Stringer("seat", seat).Msg("building player")
		}
		players[seat], names[seat] = p, spec.Name
	}

	g, err := selfplay.NewGame(ctx, *seed, players, names)
	if err != nil {
		log.Fatal().Err(err).Msg("starting game")
	}
	log.Info().Str("id", g.ID.String()).Uint64("seed", *seed).Msg("game started")

	for !g.IsGameOver() {
		if err := g.AdvanceToEndOfNextTrick(ctx); err != nil {
			log.Fatal().Err(err).Msg("game aborted")
		}
		fmt.Print(selfplay.FormatTable(g))
		if *trickDelay > 0 {
			time.Sleep(*trickDelay)
		}
	}

	res := g.Result()
	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Printf("  %s wins %d to %d after %d turns (%d tricks)\n",
		res.Winner, res.Points[res.Winner], res.Points[res.Winner.Other()], res.Turns, res.Tricks)
	fmt.Println("═══════════════════════════════════════════════════════════════")

	if *outDir == "" {
		return
	}
	path, err := store.WriteResultsParquetAtomic(*outDir, []store.ResultRow{res.Row("debug")})
	if err != nil {
		log.Fatal().Err(err).Msg("writing result")
	}
	rows, err := store.ReadResults(path)
	if err != nil {
		log.Fatal().Err(err).Msg("reading result back")
	}
	log.Info().Str("path", path).Int("rows", len(rows)).Str("game", rows[0].GameID).Msg("result written")
}
