// Command remoteplayer serves one seat over a websocket so a game host can
// seat it with an r: player spec.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/brensch/jass/config"
	"github.com/brensch/jass/executor/mcts"
	"github.com/brensch/jass/game"
	"github.com/brensch/jass/logging"
	"github.com/brensch/jass/player"
	"github.com/brensch/jass/remote"
	"github.com/rs/zerolog/log"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	listen := flag.String("listen", config.GetEnvOrDefault("LISTEN", fmt.Sprintf(":%d", remote.DefaultPort)), "Listen address")
	iterations := flag.Int("iterations", config.GetEnvIntOrDefault("ITERATIONS", mcts.DefaultIterations), "Search iterations per card")
	trees := flag.Int("trees", config.GetEnvIntOrDefault("TREES", runtime.NumCPU()), "Search trees per card")
	minThink := flag.Duration("min-think", config.GetEnvDurationOrDefault("MIN_THINK", 2*time.Second), "Minimum time per card")
	seed := flag.Uint64("seed", config.GetEnvUint64OrDefault("SEED", uint64(time.Now().UnixNano())), "Seed of the first game's player")
	logLevel := flag.String("log-level", config.GetEnvOrDefault("LOG_LEVEL", "info"), "Log level")
	verbose := flag.Bool("verbose", config.GetEnvBoolOrDefault("VERBOSE", false), "Log every notification the seat receives")
	flag.Parse()

	if err := logging.Setup(os.Stderr, *logLevel, true); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	// The seat id is only known once PLRS arrives, so the searcher is
	// built lazily by the seat wrapper.
	var games atomic.Uint64
	newPlayer := func() game.Player {
		s := &seat{
			seed:     *seed + games.Add(1),
			opts:     []mcts.Option{mcts.WithIterations(*iterations), mcts.WithTrees(*trees)},
			minThink: *minThink,
		}
		if *verbose {
			return player.NewLogging(s, log.Logger)
		}
		return s
	}
	if _, err := mcts.NewParallelPlayer(game.Player1, 0, mcts.WithIterations(*iterations), mcts.WithTrees(*trees)); err != nil {
		log.Fatal().Err(err).Msg("invalid search configuration")
	}

	srv := remote.NewServer(newPlayer)
	mux := http.NewServeMux()
	mux.Handle(remote.Path, srv)

	httpSrv := &http.Server{
		Addr:              *listen,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = httpSrv.Shutdown(shutdownCtx)
	}()

	log.Info().Str("listen", *listen).Str("path", remote.Path).Int("iterations", *iterations).Msg("seat server listening")
	if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("seat server failed")
	}
	log.Info().Int64("games", srv.Games()).Msg("seat server stopped")
}
