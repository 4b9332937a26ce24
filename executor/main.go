// Command executor runs an arena of Jass games between configurable seats
// and writes one Parquet row per finished game.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/brensch/jass/config"
	"github.com/brensch/jass/executor/selfplay"
	"github.com/brensch/jass/game"
	"github.com/brensch/jass/logging"
	"github.com/brensch/jass/store"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"
)

// GameUpdate is sent to the dashboard for every finished game.
type GameUpdate struct {
	Result selfplay.Result
}

type model struct {
	arena       *selfplay.Arena
	stats       selfplay.Stats
	startTime   time.Time
	recentGames []string
	updates     chan GameUpdate
}

func initialModel(arena *selfplay.Arena, updates chan GameUpdate) model {
	return model{
		arena:     arena,
		startTime: time.Now(),
		updates:   updates,
	}
}

// TickMsg refreshes the dashboard.
type TickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(time.Millisecond*200, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func (m model) Init() tea.Cmd {
	return tea.Batch(waitForUpdate(m.updates), tickCmd())
}

func waitForUpdate(updates chan GameUpdate) tea.Cmd {
	return func() tea.Msg {
		u, ok := <-updates
		if !ok {
			return tea.Quit()
		}
		return u
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "q" || msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	case TickMsg:
		m.stats = m.arena.Stats()
		return m, tickCmd()
	case GameUpdate:
		r := msg.Result
		line := fmt.Sprintf("%s  winner %s  %4d : %-4d  turns %d  %s",
			r.ID.String()[:8], r.Winner, r.Points[game.Team1], r.Points[game.Team2], r.Turns, r.Duration.Round(time.Millisecond))
		m.recentGames = append([]string{line}, m.recentGames...)
		if len(m.recentGames) > 10 {
			m.recentGames = m.recentGames[:10]
		}
		return m, waitForUpdate(m.updates)
	}
	return m, nil
}

func (m model) View() string {
	duration := time.Since(m.startTime)
	gamesPerMin, cardsPerSec := 0.0, 0.0
	if duration.Seconds() >= 1 {
		gamesPerMin = float64(m.stats.Games) / duration.Minutes()
		cardsPerSec = float64(m.stats.Cards) / duration.Seconds()
	}

	s := fmt.Sprintf("Games Played:   %d (failed %d)\n", m.stats.Games, m.stats.Failed)
	s += fmt.Sprintf("Team 1 Wins:    %d\n", m.stats.Wins[game.Team1])
	s += fmt.Sprintf("Team 2 Wins:    %d\n", m.stats.Wins[game.Team2])
	s += fmt.Sprintf("Cards Played:   %d\n", m.stats.Cards)
	s += fmt.Sprintf("Duration:       %s\n", duration.Round(time.Second))
	s += fmt.Sprintf("Games/Min:      %.2f\n", gamesPerMin)
	s += fmt.Sprintf("Cards/Sec:      %.2f\n\n", cardsPerSec)

	s += "Recent Games:\n"
	for _, g := range m.recentGames {
		s += g + "\n"
	}

	s += "\nPress q to quit.\n"
	return s
}

func main() {
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	var specArgs [game.PlayerCount]*string
	defaults := [game.PlayerCount]string{"s", "x", "s", "x"}
	for _, p := range game.AllPlayers {
		key := fmt.Sprintf("P%d", p+1)
		specArgs[p] = flag.String(fmt.Sprintf("p%d", p+1), config.GetEnvOrDefault(key, defaults[p]),
			"Seat spec: s[:name][:iterations], m[:name][:iterations], r[:name][:addr] or x[:name]")
	}
	seed := flag.Uint64("seed", config.GetEnvUint64OrDefault("SEED", uint64(time.Now().UnixNano())), "Arena seed; game n uses a seed derived from it")
	workers := flag.Int("workers", config.GetEnvIntOrDefault("WORKERS", 2), "Number of games played at once")
	maxGames := flag.Int64("max-games", int64(config.GetEnvIntOrDefault("MAX_GAMES", 0)), "If > 0, stop after this many games")
	trees := flag.Int("trees", config.GetEnvIntOrDefault("TREES", runtime.NumCPU()), "Search trees per decision for parallel seats")
	minThink := flag.Duration("min-think", config.GetEnvDurationOrDefault("MIN_THINK", 0), "Minimum time a search seat takes per card")
	outDir := flag.String("out-dir", config.GetEnvOrDefault("OUT_DIR", "data/results"), "Output directory for result parquet batches")
	gamesPerFlush := flag.Int("games-per-flush", config.GetEnvIntOrDefault("GAMES_PER_FLUSH", 50), "Number of games per parquet file")
	useTUI := flag.Bool("tui", config.GetEnvBoolOrDefault("TUI", true), "Show the dashboard; logs go to -log-file")
	logFile := flag.String("log-file", config.GetEnvOrDefault("LOG_FILE", "arena.log"), "Log file while the dashboard is shown")
	logLevel := flag.String("log-level", config.GetEnvOrDefault("LOG_LEVEL", "info"), "Log level")
	logSeats := flag.Bool("log-seats", config.GetEnvBoolOrDefault("LOG_SEATS", false), "Log every seat notification at debug level")
	flag.Parse()

	var logOut io.Writer = os.Stderr
	if *useTUI {
		f, err := os.OpenFile(*logFile, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "open log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		logOut = f
	}
	if err := logging.Setup(logOut, *logLevel, !*useTUI); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	var specs [game.PlayerCount]selfplay.PlayerSpec
	for _, p := range game.AllPlayers {
		spec, err := selfplay.ParsePlayerSpec(p, *specArgs[p])
		if err != nil {
			log.Fatal().Err(err).Stringer("seat", p).Msg("bad player spec")
		}
		specs[p] = spec
	}

	arena, err := selfplay.NewArena(selfplay.ArenaConfig{
		Specs:    specs,
		Workers:  *workers,
		MaxGames: *maxGames,
		Seed:     *seed,
		Seats:    selfplay.SeatOptions{MinThink: *minThink, Trees: *trees},
		LogSeats: *logSeats,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("invalid arena configuration")
	}

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(sigCtx)
	defer cancel()

	log.Info().
		Uint64("seed", *seed).
		Int("workers", *workers).
		Int64("max_games", *maxGames).
		Str("p1", specs[game.Player1].String()).
		Str("p2", specs[game.Player2].String()).
		Str("p3", specs[game.Player3].String()).
		Str("p4", specs[game.Player4].String()).
		Msg("starting arena")

	results := make(chan selfplay.Result, *workers)
	rows := make(chan store.ResultRow, (*workers)*4)
	updates := make(chan GameUpdate, *workers)

	writerDone := make(chan struct{})
	go func() {
		parquetWriterLoop(*outDir, *gamesPerFlush, rows)
		close(writerDone)
	}()

	go func() {
		defer close(rows)
		defer close(updates)
		for r := range results {
			rows <- r.Row("arena")
			// Avoid blocking the writer if the UI loop stops consuming.
			select {
			case updates <- GameUpdate{Result: r}:
			default:
			}
		}
	}()

	arenaDone := make(chan error, 1)
	go func() {
		err := arena.Run(ctx, results)
		close(results)
		arenaDone <- err
	}()

	if *useTUI {
		p := tea.NewProgram(initialModel(arena, updates), tea.WithAltScreen(), tea.WithContext(ctx))
		if _, err := p.Run(); err != nil && ctx.Err() == nil {
			log.Error().Err(err).Msg("dashboard stopped")
		}
		cancel()
	} else {
		go func() {
			for range updates {
			}
		}()
		ticker := time.NewTicker(10 * time.Second)
		defer ticker.Stop()
		startTime := time.Now()
	loop:
		for {
			select {
			case <-ctx.Done():
				break loop
			case err := <-arenaDone:
				arenaDone <- err
				break loop
			case <-ticker.C:
				st := arena.Stats()
				log.Info().
					Int64("games", st.Games).
					Int64("failed", st.Failed).
					Int64("team1_wins", st.Wins[game.Team1]).
					Int64("team2_wins", st.Wins[game.Team2]).
					Float64("cards_per_sec", float64(st.Cards)/time.Since(startTime).Seconds()).
					Msg("stats")
			}
		}
	}

	log.Info().Msg("waiting for running games to finish")
	if err := <-arenaDone; err != nil {
		log.Error().Err(err).Msg("arena stopped")
	}
	<-writerDone
	st := arena.Stats()
	log.Info().Int64("games", st.Games).Int64("failed", st.Failed).Msg("shutdown complete")
}

func parquetWriterLoop(outDir string, gamesPerFlush int, in <-chan store.ResultRow) {
	if gamesPerFlush <= 0 {
		gamesPerFlush = 50
	}

	var w *store.BatchWriter
	flush := func(reason string) {
		if w == nil {
			return
		}
		outPath, n, err := w.Finalize()
		w = nil
		if err != nil {
			log.Error().Err(err).Str("reason", reason).Msg("parquet flush failed")
			return
		}
		if n > 0 {
			log.Info().Str("path", outPath).Int("games", n).Str("reason", reason).Msg("parquet flush ok")
		}
	}

	for row := range in {
		if w == nil {
			var err error
			if w, err = store.NewBatchWriter(outDir); err != nil {
				log.Error().Err(err).Msg("open parquet batch")
				continue
			}
		}
		if err := w.Write(row); err != nil {
			log.Error().Err(err).Str("game", row.GameID).Msg("parquet write failed")
			continue
		}
		if w.Rows() >= gamesPerFlush {
			flush("count")
		}
	}
	flush("final")
}
