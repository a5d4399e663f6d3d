// Command mhrank samples player skills from a list of game outcomes with
// single-site Metropolis-Hastings under the probit model.
//
//	mhrank -games games.csv -its 1000 -burn-in 100 -out samples.csv -summary summary.json
//
// Flags override MHRANK_* environment variables, which may come from a .env
// file in the working directory.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/profile"

	"github.com/katalvlaran/mhrank/gameio"
	"github.com/katalvlaran/mhrank/games"
	"github.com/katalvlaran/mhrank/mh"
	"github.com/katalvlaran/mhrank/store"
)

func main() {
	// a missing .env is fine
	_ = godotenv.Load()

	os.Exit(realMain(os.Args[1:], os.Getenv, os.Stdout, os.Stderr))
}

// realMain returns the process exit code so deferred cleanup, including the
// CPU profile flush, runs before main exits.
func realMain(args []string, getenv func(string) string, stdout, stderr io.Writer) int {
	cfg, err := loadConfig(args, getenv, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))
	if cfg.Profile != "" {
		prof := profile.Start(profile.CPUProfile, profile.ProfilePath(cfg.Profile), profile.Quiet, profile.NoShutdownHook)
		defer prof.Stop()
		logger.Info("cpu profiling", "dir", cfg.Profile)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err = run(ctx, cfg, logger, stdout); err != nil {
		logger.Error("mhrank failed", "err", err)
		return 1
	}

	return 0
}

// run loads games, samples, and writes every requested output.
func run(ctx context.Context, cfg config, logger *slog.Logger, stdout io.Writer) error {
	var db *store.Store
	if cfg.DB != "" {
		var err error
		if db, err = store.Open(ctx, cfg.DB); err != nil {
			return err
		}
		defer db.Close()
	}

	gs, inferred, err := loadGames(ctx, cfg, db, logger)
	if err != nil {
		return err
	}
	players := cfg.Players
	if players == 0 {
		players = inferred
	}
	logger.Info("games loaded", "games", len(gs), "players", players)

	opts := []mh.Option{mh.WithSeed(cfg.Seed), mh.WithStepScale(cfg.Step)}
	if cfg.Progress > 0 {
		opts = append(opts, mh.WithOnSweep(progressLogger(logger, cfg.Progress, cfg.Its)))
	}

	start := time.Now()
	res, err := mh.Sample(gs, players, cfg.Its, opts...)
	if err != nil {
		return err
	}
	if rate, ok := res.AcceptanceRate(); ok {
		logger.Info("sampling done", "sweeps", cfg.Its, "acceptance_rate", fmt.Sprintf("%.3f", rate),
			"elapsed", time.Since(start).Round(time.Millisecond))
	} else {
		logger.Warn("sampling done, no updates performed", "sweeps", cfg.Its, "players", players)
	}

	if cfg.Out != "" {
		if err = writeTo(cfg.Out, stdout, func(w io.Writer) error {
			if formatOf(cfg.Out) == gameio.FormatJSON {
				return gameio.WriteSamplesJSON(w, res.Samples)
			}
			return gameio.WriteSamplesCSV(w, res.Samples)
		}); err != nil {
			return fmt.Errorf("mhrank: write samples: %w", err)
		}
		logger.Debug("samples written", "path", cfg.Out)
	}

	if cfg.Summary != "" {
		sums, serr := mh.Summarize(res.Samples, cfg.BurnIn)
		if serr != nil {
			return fmt.Errorf("mhrank: summarize: %w", serr)
		}
		ranked := mh.Rank(sums)
		if err = writeTo(cfg.Summary, stdout, func(w io.Writer) error {
			return gameio.WriteSummaryJSON(w, ranked)
		}); err != nil {
			return fmt.Errorf("mhrank: write summary: %w", err)
		}
		if len(ranked) > 0 {
			logger.Info("top player", "player", ranked[0].Player, "mean", ranked[0].Mean)
		}
	}

	if db != nil {
		id, serr := db.SaveRun(ctx, store.RunMeta{Label: cfg.Label, Source: sourceName(cfg)}, res)
		if serr != nil {
			return serr
		}
		logger.Info("run saved", "run_id", id, "db", cfg.DB)
	}

	return nil
}

// loadGames reads the -games file, optionally appending it to the store,
// or falls back to the games already in the store.
func loadGames(ctx context.Context, cfg config, db *store.Store, logger *slog.Logger) ([]games.Game, int, error) {
	if cfg.Games == "" {
		gs, n, err := db.LoadGames(ctx)
		if err != nil {
			return nil, 0, err
		}
		logger.Debug("games read from database", "db", cfg.DB)
		return gs, n, nil
	}

	f, err := os.Open(cfg.Games)
	if err != nil {
		return nil, 0, fmt.Errorf("mhrank: %w", err)
	}
	defer f.Close()

	gs, n, err := gameio.Read(f, cfg.Format)
	if err != nil {
		return nil, 0, fmt.Errorf("mhrank: %s: %w", cfg.Games, err)
	}
	if cfg.Import {
		if err = db.InsertGames(ctx, gs); err != nil {
			return nil, 0, err
		}
		logger.Info("games imported", "games", len(gs), "db", cfg.DB)
	}

	return gs, n, nil
}

// progressLogger returns a sweep hook that logs every `every` sweeps and
// after the last one.
func progressLogger(logger *slog.Logger, every, its int) func(sweep, accepted, total int) {
	return func(sweep, accepted, total int) {
		done := sweep + 1
		if done%every != 0 && done != its {
			return
		}
		rate := 0.0
		if total > 0 {
			rate = float64(accepted) / float64(total)
		}
		logger.Info("progress", "sweep", done, "of", its, "acceptance_rate", fmt.Sprintf("%.3f", rate))
	}
}

// writeTo runs write against stdout for "-" or a freshly created file.
func writeTo(path string, stdout io.Writer, write func(io.Writer) error) error {
	if path == "-" {
		return write(stdout)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err = write(f); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}

func sourceName(cfg config) string {
	if cfg.Games == "" {
		return "db:" + filepath.Base(cfg.DB)
	}

	return cfg.Games
}
