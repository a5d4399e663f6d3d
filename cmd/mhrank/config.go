package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/katalvlaran/mhrank/gameio"
	"github.com/katalvlaran/mhrank/mh"
)

// envPrefix namespaces every environment variable the command reads.
const envPrefix = "MHRANK_"

var errNoGames = errors.New("mhrank: no game source: set -games or -db")

// config is the resolved process configuration.
type config struct {
	Games    string
	Format   string
	Players  int
	Its      int
	Seed     int64
	Step     float64
	BurnIn   int
	Out      string
	Summary  string
	DB       string
	Import   bool
	Label    string
	Progress int
	Profile  string
	LogLevel slog.Level
}

// loadConfig resolves configuration from env defaults overridden by args.
// getenv is os.Getenv outside tests; .env has already been merged into the
// environment by then.
func loadConfig(args []string, getenv func(string) string, stderr io.Writer) (config, error) {
	env := envReader{getenv: getenv}
	cfg := config{
		Games:    env.getString("GAMES", ""),
		Format:   env.getString("FORMAT", ""),
		Players:  env.getInt("PLAYERS", 0),
		Its:      env.getInt("ITS", 1000),
		Seed:     env.getInt64("SEED", 0),
		Step:     env.getFloat("STEP", mh.DefaultStepScale),
		BurnIn:   env.getInt("BURN_IN", 0),
		Out:      env.getString("OUT", ""),
		Summary:  env.getString("SUMMARY", ""),
		DB:       env.getString("DB", ""),
		Import:   env.getBool("IMPORT", false),
		Label:    env.getString("LABEL", ""),
		Progress: env.getInt("PROGRESS", 0),
		Profile:  env.getString("PROFILE", ""),
	}
	level := env.getString("LOG_LEVEL", "info")
	if env.err != nil {
		return config{}, env.err
	}

	fs := flag.NewFlagSet("mhrank", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&cfg.Games, "games", cfg.Games, "game list file (csv or json)")
	fs.StringVar(&cfg.Format, "format", cfg.Format, "game list format; inferred from the file extension when empty")
	fs.IntVar(&cfg.Players, "players", cfg.Players, "number of players; 0 infers max index + 1")
	fs.IntVar(&cfg.Its, "its", cfg.Its, "number of sweeps")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "random seed; 0 selects the default seed")
	fs.Float64Var(&cfg.Step, "step", cfg.Step, "proposal standard deviation")
	fs.IntVar(&cfg.BurnIn, "burn-in", cfg.BurnIn, "sweeps discarded before summarizing")
	fs.StringVar(&cfg.Out, "out", cfg.Out, "sample matrix output (.csv or .json, - for stdout)")
	fs.StringVar(&cfg.Summary, "summary", cfg.Summary, "posterior summary JSON output (- for stdout)")
	fs.StringVar(&cfg.DB, "db", cfg.DB, "SQLite database for games and runs")
	fs.BoolVar(&cfg.Import, "import", cfg.Import, "append the -games file to -db before sampling")
	fs.StringVar(&cfg.Label, "label", cfg.Label, "label stored with the run")
	fs.IntVar(&cfg.Progress, "progress", cfg.Progress, "log progress every N sweeps; 0 disables")
	fs.StringVar(&cfg.Profile, "profile", cfg.Profile, "write a CPU profile into this directory")
	fs.StringVar(&level, "log-level", level, "debug, info, warn or error")
	if err := fs.Parse(args); err != nil {
		return config{}, err
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(level)); err != nil {
		return config{}, fmt.Errorf("mhrank: log level: %w", err)
	}
	if cfg.Games == "" && cfg.DB == "" {
		return config{}, errNoGames
	}
	if cfg.Format == "" && cfg.Games != "" {
		cfg.Format = formatOf(cfg.Games)
	}
	if cfg.Import && (cfg.Games == "" || cfg.DB == "") {
		return config{}, errors.New("mhrank: -import needs both -games and -db")
	}
	if cfg.Progress < 0 {
		return config{}, fmt.Errorf("mhrank: -progress must be >= 0, got %d", cfg.Progress)
	}

	return cfg, nil
}

func formatOf(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return gameio.FormatJSON
	}

	return gameio.FormatCSV
}

// envReader parses MHRANK_* variables, keeping the first error.
type envReader struct {
	getenv func(string) string
	err    error
}

func (e *envReader) lookup(key string) (string, bool) {
	v := strings.TrimSpace(e.getenv(envPrefix + key))
	return v, v != ""
}

func (e *envReader) fail(key, v string, err error) {
	if e.err == nil {
		e.err = fmt.Errorf("mhrank: %s%s=%q: %w", envPrefix, key, v, err)
	}
}

func (e *envReader) getString(key, def string) string {
	if v, ok := e.lookup(key); ok {
		return v
	}
	return def
}

func (e *envReader) getInt(key string, def int) int {
	v, ok := e.lookup(key)
	if !ok {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		e.fail(key, v, err)
		return def
	}
	return n
}

func (e *envReader) getInt64(key string, def int64) int64 {
	v, ok := e.lookup(key)
	if !ok {
		return def
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		e.fail(key, v, err)
		return def
	}
	return n
}

func (e *envReader) getFloat(key string, def float64) float64 {
	v, ok := e.lookup(key)
	if !ok {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		e.fail(key, v, err)
		return def
	}
	return f
}

func (e *envReader) getBool(key string, def bool) bool {
	v, ok := e.lookup(key)
	if !ok {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		e.fail(key, v, err)
		return def
	}
	return b
}
