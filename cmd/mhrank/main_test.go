package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/mhrank/gameio"
	"github.com/katalvlaran/mhrank/mh"
	"github.com/katalvlaran/mhrank/store"
)

func envMap(kv map[string]string) func(string) string {
	return func(k string) string { return kv[k] }
}

func TestLoadConfig_EnvDefaultsAndFlagOverride(t *testing.T) {
	env := envMap(map[string]string{
		"MHRANK_GAMES":     "games.json",
		"MHRANK_ITS":       "50",
		"MHRANK_SEED":      "7",
		"MHRANK_STEP":      "0.3",
		"MHRANK_LOG_LEVEL": "debug",
	})
	cfg, err := loadConfig([]string{"-its", "20", "-burn-in", "5"}, env, io.Discard)
	require.NoError(t, err)

	assert.Equal(t, "games.json", cfg.Games)
	assert.Equal(t, gameio.FormatJSON, cfg.Format)
	assert.Equal(t, 20, cfg.Its)
	assert.Equal(t, 5, cfg.BurnIn)
	assert.Equal(t, int64(7), cfg.Seed)
	assert.Equal(t, 0.3, cfg.Step)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := loadConfig([]string{"-games", "g.csv"}, envMap(nil), io.Discard)
	require.NoError(t, err)
	assert.Equal(t, gameio.FormatCSV, cfg.Format)
	assert.Equal(t, 1000, cfg.Its)
	assert.Equal(t, mh.DefaultStepScale, cfg.Step)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
}

func TestLoadConfig_Errors(t *testing.T) {
	_, err := loadConfig(nil, envMap(nil), io.Discard)
	assert.ErrorIs(t, err, errNoGames)

	_, err = loadConfig([]string{"-games", "g.csv"}, envMap(map[string]string{"MHRANK_ITS": "many"}), io.Discard)
	assert.ErrorContains(t, err, "MHRANK_ITS")

	_, err = loadConfig([]string{"-games", "g.csv", "-log-level", "loud"}, envMap(nil), io.Discard)
	assert.Error(t, err)

	_, err = loadConfig([]string{"-games", "g.csv", "-import"}, envMap(nil), io.Discard)
	assert.Error(t, err)

	_, err = loadConfig([]string{"-games", "g.csv", "-progress", "-1"}, envMap(nil), io.Discard)
	assert.Error(t, err)
}

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))

	return p
}

func quietLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestRun_FileToOutputs(t *testing.T) {
	dir := t.TempDir()
	gamesPath := writeFile(t, dir, "games.csv", "winner,loser\n0,1\n0,2\n1,2\n0,1\n")
	cfg := config{
		Games:    gamesPath,
		Format:   gameio.FormatCSV,
		Its:      200,
		Seed:     3,
		Step:     mh.DefaultStepScale,
		BurnIn:   50,
		Out:      filepath.Join(dir, "out", "samples.csv"),
		Summary:  filepath.Join(dir, "summary.json"),
		Progress: 100,
	}

	var logs bytes.Buffer
	require.NoError(t, run(context.Background(), cfg, quietLogger(&logs), io.Discard))

	samples, err := os.ReadFile(cfg.Out)
	require.NoError(t, err)
	assert.Equal(t, 3, bytes.Count(samples, []byte("\n")), "one row per player")

	raw, err := os.ReadFile(cfg.Summary)
	require.NoError(t, err)
	var sums []mh.PlayerSummary
	require.NoError(t, json.Unmarshal(raw, &sums))
	require.Len(t, sums, 3)
	assert.Equal(t, 0, sums[0].Player, "unbeaten player ranks first")

	assert.Contains(t, logs.String(), "acceptance_rate")
	assert.Contains(t, logs.String(), "sweep=100")
	assert.Contains(t, logs.String(), "sweep=200")
}

func TestRun_ZeroSweepsLogsNoUpdates(t *testing.T) {
	dir := t.TempDir()
	cfg := config{
		Games:  writeFile(t, dir, "games.json", `[[0,1]]`),
		Format: gameio.FormatJSON,
		Its:    0,
		Step:   mh.DefaultStepScale,
		Out:    "-",
	}

	var logs, stdout bytes.Buffer
	require.NoError(t, run(context.Background(), cfg, quietLogger(&logs), &stdout))
	assert.Contains(t, logs.String(), "no updates performed")
	assert.Equal(t, "\n\n", stdout.String())
}

func TestRun_ImportThenSampleFromDB(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "runs.db")
	var logs bytes.Buffer

	first := config{
		Games:  writeFile(t, dir, "games.csv", "1,0\n2,1\n"),
		Format: gameio.FormatCSV,
		DB:     dbPath,
		Import: true,
		Its:    10,
		Step:   mh.DefaultStepScale,
		Label:  "import",
	}
	require.NoError(t, run(ctx, first, quietLogger(&logs), io.Discard))

	second := config{DB: dbPath, Its: 15, Seed: 2, Step: mh.DefaultStepScale, Label: "replay"}
	require.NoError(t, run(ctx, second, quietLogger(&logs), io.Discard))

	s, err := store.Open(ctx, dbPath)
	require.NoError(t, err)
	defer s.Close()

	gs, n, err := s.LoadGames(ctx)
	require.NoError(t, err)
	assert.Len(t, gs, 2)
	assert.Equal(t, 3, n)

	runs, err := s.ListRuns(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	labels := []string{runs[0].Label, runs[1].Label}
	assert.ElementsMatch(t, []string{"import", "replay"}, labels)
}

func TestRealMain_ExitCodes(t *testing.T) {
	dir := t.TempDir()
	var stdout, stderr bytes.Buffer

	assert.Equal(t, 0, realMain([]string{"-h"}, envMap(nil), &stdout, &stderr))
	assert.Equal(t, 1, realMain(nil, envMap(nil), &stdout, &stderr))

	games := writeFile(t, dir, "g.csv", "0,1\n")
	assert.Equal(t, 0, realMain([]string{"-games", games, "-its", "5", "-out", "-"}, envMap(nil), &stdout, &stderr))
	assert.Equal(t, 2, bytes.Count(stdout.Bytes(), []byte("\n")), "one sample row per player")

	stderr.Reset()
	code := realMain([]string{"-games", games, "-players", "1", "-its", "5"}, envMap(nil), &stdout, &stderr)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "mhrank failed")
}

// TestRealMain_ProfileWrittenOnFailure checks the CPU profile is flushed even
// when the run fails.
func TestRealMain_ProfileWrittenOnFailure(t *testing.T) {
	dir := t.TempDir()
	profDir := filepath.Join(dir, "prof")
	games := writeFile(t, dir, "g.csv", "0,1\n")
	var stdout, stderr bytes.Buffer

	code := realMain([]string{"-games", games, "-players", "1", "-its", "5", "-profile", profDir},
		envMap(nil), &stdout, &stderr)
	require.Equal(t, 1, code)
	assert.FileExists(t, filepath.Join(profDir, "cpu.pprof"))
}

func TestRun_Errors(t *testing.T) {
	dir := t.TempDir()
	var logs bytes.Buffer

	missing := config{Games: filepath.Join(dir, "nope.csv"), Format: gameio.FormatCSV, Its: 1, Step: 0.6}
	assert.Error(t, run(context.Background(), missing, quietLogger(&logs), io.Discard))

	tooFew := config{
		Games:   writeFile(t, dir, "g.csv", "0,3\n"),
		Format:  gameio.FormatCSV,
		Players: 2,
		Its:     1,
		Step:    0.6,
	}
	assert.Error(t, run(context.Background(), tooFew, quietLogger(&logs), io.Discard))

	badBurn := config{
		Games:   writeFile(t, dir, "h.csv", "0,1\n"),
		Format:  gameio.FormatCSV,
		Its:     5,
		Step:    0.6,
		BurnIn:  5,
		Summary: "-",
	}
	assert.ErrorIs(t, run(context.Background(), badBurn, quietLogger(&logs), io.Discard), mh.ErrBadBurnIn)
}
