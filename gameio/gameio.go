// Package gameio reads game lists and writes sample matrices and posterior
// summaries.
//
// Input formats:
//
//	CSV   one "winner,loser" pair of player indices per row; an optional
//	      header row and "#" comment lines are skipped.
//	JSON  either a bare array of pairs, [[0,1],[2,0]], or an object
//	      {"num_players": 3, "games": [{"winner":0,"loser":1}, ...]}.
//
// Readers return the player count alongside the games: the explicit
// num_players when present, otherwise max index + 1.
package gameio

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/katalvlaran/mhrank/games"
	"github.com/katalvlaran/mhrank/matrix"
	"github.com/katalvlaran/mhrank/mh"
)

// Sentinel errors for decoding.
var (
	// ErrMalformedRecord is returned for a row or element that is not a
	// pair of non-negative integers.
	ErrMalformedRecord = errors.New("gameio: malformed game record")

	// ErrUnknownFormat is returned when the format name is not recognized.
	ErrUnknownFormat = errors.New("gameio: unknown format")
)

// Format names accepted by Read.
const (
	FormatCSV  = "csv"
	FormatJSON = "json"
)

// gameList is the object form of the JSON input.
type gameList struct {
	NumPlayers *int         `json:"num_players,omitempty"`
	Games      []games.Game `json:"games"`
}

// sampleDump is the JSON form of a sample matrix: one array per player.
type sampleDump struct {
	Players int         `json:"players"`
	Sweeps  int         `json:"sweeps"`
	Samples [][]float64 `json:"samples"`
}

// Read dispatches on format ("csv" or "json").
func Read(r io.Reader, format string) ([]games.Game, int, error) {
	switch strings.ToLower(format) {
	case FormatCSV:
		return ReadCSV(r)
	case FormatJSON:
		return ReadJSON(r)
	}

	return nil, 0, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// ReadCSV parses "winner,loser" rows. A first row in which neither field is
// an integer is treated as a header; any other bad row is an error.
//
// Complexity: O(G).
func ReadCSV(r io.Reader) ([]games.Game, int, error) {
	cr := csv.NewReader(r)
	cr.Comment = '#'
	cr.FieldsPerRecord = 2
	cr.TrimLeadingSpace = true

	var gs []games.Game
	for row := 0; ; row++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, 0, fmt.Errorf("%w: %v", ErrMalformedRecord, err)
		}
		if row == 0 && isHeader(rec) {
			continue
		}
		g, perr := parsePair(rec[0], rec[1])
		if perr != nil {
			line, _ := cr.FieldPos(0)
			return nil, 0, fmt.Errorf("line %d: %w", line, perr)
		}
		gs = append(gs, g)
	}

	return gs, games.MaxPlayer(gs) + 1, nil
}

func isHeader(rec []string) bool {
	for _, f := range rec {
		if _, err := strconv.Atoi(strings.TrimSpace(f)); err == nil {
			return false
		}
	}

	return true
}

func parsePair(ws, ls string) (games.Game, error) {
	w, err := strconv.Atoi(strings.TrimSpace(ws))
	if err != nil || w < 0 {
		return games.Game{}, fmt.Errorf("%w: winner %q", ErrMalformedRecord, ws)
	}
	l, err := strconv.Atoi(strings.TrimSpace(ls))
	if err != nil || l < 0 {
		return games.Game{}, fmt.Errorf("%w: loser %q", ErrMalformedRecord, ls)
	}

	return games.Game{Winner: w, Loser: l}, nil
}

// ReadJSON decodes either JSON input form.
func ReadJSON(r io.Reader) ([]games.Game, int, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, 0, fmt.Errorf("gameio: read: %w", err)
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil, 0, nil
	}

	if raw[0] == '[' {
		var pairs [][]int
		if err = json.Unmarshal(raw, &pairs); err != nil {
			return nil, 0, fmt.Errorf("%w: %v", ErrMalformedRecord, err)
		}
		gs := make([]games.Game, len(pairs))
		for k, p := range pairs {
			if len(p) != 2 || p[0] < 0 || p[1] < 0 {
				return nil, 0, fmt.Errorf("%w: element %d: %v", ErrMalformedRecord, k, p)
			}
			gs[k] = games.Game{Winner: p[0], Loser: p[1]}
		}
		return gs, games.MaxPlayer(gs) + 1, nil
	}

	var gl gameList
	if err = json.Unmarshal(raw, &gl); err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrMalformedRecord, err)
	}
	n := games.MaxPlayer(gl.Games) + 1
	if gl.NumPlayers != nil {
		n = *gl.NumPlayers
	}

	return gl.Games, n, nil
}

// WriteGamesJSON writes gs in the object form with an explicit player count.
func WriteGamesJSON(w io.Writer, numPlayers int, gs []games.Game) error {
	n := numPlayers
	return json.NewEncoder(w).Encode(gameList{NumPlayers: &n, Games: gs})
}

// WriteSamplesCSV writes one row per player, one column per sweep, with
// shortest round-trip float formatting.
func WriteSamplesCSV(w io.Writer, m *matrix.Dense) error {
	cw := csv.NewWriter(w)
	rows, cols := m.Shape()
	rec := make([]string, cols)
	for i := 0; i < rows; i++ {
		row, err := m.Row(i)
		if err != nil {
			return err
		}
		for j, v := range row {
			rec[j] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		if err = cw.Write(rec); err != nil {
			return fmt.Errorf("gameio: write row %d: %w", i, err)
		}
	}
	cw.Flush()

	return cw.Error()
}

// WriteSamplesJSON writes {"players":n,"sweeps":t,"samples":[[...],...]}.
func WriteSamplesJSON(w io.Writer, m *matrix.Dense) error {
	rows, cols := m.Shape()
	dump := sampleDump{Players: rows, Sweeps: cols, Samples: make([][]float64, rows)}
	for i := 0; i < rows; i++ {
		row, err := m.Row(i)
		if err != nil {
			return err
		}
		dump.Samples[i] = row
	}

	return json.NewEncoder(w).Encode(dump)
}

// ReadSamplesJSON is the inverse of WriteSamplesJSON.
func ReadSamplesJSON(r io.Reader) (*matrix.Dense, error) {
	var dump sampleDump
	if err := json.NewDecoder(r).Decode(&dump); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedRecord, err)
	}
	if len(dump.Samples) != dump.Players {
		return nil, fmt.Errorf("%w: %d rows for %d players", ErrMalformedRecord, len(dump.Samples), dump.Players)
	}
	m, err := matrix.NewDense(dump.Players, dump.Sweeps)
	if err != nil {
		return nil, err
	}
	for i, row := range dump.Samples {
		if len(row) != dump.Sweeps {
			return nil, fmt.Errorf("%w: row %d has %d sweeps, want %d", ErrMalformedRecord, i, len(row), dump.Sweeps)
		}
		for j, v := range row {
			if err = m.Set(i, j, v); err != nil {
				return nil, err
			}
		}
	}

	return m, nil
}

// WriteSummaryJSON writes posterior summaries as an indented JSON array.
func WriteSummaryJSON(w io.Writer, sums []mh.PlayerSummary) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(sums)
}
