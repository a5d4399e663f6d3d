// Package games defines game records, neighbor records and error sentinels.
package games

import "errors"

// Sentinel errors for index construction.
var (
	// ErrInvalidPlayerCount is returned when the player count is negative.
	ErrInvalidPlayerCount = errors.New("games: player count must be >= 0")

	// ErrPlayerOutOfRange is returned when a game references an index outside [0, n).
	ErrPlayerOutOfRange = errors.New("games: player index out of range")
)

// Sign values stored in Neighbor.Sign.
const (
	Win  = 1.0
	Loss = -1.0
)

// Game is one observed outcome: Winner was strictly preferred over Loser.
type Game struct {
	Winner int `json:"winner"`
	Loser  int `json:"loser"`
}

// Neighbor is one entry of a player's game list: the opponent faced and the
// outcome sign from this player's point of view (Win or Loss).
//
// Sign is kept as float64 so the sampler multiplies it straight into the
// skill difference without a conversion in the hot loop.
type Neighbor struct {
	Opponent int
	Sign     float64
}

// MaxPlayer returns the largest player index referenced by gs, or -1 when gs
// is empty. MaxPlayer(gs)+1 is the smallest valid player count for gs.
//
// Complexity: O(G).
func MaxPlayer(gs []Game) int {
	hi := -1
	for _, g := range gs {
		if g.Winner > hi {
			hi = g.Winner
		}
		if g.Loser > hi {
			hi = g.Loser
		}
	}

	return hi
}
