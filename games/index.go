package games

import "fmt"

// Index is the immutable per-player neighbor index in CSR layout.
//
// Layout:
//
//	offsets has length n+1 with offsets[0]=0 and offsets[n]=len(arena).
//	Player i's records are arena[offsets[i]:offsets[i+1]], in input order.
type Index struct {
	offsets []int      // prefix sums of per-player degrees
	arena   []Neighbor // flat neighbor records, 2 per game
}

// Validate checks gs against a player count of n without building anything.
//
// Errors:
//   - ErrInvalidPlayerCount if n < 0.
//   - ErrPlayerOutOfRange, wrapped with the game position.
//
// A game with Winner == Loser is valid.
//
// Complexity: O(G).
func Validate(n int, gs []Game) error {
	if n < 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidPlayerCount, n)
	}
	for k, g := range gs {
		if g.Winner < 0 || g.Winner >= n {
			return fmt.Errorf("game %d: winner %d not in [0,%d): %w", k, g.Winner, n, ErrPlayerOutOfRange)
		}
		if g.Loser < 0 || g.Loser >= n {
			return fmt.Errorf("game %d: loser %d not in [0,%d): %w", k, g.Loser, n, ErrPlayerOutOfRange)
		}
	}

	return nil
}

// BuildIndex groups gs by player.
//
// Algorithm:
//  1. Validate every game (fail before allocating the arena).
//  2. Count each player's degree into offsets[i+1].
//  3. Prefix-sum offsets so offsets[i] is player i's first slot.
//  4. Walk gs again in order, writing (loser,+1) at the winner's cursor and
//     (winner,-1) at the loser's cursor.
//
// Complexity: Time O(n + G), Memory O(n + G).
func BuildIndex(n int, gs []Game) (*Index, error) {
	// Stage 1 - validation.
	if err := Validate(n, gs); err != nil {
		return nil, err
	}

	// Stage 2 - degree counts, shifted by one for the prefix sum.
	offsets := make([]int, n+1)
	for _, g := range gs {
		offsets[g.Winner+1]++
		offsets[g.Loser+1]++
	}

	// Stage 3 - prefix sums.
	var i int
	for i = 1; i <= n; i++ {
		offsets[i] += offsets[i-1]
	}

	// Stage 4 - fill, one write cursor per player.
	arena := make([]Neighbor, offsets[n])
	cursor := make([]int, n)
	copy(cursor, offsets[:n])
	for _, g := range gs {
		arena[cursor[g.Winner]] = Neighbor{Opponent: g.Loser, Sign: Win}
		cursor[g.Winner]++
		arena[cursor[g.Loser]] = Neighbor{Opponent: g.Winner, Sign: Loss}
		cursor[g.Loser]++
	}

	return &Index{offsets: offsets, arena: arena}, nil
}

// NumPlayers returns the player count the index was built for.
func (x *Index) NumPlayers() int { return len(x.offsets) - 1 }

// NumGames returns the number of games indexed.
func (x *Index) NumGames() int { return len(x.arena) / 2 }

// Neighbors returns player i's records as a sub-slice of the arena.
// The slice aliases internal storage and must not be modified.
// Panics if i is outside [0, NumPlayers()), like a slice index.
func (x *Index) Neighbors(i int) []Neighbor {
	return x.arena[x.offsets[i]:x.offsets[i+1]:x.offsets[i+1]]
}

// Degree returns the number of games player i took part in.
func (x *Index) Degree(i int) int { return x.offsets[i+1] - x.offsets[i] }

// Record returns player i's win and loss counts.
//
// Complexity: O(deg(i)).
func (x *Index) Record(i int) (wins, losses int) {
	for _, nb := range x.Neighbors(i) {
		if nb.Sign > 0 {
			wins++
		} else {
			losses++
		}
	}

	return wins, losses
}
