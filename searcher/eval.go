package searcher

import "kalah/game"

// Evaluate scores a board from the perspective of self, with mover being the side to move.
// Higher is better for self.
type Evaluate func(board *game.Board, self, mover game.Side) (int, error)

const (
	WinBonus      = 100 // Store holds a majority of all seeds
	FreeTurnBonus = 10  // Move ordering bonus for keeping the turn
	backPitsFrom  = 5
	backPitsShare = 8
)

// BoardHeuristic combines the store difference, a small reward for seeds kept in the back pits,
// a bonus for a decided game and the best capture currently open to the mover.
func BoardHeuristic(board *game.Board, self, mover game.Side) (int, error) {
	opponent := self.Opposite()
	score := board.SeedsInStore(self) - board.SeedsInStore(opponent)

	back := 0
	for hole := backPitsFrom; hole <= board.Holes(); hole++ {
		seeds, err := board.Seeds(self, hole)
		if err != nil {
			return 0, err
		}
		back += seeds
	}
	score += back / backPitsShare

	half := board.TotalSeeds() / 2
	if board.SeedsInStore(self) > half {
		score += WinBonus
	} else if board.SeedsInStore(opponent) > half {
		score -= WinBonus
	}

	steal, err := maxSteal(board, mover)
	if err != nil {
		return 0, err
	}
	if mover == self {
		score += steal
	} else {
		score -= steal
	}
	return score, nil
}

// maxSteal estimates the largest capture side could make with one move. It only looks at where
// the last seed of each pit would land, without sowing.
func maxSteal(board *game.Board, side game.Side) (int, error) {
	holes := board.Holes()
	lap := 2*holes + 1

	best := 0
	for hole := 1; hole <= holes; hole++ {
		seeds, err := board.Seeds(side, hole)
		if err != nil {
			return 0, err
		}
		if seeds == 0 {
			continue
		}

		target := hole + seeds%lap
		switch {
		case target == hole: // Whole laps end on the starting pit
		case target <= holes:
		case target > lap:
			target -= lap
		default: // Store or opponent's row
			continue
		}

		if target != hole {
			landed, err := board.Seeds(side, target)
			if err != nil {
				return 0, err
			}
			if landed != 0 {
				continue
			}
		}

		across, err := board.SeedsOp(side, target)
		if err != nil {
			return 0, err
		}
		if across > 0 {
			best = max(best, 1+across)
		}
	}
	return best, nil
}
