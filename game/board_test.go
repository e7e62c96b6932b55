package game

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"
)

// newTestBoard builds a board from pits listed in hole order 1..holes for each side.
func newTestBoard(t *testing.T, south []int, southStore int, north []int, northStore int) *Board {
	t.Helper()
	require.Equal(t, len(south), len(north), "Rows should have the same number of pits")

	b := NewBoard(len(south), 0)
	for i := range south {
		require.NoError(t, b.SetSeeds(South, i+1, south[i]))
		require.NoError(t, b.SetSeeds(North, i+1, north[i]))
	}
	b.SetSeedsInStore(South, southStore)
	b.SetSeedsInStore(North, northStore)
	return b
}

func pits(t *testing.T, b *Board, side Side) []int {
	t.Helper()
	out := make([]int, b.Holes())
	for hole := 1; hole <= b.Holes(); hole++ {
		seeds, err := b.Seeds(side, hole)
		require.NoError(t, err)
		out[hole-1] = seeds
	}
	return out
}

func TestSide(t *testing.T) {
	require.Equal(t, North, South.Opposite(), "South should face North")
	require.Equal(t, South, North.Opposite(), "North should face South")
	require.Equal(t, 0, South.Index(), "South should own row 0")
	require.Equal(t, 1, North.Index(), "North should own row 1")
	require.Equal(t, "North", North.String())
}

func TestNewBoard(t *testing.T) {
	t.Run("filling every pit and leaving stores empty", func(t *testing.T) {
		b := NewBoard(7, 7)

		require.Equal(t, 7, b.Holes())
		require.Equal(t, []int{7, 7, 7, 7, 7, 7, 7}, pits(t, b, South))
		require.Equal(t, []int{7, 7, 7, 7, 7, 7, 7}, pits(t, b, North))
		require.Zero(t, b.SeedsInStore(South), "Store should start empty")
		require.Zero(t, b.SeedsInStore(North), "Store should start empty")
		require.Equal(t, 98, b.TotalSeeds())
	})

	t.Run("panics without holes", func(t *testing.T) {
		require.Panics(t, func() { NewBoard(0, 7) }, "Should panic on an empty board")
	})
}

func TestBoardAccessors(t *testing.T) {
	t.Run("rejecting holes outside the pits", func(t *testing.T) {
		b := NewBoard(3, 3)
		for _, hole := range []int{0, -1, 4} {
			_, err := b.Seeds(South, hole)
			require.ErrorIs(t, err, ErrInvalidHole, "Seeds should reject hole %d", hole)
			require.ErrorIs(t, b.SetSeeds(South, hole, 1), ErrInvalidHole, "SetSeeds should reject hole %d", hole)
			_, err = b.SeedsOp(South, hole)
			require.ErrorIs(t, err, ErrInvalidHole, "SeedsOp should reject hole %d", hole)
			require.ErrorIs(t, b.SetSeedsOp(South, hole, 1), ErrInvalidHole, "SetSeedsOp should reject hole %d", hole)
		}
		require.Equal(t, 18, b.TotalSeeds(), "Rejected writes should not change the board")
	})

	t.Run("addressing the mirrored pit", func(t *testing.T) {
		b := newTestBoard(t, []int{1, 2, 3}, 0, []int{4, 5, 6}, 0)

		got, err := b.SeedsOp(South, 1)
		require.NoError(t, err)
		require.Equal(t, 6, got, "South pit 1 should face North pit 3")

		require.NoError(t, b.SetSeedsOp(North, 3, 9))
		require.Equal(t, []int{9, 2, 3}, pits(t, b, South), "North pit 3 should face South pit 1")
	})

	t.Run("keeping stores apart from pits", func(t *testing.T) {
		b := newTestBoard(t, []int{1, 2, 3}, 0, []int{4, 5, 6}, 0)

		b.SetSeedsInStore(North, 11)

		require.Equal(t, 11, b.SeedsInStore(North))
		require.Equal(t, []int{4, 5, 6}, pits(t, b, North), "Store writes should not touch pits")
	})

	t.Run("checking legality", func(t *testing.T) {
		b := newTestBoard(t, []int{0, 2, 3}, 0, []int{4, 5, 6}, 0)

		require.False(t, b.IsLegal(South, 0), "Store should not be playable")
		require.False(t, b.IsLegal(South, 1), "Empty pit should not be playable")
		require.True(t, b.IsLegal(South, 2), "Filled pit should be playable")
		require.False(t, b.IsLegal(South, 4), "Hole past the row should not be playable")
		require.Equal(t, []int{2, 3}, b.LegalMoves(South))
	})

	t.Run("copying independently", func(t *testing.T) {
		b := newTestBoard(t, []int{1, 2, 3}, 0, []int{4, 5, 6}, 0)
		c := b.Copy()

		_, err := c.MakeMove(South, 3)
		require.NoError(t, err)

		require.Equal(t, []int{1, 2, 3}, pits(t, b, South), "Copying should leave the source board alone")
		require.Zero(t, b.SeedsInStore(South), "Copying should leave the source board alone")
		require.NotEqual(t, b, c, "Copy should have moved")
	})
}

func TestMakeMove(t *testing.T) {
	t.Run("sowing past the store into the opponent's row", func(t *testing.T) {
		b := newTestBoard(t, []int{3, 3, 3}, 0, []int{3, 3, 3}, 0)

		next, err := b.MakeMove(South, 3)

		require.NoError(t, err)
		require.Equal(t, []int{3, 3, 0}, pits(t, b, South))
		require.Equal(t, 1, b.SeedsInStore(South))
		require.Equal(t, []int{4, 4, 3}, pits(t, b, North))
		require.Zero(t, b.SeedsInStore(North))
		require.Equal(t, North, next, "Opponent should move next")
	})

	t.Run("earning a free turn in the own store", func(t *testing.T) {
		b := newTestBoard(t, []int{3, 3, 1}, 0, []int{3, 3, 3}, 0)

		next, err := b.MakeMove(South, 3)

		require.NoError(t, err)
		require.Equal(t, []int{3, 3, 0}, pits(t, b, South))
		require.Equal(t, 1, b.SeedsInStore(South))
		require.Equal(t, South, next, "Same side should move again")
	})

	t.Run("capturing the mirrored pit", func(t *testing.T) {
		b := newTestBoard(t, []int{1, 0, 2}, 0, []int{4, 5, 6}, 0)

		next, err := b.MakeMove(South, 1)

		require.NoError(t, err)
		require.Equal(t, 6, b.SeedsInStore(South), "Store should take the last seed and the mirror")
		require.Equal(t, []int{0, 0, 2}, pits(t, b, South))
		require.Equal(t, []int{4, 0, 6}, pits(t, b, North))
		require.Equal(t, North, next, "Capture should not grant a free turn")
	})

	t.Run("skipping the opponent's store and capturing after the wrap", func(t *testing.T) {
		b := newTestBoard(t, []int{0, 3, 5}, 0, []int{3, 3, 3}, 0)

		next, err := b.MakeMove(South, 3)

		require.NoError(t, err)
		require.Zero(t, b.SeedsInStore(North), "Opponent's store should never be sown")
		require.Equal(t, 6, b.SeedsInStore(South), "One sown seed plus a capture of 1+4")
		require.Equal(t, []int{0, 3, 0}, pits(t, b, South))
		require.Equal(t, []int{4, 4, 0}, pits(t, b, North))
		require.Equal(t, North, next)
	})

	t.Run("not capturing in a non-empty pit", func(t *testing.T) {
		b := newTestBoard(t, []int{1, 1, 2}, 0, []int{4, 5, 6}, 0)

		_, err := b.MakeMove(South, 1)

		require.NoError(t, err)
		require.Zero(t, b.SeedsInStore(South))
		require.Equal(t, []int{0, 2, 2}, pits(t, b, South))
		require.Equal(t, []int{4, 5, 6}, pits(t, b, North))
	})

	t.Run("not capturing against an empty mirror", func(t *testing.T) {
		b := newTestBoard(t, []int{1, 0, 2}, 0, []int{4, 0, 6}, 0)

		_, err := b.MakeMove(South, 1)

		require.NoError(t, err)
		require.Zero(t, b.SeedsInStore(South))
		require.Equal(t, []int{0, 1, 2}, pits(t, b, South))
	})

	t.Run("not capturing on the opponent's row", func(t *testing.T) {
		b := newTestBoard(t, []int{3, 3, 2}, 0, []int{0, 3, 3}, 0)

		_, err := b.MakeMove(South, 3)

		require.NoError(t, err)
		require.Equal(t, 1, b.SeedsInStore(South))
		require.Equal(t, []int{1, 3, 3}, pits(t, b, North), "Last seed stays on the opponent's row")
	})

	t.Run("sowing whole laps", func(t *testing.T) {
		b := newTestBoard(t, []int{8, 3, 3}, 0, []int{3, 3, 3}, 0)

		next, err := b.MakeMove(South, 1)

		require.NoError(t, err)
		require.Equal(t, []int{1, 5, 4}, pits(t, b, South), "One lap plus one extra seed")
		require.Equal(t, 1, b.SeedsInStore(South))
		require.Equal(t, []int{4, 4, 4}, pits(t, b, North))
		require.Zero(t, b.SeedsInStore(North))
		require.Equal(t, North, next)
	})

	t.Run("capturing when a whole lap ends on the starting pit", func(t *testing.T) {
		b := newTestBoard(t, []int{1, 7, 1}, 0, []int{1, 1, 1}, 0)

		next, err := b.MakeMove(South, 2)

		require.NoError(t, err)
		require.Equal(t, 4, b.SeedsInStore(South), "Lap seed plus a capture of 1+2")
		require.Equal(t, []int{2, 0, 2}, pits(t, b, South))
		require.Equal(t, []int{2, 0, 2}, pits(t, b, North))
		require.Equal(t, North, next)
	})

	t.Run("capturing for North", func(t *testing.T) {
		b := newTestBoard(t, []int{4, 5, 6}, 0, []int{1, 0, 2}, 0)

		next, err := b.MakeMove(North, 1)

		require.NoError(t, err)
		require.Equal(t, 6, b.SeedsInStore(North))
		require.Equal(t, []int{4, 0, 6}, pits(t, b, South))
		require.Equal(t, South, next)
	})

	t.Run("collecting the remaining seeds when the mover runs out", func(t *testing.T) {
		b := newTestBoard(t, []int{0, 0, 1}, 5, []int{2, 3, 4}, 1)

		next, err := b.MakeMove(South, 3)

		require.NoError(t, err)
		require.True(t, b.GameOver())
		require.Equal(t, 6, b.SeedsInStore(South))
		require.Equal(t, []int{0, 0, 0}, pits(t, b, North), "Opponent's pits should be emptied")
		require.Equal(t, 10, b.SeedsInStore(North), "Opponent's store should gain exactly its pits")
		require.Equal(t, South, next, "Free turn is still reported")
	})

	t.Run("collecting the mover's seeds when the opponent runs out", func(t *testing.T) {
		b := newTestBoard(t, []int{2, 1, 0}, 0, []int{1, 0, 0}, 0)

		next, err := b.MakeMove(South, 2)

		require.NoError(t, err)
		require.True(t, b.GameOver())
		// The capture empties North, so South keeps its own pits
		require.Equal(t, []int{0, 0, 0}, pits(t, b, South))
		require.Equal(t, 4, b.SeedsInStore(South))
		require.Zero(t, b.SeedsInStore(North))
		require.Equal(t, North, next)
	})

	t.Run("rejecting an invalid hole without mutation", func(t *testing.T) {
		b := newTestBoard(t, []int{1, 2, 3}, 0, []int{4, 5, 6}, 0)
		before := b.Copy()

		_, err := b.MakeMove(South, 4)

		require.ErrorIs(t, err, ErrInvalidHole)
		require.Equal(t, before, b, "Board should not change")
	})
}

func TestMakeMoveProperties(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 7))

	for i := 0; i < 50; i++ {
		b := NewBoard(7, 7)
		side := South
		for !b.GameOver() {
			moves := b.LegalMoves(side)
			require.NotEmpty(t, moves, "Side to move should have a legal move before the game ends")
			hole := moves[rng.IntN(len(moves))]
			before := b.Copy()

			next, err := b.MakeMove(side, hole)

			require.NoError(t, err)
			require.Equal(t, before.TotalSeeds(), b.TotalSeeds(), "Sowing should conserve seeds")
			if b.GameOver() {
				require.Equal(t, b.TotalSeeds(), b.SeedsInStore(South)+b.SeedsInStore(North),
					"Finished game should have every seed in a store")
			}
			if next == side {
				require.Greater(t, b.SeedsInStore(side), before.SeedsInStore(side),
					"Free turn should come from a seed in the store")
			}
			side = next
		}
		require.Equal(t, 98, b.TotalSeeds(), "Game %d should still hold every seed", i)
	}
}

func TestBoardString(t *testing.T) {
	b := newTestBoard(t, []int{1, 2, 3}, 4, []int{5, 6, 7}, 8)

	require.Equal(t, "N[8] 7 6 5 | S 1 2 3 [4]", b.String())
}
