package game

import (
	"bytes"
	"errors"
	"fmt"
)

var ErrInvalidHole = errors.New("invalid hole number")

// Board holds the seed counts of both rows. Column 0 of each row is that side's store, columns
// 1..holes are its pits. Board is the only authority on the sowing rules.
type Board struct {
	holes int
	state [2][]int
}

// Landing records where the last seed of a sowing came to rest.
type Landing struct {
	InStore bool // Landed in the sowing side's own store
	Side    Side // Row of the landing pit, unset when InStore
	Hole    int  // Landing pit, unset when InStore
}

// NewBoard returns a board with the given number of pits per side, each holding seeds, and empty
// stores.
func NewBoard(holes, seeds int) *Board {
	if holes < 1 {
		panic("board needs at least one hole per side")
	}
	b := &Board{holes: holes}
	for i := range b.state {
		b.state[i] = make([]int, holes+1)
		for hole := 1; hole <= holes; hole++ {
			b.state[i][hole] = seeds
		}
	}
	return b
}

func (b *Board) Holes() int {
	return b.holes
}

func (b *Board) checkHole(hole int) error {
	if hole < 1 || hole > b.holes {
		return fmt.Errorf("%w: %d not in 1..%d", ErrInvalidHole, hole, b.holes)
	}
	return nil
}

// mirror returns the pit across the board from hole.
func (b *Board) mirror(hole int) int {
	return b.holes - hole + 1
}

func (b *Board) Seeds(side Side, hole int) (int, error) {
	if err := b.checkHole(hole); err != nil {
		return 0, err
	}
	return b.state[side.Index()][hole], nil
}

func (b *Board) SetSeeds(side Side, hole, seeds int) error {
	if err := b.checkHole(hole); err != nil {
		return err
	}
	b.state[side.Index()][hole] = seeds
	return nil
}

// SeedsOp returns the seeds in the pit opposite to the given pit of side.
func (b *Board) SeedsOp(side Side, hole int) (int, error) {
	if err := b.checkHole(hole); err != nil {
		return 0, err
	}
	return b.state[side.Opposite().Index()][b.mirror(hole)], nil
}

// SetSeedsOp sets the seeds in the pit opposite to the given pit of side.
func (b *Board) SetSeedsOp(side Side, hole, seeds int) error {
	if err := b.checkHole(hole); err != nil {
		return err
	}
	b.state[side.Opposite().Index()][b.mirror(hole)] = seeds
	return nil
}

func (b *Board) SeedsInStore(side Side) int {
	return b.state[side.Index()][0]
}

func (b *Board) SetSeedsInStore(side Side, seeds int) {
	b.state[side.Index()][0] = seeds
}

// IsLegal reports whether side may sow from hole.
func (b *Board) IsLegal(side Side, hole int) bool {
	if hole < 1 || hole > b.holes {
		return false
	}
	return b.state[side.Index()][hole] > 0
}

// LegalMoves returns the playable pits of side in ascending order.
func (b *Board) LegalMoves(side Side) []int {
	moves := make([]int, 0, b.holes)
	for hole := 1; hole <= b.holes; hole++ {
		if b.IsLegal(side, hole) {
			moves = append(moves, hole)
		}
	}
	return moves
}

// GameOver reports whether either side has run out of seeds in its pits.
func (b *Board) GameOver() bool {
	return b.holesEmpty(South) || b.holesEmpty(North)
}

func (b *Board) holesEmpty(side Side) bool {
	for _, seeds := range b.state[side.Index()][1:] {
		if seeds != 0 {
			return false
		}
	}
	return true
}

// TotalSeeds sums every pit and store on the board.
func (b *Board) TotalSeeds() int {
	total := 0
	for _, row := range b.state {
		for _, seeds := range row {
			total += seeds
		}
	}
	return total
}

func (b *Board) Copy() *Board {
	c := &Board{holes: b.holes}
	for i, row := range b.state {
		c.state[i] = make([]int, len(row))
		copy(c.state[i], row)
	}
	return c
}

// MakeMove sows the seeds of the given pit of side and returns the side that moves next.
func (b *Board) MakeMove(side Side, hole int) (Side, error) {
	if err := b.checkHole(hole); err != nil {
		return side, err
	}

	landing := b.sow(side, hole)
	if !landing.InStore && landing.Side == side {
		b.capture(side, landing.Hole)
	}
	b.collect(side)

	if landing.InStore {
		return side, nil
	}
	return side.Opposite(), nil
}

// sow empties the pit and distributes its seeds forward, skipping the opponent's store.
func (b *Board) sow(side Side, hole int) Landing {
	own := side.Index()
	seeds := b.state[own][hole]
	b.state[own][hole] = 0

	// Both rows of pits plus the sowing side's store
	receivingPits := 2*b.holes + 1
	rounds := seeds / receivingPits
	extra := seeds % receivingPits

	if rounds > 0 {
		for i := 1; i <= b.holes; i++ {
			b.state[South.Index()][i] += rounds
			b.state[North.Index()][i] += rounds
		}
		b.state[own][0] += rounds
	}

	landing := Landing{Side: side, Hole: hole}
	for ; extra > 0; extra-- {
		switch {
		case landing.InStore:
			landing = Landing{Side: side.Opposite(), Hole: 1}
		case landing.Hole == b.holes && landing.Side == side:
			landing = Landing{InStore: true}
			b.state[own][0]++
			continue
		case landing.Hole == b.holes:
			landing = Landing{Side: side, Hole: 1}
		default:
			landing.Hole++
		}
		b.state[landing.Side.Index()][landing.Hole]++
	}
	return landing
}

// capture moves the last seed and the seeds opposite to it into the store, if the last seed
// landed in a previously empty pit.
func (b *Board) capture(side Side, hole int) {
	own, opp := side.Index(), side.Opposite().Index()
	across := b.state[opp][b.mirror(hole)]
	if b.state[own][hole] != 1 || across == 0 {
		return
	}
	b.state[own][0] += 1 + across
	b.state[own][hole] = 0
	b.state[opp][b.mirror(hole)] = 0
}

// collect ends the game once a row of pits is empty: the other side keeps its remaining seeds.
func (b *Board) collect(side Side) {
	var collecting Side
	switch {
	case b.holesEmpty(side):
		collecting = side.Opposite()
	case b.holesEmpty(side.Opposite()):
		collecting = side
	default:
		return
	}
	row := b.state[collecting.Index()]
	for i := 1; i <= b.holes; i++ {
		row[0] += row[i]
		row[i] = 0
	}
}

// String renders the board as two rows, North reversed so that pits face their mirrors.
func (b *Board) String() string {
	var buf bytes.Buffer
	north, south := b.state[North.Index()], b.state[South.Index()]

	fmt.Fprintf(&buf, "N[%d]", north[0])
	for i := b.holes; i >= 1; i-- {
		fmt.Fprintf(&buf, " %d", north[i])
	}
	buf.WriteString(" | S")
	for i := 1; i <= b.holes; i++ {
		fmt.Fprintf(&buf, " %d", south[i])
	}
	fmt.Fprintf(&buf, " [%d]", south[0])
	return buf.String()
}
