package engine

import (
	"kalah/experiments/metrics"
	"kalah/game"
	"kalah/searcher"

	"golang.org/x/exp/rand"
)

// Player chooses moves for whichever seat it currently occupies.
type Player interface {
	Name() string
	// FindMove returns a legal pit for side, or 0 if there is none
	FindMove(board *game.Board, side game.Side) (int, metrics.SearchMetric, error)
	// ShouldSwap decides whether to take over the offered seat after the opening
	ShouldSwap(board *game.Board, offered game.Side) bool
}

type minimaxPlayer struct {
	name    string
	minimax *searcher.Minimax
	swap    searcher.SwapPolicy
}

// NewMinimaxPlayer returns a player backed by an alpha-beta search.
func NewMinimaxPlayer(name string, swap searcher.SwapPolicy, options ...searcher.Option) Player {
	if swap == nil {
		swap = searcher.AlwaysSwap
	}
	return &minimaxPlayer{
		name:    name,
		minimax: searcher.NewMinimax(game.South, options...),
		swap:    swap,
	}
}

func (p *minimaxPlayer) Name() string {
	return p.name
}

func (p *minimaxPlayer) FindMove(board *game.Board, side game.Side) (int, metrics.SearchMetric, error) {
	p.minimax.UpdateSide(side)
	decision, metric, err := p.minimax.Search(board)
	return decision.Hole, metric, err
}

func (p *minimaxPlayer) ShouldSwap(board *game.Board, offered game.Side) bool {
	return p.swap(board, offered)
}

type randomPlayer struct {
	name string
	rng  *rand.Rand
}

// NewRandomPlayer returns a player that picks uniformly among legal moves and swaps half the time.
func NewRandomPlayer(name string, seed uint64) Player {
	return &randomPlayer{
		name: name,
		rng:  rand.New(rand.NewSource(seed)),
	}
}

func (p *randomPlayer) Name() string {
	return p.name
}

func (p *randomPlayer) FindMove(board *game.Board, side game.Side) (int, metrics.SearchMetric, error) {
	moves := board.LegalMoves(side)
	if len(moves) == 0 {
		return 0, metrics.SearchMetric{}, nil
	}
	return moves[p.rng.Intn(len(moves))], metrics.SearchMetric{}, nil
}

func (p *randomPlayer) ShouldSwap(*game.Board, game.Side) bool {
	return p.rng.Intn(2) == 0
}
