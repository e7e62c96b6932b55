package searcher

import (
	"kalah/experiments/metrics"
	"kalah/game"
	"kalah/meta"
	"math"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/slices"
)

const inf = math.MaxInt32

type Option func(m *Minimax)

// Decision is the outcome of a root search. Hole is 0 when side has no legal move.
type Decision struct {
	Hole  int
	Score int
}

// Minimax chooses moves for side with a depth-bounded alpha-beta search. Every explored node
// sows on its own copy of the board.
type Minimax struct {
	side     game.Side
	depth    int
	evaluate Evaluate
	metrics  metrics.Collector
}

type heuristicValue struct {
	hole      int
	heuristic int
}

func WithDepth(depth int) Option {
	return func(m *Minimax) {
		if depth > 0 {
			m.depth = depth
		}
	}
}

func WithEvaluationFn(evaluate Evaluate) Option {
	return func(m *Minimax) {
		if evaluate != nil {
			m.evaluate = evaluate
		}
	}
}

func WithMetrics() Option {
	return func(m *Minimax) {
		m.metrics = metrics.NewCollector()
	}
}

func NewMinimax(side game.Side, options ...Option) *Minimax {
	m := &Minimax{ // Default values
		side:     side,
		depth:    meta.MAX_DEPTH,
		evaluate: BoardHeuristic,
		metrics:  metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(m)
	}
	return m
}

func (m *Minimax) Side() game.Side {
	return m.side
}

// UpdateSide rebinds the side whose interest the search optimizes, e.g. after a swap.
func (m *Minimax) UpdateSide(side game.Side) {
	m.side = side
}

func (m *Minimax) Depth() int {
	return m.depth
}

// GetBestMove returns the best pit for side to sow from, or 0 if there is none.
func (m *Minimax) GetBestMove(board *game.Board) (int, error) {
	decision, _, err := m.Search(board)
	return decision.Hole, err
}

// Search explores the game tree below board and returns the chosen move with its score. Ties go
// to the move ranked first by the one-ply heuristic.
func (m *Minimax) Search(board *game.Board) (Decision, metrics.SearchMetric, error) {
	m.metrics.Start(m.depth)

	moves, err := m.possibleMoves(board, m.side)
	if err != nil {
		return Decision{}, metrics.SearchMetric{}, err
	}
	if len(moves) == 0 {
		log.Debug().Stringer("side", m.side).Msg("no legal move available")
		return Decision{}, m.metrics.Complete(), nil
	}
	order(moves, true)

	best := Decision{Score: -inf}
	alpha, beta := -inf, inf
	for _, move := range moves {
		child := board.Copy()
		next, err := child.MakeMove(m.side, move.hole)
		if err != nil {
			return Decision{}, metrics.SearchMetric{}, err
		}
		score, err := m.doMinimax(child, next, next == m.side, m.depth, alpha, beta)
		if err != nil {
			return Decision{}, metrics.SearchMetric{}, err
		}
		if score > best.Score {
			best = Decision{Hole: move.hole, Score: score}
			alpha = max(alpha, score)
		}
	}

	metric := m.metrics.Complete()
	log.Debug().
		Stringer("side", m.side).
		Int("hole", best.Hole).
		Int("score", best.Score).
		Int("nodes", metric.Nodes).
		Int("cutoffs", metric.Cutoffs).
		Msg("search complete")
	return best, metric, nil
}

func (m *Minimax) doMinimax(board *game.Board, side game.Side, maximizing bool, depth, alpha, beta int) (int, error) {
	m.metrics.AddNode()
	if depth == 0 || board.GameOver() {
		m.metrics.AddLeaf()
		return m.evaluate(board, m.side, side)
	}

	moves, err := m.possibleMoves(board, side)
	if err != nil {
		return 0, err
	}
	order(moves, maximizing)

	best := inf
	if maximizing {
		best = -inf
	}
	for _, move := range moves {
		child := board.Copy()
		next, err := child.MakeMove(side, move.hole)
		if err != nil {
			return 0, err
		}
		score, err := m.doMinimax(child, next, next == m.side, depth-1, alpha, beta)
		if err != nil {
			return 0, err
		}

		if maximizing {
			if score > best {
				best = score
				alpha = max(alpha, best)
			}
		} else if score < best {
			best = score
			beta = min(beta, best)
		}

		if beta <= alpha {
			m.metrics.AddCutoff()
			return best, nil
		}
	}
	return best, nil
}

// possibleMoves scores every legal move of side with the one-ply heuristic.
func (m *Minimax) possibleMoves(board *game.Board, side game.Side) ([]heuristicValue, error) {
	moves := make([]heuristicValue, 0, board.Holes())
	for hole := 1; hole <= board.Holes(); hole++ {
		if !board.IsLegal(side, hole) {
			continue
		}
		move, err := m.moveHeuristic(board, side, hole)
		if err != nil {
			return nil, err
		}
		moves = append(moves, move)
	}
	return moves, nil
}

func (m *Minimax) moveHeuristic(board *game.Board, side game.Side, hole int) (heuristicValue, error) {
	child := board.Copy()
	next, err := child.MakeMove(side, hole)
	if err != nil {
		return heuristicValue{}, err
	}

	score := -FreeTurnBonus
	if next == m.side {
		score = FreeTurnBonus
	}
	eval, err := m.evaluate(child, m.side, next)
	if err != nil {
		return heuristicValue{}, err
	}
	return heuristicValue{hole: hole, heuristic: score + eval}, nil
}

// order sorts moves best first for the maximizing side, worst first otherwise. Equal moves keep
// ascending hole order.
func order(moves []heuristicValue, descending bool) {
	slices.SortStableFunc(moves, func(a, b heuristicValue) int {
		if descending {
			return b.heuristic - a.heuristic
		}
		return a.heuristic - b.heuristic
	})
}
