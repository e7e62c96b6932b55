package engine

import (
	"errors"
	"fmt"
	"kalah/experiments/metrics"
	"kalah/game"
	"kalah/meta"
	"time"

	"github.com/rs/zerolog/log"
)

var ErrNoMove = errors.New("player returned no move")

// Engine referees a game between two local players, including the pie rule.
type Engine struct {
	board   *game.Board
	seats   [2]Player // Indexed by game.Side.Index()
	swapped bool
}

func LocalEngine(south, north Player, holes, seeds int) *Engine {
	if south == nil || north == nil {
		panic("need two players")
	}
	e := &Engine{board: game.NewBoard(holes, seeds)}
	e.seats[game.South.Index()] = south
	e.seats[game.North.Index()] = north
	return e
}

func (e *Engine) Board() *game.Board {
	return e.board
}

// Seat returns the player currently playing side.
func (e *Engine) Seat(side game.Side) Player {
	return e.seats[side.Index()]
}

// Run plays until the game is over or the move limit is reached.
func (e *Engine) Run() (metrics.GameMetric, []metrics.MoveMetric, error) {
	gameMetric := metrics.GameMetric{StartTime: time.Now()}
	moveMetrics := []metrics.MoveMetric{}

	log.Info().Msgf("%s is starting as South against %s", e.Seat(game.South).Name(), e.Seat(game.North).Name())

	side := game.South
	canSwap := true
	step := 1
	for !e.board.GameOver() && step <= meta.MAX_MOVES {
		player := e.Seat(side)
		hole, searchMetric, err := player.FindMove(e.board.Copy(), side)
		if err != nil {
			return gameMetric, moveMetrics, fmt.Errorf("%s failed to find move: %w", player.Name(), err)
		}
		if hole == 0 {
			return gameMetric, moveMetrics, fmt.Errorf("%w from %s on %s", ErrNoMove, player.Name(), e.board)
		}

		next, err := e.board.MakeMove(side, hole)
		if err != nil {
			return gameMetric, moveMetrics, fmt.Errorf("%s played an illegal move: %w", player.Name(), err)
		}
		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         step,
			Side:         side,
			Hole:         hole,
			SearchMetric: searchMetric,
		})
		log.Debug().Msgf("step %d: %s played %d as %s, board %s", step, player.Name(), hole, side, e.board)
		step++

		// North may take over South's seat once, right after South's opening
		if canSwap && side == game.South && next == game.North {
			canSwap = false
			if e.Seat(game.North).ShouldSwap(e.board.Copy(), game.South) && !e.board.GameOver() {
				e.seats[0], e.seats[1] = e.seats[1], e.seats[0]
				e.swapped = true
				moveMetrics = append(moveMetrics, metrics.MoveMetric{Step: step, Side: game.North})
				log.Debug().Msgf("step %d: %s swapped to South", step, e.Seat(game.South).Name())
				step++
			}
		}
		side = next
	}

	if !e.board.GameOver() {
		log.Warn().Msgf("stopped after %d moves without a result", meta.MAX_MOVES)
	}

	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.SouthStore = e.board.SeedsInStore(game.South)
	gameMetric.NorthStore = e.board.SeedsInStore(game.North)
	gameMetric.Swapped = e.swapped
	gameMetric.TotalMoves = len(moveMetrics)
	gameMetric.Winner = e.winner()

	log.Info().Msgf("game over after %d moves: %s, winner %q", gameMetric.TotalMoves, e.board, gameMetric.Winner)
	return gameMetric, moveMetrics, nil
}

func (e *Engine) winner() string {
	south, north := e.board.SeedsInStore(game.South), e.board.SeedsInStore(game.North)
	switch {
	case south > north:
		return e.Seat(game.South).Name()
	case north > south:
		return e.Seat(game.North).Name()
	default:
		return ""
	}
}
